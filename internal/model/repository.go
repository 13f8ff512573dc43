package model

import (
	"fmt"
	"strings"
)

// RepositoryTarget identifies a repository to inspect.
type RepositoryTarget struct {
	Owner string `json:"owner"`
	Name  string `json:"name"`
}

// FullName returns the "owner/name" form of the target.
func (r RepositoryTarget) FullName() string {
	return r.Owner + "/" + r.Name
}

func (r RepositoryTarget) String() string {
	return r.FullName()
}

// ParseRepositoryTarget parses "owner/name" or a bare "name". A bare name
// is resolved against defaultOwner.
func ParseRepositoryTarget(s, defaultOwner string) (RepositoryTarget, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return RepositoryTarget{}, fmt.Errorf("empty repository name")
	}

	parts := strings.Split(s, "/")
	switch len(parts) {
	case 1:
		if defaultOwner == "" {
			return RepositoryTarget{}, fmt.Errorf("repository %q has no owner and no default owner is configured", s)
		}
		return RepositoryTarget{Owner: defaultOwner, Name: parts[0]}, nil
	case 2:
		if parts[0] == "" || parts[1] == "" {
			return RepositoryTarget{}, fmt.Errorf("invalid repository %q (expected owner/name)", s)
		}
		return RepositoryTarget{Owner: parts[0], Name: parts[1]}, nil
	default:
		return RepositoryTarget{}, fmt.Errorf("invalid repository %q (expected owner/name)", s)
	}
}
