// Package model contains domain types for the stalenotify application.
// These types are independent of any external GitHub library.
package model

import "time"

// Issue is a read-only snapshot of an open issue as returned by the
// issues query.
type Issue struct {
	// ID is the opaque GraphQL node ID, used as the comment subject.
	ID        string    `json:"id"`
	UpdatedAt time.Time `json:"updatedAt"`
	URL       string    `json:"url"`
}

// IsStale reports whether the issue was last updated strictly before cutoff.
func (i Issue) IsStale(cutoff time.Time) bool {
	return i.UpdatedAt.Before(cutoff)
}

// Comment is the result of posting a comment on an issue.
type Comment struct {
	URL string `json:"url"`
}
