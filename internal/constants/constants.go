// Package constants provides a centralized location for the fixed policy
// values used throughout the stalenotify application.
package constants

import "time"

// Staleness policy
const (
	// StalenessWindow is how long an open issue may go without an update
	// before it is considered stale.
	StalenessWindow = 12 * time.Hour

	// IssuePageSize is the number of open issues requested per repository.
	// Only the first page is inspected.
	IssuePageSize = 100

	// CommentBody is posted on every stale issue.
	CommentBody = "This issue has breached the Stale Issue policy. Please close this issue or update this conversation to inform the parties about the latest status of the fix."
)

// Default targets used when no configuration file overrides them.
const (
	// DefaultOwner is the repository owner used for bare repository names.
	DefaultOwner = "rahulrai-in"
)

// DefaultRepositories returns the repositories inspected when none are
// configured.
func DefaultRepositories() []string {
	return []string{"gh-graphql-client"}
}

// Rate limiting constants
const (
	// RateLimitLowWatermark is the threshold below which rate limit
	// warnings are logged.
	RateLimitLowWatermark = 100
)

// GitHub endpoints
const (
	// GraphQLEndpoint is the public GitHub GraphQL API.
	GraphQLEndpoint = "https://api.github.com/graphql"
)
