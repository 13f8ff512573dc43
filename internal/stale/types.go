package stale

import (
	"context"
	"time"

	"github.com/spiffcs/stalenotify/internal/model"
)

// IssueFetcher returns the first page of open issues in a repository.
type IssueFetcher interface {
	FetchOpenIssues(ctx context.Context, target model.RepositoryTarget, first int) ([]model.Issue, error)
}

// Commenter posts a comment on the issue with the given node ID.
type Commenter interface {
	AddComment(ctx context.Context, subjectID, body string) (model.Comment, error)
}

// Reporter receives progress as a run advances. Calls arrive in run order
// from a single goroutine.
type Reporter interface {
	RepositoryStarted(target model.RepositoryTarget)
	StaleIssuesFound(target model.RepositoryTarget, issues []model.Issue)
	CommentPosting(issue model.Issue)
	CommentPosted(issue model.Issue, comment model.Comment)
	CommentSkipped(issue model.Issue)
	RepositoryFinished(target model.RepositoryTarget)
	Done(summary *Summary)
}

// CommentResult records one stale issue and the comment posted on it.
// CommentURL is empty in dry-run mode.
type CommentResult struct {
	IssueID    string `json:"issueId"`
	IssueURL   string `json:"issueUrl"`
	CommentURL string `json:"commentUrl,omitempty"`
}

// RepositoryResult is the outcome for one repository.
type RepositoryResult struct {
	Repository string          `json:"repository"`
	Cutoff     time.Time       `json:"cutoff"`
	Stale      int             `json:"stale"`
	Comments   []CommentResult `json:"comments"`
	FetchError string          `json:"fetchError,omitempty"`
}

// Summary is the outcome of a whole run.
type Summary struct {
	DryRun       bool               `json:"dryRun"`
	StartedAt    time.Time          `json:"startedAt"`
	FinishedAt   time.Time          `json:"finishedAt"`
	Repositories []RepositoryResult `json:"repositories"`
	// Error is set when the run was aborted.
	Error string `json:"error,omitempty"`
}

// TotalStale returns the number of stale issues across all repositories.
func (s *Summary) TotalStale() int {
	total := 0
	for _, r := range s.Repositories {
		total += r.Stale
	}
	return total
}

// TotalCommented returns the number of comments actually posted.
func (s *Summary) TotalCommented() int {
	total := 0
	for _, r := range s.Repositories {
		for _, c := range r.Comments {
			if c.CommentURL != "" {
				total++
			}
		}
	}
	return total
}

type nopReporter struct{}

func (nopReporter) RepositoryStarted(model.RepositoryTarget)               {}
func (nopReporter) StaleIssuesFound(model.RepositoryTarget, []model.Issue) {}
func (nopReporter) CommentPosting(model.Issue)                             {}
func (nopReporter) CommentPosted(model.Issue, model.Comment)               {}
func (nopReporter) CommentSkipped(model.Issue)                             {}
func (nopReporter) RepositoryFinished(model.RepositoryTarget)              {}
func (nopReporter) Done(*Summary)                                          {}
