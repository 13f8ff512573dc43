// Package stale finds open issues that have gone without an update for
// longer than the staleness window and posts a warning comment on each.
package stale

import (
	"context"
	"fmt"
	"time"

	"github.com/spiffcs/stalenotify/internal/constants"
	"github.com/spiffcs/stalenotify/internal/log"
	"github.com/spiffcs/stalenotify/internal/model"
)

// Notifier runs one pass over a list of repositories.
type Notifier struct {
	fetcher   IssueFetcher
	commenter Commenter
	reporter  Reporter
	now       func() time.Time
	dryRun    bool
}

// Option configures a Notifier.
type Option func(*Notifier)

// WithClock overrides the time source used to compute the cutoff.
func WithClock(now func() time.Time) Option {
	return func(n *Notifier) {
		n.now = now
	}
}

// WithDryRun reports stale issues without commenting on them.
func WithDryRun(dryRun bool) Option {
	return func(n *Notifier) {
		n.dryRun = dryRun
	}
}

// WithReporter sets the progress reporter.
func WithReporter(r Reporter) Option {
	return func(n *Notifier) {
		if r != nil {
			n.reporter = r
		}
	}
}

// New creates a Notifier.
func New(fetcher IssueFetcher, commenter Commenter, opts ...Option) *Notifier {
	n := &Notifier{
		fetcher:   fetcher,
		commenter: commenter,
		reporter:  nopReporter{},
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Cutoff returns the instant before which an issue counts as stale.
func Cutoff(now time.Time) time.Time {
	return now.UTC().Add(-constants.StalenessWindow)
}

// Filter returns the issues last updated strictly before cutoff, in their
// original order.
func Filter(issues []model.Issue, cutoff time.Time) []model.Issue {
	var stale []model.Issue
	for _, issue := range issues {
		if issue.IsStale(cutoff) {
			stale = append(stale, issue)
		}
	}
	return stale
}

// Run processes targets one after another. A failed fetch is logged and the
// repository is treated as having no stale issues. A failed comment aborts
// the run; the summary gathered so far is returned with the error.
func (n *Notifier) Run(ctx context.Context, targets []model.RepositoryTarget) (*Summary, error) {
	summary := &Summary{
		DryRun:    n.dryRun,
		StartedAt: n.now().UTC(),
	}

	for _, target := range targets {
		result, err := n.processRepository(ctx, target)
		summary.Repositories = append(summary.Repositories, result)
		if err != nil {
			summary.FinishedAt = n.now().UTC()
			return summary, err
		}
	}

	summary.FinishedAt = n.now().UTC()
	n.reporter.Done(summary)
	return summary, nil
}

func (n *Notifier) processRepository(ctx context.Context, target model.RepositoryTarget) (RepositoryResult, error) {
	n.reporter.RepositoryStarted(target)

	cutoff := Cutoff(n.now())
	result := RepositoryResult{
		Repository: target.FullName(),
		Cutoff:     cutoff,
		Comments:   []CommentResult{},
	}

	issues, err := n.fetcher.FetchOpenIssues(ctx, target, constants.IssuePageSize)
	if err != nil {
		log.Warn("failed to fetch open issues", "repo", target.FullName(), "error", err)
		result.FetchError = err.Error()
		issues = nil
	}

	stale := Filter(issues, cutoff)
	result.Stale = len(stale)
	log.Info("filtered open issues", "repo", target.FullName(), "open", len(issues), "stale", len(stale), "cutoff", cutoff.Format(time.RFC3339))
	n.reporter.StaleIssuesFound(target, stale)

	for _, issue := range stale {
		if n.dryRun {
			n.reporter.CommentSkipped(issue)
			result.Comments = append(result.Comments, CommentResult{IssueID: issue.ID, IssueURL: issue.URL})
			continue
		}

		n.reporter.CommentPosting(issue)
		comment, err := n.commenter.AddComment(ctx, issue.ID, constants.CommentBody)
		if err != nil {
			return result, fmt.Errorf("failed to comment on issue %s in %s: %w", issue.URL, target.FullName(), err)
		}
		n.reporter.CommentPosted(issue, comment)
		result.Comments = append(result.Comments, CommentResult{
			IssueID:    issue.ID,
			IssueURL:   issue.URL,
			CommentURL: comment.URL,
		})
	}

	n.reporter.RepositoryFinished(target)
	return result, nil
}
