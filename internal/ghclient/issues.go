package ghclient

import (
	"context"
	"fmt"

	"github.com/shurcooL/githubv4"

	"github.com/spiffcs/stalenotify/internal/log"
	"github.com/spiffcs/stalenotify/internal/model"
)

// FetchOpenIssues returns the first page of open issues in the target
// repository, in the order the API returned them. A null repository in the
// response yields an empty slice.
func (c *Client) FetchOpenIssues(ctx context.Context, target model.RepositoryTarget, first int) ([]model.Issue, error) {
	vars := QueryVariables{
		RepositoryOwner: target.Owner,
		RepositoryName:  target.Name,
		States:          []githubv4.IssueState{githubv4.IssueStateOpen},
		First:           first,
	}

	log.Debug("querying open issues", "repo", target.FullName(), "first", first)

	var q openIssuesQuery
	if err := c.gql.Query(ctx, &q, vars.toMap()); err != nil {
		return nil, fmt.Errorf("failed to query open issues in %s: %w", target.FullName(), err)
	}

	issues := q.issues()
	log.Debug("open issues fetched", "repo", target.FullName(), "count", len(issues))
	return issues, nil
}

// AddComment posts body as a new comment on the issue with the given node ID.
func (c *Client) AddComment(ctx context.Context, subjectID, body string) (model.Comment, error) {
	vars := MutationVariables{SubjectID: subjectID, Body: body}

	log.Debug("adding comment", "subject_id", subjectID)

	var m addCommentMutation
	if err := c.gql.Mutate(ctx, &m, vars.input(), nil); err != nil {
		return model.Comment{}, fmt.Errorf("failed to add comment to %s: %w", subjectID, err)
	}

	comment, err := m.comment()
	if err != nil {
		return model.Comment{}, fmt.Errorf("failed to add comment to %s: %w", subjectID, err)
	}
	return comment, nil
}
