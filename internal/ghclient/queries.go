package ghclient

import (
	"errors"
	"fmt"

	"github.com/shurcooL/githubv4"

	"github.com/spiffcs/stalenotify/internal/model"
)

// ErrNoComment is returned when the add comment mutation succeeds without
// returning the created comment.
var ErrNoComment = errors.New("mutation returned no comment")

// QueryVariables are the variables of the open issues query.
type QueryVariables struct {
	RepositoryOwner string
	RepositoryName  string
	States          []githubv4.IssueState
	First           int
}

func (v QueryVariables) toMap() map[string]interface{} {
	return map[string]interface{}{
		"repositoryOwner": githubv4.String(v.RepositoryOwner),
		"repositoryName":  githubv4.String(v.RepositoryName),
		"issuesStates":    v.States,
		"issuesFirst":     githubv4.Int(v.First),
	}
}

// MutationVariables are the inputs of the add comment mutation.
type MutationVariables struct {
	SubjectID string
	Body      string
}

func (v MutationVariables) input() githubv4.AddCommentInput {
	return githubv4.AddCommentInput{
		SubjectID: githubv4.ID(v.SubjectID),
		Body:      githubv4.String(v.Body),
	}
}

// issueNode mirrors repository.issues.nodes.
type issueNode struct {
	ID        githubv4.ID
	UpdatedAt githubv4.DateTime
	URL       githubv4.URI
}

// openIssuesQuery is the QueryResult shape:
//
//	repository(name, owner) { issues(states, first) { nodes { id updatedAt url } } }
type openIssuesQuery struct {
	Repository *struct {
		Issues struct {
			Nodes []issueNode
		} `graphql:"issues(states: $issuesStates, first: $issuesFirst)"`
	} `graphql:"repository(name: $repositoryName, owner: $repositoryOwner)"`
}

// issues converts the query result into model issues, treating any
// missing level of the response as an empty result.
func (q *openIssuesQuery) issues() []model.Issue {
	if q == nil || q.Repository == nil {
		return nil
	}

	nodes := q.Repository.Issues.Nodes
	issues := make([]model.Issue, 0, len(nodes))
	for _, n := range nodes {
		issue := model.Issue{
			ID:        nodeID(n.ID),
			UpdatedAt: n.UpdatedAt.Time.UTC(),
		}
		if n.URL.URL != nil {
			issue.URL = n.URL.String()
		}
		issues = append(issues, issue)
	}
	return issues
}

// addCommentMutation is the MutationResult shape:
//
//	addComment(input) { commentEdge { node { url } } }
//
// Every level is a pointer so a null payload is distinguishable from an
// empty one.
type addCommentMutation struct {
	AddComment *struct {
		CommentEdge *struct {
			Node *struct {
				URL githubv4.URI
			}
		}
	} `graphql:"addComment(input: $input)"`
}

// comment converts the mutation result. A missing payload or comment URL
// means the comment was not created.
func (m *addCommentMutation) comment() (model.Comment, error) {
	if m.AddComment == nil || m.AddComment.CommentEdge == nil || m.AddComment.CommentEdge.Node == nil {
		return model.Comment{}, ErrNoComment
	}
	u := m.AddComment.CommentEdge.Node.URL
	if u.URL == nil || u.String() == "" {
		return model.Comment{}, ErrNoComment
	}
	return model.Comment{URL: u.String()}, nil
}

func nodeID(id githubv4.ID) string {
	switch v := id.(type) {
	case string:
		return v
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}
