package output

import (
	"encoding/json"
	"io"

	"github.com/spiffcs/stalenotify/internal/log"
	"github.com/spiffcs/stalenotify/internal/model"
	"github.com/spiffcs/stalenotify/internal/stale"
)

// JSONReporter stays silent while the run progresses and writes the
// summary as a single JSON document when it completes.
type JSONReporter struct {
	w      io.Writer
	Pretty bool
}

// NewJSONReporter creates a JSONReporter writing to w.
func NewJSONReporter(w io.Writer) *JSONReporter {
	return &JSONReporter{w: w}
}

func (r *JSONReporter) RepositoryStarted(model.RepositoryTarget)               {}
func (r *JSONReporter) StaleIssuesFound(model.RepositoryTarget, []model.Issue) {}
func (r *JSONReporter) CommentPosting(model.Issue)                             {}
func (r *JSONReporter) CommentPosted(model.Issue, model.Comment)               {}
func (r *JSONReporter) CommentSkipped(model.Issue)                             {}
func (r *JSONReporter) RepositoryFinished(model.RepositoryTarget)              {}

// Done writes the summary.
func (r *JSONReporter) Done(summary *stale.Summary) {
	if err := r.Encode(summary); err != nil {
		log.Error("failed to write summary", "error", err)
	}
}

// Encode writes summary as JSON.
func (r *JSONReporter) Encode(summary *stale.Summary) error {
	encoder := json.NewEncoder(r.w)
	if r.Pretty {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(summary)
}
