package output

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/xeonx/timeago"

	"github.com/spiffcs/stalenotify/internal/model"
	"github.com/spiffcs/stalenotify/internal/stale"
)

// TextReporter writes one status line per event, then a summary table.
type TextReporter struct {
	w   io.Writer
	now func() time.Time
}

// NewTextReporter creates a TextReporter. now is used to render issue ages.
func NewTextReporter(w io.Writer, now func() time.Time) *TextReporter {
	return &TextReporter{w: w, now: now}
}

func (r *TextReporter) RepositoryStarted(target model.RepositoryTarget) {
	fmt.Fprintf(r.w, "Inspecting repo: %s\n", color.New(color.Bold).Sprint(target.FullName()))
}

func (r *TextReporter) StaleIssuesFound(_ model.RepositoryTarget, issues []model.Issue) {
	count := fmt.Sprint(len(issues))
	if len(issues) > 0 {
		count = color.YellowString(count)
	}
	fmt.Fprintf(r.w, " Found %s stale issues\n", count)
}

func (r *TextReporter) CommentPosting(issue model.Issue) {
	fmt.Fprintf(r.w, "     Posting comment on issue %s (updated %s)\n", issue.URL, r.age(issue))
}

func (r *TextReporter) CommentPosted(_ model.Issue, comment model.Comment) {
	fmt.Fprintf(r.w, "     Comment posted here: %s\n", color.GreenString(comment.URL))
}

func (r *TextReporter) CommentSkipped(issue model.Issue) {
	fmt.Fprintf(r.w, "     Would comment on issue %s (updated %s)\n", issue.URL, r.age(issue))
}

func (r *TextReporter) RepositoryFinished(target model.RepositoryTarget) {
	fmt.Fprintf(r.w, "Finished processing issues in repository %s\n", target.FullName())
}

// Done writes the summary table followed by the closing line.
func (r *TextReporter) Done(summary *stale.Summary) {
	fmt.Fprintln(r.w)
	WriteSummaryTable(r.w, summary)
	fmt.Fprintln(r.w)
	fmt.Fprintln(r.w, "Done. Bye!")
}

func (r *TextReporter) age(issue model.Issue) string {
	return timeago.English.FormatReference(issue.UpdatedAt, r.now())
}
