// Package output renders run progress and the final summary.
package output

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"github.com/spiffcs/stalenotify/internal/stale"
)

// Format represents the output format
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// ParseFormat validates a format name. An empty name selects text.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("invalid format: %s (must be text or json)", s)
	}
}

// NewReporter creates a reporter for the specified format writing to w.
func NewReporter(format Format, w io.Writer) stale.Reporter {
	switch format {
	case FormatJSON:
		return &JSONReporter{w: w, Pretty: true}
	default:
		return NewTextReporter(w, time.Now)
	}
}

// WriteAbortedSummary renders the summary of a run that stopped early. No
// reporter has emitted a summary for it.
func WriteAbortedSummary(format Format, w io.Writer, summary *stale.Summary) error {
	if format == FormatJSON {
		return (&JSONReporter{w: w, Pretty: true}).Encode(summary)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, color.RedString("Run aborted: %s", summary.Error))
	fmt.Fprintln(w)
	WriteSummaryTable(w, summary)
	return nil
}

// Ensure reporters implement stale.Reporter.
var (
	_ stale.Reporter = (*TextReporter)(nil)
	_ stale.Reporter = (*JSONReporter)(nil)
)
