package output

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"github.com/spiffcs/stalenotify/internal/stale"
)

// ansiRegex matches ANSI escape sequences
var ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*m`)

var headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252"))

// stripAnsi removes ANSI escape sequences from a string
func stripAnsi(s string) string {
	return ansiRegex.ReplaceAllString(s, "")
}

// displayWidth returns the visible width of a string in terminal columns
func displayWidth(s string) int {
	return runewidth.StringWidth(stripAnsi(s))
}

// padRight pads a string with spaces to reach the target visible width
func padRight(s string, targetWidth int) string {
	w := displayWidth(s)
	if w >= targetWidth {
		return s
	}
	return s + strings.Repeat(" ", targetWidth-w)
}

type summaryRow struct {
	repo, stale, commented, status string
}

// WriteSummaryTable writes one row per repository plus a totals row.
func WriteSummaryTable(w io.Writer, summary *stale.Summary) {
	if summary == nil || len(summary.Repositories) == 0 {
		fmt.Fprintln(w, "No repositories inspected.")
		return
	}

	header := summaryRow{"Repository", "Stale", "Commented", "Status"}
	rows := make([]summaryRow, 0, len(summary.Repositories))
	for _, r := range summary.Repositories {
		rows = append(rows, summaryRow{
			repo:      r.Repository,
			stale:     fmt.Sprint(r.Stale),
			commented: fmt.Sprint(countPosted(r)),
			status:    repositoryStatus(r, summary.DryRun),
		})
	}
	totals := summaryRow{
		repo:      "Total",
		stale:     fmt.Sprint(summary.TotalStale()),
		commented: fmt.Sprint(summary.TotalCommented()),
	}

	widths := [3]int{}
	for _, row := range append([]summaryRow{header, totals}, rows...) {
		widths[0] = max(widths[0], displayWidth(row.repo))
		widths[1] = max(widths[1], displayWidth(row.stale))
		widths[2] = max(widths[2], displayWidth(row.commented))
	}

	writeRow := func(row summaryRow) {
		line := fmt.Sprintf("%s  %s  %s  %s",
			padRight(row.repo, widths[0]),
			padRight(row.stale, widths[1]),
			padRight(row.commented, widths[2]),
			row.status)
		fmt.Fprintln(w, strings.TrimRight(line, " "))
	}

	fmt.Fprintln(w, headerStyle.Render(strings.TrimRight(fmt.Sprintf("%s  %s  %s  %s",
		padRight(header.repo, widths[0]),
		padRight(header.stale, widths[1]),
		padRight(header.commented, widths[2]),
		header.status), " ")))
	fmt.Fprintln(w, strings.Repeat("-", widths[0]+widths[1]+widths[2]+6+len(header.status)))
	for _, row := range rows {
		writeRow(row)
	}
	writeRow(totals)
}

func countPosted(r stale.RepositoryResult) int {
	n := 0
	for _, c := range r.Comments {
		if c.CommentURL != "" {
			n++
		}
	}
	return n
}

func repositoryStatus(r stale.RepositoryResult, dryRun bool) string {
	switch {
	case r.FetchError != "":
		return color.RedString("fetch failed")
	case dryRun:
		return color.CyanString("dry run")
	default:
		return color.GreenString("ok")
	}
}
