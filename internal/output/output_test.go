package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"github.com/spiffcs/stalenotify/internal/model"
	"github.com/spiffcs/stalenotify/internal/stale"
)

var testNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func init() {
	color.NoColor = true
}

func testSummary() *stale.Summary {
	return &stale.Summary{
		StartedAt:  testNow,
		FinishedAt: testNow.Add(time.Second),
		Repositories: []stale.RepositoryResult{
			{
				Repository: "octo/hello",
				Cutoff:     testNow.Add(-12 * time.Hour),
				Stale:      2,
				Comments: []stale.CommentResult{
					{IssueID: "A", IssueURL: "https://github.com/octo/hello/issues/1", CommentURL: "https://github.com/octo/hello/issues/1#issuecomment-1"},
					{IssueID: "B", IssueURL: "https://github.com/octo/hello/issues/2", CommentURL: "https://github.com/octo/hello/issues/2#issuecomment-2"},
				},
			},
			{
				Repository: "octo/broken-repository",
				Comments:   []stale.CommentResult{},
				FetchError: "network down",
			},
		},
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{"", FormatText, false},
		{"text", FormatText, false},
		{"json", FormatJSON, false},
		{"yaml", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormat(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestTextReporterLines(t *testing.T) {
	var buf bytes.Buffer
	r := NewTextReporter(&buf, func() time.Time { return testNow })

	target := model.RepositoryTarget{Owner: "octo", Name: "hello"}
	issue := model.Issue{ID: "A", UpdatedAt: testNow.Add(-13 * time.Hour), URL: "https://github.com/octo/hello/issues/1"}

	r.RepositoryStarted(target)
	r.StaleIssuesFound(target, []model.Issue{issue})
	r.CommentPosting(issue)
	r.CommentPosted(issue, model.Comment{URL: "https://github.com/octo/hello/issues/1#issuecomment-1"})
	r.RepositoryFinished(target)

	lines := strings.Split(strings.TrimRight(stripAnsi(buf.String()), "\n"), "\n")
	if len(lines) != 5 {
		t.Fatalf("expected 5 lines, got %d: %q", len(lines), lines)
	}

	if lines[0] != "Inspecting repo: octo/hello" {
		t.Errorf("line 0 = %q", lines[0])
	}
	if lines[1] != " Found 1 stale issues" {
		t.Errorf("line 1 = %q", lines[1])
	}
	if !strings.HasPrefix(lines[2], "     Posting comment on issue https://github.com/octo/hello/issues/1 (updated ") ||
		!strings.Contains(lines[2], "ago") {
		t.Errorf("line 2 = %q", lines[2])
	}
	if lines[3] != "     Comment posted here: https://github.com/octo/hello/issues/1#issuecomment-1" {
		t.Errorf("line 3 = %q", lines[3])
	}
	if lines[4] != "Finished processing issues in repository octo/hello" {
		t.Errorf("line 4 = %q", lines[4])
	}
}

func TestTextReporterDryRunLine(t *testing.T) {
	var buf bytes.Buffer
	r := NewTextReporter(&buf, func() time.Time { return testNow })

	r.CommentSkipped(model.Issue{ID: "A", UpdatedAt: testNow.Add(-20 * time.Hour), URL: "https://github.com/octo/hello/issues/1"})

	if !strings.Contains(buf.String(), "Would comment on issue https://github.com/octo/hello/issues/1") {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestTextReporterDone(t *testing.T) {
	var buf bytes.Buffer
	r := NewTextReporter(&buf, func() time.Time { return testNow })

	r.Done(testSummary())

	out := stripAnsi(buf.String())
	for _, want := range []string{"Repository", "octo/hello", "octo/broken-repository", "fetch failed", "Total", "Done. Bye!"} {
		if !strings.Contains(out, want) {
			t.Errorf("output should contain %q:\n%s", want, out)
		}
	}
	if !strings.HasSuffix(out, "Done. Bye!\n") {
		t.Errorf("output should end with the closing line:\n%s", out)
	}
}

func TestSummaryTableAlignment(t *testing.T) {
	var buf bytes.Buffer
	WriteSummaryTable(&buf, testSummary())

	lines := strings.Split(strings.TrimRight(stripAnsi(buf.String()), "\n"), "\n")
	// header, rule, two repositories, totals
	if len(lines) != 5 {
		t.Fatalf("expected 5 lines, got %d: %q", len(lines), lines)
	}

	col := strings.Index(lines[0], "Stale")
	if col < 0 {
		t.Fatalf("header missing Stale column: %q", lines[0])
	}
	for _, line := range []string{lines[2], lines[3], lines[4]} {
		if len(line) <= col || line[col-2:col] != "  " {
			t.Errorf("row not aligned to Stale column at %d: %q", col, line)
		}
	}
	if !strings.HasPrefix(lines[4], "Total") || !strings.Contains(lines[4], "2") {
		t.Errorf("unexpected totals row %q", lines[4])
	}
}

func TestSummaryTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	WriteSummaryTable(&buf, &stale.Summary{})
	if !strings.Contains(buf.String(), "No repositories inspected.") {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestJSONReporter(t *testing.T) {
	var buf bytes.Buffer
	r := NewJSONReporter(&buf)

	target := model.RepositoryTarget{Owner: "octo", Name: "hello"}
	r.RepositoryStarted(target)
	r.StaleIssuesFound(target, nil)
	r.RepositoryFinished(target)
	if buf.Len() != 0 {
		t.Fatalf("JSON reporter should be silent until Done, got %q", buf.String())
	}

	r.Done(testSummary())

	var decoded stale.Summary
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, buf.String())
	}
	if len(decoded.Repositories) != 2 {
		t.Fatalf("expected 2 repositories, got %d", len(decoded.Repositories))
	}
	if decoded.Repositories[0].Comments[1].CommentURL != "https://github.com/octo/hello/issues/2#issuecomment-2" {
		t.Errorf("unexpected comment %+v", decoded.Repositories[0].Comments[1])
	}
	if decoded.Repositories[1].FetchError != "network down" {
		t.Errorf("unexpected fetch error %q", decoded.Repositories[1].FetchError)
	}
}

func TestNewReporter(t *testing.T) {
	var buf bytes.Buffer
	if _, ok := NewReporter(FormatJSON, &buf).(*JSONReporter); !ok {
		t.Error("expected JSONReporter for json format")
	}
	if _, ok := NewReporter(FormatText, &buf).(*TextReporter); !ok {
		t.Error("expected TextReporter for text format")
	}
}

func TestWriteAbortedSummary(t *testing.T) {
	summary := testSummary()
	summary.Error = "failed to comment on issue"

	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		if err := WriteAbortedSummary(FormatText, &buf, summary); err != nil {
			t.Fatalf("WriteAbortedSummary() error: %v", err)
		}
		out := buf.String()
		for _, want := range []string{"Run aborted: failed to comment on issue", "octo/hello", "Total"} {
			if !strings.Contains(out, want) {
				t.Errorf("output should contain %q:\n%s", want, out)
			}
		}
		if strings.Contains(out, "Done. Bye!") {
			t.Errorf("aborted summary should not say goodbye:\n%s", out)
		}
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		if err := WriteAbortedSummary(FormatJSON, &buf, summary); err != nil {
			t.Fatalf("WriteAbortedSummary() error: %v", err)
		}
		var got stale.Summary
		if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if got.Error != summary.Error || len(got.Repositories) != len(summary.Repositories) {
			t.Errorf("decoded summary %+v does not match", got)
		}
	})
}
