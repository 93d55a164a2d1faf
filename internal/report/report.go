// Package report accumulates per-link outcomes and renders the end-of-run
// session summary.
package report

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/brandonEsquivel/MediaFireDownloader/internal/links"
)

// Outcome is the result of processing one link. Immutable once recorded.
type Outcome struct {
	Link   links.Link
	OK     bool
	Reason string
}

// Report collects outcomes in processing order, which is file order.
type Report struct {
	LinksFile string
	Total     int // non-blank lines in the input file
	outcomes  []Outcome
}

// New creates a Report for a run over the given links file.
func New(linksFile string, total int) *Report {
	return &Report{LinksFile: linksFile, Total: total}
}

// Add records the outcome for one link.
func (r *Report) Add(l links.Link, ok bool, reason string) {
	r.outcomes = append(r.outcomes, Outcome{Link: l, OK: ok, Reason: reason})
}

// Outcomes returns the recorded outcomes in file order.
func (r *Report) Outcomes() []Outcome {
	return r.outcomes
}

// Processed returns how many links were attempted. Smaller than Total when
// the run was interrupted.
func (r *Report) Processed() int {
	return len(r.outcomes)
}

// Successes counts the links whose download click went through.
func (r *Report) Successes() int {
	n := 0
	for _, o := range r.outcomes {
		if o.OK {
			n++
		}
	}
	return n
}

// Failures returns the failed outcomes in file order.
func (r *Report) Failures() []Outcome {
	var out []Outcome
	for _, o := range r.outcomes {
		if !o.OK {
			out = append(out, o)
		}
	}
	return out
}

// Render produces the fixed-format session summary block.
func (r *Report) Render(now time.Time) string {
	failures := r.Failures()

	lines := []string{
		"",
		"╔══════════════════════════════════════════════════╗",
		"║               DOWNLOAD SESSION SUMMARY           ║",
		"╚══════════════════════════════════════════════════╝",
		fmt.Sprintf("  Completed at          : %s", now.Format("2006-01-02 15:04:05")),
		fmt.Sprintf("  Links file            : %s", r.LinksFile),
		fmt.Sprintf("  Total links in file   : %d", r.Total),
		fmt.Sprintf("  Links processed       : %d", r.Processed()),
		fmt.Sprintf("  Successful clicks     : %d", r.Successes()),
		fmt.Sprintf("  Failed / broken links : %d", len(failures)),
	}

	if len(failures) > 0 {
		lines = append(lines, "", "  ── Failed Links ──")
		for _, o := range failures {
			lines = append(lines,
				fmt.Sprintf("    Line %4d: %s", o.Link.Line, o.Link.URL),
				fmt.Sprintf("             Reason : %s", o.Reason),
			)
		}
	}

	lines = append(lines, strings.Repeat("─", 52), "")
	return strings.Join(lines, "\n")
}

// Write renders the summary to w and appends the same block verbatim to
// the log file.
func (r *Report) Write(w io.Writer, logFile string, now time.Time) error {
	summary := r.Render(now)

	fmt.Fprintln(w, summary)

	f, err := os.OpenFile(logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("could not open log file for summary: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(summary + "\n"); err != nil {
		return fmt.Errorf("could not append summary to log file: %w", err)
	}
	return nil
}
