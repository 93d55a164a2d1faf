package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/brandonEsquivel/MediaFireDownloader/internal/links"
	"github.com/brandonEsquivel/MediaFireDownloader/internal/report"
)

// LinkProcessor handles one link and reports the outcome. A non-nil error
// means the browser session is unusable and the loop must stop.
type LinkProcessor interface {
	Process(ctx context.Context, url string) (bool, string, error)
}

// Loop iterates the links in file order, pausing for operator
// acknowledgment after every attempt so failures can be read before they
// scroll away and successes get their Save As dialog handled.
type Loop struct {
	proc      LinkProcessor
	gate      Gate
	rep       *report.Report
	logger    *slog.Logger
	out       io.Writer
	interrupt <-chan struct{}
}

// NewLoop creates a Loop. interrupt may be nil; when it fires the loop
// stops, whether it is between links or blocked at an acknowledgment
// prompt, keeping the outcomes recorded so far.
func NewLoop(proc LinkProcessor, gate Gate, rep *report.Report, logger *slog.Logger, out io.Writer, interrupt <-chan struct{}) *Loop {
	return &Loop{
		proc:      proc,
		gate:      gate,
		rep:       rep,
		logger:    logger,
		out:       out,
		interrupt: interrupt,
	}
}

// Run processes every link. It returns nil when the loop ran to
// completion or was interrupted; already-recorded outcomes are never
// discarded. A non-nil error means the browser session went away and the
// shutdown grace period is pointless.
func (l *Loop) Run(ctx context.Context, all []links.Link) error {
	total := len(all)
	for i, link := range all {
		select {
		case <-l.interrupt:
			l.logger.Warn("Interrupted by user.")
			return nil
		default:
		}

		fmt.Fprintln(l.out, strings.Repeat("─", 60))
		l.logger.Info(fmt.Sprintf("[%d/%d] Line %d: %s", i+1, total, link.Line, link.URL))

		ok, reason, err := l.proc.Process(ctx, link.URL)
		l.rep.Add(link, ok, reason)
		if err != nil {
			l.logger.Warn("Browser session is gone, stopping.", "error", err)
			return err
		}

		if ok {
			fmt.Fprintln(l.out)
			fmt.Fprintln(l.out, "  ► Save As dialog is open in the browser.")
			fmt.Fprintln(l.out, "    Choose your save location, then come back here.")
			if !l.await("  ► Press ENTER when you have saved the file (or skipped it)... ") {
				return nil
			}
		} else {
			l.logger.Warn(fmt.Sprintf("  ✘  FAILED — %s", reason))
			fmt.Fprintln(l.out)
			if !l.await("  ► Press ENTER to continue to the next link... ") {
				return nil
			}
		}
		fmt.Fprintln(l.out)
	}
	return nil
}

// await blocks on the gate. Returns false when the loop should stop:
// either an interrupt fired mid-wait, or operator input is gone entirely,
// which must not degrade into an unattended run.
func (l *Loop) await(msg string) bool {
	err := l.gate.Acknowledge(msg, l.interrupt)
	switch {
	case err == nil:
		return true
	case errors.Is(err, ErrInterrupted):
		l.logger.Warn("Interrupted by user.")
		return false
	default:
		l.logger.Warn("Operator input unavailable, stopping.", "error", err)
		return false
	}
}

// ConfirmShutdown blocks until the operator affirms closing the browser.
// Downloads may still be running when the loop finishes, so the browser
// stays open until an explicit "y"; empty input and "n" keep waiting, and
// anything else re-prompts with a usage hint.
func (l *Loop) ConfirmShutdown() {
	fmt.Fprintln(l.out)
	fmt.Fprintln(l.out, strings.Repeat("=", 60))
	fmt.Fprintln(l.out, "  All links have been processed.")
	fmt.Fprintln(l.out, "  The browser will stay open so your downloads can finish.")
	fmt.Fprintln(l.out)

	for {
		answer, err := l.gate.Ask("  Finish downloads and close browser? [y/N]: ")
		if err != nil {
			l.logger.Debug("operator input unavailable, closing", "error", err)
			return
		}
		switch strings.ToLower(answer) {
		case "y":
			return
		case "", "n":
			fmt.Fprintln(l.out, "  Still waiting... (check your downloads in the browser)")
		default:
			fmt.Fprintln(l.out, "  Please type  y  to close or just press ENTER to keep waiting.")
		}
	}
}
