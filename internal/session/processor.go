package session

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/brandonEsquivel/MediaFireDownloader/internal/browser"
	"github.com/brandonEsquivel/MediaFireDownloader/internal/page"
)

// clickSettle is how long to wait after the download click before handing
// control back to the operator. A heuristic, not a guarantee: the Save As
// dialog's render time is unbounded and the real synchronization point is
// the operator acknowledgment that follows.
const clickSettle = 1500 * time.Millisecond

// PageDriver is the per-page capability the processor drives. Implemented
// by page.Navigator; stubbed in tests.
type PageDriver interface {
	Navigate(ctx context.Context, url string) error
	Invalid(ctx context.Context) (bool, error)
	WaitControl(ctx context.Context)
	Locate(ctx context.Context) *page.Control
	Activate(ctx context.Context, c *page.Control) error
}

// Reaper closes popup tabs, keeping only the main tab.
type Reaper interface {
	Reap(ctx context.Context)
}

// Processor runs the per-link routine: navigate, clean up popups,
// validate, find the download button, click it. Every failure is terminal
// for that link; there are no retries.
type Processor struct {
	page   PageDriver
	reaper Reaper
	logger *slog.Logger
	settle time.Duration
}

// NewProcessor creates a Processor over the given page driver and reaper.
func NewProcessor(p PageDriver, r Reaper, logger *slog.Logger) *Processor {
	return &Processor{page: p, reaper: r, logger: logger, settle: clickSettle}
}

// Process handles one link and returns whether the download click went
// through, with a human-readable reason on failure. A non-nil error means
// the browser session itself is gone and remaining links cannot be
// processed; the outcome pair is still valid for recording. After a
// successful return the Save As dialog is (or is about to be) on screen;
// the caller waits for the operator before processing the next link.
func (p *Processor) Process(ctx context.Context, url string) (bool, string, error) {
	if err := p.page.Navigate(ctx, url); err != nil {
		if errors.Is(err, page.ErrTimeout) {
			return false, "page load timed out", nil
		}
		if p.sessionGone(ctx, err) {
			return false, "browser was closed", err
		}
		return false, err.Error(), nil
	}

	// Kill any popup tabs that opened during page load.
	p.reaper.Reap(ctx)

	invalid, err := p.page.Invalid(ctx)
	if err != nil {
		if p.sessionGone(ctx, err) {
			return false, "browser was closed", err
		}
		// Best effort: an unreadable page falls through to the button
		// search, which produces its own failure if the page is broken.
		p.logger.Debug("could not inspect page content", "error", err)
	}
	if invalid {
		return false, "file reported invalid or deleted", nil
	}

	p.page.WaitControl(ctx)

	ctrl := p.page.Locate(ctx)
	if ctrl == nil {
		return false, "download control not found", nil
	}

	if err := p.page.Activate(ctx, ctrl); err != nil {
		if p.sessionGone(ctx, err) {
			return false, "browser was closed", err
		}
		return false, err.Error(), nil
	}

	// Give the Save As dialog time to render before the console prints
	// its acknowledgment prompt.
	time.Sleep(p.settle)

	// The click itself may spawn an ad popup.
	p.reaper.Reap(ctx)

	return true, "OK", nil
}

// sessionGone reports whether a step failure means the browser was closed
// out from under the run, for example by the operator killing the window.
// A plain per-step deadline is not fatal: bounded waits convert to a
// reported failure for that link only.
func (p *Processor) sessionGone(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return true
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	return browser.IsClosed(err)
}
