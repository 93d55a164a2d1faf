package page

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/brandonEsquivel/MediaFireDownloader/internal/config"
)

// ErrTimeout indicates the page did not load within the configured
// timeout.
var ErrTimeout = errors.New("page load timed out")

// ErrNavigation wraps any lower-level fault while loading the page.
var ErrNavigation = errors.New("navigation failed")

// Navigator performs all per-page browser work against the main tab.
type Navigator struct {
	timeout  time.Duration
	locators []config.Locator
	phrases  []string
	logger   *slog.Logger

	// probe reports whether the selector resolves to a visible element.
	// Replaceable in tests.
	probe func(ctx context.Context, css string) (bool, error)
}

// New creates a Navigator from the session configuration.
func New(cfg *config.Config, logger *slog.Logger) *Navigator {
	n := &Navigator{
		timeout:  cfg.PageTimeout,
		locators: cfg.Locators,
		phrases:  cfg.InvalidPhrases,
		logger:   logger,
	}
	n.probe = n.probeVisible
	return n
}

// Navigate loads url in the active tab, bounded by the page timeout.
func (n *Navigator) Navigate(ctx context.Context, url string) error {
	tctx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	if err := chromedp.Run(tctx, chromedp.Navigate(url)); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("%w after %s", ErrTimeout, n.timeout)
		}
		return fmt.Errorf("%w: %v", ErrNavigation, err)
	}
	return nil
}

// Invalid reports whether the rendered page flags the file as invalid,
// deleted, or otherwise unavailable.
func (n *Navigator) Invalid(ctx context.Context) (bool, error) {
	var html string
	if err := chromedp.Run(ctx, chromedp.OuterHTML("html", &html, chromedp.ByQuery)); err != nil {
		return false, fmt.Errorf("could not read page content: %w", err)
	}
	return MatchPhrase(html, n.phrases) != "", nil
}

// MatchPhrase returns the first phrase found in pageText, comparing
// case-insensitively, or empty string when none match. The check is a
// plain substring scan over the whole page, same as the page-source scan
// it replaces; a page merely mentioning a phrase in unrelated content will
// match too.
func MatchPhrase(pageText string, phrases []string) string {
	lower := strings.ToLower(pageText)
	for _, p := range phrases {
		if strings.Contains(lower, strings.ToLower(p)) {
			return p
		}
	}
	return ""
}
