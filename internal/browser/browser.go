// Package browser owns the single Chrome session used for all links.
package browser

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/chromedp/cdproto/target"
	"github.com/chromedp/chromedp"

	"github.com/brandonEsquivel/MediaFireDownloader/internal/config"
)

// Session is the single browser instance shared by the whole run. Ctx is
// the chromedp context of the main tab; MainTarget identifies the one
// authoritative tab, every other tab is transient and gets reaped.
type Session struct {
	Ctx        context.Context
	MainTarget target.ID

	allocCancel context.CancelFunc
	ctxCancel   context.CancelFunc
	closed      bool
}

// New launches Chrome and returns the session. The browser runs incognito
// with the automation banner suppressed, and download prompting is left at
// its default so the native Save As dialog appears on every download.
// Headless mode is never used: the operator has to see that dialog.
func New(cfg *config.Config, logger *slog.Logger) (*Session, error) {
	execPath := cfg.ExecPath
	if execPath == "" {
		execPath = Detect()
		if execPath == "" {
			return nil, fmt.Errorf("%w: no Chrome or Chromium executable found", ErrLaunch)
		}
		logger.Debug("auto-detected browser", "path", execPath)
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.ExecPath(execPath),
		chromedp.Flag("headless", false),
		chromedp.Flag("incognito", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("exclude-switches", "enable-automation"),
		chromedp.Flag("use-automation-extension", false),
		chromedp.WindowSize(cfg.WindowWidth, cfg.WindowHeight),
	)
	if cfg.ProfilePath != "" {
		opts = append(opts, chromedp.UserDataDir(cfg.ProfilePath))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), opts...)
	ctx, ctxCancel := chromedp.NewContext(allocCtx)

	// Start the browser now so a missing or broken binary fails here
	// rather than on the first navigation.
	if err := chromedp.Run(ctx); err != nil {
		ctxCancel()
		allocCancel()
		return nil, fmt.Errorf("%w: %v", ErrLaunch, err)
	}

	c := chromedp.FromContext(ctx)
	if c == nil || c.Target == nil {
		ctxCancel()
		allocCancel()
		return nil, fmt.Errorf("%w: browser started without a main tab", ErrLaunch)
	}

	return &Session{
		Ctx:         ctx,
		MainTarget:  c.Target.TargetID,
		allocCancel: allocCancel,
		ctxCancel:   ctxCancel,
	}, nil
}

// Close terminates the browser. Safe to call more than once.
func (s *Session) Close() {
	if s.closed {
		return
	}
	s.closed = true
	if s.ctxCancel != nil {
		s.ctxCancel()
	}
	if s.allocCancel != nil {
		s.allocCancel()
	}
}
