// Package popup closes the advertising tabs MediaFire pages spawn as side
// effects of navigation and of the download click.
package popup

import (
	"context"
	"log/slog"

	"github.com/chromedp/cdproto/target"
	"github.com/chromedp/chromedp"
)

// Reaper closes every tab except the designated main tab. All failures
// are swallowed: one bad tab must never abort a reap, and a reap must
// never fail a link.
type Reaper struct {
	keep   target.ID
	logger *slog.Logger
}

// New creates a Reaper that preserves the given main tab.
func New(keep target.ID, logger *slog.Logger) *Reaper {
	return &Reaper{keep: keep, logger: logger}
}

// Reap closes every open page target other than the main tab, then
// restores focus to the main tab. Invoked after every navigation and
// after every download click, both of which tend to spawn ad popups.
func (r *Reaper) Reap(ctx context.Context) {
	infos, err := chromedp.Targets(ctx)
	if err != nil {
		r.logger.Debug("could not list tabs", "error", err)
		return
	}

	for _, id := range Victims(infos, r.keep) {
		err := chromedp.Run(ctx, chromedp.ActionFunc(func(ctx context.Context) error {
			return target.CloseTarget(id).Do(ctx)
		}))
		if err != nil {
			r.logger.Debug("could not close popup tab", "target", id, "error", err)
			continue
		}
		r.logger.Debug("closed popup tab", "target", id)
	}

	err = chromedp.Run(ctx, chromedp.ActionFunc(func(ctx context.Context) error {
		return target.ActivateTarget(r.keep).Do(ctx)
	}))
	if err != nil {
		r.logger.Debug("could not restore focus to main tab", "error", err)
	}
}

// Victims returns the page targets to close: every page except keep.
// Non-page targets (service workers, extensions) are left alone.
func Victims(infos []*target.Info, keep target.ID) []target.ID {
	var out []target.ID
	for _, info := range infos {
		if info.Type != "page" || info.TargetID == keep {
			continue
		}
		out = append(out, info.TargetID)
	}
	return out
}
