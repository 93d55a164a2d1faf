package page

import (
	"context"
	"fmt"
	"strconv"

	"github.com/chromedp/chromedp"
)

// Control is a resolved download button, identified by the locator that
// found it.
type Control struct {
	Strategy string
	Selector string
}

// WaitControl waits up to the page timeout for the primary locator to be
// present. Best-effort: a timeout here is not fatal, the ordered search in
// Locate still runs afterwards.
func (n *Navigator) WaitControl(ctx context.Context) {
	tctx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	if err := chromedp.Run(tctx, chromedp.WaitReady(n.locators[0].CSS, chromedp.ByQuery)); err != nil {
		n.logger.Debug("primary locator did not appear in time", "selector", n.locators[0].CSS, "error", err)
	}
}

// Locate tries each locator in order and returns the first one resolving
// to a visible element. Most-specific locators come first, which biases
// toward the intended button over decorative lookalikes. Returns nil when
// no locator matches. Per-locator probe failures are skipped so one bad
// selector never hides a later match.
func (n *Navigator) Locate(ctx context.Context) *Control {
	for _, loc := range n.locators {
		visible, err := n.probe(ctx, loc.CSS)
		if err != nil {
			n.logger.Debug("locator probe failed", "strategy", loc.Name, "error", err)
			continue
		}
		if visible {
			n.logger.Debug("download button found", "strategy", loc.Name, "selector", loc.CSS)
			return &Control{Strategy: loc.Name, Selector: loc.CSS}
		}
	}
	return nil
}

// Activate clicks the control, which triggers the browser's native Save
// As dialog.
func (n *Navigator) Activate(ctx context.Context, c *Control) error {
	tctx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	if err := chromedp.Run(tctx, chromedp.Click(c.Selector, chromedp.ByQuery, chromedp.NodeVisible)); err != nil {
		return fmt.Errorf("could not click download button: %w", err)
	}
	return nil
}

// probeVisible checks selector presence and visibility in the live page.
func (n *Navigator) probeVisible(ctx context.Context, css string) (bool, error) {
	script := fmt.Sprintf(`(function() {
		const el = document.querySelector(%s);
		if (!el) {
			return false;
		}
		return el.offsetWidth > 0 || el.offsetHeight > 0 || el.getClientRects().length > 0;
	})()`, strconv.Quote(css))

	var visible bool
	if err := chromedp.Run(ctx, chromedp.Evaluate(script, &visible)); err != nil {
		return false, err
	}
	return visible, nil
}
