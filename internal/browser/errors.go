package browser

import (
	"context"
	"errors"
	"strings"
)

// ErrLaunch indicates the browser binary or DevTools session could not be
// started. It is unrecoverable: the run aborts before any link is
// processed.
var ErrLaunch = errors.New("browser launch failed")

// closedPatterns are error-message fragments chromedp produces when the
// browser has gone away underneath us.
var closedPatterns = []string{
	"context canceled",
	"context deadline exceeded",
	"websocket: close",
	"target closed",
	"browser: not connected",
	"session closed",
	"page closed",
	"connection refused",
	"broken pipe",
}

// IsClosed reports whether an error indicates the browser was closed out
// from under the session, for example by the operator killing the window.
func IsClosed(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	msg := strings.ToLower(err.Error())
	for _, pattern := range closedPatterns {
		if strings.Contains(msg, pattern) {
			return true
		}
	}
	return false
}
