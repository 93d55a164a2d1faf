package browser

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

// TestIsClosed tests classification of browser-gone errors.
func TestIsClosed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "context canceled", err: context.Canceled, want: true},
		{name: "deadline exceeded", err: context.DeadlineExceeded, want: true},
		{name: "wrapped cancellation", err: fmt.Errorf("run: %w", context.Canceled), want: true},
		{name: "websocket close", err: errors.New("websocket: close 1006 (abnormal closure)"), want: true},
		{name: "target closed", err: errors.New("Target closed"), want: true},
		{name: "connection refused", err: errors.New("dial tcp 127.0.0.1:9222: connection refused"), want: true},
		{name: "unrelated error", err: errors.New("element not visible"), want: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := IsClosed(tt.err); got != tt.want {
				t.Errorf("IsClosed(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

// TestErrLaunchWrapping tests that launch failures stay matchable.
func TestErrLaunchWrapping(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("%w: exec: no such file", ErrLaunch)
	if !errors.Is(err, ErrLaunch) {
		t.Error("wrapped launch error should match ErrLaunch")
	}
}
