package log

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestTeeHandlerLevels tests that records reach only the handlers whose
// level admits them.
func TestTeeHandlerLevels(t *testing.T) {
	t.Parallel()

	var console, file bytes.Buffer
	h := NewTeeHandler(
		slog.NewTextHandler(&console, &slog.HandlerOptions{Level: slog.LevelInfo}),
		slog.NewTextHandler(&file, &slog.HandlerOptions{Level: slog.LevelDebug}),
	)
	logger := slog.New(h)

	logger.Debug("popup closed")
	logger.Info("link processed")

	if strings.Contains(console.String(), "popup closed") {
		t.Error("debug record should not reach the console handler")
	}
	if !strings.Contains(console.String(), "link processed") {
		t.Error("info record should reach the console handler")
	}
	if !strings.Contains(file.String(), "popup closed") {
		t.Error("debug record should reach the file handler")
	}
	if !strings.Contains(file.String(), "link processed") {
		t.Error("info record should reach the file handler")
	}
}

// TestTeeHandlerWithAttrs tests that attributes propagate to both sinks.
func TestTeeHandlerWithAttrs(t *testing.T) {
	t.Parallel()

	var console, file bytes.Buffer
	h := NewTeeHandler(
		slog.NewTextHandler(&console, &slog.HandlerOptions{Level: slog.LevelInfo}),
		slog.NewTextHandler(&file, &slog.HandlerOptions{Level: slog.LevelDebug}),
	)
	logger := slog.New(h).With("line", 7)

	logger.Info("navigating")

	for name, out := range map[string]string{"console": console.String(), "file": file.String()} {
		if !strings.Contains(out, "line=7") {
			t.Errorf("%s output missing attribute: %q", name, out)
		}
	}
}

// TestNew tests logger construction and the append-only file sink.
func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("appends to existing log file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "download_log.txt")
		if err := os.WriteFile(path, []byte("previous session\n"), 0o644); err != nil {
			t.Fatal(err)
		}

		var console bytes.Buffer
		logger, closer, err := New(&console, path, false)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		logger.Info("session started")
		if err := closer.Close(); err != nil {
			t.Fatal(err)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(string(data), "previous session") {
			t.Error("existing log content was overwritten")
		}
		if !strings.Contains(string(data), "session started") {
			t.Error("new record missing from log file")
		}
	})

	t.Run("verbose enables console debug", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "download_log.txt")
		var console bytes.Buffer
		logger, closer, err := New(&console, path, true)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		defer closer.Close()

		logger.Debug("closed extra tab")
		if !strings.Contains(console.String(), "closed extra tab") {
			t.Error("verbose console should include debug records")
		}
	})

	t.Run("unwritable log path returns error", func(t *testing.T) {
		t.Parallel()

		var console bytes.Buffer
		if _, _, err := New(&console, filepath.Join(t.TempDir(), "missing", "x.log"), false); err == nil {
			t.Error("expected error for unwritable log path")
		}
	})
}
