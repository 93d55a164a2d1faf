package session

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/brandonEsquivel/MediaFireDownloader/internal/links"
	"github.com/brandonEsquivel/MediaFireDownloader/internal/report"
)

// scriptedGate replays canned operator input.
type scriptedGate struct {
	answers []string
	ackErr  error
	acks    int
	asks    []string
}

func (g *scriptedGate) Acknowledge(msg string, cancel <-chan struct{}) error {
	g.acks++
	return g.ackErr
}

func (g *scriptedGate) Ask(prompt string) (string, error) {
	g.asks = append(g.asks, prompt)
	if len(g.answers) == 0 {
		return "y", nil // never hang a test
	}
	answer := g.answers[0]
	g.answers = g.answers[1:]
	return answer, nil
}

// interruptingGate simulates Ctrl-C arriving while the loop is blocked at
// the acknowledgment prompt: the first wait fires the interrupt channel
// itself and then honors it.
type interruptingGate struct {
	interrupt chan struct{}
	acks      int
}

func (g *interruptingGate) Acknowledge(msg string, cancel <-chan struct{}) error {
	g.acks++
	close(g.interrupt)
	<-cancel
	return ErrInterrupted
}

func (g *interruptingGate) Ask(prompt string) (string, error) {
	return "y", nil
}

// stubProcessor returns a fixed outcome per URL.
type stubProcessor struct {
	outcomes map[string]bool
	reasons  map[string]string
	fatal    map[string]error
	calls    []string
}

func (p *stubProcessor) Process(ctx context.Context, url string) (bool, string, error) {
	p.calls = append(p.calls, url)
	if err := p.fatal[url]; err != nil {
		return false, "browser was closed", err
	}
	if p.outcomes[url] {
		return true, "OK", nil
	}
	reason := p.reasons[url]
	if reason == "" {
		reason = "download control not found"
	}
	return false, reason, nil
}

func testLinks(urls ...string) []links.Link {
	out := make([]links.Link, len(urls))
	for i, u := range urls {
		out[i] = links.Link{Ordinal: i + 1, Line: i + 1, URL: u}
	}
	return out
}

// TestLoopRun tests the operator-paced link loop.
func TestLoopRun(t *testing.T) {
	t.Parallel()

	t.Run("records one outcome per link in file order", func(t *testing.T) {
		t.Parallel()

		all := testLinks("https://a", "https://b", "https://c")
		proc := &stubProcessor{outcomes: map[string]bool{"https://a": true, "https://c": true}}
		gate := &scriptedGate{}
		rep := report.New("links.txt", len(all))
		var out bytes.Buffer

		if err := NewLoop(proc, gate, rep, discardLogger(), &out, nil).Run(context.Background(), all); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if rep.Processed() != 3 {
			t.Fatalf("expected 3 outcomes, got %d", rep.Processed())
		}
		if rep.Successes() != 2 {
			t.Errorf("expected 2 successes, got %d", rep.Successes())
		}
		got := rep.Outcomes()
		for i, want := range []string{"https://a", "https://b", "https://c"} {
			if got[i].Link.URL != want {
				t.Errorf("outcome %d: expected %s, got %s", i, want, got[i].Link.URL)
			}
		}
	})

	t.Run("acknowledges after every attempt, success or failure", func(t *testing.T) {
		t.Parallel()

		all := testLinks("https://a", "https://b")
		proc := &stubProcessor{outcomes: map[string]bool{"https://a": true}}
		gate := &scriptedGate{}
		rep := report.New("links.txt", len(all))
		var out bytes.Buffer

		if err := NewLoop(proc, gate, rep, discardLogger(), &out, nil).Run(context.Background(), all); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if gate.acks != 2 {
			t.Errorf("expected 2 acknowledgments, got %d", gate.acks)
		}
	})

	t.Run("interrupt stops before the next link and keeps outcomes", func(t *testing.T) {
		t.Parallel()

		all := testLinks("https://a", "https://b")
		proc := &stubProcessor{outcomes: map[string]bool{"https://a": true}}
		gate := &scriptedGate{}
		rep := report.New("links.txt", len(all))
		var out bytes.Buffer

		interrupt := make(chan struct{})
		close(interrupt)

		if err := NewLoop(proc, gate, rep, discardLogger(), &out, interrupt).Run(context.Background(), all); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(proc.calls) != 0 {
			t.Errorf("expected no links processed after interrupt, got %d", len(proc.calls))
		}
		if rep.Processed() != 0 {
			t.Errorf("expected 0 outcomes, got %d", rep.Processed())
		}
	})

	t.Run("interrupt during the acknowledgment wait stops immediately", func(t *testing.T) {
		t.Parallel()

		all := testLinks("https://a", "https://b")
		proc := &stubProcessor{outcomes: map[string]bool{"https://a": true, "https://b": true}}
		gate := &interruptingGate{interrupt: make(chan struct{})}
		rep := report.New("links.txt", len(all))
		var out bytes.Buffer

		if err := NewLoop(proc, gate, rep, discardLogger(), &out, gate.interrupt).Run(context.Background(), all); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		// The interrupt fired while blocked at the first prompt: the
		// second link is never processed, the first outcome is kept.
		if len(proc.calls) != 1 {
			t.Errorf("expected 1 link processed, got %d", len(proc.calls))
		}
		if gate.acks != 1 {
			t.Errorf("expected 1 acknowledgment wait, got %d", gate.acks)
		}
		if rep.Processed() != 1 {
			t.Errorf("expected 1 outcome kept, got %d", rep.Processed())
		}
	})

	t.Run("exhausted operator input stops instead of running unattended", func(t *testing.T) {
		t.Parallel()

		all := testLinks("https://a", "https://b", "https://c")
		proc := &stubProcessor{outcomes: map[string]bool{"https://a": true, "https://b": true, "https://c": true}}
		gate := &scriptedGate{ackErr: io.EOF}
		rep := report.New("links.txt", len(all))
		var out bytes.Buffer

		if err := NewLoop(proc, gate, rep, discardLogger(), &out, nil).Run(context.Background(), all); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		// A dead stdin must not turn the run unattended: the loop stops
		// after the first link instead of clicking through the rest.
		if len(proc.calls) != 1 {
			t.Errorf("expected 1 link processed, got %d", len(proc.calls))
		}
		if rep.Processed() != 1 {
			t.Errorf("expected 1 outcome, got %d", rep.Processed())
		}
	})

	t.Run("gone browser session stops the loop and surfaces the error", func(t *testing.T) {
		t.Parallel()

		closedErr := errors.New("websocket: close 1006 (abnormal closure)")
		all := testLinks("https://a", "https://b")
		proc := &stubProcessor{fatal: map[string]error{"https://a": closedErr}}
		gate := &scriptedGate{}
		rep := report.New("links.txt", len(all))
		var out bytes.Buffer

		err := NewLoop(proc, gate, rep, discardLogger(), &out, nil).Run(context.Background(), all)
		if !errors.Is(err, closedErr) {
			t.Fatalf("expected the session error, got %v", err)
		}

		if len(proc.calls) != 1 {
			t.Errorf("expected 1 link attempted, got %d", len(proc.calls))
		}
		// The failed attempt is still recorded before stopping.
		if rep.Processed() != 1 {
			t.Errorf("expected 1 outcome, got %d", rep.Processed())
		}
		if gate.acks != 0 {
			t.Errorf("expected no acknowledgment wait, got %d", gate.acks)
		}
	})
}

// TestConfirmShutdown tests the blocking shutdown confirmation.
func TestConfirmShutdown(t *testing.T) {
	t.Parallel()

	t.Run("only an affirmative token exits", func(t *testing.T) {
		t.Parallel()

		gate := &scriptedGate{answers: []string{"", "whatever", "n", "Y"}}
		rep := report.New("links.txt", 0)
		var out bytes.Buffer

		NewLoop(&stubProcessor{}, gate, rep, discardLogger(), &out, nil).ConfirmShutdown()

		if len(gate.asks) != 4 {
			t.Errorf("expected 4 prompts, got %d", len(gate.asks))
		}
		if !strings.Contains(out.String(), "Still waiting") {
			t.Error("empty input should print the waiting status")
		}
		if !strings.Contains(out.String(), "Please type") {
			t.Error("unrecognized input should restate the usage hint")
		}
	})

	t.Run("immediate affirmative exits on first prompt", func(t *testing.T) {
		t.Parallel()

		gate := &scriptedGate{answers: []string{"y"}}
		rep := report.New("links.txt", 0)
		var out bytes.Buffer

		NewLoop(&stubProcessor{}, gate, rep, discardLogger(), &out, nil).ConfirmShutdown()

		if len(gate.asks) != 1 {
			t.Errorf("expected 1 prompt, got %d", len(gate.asks))
		}
	})
}

// blockingReader never delivers input, like a console nobody types at.
type blockingReader struct {
	release chan struct{}
}

func (r *blockingReader) Read(p []byte) (int, error) {
	<-r.release
	return 0, io.EOF
}

// TestConsoleGate tests the stdin-backed gate.
func TestConsoleGate(t *testing.T) {
	t.Parallel()

	t.Run("acknowledge consumes one line", func(t *testing.T) {
		t.Parallel()

		var out bytes.Buffer
		g := NewConsoleGate(strings.NewReader("\nleftover\n"), &out)

		if err := g.Acknowledge("press enter: ", nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(out.String(), "press enter: ") {
			t.Error("prompt not written")
		}

		answer, err := g.Ask("? ")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if answer != "leftover" {
			t.Errorf("expected next line, got %q", answer)
		}
	})

	t.Run("acknowledge unblocks on cancel", func(t *testing.T) {
		t.Parallel()

		release := make(chan struct{})
		defer close(release)
		var out bytes.Buffer
		g := NewConsoleGate(&blockingReader{release: release}, &out)

		cancel := make(chan struct{})
		done := make(chan error, 1)
		go func() {
			done <- g.Acknowledge("press enter: ", cancel)
		}()

		close(cancel)

		select {
		case err := <-done:
			if !errors.Is(err, ErrInterrupted) {
				t.Errorf("expected ErrInterrupted, got %v", err)
			}
		case <-time.After(2 * time.Second):
			t.Fatal("acknowledge did not unblock on cancel")
		}
	})

	t.Run("acknowledge errors on exhausted input", func(t *testing.T) {
		t.Parallel()

		var out bytes.Buffer
		g := NewConsoleGate(strings.NewReader(""), &out)

		if err := g.Acknowledge("press enter: ", nil); err == nil {
			t.Error("expected error on closed input")
		}
	})

	t.Run("ask trims whitespace", func(t *testing.T) {
		t.Parallel()

		var out bytes.Buffer
		g := NewConsoleGate(strings.NewReader("  y  \n"), &out)

		answer, err := g.Ask("? ")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if answer != "y" {
			t.Errorf("expected %q, got %q", "y", answer)
		}
	})

	t.Run("ask errors on exhausted input", func(t *testing.T) {
		t.Parallel()

		var out bytes.Buffer
		g := NewConsoleGate(strings.NewReader(""), &out)

		if _, err := g.Ask("? "); err == nil {
			t.Error("expected error on closed input")
		}
	})
}
