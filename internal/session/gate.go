package session

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrInterrupted is returned by a Gate when an interrupt fires while
// waiting for the operator.
var ErrInterrupted = errors.New("interrupted while waiting for operator")

// Gate is the operator synchronization point. The workflow's whole purpose
// is to wait for a human to handle each native Save As dialog, so both
// methods block until input arrives; Acknowledge additionally unblocks
// when cancel fires, so an interrupt is acted on immediately rather than
// after the next keypress.
type Gate interface {
	// Acknowledge prints msg and blocks until the operator presses Enter
	// or cancel fires. Returns ErrInterrupted in the cancel case.
	Acknowledge(msg string, cancel <-chan struct{}) error

	// Ask prints prompt and returns one line of operator input, trimmed.
	Ask(prompt string) (string, error)
}

// ConsoleGate reads operator input from a line-oriented stream, normally
// stdin. A single pump goroutine owns the reader and feeds lines through
// a channel, so a wait abandoned by an interrupt never swallows a line
// meant for a later prompt.
type ConsoleGate struct {
	out   io.Writer
	lines chan string
}

// NewConsoleGate creates a gate over the given streams.
func NewConsoleGate(in io.Reader, out io.Writer) *ConsoleGate {
	g := &ConsoleGate{out: out, lines: make(chan string)}
	go func() {
		r := bufio.NewReader(in)
		for {
			line, err := r.ReadString('\n')
			if line != "" {
				g.lines <- strings.TrimSpace(line)
			}
			if err != nil {
				close(g.lines)
				return
			}
		}
	}()
	return g
}

// Acknowledge blocks until the operator presses Enter or cancel fires.
// A closed input stream is an error: with nobody at the console there is
// no acknowledgment to wait for.
func (g *ConsoleGate) Acknowledge(msg string, cancel <-chan struct{}) error {
	fmt.Fprint(g.out, msg)
	select {
	case _, ok := <-g.lines:
		if !ok {
			return io.EOF
		}
		return nil
	case <-cancel:
		return ErrInterrupted
	}
}

// Ask returns one trimmed line of operator input.
func (g *ConsoleGate) Ask(prompt string) (string, error) {
	fmt.Fprint(g.out, prompt)
	line, ok := <-g.lines
	if !ok {
		return "", io.EOF
	}
	return line, nil
}
