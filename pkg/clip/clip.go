// Package clip copies share links from the command line and reports the result.
package clip

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/atotto/clipboard"
	"github.com/aymanbagabas/go-osc52/v2"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// ErrNotTerminal means the terminal copy has no terminal to talk to.
var ErrNotTerminal = errors.New("output is not a terminal")

// System writes to the desktop clipboard.
type System struct{}

// WriteText copies s with the platform clipboard tool.
func (System) WriteText(_ context.Context, s string) error {
	if clipboard.Unsupported {
		return errors.New("no clipboard utility found")
	}
	return clipboard.WriteAll(s)
}

// Terminal asks the terminal emulator to copy via an OSC 52 escape sequence,
// which also works over ssh.
type Terminal struct {
	Out *os.File
	// Tmux wraps the sequence for tmux passthrough.
	Tmux bool
}

// WriteText emits the copy sequence.
func (t Terminal) WriteText(_ context.Context, s string) error {
	out := t.Out
	if out == nil {
		out = os.Stderr
	}
	if !isatty.IsTerminal(out.Fd()) && !isatty.IsCygwinTerminal(out.Fd()) {
		return ErrNotTerminal
	}

	seq := osc52.New(s)
	if t.Tmux {
		seq = seq.Tmux()
	}
	if _, err := seq.WriteTo(out); err != nil {
		return fmt.Errorf("osc52: %w", err)
	}
	return nil
}

// Console prints toasts to a writer.
type Console struct {
	W io.Writer
}

// Notify prints msg, in red for failures.
func (c Console) Notify(msg string, isError bool) {
	w := c.W
	if w == nil {
		w = color.Output
	}

	mark := color.New(color.FgGreen, color.Bold).Sprint("✓")
	if isError {
		mark = color.New(color.FgRed, color.Bold).Sprint("✗")
	}
	_, _ = fmt.Fprintf(w, "%s %s\n", mark, msg)
}
