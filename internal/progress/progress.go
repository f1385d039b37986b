// Package progress reports import and export progress on stderr so stdout
// stays clean for JSON. Nothing is drawn unless stderr is a terminal.
package progress

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// minItems is the smallest batch worth reporting on.
const minItems = 5

// clearWidth is the number of columns blanked when a line is cleared.
const clearWidth = 48

// Progress counts songs through a batch of known size.
type Progress struct {
	w       io.Writer
	label   string
	total   int
	current int
	isTTY   bool
}

// New creates a progress reporter that writes to stderr.
func New(label string, total int) *Progress {
	return NewWriter(os.Stderr, isTerminal(os.Stderr), label, total)
}

// NewWriter creates a progress reporter on w. Output is suppressed unless
// tty is true.
func NewWriter(w io.Writer, tty bool, label string, total int) *Progress {
	return &Progress{w: w, label: label, total: total, isTTY: tty}
}

// Increment advances the counter by one.
func (p *Progress) Increment() {
	p.current++
}

// Current returns the number of items counted so far.
func (p *Progress) Current() int {
	return p.current
}

// Print redraws the progress line in place.
func (p *Progress) Print() {
	if !p.isTTY || p.total < minItems {
		return
	}
	pct := 0
	if p.total > 0 {
		pct = (p.current * 100) / p.total
	}
	fmt.Fprintf(p.w, "\r%s... %d/%d (%d%%)", p.label, p.current, p.total, pct)
}

// Done clears the progress line.
func (p *Progress) Done() {
	if !p.isTTY || p.total < minItems {
		return
	}
	clearLine(p.w)
}

// Spinner shows activity while songs stream in from the daemon and the
// total is unknown.
type Spinner struct {
	w       io.Writer
	label   string
	frame   int
	count   int
	isTTY   bool
	running bool
}

var frames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// NewSpinner creates a spinner that writes to stderr.
func NewSpinner(label string) *Spinner {
	return &Spinner{w: os.Stderr, label: label, isTTY: isTerminal(os.Stderr)}
}

// Start displays the spinner.
func (s *Spinner) Start() {
	if !s.isTTY {
		return
	}
	s.running = true
	fmt.Fprintf(s.w, "%s %s...", frames[0], s.label)
}

// Tick records one more song and advances the animation.
func (s *Spinner) Tick() {
	s.count++
	if !s.isTTY || !s.running {
		return
	}
	s.frame = (s.frame + 1) % len(frames)
	fmt.Fprintf(s.w, "\r%s %s... %d", frames[s.frame], s.label, s.count)
}

// Stop clears the spinner line.
func (s *Spinner) Stop() {
	if !s.isTTY || !s.running {
		return
	}
	s.running = false
	clearLine(s.w)
}

func clearLine(w io.Writer) {
	fmt.Fprintf(w, "\r%s\r", strings.Repeat(" ", clearWidth))
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
