// Package button abstracts the single raw input line (switch or light
// sensor). Polarity is the driver's concern: Read returns true when the
// line is active.
package button

import "sync"

// Line is the raw input line contract.
type Line interface {
	Read() bool
}

// LineFunc adapts a function to the Line interface.
type LineFunc func() bool

func (f LineFunc) Read() bool { return f() }

// Inverted adapts an active-low line: Read reports true when the raw
// level is low.
type Inverted struct {
	Raw Line
}

func (l Inverted) Read() bool { return !l.Raw.Read() }

// Verify MemLine implements Line at compile time.
var _ Line = (*MemLine)(nil)

// MemLine is a settable line for tests and the simulator. Safe for
// concurrent use: drivers set it from input goroutines while the control
// loop polls it.
type MemLine struct {
	mu     sync.Mutex
	active bool
}

// NewMemLine creates an idle line.
func NewMemLine() *MemLine { return &MemLine{} }

func (l *MemLine) Read() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.active
}

// Set drives the line level.
func (l *MemLine) Set(active bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.active = active
}

// Toggle flips the line level and returns the new state.
func (l *MemLine) Toggle() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.active = !l.active
	return l.active
}
