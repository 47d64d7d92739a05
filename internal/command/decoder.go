package command

import "time"

const (
	// DefaultDebounce is how long the line must hold a new level before
	// the change is accepted.
	DefaultDebounce = 20 * time.Millisecond
	// DefaultTimeout is the quiet period that completes a pattern; a
	// press held past it becomes a long press.
	DefaultTimeout = 500 * time.Millisecond

	maxPresses = 4
)

type state int

const (
	stateIdle        state = iota
	statePress             // press N in progress
	stateRelease           // after release N, waiting for press N+1 or timeout
	stateDiscard           // press beyond the 4th, drained without counting
	stateWaitRelease       // command already decided, draining a held press
)

// Decoder is the poll-driven press/release pattern state machine. Feed it
// one sample per control cycle via Step; it emits a Code once per completed
// pattern. Not safe for concurrent use.
type Decoder struct {
	debounce time.Duration
	timeout  time.Duration

	raw      bool // last sampled level
	rawSince time.Time
	level    bool // debounced level
	seeded   bool

	state    state
	presses  int
	deadline time.Time
}

// New creates a decoder with the given debounce and command timeout.
// Zero durations select the defaults.
func New(debounce, timeout time.Duration) *Decoder {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Decoder{debounce: debounce, timeout: timeout}
}

// Busy reports whether a pattern is mid-decode or the line is still held.
// The controller gates autoplay on this.
func (d *Decoder) Busy() bool {
	return d.state != stateIdle || d.level
}

// Step samples the line and advances the state machine. active is the
// polarity-normalized line level. It returns a completed command code and
// true on the cycle the pattern is decided.
func (d *Decoder) Step(now time.Time, active bool) (Code, bool) {
	rose, fell := d.debounceSample(now, active)

	switch d.state {
	case stateIdle:
		// A line still held from a previous pattern is drained by the
		// debounce re-entry below, never re-read as a fresh press.
		if rose {
			d.state = statePress
			d.presses = 1
			d.deadline = now.Add(d.timeout)
		}

	case statePress:
		switch {
		case fell:
			d.state = stateRelease
			d.deadline = now.Add(d.timeout)
		case now.After(d.deadline):
			// Held past the timeout: long pattern. Drain the press so the
			// continuing hold cannot start a new pattern.
			code := longCode(d.presses)
			d.state = stateWaitRelease
			d.presses = 0
			return code, true
		}

	case stateRelease:
		switch {
		case rose:
			if d.presses >= maxPresses {
				// Extra press: discarded, the accumulated pattern stands.
				d.state = stateDiscard
			} else {
				d.presses++
				d.state = statePress
				d.deadline = now.Add(d.timeout)
			}
		case now.After(d.deadline):
			code := shortCode(d.presses)
			d.state = stateIdle
			d.presses = 0
			return code, true
		}

	case stateDiscard:
		if fell {
			d.state = stateRelease
			d.deadline = now.Add(d.timeout)
		}

	case stateWaitRelease:
		if fell {
			d.state = stateIdle
		}
	}

	return None, false
}

// debounceSample accepts a level change only once it has been stable for
// the debounce interval, and reports the resulting edge.
func (d *Decoder) debounceSample(now time.Time, active bool) (rose, fell bool) {
	if !d.seeded {
		// First sample seeds the state; a line already active at startup
		// is drained before any pattern can begin.
		d.seeded = true
		d.raw = active
		d.rawSince = now
		d.level = active
		if active {
			d.state = stateWaitRelease
		}
		return false, false
	}

	if active != d.raw {
		d.raw = active
		d.rawSince = now
		return false, false
	}

	if d.raw != d.level && now.Sub(d.rawSince) >= d.debounce {
		d.level = d.raw
		if d.level {
			return true, false
		}
		return false, true
	}

	return false, false
}
