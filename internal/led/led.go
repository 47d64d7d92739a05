// Package led drives the single status LED. The only user-visible
// acknowledgment of a completed settings change is a counted blink
// pattern; initialization failure is an indefinite rapid flash.
package led

import "time"

// Indicator is the physical LED contract.
type Indicator interface {
	SetOn()
	SetOff()
}

// Pin adapts a pair of functions to the Indicator interface.
type Pin struct {
	On  func()
	Off func()
}

func (p Pin) SetOn() {
	if p.On != nil {
		p.On()
	}
}

func (p Pin) SetOff() {
	if p.Off != nil {
		p.Off()
	}
}

// Blink protocol timings.
const (
	ackPause   = 500 * time.Millisecond
	ackOn      = 100 * time.Millisecond
	ackOff     = 200 * time.Millisecond
	errorPulse = 50 * time.Millisecond
)

type segment struct {
	on bool
	d  time.Duration
}

// Blinker plays timed LED patterns, advanced one check per control cycle
// by Step. While no pattern runs, Solid sets the steady level.
type Blinker struct {
	ind Indicator

	pattern []segment
	idx     int
	until   time.Time
	repeat  bool

	lit bool
}

// NewBlinker creates a blinker over the given indicator, starting dark.
func NewBlinker(ind Indicator) *Blinker {
	ind.SetOff()
	return &Blinker{ind: ind}
}

// Acknowledge plays the settings-change feedback: a 500 ms pause, then
// ordinal+1 blinks of 100 ms on / 200 ms off, then a 500 ms pause.
func (b *Blinker) Acknowledge(ordinal int, now time.Time) {
	if ordinal < 0 {
		ordinal = 0
	}
	pattern := []segment{{on: false, d: ackPause}}
	for i := 0; i <= ordinal; i++ {
		pattern = append(pattern,
			segment{on: true, d: ackOn},
			segment{on: false, d: ackOff},
		)
	}
	pattern = append(pattern, segment{on: false, d: ackPause})
	b.start(pattern, false, now)
}

// Error flashes rapidly until a new pattern or Solid replaces it. Used for
// unrecoverable initialization failure.
func (b *Blinker) Error(now time.Time) {
	b.start([]segment{
		{on: true, d: errorPulse},
		{on: false, d: errorPulse},
	}, true, now)
}

// Solid cancels any pattern and holds the LED at the given level.
func (b *Blinker) Solid(on bool) {
	b.pattern = nil
	b.repeat = false
	b.set(on)
}

// Active reports whether a pattern is still playing.
func (b *Blinker) Active() bool { return b.pattern != nil }

// Lit reports the current LED level.
func (b *Blinker) Lit() bool { return b.lit }

// Step advances the running pattern. Call once per control cycle.
func (b *Blinker) Step(now time.Time) {
	if b.pattern == nil || now.Before(b.until) {
		return
	}
	b.idx++
	if b.idx >= len(b.pattern) {
		if !b.repeat {
			b.pattern = nil
			b.set(false)
			return
		}
		b.idx = 0
	}
	seg := b.pattern[b.idx]
	b.set(seg.on)
	b.until = now.Add(seg.d)
}

func (b *Blinker) start(pattern []segment, repeat bool, now time.Time) {
	b.pattern = pattern
	b.repeat = repeat
	b.idx = 0
	b.set(pattern[0].on)
	b.until = now.Add(pattern[0].d)
}

func (b *Blinker) set(on bool) {
	if on == b.lit {
		return
	}
	b.lit = on
	if on {
		b.ind.SetOn()
	} else {
		b.ind.SetOff()
	}
}
