package led

import (
	"testing"
	"time"
)

// countingPin records on-transitions.
type countingPin struct {
	ons  int
	offs int
}

func (p *countingPin) SetOn()  { p.ons++ }
func (p *countingPin) SetOff() { p.offs++ }

// play advances the blinker through the given duration at a 10 ms poll.
func play(b *Blinker, start time.Time, d time.Duration) time.Time {
	const poll = 10 * time.Millisecond
	end := start.Add(d)
	now := start
	for now.Before(end) {
		now = now.Add(poll)
		b.Step(now)
	}
	return now
}

func TestBlinker_AcknowledgeCount(t *testing.T) {
	tests := []struct {
		ordinal  int
		wantOns  int
		duration time.Duration
	}{
		{0, 1, 2 * time.Second},
		{2, 3, 3 * time.Second},
		{3, 4, 3 * time.Second},
	}
	for _, tt := range tests {
		pin := &countingPin{}
		b := NewBlinker(pin)
		pin.offs = 0 // NewBlinker turns the LED off once

		start := time.Unix(0, 0)
		b.Acknowledge(tt.ordinal, start)
		play(b, start, tt.duration)

		if pin.ons != tt.wantOns {
			t.Errorf("ordinal %d: %d blinks, want %d", tt.ordinal, pin.ons, tt.wantOns)
		}
		if b.Active() {
			t.Errorf("ordinal %d: pattern still active after %v", tt.ordinal, tt.duration)
		}
	}
}

func TestBlinker_AcknowledgeLeadsWithPause(t *testing.T) {
	pin := &countingPin{}
	b := NewBlinker(pin)
	pin.ons = 0

	start := time.Unix(0, 0)
	b.Acknowledge(0, start)

	// Within the 500 ms pre-pause the LED must stay dark.
	play(b, start, 400*time.Millisecond)
	if pin.ons != 0 {
		t.Errorf("LED lit %d times during the pre-pause", pin.ons)
	}
}

func TestBlinker_ErrorRepeats(t *testing.T) {
	pin := &countingPin{}
	b := NewBlinker(pin)

	start := time.Unix(0, 0)
	b.Error(start)
	play(b, start, 2*time.Second)

	// 50 ms on / 50 ms off over 2 s is on the order of 20 pulses.
	if pin.ons < 15 {
		t.Errorf("%d pulses in 2s of error flash, want rapid repetition", pin.ons)
	}
	if !b.Active() {
		t.Error("error pattern must repeat until replaced")
	}
}

func TestBlinker_SolidCancelsPattern(t *testing.T) {
	pin := &countingPin{}
	b := NewBlinker(pin)

	start := time.Unix(0, 0)
	b.Error(start)
	b.Solid(true)

	if b.Active() {
		t.Error("Solid must cancel the running pattern")
	}
	if !b.Lit() {
		t.Error("Lit() = false after Solid(true)")
	}

	play(b, start, time.Second)
	if !b.Lit() {
		t.Error("steady level must survive Step")
	}
}
