package command

import (
	"testing"
	"time"
)

// harness drives a decoder with a synthetic clock at a 5 ms poll rate.
type harness struct {
	t   *testing.T
	d   *Decoder
	now time.Time

	codes []Code
}

func newHarness(t *testing.T) *harness {
	h := &harness{
		t:   t,
		d:   New(0, 0),
		now: time.Unix(0, 0),
	}
	// Seed with an idle line.
	h.d.Step(h.now, false)
	return h
}

// run holds the line at the given level for the duration, collecting any
// emitted codes.
func (h *harness) run(active bool, d time.Duration) {
	const poll = 5 * time.Millisecond
	end := h.now.Add(d)
	for h.now.Before(end) {
		h.now = h.now.Add(poll)
		if code, ok := h.d.Step(h.now, active); ok {
			h.codes = append(h.codes, code)
		}
	}
}

func (h *harness) press(d time.Duration)   { h.run(true, d) }
func (h *harness) release(d time.Duration) { h.run(false, d) }

func (h *harness) wantCodes(want ...Code) {
	h.t.Helper()
	if len(h.codes) != len(want) {
		h.t.Fatalf("decoded %v, want %v", h.codes, want)
	}
	for i := range want {
		if h.codes[i] != want[i] {
			h.t.Fatalf("decoded %v, want %v", h.codes, want)
		}
	}
}

func TestDecoder_SingleShortPress(t *testing.T) {
	h := newHarness(t)
	h.press(100 * time.Millisecond)
	h.release(700 * time.Millisecond)
	h.wantCodes(Short1)
}

func TestDecoder_SingleLongPress(t *testing.T) {
	h := newHarness(t)
	h.press(800 * time.Millisecond)
	h.release(700 * time.Millisecond)
	// Long1 exactly once, and no Short1 when the line is finally released.
	h.wantCodes(Long1)
}

func TestDecoder_HeldThroughSeveralTimeouts(t *testing.T) {
	h := newHarness(t)
	h.press(3 * time.Second)
	h.release(time.Second)
	// A continuing hold is never re-read as a fresh press.
	h.wantCodes(Long1)
}

func TestDecoder_TwoShortPresses(t *testing.T) {
	h := newHarness(t)
	for i := 0; i < 2; i++ {
		h.press(100 * time.Millisecond)
		h.release(150 * time.Millisecond)
	}
	h.release(600 * time.Millisecond)
	h.wantCodes(Short2)
}

func TestDecoder_SecondPressHeldLong(t *testing.T) {
	h := newHarness(t)
	h.press(100 * time.Millisecond)
	h.release(150 * time.Millisecond)
	h.press(800 * time.Millisecond)
	h.release(700 * time.Millisecond)
	h.wantCodes(Long2)
}

func TestDecoder_FourShortPresses(t *testing.T) {
	h := newHarness(t)
	for i := 0; i < 4; i++ {
		h.press(100 * time.Millisecond)
		h.release(150 * time.Millisecond)
	}
	h.release(600 * time.Millisecond)
	h.wantCodes(Short4)
}

func TestDecoder_FifthPressDiscarded(t *testing.T) {
	h := newHarness(t)
	for i := 0; i < 5; i++ {
		h.press(100 * time.Millisecond)
		h.release(150 * time.Millisecond)
	}
	h.release(600 * time.Millisecond)
	// The extra press is ignored; the four-press pattern stands.
	h.wantCodes(Short4)
}

func TestDecoder_BounceRejected(t *testing.T) {
	h := newHarness(t)
	// Sub-debounce chatter must not register as presses.
	for i := 0; i < 4; i++ {
		h.press(10 * time.Millisecond)
		h.release(10 * time.Millisecond)
	}
	h.release(700 * time.Millisecond)
	h.wantCodes()
}

func TestDecoder_ActiveAtStartup(t *testing.T) {
	d := New(0, 0)
	now := time.Unix(0, 0)

	// Line already held when polling begins: drained, no command.
	for i := 0; i < 200; i++ {
		now = now.Add(5 * time.Millisecond)
		if code, ok := d.Step(now, true); ok {
			t.Fatalf("decoded %v from a line held at startup", code)
		}
	}
	if !d.Busy() {
		t.Error("Busy() = false while the line is held")
	}

	// After release, a normal press decodes again.
	for i := 0; i < 20; i++ {
		now = now.Add(5 * time.Millisecond)
		d.Step(now, false)
	}
	h := &harness{t: t, d: d, now: now}
	h.press(100 * time.Millisecond)
	h.release(700 * time.Millisecond)
	h.wantCodes(Short1)
}

func TestDecoder_BusyDuringDecode(t *testing.T) {
	h := newHarness(t)
	if h.d.Busy() {
		t.Error("Busy() = true while idle")
	}
	h.press(100 * time.Millisecond)
	if !h.d.Busy() {
		t.Error("Busy() = false mid-press")
	}
	h.release(100 * time.Millisecond)
	if !h.d.Busy() {
		t.Error("Busy() = false between presses of a pattern")
	}
	h.release(600 * time.Millisecond)
	if h.d.Busy() {
		t.Error("Busy() = true after the pattern completed")
	}
}
