package button

import "testing"

func TestMemLineToggle(t *testing.T) {
	l := NewMemLine()
	if l.Read() {
		t.Error("new line should be idle")
	}
	if !l.Toggle() {
		t.Error("first toggle should activate")
	}
	if !l.Read() {
		t.Error("line should read active after toggle")
	}
	l.Set(false)
	if l.Read() {
		t.Error("line should read idle after Set(false)")
	}
}

func TestInvertedLine(t *testing.T) {
	raw := NewMemLine()
	raw.Set(true) // idles high
	inv := Inverted{Raw: raw}

	if inv.Read() {
		t.Error("high raw level should read inactive")
	}
	raw.Set(false)
	if !inv.Read() {
		t.Error("low raw level should read active")
	}
}

func TestLineFunc(t *testing.T) {
	level := false
	l := LineFunc(func() bool { return level })
	if l.Read() {
		t.Error("should report the function's value")
	}
	level = true
	if !l.Read() {
		t.Error("should follow the function's value")
	}
}
