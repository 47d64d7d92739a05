package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	tests := []struct {
		in   string
		want string
	}{
		{"~/music", filepath.Join(home, "music")},
		{"/srv/media", "/srv/media"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := expandPath(tt.in); got != tt.want {
			t.Errorf("expandPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTimingDurations(t *testing.T) {
	tc := TimingConfig{DebounceMs: 30, FadeWindowMs: 1500}
	debounce, timeout, settle, fadeWindow, fadeStep, shortPlay := tc.Durations()

	if debounce != 30*time.Millisecond {
		t.Errorf("debounce = %v, want 30ms", debounce)
	}
	if fadeWindow != 1500*time.Millisecond {
		t.Errorf("fadeWindow = %v, want 1.5s", fadeWindow)
	}
	// Unset fields stay zero so the controller keeps its defaults.
	if timeout != 0 || settle != 0 || fadeStep != 0 || shortPlay != 0 {
		t.Errorf("unset overrides must be zero, got %v %v %v %v",
			timeout, settle, fadeStep, shortPlay)
	}
}
