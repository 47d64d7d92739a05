// Package config loads the module configuration. Timing values default to
// the hardware constants; a config file only overrides them.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	MediaDir   string `koanf:"media_dir"`   // directory of numbered audio files
	ActiveHigh bool   `koanf:"active_high"` // input line polarity

	Timing TimingConfig `koanf:"timing"`
}

// TimingConfig overrides the control timing constants, in milliseconds.
// Zero values keep the defaults.
type TimingConfig struct {
	DebounceMs       int `koanf:"debounce_ms"`
	CommandTimeoutMs int `koanf:"command_timeout_ms"`
	SettleMs         int `koanf:"settle_ms"`
	FadeWindowMs     int `koanf:"fade_window_ms"`
	FadeStepMs       int `koanf:"fade_step_ms"`
	ShortPlayMs      int `koanf:"short_play_ms"`
}

func Load() (*Config, error) {
	k := koanf.New(".")

	// Try config files in order of priority (last wins)
	for _, path := range getConfigPaths() {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	if cfg.MediaDir == "" {
		cfg.MediaDir = "."
	}
	cfg.MediaDir = expandPath(cfg.MediaDir)

	return cfg, nil
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. ~/.config/sdplayer/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "sdplayer", "config.toml"))
	}

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// Durations returns the timing overrides as durations, zero where the
// config left the default in place.
func (t TimingConfig) Durations() (debounce, timeout, settle, fadeWindow, fadeStep, shortPlay time.Duration) {
	ms := func(v int) time.Duration { return time.Duration(v) * time.Millisecond }
	return ms(t.DebounceMs), ms(t.CommandTimeoutMs), ms(t.SettleMs),
		ms(t.FadeWindowMs), ms(t.FadeStepMs), ms(t.ShortPlayMs)
}
