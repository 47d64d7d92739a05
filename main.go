// sdplayer runs the player module control loop on a host machine: audio
// goes to the speaker, the settings survive restarts, and the space bar
// stands in for the input line (one press toggles press/release, since
// terminals have no key-up events).
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/term"

	"github.com/yeri63-arduino/USB-Micro-SD-Player-Module/internal/button"
	"github.com/yeri63-arduino/USB-Micro-SD-Player-Module/internal/config"
	"github.com/yeri63-arduino/USB-Micro-SD-Player-Module/internal/control"
	"github.com/yeri63-arduino/USB-Micro-SD-Player-Module/internal/led"
	"github.com/yeri63-arduino/USB-Micro-SD-Player-Module/internal/player"
	"github.com/yeri63-arduino/USB-Micro-SD-Player-Module/internal/settings"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "sdplayer: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	store, err := settings.OpenDefault()
	if err != nil {
		return err
	}
	defer store.Close()

	ctx, cancel := signal.NotifyContext(
		context.Background(), os.Interrupt, syscall.SIGTERM,
	)
	defer cancel()

	ind := led.Pin{
		On:  func() { fmt.Print("\r● ") },
		Off: func() { fmt.Print("\r○ ") },
	}

	p, err := player.NewBeep(cfg.MediaDir)
	if err != nil {
		// Initialization failure: rapid flash until power-off, no
		// command decoding.
		fmt.Fprintf(os.Stderr, "audio init failed: %v\n", err)
		return errorFlash(ctx, ind)
	}
	defer p.Close()

	mem := button.NewMemLine()
	var line button.Line = mem
	if !cfg.ActiveHigh {
		// Active-low wiring: the line idles high, a press pulls it low.
		mem.Set(true)
		line = button.Inverted{Raw: mem}
	}

	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		old, rawErr := term.MakeRaw(fd)
		if rawErr != nil {
			return rawErr
		}
		defer term.Restore(fd, old)
		go watchKeys(mem, cancel)
	}

	debounce, timeout, settle, fadeWindow, fadeStep, shortPlay := cfg.Timing.Durations()
	c, err := control.New(p, store, line, ind, control.Options{
		Debounce:       debounce,
		CommandTimeout: timeout,
		Settle:         settle,
		FadeWindow:     fadeWindow,
		FadeStep:       fadeStep,
		ShortPlay:      shortPlay,
	})
	if err != nil {
		return err
	}

	fmt.Printf("%d files in %s — space toggles the button, q quits\r\n",
		p.FileCount(), cfg.MediaDir)

	if err := control.Run(ctx, c); !errors.Is(err, context.Canceled) {
		return err
	}
	fmt.Print("\r\n")
	return nil
}

// errorFlash plays the initialization-failure pattern until the process is
// killed; the real hardware stays in this state until power-cycled.
func errorFlash(ctx context.Context, ind led.Indicator) error {
	b := led.NewBlinker(ind)
	b.Error(time.Now())

	ticker := time.NewTicker(control.PollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			b.Step(now)
		}
	}
}

// watchKeys maps raw-mode key input onto the line: space toggles the
// level, q or ctrl-c quits.
func watchKeys(line *button.MemLine, cancel context.CancelFunc) {
	buf := make([]byte, 1)
	for {
		n, err := os.Stdin.Read(buf)
		if err != nil || n == 0 {
			return
		}
		switch buf[0] {
		case ' ':
			line.Toggle()
		case 'q', 0x03:
			cancel()
			return
		}
	}
}
