// Package control owns the playback state machine of the module: it feeds
// the command decoder from the raw line, executes the action behind each
// completed command, and runs the periodic fade and autoplay checks once
// per control cycle. All mutable state belongs to the single control loop;
// nothing here is safe for concurrent use.
package control

import (
	"math/rand"
	"time"

	"github.com/yeri63-arduino/USB-Micro-SD-Player-Module/internal/button"
	"github.com/yeri63-arduino/USB-Micro-SD-Player-Module/internal/command"
	"github.com/yeri63-arduino/USB-Micro-SD-Player-Module/internal/led"
	"github.com/yeri63-arduino/USB-Micro-SD-Player-Module/internal/player"
	"github.com/yeri63-arduino/USB-Micro-SD-Player-Module/internal/settings"
	"github.com/yeri63-arduino/USB-Micro-SD-Player-Module/internal/shuffle"
)

// PollInterval is the control loop rate.
const PollInterval = 10 * time.Millisecond

const (
	defaultSettle     = 100 * time.Millisecond
	defaultFadeWindow = 2 * time.Second
	defaultFadeStep   = 100 * time.Millisecond
	defaultShortPlay  = 30 * time.Second

	maxPlayRetries = 3
	maxRedraws     = 2
)

// Options tunes the controller's timing. Zero fields select the defaults.
type Options struct {
	Debounce       time.Duration
	CommandTimeout time.Duration
	Settle         time.Duration // pause after commands to the subsystem
	FadeWindow     time.Duration
	FadeStep       time.Duration
	ShortPlay      time.Duration // Short-mode play limit
	Rand           *rand.Rand
}

func (o Options) withDefaults() Options {
	if o.Settle <= 0 {
		o.Settle = defaultSettle
	}
	if o.FadeWindow <= 0 {
		o.FadeWindow = defaultFadeWindow
	}
	if o.FadeStep <= 0 {
		o.FadeStep = defaultFadeStep
	}
	if o.ShortPlay <= 0 {
		o.ShortPlay = defaultShortPlay
	}
	return o
}

// Controller is the playback mode controller.
type Controller struct {
	opt Options

	player  player.Interface
	store   settings.Store
	line    button.Line
	sel     *shuffle.Selector
	dec     *command.Decoder
	blinker *led.Blinker

	set settings.Settings

	// Session state, reset every boot.
	previousFile int
	playCount    int
	paused       bool
	stepSize     int

	settleUntil  time.Time
	playDeadline time.Time
	autoplayAt   time.Time

	fading    bool
	fadePause bool
	fadeLevel int
	fadeDec   int
	fadeAt    time.Time

	pendingPlay int // file awaiting busy confirmation, 0 when none
	playRetries int
	redraws     int
	retryAt     time.Time
}

// New loads and sanitizes the persisted settings, detects the index step
// size, and builds the controller. The player must already have reported a
// file count; initialization failure of the subsystem itself is the
// caller's concern (error blink, no decoding).
func New(
	p player.Interface,
	store settings.Store,
	line button.Line,
	ind led.Indicator,
	opt Options,
) (*Controller, error) {
	opt = opt.withDefaults()

	set, err := settings.Load(store, p.FileCount())
	if err != nil {
		return nil, err
	}

	stepSize := 1
	if !p.SupportsEvenIndices() {
		stepSize = 2
		if set.CurrentFile%2 == 0 {
			set.CurrentFile = 1
		}
	}

	c := &Controller{
		opt:      opt,
		player:   p,
		store:    store,
		line:     line,
		sel:      shuffle.New(p.FileCount(), stepSize, opt.Rand),
		dec:      command.New(opt.Debounce, opt.CommandTimeout),
		blinker:  led.NewBlinker(ind),
		set:      set,
		stepSize: stepSize,
	}

	p.SetVolume(set.Volume.Level())
	return c, nil
}

// Step runs one control cycle: LED pattern, fade progress, settle gate,
// play retry, input decode, command dispatch, periodic checks.
func (c *Controller) Step(now time.Time) {
	c.blinker.Step(now)
	c.advanceFade(now)

	if !c.blinker.Active() {
		// Steady LED mirrors playback when no feedback pattern runs.
		c.blinker.Solid(c.player.Busy())
	}

	// A fade in progress runs to completion before any new input is taken.
	if c.fading {
		return
	}
	if now.Before(c.settleUntil) {
		return
	}

	c.retryPlay(now)

	if code, ok := c.dec.Step(now, c.line.Read()); ok {
		c.dispatch(code, now)
		c.settleUntil = now.Add(c.opt.Settle)
		return
	}

	c.periodic(now)
}

func (c *Controller) dispatch(code command.Code, now time.Time) {
	switch code {
	case command.Short1: // next, or resume when paused
		if c.paused {
			c.player.Resume()
			c.paused = false
			// Fresh play window, or Short mode would fade a track resumed
			// after the original deadline on the next cycle.
			c.playDeadline = now.Add(c.opt.ShortPlay)
			return
		}
		c.player.Stop()
		var next int
		if c.set.Mode == settings.ModeBook {
			next = c.set.CurrentFile + c.stepSize
			if next > c.player.FileCount() {
				next = 1
			}
		} else {
			next = c.draw()
		}
		c.playFile(next, now)
		c.playCount = 0

	case command.Long1: // stop with fade
		if c.player.Busy() {
			c.startFade(now, true)
		}

	case command.Short2: // previous
		c.player.Stop()
		var prev int
		if c.set.Mode == settings.ModeBook {
			prev = c.set.CurrentFile - c.stepSize
			if prev < 1 {
				prev = 1
			}
		} else if c.previousFile != 0 {
			prev = c.previousFile
		} else {
			prev = c.set.CurrentFile
		}
		c.playFile(prev, now)
		c.playCount = 0

	case command.Long2: // change mode
		c.set.Mode = c.set.Mode.Next()
		c.persist(settings.AddrMode, byte(c.set.Mode))
		c.blinker.Acknowledge(int(c.set.Mode), now)
		if c.set.Mode == settings.ModeBook {
			// Book always starts paused at the first file.
			c.player.Stop()
			c.set.CurrentFile = 1
			c.persistFile()
			c.paused = true
		}

	case command.Long3: // change interval
		c.set.Interval = c.set.Interval.Next()
		c.persist(settings.AddrInterval, byte(c.set.Interval))
		c.blinker.Acknowledge(int(c.set.Interval), now)

	case command.Short3: // change volume
		c.set.Volume = c.set.Volume.Next()
		c.persist(settings.AddrVolume, byte(c.set.Volume))
		c.player.SetVolume(c.set.Volume.Level())
		c.blinker.Acknowledge(int(c.set.Volume), now)

	case command.Long4: // change repeat cap
		c.set.Repeat = c.set.Repeat.Next()
		c.persist(settings.AddrRepeat, byte(c.set.Repeat))
		c.blinker.Acknowledge(int(c.set.Repeat), now)
		c.playCount = 0

	case command.Short4: // factory reset
		file := c.set.CurrentFile
		c.set = settings.Defaults()
		c.set.CurrentFile = file
		_ = settings.Save(c.store, c.set)
		c.player.Stop()
		c.player.SetVolume(c.set.Volume.Level())
		c.paused = false
		c.playCount = 0
		c.pendingPlay = 0
		c.blinker.Acknowledge(0, now)
	}
}

// periodic runs the per-cycle checks that do not depend on input: busy
// re-arm, Short-mode fade, autoplay.
func (c *Controller) periodic(now time.Time) {
	if c.player.Busy() {
		// The countdown to the next autoplay always starts from the end
		// of the current track.
		c.autoplayAt = now.Add(c.autoplayDelay())
		c.paused = false

		if c.set.Mode == settings.ModeShort && now.After(c.playDeadline) {
			c.startFade(now, false)
		}
		return
	}

	if c.autoplayAt.IsZero() {
		c.autoplayAt = now.Add(c.autoplayDelay())
	}

	if !c.autoplayEnabled() || c.paused || c.pendingPlay != 0 || c.dec.Busy() {
		return
	}
	if now.Before(c.autoplayAt) {
		return
	}
	if limit := c.set.Repeat.Cap(); limit != 0 && c.playCount >= limit {
		return
	}

	c.playFile(c.draw(), now)
	c.playCount++
}

func (c *Controller) autoplayEnabled() bool {
	if c.set.Mode == settings.ModeBook {
		return false
	}
	return c.set.Interval != settings.IntervalOff || c.set.Mode == settings.ModeAuto
}

// autoplayDelay is the configured interval; Auto mode chains immediately.
func (c *Controller) autoplayDelay() time.Duration {
	if c.set.Mode == settings.ModeAuto {
		return 0
	}
	return c.set.Interval.Duration()
}

// draw pulls the next randomized file, re-drawing while it collides with
// the previous one. Bounded by the table size.
func (c *Controller) draw() int {
	f := c.sel.Next()
	for i := 0; f == c.previousFile && i < c.sel.Count(); i++ {
		f = c.sel.Next()
	}
	return f
}

// playFile starts the given file, updates the current/previous pointers,
// persists the pointer, and arms the play and autoplay deadlines.
func (c *Controller) playFile(file int, now time.Time) {
	c.previousFile = c.set.CurrentFile
	c.set.CurrentFile = file
	c.persistFile()

	_ = c.player.Play(file)
	c.pendingPlay = file
	c.playRetries = 0
	c.redraws = 0
	c.retryAt = now.Add(c.opt.Settle)

	c.paused = false
	c.playDeadline = now.Add(c.opt.ShortPlay)
	c.autoplayAt = now.Add(c.autoplayDelay())
	c.settleUntil = now.Add(c.opt.Settle)
}

// retryPlay re-issues a play command the subsystem ignored. After a few
// rejections of the same index it draws a different file, then gives up
// silently.
func (c *Controller) retryPlay(now time.Time) {
	if c.pendingPlay == 0 || now.Before(c.retryAt) {
		return
	}
	if c.player.Busy() {
		c.pendingPlay = 0
		return
	}

	if c.playRetries < maxPlayRetries {
		c.playRetries++
		_ = c.player.Play(c.pendingPlay)
		c.retryAt = now.Add(c.opt.Settle)
		return
	}

	if c.redraws < maxRedraws {
		c.redraws++
		c.playRetries = 0
		file := c.draw()
		c.previousFile = c.set.CurrentFile
		c.set.CurrentFile = file
		c.persistFile()
		_ = c.player.Play(file)
		c.pendingPlay = file
		c.retryAt = now.Add(c.opt.Settle)
		return
	}

	c.pendingPlay = 0
}

// startFade begins a linear volume ramp to zero over the fade window,
// stepped once per FadeStep. pause selects pause-and-mark-paused at the
// bottom instead of stop.
func (c *Controller) startFade(now time.Time, pause bool) {
	level := c.set.Volume.Level()
	steps := int(c.opt.FadeWindow / c.opt.FadeStep)
	if steps < 1 {
		steps = 1
	}
	dec := (level + steps - 1) / steps
	if dec < 1 {
		dec = 1
	}

	c.fading = true
	c.fadePause = pause
	c.fadeLevel = level
	c.fadeDec = dec
	c.fadeAt = now.Add(c.opt.FadeStep)
}

func (c *Controller) advanceFade(now time.Time) {
	if !c.fading || now.Before(c.fadeAt) {
		return
	}

	c.fadeLevel -= c.fadeDec
	if c.fadeLevel > 0 {
		c.player.SetVolume(c.fadeLevel)
		c.fadeAt = now.Add(c.opt.FadeStep)
		return
	}

	c.player.SetVolume(0)
	if c.fadePause {
		c.player.Pause()
		c.paused = true
	} else {
		c.player.Stop()
	}
	// The configured level is restored so the next play starts audible.
	c.player.SetVolume(c.set.Volume.Level())
	c.fading = false
	c.settleUntil = now.Add(c.opt.Settle)
}

func (c *Controller) persist(addr int, value byte) {
	_ = c.store.WriteIfChanged(addr, value)
}

func (c *Controller) persistFile() {
	_ = settings.SaveFile(c.store, c.set.CurrentFile)
}

// Snapshot is a read-only view of the controller state for UIs and tests.
type Snapshot struct {
	Settings     settings.Settings
	PreviousFile int
	StepSize     int
	PlayCount    int
	Paused       bool
	Fading       bool
	Decoding     bool
}

// Snapshot returns the current state.
func (c *Controller) Snapshot() Snapshot {
	return Snapshot{
		Settings:     c.set,
		PreviousFile: c.previousFile,
		StepSize:     c.stepSize,
		PlayCount:    c.playCount,
		Paused:       c.paused,
		Fading:       c.fading,
		Decoding:     c.dec.Busy(),
	}
}

// LED exposes the blinker for rendering.
func (c *Controller) LED() *led.Blinker { return c.blinker }
