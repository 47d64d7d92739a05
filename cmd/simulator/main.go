// simulator is an interactive appliance mock-up: a controller wired to a
// fake audio subsystem and an in-memory settings store, with the space bar
// as the input line. Useful for trying click patterns without hardware or
// audio files.
package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/yeri63-arduino/USB-Micro-SD-Player-Module/internal/button"
	"github.com/yeri63-arduino/USB-Micro-SD-Player-Module/internal/control"
	"github.com/yeri63-arduino/USB-Micro-SD-Player-Module/internal/led"
	"github.com/yeri63-arduino/USB-Micro-SD-Player-Module/internal/player"
	"github.com/yeri63-arduino/USB-Micro-SD-Player-Module/internal/settings"
)

const simFileCount = 12

var (
	panelStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 2)

	ledOnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	ledOffStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

type keymap struct {
	Button key.Binding
	Finish key.Binding
	Quit   key.Binding
}

var keys = keymap{
	Button: key.NewBinding(
		key.WithKeys(" "),
		key.WithHelp("space", "press/release button"),
	),
	Finish: key.NewBinding(
		key.WithKeys("f"),
		key.WithHelp("f", "finish current track"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

type tickMsg time.Time

type model struct {
	ctrl *control.Controller
	mock *player.Mock
	line *button.MemLine
	held bool
}

func initialModel() (model, error) {
	mock := player.NewMock(simFileCount)
	store := settings.NewMemStore()
	line := button.NewMemLine()

	// The LED lives in the blinker; no physical pin to drive.
	ctrl, err := control.New(mock, store, line, led.Pin{}, control.Options{})
	if err != nil {
		return model{}, err
	}

	return model{ctrl: ctrl, mock: mock, line: line}, nil
}

func tick() tea.Cmd {
	return tea.Tick(control.PollInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m model) Init() tea.Cmd {
	return tick()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		m.ctrl.Step(time.Time(msg))
		return m, tick()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.Button):
			m.held = m.line.Toggle()
		case key.Matches(msg, keys.Finish):
			m.mock.FinishTrack()
		}
	}
	return m, nil
}

func (m model) View() string {
	snap := m.ctrl.Snapshot()

	ledGlyph := ledOffStyle.Render("○ off")
	if m.ctrl.LED().Lit() {
		ledGlyph = ledOnStyle.Render("● on")
	}

	buttonState := "released"
	if m.held {
		buttonState = "HELD"
	}

	playerState := m.mock.State().String()
	if idx := m.mock.CurrentIndex(); idx != 0 {
		playerState += fmt.Sprintf(" #%d", idx)
	}
	if snap.Fading {
		playerState += " (fading)"
	}
	if snap.Paused {
		playerState += " (paused)"
	}

	var b strings.Builder
	row := func(label, value string) {
		fmt.Fprintf(&b, "%s %s\n", labelStyle.Render(label+":"), value)
	}
	row("led", ledGlyph)
	row("button", buttonState)
	row("player", playerState)
	row("file", fmt.Sprintf("%d of %d (prev %d, step %d)",
		snap.Settings.CurrentFile, simFileCount, snap.PreviousFile, snap.StepSize))
	row("mode", snap.Settings.Mode.String())
	row("volume", snap.Settings.Volume.String())
	row("interval", snap.Settings.Interval.String())
	row("repeat", snap.Settings.Repeat.String())
	row("plays", fmt.Sprint(m.mock.PlayCalls()))

	help := helpStyle.Render(
		"space press/release · f finish track · q quit\n" +
			"1 click next · 2 previous · 3 volume · 4 reset\n" +
			"hold last: 1 stop · 2 mode · 3 interval · 4 repeat",
	)

	return panelStyle.Render(strings.TrimRight(b.String(), "\n")) + "\n" + help + "\n"
}

func main() {
	m, err := initialModel()
	if err != nil {
		fmt.Fprintf(os.Stderr, "simulator: %v\n", err)
		os.Exit(1)
	}
	if _, err := tea.NewProgram(m).Run(); err != nil {
		fmt.Fprintf(os.Stderr, "simulator: %v\n", err)
		os.Exit(1)
	}
}
