// Package ui provides the Bubbletea gain reduction meter shown during
// realtime playback.
package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// RefreshInterval is the meter polling period, about 30 Hz.
const RefreshInterval = time.Second / 30

const (
	// peakHoldTime is how long the deepest reading is held before it decays.
	peakHoldTime = 1500 * time.Millisecond
	// peakDecayDBPerTick is the hold marker's recovery speed after the hold.
	peakDecayDBPerTick = 0.5
)

// MeterSource is polled for the current gain reduction in dB (0 or less).
type MeterSource interface {
	GainReductionDB() float64
}

// Controls receives the toggles bound to keys.
type Controls interface {
	SetBypass(enabled bool)
	SetAllButtons(enabled bool)
}

// Model is the Bubbletea model of the meter screen.
type Model struct {
	Title    string
	Subtitle string

	source   MeterSource
	controls Controls

	ReductionDB float64
	PeakDB      float64
	peakAt      time.Time

	Bypass     bool
	AllButtons bool

	StartTime time.Time
	Elapsed   time.Duration
	Done      bool
	Err       error

	Width int
}

// NewModel creates a meter model. controls may be nil, which disables the
// key toggles.
func NewModel(title, subtitle string, source MeterSource, controls Controls, allButtons bool) Model {
	return Model{
		Title:      title,
		Subtitle:   subtitle,
		source:     source,
		controls:   controls,
		AllButtons: allButtons,
		StartTime:  time.Now(),
	}
}

// Init starts polling.
func (m Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(RefreshInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Update handles key presses, meter ticks and playback completion.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "b":
			m.Bypass = !m.Bypass
			if m.controls != nil {
				m.controls.SetBypass(m.Bypass)
			}
		case "a":
			m.AllButtons = !m.AllButtons
			if m.controls != nil {
				m.controls.SetAllButtons(m.AllButtons)
			}
		}

	case tea.WindowSizeMsg:
		m.Width = msg.Width

	case tickMsg:
		m = m.poll(time.Time(msg))
		if m.Done {
			return m, nil
		}

		return m, tick()

	case PlaybackDoneMsg:
		m.Done = true
		m.Err = msg.Err

		return m, tea.Quit
	}

	return m, nil
}

// poll reads the meter and updates the peak hold marker.
func (m Model) poll(now time.Time) Model {
	if m.source != nil {
		m.ReductionDB = min(m.source.GainReductionDB(), 0)
	}

	m.Elapsed = now.Sub(m.StartTime)

	switch {
	case m.ReductionDB <= m.PeakDB:
		m.PeakDB = m.ReductionDB
		m.peakAt = now
	case now.Sub(m.peakAt) > peakHoldTime:
		m.PeakDB = min(m.PeakDB+peakDecayDBPerTick, m.ReductionDB)
	}

	return m
}

// View renders the meter screen.
func (m Model) View() string {
	if m.Done {
		return renderSummary(m)
	}

	return renderMeterView(m)
}
