package ui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

type fakeMeter struct{ db float64 }

func (f *fakeMeter) GainReductionDB() float64 { return f.db }

type fakeControls struct {
	bypass, allButtons bool
	calls              int
}

func (f *fakeControls) SetBypass(v bool)     { f.bypass = v; f.calls++ }
func (f *fakeControls) SetAllButtons(v bool) { f.allButtons = v; f.calls++ }

func TestModel_PollTracksMeterAndPeak(t *testing.T) {
	meter := &fakeMeter{db: -6}
	m := NewModel("fetcomp", "", meter, nil, false)
	start := m.StartTime

	next, cmd := m.Update(tickMsg(start.Add(RefreshInterval)))
	m = next.(Model)

	if cmd == nil {
		t.Fatal("tick must schedule the next tick")
	}

	if m.ReductionDB != -6 || m.PeakDB != -6 {
		t.Fatalf("reduction=%v peak=%v, want -6/-6", m.ReductionDB, m.PeakDB)
	}

	// Within the hold time the peak stays.
	meter.db = -1
	next, _ = m.Update(tickMsg(start.Add(time.Second)))
	m = next.(Model)

	if m.ReductionDB != -1 || m.PeakDB != -6 {
		t.Fatalf("reduction=%v peak=%v, want -1/-6", m.ReductionDB, m.PeakDB)
	}

	// After the hold it recovers toward the current reading.
	next, _ = m.Update(tickMsg(start.Add(3 * time.Second)))
	m = next.(Model)

	if m.PeakDB != -5.5 {
		t.Fatalf("peak after hold = %v, want -5.5", m.PeakDB)
	}

	// Positive readings are treated as no reduction.
	meter.db = 2
	next, _ = m.Update(tickMsg(start.Add(4 * time.Second)))

	if got := next.(Model).ReductionDB; got != 0 {
		t.Fatalf("reduction = %v, want 0", got)
	}
}

func TestModel_KeyToggles(t *testing.T) {
	controls := &fakeControls{}
	m := NewModel("fetcomp", "", &fakeMeter{}, controls, true)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("b")})
	m = next.(Model)

	if !m.Bypass || !controls.bypass {
		t.Fatal("b did not enable bypass")
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a")})
	m = next.(Model)

	if m.AllButtons || controls.allButtons || controls.calls != 2 {
		t.Fatalf("a did not disable all-buttons: model=%v controls=%+v", m.AllButtons, controls)
	}

	// Nil controls only change the display.
	m = NewModel("fetcomp", "", &fakeMeter{}, nil, false)
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("b")})

	if !next.(Model).Bypass {
		t.Fatal("toggle without controls not shown")
	}
}

func TestModel_QuitAndDone(t *testing.T) {
	m := NewModel("fetcomp", "", &fakeMeter{}, nil, false)

	if _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")}); cmd == nil {
		t.Fatal("q must quit")
	}

	next, cmd := m.Update(PlaybackDoneMsg{Err: errors.New("device lost")})
	m = next.(Model)

	if !m.Done || cmd == nil {
		t.Fatal("playback done must finish the program")
	}

	if !strings.Contains(m.View(), "device lost") {
		t.Fatalf("summary missing error: %q", m.View())
	}

	if _, cmd := m.Update(tickMsg(time.Now())); cmd != nil {
		t.Fatal("finished model must stop ticking")
	}
}

func TestMeterCells(t *testing.T) {
	tests := []struct {
		db   float64
		size int
		want int
	}{
		{0, 40, 0},
		{-10, 40, 20},
		{-20, 40, 40},
		{-60, 40, 40},
		{3, 40, 0},
	}

	for _, tt := range tests {
		if got := meterCells(tt.db, tt.size); got != tt.want {
			t.Errorf("meterCells(%v, %d) = %d, want %d", tt.db, tt.size, got, tt.want)
		}
	}
}

func TestRenderBar(t *testing.T) {
	bar := renderBar(-5, -10, 20)

	if n := strings.Count(bar, "█"); n != 5 {
		t.Fatalf("filled cells = %d, want 5", n)
	}

	if strings.Count(bar, "│") != 1 {
		t.Fatalf("peak marker missing: %q", bar)
	}

	if n := strings.Count(renderBar(0, 0, 20), "·"); n != 20 {
		t.Fatalf("empty bar track = %d, want 20", n)
	}
}

func TestBarSize(t *testing.T) {
	for _, tt := range []struct{ width, want int }{
		{0, 40}, {200, 40}, {44, 20}, {20, 10},
	} {
		if got := barSize(tt.width); got != tt.want {
			t.Errorf("barSize(%d) = %d, want %d", tt.width, got, tt.want)
		}
	}
}

func TestView(t *testing.T) {
	m := NewModel("fetcomp", "song.wav", &fakeMeter{}, nil, true)
	m.ReductionDB = -4.5

	view := m.View()
	for _, want := range []string{"fetcomp", "song.wav", "-4.5 dB", "all buttons", "q: quit"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}
