package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

const (
	// meterRangeDB is the reduction shown by a full bar.
	meterRangeDB   = 20.0
	defaultBarSize = 40
	minBarSize     = 10
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#D97B00"))

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Italic(true)

	barStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#D97B00"))

	peakStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A40000")).
			Bold(true)

	trackStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#444444"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))

	onStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#00AA00")).
		Bold(true)
)

func renderMeterView(m Model) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(m.Title))
	b.WriteString("\n")

	if m.Subtitle != "" {
		b.WriteString(subtitleStyle.Render(m.Subtitle))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(labelStyle.Render("GR  "))
	b.WriteString(renderBar(m.ReductionDB, m.PeakDB, barSize(m.Width)))
	b.WriteString(fmt.Sprintf("  %6.1f dB", m.ReductionDB))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render(fmt.Sprintf("    peak %6.1f dB", m.PeakDB)))
	b.WriteString("\n\n")

	b.WriteString(renderToggle("bypass", m.Bypass))
	b.WriteString("   ")
	b.WriteString(renderToggle("all buttons", m.AllButtons))
	b.WriteString("   ")
	b.WriteString(labelStyle.Render(formatElapsed(m.Elapsed)))
	b.WriteString("\n\n")
	b.WriteString(subtitleStyle.Render("b: bypass  a: all buttons  q: quit"))
	b.WriteString("\n")

	return b.String()
}

func renderSummary(m Model) string {
	if m.Err != nil {
		return fmt.Sprintf("%s\nplayback stopped: %v\n", titleStyle.Render(m.Title), m.Err)
	}

	return fmt.Sprintf("%s\nplayed %s, deepest hold %.1f dB\n",
		titleStyle.Render(m.Title), formatElapsed(m.Elapsed), m.PeakDB)
}

func renderToggle(name string, on bool) string {
	if on {
		return onStyle.Render("[x] " + name)
	}

	return labelStyle.Render("[ ] " + name)
}

// barSize fits the bar into the terminal width with room for the labels.
func barSize(width int) int {
	if width <= 0 {
		return defaultBarSize
	}

	return max(min(width-24, defaultBarSize), minBarSize)
}

// meterCells converts a reduction in dB to filled cells of a bar of size
// cells.
func meterCells(reductionDB float64, size int) int {
	frac := -reductionDB / meterRangeDB
	frac = max(0, min(frac, 1))

	return int(frac*float64(size) + 0.5)
}

// renderBar draws the reduction growing from the left with the peak hold
// marker at its own position.
func renderBar(reductionDB, peakDB float64, size int) string {
	filled := meterCells(reductionDB, size)
	peak := meterCells(peakDB, size)

	var b strings.Builder

	for i := range size {
		switch {
		case i < filled:
			b.WriteString(barStyle.Render("█"))
		case peak > 0 && i == peak-1:
			b.WriteString(peakStyle.Render("│"))
		default:
			b.WriteString(trackStyle.Render("·"))
		}
	}

	return b.String()
}

func formatElapsed(d time.Duration) string {
	d = d.Round(time.Second)
	return fmt.Sprintf("%02d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}
