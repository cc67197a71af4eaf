package cli

import (
	"fmt"
	"math"
	"strings"
)

// MissingValue is shown for NaN and infinite numbers.
const MissingValue = "-"

// Table formats right-aligned numeric columns under a header row.
type Table struct {
	Headers []string
	Rows    [][]string
}

// String renders the table with every column padded to its widest cell.
func (t *Table) String() string {
	if len(t.Headers) == 0 {
		return ""
	}

	widths := make([]int, len(t.Headers))
	for i, h := range t.Headers {
		widths[i] = len(h)
	}

	for _, row := range t.Rows {
		for i, cell := range row {
			if i < len(widths) {
				widths[i] = max(widths[i], len(cell))
			}
		}
	}

	var sb strings.Builder

	writeRow := func(cells []string, render func(string) string) {
		for i := range widths {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}

			if i > 0 {
				sb.WriteString("  ")
			}

			sb.WriteString(render(fmt.Sprintf("%*s", widths[i], cell)))
		}

		sb.WriteString("\n")
	}

	writeRow(t.Headers, func(s string) string { return KeyStyle.Render(s) })

	for _, row := range t.Rows {
		writeRow(row, func(s string) string { return s })
	}

	return sb.String()
}

// FormatDB formats a level in dB with the given number of decimals and an
// explicit sign, or MissingValue when v is not finite.
func FormatDB(v float64, decimals int) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return MissingValue
	}

	// Avoid printing "-0.0".
	if math.Abs(v) < 0.5*math.Pow(10, -float64(decimals)) {
		v = 0
	}

	return fmt.Sprintf("%+.*f", decimals, v)
}
