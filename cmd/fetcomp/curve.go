package main

import (
	"fmt"
	"os"

	"github.com/cwbudde/algo-fetcomp/dsp/effects/dynamics"
	"github.com/cwbudde/algo-fetcomp/internal/cli"
)

// CurveCmd prints the static transfer curve.
type CurveCmd struct {
	EngineFlags `embed:""`

	From float64 `default:"-40" help:"First input level in dBFS."`
	To   float64 `default:"6" help:"Last input level in dBFS."`
	Step float64 `default:"2" help:"Level step in dB."`
	Rate float64 `default:"48000" help:"Host sample rate for the makeup shelf report."`
}

// shelfFrequencies are the report points of the makeup shelf table in Hz.
var shelfFrequencies = []float64{20, 50, 100, 200, 500, 1000, 2000, 5000, 8000, 12000, 16000, 20000}

// Run implements the curve command.
func (c *CurveCmd) Run(g *Globals) error {
	if !(c.Step > 0) || c.To < c.From {
		return fmt.Errorf("curve range needs --step > 0 and --to >= --from")
	}

	if !(c.Rate > 0) {
		return fmt.Errorf("--rate must be positive: %g", c.Rate)
	}

	comp, err := c.newCompressor()
	if err != nil {
		return err
	}

	g.log("[CURVE] %g..%g dB step %g, %s", c.From, c.To, c.Step, c.describe())

	table := curveTable(comp, c.From, c.To, c.Step)

	cli.PrintTitle(os.Stdout, "fetcomp curve")
	cli.PrintKeyValue(os.Stdout, "Gains", fmt.Sprintf("in %+.1f dB, out %+.1f dB", c.InputGain, c.OutputGain))
	fmt.Println()
	fmt.Print(table.String())

	if c.NoMakeupEQ {
		return nil
	}

	// The shelves run at the oversampled rate.
	shelves, radius := shelfTable(c.Rate * float64(c.Oversampling))

	fmt.Println()
	cli.PrintKeyValue(os.Stdout, "Makeup EQ", "full boost, low and high shelf")
	cli.PrintKeyValue(os.Stdout, "Pole radius", fmt.Sprintf("%.6f", radius))
	fmt.Println()
	fmt.Print(shelves.String())

	return nil
}

// shelfTable tabulates the gain of each makeup shelf and of the pair at
// full boost. It also returns the largest pole radius of the pair.
func shelfTable(rate float64) (*cli.Table, float64) {
	chain := dynamics.MakeupShelves(rate, dynamics.MaxMakeupBoostDB)

	headers := []string{"Hz"}
	for i := range chain.NumSections() {
		headers = append(headers, fmt.Sprintf("shelf %d dB", i+1))
	}

	headers = append(headers, "total dB")
	table := &cli.Table{Headers: headers}

	for _, f := range shelfFrequencies {
		if f >= rate/2 {
			break
		}

		row := []string{fmt.Sprintf("%g", f)}
		for i := range chain.NumSections() {
			row = append(row, cli.FormatDB(chain.Section(i).MagnitudeDB(f, rate), 2))
		}

		row = append(row, cli.FormatDB(chain.MagnitudeDB(f, rate), 2))
		table.Rows = append(table.Rows, row)
	}

	return table, chain.PoleRadius()
}

// curveTable tabulates output level per input level for every ratio button
// and for all-buttons mode. The compressor's ratio and mode are restored.
func curveTable(comp *dynamics.FETCompressor, from, to, step float64) *cli.Table {
	ranges := dynamics.FETParameterRanges()
	cfg := comp.Config()

	headers := []string{"in dBFS"}
	for _, r := range ranges.Ratios {
		headers = append(headers, fmt.Sprintf("%g:1", r))
	}

	headers = append(headers, "all")

	table := &cli.Table{Headers: headers}

	for level := from; level <= to+1e-9; level += step {
		row := []string{cli.FormatDB(level, 1)}

		comp.SetAllButtons(false)

		for _, r := range ranges.Ratios {
			comp.SetRatio(r)
			row = append(row, cli.FormatDB(comp.CurveDB(level), 1))
		}

		comp.SetAllButtons(true)
		row = append(row, cli.FormatDB(comp.CurveDB(level), 1))

		table.Rows = append(table.Rows, row)
	}

	comp.SetRatio(cfg.Ratio)
	comp.SetAllButtons(cfg.AllButtons)

	return table
}
