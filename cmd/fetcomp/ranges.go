package main

import (
	"fmt"
	"os"

	"github.com/cwbudde/algo-fetcomp/dsp/effects/dynamics"
	"github.com/cwbudde/algo-fetcomp/internal/cli"
)

// RangesCmd lists the control ranges.
type RangesCmd struct{}

// Run implements the ranges command.
func (RangesCmd) Run() error {
	r := dynamics.FETParameterRanges()

	cli.PrintTitle(os.Stdout, "fetcomp controls")
	cli.PrintKeyValue(os.Stdout, "Input gain", formatRange(r.InputGain, "dB"))
	cli.PrintKeyValue(os.Stdout, "Output gain", formatRange(r.OutputGain, "dB"))
	cli.PrintKeyValue(os.Stdout, "Attack knob", formatRange(r.Attack, "")+
		fmt.Sprintf(", %.2f..%.2f ms", dynamics.MapAttackMs(r.Attack.Min), dynamics.MapAttackMs(r.Attack.Max)))
	cli.PrintKeyValue(os.Stdout, "Release knob", formatRange(r.Release, "")+
		fmt.Sprintf(", %.0f..%.0f ms", dynamics.MapReleaseMs(r.Release.Min), dynamics.MapReleaseMs(r.Release.Max)))
	cli.PrintKeyValue(os.Stdout, "Ratios", fmt.Sprintf("%v, default %g", r.Ratios, r.DefaultRatio))

	return nil
}

func formatRange(r dynamics.ParameterRange, unit string) string {
	s := fmt.Sprintf("%g..%g", r.Min, r.Max)
	if r.Step > 0 {
		s += fmt.Sprintf(" step %g", r.Step)
	}

	if unit != "" {
		s += " " + unit
	}

	return s + fmt.Sprintf(", default %g", r.Default)
}
