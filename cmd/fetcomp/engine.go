package main

import (
	"fmt"

	"github.com/cwbudde/algo-fetcomp/dsp/effects/dynamics"
	"github.com/cwbudde/algo-fetcomp/dsp/resample"
)

// EngineFlags are the compressor controls shared by every command.
type EngineFlags struct {
	InputGain    float64 `name:"input-gain" default:"0" help:"Input gain in dB, -40 to 40."`
	OutputGain   float64 `name:"output-gain" default:"0" help:"Output gain in dB, -40 to 40."`
	Ratio        float64 `default:"4" help:"Ratio button: 4, 8, 12 or 20."`
	Attack       float64 `default:"4" help:"Attack knob, 1 (slow) to 7 (fast)."`
	Release      float64 `default:"4" help:"Release knob, 1 (slow) to 7 (fast)."`
	AllButtons   bool    `name:"all-buttons" help:"Engage all-buttons mode."`
	BlockSize    int     `name:"block-size" default:"512" help:"Host block size in samples."`
	Oversampling int     `default:"4" help:"Oversampling factor: 1, 2, 4, 8 or 16."`
	Quality      string  `default:"balanced" enum:"fast,balanced,best" help:"Oversampling filter quality (fast, balanced, best)."`
	NoMakeupEQ   bool    `name:"no-makeup-eq" help:"Disable the dynamic shelf makeup EQ."`
}

// Validate checks the controls against the unit's ranges.
func (f *EngineFlags) Validate() error {
	r := dynamics.FETParameterRanges()

	switch {
	case !r.InputGain.Contains(f.InputGain):
		return fmt.Errorf("--input-gain %g outside [%g, %g]", f.InputGain, r.InputGain.Min, r.InputGain.Max)
	case !r.OutputGain.Contains(f.OutputGain):
		return fmt.Errorf("--output-gain %g outside [%g, %g]", f.OutputGain, r.OutputGain.Min, r.OutputGain.Max)
	case !dynamics.IsFETRatio(f.Ratio):
		return fmt.Errorf("--ratio must be one of %v: %g", r.Ratios, f.Ratio)
	case !r.Attack.Contains(f.Attack):
		return fmt.Errorf("--attack %g outside [%g, %g]", f.Attack, r.Attack.Min, r.Attack.Max)
	case !r.Release.Contains(f.Release):
		return fmt.Errorf("--release %g outside [%g, %g]", f.Release, r.Release.Min, r.Release.Max)
	case f.BlockSize <= 0:
		return fmt.Errorf("--block-size must be positive: %d", f.BlockSize)
	}

	if _, ok := resample.ParseQuality(f.Quality); !ok {
		return fmt.Errorf("--quality must be fast, balanced or best: %q", f.Quality)
	}

	return nil
}

// newCompressor builds an unprepared compressor with the flag settings.
func (f *EngineFlags) newCompressor() (*dynamics.FETCompressor, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	quality, _ := resample.ParseQuality(f.Quality)

	comp, err := dynamics.NewFETCompressor(
		dynamics.WithOversampling(f.Oversampling),
		dynamics.WithResampleQuality(quality),
		dynamics.WithMakeupEQ(!f.NoMakeupEQ),
	)
	if err != nil {
		return nil, err
	}

	comp.SetInputGain(f.InputGain)
	comp.SetOutputGain(f.OutputGain)
	comp.SetRatio(f.Ratio)
	comp.SetAttack(f.Attack)
	comp.SetRelease(f.Release)
	comp.SetAllButtons(f.AllButtons)

	return comp, nil
}

// describe returns a one-line summary of the controls for logs and titles.
func (f *EngineFlags) describe() string {
	mode := fmt.Sprintf("%g:1", f.Ratio)
	if f.AllButtons {
		mode = "all buttons"
	}

	return fmt.Sprintf("%s, in %+.1f dB, out %+.1f dB, attack %g, release %g, %dx",
		mode, f.InputGain, f.OutputGain, f.Attack, f.Release, f.Oversampling)
}
