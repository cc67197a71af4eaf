package main

import (
	"fmt"
	"math"
	"os"
	"strconv"

	"github.com/cwbudde/algo-fetcomp/dsp/core"
	"github.com/cwbudde/algo-fetcomp/dsp/effects/dynamics"
	"github.com/cwbudde/algo-fetcomp/internal/cli"
	"github.com/cwbudde/algo-fetcomp/measure/thd"
)

// THDCmd measures harmonic distortion of a sine through the compressor.
type THDCmd struct {
	EngineFlags `embed:""`

	Freq      float64 `default:"1000" help:"Test tone frequency in Hz; snapped to the nearest FFT bin."`
	Level     float64 `default:"-12" help:"Test tone peak level in dBFS."`
	Rate      float64 `default:"48000" help:"Sample rate in Hz."`
	FFTSize   int     `name:"fft-size" default:"8192" help:"Analysis FFT size."`
	Harmonics int     `default:"9" help:"Number of harmonics to report."`
	Warmup    float64 `default:"0.5" help:"Settling time before analysis in seconds."`
}

// thdReport is a measurement plus the conditions it was taken under.
type thdReport struct {
	Freq        float64
	ReductionDB float64
	Result      thd.Result
}

// Run implements the thd command.
func (c *THDCmd) Run(g *Globals) error {
	comp, err := c.newCompressor()
	if err != nil {
		return err
	}

	g.log("[THD] %g Hz at %g dBFS, %s", c.Freq, c.Level, c.describe())

	rep, err := measureTHD(comp, c.Freq, c.Level, c.Rate, c.FFTSize, c.Harmonics, c.Warmup, c.BlockSize)
	if err != nil {
		return err
	}

	res := rep.Result

	cli.PrintTitle(os.Stdout, "fetcomp thd")
	cli.PrintKeyValue(os.Stdout, "Settings", c.describe())
	cli.PrintKeyValue(os.Stdout, "Tone", fmt.Sprintf("%.2f Hz at %+.1f dBFS", rep.Freq, c.Level))
	cli.PrintKeyValue(os.Stdout, "Gain reduction", cli.FormatDB(rep.ReductionDB, 1)+" dB")
	cli.PrintKeyValue(os.Stdout, "Output level", cli.FormatDB(core.LinearToDB(res.Amplitude), 1)+" dBFS")
	cli.PrintKeyValue(os.Stdout, "THD", fmt.Sprintf("%.4f %% (%s dB)", 100*res.THD, cli.FormatDB(res.THD_dB, 1)))
	cli.PrintKeyValue(os.Stdout, "THD+N", fmt.Sprintf("%.4f %% (%s dB)", 100*res.THDN, cli.FormatDB(res.THDN_dB, 1)))
	cli.PrintKeyValue(os.Stdout, "Odd / even", fmt.Sprintf("%.4f %% / %.4f %%", 100*res.OddHD, 100*res.EvenHD))
	fmt.Println()
	fmt.Print(harmonicTable(res).String())

	return nil
}

// measureTHD runs a bin-centered sine through comp for warmup seconds plus
// one FFT frame and analyzes the final frame.
func measureTHD(comp *dynamics.FETCompressor, freq, levelDB, rate float64, fftSize, harmonics int, warmup float64, blockSize int) (thdReport, error) {
	if fftSize <= 0 || fftSize&(fftSize-1) != 0 {
		return thdReport{}, fmt.Errorf("fft size must be a power of two: %d", fftSize)
	}

	if !(freq > 0) || freq >= rate/2 {
		return thdReport{}, fmt.Errorf("tone frequency must be in (0, %g): %g", rate/2, freq)
	}

	if err := comp.Prepare(rate, 1, blockSize); err != nil {
		return thdReport{}, err
	}

	bin := math.Max(1, math.Round(freq*float64(fftSize)/rate))
	freq = bin * rate / float64(fftSize)

	total := int(math.Max(warmup, 0)*rate) + fftSize
	amp := core.DBToLinear(levelDB)
	step := 2 * math.Pi * freq / rate

	signal := make([]float64, total)
	for i := range signal {
		signal[i] = amp * math.Sin(step*float64(i))
	}

	reduction := 0.0

	for start := 0; start < total; start += blockSize {
		comp.Process([][]float64{signal[start:min(start+blockSize, total)]})

		if start+blockSize >= total-fftSize {
			reduction = min(reduction, comp.GainReductionDB())
		}
	}

	res, err := thd.AnalyzeSignal(signal, thd.Config{
		SampleRate:      rate,
		FFTSize:         fftSize,
		FundamentalFreq: freq,
		MaxHarmonics:    harmonics,
	})
	if err != nil {
		return thdReport{}, err
	}

	return thdReport{Freq: freq, ReductionDB: reduction, Result: res}, nil
}

func harmonicTable(res thd.Result) *cli.Table {
	table := &cli.Table{Headers: []string{"harmonic", "level dBc"}}

	for i, h := range res.Harmonics {
		table.Rows = append(table.Rows, []string{
			strconv.Itoa(i + 2),
			cli.FormatDB(core.LinearToDB(h), 1),
		})
	}

	return table
}
