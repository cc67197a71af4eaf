package main

import (
	"fmt"
	"os"
	"time"

	"github.com/cwbudde/algo-fetcomp/dsp/core"
	"github.com/cwbudde/algo-fetcomp/dsp/effects/dynamics"
	"github.com/cwbudde/algo-fetcomp/internal/cli"
	"github.com/cwbudde/algo-fetcomp/internal/wavio"
	"github.com/cwbudde/algo-fetcomp/stats/level"
)

// RenderCmd processes a file offline.
type RenderCmd struct {
	EngineFlags `embed:""`

	Input             string `arg:"" type:"existingfile" help:"Input WAV file."`
	Output            string `arg:"" type:"path" help:"Output WAV file."`
	BitDepth          int    `name:"bit-depth" default:"0" enum:"0,16,24,32" help:"Output bit depth; 0 keeps the input depth."`
	CompensateLatency bool   `name:"compensate-latency" default:"true" negatable:"" help:"Remove the oversampling delay from the output."`
}

// renderStats summarizes an offline render.
type renderStats struct {
	Frames         int
	Blocks         int
	LatencySamples int
	DeepestDB      float64
	MeanDB         float64
	Input          level.Stats
	Output         level.Stats
}

// Run implements the render command.
func (c *RenderCmd) Run(g *Globals) error {
	comp, err := c.newCompressor()
	if err != nil {
		return err
	}

	in, err := wavio.ReadFile(c.Input)
	if err != nil {
		return err
	}

	g.log("[RENDER] %s: %d Hz, %d ch, %d bit, %d frames", c.Input, in.SampleRate, len(in.Channels), in.BitDepth, in.Frames())
	g.log("[RENDER] controls: %s", c.describe())

	start := time.Now()

	out, stats, err := renderAudio(comp, in, c.BlockSize, c.CompensateLatency)
	if err != nil {
		return err
	}

	if c.BitDepth != 0 {
		out.BitDepth = c.BitDepth
	}

	if err := wavio.WriteFile(c.Output, out); err != nil {
		return err
	}

	g.log("[RENDER] done in %v, %d blocks", time.Since(start), stats.Blocks)

	cli.PrintTitle(os.Stdout, "fetcomp render")
	cli.PrintKeyValue(os.Stdout, "Input", c.Input)
	cli.PrintKeyValue(os.Stdout, "Output", c.Output)
	cli.PrintKeyValue(os.Stdout, "Settings", c.describe())
	cli.PrintKeyValue(os.Stdout, "Duration", fmt.Sprintf("%.2f s", out.Duration()))
	cli.PrintKeyValue(os.Stdout, "Latency", fmt.Sprintf("%d samples", stats.LatencySamples))
	cli.PrintKeyValue(os.Stdout, "Deepest reduction", cli.FormatDB(stats.DeepestDB, 1)+" dB")
	cli.PrintKeyValue(os.Stdout, "Mean reduction", cli.FormatDB(stats.MeanDB, 1)+" dB")

	delta := level.Compare(stats.Input, stats.Output)

	cli.PrintKeyValue(os.Stdout, "Peak in / out", fmt.Sprintf("%s / %s dBFS",
		cli.FormatDB(stats.Input.Peak_dB, 1), cli.FormatDB(stats.Output.Peak_dB, 1)))
	cli.PrintKeyValue(os.Stdout, "RMS in / out", fmt.Sprintf("%s / %s dBFS",
		cli.FormatDB(stats.Input.RMS_dB, 1), cli.FormatDB(stats.Output.RMS_dB, 1)))
	cli.PrintKeyValue(os.Stdout, "Crest factor", fmt.Sprintf("%s dB (%s dB)",
		cli.FormatDB(stats.Output.CrestFactor_dB, 1), cli.FormatDB(delta.CrestChange_dB, 1)))

	if stats.Output.Clipped > 0 {
		cli.PrintKeyValue(os.Stdout, "Clipped samples", fmt.Sprint(stats.Output.Clipped))
	}

	return nil
}

// renderAudio prepares comp for in and processes it block by block. With
// compensate set the oversampling latency is flushed with silence and cut
// from the start so the output lines up with the input.
func renderAudio(comp *dynamics.FETCompressor, in *wavio.Audio, blockSize int, compensate bool) (*wavio.Audio, renderStats, error) {
	spec := core.ApplyProcessorOptions(
		core.WithSampleRate(float64(in.SampleRate)),
		core.WithChannels(len(in.Channels)),
		core.WithBlockSize(blockSize),
	)

	if err := comp.Prepare(spec.SampleRate, spec.Channels, spec.MaxBlockSize); err != nil {
		return nil, renderStats{}, err
	}

	frames := in.Frames()
	stats := renderStats{Frames: frames}

	latency := 0
	if compensate {
		latency = comp.LatencySamples()
	}

	stats.LatencySamples = comp.LatencySamples()
	total := frames + latency

	inStats := level.NewStreamingStats()
	work := make([][]float64, len(in.Channels))

	for ch := range work {
		inStats.Update(in.Channels[ch][:frames])

		work[ch] = make([]float64, total)
		copy(work[ch], in.Channels[ch][:frames])
	}

	block := make([][]float64, len(work))
	sumDB := 0.0

	for startFrame := 0; startFrame < total; startFrame += spec.MaxBlockSize {
		end := min(startFrame+spec.MaxBlockSize, total)
		for ch := range work {
			block[ch] = work[ch][startFrame:end]
		}

		comp.Process(block)

		gr := comp.GainReductionDB()
		stats.DeepestDB = min(stats.DeepestDB, gr)
		sumDB += gr
		stats.Blocks++
	}

	if stats.Blocks > 0 {
		stats.MeanDB = sumDB / float64(stats.Blocks)
	}

	out := &wavio.Audio{
		SampleRate: in.SampleRate,
		BitDepth:   in.BitDepth,
		Channels:   make([][]float64, len(work)),
	}

	outStats := level.NewStreamingStats()

	for ch := range work {
		out.Channels[ch] = work[ch][latency:]
		outStats.Update(out.Channels[ch])
	}

	stats.Input = inStats.Result()
	stats.Output = outStats.Result()

	return out, stats, nil
}
