package dynamics

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-fetcomp/dsp/core"
	"github.com/cwbudde/algo-fetcomp/dsp/resample"
	"github.com/cwbudde/algo-vecmath"
)

// ErrInvalidPrepare is returned by Prepare for a non-positive sample rate,
// channel count or block size.
var ErrInvalidPrepare = errors.New("fet compressor: invalid prepare")

const (
	defaultFETOversampling = 4
	defaultFETHeadroomDB   = 12.0
	maxFETHeadroomDB       = 24.0

	compressionActiveDepth = 0.05
	historyBuildPerSecond  = 2.0
	historyDecay           = 0.999
	historyReleaseDepth    = 0.6

	allButtonsAttackDepth  = 0.3
	allButtonsReleaseDepth = 0.2
	minAllButtonsAttackMs  = 0.005
	maxAllButtonsAttackMs  = 2.0
	minAllButtonsReleaseMs = 15.0
	maxAllButtonsReleaseMs = 1000.0

	// minSmoothedGain is the 60 dB reduction limit as a multiplier.
	minSmoothedGain = 1e-3
)

type fetOptions struct {
	oversampling int
	quality      resample.Quality
	makeupEQ     bool
	headroomDB   float64
}

// FETOption configures a FETCompressor at construction.
type FETOption func(*fetOptions)

// WithOversampling sets the oversampling factor: 1, 2, 4, 8 or 16.
// Default is 4.
func WithOversampling(factor int) FETOption {
	return func(o *fetOptions) { o.oversampling = factor }
}

// WithResampleQuality selects the anti-aliasing filter quality.
func WithResampleQuality(q resample.Quality) FETOption {
	return func(o *fetOptions) { o.quality = q }
}

// WithMakeupEQ enables or disables the dynamic shelf boost. Default is on.
func WithMakeupEQ(enabled bool) FETOption {
	return func(o *fetOptions) { o.makeupEQ = enabled }
}

// WithHeadroom sets the internal gain added before the nonlinear stages
// and removed at the output, in dB. Default is 12 dB.
func WithHeadroom(dB float64) FETOption {
	return func(o *fetOptions) { o.headroomDB = dB }
}

// FETCompressor models a FET limiting amplifier: peak detection, fixed
// threshold per ratio button, an all-buttons mode with transient-driven
// threshold and ratio, program-dependent release, lookup-table saturation
// before and after the gain cell, a makeup shelf pair, and a soft clipped
// output, all running oversampled.
//
// Setters and GainReductionDB may be called from any goroutine. Prepare,
// Reset and Process must not run concurrently with each other. Process
// does not allocate.
type FETCompressor struct {
	opts   fetOptions
	params fetParams
	// meter holds the deepest target gain reduction of the last block in dB.
	meter atomicFloat64

	prepared bool
	spec     core.ProcessSpec
	osRate   float64
	table    *FETTable
	channels []fetChannel

	detectorAttack  float64
	detectorRelease float64
	transientFast   float64
	transientSlow   float64
	historyStep     float64
}

// fetChannel is the state of one audio channel.
type fetChannel struct {
	envelope     float64
	smoothedGain float64
	history      float64
	transient    transientModulator
	makeup       makeupEQ
	os           *resample.Oversampler
}

// fetBlock holds values that are constant for one Process call.
type fetBlock struct {
	allButtons  bool
	makeupEQ    bool
	ratio       float64
	attackMs    float64
	releaseMs   float64
	attackCoeff float64
	inputGain   float64
	outputGain  float64
}

// NewFETCompressor creates an unprepared compressor with default controls:
// 0 dB input and output gain, ratio 4, attack and release knobs at 4,
// all-buttons and bypass off.
func NewFETCompressor(opts ...FETOption) (*FETCompressor, error) {
	o := fetOptions{
		oversampling: defaultFETOversampling,
		quality:      resample.QualityBalanced,
		makeupEQ:     true,
		headroomDB:   defaultFETHeadroomDB,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	if o.oversampling < 1 || o.oversampling > resample.MaxFactor || o.oversampling&(o.oversampling-1) != 0 {
		return nil, fmt.Errorf("fet compressor oversampling must be a power of two in [1, %d]: %d",
			resample.MaxFactor, o.oversampling)
	}

	if o.headroomDB < 0 || o.headroomDB > maxFETHeadroomDB || !core.IsFinite(o.headroomDB) {
		return nil, fmt.Errorf("fet compressor headroom must be in [0, %f]: %f", maxFETHeadroomDB, o.headroomDB)
	}

	c := &FETCompressor{opts: o}
	c.params.setDefaults()

	return c, nil
}

// Prepare allocates per-channel state, oversamplers and the saturation
// table for the given stream and resets the compressor. On error the
// compressor is left unprepared and Process does nothing.
func (c *FETCompressor) Prepare(sampleRate float64, channels, maxBlockSize int) error {
	spec := core.ProcessSpec{SampleRate: sampleRate, Channels: channels, MaxBlockSize: maxBlockSize}
	if err := spec.Validate(); err != nil {
		c.prepared = false
		return fmt.Errorf("%w: %w", ErrInvalidPrepare, err)
	}

	state := make([]fetChannel, channels)
	osRate := sampleRate * float64(c.opts.oversampling)

	for ch := range state {
		os, err := resample.NewOversampler(c.opts.oversampling, maxBlockSize, resample.WithQuality(c.opts.quality))
		if err != nil {
			c.prepared = false
			return fmt.Errorf("fet compressor oversampler: %w", err)
		}

		state[ch].os = os
		state[ch].makeup = newMakeupEQ(osRate)
	}

	if c.table == nil {
		c.table = NewFETTable()
	}

	c.spec = spec
	c.osRate = osRate
	c.channels = state
	c.detectorAttack = SmoothingCoeff(fetDetectorAttackMs, osRate)
	c.detectorRelease = SmoothingCoeff(fetDetectorReleaseMs, osRate)
	c.transientFast = SmoothingCoeff(transientFastMs, osRate)
	c.transientSlow = SmoothingCoeff(transientSlowMs, osRate)
	c.historyStep = historyBuildPerSecond / osRate
	c.prepared = true

	c.Reset()

	return nil
}

// Reset clears detector, smoothing, history and filter state of every
// channel and the meter. Controls are kept.
func (c *FETCompressor) Reset() {
	for i := range c.channels {
		ch := &c.channels[i]
		ch.envelope = 0
		ch.smoothedGain = 1
		ch.history = 0
		ch.transient.reset()
		ch.makeup.reset()
		ch.os.Reset()
	}

	c.meter.Store(0)
}

// SetInputGain sets the input trim in dB.
func (c *FETCompressor) SetInputGain(dB float64) { c.params.inputGainDB.Store(dB) }

// SetOutputGain sets the output trim in dB.
func (c *FETCompressor) SetOutputGain(dB float64) { c.params.outputGainDB.Store(dB) }

// SetRatio selects the ratio button: 4, 8, 12 or 20. Other values use the
// 4:1 threshold with the given ratio.
func (c *FETCompressor) SetRatio(ratio float64) { c.params.ratio.Store(ratio) }

// SetAttack sets the attack knob position in [1, 7]; 7 is fastest.
func (c *FETCompressor) SetAttack(knob float64) { c.params.attackKnob.Store(knob) }

// SetRelease sets the release knob position in [1, 7]; 7 is fastest.
func (c *FETCompressor) SetRelease(knob float64) { c.params.releaseKnob.Store(knob) }

// SetAllButtons enables all-buttons mode.
func (c *FETCompressor) SetAllButtons(enabled bool) { c.params.allButtons.Store(enabled) }

// SetBypass passes audio through untouched while enabled.
func (c *FETCompressor) SetBypass(enabled bool) { c.params.bypass.Store(enabled) }

// Config returns the current control snapshot.
func (c *FETCompressor) Config() FETConfig { return c.params.snapshot() }

// GainReductionDB returns the deepest gain reduction of the last processed
// block in dB, 0 or negative.
func (c *FETCompressor) GainReductionDB() float64 { return c.meter.Load() }

// Prepared reports whether Prepare succeeded.
func (c *FETCompressor) Prepared() bool { return c.prepared }

// SampleRate returns the host sample rate passed to Prepare.
func (c *FETCompressor) SampleRate() float64 { return c.spec.SampleRate }

// Channels returns the channel count passed to Prepare.
func (c *FETCompressor) Channels() int { return c.spec.Channels }

// Oversampling returns the oversampling factor.
func (c *FETCompressor) Oversampling() int { return c.opts.oversampling }

// LatencySamples returns the delay introduced by oversampling at the host
// rate, rounded to whole samples. It is 0 before Prepare.
func (c *FETCompressor) LatencySamples() int {
	if !c.prepared || len(c.channels) == 0 {
		return 0
	}

	return int(math.Round(c.channels[0].os.Latency()))
}

// CurveDB returns the static output level in dB for a steady input level
// in dB with the current controls. Saturation and soft clipping are not
// included, and all-buttons mode is evaluated without transient modulation.
func (c *FETCompressor) CurveDB(inputDB float64) float64 {
	cfg := c.params.snapshot()

	detected := inputDB + cfg.InputGainDB + c.opts.headroomDB
	gain := ComputeGain(core.DBToLinear(detected), cfg.Ratio, cfg.AllButtons, 0)

	return detected + 20*math.Log10(gain) + cfg.OutputGainDB - c.opts.headroomDB
}

// Process compresses channels in place. Channels beyond the prepared count
// are left untouched and blocks longer than the prepared maximum are
// processed in consecutive chunks. The meter is updated once per call.
func (c *FETCompressor) Process(channels [][]float64) {
	if !c.prepared {
		return
	}

	cfg := c.params.snapshot()
	if cfg.Bypass {
		c.meter.Store(0)
		return
	}

	blk := fetBlock{
		allButtons:  cfg.AllButtons,
		makeupEQ:    c.opts.makeupEQ,
		ratio:       cfg.Ratio,
		attackMs:    cfg.AttackMs,
		releaseMs:   cfg.ReleaseMs,
		attackCoeff: SmoothingCoeff(cfg.AttackMs, c.osRate),
		inputGain:   core.DBToLinear(cfg.InputGainDB + c.opts.headroomDB),
		outputGain:  core.DBToLinear(cfg.OutputGainDB - c.opts.headroomDB),
	}

	deepest := 0.0
	n := min(len(channels), len(c.channels))
	maxBlock := c.spec.MaxBlockSize

	for i := range n {
		ch := &c.channels[i]
		buf := channels[i]

		for start := 0; start < len(buf); start += maxBlock {
			chunk := buf[start:min(start+maxBlock, len(buf))]
			deepest = min(deepest, c.processChunk(ch, chunk, &blk))
		}
	}

	c.meter.Store(deepest)
}

// processChunk runs one channel's chunk through the oversampled pipeline
// and returns the deepest target gain reduction in dB.
func (c *FETCompressor) processChunk(ch *fetChannel, chunk []float64, blk *fetBlock) float64 {
	up := ch.os.Up(chunk)
	vecmath.ScaleBlock(up, up, blk.inputGain)

	deepest := 0.0

	for i, x := range up {
		var grDB float64

		up[i], grDB = c.processSample(ch, x, blk)
		deepest = min(deepest, grDB)
	}

	ch.os.Down(chunk, up)

	return deepest
}

// processSample runs the per-sample pipeline on an input-trimmed sample
// and returns the output and the target gain reduction in dB.
func (c *FETCompressor) processSample(ch *fetChannel, x float64, blk *fetBlock) (float64, float64) {
	if !core.IsFinite(x) {
		x = 0
	}

	if blk.allButtons {
		ch.transient.process(rectify(x), c.transientFast, c.transientSlow)
		x = c.table.Lookup(x * allButtonsDrive)
	}

	x *= ch.smoothedGain

	ch.envelope = follow(ch.envelope, rectify(x), c.detectorAttack, c.detectorRelease)
	x = c.table.Lookup(x)

	if blk.makeupEQ {
		x = ch.makeup.process(x, ch.smoothedGain)
	}

	modulation := ch.transient.modulation
	if !blk.allButtons {
		modulation = 0
	}

	target := ComputeGain(ch.envelope, blk.ratio, blk.allButtons, modulation)
	grDB := core.GainToDB(target, levelFloor)

	c.smooth(ch, target, modulation, blk)

	return outputStage(x, blk.outputGain), grDB
}

// smooth moves the channel's smoothed gain toward target with the attack
// or program-dependent release time.
func (c *FETCompressor) smooth(ch *fetChannel, target, modulation float64, blk *fetBlock) {
	attackCoeff := blk.attackCoeff
	releaseMs := blk.releaseMs

	if blk.allButtons {
		attackMs := core.Clamp(blk.attackMs*(1+allButtonsAttackDepth*modulation), minAllButtonsAttackMs, maxAllButtonsAttackMs)
		attackCoeff = SmoothingCoeff(attackMs, c.osRate)
		releaseMs = core.Clamp(releaseMs*(1-allButtonsReleaseDepth*modulation), minAllButtonsReleaseMs, maxAllButtonsReleaseMs)
	}

	if 1-target > compressionActiveDepth {
		ch.history = min(ch.history+c.historyStep, 1)
	} else {
		ch.history = core.FlushDenormals(ch.history * historyDecay)
	}

	var coeff float64
	if target < ch.smoothedGain {
		coeff = attackCoeff
	} else {
		coeff = SmoothingCoeff(releaseMs*(1-historyReleaseDepth*ch.history), c.osRate)
	}

	ch.smoothedGain = core.Clamp(ch.smoothedGain+coeff*(target-ch.smoothedGain), minSmoothedGain, 1)
}
