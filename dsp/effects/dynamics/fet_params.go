package dynamics

import (
	"math"
	"sync/atomic"
)

const (
	minFETGainDB     = -40.0
	maxFETGainDB     = 40.0
	fetGainStepDB    = 0.5
	defaultFETRatio  = 4.0
	defaultFETGainDB = 0.0
)

// fetRatios are the ratio buttons of the modeled unit.
var fetRatios = [...]float64{4, 8, 12, 20}

// ParameterRange describes a continuous control.
type ParameterRange struct {
	Min, Max, Step, Default float64
}

// Contains reports whether v lies within [Min, Max].
func (r ParameterRange) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// FETRanges lists the host-facing control ranges of the FET compressor.
type FETRanges struct {
	InputGain  ParameterRange
	OutputGain ParameterRange
	Attack     ParameterRange
	Release    ParameterRange
	Ratios     [4]float64
	// DefaultRatio is one of Ratios.
	DefaultRatio float64
}

// FETParameterRanges returns the control ranges: gains from -40 to +40 dB
// in 0.5 dB steps, attack and release knobs 1..7 centered on 4, and the
// four ratio buttons defaulting to 4:1.
func FETParameterRanges() FETRanges {
	gain := ParameterRange{Min: minFETGainDB, Max: maxFETGainDB, Step: fetGainStepDB, Default: defaultFETGainDB}
	knob := ParameterRange{Min: minFETKnob, Max: maxFETKnob, Step: 0, Default: defaultFETKnob}

	return FETRanges{
		InputGain:    gain,
		OutputGain:   gain,
		Attack:       knob,
		Release:      knob,
		Ratios:       fetRatios,
		DefaultRatio: defaultFETRatio,
	}
}

// IsFETRatio reports whether r is one of the ratio buttons.
func IsFETRatio(r float64) bool {
	for _, v := range fetRatios {
		if r == v {
			return true
		}
	}

	return false
}

// FETConfig is the per-block parameter snapshot of a FETCompressor with
// knob positions already mapped to milliseconds.
type FETConfig struct {
	InputGainDB  float64
	OutputGainDB float64
	Ratio        float64
	AttackMs     float64
	ReleaseMs    float64
	AllButtons   bool
	Bypass       bool
}

// atomicFloat64 stores a float64 as its IEEE-754 bits.
type atomicFloat64 struct {
	bits atomic.Uint64
}

func (a *atomicFloat64) Load() float64 {
	return math.Float64frombits(a.bits.Load())
}

func (a *atomicFloat64) Store(v float64) {
	a.bits.Store(math.Float64bits(v))
}

// fetParams holds every control as an independent atomic so setters may
// run on any goroutine while Process snapshots them once per block.
type fetParams struct {
	inputGainDB  atomicFloat64
	outputGainDB atomicFloat64
	ratio        atomicFloat64
	attackKnob   atomicFloat64
	releaseKnob  atomicFloat64
	allButtons   atomic.Bool
	bypass       atomic.Bool
}

func (p *fetParams) setDefaults() {
	p.inputGainDB.Store(defaultFETGainDB)
	p.outputGainDB.Store(defaultFETGainDB)
	p.ratio.Store(defaultFETRatio)
	p.attackKnob.Store(defaultFETKnob)
	p.releaseKnob.Store(defaultFETKnob)
	p.allButtons.Store(false)
	p.bypass.Store(false)
}

func (p *fetParams) snapshot() FETConfig {
	return FETConfig{
		InputGainDB:  p.inputGainDB.Load(),
		OutputGainDB: p.outputGainDB.Load(),
		Ratio:        p.ratio.Load(),
		AttackMs:     MapAttackMs(p.attackKnob.Load()),
		ReleaseMs:    MapReleaseMs(p.releaseKnob.Load()),
		AllButtons:   p.allButtons.Load(),
		Bypass:       p.bypass.Load(),
	}
}
