package dynamics

import (
	"math"

	"github.com/cwbudde/algo-fetcomp/dsp/core"
	"github.com/cwbudde/algo-fetcomp/dsp/filter/biquad"
	"github.com/cwbudde/algo-fetcomp/dsp/filter/design"
)

// MaxMakeupBoostDB is the shelf boost at full gain reduction.
const MaxMakeupBoostDB = 1.0

const (
	makeupEngageGain  = 0.95
	makeupHysteresis  = 0.1
	makeupLowShelfHz  = 100.0
	makeupHighShelfHz = 8000.0
	makeupShelfQ      = 0.707
	// Shelf corners are kept below this fraction of the sample rate.
	makeupMaxCornerRatio = 0.45
)

// makeupEQ is the low and high shelf pair that brightens and fattens the
// signal while the compressor is working. Boost follows the depth of the
// smoothed gain and is only redesigned when it moves by more than 0.1 dB.
type makeupEQ struct {
	sampleRate  float64
	chain       *biquad.Chain
	coeffs      [2]biquad.Coefficients
	lastBoostDB float64
}

func newMakeupEQ(sampleRate float64) makeupEQ {
	return makeupEQ{
		sampleRate: sampleRate,
		chain:      biquad.NewIdentityChain(2),
	}
}

// MakeupBoostDB returns the shelf boost in dB for a smoothed gain in
// (0, 1]: 0 dB at unity rising linearly to 1 dB at full reduction.
func MakeupBoostDB(smoothedGain float64) float64 {
	return core.Map(1-smoothedGain, 0, 1, 0, MaxMakeupBoostDB)
}

// process filters x when the smoothed gain is below the engage point and
// passes it through otherwise. Filter state is held while disengaged.
func (m *makeupEQ) process(x, smoothedGain float64) float64 {
	if smoothedGain >= makeupEngageGain {
		return x
	}

	boostDB := MakeupBoostDB(smoothedGain)
	if math.Abs(boostDB-m.lastBoostDB) > makeupHysteresis {
		m.commit(boostDB)
	}

	return m.chain.ProcessSample(x)
}

// commit redesigns both shelves for boostDB. The chain keeps its delay
// lines and does not allocate.
func (m *makeupEQ) commit(boostDB float64) {
	gain := mathPower10(boostDB / 20)
	maxCorner := makeupMaxCornerRatio * m.sampleRate

	m.coeffs[0] = shelfOrIdentity(design.LowShelfGain(min(makeupLowShelfHz, maxCorner), makeupShelfQ, gain, m.sampleRate))
	m.coeffs[1] = shelfOrIdentity(design.HighShelfGain(min(makeupHighShelfHz, maxCorner), makeupShelfQ, gain, m.sampleRate))
	m.chain.UpdateCoefficients(m.coeffs[:], 1)
	m.lastBoostDB = boostDB
}

func (m *makeupEQ) reset() {
	m.chain.ResetToIdentity()
	m.coeffs = [2]biquad.Coefficients{biquad.Identity(), biquad.Identity()}
	m.lastBoostDB = 0
}

// shelfOrIdentity replaces zero or unstable designs with a passthrough.
func shelfOrIdentity(c biquad.Coefficients) biquad.Coefficients {
	if c.IsZero() || !c.IsStable() {
		return biquad.Identity()
	}

	return c
}

// MakeupShelves returns the low and high shelf pair the makeup EQ applies
// at boostDB when running at sampleRate. It allocates and is intended for
// inspection outside the audio path.
func MakeupShelves(sampleRate, boostDB float64) *biquad.Chain {
	m := newMakeupEQ(sampleRate)
	m.commit(boostDB)

	return m.chain
}
