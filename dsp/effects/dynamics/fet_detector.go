package dynamics

import (
	"math"

	"github.com/cwbudde/algo-fetcomp/dsp/core"
)

const (
	// Peak detector time constants in ms.
	fetDetectorAttackMs  = 0.02
	fetDetectorReleaseMs = 1.5

	// Transient detector time constants in ms.
	transientFastMs = 0.5
	transientSlowMs = 50.0

	transientThreshold = 1.3
	transientOffset    = 1.5
	transientDepth     = 0.3
	transientDecay     = 0.995
	transientEpsilon   = 1e-6
	maxModulation      = 0.5
)

// follow advances an asymmetric one-pole follower toward x, using attack
// when x exceeds the state and release otherwise.
func follow(state, x, attack, release float64) float64 {
	c := release
	if x > state {
		c = attack
	}

	return core.FlushDenormals(c*x + (1-c)*state)
}

// rectify returns |x|, or 0 for NaN and infinities.
func rectify(x float64) float64 {
	a := math.Abs(x)
	if !core.IsFinite(a) {
		return 0
	}

	return a
}

// transientModulator tracks a fast and a slow envelope of the rectified
// signal. When the fast one jumps ahead of the slow one the modulation is
// set from their ratio; otherwise it decays geometrically toward zero.
type transientModulator struct {
	fast       float64
	slow       float64
	modulation float64
}

// process updates both followers with the same coefficient in each
// direction and returns the new modulation in [-0.5, 0.5].
func (m *transientModulator) process(abs, fastCoeff, slowCoeff float64) float64 {
	m.fast = core.FlushDenormals(fastCoeff*abs + (1-fastCoeff)*m.fast)
	m.slow = core.FlushDenormals(slowCoeff*abs + (1-slowCoeff)*m.slow)

	ratio := m.fast / (m.slow + transientEpsilon)
	if ratio > transientThreshold {
		m.modulation = core.Clamp((ratio-transientOffset)*transientDepth, -maxModulation, maxModulation)
	} else {
		m.modulation = core.FlushDenormals(m.modulation * transientDecay)
	}

	return m.modulation
}

func (m *transientModulator) reset() {
	*m = transientModulator{}
}
