package dynamics

import (
	"math"

	"github.com/cwbudde/algo-fetcomp/dsp/core"
)

const (
	// Attack and release knobs use the 1..7 scale of the modeled hardware.
	minFETKnob     = 1.0
	maxFETKnob     = 7.0
	defaultFETKnob = 4.0

	// Higher knob values are faster.
	slowestFETAttackMs  = 0.8
	fastestFETAttackMs  = 0.02
	slowestFETReleaseMs = 1100.0
	fastestFETReleaseMs = 50.0
)

// MapAttackMs converts an attack knob position in [1, 7] to an attack
// time in milliseconds. Knob 1 is 0.8 ms, knob 7 is 0.02 ms, linear in
// between. Out-of-range positions are clamped and NaN selects the default
// knob 4.
func MapAttackMs(knob float64) float64 {
	return mapKnob(knob, slowestFETAttackMs, fastestFETAttackMs)
}

// MapReleaseMs converts a release knob position in [1, 7] to a release
// time in milliseconds, from 1100 ms at knob 1 down to 50 ms at knob 7.
func MapReleaseMs(knob float64) float64 {
	return mapKnob(knob, slowestFETReleaseMs, fastestFETReleaseMs)
}

func mapKnob(knob, atMin, atMax float64) float64 {
	if math.IsNaN(knob) {
		knob = defaultFETKnob
	}

	k := core.Clamp(knob, minFETKnob, maxFETKnob)

	return core.Map(k, minFETKnob, maxFETKnob, atMin, atMax)
}
