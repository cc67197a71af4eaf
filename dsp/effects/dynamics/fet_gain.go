package dynamics

import (
	"math"

	"github.com/cwbudde/algo-fetcomp/dsp/core"
)

const (
	// Fixed thresholds per ratio button, in dB.
	fetThreshold4DB  = -15.0
	fetThreshold8DB  = -10.8
	fetThreshold12DB = -9.6
	fetThreshold20DB = -7.6

	// All-buttons threshold and ratio move with the transient modulation.
	allButtonsThresholdDB    = -18.0
	allButtonsThresholdSwing = 2.0
	allButtonsRatio          = 16.0
	allButtonsRatioSwing     = 4.0
	minAllButtonsRatio       = 12.0
	maxAllButtonsRatio       = 20.0

	maxFETReductionDB = 60.0
	levelFloor        = 1e-12
)

// Threshold returns the compression threshold in dB for the selected ratio.
// In all-buttons mode it is -18 dB shifted by 2 dB per unit of modulation.
// Ratios other than 4, 8, 12 and 20 use the 4:1 threshold.
func Threshold(ratio float64, allButtons bool, modulation float64) float64 {
	if allButtons {
		return allButtonsThresholdDB + allButtonsThresholdSwing*modulation
	}

	switch ratio {
	case 8:
		return fetThreshold8DB
	case 12:
		return fetThreshold12DB
	case 20:
		return fetThreshold20DB
	default:
		return fetThreshold4DB
	}
}

// EffectiveRatio returns the compression ratio in use. All-buttons mode
// ignores the selected ratio and swings around 16:1 within [12, 20].
func EffectiveRatio(ratio float64, allButtons bool, modulation float64) float64 {
	if allButtons {
		return core.Clamp(allButtonsRatio+allButtonsRatioSwing*modulation, minAllButtonsRatio, maxAllButtonsRatio)
	}

	return ratio
}

// ComputeGain maps a detected linear peak level to the target gain
// multiplier in (0, 1]. Levels at or below the threshold return exactly 1.
// Above it the static law out = T + (in-T)/ratio applies, with the
// reduction limited to 60 dB. Ratios below 1 act as 1.
func ComputeGain(level, ratio float64, allButtons bool, modulation float64) float64 {
	if !(level > 0) {
		return 1
	}

	if math.IsInf(level, 1) {
		return mathPower10(-maxFETReductionDB / 20)
	}

	threshold := Threshold(ratio, allButtons, modulation)

	levelDB := 20 * mathLog10(level+levelFloor)
	if levelDB <= threshold {
		return 1
	}

	r := EffectiveRatio(ratio, allButtons, modulation)
	if !(r >= 1) {
		r = 1
	}

	over := levelDB - threshold
	reductionDB := core.Clamp(over-over/r, 0, maxFETReductionDB)

	return mathPower10(-reductionDB / 20)
}

// SmoothingCoeff returns the one-pole coefficient 1 - exp(-1/(t*fs)) for a
// time constant in milliseconds at sampleRate. Non-positive inputs return
// 0, which holds the filtered value.
func SmoothingCoeff(timeMs, sampleRate float64) float64 {
	if !(sampleRate > 0) || !(timeMs > 0) {
		return 0
	}

	return 1 - mathExp(-1/(0.001*timeMs*sampleRate))
}
