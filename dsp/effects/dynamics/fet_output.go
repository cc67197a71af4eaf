package dynamics

import (
	"math"

	"github.com/cwbudde/algo-fetcomp/dsp/core"
)

const (
	softClipThreshold = 0.98
	softClipDepth     = 0.05
)

// SoftClip passes |x| <= 0.98 unchanged and bends larger values into a
// tanh knee of height 0.05, so the output never exceeds 1.03 in magnitude.
func SoftClip(x float64) float64 {
	switch {
	case x > softClipThreshold:
		return softClipThreshold + math.Tanh(x-softClipThreshold)*softClipDepth
	case x < -softClipThreshold:
		return -softClipThreshold + math.Tanh(x+softClipThreshold)*softClipDepth
	default:
		return x
	}
}

// outputStage applies the output trim, silences NaN and infinities, and
// soft clips.
func outputStage(x, gain float64) float64 {
	x *= gain
	if !core.IsFinite(x) {
		return 0
	}

	return SoftClip(x)
}
