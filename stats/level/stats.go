// Package level computes the level statistics used to judge what a
// compressor did to a signal: peak, RMS, crest factor and clipping.
package level

import "math"

// ClipThreshold is the magnitude counted as a clipped sample.
const ClipThreshold = 0.999

// Stats holds level statistics of a signal.
//
//nolint:revive
type Stats struct {
	Length         int
	DC             float64 // mean
	RMS            float64
	RMS_dB         float64
	Peak           float64 // max |x|
	Peak_dB        float64
	PeakPos        int
	CrestFactor    float64 // peak / RMS (linear)
	CrestFactor_dB float64
	Clipped        int // samples with |x| >= ClipThreshold
}

// Comparison describes the change from an input to an output signal.
//
//nolint:revive
type Comparison struct {
	RMSChange_dB   float64
	PeakChange_dB  float64
	CrestChange_dB float64 // negative when dynamics were reduced
}

// ampTodB converts an amplitude to decibels. Returns -Inf for zero.
func ampTodB(value float64) float64 {
	a := math.Abs(value)
	if a == 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(a)
}

func emptyStats() Stats {
	return Stats{
		RMS_dB:         math.Inf(-1),
		Peak_dB:        math.Inf(-1),
		CrestFactor_dB: math.Inf(-1),
	}
}

// Calculate computes the statistics of signal in one pass.
func Calculate(signal []float64) Stats {
	var s StreamingStats

	s.Update(signal)

	return s.Result()
}

// RMS returns the root mean square of signal, 0 when empty.
func RMS(signal []float64) float64 {
	if len(signal) == 0 {
		return 0
	}

	var sumSq float64
	for _, x := range signal {
		sumSq += x * x
	}

	return math.Sqrt(sumSq / float64(len(signal)))
}

// Peak returns the largest magnitude in signal.
func Peak(signal []float64) float64 {
	var peak float64
	for _, x := range signal {
		peak = max(peak, math.Abs(x))
	}

	return peak
}

// Compare returns the level change from in to out.
func Compare(in, out Stats) Comparison {
	return Comparison{
		RMSChange_dB:   out.RMS_dB - in.RMS_dB,
		PeakChange_dB:  out.Peak_dB - in.Peak_dB,
		CrestChange_dB: out.CrestFactor_dB - in.CrestFactor_dB,
	}
}

// StreamingStats accumulates statistics across blocks and channels. Blocks
// from several channels may be fed in any order; positions count samples
// in feed order.
type StreamingStats struct {
	n       int
	sum     float64
	sumSq   float64
	peak    float64
	peakPos int
	clipped int
}

// NewStreamingStats creates an empty accumulator.
func NewStreamingStats() *StreamingStats {
	return &StreamingStats{}
}

// Update adds samples to the running statistics.
func (s *StreamingStats) Update(samples []float64) {
	for _, x := range samples {
		a := math.Abs(x)

		s.sum += x
		s.sumSq += x * x

		if a > s.peak {
			s.peak = a
			s.peakPos = s.n
		}

		if a >= ClipThreshold {
			s.clipped++
		}

		s.n++
	}
}

// Result returns the statistics of everything added so far.
func (s *StreamingStats) Result() Stats {
	if s.n == 0 {
		return emptyStats()
	}

	nf := float64(s.n)
	rms := math.Sqrt(s.sumSq / nf)

	var crest, crestdB float64
	if rms > 0 {
		crest = s.peak / rms
		crestdB = ampTodB(crest)
	}

	return Stats{
		Length:         s.n,
		DC:             s.sum / nf,
		RMS:            rms,
		RMS_dB:         ampTodB(rms),
		Peak:           s.peak,
		Peak_dB:        ampTodB(s.peak),
		PeakPos:        s.peakPos,
		CrestFactor:    crest,
		CrestFactor_dB: crestdB,
		Clipped:        s.clipped,
	}
}

// Reset clears the accumulator.
func (s *StreamingStats) Reset() {
	*s = StreamingStats{}
}
