package testutil

import (
	"math"
	"math/rand"
)

// DeterministicSine returns length samples of a sine starting at phase 0.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate

	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}

	return out
}

// DeterministicNoise returns uniform white noise in [-amplitude, amplitude)
// from a fixed seed.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed)) //nolint:gosec

	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}

	return out
}

// DC returns a constant signal.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}

	return out
}

// Bursts returns a gated signal: amplitude for the first on samples of
// every period, silence for the rest. It drives transient detectors.
func Bursts(amplitude float64, on, period, length int) []float64 {
	out := make([]float64, length)
	if period <= 0 {
		return out
	}

	for i := range out {
		if i%period < on {
			out[i] = amplitude
		}
	}

	return out
}

// Planar returns channels independent copies of src, laid out the way
// block processors take multichannel audio.
func Planar(channels int, src []float64) [][]float64 {
	out := make([][]float64, channels)
	for ch := range out {
		out[ch] = append([]float64(nil), src...)
	}

	return out
}
