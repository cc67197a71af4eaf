package design

import (
	"math"

	"github.com/cwbudde/algo-fetcomp/dsp/filter/biquad"
)

const defaultQ = 1 / math.Sqrt2

// LowShelf designs an RBJ low-shelf filter with gainDB boost or cut below
// freq. Non-positive q falls back to 1/sqrt(2).
func LowShelf(freq, gainDB, q, sampleRate float64) biquad.Coefficients {
	return lowShelf(freq, math.Pow(10, gainDB/40), q, sampleRate)
}

// HighShelf designs an RBJ high-shelf filter with gainDB boost or cut above
// freq. Non-positive q falls back to 1/sqrt(2).
func HighShelf(freq, gainDB, q, sampleRate float64) biquad.Coefficients {
	return highShelf(freq, math.Pow(10, gainDB/40), q, sampleRate)
}

// LowShelfGain is LowShelf with the shelf gain given as a linear amplitude
// factor. Negative factors are treated as zero.
func LowShelfGain(freq, q, gain, sampleRate float64) biquad.Coefficients {
	return lowShelf(freq, shelfAmplitude(gain), q, sampleRate)
}

// HighShelfGain is HighShelf with the shelf gain given as a linear amplitude
// factor. Negative factors are treated as zero.
func HighShelfGain(freq, q, gain, sampleRate float64) biquad.Coefficients {
	return highShelf(freq, shelfAmplitude(gain), q, sampleRate)
}

func shelfAmplitude(gain float64) float64 {
	if !(gain > 0) || math.IsInf(gain, 0) {
		return 0
	}

	return math.Sqrt(gain)
}

func lowShelf(freq, a, q, sampleRate float64) biquad.Coefficients {
	w0, ok := normalizedW0(freq, sampleRate)
	if !ok {
		return biquad.Coefficients{}
	}

	cw := math.Cos(w0)
	beta := math.Sin(w0) * math.Sqrt(a) / normalizedQ(q)

	b0 := a * ((a + 1) - (a-1)*cw + beta)
	b1 := 2 * a * ((a - 1) - (a+1)*cw)
	b2 := a * ((a + 1) - (a-1)*cw - beta)
	a0 := (a + 1) + (a-1)*cw + beta
	a1 := -2 * ((a - 1) + (a+1)*cw)
	a2 := (a + 1) + (a-1)*cw - beta

	return normalizeBiquad(b0, b1, b2, a0, a1, a2)
}

func highShelf(freq, a, q, sampleRate float64) biquad.Coefficients {
	w0, ok := normalizedW0(freq, sampleRate)
	if !ok {
		return biquad.Coefficients{}
	}

	cw := math.Cos(w0)
	beta := math.Sin(w0) * math.Sqrt(a) / normalizedQ(q)

	b0 := a * ((a + 1) + (a-1)*cw + beta)
	b1 := -2 * a * ((a - 1) + (a+1)*cw)
	b2 := a * ((a + 1) + (a-1)*cw - beta)
	a0 := (a + 1) - (a-1)*cw + beta
	a1 := 2 * ((a - 1) - (a+1)*cw)
	a2 := (a + 1) - (a-1)*cw - beta

	return normalizeBiquad(b0, b1, b2, a0, a1, a2)
}

func normalizedW0(freq, sampleRate float64) (float64, bool) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return 0, false
	}

	nyquist := sampleRate / 2
	if freq <= 0 || freq >= nyquist || math.IsNaN(freq) || math.IsInf(freq, 0) {
		return 0, false
	}

	return 2 * math.Pi * freq / sampleRate, true
}

func normalizedQ(q float64) float64 {
	if q <= 0 || math.IsNaN(q) || math.IsInf(q, 0) {
		return defaultQ
	}

	return q
}

func normalizeBiquad(b0, b1, b2, a0, a1, a2 float64) biquad.Coefficients {
	if a0 == 0 || math.IsNaN(a0) || math.IsInf(a0, 0) {
		return biquad.Coefficients{}
	}

	return biquad.Coefficients{
		B0: b0 / a0,
		B1: b1 / a0,
		B2: b2 / a0,
		A1: a1 / a0,
		A2: a2 / a0,
	}
}
