package biquad

import (
	"math"
	"math/cmplx"
	"testing"
)

// magnitudeSquared evaluates |H|^2 from the real and imaginary parts of the
// numerator and denominator polynomials.
func magnitudeSquared(c Coefficients, freqHz, sampleRate float64) float64 {
	w := 2 * math.Pi * freqHz / sampleRate
	c1, s1 := math.Cos(w), math.Sin(w)
	c2, s2 := math.Cos(2*w), math.Sin(2*w)

	nr := c.B0 + c.B1*c1 + c.B2*c2
	ni := c.B1*s1 + c.B2*s2
	dr := 1 + c.A1*c1 + c.A2*c2
	di := c.A1*s1 + c.A2*s2

	return (nr*nr + ni*ni) / (dr*dr + di*di)
}

func TestResponse_MatchesPolynomial(t *testing.T) {
	c := smoothing()
	for _, f := range []float64{0, 50, 1000, 8000, 16000} {
		want := magnitudeSquared(c, f, 48000)
		h := c.Response(f, 48000)

		if got := real(h)*real(h) + imag(h)*imag(h); !almostEqual(got, want, 1e-12) {
			t.Fatalf("f=%v: |H|^2 = %v, want %v", f, got, want)
		}

		if db := c.MagnitudeDB(f, 48000); !almostEqual(db, 10*math.Log10(want), 1e-9) {
			t.Fatalf("f=%v: MagnitudeDB %v, want %v", f, db, 10*math.Log10(want))
		}
	}
}

func TestResponse_DCAndNyquist(t *testing.T) {
	c := smoothing()
	// H(1) = (0.25+0.5+0.25) / (1-0.4+0.04)
	if got := cmplx.Abs(c.Response(0, 48000)); !almostEqual(got, 1/0.64, eps) {
		t.Fatalf("DC gain %v, want %v", got, 1/0.64)
	}

	// Double zero at z = -1.
	if got := cmplx.Abs(c.Response(24000, 48000)); got > 1e-12 {
		t.Fatalf("Nyquist gain %v, want 0", got)
	}
}

func TestChain_Response_ProductOfSections(t *testing.T) {
	coeffs := twoSectionCoeffs()
	chain := NewIdentityChain(2)
	chain.UpdateCoefficients(coeffs, 0.5)

	for _, f := range []float64{100, 1000, 10000} {
		want := 0.5 * coeffs[0].Response(f, 48000) * coeffs[1].Response(f, 48000)
		if got := chain.Response(f, 48000); cmplx.Abs(got-want) > 1e-12 {
			t.Fatalf("f=%v: got %v, want %v", f, got, want)
		}

		if db := chain.MagnitudeDB(f, 48000); !almostEqual(db, 20*math.Log10(cmplx.Abs(want)), 1e-9) {
			t.Fatalf("f=%v: MagnitudeDB %v", f, db)
		}
	}
}

func TestChain_ResponseMatchesSteadyState(t *testing.T) {
	const (
		rate = 48000.0
		freq = 1000.0
	)

	c := NewIdentityChain(2)
	c.UpdateCoefficients(twoSectionCoeffs(), 1)

	peak := 0.0

	for i := range 9600 {
		y := c.ProcessSample(math.Sin(2 * math.Pi * freq * float64(i) / rate))
		if i >= 4800 {
			peak = max(peak, math.Abs(y))
		}
	}

	want := cmplx.Abs(c.Response(freq, rate))
	// 48 samples per cycle keep the sampled peak within 0.3 % of the envelope.
	if math.Abs(peak-want) > 0.003*want {
		t.Fatalf("steady-state amplitude %v, response %v", peak, want)
	}
}
