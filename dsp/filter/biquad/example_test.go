package biquad_test

import (
	"fmt"

	"github.com/cwbudde/algo-fetcomp/dsp/filter/biquad"
)

func ExampleSection_ProcessSample() {
	s := &biquad.Section{Coefficients: biquad.Coefficients{
		B0: 0.25, B1: 0.5, B2: 0.25,
		A1: -0.4, A2: 0.04,
	}}

	for i := range 4 {
		var x float64
		if i == 0 {
			x = 1
		}

		fmt.Printf("y[%d] = %.4f\n", i, s.ProcessSample(x))
	}
	// Output:
	// y[0] = 0.2500
	// y[1] = 0.6000
	// y[2] = 0.4800
	// y[3] = 0.1680
}

func ExampleChain_UpdateCoefficients() {
	// Two passthrough stages that are retuned later without allocating.
	chain := biquad.NewIdentityChain(2)
	fmt.Printf("before: %.2f\n", chain.ProcessSample(0.5))

	chain.UpdateCoefficients([]biquad.Coefficients{
		{B0: 0.5},
		{B0: 0.5},
	}, 1)
	fmt.Printf("after: %.3f\n", chain.ProcessSample(0.5))
	fmt.Printf("gain at 1 kHz: %.2f dB\n", chain.MagnitudeDB(1000, 48000))
	// Output:
	// before: 0.50
	// after: 0.125
	// gain at 1 kHz: -12.04 dB
}
