package thd_test

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-fetcomp/measure/thd"
)

func ExampleAnalyzeSignal() {
	sampleRate := 48000.0
	fftSize := 4096
	fundamentalBin := 64
	fundamental := float64(fundamentalBin) * sampleRate / float64(fftSize)

	signal := make([]float64, fftSize)
	for i := range signal {
		t := float64(i) / sampleRate
		signal[i] = math.Sin(2*math.Pi*fundamental*t) + 0.02*math.Sin(2*math.Pi*2*fundamental*t)
	}

	res, err := thd.AnalyzeSignal(signal, thd.Config{
		SampleRate:      sampleRate,
		FFTSize:         fftSize,
		FundamentalFreq: fundamental,
	})
	if err != nil {
		panic(err)
	}

	fmt.Printf("THD: %.2f%%\n", res.THD*100)
	fmt.Printf("even: %.2f%%\n", res.EvenHD*100)
	// Output:
	// THD: 2.00%
	// even: 2.00%
}
