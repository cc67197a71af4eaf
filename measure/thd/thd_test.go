package thd

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-fetcomp/dsp/window"
)

func newTestAnalyzer(t *testing.T, cfg Config) *Analyzer {
	t.Helper()

	a, err := NewAnalyzer(cfg)
	if err != nil {
		t.Fatalf("NewAnalyzer: %v", err)
	}

	return a
}

func TestNewAnalyzer(t *testing.T) {
	if _, err := NewAnalyzer(Config{}); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("zero sample rate: err = %v", err)
	}

	a := newTestAnalyzer(t, Config{SampleRate: 48000, FFTSize: 3000})
	cfg := a.Config()

	if cfg.FFTSize != 4096 || cfg.WindowType != window.TypeHann {
		t.Fatalf("normalized config: %+v", cfg)
	}
}

func TestFromMagnitude_KnownSpectrum(t *testing.T) {
	a := newTestAnalyzer(t, Config{
		SampleRate:      48000,
		FundamentalFreq: 1000,
		RangeUpperFreq:  10000,
		CaptureBins:     0,
	})
	// Capture bins default to the Hann main lobe; the spectrum is sparse
	// enough that neighbors are zero.
	mag := make([]float64, 24001)
	mag[1000] = 1.0
	mag[2000] = 0.1 * 0.1
	mag[3000] = 0.05 * 0.05
	mag[4500] = 0.02 * 0.02

	res := a.FromMagnitude(mag)

	checks := []struct {
		name      string
		got, want float64
	}{
		{"fundamental freq", res.FundamentalFreq, 1000},
		{"fundamental level", res.FundamentalLevel, 1},
		{"THD", res.THD, 0.15},
		{"THDN", res.THDN, 0.17},
		{"noise", res.Noise, 0.02},
		{"odd", res.OddHD, 0.05},
		{"even", res.EvenHD, 0.1},
		{"SINAD", res.SINAD, 20 * math.Log10(1/0.17)},
	}

	for _, c := range checks {
		if math.Abs(c.got-c.want) > 1e-9 {
			t.Errorf("%s = %v, want %v", c.name, c.got, c.want)
		}
	}

	if len(res.Harmonics) < 2 || math.Abs(res.Harmonics[0]-0.1) > 1e-12 || math.Abs(res.Harmonics[1]-0.05) > 1e-12 {
		t.Fatalf("harmonics = %v", res.Harmonics)
	}
}

func TestFromMagnitude_AutodetectFundamental(t *testing.T) {
	a := newTestAnalyzer(t, Config{SampleRate: 48000, RangeUpperFreq: 5000})

	mag := make([]float64, 24001)
	mag[1000] = 0.8 * 0.8
	mag[1200] = 1.2 * 1.2
	mag[2400] = 0.1 * 0.1

	res := a.FromMagnitude(mag)
	if res.FundamentalFreq != 1200 {
		t.Fatalf("fundamental = %v, want 1200", res.FundamentalFreq)
	}
}

func TestAnalyze_OddHarmonicSignature(t *testing.T) {
	const (
		rate = 48000.0
		size = 8192
	)

	fundamental := 64 * rate / size

	signal := make([]float64, size)
	for i := range signal {
		ph := 2 * math.Pi * fundamental * float64(i) / rate
		signal[i] = 0.5*math.Sin(ph) + 0.005*math.Sin(3*ph)
	}

	res, err := AnalyzeSignal(signal, Config{
		SampleRate:      rate,
		FFTSize:         size,
		FundamentalFreq: fundamental,
		WindowType:      window.TypeBlackmanHarris4Term,
	})
	if err != nil {
		t.Fatal(err)
	}

	if math.Abs(res.OddHD-0.01) > 1e-4 || res.EvenHD > 1e-6 {
		t.Fatalf("odd=%v even=%v, want 0.01 and ~0", res.OddHD, res.EvenHD)
	}

	if math.Abs(res.Amplitude-0.5) > 1e-6 {
		t.Fatalf("amplitude = %v, want 0.5", res.Amplitude)
	}
}

func TestAnalyze_UsesTailOfLongSignal(t *testing.T) {
	const rate = 48000.0

	a := newTestAnalyzer(t, Config{SampleRate: rate, FFTSize: 1024})
	fundamental := 32 * rate / 1024

	// A burst of noise-like junk followed by a clean tone.
	signal := make([]float64, 4096)
	for i := range signal {
		if i < 2048 {
			signal[i] = math.Sin(float64(i*i) * 0.37)
			continue
		}

		signal[i] = math.Sin(2 * math.Pi * fundamental * float64(i) / rate)
	}

	res, err := a.Analyze(signal)
	if err != nil {
		t.Fatal(err)
	}

	if res.THD > 1e-6 || res.FundamentalFreq != fundamental {
		t.Fatalf("THD=%v fundamental=%v", res.THD, res.FundamentalFreq)
	}

	empty, err := a.Analyze(nil)
	if err != nil || empty.FundamentalLevel != 0 {
		t.Fatalf("empty input: %+v, %v", empty, err)
	}
}

func BenchmarkAnalyze(b *testing.B) {
	a, err := NewAnalyzer(Config{SampleRate: 48000, FFTSize: 8192})
	if err != nil {
		b.Fatal(err)
	}

	signal := make([]float64, 8192)
	for i := range signal {
		signal[i] = math.Sin(0.1 * float64(i))
	}

	b.ReportAllocs()

	for b.Loop() {
		_, _ = a.Analyze(signal)
	}
}
