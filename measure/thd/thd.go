// Package thd measures harmonic distortion of a steady-state tone.
//
// An [Analyzer] windows the signal, transforms it with algo-fft and reports
// total, odd and even harmonic content relative to the fundamental. It is
// used to characterize the harmonic signature of the saturation stages.
package thd

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-fetcomp/dsp/window"
	"github.com/cwbudde/algo-vecmath"
)

// ErrInvalidConfig indicates an analyzer configuration that cannot be used.
var ErrInvalidConfig = errors.New("thd: invalid config")

const (
	defaultFFTSize      = 8192
	defaultRangeLowerHz = 20.0
	defaultRangeUpperHz = 20000.0
)

// Config holds THD calculation parameters.
type Config struct {
	SampleRate float64
	// FFTSize defaults to 8192 and is rounded up to a power of two.
	FFTSize int
	// FundamentalFreq pins the fundamental; zero searches for the largest peak.
	FundamentalFreq float64
	RangeLowerFreq  float64
	RangeUpperFreq  float64
	// CaptureBins sums this many bins on each side of a peak; zero uses the
	// main-lobe half-width of the window.
	CaptureBins  int
	MaxHarmonics int
	// WindowType selects the analysis window; the zero value selects Hann.
	WindowType window.Type
}

// Result holds THD measurement results.
//
//nolint:revive
type Result struct {
	FundamentalFreq  float64
	FundamentalLevel float64
	// Amplitude is the peak amplitude of the fundamental estimated from its
	// spectral peak, exact for bin-centered tones.
	Amplitude float64
	THD       float64
	THDN      float64
	THD_dB    float64
	THDN_dB   float64
	OddHD     float64
	EvenHD    float64
	Noise     float64
	// Harmonics lists the level of harmonics 2, 3, ... relative to the
	// fundamental.
	Harmonics []float64
	SINAD     float64
}

// Analyzer performs THD analysis. It owns an FFT plan and scratch buffers
// and is not safe for concurrent use.
type Analyzer struct {
	cfg          Config
	plan         *algofft.Plan[complex128]
	coeffs       []float64
	coherentGain float64

	in, out []complex128
	re, im  []float64
	mag     []float64
}

// NewAnalyzer creates an analyzer for cfg.
func NewAnalyzer(cfg Config) (*Analyzer, error) {
	if cfg.SampleRate <= 0 || math.IsNaN(cfg.SampleRate) || math.IsInf(cfg.SampleRate, 0) {
		return nil, fmt.Errorf("%w: sample rate %v", ErrInvalidConfig, cfg.SampleRate)
	}

	cfg = normalizeConfig(cfg)

	plan, err := algofft.NewPlan64(cfg.FFTSize)
	if err != nil {
		return nil, fmt.Errorf("thd: fft plan of size %d: %w", cfg.FFTSize, err)
	}

	coeffs := window.Generate(cfg.WindowType, cfg.FFTSize, window.WithPeriodic())
	bins := cfg.FFTSize/2 + 1

	return &Analyzer{
		cfg:          cfg,
		plan:         plan,
		coeffs:       coeffs,
		coherentGain: window.CoherentGain(coeffs),
		in:           make([]complex128, cfg.FFTSize),
		out:          make([]complex128, cfg.FFTSize),
		re:           make([]float64, bins),
		im:           make([]float64, bins),
		mag:          make([]float64, bins),
	}, nil
}

// AnalyzeSignal is a one-shot analysis of signal.
func AnalyzeSignal(signal []float64, cfg Config) (Result, error) {
	a, err := NewAnalyzer(cfg)
	if err != nil {
		return Result{}, err
	}

	return a.Analyze(signal)
}

// Config returns the normalized configuration.
func (a *Analyzer) Config() Config { return a.cfg }

// Analyze windows the last FFTSize samples of signal, zero padding shorter
// input, and evaluates the harmonic metrics.
func (a *Analyzer) Analyze(signal []float64) (Result, error) {
	if len(signal) == 0 {
		return Result{}, nil
	}

	n := a.cfg.FFTSize
	if len(signal) > n {
		signal = signal[len(signal)-n:]
	}

	clear(a.in)

	for i, x := range signal {
		a.in[i] = complex(x*a.coeffs[i], 0)
	}

	if err := a.plan.Forward(a.out, a.in); err != nil {
		return Result{}, fmt.Errorf("thd: forward fft: %w", err)
	}

	for i := range a.re {
		a.re[i] = real(a.out[i])
		a.im[i] = imag(a.out[i])
	}

	vecmath.Power(a.mag, a.re, a.im)

	return a.FromMagnitude(a.mag), nil
}

// FromMagnitude computes THD metrics from a squared-magnitude spectrum
// holding the non-negative-frequency bins [0..Nyquist].
//
//nolint:cyclop,funlen
func (a *Analyzer) FromMagnitude(magSquared []float64) Result {
	if len(magSquared) <= 1 {
		return Result{}
	}

	cfg := a.cfg
	maxBin := len(magSquared) - 1
	binHz := cfg.SampleRate / float64(2*maxBin)

	lowerBin := clampInt(int(math.Round(cfg.RangeLowerFreq/binHz)), 1, maxBin)
	upperBin := clampInt(int(math.Round(cfg.RangeUpperFreq/binHz)), lowerBin, maxBin)

	fundamentalBin := a.findFundamentalBin(magSquared, lowerBin, upperBin, binHz)

	captureBins := cfg.CaptureBins
	if captureBins <= 0 {
		captureBins = int(window.Info(cfg.WindowType).FirstMinimumBins)
	}

	captureBins = min(captureBins, fundamentalBin/2)

	fundamentalLevel := binSum(magSquared, fundamentalBin, captureBins)
	res := Result{FundamentalFreq: float64(fundamentalBin) * binHz}

	if fundamentalLevel <= 0 {
		return res
	}

	if a.coherentGain > 0 {
		res.Amplitude = 2 * sqrtPositive(magSquared[fundamentalBin]) / (float64(2*maxBin) * a.coherentGain)
	}

	var thdAbs, oddAbs, evenAbs float64

	harmonics := make([]float64, 0, 8)

	for k := 2; ; k++ {
		if cfg.MaxHarmonics > 0 && len(harmonics) >= cfg.MaxHarmonics {
			break
		}

		bin := k * fundamentalBin
		if bin > upperBin {
			break
		}

		value := binSum(magSquared, bin, captureBins)

		thdAbs += value
		if k%2 == 0 {
			evenAbs += value
		} else {
			oddAbs += value
		}

		harmonics = append(harmonics, value/fundamentalLevel)
	}

	var totalAbs float64
	for i := lowerBin; i <= upperBin; i++ {
		totalAbs += sqrtPositive(magSquared[i])
	}

	thdnAbs := max(totalAbs-fundamentalLevel, 0)
	noiseAbs := max(thdnAbs-thdAbs, 0)

	res.FundamentalLevel = fundamentalLevel
	res.THD = thdAbs / fundamentalLevel
	res.THDN = thdnAbs / fundamentalLevel
	res.THD_dB = ratioToDB(res.THD)
	res.THDN_dB = ratioToDB(res.THDN)
	res.OddHD = oddAbs / fundamentalLevel
	res.EvenHD = evenAbs / fundamentalLevel
	res.Noise = noiseAbs / fundamentalLevel
	res.Harmonics = harmonics

	res.SINAD = math.Inf(1)
	if res.THDN > 0 {
		res.SINAD = -ratioToDB(res.THDN)
	}

	return res
}

func (a *Analyzer) findFundamentalBin(magSquared []float64, lowerBin, upperBin int, binHz float64) int {
	if a.cfg.FundamentalFreq > 0 {
		return clampInt(int(math.Round(a.cfg.FundamentalFreq/binHz)), lowerBin, upperBin)
	}

	bestBin := lowerBin
	bestVal := -1.0

	for i := lowerBin; i <= upperBin; i++ {
		if magSquared[i] > bestVal {
			bestVal = magSquared[i]
			bestBin = i
		}
	}

	return bestBin
}

func normalizeConfig(cfg Config) Config {
	if cfg.FFTSize <= 0 {
		cfg.FFTSize = defaultFFTSize
	}

	cfg.FFTSize = nextPowerOf2(cfg.FFTSize)

	if cfg.RangeLowerFreq <= 0 {
		cfg.RangeLowerFreq = defaultRangeLowerHz
	}

	if cfg.RangeUpperFreq <= 0 {
		cfg.RangeUpperFreq = defaultRangeUpperHz
	}

	cfg.RangeUpperFreq = max(cfg.RangeUpperFreq, cfg.RangeLowerFreq)

	if cfg.WindowType == window.TypeRectangular {
		cfg.WindowType = window.TypeHann
	}

	cfg.CaptureBins = max(cfg.CaptureBins, 0)
	cfg.MaxHarmonics = max(cfg.MaxHarmonics, 0)

	return cfg
}

// binSum adds the magnitudes of bin and captureBins neighbors on each side.
func binSum(magSquared []float64, bin, captureBins int) float64 {
	lo := max(bin-captureBins, 0)
	hi := min(bin+captureBins, len(magSquared)-1)

	var sum float64
	for i := lo; i <= hi; i++ {
		sum += sqrtPositive(magSquared[i])
	}

	return sum
}

func sqrtPositive(v float64) float64 {
	if v <= 0 {
		return 0
	}

	return math.Sqrt(v)
}

func ratioToDB(v float64) float64 {
	if v <= 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(v)
}

func clampInt(val, lo, hi int) int {
	return min(max(val, lo), hi)
}

func nextPowerOf2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}

	return p
}
