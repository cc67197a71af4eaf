package resample

import (
	"fmt"
)

// Oversampler raises a block to factor times its rate and brings it back
// down through a cascade of 2x polyphase FIR stages. All buffers are sized
// for the maximum block length at construction, so Up and Down never
// allocate. An Oversampler carries the filter state of a single channel.
type Oversampler struct {
	factor   int
	maxBlock int
	quality  Quality
	latency  float64

	ups   []upStage
	downs []downStage
	// bufs[s] holds the output of up stage s, maxBlock*2^(s+1) samples.
	bufs [][]float64
	// base copies the input when factor is 1 so Up never aliases src.
	base []float64
}

// NewOversampler builds an oversampler for the given power-of-two factor
// and maximum input block size. Factor 1 is a plain copy.
func NewOversampler(factor, maxBlock int, opts ...Option) (*Oversampler, error) {
	if !validFactor(factor) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidFactor, factor)
	}

	if maxBlock <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidBlockSize, maxBlock)
	}

	cfg := defaultConfig()

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	cfg = cfg.finalized()

	o := &Oversampler{
		factor:   factor,
		maxBlock: maxBlock,
		quality:  cfg.quality,
		base:     make([]float64, maxBlock),
	}

	if factor == 1 {
		return o, nil
	}

	taps, err := designHalfband(cfg)
	if err != nil {
		return nil, err
	}

	phases := splitPhases(taps)
	groupDelay := 0.5 * float64(len(taps)-1)

	n := maxBlock
	for s := 0; 1<<s < factor; s++ {
		o.ups = append(o.ups, newUpStage(phases, n))
		o.downs = append(o.downs, newDownStage(taps, 2*n))
		o.bufs = append(o.bufs, make([]float64, 2*n))

		// Up and down filters of stage s both run at base*2^(s+1).
		o.latency += 2 * groupDelay / float64(int(2)<<s)
		n *= 2
	}

	return o, nil
}

func validFactor(factor int) bool {
	return factor >= 1 && factor <= MaxFactor && factor&(factor-1) == 0
}

// Factor returns the oversampling factor.
func (o *Oversampler) Factor() int { return o.factor }

// MaxBlockSize returns the largest input block Up accepts.
func (o *Oversampler) MaxBlockSize() int { return o.maxBlock }

// Quality returns the anti-aliasing quality mode.
func (o *Oversampler) Quality() Quality { return o.quality }

// Latency returns the round-trip delay of Up followed by Down in samples
// at the base rate. The filters are linear phase, so the delay is the same
// at every frequency and can be fractional.
func (o *Oversampler) Latency() float64 { return o.latency }

// Up interpolates src to factor*len(src) samples and returns a view of an
// internal buffer that stays valid until the next call to Up. Input beyond
// MaxBlockSize is ignored.
func (o *Oversampler) Up(src []float64) []float64 {
	n := min(len(src), o.maxBlock)

	if o.factor == 1 {
		copy(o.base[:n], src[:n])
		return o.base[:n]
	}

	in := src[:n]
	for s := range o.ups {
		out := o.bufs[s][:2*len(in)]
		o.ups[s].process(out, in)
		in = out
	}

	return in
}

// Down decimates src, which must hold factor*len(dst) samples, into dst.
// Processing stops at whichever side runs out first.
func (o *Oversampler) Down(dst, src []float64) {
	n := min(len(dst), len(src)/o.factor, o.maxBlock)
	if o.factor == 1 {
		copy(dst[:n], src[:n])
		return
	}

	in := src[:n*o.factor]
	for s := len(o.downs) - 1; s > 0; s-- {
		// Stage s writes into the buffer that fed it on the way up, which
		// holds exactly half as many samples as its input.
		out := o.bufs[s-1][:len(in)/2]
		o.downs[s].process(out, in)
		in = out
	}

	o.downs[0].process(dst[:n], in)
}

// Reset clears the filter history of every stage.
func (o *Oversampler) Reset() {
	for s := range o.ups {
		o.ups[s].reset()
		o.downs[s].reset()
	}
}

// upStage doubles the rate with a two-branch polyphase interpolator.
type upStage struct {
	phases [2][]float64
	hist   int
	// work holds hist samples of history followed by the current input.
	work []float64
}

func newUpStage(phases [2][]float64, maxIn int) upStage {
	hist := max(len(phases[0]), len(phases[1])) - 1

	return upStage{
		phases: phases,
		hist:   hist,
		work:   make([]float64, hist+maxIn),
	}
}

func (u *upStage) process(dst, src []float64) {
	n := len(src)
	copy(u.work[u.hist:], src)

	even, odd := u.phases[0], u.phases[1]
	for i := range n {
		base := u.hist + i

		var y0, y1 float64
		for k, c := range even {
			y0 += c * u.work[base-k]
		}

		for k, c := range odd {
			y1 += c * u.work[base-k]
		}

		dst[2*i] = y0
		dst[2*i+1] = y1
	}

	copy(u.work[:u.hist], u.work[n:n+u.hist])
}

func (u *upStage) reset() {
	clear(u.work)
}

// downStage halves the rate, evaluating the lowpass only at kept samples.
type downStage struct {
	taps []float64
	hist int
	work []float64
}

func newDownStage(taps []float64, maxIn int) downStage {
	hist := len(taps) - 1

	return downStage{
		taps: taps,
		hist: hist,
		work: make([]float64, hist+maxIn),
	}
}

func (d *downStage) process(dst, src []float64) {
	n := len(src)
	copy(d.work[d.hist:], src)

	for i := range dst {
		base := d.hist + 2*i

		var y float64
		for k, c := range d.taps {
			y += c * d.work[base-k]
		}

		dst[i] = y
	}

	copy(d.work[:d.hist], d.work[n:n+d.hist])
}

func (d *downStage) reset() {
	clear(d.work)
}
