package dynamics

import (
	"math"

	"github.com/cwbudde/algo-fetcomp/dsp/interp"
)

const (
	fetTableSize  = 1024
	fetTableRange = 2.0
	fetDrive      = 0.5

	fetSaturationThreshold = 0.7
	fetAsymmetry           = 0.3

	// Extra drive into the first saturation stage in all-buttons mode.
	allButtonsDrive = 1.15
)

// SaturateFET is the FET transfer curve. The input is normalized by 0.7,
// blended between linear and tanh-saturated by min(|x|*drive, 1), and
// scaled back. Negative inputs are driven 30% harder, which produces the
// even harmonics of the modeled stage.
func SaturateFET(x, drive float64) float64 {
	scaled := x / fetSaturationThreshold

	var saturated float64
	if scaled >= 0 {
		saturated = math.Tanh(drive * scaled)
	} else {
		saturated = math.Tanh(drive * (scaled + fetAsymmetry*scaled))
	}

	blend := min(math.Abs(scaled)*drive, 1)

	return ((1-blend)*scaled + blend*saturated) * fetSaturationThreshold
}

// FETTable is SaturateFET at drive 0.5 sampled at 1024 points over
// [-2, 2] and read back with Catmull-Rom interpolation. Each engine owns
// its table; it is immutable after construction.
type FETTable struct {
	table *interp.Table
}

// NewFETTable builds the saturation table.
func NewFETTable() *FETTable {
	t, err := interp.NewTable(fetTableSize, -fetTableRange, fetTableRange, func(x float64) float64 {
		return SaturateFET(x, fetDrive)
	})
	if err != nil {
		// Size and range are constants that satisfy NewTable.
		panic(err)
	}

	return &FETTable{table: t}
}

// Lookup evaluates the saturation curve at x. Inputs are clamped to
// [-2, 2]; NaN maps to 0.
func (f *FETTable) Lookup(x float64) float64 {
	if x != x {
		return 0
	}

	return f.table.At(x)
}

// Len returns the number of table points.
func (f *FETTable) Len() int { return f.table.Len() }

// Point returns the input position and stored value of table point i.
func (f *FETTable) Point(i int) (x, y float64) {
	lo, hi := f.table.Range()
	return lo + (hi-lo)*float64(i)/float64(f.table.Len()-1), f.table.Value(i)
}
