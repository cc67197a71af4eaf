package interp

import "errors"

// ErrTableSize is returned when a table has fewer than 4 points.
var ErrTableSize = errors.New("interp: table needs at least 4 points")

// Table is a uniformly sampled curve over [lo, hi] reconstructed with
// 4-point cubic interpolation. It is immutable once built and safe for
// concurrent reads.
type Table struct {
	values []float64
	lo, hi float64
	scale  float64 // (size-1) / (hi-lo)
}

// NewTable samples fn at size evenly spaced points spanning [lo, hi],
// endpoints included.
func NewTable(size int, lo, hi float64, fn func(float64) float64) (*Table, error) {
	if size < 4 {
		return nil, ErrTableSize
	}

	if hi <= lo {
		return nil, errors.New("interp: table range must be increasing")
	}

	values := make([]float64, size)
	span := hi - lo
	last := float64(size - 1)

	for i := range values {
		values[i] = fn(lo + span*(float64(i)/last))
	}

	return &Table{
		values: values,
		lo:     lo,
		hi:     hi,
		scale:  last / span,
	}, nil
}

// Len returns the number of table points.
func (t *Table) Len() int { return len(t.values) }

// Range returns the input range covered by the table.
func (t *Table) Range() (lo, hi float64) { return t.lo, t.hi }

// Value returns the raw table point at index i.
func (t *Table) Value(i int) float64 { return t.values[i] }

// At evaluates the table at x. Inputs outside the range are clamped to it.
func (t *Table) At(x float64) float64 {
	if x < t.lo {
		x = t.lo
	} else if x > t.hi {
		x = t.hi
	}

	last := len(t.values) - 1
	index := (x - t.lo) * t.scale

	i1 := int(index)
	frac := index - float64(i1)

	i0 := max(i1-1, 0)
	i2 := min(i1+1, last)
	i3 := min(i1+2, last)

	return Hermite4(frac, t.values[i0], t.values[i1], t.values[i2], t.values[i3])
}
