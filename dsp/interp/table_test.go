package interp

import (
	"math"
	"testing"
)

func TestNewTableValidation(t *testing.T) {
	if _, err := NewTable(3, -1, 1, math.Sin); err == nil {
		t.Fatal("expected error for size 3")
	}
	if _, err := NewTable(16, 1, 1, math.Sin); err == nil {
		t.Fatal("expected error for empty range")
	}
}

func TestTableHitsGridPoints(t *testing.T) {
	tab, err := NewTable(1024, -2, 2, math.Tanh)
	if err != nil {
		t.Fatalf("NewTable() error = %v", err)
	}

	for _, i := range []int{0, 1, 511, 1000, 1023} {
		x := -2 + 4*float64(i)/1023
		if got, want := tab.At(x), tab.Value(i); math.Abs(got-want) > 1e-12 {
			t.Fatalf("At(grid %d) = %v, want %v", i, got, want)
		}
	}
}

func TestTableClampsOutsideRange(t *testing.T) {
	tab, err := NewTable(64, -2, 2, math.Tanh)
	if err != nil {
		t.Fatalf("NewTable() error = %v", err)
	}

	if got, want := tab.At(10), tab.At(2); got != want {
		t.Fatalf("At(10) = %v, want %v", got, want)
	}
	if got, want := tab.At(-10), tab.At(-2); got != want {
		t.Fatalf("At(-10) = %v, want %v", got, want)
	}
}

func TestTableTracksSmoothFunction(t *testing.T) {
	tab, err := NewTable(1024, -2, 2, math.Tanh)
	if err != nil {
		t.Fatalf("NewTable() error = %v", err)
	}

	// The first and last cells use a clamped neighbor and are less accurate.
	maxErr := 0.0
	for i := range 10000 {
		x := -1.99 + 3.98*float64(i)/9999
		maxErr = math.Max(maxErr, math.Abs(tab.At(x)-math.Tanh(x)))
	}

	if maxErr > 1e-6 {
		t.Fatalf("max interpolation error = %g, want <= 1e-6", maxErr)
	}
}

func BenchmarkTableAt(b *testing.B) {
	tab, _ := NewTable(1024, -2, 2, math.Tanh)
	x := -1.7
	for b.Loop() {
		_ = tab.At(x)
		x += 0.001
		if x > 2 {
			x = -2
		}
	}
}
