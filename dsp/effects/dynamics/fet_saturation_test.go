package dynamics

import (
	"math"
	"testing"
)

func TestFETTable_MatchesCurveAtGridPoints(t *testing.T) {
	tab := NewFETTable()
	if tab.Len() != 1024 {
		t.Fatalf("Len() = %d, want 1024", tab.Len())
	}

	for i := 0; i < tab.Len(); i += 37 {
		x, y := tab.Point(i)
		if want := SaturateFET(x, 0.5); math.Abs(y-want) > 1e-15 {
			t.Fatalf("point %d: stored %v, want %v", i, y, want)
		}

		if got := tab.Lookup(x); math.Abs(got-y) > 1e-9 {
			t.Fatalf("Lookup(%v) = %v, want %v", x, got, y)
		}
	}

	if x0, _ := tab.Point(0); x0 != -2 {
		t.Fatalf("first point at %v", x0)
	}

	if xn, _ := tab.Point(tab.Len() - 1); xn != 2 {
		t.Fatalf("last point at %v", xn)
	}
}

func TestFETTable_Continuous(t *testing.T) {
	tab := NewFETTable()

	// The curve's slope never exceeds 1, so sub-cell steps cannot jump by
	// more than 1.1 times their width.
	const step = 4.0 / 1023 / 16

	prev := tab.Lookup(-2)
	for x := -2 + step; x <= 2; x += step {
		y := tab.Lookup(x)
		if math.Abs(y-prev) > 1.1*step {
			t.Fatalf("jump of %v at x=%v", y-prev, x)
		}

		prev = y
	}
}

func TestFETTable_ClampsAndGuards(t *testing.T) {
	tab := NewFETTable()

	if tab.Lookup(5) != tab.Lookup(2) || tab.Lookup(-9) != tab.Lookup(-2) {
		t.Fatal("out-of-range inputs must clamp")
	}

	if tab.Lookup(math.NaN()) != 0 {
		t.Fatal("NaN must map to 0")
	}

	if math.Abs(tab.Lookup(0)) > 1e-9 {
		t.Fatalf("Lookup(0) = %v, want 0", tab.Lookup(0))
	}
}

func TestSaturateFET_Asymmetric(t *testing.T) {
	for _, x := range []float64{0.1, 0.5, 1, 1.5} {
		pos := SaturateFET(x, 0.5)
		neg := SaturateFET(-x, 0.5)

		if pos <= 0 || neg >= 0 {
			t.Fatalf("x=%v: sign not preserved: %v %v", x, pos, neg)
		}

		if pos+neg == 0 {
			t.Fatalf("x=%v: curve is symmetric", x)
		}
	}

	if SaturateFET(0, 0.5) != 0 {
		t.Fatal("curve must pass through zero")
	}
}

func BenchmarkFETTableLookup(b *testing.B) {
	tab := NewFETTable()
	x := -1.9

	var sink float64

	for b.Loop() {
		sink += tab.Lookup(x)

		x += 0.001
		if x > 1.9 {
			x = -1.9
		}
	}

	_ = sink
}
