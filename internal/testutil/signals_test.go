package testutil

import (
	"math"
	"testing"
)

func TestDeterministicSine(t *testing.T) {
	s := DeterministicSine(1000, 48000, 1.0, 48)
	if len(s) != 48 {
		t.Fatalf("len = %d, want 48", len(s))
	}

	if s[0] != 0 {
		t.Fatalf("s[0] = %v, want 0", s[0])
	}

	// A quarter period at 1 kHz and 48 kHz is 12 samples.
	if math.Abs(s[12]-1) > 1e-12 {
		t.Fatalf("s[12] = %v, want 1", s[12])
	}
}

func TestDeterministicNoise(t *testing.T) {
	a := DeterministicNoise(42, 0.5, 256)
	b := DeterministicNoise(42, 0.5, 256)
	c := DeterministicNoise(43, 0.5, 256)

	diff, err := MaxAbsDiff(a, b)
	if err != nil || diff != 0 {
		t.Fatalf("same seed differs: %v %v", diff, err)
	}

	if diff, _ := MaxAbsDiff(a, c); diff == 0 {
		t.Fatal("different seeds produced identical noise")
	}

	if PeakAbs(a) > 0.5 {
		t.Fatalf("peak %v exceeds amplitude", PeakAbs(a))
	}
}

func TestBursts(t *testing.T) {
	got := Bursts(0.5, 2, 5, 12)
	want := []float64{0.5, 0.5, 0, 0, 0, 0.5, 0.5, 0, 0, 0, 0.5, 0.5}

	RequireSliceNearlyEqual(t, got, want, 0)

	if PeakAbs(Bursts(1, 3, 0, 8)) != 0 {
		t.Fatal("zero period must give silence")
	}
}

func TestPlanar(t *testing.T) {
	src := DC(0.25, 4)
	p := Planar(3, src)

	if len(p) != 3 {
		t.Fatalf("channels = %d, want 3", len(p))
	}

	p[1][0] = 9

	RequireSliceNearlyEqual(t, p[0], src, 0)
	RequireSliceNearlyEqual(t, src, DC(0.25, 4), 0)
}
