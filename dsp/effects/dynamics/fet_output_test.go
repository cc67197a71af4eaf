package dynamics

import (
	"math"
	"testing"
)

func TestSoftClip(t *testing.T) {
	if SoftClip(0.98) != 0.98 || SoftClip(-0.98) != -0.98 {
		t.Fatal("knee start must be a fixed point")
	}

	for _, x := range []float64{0, 0.5, -0.97, 0.979999} {
		if SoftClip(x) != x {
			t.Fatalf("SoftClip(%v) = %v, want identity", x, SoftClip(x))
		}
	}

	for _, x := range []float64{0.99, 1, 1.5, 4, 100, 1e300, -1, -7, -1e300} {
		y := SoftClip(x)
		if math.Abs(y) >= 1.05 || math.Abs(y) <= 0.98 {
			t.Fatalf("SoftClip(%v) = %v, want 0.98 < |y| < 1.05", x, y)
		}

		if math.Signbit(y) != math.Signbit(x) {
			t.Fatalf("SoftClip(%v) = %v changed sign", x, y)
		}
	}
}

func TestSoftClip_Monotonic(t *testing.T) {
	prev := SoftClip(-3)
	for x := -3.0; x <= 3; x += 0.001 {
		y := SoftClip(x)
		if y < prev {
			t.Fatalf("SoftClip decreased at %v", x)
		}

		prev = y
	}
}

func TestOutputStage(t *testing.T) {
	tests := []struct {
		name    string
		x, gain float64
		want    float64
	}{
		{"trim", 0.5, 0.5, 0.25},
		{"NaN", math.NaN(), 1, 0},
		{"+Inf", math.Inf(1), 1, 0},
		{"overflow", 1e308, 1e10, 0},
		{"clip", 2, 1, SoftClip(2)},
	}

	for _, tt := range tests {
		if got := outputStage(tt.x, tt.gain); got != tt.want {
			t.Errorf("%s: outputStage() = %v, want %v", tt.name, got, tt.want)
		}
	}
}
