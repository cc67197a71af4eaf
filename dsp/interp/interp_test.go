package interp

import (
	"math"
	"testing"
)

func TestHermite4IdentityOnLinearRamp(t *testing.T) {
	xm1, x0, x1, x2 := -1.0, 0.0, 1.0, 2.0
	for _, tc := range []struct {
		t float64
		w float64
	}{
		{t: 0.0, w: 0.0},
		{t: 0.25, w: 0.25},
		{t: 0.5, w: 0.5},
		{t: 1.0, w: 1.0},
	} {
		got := Hermite4(tc.t, xm1, x0, x1, x2)
		if diff := got - tc.w; diff < -1e-12 || diff > 1e-12 {
			t.Fatalf("t=%v: got %v want %v", tc.t, got, tc.w)
		}
	}
}

// The expanded Catmull-Rom polynomial a*t^3 + b*t^2 + c*t + d must agree
// with the Horner form used by Hermite4.
func TestHermite4MatchesCatmullRomPolynomial(t *testing.T) {
	y0, y1, y2, y3 := 0.3, -0.7, 1.1, 0.2
	a := -0.5*y0 + 1.5*y1 - 1.5*y2 + 0.5*y3
	b := y0 - 2.5*y1 + 2*y2 - 0.5*y3
	c := -0.5*y0 + 0.5*y2
	d := y1

	for _, x := range []float64{0, 0.1, 0.37, 0.5, 0.93, 1} {
		want := a*x*x*x + b*x*x + c*x + d
		got := Hermite4(x, y0, y1, y2, y3)
		if math.Abs(got-want) > 1e-12 {
			t.Fatalf("x=%v: got %v want %v", x, got, want)
		}
	}
}
