package core

import "testing"

func TestZero(t *testing.T) {
	buf := []float64{1, 2, 3}
	Zero(buf)

	for i, v := range buf {
		if v != 0 {
			t.Fatalf("buf[%d] = %v, want 0", i, v)
		}
	}
}

func TestInterleaveRoundTrip(t *testing.T) {
	interleaved := []float64{1, -1, 2, -2, 3, -3}
	left := make([]float64, 3)
	right := make([]float64, 3)
	chans := [][]float64{left, right}

	if n := Deinterleave(chans, interleaved); n != 3 {
		t.Fatalf("Deinterleave frames = %d, want 3", n)
	}
	if left[2] != 3 || right[2] != -3 {
		t.Fatalf("unexpected channels: %v %v", left, right)
	}

	out := make([]float64, 6)
	if n := Interleave(out, chans, 3); n != 3 {
		t.Fatalf("Interleave frames = %d, want 3", n)
	}
	for i := range out {
		if out[i] != interleaved[i] {
			t.Fatalf("out[%d] = %v, want %v", i, out[i], interleaved[i])
		}
	}
}

func TestInterleaveClampsToDst(t *testing.T) {
	chans := [][]float64{{1, 2, 3}, {4, 5, 6}}
	out := make([]float64, 4)
	if n := Interleave(out, chans, 3); n != 2 {
		t.Fatalf("frames = %d, want 2", n)
	}
}
