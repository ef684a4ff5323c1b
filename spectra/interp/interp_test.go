package interp

import "testing"

func TestLinear2(t *testing.T) {
	if got := Linear2(2, 4, 0.25); got != 2.5 {
		t.Fatalf("got %v want 2.5", got)
	}
	if got := Linear2(1, 1, 0.7); got != 1 {
		t.Fatalf("constant segment: got %v want 1", got)
	}
}

func TestHermite4IdentityOnLinearRamp(t *testing.T) {
	ym1, y0, y1, y2 := -1.0, 0.0, 1.0, 2.0
	for _, tc := range []struct {
		t float64
		w float64
	}{
		{t: 0.0, w: 0.0},
		{t: 0.25, w: 0.25},
		{t: 0.5, w: 0.5},
		{t: 1.0, w: 1.0},
	} {
		got := Hermite4(tc.t, ym1, y0, y1, y2)
		if diff := got - tc.w; diff < -1e-12 || diff > 1e-12 {
			t.Fatalf("t=%v: got %v want %v", tc.t, got, tc.w)
		}
	}
}
