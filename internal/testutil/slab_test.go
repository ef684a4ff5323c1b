package testutil

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-spectra/spectra/spectrum"
)

func TestLinearAxis(t *testing.T) {
	axis := LinearAxis(400, 440, 5)
	RequireSliceNearlyEqual(t, axis, []float64{400, 410, 420, 430, 440}, 1e-12)

	single := LinearAxis(7, 9, 1)
	RequireSliceNearlyEqual(t, single, []float64{7}, 0)
}

func TestSlabConsistency(t *testing.T) {
	axis := LinearAxis(2000, 2300, 101)
	s := Slab(axis, "cm-1", 10, 1)

	k, _ := s.Get(spectrum.AbsCoeff)
	a, _ := s.Get(spectrum.Absorbance)
	tr, _ := s.Get(spectrum.TransmittanceNoSlit)
	rad, _ := s.Get(spectrum.RadianceNoSlit)

	for i := range axis {
		RequireNearlyEqual(t, a[i], k[i]*10, 1e-12)
		RequireNearlyEqual(t, tr[i], math.Exp(-a[i]), 1e-12)
		RequireNearlyEqual(t, rad[i], 1-tr[i], 1e-12)
		if tr[i] <= 0 || tr[i] > 1 {
			t.Fatalf("index %d: transmittance %v outside (0, 1]", i, tr[i])
		}
	}
}
