package resample

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-spectra/internal/testutil"
	"github.com/cwbudde/algo-spectra/spectra/spectrum"
)

func rampSpectrum(t *testing.T) *spectrum.Spectrum {
	t.Helper()
	axis := []float64{400, 410, 420, 430, 440}
	values := []float64{0, 1, 2, 3, 4}
	s, err := spectrum.New(axis, "nm",
		spectrum.WithQuantity(spectrum.RadianceNoSlit, values, "mW/cm2/sr/nm"))
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestResampleIdentity(t *testing.T) {
	s := rampSpectrum(t)
	r, err := Resample(s, s.Axis(), "nm")
	if err != nil {
		t.Fatal(err)
	}
	got, _ := r.Get(spectrum.RadianceNoSlit)
	want, _ := s.Get(spectrum.RadianceNoSlit)
	testutil.RequireSliceNearlyEqual(t, got, want, 1e-12)
}

func TestResampleLinearMidpoints(t *testing.T) {
	s := rampSpectrum(t)
	target := []float64{405, 415, 425}
	r, err := Resample(s, target, "nm")
	if err != nil {
		t.Fatal(err)
	}
	got, _ := r.Get(spectrum.RadianceNoSlit)
	testutil.RequireSliceNearlyEqual(t, got, []float64{0.5, 1.5, 2.5}, 1e-12)
}

func TestResampleCubicOnRamp(t *testing.T) {
	// Cubic interpolation reproduces a linear ramp exactly.
	s := rampSpectrum(t)
	target := []float64{402.5, 417.5, 437.5}
	r, err := Resample(s, target, "nm", WithMethod(MethodCubic))
	if err != nil {
		t.Fatal(err)
	}
	got, _ := r.Get(spectrum.RadianceNoSlit)
	testutil.RequireSliceNearlyEqual(t, got, []float64{0.25, 1.75, 3.75}, 1e-12)
}

func TestResampleOutOfBoundsPolicies(t *testing.T) {
	s := rampSpectrum(t)
	target := []float64{390, 420, 450}

	r, err := Resample(s, target, "nm")
	if err != nil {
		t.Fatal(err)
	}
	got, _ := r.Get(spectrum.RadianceNoSlit)
	if !math.IsNaN(got[0]) || !math.IsNaN(got[2]) || got[1] != 2 {
		t.Fatalf("PolicyNaN: got %v", got)
	}

	r, err = Resample(s, target, "nm", WithPolicy(PolicyClamp))
	if err != nil {
		t.Fatal(err)
	}
	got, _ = r.Get(spectrum.RadianceNoSlit)
	testutil.RequireSliceNearlyEqual(t, got, []float64{0, 2, 4}, 1e-12)

	if _, err = Resample(s, target, "nm", WithPolicy(PolicyError)); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("PolicyError: err = %v, want ErrOutOfRange", err)
	}
}

func TestResampleReciprocalUnit(t *testing.T) {
	s := rampSpectrum(t)

	// Wavenumber targets for 400..440 nm lie in [1e7/440, 1e7/400] cm-1.
	target := []float64{23000, 24000, 25000}
	r, err := Resample(s, target, "cm-1")
	if err != nil {
		t.Fatal(err)
	}
	if r.AxisUnit() != "cm-1" {
		t.Fatalf("axis unit = %q", r.AxisUnit())
	}

	got, _ := r.Get(spectrum.RadianceNoSlit)
	testutil.RequireFinite(t, got)
	// 25000 cm-1 is exactly 400 nm (value 0).
	if math.Abs(got[2]-0) > 1e-9 {
		t.Fatalf("at 25000 cm-1: got %v, want 0", got[2])
	}
	// 23000 cm-1 falls between the 440 nm and 430 nm nodes; interpolation
	// runs linearly in wavenumber.
	x0, x1 := 1e7/440, 1e7/430
	frac := (23000 - x0) / (x1 - x0)
	want := 4 + frac*(3-4)
	if math.Abs(got[0]-want) > 1e-9 {
		t.Fatalf("at 23000 cm-1: got %v, want %v", got[0], want)
	}
}

func TestResampleBadTarget(t *testing.T) {
	s := rampSpectrum(t)
	if _, err := Resample(s, nil, "nm"); !errors.Is(err, ErrBadTarget) {
		t.Fatalf("nil target err = %v", err)
	}
	if _, err := Resample(s, []float64{1, 1, 2}, "nm"); !errors.Is(err, ErrBadTarget) {
		t.Fatalf("non-monotonic target err = %v", err)
	}
}

func TestResampleInplace(t *testing.T) {
	s := rampSpectrum(t)
	target := []float64{405, 415}
	r, err := Resample(s, target, "nm", WithInplace())
	if err != nil {
		t.Fatal(err)
	}
	if r != s {
		t.Fatal("inplace resample should return the mutated receiver")
	}
	if s.Len() != 2 {
		t.Fatalf("inplace resample left %d samples", s.Len())
	}
}

func TestCommonAxisIntersect(t *testing.T) {
	a := rampSpectrum(t)
	b, err := spectrum.New([]float64{415, 425, 435, 445}, "nm",
		spectrum.WithQuantity(spectrum.RadianceNoSlit, []float64{1, 1, 1, 1}, "mW/cm2/sr/nm"))
	if err != nil {
		t.Fatal(err)
	}

	axis, err := CommonAxis(a, b, ModeIntersect, "nm")
	if err != nil {
		t.Fatal(err)
	}
	// a's samples inside [415, 440].
	testutil.RequireSliceNearlyEqual(t, axis, []float64{420, 430, 440}, 1e-12)
}

func TestCommonAxisFull(t *testing.T) {
	a := rampSpectrum(t)
	b, err := spectrum.New([]float64{435, 445}, "nm",
		spectrum.WithQuantity(spectrum.RadianceNoSlit, []float64{1, 1}, "mW/cm2/sr/nm"))
	if err != nil {
		t.Fatal(err)
	}

	axis, err := CommonAxis(a, b, ModeFull, "nm")
	if err != nil {
		t.Fatal(err)
	}
	testutil.RequireSliceNearlyEqual(t, axis,
		[]float64{400, 410, 420, 430, 435, 440, 445}, 1e-12)
}

func TestCommonAxisEmptyIntersection(t *testing.T) {
	a := rampSpectrum(t)
	b, err := spectrum.New([]float64{500, 510}, "nm",
		spectrum.WithQuantity(spectrum.RadianceNoSlit, []float64{1, 1}, "mW/cm2/sr/nm"))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := CommonAxis(a, b, ModeIntersect, "nm"); !errors.Is(err, ErrEmptyRange) {
		t.Fatalf("disjoint ranges err = %v, want ErrEmptyRange", err)
	}
}

func TestOntoFastPath(t *testing.T) {
	a := rampSpectrum(t)
	b := rampSpectrum(t)
	ra, rb, err := Onto(a, b)
	if err != nil {
		t.Fatal(err)
	}
	if ra != a || rb != b {
		t.Fatal("identical axes should skip resampling")
	}
}

func TestOntoResamplesSecondOperand(t *testing.T) {
	a := rampSpectrum(t)
	b, err := spectrum.New([]float64{405, 415, 425, 435}, "nm",
		spectrum.WithQuantity(spectrum.RadianceNoSlit, []float64{1, 2, 3, 4}, "mW/cm2/sr/nm"))
	if err != nil {
		t.Fatal(err)
	}

	ra, rb, err := Onto(a, b)
	if err != nil {
		t.Fatal(err)
	}
	testutil.RequireSliceNearlyEqual(t, ra.Axis(), rb.Axis(), 1e-12)
	got, _ := rb.Get(spectrum.RadianceNoSlit)
	// b is linear (1 + (w-405)/10), so interpolation onto 410..430 is exact.
	testutil.RequireSliceNearlyEqual(t, got, []float64{1.5, 2.5, 3.5}, 1e-12)
}
