package algebra

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-spectra/internal/testutil"
	"github.com/cwbudde/algo-spectra/spectra/compare"
	"github.com/cwbudde/algo-spectra/spectra/resample"
	"github.com/cwbudde/algo-spectra/spectra/spectrum"
)

func TestAddEqualsDoubling(t *testing.T) {
	s := radianceSlab(t)

	sum, err := Add(s, s)
	if err != nil {
		t.Fatal(err)
	}
	doubled, err := Multiply(s, 2)
	if err != nil {
		t.Fatal(err)
	}
	ok, err := compare.Within(sum, doubled, compare.WithQuantities(spectrum.RadianceNoSlit))
	if err != nil || !ok {
		t.Fatalf("s + s != 2*s: %v, %v", ok, err)
	}
}

func TestSubSelfIsZero(t *testing.T) {
	axis := testutil.LinearAxis(2000, 2300, 101)
	tr, err := spectrum.Take(testutil.Slab(axis, "cm-1", 10, 1), spectrum.TransmittanceNoSlit)
	if err != nil {
		t.Fatal(err)
	}

	scaled, err := Multiply(tr, 1)
	if err != nil {
		t.Fatal(err)
	}
	diff, err := Sub(tr, scaled)
	if err != nil {
		t.Fatal(err)
	}
	values, _ := diff.Get(spectrum.TransmittanceNoSlit)
	if integral := compare.Trapz(diff.Axis(), values); integral != 0 {
		t.Fatalf("(s - 1.0*s) integral = %v, want 0", integral)
	}
}

func TestMulDivUnsupported(t *testing.T) {
	s := radianceSlab(t)
	if _, err := Mul(s, s); !errors.Is(err, ErrUnsupportedOperand) {
		t.Fatalf("Mul err = %v, want ErrUnsupportedOperand", err)
	}
	if _, err := Div(s, s); !errors.Is(err, ErrUnsupportedOperand) {
		t.Fatalf("Div err = %v, want ErrUnsupportedOperand", err)
	}
}

func TestAddAmbiguityGuard(t *testing.T) {
	axis := testutil.LinearAxis(2000, 2300, 51)
	multi := testutil.Slab(axis, "cm-1", 10, 1)

	if _, err := Add(multi, multi); !errors.Is(err, spectrum.ErrAmbiguousQuantity) {
		t.Fatalf("err = %v, want ErrAmbiguousQuantity", err)
	}
	if _, err := Add(multi, multi, WithQuantity(spectrum.RadianceNoSlit)); err != nil {
		t.Fatalf("explicit selection failed: %v", err)
	}
}

func TestAddResamplesOntoIntersection(t *testing.T) {
	axis := testutil.LinearAxis(4400, 4800, 201)
	a := testutil.RadianceSlab(axis, "nm", 10, 1)

	shifted := testutil.LinearAxis(4500, 4900, 201)
	b := testutil.RadianceSlab(shifted, "nm", 10, 1)

	sum, err := Add(a, b)
	if err != nil {
		t.Fatal(err)
	}
	got := sum.Axis()
	if got[0] < 4500 || got[len(got)-1] > 4800 {
		t.Fatalf("sum axis [%v, %v] exceeds overlap [4500, 4800]", got[0], got[len(got)-1])
	}
	values, _ := sum.Get(spectrum.RadianceNoSlit)
	testutil.RequireFinite(t, values)
}

func TestAddConvertsQuantityUnits(t *testing.T) {
	axis := testutil.LinearAxis(400, 440, 5)
	ones := []float64{1, 1, 1, 1, 1}
	milli := []float64{0.001, 0.001, 0.001, 0.001, 0.001}

	a, err := spectrum.New(axis, "nm",
		spectrum.WithQuantity(spectrum.RadianceNoSlit, ones, "mW/cm2/sr/nm"))
	if err != nil {
		t.Fatal(err)
	}
	b, err := spectrum.New(axis, "nm",
		spectrum.WithQuantity(spectrum.RadianceNoSlit, milli, "W/cm2/sr/nm"))
	if err != nil {
		t.Fatal(err)
	}

	sum, err := Add(a, b)
	if err != nil {
		t.Fatal(err)
	}
	values, _ := sum.Get(spectrum.RadianceNoSlit)
	testutil.RequireSliceNearlyEqual(t, values, []float64{2, 2, 2, 2, 2}, 1e-12)
	u, _ := sum.Unit(spectrum.RadianceNoSlit)
	if u != "mW/cm2/sr/nm" {
		t.Fatalf("sum unit = %q, want first operand's", u)
	}
}

func TestAddInplace(t *testing.T) {
	s := radianceSlab(t)
	before, _ := s.Get(spectrum.RadianceNoSlit)

	r, err := Add(s, s, WithInplace())
	if err != nil {
		t.Fatal(err)
	}
	if r != s {
		t.Fatal("in-place add should return the mutated receiver")
	}
	after, _ := s.Get(spectrum.RadianceNoSlit)
	for i := range after {
		testutil.RequireNearlyEqual(t, after[i], 2*before[i], 1e-12)
	}
}

func TestEqual(t *testing.T) {
	s := radianceSlab(t)
	if !Equal(s, s.Clone()) {
		t.Fatal("clone should compare equal")
	}

	doubled, err := Multiply(s, 2)
	if err != nil {
		t.Fatal(err)
	}
	if Equal(s, doubled) {
		t.Fatal("doubled spectrum should not compare equal")
	}
}

func TestAddMixedAxisUnits(t *testing.T) {
	// The same physical spectrum expressed once in nm and once in cm-1
	// must add up to its double.
	axis := testutil.LinearAxis(4400, 4800, 401)
	a := testutil.RadianceSlab(axis, "nm", 10, 1)

	wn := make([]float64, len(axis))
	values, _ := a.Get(spectrum.RadianceNoSlit)
	reversedValues := make([]float64, len(values))
	for i, w := range axis {
		wn[len(axis)-1-i] = 1e7 / w
		reversedValues[len(axis)-1-i] = values[i]
	}
	b, err := spectrum.New(wn, "cm-1",
		spectrum.WithQuantity(spectrum.RadianceNoSlit, reversedValues, "mW/cm2/sr/nm"))
	if err != nil {
		t.Fatal(err)
	}

	sum, err := Add(a, b)
	if err != nil {
		t.Fatal(err)
	}
	doubled, err := Multiply(a, 2)
	if err != nil {
		t.Fatal(err)
	}
	// Resampling across the reciprocal axis is interpolation, not identity:
	// allow a modest tolerance.
	ok, err := compare.Within(sum, doubled, compare.WithRTol(1e-3))
	if err != nil || !ok {
		t.Fatalf("nm + cm-1 rendition != 2*s: %v, %v", ok, err)
	}
}

func TestSubNaNOutsideOverlapWithFullMode(t *testing.T) {
	axis := testutil.LinearAxis(4400, 4800, 101)
	a := testutil.RadianceSlab(axis, "nm", 10, 1)
	b := testutil.RadianceSlab(testutil.LinearAxis(4600, 5000, 101), "nm", 10, 1)

	diff, err := Sub(a, b, WithMode(resample.ModeFull))
	if err != nil {
		t.Fatal(err)
	}
	values, _ := diff.Get(spectrum.RadianceNoSlit)
	hasNaN := false
	for _, v := range values {
		if math.IsNaN(v) {
			hasNaN = true
			break
		}
	}
	if !hasNaN {
		t.Fatal("full-mode subtraction should carry NaN outside the overlap")
	}
}
