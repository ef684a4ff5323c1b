package testutil

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-spectra/spectra/spectrum"
)

// LinearAxis returns n evenly spaced samples from lo to hi inclusive.
func LinearAxis(lo, hi float64, n int) []float64 {
	out := make([]float64, n)
	if n == 1 {
		out[0] = lo
		return out
	}
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	return out
}

// GaussianLines evaluates a sum of Gaussian absorption lines on axis.
func GaussianLines(axis, centers, strengths []float64, width float64) []float64 {
	out := make([]float64, len(axis))
	for i, w := range axis {
		for j, c := range centers {
			d := (w - c) / width
			out[i] += strengths[j] * math.Exp(-0.5*d*d)
		}
	}
	return out
}

// Slab builds a physically consistent synthetic slab over axis (in axisUnit)
// with two Gaussian absorption lines. pathLength is in cm and source scales
// the emitted radiance. The slab carries abscoeff, absorbance,
// transmittance_noslit and radiance_noslit, linked by
//
//	absorbance = abscoeff * pathLength
//	transmittance = exp(-absorbance)
//	radiance = source * (1 - transmittance)
//
// so that serial and parallel composition identities hold exactly.
func Slab(axis []float64, axisUnit string, pathLength, source float64) *spectrum.Spectrum {
	span := axis[len(axis)-1] - axis[0]
	centers := []float64{axis[0] + 0.3*span, axis[0] + 0.7*span}
	strengths := []float64{0.08, 0.05}
	width := 0.05 * span

	k := GaussianLines(axis, centers, strengths, width)
	absorbance := make([]float64, len(axis))
	transmittance := make([]float64, len(axis))
	radiance := make([]float64, len(axis))
	for i := range axis {
		absorbance[i] = k[i] * pathLength
		transmittance[i] = math.Exp(-absorbance[i])
		radiance[i] = source * (1 - transmittance[i])
	}

	s, err := spectrum.New(axis, axisUnit,
		spectrum.WithQuantity(spectrum.AbsCoeff, k, "cm-1"),
		spectrum.WithQuantity(spectrum.Absorbance, absorbance, ""),
		spectrum.WithQuantity(spectrum.TransmittanceNoSlit, transmittance, ""),
		spectrum.WithQuantity(spectrum.RadianceNoSlit, radiance, "mW/cm2/sr/nm"),
		spectrum.WithCondition("path_length", pathLength),
		spectrum.WithName(fmt.Sprintf("slab_L%g", pathLength)),
	)
	if err != nil {
		panic("testutil: invalid synthetic slab: " + err.Error())
	}
	return s
}

// RadianceSlab is Slab reduced to its radiance_noslit quantity.
func RadianceSlab(axis []float64, axisUnit string, pathLength, source float64) *spectrum.Spectrum {
	s, err := spectrum.Take(Slab(axis, axisUnit, pathLength, source), spectrum.RadianceNoSlit)
	if err != nil {
		panic("testutil: " + err.Error())
	}
	return s
}
