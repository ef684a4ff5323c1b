package algebra

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-spectra/spectra/spectrum"
	"github.com/cwbudde/algo-spectra/spectra/unit"
)

var (
	// ErrEmptyCrop indicates a crop window containing no axis samples.
	ErrEmptyCrop = errors.New("algebra: crop leaves no axis samples")
	// ErrZeroDivisor indicates a division by a zero scalar.
	ErrZeroDivisor = errors.New("algebra: division by zero")
)

// finish commits result according to cfg: it either becomes the payload of s
// (in-place mode) or is returned as a fresh spectrum.
func finish(s, result *spectrum.Spectrum, cfg config) *spectrum.Spectrum {
	if cfg.name != "" {
		result.SetName(cfg.name)
	}
	if cfg.inplace {
		s.Assign(result)
		return s
	}
	return result
}

// Crop restricts the axis to [lo, hi] inclusive, with the bounds given in
// any spectral axis unit (reciprocal bounds are converted and reordered).
// All quantities are cropped consistently; naming one with WithQuantity
// additionally reduces the result to that quantity.
func Crop(s *spectrum.Spectrum, lo, hi float64, unitStr string, opts ...Option) (*spectrum.Spectrum, error) {
	cfg := applyOptions(opts)

	clo, err := unit.ConvertAxisValue(lo, unitStr, s.AxisUnit())
	if err != nil {
		return nil, err
	}
	chi, err := unit.ConvertAxisValue(hi, unitStr, s.AxisUnit())
	if err != nil {
		return nil, err
	}
	if clo > chi {
		clo, chi = chi, clo
	}

	src := s
	if cfg.quantity != "" {
		if src, err = spectrum.Take(s, cfg.quantity); err != nil {
			return nil, err
		}
	}

	axis := src.Axis()
	i0, i1 := -1, -1
	for i, w := range axis {
		if w >= clo && w <= chi {
			if i0 < 0 {
				i0 = i
			}
			i1 = i
		}
	}
	if i0 < 0 {
		return nil, fmt.Errorf("%w: [%v, %v] %s", ErrEmptyCrop, lo, hi, unitStr)
	}

	specOpts := []spectrum.Option{
		spectrum.WithConditions(src.Conditions()),
		spectrum.WithName(src.Name()),
	}
	for _, name := range src.Quantities() {
		values, _ := src.Get(name)
		u, _ := src.Unit(name)
		specOpts = append(specOpts, spectrum.WithQuantity(name, values[i0:i1+1], u))
	}

	result, err := spectrum.New(axis[i0:i1+1], src.AxisUnit(), specOpts...)
	if err != nil {
		return nil, err
	}
	return finish(s, result, cfg), nil
}

// Offset shifts the axis by delta (converted into the axis unit, same unit
// kind only). Quantity values are untouched and nothing is resampled.
func Offset(s *spectrum.Spectrum, delta float64, unitStr string, opts ...Option) (*spectrum.Spectrum, error) {
	cfg := applyOptions(opts)

	d, err := unit.ConvertValue(delta, unitStr, s.AxisUnit())
	if err != nil {
		return nil, err
	}

	axis := s.Axis()
	for i := range axis {
		axis[i] += d
	}

	specOpts := []spectrum.Option{
		spectrum.WithConditions(s.Conditions()),
		spectrum.WithName(s.Name()),
	}
	for _, name := range s.Quantities() {
		values, _ := s.Get(name)
		u, _ := s.Unit(name)
		specOpts = append(specOpts, spectrum.WithQuantity(name, values, u))
	}
	result, err := spectrum.New(axis, s.AxisUnit(), specOpts...)
	if err != nil {
		return nil, err
	}
	return finish(s, result, cfg), nil
}

// AddConstant adds a unit-converted scalar to the selected quantity.
func AddConstant(s *spectrum.Spectrum, value float64, unitStr string, opts ...Option) (*spectrum.Spectrum, error) {
	cfg := applyOptions(opts)

	name, err := s.Resolve(cfg.quantity)
	if err != nil {
		return nil, err
	}
	qUnit, _ := s.Unit(name)
	v, err := unit.ConvertValue(value, unitStr, qUnit)
	if err != nil {
		return nil, fmt.Errorf("quantity %q: %w", name, err)
	}

	values, _ := s.Get(name)
	for i := range values {
		values[i] += v
	}

	result := s.Clone()
	if err := result.Set(name, values, qUnit); err != nil {
		return nil, err
	}
	return finish(s, result, cfg), nil
}

// Multiply scales the selected quantity by a dimensionless factor.
func Multiply(s *spectrum.Spectrum, factor float64, opts ...Option) (*spectrum.Spectrum, error) {
	return scale(s, factor, "", false, applyOptions(opts))
}

// Divide scales the selected quantity by 1/factor.
func Divide(s *spectrum.Spectrum, factor float64, opts ...Option) (*spectrum.Spectrum, error) {
	if factor == 0 {
		return nil, ErrZeroDivisor
	}
	return scale(s, 1/factor, "", false, applyOptions(opts))
}

// MultiplyDimensioned scales the selected quantity by a unit-carrying
// factor; the resulting unit is the simplified symbolic product, so
// multiplying a "count" quantity by a factor in "mW/cm2/sr/nm/count"
// yields "mW / (cm2 nm sr)".
func MultiplyDimensioned(s *spectrum.Spectrum, factor float64, unitStr string, opts ...Option) (*spectrum.Spectrum, error) {
	return scale(s, factor, unitStr, false, applyOptions(opts))
}

// DivideDimensioned scales the selected quantity by the reciprocal of a
// unit-carrying factor; the resulting unit is the simplified symbolic
// quotient (dividing a radiance by a radiance-valued scalar yields a
// dimensionless, normalized quantity).
func DivideDimensioned(s *spectrum.Spectrum, factor float64, unitStr string, opts ...Option) (*spectrum.Spectrum, error) {
	if factor == 0 {
		return nil, ErrZeroDivisor
	}
	return scale(s, 1/factor, unitStr, true, applyOptions(opts))
}

func scale(s *spectrum.Spectrum, factor float64, unitStr string, divide bool, cfg config) (*spectrum.Spectrum, error) {
	name, err := s.Resolve(cfg.quantity)
	if err != nil {
		return nil, err
	}
	qUnit, _ := s.Unit(name)

	newUnit := qUnit
	if unitStr != "" {
		qu, err := unit.Parse(qUnit)
		if err != nil {
			return nil, err
		}
		fu, err := unit.Parse(unitStr)
		if err != nil {
			return nil, err
		}
		if divide {
			newUnit = qu.Div(fu).String()
		} else {
			newUnit = qu.Mul(fu).String()
		}
	}

	values, _ := s.Get(name)
	if len(values) > 0 {
		vecmath.ScaleBlockInPlace(values, factor)
	}

	result := s.Clone()
	if err := result.Set(name, values, newUnit); err != nil {
		return nil, err
	}
	return finish(s, result, cfg), nil
}

// SubBaseline subtracts a straight-line baseline running from left (at the
// first axis sample) to right (at the last) from the selected quantity:
//
//	out[i] = v[i] − (left + (right−left)·i/(n−1))
//
// so the first sample decreases by left and the last by right. The two
// endpoints carry units independently.
func SubBaseline(s *spectrum.Spectrum, left, right float64, leftUnit, rightUnit string, opts ...Option) (*spectrum.Spectrum, error) {
	cfg := applyOptions(opts)

	name, err := s.Resolve(cfg.quantity)
	if err != nil {
		return nil, err
	}
	qUnit, _ := s.Unit(name)

	l, err := unit.ConvertValue(left, leftUnit, qUnit)
	if err != nil {
		return nil, fmt.Errorf("left endpoint: %w", err)
	}
	r, err := unit.ConvertValue(right, rightUnit, qUnit)
	if err != nil {
		return nil, fmt.Errorf("right endpoint: %w", err)
	}

	values, _ := s.Get(name)
	n := len(values)
	for i := range values {
		frac := 0.0
		if n > 1 {
			frac = float64(i) / float64(n-1)
		}
		values[i] -= l + (r-l)*frac
	}

	result := s.Clone()
	if err := result.Set(name, values, qUnit); err != nil {
		return nil, err
	}
	return finish(s, result, cfg), nil
}
