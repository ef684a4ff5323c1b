package algebra

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-spectra/spectra/compare"
	"github.com/cwbudde/algo-spectra/spectra/resample"
	"github.com/cwbudde/algo-spectra/spectra/spectrum"
	"github.com/cwbudde/algo-spectra/spectra/unit"
)

// ErrUnsupportedOperand indicates an operand combination with no radiative
// meaning, such as the product of two spectra.
var ErrUnsupportedOperand = errors.New("algebra: unsupported operand combination")

// Add returns the pointwise sum of the active quantity of both operands,
// with b resampled onto a's axis and converted into a's quantity unit. The
// result holds only that quantity. Each operand must expose exactly one
// quantity unless WithQuantity names it.
func Add(a, b *spectrum.Spectrum, opts ...Option) (*spectrum.Spectrum, error) {
	return combine(a, b, false, applyOptions(opts))
}

// Sub returns the pointwise difference a − b under the same rules as [Add].
func Sub(a, b *spectrum.Spectrum, opts ...Option) (*spectrum.Spectrum, error) {
	return combine(a, b, true, applyOptions(opts))
}

// Mul always fails: multiplying two radiance-like spectra is not a
// meaningful radiative operation in this engine. Serial slab composition is
// the physically sound way to combine transmitting media.
func Mul(a, b *spectrum.Spectrum, opts ...Option) (*spectrum.Spectrum, error) {
	return nil, fmt.Errorf("%w: spectrum * spectrum", ErrUnsupportedOperand)
}

// Div always fails, like [Mul].
func Div(a, b *spectrum.Spectrum, opts ...Option) (*spectrum.Spectrum, error) {
	return nil, fmt.Errorf("%w: spectrum / spectrum", ErrUnsupportedOperand)
}

// Equal reports tolerance-based equality of the spectral quantities of a
// and b (default comparison tolerance; conditions and names are ignored).
func Equal(a, b *spectrum.Spectrum) bool {
	ok, err := compare.Within(a, b)
	return err == nil && ok
}

func combine(a, b *spectrum.Spectrum, subtract bool, cfg config) (*spectrum.Spectrum, error) {
	na, err := a.Resolve(cfg.quantity)
	if err != nil {
		return nil, err
	}
	var nb string
	if cfg.quantity != "" {
		nb, err = b.Resolve(cfg.quantity)
	} else {
		nb, err = b.SingleQuantity()
	}
	if err != nil {
		return nil, err
	}

	ra, rb, err := resample.Onto(a, b, resample.WithMode(cfg.mode))
	if err != nil {
		return nil, err
	}

	va, err := ra.Get(na)
	if err != nil {
		return nil, err
	}
	vb, err := rb.Get(nb)
	if err != nil {
		return nil, err
	}

	ua, _ := ra.Unit(na)
	ub, _ := rb.Unit(nb)
	if !unit.Same(ua, ub) {
		if err := unit.Convert(vb, vb, ub, ua); err != nil {
			return nil, fmt.Errorf("%q vs %q: %w", na, nb, err)
		}
	}

	if subtract {
		for i := range va {
			va[i] -= vb[i]
		}
	} else {
		vecmath.AddBlockInPlace(va, vb)
	}

	name := cfg.name
	if name == "" {
		name = a.Name()
	}
	result, err := spectrum.New(ra.Axis(), ra.AxisUnit(),
		spectrum.WithQuantity(na, va, ua),
		spectrum.WithConditions(a.Conditions()),
		spectrum.WithName(name),
	)
	if err != nil {
		return nil, err
	}

	if cfg.inplace {
		a.Assign(result)
		return a, nil
	}
	return result, nil
}
