// Package compare computes interpolated differences between spectra and
// tolerance-based equality. Both operands are reconciled onto a common axis
// (overlap of both ranges) before any pointwise comparison; metadata and
// conditions never take part in equality.
package compare

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-spectra/spectra/resample"
	"github.com/cwbudde/algo-spectra/spectra/spectrum"
	"github.com/cwbudde/algo-spectra/spectra/unit"
)

// ErrNoCommonQuantity indicates two spectra sharing no quantity to compare.
var ErrNoCommonQuantity = errors.New("compare: no common quantity")

// DefaultRTol is the relative tolerance used when none is configured.
const DefaultRTol = 1e-5

// Aggregate selects how pointwise differences collapse into a verdict.
type Aggregate int

const (
	// AggregatePointwise requires every sample within tolerance.
	AggregatePointwise Aggregate = iota
	// AggregateIntegral compares the integrated difference against the
	// integrated reference (integral-ratio sense).
	AggregateIntegral
)

type config struct {
	rtol       float64
	quantities []string
	agg        Aggregate
	mode       resample.Mode
}

// Option configures comparison.
type Option func(*config)

// WithRTol sets the relative tolerance.
func WithRTol(rtol float64) Option {
	return func(cfg *config) {
		if rtol > 0 {
			cfg.rtol = rtol
		}
	}
}

// WithQuantities restricts the comparison to the named quantities.
// Without it, all quantities common to both spectra are compared.
func WithQuantities(names ...string) Option {
	return func(cfg *config) {
		cfg.quantities = names
	}
}

// WithAggregate selects the aggregation rule.
func WithAggregate(a Aggregate) Option {
	return func(cfg *config) {
		cfg.agg = a
	}
}

// WithMode selects the common-axis mode (default: intersection).
func WithMode(m resample.Mode) Option {
	return func(cfg *config) {
		cfg.mode = m
	}
}

func applyOptions(opts []Option) config {
	cfg := config{rtol: DefaultRTol}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// Diff returns the common axis (in a's axis unit) and the pointwise
// difference a − b of the named quantity, with b's values converted into
// a's quantity unit.
func Diff(a, b *spectrum.Spectrum, name string, opts ...Option) ([]float64, []float64, error) {
	cfg := applyOptions(opts)
	axis, _, diff, err := diffOn(a, b, name, cfg)
	return axis, diff, err
}

func diffOn(a, b *spectrum.Spectrum, name string, cfg config) (axis, ref, diff []float64, err error) {
	ra, rb, err := resample.Onto(a, b, resample.WithMode(cfg.mode))
	if err != nil {
		return nil, nil, nil, err
	}

	va, err := ra.Get(name)
	if err != nil {
		return nil, nil, nil, err
	}
	vb, err := rb.Get(name)
	if err != nil {
		return nil, nil, nil, err
	}

	ua, _ := ra.Unit(name)
	ub, _ := rb.Unit(name)
	if !unit.Same(ua, ub) {
		if err := unit.Convert(vb, vb, ub, ua); err != nil {
			return nil, nil, nil, fmt.Errorf("quantity %q: %w", name, err)
		}
	}

	diff = make([]float64, len(va))
	for i := range va {
		diff[i] = va[i] - vb[i]
	}
	return ra.Axis(), va, diff, nil
}

// Within reports whether a and b agree within the configured relative
// tolerance on every selected quantity. The default is pointwise agreement,
// with the absolute difference normalized by the reference operand's maximum
// magnitude; AggregateIntegral uses the integral-ratio rule instead.
// Non-finite differences count as disagreement.
func Within(a, b *spectrum.Spectrum, opts ...Option) (bool, error) {
	cfg := applyOptions(opts)

	names := cfg.quantities
	if len(names) == 0 {
		for _, name := range a.Quantities() {
			if b.Has(name) {
				names = append(names, name)
			}
		}
		if len(names) == 0 {
			return false, fmt.Errorf("%w: %v vs %v", ErrNoCommonQuantity, a.Quantities(), b.Quantities())
		}
	}

	for _, name := range names {
		axis, ref, diff, err := diffOn(a, b, name, cfg)
		if err != nil {
			return false, err
		}
		if !withinOne(axis, ref, diff, cfg) {
			return false, nil
		}
	}
	return true, nil
}

func withinOne(axis, ref, diff []float64, cfg config) bool {
	if cfg.agg == AggregateIntegral {
		num := math.Abs(Trapz(axis, diff))
		den := math.Abs(Trapz(axis, ref))
		if math.IsNaN(num) {
			return false
		}
		return num <= cfg.rtol*den
	}

	thr := cfg.rtol * vecmath.MaxAbs(ref)
	for _, d := range diff {
		if math.IsNaN(d) || math.Abs(d) > thr {
			return false
		}
	}
	return true
}

// Trapz computes the trapezoidal integral of y over x.
func Trapz(x, y []float64) float64 {
	var total float64
	for i := 1; i < len(x); i++ {
		total += 0.5 * (y[i] + y[i-1]) * (x[i] - x[i-1])
	}
	return total
}
