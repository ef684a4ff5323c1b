package spectrum

import (
	"errors"
	"fmt"
	"sort"

	"github.com/cwbudde/algo-spectra/spectra/unit"
)

var (
	// ErrEmptyAxis indicates a spectrum constructed without axis samples.
	ErrEmptyAxis = errors.New("spectrum: empty axis")
	// ErrNotMonotonic indicates an axis that is not strictly monotonic.
	ErrNotMonotonic = errors.New("spectrum: axis must be strictly monotonic")
	// ErrLengthMismatch indicates a quantity whose length differs from the axis.
	ErrLengthMismatch = errors.New("spectrum: quantity length does not match axis")
	// ErrUnknownQuantity indicates access to a quantity the spectrum does not hold.
	ErrUnknownQuantity = errors.New("spectrum: unknown quantity")
	// ErrNoQuantity indicates a single-quantity operation on a spectrum
	// holding no quantities.
	ErrNoQuantity = errors.New("spectrum: no quantity defined")
	// ErrAmbiguousQuantity indicates a single-quantity operation on a
	// multi-quantity spectrum without an explicit quantity name.
	ErrAmbiguousQuantity = errors.New("spectrum: ambiguous quantity selection")
)

// Spectrum holds a spectral axis and one or more co-indexed quantities.
type Spectrum struct {
	axis     []float64
	axisUnit string

	quantities map[string][]float64
	units      map[string]string

	conditions map[string]any
	name       string
}

// Option configures a spectrum under construction.
type Option func(*Spectrum)

// WithQuantity attaches a named quantity with its unit. The empty unit
// string denotes a dimensionless quantity.
func WithQuantity(name string, values []float64, unitStr string) Option {
	return func(s *Spectrum) {
		s.quantities[name] = append([]float64(nil), values...)
		s.units[name] = unitStr
	}
}

// WithConditions attaches opaque computation conditions. The engine never
// interprets them, apart from merge rules in line-of-sight composition.
func WithConditions(m map[string]any) Option {
	return func(s *Spectrum) {
		for k, v := range m {
			s.conditions[k] = v
		}
	}
}

// WithCondition attaches a single condition entry.
func WithCondition(key string, value any) Option {
	return func(s *Spectrum) {
		s.conditions[key] = value
	}
}

// WithName sets the display name.
func WithName(name string) Option {
	return func(s *Spectrum) {
		s.name = name
	}
}

// New builds and validates a spectrum. The axis must be non-empty, strictly
// monotonic (ascending or descending) and tagged with a wavelength-like or
// wavenumber-like unit. Every quantity must be co-indexed with the axis and
// carry a parseable unit. Input slices are copied.
func New(axis []float64, axisUnit string, opts ...Option) (*Spectrum, error) {
	s := &Spectrum{
		axis:       append([]float64(nil), axis...),
		axisUnit:   axisUnit,
		quantities: make(map[string][]float64),
		units:      make(map[string]string),
		conditions: make(map[string]any),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}

	if err := s.validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Spectrum) validate() error {
	if len(s.axis) == 0 {
		return ErrEmptyAxis
	}
	if _, err := unit.KindOf(s.axisUnit); err != nil {
		return err
	}
	if !monotonic(s.axis) {
		return ErrNotMonotonic
	}
	for name, values := range s.quantities {
		if len(values) != len(s.axis) {
			return fmt.Errorf("%w: %q has %d samples, axis has %d",
				ErrLengthMismatch, name, len(values), len(s.axis))
		}
		if _, err := unit.Parse(s.units[name]); err != nil {
			return fmt.Errorf("quantity %q: %w", name, err)
		}
	}
	return nil
}

func monotonic(axis []float64) bool {
	if len(axis) < 2 {
		return true
	}
	ascending := axis[1] > axis[0]
	for i := 1; i < len(axis); i++ {
		if ascending && axis[i] <= axis[i-1] {
			return false
		}
		if !ascending && axis[i] >= axis[i-1] {
			return false
		}
	}
	return true
}

// Len returns the number of axis samples.
func (s *Spectrum) Len() int { return len(s.axis) }

// Axis returns a copy of the spectral axis.
func (s *Spectrum) Axis() []float64 { return append([]float64(nil), s.axis...) }

// AxisUnit returns the axis unit expression.
func (s *Spectrum) AxisUnit() string { return s.axisUnit }

// AxisKind returns the axis unit kind (wavelength-like or wavenumber-like).
func (s *Spectrum) AxisKind() unit.Kind {
	k, _ := unit.KindOf(s.axisUnit)
	return k
}

// Ascending reports whether the axis runs in increasing order.
func (s *Spectrum) Ascending() bool {
	return len(s.axis) < 2 || s.axis[1] > s.axis[0]
}

// Quantities returns the sorted names of all quantities held.
func (s *Spectrum) Quantities() []string {
	out := make([]string, 0, len(s.quantities))
	for name := range s.quantities {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Has reports whether the spectrum holds the named quantity.
func (s *Spectrum) Has(name string) bool {
	_, ok := s.quantities[name]
	return ok
}

// Get returns a copy of the named quantity's values.
func (s *Spectrum) Get(name string) ([]float64, error) {
	values, ok := s.quantities[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownQuantity, name)
	}
	return append([]float64(nil), values...), nil
}

// Unit returns the unit expression of the named quantity.
func (s *Spectrum) Unit(name string) (string, error) {
	u, ok := s.units[name]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownQuantity, name)
	}
	return u, nil
}

// Set attaches or replaces a quantity. Values are copied and must be
// co-indexed with the axis; the unit must parse.
func (s *Spectrum) Set(name string, values []float64, unitStr string) error {
	if len(values) != len(s.axis) {
		return fmt.Errorf("%w: %q has %d samples, axis has %d",
			ErrLengthMismatch, name, len(values), len(s.axis))
	}
	if _, err := unit.Parse(unitStr); err != nil {
		return fmt.Errorf("quantity %q: %w", name, err)
	}
	s.quantities[name] = append([]float64(nil), values...)
	s.units[name] = unitStr
	return nil
}

// SetUnit relabels the unit of an existing quantity without touching its
// values (e.g. declaring raw detector output as "count" before calibration).
func (s *Spectrum) SetUnit(name, unitStr string) error {
	if _, ok := s.quantities[name]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownQuantity, name)
	}
	if _, err := unit.Parse(unitStr); err != nil {
		return fmt.Errorf("quantity %q: %w", name, err)
	}
	s.units[name] = unitStr
	return nil
}

// SingleQuantity returns the name of the only quantity held. It fails with
// ErrNoQuantity on an empty spectrum and ErrAmbiguousQuantity when several
// quantities are present; ambiguity is never silently resolved.
func (s *Spectrum) SingleQuantity() (string, error) {
	switch len(s.quantities) {
	case 0:
		return "", ErrNoQuantity
	case 1:
		for name := range s.quantities {
			return name, nil
		}
	}
	return "", fmt.Errorf("%w: spectrum holds %v, name one explicitly",
		ErrAmbiguousQuantity, s.Quantities())
}

// Resolve maps an optional quantity name to a concrete one: the empty name
// resolves through SingleQuantity, a non-empty name must exist.
func (s *Spectrum) Resolve(name string) (string, error) {
	if name == "" {
		return s.SingleQuantity()
	}
	if !s.Has(name) {
		return "", fmt.Errorf("%w: %q", ErrUnknownQuantity, name)
	}
	return name, nil
}

// Conditions returns a shallow copy of the computation conditions.
func (s *Spectrum) Conditions() map[string]any {
	out := make(map[string]any, len(s.conditions))
	for k, v := range s.conditions {
		out[k] = v
	}
	return out
}

// Condition returns a single condition entry.
func (s *Spectrum) Condition(key string) (any, bool) {
	v, ok := s.conditions[key]
	return v, ok
}

// SetCondition stores a single condition entry.
func (s *Spectrum) SetCondition(key string, value any) {
	s.conditions[key] = value
}

// Name returns the display name.
func (s *Spectrum) Name() string { return s.name }

// SetName updates the display name.
func (s *Spectrum) SetName(name string) { s.name = name }

// Clone returns a deep copy sharing no storage with s.
func (s *Spectrum) Clone() *Spectrum {
	out := &Spectrum{
		axis:       append([]float64(nil), s.axis...),
		axisUnit:   s.axisUnit,
		quantities: make(map[string][]float64, len(s.quantities)),
		units:      make(map[string]string, len(s.units)),
		conditions: make(map[string]any, len(s.conditions)),
		name:       s.name,
	}
	for name, values := range s.quantities {
		out.quantities[name] = append([]float64(nil), values...)
		out.units[name] = s.units[name]
	}
	for k, v := range s.conditions {
		out.conditions[k] = v
	}
	return out
}

// Assign replaces the payload of s with a deep copy of from. It is the
// in-place commit step: callers compute and validate a complete replacement
// first, then assign, so a failing operation never leaves s half-mutated.
func (s *Spectrum) Assign(from *Spectrum) {
	c := from.Clone()
	s.axis = c.axis
	s.axisUnit = c.axisUnit
	s.quantities = c.quantities
	s.units = c.units
	s.conditions = c.conditions
	s.name = c.name
}
