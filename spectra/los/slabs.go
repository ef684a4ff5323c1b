package los

import (
	"errors"
	"fmt"
	"math"
	"reflect"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-spectra/spectra/resample"
	"github.com/cwbudde/algo-spectra/spectra/spectrum"
	"github.com/cwbudde/algo-spectra/spectra/unit"
)

var (
	// ErrNoSlabs indicates a composition invoked without operands.
	ErrNoSlabs = errors.New("los: no slabs to compose")
	// ErrConvolvedOnly indicates a slab carrying only slit-convolved
	// quantities, which cannot be merged linearly.
	ErrConvolvedOnly = errors.New("los: slab holds only slit-convolved quantities")
	// ErrMissingQuantity indicates a slab lacking a quantity the
	// composition needs.
	ErrMissingQuantity = errors.New("los: slab misses a required quantity")
	// ErrChainedSerial indicates a bare operand chain handed to the binary
	// serial operator; group pairwise or use SerialSlabs.
	ErrChainedSerial = errors.New("los: chained serial composition without explicit grouping")
)

// Out selects how a merged slab behaves outside an input's own range.
type Out int

const (
	// OutTransparent treats missing coverage as transparent, non-emitting
	// medium (radiance 0, transmittance 1).
	OutTransparent Out = iota
	// OutNaN propagates NaN where an input has no coverage.
	OutNaN
)

type config struct {
	mode    resample.Mode
	modeSet bool
	out     Out
}

// Option configures a composition.
type Option func(*config)

// WithMode selects the common-axis mode. MergeSlabs defaults to the union
// of all ranges, SerialSlabs to the intersection.
func WithMode(m resample.Mode) Option {
	return func(cfg *config) {
		cfg.mode = m
		cfg.modeSet = true
	}
}

// WithOut selects the out-of-coverage behavior for MergeSlabs.
func WithOut(o Out) Option {
	return func(cfg *config) {
		cfg.out = o
	}
}

func applyOptions(opts []Option, defaultMode resample.Mode) config {
	cfg := config{mode: defaultMode}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if !cfg.modeSet {
		cfg.mode = defaultMode
	}
	return cfg
}

// additive lists non-convolved quantities that combine linearly across
// parallel slabs.
var additive = map[string]bool{
	spectrum.RadianceNoSlit: true,
	spectrum.EmissCoeff:     true,
	spectrum.AbsCoeff:       true,
	spectrum.Absorbance:     true,
}

// multiplicative lists quantities that combine as products (equivalent to
// adding absorbances).
var multiplicative = map[string]bool{
	spectrum.TransmittanceNoSlit: true,
}

func mergeable(name string) bool { return additive[name] || multiplicative[name] }

// MergeSlabs combines slabs observed in parallel, assumed mutually
// transparent: additive quantities add, transmittances multiply. The
// operation is commutative and associative. Only quantities present in all
// slabs survive; slabs carrying only slit-convolved quantities are rejected.
func MergeSlabs(slabs []*spectrum.Spectrum, opts ...Option) (*spectrum.Spectrum, error) {
	cfg := applyOptions(opts, resample.ModeFull)

	if len(slabs) == 0 {
		return nil, ErrNoSlabs
	}
	if len(slabs) == 1 {
		return slabs[0].Clone(), nil
	}

	common, err := commonMergeable(slabs)
	if err != nil {
		return nil, err
	}

	axis, err := resample.CommonAxisAll(slabs, cfg.mode, slabs[0].AxisUnit())
	if err != nil {
		return nil, err
	}

	onAxis := make([]*spectrum.Spectrum, len(slabs))
	for i, s := range slabs {
		r, err := resample.Resample(s, axis, slabs[0].AxisUnit())
		if err != nil {
			return nil, err
		}
		onAxis[i] = r
	}

	specOpts := []spectrum.Option{
		spectrum.WithConditions(sharedConditions(slabs)),
		spectrum.WithName(joinNames(slabs, "//")),
	}
	for _, name := range common {
		u0, _ := onAxis[0].Unit(name)
		acc := neutral(name, len(axis))
		for _, s := range onAxis {
			values, _ := s.Get(name)
			us, _ := s.Unit(name)
			if !unit.Same(us, u0) {
				if err := unit.Convert(values, values, us, u0); err != nil {
					return nil, fmt.Errorf("quantity %q: %w", name, err)
				}
			}
			if cfg.out == OutTransparent {
				fillNaN(values, neutralValue(name))
			}
			if additive[name] {
				vecmath.AddBlockInPlace(acc, values)
			} else {
				vecmath.MulBlockInPlace(acc, values)
			}
		}
		specOpts = append(specOpts, spectrum.WithQuantity(name, acc, u0))
	}

	return spectrum.New(axis, slabs[0].AxisUnit(), specOpts...)
}

func commonMergeable(slabs []*spectrum.Spectrum) ([]string, error) {
	for _, s := range slabs {
		names := s.Quantities()
		if len(names) == 0 {
			return nil, fmt.Errorf("los: slab %q: %w", s.Name(), spectrum.ErrNoQuantity)
		}
		any := false
		for _, name := range names {
			if mergeable(name) {
				any = true
				break
			}
		}
		if !any {
			return nil, fmt.Errorf("%w: %q holds %v", ErrConvolvedOnly, s.Name(), names)
		}
	}

	var common []string
	for _, name := range slabs[0].Quantities() {
		if !mergeable(name) {
			continue
		}
		inAll := true
		for _, s := range slabs[1:] {
			if !s.Has(name) {
				inAll = false
				break
			}
		}
		if inAll {
			common = append(common, name)
		}
	}
	if len(common) == 0 {
		return nil, fmt.Errorf("%w: no mergeable quantity shared by all slabs", ErrMissingQuantity)
	}
	return common, nil
}

func neutral(name string, n int) []float64 {
	out := make([]float64, n)
	if v := neutralValue(name); v != 0 {
		for i := range out {
			out[i] = v
		}
	}
	return out
}

func neutralValue(name string) float64 {
	if multiplicative[name] {
		return 1
	}
	return 0
}

func fillNaN(values []float64, v float64) {
	for i := range values {
		if math.IsNaN(values[i]) {
			values[i] = v
		}
	}
}

// SerialSlabs composes slabs encountered in the given order along the line
// of sight, folding the binary transfer recurrence left to right. Every
// slab must carry radiance_noslit and transmittance_noslit.
func SerialSlabs(slabs []*spectrum.Spectrum, opts ...Option) (*spectrum.Spectrum, error) {
	cfg := applyOptions(opts, resample.ModeIntersect)

	if len(slabs) == 0 {
		return nil, ErrNoSlabs
	}

	out := slabs[0]
	if len(slabs) == 1 {
		return out.Clone(), nil
	}
	var err error
	for _, next := range slabs[1:] {
		out, err = serialPair(out, next, cfg)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Gt is the binary serial-composition operator: upstream first, then exactly
// one downstream slab. Passing several downstream operands in one call is
// the chained form s1 > s2 > s3 and fails with ErrChainedSerial: group
// pairwise, Gt(Gt(s1, s2), s3), or use SerialSlabs.
func Gt(upstream *spectrum.Spectrum, downstream ...*spectrum.Spectrum) (*spectrum.Spectrum, error) {
	switch len(downstream) {
	case 0:
		return nil, fmt.Errorf("%w: binary serial operator needs a downstream slab", ErrNoSlabs)
	case 1:
		return serialPair(upstream, downstream[0], config{mode: resample.ModeIntersect})
	}
	return nil, ErrChainedSerial
}

func serialPair(up, down *spectrum.Spectrum, cfg config) (*spectrum.Spectrum, error) {
	for _, s := range []*spectrum.Spectrum{up, down} {
		for _, name := range []string{spectrum.RadianceNoSlit, spectrum.TransmittanceNoSlit} {
			if !s.Has(name) {
				return nil, fmt.Errorf("%w: %q lacks %q", ErrMissingQuantity, s.Name(), name)
			}
		}
	}

	ru, rd, err := resample.Onto(up, down, resample.WithMode(cfg.mode))
	if err != nil {
		return nil, err
	}

	lUp, _ := ru.Get(spectrum.RadianceNoSlit)
	tUp, _ := ru.Get(spectrum.TransmittanceNoSlit)
	lDown, _ := rd.Get(spectrum.RadianceNoSlit)
	tDown, _ := rd.Get(spectrum.TransmittanceNoSlit)

	lUnit, _ := ru.Unit(spectrum.RadianceNoSlit)
	if du, _ := rd.Unit(spectrum.RadianceNoSlit); !unit.Same(du, lUnit) {
		if err := unit.Convert(lDown, lDown, du, lUnit); err != nil {
			return nil, fmt.Errorf("radiance: %w", err)
		}
	}

	// L = L_up*T_down + L_down, T = T_up*T_down.
	radiance := lUp
	vecmath.MulBlockInPlace(radiance, tDown)
	vecmath.AddBlockInPlace(radiance, lDown)

	transmittance := tUp
	vecmath.MulBlockInPlace(transmittance, tDown)

	tUnit, _ := ru.Unit(spectrum.TransmittanceNoSlit)
	specOpts := []spectrum.Option{
		spectrum.WithQuantity(spectrum.RadianceNoSlit, radiance, lUnit),
		spectrum.WithQuantity(spectrum.TransmittanceNoSlit, transmittance, tUnit),
		spectrum.WithConditions(serialConditions(up, down)),
		spectrum.WithName(serialName(up, down)),
	}

	// Absorbance is the optical depth: transmittance = exp(-absorbance).
	if up.Has(spectrum.Absorbance) && down.Has(spectrum.Absorbance) {
		absorbance := make([]float64, len(transmittance))
		for i, tr := range transmittance {
			absorbance[i] = -math.Log(tr)
		}
		specOpts = append(specOpts, spectrum.WithQuantity(spectrum.Absorbance, absorbance, ""))
	}

	return spectrum.New(ru.Axis(), ru.AxisUnit(), specOpts...)
}

// sharedConditions keeps the condition entries on which all slabs agree.
// Condition values are opaque and may hold uncomparable types (slices,
// maps), so agreement is checked with reflect.DeepEqual.
func sharedConditions(slabs []*spectrum.Spectrum) map[string]any {
	out := slabs[0].Conditions()
	for _, s := range slabs[1:] {
		for k, v := range out {
			if sv, ok := s.Condition(k); !ok || !reflect.DeepEqual(sv, v) {
				delete(out, k)
			}
		}
	}
	return out
}

// serialConditions keeps agreeing entries and sums path_length.
func serialConditions(up, down *spectrum.Spectrum) map[string]any {
	out := sharedConditions([]*spectrum.Spectrum{up, down})
	lu, okU := up.Condition("path_length")
	ld, okD := down.Condition("path_length")
	if okU && okD {
		fu, uOK := asFloat(lu)
		fd, dOK := asFloat(ld)
		if uOK && dOK {
			out["path_length"] = fu + fd
		}
	}
	return out
}

// asFloat coerces the numeric kinds a caller may plausibly store in a
// condition entry.
func asFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	}
	return 0, false
}

func serialName(up, down *spectrum.Spectrum) string {
	if up.Name() == "" || down.Name() == "" {
		return ""
	}
	return up.Name() + ">" + down.Name()
}

func joinNames(slabs []*spectrum.Spectrum, sep string) string {
	out := ""
	for i, s := range slabs {
		if s.Name() == "" {
			return ""
		}
		if i > 0 {
			out += sep
		}
		out += s.Name()
	}
	return out
}
