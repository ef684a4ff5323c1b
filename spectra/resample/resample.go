package resample

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/cwbudde/algo-spectra/spectra/interp"
	"github.com/cwbudde/algo-spectra/spectra/spectrum"
	"github.com/cwbudde/algo-spectra/spectra/unit"
)

var (
	// ErrBadTarget indicates an empty or non-monotonic target axis.
	ErrBadTarget = errors.New("resample: target axis must be non-empty and strictly monotonic")
	// ErrOutOfRange indicates a target sample outside the source range under
	// PolicyError.
	ErrOutOfRange = errors.New("resample: target sample outside source range")
	// ErrEmptyRange indicates an empty overlap between two spectral axes.
	ErrEmptyRange = errors.New("resample: empty axis intersection")
)

// Policy selects the treatment of target samples outside the source range.
type Policy int

const (
	// PolicyNaN writes NaN outside the source range.
	PolicyNaN Policy = iota
	// PolicyClamp repeats the edge value outside the source range.
	PolicyClamp
	// PolicyError fails with ErrOutOfRange.
	PolicyError
)

// Method selects the interpolation algorithm.
type Method int

const (
	// MethodLinear is 2-point linear interpolation (baseline).
	MethodLinear Method = iota
	// MethodCubic is 4-point cubic Hermite interpolation.
	MethodCubic
)

// Mode selects the target-range rule when reconciling two spectra.
type Mode int

const (
	// ModeIntersect restricts the common axis to the overlap of both ranges.
	ModeIntersect Mode = iota
	// ModeFull spans the union of both ranges.
	ModeFull
)

type config struct {
	policy  Policy
	method  Method
	mode    Mode
	inplace bool
	axisTol float64
}

// Option configures resampling.
type Option func(*config)

// WithPolicy selects the out-of-range policy.
func WithPolicy(p Policy) Option {
	return func(cfg *config) {
		cfg.policy = p
	}
}

// WithMethod selects the interpolation method.
func WithMethod(m Method) Option {
	return func(cfg *config) {
		cfg.method = m
	}
}

// WithMode selects the common-axis mode for two-operand reconciliation.
func WithMode(m Mode) Option {
	return func(cfg *config) {
		cfg.mode = m
	}
}

// WithInplace mutates the input spectrum instead of returning a new one.
func WithInplace() Option {
	return func(cfg *config) {
		cfg.inplace = true
	}
}

// WithAxisTolerance sets the relative tolerance under which two axes count
// as identical, skipping interpolation entirely.
func WithAxisTolerance(eps float64) Option {
	return func(cfg *config) {
		if eps >= 0 {
			cfg.axisTol = eps
		}
	}
}

func defaultConfig() config {
	return config{axisTol: 1e-12}
}

func applyOptions(opts []Option) config {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// Resample interpolates every quantity of s onto target, expressed in
// targetUnit. The result's axis is target in the caller's order; storage is
// freshly allocated. With WithInplace the payload of s is replaced after the
// full result has been computed.
func Resample(s *spectrum.Spectrum, target []float64, targetUnit string, opts ...Option) (*spectrum.Spectrum, error) {
	cfg := applyOptions(opts)

	if len(target) == 0 || !strictlyMonotonic(target) {
		return nil, ErrBadTarget
	}

	src := s.Axis()
	conv := make([]float64, len(src))
	if err := unit.ConvertAxis(conv, src, s.AxisUnit(), targetUnit); err != nil {
		return nil, err
	}

	// Canonical ascending order for the requested unit kind.
	srcReversed := len(conv) > 1 && conv[1] < conv[0]
	if srcReversed {
		reverse(conv)
	}

	tgt := target
	tgtReversed := len(target) > 1 && target[1] < target[0]
	if tgtReversed {
		tgt = append([]float64(nil), target...)
		reverse(tgt)
	}

	specOpts := []spectrum.Option{
		spectrum.WithConditions(s.Conditions()),
		spectrum.WithName(s.Name()),
	}
	for _, name := range s.Quantities() {
		values, err := s.Get(name)
		if err != nil {
			return nil, err
		}
		if srcReversed {
			reverse(values)
		}
		out, err := interpolateOnto(conv, values, tgt, cfg)
		if err != nil {
			return nil, fmt.Errorf("quantity %q: %w", name, err)
		}
		if tgtReversed {
			reverse(out)
		}
		u, _ := s.Unit(name)
		specOpts = append(specOpts, spectrum.WithQuantity(name, out, u))
	}

	result, err := spectrum.New(target, targetUnit, specOpts...)
	if err != nil {
		return nil, err
	}
	if cfg.inplace {
		s.Assign(result)
		return s, nil
	}
	return result, nil
}

// interpolateOnto evaluates (x, y) at every q sample. x must be strictly
// ascending.
func interpolateOnto(x, y, q []float64, cfg config) ([]float64, error) {
	n := len(x)
	out := make([]float64, len(q))

	for i, v := range q {
		if v < x[0] || v > x[n-1] {
			switch cfg.policy {
			case PolicyClamp:
				if v < x[0] {
					out[i] = y[0]
				} else {
					out[i] = y[n-1]
				}
			case PolicyError:
				return nil, fmt.Errorf("%w: %v outside [%v, %v]", ErrOutOfRange, v, x[0], x[n-1])
			default:
				out[i] = math.NaN()
			}
			continue
		}

		j := sort.SearchFloat64s(x, v)
		if j < n && x[j] == v {
			out[i] = y[j]
			continue
		}

		x0, x1 := x[j-1], x[j]
		t := (v - x0) / (x1 - x0)
		switch cfg.method {
		case MethodCubic:
			ym1 := y[maxInt(j-2, 0)]
			y2 := y[minInt(j+1, n-1)]
			out[i] = interp.Hermite4(t, ym1, y[j-1], y[j], y2)
		default:
			out[i] = interp.Linear2(y[j-1], y[j], t)
		}
	}

	return out, nil
}

// CommonAxis builds the shared grid for two spectra in targetUnit, ascending.
// ModeIntersect keeps a's samples restricted to the overlap of both ranges;
// ModeFull returns the sorted union of both sample sets.
func CommonAxis(a, b *spectrum.Spectrum, mode Mode, targetUnit string) ([]float64, error) {
	return CommonAxisAll([]*spectrum.Spectrum{a, b}, mode, targetUnit)
}

// CommonAxisAll extends [CommonAxis] to any number of spectra: the overlap
// (or union) of all ranges, with ModeIntersect keeping the first spectrum's
// samples.
func CommonAxisAll(spectra []*spectrum.Spectrum, mode Mode, targetUnit string) ([]float64, error) {
	if len(spectra) == 0 {
		return nil, ErrBadTarget
	}

	axes := make([][]float64, len(spectra))
	for i, s := range spectra {
		conv, err := convertedAscending(s, targetUnit)
		if err != nil {
			return nil, err
		}
		axes[i] = conv
	}

	if mode == ModeFull {
		out := axes[0]
		for _, ax := range axes[1:] {
			out = mergeUnique(out, ax)
		}
		return append([]float64(nil), out...), nil
	}

	lo, hi := axes[0][0], axes[0][len(axes[0])-1]
	for _, ax := range axes[1:] {
		lo = math.Max(lo, ax[0])
		hi = math.Min(hi, ax[len(ax)-1])
	}
	if lo > hi {
		return nil, fmt.Errorf("%w: overlap [%v, %v] is empty", ErrEmptyRange, lo, hi)
	}

	first := axes[0]
	i0 := sort.SearchFloat64s(first, lo)
	i1 := sort.Search(len(first), func(i int) bool { return first[i] > hi })
	if i0 >= i1 {
		return nil, fmt.Errorf("%w: no samples of the first operand fall inside [%v, %v]",
			ErrEmptyRange, lo, hi)
	}
	return append([]float64(nil), first[i0:i1]...), nil
}

// Onto returns both spectra on a common axis in a's axis unit. When the axes
// already match within the configured tolerance the originals are returned
// unchanged; callers treat the results as read-only.
func Onto(a, b *spectrum.Spectrum, opts ...Option) (*spectrum.Spectrum, *spectrum.Spectrum, error) {
	cfg := applyOptions(opts)

	if unit.Same(a.AxisUnit(), b.AxisUnit()) && axesEqual(a.Axis(), b.Axis(), cfg.axisTol) {
		return a, b, nil
	}

	axis, err := CommonAxis(a, b, cfg.mode, a.AxisUnit())
	if err != nil {
		return nil, nil, err
	}

	ra, err := Resample(a, axis, a.AxisUnit(), opts...)
	if err != nil {
		return nil, nil, err
	}
	rb, err := Resample(b, axis, a.AxisUnit(), opts...)
	if err != nil {
		return nil, nil, err
	}
	return ra, rb, nil
}

func convertedAscending(s *spectrum.Spectrum, targetUnit string) ([]float64, error) {
	axis := s.Axis()
	conv := make([]float64, len(axis))
	if err := unit.ConvertAxis(conv, axis, s.AxisUnit(), targetUnit); err != nil {
		return nil, err
	}
	if len(conv) > 1 && conv[1] < conv[0] {
		reverse(conv)
	}
	return conv, nil
}

func axesEqual(a, b []float64, tol float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		scale := math.Max(math.Abs(a[i]), 1)
		if math.Abs(a[i]-b[i]) > tol*scale {
			return false
		}
	}
	return true
}

// mergeUnique merges two ascending slices, dropping duplicates and
// near-coincident samples.
func mergeUnique(a, b []float64) []float64 {
	out := make([]float64, 0, len(a)+len(b))
	i, j := 0, 0
	push := func(v float64) {
		if n := len(out); n > 0 {
			scale := math.Max(math.Abs(v), 1)
			if v-out[n-1] <= 1e-9*scale {
				return
			}
		}
		out = append(out, v)
	}
	for i < len(a) && j < len(b) {
		if a[i] <= b[j] {
			push(a[i])
			i++
		} else {
			push(b[j])
			j++
		}
	}
	for ; i < len(a); i++ {
		push(a[i])
	}
	for ; j < len(b); j++ {
		push(b[j])
	}
	return out
}

func reverse(x []float64) {
	for i, j := 0, len(x)-1; i < j; i, j = i+1, j-1 {
		x[i], x[j] = x[j], x[i]
	}
}

func strictlyMonotonic(x []float64) bool {
	if len(x) < 2 {
		return true
	}
	ascending := x[1] > x[0]
	for i := 1; i < len(x); i++ {
		if ascending && x[i] <= x[i-1] {
			return false
		}
		if !ascending && x[i] >= x[i-1] {
			return false
		}
	}
	return true
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
