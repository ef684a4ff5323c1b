package unit

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/cwbudde/algo-vecmath"
)

var (
	// ErrUnknown indicates an unrecognized unit symbol.
	ErrUnknown = errors.New("unit: unknown unit symbol")
	// ErrSyntax indicates a malformed unit expression.
	ErrSyntax = errors.New("unit: malformed unit expression")
	// ErrIncompatible indicates a conversion between dimensionally
	// incompatible units.
	ErrIncompatible = errors.New("unit: incompatible units")
	// ErrNotSpectral indicates a unit that is neither wavelength-like nor
	// wavenumber-like where a spectral axis unit is required.
	ErrNotSpectral = errors.New("unit: not a spectral axis unit")
)

// Dim is a physical dimension vector (exponents over SI base quantities
// plus solid angle and detector counts).
type Dim struct {
	Length     int
	Mass       int
	Time       int
	SolidAngle int
	Count      int
}

type base struct {
	dim   Dim
	scale float64
}

var dimPower = Dim{Length: 2, Mass: 1, Time: -3}

// symbols is the process-wide registry of recognized unit symbols.
// It is read-only after package initialization.
var symbols = map[string]base{
	"m":  {Dim{Length: 1}, 1},
	"km": {Dim{Length: 1}, 1e3},
	"cm": {Dim{Length: 1}, 1e-2},
	"mm": {Dim{Length: 1}, 1e-3},
	"um": {Dim{Length: 1}, 1e-6},
	"nm": {Dim{Length: 1}, 1e-9},

	"W":  {dimPower, 1},
	"kW": {dimPower, 1e3},
	"mW": {dimPower, 1e-3},
	"uW": {dimPower, 1e-6},

	"s":  {Dim{Time: 1}, 1},
	"ms": {Dim{Time: 1}, 1e-3},
	"us": {Dim{Time: 1}, 1e-6},

	"sr":    {Dim{SolidAngle: 1}, 1},
	"count": {Dim{Count: 1}, 1},
}

// Unit is a parsed physical unit in symbolic factor form.
// The zero value is the dimensionless unit.
type Unit struct {
	factors map[string]int
}

// Parse resolves a compact unit expression like "nm", "cm-1",
// "mW/cm2/sr/nm" or "mW / (cm2 nm sr)". The empty string is the
// dimensionless unit. Factors may be separated by spaces, '*' or '/',
// exponents follow the symbol ("cm2", "cm-1", "cm^-1") and a '/' may
// apply to a parenthesized group.
func Parse(s string) (Unit, error) {
	u := Unit{factors: make(map[string]int)}
	if err := parseInto(s, 1, u.factors); err != nil {
		return Unit{}, err
	}
	return u, nil
}

func isLetter(c byte) bool { return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' }
func isDigit(c byte) bool  { return c >= '0' && c <= '9' }

func parseInto(s string, sign int, f map[string]int) error {
	next := sign

	for i := 0; i < len(s); {
		c := s[i]
		switch {
		case c == ' ' || c == '*':
			i++
		case c == '/':
			next = -sign
			i++
		case c == '(':
			depth := 1
			j := i + 1
			for ; j < len(s) && depth > 0; j++ {
				switch s[j] {
				case '(':
					depth++
				case ')':
					depth--
				}
			}
			if depth != 0 {
				return fmt.Errorf("%w: unbalanced parentheses in %q", ErrSyntax, s)
			}
			if err := parseInto(s[i+1:j-1], next, f); err != nil {
				return err
			}
			i = j
			next = sign
		case c == ')':
			return fmt.Errorf("%w: unbalanced parentheses in %q", ErrSyntax, s)
		case c == '1' && (i+1 == len(s) || s[i+1] == '/' || s[i+1] == ' ' || s[i+1] == '*'):
			// bare "1" numerator placeholder, e.g. "1 / cm"
			i++
			next = sign
		default:
			j := i
			for j < len(s) && isLetter(s[j]) {
				j++
			}
			if j == i {
				return fmt.Errorf("%w: unexpected %q in %q", ErrSyntax, string(c), s)
			}
			sym := s[i:j]
			if _, ok := symbols[sym]; !ok {
				return fmt.Errorf("%w: %q", ErrUnknown, sym)
			}

			exp := 1
			k := j
			if k < len(s) && s[k] == '^' {
				k++
			}
			if k < len(s) && (s[k] == '-' || isDigit(s[k])) {
				neg := s[k] == '-'
				if neg {
					k++
				}
				d := k
				for k < len(s) && isDigit(s[k]) {
					k++
				}
				if d == k {
					return fmt.Errorf("%w: dangling exponent sign in %q", ErrSyntax, s)
				}
				exp, _ = strconv.Atoi(s[d:k])
				if neg {
					exp = -exp
				}
			}

			f[sym] += next * exp
			if f[sym] == 0 {
				delete(f, sym)
			}
			i = k
			next = sign
		}
	}

	return nil
}

// Dim returns the physical dimension of u.
func (u Unit) Dim() Dim {
	var d Dim
	for sym, e := range u.factors {
		b := symbols[sym]
		d.Length += b.dim.Length * e
		d.Mass += b.dim.Mass * e
		d.Time += b.dim.Time * e
		d.SolidAngle += b.dim.SolidAngle * e
		d.Count += b.dim.Count * e
	}
	return d
}

// Scale returns the multiplicative factor from u to SI base units.
func (u Unit) Scale() float64 {
	scale := 1.0
	for sym, e := range u.factors {
		scale *= math.Pow(symbols[sym].scale, float64(e))
	}
	return scale
}

// Dimensionless reports whether u carries no symbolic factors.
func (u Unit) Dimensionless() bool { return len(u.factors) == 0 }

// Compatible reports whether u converts into v by a pure scale factor.
func (u Unit) Compatible(v Unit) bool { return u.Dim() == v.Dim() }

// Mul returns the symbolic product of u and v, with canceled factors removed.
func (u Unit) Mul(v Unit) Unit { return u.combine(v, 1) }

// Div returns the symbolic quotient u/v, with canceled factors removed.
func (u Unit) Div(v Unit) Unit { return u.combine(v, -1) }

func (u Unit) combine(v Unit, sign int) Unit {
	out := Unit{factors: make(map[string]int, len(u.factors)+len(v.factors))}
	for sym, e := range u.factors {
		out.factors[sym] = e
	}
	for sym, e := range v.factors {
		out.factors[sym] += sign * e
		if out.factors[sym] == 0 {
			delete(out.factors, sym)
		}
	}
	return out
}

// String renders the canonical simplified form: numerator factors sorted and
// space-separated, denominator factors parenthesized when there is more than
// one, e.g. "mW / (cm2 nm sr)". The dimensionless unit renders as "".
func (u Unit) String() string {
	var num, den []string
	for _, sym := range sortedSymbols(u.factors) {
		e := u.factors[sym]
		switch {
		case e > 0:
			num = append(num, factorString(sym, e))
		case e < 0:
			den = append(den, factorString(sym, -e))
		}
	}

	switch {
	case len(num) == 0 && len(den) == 0:
		return ""
	case len(den) == 0:
		return joinFactors(num)
	}

	head := "1"
	if len(num) > 0 {
		head = joinFactors(num)
	}
	if len(den) == 1 {
		return head + " / " + den[0]
	}
	return head + " / (" + joinFactors(den) + ")"
}

func sortedSymbols(f map[string]int) []string {
	out := make([]string, 0, len(f))
	for sym := range f {
		out = append(out, sym)
	}
	sort.Strings(out)
	return out
}

func factorString(sym string, e int) string {
	if e == 1 {
		return sym
	}
	return sym + strconv.Itoa(e)
}

func joinFactors(parts []string) string {
	out := parts[0]
	for _, p := range parts[1:] {
		out += " " + p
	}
	return out
}

// Simplify parses s and returns its canonical simplified string form.
func Simplify(s string) (string, error) {
	u, err := Parse(s)
	if err != nil {
		return "", err
	}
	return u.String(), nil
}

// Same reports whether two unit expressions denote the identical unit
// (same symbolic factors, not merely the same dimension).
func Same(a, b string) bool {
	ua, err := Parse(a)
	if err != nil {
		return false
	}
	ub, err := Parse(b)
	if err != nil {
		return false
	}
	if len(ua.factors) != len(ub.factors) {
		return false
	}
	for sym, e := range ua.factors {
		if ub.factors[sym] != e {
			return false
		}
	}
	return true
}

// Factor returns the scale factor converting values in from into to.
func Factor(from, to string) (float64, error) {
	fu, err := Parse(from)
	if err != nil {
		return 0, err
	}
	tu, err := Parse(to)
	if err != nil {
		return 0, err
	}
	if !fu.Compatible(tu) {
		return 0, fmt.Errorf("%w: %q vs %q", ErrIncompatible, from, to)
	}
	return fu.Scale() / tu.Scale(), nil
}

// ConvertValue converts a single value from one unit into another.
func ConvertValue(v float64, from, to string) (float64, error) {
	k, err := Factor(from, to)
	if err != nil {
		return 0, err
	}
	return v * k, nil
}

// Convert converts src values from one unit into another, writing into dst.
// dst and src must have equal length and may alias.
func Convert(dst, src []float64, from, to string) error {
	if len(dst) != len(src) {
		return fmt.Errorf("unit: convert length mismatch: %d != %d", len(dst), len(src))
	}
	k, err := Factor(from, to)
	if err != nil {
		return err
	}
	if len(src) == 0 {
		return nil
	}
	vecmath.ScaleBlock(dst, src, k)
	return nil
}
