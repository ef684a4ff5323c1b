package unit

import "fmt"

// Kind classifies spectral axis units.
type Kind int

const (
	// KindNone marks a unit that cannot tag a spectral axis.
	KindNone Kind = iota
	// KindWavelength marks wavelength-like units (nm, um, ...).
	KindWavelength
	// KindWavenumber marks wavenumber-like units (cm-1, ...).
	KindWavenumber
)

// String returns a short label for the axis kind.
func (k Kind) String() string {
	switch k {
	case KindWavelength:
		return "wavelength"
	case KindWavenumber:
		return "wavenumber"
	default:
		return "none"
	}
}

// KindOf classifies a spectral axis unit expression.
func KindOf(s string) (Kind, error) {
	u, err := Parse(s)
	if err != nil {
		return KindNone, err
	}
	switch u.Dim() {
	case (Dim{Length: 1}):
		return KindWavelength, nil
	case (Dim{Length: -1}):
		return KindWavenumber, nil
	}
	return KindNone, fmt.Errorf("%w: %q", ErrNotSpectral, s)
}

// ConvertAxisValue converts a single spectral coordinate between axis units.
// Same-kind conversion is a pure scale; wavelength and wavenumber convert
// through the reciprocal relation.
func ConvertAxisValue(v float64, from, to string) (float64, error) {
	fk, err := KindOf(from)
	if err != nil {
		return 0, err
	}
	tk, err := KindOf(to)
	if err != nil {
		return 0, err
	}

	if fk == tk {
		return ConvertValue(v, from, to)
	}

	fu, _ := Parse(from)
	tu, _ := Parse(to)
	// v in SI, reciprocate, back to target scale.
	return 1 / (v * fu.Scale()) / tu.Scale(), nil
}

// ConvertAxis converts spectral coordinates between axis units, writing into
// dst. The reciprocal wavelength/wavenumber path reverses the monotonic
// direction of the values; re-sorting is the caller's concern.
// dst and src must have equal length and may alias.
func ConvertAxis(dst, src []float64, from, to string) error {
	if len(dst) != len(src) {
		return fmt.Errorf("unit: axis convert length mismatch: %d != %d", len(dst), len(src))
	}

	fk, err := KindOf(from)
	if err != nil {
		return err
	}
	tk, err := KindOf(to)
	if err != nil {
		return err
	}

	if fk == tk {
		return Convert(dst, src, from, to)
	}

	fu, _ := Parse(from)
	tu, _ := Parse(to)
	k := fu.Scale() * tu.Scale()
	for i, v := range src {
		dst[i] = 1 / (v * k)
	}
	return nil
}
