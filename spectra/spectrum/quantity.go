package spectrum

// Standard quantity names produced by radiative-transfer calculations.
// The *_noslit variants are computed directly from the radiative-transfer
// solution; the bare names denote their slit-convolved counterparts.
const (
	Radiance            = "radiance"
	RadianceNoSlit      = "radiance_noslit"
	Transmittance       = "transmittance"
	TransmittanceNoSlit = "transmittance_noslit"
	Emissivity          = "emissivity"
	Absorbance          = "absorbance"
	AbsCoeff            = "abscoeff"
	EmissCoeff          = "emisscoeff"
)

// convolved lists quantity names that only exist after an instrument slit
// function has been applied.
var convolved = map[string]bool{
	Radiance:      true,
	Transmittance: true,
	Emissivity:    true,
}

// Convolved reports whether the named quantity is slit-convolved.
// Convolved quantities cannot take part in linear slab merging.
func Convolved(name string) bool { return convolved[name] }

// Take extracts a single-quantity copy of s, keeping axis, conditions and
// name. It is the way to disambiguate a multi-quantity spectrum before
// algebra: Take(s, RadianceNoSlit) yields an operand the single-quantity
// operations accept without an explicit quantity option.
func Take(s *Spectrum, name string) (*Spectrum, error) {
	values, err := s.Get(name)
	if err != nil {
		return nil, err
	}
	u, err := s.Unit(name)
	if err != nil {
		return nil, err
	}
	return New(s.axis, s.axisUnit,
		WithQuantity(name, values, u),
		WithConditions(s.conditions),
		WithName(s.name),
	)
}
