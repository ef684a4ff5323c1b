// Package los combines spectra of absorbing/emitting slabs along a line of
// sight. Two operators encode two different physical situations and are
// deliberately not interchangeable.
//
// [MergeSlabs] is the parallel combination: slabs observed side by side,
// assumed mutually transparent. Additive non-convolved quantities (radiance,
// emission and absorption coefficients, absorbance) add linearly and
// transmittances multiply, so the operation is commutative and associative.
// Slit-convolved quantities cannot be merged linearly and are rejected.
//
// [SerialSlabs] is the serial combination: radiative transfer through slabs
// encountered in the given order. Each downstream slab attenuates the
// incoming radiance by its transmittance and adds its own emission:
//
//	L = L_up·T_down + L_down
//	T = T_up·T_down
//
// The order of the slabs matters. The binary operator [Gt] composes exactly
// two slabs; handing it a chain of operands in one call fails with
// [ErrChainedSerial] — group pairwise (Gt(Gt(s1, s2), s3)) or use the n-ary
// [SerialSlabs], which are equal for any explicit grouping.
package los
