// Package spectrum defines the central value type of the engine: a spectral
// axis plus one or more co-indexed named physical quantities, each tagged
// with a unit, and opaque computation conditions.
//
// A Spectrum hands out copies of its numeric storage, and every algebraic
// operation built on top of it allocates fresh storage for its result, so a
// returned value never changes retroactively when an operand is mutated.
// In-place operation modes go through [Spectrum.Assign], which replaces the
// payload of an existing instance only after a fully validated replacement
// has been computed.
//
// Operations that act on a single quantity use [Spectrum.SingleQuantity]:
// with more than one quantity present and none named explicitly the call
// fails with [ErrAmbiguousQuantity] rather than guessing.
package spectrum
