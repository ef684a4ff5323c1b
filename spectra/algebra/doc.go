// Package algebra implements unit-checked arithmetic on spectra.
//
// Scalar operations (crop, offset, add-constant, multiply, baseline
// subtraction) act on one quantity, selected explicitly with [WithQuantity]
// or inferred when the spectrum holds exactly one — a multi-quantity
// spectrum without an explicit selection fails rather than guessing.
//
// Spectrum-spectrum addition and subtraction reconcile their operands onto a
// common axis and unit first. Multiplying or dividing two spectra is not a
// physically meaningful radiative operation and always fails with
// [ErrUnsupportedOperand].
//
// Every operation computes a complete, validated result before touching its
// operands; [WithInplace] then commits that result into the receiver, so a
// failing call never leaves an operand half-mutated.
package algebra
