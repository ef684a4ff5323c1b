// Package resample reconciles spectra sampled on different axes or axis
// units before any two-operand operation can proceed.
//
// [Resample] interpolates every quantity of a spectrum onto a target axis in
// a target unit. The source axis is first converted into the target unit —
// the reciprocal wavelength/wavenumber path reverses monotonic direction, so
// the converted axis is re-sorted to canonical ascending order before
// interpolating. Out-of-range target samples follow a configurable policy:
// NaN (default), clamping to the edge value, or failing with [ErrOutOfRange].
//
// [CommonAxis] builds the shared grid used by addition, comparison and
// line-of-sight composition: either the first operand's samples restricted to
// the overlap ([ModeIntersect]) or the sorted union of both sample sets
// ([ModeFull]). An empty overlap fails with [ErrEmptyRange].
package resample
