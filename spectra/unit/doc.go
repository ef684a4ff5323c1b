// Package unit resolves, converts and simplifies the physical units carried
// by spectral axes and quantities.
//
// Units are parsed from compact strings as they appear in spectroscopy
// ("nm", "cm-1", "mW/cm2/sr/nm", "mW / (cm2 nm sr)") into a symbolic factor
// form with a derived physical dimension and SI scale. Two units convert into
// each other iff their dimensions match; the spectral axis additionally
// supports the reciprocal wavelength/wavenumber relation via [ConvertAxis],
// which is a separate code path from linear scaling.
//
// The symbol registry is a process-wide table, read-only after package
// initialization, so all functions are safe for concurrent use.
package unit
