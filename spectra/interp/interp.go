// Package interp provides the interpolation primitives used by the
// resampling subsystem.
//
//   - [Linear2]:  2-point linear interpolation (baseline)
//   - [Hermite4]: 4-point cubic Hermite interpolation (higher-order option)
package interp

// Linear2 interpolates linearly between y0 and y1 at frac in [0, 1].
func Linear2(y0, y1, frac float64) float64 {
	return y0 + frac*(y1-y0)
}

// Hermite4 computes cubic 4-point interpolation.
// It interpolates from y0 to y1 using neighbor points ym1 and y2.
func Hermite4(t, ym1, y0, y1, y2 float64) float64 {
	c0 := y0
	c1 := 0.5 * (y1 - ym1)
	c2 := ym1 - 2.5*y0 + 2*y1 - 0.5*y2
	c3 := 0.5*(y2-ym1) + 1.5*(y0-y1)
	return ((c3*t+c2)*t+c1)*t + c0
}
