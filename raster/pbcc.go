package raster

import "math"

// CorrectPBCC applies Proximity-Based Coefficient Correction: each
// corner's weight is multiplied by a proximity factor biasing the result
// toward the corner closest to the fractional position (nx, ny), then the
// four weights are renormalised to sum back to 1.
//
// rho(u,v) = 1 - sqrt((u^2+v^2)/2), with rho(0,0)=1 for the nearest
// corner. Since rho is in [0,1] and the input weights are non-negative and
// sum to 1, the corrected weights are non-negative and sum to exactly 1.
func CorrectPBCC(w Weights2, nx, ny float64) Weights2 {
	nx0, nx1 := nx, 1-nx
	ny0, ny1 := ny, 1-ny

	c00 := w.W00 * pbccProximity(nx0, ny0)
	c01 := w.W01 * pbccProximity(nx0, ny1)
	c10 := w.W10 * pbccProximity(nx1, ny0)
	c11 := w.W11 * pbccProximity(nx1, ny1)

	sum := c00 + c01 + c10 + c11
	if sum == 0 {
		return w
	}
	inv := 1 / sum
	return Weights2{
		W00: c00 * inv,
		W01: c01 * inv,
		W10: c10 * inv,
		W11: c11 * inv,
	}
}

func pbccProximity(u, v float64) float64 {
	return 1 - math.Sqrt((u*u+v*v)/2)
}
