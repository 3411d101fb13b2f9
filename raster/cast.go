package raster

// Cast1D maps a target pixel index (as a float, 0..targetLen-1) to a
// fractional source coordinate.
type Cast1D func(n float64) float64

// ProperCast1D returns a Cast1D that aligns source and target pixel
// centres: cast(n) = (n+0.5)/scale - 0.5, scale = targetLen/origLen.
func ProperCast1D(origLen, targetLen int) Cast1D {
	scale := float64(targetLen) / float64(origLen)
	return func(n float64) float64 {
		return (n+0.5)/scale - 0.5
	}
}

// FastCast1D returns a Cast1D that maps source and target edges directly
// onto each other, cropping a half-pixel border on each side.
func FastCast1D(origLen, targetLen int) Cast1D {
	if targetLen <= 1 {
		return func(float64) float64 { return 0 }
	}
	ratio := float64(origLen-1) / float64(targetLen-1)
	return func(n float64) float64 {
		return n * ratio
	}
}

// BufferedCast1D precomputes cast(0..targetLen-1) once and returns a
// lookup over the cached values, avoiding repeated float evaluation in an
// inner loop that calls the same cast many times.
func BufferedCast1D(cast Cast1D, targetLen int) Cast1D {
	buf := make([]float64, targetLen)
	for i := range buf {
		buf[i] = cast(float64(i))
	}
	return func(n float64) float64 {
		i := int(n)
		if i < 0 {
			i = 0
		} else if i >= len(buf) {
			i = len(buf) - 1
		}
		return buf[i]
	}
}

// Cast2D maps a target pixel (xt, yt) to a fractional source coordinate
// (xs, ys).
type Cast2D func(xt, yt int) (xs, ys float64)

// DefaultCoordinateCorrection is the default centre-of-pixel offset
// applied on each axis by Cast2DFromAffine.
const DefaultCoordinateCorrection = 0.5

// Cast2DFromAffine builds a Cast2D out of the inverse (target->source)
// affine matrix, placing the logical sample point at pixel centres:
// p' = M*(p+c) - c.
func Cast2DFromAffine(inverse Affine, correctionX, correctionY float64) Cast2D {
	return func(xt, yt int) (float64, float64) {
		xs, ys := inverse.Apply(float64(xt)+correctionX, float64(yt)+correctionY)
		return xs - correctionX, ys - correctionY
	}
}

// TransitionFunc computes the coverage contribution g(d) for a normalised
// distance d from the inner (fully-covered) edge of the mapped source
// rectangle on one axis.
type TransitionFunc func(d float64) float64

// TransitionLinear is g(d) = 1-d.
func TransitionLinear(d float64) float64 { return 1 - d }

// TransitionStep is a hard cutoff at the midpoint of the transition band.
func TransitionStep(d float64) float64 {
	if d < 0.5 {
		return 1
	}
	return 0
}

// TransitionPLin reuses the p-lin S-curve as a transition shape:
// 1 - d^2/((1-d)^2 + d^2).
func TransitionPLin(d float64) float64 {
	return 1 - plinWeight(d)
}

// CoverageFunc returns a function mapping a target pixel to its coverage
// alpha in [0,1]: 1 deep inside the mapped source rectangle, 0 outside a
// soft border of half-pixel thickness on each side (by default), and a
// transition shaped by fn in between. The two axes combine
// multiplicatively.
func CoverageFunc(cast Cast2D, origW, origH int, xRange, yRange float64, fn TransitionFunc) func(xt, yt int) float64 {
	w, h := float64(origW), float64(origH)
	return func(xt, yt int) float64 {
		xs, ys := cast(xt, yt)
		ax := axisCoverage(xs, w, xRange, fn)
		if ax == 0 {
			return 0
		}
		ay := axisCoverage(ys, h, yRange, fn)
		return ax * ay
	}
}

func axisCoverage(s, dim, rng float64, fn TransitionFunc) float64 {
	outerLo, outerHi := -rng, dim-1+rng
	innerLo, innerHi := rng, dim-1-rng
	switch {
	case s < outerLo || s > outerHi:
		return 0
	case s >= innerLo && s <= innerHi:
		return 1
	case s < innerLo:
		d := (innerLo - s) / (innerLo - outerLo)
		return fn(d)
	default: // s > innerHi
		d := (s - innerHi) / (outerHi - innerHi)
		return fn(d)
	}
}
