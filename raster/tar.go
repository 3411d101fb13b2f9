package raster

// TAR implements Transition Area Restriction: it remaps the normalised
// fractional offset (nx, ny) so that values near 0 and 1 snap to a flat
// "locked" plateau and a narrow band in the middle carries the full
// interpolation transition, measured in target-pixel widths.
type TAR struct {
	px, py float64 // normalised transition widths, in [0,1]
	lx, ly float64 // lock half-widths, (1-p)/2
}

// NewTAR derives per-axis TAR parameters from a transition width
// expressed in target pixels.
func NewTAR(width, origW, origH, targetW, targetH float64) *TAR {
	px := clip01(width * origW / targetW)
	py := clip01(width * origH / targetH)
	return &TAR{
		px: px, py: py,
		lx: (1 - px) / 2,
		ly: (1 - py) / 2,
	}
}

// Apply remaps (nx, ny) through the configured transition widths.
func (t *TAR) Apply(nx, ny float64) (float64, float64) {
	return tarAxis(nx, t.px, t.lx), tarAxis(ny, t.py, t.ly)
}

func tarAxis(n, p, l float64) float64 {
	if p == 0 {
		if n < 0.5 {
			return 0
		}
		return 1
	}
	return clip01((n - l) / p)
}

func clip01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
