package raster

import (
	"errors"
	"runtime"
	"sync"
)

// KernelOptions bundles the algorithm choice with the optional PBCC and
// TAR corrections, mirroring the single init_functions(algorithm, pbcc,
// transition_reduction) entry point a host configures.
type KernelOptions struct {
	Algorithm Algorithm
	PBCC      bool
	// TransitionWidth is the TAR transition band width in target
	// pixels. A value <= 0 disables TAR.
	TransitionWidth float64
}

// Interp holds everything needed to compute a 2x2 weight matrix for a
// target pixel: the target->source cast, the 1D kernel, and the optional
// PBCC/TAR corrections.
type Interp struct {
	Cast   Cast2D
	Kernel WeightFunc1D
	PBCC   bool
	TAR    *TAR

	origW, origH     int
	targetW, targetH int
}

// InitResize configures a plain (non-rotated) resize using the proper,
// centre-aligned cast on each axis, unless castX/castY override it.
func (ip *Interp) InitResize(origW, origH, targetW, targetH int, castX, castY Cast1D) {
	if castX == nil {
		castX = ProperCast1D(origW, targetW)
	}
	if castY == nil {
		castY = ProperCast1D(origH, targetH)
	}
	ip.Cast = func(xt, yt int) (float64, float64) {
		return castX(float64(xt)), castY(float64(yt))
	}
	ip.origW, ip.origH = origW, origH
	ip.targetW, ip.targetH = targetW, targetH
}

// InitTransformation configures a rotated/affine resize from an arbitrary
// 2D cast, typically built with Cast2DFromAffine over a
// TransformationSetup's inverse matrix.
func (ip *Interp) InitTransformation(origW, origH, targetW, targetH int, cast Cast2D) {
	ip.Cast = cast
	ip.origW, ip.origH = origW, origH
	ip.targetW, ip.targetH = targetW, targetH
}

// InitFunctions configures the kernel, PBCC and TAR from the enumerated
// options. InitResize/InitTransformation must be called first, since TAR
// derives its widths from the configured dimensions.
func (ip *Interp) InitFunctions(opts KernelOptions) {
	ip.Kernel = KernelFor(opts.Algorithm)
	ip.PBCC = opts.PBCC
	if opts.TransitionWidth > 0 {
		ip.TAR = NewTAR(opts.TransitionWidth, float64(ip.origW), float64(ip.origH), float64(ip.targetW), float64(ip.targetH))
	} else {
		ip.TAR = nil
	}
}

// weightsAt runs steps 1-5 of the per-pixel algorithm: map, split, TAR,
// kernel, PBCC.
func (ip *Interp) weightsAt(xt, yt int) (baseX, baseY int, w Weights2) {
	xs, ys := ip.Cast(xt, yt)
	baseX, nx := Split(xs)
	baseY, ny := Split(ys)
	if ip.TAR != nil {
		nx, ny = ip.TAR.Apply(nx, ny)
	}
	w = Outer(ip.Kernel(nx), ip.Kernel(ny))
	if ip.PBCC {
		w = CorrectPBCC(w, nx, ny)
	}
	return baseX, baseY, w
}

type resizerState int

const (
	stateEmpty resizerState = iota
	stateConfigured
	stateReady
	stateCachedReady
)

// cacheEntry is one (source_x, source_y, weight) triple of a baked
// coefficient cache.
type cacheEntry struct {
	srcX, srcY int
	weight     float64
}

// Resizer orchestrates a single source->target resize: mapping
// coordinates, computing weights, accumulating across the 2x2
// neighbourhood and all channels, and writing the target. It supports a
// pre-baked coefficient cache and both serial and parallel execution.
//
// The state machine is: Empty -(Configure)-> Configured -(Optimize)->
// Ready -(Bake)-> Cached-Ready. Resize runs from Ready or Cached-Ready and
// is idempotent. InvalidateCache returns to Empty from any state.
type Resizer struct {
	Source, Target *Image
	Interp         *Interp

	parallel bool
	state    resizerState
	cache    []cacheEntry
}

// Configure sets the source image, target image and interpolation setup.
func (r *Resizer) Configure(source, target *Image, interp *Interp) {
	r.Source, r.Target, r.Interp = source, target, interp
	r.cache = nil
	r.state = stateConfigured
}

// Optimize runs pre-flight validation and, on success, selects the
// execution strategy (serial or parallel) and transitions to Ready.
// On failure it returns false with the triggering error and leaves the
// target untouched.
func (r *Resizer) Optimize(parallel bool) (bool, error) {
	if r.state == stateEmpty {
		return false, errors.New("raster: resizer has not been configured")
	}
	if ok, err := r.validate(); !ok {
		return false, err
	}
	r.parallel = parallel
	r.cache = nil
	r.state = stateReady
	return true, nil
}

// validate implements the pre-flight "safe mode" checks: non-null images,
// matching dimensions, matching channel counts, and configured kernel and
// mapping functions.
func (r *Resizer) validate() (bool, error) {
	if r.Source == nil || r.Target == nil {
		return false, errors.New("raster: source and target images must both be set")
	}
	if r.Interp == nil || r.Interp.Cast == nil || r.Interp.Kernel == nil {
		return false, errors.New("raster: interpolation cast and kernel must be set")
	}
	if r.Source.Width != r.Interp.origW || r.Source.Height != r.Interp.origH {
		return false, errors.New("raster: source dimensions do not match the interpolation setup")
	}
	if r.Target.Width != r.Interp.targetW || r.Target.Height != r.Interp.targetH {
		return false, errors.New("raster: target dimensions do not match the interpolation setup")
	}
	if r.Source.Channels != r.Target.Channels {
		return false, errors.New("raster: source and target channel counts differ")
	}
	return true, nil
}

// Bake precomputes the four (source_x, source_y, weight) triples for
// every target pixel and transitions to Cached-Ready. Subsequent Resize
// calls skip straight to the weighted accumulation.
func (r *Resizer) Bake() (bool, error) {
	if r.state != stateReady && r.state != stateCachedReady {
		return false, errors.New("raster: resizer is not ready to bake")
	}
	if ok, err := r.validate(); !ok {
		return false, err
	}

	w, h := r.Target.Width, r.Target.Height
	sw, sh := r.Source.Width, r.Source.Height
	cache := make([]cacheEntry, w*h*4)
	for yt := 0; yt < h; yt++ {
		row := yt * w
		for xt := 0; xt < w; xt++ {
			baseX, baseY, wts := r.Interp.weightsAt(xt, yt)
			idx := (row + xt) * 4
			x0, x1 := clampInt(baseX, 0, sw-1), clampInt(baseX+1, 0, sw-1)
			y0, y1 := clampInt(baseY, 0, sh-1), clampInt(baseY+1, 0, sh-1)
			cache[idx+0] = cacheEntry{x0, y0, wts.W00}
			cache[idx+1] = cacheEntry{x0, y1, wts.W01}
			cache[idx+2] = cacheEntry{x1, y0, wts.W10}
			cache[idx+3] = cacheEntry{x1, y1, wts.W11}
		}
	}
	r.cache = cache
	r.state = stateCachedReady
	return true, nil
}

// InvalidateCache discards any baked cache and returns the resizer to the
// Empty state; it must be reconfigured and re-optimized before the next
// Resize or Bake.
func (r *Resizer) InvalidateCache() {
	r.cache = nil
	r.state = stateEmpty
}

// Resize runs the resize using the cache if one was baked, or computes
// weights per pixel otherwise. It is idempotent: calling it again
// recomputes the same target.
func (r *Resizer) Resize() (bool, error) {
	if r.state != stateReady && r.state != stateCachedReady {
		return false, errors.New("raster: resizer is not ready")
	}
	if ok, err := r.validate(); !ok {
		return false, err
	}
	if r.state == stateCachedReady {
		r.resizeCached()
	} else {
		r.resizeDirect()
	}
	return true, nil
}

func (r *Resizer) resizeDirect() {
	channels := r.Source.Channels
	height := r.Target.Height
	work := func(xt int) {
		for yt := 0; yt < height; yt++ {
			baseX, baseY, w := r.Interp.weightsAt(xt, yt)
			x0, x1 := baseX, baseX+1
			y0, y1 := baseY, baseY+1
			for ch := 0; ch < channels; ch++ {
				acc := float64(r.Source.Get(x0, y0, ch))*w.W00 +
					float64(r.Source.Get(x0, y1, ch))*w.W01 +
					float64(r.Source.Get(x1, y0, ch))*w.W10 +
					float64(r.Source.Get(x1, y1, ch))*w.W11
				r.Target.Set(xt, yt, ch, clampByte(acc))
			}
		}
	}
	r.runColumns(work)
}

func (r *Resizer) resizeCached() {
	channels := r.Source.Channels
	width := r.Target.Width
	height := r.Target.Height
	work := func(xt int) {
		for yt := 0; yt < height; yt++ {
			idx := (yt*width + xt) * 4
			e0, e1, e2, e3 := r.cache[idx], r.cache[idx+1], r.cache[idx+2], r.cache[idx+3]
			for ch := 0; ch < channels; ch++ {
				acc := float64(r.Source.Get(e0.srcX, e0.srcY, ch))*e0.weight +
					float64(r.Source.Get(e1.srcX, e1.srcY, ch))*e1.weight +
					float64(r.Source.Get(e2.srcX, e2.srcY, ch))*e2.weight +
					float64(r.Source.Get(e3.srcX, e3.srcY, ch))*e3.weight
				r.Target.Set(xt, yt, ch, clampByte(acc))
			}
		}
	}
	r.runColumns(work)
}

func (r *Resizer) runColumns(work func(xt int)) {
	if !r.parallel {
		for xt := 0; xt < r.Target.Width; xt++ {
			work(xt)
		}
		return
	}
	parallelFor(r.Target.Width, work)
}

// parallelFor partitions n units of work into roughly runtime.NumCPU()
// chunks and runs them concurrently, joining before returning. Output is
// independent per unit, so no synchronisation beyond the join is needed.
func parallelFor(n int, fn func(i int)) {
	if n == 0 {
		return
	}
	cpus := runtime.NumCPU()
	chunk := 1
	if n > cpus {
		chunk = n / cpus
	}
	chunks := n/chunk + 1
	var wg sync.WaitGroup
	for c := 0; c < chunks; c++ {
		start := c * chunk
		if start >= n {
			break
		}
		end := start + chunk
		if end > n {
			end = n
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				fn(i)
			}
		}(start, end)
	}
	wg.Wait()
}

// clampByte rounds f half-away-from-zero and clamps it to a byte. Weight
// matrices from the supported kernels sum to 1 and samples are in
// [0,255], so f is in [0,255] in exact arithmetic; the clamp only guards
// floating-point rounding at the edges.
func clampByte(f float64) byte {
	v := int(f + 0.5)
	if v > 255 {
		return 255
	}
	if v > 0 {
		return byte(v)
	}
	return 0
}

// CoverageMask computes the per-target-pixel coverage (alpha) function
// over the configured cast and writes it out as a single-channel Image
// the same size as the target, for compositing rotated outputs.
func (r *Resizer) CoverageMask(xRange, yRange float64, fn TransitionFunc) (*Image, error) {
	if ok, err := r.validate(); !ok {
		return nil, err
	}
	cov := CoverageFunc(r.Interp.Cast, r.Source.Width, r.Source.Height, xRange, yRange, fn)
	mask := NewImage(r.Target.Width, r.Target.Height, 1)
	for yt := 0; yt < r.Target.Height; yt++ {
		for xt := 0; xt < r.Target.Width; xt++ {
			mask.Set(xt, yt, 0, clampByte(cov(xt, yt)*255))
		}
	}
	return mask, nil
}
