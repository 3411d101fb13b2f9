// Package plinresize hosts decode/encode/batch plumbing around the
// raster package's resampling core, the way mangaconv hosts imgutil.
package plinresize

import (
	"fmt"

	"github.com/rikosato/plinresize/raster"
)

// Params adjusts how a single image is resized. For sane defaults, see
// cmd/plinresize.
//
// Algorithm selects the resampling kernel. PBCC enables Proximity-Based
// Coefficient Correction. TransitionWidth sets the Transition Area
// Restriction band, in target pixels; 0 disables TAR.
// TargetWidth and TargetHeight are the output dimensions in pixels; 0
// keeps the corresponding source dimension's scale factor at 1.
// RotationDegrees rotates the image counterclockwise on screen after
// scaling; the target canvas grows to fit the rotated bounding box.
// Parallel enables the chunked-goroutine resize path.
// EmitCoverage additionally writes a coverage mask alongside the
// resized image, named with a "-coverage" suffix.
type Params struct {
	Algorithm       raster.Algorithm
	PBCC            bool
	TransitionWidth float64

	TargetWidth, TargetHeight int
	RotationDegrees           float64

	Parallel     bool
	EmitCoverage bool

	// OutputFormat and Quality control encodeImage; Quality only
	// applies to FormatJPEG.
	OutputFormat OutputFormat
	Quality      int
}

// DefaultParams returns the Params cmd/plinresize falls back to when a
// flag isn't set explicitly.
func DefaultParams() Params {
	return Params{
		Algorithm:    raster.PLin,
		PBCC:         true,
		Parallel:     true,
		OutputFormat: FormatPNG,
		Quality:      90,
	}
}

// transformationSetup builds the TransformationSetup a given source
// size and Params imply. Width/Height of zero are treated as "keep the
// source size on this axis."
func (p Params) transformationSetup(origW, origH int) raster.TransformationSetup {
	s := raster.TransformationSetup{
		RotationAngle:      p.RotationDegrees,
		RotationInDegrees:  true,
		RotationRescaling:  true,
		RelativeScaling:    false,
		OriginalWidth:      float64(origW),
		OriginalHeight:     float64(origH),
	}
	targetW, targetH := origW, origH
	if p.TargetWidth > 0 {
		targetW = p.TargetWidth
	}
	if p.TargetHeight > 0 {
		targetH = p.TargetHeight
	}
	s.ScalingX, s.ScalingY = float64(targetW), float64(targetH)
	return s
}

func (p Params) kernelOptions() raster.KernelOptions {
	return raster.KernelOptions{
		Algorithm:       p.Algorithm,
		PBCC:            p.PBCC,
		TransitionWidth: p.TransitionWidth,
	}
}

// buildInterp constructs the Interp a resize of a (origW, origH) image
// under Params produces, returning the resulting target dimensions
// alongside it.
func (p Params) buildInterp(origW, origH int) (*raster.Interp, int, int, error) {
	setup := p.transformationSetup(origW, origH)
	tr, err := setup.Build()
	if err != nil {
		return nil, 0, 0, fmt.Errorf("cannot build transformation: %w", err)
	}

	ip := &raster.Interp{}
	if p.RotationDegrees != 0 {
		cast := raster.Cast2DFromAffine(tr.Inverse, raster.DefaultCoordinateCorrection, raster.DefaultCoordinateCorrection)
		ip.InitTransformation(origW, origH, tr.TargetWidth, tr.TargetHeight, cast)
	} else {
		ip.InitResize(origW, origH, tr.TargetWidth, tr.TargetHeight, nil, nil)
	}
	ip.InitFunctions(p.kernelOptions())
	return ip, tr.TargetWidth, tr.TargetHeight, nil
}
