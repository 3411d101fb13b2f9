package raster

import (
	"errors"
	"math"

	"golang.org/x/image/math/f64"
)

// Affine is a 2D affine transform [x'; y'] = A*[x; y] + b, stored the same
// way golang.org/x/image/draw stores its own Transformer matrices: as a
// flat f64.Aff3 {m00, m01, m02, m10, m11, m12} where m02 and m12 are the
// translation components.
type Affine struct {
	M f64.Aff3
}

// Identity returns the identity affine transform.
func Identity() Affine {
	return Affine{f64.Aff3{1, 0, 0, 0, 1, 0}}
}

// Translation returns a pure translation by (tx, ty).
func Translation(tx, ty float64) Affine {
	return Affine{f64.Aff3{1, 0, tx, 0, 1, ty}}
}

// Scaling returns a pure scale by (sx, sy) about the origin.
func Scaling(sx, sy float64) Affine {
	return Affine{f64.Aff3{sx, 0, 0, 0, sy, 0}}
}

// Rotation returns a pure rotation by theta radians about the origin, in
// the image's y-down pixel coordinate system (so a positive theta turns
// the image counterclockwise on screen): x' = x*cos+y*sin,
// y' = -x*sin+y*cos.
// This is the convention the bounding-box anchor sign table in Build
// assumes; flipping it would flip which axis each sign-table branch
// shifts.
func Rotation(theta float64) Affine {
	sin, cos := math.Sin(theta), math.Cos(theta)
	return Affine{f64.Aff3{cos, sin, 0, -sin, cos, 0}}
}

// Compose returns the transform that applies b first, then a: Compose(a,
// b)(p) == a(b(p)).
func Compose(a, b Affine) Affine {
	return Affine{f64.Aff3{
		a.M[0]*b.M[0] + a.M[1]*b.M[3],
		a.M[0]*b.M[1] + a.M[1]*b.M[4],
		a.M[0]*b.M[2] + a.M[1]*b.M[5] + a.M[2],
		a.M[3]*b.M[0] + a.M[4]*b.M[3],
		a.M[3]*b.M[1] + a.M[4]*b.M[4],
		a.M[3]*b.M[2] + a.M[4]*b.M[5] + a.M[5],
	}}
}

// Apply maps a point through the transform.
func (a Affine) Apply(x, y float64) (float64, float64) {
	return a.M[0]*x + a.M[1]*y + a.M[2], a.M[3]*x + a.M[4]*y + a.M[5]
}

// Invert returns the inverse transform, or ok=false if the linear part is
// singular.
func (a Affine) Invert() (Affine, bool) {
	det := a.M[0]*a.M[4] - a.M[1]*a.M[3]
	if det == 0 {
		return Affine{}, false
	}
	id := 1 / det
	i00 := a.M[4] * id
	i01 := -a.M[1] * id
	i10 := -a.M[3] * id
	i11 := a.M[0] * id
	return Affine{f64.Aff3{
		i00, i01, -(i00*a.M[2] + i01*a.M[5]),
		i10, i11, -(i10*a.M[2] + i11*a.M[5]),
	}}, true
}

// TransformationSetup is the declarative description of a combined
// scale+rotate transform. All fields are optional and default to the
// identity transform's equivalent (no scale, no rotation, no translation,
// no expansion).
type TransformationSetup struct {
	// RotationAngle is the rotation amount, in degrees unless
	// RotationInDegrees is false.
	RotationAngle float64
	// RotationInDegrees selects the unit of RotationAngle: degrees when
	// true, radians when false. Build uses the field as set, so the zero
	// value false means radians.
	RotationInDegrees bool
	// RotationRescaling, when true, grows the target canvas to the
	// rotated bounding box. When false (the zero value, which Build uses
	// as set), the canvas keeps its pre-rotation dimensions and the
	// rotation pivots about its center, clipping corners that rotate
	// outside it.
	RotationRescaling bool

	// ScalingX, ScalingY are scale factors in relative mode, or absolute
	// target dimensions when RelativeScaling is false.
	ScalingX, ScalingY float64
	// RelativeScaling selects the interpretation of ScalingX/ScalingY.
	// Build uses the field as set; with the zero value false, ScalingX/
	// ScalingY are absolute dimensions unless both are 0, in which case
	// the scale stays 1x.
	RelativeScaling bool

	TranslateX, TranslateY float64

	ExpandLeft, ExpandTop, ExpandRight, ExpandBottom float64
	// ApplyExpansionLast moves expansion from before scale/rotation to
	// after it; see Build.
	ApplyExpansionLast bool

	OriginalWidth, OriginalHeight float64
}

// Transformation is the result of TransformationSetup.Build: a forward
// (source->target) matrix, its inverse (target->source), and the
// resulting integer target dimensions.
type Transformation struct {
	Forward, Inverse           Affine
	TargetWidth, TargetHeight  int
}

// Build assembles the forward and inverse matrices and the target
// dimensions from the setup, following the ordering: expansion-before
// (optional), translation, scaling, rotation, expansion-after (optional).
func (s TransformationSetup) Build() (Transformation, error) {
	if s.OriginalWidth <= 0 || s.OriginalHeight <= 0 {
		return Transformation{}, errors.New("raster: original dimensions must be positive")
	}

	w, h := s.OriginalWidth, s.OriginalHeight
	fwd := Identity()

	expandSet := s.ExpandLeft != 0 || s.ExpandTop != 0 || s.ExpandRight != 0 || s.ExpandBottom != 0
	if expandSet && !s.ApplyExpansionLast {
		fwd = Compose(Translation(s.ExpandLeft, s.ExpandTop), fwd)
		w += s.ExpandLeft + s.ExpandRight
		h += s.ExpandTop + s.ExpandBottom
	}

	fwd = Compose(Translation(s.TranslateX, s.TranslateY), fwd)

	sx, sy := s.ScalingX, s.ScalingY
	if sx == 0 {
		sx = 1
	}
	if sy == 0 {
		sy = 1
	}
	if !s.RelativeScaling && (s.ScalingX != 0 || s.ScalingY != 0) {
		targetW, targetH := sx, sy
		fwd = Compose(Scaling(targetW/w, targetH/h), fwd)
		w, h = targetW, targetH
	} else {
		fwd = Compose(Scaling(sx, sy), fwd)
		w *= sx
		h *= sy
	}

	targetW, targetH := w, h
	if s.RotationAngle != 0 {
		theta := s.RotationAngle
		if s.RotationInDegrees {
			theta = theta * math.Pi / 180
		}
		sin, cos := math.Sin(theta), math.Cos(theta)
		rot := Rotation(theta)

		if s.RotationRescaling {
			fwd = Compose(rot, fwd)

			var atx, aty float64
			if sin >= 0 {
				aty += w * sin
			} else {
				atx -= h * sin
			}
			if cos < 0 {
				atx -= w * cos
				aty -= h * cos
			}
			fwd = Compose(Translation(atx, aty), fwd)

			targetW = math.Abs(cos)*w + math.Abs(sin)*h
			targetH = math.Abs(sin)*w + math.Abs(cos)*h
		} else {
			cx, cy := w/2, h/2
			fwd = Compose(Translation(cx, cy), Compose(rot, Compose(Translation(-cx, -cy), fwd)))
		}
	}

	if s.ApplyExpansionLast && expandSet {
		fwd = Compose(Translation(s.ExpandLeft, s.ExpandTop), fwd)
		targetW = s.OriginalWidth + s.ExpandLeft + s.ExpandRight
		targetH = s.OriginalHeight + s.ExpandTop + s.ExpandBottom
	}

	inv, ok := fwd.Invert()
	if !ok {
		return Transformation{}, errors.New("raster: transform is not invertible")
	}

	return Transformation{
		Forward:      fwd,
		Inverse:      inv,
		TargetWidth:  int(math.Round(targetW)),
		TargetHeight: int(math.Round(targetH)),
	}, nil
}
