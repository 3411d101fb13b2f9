// Package raster implements the pixel-art-oriented image resampling core:
// an addressable byte buffer, 2D affine algebra, coordinate casting,
// interpolation kernels (Nearest, Linear, PLin), the PBCC and TAR
// corrections, and the Resizer that composes them into a resize pass.
package raster

// Image is a W*H*C grid of 8-bit samples, indexed (x, y, channel).
//
// Reads clamp out-of-range coordinates to the nearest edge; writes to an
// out-of-range coordinate are silently dropped. Both policies exist so
// that a 2x2 interpolation neighbourhood sampled at the image's last row
// or column degrades to "extend the edge" instead of panicking.
type Image struct {
	Width, Height, Channels int
	Pix                     []byte
}

// NewImage allocates a zero-initialised image of the given dimensions.
// Width, Height and Channels must each be >= 1.
func NewImage(width, height, channels int) *Image {
	if width < 1 || height < 1 || channels < 1 {
		panic("raster: image dimensions must be >= 1")
	}
	return &Image{
		Width:    width,
		Height:   height,
		Channels: channels,
		Pix:      make([]byte, width*height*channels),
	}
}

// Get returns the sample at (x, y, c), clamping each coordinate to the
// image's bounds first.
func (img *Image) Get(x, y, c int) byte {
	x = clampInt(x, 0, img.Width-1)
	y = clampInt(y, 0, img.Height-1)
	c = clampInt(c, 0, img.Channels-1)
	return img.Pix[img.index(x, y, c)]
}

// Set writes v to (x, y, c). Out-of-range coordinates are a no-op.
func (img *Image) Set(x, y, c int, v byte) {
	if x < 0 || x >= img.Width || y < 0 || y >= img.Height || c < 0 || c >= img.Channels {
		return
	}
	img.Pix[img.index(x, y, c)] = v
}

func (img *Image) index(x, y, c int) int {
	return (y*img.Width+x)*img.Channels + c
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
