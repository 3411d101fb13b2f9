package plinresize

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"

	"github.com/rikosato/plinresize/raster"
)

// OutputFormat selects the encoder encodeImage uses.
type OutputFormat int

const (
	FormatPNG OutputFormat = iota
	FormatJPEG
)

// encodeImage encodes a 4-channel *raster.Image as PNG or JPEG.
func encodeImage(w io.Writer, img *raster.Image, format OutputFormat, quality int) error {
	if img.Channels != 4 {
		return fmt.Errorf("cannot encode: want 4 channels, got %d", img.Channels)
	}

	nrgba := image.NewNRGBA(image.Rect(0, 0, img.Width, img.Height))
	copy(nrgba.Pix, img.Pix)

	switch format {
	case FormatJPEG:
		if err := jpeg.Encode(w, nrgba, &jpeg.Options{Quality: quality}); err != nil {
			return fmt.Errorf("cannot encode jpeg: %w", err)
		}
	default:
		if err := png.Encode(w, nrgba); err != nil {
			return fmt.Errorf("cannot encode png: %w", err)
		}
	}
	return nil
}
