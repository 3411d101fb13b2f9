package plinresize

import (
	"fmt"
	"image"
	"image/draw"
	"io"

	// for image decoding.
	_ "image/jpeg"
	_ "image/png"

	// This adds webp support.
	_ "golang.org/x/image/webp"

	"github.com/rikosato/plinresize/raster"
)

// decodeImage decodes a PNG, JPEG or WebP stream into a *raster.Image with
// 4 channels (RGBA, alpha not premultiplied).
func decodeImage(r io.Reader) (*raster.Image, error) {
	src, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("cannot decode image: %w", err)
	}

	b := src.Bounds()
	nrgba, ok := src.(*image.NRGBA)
	if !ok {
		nrgba = image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(nrgba, nrgba.Bounds(), src, b.Min, draw.Src)
	}

	img := raster.NewImage(b.Dx(), b.Dy(), 4)
	if nrgba.Stride == img.Width*4 && nrgba.Rect.Min == image.Pt(0, 0) {
		copy(img.Pix, nrgba.Pix)
		return img, nil
	}
	for y := 0; y < img.Height; y++ {
		srcOff := nrgba.PixOffset(nrgba.Rect.Min.X, nrgba.Rect.Min.Y+y)
		dstOff := y * img.Width * 4
		copy(img.Pix[dstOff:dstOff+img.Width*4], nrgba.Pix[srcOff:srcOff+img.Width*4])
	}
	return img, nil
}
