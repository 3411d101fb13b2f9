package plinresize

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func encodeTestPNG(t *testing.T, w, h int, fill func(x, y int) color.NRGBA) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, fill(x, y))
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	return buf.Bytes()
}

func TestDecodeImageDimensionsAndChannels(t *testing.T) {
	data := encodeTestPNG(t, 4, 3, func(x, y int) color.NRGBA {
		return color.NRGBA{R: byte(x * 10), G: byte(y * 10), B: 0, A: 255}
	})

	img, err := decodeImage(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decodeImage: %v", err)
	}
	if img.Width != 4 || img.Height != 3 {
		t.Fatalf("dims = %dx%d, want 4x3", img.Width, img.Height)
	}
	if img.Channels != 4 {
		t.Fatalf("channels = %d, want 4", img.Channels)
	}
	if got := img.Get(2, 1, 0); got != 20 {
		t.Errorf("pixel (2,1) red = %d, want 20", got)
	}
	if got := img.Get(2, 1, 1); got != 10 {
		t.Errorf("pixel (2,1) green = %d, want 10", got)
	}
	if got := img.Get(0, 0, 3); got != 255 {
		t.Errorf("pixel (0,0) alpha = %d, want 255", got)
	}
}

func TestDecodeImageRejectsGarbage(t *testing.T) {
	if _, err := decodeImage(bytes.NewReader([]byte("not an image"))); err == nil {
		t.Fatal("decodeImage should reject non-image data")
	}
}
