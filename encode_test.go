package plinresize

import (
	"bytes"
	"testing"

	"github.com/rikosato/plinresize/raster"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	src := raster.NewImage(3, 2, 4)
	for i := range src.Pix {
		src.Pix[i] = byte(i * 17)
	}

	var buf bytes.Buffer
	if err := encodeImage(&buf, src, FormatPNG, 0); err != nil {
		t.Fatalf("encodeImage: %v", err)
	}

	got, err := decodeImage(&buf)
	if err != nil {
		t.Fatalf("decodeImage: %v", err)
	}
	if got.Width != src.Width || got.Height != src.Height {
		t.Fatalf("round-trip dims = %dx%d, want %dx%d", got.Width, got.Height, src.Width, src.Height)
	}
	for i := range src.Pix {
		if got.Pix[i] != src.Pix[i] {
			t.Errorf("byte %d = %d, want %d (PNG round-trip must be lossless)", i, got.Pix[i], src.Pix[i])
		}
	}
}

func TestEncodeImageRejectsWrongChannelCount(t *testing.T) {
	img := raster.NewImage(2, 2, 1)
	var buf bytes.Buffer
	if err := encodeImage(&buf, img, FormatPNG, 0); err == nil {
		t.Fatal("encodeImage should reject a non-4-channel image")
	}
}
