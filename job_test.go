package plinresize

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func writeTestImage(t *testing.T, dir, name string, w, h int) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: byte(x * 7), G: byte(y * 7), B: 128, A: 255})
		}
	}
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode %s: %v", path, err)
	}
	return path
}

func TestJobRunResizesToRequestedDimensions(t *testing.T) {
	dir := t.TempDir()
	in := writeTestImage(t, dir, "in.png", 8, 8)
	out := filepath.Join(dir, "out.png")

	params := DefaultParams()
	params.TargetWidth = 16
	params.TargetHeight = 16
	job := NewJob(params)

	if err := job.Run(in, out); err != nil {
		t.Fatalf("Run: %v", err)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatalf("open output: %v", err)
	}
	defer f.Close()
	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		t.Fatalf("DecodeConfig: %v", err)
	}
	if cfg.Width != 16 || cfg.Height != 16 {
		t.Errorf("output dims = %dx%d, want 16x16", cfg.Width, cfg.Height)
	}
}

func TestJobRunEmitsCoverageMask(t *testing.T) {
	dir := t.TempDir()
	in := writeTestImage(t, dir, "in.png", 4, 4)
	out := filepath.Join(dir, "out.png")

	params := DefaultParams()
	params.RotationDegrees = 30
	params.EmitCoverage = true
	job := NewJob(params)

	if err := job.Run(in, out); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "out-coverage.png")); err != nil {
		t.Errorf("coverage mask was not written: %v", err)
	}
}

func TestJobRunBatchResizesAllFiles(t *testing.T) {
	dir := t.TempDir()
	outDir := t.TempDir()
	names := []string{"a.png", "b.png", "c.png"}
	ins := make([]string, len(names))
	for i, n := range names {
		ins[i] = writeTestImage(t, dir, n, 6, 6)
	}

	params := DefaultParams()
	params.TargetWidth, params.TargetHeight = 3, 3
	job := NewJob(params)

	if err := job.RunBatch(context.Background(), ins, outDir); err != nil {
		t.Fatalf("RunBatch: %v", err)
	}

	entries, err := os.ReadDir(outDir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != len(names) {
		t.Errorf("wrote %d files, want %d", len(entries), len(names))
	}
}

func TestJobRunReportsDecodeFailure(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.png")
	if err := os.WriteFile(bad, []byte("not a png"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	job := NewJob(DefaultParams())
	if err := job.Run(bad, filepath.Join(dir, "out.png")); err == nil {
		t.Fatal("Run should fail for undecodable input")
	}
}
