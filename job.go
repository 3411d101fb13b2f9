package plinresize

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/rikosato/plinresize/raster"
)

// Job runs resizes for a fixed Params, optionally across many files. It's
// safe to use concurrently.
type Job struct {
	Params Params
	Logger zerolog.Logger
}

// NewJob creates a Job with the given Params and a no-op logger that
// discards all log output.
func NewJob(p Params) *Job {
	return &Job{Params: p, Logger: zerolog.Nop()}
}

// Run reads a file from in, resizes it, and writes the result to out. If
// Params.EmitCoverage is set, a coverage mask is additionally written to
// out with a "-coverage" suffix before its extension.
func (j *Job) Run(in, out string) error {
	f, err := os.Open(in)
	if err != nil {
		return fmt.Errorf("cannot open %s: %w", in, err)
	}
	defer f.Close()

	src, err := decodeImage(f)
	if err != nil {
		return fmt.Errorf("cannot decode %s: %w", in, err)
	}

	ip, targetW, targetH, err := j.Params.buildInterp(src.Width, src.Height)
	if err != nil {
		return fmt.Errorf("cannot configure resize for %s: %w", in, err)
	}
	dst := raster.NewImage(targetW, targetH, src.Channels)

	r := &raster.Resizer{}
	r.Configure(src, dst, ip)
	if ok, err := r.Optimize(j.Params.Parallel); !ok {
		return fmt.Errorf("cannot optimize resize for %s: %w", in, err)
	}
	if ok, err := r.Resize(); !ok {
		return fmt.Errorf("cannot resize %s: %w", in, err)
	}

	outFile, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("cannot create %s: %w", out, err)
	}
	defer outFile.Close()
	if err := encodeImage(outFile, dst, j.Params.OutputFormat, j.Params.Quality); err != nil {
		return fmt.Errorf("cannot encode %s: %w", out, err)
	}

	if j.Params.EmitCoverage {
		mask, err := r.CoverageMask(raster.DefaultCoordinateCorrection, raster.DefaultCoordinateCorrection, raster.TransitionLinear)
		if err != nil {
			return fmt.Errorf("cannot compute coverage mask for %s: %w", in, err)
		}
		if err := j.writeCoverage(out, mask); err != nil {
			return err
		}
	}

	return nil
}

func (j *Job) writeCoverage(out string, mask *raster.Image) error {
	ext := filepath.Ext(out)
	path := strings.TrimSuffix(out, ext) + "-coverage" + ext
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create %s: %w", path, err)
	}
	defer f.Close()

	rgba := raster.NewImage(mask.Width, mask.Height, 4)
	for y := 0; y < mask.Height; y++ {
		for x := 0; x < mask.Width; x++ {
			v := mask.Get(x, y, 0)
			rgba.Set(x, y, 0, v)
			rgba.Set(x, y, 1, v)
			rgba.Set(x, y, 2, v)
			rgba.Set(x, y, 3, 255)
		}
	}
	if err := encodeImage(f, rgba, FormatPNG, 0); err != nil {
		return fmt.Errorf("cannot encode %s: %w", path, err)
	}
	return nil
}

// target pairs an input path with the output path it resizes to.
type target struct {
	in, out string
}

// RunBatch resizes every path in ins, writing results to outDir (or
// alongside each input if outDir is ""). It fans work across
// runtime.NumCPU() workers via errgroup and logs each file's outcome;
// it returns the first error encountered but lets already-started
// files finish.
func (j *Job) RunBatch(ctx context.Context, ins []string, outDir string) error {
	targets := make(chan target, len(ins))
	for _, in := range ins {
		out := filepath.Dir(in)
		if outDir != "" {
			out = outDir
		}
		out = filepath.Join(out, outName(in, j.Params.OutputFormat))
		targets <- target{in, out}
	}
	close(targets)

	errg, ctx := errgroup.WithContext(ctx)
	for i := 0; i < runtime.NumCPU(); i++ {
		errg.Go(func() error {
			for t := range targets {
				select {
				case <-ctx.Done():
					return ctx.Err()
				default:
				}
				if err := j.Run(t.in, t.out); err != nil {
					j.Logger.Error().Err(err).Str("file", t.in).Msg("resize failed")
					return err
				}
				j.Logger.Info().Str("file", t.in).Str("out", t.out).Msg("resized")
			}
			return nil
		})
	}
	return errg.Wait()
}

func outName(in string, format OutputFormat) string {
	base := strings.TrimSuffix(filepath.Base(in), filepath.Ext(in))
	if format == FormatJPEG {
		return base + ".resized.jpg"
	}
	return base + ".resized.png"
}
