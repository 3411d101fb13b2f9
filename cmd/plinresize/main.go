package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/rikosato/plinresize"
	"github.com/rikosato/plinresize/raster"
)

var (
	version = "dev"
	date    = "unknown"
)

func main() {
	alg := flag.String("algorithm", "plin", `Resampling algorithm: nearest, linear or plin.`)
	pbcc := flag.Bool("pbcc", true, "Enable Proximity-Based Coefficient Correction.")
	tar := flag.Float64("tar", 0, `Transition Area Restriction band width, in target pixels.
0 disables TAR.`)
	width := flag.Int("width", 0, "Target width in pixels. 0 keeps the source width's scale factor at 1.")
	height := flag.Int("height", 0, "Target height in pixels. 0 keeps the source height's scale factor at 1.")
	rotate := flag.Float64("rotate", 0, "Counterclockwise rotation in degrees. The target canvas grows to fit.")
	parallel := flag.Bool("parallel", true, "Use the chunked-goroutine resize path.")
	coverage := flag.Bool("coverage", false, "Also write a coverage mask alongside each resized image.")
	jpeg := flag.Bool("jpeg", false, "Write JPEG output instead of PNG.")
	quality := flag.Int("quality", 90, "JPEG quality, 1-100. Ignored for PNG output.")
	outdir := flag.String("outdir", "", `Path to output directory.
If provided directory does not exist, plinresize will attempt to create it. (default input dir)`)
	ver := flag.Bool("version", false, "Print version information.")

	flag.Parse()

	if *ver {
		fmt.Printf("plinresize version %s, built at %s\n", version, date)
	}

	if *outdir != "" {
		if err := os.MkdirAll(*outdir, 0755); err != nil {
			fmt.Fprintf(os.Stderr, "Could not create outdir: %v\n", err)
			os.Exit(1)
		}
	}

	algorithm, err := parseAlgorithm(*alg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	format := plinresize.FormatPNG
	if *jpeg {
		format = plinresize.FormatJPEG
	}

	params := plinresize.DefaultParams()
	params.Algorithm = algorithm
	params.PBCC = *pbcc
	params.TransitionWidth = *tar
	params.TargetWidth = *width
	params.TargetHeight = *height
	params.RotationDegrees = *rotate
	params.Parallel = *parallel
	params.EmitCoverage = *coverage
	params.OutputFormat = format
	params.Quality = *quality

	logger := zerolog.New(zerolog.NewConsoleWriter()).With().Timestamp().Logger()
	job := &plinresize.Job{Params: params, Logger: logger}

	if err := job.RunBatch(context.Background(), flag.Args(), *outdir); err != nil {
		fmt.Fprintln(os.Stderr, "plinresize: a file failed to resize:", err)
		os.Exit(1)
	}
}

func parseAlgorithm(s string) (raster.Algorithm, error) {
	switch strings.ToLower(s) {
	case "nearest":
		return raster.Nearest, nil
	case "linear":
		return raster.Linear, nil
	case "plin":
		return raster.PLin, nil
	default:
		return 0, fmt.Errorf("unknown algorithm %q: want nearest, linear or plin", s)
	}
}
