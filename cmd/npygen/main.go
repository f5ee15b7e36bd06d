// npygen writes a batch of .npy files filled with uniform random floats.
// With no flags it splits 2 GiB of float32 data in [-1000, 1000) into
// 49 MiB files under output_npy_files/.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"

	"github.com/ic-timon/randnpy/generator"
	"github.com/ic-timon/randnpy/internal/logger"
	"github.com/ic-timon/randnpy/metrics"
	"github.com/ic-timon/randnpy/npy"
	"github.com/ic-timon/randnpy/verify"
)

type options struct {
	cfg         *generator.Config
	verify      bool
	report      string
	csv         string
	metricsFile string
	progress    bool
	logLevel    string
	logFormat   string
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	d := generator.DefaultConfig()
	fs := flag.NewFlagSet("npygen", flag.ContinueOnError)
	fs.SetOutput(stderr)
	total := fs.String("total", humanize.IBytes(uint64(d.TotalSize)), "total data volume, e.g. 100MiB")
	fileSize := fs.String("file-size", humanize.IBytes(uint64(d.FileSize)), "size of each file, e.g. 49MiB")
	dtype := fs.String("dtype", d.DType.String(), "element type: float32 | float64")
	out := fs.String("out", d.OutputDir, "output directory (created if missing)")
	lo := fs.Float64("min", d.Min, "inclusive lower bound of generated values")
	hi := fs.Float64("max", d.Max, "exclusive upper bound of generated values")
	seed := fs.Uint64("seed", 0, "random seed; 0 draws a fresh one")
	start := fs.Int("start", 0, "index of the first file name")
	o := &options{}
	fs.BoolVar(&o.verify, "verify", false, "re-read every file after generation and check it")
	fs.StringVar(&o.report, "report", "", "write the JSON run summary to this path")
	fs.StringVar(&o.csv, "csv", "", "write per-file CSV rows to this path")
	fs.StringVar(&o.metricsFile, "metrics-file", "", "write Prometheus metrics (textfile format) to this path")
	fs.BoolVar(&o.progress, "progress", false, "show a progress bar on stderr")
	fs.StringVar(&o.logLevel, "log-level", "info", "debug | info | warn | error")
	fs.StringVar(&o.logFormat, "log-format", "console", "console | json")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	totalBytes, err := humanize.ParseBytes(*total)
	if err != nil {
		return nil, fmt.Errorf("-total: %w", err)
	}
	fileBytes, err := humanize.ParseBytes(*fileSize)
	if err != nil {
		return nil, fmt.Errorf("-file-size: %w", err)
	}
	dt, err := npy.ParseDType(*dtype)
	if err != nil {
		return nil, fmt.Errorf("-dtype: %w", err)
	}
	o.cfg = &generator.Config{
		TotalSize:  int64(totalBytes),
		FileSize:   int64(fileBytes),
		DType:      dt,
		OutputDir:  *out,
		Min:        *lo,
		Max:        *hi,
		Seed:       *seed,
		StartIndex: *start,
	}
	return o, nil
}

func run(args []string, stdout, stderr io.Writer) int {
	o, err := parseFlags(args, stderr)
	if err == flag.ErrHelp {
		return 0
	}
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	log := logger.New(stderr, o.logLevel, o.logFormat)
	if err := generate(o, stdout, stderr, log); err != nil {
		log.Error().Err(err).Msg("npygen failed")
		return 1
	}
	return 0
}

func generate(o *options, stdout, stderr io.Writer, log zerolog.Logger) error {
	rec := metrics.NewRecorder()
	opts := []generator.Option{
		generator.WithOutput(stdout),
		generator.WithLogger(log),
		generator.WithRecorder(rec),
	}
	if o.progress {
		opts = append(opts, generator.WithProgress(stderr))
	}
	g, err := generator.New(o.cfg, opts...)
	if err != nil {
		return err
	}
	s, err := g.Run()
	if o.metricsFile != "" {
		if merr := rec.WriteTextfile(o.metricsFile); merr != nil {
			log.Warn().Err(merr).Str("path", o.metricsFile).Msg("metrics not written")
		}
	}
	if err != nil {
		return err
	}

	if o.report != "" {
		if err := metrics.WriteJSON(s, o.report); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		log.Info().Str("path", o.report).Msg("report written")
	}
	if o.csv != "" {
		if err := metrics.WriteFilesCSV(s.Rows(), o.csv); err != nil {
			return fmt.Errorf("write csv: %w", err)
		}
	}
	if o.verify {
		cfg := g.Config()
		r, err := verify.Dir(&cfg)
		if err != nil {
			return fmt.Errorf("verify: %w", err)
		}
		if !r.OK() {
			for _, v := range r.Violations {
				log.Error().Str("violation", v).Msg("verification failed")
			}
			return fmt.Errorf("verify: %d violations", len(r.Violations))
		}
		log.Info().
			Int64("elements", r.Elements).
			Float64("mean", r.Mean).
			Float64("rms", r.RMS).
			Str("impl", r.Impl).
			Msg("verification passed")
	}
	return nil
}
