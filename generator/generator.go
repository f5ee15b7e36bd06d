package generator

import (
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/exp/constraints"

	"github.com/ic-timon/randnpy/internal/logger"
	"github.com/ic-timon/randnpy/metrics"
	"github.com/ic-timon/randnpy/npy"
)

// Generator performs one sequential generation pass per Run.
type Generator struct {
	cfg         Config
	plan        Plan
	out         io.Writer
	log         zerolog.Logger
	rec         *metrics.Recorder
	progressOut io.Writer
}

// Option configures a Generator.
type Option func(*Generator)

// WithOutput sets the writer for the per-file and summary lines (default stdout).
func WithOutput(w io.Writer) Option {
	return func(g *Generator) { g.out = w }
}

// WithLogger sets the structured logger (default: discard).
func WithLogger(l zerolog.Logger) Option {
	return func(g *Generator) { g.log = l }
}

// WithRecorder records file and run metrics on r.
func WithRecorder(r *metrics.Recorder) Option {
	return func(g *Generator) { g.rec = r }
}

// WithProgress renders a progress bar on w (nil disables it).
func WithProgress(w io.Writer) Option {
	return func(g *Generator) { g.progressOut = w }
}

// New validates cfg and returns a Generator holding a copy of it. cfg may be
// nil to use DefaultConfig().
func New(cfg *Config, opts ...Option) (*Generator, error) {
	c := cfg.Resolved()
	plan, err := c.Plan()
	if err != nil {
		return nil, err
	}
	g := &Generator{
		cfg:  c,
		plan: plan,
		out:  os.Stdout,
		log:  logger.Nop(),
	}
	for _, o := range opts {
		o(g)
	}
	return g, nil
}

// Config returns the generator's configuration.
func (g *Generator) Config() Config { return g.cfg }

// Plan returns the derived file layout.
func (g *Generator) Plan() Plan { return g.plan }

// FileResult describes one written file.
type FileResult struct {
	Index    int           `json:"index"`
	Path     string        `json:"path"`
	Elements int           `json:"elements"`
	Bytes    int64         `json:"bytes"`
	Duration time.Duration `json:"duration_ns"`
}

// Summary describes a completed run.
type Summary struct {
	RunID           string               `json:"run_id"`
	Seed            uint64               `json:"seed"`
	DType           string               `json:"dtype"`
	OutputDir       string               `json:"output_dir"`
	NumFiles        int                  `json:"num_files"`
	ElementsPerFile int                  `json:"elements_per_file"`
	NominalBytes    int64                `json:"nominal_bytes"`
	WrittenBytes    int64                `json:"written_bytes"`
	Elapsed         time.Duration        `json:"elapsed_ns"`
	Latency         metrics.LatencyStats `json:"write_latency"`
	Files           []FileResult         `json:"files"`
}

// Rows converts the per-file results for metrics.WriteFilesCSV.
func (s *Summary) Rows() []metrics.FileRow {
	rows := make([]metrics.FileRow, len(s.Files))
	for i, f := range s.Files {
		rows[i] = metrics.FileRow{
			Index:    f.Index,
			Path:     f.Path,
			Elements: f.Elements,
			Bytes:    f.Bytes,
			WriteMs:  float64(f.Duration.Nanoseconds()) / 1e6,
		}
	}
	return rows
}

// Run creates the output directory, then generates and writes every planned
// file in order, printing one line per file and a final summary. It stops at
// the first error; files already written are left in place.
func (g *Generator) Run() (s *Summary, err error) {
	defer func() { g.rec.RunFinished(err) }()

	seed := g.cfg.Seed
	for seed == 0 {
		seed = rand.Uint64()
	}
	s = &Summary{
		RunID:           uuid.NewString(),
		Seed:            seed,
		DType:           g.cfg.DType.String(),
		OutputDir:       g.cfg.OutputDir,
		NumFiles:        g.plan.NumFiles,
		ElementsPerFile: g.plan.ElementsPerFile,
		NominalBytes:    g.plan.NominalBytes,
		Files:           make([]FileResult, 0, min(g.plan.NumFiles, 1024)),
	}
	log := g.log.With().Str("run_id", s.RunID).Uint64("seed", seed).Logger()
	log.Info().
		Int("files", g.plan.NumFiles).
		Int("elements_per_file", g.plan.ElementsPerFile).
		Str("dtype", s.DType).
		Str("file_size", humanize.IBytes(uint64(g.cfg.FileSize))).
		Str("total_size", humanize.IBytes(uint64(g.cfg.TotalSize))).
		Str("dir", g.cfg.OutputDir).
		Msg("starting generation")

	if err := os.MkdirAll(g.cfg.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	start := time.Now()
	before := metrics.Take()
	rng := NewRand(seed)
	switch g.cfg.DType {
	case npy.Float32:
		err = writeFiles[float32](g, rng, log, s)
	case npy.Float64:
		err = writeFiles[float64](g, rng, log, s)
	default:
		err = fmt.Errorf("unsupported element type %s", g.cfg.DType)
	}
	if err != nil {
		log.Error().Err(err).Int("written", len(s.Files)).Msg("generation aborted")
		return nil, err
	}
	s.Elapsed = time.Since(start)
	after := metrics.Take()

	durations := make([]time.Duration, len(s.Files))
	for i, f := range s.Files {
		durations[i] = f.Duration
	}
	s.Latency = metrics.LatencyStatsFromDurations(durations)

	fmt.Fprintf(g.out, "\n%d files generated, approx %.2f GiB total (%s written).\n",
		s.NumFiles, float64(s.NominalBytes)/GiB, humanize.IBytes(uint64(s.WrittenBytes)))

	rt := metrics.Diff(before, after)
	log.Info().
		Dur("elapsed", s.Elapsed).
		Str("written", humanize.IBytes(uint64(s.WrittenBytes))).
		Float64("write_p50_ms", s.Latency.P50Ms).
		Float64("write_p99_ms", s.Latency.P99Ms).
		Str("heap_alloc", humanize.IBytes(after.HeapAlloc)).
		Int64("heap_growth_bytes", rt.HeapGrowth).
		Str("alloc_rate", humanize.IBytes(uint64(rt.AllocRateBps))+"/s").
		Uint32("gc", rt.GCs).
		Msg("generation complete")
	return s, nil
}

func writeFiles[T constraints.Float](g *Generator, rng *rand.Rand, log zerolog.Logger, s *Summary) error {
	p := g.plan
	// One buffer for the whole run; each file's values replace the previous ones.
	buf := make([]T, p.ElementsPerFile)
	lo, hi := T(g.cfg.Min), T(g.cfg.Max)
	dataMiB := float64(p.DataBytes()) / MiB

	var bar *progressbar.ProgressBar
	if g.progressOut != nil {
		bar = progressbar.NewOptions(p.NumFiles,
			progressbar.OptionSetWriter(g.progressOut),
			progressbar.OptionSetDescription("generating"),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
		defer bar.Finish()
	}

	for k := 0; k < p.NumFiles; k++ {
		index := p.StartIndex + k
		path := p.Path(g.cfg.OutputDir, k)
		t0 := time.Now()
		Fill(rng, buf, lo, hi)
		n, err := npy.Save(path, buf)
		if err != nil {
			return fmt.Errorf("file %d: %w", index, err)
		}
		d := time.Since(t0)

		s.Files = append(s.Files, FileResult{
			Index:    index,
			Path:     path,
			Elements: len(buf),
			Bytes:    n,
			Duration: d,
		})
		s.WrittenBytes += n
		g.rec.ObserveFile(n, len(buf), d)

		fmt.Fprintf(g.out, "✔ %s (approx %.2f MiB of random floating-point data)\n", path, dataMiB)
		log.Debug().Str("path", path).Int64("bytes", n).Dur("took", d).Msg("file written")
		if bar != nil {
			bar.Add(1)
		}
	}
	return nil
}
