// Package verify re-reads a generated batch and checks it against the
// configuration that produced it.
package verify

import (
	"fmt"
	"math"

	"github.com/ic-timon/randnpy/generator"
	"github.com/ic-timon/randnpy/npy"
	"github.com/ic-timon/randnpy/simd"
)

// FileStats describes one checked file.
type FileStats struct {
	Path       string  `json:"path"`
	Elements   int     `json:"elements"`
	Min        float64 `json:"min"`
	Max        float64 `json:"max"`
	Mean       float64 `json:"mean"`
	RMS        float64 `json:"rms"`
	OutOfRange int     `json:"out_of_range"`
}

// Report is the result of checking a whole batch.
type Report struct {
	Files      []FileStats `json:"files"`
	Elements   int64       `json:"elements"`
	Mean       float64     `json:"mean"`
	RMS        float64     `json:"rms"`
	Violations []string    `json:"violations,omitempty"`
	Impl       string      `json:"impl"`
}

// OK reports whether the batch matched the configuration.
func (r *Report) OK() bool { return len(r.Violations) == 0 }

// Dir checks every file planned by cfg: element type, element count and
// that every value lies in [Min, Max). Mismatches are collected as
// violations; a missing or unreadable file is an error.
func Dir(cfg *generator.Config) (*Report, error) {
	c := cfg.Resolved()
	plan, err := c.Plan()
	if err != nil {
		return nil, err
	}
	r := &Report{Impl: simd.ImplDesc()}
	var sum, sumSq float64
	for _, path := range plan.Paths(c.OutputDir) {
		fs, s, q, err := checkFile(path, &c, plan)
		if err != nil {
			return nil, err
		}
		sum += s
		sumSq += q
		r.Elements += int64(fs.Elements)
		r.Files = append(r.Files, fs)
		if fs.Elements != plan.ElementsPerFile {
			r.Violations = append(r.Violations, fmt.Sprintf("%s: %d elements, want %d", path, fs.Elements, plan.ElementsPerFile))
		}
		if fs.OutOfRange > 0 {
			r.Violations = append(r.Violations, fmt.Sprintf("%s: %d values outside [%g, %g)", path, fs.OutOfRange, c.Min, c.Max))
		}
	}
	if r.Elements > 0 {
		n := float64(r.Elements)
		r.Mean = sum / n
		r.RMS = math.Sqrt(sumSq / n)
	}
	return r, nil
}

func checkFile(path string, c *generator.Config, plan generator.Plan) (fs FileStats, sum, sumSq float64, err error) {
	f, err := npy.Open(path)
	if err != nil {
		return fs, 0, 0, err
	}
	defer f.Close()

	if f.DType() != c.DType {
		return fs, 0, 0, fmt.Errorf("%s: %w: have %s, want %s", path, npy.ErrDTypeMismatch, f.DType(), c.DType)
	}
	if len(f.Header().Shape) != 1 {
		return fs, 0, 0, fmt.Errorf("%s: %w: shape %v is not one-dimensional", path, npy.ErrBadHeader, f.Header().Shape)
	}
	fs = FileStats{Path: path, Elements: f.Len()}

	switch c.DType {
	case npy.Float32:
		vals, err := f.Float32s()
		if err != nil {
			return fs, 0, 0, err
		}
		sum, sumSq = simd.Moments(vals)
		lo, hi := simd.MinMax(vals)
		fs.Min, fs.Max = float64(lo), float64(hi)
		bl, bh := float32(c.Min), float32(c.Max)
		for _, v := range vals {
			if !(v >= bl && v < bh) {
				fs.OutOfRange++
			}
		}
	case npy.Float64:
		vals, err := f.Float64s()
		if err != nil {
			return fs, 0, 0, err
		}
		sum, sumSq = simd.Moments64(vals)
		fs.Min, fs.Max = simd.MinMax64(vals)
		for _, v := range vals {
			if !(v >= c.Min && v < c.Max) {
				fs.OutOfRange++
			}
		}
	}
	if fs.Elements > 0 {
		n := float64(fs.Elements)
		fs.Mean = sum / n
		fs.RMS = math.Sqrt(sumSq / n)
	}
	return fs, sum, sumSq, nil
}
