package generator

import (
	"errors"
	"fmt"
	"math"

	"github.com/ic-timon/randnpy/npy"
)

// Byte-count units used for sizes and reporting.
const (
	MiB = 1 << 20
	GiB = 1 << 30
)

var (
	ErrInvalidSize  = errors.New("invalid size")
	ErrInvalidRange = errors.New("invalid value range")
)

// MaxFiles bounds the number of files a single run may plan.
const MaxFiles = 1 << 20

// Config holds the generation parameters. It is copied by New and not
// modified afterwards.
type Config struct {
	TotalSize  int64     // target aggregate bytes, default 2 GiB
	FileSize   int64     // bytes per file, default 49 MiB
	DType      npy.DType // element type, default float32
	OutputDir  string    // created if missing, default "output_npy_files"
	Min        float64   // inclusive lower bound, default -1000
	Max        float64   // exclusive upper bound, default 1000
	Seed       uint64    // 0 draws a fresh seed per run
	StartIndex int       // index of the first file name, default 0
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		TotalSize: 2 * GiB,
		FileSize:  49 * MiB,
		DType:     npy.Float32,
		OutputDir: "output_npy_files",
		Min:       -1000,
		Max:       1000,
	}
}

// OrDefault returns DefaultConfig if c is nil, otherwise fills the element
// type and output directory with defaults. Sizes and the value range are
// left alone so that zero values are reported by Validate.
func (c *Config) OrDefault() *Config {
	if c == nil {
		return DefaultConfig()
	}
	d := DefaultConfig()
	if c.DType == 0 {
		c.DType = d.DType
	}
	if c.OutputDir == "" {
		c.OutputDir = d.OutputDir
	}
	return c
}

// Resolved returns a copy of c with defaults applied; c is not modified.
func (c *Config) Resolved() Config {
	if c == nil {
		return *DefaultConfig()
	}
	cp := *c
	return *cp.OrDefault()
}

// Validate reports misconfiguration before any file is touched.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if !c.DType.Valid() {
		return fmt.Errorf("unsupported element type %s", c.DType)
	}
	if c.TotalSize <= 0 {
		return fmt.Errorf("%w: total size %d must be positive", ErrInvalidSize, c.TotalSize)
	}
	if c.FileSize <= 0 {
		return fmt.Errorf("%w: file size %d must be positive", ErrInvalidSize, c.FileSize)
	}
	if c.FileSize < int64(c.DType.Size()) {
		return fmt.Errorf("%w: file size %d is smaller than one %s element", ErrInvalidSize, c.FileSize, c.DType)
	}
	if n := NumFiles(c.TotalSize, c.FileSize); n > MaxFiles {
		return fmt.Errorf("%w: %d files of %d bytes exceed the limit of %d files", ErrInvalidSize, n, c.FileSize, MaxFiles)
	} else if n > math.MaxInt64/c.FileSize {
		return fmt.Errorf("%w: %d files of %d bytes overflow the byte count", ErrInvalidSize, n, c.FileSize)
	}
	if c.StartIndex < 0 {
		return fmt.Errorf("start index %d must not be negative", c.StartIndex)
	}
	if c.StartIndex > math.MaxInt-MaxFiles {
		return fmt.Errorf("start index %d is too large", c.StartIndex)
	}
	if math.IsNaN(c.Min) || math.IsNaN(c.Max) || math.IsInf(c.Max-c.Min, 0) {
		return fmt.Errorf("%w: [%g, %g)", ErrInvalidRange, c.Min, c.Max)
	}
	lo, hi := c.Min, c.Max
	if c.DType == npy.Float32 {
		lo, hi = float64(float32(c.Min)), float64(float32(c.Max))
		if math.IsInf(lo, 0) || math.IsInf(hi, 0) {
			return fmt.Errorf("%w: [%g, %g) overflows float32", ErrInvalidRange, c.Min, c.Max)
		}
	}
	if lo >= hi {
		return fmt.Errorf("%w: min %g must be below max %g in %s", ErrInvalidRange, c.Min, c.Max, c.DType)
	}
	return nil
}

// Plan validates c and derives the file layout.
func (c *Config) Plan() (Plan, error) {
	if err := c.Validate(); err != nil {
		return Plan{}, err
	}
	return newPlan(c.TotalSize, c.FileSize, c.DType.Size(), c.StartIndex), nil
}
