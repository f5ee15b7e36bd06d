package generator

import (
	"errors"
	"math"
	"testing"

	"github.com/ic-timon/randnpy/npy"
)

func TestPlan_Arithmetic(t *testing.T) {
	tests := []struct {
		name         string
		total, file  int64
		dtype        npy.DType
		wantFiles    int
		wantElements int
	}{
		{"100MiB in 49MiB float32", 100 * MiB, 49 * MiB, npy.Float32, 3, 12_845_056},
		{"default", 2 * GiB, 49 * MiB, npy.Float32, 42, 12_845_056},
		{"exact multiple", 4 * MiB, 1 * MiB, npy.Float32, 4, 262_144},
		{"remainder bytes unused", 10, 10, npy.Float32, 1, 2},
		{"float64", 100, 30, npy.Float64, 4, 3},
		{"file larger than total", 1, 64, npy.Float64, 1, 8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{TotalSize: tt.total, FileSize: tt.file, DType: tt.dtype, Min: -1, Max: 1}
			p, err := cfg.Plan()
			if err != nil {
				t.Fatal(err)
			}
			if p.NumFiles != tt.wantFiles {
				t.Errorf("NumFiles: got %d want %d", p.NumFiles, tt.wantFiles)
			}
			if p.ElementsPerFile != tt.wantElements {
				t.Errorf("ElementsPerFile: got %d want %d", p.ElementsPerFile, tt.wantElements)
			}
			if p.NominalBytes != int64(tt.wantFiles)*tt.file {
				t.Errorf("NominalBytes: got %d", p.NominalBytes)
			}
			if p.DataBytes() > tt.file {
				t.Errorf("data bytes %d exceed file size %d", p.DataBytes(), tt.file)
			}
		})
	}
}

func TestPlan_FileNames(t *testing.T) {
	p := newPlan(3, 1, 1, 0)
	if got := p.Paths("out"); got[0] != "out/file_000.npy" || got[2] != "out/file_002.npy" {
		t.Errorf("start 0: %v", got)
	}

	p = newPlan(3, 1, 1, 42)
	want := []string{"file_042.npy", "file_043.npy", "file_044.npy"}
	for k, w := range want {
		if got := p.FileName(p.StartIndex + k); got != w {
			t.Errorf("start 42, k=%d: got %s want %s", k, got, w)
		}
	}
	if p.LastIndex() != 44 {
		t.Errorf("LastIndex: got %d", p.LastIndex())
	}

	// past 999 the padding widens so names keep sorting in index order
	p = newPlan(3, 1, 1, 998)
	got := p.Paths("")
	if got[0] != "file_0998.npy" || got[2] != "file_1000.npy" {
		t.Errorf("wide: %v", got)
	}
	if !(got[0] < got[1] && got[1] < got[2]) {
		t.Errorf("names out of order: %v", got)
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{TotalSize: 100, FileSize: 10, DType: npy.Float32, OutputDir: "x", Min: -1, Max: 1}
	}
	if err := valid().Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(c *Config)
		want   error
	}{
		{"zero file size", func(c *Config) { c.FileSize = 0 }, ErrInvalidSize},
		{"negative total", func(c *Config) { c.TotalSize = -1 }, ErrInvalidSize},
		{"file smaller than element", func(c *Config) { c.FileSize = 3 }, ErrInvalidSize},
		{"min equals max", func(c *Config) { c.Min, c.Max = 5, 5 }, ErrInvalidRange},
		{"min above max", func(c *Config) { c.Min, c.Max = 2, 1 }, ErrInvalidRange},
		{"nan", func(c *Config) { c.Max = math.NaN() }, ErrInvalidRange},
		{"infinite span", func(c *Config) { c.DType = npy.Float64; c.Min, c.Max = -math.MaxFloat64, math.MaxFloat64 }, ErrInvalidRange},
		{"float32 overflow", func(c *Config) { c.Max = 1e39 }, ErrInvalidRange},
		{"collapses in float32", func(c *Config) { c.Min, c.Max = 1, 1+1e-12 }, ErrInvalidRange},
		{"zero range", func(c *Config) { c.Min, c.Max = 0, 0 }, ErrInvalidRange},
		{"max int64 total", func(c *Config) { c.TotalSize = math.MaxInt64 }, ErrInvalidSize},
		{"too many files", func(c *Config) { c.TotalSize, c.FileSize = 1<<62, 4 }, ErrInvalidSize},
		{"file count limit", func(c *Config) { c.TotalSize, c.FileSize = (MaxFiles+1)*4, 4 }, ErrInvalidSize},
		{"nominal bytes overflow", func(c *Config) { c.TotalSize, c.FileSize = math.MaxInt64, 1<<62 }, ErrInvalidSize},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			if err := c.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("got %v want %v", err, tt.want)
			}
		})
	}

	c := valid()
	c.DType = 0
	if err := c.Validate(); err == nil {
		t.Error("unknown dtype accepted")
	}
	c = valid()
	c.StartIndex = -1
	if err := c.Validate(); err == nil {
		t.Error("negative start index accepted")
	}
	c = valid()
	c.StartIndex = math.MaxInt
	if err := c.Validate(); err == nil {
		t.Error("start index overflowing the file index accepted")
	}
	c = valid()
	c.TotalSize, c.FileSize = MaxFiles*4, 4
	if err := c.Validate(); err != nil {
		t.Errorf("config at the file count limit rejected: %v", err)
	}
}

func TestNumFiles_Large(t *testing.T) {
	tests := []struct {
		total, file int64
		want        int64
	}{
		{math.MaxInt64, 1, math.MaxInt64},
		{math.MaxInt64, 2, 1 << 62},
		{math.MaxInt64, math.MaxInt64, 1},
		{math.MaxInt64 - 1, math.MaxInt64, 1},
		{1 << 62, 4, 1 << 60},
	}
	for _, tt := range tests {
		if got := NumFiles(tt.total, tt.file); got != tt.want {
			t.Errorf("NumFiles(%d, %d) = %d, want %d", tt.total, tt.file, got, tt.want)
		}
	}
}

func TestOrDefault(t *testing.T) {
	var nilCfg *Config
	if got := nilCfg.OrDefault(); got.FileSize != 49*MiB || got.TotalSize != 2*GiB {
		t.Errorf("nil config: %+v", got)
	}
	c := (&Config{TotalSize: 1, FileSize: 4}).OrDefault()
	if c.DType != npy.Float32 || c.OutputDir != "output_npy_files" {
		t.Errorf("defaults not applied: %+v", c)
	}
	if c.Min != 0 || c.Max != 0 {
		t.Errorf("zero range replaced: [%g, %g)", c.Min, c.Max)
	}
	c = (&Config{FileSize: 0}).OrDefault()
	if c.FileSize != 0 {
		t.Error("OrDefault must not hide a zero file size")
	}
}

func TestResolved_LeavesCallerUntouched(t *testing.T) {
	var nilCfg *Config
	if got := nilCfg.Resolved(); got != *DefaultConfig() {
		t.Errorf("nil config: %+v", got)
	}
	orig := &Config{TotalSize: 100, FileSize: 10}
	got := orig.Resolved()
	if got.DType != npy.Float32 || got.OutputDir != "output_npy_files" {
		t.Errorf("defaults not applied: %+v", got)
	}
	if *orig != (Config{TotalSize: 100, FileSize: 10}) {
		t.Errorf("caller config modified: %+v", orig)
	}
}
