package npy

import (
	"fmt"
	"strings"
)

// DType is a fixed-width floating-point element type.
type DType uint8

const (
	Float32 DType = iota + 1
	Float64
)

// Size returns the element width in bytes.
func (d DType) Size() int {
	switch d {
	case Float32:
		return 4
	case Float64:
		return 8
	}
	return 0
}

// Descr returns the NumPy type descriptor, e.g. "<f4".
func (d DType) Descr() string {
	switch d {
	case Float32:
		return "<f4"
	case Float64:
		return "<f8"
	}
	return ""
}

func (d DType) String() string {
	switch d {
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	}
	return fmt.Sprintf("DType(%d)", uint8(d))
}

// Valid reports whether d is a known element type.
func (d DType) Valid() bool {
	return d == Float32 || d == Float64
}

// ParseDType accepts Go names ("float32"), NumPy names ("f4", "<f4") and
// the "single"/"double" aliases.
func ParseDType(s string) (DType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "float32", "f4", "<f4", "single":
		return Float32, nil
	case "float64", "f8", "<f8", "double":
		return Float64, nil
	}
	return 0, fmt.Errorf("unsupported dtype %q", s)
}

// dtypeFromDescr maps a header descr back to a DType. Only little-endian
// floats are accepted.
func dtypeFromDescr(descr string) (DType, error) {
	switch descr {
	case "<f4":
		return Float32, nil
	case "<f8":
		return Float64, nil
	}
	return 0, fmt.Errorf("%w: descr %q", ErrDTypeMismatch, descr)
}
