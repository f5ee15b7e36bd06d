// Package simd provides AVX2 and NEON accelerated reductions over float32
// arrays. The implementation is selected at init based on GOARCH, CGO
// availability and CPU features; the pure Go version is always available.
package simd

import "math"

var (
	momentsImpl     func(a []float32) (sum, sumSq float64)
	momentsImplDesc string
)

func init() {
	// Default; dispatch files override in init() based on GOARCH and CGO.
	if momentsImpl == nil {
		momentsImpl = momentsGo
		momentsImplDesc = "Go"
	}
}

// Moments returns the sum and the sum of squares of a, accumulated in float64.
func Moments(a []float32) (sum, sumSq float64) {
	if len(a) == 0 {
		return 0, 0
	}
	return momentsImpl(a)
}

// ImplDesc returns a description of the selected Moments implementation (for logging).
func ImplDesc() string {
	if momentsImplDesc != "" {
		return momentsImplDesc
	}
	return "Go"
}

// momentsGo is the pure Go implementation (4-way unroll).
func momentsGo(a []float32) (sum, sumSq float64) {
	var s0, s1, q0, q1 float64
	i := 0
	for ; i+4 <= len(a); i += 4 {
		x0, x1 := float64(a[i]), float64(a[i+1])
		x2, x3 := float64(a[i+2]), float64(a[i+3])
		s0 += x0 + x1
		s1 += x2 + x3
		q0 += x0*x0 + x1*x1
		q1 += x2*x2 + x3*x3
	}
	for ; i < len(a); i++ {
		x := float64(a[i])
		s0 += x
		q0 += x * x
	}
	return s0 + s1, q0 + q1
}

// Moments64 is Moments for float64 arrays.
func Moments64(a []float64) (sum, sumSq float64) {
	for _, x := range a {
		sum += x
		sumSq += x * x
	}
	return sum, sumSq
}

// MinMax returns the smallest and largest element of a. It returns
// (+Inf, -Inf) for an empty slice.
func MinMax(a []float32) (lo, hi float32) {
	lo, hi = float32(math.Inf(1)), float32(math.Inf(-1))
	for _, x := range a {
		if x < lo {
			lo = x
		}
		if x > hi {
			hi = x
		}
	}
	return lo, hi
}

// MinMax64 is MinMax for float64 arrays.
func MinMax64(a []float64) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, x := range a {
		if x < lo {
			lo = x
		}
		if x > hi {
			hi = x
		}
	}
	return lo, hi
}
