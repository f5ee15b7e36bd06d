package generator

import (
	"math"
	"math/rand/v2"
	"unsafe"

	"golang.org/x/exp/constraints"
)

// NewRand returns the PCG source used for a run.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Fill overwrites dst with values drawn independently and uniformly from
// [lo, hi). Values that round up to hi in T are pulled back to the largest
// T below hi.
func Fill[T constraints.Float](rng *rand.Rand, dst []T, lo, hi T) {
	base := float64(lo)
	span := float64(hi) - base
	below := prevFloat(hi)
	for i := range dst {
		v := T(base + span*rng.Float64())
		if v >= hi {
			v = below
		}
		dst[i] = v
	}
}

func prevFloat[T constraints.Float](x T) T {
	if unsafe.Sizeof(x) == 4 {
		return T(math.Nextafter32(float32(x), float32(math.Inf(-1))))
	}
	return T(math.Nextafter(float64(x), math.Inf(-1)))
}
