package generator

import (
	"math"
	"testing"
)

func TestFill_Bounds(t *testing.T) {
	rng := NewRand(42)
	buf := make([]float32, 100_000)
	Fill(rng, buf, -1000, 1000)
	var neg, pos int
	for i, v := range buf {
		if v < -1000 || v >= 1000 {
			t.Fatalf("value %d out of range: %g", i, v)
		}
		if v < 0 {
			neg++
		} else {
			pos++
		}
	}
	// a uniform sample splits roughly evenly around the midpoint
	if neg < 45_000 || pos < 45_000 {
		t.Errorf("skewed sample: %d negative, %d non-negative", neg, pos)
	}
}

func TestFill_NeverReachesUpperBound(t *testing.T) {
	// the range holds exactly one float32, so every draw must equal lo
	lo := float32(1)
	hi := math.Nextafter32(lo, 2)
	buf := make([]float32, 10_000)
	Fill(NewRand(7), buf, lo, hi)
	for i, v := range buf {
		if v != lo {
			t.Fatalf("value %d: got %g want %g", i, v, lo)
		}
	}

	buf64 := make([]float64, 10_000)
	Fill(NewRand(7), buf64, 0, 1e-300)
	for i, v := range buf64 {
		if v < 0 || v >= 1e-300 {
			t.Fatalf("float64 value %d out of range: %g", i, v)
		}
	}
}

func TestFill_Deterministic(t *testing.T) {
	a := make([]float64, 64)
	b := make([]float64, 64)
	Fill(NewRand(99), a, -5, 5)
	Fill(NewRand(99), b, -5, 5)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("element %d differs: %g vs %g", i, a[i], b[i])
		}
	}
	Fill(NewRand(100), b, -5, 5)
	same := true
	for i := range a {
		if a[i] != b[i] {
			same = false
		}
	}
	if same {
		t.Error("different seeds produced identical arrays")
	}
}
