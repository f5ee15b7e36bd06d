package simd

import (
	"math"
	"math/rand"
	"testing"
)

func randomSlice(n int, seed int64) []float32 {
	rng := rand.New(rand.NewSource(seed))
	v := make([]float32, n)
	for i := range v {
		v[i] = rng.Float32()*2000 - 1000
	}
	return v
}

func naiveMoments(a []float32) (sum, sumSq float64) {
	for _, x := range a {
		sum += float64(x)
		sumSq += float64(x) * float64(x)
	}
	return sum, sumSq
}

// approxEqual compares sums whose rounding error scales with the sum of magnitudes
// rather than with the (possibly cancelled) result.
func approxEqual(a, b, scale float64) bool {
	return math.Abs(a-b) <= 1e-9*math.Max(1, scale)
}

func TestMoments_MatchesNaive(t *testing.T) {
	// odd lengths exercise the scalar tails of every kernel
	for _, n := range []int{1, 3, 4, 7, 8, 9, 1023, 100_000} {
		a := randomSlice(n, int64(n))
		ws, wq := naiveMoments(a)
		var abs float64
		for _, x := range a {
			abs += math.Abs(float64(x))
		}
		for name, fn := range map[string]func([]float32) (float64, float64){
			"auto": Moments,
			"go":   momentsGo,
		} {
			s, q := fn(a)
			if !approxEqual(s, ws, abs) || !approxEqual(q, wq, wq) {
				t.Errorf("%s n=%d: got (%g, %g) want (%g, %g)", name, n, s, q, ws, wq)
			}
		}
	}
}

func TestMoments_Empty(t *testing.T) {
	if s, q := Moments(nil); s != 0 || q != 0 {
		t.Errorf("empty: got (%g, %g)", s, q)
	}
	if ImplDesc() == "" {
		t.Error("ImplDesc should not be empty")
	}
}

func TestMoments64(t *testing.T) {
	s, q := Moments64([]float64{1, -2, 3})
	if s != 2 || q != 14 {
		t.Errorf("got (%g, %g) want (2, 14)", s, q)
	}
}

func TestMinMax(t *testing.T) {
	lo, hi := MinMax([]float32{3, -7.5, 2, 9})
	if lo != -7.5 || hi != 9 {
		t.Errorf("got (%g, %g)", lo, hi)
	}
	lo, hi = MinMax(nil)
	if !math.IsInf(float64(lo), 1) || !math.IsInf(float64(hi), -1) {
		t.Errorf("empty: got (%g, %g)", lo, hi)
	}
	lo64, hi64 := MinMax64([]float64{0.5, -0.25})
	if lo64 != -0.25 || hi64 != 0.5 {
		t.Errorf("float64: got (%g, %g)", lo64, hi64)
	}
}

func BenchmarkMoments_Go(b *testing.B) {
	a := randomSlice(1<<20, 42)
	b.SetBytes(int64(len(a) * 4))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = momentsGo(a)
	}
}

func BenchmarkMoments_Auto(b *testing.B) {
	a := randomSlice(1<<20, 42)
	b.SetBytes(int64(len(a) * 4))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = Moments(a)
	}
}
