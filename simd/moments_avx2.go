//go:build amd64 && cgo

package simd

/*
#cgo CFLAGS: -mavx2 -O3
#include <immintrin.h>
#include <stddef.h>

static double horizontal_sum_m256d(__m256d v) {
	__m128d lo = _mm256_castpd256_pd128(v);
	__m128d hi = _mm256_extractf128_pd(v, 1);
	lo = _mm_add_pd(lo, hi);
	return _mm_cvtsd_f64(_mm_add_sd(lo, _mm_unpackhi_pd(lo, lo)));
}

static void MomentsAVX2(const float* a, size_t n, double* sum, double* sumsq) {
	__m256d s0 = _mm256_setzero_pd(), s1 = _mm256_setzero_pd();
	__m256d q0 = _mm256_setzero_pd(), q1 = _mm256_setzero_pd();
	size_t i = 0;
	for (; i + 8 <= n; i += 8) {
		__m256 v = _mm256_loadu_ps(a + i);
		__m256d lo = _mm256_cvtps_pd(_mm256_castps256_ps128(v));
		__m256d hi = _mm256_cvtps_pd(_mm256_extractf128_ps(v, 1));
		s0 = _mm256_add_pd(s0, lo);
		s1 = _mm256_add_pd(s1, hi);
		q0 = _mm256_add_pd(q0, _mm256_mul_pd(lo, lo));
		q1 = _mm256_add_pd(q1, _mm256_mul_pd(hi, hi));
	}
	double s = horizontal_sum_m256d(_mm256_add_pd(s0, s1));
	double q = horizontal_sum_m256d(_mm256_add_pd(q0, q1));
	for (; i < n; i++) {
		double x = a[i];
		s += x;
		q += x * x;
	}
	*sum = s;
	*sumsq = q;
}
*/
import "C"

import "unsafe"

func momentsAVX2(a []float32) (sum, sumSq float64) {
	n := len(a)
	if n == 0 {
		return 0, 0
	}
	var s, q C.double
	C.MomentsAVX2((*C.float)(unsafe.Pointer(&a[0])), C.size_t(n), &s, &q)
	return float64(s), float64(q)
}
