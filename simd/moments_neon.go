//go:build arm64 && cgo

package simd

/*
#cgo CFLAGS: -O3
#include <arm_neon.h>
#include <stddef.h>

static void MomentsNEON(const float* a, size_t n, double* sum, double* sumsq) {
	float64x2_t s0 = vdupq_n_f64(0.0), s1 = vdupq_n_f64(0.0);
	float64x2_t q0 = vdupq_n_f64(0.0), q1 = vdupq_n_f64(0.0);
	size_t i = 0;
	for (; i + 4 <= n; i += 4) {
		float32x4_t v = vld1q_f32(a + i);
		float64x2_t lo = vcvt_f64_f32(vget_low_f32(v));
		float64x2_t hi = vcvt_high_f64_f32(v);
		s0 = vaddq_f64(s0, lo);
		s1 = vaddq_f64(s1, hi);
		q0 = vfmaq_f64(q0, lo, lo);
		q1 = vfmaq_f64(q1, hi, hi);
	}
	double s = vaddvq_f64(vaddq_f64(s0, s1));
	double q = vaddvq_f64(vaddq_f64(q0, q1));
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

func momentsNEON(a []float32) (sum, sumSq float64) {
	n := len(a)
	if n == 0 {
		return 0, 0
	}
	var s, q C.double
	C.MomentsNEON((*C.float)(unsafe.Pointer(&a[0])), C.size_t(n), &s, &q)
	return float64(s), float64(q)
}
