package sampling

import "math"

// DailyHazard converts a window probability p over n days into the constant
// daily hazard h satisfying 1-(1-h)^n = p, i.e. independent daily trials at
// rate h integrate to exactly p over the window.
//
// Computed as h = -expm1(log1p(-p)/n) for numerical stability as p
// approaches 1; the naive 1-(1-p)^(1/n) loses precision there. The result is
// clamped to [0,1] against floating-point overshoot, which is a precision
// artifact and not a semantic error.
func DailyHazard(p float64, n int) float64 {
	if p >= 1 {
		return 1
	}
	if p <= 0 {
		return 0
	}
	if n <= 1 {
		return p
	}
	h := -math.Expm1(math.Log1p(-p) / float64(n))
	return clamp01(h)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
