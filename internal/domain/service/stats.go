package service

import "math"

// meanStdDev returns the population mean and standard deviation of xs.
func meanStdDev(xs []float64) (mean, stddev float64) {
	if len(xs) == 0 {
		return 0, 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	mean = sum / float64(len(xs))

	var sq float64
	for _, x := range xs {
		diff := x - mean
		sq += diff * diff
	}
	return mean, math.Sqrt(sq / float64(len(xs)))
}

// clamp bounds x to [lo, hi].
func clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}

// clampScore rounds x half away from zero and bounds it to [0, 100].
func clampScore(x float64) int {
	if math.IsNaN(x) {
		return 0
	}
	return int(math.Round(clamp(x, 0, 100)))
}

// ratio returns part/whole, or 0 when whole is zero.
func ratio(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) / float64(whole)
}
