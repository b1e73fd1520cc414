// SPDX-License-Identifier: MIT

package pca

import "math"

// meanDeviation returns the weighted mean and population standard deviation
// of values with the given multiplicities (total = Σ counts). twoPass reports
// that the König-Huygens variance was not usable and the centred sum of
// squares was taken instead.
func meanDeviation(values []float64, counts []int, total int) (mean, dev float64, twoPass bool) {
	n := float64(total)
	var s, s2 float64
	for i, v := range values {
		w := float64(counts[i])
		s += w * v
		s2 += w * v * v
	}
	mean = s / n

	variance := s2/n - mean*mean
	if !math.IsNaN(variance) && !math.IsInf(variance, 0) && variance >= 0 {
		return mean, math.Sqrt(variance), false
	}

	var acc float64
	for i, v := range values {
		d := v - mean
		acc += float64(counts[i]) * d * d
	}

	return mean, math.Sqrt(acc / n), true
}
