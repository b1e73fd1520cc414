// SPDX-License-Identifier: MIT

package pca

// MeanDeviation exposes the per-feature estimator to pca_test.
func MeanDeviation(values []float64, counts []int) (mean, dev float64, twoPass bool) {
	total := 0
	for _, c := range counts {
		total += c
	}

	return meanDeviation(values, counts, total)
}
