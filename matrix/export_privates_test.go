// SPDX-License-Identifier: MIT

package matrix

// Test bridge: exposes unexported ew* kernels to matrix_test so the *Dense
// fast path and the At-based fallback can be compared directly. Being a
// _test.go file, none of this reaches production builds.

// EwBroadcastSubCols_TestOnly forwards to ewBroadcastSubCols.
func EwBroadcastSubCols_TestOnly(X Matrix, colMeans []float64) (*Dense, error) {
	return ewBroadcastSubCols(X, colMeans)
}

// EwScaleCols_TestOnly forwards to ewScaleCols.
func EwScaleCols_TestOnly(X Matrix, scale []float64) (*Dense, error) {
	return ewScaleCols(X, scale)
}

// EwAllClose_TestOnly forwards to ewAllClose.
func EwAllClose_TestOnly(a, b Matrix, rtol, atol float64) (bool, error) {
	return ewAllClose(a, b, rtol, atol)
}

// MaxOffDiagonal_TestOnly forwards to the Jacobi pivot search.
func MaxOffDiagonal_TestOnly(a *Dense) (float64, int, int) {
	return maxOffDiagonal(a)
}
