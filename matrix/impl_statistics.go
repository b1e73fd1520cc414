// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Provide the column statistics the models build on (centering, population
//     covariance, population correlation) as compositions of the canonical
//     kernels (Mul/Transpose/Scale) and ew* micro-kernels.
//
// Exposed API (see api.go):
//   - CenterColumnsCopy(X) -> (Xc, means)        // subtract per-column mean, X untouched
//   - Covariance(X)        -> (Cov, means)       // (Xcᵀ Xc)/r, biased estimator
//   - Correlation(X)       -> (Corr, means, σ)   // z-scored columns, σ==0 → zeroed column
//
// Determinism:
//   - Fixed i→j traversal; Dense operands are read through flat buffers.

package matrix

import "math"

// Operation name constants for unified error wrapping.
const (
	opCenterColumns = "CenterColumns"
	opCovariance    = "Covariance"
	opCorrelation   = "Correlation"
)

// centerColumns returns a centred copy of X together with its column means.
//
// Implementation:
//   - Stage 1: Validate X (non-nil).
//   - Stage 2: column means in a single i→j pass.
//   - Stage 3: ewBroadcastSubCols produces the centred copy.
//
// Complexity: Time O(r*c), Space O(r*c).
func centerColumns(X Matrix) (*Dense, []float64, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, nil, matrixErrorf(opCenterColumns, err)
	}
	d, _, err := asDense(X)
	if err != nil {
		return nil, nil, matrixErrorf(opCenterColumns, err)
	}
	means := d.columnMeans()
	xc, err := ewBroadcastSubCols(d, means)
	if err != nil {
		return nil, nil, matrixErrorf(opCenterColumns, err)
	}

	return xc, means, nil
}

// covariance computes Cov = (Xcᵀ Xc)/r over the rows of X.
// A single observation is accepted and yields a zero matrix.
//
// Errors:
//   - ErrNilMatrix, wrapped kernel errors.
//
// Notes:
//   - The product is symmetrized exactly so that Cov[i,j] == Cov[j,i] bit for bit.
func covariance(X Matrix) (Matrix, []float64, error) {
	xc, means, err := centerColumns(X)
	if err != nil {
		return nil, nil, matrixErrorf(opCovariance, err)
	}
	xct, err := Transpose(xc)
	if err != nil {
		return nil, nil, matrixErrorf(opCovariance, err)
	}
	g, err := Mul(xct, xc)
	if err != nil {
		return nil, nil, matrixErrorf(opCovariance, err)
	}
	cov, err := Scale(g, 1.0/float64(xc.r))
	if err != nil {
		return nil, nil, matrixErrorf(opCovariance, err)
	}
	mirrorUpper(cov.(*Dense))

	return cov, means, nil
}

// correlation computes Pearson correlation of columns with population deviations:
// Corr = (Zᵀ Z)/r, Z = (X − mean)·diag(1/σ). A column with σ == 0 becomes zero.
func correlation(X Matrix) (Matrix, []float64, []float64, error) {
	xc, means, err := centerColumns(X)
	if err != nil {
		return nil, nil, nil, matrixErrorf(opCorrelation, err)
	}
	r, c := xc.r, xc.c
	stds := make([]float64, c)
	var i, j int
	var v float64
	for i = 0; i < r; i++ {
		base := i * c
		for j = 0; j < c; j++ {
			v = xc.data[base+j]
			stds[j] += v * v
		}
	}
	invStd := make([]float64, c)
	for j = 0; j < c; j++ {
		stds[j] = math.Sqrt(stds[j] / float64(r))
		if stds[j] > 0 {
			invStd[j] = 1.0 / stds[j]
		}
	}
	z, err := ewScaleCols(xc, invStd)
	if err != nil {
		return nil, nil, nil, matrixErrorf(opCorrelation, err)
	}
	zt, err := Transpose(z)
	if err != nil {
		return nil, nil, nil, matrixErrorf(opCorrelation, err)
	}
	g, err := Mul(zt, z)
	if err != nil {
		return nil, nil, nil, matrixErrorf(opCorrelation, err)
	}
	corr, err := Scale(g, 1.0/float64(r))
	if err != nil {
		return nil, nil, nil, matrixErrorf(opCorrelation, err)
	}
	mirrorUpper(corr.(*Dense))

	return corr, means, stds, nil
}

// mirrorUpper copies the upper triangle of a square Dense onto the lower one.
func mirrorUpper(d *Dense) {
	n := d.r
	var i, j int
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ {
			d.data[j*n+i] = d.data[i*n+j]
		}
	}
}
