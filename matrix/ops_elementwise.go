// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Provide small, private element-wise and broadcast kernels (ew*) shared by
//     the statistics layer and the comparison facade.
//
// Determinism & Performance:
//   - Fixed loop orders (i→j or flat 0..n-1) over row-major buffers.
//   - No hidden allocations beyond the output Dense; O(r*c) time and space.

package matrix

import "math"

// ewBroadcastSubCols computes out[i,j] = X[i,j] - colMeans[j].
// Time: O(r*c). Space: O(r*c).
func ewBroadcastSubCols(X Matrix, colMeans []float64) (*Dense, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, matrixErrorf("broadcastSubCols", err)
	}
	if len(colMeans) != X.Cols() {
		return nil, matrixErrorf("broadcastSubCols", ErrDimensionMismatch)
	}
	src, fresh, err := asDense(X)
	if err != nil {
		return nil, matrixErrorf("broadcastSubCols", err)
	}
	out := src
	if !fresh {
		out = src.Copy()
	}
	var i, j int
	for i = 0; i < out.r; i++ {
		base := i * out.c
		for j = 0; j < out.c; j++ {
			out.data[base+j] -= colMeans[j]
		}
	}

	return out, nil
}

// ewScaleCols computes out[i,j] = X[i,j] * scale[j].
// Time: O(r*c). Space: O(r*c).
func ewScaleCols(X Matrix, scale []float64) (*Dense, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, matrixErrorf("scaleCols", err)
	}
	if len(scale) != X.Cols() {
		return nil, matrixErrorf("scaleCols", ErrDimensionMismatch)
	}
	src, fresh, err := asDense(X)
	if err != nil {
		return nil, matrixErrorf("scaleCols", err)
	}
	out := src
	if !fresh {
		out = src.Copy()
	}
	var i, j int
	for i = 0; i < out.r; i++ {
		base := i * out.c
		for j = 0; j < out.c; j++ {
			out.data[base+j] *= scale[j]
		}
	}

	return out, nil
}

// ewAllClose checks element-wise |a-b| ≤ atol + rtol*|b| for identical shapes.
//
// Policy:
//   - a and b must be non-nil and have identical shapes.
//   - rtol, atol are treated as |rtol|, |atol|; NaN/Inf tolerances are rejected.
//   - A NaN cell on either side never satisfies the relation; an infinity only matches itself.
func ewAllClose(a, b Matrix, rtol, atol float64) (bool, error) {
	if isNonFinite(rtol) || isNonFinite(atol) {
		return false, matrixErrorf("AllClose", ErrNaNInf)
	}
	rtol, atol = math.Abs(rtol), math.Abs(atol)
	if err := ValidateBinarySameShape(a, b); err != nil {
		return false, matrixErrorf("AllClose", err)
	}
	da, _, err := asDense(a)
	if err != nil {
		return false, matrixErrorf("AllClose", err)
	}
	db, _, err := asDense(b)
	if err != nil {
		return false, matrixErrorf("AllClose", err)
	}
	for idx, av := range da.data {
		bv := db.data[idx]
		if av == bv {
			continue // covers equal infinities
		}
		if math.IsInf(av, 0) || math.IsInf(bv, 0) {
			return false, nil
		}
		if !(math.Abs(av-bv) <= atol+rtol*math.Abs(bv)) {
			return false, nil
		}
	}

	return true, nil
}
