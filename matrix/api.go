// SPDX-License-Identifier: MIT
// Package matrix — public API facades.
//
// Purpose:
//   - Provide thin entry points for common tasks across the package.
//   - Each facade delegates to the canonical implementation; no loop duplication.
//
// Determinism & Policy:
//   - Facades never change the loop orders or numeric policy of underlying kernels.
//   - Validation is performed in the kernels; facades only compose or forward.
//
// AI-Hints:
//   - Prefer passing *Dense to unlock fast-paths in kernels (flat-slice loops).
//   - Use NewIdentity/NewZeros to build matrices with explicit shape and neutral elements.

package matrix

// ---------- Constructors & Utilities ----------

// NewZeros returns a new zero-initialized *Dense of size rows×cols.
// It is a thin alias of NewDense with an intention-revealing name.
func NewZeros(rows, cols int) (*Dense, error) {
	return NewDense(rows, cols)
}

// NewIdentity returns I_n (n×n identity; ones on the diagonal, zeros elsewhere).
// Complexity: O(n^2) zeroing + O(n) diagonal writes.
func NewIdentity(n int) (*Dense, error) {
	id, err := NewDense(n, n)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		id.data[i*n+i] = 1.0
	}

	return id, nil
}

// ---------- Convenience facades (compositions only) ----------

// Symmetrize returns (m + mᵀ)/2. Composition: Transpose → Add → Scale.
//
// AI-Hints: Repairs rounding drift before spectral methods and Cholesky.
func Symmetrize(m Matrix) (Matrix, error) {
	mt, err := Transpose(m)
	if err != nil {
		return nil, matrixErrorf("Symmetrize", err)
	}
	sum, err := Add(m, mt)
	if err != nil {
		return nil, matrixErrorf("Symmetrize", err)
	}

	return Scale(sum, 0.5)
}

// RowSums returns vector r where r[i] = sum_j m[i,j].
// Implementation: MatVec(m, ones(cols)).
func RowSums(m Matrix) ([]float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf("RowSums", err)
	}

	return MatVec(m, ones(m.Cols()))
}

// ColSums returns vector c where c[j] = sum_i m[i,j].
// Implementation: Transpose then MatVec with ones(rows).
func ColSums(m Matrix) ([]float64, error) {
	mt, err := Transpose(m)
	if err != nil {
		return nil, matrixErrorf("ColSums", err)
	}

	return MatVec(mt, ones(mt.Cols()))
}

func ones(n int) []float64 {
	v := make([]float64, n)
	for i := range v {
		v[i] = 1.0
	}

	return v
}

// AllClose checks element-wise |a-b| ≤ atol + rtol*|b| for identical shapes.
// Returns (true,nil) if all elements satisfy the relation; (false,nil) otherwise.
// NaN != anything; +Inf equals +Inf; -Inf equals -Inf.
//
// AI-Hints:
//   - AllClose with small atol/rtol is ideal for invariance tests.
func AllClose(a, b Matrix, rtol, atol float64) (bool, error) {
	return ewAllClose(a, b, rtol, atol)
}

// ---------- Statistics ----------

// CenterColumnsCopy returns a centred copy Xc = X − mean(X, by columns) and the
// column means (length = Cols(X)). X is not modified; see Dense.CenterColumns
// for the in-place variant.
func CenterColumnsCopy(X Matrix) (Matrix, []float64, error) { return centerColumns(X) }

// Covariance returns the column covariance (Xcᵀ Xc)/r (population, divided by the
// row count) and the column means. It equals Dense.MakeCovariance up to rounding.
func Covariance(X Matrix) (Matrix, []float64, error) { return covariance(X) }

// Correlation returns Pearson correlation of columns (population deviations),
// the means and the deviations. A constant column yields a zero row/column.
func Correlation(X Matrix) (Matrix, []float64, []float64, error) { return correlation(X) }
