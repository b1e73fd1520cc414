// SPDX-License-Identifier: MIT
// Package matrix provides universal operations on any Matrix implementation:
// element-wise addition and subtraction, matrix multiplication, transposition,
// scaling, matrix-vector products and the decompositions used by the
// statistical models (Jacobi eigen-solver, Doolittle LU, inverse, determinant).
//
// Purpose:
//   - Declare the canonical linear-algebra kernels used across the module.
//   - Define operation tags and shared constants for error reporting.
//
// Notes:
//   - All kernels validate through the central validators and wrap failures via matrixErrorf.
//   - *Dense operands take a flat-slice path; any other Matrix is materialized once
//     through asDense (At-based copy) so that every kernel has a single numeric core.
//   - Arithmetic is plain IEEE-754: NaN and Inf propagate, nothing is skipped.

package matrix

import (
	"errors"
	"fmt"
	"math"
)

// ZeroSum is the initial value of every accumulator in this file.
const ZeroSum = 0.0

// ZeroPivot is the sentinel for detecting a zero pivot in LU/Inverse routines.
const ZeroPivot = 0.0

// Operation name constants for unified error wrapping.
const (
	opAdd         = "Add"
	opSub         = "Sub"
	opMul         = "Mul"
	opTranspose   = "Transpose"
	opScale       = "Scale"
	opEigen       = "Eigen"
	opInverse     = "Inverse"
	opLU          = "LU"
	opDeterminant = "Determinant"
	opMatVec      = "MatVec"
)

// matrixErrorf wraps err with an operation tag, preserving the sentinel via %w.
// The result formats as "<tag>: <underlying>". Call only with a non-nil err.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// asDense returns m itself when it is a *Dense, otherwise a Dense copy built through At.
// The copy is never written back, so callers may mutate it freely only when it is fresh.
func asDense(m Matrix) (*Dense, bool, error) {
	if d, ok := m.(*Dense); ok {
		return d, false, nil
	}
	rows, cols := m.Rows(), m.Cols()
	out, err := NewDense(rows, cols)
	if err != nil {
		return nil, false, err
	}
	var i, j int
	var v float64
	for i = 0; i < rows; i++ {
		for j = 0; j < cols; j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, false, fmt.Errorf("At(%d,%d): %w", i, j, err)
			}
			out.data[i*cols+j] = v
		}
	}

	return out, true, nil
}

// addSub computes out = a + sign*b for sign ∈ {+1, -1} into a fresh Dense.
//
// Implementation:
//   - Stage 1: ValidateBinarySameShape(a, b); materialize operands as Dense.
//   - Stage 2: single flat loop 0..n-1.
//
// Complexity: Time O(r*c), Space O(r*c).
func addSub(a, b Matrix, sign float64, opTag string) (Matrix, error) {
	if err := ValidateBinarySameShape(a, b); err != nil {
		return nil, matrixErrorf(opTag, err)
	}
	da, _, err := asDense(a)
	if err != nil {
		return nil, matrixErrorf(opTag, err)
	}
	db, _, err := asDense(b)
	if err != nil {
		return nil, matrixErrorf(opTag, err)
	}
	res, err := NewDense(a.Rows(), a.Cols())
	if err != nil {
		return nil, matrixErrorf(opTag, err)
	}
	for idx := range res.data {
		res.data[idx] = da.data[idx] + sign*db.data[idx]
	}

	return res, nil
}

// Add returns a + b. Errors: ErrNilMatrix, ErrDimensionMismatch.
func Add(a, b Matrix) (Matrix, error) { return addSub(a, b, +1, opAdd) }

// Sub returns a - b. Errors: ErrNilMatrix, ErrDimensionMismatch.
func Sub(a, b Matrix) (Matrix, error) { return addSub(a, b, -1, opSub) }

// Mul computes the standard product C = A×B.
//
// Implementation:
//   - Stage 1: ValidateMulCompatible(a, b) (a.Cols == b.Rows).
//   - Stage 2: i→k→j loop over flat slices; every product is accumulated,
//     including zero factors, so NaN/Inf in B reach C.
//
// Errors:
//   - ErrNilMatrix (nil input), ErrDimensionMismatch (inner mismatch).
//
// Complexity:
//   - Time O(r*n*c), Space O(r*c).
func Mul(a, b Matrix) (Matrix, error) {
	if err := ValidateMulCompatible(a, b); err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	da, _, err := asDense(a)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	db, _, err := asDense(b)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	res, err := NewDense(da.r, db.c)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	mulInto(res.data, da, db)

	return res, nil
}

// mulInto writes da×db into dst (len dst == da.r*db.c); dst must be zeroed.
func mulInto(dst []float64, da, db *Dense) {
	var (
		i, j, k          int
		rowA, rowB, rowR int
		av               float64
	)
	for i = 0; i < da.r; i++ {
		rowA = i * da.c
		rowR = i * db.c
		for k = 0; k < da.c; k++ {
			av = da.data[rowA+k]
			rowB = k * db.c
			for j = 0; j < db.c; j++ {
				dst[rowR+j] += av * db.data[rowB+j]
			}
		}
	}
}

// Transpose returns a new matrix with rows and columns swapped (mᵀ).
// Errors: ErrNilMatrix. Complexity: O(r*c).
func Transpose(m Matrix) (Matrix, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	dm, _, err := asDense(m)
	if err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	res, err := NewDense(dm.c, dm.r)
	if err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	var i, j int
	for i = 0; i < dm.r; i++ {
		base := i * dm.c
		for j = 0; j < dm.c; j++ {
			res.data[j*dm.r+i] = dm.data[base+j]
		}
	}

	return res, nil
}

// Scale returns alpha*m as a fresh Dense.
// alpha = 0 yields an explicit zero matrix unless m holds NaN/Inf.
func Scale(m Matrix, alpha float64) (Matrix, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opScale, err)
	}
	dm, _, err := asDense(m)
	if err != nil {
		return nil, matrixErrorf(opScale, err)
	}
	res, err := NewDense(dm.r, dm.c)
	if err != nil {
		return nil, matrixErrorf(opScale, err)
	}
	for idx, v := range dm.data {
		res.data[idx] = v * alpha
	}

	return res, nil
}

// MatVec computes y = m * x for a column vector x.
//
// Contract: m non-nil; len(x) == m.Cols().
// Determinism: fixed i→j loop order.
// Complexity: Time O(r*c), Space O(r) for y.
func MatVec(m Matrix, x []float64) ([]float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	if err := ValidateVecLen(x, m.Cols()); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	d, _, err := asDense(m)
	if err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	y := make([]float64, d.r)
	var i, j, base int
	var acc float64
	for i = 0; i < d.r; i++ {
		acc = ZeroSum
		base = i * d.c
		for j = 0; j < d.c; j++ {
			acc += d.data[base+j] * x[j]
		}
		y[i] = acc
	}

	return y, nil
}

// Eigen performs the classical Jacobi eigen-decomposition of a symmetric matrix.
// Returns eigenvalues (diagonal order of the converged matrix, unsorted) and Q whose
// columns are the corresponding orthonormal eigenvectors, so that m ≈ Q·diag(λ)·Qᵀ.
//
// Implementation:
//   - Stage 1: ValidateSymmetric(m, tol); an input that IsZeroOffDiagonal within tol
//     returns its diagonal and Q = I without rotating. Otherwise copy m into a working
//     Dense A and set Q = I.
//   - Stage 2: repeat up to maxIter rotations: pick (p,q) maximizing |A[p,q]| (p<q,
//     first found wins on ties); stop when it is <= tol; otherwise annihilate it with
//     θ = (A[q,q]-A[p,p]) / (2A[p,q]), t = sign(θ)/(|θ|+√(θ²+1)), c = 1/√(t²+1), s = t·c,
//     and accumulate the rotation into Q.
//   - Stage 3: verify max off-diagonal <= tol, else ErrMatrixEigenFailed.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (non-square), ErrAsymmetry, ErrMatrixEigenFailed.
//
// Complexity:
//   - Per rotation O(n²) for the pivot search plus O(n) for the update.
func Eigen(m Matrix, tol float64, maxIter int) ([]float64, Matrix, error) {
	if err := ValidateSymmetric(m, tol); err != nil {
		return nil, nil, matrixErrorf(opEigen, err)
	}
	if diag, err := IsZeroOffDiagonal(m, tol); err != nil {
		return nil, nil, matrixErrorf(opEigen, err)
	} else if diag {
		return diagonalEigen(m)
	}
	src, fresh, err := asDense(m)
	if err != nil {
		return nil, nil, matrixErrorf(opEigen, err)
	}
	a := src
	if !fresh {
		a = src.Copy()
	}
	n := a.r
	q, err := NewIdentity(n)
	if err != nil {
		return nil, nil, matrixErrorf(opEigen, err)
	}

	var (
		iter, i, ip, iq int
		maxOff          float64
		app, aqq, apq   float64
		aip, aiq        float64
		qip, qiq        float64
		theta, t, c, s  float64
	)
	for iter = 0; iter < maxIter; iter++ {
		maxOff, ip, iq = maxOffDiagonal(a)
		if maxOff <= tol {
			break
		}
		app = a.data[ip*n+ip]
		aqq = a.data[iq*n+iq]
		apq = a.data[ip*n+iq]
		theta = (aqq - app) / (2 * apq)
		t = math.Copysign(1.0/(math.Abs(theta)+math.Hypot(theta, 1)), theta)
		c = 1.0 / math.Sqrt(t*t+1)
		s = t * c

		for i = 0; i < n; i++ {
			if i == ip || i == iq {
				continue
			}
			aip = a.data[i*n+ip]
			aiq = a.data[i*n+iq]
			a.data[i*n+ip] = c*aip - s*aiq
			a.data[ip*n+i] = a.data[i*n+ip]
			a.data[i*n+iq] = s*aip + c*aiq
			a.data[iq*n+i] = a.data[i*n+iq]
		}
		a.data[ip*n+ip] = c*c*app - 2*c*s*apq + s*s*aqq
		a.data[iq*n+iq] = s*s*app + 2*c*s*apq + c*c*aqq
		a.data[ip*n+iq], a.data[iq*n+ip] = 0, 0

		for i = 0; i < n; i++ {
			qip = q.data[i*n+ip]
			qiq = q.data[i*n+iq]
			q.data[i*n+ip] = c*qip - s*qiq
			q.data[i*n+iq] = s*qip + c*qiq
		}
	}

	if maxOff, _, _ = maxOffDiagonal(a); maxOff > tol || math.IsNaN(maxOff) {
		return nil, nil, matrixErrorf(opEigen, ErrMatrixEigenFailed)
	}
	eigs := make([]float64, n)
	for i = 0; i < n; i++ {
		eigs[i] = a.data[i*n+i]
	}

	return eigs, q, nil
}

// diagonalEigen is Eigen for an already diagonal m: its diagonal and the identity.
func diagonalEigen(m Matrix) ([]float64, Matrix, error) {
	n := m.Rows()
	eigs := make([]float64, n)
	for i := 0; i < n; i++ {
		eigs[i], _ = m.At(i, i)
	}
	q, err := NewIdentity(n)
	if err != nil {
		return nil, nil, matrixErrorf(opEigen, err)
	}

	return eigs, q, nil
}

// maxOffDiagonal scans the strict upper triangle and returns the largest |A[p,q]|
// with its coordinates. A NaN cell is reported as NaN.
func maxOffDiagonal(a *Dense) (float64, int, int) {
	n := a.r
	maxOff, p, q := ZeroSum, 0, 0
	var i, j int
	var off float64
	for i = 0; i < n; i++ {
		base := i * n
		for j = i + 1; j < n; j++ {
			off = math.Abs(a.data[base+j])
			if math.IsNaN(off) {
				return off, i, j
			}
			if off > maxOff {
				maxOff, p, q = off, i, j
			}
		}
	}

	return maxOff, p, q
}

// LU performs a Doolittle decomposition without pivoting: m = L×U with L unit
// lower-triangular and U upper-triangular.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (non-square), ErrSingular (zero pivot).
//
// Complexity: Time O(n³), Space O(n²).
func LU(m Matrix) (Matrix, Matrix, error) {
	if err := ValidateSquareNonNil(m); err != nil {
		return nil, nil, matrixErrorf(opLU, err)
	}
	src, _, err := asDense(m)
	if err != nil {
		return nil, nil, matrixErrorf(opLU, err)
	}
	n := src.r
	l, err := NewIdentity(n)
	if err != nil {
		return nil, nil, matrixErrorf(opLU, err)
	}
	u, err := NewDense(n, n)
	if err != nil {
		return nil, nil, matrixErrorf(opLU, err)
	}

	var i, j, k int
	var sum float64
	for i = 0; i < n; i++ {
		for j = i; j < n; j++ {
			sum = ZeroSum
			for k = 0; k < i; k++ {
				sum += l.data[i*n+k] * u.data[k*n+j]
			}
			u.data[i*n+j] = src.data[i*n+j] - sum
		}
		if u.data[i*n+i] == ZeroPivot {
			return nil, nil, matrixErrorf(opLU, ErrSingular)
		}
		for j = i + 1; j < n; j++ {
			sum = ZeroSum
			for k = 0; k < i; k++ {
				sum += l.data[j*n+k] * u.data[k*n+i]
			}
			l.data[j*n+i] = (src.data[j*n+i] - sum) / u.data[i*n+i]
		}
	}

	return l, u, nil
}

// luPivoted factors a copy of m in place with partial (row) pivoting.
// It returns the packed factors (unit L below the diagonal, U on and above),
// the row permutation and its sign. A column whose best pivot is exactly zero
// reports ErrSingular together with the partial result.
func luPivoted(m Matrix) (*Dense, []int, float64, error) {
	src, fresh, err := asDense(m)
	if err != nil {
		return nil, nil, 0, err
	}
	a := src
	if !fresh {
		a = src.Copy()
	}
	n := a.r
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	sign := 1.0

	var i, j, k, p int
	var best, v, f float64
	for k = 0; k < n; k++ {
		p, best = k, math.Abs(a.data[k*n+k])
		for i = k + 1; i < n; i++ {
			if v = math.Abs(a.data[i*n+k]); v > best {
				p, best = i, v
			}
		}
		if best == ZeroPivot {
			return a, perm, sign, ErrSingular
		}
		if p != k {
			a.swapRowsUnchecked(p, k)
			perm[p], perm[k] = perm[k], perm[p]
			sign = -sign
		}
		for i = k + 1; i < n; i++ {
			f = a.data[i*n+k] / a.data[k*n+k]
			a.data[i*n+k] = f
			for j = k + 1; j < n; j++ {
				a.data[i*n+j] -= f * a.data[k*n+j]
			}
		}
	}

	return a, perm, sign, nil
}

// Inverse computes m⁻¹ by LU factorization with partial pivoting and n
// forward/backward substitutions.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (non-square), ErrSingular (exact zero pivot).
//
// Notes:
//   - A nearly singular matrix is inverted as-is; huge or non-finite entries
//     are left for the caller to interpret.
func Inverse(m Matrix) (Matrix, error) {
	if err := ValidateSquareNonNil(m); err != nil {
		return nil, matrixErrorf(opInverse, err)
	}
	lu, perm, _, err := luPivoted(m)
	if err != nil {
		return nil, matrixErrorf(opInverse, err)
	}
	n := lu.r
	inv, err := NewDense(n, n)
	if err != nil {
		return nil, matrixErrorf(opInverse, err)
	}

	var col, i, k int
	var sum float64
	x := make([]float64, n)
	for col = 0; col < n; col++ {
		// forward: L·y = P·e_col
		for i = 0; i < n; i++ {
			sum = ZeroSum
			if perm[i] == col {
				sum = 1
			}
			for k = 0; k < i; k++ {
				sum -= lu.data[i*n+k] * x[k]
			}
			x[i] = sum
		}
		// backward: U·x = y
		for i = n - 1; i >= 0; i-- {
			sum = x[i]
			for k = i + 1; k < n; k++ {
				sum -= lu.data[i*n+k] * x[k]
			}
			x[i] = sum / lu.data[i*n+i]
		}
		for i = 0; i < n; i++ {
			inv.data[i*n+col] = x[i]
		}
	}

	return inv, nil
}

// Determinant returns det(m) as the signed product of the pivots.
// A singular matrix (exact zero pivot) yields 0 with a nil error.
//
// Errors: ErrNilMatrix, ErrDimensionMismatch (non-square).
func Determinant(m Matrix) (float64, error) {
	if err := ValidateSquareNonNil(m); err != nil {
		return 0, matrixErrorf(opDeterminant, err)
	}
	lu, _, sign, err := luPivoted(m)
	if errors.Is(err, ErrSingular) {
		return 0, nil
	}
	if err != nil {
		return 0, matrixErrorf(opDeterminant, err)
	}
	det := sign
	for i := 0; i < lu.r; i++ {
		det *= lu.data[i*lu.r+i]
	}

	return det, nil
}
