// SPDX-License-Identifier: MIT
// Package matrix - conversions to and from gonum's mat types.
//
// Purpose:
//   - Hand square symmetric matrices to gonum factorizations (Cholesky) without
//     reimplementing them here.
//   - Bring gonum results back into *Dense so the rest of the module keeps a
//     single matrix type.

package matrix

import "gonum.org/v1/gonum/mat"

const (
	opToGonumSym = "ToGonumSym"
	opFromGonum  = "FromGonum"
)

// ToGonumSym copies a square Matrix into a *mat.SymDense. The upper triangle is
// read; the matrix must be symmetric within DefaultEpsilon (or WithEpsilon).
//
// Errors: ErrNilMatrix, ErrDimensionMismatch, ErrAsymmetry.
func ToGonumSym(m Matrix, opts ...Option) (*mat.SymDense, error) {
	o := gatherOptions(opts...)
	if err := ValidateSymmetric(m, o.eps); err != nil {
		return nil, matrixErrorf(opToGonumSym, err)
	}
	d, _, err := asDense(m)
	if err != nil {
		return nil, matrixErrorf(opToGonumSym, err)
	}
	n := d.r
	sym := mat.NewSymDense(n, nil)
	var i, j int
	for i = 0; i < n; i++ {
		for j = i; j < n; j++ {
			sym.SetSym(i, j, d.data[i*n+j])
		}
	}

	return sym, nil
}

// FromGonum copies any gonum matrix into a new *Dense.
//
// Errors: ErrNilMatrix for a nil source, ErrInvalidDimensions for an empty one.
func FromGonum(src mat.Matrix) (*Dense, error) {
	if src == nil {
		return nil, matrixErrorf(opFromGonum, ErrNilMatrix)
	}
	r, c := src.Dims()
	out, err := NewDense(r, c)
	if err != nil {
		return nil, matrixErrorf(opFromGonum, err)
	}
	var i, j int
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			out.data[i*c+j] = src.At(i, j)
		}
	}

	return out, nil
}

// ToGonumDense copies m into a *mat.Dense.
// Errors: ErrNilMatrix.
func ToGonumDense(m Matrix) (*mat.Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf("ToGonumDense", err)
	}
	d, fresh, err := asDense(m)
	if err != nil {
		return nil, matrixErrorf("ToGonumDense", err)
	}
	buf := d.data
	if !fresh {
		buf = append([]float64(nil), d.data...)
	}

	return mat.NewDense(d.r, d.c, buf), nil
}
