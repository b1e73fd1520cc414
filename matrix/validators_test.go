// SPDX-License-Identifier: MIT
package matrix_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/crnstat/matrix"
)

func TestValidateSymmetric(t *testing.T) {
	t.Parallel()
	near := mustRows(t, [][]float64{{1, 2}, {2 + 1e-12, 1}})
	require.NoError(t, matrix.ValidateSymmetric(near, 1e-9))
	require.ErrorIs(t, matrix.ValidateSymmetric(near, 0), matrix.ErrAsymmetry)
	require.ErrorIs(t, matrix.ValidateSymmetric(near, math.NaN()), matrix.ErrNaNInf)
	require.ErrorIs(t, matrix.ValidateSymmetric(nil, 0), matrix.ErrNilMatrix)
	require.ErrorIs(t, matrix.ValidateSymmetric(mustDense(t, 1, 2), 0), matrix.ErrDimensionMismatch)
}

func TestIsZeroOffDiagonal(t *testing.T) {
	t.Parallel()
	d := mustRows(t, [][]float64{{1, 1e-13}, {0, 2}})
	ok, err := matrix.IsZeroOffDiagonal(d, 1e-12)
	require.NoError(t, err)
	require.True(t, ok)
	ok, err = matrix.IsZeroOffDiagonal(d, 0)
	require.NoError(t, err)
	require.False(t, ok)

	// the lower triangle counts too
	lower := mustRows(t, [][]float64{{1, 0}, {3, 2}})
	ok, err = matrix.IsZeroOffDiagonal(hide{lower}, 1)
	require.NoError(t, err)
	require.False(t, ok)
	ok, err = matrix.IsZeroOffDiagonal(lower, -3)
	require.NoError(t, err)
	require.True(t, ok, "negative tolerance is taken by magnitude")

	nan := mustRows(t, [][]float64{{1, math.NaN()}, {0, 1}})
	ok, err = matrix.IsZeroOffDiagonal(nan, 1)
	require.NoError(t, err)
	require.False(t, ok)

	_, err = matrix.IsZeroOffDiagonal(nil, 0)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
	_, err = matrix.IsZeroOffDiagonal(mustDense(t, 1, 2), 0)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	_, err = matrix.IsZeroOffDiagonal(d, math.Inf(1))
	require.ErrorIs(t, err, matrix.ErrNaNInf)
}

func TestValidateFinite(t *testing.T) {
	t.Parallel()
	require.NoError(t, matrix.ValidateFinite(mustRows(t, [][]float64{{1, 2}})))
	require.ErrorIs(t, matrix.ValidateFinite(hide{mustRows(t, [][]float64{{1, math.Inf(-1)}})}), matrix.ErrNaNInf)
	require.ErrorIs(t, matrix.ValidateVecLen(nil, 2), matrix.ErrNilMatrix)
	require.ErrorIs(t, matrix.ValidateVecLen([]float64{1}, 2), matrix.ErrDimensionMismatch)
}
