// SPDX-License-Identifier: MIT
package matrix_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/crnstat/matrix"
)

func TestIncreaseFamily(t *testing.T) {
	t.Parallel()
	m := mustDense(t, 2, 3)

	require.NoError(t, m.IncreaseElement(1, 2, 5))
	require.NoError(t, m.IncreaseRow(0, 1))
	require.NoError(t, m.IncreaseColumn(1, 10))
	require.Equal(t, []float64{1, 11, 1, 0, 10, 5}, m.Data())

	require.ErrorIs(t, m.IncreaseElement(2, 0, 1), matrix.ErrOutOfRange)
	require.ErrorIs(t, m.IncreaseRow(-1, 1), matrix.ErrOutOfRange)
	require.ErrorIs(t, m.IncreaseColumn(3, 1), matrix.ErrOutOfRange)
	require.Equal(t, []float64{1, 11, 1, 0, 10, 5}, m.Data(), "failed calls must not mutate")
}

func TestSwapAndMult(t *testing.T) {
	t.Parallel()
	m := mustRows(t, [][]float64{{1, 2, 3}, {4, 5, 6}})

	require.NoError(t, m.SwapRows(0, 1))
	require.Equal(t, []float64{4, 5, 6, 1, 2, 3}, m.Data())
	require.NoError(t, m.SwapColumns(0, 2))
	require.Equal(t, []float64{6, 5, 4, 3, 2, 1}, m.Data())
	require.NoError(t, m.SwapRows(1, 1))

	require.NoError(t, m.MultRow(0, 2))
	require.NoError(t, m.MultColumn(1, -1))
	require.Equal(t, []float64{12, -10, 8, 3, -2, 1}, m.Data())

	require.ErrorIs(t, m.SwapRows(0, 2), matrix.ErrOutOfRange)
	require.ErrorIs(t, m.SwapColumns(-1, 0), matrix.ErrOutOfRange)
	require.ErrorIs(t, m.MultRow(5, 1), matrix.ErrOutOfRange)
	require.ErrorIs(t, m.MultColumn(3, 1), matrix.ErrOutOfRange)
}

func TestMulInPlace(t *testing.T) {
	t.Parallel()
	a := mustRows(t, [][]float64{{1, 2}, {3, 4}, {5, 6}})
	b := mustRows(t, [][]float64{{1, 0, 2}, {0, 1, 3}})

	require.NoError(t, a.MulInPlace(b))
	r, c := a.Shape()
	require.Equal(t, 3, r)
	require.Equal(t, 3, c)
	require.Equal(t, []float64{1, 2, 8, 3, 4, 18, 5, 6, 28}, a.Data())
}

func TestMulInPlaceStrongGuarantee(t *testing.T) {
	t.Parallel()
	a := mustRows(t, [][]float64{{1, 2}, {3, 4}})
	before := a.Copy()

	err := a.MulInPlace(mustDense(t, 3, 1))
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	require.True(t, a.Equal(before))
	require.Equal(t, 2, a.Cols())
}

func TestAddSubScaleDivideInPlace(t *testing.T) {
	t.Parallel()
	a := mustRows(t, [][]float64{{1, 2}, {3, 4}})
	b := mustRows(t, [][]float64{{1, 1}, {1, 1}})

	require.NoError(t, a.AddInPlace(b))
	require.Equal(t, []float64{2, 3, 4, 5}, a.Data())
	require.NoError(t, a.SubInPlace(hide{b}))
	require.Equal(t, []float64{1, 2, 3, 4}, a.Data())
	require.ErrorIs(t, a.AddInPlace(mustDense(t, 1, 2)), matrix.ErrDimensionMismatch)

	a.ScaleInPlace(2)
	require.Equal(t, []float64{2, 4, 6, 8}, a.Data())

	a.DivideInPlace(0)
	for _, v := range a.Data() {
		require.True(t, math.IsInf(v, 1))
	}

	a.SetAll(0)
	a.DivideInPlace(0)
	require.True(t, math.IsNaN(a.Elem(0, 0)))
}
