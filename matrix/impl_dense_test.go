// Package matrix_test contains unit tests for the Dense implementation
// of the Matrix interface in the matrix package.
package matrix_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/crnstat/matrix"
)

// TestNewDenseInvalidDimensions ensures that NewDense rejects non-positive dimensions.
func TestNewDenseInvalidDimensions(t *testing.T) {
	t.Parallel()
	_, err := matrix.NewDense(0, 5)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)

	_, err = matrix.NewDense(5, 0)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)

	_, err = matrix.NewFilled(-1, 2, 3)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)
}

func TestConstructors(t *testing.T) {
	t.Parallel()
	m, err := matrix.NewFilled(2, 3, 1.5)
	require.NoError(t, err)
	for _, v := range m.Data() {
		require.Equal(t, 1.5, v)
	}

	_, err = matrix.NewFromData(2, 2, []float64{1, 2, 3})
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	src := []float64{1, 2, 3, 4}
	m, err = matrix.NewFromData(2, 2, src)
	require.NoError(t, err)
	src[0] = 99
	require.Equal(t, 1.0, m.Elem(0, 0), "NewFromData must copy")

	_, err = matrix.NewFromRows(nil)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)
	_, err = matrix.NewFromRows([][]float64{{1, 2}, {3}})
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	col, err := matrix.NewColumn([]float64{4, 5, 6})
	require.NoError(t, err)
	r, c := col.Shape()
	require.Equal(t, 3, r)
	require.Equal(t, 1, c)
}

// TestAtSetOutOfBounds ensures At() and Set() return ErrOutOfRange on invalid access.
func TestAtSetOutOfBounds(t *testing.T) {
	t.Parallel()
	m := mustDense(t, 2, 2)

	_, err := m.At(-1, 0)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)
	_, err = m.At(0, 2)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)
	require.ErrorIs(t, m.Set(2, 0, 1.23), matrix.ErrOutOfRange)
	require.ErrorIs(t, m.Set(0, -1, 4.56), matrix.ErrOutOfRange)
	_, err = m.Flat(4)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)
	_, err = m.Column(2)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)
}

func TestSetNaNPolicy(t *testing.T) {
	t.Parallel()
	loose := mustDense(t, 1, 1)
	require.NoError(t, loose.Set(0, 0, math.NaN()))
	require.True(t, math.IsNaN(loose.Elem(0, 0)))

	strict, err := matrix.NewDense(1, 1, matrix.WithValidateNaNInf())
	require.NoError(t, err)
	require.ErrorIs(t, strict.Set(0, 0, math.Inf(1)), matrix.ErrNaNInf)
	require.Equal(t, 0.0, strict.Elem(0, 0))
	require.ErrorIs(t, strict.Clone().Set(0, 0, math.NaN()), matrix.ErrNaNInf, "Clone keeps the policy")
}

func TestRowIsRawSpanColumnIsCopy(t *testing.T) {
	t.Parallel()
	m := mustRows(t, [][]float64{{1, 2, 3}, {4, 5, 6}})

	row := m.Row(1)
	require.Equal(t, []float64{4, 5, 6}, row)
	require.Len(t, row, 3)
	require.Equal(t, 3, cap(row), "span must not expose the next row")
	row[0] = 40
	require.Equal(t, 40.0, m.Elem(1, 0))

	col, err := m.Column(2)
	require.NoError(t, err)
	require.Equal(t, []float64{3, 6}, col)
	col[0] = 30
	require.Equal(t, 3.0, m.Elem(0, 2))

	v, err := m.Flat(4)
	require.NoError(t, err)
	require.Equal(t, 5.0, v)
}

func TestCloneIsDeep(t *testing.T) {
	t.Parallel()
	m := mustRows(t, [][]float64{{1, 2}, {3, 4}})
	c := m.Clone()
	require.NoError(t, c.Set(0, 0, -1))
	require.Equal(t, 1.0, m.Elem(0, 0))

	cp := m.Copy()
	require.True(t, cp.Equal(m))
	cp.SetElem(1, 1, 0)
	require.False(t, cp.Equal(m))
}

func TestEqualShapeAndNaN(t *testing.T) {
	t.Parallel()
	a := mustRows(t, [][]float64{{1, 2}})
	b := mustRows(t, [][]float64{{1}, {2}})
	assert.False(t, a.Equal(b))
	assert.False(t, a.Equal(nil))

	n := mustRows(t, [][]float64{{math.NaN()}})
	assert.False(t, n.Equal(n.Copy()))
}

func TestString(t *testing.T) {
	t.Parallel()
	m := mustRows(t, [][]float64{{1, 2.5}, {-3, 0}})
	require.Equal(t, "[1, 2.5]\n[-3, 0]\n", m.String())
}
