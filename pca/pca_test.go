// SPDX-License-Identifier: MIT
package pca_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/katalvlaran/crnstat/matrix"
	"github.com/katalvlaran/crnstat/pca"
)

func mustRows(t *testing.T, rows [][]float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewFromRows(rows)
	require.NoError(t, err)

	return m
}

// correlated draws n patterns of dimension d with a shared latent factor.
func correlated(n, d int, seed int64) [][]float64 {
	rng := rand.New(rand.NewSource(seed))
	out := make([][]float64, n)
	for i := range out {
		f := rng.NormFloat64()
		out[i] = make([]float64, d)
		for j := range out[i] {
			out[i][j] = float64(j+1)*f + 0.5*rng.NormFloat64() + float64(10*j)
		}
	}

	return out
}

func TestRepresentationEquivalence(t *testing.T) {
	t.Parallel()
	rows := make([][]float64, 0, 100)
	for i := 0; i < 50; i++ {
		rows = append(rows, []float64{1, 2}, []float64{3, 4})
	}
	fromMatrix, err := pca.New(mustRows(t, rows))
	require.NoError(t, err)

	counts := &pca.Counts{}
	require.NoError(t, counts.Add([]float64{3, 4}, 50))
	require.NoError(t, counts.Add([]float64{1, 2}, 50))
	fromCounts, err := pca.NewFromCounts(counts)
	require.NoError(t, err)

	fromVectors, err := pca.NewFromVectors(rows)
	require.NoError(t, err)
	fromWeighted, err := pca.NewFromWeighted([][]float64{{1, 2}, {3, 4}}, []int{50, 50})
	require.NoError(t, err)

	for _, p := range []*pca.PCA{fromCounts, fromVectors, fromWeighted} {
		require.Equal(t, fromMatrix.Means(), p.Means())
		require.Equal(t, fromMatrix.Deviations(), p.Deviations())
		require.Equal(t, fromMatrix.Eigensystem(), p.Eigensystem())
	}

	assert.Equal(t, []float64{2, 3}, fromMatrix.Means())
	assert.Equal(t, []float64{1, 1}, fromMatrix.Deviations())
	es := fromMatrix.Eigensystem()
	assert.InDelta(t, 0.0, es[0].Value, 1e-15)
	assert.InDelta(t, 2.0, es[1].Value, 1e-15)
	assert.InDeltaSlice(t, []float64{math.Sqrt2 / 2, math.Sqrt2 / 2}, es[1].Vector, 1e-15)
}

func TestEquivalenceRandomData(t *testing.T) {
	t.Parallel()
	rows := correlated(200, 4, 9)
	// duplicate a few patterns so multiplicities matter
	rows = append(rows, rows[0], rows[0], rows[5])

	a, err := pca.NewFromVectors(rows)
	require.NoError(t, err)
	c, err := pca.CountPatterns(rows)
	require.NoError(t, err)
	require.Equal(t, 200, c.Len())
	require.Equal(t, 203, c.Total())
	b, err := pca.NewFromCounts(c)
	require.NoError(t, err)
	require.Equal(t, a.Eigensystem(), b.Eigensystem())
}

func TestMeansAndDeviationsMatchStat(t *testing.T) {
	t.Parallel()
	rows := correlated(300, 3, 1)
	p, err := pca.NewFromVectors(rows)
	require.NoError(t, err)
	for j := 0; j < 3; j++ {
		col := make([]float64, len(rows))
		for i := range rows {
			col[i] = rows[i][j]
		}
		mean, variance := stat.PopMeanVariance(col, nil)
		assert.InDelta(t, mean, p.Means()[j], 1e-10)
		assert.InDelta(t, math.Sqrt(variance), p.Deviations()[j], 1e-8)
	}
}

func TestMeanDeviationBranches(t *testing.T) {
	t.Parallel()
	mean, dev, twoPass := pca.MeanDeviation([]float64{1, 3}, []int{1, 1})
	assert.False(t, twoPass)
	assert.Equal(t, 2.0, mean)
	assert.Equal(t, 1.0, dev)

	// x² overflows: König-Huygens is unusable, the centred sum is not
	mean, dev, twoPass = pca.MeanDeviation([]float64{1e155 - 1e153, 1e155 + 1e153}, []int{3, 3})
	assert.True(t, twoPass)
	assert.InEpsilon(t, 1e155, mean, 1e-12)
	assert.InEpsilon(t, 1e153, dev, 1e-9)
	assert.False(t, math.IsInf(dev, 0))
}

func TestEigensystemOrthonormalAscending(t *testing.T) {
	t.Parallel()
	for _, d := range []int{1, 2, 3, 5} {
		p, err := pca.NewFromVectors(correlated(150, d, int64(d)))
		require.NoError(t, err)
		es := p.Eigensystem()
		require.Len(t, es, d)
		var trace float64
		for k := range es {
			trace += es[k].Value
			if k > 0 {
				require.LessOrEqual(t, es[k-1].Value, es[k].Value)
			}
			require.InDelta(t, 1.0, floats.Norm(es[k].Vector, 2), 1e-10)
			for l := k + 1; l < d; l++ {
				require.InDelta(t, 0.0, floats.Dot(es[k].Vector, es[l].Vector), 1e-9)
			}
		}
		// trace of a correlation matrix
		require.InDelta(t, float64(d), trace, 1e-9)
	}
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()
	for _, d := range []int{1, 2, 4} {
		x := mustRows(t, correlated(60, d, 77))
		p, err := pca.New(x)
		require.NoError(t, err)

		y, err := p.Transform(x, d)
		require.NoError(t, err)
		back, err := p.ReverseTransform(y)
		require.NoError(t, err)
		ok, err := matrix.AllClose(x, back, 1e-10, 1e-9)
		require.NoError(t, err)
		require.Truef(t, ok, "d=%d", d)
	}
}

func TestTransformOrdersByVariance(t *testing.T) {
	t.Parallel()
	x := mustRows(t, correlated(400, 3, 5))
	p, err := pca.New(x)
	require.NoError(t, err)
	y, err := p.Transform(x, 3)
	require.NoError(t, err)

	es := p.Eigensystem()
	for k := 0; k < 3; k++ {
		col, _ := y.Column(k)
		_, variance := stat.PopMeanVariance(col, nil)
		assert.InDelta(t, es[2-k].Value, variance, 1e-9)
	}

	y1, err := p.Transform(x, 1)
	require.NoError(t, err)
	c0, _ := y.Column(0)
	c1, _ := y1.Column(0)
	assert.Equal(t, c0, c1, "a truncated projection is a prefix of the full one")
}

func TestZeroDeviationFeature(t *testing.T) {
	t.Parallel()
	x := mustRows(t, [][]float64{{1, 5}, {3, 5}, {2, 5}})
	p, err := pca.New(x)
	require.NoError(t, err)
	assert.Equal(t, 0.0, p.Deviations()[1])

	y, err := p.Transform(x, 2)
	require.NoError(t, err)
	back, err := p.ReverseTransform(y)
	require.NoError(t, err)
	ok, _ := matrix.AllClose(x, back, 0, 1e-12)
	assert.True(t, ok)
	for _, v := range y.Data() {
		assert.False(t, math.IsNaN(v))
	}
}

func TestErrors(t *testing.T) {
	t.Parallel()
	_, err := pca.New(nil)
	require.ErrorIs(t, err, pca.ErrInvalidArgument)
	_, err = pca.NewFromVectors(nil)
	require.ErrorIs(t, err, pca.ErrInvalidArgument)
	_, err = pca.NewFromVectors([][]float64{{1, 2}, {3}})
	require.ErrorIs(t, err, pca.ErrDimensionMismatch)
	_, err = pca.NewFromVectors([][]float64{{1, math.NaN()}})
	require.ErrorIs(t, err, pca.ErrInvalidArgument)
	_, err = pca.NewFromWeighted([][]float64{{1, 2}}, []int{1, 2})
	require.ErrorIs(t, err, pca.ErrDimensionMismatch)
	_, err = pca.NewFromWeighted([][]float64{{1, 2}}, []int{0})
	require.ErrorIs(t, err, pca.ErrInvalidArgument)
	_, err = pca.NewFromCounts(&pca.Counts{})
	require.ErrorIs(t, err, pca.ErrInvalidArgument)

	p, err := pca.NewFromVectors([][]float64{{1, 2}, {2, 1}, {0, 0}})
	require.NoError(t, err)
	x := mustRows(t, [][]float64{{1, 2}})
	_, err = p.Transform(x, 3)
	require.ErrorIs(t, err, pca.ErrOutOfRange)
	_, err = p.Transform(x, 0)
	require.ErrorIs(t, err, pca.ErrOutOfRange)
	_, err = p.Transform(mustRows(t, [][]float64{{1, 2, 3}}), 1)
	require.ErrorIs(t, err, pca.ErrDimensionMismatch)

	y, err := p.Transform(x, 1)
	require.NoError(t, err)
	_, err = p.ReverseTransform(y)
	require.ErrorIs(t, err, pca.ErrDimensionMismatch, "truncated projections are not reversible")
}

func TestJacobiBudget(t *testing.T) {
	t.Parallel()
	rows := correlated(100, 5, 3)
	_, err := pca.NewFromVectors(rows, pca.WithTolerance(0), pca.WithMaxSweeps(1))
	require.ErrorIs(t, err, matrix.ErrMatrixEigenFailed)

	// uncorrelated features: the correlation matrix is already diagonal
	var cube [][]float64
	for _, x := range []float64{-1, 1} {
		for _, y := range []float64{-1, 1} {
			for _, z := range []float64{-1, 1} {
				cube = append(cube, []float64{x, y, z})
			}
		}
	}
	p, err := pca.NewFromVectors(cube, pca.WithTolerance(0), pca.WithMaxSweeps(1))
	require.NoError(t, err)
	for _, pr := range p.Eigensystem() {
		require.Equal(t, 1.0, pr.Value)
	}

	require.Panics(t, func() { pca.WithTolerance(-1) })
	require.Panics(t, func() { pca.WithMaxSweeps(0) })
}

func TestFromParts(t *testing.T) {
	t.Parallel()
	p, err := pca.NewFromVectors(correlated(50, 3, 4))
	require.NoError(t, err)

	es := p.Eigensystem()
	es[0], es[2] = es[2], es[0]
	q, err := pca.FromParts(p.Means(), p.Deviations(), es)
	require.NoError(t, err)
	require.Equal(t, p.Eigensystem(), q.Eigensystem(), "pairs are re-sorted")

	_, err = pca.FromParts(nil, nil, nil)
	require.ErrorIs(t, err, pca.ErrInvalidArgument)
	_, err = pca.FromParts([]float64{0, 0, 0}, []float64{1, 1}, es)
	require.ErrorIs(t, err, pca.ErrDimensionMismatch)
	es[1].Vector = []float64{1}
	_, err = pca.FromParts(p.Means(), p.Deviations(), es)
	require.ErrorIs(t, err, pca.ErrDimensionMismatch)
}

func TestCountsOrdering(t *testing.T) {
	t.Parallel()
	c, err := pca.CountPatterns([][]float64{{2, 0}, {1, 5}, {2, 0}, {1, -1}})
	require.NoError(t, err)
	require.Equal(t, 3, c.Len())
	require.Equal(t, 2, c.Dimension())
	assert.Equal(t, []float64{1, -1}, c.Pattern(0))
	assert.Equal(t, []float64{1, 5}, c.Pattern(1))
	assert.Equal(t, []float64{2, 0}, c.Pattern(2))
	assert.Equal(t, 2, c.Count(2))

	require.ErrorIs(t, c.Add([]float64{1}, 1), pca.ErrDimensionMismatch)
	require.ErrorIs(t, c.Add([]float64{1, 1}, 0), pca.ErrInvalidArgument)

	src := []float64{9, 9}
	require.NoError(t, c.Add(src, 1))
	src[0] = 0
	assert.Equal(t, []float64{9, 9}, c.Pattern(3), "patterns are copied")
}
