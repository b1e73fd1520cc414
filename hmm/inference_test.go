// SPDX-License-Identifier: MIT
package hmm_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/crnstat/hmm"
)

func TestAlphaBetaIdentity(t *testing.T) {
	t.Parallel()
	for seed := int64(1); seed <= 5; seed++ {
		h := randomModel(t, seed, 3, 4)
		obs := randomSequence(seed, 12, 4)

		p, err := h.SequenceProbability(obs)
		require.NoError(t, err)
		alpha, err := h.Alpha(obs)
		require.NoError(t, err)
		beta, err := h.Beta(obs)
		require.NoError(t, err)
		require.Equal(t, len(obs), alpha.Rows())
		for tt := range obs {
			require.InEpsilon(t, p, floats.Dot(alpha.Row(tt), beta.Row(tt)), 1e-12)
		}
		require.InEpsilon(t, floats.Sum(alpha.Row(len(obs)-1)), p, 1e-14)
	}
}

func TestScaledAlphaBetaIdentity(t *testing.T) {
	t.Parallel()
	h := randomModel(t, 8, 4, 3, hmm.WithScaling())
	obs := randomSequence(8, 40, 3)
	alpha, err := h.Alpha(obs)
	require.NoError(t, err)
	beta, err := h.Beta(obs)
	require.NoError(t, err)
	for tt := range obs {
		require.InDelta(t, 1.0, floats.Sum(alpha.Row(tt)), 1e-12)
		require.InDelta(t, 1.0, floats.Dot(alpha.Row(tt), beta.Row(tt)), 1e-12)
	}
}

func TestScaledMatchesUnscaled(t *testing.T) {
	t.Parallel()
	plain := randomModel(t, 4, 3, 3)
	scaled := randomModel(t, 4, 3, 3, hmm.WithScaling())
	obs := randomSequence(4, 25, 3)

	lp, err := plain.SequenceLogProbability(obs)
	require.NoError(t, err)
	ls, err := scaled.SequenceLogProbability(obs)
	require.NoError(t, err)
	assert.InDelta(t, lp, ls, 1e-10)

	pp, _ := plain.SequenceProbability(obs)
	ps, _ := scaled.SequenceProbability(obs)
	assert.InEpsilon(t, pp, ps, 1e-10)

	vp, err := plain.MakeViterbi(obs)
	require.NoError(t, err)
	vs, err := scaled.MakeViterbi(obs)
	require.NoError(t, err)
	assert.Equal(t, vp, vs)
}

func TestLongSequenceUnderflow(t *testing.T) {
	t.Parallel()
	obs := randomSequence(2, 3000, 2)
	plain, _ := hmm.New(2, 2)
	p, err := plain.SequenceProbability(obs)
	require.NoError(t, err)
	assert.Equal(t, 0.0, p, "0.5^3000 underflows")
	lp, _ := plain.SequenceLogProbability(obs)
	assert.True(t, math.IsInf(lp, -1))

	scaled, _ := hmm.New(2, 2, hmm.WithScaling())
	ls, err := scaled.SequenceLogProbability(obs)
	require.NoError(t, err)
	assert.InDelta(t, 3000*math.Log(0.5), ls, 1e-9)
}

func TestViterbiKnownPath(t *testing.T) {
	t.Parallel()
	a := [][]float64{{0.9, 0.1}, {0.1, 0.9}}
	b := [][]float64{{0.9, 0.1}, {0.2, 0.8}}
	pi := []float64{0.5, 0.5}
	obs := []int{0, 0, 1, 1, 1}

	for _, opts := range [][]hmm.Option{nil, {hmm.WithScaling()}} {
		h := mustModel(t, a, b, pi, opts...)
		path, err := h.MakeViterbi(obs)
		require.NoError(t, err)
		assert.Equal(t, []int{0, 0, 1, 1, 1}, path)

		p, err := h.PathProbability(obs, path)
		require.NoError(t, err)
		assert.InDelta(t, 0.015116544, p, 1e-15)
	}
}

func TestViterbiTiesPreferLowestState(t *testing.T) {
	t.Parallel()
	h, _ := hmm.New(3, 2)
	path, err := h.MakeViterbi([]int{1, 0, 1, 1})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 0, 0, 0}, path)
}

func TestViterbiPathValidity(t *testing.T) {
	t.Parallel()
	for seed := int64(10); seed < 20; seed++ {
		h := randomModel(t, seed, 4, 3)
		obs := randomSequence(seed, 15, 3)
		path, err := h.MakeViterbi(obs)
		require.NoError(t, err)
		require.Len(t, path, len(obs))
		for _, q := range path {
			require.GreaterOrEqual(t, q, 0)
			require.Less(t, q, 4)
		}
		pp, err := h.PathProbability(obs, path)
		require.NoError(t, err)
		sp, err := h.SequenceProbability(obs)
		require.NoError(t, err)
		require.LessOrEqual(t, pp, sp)

		// no single-state change beats the decoded path
		for tt := range path {
			for q := 0; q < 4; q++ {
				alt := append([]int(nil), path...)
				alt[tt] = q
				ap, _ := h.PathProbability(obs, alt)
				require.LessOrEqual(t, ap, pp)
			}
		}
	}
}

func TestObservationErrors(t *testing.T) {
	t.Parallel()
	h, _ := hmm.New(2, 3)
	_, err := h.Alpha(nil)
	require.ErrorIs(t, err, hmm.ErrInvalidArgument)
	_, err = h.Beta([]int{0, 3})
	require.ErrorIs(t, err, hmm.ErrOutOfRange)
	_, err = h.SequenceProbability([]int{-1})
	require.ErrorIs(t, err, hmm.ErrOutOfRange)
	_, err = h.MakeViterbi([]int{})
	require.ErrorIs(t, err, hmm.ErrInvalidArgument)
	_, err = h.PathProbability([]int{0, 1}, []int{0})
	require.ErrorIs(t, err, hmm.ErrDimensionMismatch)
	_, err = h.PathProbability([]int{0, 1}, []int{0, 2})
	require.ErrorIs(t, err, hmm.ErrOutOfRange)
}
