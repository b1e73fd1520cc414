// SPDX-License-Identifier: MIT
package hmm_test

import (
	"bytes"
	"log/slog"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/crnstat/hmm"
	"github.com/katalvlaran/crnstat/matrix"
)

func mustRows(t *testing.T, rows [][]float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewFromRows(rows)
	require.NoError(t, err)

	return m
}

// mustModel builds a model with explicit parameters.
func mustModel(t *testing.T, a, b [][]float64, pi []float64, opts ...hmm.Option) *hmm.DiscreteHMM {
	t.Helper()
	h, err := hmm.New(len(a), len(b[0]), opts...)
	require.NoError(t, err)
	require.NoError(t, h.SetTransitions(mustRows(t, a)))
	require.NoError(t, h.SetEmissions(mustRows(t, b)))
	require.NoError(t, h.SetInitial(pi))

	return h
}

// randomStochastic returns r rows of c positive entries summing to 1.
func randomStochastic(rng *rand.Rand, r, c int) [][]float64 {
	out := make([][]float64, r)
	for i := range out {
		out[i] = make([]float64, c)
		var s float64
		for j := range out[i] {
			out[i][j] = 0.1 + rng.Float64()
			s += out[i][j]
		}
		for j := range out[i] {
			out[i][j] /= s
		}
	}

	return out
}

func randomModel(t *testing.T, seed int64, n, k int, opts ...hmm.Option) *hmm.DiscreteHMM {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))

	return mustModel(t, randomStochastic(rng, n, n), randomStochastic(rng, n, k), randomStochastic(rng, 1, n)[0], opts...)
}

func randomSequence(seed int64, length, k int) []int {
	rng := rand.New(rand.NewSource(seed))
	out := make([]int, length)
	for i := range out {
		out[i] = rng.Intn(k)
	}

	return out
}

func captureLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer

	return slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})), &buf
}
