// SPDX-License-Identifier: MIT
package gaussian_test

import (
	"bytes"
	"log/slog"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/crnstat/gaussian"
	"github.com/katalvlaran/crnstat/matrix"
)

func mustRows(t *testing.T, rows [][]float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewFromRows(rows)
	require.NoError(t, err)

	return m
}

func mustMVN(t *testing.T, mean []float64, cov [][]float64) *gaussian.MultivariatePDF {
	t.Helper()
	p, err := gaussian.NewMultivariatePDF(mean, mustRows(t, cov))
	require.NoError(t, err)

	return p
}

// bimodal draws n samples: a share w from N(lo, 1), the rest from N(hi, 1).
func bimodal(rng *rand.Rand, n int, w, lo, hi float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		mu := hi
		if rng.Float64() < w {
			mu = lo
		}
		out[i] = mu + rng.NormFloat64()
	}

	return out
}

// captureLogger returns a debug-level text logger writing into the returned buffer.
func captureLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer

	return slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})), &buf
}
