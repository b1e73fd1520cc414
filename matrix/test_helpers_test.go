// SPDX-License-Identifier: MIT
// Package matrix_test contains test helpers
//
// Purpose:
//   • Provide small, deterministic fixtures shared by the kernel tests.
//   • Keep all data finite and well-formed unless a test is about NaN/Inf.

package matrix_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/crnstat/matrix"
)

// hide wraps any Matrix to hide its concrete type from type assertions,
// forcing kernels onto the At-based materialization path.
type hide struct{ matrix.Matrix }

// mustDense allocates an r×c *Dense or fails the test.
func mustDense(t testing.TB, r, c int) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDense(r, c)
	require.NoError(t, err)

	return m
}

// mustRows builds a *Dense from literal rows or fails the test.
func mustRows(t *testing.T, rows [][]float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewFromRows(rows)
	require.NoError(t, err)

	return m
}

// randDense fills an r×c matrix with uniform values in [-1, 1) from a seeded source.
func randDense(t testing.TB, rng *rand.Rand, r, c int) *matrix.Dense {
	t.Helper()
	m := mustDense(t, r, c)
	for i := range m.Data() {
		m.Data()[i] = 2*rng.Float64() - 1
	}

	return m
}

// randSym returns a random symmetric n×n matrix.
func randSym(t testing.TB, rng *rand.Rand, n int) *matrix.Dense {
	t.Helper()
	m := mustDense(t, n, n)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			v := 2*rng.Float64() - 1
			m.SetElem(i, j, v)
			m.SetElem(j, i, v)
		}
	}

	return m
}

// requireClose asserts AllClose(a, b) with an absolute tolerance.
func requireClose(t *testing.T, want, got matrix.Matrix, atol float64) {
	t.Helper()
	ok, err := matrix.AllClose(got, want, 0, atol)
	require.NoError(t, err)
	require.Truef(t, ok, "matrices differ:\nwant\n%v\ngot\n%v", want, got)
}
