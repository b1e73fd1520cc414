// SPDX-License-Identifier: MIT
package matrix_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/crnstat/matrix"
)

func TestOptionsDefaults(t *testing.T) {
	t.Parallel()
	o := matrix.NewMatrixOptions()
	require.Equal(t, matrix.DefaultEpsilon, o.Epsilon())
	require.False(t, o.ValidateNaNInf())
	require.Equal(t, 0.0, o.ZeroTolerance())

	o = matrix.NewMatrixOptions(nil, matrix.WithValidateNaNInf(), matrix.WithNoValidateNaNInf(), matrix.WithEpsilon(1e-3))
	require.False(t, o.ValidateNaNInf(), "last setter wins")
	require.Equal(t, 1e-3, o.Epsilon())
}

func TestOptionsPanicOnNonsense(t *testing.T) {
	t.Parallel()
	require.Panics(t, func() { matrix.WithEpsilon(-1) })
	require.Panics(t, func() { matrix.WithEpsilon(math.NaN()) })
	require.Panics(t, func() { matrix.WithZeroTolerance(math.Inf(1)) })
	require.NotPanics(t, func() { matrix.WithZeroTolerance(0) })
}
