// SPDX-License-Identifier: MIT
package angle_test

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/crnstat/angle"
)

func TestNormalization(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{360, 0},
		{370, 10},
		{-10, 350},
		{-720, 0},
		{725.5, 5.5},
	}
	for _, tc := range tests {
		a := angle.New[angle.Degree](tc.in)
		assert.InDelta(t, tc.want, a.Value(), 1e-12, "in=%v", tc.in)
		assert.GreaterOrEqual(t, a.Value(), 0.0)
		assert.Less(t, a.Value(), 360.0)
	}

	tiny := angle.New[angle.Radian](-1e-18)
	assert.Less(t, tiny.Value(), 2*math.Pi)
	assert.True(t, math.IsNaN(angle.New[angle.Degree](math.Inf(1)).Value()))
}

func TestArithmeticWraps(t *testing.T) {
	t.Parallel()
	a := angle.New[angle.Degree](350)
	b := angle.New[angle.Degree](20)
	assert.InDelta(t, 10, a.Add(b).Value(), 1e-12)
	assert.InDelta(t, 330, a.Sub(b).Value(), 1e-12)
	assert.InDelta(t, 10, a.Neg().Value(), 1e-12)
	assert.InDelta(t, 30, a.Distance(b), 1e-12)
	assert.InDelta(t, 30, b.Distance(a), 1e-12)
	assert.Equal(t, "350deg", a.String())
}

func TestConvert(t *testing.T) {
	t.Parallel()
	d := angle.New[angle.Degree](90)
	r := angle.Convert[angle.Radian](d)
	assert.InDelta(t, math.Pi/2, r.Value(), 1e-15)

	by := angle.Convert[angle.ByteUnit](d)
	assert.InDelta(t, 64, by.Value(), 1e-12)
	assert.Equal(t, uint8(64), angle.Byte(by))

	back := angle.Convert[angle.Degree](angle.Convert[angle.ByteUnit](angle.New[angle.Degree](45)))
	assert.InDelta(t, 45, back.Value(), 1e-12)
}

func TestTrigonometry(t *testing.T) {
	t.Parallel()
	d := angle.New[angle.Degree](60)
	assert.InDelta(t, 0.5, d.Cos(), 1e-15)
	assert.InDelta(t, math.Sqrt(3)/2, d.Sin(), 1e-15)
	assert.InDelta(t, math.Sqrt(3), d.Tan(), 1e-14)

	a := angle.Atan2[angle.Degree](-1, 0)
	assert.InDelta(t, 270, a.Value(), 1e-12)
	a = angle.Atan2[angle.Degree](1, 1)
	assert.InDelta(t, 45, a.Value(), 1e-12)
}

func TestTrigTables(t *testing.T) {
	t.Parallel()
	tab := angle.NewTrigTables()
	for i := 0; i < 256; i++ {
		b := angle.New[angle.ByteUnit](float64(i))
		require.InDelta(t, b.Cos(), tab.Cos(b), 1e-15)
		require.InDelta(t, b.Sin(), tab.Sin(b), 1e-15)
	}
	require.Equal(t, 1.0, tab.Cos(angle.New[angle.ByteUnit](0)))
	require.InDelta(t, -1.0, tab.Sin(angle.New[angle.ByteUnit](192.7)), 1e-15, "index truncates")
}

func ExampleNew() {
	a := angle.New[angle.Degree](-90)
	b := angle.Convert[angle.ByteUnit](a)
	fmt.Println(a, b)
	// Output: 270deg 192byte
}
