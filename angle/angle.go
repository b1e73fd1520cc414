// SPDX-License-Identifier: MIT

package angle

import (
	"fmt"
	"math"
)

// Unit describes the size of a full turn in a given angular unit.
type Unit interface {
	Turn() float64
	Name() string
}

// Radian measures angles in radians (turn = 2π).
type Radian struct{}

// Degree measures angles in degrees (turn = 360).
type Degree struct{}

// ByteUnit measures angles in 1/256 of a turn, the resolution of byte-sized angles.
type ByteUnit struct{}

func (Radian) Turn() float64   { return 2 * math.Pi }
func (Degree) Turn() float64   { return 360 }
func (ByteUnit) Turn() float64 { return 256 }

func (Radian) Name() string   { return "rad" }
func (Degree) Name() string   { return "deg" }
func (ByteUnit) Name() string { return "byte" }

// Angle is an angle expressed in unit U, always normalised into [0, turn).
// The zero value is the zero angle. NaN and ±Inf inputs yield a NaN angle.
type Angle[U Unit] struct {
	value float64
}

func turnOf[U Unit]() float64 {
	var u U

	return u.Turn()
}

// normalize folds v into [0, turn).
func normalize(v, turn float64) float64 {
	if math.IsInf(v, 0) {
		return math.NaN()
	}
	v = math.Mod(v, turn)
	if v < 0 {
		v += turn
	}
	if v >= turn { // v was a tiny negative number
		v = 0
	}

	return v
}

// New builds an angle of v units of U.
func New[U Unit](v float64) Angle[U] {
	return Angle[U]{value: normalize(v, turnOf[U]())}
}

// Value returns the normalised value in [0, turn).
func (a Angle[U]) Value() float64 { return a.value }

// Add returns a+b modulo one turn.
func (a Angle[U]) Add(b Angle[U]) Angle[U] { return New[U](a.value + b.value) }

// Sub returns a-b modulo one turn.
func (a Angle[U]) Sub(b Angle[U]) Angle[U] { return New[U](a.value - b.value) }

// Neg returns the opposite angle (turn - a).
func (a Angle[U]) Neg() Angle[U] { return New[U](-a.value) }

// Distance returns the smallest absolute angular distance between a and b,
// in [0, turn/2].
func (a Angle[U]) Distance(b Angle[U]) float64 {
	turn := turnOf[U]()
	d := normalize(a.value-b.value, turn)

	return math.Min(d, turn-d)
}

// Radians returns the angle in radians.
func (a Angle[U]) Radians() float64 {
	return a.value * 2 * math.Pi / turnOf[U]()
}

// Cos returns the exact cosine of a.
func (a Angle[U]) Cos() float64 { return math.Cos(a.Radians()) }

// Sin returns the exact sine of a.
func (a Angle[U]) Sin() float64 { return math.Sin(a.Radians()) }

// Tan returns the exact tangent of a.
func (a Angle[U]) Tan() float64 { return math.Tan(a.Radians()) }

// String formats the value followed by its unit name.
func (a Angle[U]) String() string {
	var u U

	return fmt.Sprintf("%g%s", a.value, u.Name())
}

// Convert expresses a in unit V.
func Convert[V, U Unit](a Angle[U]) Angle[V] {
	return New[V](a.value * turnOf[V]() / turnOf[U]())
}

// Atan2 returns the angle of the vector (x, y) in unit U.
func Atan2[U Unit](y, x float64) Angle[U] {
	return Convert[U](New[Radian](math.Atan2(y, x)))
}

// Byte returns the table index of a byte angle (its value truncated to 0..255).
func Byte(a Angle[ByteUnit]) uint8 {
	if math.IsNaN(a.value) {
		return 0
	}

	return uint8(a.value)
}
