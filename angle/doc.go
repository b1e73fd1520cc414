// Package angle provides unit-typed angles normalised into one turn.
//
// An Angle[U] stores its value in the unit U (Radian, Degree or ByteUnit) and
// keeps it in [0, U.Turn()). Arithmetic wraps around the turn; Convert moves
// between units. Trigonometry is exact through package math, while
// TrigTables offers table lookups for byte angles as an explicit value that
// callers build once and pass around: the package holds no mutable state.
package angle
