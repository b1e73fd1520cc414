// SPDX-License-Identifier: MIT

// Package matrix - Dense storage (row-major) & safe accessors.
//
// Purpose:
//   - Provide a cache-friendly row-major buffer with the explicit index formula i*cols + j.
//   - Guarantee safety at the public surface: At/Set return errors instead of panicking.
//   - Offer an unchecked fast path (Elem/Flat/Row) for hot loops in the statistical models.
//   - Keep value semantics: Clone is a deep copy, nothing shares a buffer implicitly.
//
// Complexity quicksheet:
//   - NewDense: O(r*c) zero-init; At/Set/Elem/Flat: O(1); Row: O(1) span; Clone: O(r*c).

package matrix

import (
	"fmt"
	"math"
	"strings"
)

// ---------- error context tags ----------

const (
	ctxAt   = "At"   // method tag used in error wrappers
	ctxSet  = "Set"  // method tag used in error wrappers
	ctxFlat = "Flat" // method tag used in error wrappers
)

// ---------- Formatting literals ----------
const (
	_fmtRowOpen  = "["
	_fmtRowClose = "]\n"
	_fmtSep      = ", "
)

// denseErrorf wraps an error with a uniform Dense context and callsite indices.
// Keeps the sentinel reachable through %w.
func denseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Dense.%s(%d,%d): %w", method, row, col, err)
}

// Dense is a concrete row-major matrix.
//   - r,c hold dimensions (rows, cols), both > 0.
//   - data is a flat buffer of length r*c in row-major order (offset = i*c + j).
//   - validateNaNInf enables optional NaN/Inf rejection in Set.
type Dense struct {
	r, c           int       // row and column counts
	data           []float64 // contiguous row-major storage (len == r*c)
	validateNaNInf bool      // numeric guard: reject NaN/Inf in Set when true
}

// Compile-time assertions for interface & fmt.Stringer conformance.
var (
	_ Matrix       = (*Dense)(nil)
	_ fmt.Stringer = (*Dense)(nil)
)

// NewDense creates an r×c zero matrix using row-major storage.
//
// Errors:
//   - ErrInvalidDimensions when rows<=0 or cols<=0.
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func NewDense(rows, cols int, opts ...Option) (*Dense, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrInvalidDimensions
	}
	o := gatherOptions(opts...)

	return &Dense{
		r:              rows,
		c:              cols,
		data:           make([]float64, rows*cols), // zero-filled by the runtime
		validateNaNInf: o.validateNaNInf,
	}, nil
}

// NewFilled creates an r×c matrix with every cell set to v.
// Mirrors the size+fill-value construction used throughout the statistical models.
func NewFilled(rows, cols int, v float64, opts ...Option) (*Dense, error) {
	m, err := NewDense(rows, cols, opts...)
	if err != nil {
		return nil, err
	}
	for i := range m.data {
		m.data[i] = v
	}

	return m, nil
}

// NewFromData copies a flat row-major slice into a new rows×cols matrix.
//
// Errors:
//   - ErrInvalidDimensions for non-positive shapes.
//   - ErrDimensionMismatch when len(data) != rows*cols.
func NewFromData(rows, cols int, data []float64) (*Dense, error) {
	m, err := NewDense(rows, cols)
	if err != nil {
		return nil, err
	}
	if len(data) != rows*cols {
		return nil, ErrDimensionMismatch
	}
	copy(m.data, data)

	return m, nil
}

// NewFromRows copies a set of equally sized rows into a new matrix.
//
// Errors:
//   - ErrInvalidDimensions when there are no rows or the first row is empty.
//   - ErrDimensionMismatch when the rows are jagged.
func NewFromRows(rows [][]float64) (*Dense, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrInvalidDimensions
	}
	c := len(rows[0])
	m, err := NewDense(len(rows), c)
	if err != nil {
		return nil, err
	}
	for i, row := range rows {
		if len(row) != c {
			return nil, denseErrorf("NewFromRows", i, len(row), ErrDimensionMismatch)
		}
		copy(m.data[i*c:(i+1)*c], row)
	}

	return m, nil
}

// NewColumn builds an n×1 column vector from v (copied).
func NewColumn(v []float64) (*Dense, error) {
	return NewFromData(len(v), 1, v)
}

// Rows returns the row count. No side effects.
func (m *Dense) Rows() int { return m.r }

// Cols returns the column count. No side effects.
func (m *Dense) Cols() int { return m.c }

// Shape packs Rows() and Cols() into a single call for convenience.
func (m *Dense) Shape() (rows, cols int) { return m.r, m.c }

// Len returns the number of cells (rows*cols).
func (m *Dense) Len() int { return len(m.data) }

// indexOf bounds-checks (row,col) and computes the flat offset.
// The caller wraps the sentinel with its own method tag.
func (m *Dense) indexOf(row, col int) (int, error) {
	if row < 0 || row >= m.r || col < 0 || col >= m.c {
		return 0, ErrOutOfRange
	}

	return row*m.c + col, nil
}

// At retrieves the element at (row, col).
// Errors: ErrOutOfRange (wrapped with coordinates).
func (m *Dense) At(row, col int) (float64, error) {
	idx, err := m.indexOf(row, col)
	if err != nil {
		return 0, denseErrorf(ctxAt, row, col, err)
	}

	return m.data[idx], nil
}

// Set assigns v at (row, col).
// Errors: ErrOutOfRange; ErrNaNInf when the matrix validates values and v is not finite.
func (m *Dense) Set(row, col int, v float64) error {
	idx, err := m.indexOf(row, col)
	if err != nil {
		return denseErrorf(ctxSet, row, col, err)
	}
	if m.validateNaNInf && (math.IsNaN(v) || math.IsInf(v, 0)) {
		return denseErrorf(ctxSet, row, col, ErrNaNInf)
	}
	m.data[idx] = v

	return nil
}

// Elem is the unchecked accessor: it panics like a slice index on misuse.
// Intended for hot loops whose indices are already validated.
func (m *Dense) Elem(row, col int) float64 { return m.data[row*m.c+col] }

// SetElem is the unchecked counterpart of Set (no bounds or NaN policy checks).
func (m *Dense) SetElem(row, col int, v float64) { m.data[row*m.c+col] = v }

// Flat returns the i-th cell in row-major order.
// Errors: ErrOutOfRange.
func (m *Dense) Flat(i int) (float64, error) {
	if i < 0 || i >= len(m.data) {
		return 0, denseErrorf(ctxFlat, i, 0, ErrOutOfRange)
	}

	return m.data[i], nil
}

// Row returns the raw span data[r*cols : r*cols+cols]; writes are visible in m.
// Panics on an invalid r, like a slice expression.
func (m *Dense) Row(r int) []float64 {
	base := r * m.c

	return m.data[base : base+m.c : base+m.c]
}

// Column returns a copy of column c.
// Errors: ErrOutOfRange.
func (m *Dense) Column(c int) ([]float64, error) {
	if c < 0 || c >= m.c {
		return nil, denseErrorf("Column", 0, c, ErrOutOfRange)
	}
	out := make([]float64, m.r)
	for i := 0; i < m.r; i++ {
		out[i] = m.data[i*m.c+c]
	}

	return out, nil
}

// Data exposes the row-major backing buffer (no copy).
func (m *Dense) Data() []float64 { return m.data }

// Clone returns a deep copy of the Dense matrix.
// Complexity: O(r*c) time and memory.
func (m *Dense) Clone() Matrix { return m.Copy() }

// Copy is the concretely typed variant of Clone.
func (m *Dense) Copy() *Dense {
	buf := make([]float64, len(m.data))
	copy(buf, m.data)

	return &Dense{r: m.r, c: m.c, data: buf, validateNaNInf: m.validateNaNInf}
}

// Equal reports exact cell-by-cell equality with identical shape.
// NaN cells never compare equal, as with ==.
func (m *Dense) Equal(other *Dense) bool {
	if other == nil || m.r != other.r || m.c != other.c {
		return false
	}
	for i, v := range m.data {
		if v != other.data[i] {
			return false
		}
	}

	return true
}

// String implements fmt.Stringer for diagnostics (not a serialization format).
// Complexity: O(r*c).
func (m *Dense) String() string {
	var b strings.Builder
	var i, j int
	for i = 0; i < m.r; i++ {
		b.WriteString(_fmtRowOpen)
		for j = 0; j < m.c; j++ {
			fmt.Fprintf(&b, "%g", m.data[i*m.c+j])
			if j < m.c-1 {
				b.WriteString(_fmtSep)
			}
		}
		b.WriteString(_fmtRowClose)
	}

	return b.String()
}
