// SPDX-License-Identifier: MIT

// Package matrix - in-place mutators of Dense.
//
// Contract shared by every method in this file:
//   - Indices are validated first; on failure the receiver is left untouched
//     and a wrapped ErrOutOfRange / ErrDimensionMismatch is returned.
//   - Arithmetic is plain IEEE-754; a zero divisor yields ±Inf/NaN, never an error.
//   - The NaN/Inf policy of Set is not applied here: mutators are bulk numeric
//     operations and propagate non-finite values.

package matrix

// Method tags for mutator error wrapping.
const (
	opIncreaseElement = "IncreaseElement"
	opIncreaseRow     = "IncreaseRow"
	opIncreaseColumn  = "IncreaseColumn"
	opSwapRows        = "SwapRows"
	opSwapColumns     = "SwapColumns"
	opMultRow         = "MultRow"
	opMultColumn      = "MultColumn"
	opMulInPlace      = "MulInPlace"
	opAddInPlace      = "AddInPlace"
	opSubInPlace      = "SubInPlace"
)

// SetAll assigns v to every cell.
func (m *Dense) SetAll(v float64) {
	for i := range m.data {
		m.data[i] = v
	}
}

// IncreaseElement adds delta to cell (r, c).
// Errors: ErrOutOfRange.
func (m *Dense) IncreaseElement(r, c int, delta float64) error {
	idx, err := m.indexOf(r, c)
	if err != nil {
		return denseErrorf(opIncreaseElement, r, c, err)
	}
	m.data[idx] += delta

	return nil
}

// IncreaseRow adds delta to every cell of row r.
// Errors: ErrOutOfRange.
func (m *Dense) IncreaseRow(r int, delta float64) error {
	if err := m.validateRow(opIncreaseRow, r); err != nil {
		return err
	}
	row := m.Row(r)
	for j := range row {
		row[j] += delta
	}

	return nil
}

// IncreaseColumn adds delta to every cell of column c.
// Errors: ErrOutOfRange.
func (m *Dense) IncreaseColumn(c int, delta float64) error {
	if err := m.validateCol(opIncreaseColumn, c); err != nil {
		return err
	}
	for i := 0; i < m.r; i++ {
		m.data[i*m.c+c] += delta
	}

	return nil
}

// SwapRows exchanges rows r1 and r2. Swapping a row with itself is a no-op.
// Errors: ErrOutOfRange.
func (m *Dense) SwapRows(r1, r2 int) error {
	if err := m.validateRow(opSwapRows, r1); err != nil {
		return err
	}
	if err := m.validateRow(opSwapRows, r2); err != nil {
		return err
	}
	m.swapRowsUnchecked(r1, r2)

	return nil
}

// swapRowsUnchecked exchanges two valid rows element by element.
func (m *Dense) swapRowsUnchecked(r1, r2 int) {
	if r1 == r2 {
		return
	}
	a, b := m.Row(r1), m.Row(r2)
	for j := range a {
		a[j], b[j] = b[j], a[j]
	}
}

// SwapColumns exchanges columns c1 and c2.
// Errors: ErrOutOfRange.
func (m *Dense) SwapColumns(c1, c2 int) error {
	if err := m.validateCol(opSwapColumns, c1); err != nil {
		return err
	}
	if err := m.validateCol(opSwapColumns, c2); err != nil {
		return err
	}
	if c1 == c2 {
		return nil
	}
	var base int
	for i := 0; i < m.r; i++ {
		base = i * m.c
		m.data[base+c1], m.data[base+c2] = m.data[base+c2], m.data[base+c1]
	}

	return nil
}

// MultRow multiplies every cell of row r by f.
// Errors: ErrOutOfRange.
func (m *Dense) MultRow(r int, f float64) error {
	if err := m.validateRow(opMultRow, r); err != nil {
		return err
	}
	row := m.Row(r)
	for j := range row {
		row[j] *= f
	}

	return nil
}

// MultColumn multiplies every cell of column c by f.
// Errors: ErrOutOfRange.
func (m *Dense) MultColumn(c int, f float64) error {
	if err := m.validateCol(opMultColumn, c); err != nil {
		return err
	}
	for i := 0; i < m.r; i++ {
		m.data[i*m.c+c] *= f
	}

	return nil
}

// MulInPlace replaces m with m×other. The column count of m becomes other.Cols().
// The receiver changes only after the m.Cols() == other.Rows() check succeeds.
//
// Errors: ErrNilMatrix, ErrDimensionMismatch.
// Complexity: O(r*n*c) time, one O(r*c) buffer.
func (m *Dense) MulInPlace(other Matrix) error {
	if err := ValidateMulCompatible(m, other); err != nil {
		return matrixErrorf(opMulInPlace, err)
	}
	db, _, err := asDense(other)
	if err != nil {
		return matrixErrorf(opMulInPlace, err)
	}
	buf := make([]float64, m.r*db.c)
	mulInto(buf, m, db)
	m.c = db.c
	m.data = buf

	return nil
}

// AddInPlace performs m += other cell by cell.
// Errors: ErrNilMatrix, ErrDimensionMismatch.
func (m *Dense) AddInPlace(other Matrix) error {
	return m.accumulate(other, +1, opAddInPlace)
}

// SubInPlace performs m -= other cell by cell.
// Errors: ErrNilMatrix, ErrDimensionMismatch.
func (m *Dense) SubInPlace(other Matrix) error {
	return m.accumulate(other, -1, opSubInPlace)
}

func (m *Dense) accumulate(other Matrix, sign float64, tag string) error {
	if err := ValidateBinarySameShape(m, other); err != nil {
		return matrixErrorf(tag, err)
	}
	db, _, err := asDense(other)
	if err != nil {
		return matrixErrorf(tag, err)
	}
	for i, v := range db.data {
		m.data[i] += sign * v
	}

	return nil
}

// ScaleInPlace multiplies every cell by f.
func (m *Dense) ScaleInPlace(f float64) {
	for i := range m.data {
		m.data[i] *= f
	}
}

// DivideInPlace divides every cell by d with plain IEEE division.
func (m *Dense) DivideInPlace(d float64) {
	for i := range m.data {
		m.data[i] /= d
	}
}
