// SPDX-License-Identifier: MIT

// Package matrix - reductions and column-wise normalizers of Dense.
//
// Ties are resolved deterministically: the first extreme in row-major order
// (or in ascending index order for row/column scans) wins, using strict < / >.
// NaN cells never win a comparison.

package matrix

import "math"

// Min returns the smallest cell.
func (m *Dense) Min() float64 {
	r, c := m.Argmin()

	return m.data[r*m.c+c]
}

// Max returns the largest cell.
func (m *Dense) Max() float64 {
	r, c := m.Argmax()

	return m.data[r*m.c+c]
}

// Argmax returns the (row, col) of the first largest cell in row-major order.
func (m *Dense) Argmax() (row, col int) {
	best := 0
	for i := 1; i < len(m.data); i++ {
		if m.data[i] > m.data[best] {
			best = i
		}
	}

	return best / m.c, best % m.c
}

// Argmin returns the (row, col) of the first smallest cell in row-major order.
func (m *Dense) Argmin() (row, col int) {
	best := 0
	for i := 1; i < len(m.data); i++ {
		if m.data[i] < m.data[best] {
			best = i
		}
	}

	return best / m.c, best % m.c
}

// ArgmaxInColumn returns the row index of the first largest cell of column c.
// Errors: ErrOutOfRange.
func (m *Dense) ArgmaxInColumn(c int) (int, error) {
	if err := m.validateCol("ArgmaxInColumn", c); err != nil {
		return 0, err
	}
	best := 0
	for i := 1; i < m.r; i++ {
		if m.data[i*m.c+c] > m.data[best*m.c+c] {
			best = i
		}
	}

	return best, nil
}

// ArgminInColumn returns the row index of the first smallest cell of column c.
// Errors: ErrOutOfRange.
func (m *Dense) ArgminInColumn(c int) (int, error) {
	if err := m.validateCol("ArgminInColumn", c); err != nil {
		return 0, err
	}
	best := 0
	for i := 1; i < m.r; i++ {
		if m.data[i*m.c+c] < m.data[best*m.c+c] {
			best = i
		}
	}

	return best, nil
}

// ArgmaxInRow returns the column index of the first largest cell of row r.
// Errors: ErrOutOfRange.
func (m *Dense) ArgmaxInRow(r int) (int, error) {
	if err := m.validateRow("ArgmaxInRow", r); err != nil {
		return 0, err
	}
	row := m.Row(r)
	best := 0
	for j := 1; j < len(row); j++ {
		if row[j] > row[best] {
			best = j
		}
	}

	return best, nil
}

// CumulateCells returns the sum of all cells in row-major order.
func (m *Dense) CumulateCells() float64 {
	sum := ZeroSum
	for _, v := range m.data {
		sum += v
	}

	return sum
}

// RowSum returns the sum of row r.
// Errors: ErrOutOfRange.
func (m *Dense) RowSum(r int) (float64, error) {
	if err := m.validateRow("RowSum", r); err != nil {
		return 0, err
	}
	sum := ZeroSum
	for _, v := range m.Row(r) {
		sum += v
	}

	return sum, nil
}

// ColumnSum returns the sum of column c.
// Errors: ErrOutOfRange.
func (m *Dense) ColumnSum(c int) (float64, error) {
	if err := m.validateCol("ColumnSum", c); err != nil {
		return 0, err
	}
	sum := ZeroSum
	for i := 0; i < m.r; i++ {
		sum += m.data[i*m.c+c]
	}

	return sum, nil
}

// columnMeans returns the arithmetic mean of every column.
func (m *Dense) columnMeans() []float64 {
	means := make([]float64, m.c)
	var i, j int
	for i = 0; i < m.r; i++ {
		base := i * m.c
		for j = 0; j < m.c; j++ {
			means[j] += m.data[base+j]
		}
	}
	inv := 1.0 / float64(m.r)
	for j = range means {
		means[j] *= inv
	}

	return means
}

// CenterColumns subtracts each column's mean from that column, in place,
// and returns the means that were removed.
func (m *Dense) CenterColumns() []float64 {
	means := m.columnMeans()
	var i, j int
	for i = 0; i < m.r; i++ {
		base := i * m.c
		for j = 0; j < m.c; j++ {
			m.data[base+j] -= means[j]
		}
	}

	return means
}

// ReduceColumns divides each column by its population standard deviation, in place.
// A column whose deviation is zero (|σ| <= WithZeroTolerance, exact by default)
// is left unchanged. Columns are not centred.
func (m *Dense) ReduceColumns(opts ...Option) {
	o := gatherOptions(opts...)
	means := m.columnMeans()
	devs := make([]float64, m.c)
	var i, j int
	var d float64
	for i = 0; i < m.r; i++ {
		base := i * m.c
		for j = 0; j < m.c; j++ {
			d = m.data[base+j] - means[j]
			devs[j] += d * d
		}
	}
	for j = range devs {
		devs[j] = math.Sqrt(devs[j] / float64(m.r))
	}
	for i = 0; i < m.r; i++ {
		base := i * m.c
		for j = 0; j < m.c; j++ {
			if math.Abs(devs[j]) <= o.zeroTol {
				continue
			}
			m.data[base+j] /= devs[j]
		}
	}
}

// NormalizeForConvolution scales the matrix so that its cells sum to 1.
// When the sum is zero (a balanced kernel), it divides by half the absolute sum
// instead so positive and negative lobes each weigh 1. A matrix whose absolute
// sum is zero as well is left unchanged. Zero checks honour WithZeroTolerance.
func (m *Dense) NormalizeForConvolution(opts ...Option) {
	o := gatherOptions(opts...)
	sum, sumAbs := ZeroSum, ZeroSum
	for _, v := range m.data {
		sum += v
		sumAbs += math.Abs(v)
	}
	div := sum
	if math.Abs(div) <= o.zeroTol {
		div = sumAbs / 2
		if div <= o.zeroTol {
			return
		}
	}
	m.DivideInPlace(div)
}

// MakeCovariance returns the cols×cols covariance of the rows, dividing by rows
// (biased estimator). The result is exactly symmetric.
func (m *Dense) MakeCovariance() *Dense {
	cov, _ := NewDense(m.c, m.c)
	means := m.columnMeans()
	var i, j, k int
	var dj float64
	for i = 0; i < m.r; i++ {
		base := i * m.c
		for j = 0; j < m.c; j++ {
			dj = m.data[base+j] - means[j]
			for k = j; k < m.c; k++ {
				cov.data[j*m.c+k] += dj * (m.data[base+k] - means[k])
			}
		}
	}
	inv := 1.0 / float64(m.r)
	for j = 0; j < m.c; j++ {
		for k = j; k < m.c; k++ {
			cov.data[j*m.c+k] *= inv
			cov.data[k*m.c+j] = cov.data[j*m.c+k]
		}
	}

	return cov
}
