// SPDX-License-Identifier: MIT

package gaussian

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/crnstat/matrix"
)

// MultivariateMember is one (density, weight) pair of a MultivariateMixture.
type MultivariateMember struct {
	PDF    *MultivariatePDF
	Weight float64
}

// MultivariateMixture is a weighted sum of d-dimensional normal densities.
// Patterns are the rows of a matrix.Matrix.
type MultivariateMixture struct {
	members []MultivariateMember
	state   State

	data *matrix.Dense
	resp [][]float64
}

// NewMultivariateMixture builds a mixture from explicit members (copied).
// Errors: ErrInvalidArgument for a nil density, ErrDimensionMismatch when
// members disagree on the dimension.
func NewMultivariateMixture(members ...MultivariateMember) (*MultivariateMixture, error) {
	m := &MultivariateMixture{}
	for _, mb := range members {
		if err := m.AddMember(mb.PDF, mb.Weight); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// Len returns the number of members.
func (m *MultivariateMixture) Len() int { return len(m.members) }

// State returns the EM lifecycle state.
func (m *MultivariateMixture) State() State { return m.state }

// Dimension returns the dimension shared by the members, 0 when empty.
func (m *MultivariateMixture) Dimension() int {
	if len(m.members) == 0 {
		return 0
	}

	return m.members[0].PDF.Dimension()
}

// Member returns the density of member i.
// Errors: ErrOutOfRange.
func (m *MultivariateMixture) Member(i int) (*MultivariatePDF, error) {
	if i < 0 || i >= len(m.members) {
		return nil, gaussianErrorf("Member", ErrOutOfRange)
	}

	return m.members[i].PDF, nil
}

// Weight returns the weight of member i.
// Errors: ErrOutOfRange.
func (m *MultivariateMixture) Weight(i int) (float64, error) {
	if i < 0 || i >= len(m.members) {
		return 0, gaussianErrorf("Weight", ErrOutOfRange)
	}

	return m.members[i].Weight, nil
}

// SetMember replaces member i.
// Errors: ErrOutOfRange, ErrInvalidArgument, ErrDimensionMismatch.
func (m *MultivariateMixture) SetMember(i int, pdf *MultivariatePDF, weight float64) error {
	if i < 0 || i >= len(m.members) {
		return gaussianErrorf("SetMember", ErrOutOfRange)
	}
	if pdf == nil {
		return gaussianErrorf("SetMember", ErrInvalidArgument)
	}
	if len(m.members) > 1 && pdf.Dimension() != m.members[(i+1)%len(m.members)].PDF.Dimension() {
		return gaussianErrorf("SetMember", ErrDimensionMismatch)
	}
	m.members[i] = MultivariateMember{PDF: pdf, Weight: weight}

	return nil
}

// AddMember appends a member.
// Errors: ErrInvalidArgument, ErrDimensionMismatch.
func (m *MultivariateMixture) AddMember(pdf *MultivariatePDF, weight float64) error {
	if pdf == nil {
		return gaussianErrorf("AddMember", ErrInvalidArgument)
	}
	if len(m.members) > 0 && pdf.Dimension() != m.Dimension() {
		return gaussianErrorf("AddMember", ErrDimensionMismatch)
	}
	m.members = append(m.members, MultivariateMember{PDF: pdf, Weight: weight})

	return nil
}

// ValueAt returns Σ w_k·pdf_k(x). Any member with a non positive-definite
// covariance makes the result NaN.
func (m *MultivariateMixture) ValueAt(x []float64) float64 {
	var v float64
	for _, mb := range m.members {
		v += mb.Weight * mb.PDF.ValueAt(x)
	}

	return v
}

// IsValid reports at least one member, valid densities and finite
// non-negative weights.
func (m *MultivariateMixture) IsValid() bool {
	if len(m.members) == 0 {
		return false
	}
	for _, mb := range m.members {
		if !mb.PDF.IsValid() || !isFinite(mb.Weight) || mb.Weight < 0 {
			return false
		}
	}

	return true
}

// LogLikelihood returns Σ_i log ValueAt(row_i) over the rows of data.
// A nil matrix or a column count different from Dimension yields NaN.
func (m *MultivariateMixture) LogLikelihood(data matrix.Matrix) float64 {
	d, err := toDense(data)
	if err != nil || (len(m.members) > 0 && d.Cols() != m.Dimension()) {
		return math.NaN()
	}

	return m.logLikelihoodDense(d)
}

func (m *MultivariateMixture) logLikelihoodDense(d *matrix.Dense) float64 {
	var ll float64
	for i := 0; i < d.Rows(); i++ {
		ll += math.Log(m.ValueAt(d.Row(i)))
	}

	return ll
}

// MemberProbabilities returns the posterior responsibility of every member for x.
func (m *MultivariateMixture) MemberProbabilities(x []float64) []float64 {
	row := make([]float64, len(m.members))
	logRow := make([]float64, len(m.members))
	m.weighted(x, row, logRow)
	responsibilities(row, logRow)

	return row
}

// Classify returns the index of the most responsible member for x (first wins),
// or -1 for an empty mixture.
func (m *MultivariateMixture) Classify(x []float64) int {
	if len(m.members) == 0 {
		return -1
	}

	return argmax(m.MemberProbabilities(x))
}

func (m *MultivariateMixture) weighted(x []float64, row, logRow []float64) {
	for k, mb := range m.members {
		row[k] = mb.Weight * mb.PDF.ValueAt(x)
		logRow[k] = math.Log(mb.Weight) + mb.PDF.LogValueAt(x)
	}
}

// EM replaces the members with nbSeeds densities fitted to the rows of data.
//
// Seeding: member k's mean takes, on every feature, the k-th of nbSeeds
// equally spaced values between the feature's min and max (the midpoint for a
// single seed); all members start with the global biased covariance and equal
// weights.
//
// Iteration:
//  1. E-step: responsibilities r_ik = w_k·p_k(x_i) / Σ_j w_j·p_j(x_i), falling
//     back to log-sum-exp when the direct sum under- or overflows.
//  2. M-step: w_k = Σ_i r_ik / n and the r-weighted mean and biased covariance
//     of every member. A member with Σ_i r_ik = 0 gets weight 0.
//  3. The step is kept when logL does not decrease, otherwise it is undone.
//
// Termination (reported in Result.Status and State):
//   - Converged: the gain is <= ε (WithEpsilon), an undone decrease is within
//     ε, or any decrease under WithStopOnDecrease.
//   - MaxIterReached: WithMaxIterations steps without converging.
//   - Degenerate: a step produced a NaN or infinite logL and was undone.
//
// Each step is logged at Debug and every rollback at Warn (WithLogger).
//
// Complexity:
//
//	Time   = O(iter · nbSeeds · (n·d² + d³))
//	Memory = O(n · nbSeeds)
//
// Errors (input only):
//   - ErrInvalidArgument: nil/empty data or non-finite values.
//   - ErrOutOfRange: nbSeeds <= 0.
func (m *MultivariateMixture) EM(data matrix.Matrix, nbSeeds int, opts ...Option) (Result, error) {
	if data == nil {
		return Result{}, gaussianErrorf("EM", ErrInvalidArgument)
	}
	if nbSeeds <= 0 {
		return Result{}, gaussianErrorf("EM", ErrOutOfRange)
	}
	d, err := toDense(data)
	if err != nil {
		return Result{}, gaussianErrorf("EM", ErrInvalidArgument)
	}
	if err = matrix.ValidateFinite(d); err != nil {
		return Result{}, gaussianErrorf("EM", ErrInvalidArgument)
	}
	o := gatherOptions(opts...)

	if err = m.seed(d, nbSeeds); err != nil {
		return Result{}, gaussianErrorf("EM", err)
	}
	m.data = d
	m.resp = make([][]float64, d.Rows())
	for i := range m.resp {
		m.resp[i] = make([]float64, nbSeeds)
	}
	defer func() { m.data, m.resp = nil, nil }()

	return runEM(m, o), nil
}

func (m *MultivariateMixture) seed(d *matrix.Dense, n int) error {
	cols := d.Cols()
	lo := make([]float64, cols)
	hi := make([]float64, cols)
	for j := 0; j < cols; j++ {
		c, _ := d.Column(j)
		lo[j], hi[j] = floats.Min(c), floats.Max(c)
	}
	cov := d.MakeCovariance()
	members := make([]MultivariateMember, n)
	for k := 0; k < n; k++ {
		mu := make([]float64, cols)
		for j := range mu {
			mu[j] = seedPosition(lo[j], hi[j], k, n)
		}
		pdf, err := NewMultivariatePDF(mu, cov)
		if err != nil {
			return err
		}
		members[k] = MultivariateMember{PDF: pdf, Weight: 1 / float64(n)}
	}
	m.members = members
	m.state = Seeded

	return nil
}

func (m *MultivariateMixture) logLikelihood() float64 { return m.logLikelihoodDense(m.data) }

func (m *MultivariateMixture) snapshot() func() {
	backup := append([]MultivariateMember(nil), m.members...)

	return func() { m.members = backup }
}

func (m *MultivariateMixture) setState(s State) { m.state = s }

func (m *MultivariateMixture) step() {
	rows, cols := m.data.Shape()
	logRow := make([]float64, len(m.members))
	for i := 0; i < rows; i++ {
		m.weighted(m.data.Row(i), m.resp[i], logRow)
		responsibilities(m.resp[i], logRow)
	}

	col := make([]float64, rows)
	for k := range m.members {
		for i := range col {
			col[i] = m.resp[i][k]
		}
		den := floats.Sum(col)
		if den == 0 {
			m.members[k].Weight = 0
			continue
		}
		mu := make([]float64, cols)
		for j := range mu {
			mu[j] = weightedMean(col, den, func(i int) float64 { return m.data.Elem(i, j) })
		}
		cov, _ := matrix.NewDense(cols, cols)
		for a := 0; a < cols; a++ {
			for b := a; b < cols; b++ {
				v := weightedMean(col, den, func(i int) float64 {
					return (m.data.Elem(i, a) - mu[a]) * (m.data.Elem(i, b) - mu[b])
				})
				cov.SetElem(a, b, v)
				cov.SetElem(b, a, v)
			}
		}
		pdf, err := NewMultivariatePDF(mu, cov)
		if err != nil {
			continue // shapes are fixed by construction
		}
		m.members[k] = MultivariateMember{PDF: pdf, Weight: den / float64(rows)}
	}
}

func (m *MultivariateMixture) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "MultivariateMixture(%d members, %s)\n", len(m.members), m.state)
	for k, mb := range m.members {
		fmt.Fprintf(&b, "  [%d] w=%g %s", k, mb.Weight, mb.PDF)
	}

	return b.String()
}

// toDense views m as a *matrix.Dense, copying only when it is another implementation.
func toDense(m matrix.Matrix) (*matrix.Dense, error) {
	if m == nil {
		return nil, ErrInvalidArgument
	}
	if d, ok := m.(*matrix.Dense); ok {
		return d, nil
	}
	out, err := matrix.NewDense(m.Rows(), m.Cols())
	if err != nil {
		return nil, err
	}
	for i := 0; i < m.Rows(); i++ {
		for j := 0; j < m.Cols(); j++ {
			v, err := m.At(i, j)
			if err != nil {
				return nil, err
			}
			out.SetElem(i, j, v)
		}
	}

	return out, nil
}
