// SPDX-License-Identifier: MIT

package gaussian

import (
	"fmt"
	"math"
	"math/rand"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// UnivariateMember is one (density, weight) pair of a UnivariateMixture.
type UnivariateMember struct {
	PDF    UnivariatePDF
	Weight float64
}

// UnivariateMixture is a weighted sum of univariate normal densities.
// The zero value is an empty, Uninitialized mixture ready for EM.
type UnivariateMixture struct {
	members []UnivariateMember
	state   State

	// training buffers, valid during EM only
	data []float64
	resp [][]float64
}

// NewUnivariateMixture builds a mixture from explicit members (copied).
func NewUnivariateMixture(members ...UnivariateMember) *UnivariateMixture {
	return &UnivariateMixture{members: append([]UnivariateMember(nil), members...)}
}

// Len returns the number of members.
func (m *UnivariateMixture) Len() int { return len(m.members) }

// State returns the EM lifecycle state.
func (m *UnivariateMixture) State() State { return m.state }

// Member returns the density of member i.
// Errors: ErrOutOfRange.
func (m *UnivariateMixture) Member(i int) (UnivariatePDF, error) {
	if i < 0 || i >= len(m.members) {
		return UnivariatePDF{}, gaussianErrorf("Member", ErrOutOfRange)
	}

	return m.members[i].PDF, nil
}

// Weight returns the weight of member i.
// Errors: ErrOutOfRange.
func (m *UnivariateMixture) Weight(i int) (float64, error) {
	if i < 0 || i >= len(m.members) {
		return 0, gaussianErrorf("Weight", ErrOutOfRange)
	}

	return m.members[i].Weight, nil
}

// SetMember replaces member i.
// Errors: ErrOutOfRange.
func (m *UnivariateMixture) SetMember(i int, pdf UnivariatePDF, weight float64) error {
	if i < 0 || i >= len(m.members) {
		return gaussianErrorf("SetMember", ErrOutOfRange)
	}
	m.members[i] = UnivariateMember{PDF: pdf, Weight: weight}

	return nil
}

// AddMember appends a member.
func (m *UnivariateMixture) AddMember(pdf UnivariatePDF, weight float64) {
	m.members = append(m.members, UnivariateMember{PDF: pdf, Weight: weight})
}

// ValueAt returns Σ w_k·pdf_k(x).
func (m *UnivariateMixture) ValueAt(x float64) float64 {
	var v float64
	for _, mb := range m.members {
		v += mb.Weight * mb.PDF.ValueAt(x)
	}

	return v
}

// IsValid reports at least one member, valid densities and finite
// non-negative weights.
func (m *UnivariateMixture) IsValid() bool {
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

// LogLikelihood returns Σ_i log ValueAt(x_i). An empty mixture gives -Inf
// for non-empty data.
func (m *UnivariateMixture) LogLikelihood(data []float64) float64 {
	var ll float64
	for _, x := range data {
		ll += math.Log(m.ValueAt(x))
	}

	return ll
}

// MemberProbabilities returns the posterior responsibility of every member for x.
func (m *UnivariateMixture) MemberProbabilities(x float64) []float64 {
	row := make([]float64, len(m.members))
	logRow := make([]float64, len(m.members))
	m.weighted(x, row, logRow)
	responsibilities(row, logRow)

	return row
}

// Classify returns the index of the most responsible member for x (first wins),
// or -1 for an empty mixture.
func (m *UnivariateMixture) Classify(x float64) int {
	if len(m.members) == 0 {
		return -1
	}

	return argmax(m.MemberProbabilities(x))
}

func (m *UnivariateMixture) weighted(x float64, row, logRow []float64) {
	for k, mb := range m.members {
		row[k] = mb.Weight * mb.PDF.ValueAt(x)
		logRow[k] = math.Log(mb.Weight) + mb.PDF.LogValueAt(x)
	}
}

// Sample draws one value: a member chosen by weight, then a normal deviate.
// Errors: ErrInvalidArgument for an empty mixture or a nil rng.
func (m *UnivariateMixture) Sample(rng *rand.Rand) (float64, error) {
	if len(m.members) == 0 || rng == nil {
		return math.NaN(), gaussianErrorf("Sample", ErrInvalidArgument)
	}
	total := 0.0
	for _, mb := range m.members {
		total += mb.Weight
	}
	u := rng.Float64() * total
	k := len(m.members) - 1
	for i, mb := range m.members {
		if u < mb.Weight {
			k = i
			break
		}
		u -= mb.Weight
	}
	pdf := m.members[k].PDF

	return pdf.mean + pdf.StdDev()*rng.NormFloat64(), nil
}

// SampleN draws n values with Sample.
func (m *UnivariateMixture) SampleN(n int, rng *rand.Rand) ([]float64, error) {
	if n < 0 {
		return nil, gaussianErrorf("SampleN", ErrInvalidArgument)
	}
	out := make([]float64, n)
	for i := range out {
		v, err := m.Sample(rng)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}

	return out, nil
}

// EM replaces the members with nbSeeds densities fitted to data.
//
// Seeding: means equally spaced from min(data) to max(data) (the midpoint for
// a single seed), equal weights, and a common σ starting at range/(2·nbSeeds)
// (1 for constant data) doubled for each member until at least one sample lies
// within one σ of its mean or σ reaches +Inf. Seed positions are interpolated
// without forming max-min, so data spanning more than the float64 range still
// seeds finite means (and typically ends Degenerate).
//
// Iteration:
//  1. E-step: responsibilities r_ik = w_k·p_k(x_i) / Σ_j w_j·p_j(x_i), falling
//     back to log-sum-exp when the direct sum under- or overflows.
//  2. M-step: w_k = Σ_i r_ik / n and the r-weighted mean and biased variance
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
//	Time   = O(iter · n · nbSeeds)
//	Memory = O(n · nbSeeds)
//
// Errors (input only):
//   - ErrInvalidArgument: empty data or non-finite samples.
//   - ErrOutOfRange: nbSeeds <= 0.
func (m *UnivariateMixture) EM(data []float64, nbSeeds int, opts ...Option) (Result, error) {
	if len(data) == 0 {
		return Result{}, gaussianErrorf("EM", ErrInvalidArgument)
	}
	if nbSeeds <= 0 {
		return Result{}, gaussianErrorf("EM", ErrOutOfRange)
	}
	for _, x := range data {
		if !isFinite(x) {
			return Result{}, gaussianErrorf("EM", ErrInvalidArgument)
		}
	}
	o := gatherOptions(opts...)

	m.seed(data, nbSeeds)
	m.data = data
	m.resp = make([][]float64, len(data))
	for i := range m.resp {
		m.resp[i] = make([]float64, nbSeeds)
	}
	defer func() { m.data, m.resp = nil, nil }()

	return runEM(m, o), nil
}

func (m *UnivariateMixture) seed(data []float64, n int) {
	lo, hi := floats.Min(data), floats.Max(data)
	sigma := hi/float64(2*n) - lo/float64(2*n)
	if sigma == 0 {
		sigma = 1
	}
	m.members = make([]UnivariateMember, n)
	for k := 0; k < n; k++ {
		mu := seedPosition(lo, hi, k, n)
		s := sigma
		for !anyWithin(data, mu, s) && !math.IsInf(s, 1) {
			s *= 2
		}
		m.members[k] = UnivariateMember{PDF: NewUnivariatePDF(mu, s*s), Weight: 1 / float64(n)}
	}
	m.state = Seeded
}

func anyWithin(data []float64, mu, sigma float64) bool {
	for _, x := range data {
		if math.Abs(x-mu) <= sigma {
			return true
		}
	}

	return false
}

func (m *UnivariateMixture) logLikelihood() float64 { return m.LogLikelihood(m.data) }

func (m *UnivariateMixture) snapshot() func() {
	backup := append([]UnivariateMember(nil), m.members...)

	return func() { m.members = backup }
}

func (m *UnivariateMixture) setState(s State) { m.state = s }

func (m *UnivariateMixture) step() {
	n := len(m.data)
	logRow := make([]float64, len(m.members))
	for i, x := range m.data {
		m.weighted(x, m.resp[i], logRow)
		responsibilities(m.resp[i], logRow)
	}

	col := make([]float64, n)
	for k := range m.members {
		for i := range col {
			col[i] = m.resp[i][k]
		}
		den := floats.Sum(col)
		if den == 0 {
			m.members[k].Weight = 0
			continue
		}
		mu := weightedMean(col, den, func(i int) float64 { return m.data[i] })
		variance := weightedMean(col, den, func(i int) float64 {
			d := m.data[i] - mu
			return d * d
		})
		m.members[k] = UnivariateMember{PDF: NewUnivariatePDF(mu, variance), Weight: den / float64(n)}
	}
}

func (m *UnivariateMixture) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "UnivariateMixture(%d members, %s)\n", len(m.members), m.state)
	for k, mb := range m.members {
		fmt.Fprintf(&b, "  [%d] w=%g %s\n", k, mb.Weight, mb.PDF)
	}

	return b.String()
}

// argmax returns the first index of the largest value (NaN never wins).
func argmax(v []float64) int {
	best := 0
	for i := 1; i < len(v); i++ {
		if v[i] > v[best] {
			best = i
		}
	}

	return best
}
