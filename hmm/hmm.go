// SPDX-License-Identifier: MIT

package hmm

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/crnstat/matrix"
)

// stochasticTolerance bounds |Σ row − 1| in IsStochastic.
const stochasticTolerance = 1e-9

// DiscreteHMM is a discrete-emission hidden Markov model λ = (A, B, π).
// A model is owned by one goroutine at a time; training mutates it in place.
type DiscreteHMM struct {
	n, k int
	a    *matrix.Dense // N×N, a[i][j] = P(q_{t+1}=j | q_t=i)
	b    *matrix.Dense // N×K, b[i][s] = P(o_t=s | q_t=i)
	pi   []float64
	opts Options
}

// New returns an N-state, K-symbol model with uniform A, B and π.
//
// Errors: ErrInvalidArgument when nbStates or nbSymbols is not positive.
func New(nbStates, nbSymbols int, opts ...Option) (*DiscreteHMM, error) {
	if nbStates <= 0 || nbSymbols <= 0 {
		return nil, hmmErrorf("New", ErrInvalidArgument)
	}
	a, err := matrix.NewFilled(nbStates, nbStates, 1/float64(nbStates))
	if err != nil {
		return nil, hmmErrorf("New", err)
	}
	b, err := matrix.NewFilled(nbStates, nbSymbols, 1/float64(nbSymbols))
	if err != nil {
		return nil, hmmErrorf("New", err)
	}
	pi := make([]float64, nbStates)
	for i := range pi {
		pi[i] = 1 / float64(nbStates)
	}

	return &DiscreteHMM{n: nbStates, k: nbSymbols, a: a, b: b, pi: pi, opts: gatherOptions(opts...)}, nil
}

// States returns N.
func (h *DiscreteHMM) States() int { return h.n }

// Symbols returns K.
func (h *DiscreteHMM) Symbols() int { return h.k }

// Transitions returns a copy of A.
func (h *DiscreteHMM) Transitions() *matrix.Dense { return h.a.Copy() }

// Emissions returns a copy of B.
func (h *DiscreteHMM) Emissions() *matrix.Dense { return h.b.Copy() }

// Initial returns a copy of π.
func (h *DiscreteHMM) Initial() []float64 { return append([]float64(nil), h.pi...) }

// SetTransitions replaces A with a copy of m.
// Errors: ErrInvalidArgument (nil), ErrDimensionMismatch (not N×N).
func (h *DiscreteHMM) SetTransitions(m matrix.Matrix) error {
	d, err := copyShaped(m, h.n, h.n)
	if err != nil {
		return hmmErrorf("SetTransitions", err)
	}
	h.a = d

	return nil
}

// SetEmissions replaces B with a copy of m.
// Errors: ErrInvalidArgument (nil), ErrDimensionMismatch (not N×K).
func (h *DiscreteHMM) SetEmissions(m matrix.Matrix) error {
	d, err := copyShaped(m, h.n, h.k)
	if err != nil {
		return hmmErrorf("SetEmissions", err)
	}
	h.b = d

	return nil
}

// SetInitial replaces π with a copy of p.
// Errors: ErrDimensionMismatch (len(p) != N).
func (h *DiscreteHMM) SetInitial(p []float64) error {
	if len(p) != h.n {
		return hmmErrorf("SetInitial", ErrDimensionMismatch)
	}
	h.pi = append([]float64(nil), p...)

	return nil
}

// SetTransition sets A[i][j].
func (h *DiscreteHMM) SetTransition(i, j int, p float64) error {
	if i < 0 || i >= h.n || j < 0 || j >= h.n {
		return hmmErrorf("SetTransition", ErrOutOfRange)
	}
	h.a.SetElem(i, j, p)

	return nil
}

// SetEmission sets B[i][s].
func (h *DiscreteHMM) SetEmission(i, s int, p float64) error {
	if i < 0 || i >= h.n || s < 0 || s >= h.k {
		return hmmErrorf("SetEmission", ErrOutOfRange)
	}
	h.b.SetElem(i, s, p)

	return nil
}

// SetInitialProbability sets π[i].
func (h *DiscreteHMM) SetInitialProbability(i int, p float64) error {
	if i < 0 || i >= h.n {
		return hmmErrorf("SetInitialProbability", ErrOutOfRange)
	}
	h.pi[i] = p

	return nil
}

func copyShaped(m matrix.Matrix, rows, cols int) (*matrix.Dense, error) {
	if m == nil {
		return nil, ErrInvalidArgument
	}
	if m.Rows() != rows || m.Cols() != cols {
		return nil, ErrDimensionMismatch
	}
	d, err := matrix.NewDense(rows, cols)
	if err != nil {
		return nil, err
	}
	var v float64
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, err
			}
			d.SetElem(i, j, v)
		}
	}

	return d, nil
}

// IsValid reports whether A is N×N, B is N×K and π has N entries for the
// stored N and K. The zero DiscreteHMM is not valid. Probabilities are not
// inspected; see IsStochastic.
func (h *DiscreteHMM) IsValid() bool {
	if h.n <= 0 || h.k <= 0 || h.a == nil || h.b == nil {
		return false
	}

	return h.a.Rows() == h.n && h.a.Cols() == h.n &&
		h.b.Rows() == h.n && h.b.Cols() == h.k &&
		len(h.pi) == h.n
}

// IsStochastic reports a valid shape plus finite non-negative parameters
// with every row of A and B, and π, summing to 1 within 1e-9.
func (h *DiscreteHMM) IsStochastic() bool {
	if !h.IsValid() || !stochastic(h.pi) {
		return false
	}
	for i := 0; i < h.n; i++ {
		if !stochastic(h.a.Row(i)) || !stochastic(h.b.Row(i)) {
			return false
		}
	}

	return true
}

func stochastic(row []float64) bool {
	for _, v := range row {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return false
		}
	}

	return math.Abs(floats.Sum(row)-1) <= stochasticTolerance
}

// Equals compares shapes and every parameter within the convergence
// tolerance of h (exact by default).
func (h *DiscreteHMM) Equals(other *DiscreteHMM) bool {
	if other == nil || h.n != other.n || h.k != other.k {
		return false
	}
	tol := h.opts.convergenceTol

	return closeAll(h.a.Data(), other.a.Data(), tol) &&
		closeAll(h.b.Data(), other.b.Data(), tol) &&
		closeAll(h.pi, other.pi, tol)
}

func closeAll(x, y []float64, tol float64) bool {
	if tol == 0 {
		return floats.Equal(x, y)
	}

	return floats.EqualApprox(x, y, tol)
}

// Clone returns a deep copy sharing the options.
func (h *DiscreteHMM) Clone() *DiscreteHMM {
	return &DiscreteHMM{n: h.n, k: h.k, a: h.a.Copy(), b: h.b.Copy(), pi: h.Initial(), opts: h.opts}
}

// ForceConsistency renormalises each row of A and B whose sum differs from 1
// by more than the consistency tolerance (any difference by default). Rows
// summing to zero are left alone. It returns the number of rows changed.
func (h *DiscreteHMM) ForceConsistency() int {
	changed := 0
	for _, m := range []*matrix.Dense{h.a, h.b} {
		for i := 0; i < h.n; i++ {
			row := m.Row(i)
			s := floats.Sum(row)
			if s == 0 || math.Abs(s-1) <= h.opts.consistencyTol {
				continue
			}
			for j := range row {
				row[j] /= s
			}
			changed++
		}
	}

	return changed
}

func (h *DiscreteHMM) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "DiscreteHMM(N=%d, K=%d)\n", h.n, h.k)
	fmt.Fprintf(&b, "pi %v\nA\n%sB\n%s", h.pi, h.a, h.b)

	return b.String()
}
