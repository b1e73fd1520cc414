// SPDX-License-Identifier: MIT

package hmm

import (
	"math"

	"github.com/katalvlaran/crnstat/matrix"
)

// checkObservations validates a symbol sequence against K.
func (h *DiscreteHMM) checkObservations(op string, obs []int) error {
	if len(obs) == 0 {
		return hmmErrorf(op, ErrInvalidArgument)
	}
	for _, s := range obs {
		if s < 0 || s >= h.k {
			return hmmErrorf(op, ErrOutOfRange)
		}
	}

	return nil
}

// forward fills the T×N alpha table. When scaling is enabled every row is
// normalised to sum 1 and the normalisers c_t are returned; otherwise scale
// is nil. A zero normaliser (impossible prefix) leaves the remaining rows zero.
func (h *DiscreteHMM) forward(obs []int) (alpha *matrix.Dense, scale []float64) {
	T, n := len(obs), h.n
	alpha, _ = matrix.NewDense(T, n)
	if h.opts.scaled {
		scale = make([]float64, T)
	}

	row := alpha.Row(0)
	for i := 0; i < n; i++ {
		row[i] = h.pi[i] * h.b.Elem(i, obs[0])
	}
	h.normalize(row, scale, 0)

	for t := 1; t < T; t++ {
		prev, cur := alpha.Row(t-1), alpha.Row(t)
		for j := 0; j < n; j++ {
			var s float64
			for i := 0; i < n; i++ {
				s += prev[i] * h.a.Elem(i, j)
			}
			cur[j] = s * h.b.Elem(j, obs[t])
		}
		h.normalize(cur, scale, t)
	}

	return alpha, scale
}

func (h *DiscreteHMM) normalize(row, scale []float64, t int) {
	if scale == nil {
		return
	}
	var c float64
	for _, v := range row {
		c += v
	}
	scale[t] = c
	if c == 0 {
		return
	}
	for i := range row {
		row[i] /= c
	}
}

// backward fills the T×N beta table; with scale non-nil, row t is divided by
// c_{t+1} so that Σ_i alpha[t][i]·beta[t][i] == 1 for every t.
func (h *DiscreteHMM) backward(obs []int, scale []float64) *matrix.Dense {
	T, n := len(obs), h.n
	beta, _ := matrix.NewDense(T, n)
	last := beta.Row(T - 1)
	for i := range last {
		last[i] = 1
	}
	for t := T - 2; t >= 0; t-- {
		next, cur := beta.Row(t+1), beta.Row(t)
		sym := obs[t+1]
		for i := 0; i < n; i++ {
			var s float64
			for j := 0; j < n; j++ {
				s += h.a.Elem(i, j) * h.b.Elem(j, sym) * next[j]
			}
			cur[i] = s
			if scale != nil && scale[t+1] != 0 {
				cur[i] /= scale[t+1]
			}
		}
	}

	return beta
}

// logProbability returns log P(obs | λ) from a forward pass.
func (h *DiscreteHMM) logProbability(alpha *matrix.Dense, scale []float64) float64 {
	if scale == nil {
		var p float64
		for _, v := range alpha.Row(alpha.Rows() - 1) {
			p += v
		}

		return math.Log(p)
	}
	var lp float64
	for _, c := range scale {
		lp += math.Log(c)
	}

	return lp
}

// Alpha returns the T×N forward table (row-normalised under WithScaling).
// Errors: ErrInvalidArgument (empty), ErrOutOfRange (symbol ∉ [0,K)).
func (h *DiscreteHMM) Alpha(obs []int) (*matrix.Dense, error) {
	if err := h.checkObservations("Alpha", obs); err != nil {
		return nil, err
	}
	alpha, _ := h.forward(obs)

	return alpha, nil
}

// Beta returns the T×N backward table (scaled by the forward normalisers
// under WithScaling).
// Errors: ErrInvalidArgument (empty), ErrOutOfRange (symbol ∉ [0,K)).
func (h *DiscreteHMM) Beta(obs []int) (*matrix.Dense, error) {
	if err := h.checkObservations("Beta", obs); err != nil {
		return nil, err
	}
	_, scale := h.forward(obs)

	return h.backward(obs, scale), nil
}

// SequenceProbability returns P(obs | λ) = Σ_i alpha[T-1][i].
func (h *DiscreteHMM) SequenceProbability(obs []int) (float64, error) {
	if err := h.checkObservations("SequenceProbability", obs); err != nil {
		return 0, err
	}
	alpha, scale := h.forward(obs)
	if scale == nil {
		var p float64
		for _, v := range alpha.Row(len(obs) - 1) {
			p += v
		}

		return p, nil
	}

	return math.Exp(h.logProbability(alpha, scale)), nil
}

// SequenceLogProbability returns log P(obs | λ); -Inf for an impossible sequence.
func (h *DiscreteHMM) SequenceLogProbability(obs []int) (float64, error) {
	if err := h.checkObservations("SequenceLogProbability", obs); err != nil {
		return 0, err
	}

	return h.logProbability(h.forward(obs)), nil
}

// MakeViterbi returns the most likely state path for obs. Among equally
// likely predecessors (and final states) the lowest index wins.
// Errors: ErrInvalidArgument (empty), ErrOutOfRange (symbol ∉ [0,K)).
func (h *DiscreteHMM) MakeViterbi(obs []int) ([]int, error) {
	if err := h.checkObservations("MakeViterbi", obs); err != nil {
		return nil, err
	}
	T, n := len(obs), h.n
	// under scaling the products become sums of logs
	mul := func(x, y float64) float64 { return x * y }
	val := func(p float64) float64 { return p }
	if h.opts.scaled {
		mul = func(x, y float64) float64 { return x + y }
		val = math.Log
	}

	delta := make([]float64, n)
	next := make([]float64, n)
	phi := make([][]int, T)
	for i := range delta {
		delta[i] = mul(val(h.pi[i]), val(h.b.Elem(i, obs[0])))
	}
	for t := 1; t < T; t++ {
		phi[t] = make([]int, n)
		for j := 0; j < n; j++ {
			best, arg := mul(delta[0], val(h.a.Elem(0, j))), 0
			for i := 1; i < n; i++ {
				if v := mul(delta[i], val(h.a.Elem(i, j))); v > best {
					best, arg = v, i
				}
			}
			next[j] = mul(best, val(h.b.Elem(j, obs[t])))
			phi[t][j] = arg
		}
		delta, next = next, delta
	}

	path := make([]int, T)
	for i := 1; i < n; i++ {
		if delta[i] > delta[path[T-1]] {
			path[T-1] = i
		}
	}
	for t := T - 1; t > 0; t-- {
		path[t-1] = phi[t][path[t]]
	}

	return path, nil
}

// PathProbability returns P(obs, path | λ).
// Errors: ErrDimensionMismatch (len(path) != len(obs)), ErrOutOfRange.
func (h *DiscreteHMM) PathProbability(obs, path []int) (float64, error) {
	if err := h.checkObservations("PathProbability", obs); err != nil {
		return 0, err
	}
	if len(path) != len(obs) {
		return 0, hmmErrorf("PathProbability", ErrDimensionMismatch)
	}
	for _, q := range path {
		if q < 0 || q >= h.n {
			return 0, hmmErrorf("PathProbability", ErrOutOfRange)
		}
	}
	p := h.pi[path[0]] * h.b.Elem(path[0], obs[0])
	for t := 1; t < len(obs); t++ {
		p *= h.a.Elem(path[t-1], path[t]) * h.b.Elem(path[t], obs[t])
	}

	return p, nil
}
