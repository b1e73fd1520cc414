// SPDX-License-Identifier: MIT

package hmm

import (
	"log/slog"
	"math"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/crnstat/matrix"
)

// suffStats are the expected counts of one sequence under the current model.
type suffStats struct {
	gamma0  []float64     // γ_0(i)
	trans   *matrix.Dense // Σ_{t<T-1} ξ_t(i,j)
	emit    *matrix.Dense // Σ_{t: o_t=s} γ_t(i)
	logProb float64
}

// expect runs the E-step on one sequence. For an impossible sequence only
// logProb (-Inf) is meaningful.
func (h *DiscreteHMM) expect(obs []int) suffStats {
	n := h.n
	alpha, scale := h.forward(obs)
	st := suffStats{logProb: h.logProbability(alpha, scale)}
	if math.IsInf(st.logProb, -1) || math.IsNaN(st.logProb) {
		return st
	}
	beta := h.backward(obs, scale)

	// unscaled tables carry P(obs) in every α·β product; scaled ones carry 1
	z := 1.0
	if scale == nil {
		z = math.Exp(st.logProb)
	}

	st.gamma0 = make([]float64, n)
	st.trans, _ = matrix.NewDense(n, n)
	st.emit, _ = matrix.NewDense(n, h.k)
	for t, sym := range obs {
		at, bt := alpha.Row(t), beta.Row(t)
		for i := 0; i < n; i++ {
			g := at[i] * bt[i] / z
			if t == 0 {
				st.gamma0[i] = g
			}
			st.emit.SetElem(i, sym, st.emit.Elem(i, sym)+g)
		}
		if t == len(obs)-1 {
			continue
		}
		bn := beta.Row(t + 1)
		next := obs[t+1]
		zt := z
		if scale != nil {
			zt = scale[t+1]
		}
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				xi := at[i] * h.a.Elem(i, j) * h.b.Elem(j, next) * bn[j] / zt
				st.trans.SetElem(i, j, st.trans.Elem(i, j)+xi)
			}
		}
	}

	return st
}

// reestimate builds the M-step candidate from per-sequence statistics summed
// in slice order. Rows whose expected count is zero keep their old values;
// with keepZeros, entries that are exactly zero are never re-estimated.
func (h *DiscreteHMM) reestimate(stats []suffStats, keepZeros bool) *DiscreteHMM {
	cand := h.Clone()
	n := h.n
	trans, _ := matrix.NewDense(n, n)
	emit, _ := matrix.NewDense(n, h.k)
	pi := make([]float64, n)
	for _, st := range stats {
		_ = trans.AddInPlace(st.trans)
		_ = emit.AddInPlace(st.emit)
		floats.Add(pi, st.gamma0)
	}

	renormalize(cand.a, h.a, trans, keepZeros)
	renormalize(cand.b, h.b, emit, keepZeros)
	if s := floats.Sum(pi); s > 0 {
		floats.Scale(1/s, pi)
		copy(cand.pi, pi)
	}

	return cand
}

// renormalize writes num row-normalised into dst, falling back to old.
func renormalize(dst, old, num *matrix.Dense, keepZeros bool) {
	for i := 0; i < dst.Rows(); i++ {
		row := num.Row(i)
		den := floats.Sum(row)
		if den == 0 {
			continue
		}
		out, prev := dst.Row(i), old.Row(i)
		for j := range out {
			if keepZeros && prev[j] == 0 {
				continue
			}
			out[j] = row[j] / den
		}
	}
}

// BaumWelchSingle trains the model on one observation sequence with the
// Baum-Welch (EM) algorithm and returns the number of iterations performed.
//
// Algorithm Outline:
//  1. E-step: run forward and backward over obs and accumulate
//     γ_0(i), Σ_t ξ_t(i,j) and Σ_{t: o_t=s} γ_t(i).
//  2. M-step: build a candidate with π = γ_0, A and B the row-normalised
//     counts. A row with zero expected visits keeps its old values.
//  3. Stop when:
//     - the candidate Equals the current model (exact by default, see
//     WithConvergenceTolerance);
//     - log P(obs) under the candidate is lower, in which case the candidate
//     is discarded;
//     - log P(obs) is -Inf, i.e. obs is impossible under the current model,
//     in which case the model is left unchanged;
//     - maxIter iterations were performed.
//
// With WithScaling the recursions are row-normalised and the log-likelihood
// is Σ log c_t, so long sequences do not underflow.
//
// Complexity:
//
//	Time   = O(iter · T · N²) for T = len(obs)
//	Memory = O(T · N + N · K)
//
// Errors:
//   - ErrInvalidArgument — empty obs or maxIter < 0.
//   - ErrOutOfRange      — a symbol outside [0, K).
func (h *DiscreteHMM) BaumWelchSingle(obs []int, maxIter int) (int, error) {
	if err := h.checkObservations("BaumWelchSingle", obs); err != nil {
		return 0, err
	}
	if maxIter < 0 {
		return 0, hmmErrorf("BaumWelchSingle", ErrInvalidArgument)
	}

	return h.train(maxIter, false, func(m *DiscreteHMM) []suffStats {
		return []suffStats{m.expect(obs)}
	}), nil
}

// BaumWelchMultiple trains the model on a set of independent sequences,
// pooling their expected counts before every re-estimation.
//
// Implementation:
//   - Each iteration runs the BaumWelchSingle E-step per sequence on up to
//     WithWorkers goroutines (errgroup with SetLimit). Statistics land in a
//     slot per sequence and are summed in set order, so the trained model is
//     bit-identical for any worker count.
//   - The M-step divides the pooled counts as in BaumWelchSingle. Entries of
//     A and B that are exactly zero stay zero (structural zeros).
//   - Stopping rules are those of BaumWelchSingle applied to Σ log P(set[s]).
//     A single impossible sequence stops training.
//
// Complexity:
//
//	Time   = O(iter · Σ_s T_s · N²), divided across workers
//	Memory = O(Σ_s T_s · N) while the E-step runs
//
// Errors:
//   - ErrInvalidArgument — empty set, an empty sequence, or maxIter < 0.
//   - ErrOutOfRange      — a symbol outside [0, K).
func (h *DiscreteHMM) BaumWelchMultiple(set [][]int, maxIter int) (int, error) {
	if len(set) == 0 || maxIter < 0 {
		return 0, hmmErrorf("BaumWelchMultiple", ErrInvalidArgument)
	}
	for _, obs := range set {
		if err := h.checkObservations("BaumWelchMultiple", obs); err != nil {
			return 0, err
		}
	}

	return h.train(maxIter, true, func(m *DiscreteHMM) []suffStats {
		stats := make([]suffStats, len(set))
		var g errgroup.Group
		g.SetLimit(h.opts.workers)
		for s := range set {
			s := s
			g.Go(func() error {
				stats[s] = m.expect(set[s])
				return nil
			})
		}
		_ = g.Wait()

		return stats
	}), nil
}

// train is the shared Baum-Welch loop; estep returns the statistics of the
// training data under model m.
func (h *DiscreteHMM) train(maxIter int, keepZeros bool, estep func(m *DiscreteHMM) []suffStats) int {
	log := h.opts.logger
	stats := estep(h)
	iter := 0
	for iter < maxIter {
		prev := totalLogProb(stats)
		if math.IsInf(prev, -1) || math.IsNaN(prev) {
			log.Warn("baum-welch: training data impossible under current model",
				slog.Int("iteration", iter))
			break
		}
		cand := h.reestimate(stats, keepZeros)
		iter++
		candStats := estep(cand)
		ll := totalLogProb(candStats)
		log.Debug("baum-welch iteration", slog.Int("iteration", iter), slog.Float64("loglik", ll))
		if ll < prev || math.IsNaN(ll) {
			log.Warn("baum-welch: log-likelihood decreased, step discarded",
				slog.Int("iteration", iter), slog.Float64("previous", prev), slog.Float64("loglik", ll))
			break
		}
		converged := cand.Equals(h)
		h.a, h.b, h.pi = cand.a, cand.b, cand.pi
		stats = candStats
		if converged {
			break
		}
	}

	return iter
}

func totalLogProb(stats []suffStats) float64 {
	var ll float64
	for _, st := range stats {
		ll += st.logProb
	}

	return ll
}
