// SPDX-License-Identifier: MIT

package gaussian

import (
	"log/slog"
	"math"

	"gonum.org/v1/gonum/floats"
)

// State is the lifecycle of a mixture with respect to EM training.
//
//	Uninitialized → Seeded → Iterating → Converged | MaxIterReached | Degenerate
type State int

const (
	// Uninitialized: EM never ran (members, if any, were set by hand).
	Uninitialized State = iota
	// Seeded: members were placed across the data, no iteration yet.
	Seeded
	// Iterating: EM is running.
	Iterating
	// Converged: |ΔlogL| <= ε, or a decrease stopped a WithStopOnDecrease run.
	Converged
	// MaxIterReached: the iteration budget ran out first.
	MaxIterReached
	// Degenerate: an iteration produced a non-finite log-likelihood and was rolled back.
	Degenerate
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Seeded:
		return "seeded"
	case Iterating:
		return "iterating"
	case Converged:
		return "converged"
	case MaxIterReached:
		return "max-iterations-reached"
	case Degenerate:
		return "degenerate"
	default:
		return "unknown"
	}
}

// Result summarizes an EM run.
type Result struct {
	// Iterations counts EM steps performed, rolled-back ones included.
	Iterations int
	// LogLikelihood is the training log-likelihood of the stored model.
	LogLikelihood float64
	// Status is the terminal State.
	Status State
}

// emModel is the part of a mixture the shared EM loop drives.
type emModel interface {
	// logLikelihood of the training data under the current members.
	logLikelihood() float64
	// snapshot returns a closure restoring the current members.
	snapshot() func()
	// step performs one E-step and one M-step in place.
	step()
	setState(State)
}

// runEM drives the iteration: every step is kept when the likelihood does
// not decrease; a decrease restores the snapshot and the loop goes on (or
// stops under WithStopOnDecrease); a non-finite likelihood restores the
// snapshot and ends the run as Degenerate.
func runEM(m emModel, o Options) Result {
	prev := m.logLikelihood()
	res := Result{LogLikelihood: prev, Status: MaxIterReached}
	m.setState(Iterating)
	log := o.logger

	for res.Iterations < o.maxIterations {
		restore := m.snapshot()
		m.step()
		res.Iterations++
		ll := m.logLikelihood()
		log.Debug("em iteration", slog.Int("iteration", res.Iterations), slog.Float64("loglik", ll))

		if math.IsNaN(ll) || math.IsInf(ll, 0) {
			restore()
			log.Warn("em: non-finite log-likelihood, rolled back",
				slog.Int("iteration", res.Iterations), slog.Float64("loglik", ll))
			res.Status = Degenerate
			break
		}
		if ll < prev {
			restore()
			log.Warn("em: log-likelihood decreased, rolled back",
				slog.Int("iteration", res.Iterations), slog.Float64("previous", prev), slog.Float64("loglik", ll))
			if o.stopOnDecrease || prev-ll <= o.epsilon {
				res.Status = Converged
				break
			}
			continue
		}
		delta := ll - prev
		prev = ll
		res.LogLikelihood = ll
		if delta <= o.epsilon {
			res.Status = Converged
			break
		}
	}
	m.setState(res.Status)

	return res
}

// seedPosition places seed k of n on [lo, hi]: the midpoint for a single
// seed, lo and hi for the first and last. Neither form overflows when hi-lo
// exceeds the float64 range.
func seedPosition(lo, hi float64, k, n int) float64 {
	if n == 1 {
		return lo/2 + hi/2
	}
	f := float64(k) / float64(n-1)

	return lo*(1-f) + hi*f
}

// responsibilities fills row with w_k·p_k(x) / Σ_j w_j·p_j(x) given the
// weighted densities in row and their log counterparts in logRow. When the
// direct total underflows to zero or overflows, the row is recomputed in the
// log domain; a pattern no member can explain gets all-zero responsibilities.
func responsibilities(row, logRow []float64) {
	total := floats.Sum(row)
	if total > 0 && !math.IsInf(total, 0) {
		for k := range row {
			row[k] /= total
		}
		return
	}
	if floats.Max(logRow) == math.Inf(-1) {
		for k := range row {
			row[k] = 0
		}
		return
	}
	lse := floats.LogSumExp(logRow)
	for k, l := range logRow {
		row[k] = math.Exp(l - lse)
	}
}

// weightedMean returns Σ r_i·x_i / Σ r_i. When the accumulated numerator
// overflows it recomputes the moment with per-term normalized weights.
func weightedMean(r []float64, den float64, value func(i int) float64) float64 {
	var num float64
	for i, ri := range r {
		num += ri * value(i)
	}
	if !math.IsInf(num, 0) && !math.IsNaN(num) {
		return num / den
	}
	var acc float64
	for i, ri := range r {
		acc += (ri / den) * value(i)
	}

	return acc
}
