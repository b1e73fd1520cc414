// SPDX-License-Identifier: MIT

package hmm

import (
	"log/slog"
	"math"
)

const (
	// DefaultConvergenceTolerance makes Equals, and therefore Baum-Welch
	// convergence, an exact comparison.
	DefaultConvergenceTolerance = 0.0

	// DefaultConsistencyTolerance makes ForceConsistency renormalise any row
	// whose sum is not exactly 1.
	DefaultConsistencyTolerance = 0.0

	// DefaultWorkers runs the per-sequence E-step sequentially.
	DefaultWorkers = 1
)

const (
	panicConvergenceTol = "hmm: WithConvergenceTolerance: tol must be finite, non-negative"
	panicConsistencyTol = "hmm: WithConsistencyTolerance: tol must be finite, non-negative"
	panicWorkers        = "hmm: WithWorkers: n must be >= 1"
)

// Option configures a DiscreteHMM at construction.
type Option func(*Options)

// Options is the resolved configuration carried by a model (and its clones).
type Options struct {
	convergenceTol float64
	consistencyTol float64
	scaled         bool
	workers        int
	logger         *slog.Logger
}

// WithConvergenceTolerance sets the absolute per-parameter tolerance used by
// Equals and by the Baum-Welch stop test.
func WithConvergenceTolerance(tol float64) Option {
	if !validTol(tol) {
		panic(panicConvergenceTol)
	}

	return func(o *Options) { o.convergenceTol = tol }
}

// WithConsistencyTolerance sets how far a row sum may stray from 1 before
// ForceConsistency renormalises it.
func WithConsistencyTolerance(tol float64) Option {
	if !validTol(tol) {
		panic(panicConsistencyTol)
	}

	return func(o *Options) { o.consistencyTol = tol }
}

// WithScaling enables scaled forward/backward recursions and log-domain Viterbi.
func WithScaling() Option {
	return func(o *Options) { o.scaled = true }
}

// WithWorkers bounds the goroutines computing per-sequence statistics in
// BaumWelchMultiple. Results do not depend on n.
func WithWorkers(n int) Option {
	if n < 1 {
		panic(panicWorkers)
	}

	return func(o *Options) { o.workers = n }
}

// WithLogger routes training diagnostics to l; nil disables logging.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l == nil {
			l = newNopLogger()
		}
		o.logger = l
	}
}

func validTol(tol float64) bool {
	return !math.IsNaN(tol) && !math.IsInf(tol, 0) && tol >= 0
}

func gatherOptions(opts ...Option) Options {
	o := Options{
		convergenceTol: DefaultConvergenceTolerance,
		consistencyTol: DefaultConsistencyTolerance,
		workers:        DefaultWorkers,
		logger:         newNopLogger(),
	}
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}

	return o
}
