// SPDX-License-Identifier: MIT

package pca

import "math"

const (
	// DefaultTolerance is the off-diagonal magnitude under which Jacobi stops.
	DefaultTolerance = 1e-12

	// DefaultMaxSweeps bounds Jacobi work to sweeps·n(n−1)/2 rotations.
	DefaultMaxSweeps = 50
)

const (
	panicToleranceInvalid = "pca: WithTolerance: tol must be finite, non-negative"
	panicSweepsInvalid    = "pca: WithMaxSweeps: n must be > 0"
)

// Option configures the eigen-decomposition of a PCA constructor.
type Option func(*Options)

// Options holds the resolved eigen-solver configuration.
type Options struct {
	tol       float64
	maxSweeps int
}

// WithTolerance sets the Jacobi convergence threshold.
func WithTolerance(tol float64) Option {
	if math.IsNaN(tol) || math.IsInf(tol, 0) || tol < 0 {
		panic(panicToleranceInvalid)
	}

	return func(o *Options) { o.tol = tol }
}

// WithMaxSweeps sets the Jacobi sweep budget.
func WithMaxSweeps(n int) Option {
	if n <= 0 {
		panic(panicSweepsInvalid)
	}

	return func(o *Options) { o.maxSweeps = n }
}

func gatherOptions(opts ...Option) Options {
	o := Options{tol: DefaultTolerance, maxSweeps: DefaultMaxSweeps}
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}

	return o
}
