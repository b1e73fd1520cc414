// SPDX-License-Identifier: MIT

// Package gaussian: functional configuration of the EM engines.
//
// Notes:
//   - Options are resolved per EM call; a mixture keeps no configuration.
//   - Constructors panic on nonsensical values (programmer error), never on data.
package gaussian

import (
	"log/slog"
	"math"
)

const (
	// DefaultEpsilon is the log-likelihood change under which EM is converged.
	DefaultEpsilon = 1e-8

	// DefaultMaxIterations bounds the number of EM steps.
	DefaultMaxIterations = 100
)

const (
	panicEpsilonInvalid = "gaussian: WithEpsilon: eps must be finite, non-negative"
	panicMaxIterInvalid = "gaussian: WithMaxIterations: n must be >= 0"
)

// Option mutates Options.
type Option func(*Options)

// Options stores the effective EM configuration.
type Options struct {
	epsilon        float64
	maxIterations  int
	stopOnDecrease bool
	logger         *slog.Logger
}

// WithEpsilon sets the convergence threshold on |ΔlogL|.
func WithEpsilon(eps float64) Option {
	if math.IsNaN(eps) || math.IsInf(eps, 0) || eps < 0 {
		panic(panicEpsilonInvalid)
	}

	return func(o *Options) { o.epsilon = eps }
}

// WithMaxIterations bounds the number of EM steps. Zero only seeds the mixture.
func WithMaxIterations(n int) Option {
	if n < 0 {
		panic(panicMaxIterInvalid)
	}

	return func(o *Options) { o.maxIterations = n }
}

// WithStopOnDecrease ends training at the first rolled-back iteration
// instead of retrying until the iteration budget is spent.
func WithStopOnDecrease() Option {
	return func(o *Options) { o.stopOnDecrease = true }
}

// WithLogger routes training diagnostics to l. A nil logger disables logging.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l == nil {
			l = newNopLogger()
		}
		o.logger = l
	}
}

func gatherOptions(opts ...Option) Options {
	o := Options{
		epsilon:       DefaultEpsilon,
		maxIterations: DefaultMaxIterations,
		logger:        newNopLogger(),
	}
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}

	return o
}
