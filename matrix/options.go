// SPDX-License-Identifier: MIT

// Package matrix: functional configuration for the numeric policy.
// This file defines:
//   - Option / Options (functional options with internal state),
//   - documented defaults (constants),
//   - WithX constructors with strong validation (panic on nonsensical values),
//   - gatherOptions helper (internal) that resolves them.
//
// Design goals:
//   - Deterministic behavior: no global state, no implicit randomness.
//   - No dead switches: each flag impacts behavior and is covered by tests.
//   - Safe by construction: panic only on invalid parameters (programmer error).
//
// Notes:
//   - validateNaNInf is OFF by default: statistical callers rely on NaN/Inf
//     propagating out of degenerate computations instead of failing a Set.
//   - zeroTol governs the "is this sum zero?" guards of ReduceColumns and
//     NormalizeForConvolution. The default 0 keeps the exact == 0 comparison.
package matrix

import "math"

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultEpsilon defines the non-negative tolerance used by structural checks
	// (symmetry before Jacobi, AllClose-style comparisons).
	DefaultEpsilon = 1e-9

	// DefaultValidateNaNInf toggles strict finite-value validation on Set.
	DefaultValidateNaNInf = false

	// DefaultZeroTolerance is the tolerance of zero-sum guards; 0 means exact equality.
	DefaultZeroTolerance = 0.0
)

// ---------- Internal panic messages (no magic strings) ----------

const (
	panicEpsilonInvalid = "matrix: WithEpsilon: eps must be finite, non-negative"
	panicZeroTolInvalid = "matrix: WithZeroTolerance: tol must be finite, non-negative"
)

// Option mutates internal options. Safe to apply repeatedly (idempotent).
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
// Fields are unexported; public entry points accept `...Option`.
type Options struct {
	eps            float64 // >= 0; DefaultEpsilon
	validateNaNInf bool    // DefaultValidateNaNInf
	zeroTol        float64 // >= 0; DefaultZeroTolerance
}

// WithEpsilon sets the numeric tolerance eps used by structural checks.
// Panics with a stable message when eps is NaN, ±Inf or negative.
func WithEpsilon(eps float64) Option {
	if isNonFinite(eps) || eps < 0 {
		panic(panicEpsilonInvalid)
	}

	return func(o *Options) { o.eps = eps }
}

// WithValidateNaNInf enables strict finite-value validation in Set.
// Affects matrices created with this option; existing matrices keep their policy.
func WithValidateNaNInf() Option {
	return func(o *Options) { o.validateNaNInf = true }
}

// WithNoValidateNaNInf disables finite-value validation (the default).
func WithNoValidateNaNInf() Option {
	return func(o *Options) { o.validateNaNInf = false }
}

// WithZeroTolerance widens the zero-sum guards of ReduceColumns and
// NormalizeForConvolution: |sum| <= tol is treated as zero.
// Panics when tol is NaN, ±Inf or negative.
func WithZeroTolerance(tol float64) Option {
	if isNonFinite(tol) || tol < 0 {
		panic(panicZeroTolInvalid)
	}

	return func(o *Options) { o.zeroTol = tol }
}

// NewMatrixOptions resolves a set of options into an Options value.
// Exposed mainly for tests and for packages that forward matrix options.
func NewMatrixOptions(opts ...Option) Options { return gatherOptions(opts...) }

// Epsilon returns the resolved structural tolerance.
func (o Options) Epsilon() float64 { return o.eps }

// ValidateNaNInf reports whether finite-value validation is enabled.
func (o Options) ValidateNaNInf() bool { return o.validateNaNInf }

// ZeroTolerance returns the resolved zero-sum tolerance.
func (o Options) ZeroTolerance() float64 { return o.zeroTol }

// defaultOptions returns the documented defaults.
func defaultOptions() Options {
	return Options{
		eps:            DefaultEpsilon,
		validateNaNInf: DefaultValidateNaNInf,
		zeroTol:        DefaultZeroTolerance,
	}
}

// gatherOptions applies user setters over the defaults in order; nil setters are skipped.
func gatherOptions(user ...Option) Options {
	o := defaultOptions()
	for _, fn := range user {
		if fn != nil {
			fn(&o)
		}
	}

	return o
}

// isNonFinite reports NaN or ±Inf.
func isNonFinite(x float64) bool { return math.IsNaN(x) || math.IsInf(x, 0) }
