// Package gaussian implements univariate and multivariate normal densities and
// their finite mixtures trained by Expectation-Maximization.
//
// Densities are immutable values. A MultivariatePDF factors its covariance once
// at construction (inverse and log-determinant are cached) and flags a
// covariance that is not positive-definite instead of repairing it: ValueAt
// then yields NaN, while Evaluate reports ErrNotPositiveDefinite.
//
// Mixtures are ordered (density, weight) lists. EM seeds members across the
// data range, alternates responsibility estimation and moment re-estimation,
// rolls a decreasing iteration back to its snapshot and stops on a non-finite
// likelihood. It never fails on numerical trouble: the returned Result tells
// the caller whether the run converged, ran out of iterations or degenerated.
//
// Logging goes through a *slog.Logger injected with WithLogger; the default
// logger discards everything.
package gaussian
