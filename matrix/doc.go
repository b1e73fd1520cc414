// Package matrix offers the dense row-major matrix shared by every statistical
// model of this module.
//
// The matrix package provides:
//
//   - Dense, a float64 row-major container with checked (At/Set/Flat) and
//     unchecked (Elem/Row) access, in-place mutators and reductions
//     (argmax, column centring/reduction, biased covariance).
//   - Package-level kernels: Add, Sub, Mul, Transpose, Scale, MatVec, the
//     Jacobi Eigen solver, Doolittle LU, Inverse and Determinant.
//   - Column statistics (Covariance, Correlation, CenterColumnsCopy).
//   - Conversions to gonum's mat types for factorizations this package does not own.
//
// All arithmetic is plain IEEE-754: NaN and Inf propagate instead of failing,
// unless a matrix is built WithValidateNaNInf. Shape and index violations are
// reported through sentinel errors (ErrDimensionMismatch, ErrOutOfRange, ...)
// wrapped with the name of the failing operation.
package matrix
