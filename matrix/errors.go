// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set.
// This file defines ONLY package-level sentinel errors used across the matrix
// package. All kernels return these sentinels (optionally wrapped with an
// operation tag) and tests match them via errors.Is. No kernel panics on
// user-triggered error conditions.

package matrix

import "errors"

// NOTE ON NAMING & PREFIXING
// --------------------------
// Every message is prefixed with "matrix: ..." for consistency and to allow
// easy grepping across logs. Kernels wrap with matrixErrorf(op, ErrX) so the
// message reads "Mul: matrix: dimension mismatch" while errors.Is still matches.
//
// ERROR TAXONOMY:
//   - shape problems        -> ErrInvalidDimensions, ErrDimensionMismatch
//   - index problems        -> ErrOutOfRange
//   - malformed inputs      -> ErrInvalidArgument, ErrNilMatrix
//   - numeric failures      -> ErrSingular, ErrAsymmetry, ErrMatrixEigenFailed, ErrNaNInf

var (
	// ErrInvalidDimensions indicates that requested matrix dimensions are non-positive.
	ErrInvalidDimensions = errors.New("matrix: dimensions must be > 0")

	// ErrOutOfRange indicates that an index (row, column or flat) is outside valid bounds.
	// Public checked accessors and mutators return this instead of panicking.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrDimensionMismatch indicates incompatible dimensions between operands,
	// e.g., Add/Sub of different shapes, or Mul where a.Cols != b.Rows.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrInvalidArgument signals malformed constructor input such as an empty row set.
	ErrInvalidArgument = errors.New("matrix: invalid argument")

	// ErrNilMatrix indicates that a nil Matrix (receiver or argument) was used.
	ErrNilMatrix = errors.New("matrix: nil receiver")

	// ErrAsymmetry signals that a matrix expected to be symmetric violated symmetry
	// within the configured tolerance.
	ErrAsymmetry = errors.New("matrix: matrix is not symmetric within eps")

	// ErrNaNInf signals a NaN or ±Inf value was encountered where finite values
	// are required by the numeric policy (Set with validation enabled, tolerances).
	ErrNaNInf = errors.New("matrix: NaN or Inf encountered")

	// ErrMatrixEigenFailed indicates that the Jacobi routine failed to converge
	// under the given tolerance/iterations.
	ErrMatrixEigenFailed = errors.New("matrix: eigen decomposition failed")

	// ErrSingular is returned when a zero pivot is encountered during LU/Inverse
	// (no pivoting, intentional for determinism).
	ErrSingular = errors.New("matrix: singular matrix")
)
