// SPDX-License-Identifier: MIT

package gaussian

import (
	"errors"
	"fmt"
)

// Sentinel errors. Operations wrap them with their name, e.g.
// "EM: gaussian: invalid argument", so errors.Is keeps matching.
var (
	// ErrInvalidArgument signals malformed input such as an empty data set
	// or non-finite samples.
	ErrInvalidArgument = errors.New("gaussian: invalid argument")

	// ErrOutOfRange signals an invalid member index or a non-positive seed count.
	ErrOutOfRange = errors.New("gaussian: index out of range")

	// ErrDimensionMismatch signals vectors or matrices whose size disagrees
	// with the dimension of the density.
	ErrDimensionMismatch = errors.New("gaussian: dimension mismatch")

	// ErrNotPositiveDefinite flags a covariance matrix that admits no Cholesky
	// factorization; densities built on it are not meaningful.
	ErrNotPositiveDefinite = errors.New("gaussian: covariance is not positive-definite")
)

func gaussianErrorf(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}
