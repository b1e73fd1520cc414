// SPDX-License-Identifier: MIT

package pca

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is returned for empty data, non-finite values or a
	// non-positive multiplicity.
	ErrInvalidArgument = errors.New("pca: invalid argument")

	// ErrDimensionMismatch is returned for jagged patterns or patterns whose
	// length differs from the model dimension.
	ErrDimensionMismatch = errors.New("pca: dimension mismatch")

	// ErrOutOfRange is returned when more components are requested than exist.
	ErrOutOfRange = errors.New("pca: out of range")
)

func pcaErrorf(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}
