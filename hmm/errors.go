// SPDX-License-Identifier: MIT

package hmm

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is returned for non-positive model sizes, empty
	// sequences or empty sequence sets.
	ErrInvalidArgument = errors.New("hmm: invalid argument")

	// ErrOutOfRange is returned for a symbol outside [0, K) or a state outside [0, N).
	ErrOutOfRange = errors.New("hmm: out of range")

	// ErrDimensionMismatch is returned when a parameter or path has the wrong shape.
	ErrDimensionMismatch = errors.New("hmm: dimension mismatch")
)

func hmmErrorf(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}
