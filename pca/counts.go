// SPDX-License-Identifier: MIT

package pca

import (
	"math"
	"slices"
)

// Counts is a deduplicated pattern→multiplicity table kept in lexicographic
// pattern order. The zero value is an empty table whose dimension is fixed by
// the first Add.
type Counts struct {
	dim      int
	patterns [][]float64
	counts   []int
	total    int
}

// CountPatterns tallies patterns (each with multiplicity one).
//
// Errors: ErrInvalidArgument (empty input, empty or non-finite pattern),
// ErrDimensionMismatch (jagged input).
func CountPatterns(patterns [][]float64) (*Counts, error) {
	if len(patterns) == 0 {
		return nil, pcaErrorf("CountPatterns", ErrInvalidArgument)
	}
	c := &Counts{}
	for _, p := range patterns {
		if err := c.Add(p, 1); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// Add records n more occurrences of pattern (copied).
//
// Errors: ErrInvalidArgument (n <= 0, empty or non-finite pattern),
// ErrDimensionMismatch (length differs from earlier patterns).
func (c *Counts) Add(pattern []float64, n int) error {
	if n <= 0 || len(pattern) == 0 {
		return pcaErrorf("Counts.Add", ErrInvalidArgument)
	}
	if c.dim != 0 && len(pattern) != c.dim {
		return pcaErrorf("Counts.Add", ErrDimensionMismatch)
	}
	for _, v := range pattern {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return pcaErrorf("Counts.Add", ErrInvalidArgument)
		}
	}
	c.dim = len(pattern)

	i, found := slices.BinarySearchFunc(c.patterns, pattern, slices.Compare[[]float64])
	if found {
		c.counts[i] += n
	} else {
		c.patterns = slices.Insert(c.patterns, i, slices.Clone(pattern))
		c.counts = slices.Insert(c.counts, i, n)
	}
	c.total += n

	return nil
}

// Len returns the number of distinct patterns.
func (c *Counts) Len() int { return len(c.patterns) }

// Dimension returns the pattern length (0 for an empty table).
func (c *Counts) Dimension() int { return c.dim }

// Total returns the sum of multiplicities.
func (c *Counts) Total() int { return c.total }

// Pattern returns a copy of the i-th distinct pattern, in lexicographic order.
func (c *Counts) Pattern(i int) []float64 { return slices.Clone(c.patterns[i]) }

// Count returns the multiplicity of the i-th distinct pattern.
func (c *Counts) Count(i int) int { return c.counts[i] }

// feature gathers column j of the distinct patterns.
func (c *Counts) feature(j int) []float64 {
	out := make([]float64, len(c.patterns))
	for i, p := range c.patterns {
		out[i] = p[j]
	}

	return out
}
