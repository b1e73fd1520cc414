// Package pca implements Principal Component Analysis on standardised patterns.
//
// A PCA is estimated once, at construction, from one of four equivalent inputs:
// a pattern matrix (New), a slice of pattern vectors (NewFromVectors), pattern
// vectors with integer multiplicities (NewFromWeighted), or a deduplicated
// pattern→multiplicity table (NewFromCounts). Every constructor reduces its
// input to the same ordered Counts table, so equivalent data gives bit-identical
// means, deviations and eigensystems.
//
// Per-feature statistics use the König-Huygens identity E[X²]−E[X]² and fall
// back to the two-pass centred sum of squares when that variance is not finite
// or negative. A zero deviation leaves the feature centred but unscaled.
//
// The eigensystem of the correlation matrix is solved in closed form for one
// and two features and by Jacobi rotations (matrix.Eigen) above that. It is
// stored in ascending eigenvalue order; Transform projects onto the largest
// components first.
package pca
