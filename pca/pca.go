// SPDX-License-Identifier: MIT

package pca

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strings"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/crnstat/matrix"
)

const (
	opNew              = "New"
	opFromParts        = "FromParts"
	opTransform        = "Transform"
	opReverseTransform = "ReverseTransform"
)

// EigenPair is one principal axis: an eigenvalue of the correlation matrix
// and its unit eigenvector.
type EigenPair struct {
	Value  float64
	Vector []float64
}

// PCA is an immutable principal component model.
type PCA struct {
	dim   int
	means []float64
	devs  []float64
	eigen []EigenPair // ascending by Value
}

// New estimates a PCA from the rows of patterns.
//
// Errors: ErrInvalidArgument (nil matrix, non-finite value),
// matrix.ErrMatrixEigenFailed when Jacobi does not converge.
func New(patterns matrix.Matrix, opts ...Option) (*PCA, error) {
	if patterns == nil {
		return nil, pcaErrorf(opNew, ErrInvalidArgument)
	}
	c := &Counts{}
	row := make([]float64, patterns.Cols())
	var err error
	for i := 0; i < patterns.Rows(); i++ {
		for j := range row {
			if row[j], err = patterns.At(i, j); err != nil {
				return nil, pcaErrorf(opNew, err)
			}
		}
		if err = c.Add(row, 1); err != nil {
			return nil, pcaErrorf(opNew, err)
		}
	}

	return NewFromCounts(c, opts...)
}

// NewFromVectors estimates a PCA from pattern vectors.
//
// Errors: ErrInvalidArgument, ErrDimensionMismatch (jagged input).
func NewFromVectors(patterns [][]float64, opts ...Option) (*PCA, error) {
	c, err := CountPatterns(patterns)
	if err != nil {
		return nil, pcaErrorf(opNew, err)
	}

	return NewFromCounts(c, opts...)
}

// NewFromWeighted estimates a PCA from pattern vectors where patterns[i]
// occurs counts[i] times.
//
// Errors: ErrInvalidArgument (empty input, counts[i] <= 0),
// ErrDimensionMismatch (jagged input, len(counts) != len(patterns)).
func NewFromWeighted(patterns [][]float64, counts []int, opts ...Option) (*PCA, error) {
	if len(patterns) == 0 {
		return nil, pcaErrorf(opNew, ErrInvalidArgument)
	}
	if len(counts) != len(patterns) {
		return nil, pcaErrorf(opNew, ErrDimensionMismatch)
	}
	c := &Counts{}
	for i, p := range patterns {
		if err := c.Add(p, counts[i]); err != nil {
			return nil, pcaErrorf(opNew, err)
		}
	}

	return NewFromCounts(c, opts...)
}

// NewFromCounts estimates a PCA from a pattern→multiplicity table.
// All other constructors funnel here, so equal multisets of patterns give
// bit-identical models whatever constructor built them.
//
// Implementation:
//   - Stage 1: per feature, mean μ_j and population deviation σ_j over the
//     N = Total() patterns, by König-Huygens (E[x²] − E[x]²) with a two-pass
//     fallback when cancellation makes that variance negative or non-finite.
//   - Stage 2: correlation matrix C = Σ_i n_i·z_i·z_iᵀ / N of the standardised
//     patterns z = (x − μ)/σ (σ_j = 0 leaves the feature centred only).
//   - Stage 3: eigenpairs of C. Dimension 1 is trivial; dimension 2 uses the
//     closed form with Δ = (a−c)² + 4g²; larger dimensions use matrix.Eigen
//     (Jacobi) with WithTolerance and a budget of WithMaxSweeps·d(d−1)/2
//     rotations. Pairs are stored ascending by eigenvalue and each vector is
//     signed so that its first nonzero component is positive.
//
// Complexity:
//
//	Time   = O(Len()·d²) + O(sweeps·d⁴) for the Jacobi stage
//	Memory = O(d²)
//
// Errors:
//   - ErrInvalidArgument        — nil or empty table.
//   - matrix.ErrMatrixEigenFailed — Jacobi did not converge within the budget.
func NewFromCounts(c *Counts, opts ...Option) (*PCA, error) {
	if c == nil || c.Len() == 0 {
		return nil, pcaErrorf(opNew, ErrInvalidArgument)
	}
	o := gatherOptions(opts...)
	d := c.Dimension()
	p := &PCA{dim: d, means: make([]float64, d), devs: make([]float64, d)}
	for j := 0; j < d; j++ {
		p.means[j], p.devs[j], _ = meanDeviation(c.feature(j), c.counts, c.total)
	}

	cmat, err := p.correlation(c)
	if err != nil {
		return nil, pcaErrorf(opNew, err)
	}
	if p.eigen, err = eigensystem(cmat, o); err != nil {
		return nil, pcaErrorf(opNew, err)
	}

	return p, nil
}

// correlation returns Σ_i n_i·z_i·z_iᵀ / N over the standardised patterns.
func (p *PCA) correlation(c *Counts) (*matrix.Dense, error) {
	d := p.dim
	cmat, err := matrix.NewDense(d, d)
	if err != nil {
		return nil, err
	}
	z := make([]float64, d)
	n := float64(c.total)
	for i, x := range c.patterns {
		p.standardize(x, z)
		w := float64(c.counts[i])
		for a := 0; a < d; a++ {
			for b := a; b < d; b++ {
				cmat.SetElem(a, b, cmat.Elem(a, b)+w*z[a]*z[b])
			}
		}
	}
	for a := 0; a < d; a++ {
		for b := a; b < d; b++ {
			v := cmat.Elem(a, b) / n
			cmat.SetElem(a, b, v)
			cmat.SetElem(b, a, v)
		}
	}

	return cmat, nil
}

// eigensystem solves the symmetric d×d correlation matrix and returns its
// pairs in ascending eigenvalue order.
func eigensystem(cmat *matrix.Dense, o Options) ([]EigenPair, error) {
	d := cmat.Rows()
	var pairs []EigenPair
	switch d {
	case 1:
		pairs = []EigenPair{{Value: cmat.Elem(0, 0), Vector: []float64{1}}}
	case 2:
		pairs = eigen2(cmat.Elem(0, 0), cmat.Elem(1, 1), cmat.Elem(0, 1))
	default:
		vals, vecs, err := matrix.Eigen(cmat, o.tol, o.maxSweeps*d*(d-1)/2)
		if err != nil {
			return nil, err
		}
		pairs = make([]EigenPair, d)
		for k := range pairs {
			v := make([]float64, d)
			for i := range v {
				v[i], _ = vecs.At(i, k)
			}
			pairs[k] = EigenPair{Value: vals[k], Vector: v}
		}
	}
	for _, pr := range pairs {
		orient(pr.Vector)
	}
	slices.SortStableFunc(pairs, func(a, b EigenPair) int { return cmp.Compare(a.Value, b.Value) })

	return pairs, nil
}

// eigen2 is the closed form for [[a, g], [g, c]]:
// λ = ((a+c) ± √Δ)/2 with Δ = (a−c)² + 4g².
func eigen2(a, c, g float64) []EigenPair {
	if g == 0 {
		return []EigenPair{{Value: a, Vector: []float64{1, 0}}, {Value: c, Vector: []float64{0, 1}}}
	}
	root := math.Sqrt((a-c)*(a-c) + 4*g*g)
	pairs := make([]EigenPair, 2)
	for k, lambda := range []float64{(a + c - root) / 2, (a + c + root) / 2} {
		v := []float64{g, lambda - a}
		floats.Scale(1/floats.Norm(v, 2), v)
		pairs[k] = EigenPair{Value: lambda, Vector: v}
	}

	return pairs
}

// orient flips v so that its first non-zero component is positive.
func orient(v []float64) {
	for _, x := range v {
		if x == 0 {
			continue
		}
		if x < 0 {
			floats.Scale(-1, v)
		}
		return
	}
}

// standardize writes (x−μ)/σ into dst; features with σ == 0 are only centred.
func (p *PCA) standardize(x, dst []float64) {
	for j := range dst {
		dst[j] = x[j] - p.means[j]
		if p.devs[j] != 0 {
			dst[j] /= p.devs[j]
		}
	}
}

// FromParts rebuilds a PCA from stored statistics, e.g. for a deserialiser.
// Inputs are copied and pairs re-sorted ascending.
//
// Errors: ErrInvalidArgument (empty means), ErrDimensionMismatch.
func FromParts(means, deviations []float64, pairs []EigenPair) (*PCA, error) {
	d := len(means)
	if d == 0 {
		return nil, pcaErrorf(opFromParts, ErrInvalidArgument)
	}
	if len(deviations) != d || len(pairs) != d {
		return nil, pcaErrorf(opFromParts, ErrDimensionMismatch)
	}
	p := &PCA{dim: d, means: slices.Clone(means), devs: slices.Clone(deviations), eigen: make([]EigenPair, d)}
	for k, pr := range pairs {
		if len(pr.Vector) != d {
			return nil, pcaErrorf(opFromParts, ErrDimensionMismatch)
		}
		p.eigen[k] = EigenPair{Value: pr.Value, Vector: slices.Clone(pr.Vector)}
	}
	slices.SortStableFunc(p.eigen, func(a, b EigenPair) int { return cmp.Compare(a.Value, b.Value) })

	return p, nil
}

// Dimension returns the number of features.
func (p *PCA) Dimension() int { return p.dim }

// Means returns a copy of the per-feature means.
func (p *PCA) Means() []float64 { return slices.Clone(p.means) }

// Deviations returns a copy of the per-feature standard deviations.
func (p *PCA) Deviations() []float64 { return slices.Clone(p.devs) }

// Eigensystem returns a deep copy of the eigenpairs, ascending by eigenvalue.
func (p *PCA) Eigensystem() []EigenPair {
	out := make([]EigenPair, len(p.eigen))
	for k, pr := range p.eigen {
		out[k] = EigenPair{Value: pr.Value, Vector: slices.Clone(pr.Vector)}
	}

	return out
}

// Transform projects every row of patterns onto the nFeatures principal
// axes of largest eigenvalue. Column 0 of the result is the dominant axis.
//
// Implementation:
//   - Each row x is standardised as z_j = (x_j − μ_j)/σ_j, with σ_j = 0
//     leaving the centred value.
//   - Output column k is z · v_k, where v_k is the eigenvector of the k-th
//     largest eigenvalue.
//   - With nFeatures == Dimension() the result can be inverted exactly by
//     ReverseTransform.
//
// Complexity: O(rows · d · nFeatures) time, O(d) scratch.
//
// Errors:
//   - ErrInvalidArgument   — nil patterns.
//   - ErrOutOfRange        — nFeatures outside [1, Dimension()].
//   - ErrDimensionMismatch — patterns.Cols() != Dimension().
func (p *PCA) Transform(patterns matrix.Matrix, nFeatures int) (*matrix.Dense, error) {
	if patterns == nil {
		return nil, pcaErrorf(opTransform, ErrInvalidArgument)
	}
	if nFeatures < 1 || nFeatures > p.dim {
		return nil, pcaErrorf(opTransform, ErrOutOfRange)
	}
	if patterns.Cols() != p.dim {
		return nil, pcaErrorf(opTransform, ErrDimensionMismatch)
	}
	out, err := matrix.NewDense(patterns.Rows(), nFeatures)
	if err != nil {
		return nil, pcaErrorf(opTransform, err)
	}
	x := make([]float64, p.dim)
	z := make([]float64, p.dim)
	for r := 0; r < patterns.Rows(); r++ {
		for j := range x {
			if x[j], err = patterns.At(r, j); err != nil {
				return nil, pcaErrorf(opTransform, err)
			}
		}
		p.standardize(x, z)
		for k := 0; k < nFeatures; k++ {
			out.SetElem(r, k, floats.Dot(z, p.eigen[p.dim-1-k].Vector))
		}
	}

	return out, nil
}

// ReverseTransform maps full-rank coordinates (as produced by
// Transform(x, Dimension())) back to the original feature space.
// Truncated projections cannot be reconstructed.
//
// Errors: ErrInvalidArgument (nil), ErrDimensionMismatch (column count != Dimension).
func (p *PCA) ReverseTransform(coords matrix.Matrix) (*matrix.Dense, error) {
	if coords == nil {
		return nil, pcaErrorf(opReverseTransform, ErrInvalidArgument)
	}
	if coords.Cols() != p.dim {
		return nil, pcaErrorf(opReverseTransform, ErrDimensionMismatch)
	}
	out, err := matrix.NewDense(coords.Rows(), p.dim)
	if err != nil {
		return nil, pcaErrorf(opReverseTransform, err)
	}
	z := make([]float64, p.dim)
	for r := 0; r < coords.Rows(); r++ {
		for j := range z {
			z[j] = 0
		}
		for k := 0; k < p.dim; k++ {
			y, err := coords.At(r, k)
			if err != nil {
				return nil, pcaErrorf(opReverseTransform, err)
			}
			floats.AddScaled(z, y, p.eigen[p.dim-1-k].Vector)
		}
		for j, v := range z {
			if p.devs[j] != 0 {
				v *= p.devs[j]
			}
			out.SetElem(r, j, v+p.means[j])
		}
	}

	return out, nil
}

func (p *PCA) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "PCA(dim=%d)\n", p.dim)
	fmt.Fprintf(&b, "  means      %v\n", p.means)
	fmt.Fprintf(&b, "  deviations %v\n", p.devs)
	for k := p.dim - 1; k >= 0; k-- {
		fmt.Fprintf(&b, "  λ=%g %v\n", p.eigen[k].Value, p.eigen[k].Vector)
	}

	return b.String()
}
