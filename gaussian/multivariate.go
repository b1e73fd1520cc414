// SPDX-License-Identifier: MIT

package gaussian

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/crnstat/matrix"
)

const opNewMultivariatePDF = "NewMultivariatePDF"

// MultivariatePDF is the d-dimensional normal density N(μ, Σ).
//
// Σ⁻¹ and log|Σ| are computed once by the constructor. Σ is tested for
// positive-definiteness through a Cholesky factorization; when the test
// fails the density is flagged (PositiveDefinite() == false) rather than
// repaired.
type MultivariatePDF struct {
	mean   []float64
	cov    *matrix.Dense
	inv    *matrix.Dense // nil when Σ is singular
	logDet float64       // log|Σ|, valid only when pd
	det    float64
	pd     bool
}

// NewMultivariatePDF builds N(mean, cov). mean and cov are copied.
//
// Errors:
//   - ErrInvalidArgument for an empty mean or nil covariance.
//   - ErrDimensionMismatch when cov is not len(mean)×len(mean).
func NewMultivariatePDF(mean []float64, cov matrix.Matrix) (*MultivariatePDF, error) {
	if len(mean) == 0 || cov == nil {
		return nil, gaussianErrorf(opNewMultivariatePDF, ErrInvalidArgument)
	}
	d := len(mean)
	if cov.Rows() != d || cov.Cols() != d {
		return nil, gaussianErrorf(opNewMultivariatePDF, ErrDimensionMismatch)
	}
	c, err := matrix.NewDense(d, d)
	if err != nil {
		return nil, gaussianErrorf(opNewMultivariatePDF, err)
	}
	var i, j int
	var v float64
	for i = 0; i < d; i++ {
		for j = 0; j < d; j++ {
			if v, err = cov.At(i, j); err != nil {
				return nil, gaussianErrorf(opNewMultivariatePDF, err)
			}
			c.SetElem(i, j, v)
		}
	}

	p := &MultivariatePDF{mean: append([]float64(nil), mean...), cov: c}
	p.factorize()

	return p, nil
}

// factorize fills inv, det, logDet and pd from cov.
func (p *MultivariatePDF) factorize() {
	p.det, _ = matrix.Determinant(p.cov)
	if inv, err := matrix.Inverse(p.cov); err == nil {
		p.inv = inv.(*matrix.Dense)
	}
	sym, err := matrix.ToGonumSym(p.cov)
	if err != nil {
		return
	}
	var chol mat.Cholesky
	if !chol.Factorize(sym) {
		return
	}
	p.logDet = chol.LogDet()
	p.pd = p.inv != nil && isFinite(p.logDet)
}

// Dimension returns d.
func (p *MultivariatePDF) Dimension() int { return len(p.mean) }

// Mean returns a copy of μ.
func (p *MultivariatePDF) Mean() []float64 { return append([]float64(nil), p.mean...) }

// Covariance returns a copy of Σ.
func (p *MultivariatePDF) Covariance() *matrix.Dense { return p.cov.Copy() }

// Determinant returns |Σ| (0 for a singular Σ, possibly negative when indefinite).
func (p *MultivariatePDF) Determinant() float64 {
	if p.pd {
		return math.Exp(p.logDet)
	}

	return p.det
}

// PositiveDefinite reports whether Σ admitted a Cholesky factorization.
func (p *MultivariatePDF) PositiveDefinite() bool { return p.pd }

// mahalanobis returns (x-μ)ᵀ Σ⁻¹ (x-μ); the caller checks pd and len(x).
func (p *MultivariatePDF) mahalanobis(x []float64) float64 {
	d := len(p.mean)
	diff := make([]float64, d)
	for i := range diff {
		diff[i] = x[i] - p.mean[i]
	}
	var q float64
	var i, j int
	for i = 0; i < d; i++ {
		row := p.inv.Row(i)
		var acc float64
		for j = 0; j < d; j++ {
			acc += row[j] * diff[j]
		}
		q += diff[i] * acc
	}

	return q
}

// LogValueAt returns the log-density at x, or NaN when Σ is not
// positive-definite or len(x) != d.
func (p *MultivariatePDF) LogValueAt(x []float64) float64 {
	if !p.pd || len(x) != len(p.mean) {
		return math.NaN()
	}
	d := float64(len(p.mean))

	return -0.5*p.mahalanobis(x) - d*logSqrt2Pi - 0.5*p.logDet
}

// ValueAt returns the density at x, or NaN when Σ is not positive-definite
// or len(x) != d.
func (p *MultivariatePDF) ValueAt(x []float64) float64 {
	return math.Exp(p.LogValueAt(x))
}

// Evaluate is ValueAt with the degenerate cases reported as errors.
//
// Errors: ErrDimensionMismatch, ErrNotPositiveDefinite.
func (p *MultivariatePDF) Evaluate(x []float64) (float64, error) {
	if len(x) != len(p.mean) {
		return math.NaN(), gaussianErrorf("Evaluate", ErrDimensionMismatch)
	}
	if !p.pd {
		return math.NaN(), gaussianErrorf("Evaluate", ErrNotPositiveDefinite)
	}

	return p.ValueAt(x), nil
}

// IsValid reports a finite mean, a finite covariance and a positive-definite Σ.
func (p *MultivariatePDF) IsValid() bool {
	for _, v := range p.mean {
		if !isFinite(v) {
			return false
		}
	}

	return matrix.ValidateFinite(p.cov) == nil && p.pd
}

func (p *MultivariatePDF) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "N(μ=%v, pd=%t)\n", p.mean, p.pd)
	b.WriteString(p.cov.String())

	return b.String()
}
