// SPDX-License-Identifier: MIT

package gaussian

import (
	"fmt"
	"math"
)

// logSqrt2Pi is log(√(2π)).
var logSqrt2Pi = 0.5 * math.Log(2*math.Pi)

// UnivariatePDF is the normal density N(mean, variance).
// A zero or negative variance is accepted and yields non-finite values.
type UnivariatePDF struct {
	mean     float64
	variance float64
}

// NewUnivariatePDF builds N(mean, variance).
func NewUnivariatePDF(mean, variance float64) UnivariatePDF {
	return UnivariatePDF{mean: mean, variance: variance}
}

// Mean returns μ.
func (p UnivariatePDF) Mean() float64 { return p.mean }

// Variance returns σ².
func (p UnivariatePDF) Variance() float64 { return p.variance }

// StdDev returns σ.
func (p UnivariatePDF) StdDev() float64 { return math.Sqrt(p.variance) }

// ValueAt returns exp(-(x-μ)²/2σ²) / √(2πσ²).
func (p UnivariatePDF) ValueAt(x float64) float64 {
	d := x - p.mean

	return math.Exp(-d*d/(2*p.variance)) / math.Sqrt(2*math.Pi*p.variance)
}

// LogValueAt returns log ValueAt(x) without underflowing in the tails.
func (p UnivariatePDF) LogValueAt(x float64) float64 {
	d := x - p.mean

	return -d*d/(2*p.variance) - logSqrt2Pi - 0.5*math.Log(p.variance)
}

// IsValid reports a finite mean and a finite, strictly positive variance.
func (p UnivariatePDF) IsValid() bool {
	return isFinite(p.mean) && isFinite(p.variance) && p.variance > 0
}

func (p UnivariatePDF) String() string {
	return fmt.Sprintf("N(μ=%g, σ²=%g)", p.mean, p.variance)
}

func isFinite(x float64) bool { return !math.IsNaN(x) && !math.IsInf(x, 0) }
