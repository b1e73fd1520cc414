// SPDX-License-Identifier: MIT

package gaussian

import "github.com/katalvlaran/crnstat/matrix"

// Evaluable is a density over X.
type Evaluable[X any] interface {
	ValueAt(x X) float64
	IsValid() bool
	String() string
}

// Trainable is a model fitted to data D by Expectation-Maximization.
type Trainable[D any] interface {
	EM(data D, nbSeeds int, opts ...Option) (Result, error)
	LogLikelihood(data D) float64
}

var (
	_ Evaluable[float64]   = UnivariatePDF{}
	_ Evaluable[[]float64] = (*MultivariatePDF)(nil)
	_ Evaluable[float64]   = (*UnivariateMixture)(nil)
	_ Evaluable[[]float64] = (*MultivariateMixture)(nil)

	_ Trainable[[]float64]     = (*UnivariateMixture)(nil)
	_ Trainable[matrix.Matrix] = (*MultivariateMixture)(nil)
)
