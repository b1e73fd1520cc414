// Package crnstat is a small statistical pattern-modeling core: dense
// matrices, unit-typed angles, Gaussian densities and mixtures trained by
// Expectation-Maximization, principal component analysis and discrete hidden
// Markov models.
//
// Everything lives in subpackages:
//
//	matrix/   — row-major Dense matrices, reductions, Jacobi eigen, LU/inverse, gonum interop
//	angle/    — radians, degrees and byte angles with injectable trig tables
//	gaussian/ — univariate/multivariate normal PDFs and their mixtures (EM)
//	pca/      — PCA from matrices, vectors, weighted vectors or pattern counts
//	hmm/      — discrete HMM: forward/backward, Viterbi, Baum-Welch
//
// The packages are synchronous and hold no global state. Models are owned by
// one goroutine at a time; the only internal parallelism is the optional
// per-sequence E-step of hmm.BaumWelchMultiple. Training diagnostics go to a
// *slog.Logger injected per call or per model, silent by default.
//
// See examples/ for an end-to-end program.
package crnstat
