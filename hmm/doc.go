// Package hmm implements a discrete Hidden Markov Model: N hidden states,
// K observable symbols, a row-stochastic transition matrix A (N×N), an
// emission matrix B (N×K) and an initial distribution π.
//
// Evaluation uses the forward (Alpha) and backward (Beta) recursions;
// decoding uses Viterbi with ties resolved towards the lowest state index.
// Training is Baum-Welch on one sequence (BaumWelchSingle) or on a set
// (BaumWelchMultiple). A training step that would lower the log-likelihood
// is discarded and ends the run; an impossible sequence ends it before any
// change. In the multi-sequence variant, transitions and emissions that are
// exactly zero are never re-estimated.
//
// By default the recursions are unscaled and probabilities underflow on long
// sequences. WithScaling switches every operation to scaled recursions (and
// Viterbi to the log domain); it is the recommended production setting.
package hmm
