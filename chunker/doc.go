// Package chunker enumerates and scores candidate token spans around a span
// of interest, then greedily selects a maximal-score set of non-overlapping
// chunks. It produces the learned model's candidate annotations.
//
// Algorithm outline:
//
//  1. Inference span = span of interest expanded by MaxSelectionSpan tokens
//     on each side, clipped to [0, numTokens). Bounding the search space
//     here keeps scoring cost linear rather than quadratic in document
//     length.
//  2. Enumerate every candidate span [start, end) with start inside the
//     inference span, a non-empty intersection with the span of interest,
//     and length at most the maximum chunk length (MaxSelectionSpan+1 under
//     the reduced output space, 2*MaxSelectionSpan+1 otherwise).
//  3. Score candidates through the Scorer in batches of BatchSize. Optionally
//     single-token spans are assigned a fixed 0.0 without invoking the
//     backend (an optimization, not a correctness requirement).
//  4. Sort by descending score, ties keeping enumeration order, and sweep
//     greedily: a candidate is accepted when none of its tokens has been
//     claimed by a higher-scoring accepted candidate. Classic greedy
//     maximum-weight interval packing - not optimal in general, but
//     deterministic and cheap.
//  5. Return accepted spans sorted by start position.
//
// The accepted set depends only on the relative scores of the enumerated
// candidates, never on which token inside the span of interest triggered the
// search; two clicks dominated by the same winning span yield that same
// span.
//
// Errors:
//
//	ErrBadOptions            - non-positive MaxSelectionSpan or BatchSize.
//	ErrBadSpan               - span of interest empty or outside the text.
//	core.ErrInferenceFailure - the Scorer returned a malformed score batch.
package chunker
