// Package features turns tokens into the numeric feature vectors consumed by
// the inference backend, and caches them so that many overlapping candidate
// spans can be scored without re-extracting anything.
//
// Two layers:
//
//   - Extractor - per-token features: sparse hashed character n-grams of the
//     token text plus a small dense tail (case bit, selection-mask bit).
//   - CachedFeatures - one dense row-major float32 buffer holding the
//     embedded feature vector of every token in an extraction span, plus one
//     precomputed padding row. Built once per extraction span, then queried
//     many times for different sub-spans. This amortizes the relatively
//     expensive sparse-embedding lookup across all candidates the chunker
//     examines: deriving one sub-window vector is O(window), not O(window *
//     embedding cost).
//
// Queries come in two modes. The bounds-sensitive query concatenates token
// windows around the left and right boundary of a selected span (with
// read-masking so a boundary window never leaks tokens from the wrong side of
// the selection), optionally a summed bag of the tokens strictly inside, and
// optionally the span length as one scalar. The click-context
// query emits a contiguous window centered on a single position. Both share
// one masked-append subroutine; any position outside the extraction span or
// outside the read mask yields the padding row, never garbage.
//
// Errors:
//
//	core.ErrEmbeddingFailure - the embedding backend rejected a token's
//	                           sparse features; construction aborts and
//	                           nothing is cached.
//	ErrBadConfig             - invalid extractor or window configuration.
//	ErrShapeMismatch         - per-token feature slices do not match the
//	                           extraction span.
package features
