// Package core defines the central span, token, and annotation value types
// shared by every stage of the annotation pipeline.
//
// Two kinds of half-open intervals appear throughout:
//
//   - CodepointSpan - an interval over Unicode codepoint offsets in the
//     original text. This is what callers see in the public API.
//   - TokenSpan - an interval over token indices in a tokenized text. This is
//     what the feature matrix and the chunker operate on.
//
// Both are pure values: freely copied, never owning, with Second >= First
// for every valid span and Second == First for an empty one. The algebra on
// them (Size, Single, Intersect, Expand) is the foundation the cached feature
// matrix, the chunker, and the conflict resolver are built on. Intersect and
// Expand deliberately do not clip: Expand may produce out-of-range indices,
// and the universal guard is to Intersect against [0, length) before use.
//
// The package also declares Token, ClassificationResult, AnnotatedSpan, and
// the sentinel errors shared across the pipeline stages.
//
// Errors:
//
//	ErrInvalidSpan      - caller-supplied indices are out of range or inverted.
//	ErrEmbeddingFailure - a sparse feature could not be embedded.
//	ErrInferenceFailure - the inference backend returned malformed output.
//	ErrNotInitialized   - the model config is missing required sections.
package core
