package core

import "errors"

// Sentinel errors shared by the pipeline stages. Stages return these (or a
// fmt.Errorf wrap of them) and callers match with errors.Is.
var (
	// ErrInvalidSpan indicates caller-supplied click or selection indices that
	// are outside the text's codepoint range, or a span with First >= Second.
	// It is checked at the public-API boundary; a call receiving it degrades
	// to its conservative default instead of failing.
	ErrInvalidSpan = errors.New("core: invalid span")

	// ErrEmbeddingFailure indicates that a sparse feature could not be
	// embedded (bucket id out of range, or the embedding backend not ready).
	ErrEmbeddingFailure = errors.New("core: sparse feature embedding failed")

	// ErrInferenceFailure indicates that the inference backend produced
	// malformed or wrong-shaped output for a feature batch.
	ErrInferenceFailure = errors.New("core: inference backend failure")

	// ErrNotInitialized indicates a model config missing sections required by
	// the requested operation. Fatal to engine construction.
	ErrNotInitialized = errors.New("core: model not initialized")
)
