// Package model holds the serialized model structure and the numeric
// inference backends built from it.
//
// A model is one JSON document (Config) carrying everything the engine needs
// at startup: feature extraction options, the bounds-sensitive window layout,
// selection and classification options, the regex rule set, and the raw
// weights of three small networks:
//
//   - EmbeddingTable - maps sparse chargram bucket ids to dense embedding
//     rows; rows for the given ids are averaged into the destination slice.
//   - FeedForward    - dense ReLU layers producing selection scores (one
//     output) or classification logits (one per collection) from a feature
//     vector, batched.
//
// Both backends validate shapes strictly: a bucket id outside the table
// fails with core.ErrEmbeddingFailure, a feature row of the wrong width
// fails with core.ErrInferenceFailure. They never silently return zeros.
// Neither backend is safe for concurrent use by the same engine call chain;
// callers serialize access or hold one instance per goroutine.
//
// Config validation is fatal: a config missing the sections required for the
// requested operations fails with core.ErrNotInitialized and no engine is
// constructed from it.
package model
