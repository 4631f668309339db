// Package matrix provides the small dense linear algebra layer backing the
// inference executors: a row-major float32 matrix with the handful of
// operations a feed-forward scorer needs (matrix-vector product, bias add,
// ReLU) plus softmax normalization of logits.
//
// Dense stores its elements in one flat slice for cache friendliness; rows of
// the flat buffer can be viewed without copying via Row. All operations
// return sentinel errors (never panic) on shape violations and are matched
// with errors.Is.
//
// Errors:
//
//	ErrBadShape          - requested dimensions are non-positive or data size mismatch.
//	ErrOutOfRange        - a row or column index is outside valid bounds.
//	ErrDimensionMismatch - operand dimensions are incompatible.
package matrix
