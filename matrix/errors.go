package matrix

import "errors"

// Sentinel errors for dense matrix operations. Algorithms must return these
// (optionally wrapped with fmt.Errorf("ctx: %w", ...)) and tests match them
// via errors.Is. Panics are reserved for programmer errors in private
// helpers.
var (
	// ErrBadShape is returned when a requested shape is invalid (r <= 0 or
	// c <= 0) or when provided data does not match the declared shape.
	ErrBadShape = errors.New("matrix: invalid shape")

	// ErrOutOfRange indicates a row or column index outside valid bounds.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrDimensionMismatch indicates incompatible dimensions between
	// operands, e.g. MatVec where len(x) != Cols.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")
)
