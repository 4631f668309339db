package features

// Embedder turns sparse feature bucket ids into a dense embedding written
// into dest. Implementations embed each id and average the rows; dest's
// length tells the implementation the expected embedding width.
//
// A failure (bucket id out of range, backend not ready) must be reported as
// an error wrapping core.ErrEmbeddingFailure, never by silently writing
// zeros.
type Embedder interface {
	AddEmbedding(sparse []int, dest []float32) error
}
