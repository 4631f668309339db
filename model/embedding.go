package model

import (
	"fmt"

	"github.com/annotext/annotext/core"
	"github.com/annotext/annotext/matrix"
)

// EmbeddingTable maps sparse feature bucket ids to dense embedding rows.
// Immutable after construction.
type EmbeddingTable struct {
	table *matrix.Dense // numBuckets rows of embeddingSize columns
}

// NewEmbeddingTable builds a table of numBuckets rows by embeddingSize
// columns from row-major weights.
func NewEmbeddingTable(numBuckets, embeddingSize int, weights []float32) (*EmbeddingTable, error) {
	table, err := matrix.NewDenseFrom(numBuckets, embeddingSize, weights)
	if err != nil {
		return nil, fmt.Errorf("model: embedding table: %w", err)
	}
	return &EmbeddingTable{table: table}, nil
}

// EmbeddingSize returns the width of one embedding row.
func (t *EmbeddingTable) EmbeddingSize() int { return t.table.Cols() }

// AddEmbedding averages the embedding rows of the given sparse ids into
// dest. dest must be exactly one embedding row wide. An id outside the table
// or a wrong destination width fails with core.ErrEmbeddingFailure.
// Complexity: O(len(sparse) * embeddingSize).
func (t *EmbeddingTable) AddEmbedding(sparse []int, dest []float32) error {
	if len(dest) != t.table.Cols() {
		return fmt.Errorf("model: embedding dest width %d, want %d: %w",
			len(dest), t.table.Cols(), core.ErrEmbeddingFailure)
	}
	for i := range dest {
		dest[i] = 0
	}
	if len(sparse) == 0 {
		return nil
	}
	scale := 1.0 / float32(len(sparse))
	for _, id := range sparse {
		row, err := t.table.Row(id)
		if err != nil {
			return fmt.Errorf("model: bucket id %d outside table: %w", id, core.ErrEmbeddingFailure)
		}
		for j, v := range row {
			dest[j] += v * scale
		}
	}
	return nil
}
