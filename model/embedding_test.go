package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/annotext/annotext/core"
	"github.com/annotext/annotext/model"
)

// testTable builds a 4-bucket, 2-wide table with row i = [i, 10i].
func testTable(t *testing.T) *model.EmbeddingTable {
	t.Helper()
	table, err := model.NewEmbeddingTable(4, 2, []float32{
		0, 0,
		1, 10,
		2, 20,
		3, 30,
	})
	require.NoError(t, err)
	return table
}

// TestEmbeddingTable_Average verifies that rows of the given ids are
// averaged into dest.
func TestEmbeddingTable_Average(t *testing.T) {
	table := testTable(t)
	dest := make([]float32, 2)

	require.NoError(t, table.AddEmbedding([]int{1, 3}, dest))
	assert.Equal(t, []float32{2, 20}, dest, "mean of rows 1 and 3")

	require.NoError(t, table.AddEmbedding([]int{2}, dest))
	assert.Equal(t, []float32{2, 20}, dest, "single id copies its row")
}

// TestEmbeddingTable_OverwritesDest verifies that stale dest contents do not
// leak into the result.
func TestEmbeddingTable_OverwritesDest(t *testing.T) {
	table := testTable(t)
	dest := []float32{99, 99}

	require.NoError(t, table.AddEmbedding(nil, dest))
	assert.Equal(t, []float32{0, 0}, dest, "no ids zero the destination")
}

// TestEmbeddingTable_Failures covers out-of-range bucket ids and wrong
// destination widths, both of which must wrap ErrEmbeddingFailure.
func TestEmbeddingTable_Failures(t *testing.T) {
	table := testTable(t)

	err := table.AddEmbedding([]int{4}, make([]float32, 2))
	assert.ErrorIs(t, err, core.ErrEmbeddingFailure, "bucket id beyond table")

	err = table.AddEmbedding([]int{-1}, make([]float32, 2))
	assert.ErrorIs(t, err, core.ErrEmbeddingFailure, "negative bucket id")

	err = table.AddEmbedding([]int{1}, make([]float32, 3))
	assert.ErrorIs(t, err, core.ErrEmbeddingFailure, "wrong destination width")
}

// TestNewEmbeddingTable_BadShape rejects weight slices that do not fill the
// declared table.
func TestNewEmbeddingTable_BadShape(t *testing.T) {
	_, err := model.NewEmbeddingTable(4, 2, []float32{1, 2, 3})
	assert.Error(t, err)
}
