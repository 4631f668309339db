package chunker_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/annotext/annotext/chunker"
	"github.com/annotext/annotext/core"
)

// spanScores builds a Scorer from a fixed span->score table; spans absent
// from the table score a strongly negative default.
func spanScores(table map[core.TokenSpan]float32) chunker.Scorer {
	return chunker.ScorerFunc(func(spans []core.TokenSpan) ([]float32, error) {
		scores := make([]float32, len(spans))
		for i, s := range spans {
			if v, ok := table[s]; ok {
				scores[i] = v
			} else {
				scores[i] = -100
			}
		}
		return scores, nil
	})
}

// TestChunk_PicksHighestScoringSpan verifies that the dominant candidate
// claims its tokens and suppresses every overlapping alternative.
func TestChunk_PicksHighestScoringSpan(t *testing.T) {
	scorer := spanScores(map[core.TokenSpan]float32{
		{First: 1, Second: 4}: 5,
		{First: 2, Second: 3}: 1,
	})
	opts := chunker.Options{MaxSelectionSpan: 2, BatchSize: 8}

	got, err := chunker.Chunk(6, core.TokenSpan{First: 2, Second: 3}, scorer, opts)
	require.NoError(t, err)
	assert.Equal(t, []core.TokenSpan{{First: 1, Second: 4}}, got)
}

// TestChunk_SymmetricAcrossClicks verifies that two different clicks inside
// the same dominant span produce the same chunk.
func TestChunk_SymmetricAcrossClicks(t *testing.T) {
	scorer := spanScores(map[core.TokenSpan]float32{
		{First: 1, Second: 5}: 9,
	})
	opts := chunker.Options{MaxSelectionSpan: 4, BatchSize: 8}

	a, err := chunker.Chunk(8, core.SingleTokenSpan(1), scorer, opts)
	require.NoError(t, err)
	b, err := chunker.Chunk(8, core.SingleTokenSpan(4), scorer, opts)
	require.NoError(t, err)
	assert.Equal(t, a, b, "clicks covered by the same winner must agree")
	assert.Equal(t, []core.TokenSpan{{First: 1, Second: 5}}, a)
}

// TestChunk_NonOverlappingCover verifies the greedy sweep packs several
// winners over a whole-text span of interest and sorts them by start.
func TestChunk_NonOverlappingCover(t *testing.T) {
	scorer := spanScores(map[core.TokenSpan]float32{
		{First: 4, Second: 6}: 8,
		{First: 0, Second: 2}: 7,
		{First: 1, Second: 5}: 6, // loses token 1 to {0,2} and token 4 to {4,6}
		{First: 2, Second: 4}: 5,
	})
	opts := chunker.Options{MaxSelectionSpan: 3, BatchSize: 4}

	got, err := chunker.Chunk(6, core.TokenSpan{First: 0, Second: 6}, scorer, opts)
	require.NoError(t, err)

	assert.Contains(t, got, core.TokenSpan{First: 0, Second: 2})
	assert.Contains(t, got, core.TokenSpan{First: 2, Second: 4})
	assert.Contains(t, got, core.TokenSpan{First: 4, Second: 6})
	assert.NotContains(t, got, core.TokenSpan{First: 1, Second: 5})
	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i].First, got[i-1].Second, "results must not overlap")
	}
}

// TestChunk_TieBreaksByEnumerationOrder verifies determinism when scores are
// equal: the candidate enumerated first wins.
func TestChunk_TieBreaksByEnumerationOrder(t *testing.T) {
	// Every candidate scores 0; enumeration starts at {0,1}, so greedy
	// packing degenerates to single tokens left to right.
	flat := chunker.ScorerFunc(func(spans []core.TokenSpan) ([]float32, error) {
		return make([]float32, len(spans)), nil
	})
	opts := chunker.Options{MaxSelectionSpan: 2, BatchSize: 8}

	got, err := chunker.Chunk(3, core.TokenSpan{First: 0, Second: 3}, flat, opts)
	require.NoError(t, err)
	assert.Equal(t, []core.TokenSpan{
		{First: 0, Second: 1},
		{First: 1, Second: 2},
		{First: 2, Second: 3},
	}, got)
}

// TestChunk_SingleTokenZeroSkipsScorer verifies that the shortcut never
// routes single-token candidates through the backend.
func TestChunk_SingleTokenZeroSkipsScorer(t *testing.T) {
	scorer := chunker.ScorerFunc(func(spans []core.TokenSpan) ([]float32, error) {
		scores := make([]float32, len(spans))
		for i, s := range spans {
			if s.Size() == 1 {
				return nil, errors.New("single-token span reached the scorer")
			}
			scores[i] = -1 // multi-token spans lose to the fixed 0.0
		}
		return scores, nil
	})
	opts := chunker.Options{
		MaxSelectionSpan:            2,
		ScoreSingleTokenSpansAsZero: true,
		BatchSize:                   8,
	}

	got, err := chunker.Chunk(4, core.TokenSpan{First: 0, Second: 4}, scorer, opts)
	require.NoError(t, err)
	assert.Len(t, got, 4, "all-zero singles beat negative multi-token spans")
}

// TestChunk_BatchSizeHonored verifies the candidate stream is cut into
// batches of at most BatchSize.
func TestChunk_BatchSizeHonored(t *testing.T) {
	var sizes []int
	scorer := chunker.ScorerFunc(func(spans []core.TokenSpan) ([]float32, error) {
		sizes = append(sizes, len(spans))
		return make([]float32, len(spans)), nil
	})
	opts := chunker.Options{MaxSelectionSpan: 3, BatchSize: 4}

	_, err := chunker.Chunk(5, core.TokenSpan{First: 0, Second: 5}, scorer, opts)
	require.NoError(t, err)
	require.NotEmpty(t, sizes)
	total := 0
	for _, n := range sizes {
		assert.LessOrEqual(t, n, 4)
		total += n
	}
	assert.Greater(t, total, 4, "enumeration must span multiple batches")
}

// TestChunk_ScorerErrors verifies failure propagation and malformed batch
// detection.
func TestChunk_ScorerErrors(t *testing.T) {
	boom := errors.New("backend down")
	failing := chunker.ScorerFunc(func(spans []core.TokenSpan) ([]float32, error) {
		return nil, boom
	})
	opts := chunker.Options{MaxSelectionSpan: 2, BatchSize: 8}

	_, err := chunker.Chunk(4, core.TokenSpan{First: 1, Second: 2}, failing, opts)
	assert.ErrorIs(t, err, boom)

	short := chunker.ScorerFunc(func(spans []core.TokenSpan) ([]float32, error) {
		return make([]float32, len(spans)-1), nil
	})
	_, err = chunker.Chunk(4, core.TokenSpan{First: 1, Second: 2}, short, opts)
	assert.ErrorIs(t, err, core.ErrInferenceFailure)
}

// TestChunk_InputValidation covers option and span validation.
func TestChunk_InputValidation(t *testing.T) {
	ok := spanScores(nil)

	_, err := chunker.Chunk(4, core.SingleTokenSpan(0), ok, chunker.Options{BatchSize: 8})
	assert.ErrorIs(t, err, chunker.ErrBadOptions)

	opts := chunker.Options{MaxSelectionSpan: 2, BatchSize: 8}
	_, err = chunker.Chunk(4, core.TokenSpan{First: 2, Second: 2}, ok, opts)
	assert.ErrorIs(t, err, chunker.ErrBadSpan, "empty span of interest")

	_, err = chunker.Chunk(4, core.TokenSpan{First: 3, Second: 5}, ok, opts)
	assert.ErrorIs(t, err, chunker.ErrBadSpan, "span beyond the text")
}

// TestChunk_ReducedOutputSpace verifies the tighter length bound: with
// MaxSelectionSpan=2 reduced mode admits chunks of at most 3 tokens.
func TestChunk_ReducedOutputSpace(t *testing.T) {
	scorer := spanScores(map[core.TokenSpan]float32{
		{First: 0, Second: 5}: 50, // length 5, admissible only in full mode
		{First: 1, Second: 4}: 10,
	})

	full := chunker.Options{MaxSelectionSpan: 2, BatchSize: 16}
	got, err := chunker.Chunk(5, core.TokenSpan{First: 2, Second: 3}, scorer, full)
	require.NoError(t, err)
	assert.Equal(t, []core.TokenSpan{{First: 0, Second: 5}}, got)

	reduced := full
	reduced.ReducedOutputSpace = true
	got, err = chunker.Chunk(5, core.TokenSpan{First: 2, Second: 3}, scorer, reduced)
	require.NoError(t, err)
	assert.Equal(t, []core.TokenSpan{{First: 1, Second: 4}}, got)
}
