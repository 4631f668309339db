package features

import (
	"errors"
	"fmt"

	"github.com/annotext/annotext/core"
)

// ErrShapeMismatch indicates per-token feature slices whose count does not
// match the extraction span, or a feature vector too small to hold the dense
// tail.
var ErrShapeMismatch = errors.New("features: feature shape mismatch")

// CachedFeatures holds the embedded feature vectors for every token of one
// extraction span in a single flat row-major buffer, plus one precomputed
// padding row. Immutable after Build; safe to share across concurrent
// read-only queries for the same extraction span.
type CachedFeatures struct {
	extractionSpan    core.TokenSpan
	cfg               Config
	featureVectorSize int
	outputSize        int
	features          []float32 // extractionSpan.Size() rows
	padding           []float32 // one row
}

// Build embeds the sparse features of every token in the extraction span and
// copies its dense features, producing the cached matrix. sparse and dense
// are indexed by 0-based offset relative to extractionSpan.First and must
// both have exactly extractionSpan.Size() entries. The padding token is
// embedded once into its own row.
//
// Fails with an error wrapping core.ErrEmbeddingFailure when the backend
// cannot embed a token; nothing is cached in that case.
// Complexity: O(extractionSpan.Size() * featureVectorSize) plus embedding
// cost per token.
func Build(
	extractionSpan core.TokenSpan,
	sparse [][]int,
	dense [][]float32,
	paddingSparse []int,
	paddingDense []float32,
	cfg Config,
	embedder Embedder,
	featureVectorSize int,
) (*CachedFeatures, error) {
	if !cfg.valid() || featureVectorSize <= 0 {
		return nil, ErrBadConfig
	}
	numTokens := extractionSpan.Size()
	if numTokens < 0 || len(sparse) != numTokens || len(dense) != numTokens {
		return nil, ErrShapeMismatch
	}

	c := &CachedFeatures{
		extractionSpan:    extractionSpan,
		cfg:               cfg,
		featureVectorSize: featureVectorSize,
		outputSize:        cfg.outputFeaturesSize(featureVectorSize),
		features:          make([]float32, featureVectorSize*numTokens),
		padding:           make([]float32, featureVectorSize),
	}

	for i := 0; i < numTokens; i++ {
		row := c.features[i*featureVectorSize : (i+1)*featureVectorSize]
		if err := populateRow(row, sparse[i], dense[i], embedder); err != nil {
			return nil, fmt.Errorf("features: token %d of extraction span: %w",
				extractionSpan.First+i, err)
		}
	}
	if err := populateRow(c.padding, paddingSparse, paddingDense, embedder); err != nil {
		return nil, fmt.Errorf("features: padding token: %w", err)
	}

	return c, nil
}

// populateRow embeds sparse ids into the head of row and copies the dense
// tail behind them. The row layout is [sparse-embedding][dense-features].
func populateRow(row []float32, sparse []int, dense []float32, embedder Embedder) error {
	sparseSize := len(row) - len(dense)
	if sparseSize <= 0 {
		return ErrShapeMismatch
	}
	if err := embedder.AddEmbedding(sparse, row[:sparseSize]); err != nil {
		return err
	}
	copy(row[sparseSize:], dense)
	return nil
}

// OutputFeaturesSize returns the fixed length of one query result.
func (c *CachedFeatures) OutputFeaturesSize() int { return c.outputSize }

// ExtractionSpan returns the token span this matrix was built over.
func (c *CachedFeatures) ExtractionSpan() core.TokenSpan { return c.extractionSpan }

// BoundsSensitive returns the feature vector for the given selected token
// span (in absolute token indices). The span is translated into
// matrix-relative coordinates, then the left-boundary window, the
// right-boundary window, the optional inside bag, and the optional length
// scalar are emitted in order. Window positions outside the read mask emit
// the padding row: the left window is masked to [0, selected.Second) so it
// never leaks tokens at or beyond the right boundary, and the right window
// is masked to [selected.First, extractionLength) symmetrically. The inside
// bag sums the rows strictly inside the span into one token-sized row.
//
// Must only be called on a matrix built with Config.Bounds != nil.
func (c *CachedFeatures) BoundsSensitive(selected core.TokenSpan) []float32 {
	cfg := c.cfg.Bounds
	selected.First -= c.extractionSpan.First
	selected.Second -= c.extractionSpan.First
	extractionLen := c.extractionSpan.Size()

	out := make([]float32, 0, c.outputSize)

	// Left-boundary window.
	out = c.appendRows(
		core.TokenSpan{
			First:  selected.First - cfg.NumTokensBefore,
			Second: selected.First + cfg.NumTokensInsideLeft,
		},
		core.TokenSpan{First: 0, Second: selected.Second},
		out,
	)

	// Right-boundary window.
	out = c.appendRows(
		core.TokenSpan{
			First:  selected.Second - cfg.NumTokensInsideRight,
			Second: selected.Second + cfg.NumTokensAfter,
		},
		core.TokenSpan{First: selected.First, Second: extractionLen},
		out,
	)

	if cfg.IncludeInsideBag {
		out = c.appendBag(selected, out)
	}
	if cfg.IncludeInsideLength {
		out = append(out, float32(selected.Size()))
	}
	return out
}

// ClickContext returns 2*ContextSize+1 consecutive rows centered on clickPos
// (an absolute token index), substituting the padding row for out-of-range
// positions. Must only be called on a matrix built with Config.Bounds == nil.
func (c *CachedFeatures) ClickContext(clickPos int) []float32 {
	clickPos -= c.extractionSpan.First

	out := make([]float32, 0, c.outputSize)
	return c.appendRows(
		core.SingleTokenSpan(clickPos).Expand(c.cfg.ContextSize, c.cfg.ContextSize),
		core.TokenSpan{First: 0, Second: c.extractionSpan.Size()},
		out,
	)
}

// appendRows emits one row per position of intended, reading the matrix for
// positions inside mask and the padding row everywhere else. This is the
// only place the boundary logic lives; both boundary windows and the click
// window go through it.
func (c *CachedFeatures) appendRows(intended, mask core.TokenSpan, out []float32) []float32 {
	readable := intended.Intersect(mask)
	if readable.IsEmpty() {
		// Nothing of the intended window is readable; all positions pad.
		for i := intended.First; i < intended.Second; i++ {
			out = append(out, c.padding...)
		}
		return out
	}
	for i := intended.First; i < readable.First; i++ {
		out = append(out, c.padding...)
	}
	out = append(out,
		c.features[readable.First*c.featureVectorSize:readable.Second*c.featureVectorSize]...)
	for i := readable.Second; i < intended.Second; i++ {
		out = append(out, c.padding...)
	}
	return out
}

// appendBag emits one row holding the element-wise sum of all rows strictly
// inside the span, so the aggregate has the size of one token regardless of
// span length. Callers guarantee a non-empty span; an empty one yields a
// zero row.
func (c *CachedFeatures) appendBag(span core.TokenSpan, out []float32) []float32 {
	offset := len(out)
	out = append(out, make([]float32, c.featureVectorSize)...)
	for i := span.First; i < span.Second; i++ {
		row := c.features[i*c.featureVectorSize : (i+1)*c.featureVectorSize]
		for j, v := range row {
			out[offset+j] += v
		}
	}
	return out
}
