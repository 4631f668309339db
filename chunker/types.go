package chunker

import (
	"errors"

	"github.com/annotext/annotext/core"
)

// Sentinel errors for chunking.
var (
	// ErrBadOptions indicates a non-positive MaxSelectionSpan or BatchSize.
	ErrBadOptions = errors.New("chunker: invalid options")

	// ErrBadSpan indicates a span of interest that is empty or lies outside
	// [0, numTokens).
	ErrBadSpan = errors.New("chunker: span of interest out of range")
)

// Scorer scores a batch of candidate token spans. Implementations typically
// assemble bounds-sensitive feature vectors from a cached feature matrix and
// run them through the selection network. The returned slice must hold one
// score per input span; failures must surface as errors, never as zeros.
type Scorer interface {
	ScoreSpans(spans []core.TokenSpan) ([]float32, error)
}

// ScorerFunc adapts a plain function to the Scorer interface.
type ScorerFunc func(spans []core.TokenSpan) ([]float32, error)

// ScoreSpans calls f.
func (f ScorerFunc) ScoreSpans(spans []core.TokenSpan) ([]float32, error) { return f(spans) }

// ScoredChunk pairs a candidate span with its model score.
type ScoredChunk struct {
	Span  core.TokenSpan
	Score float32
}

// Options configures chunking.
//
// Fields:
//   - MaxSelectionSpan - how far (in tokens) a chunk may stretch from the
//     span of interest on either side.
//   - ReducedOutputSpace - halve the admissible chunk length range to
//     MaxSelectionSpan+1 (lengths measured from a single anchor) instead of
//     the symmetric 2*MaxSelectionSpan+1.
//   - ScoreSingleTokenSpansAsZero - assign 0.0 to single-token candidates
//     without invoking the Scorer.
//   - BatchSize - number of candidates scored per Scorer call.
type Options struct {
	MaxSelectionSpan            int
	ReducedOutputSpace          bool
	ScoreSingleTokenSpansAsZero bool
	BatchSize                   int
}

// DefaultOptions returns conservative defaults for standalone use.
func DefaultOptions() Options {
	return Options{
		MaxSelectionSpan: 10,
		BatchSize:        512,
	}
}

// maxChunkLength derives the admissible candidate length bound.
func (o Options) maxChunkLength() int {
	if o.ReducedOutputSpace {
		return o.MaxSelectionSpan + 1
	}
	return 2*o.MaxSelectionSpan + 1
}
