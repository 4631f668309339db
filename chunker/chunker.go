package chunker

import (
	"fmt"
	"sort"

	"github.com/annotext/annotext/core"
)

// Chunk enumerates candidate spans around spanOfInterest, scores them and
// returns the greedy maximal-score set of non-overlapping spans, sorted by
// start token.
//
// numTokens is the total number of tokens in the text; spanOfInterest is the
// token span the caller wants covered (a click span for selection, the whole
// text for annotation). Every returned span intersects spanOfInterest.
//
// Complexity: O(k * L) scored candidates where k = |inference span| and
// L = max chunk length, plus O(n log n) for the sort.
func Chunk(numTokens int, spanOfInterest core.TokenSpan, scorer Scorer, opts Options) ([]core.TokenSpan, error) {
	if opts.MaxSelectionSpan <= 0 || opts.BatchSize <= 0 {
		return nil, fmt.Errorf("%w: MaxSelectionSpan=%d BatchSize=%d",
			ErrBadOptions, opts.MaxSelectionSpan, opts.BatchSize)
	}
	if spanOfInterest.IsEmpty() || spanOfInterest.First < 0 || spanOfInterest.Second > numTokens {
		return nil, fmt.Errorf("%w: %v within %d tokens", ErrBadSpan, spanOfInterest, numTokens)
	}

	inference := spanOfInterest.
		Expand(opts.MaxSelectionSpan, opts.MaxSelectionSpan).
		Intersect(core.TokenSpan{First: 0, Second: numTokens})

	candidates := enumerate(inference, spanOfInterest, opts.maxChunkLength())

	scored, err := score(candidates, scorer, opts)
	if err != nil {
		return nil, err
	}

	// Stable sort keeps enumeration order among equal scores, which makes
	// tie-breaking deterministic across runs.
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	// Greedy sweep: accept a chunk iff none of its tokens is claimed yet.
	tokenUsed := make([]bool, inference.Size())
	var selected []core.TokenSpan
	for _, c := range scored {
		free := true
		for t := c.Span.First; t < c.Span.Second; t++ {
			if tokenUsed[t-inference.First] {
				free = false
				break
			}
		}
		if !free {
			continue
		}
		for t := c.Span.First; t < c.Span.Second; t++ {
			tokenUsed[t-inference.First] = true
		}
		selected = append(selected, c.Span)
	}

	sort.Slice(selected, func(i, j int) bool {
		return selected[i].First < selected[j].First
	})
	return selected, nil
}

// enumerate lists every candidate [start, end) that starts inside the
// inference span, intersects the span of interest and respects the length
// bound. Candidates appear in (start, end) lexicographic order.
func enumerate(inference, spanOfInterest core.TokenSpan, maxChunkLength int) []core.TokenSpan {
	var out []core.TokenSpan
	for start := inference.First; start < spanOfInterest.Second; start++ {
		leftmostEnd := start
		if spanOfInterest.First > leftmostEnd {
			leftmostEnd = spanOfInterest.First
		}
		leftmostEnd++
		for end := leftmostEnd; end <= inference.Second && end-start <= maxChunkLength; end++ {
			out = append(out, core.TokenSpan{First: start, Second: end})
		}
	}
	return out
}

// score assigns a score to every candidate, batching Scorer calls and
// optionally short-circuiting single-token spans to 0.0. The result keeps
// the candidates' enumeration order.
func score(candidates []core.TokenSpan, scorer Scorer, opts Options) ([]ScoredChunk, error) {
	scored := make([]ScoredChunk, len(candidates))
	var batch []core.TokenSpan
	var batchIdx []int

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		scores, err := scorer.ScoreSpans(batch)
		if err != nil {
			return fmt.Errorf("chunker: scoring %d candidates: %w", len(batch), err)
		}
		if len(scores) != len(batch) {
			return fmt.Errorf("%w: chunker: got %d scores for %d candidates",
				core.ErrInferenceFailure, len(scores), len(batch))
		}
		for i, idx := range batchIdx {
			scored[idx].Score = scores[i]
		}
		batch = batch[:0]
		batchIdx = batchIdx[:0]
		return nil
	}

	for i, span := range candidates {
		scored[i].Span = span
		if opts.ScoreSingleTokenSpansAsZero && span.Size() == 1 {
			continue
		}
		batch = append(batch, span)
		batchIdx = append(batchIdx, i)
		if len(batch) == opts.BatchSize {
			if err := flush(); err != nil {
				return nil, err
			}
		}
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return scored, nil
}
