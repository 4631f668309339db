package resolver

import (
	"errors"
	"fmt"
	"sort"

	"github.com/annotext/annotext/core"
)

// Sentinel errors for conflict resolution.
var (
	// ErrNotSorted indicates candidates were not ordered by span start.
	ErrNotSorted = errors.New("resolver: candidates not sorted by span start")

	// ErrNoClassifier indicates a pending candidate entered a conflict
	// cluster with no classify callback to resolve it.
	ErrNoClassifier = errors.New("resolver: pending candidate without classifier")
)

// otherPriority ranks "other"-labelled candidates below every candidate
// carrying a real label. A candidate whose resolved classification is empty
// ranks at emptyPriority instead: above the sentinel, below any positive
// priority.
const (
	otherPriority float32 = -1
	emptyPriority float32 = 0
)

// ClassifyFunc resolves a deferred classification for the given span. The
// returned labels must be sorted by descending score.
type ClassifyFunc func(span core.CodepointSpan) ([]core.ClassificationResult, error)

// Candidate is one annotation candidate entering conflict resolution. Its
// classification is either resolved up front (rule-based sources) or pending
// until an overlap forces the resolver to rank it.
type Candidate struct {
	span           core.CodepointSpan
	classification []core.ClassificationResult
	resolved       bool
}

// Resolved builds a candidate whose classification is already known.
func Resolved(span core.CodepointSpan, classification []core.ClassificationResult) Candidate {
	return Candidate{span: span, classification: classification, resolved: true}
}

// Pending builds a candidate whose classification is deferred to the
// classify callback.
func Pending(span core.CodepointSpan) Candidate {
	return Candidate{span: span}
}

// Span returns the candidate's codepoint span.
func (c Candidate) Span() core.CodepointSpan { return c.span }

// Classification returns the candidate's labels and whether they have been
// resolved. Accepted candidates that never entered a conflict may still be
// pending; the caller classifies them on demand.
func (c Candidate) Classification() ([]core.ClassificationResult, bool) {
	return c.classification, c.resolved
}

// priority ranks the candidate for greedy acceptance. The "other" sentinel
// sits at the fixed floor; an empty classification ranks neutrally above it.
func (c Candidate) priority() float32 {
	switch {
	case len(c.classification) == 0:
		return emptyPriority
	case core.ClassifiedAsOther(c.classification):
		return otherPriority
	default:
		return c.classification[0].PriorityScore
	}
}

// Resolve partitions candidates into transitive-overlap clusters and keeps,
// per cluster, the greedy priority-ranked non-overlapping subset. Input must
// be sorted by span start; output is the accepted subset in that same order,
// with any classification resolved along the way retained.
//
// classify may be nil when every candidate is resolved. A classify error
// aborts resolution with no partial result.
//
// Complexity: O(n log n) overall plus one classify call per pending
// candidate involved in a conflict.
func Resolve(candidates []Candidate, classify ClassifyFunc) ([]Candidate, error) {
	work := make([]Candidate, len(candidates))
	copy(work, candidates)

	var accepted []int
	for i := 0; i < len(work); {
		end, err := clusterEnd(work, i)
		if err != nil {
			return nil, err
		}
		if end == i+1 {
			accepted = append(accepted, i)
		} else {
			kept, err := resolveCluster(work, i, end, classify)
			if err != nil {
				return nil, err
			}
			accepted = append(accepted, kept...)
		}
		i = end
	}

	sort.Ints(accepted)
	out := make([]Candidate, 0, len(accepted))
	for _, idx := range accepted {
		out = append(out, work[idx])
	}
	return out, nil
}

// clusterEnd returns the index one past the transitive-overlap cluster
// starting at i, extending the cluster while the next candidate starts
// before the furthest span end seen so far.
func clusterEnd(candidates []Candidate, i int) (int, error) {
	clusterLimit := candidates[i].span.Second
	j := i + 1
	for ; j < len(candidates); j++ {
		if candidates[j].span.First < candidates[j-1].span.First {
			return 0, fmt.Errorf("%w: index %d", ErrNotSorted, j)
		}
		if candidates[j].span.First >= clusterLimit {
			break
		}
		if candidates[j].span.Second > clusterLimit {
			clusterLimit = candidates[j].span.Second
		}
	}
	return j, nil
}

// resolveCluster ranks the cluster [start, end) by priority and greedily
// accepts non-overlapping candidates. Pending candidates are classified
// first so their priority is known; the resolved labels are written back
// into candidates.
func resolveCluster(candidates []Candidate, start, end int, classify ClassifyFunc) ([]int, error) {
	order := make([]int, 0, end-start)
	for i := start; i < end; i++ {
		if !candidates[i].resolved {
			if classify == nil {
				return nil, fmt.Errorf("%w: span %v", ErrNoClassifier, candidates[i].span)
			}
			labels, err := classify(candidates[i].span)
			if err != nil {
				return nil, fmt.Errorf("resolver: classifying %v: %w", candidates[i].span, err)
			}
			candidates[i].classification = labels
			candidates[i].resolved = true
		}
		order = append(order, i)
	}

	// Ties keep candidate order, so earlier sources win among equals.
	sort.SliceStable(order, func(a, b int) bool {
		return candidates[order[a]].priority() > candidates[order[b]].priority()
	})

	var kept []int
	for _, idx := range order {
		conflict := false
		for _, k := range kept {
			if candidates[idx].span.Overlaps(candidates[k].span) {
				conflict = true
				break
			}
		}
		if !conflict {
			kept = append(kept, idx)
		}
	}
	return kept, nil
}
