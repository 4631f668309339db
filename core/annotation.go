package core

import "fmt"

// CollectionOther is the sentinel "garbage" classification label. Spans whose
// top classification is this collection are never surfaced by Annotate, and
// the conflict resolver assigns them priority -1 so that any real label
// outranks them.
const CollectionOther = "other"

// ClassificationResult is one label assigned to a span, with its confidence
// score and the separate priority score used only for conflict tie-breaking.
type ClassificationResult struct {
	// Collection is the label name, e.g. "phone", "date", or
	// CollectionOther.
	Collection string

	// Score is the classification confidence.
	Score float32

	// PriorityScore ranks this candidate against overlapping candidates in
	// the conflict resolver. It is distinct from Score.
	PriorityScore float32
}

// AnnotatedSpan is one annotation produced by the pipeline: a codepoint span
// with its classification labels sorted by descending score.
type AnnotatedSpan struct {
	Span           CodepointSpan
	Classification []ClassificationResult
}

// ClassifiedAsOther reports whether the top classification of the list is the
// "other" sentinel.
func ClassifiedAsOther(classification []ClassificationResult) bool {
	return len(classification) > 0 && classification[0].Collection == CollectionOther
}

// String returns a debug representation showing the span and its best label.
func (a AnnotatedSpan) String() string {
	best := ""
	score := float32(-1)
	if len(a.Classification) > 0 {
		best = a.Classification[0].Collection
		score = a.Classification[0].Score
	}
	return fmt.Sprintf("Span(%d, %d, %s, %v)", a.Span.First, a.Span.Second, best, score)
}
