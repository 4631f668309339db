package core

// InvalidIndex marks an unresolvable token or codepoint position.
const InvalidIndex = -1

// TokenSpan is a half-open interval [First, Second) over token indices.
type TokenSpan struct {
	First  int
	Second int
}

// CodepointSpan is a half-open interval [First, Second) over Unicode
// codepoint offsets in the original text.
type CodepointSpan struct {
	First  int
	Second int
}

// Size returns the number of tokens in the span. Assumes a valid span.
// Complexity: O(1).
func (s TokenSpan) Size() int { return s.Second - s.First }

// Size returns the number of codepoints in the span. Assumes a valid span.
// Complexity: O(1).
func (s CodepointSpan) Size() int { return s.Second - s.First }

// SingleTokenSpan returns a span consisting of the one token at index i.
func SingleTokenSpan(i int) TokenSpan {
	return TokenSpan{First: i, Second: i + 1}
}

// Intersect returns the intersection of two token spans. The caller must
// ensure the spans actually overlap; for disjoint inputs the result has
// Second < First and must be treated as empty when iterated.
func (s TokenSpan) Intersect(o TokenSpan) TokenSpan {
	return TokenSpan{First: max(s.First, o.First), Second: min(s.Second, o.Second)}
}

// Intersect returns the intersection of two codepoint spans, with the same
// overlap precondition as TokenSpan.Intersect.
func (s CodepointSpan) Intersect(o CodepointSpan) CodepointSpan {
	return CodepointSpan{First: max(s.First, o.First), Second: min(s.Second, o.Second)}
}

// Expand grows the span by left tokens on the left and right tokens on the
// right. The result may run out of range; consumers clip it by intersecting
// against [0, length) before use.
func (s TokenSpan) Expand(left, right int) TokenSpan {
	return TokenSpan{First: s.First - left, Second: s.Second + right}
}

// Expand grows the codepoint span by the given margins without clipping.
func (s CodepointSpan) Expand(left, right int) CodepointSpan {
	return CodepointSpan{First: s.First - left, Second: s.Second + right}
}

// Overlaps reports whether the two token spans share at least one token.
func (s TokenSpan) Overlaps(o TokenSpan) bool {
	return s.First < o.Second && o.First < s.Second
}

// Overlaps reports whether the two codepoint spans share at least one
// codepoint.
func (s CodepointSpan) Overlaps(o CodepointSpan) bool {
	return s.First < o.Second && o.First < s.Second
}

// IsEmpty reports whether the span covers no tokens.
func (s TokenSpan) IsEmpty() bool { return s.Second <= s.First }

// IsEmpty reports whether the span covers no codepoints.
func (s CodepointSpan) IsEmpty() bool { return s.Second <= s.First }
