package core

import "fmt"

// Token is one unit of tokenized text. Start and End are codepoint offsets
// into the original string. Tokens are produced by the tokenizer, are ordered
// and non-overlapping, and are treated as immutable by the rest of the
// pipeline.
type Token struct {
	// Value is the token text.
	Value string

	// Start is the codepoint offset of the first codepoint of the token.
	Start int

	// End is the codepoint offset one past the last codepoint of the token.
	End int

	// IsPadding marks the synthesized sentinel token substituted for
	// positions outside the extraction span.
	IsPadding bool
}

// PaddingToken returns the sentinel token used for out-of-range positions.
func PaddingToken() Token {
	return Token{Start: InvalidIndex, End: InvalidIndex, IsPadding: true}
}

// String returns a debug representation, e.g. Token("call", 0, 4).
func (t Token) String() string {
	if t.IsPadding {
		return "Token()"
	}
	return fmt.Sprintf("Token(%q, %d, %d)", t.Value, t.Start, t.End)
}

// IsContainedIn reports whether the token lies fully inside the codepoint
// span.
func (t Token) IsContainedIn(span CodepointSpan) bool {
	return t.Start >= span.First && t.End <= span.Second
}

// TokenSpanToCodepointSpan converts a token span to the codepoint span
// stretching from the start of its first token to the end of its last one.
// Assumes a non-empty span within range of tokens.
func TokenSpanToCodepointSpan(tokens []Token, span TokenSpan) CodepointSpan {
	return CodepointSpan{
		First:  tokens[span.First].Start,
		Second: tokens[span.Second-1].End,
	}
}

// CodepointSpanToTokenSpan returns the span of tokens overlapping the given
// codepoint span: the first token whose end lies past span.First through the
// last token whose start lies before span.Second. Returns a span with both
// ends InvalidIndex when no token overlaps.
// Complexity: O(n) over tokens.
func CodepointSpanToTokenSpan(tokens []Token, span CodepointSpan) TokenSpan {
	first := InvalidIndex
	second := InvalidIndex
	for i, t := range tokens {
		if t.IsPadding {
			continue
		}
		if first == InvalidIndex && t.End > span.First && t.Start < span.Second {
			first = i
		}
		if t.Start < span.Second && t.End > span.First {
			second = i + 1
		}
	}
	if first == InvalidIndex || second == InvalidIndex {
		return TokenSpan{First: InvalidIndex, Second: InvalidIndex}
	}
	return TokenSpan{First: first, Second: second}
}
