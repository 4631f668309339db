package tokenizer

import (
	"unicode"

	"github.com/annotext/annotext/core"
)

// runeClass partitions codepoints for token boundary detection.
type runeClass int

const (
	classSpace   runeClass = iota // whitespace, never part of a token
	classAlnum                    // letters, digits, combining marks
	classSymbol                   // everything else (punctuation, symbols)
)

// classify maps one codepoint to its tokenization class.
func classify(r rune) runeClass {
	switch {
	case unicode.IsSpace(r):
		return classSpace
	case unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r):
		return classAlnum
	default:
		return classSymbol
	}
}

// Tokenize splits text into ordered, non-overlapping tokens with codepoint
// offsets. A token is a maximal run of codepoints of one class (alphanumeric
// or symbol); whitespace is skipped. Returns nil for empty input.
// Complexity: O(n) over codepoints.
func Tokenize(text string) []core.Token {
	runes := []rune(text)
	if len(runes) == 0 {
		return nil
	}

	var tokens []core.Token
	start := 0
	current := classSpace
	flush := func(end int) {
		if current == classSpace || end <= start {
			return
		}
		tokens = append(tokens, core.Token{
			Value: string(runes[start:end]),
			Start: start,
			End:   end,
		})
	}

	for i, r := range runes {
		c := classify(r)
		if c != current {
			flush(i)
			start = i
			current = c
		}
	}
	flush(len(runes))

	return tokens
}

// Line is one line of the input with its codepoint span in the full text.
type Line struct {
	Span core.CodepointSpan
	Text string
}

// SplitLines splits text on '\n' into lines with codepoint spans. The
// newline itself belongs to no line. A trailing newline yields no extra
// empty line; an empty input yields a single empty line so that callers can
// treat the result as a total cover of the text.
func SplitLines(text string) []Line {
	runes := []rune(text)

	var lines []Line
	start := 0
	for i, r := range runes {
		if r != '\n' {
			continue
		}
		lines = append(lines, Line{
			Span: core.CodepointSpan{First: start, Second: i},
			Text: string(runes[start:i]),
		})
		start = i + 1
	}
	if start < len(runes) || len(lines) == 0 {
		lines = append(lines, Line{
			Span: core.CodepointSpan{First: start, Second: len(runes)},
			Text: string(runes[start:]),
		})
	}
	return lines
}

// FindClick returns the index of the first token overlapping the click span,
// or core.InvalidIndex when the click falls outside every token (e.g. into
// whitespace).
// Complexity: O(n) over tokens.
func FindClick(tokens []core.Token, click core.CodepointSpan) int {
	for i, t := range tokens {
		if t.IsPadding {
			continue
		}
		if t.Start < click.Second && t.End > click.First {
			return i
		}
	}
	return core.InvalidIndex
}
