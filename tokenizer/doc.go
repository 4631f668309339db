// Package tokenizer splits free text into codepoint-indexed tokens consumed
// by the feature matrix and the chunker.
//
// Tokens are maximal runs of either alphanumeric or symbol codepoints;
// whitespace separates tokens and is never part of one. A boundary between an
// alphanumeric run and a symbol run also splits, so "call 555-1234" becomes
// ["call", "555", "-", "1234"]. Offsets are Unicode codepoint indices into
// the original string (not byte offsets), satisfying
// []rune(text)[t.Start:t.End] == []rune(t.Value) for every token.
//
// The package also provides line splitting for the per-line annotation mode
// and click-position lookup for SuggestSelection.
//
// All functions are pure and safe for concurrent use.
package tokenizer
