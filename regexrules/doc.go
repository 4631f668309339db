// Package regexrules matches rule-based annotation patterns against text.
//
// A Set is compiled once from the model configuration and is immutable
// afterwards, so a single Set may serve concurrent callers. Each rule
// carries the collection it labels, a target score, a priority score for
// conflict resolution, and the pipeline surfaces it participates in
// (annotation, classification, selection); a rule with no modes participates
// everywhere.
//
// Matching works in two shapes:
//
//   - Chunk scans the whole text and emits one candidate per
//     non-overlapping occurrence. When the pattern defines capture group 1,
//     that group is the annotated span, letting rules anchor on context
//     without annotating it.
//   - Classify tests whether the rule matches a given selection in its
//     entirety, which is the semantics classification needs: a phone rule
//     must not label a selection that merely contains a phone number.
//
// All spans are codepoint offsets into the original text. The regexp
// package reports byte offsets, so matches are translated before they leave
// the package.
package regexrules
