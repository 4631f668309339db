// Package annotator is the public entry point of the engine: it loads one
// model configuration and answers the three text-annotation queries.
//
//   - SuggestSelection expands a tap or click to the most plausible
//     surrounding span ("555" in "call 555-1234 now" becomes "555-1234").
//   - ClassifyText labels a given selection (phone, date, url, ...).
//   - Annotate scans a whole text and returns every non-overlapping
//     annotation worth surfacing.
//
// Three candidate sources feed the pipeline: the learned model (cached
// token features, span chunker, feed-forward scorers), the configured regex
// rules, and the datetime grammar. Overlapping candidates from different
// sources are merged by the conflict resolver.
//
// The public methods never fail on malformed queries: an invalid span or an
// internal inference problem degrades to the conservative answer (the
// original click, no labels, no annotations) and is reported through the
// configured logger. Construction is the opposite: New rejects an unusable
// configuration outright, so a non-nil Annotator is always fully
// initialized.
//
// An Annotator is immutable and safe for concurrent use.
package annotator
