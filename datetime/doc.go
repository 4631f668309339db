// Package datetime recognizes date and time expressions in English text and
// resolves them to concrete instants.
//
// The grammar is deliberately small and data-driven: a fixed, immutable
// table of patterns, each paired with a builder that validates the captured
// fields and assembles a time.Time. Covered forms:
//
//   - numeric dates: ISO (2024-05-06), dotted European (6.5.2024), slashed
//     US (5/6/2024)
//   - clock times: 14:30, 14:30:59, 2:30 pm
//   - month-name dates: May 6, May 6 2024, 6 May 2024, with ordinal
//     suffixes
//   - weekday names resolved to the next occurrence after the reference
//     instant
//   - relative words: today, tomorrow, yesterday, noon, midnight
//
// Every match reports the finest granularity the expression pins down, so
// "May 2024" is month-granular while "14:30:59" is second-granular.
// Calendar-impossible expressions (month 13, February 30th, hour 25) are
// rejected during validation, not by the patterns themselves.
//
// FindAll scans free text and is the annotation-side entry point; Parse
// requires the expression to cover the selection exactly and serves
// classification. Spans are codepoint offsets. The reference instant
// defaults to time.Now and is injectable for tests.
package datetime
