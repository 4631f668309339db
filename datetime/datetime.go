package datetime

import (
	"time"

	"github.com/annotext/annotext/core"
)

// Collection is the label attached to every datetime match.
const Collection = "date"

// Granularity is the finest calendar field an expression pins down.
type Granularity int

// Granularity levels, coarse to fine.
const (
	GranularityUnknown Granularity = iota
	GranularityYear
	GranularityMonth
	GranularityDay
	GranularityHour
	GranularityMinute
	GranularitySecond
)

var granularityNames = map[Granularity]string{
	GranularityUnknown: "unknown",
	GranularityYear:    "year",
	GranularityMonth:   "month",
	GranularityDay:     "day",
	GranularityHour:    "hour",
	GranularityMinute:  "minute",
	GranularitySecond:  "second",
}

func (g Granularity) String() string {
	if n, ok := granularityNames[g]; ok {
		return n
	}
	return "unknown"
}

// Match is one recognized date/time expression.
type Match struct {
	// Span locates the expression in codepoint offsets.
	Span core.CodepointSpan

	// Time is the resolved instant in UTC. Fields finer than Granularity
	// are zero.
	Time time.Time

	// Granularity is the finest field the expression specifies.
	Granularity Granularity

	// TargetScore and PriorityScore are copied from the parser options so
	// matches can enter conflict resolution directly.
	TargetScore   float32
	PriorityScore float32
}

// Classification returns the match as a labelled result for the resolver.
func (m Match) Classification() core.ClassificationResult {
	return core.ClassificationResult{
		Collection:    Collection,
		Score:         m.TargetScore,
		PriorityScore: m.PriorityScore,
	}
}

// Options configures a Parser.
//
// Fields:
//   - TargetScore, PriorityScore - scores stamped onto every match.
//   - Now - reference instant for relative expressions and for defaulting
//     omitted fields. nil means time.Now.
type Options struct {
	TargetScore   float32
	PriorityScore float32
	Now           func() time.Time
}

// DefaultOptions scores datetime matches at 1.0 with a low conflict
// priority, so learned annotations with a configured priority outrank them.
func DefaultOptions() Options {
	return Options{TargetScore: 1.0, PriorityScore: 0.1, Now: time.Now}
}

// Parser recognizes datetime expressions. Immutable after construction and
// safe for concurrent use.
type Parser struct {
	opts Options
}

// NewParser builds a parser; zero option fields fall back to defaults.
func NewParser(opts Options) *Parser {
	def := DefaultOptions()
	if opts.TargetScore == 0 {
		opts.TargetScore = def.TargetScore
	}
	if opts.PriorityScore == 0 {
		opts.PriorityScore = def.PriorityScore
	}
	if opts.Now == nil {
		opts.Now = def.Now
	}
	return &Parser{opts: opts}
}

// FindAll scans text and returns every recognized expression, sorted by span
// start. A match whose span lies inside another match's span is suppressed,
// so "6 May 2024" yields one day-granular match rather than an additional
// month-granular "May 2024".
func (p *Parser) FindAll(text string) []Match {
	now := p.opts.Now().UTC()
	var found []Match
	var offsets []int
	for _, pat := range patterns {
		for _, m := range pat.re.FindAllStringSubmatchIndex(text, -1) {
			resolved, gran, ok := pat.build(captures(text, m), now)
			if !ok {
				continue
			}
			if offsets == nil {
				offsets = codepointOffsets(text)
			}
			found = append(found, Match{
				Span: core.CodepointSpan{
					First:  offsets[m[0]],
					Second: offsets[m[1]],
				},
				Time:          resolved,
				Granularity:   gran,
				TargetScore:   p.opts.TargetScore,
				PriorityScore: p.opts.PriorityScore,
			})
		}
	}
	return dropContained(found)
}

// Parse recognizes selection as one whole datetime expression; partial
// coverage does not count. The reported span covers the full selection.
func (p *Parser) Parse(selection string) (Match, bool) {
	now := p.opts.Now().UTC()
	for _, pat := range patterns {
		m := pat.re.FindStringSubmatchIndex(selection)
		if m == nil || m[0] != 0 || m[1] != len(selection) {
			continue
		}
		resolved, gran, ok := pat.build(captures(selection, m), now)
		if !ok {
			continue
		}
		return Match{
			Span:          core.CodepointSpan{First: 0, Second: codepointLen(selection)},
			Time:          resolved,
			Granularity:   gran,
			TargetScore:   p.opts.TargetScore,
			PriorityScore: p.opts.PriorityScore,
		}, true
	}
	return Match{}, false
}

// captures extracts the submatch strings of a FindStringSubmatchIndex
// result; absent groups come back empty.
func captures(text string, m []int) []string {
	out := make([]string, len(m)/2)
	for i := range out {
		if m[2*i] >= 0 {
			out[i] = text[m[2*i]:m[2*i+1]]
		}
	}
	return out
}

// dropContained removes matches nested inside a larger match, preferring
// larger spans and, among equal spans, earlier pattern order. The result is
// sorted by span start.
func dropContained(found []Match) []Match {
	var kept []Match
	for i, m := range found {
		contained := false
		for j, o := range found {
			if i == j {
				continue
			}
			if o.Span.First <= m.Span.First && m.Span.Second <= o.Span.Second {
				if o.Span.Size() > m.Span.Size() || (o.Span == m.Span && j < i) {
					contained = true
					break
				}
			}
		}
		if !contained {
			kept = append(kept, m)
		}
	}
	for i := 1; i < len(kept); i++ {
		for j := i; j > 0 && kept[j].Span.First < kept[j-1].Span.First; j-- {
			kept[j], kept[j-1] = kept[j-1], kept[j]
		}
	}
	return kept
}

// codepointOffsets maps each byte offset on a rune boundary to its codepoint
// index.
func codepointOffsets(text string) []int {
	offsets := make([]int, len(text)+1)
	n := 0
	for i := range text {
		offsets[i] = n
		n++
	}
	offsets[len(text)] = n
	return offsets
}

func codepointLen(text string) int {
	n := 0
	for range text {
		n++
	}
	return n
}
