package regexrules

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/annotext/annotext/core"
	"github.com/annotext/annotext/model"
)

// ErrBadPattern indicates a rule whose expression failed to compile.
var ErrBadPattern = errors.New("regexrules: pattern does not compile")

// Match is one rule occurrence in the text.
type Match struct {
	// Span is the annotated sub-span in codepoint offsets.
	Span core.CodepointSpan

	// Classification carries the rule's collection with Score set to the
	// rule's target score and PriorityScore to its priority score.
	Classification core.ClassificationResult
}

// rule is one compiled pattern with its scoring metadata.
type rule struct {
	re            *regexp.Regexp
	collection    string
	targetScore   float32
	priorityScore float32
	modes         map[model.Mode]bool // nil means all modes
}

func (r *rule) enabledFor(mode model.Mode) bool {
	return r.modes == nil || r.modes[mode]
}

func (r *rule) result() core.ClassificationResult {
	return core.ClassificationResult{
		Collection:    r.collection,
		Score:         r.targetScore,
		PriorityScore: r.priorityScore,
	}
}

// Set is an immutable compiled rule collection.
type Set struct {
	rules []*rule
}

// NewSet compiles the configured patterns. Any pattern failing to compile
// makes the whole set invalid.
func NewSet(patterns []model.RegexPattern) (*Set, error) {
	s := &Set{rules: make([]*rule, 0, len(patterns))}
	for _, p := range patterns {
		re, err := regexp.Compile(p.Pattern)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrBadPattern, p.Pattern, err)
		}
		r := &rule{
			re:            re,
			collection:    p.Collection,
			targetScore:   p.TargetScore,
			priorityScore: p.PriorityScore,
		}
		if len(p.Modes) > 0 {
			r.modes = make(map[model.Mode]bool, len(p.Modes))
			for _, m := range p.Modes {
				r.modes[m] = true
			}
		}
		s.rules = append(s.rules, r)
	}
	return s, nil
}

// Empty reports whether the set holds no rules.
func (s *Set) Empty() bool { return len(s.rules) == 0 }

// Chunk returns every occurrence of every rule enabled for mode, in rule
// order then text order. Spans are codepoint offsets; the annotated span is
// capture group 1 when the pattern defines one.
func (s *Set) Chunk(text string, mode model.Mode) []Match {
	var offsets *codepointOffsets
	var out []Match
	for _, r := range s.rules {
		if !r.enabledFor(mode) {
			continue
		}
		locs := r.re.FindAllStringSubmatchIndex(text, -1)
		if len(locs) == 0 {
			continue
		}
		if offsets == nil {
			offsets = newCodepointOffsets(text)
		}
		for _, loc := range locs {
			start, end := loc[0], loc[1]
			if r.re.NumSubexp() >= 1 && loc[2] >= 0 {
				start, end = loc[2], loc[3]
			}
			if start == end {
				continue
			}
			out = append(out, Match{
				Span: core.CodepointSpan{
					First:  offsets.at(start),
					Second: offsets.at(end),
				},
				Classification: r.result(),
			})
		}
	}
	return out
}

// Classify returns the labels of every rule enabled for classification that
// matches selection in its entirety, in rule order. An empty result means no
// rule claims the selection.
func (s *Set) Classify(selection string) []core.ClassificationResult {
	var out []core.ClassificationResult
	for _, r := range s.rules {
		if !r.enabledFor(model.ModeClassification) {
			continue
		}
		loc := r.re.FindStringIndex(selection)
		if loc == nil || loc[0] != 0 || loc[1] != len(selection) {
			continue
		}
		out = append(out, r.result())
	}
	return out
}

// codepointOffsets translates byte offsets of a string into codepoint
// offsets in O(1) per lookup after an O(len) build. Lookups are only valid
// on rune boundaries, which is all the regexp engine ever reports.
type codepointOffsets struct {
	byByte []int
}

func newCodepointOffsets(text string) *codepointOffsets {
	c := &codepointOffsets{byByte: make([]int, len(text)+1)}
	n := 0
	for i := range text {
		c.byByte[i] = n
		n++
	}
	c.byByte[len(text)] = n
	return c
}

func (c *codepointOffsets) at(byteOffset int) int {
	return c.byByte[byteOffset]
}
