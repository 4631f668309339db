package annotator

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/annotext/annotext/chunker"
	"github.com/annotext/annotext/core"
	"github.com/annotext/annotext/model"
	"github.com/annotext/annotext/resolver"
	"github.com/annotext/annotext/tokenizer"
)

// SuggestSelection expands a click span to the best annotation span
// overlapping it. The answer degrades to the click itself when the click
// misses every token, the span is malformed, or inference fails.
func (a *Annotator) SuggestSelection(text string, click core.CodepointSpan) core.CodepointSpan {
	runes := []rune(text)
	if click.First < 0 || click.Second < click.First || click.Second > len(runes) {
		a.log.Debug("selection: click span out of range",
			zap.Int("first", click.First), zap.Int("second", click.Second))
		return click
	}

	tokens := tokenizer.Tokenize(text)
	clickIdx := tokenizer.FindClick(tokens, click)
	if clickIdx == core.InvalidIndex {
		return click
	}

	sel := a.cfg.SelectionOptions
	bounds := a.cfg.BoundsSensitive
	all := core.TokenSpan{First: 0, Second: len(tokens)}
	symmetry := core.SingleTokenSpan(clickIdx).
		Expand(sel.SymmetryContextSize, sel.SymmetryContextSize).
		Intersect(all)
	extraction := symmetry.
		Expand(sel.MaxSelectionSpan+bounds.NumTokensBefore, sel.MaxSelectionSpan+bounds.NumTokensAfter).
		Intersect(all)

	cached, err := a.buildFeatures(tokens, extraction, core.SingleTokenSpan(clickIdx))
	if err != nil {
		a.log.Warn("selection: feature cache failed", zap.Error(err))
		return click
	}
	chunks, err := chunker.Chunk(len(tokens), symmetry, a.selectionScorer(cached), a.chunkerOptions())
	if err != nil {
		a.log.Warn("selection: chunking failed", zap.Error(err))
		return click
	}

	candidates := make([]resolver.Candidate, 0, len(chunks))
	for _, ts := range chunks {
		span := a.stripBoundary(runes, core.TokenSpanToCodepointSpan(tokens, ts))
		if span.IsEmpty() {
			continue
		}
		candidates = append(candidates, resolver.Pending(span))
	}
	candidates = a.appendRuleCandidates(candidates, text, model.ModeSelection)
	sortCandidates(candidates)

	classify := func(span core.CodepointSpan) ([]core.ClassificationResult, error) {
		ts := core.CodepointSpanToTokenSpan(tokens, span)
		if ts.First == core.InvalidIndex {
			return nil, fmt.Errorf("annotator: no tokens under span: %w", core.ErrInvalidSpan)
		}
		return a.classifyTokenSpan(tokens, ts)
	}
	accepted, err := resolver.Resolve(candidates, classify)
	if err != nil {
		a.log.Warn("selection: conflict resolution failed", zap.Error(err))
		return click
	}

	for _, c := range accepted {
		if c.Span().Overlaps(click) {
			return c.Span()
		}
	}
	return click
}

// ClassifyText labels the given selection, consulting the regex rules
// first, the datetime grammar second, and the learned model last. Results
// come sorted by descending score; nil means no source claims the
// selection.
func (a *Annotator) ClassifyText(text string, selection core.CodepointSpan) []core.ClassificationResult {
	runes := []rune(text)
	if selection.First < 0 || selection.Second > len(runes) || selection.IsEmpty() {
		a.log.Debug("classify: selection span out of range",
			zap.Int("first", selection.First), zap.Int("second", selection.Second))
		return nil
	}
	selText := string(runes[selection.First:selection.Second])

	if labels := a.rules.Classify(selText); len(labels) > 0 {
		return labels
	}
	if a.dates != nil {
		if m, ok := a.dates.Parse(selText); ok {
			return []core.ClassificationResult{m.Classification()}
		}
	}

	tokens := tokenizer.Tokenize(text)
	ts := core.CodepointSpanToTokenSpan(tokens, selection)
	if ts.First == core.InvalidIndex {
		return nil
	}
	results, err := a.classifyTokenSpan(tokens, ts)
	if err != nil {
		a.log.Warn("classify: model inference failed", zap.Error(err))
		return nil
	}
	return results
}

// Annotate scans the whole text and returns every surviving annotation,
// sorted by span start. Model chunks classified as "other" or below the
// configured confidence never surface; overlaps across sources are settled
// by the conflict resolver. A failure anywhere in the model pipeline aborts
// the whole pass and degrades to an empty result, never a partial one.
func (a *Annotator) Annotate(text string) []core.AnnotatedSpan {
	runes := []rune(text)

	var lines []tokenizer.Line
	if a.cfg.SplitLines {
		lines = tokenizer.SplitLines(text)
	} else {
		lines = []tokenizer.Line{{
			Span: core.CodepointSpan{First: 0, Second: len(runes)},
			Text: text,
		}}
	}

	var candidates []resolver.Candidate
	for _, line := range lines {
		lineCandidates, err := a.annotateLine(runes, line)
		if err != nil {
			a.log.Warn("annotate: model pipeline failed",
				zap.Int("lineStart", line.Span.First), zap.Error(err))
			return nil
		}
		candidates = append(candidates, lineCandidates...)
	}
	candidates = a.appendRuleCandidates(candidates, text, model.ModeAnnotation)
	sortCandidates(candidates)

	// Every candidate is resolved up front, so no classifier is needed.
	accepted, err := resolver.Resolve(candidates, nil)
	if err != nil {
		a.log.Warn("annotate: conflict resolution failed", zap.Error(err))
		return nil
	}

	var out []core.AnnotatedSpan
	for _, c := range accepted {
		labels, ok := c.Classification()
		if !ok || len(labels) == 0 || core.ClassifiedAsOther(labels) {
			continue
		}
		out = append(out, core.AnnotatedSpan{Span: c.Span(), Classification: labels})
	}
	return out
}

// annotateLine produces the model's candidates for one line. Any feature,
// chunking or classification failure aborts the whole annotation pass, so a
// degraded model never turns into a partial result set.
func (a *Annotator) annotateLine(runes []rune, line tokenizer.Line) ([]resolver.Candidate, error) {
	tokens := tokenizer.Tokenize(line.Text)
	if len(tokens) == 0 {
		return nil, nil
	}

	all := core.TokenSpan{First: 0, Second: len(tokens)}
	cached, err := a.buildFeatures(tokens, all, core.TokenSpan{})
	if err != nil {
		return nil, fmt.Errorf("annotator: line feature cache: %w", err)
	}
	chunks, err := chunker.Chunk(len(tokens), all, a.selectionScorer(cached), a.chunkerOptions())
	if err != nil {
		return nil, fmt.Errorf("annotator: line chunking: %w", err)
	}

	minConfidence := a.cfg.ClassificationOptions.MinAnnotateConfidence
	var candidates []resolver.Candidate
	for _, ts := range chunks {
		labels, err := a.classifyTokenSpan(tokens, ts)
		if err != nil {
			return nil, fmt.Errorf("annotator: chunk classification: %w", err)
		}
		if len(labels) == 0 || core.ClassifiedAsOther(labels) || labels[0].Score < minConfidence {
			continue
		}
		span := core.TokenSpanToCodepointSpan(tokens, ts)
		span.First += line.Span.First
		span.Second += line.Span.First
		span = a.stripBoundary(runes, span)
		if span.IsEmpty() {
			continue
		}
		candidates = append(candidates, resolver.Resolved(span, labels))
	}
	return candidates, nil
}

// appendRuleCandidates adds the regex and datetime sources for the given
// surface.
func (a *Annotator) appendRuleCandidates(candidates []resolver.Candidate, text string, mode model.Mode) []resolver.Candidate {
	for _, m := range a.rules.Chunk(text, mode) {
		candidates = append(candidates, resolver.Resolved(
			m.Span, []core.ClassificationResult{m.Classification}))
	}
	if a.dates != nil {
		for _, m := range a.dates.FindAll(text) {
			candidates = append(candidates, resolver.Resolved(
				m.Span, []core.ClassificationResult{m.Classification()}))
		}
	}
	return candidates
}

// sortCandidates orders candidates by span start, keeping source order among
// equal starts so earlier sources win priority ties.
func sortCandidates(candidates []resolver.Candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Span().First < candidates[j].Span().First
	})
}
