package annotator

import (
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/annotext/annotext/chunker"
	"github.com/annotext/annotext/core"
	"github.com/annotext/annotext/datetime"
	"github.com/annotext/annotext/features"
	"github.com/annotext/annotext/matrix"
	"github.com/annotext/annotext/model"
	"github.com/annotext/annotext/regexrules"
)

// Annotator is the assembled engine. All fields are set during New and never
// mutated afterwards.
type Annotator struct {
	cfg *model.Config
	log *zap.Logger
	now func() time.Time

	extractor         *features.Extractor
	embedding         *model.EmbeddingTable
	selectionNet      *model.FeedForward
	classificationNet *model.FeedForward
	rules             *regexrules.Set
	dates             *datetime.Parser

	featureCfg        features.Config
	featureVectorSize int
	stripSet          map[rune]bool
}

// Option customizes an Annotator at construction time.
type Option func(*Annotator)

// WithLogger routes internal degradation reports to the given logger. The
// default is a no-op logger.
func WithLogger(log *zap.Logger) Option {
	return func(a *Annotator) { a.log = log }
}

// WithNow fixes the reference instant of the datetime grammar, mainly for
// deterministic tests.
func WithNow(now func() time.Time) Option {
	return func(a *Annotator) { a.now = now }
}

// New validates the configuration and assembles the engine. Any missing or
// inconsistent section fails with an error wrapping core.ErrNotInitialized;
// a broken regex pattern fails with regexrules.ErrBadPattern.
func New(cfg *model.Config, opts ...Option) (*Annotator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.BoundsSensitive == nil {
		return nil, fmt.Errorf("annotator: bounds_sensitive_features: %w", core.ErrNotInitialized)
	}

	a := &Annotator{
		cfg: cfg,
		log: zap.NewNop(),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}

	var err error
	a.extractor, err = features.NewExtractor(features.ExtractorOptions{
		NumBuckets:                  cfg.FeatureOptions.NumBuckets,
		ChargramOrders:              cfg.FeatureOptions.ChargramOrders,
		ExtractCaseFeature:          cfg.FeatureOptions.ExtractCaseFeature,
		ExtractSelectionMaskFeature: cfg.FeatureOptions.ExtractSelectionMaskFeature,
		MaxWordLength:               cfg.FeatureOptions.MaxWordLength,
	})
	if err != nil {
		return nil, fmt.Errorf("annotator: feature extractor: %w", err)
	}

	a.embedding, err = model.NewEmbeddingTable(
		cfg.EmbeddingModel.NumBuckets,
		cfg.EmbeddingModel.EmbeddingSize,
		cfg.EmbeddingModel.Weights,
	)
	if err != nil {
		return nil, fmt.Errorf("annotator: embedding table: %w", err)
	}

	a.selectionNet, err = model.NewFeedForward(cfg.SelectionModel.Layers)
	if err != nil {
		return nil, fmt.Errorf("annotator: selection model: %w", err)
	}
	a.classificationNet, err = model.NewFeedForward(cfg.ClassificationModel.Layers)
	if err != nil {
		return nil, fmt.Errorf("annotator: classification model: %w", err)
	}

	a.rules, err = regexrules.NewSet(cfg.RegexPatterns)
	if err != nil {
		return nil, err
	}

	if cfg.EnableDatetime {
		dtOpts := datetime.DefaultOptions()
		dtOpts.Now = a.now
		a.dates = datetime.NewParser(dtOpts)
	}

	bounds := cfg.BoundsSensitive
	a.featureCfg = features.Config{
		Bounds: &features.BoundsConfig{
			NumTokensBefore:      bounds.NumTokensBefore,
			NumTokensInsideLeft:  bounds.NumTokensInsideLeft,
			NumTokensInsideRight: bounds.NumTokensInsideRight,
			NumTokensAfter:       bounds.NumTokensAfter,
			IncludeInsideBag:     bounds.IncludeInsideBag,
			IncludeInsideLength:  bounds.IncludeInsideLength,
		},
	}
	a.featureVectorSize = cfg.FeatureOptions.EmbeddingSize + a.extractor.DenseCount()

	// Shape mismatches between the feature layout and the networks must
	// fail here, not on the first inference call.
	wantInput := a.featureCfg.OutputSize(a.featureVectorSize)
	if a.selectionNet.InputSize() != wantInput || a.selectionNet.OutputSize() != 1 {
		return nil, fmt.Errorf("annotator: selection model shape %d->%d does not fit the %d-wide feature layout: %w",
			a.selectionNet.InputSize(), a.selectionNet.OutputSize(), wantInput, core.ErrNotInitialized)
	}
	collections := cfg.ClassificationOptions.Collections
	if a.classificationNet.InputSize() != wantInput || a.classificationNet.OutputSize() != len(collections) {
		return nil, fmt.Errorf("annotator: classification model shape %d->%d does not fit %d features and %d collections: %w",
			a.classificationNet.InputSize(), a.classificationNet.OutputSize(),
			wantInput, len(collections), core.ErrNotInitialized)
	}

	if cfg.StripBoundaryCodepoints != "" {
		a.stripSet = make(map[rune]bool)
		for _, r := range cfg.StripBoundaryCodepoints {
			a.stripSet[r] = true
		}
	}

	return a, nil
}

// buildFeatures embeds every token of the extraction span into a cached
// feature matrix, marking the tokens of masked as selected for the
// selection-mask feature. Spans are absolute token indices; extraction must
// already be clipped to the token range.
func (a *Annotator) buildFeatures(tokens []core.Token, extraction, masked core.TokenSpan) (*features.CachedFeatures, error) {
	n := extraction.Size()
	sparse := make([][]int, n)
	dense := make([][]float32, n)
	for i := 0; i < n; i++ {
		pos := extraction.First + i
		inSpan := pos >= masked.First && pos < masked.Second
		sparse[i], dense[i] = a.extractor.Extract(tokens[pos], inSpan)
	}
	padSparse, padDense := a.extractor.Extract(core.PaddingToken(), false)

	return features.Build(extraction, sparse, dense, padSparse, padDense,
		a.featureCfg, a.embedding, a.featureVectorSize)
}

// selectionScorer adapts the selection network to the chunker over one
// cached feature matrix.
func (a *Annotator) selectionScorer(cached *features.CachedFeatures) chunker.Scorer {
	return chunker.ScorerFunc(func(spans []core.TokenSpan) ([]float32, error) {
		batch := make([][]float32, len(spans))
		for i, span := range spans {
			batch[i] = cached.BoundsSensitive(span)
		}
		logits, err := a.selectionNet.ComputeLogits(batch)
		if err != nil {
			return nil, err
		}
		scores := make([]float32, len(logits))
		for i, row := range logits {
			if len(row) != 1 {
				return nil, fmt.Errorf("annotator: selection model emitted %d logits per span: %w",
					len(row), core.ErrInferenceFailure)
			}
			scores[i] = row[0]
		}
		return scores, nil
	})
}

// chunkerOptions derives the chunker configuration from the model config.
func (a *Annotator) chunkerOptions() chunker.Options {
	return chunker.Options{
		MaxSelectionSpan:            a.cfg.SelectionOptions.MaxSelectionSpan,
		ReducedOutputSpace:          a.cfg.SelectionOptions.ReducedOutputSpace,
		ScoreSingleTokenSpansAsZero: a.cfg.BoundsSensitive.ScoreSingleTokenSpansAsZero,
		BatchSize:                   a.cfg.SelectionOptions.BatchSize,
	}
}

// classifyTokenSpan runs the classification model on one token span and
// returns one result per collection, sorted by descending score. The
// priority score of a model result equals its score.
func (a *Annotator) classifyTokenSpan(tokens []core.Token, span core.TokenSpan) ([]core.ClassificationResult, error) {
	extraction := span.
		Expand(a.cfg.BoundsSensitive.NumTokensBefore, a.cfg.BoundsSensitive.NumTokensAfter).
		Intersect(core.TokenSpan{First: 0, Second: len(tokens)})

	cached, err := a.buildFeatures(tokens, extraction, span)
	if err != nil {
		return nil, err
	}
	logits, err := a.classificationNet.ComputeLogits([][]float32{cached.BoundsSensitive(span)})
	if err != nil {
		return nil, err
	}

	collections := a.cfg.ClassificationOptions.Collections
	scores := matrix.Softmax(logits[0])
	if len(scores) != len(collections) {
		return nil, fmt.Errorf("annotator: %d logits for %d collections: %w",
			len(scores), len(collections), core.ErrInferenceFailure)
	}

	results := make([]core.ClassificationResult, len(scores))
	for i, s := range scores {
		results[i] = core.ClassificationResult{
			Collection:    collections[i],
			Score:         s,
			PriorityScore: s,
		}
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	return results, nil
}

// stripBoundary trims configured boundary codepoints from both span edges.
func (a *Annotator) stripBoundary(runes []rune, span core.CodepointSpan) core.CodepointSpan {
	if a.stripSet == nil {
		return span
	}
	for span.First < span.Second && a.stripSet[runes[span.First]] {
		span.First++
	}
	for span.Second > span.First && a.stripSet[runes[span.Second-1]] {
		span.Second--
	}
	return span
}
