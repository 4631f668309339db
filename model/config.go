package model

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/annotext/annotext/core"
)

// Mode names a pipeline surface a regex pattern participates in.
type Mode string

// Pattern modes. A pattern with no modes participates everywhere.
const (
	ModeAnnotation     Mode = "annotation"
	ModeClassification Mode = "classification"
	ModeSelection      Mode = "selection"
)

// FeatureOptions configures per-token feature extraction and the query mode
// of the cached feature matrix.
type FeatureOptions struct {
	NumBuckets                  int   `json:"num_buckets"`
	ChargramOrders              []int `json:"chargram_orders"`
	ExtractCaseFeature          bool  `json:"extract_case_feature"`
	ExtractSelectionMaskFeature bool  `json:"extract_selection_mask_feature"`
	MaxWordLength               int   `json:"max_word_length"`
	EmbeddingSize               int   `json:"embedding_size"`

	// ContextSize is the click-context window radius used when
	// BoundsSensitive is absent.
	ContextSize int `json:"context_size"`
}

// BoundsOptions is the serialized bounds-sensitive window layout.
type BoundsOptions struct {
	NumTokensBefore             int  `json:"num_tokens_before"`
	NumTokensInsideLeft         int  `json:"num_tokens_inside_left"`
	NumTokensInsideRight        int  `json:"num_tokens_inside_right"`
	NumTokensAfter              int  `json:"num_tokens_after"`
	IncludeInsideBag            bool `json:"include_inside_bag"`
	IncludeInsideLength         bool `json:"include_inside_length"`
	ScoreSingleTokenSpansAsZero bool `json:"score_single_token_spans_as_zero"`
}

// SelectionOptions bounds the chunker's search space.
type SelectionOptions struct {
	// MaxSelectionSpan is how far (in tokens) a selection may stretch from
	// the clicked token on either side.
	MaxSelectionSpan int `json:"max_selection_span"`

	// SymmetryContextSize expands the clicked token into the span of
	// interest used for chunking.
	SymmetryContextSize int `json:"symmetry_context_size"`

	// BatchSize caps how many candidate feature rows are scored per
	// inference call.
	BatchSize int `json:"batch_size"`

	// ReducedOutputSpace halves the admissible chunk length range to
	// MaxSelectionSpan+1 instead of 2*MaxSelectionSpan+1.
	ReducedOutputSpace bool `json:"selection_reduced_output_space"`
}

// ClassificationOptions names the label space and annotation thresholds.
type ClassificationOptions struct {
	// Collections maps logit index to label name; must contain
	// core.CollectionOther.
	Collections []string `json:"collections"`

	// MinAnnotateConfidence drops low-confidence model chunks in Annotate.
	MinAnnotateConfidence float32 `json:"min_annotate_confidence"`
}

// EmbeddingModel is the serialized embedding table.
type EmbeddingModel struct {
	NumBuckets    int       `json:"num_buckets"`
	EmbeddingSize int       `json:"embedding_size"`
	Weights       []float32 `json:"weights"`
}

// NetworkModel is the serialized form of one feed-forward network.
type NetworkModel struct {
	Layers []LayerSpec `json:"layers"`
}

// RegexPattern is one serialized rule of the regex matcher.
type RegexPattern struct {
	// Pattern is the expression; capture group 1, when present, selects the
	// annotated sub-span, otherwise the whole match is used.
	Pattern string `json:"pattern"`

	// Collection is the label the pattern assigns.
	Collection string `json:"collection"`

	// TargetScore is the classification confidence of a match.
	TargetScore float32 `json:"target_score"`

	// PriorityScore ranks matches in the conflict resolver.
	PriorityScore float32 `json:"priority_score"`

	// Modes restricts the pattern to the named surfaces; empty means all.
	Modes []Mode `json:"modes,omitempty"`
}

// Config is the deserialized model blob: everything the engine loads once at
// startup.
type Config struct {
	FeatureOptions        *FeatureOptions        `json:"feature_options"`
	BoundsSensitive       *BoundsOptions         `json:"bounds_sensitive_features"`
	SelectionOptions      *SelectionOptions      `json:"selection_options"`
	ClassificationOptions *ClassificationOptions `json:"classification_options"`
	EmbeddingModel        *EmbeddingModel        `json:"embedding_model"`
	SelectionModel        *NetworkModel          `json:"selection_model"`
	ClassificationModel   *NetworkModel          `json:"classification_model"`
	RegexPatterns         []RegexPattern         `json:"regex_patterns,omitempty"`

	// EnableDatetime turns the date/time grammar source on.
	EnableDatetime bool `json:"enable_datetime"`

	// SplitLines makes Annotate process the input one line at a time.
	SplitLines bool `json:"split_lines"`

	// StripBoundaryCodepoints lists codepoints stripped from the edges of
	// model chunks before emission (typically punctuation).
	StripBoundaryCodepoints string `json:"strip_boundary_codepoints,omitempty"`
}

// LoadConfig decodes a model config from JSON and validates it.
func LoadConfig(r io.Reader) (*Config, error) {
	var cfg Config
	dec := json.NewDecoder(r)
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("model: decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadConfigFile reads and decodes a model config from disk.
func LoadConfigFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("model: open config: %w", err)
	}
	defer f.Close()
	return LoadConfig(f)
}

// Validate checks that every section required by the engine is present and
// internally consistent. Any violation is fatal and wraps
// core.ErrNotInitialized.
func (c *Config) Validate() error {
	switch {
	case c.FeatureOptions == nil:
		return notInitialized("feature_options")
	case c.FeatureOptions.NumBuckets <= 0 || len(c.FeatureOptions.ChargramOrders) == 0:
		return notInitialized("feature_options bucket/order settings")
	case c.FeatureOptions.EmbeddingSize <= 0:
		return notInitialized("feature_options embedding size")
	case c.SelectionOptions == nil:
		return notInitialized("selection_options")
	case c.SelectionOptions.MaxSelectionSpan <= 0:
		return notInitialized("selection_options max_selection_span")
	case c.ClassificationOptions == nil:
		return notInitialized("classification_options")
	case len(c.ClassificationOptions.Collections) == 0:
		return notInitialized("classification_options collections")
	case c.EmbeddingModel == nil:
		return notInitialized("embedding_model")
	case c.SelectionModel == nil:
		return notInitialized("selection_model")
	case c.ClassificationModel == nil:
		return notInitialized("classification_model")
	}

	if c.EmbeddingModel.NumBuckets != c.FeatureOptions.NumBuckets {
		return notInitialized("embedding_model bucket count mismatch")
	}
	if c.EmbeddingModel.EmbeddingSize != c.FeatureOptions.EmbeddingSize {
		return notInitialized("embedding_model embedding size mismatch")
	}

	hasOther := false
	for _, collection := range c.ClassificationOptions.Collections {
		if collection == core.CollectionOther {
			hasOther = true
			break
		}
	}
	if !hasOther {
		return notInitialized("classification_options missing \"other\" collection")
	}

	return nil
}

// notInitialized wraps core.ErrNotInitialized with the missing section.
func notInitialized(section string) error {
	return fmt.Errorf("model: %s: %w", section, core.ErrNotInitialized)
}
