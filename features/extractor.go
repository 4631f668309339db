package features

import (
	"errors"
	"hash/fnv"
	"unicode"

	"github.com/annotext/annotext/core"
)

// ErrBadConfig indicates invalid extractor or window configuration.
var ErrBadConfig = errors.New("features: invalid configuration")

// DefaultMaxWordLength is the codepoint length beyond which token text is
// trimmed before n-gram extraction.
const DefaultMaxWordLength = 20

// paddingChargram is the stand-in text hashed for the padding token.
const paddingChargram = "<PAD>"

// ExtractorOptions configures per-token feature extraction.
//
// Fields:
//   - NumBuckets     - size of the sparse hash space for character n-grams.
//   - ChargramOrders - n-gram orders to extract, e.g. [1, 2, 3].
//   - ExtractCaseFeature - emit a dense +1/-1 bit for initial uppercase.
//   - ExtractSelectionMaskFeature - emit a dense 1/0 bit for "token is part
//     of the current selection".
//   - MaxWordLength  - trim longer tokens (0 means DefaultMaxWordLength).
type ExtractorOptions struct {
	NumBuckets                  int
	ChargramOrders              []int
	ExtractCaseFeature          bool
	ExtractSelectionMaskFeature bool
	MaxWordLength               int
}

// Extractor extracts sparse and dense features from single tokens. Immutable
// after construction and safe for concurrent use.
type Extractor struct {
	opts ExtractorOptions
}

// NewExtractor validates the options and returns an Extractor.
func NewExtractor(opts ExtractorOptions) (*Extractor, error) {
	if opts.NumBuckets <= 0 || len(opts.ChargramOrders) == 0 {
		return nil, ErrBadConfig
	}
	for _, order := range opts.ChargramOrders {
		if order <= 0 {
			return nil, ErrBadConfig
		}
	}
	if opts.MaxWordLength == 0 {
		opts.MaxWordLength = DefaultMaxWordLength
	}
	if opts.MaxWordLength < 2 {
		return nil, ErrBadConfig
	}
	return &Extractor{opts: opts}, nil
}

// DenseCount returns the number of dense features emitted per token.
func (e *Extractor) DenseCount() int {
	count := 0
	if e.opts.ExtractCaseFeature {
		count++
	}
	if e.opts.ExtractSelectionMaskFeature {
		count++
	}
	return count
}

// Extract returns the sparse bucket ids and dense feature values for one
// token. inSpan tells whether the token is part of the current selection and
// feeds the selection-mask feature.
// Complexity: O(len(token) * len(ChargramOrders)).
func (e *Extractor) Extract(token core.Token, inSpan bool) (sparse []int, dense []float32) {
	sparse = e.chargrams(token)

	if e.opts.ExtractCaseFeature {
		if r := firstRune(token.Value); r != 0 && unicode.IsUpper(r) {
			dense = append(dense, 1.0)
		} else {
			dense = append(dense, -1.0)
		}
	}
	if e.opts.ExtractSelectionMaskFeature {
		if inSpan {
			dense = append(dense, 1.0)
		} else {
			dense = append(dense, 0.0)
		}
	}
	return sparse, dense
}

// chargrams hashes the character n-grams of the token into bucket ids. The
// token text is wrapped in ^...$ boundary markers; overlong tokens keep only
// their head and tail halves joined by a \x01 marker. Order-1 grams skip the
// boundary markers.
func (e *Extractor) chargrams(token core.Token) []int {
	if token.IsPadding {
		return []int{e.hash(paddingChargram)}
	}

	word := []rune(token.Value)
	maxLen := e.opts.MaxWordLength
	var featureWord []rune
	if len(word) > maxLen {
		half := maxLen / 2
		featureWord = make([]rune, 0, maxLen+3)
		featureWord = append(featureWord, '^')
		featureWord = append(featureWord, word[:half]...)
		featureWord = append(featureWord, '\x01')
		featureWord = append(featureWord, word[len(word)-half:]...)
		featureWord = append(featureWord, '$')
	} else {
		featureWord = make([]rune, 0, len(word)+2)
		featureWord = append(featureWord, '^')
		featureWord = append(featureWord, word...)
		featureWord = append(featureWord, '$')
	}

	result := make([]int, 0, len(e.opts.ChargramOrders)*len(featureWord))
	for _, order := range e.opts.ChargramOrders {
		if order == 1 {
			for i := 1; i < len(featureWord)-1; i++ {
				result = append(result, e.hash(string(featureWord[i:i+1])))
			}
			continue
		}
		for i := 0; i+order <= len(featureWord); i++ {
			result = append(result, e.hash(string(featureWord[i:i+order])))
		}
	}
	return result
}

// hash maps a chargram into [0, NumBuckets).
func (e *Extractor) hash(gram string) int {
	h := fnv.New64a()
	_, _ = h.Write([]byte(gram))
	return int(h.Sum64() % uint64(e.opts.NumBuckets))
}

// firstRune returns the first rune of s, or 0 for an empty string.
func firstRune(s string) rune {
	for _, r := range s {
		return r
	}
	return 0
}
