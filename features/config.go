package features

// BoundsConfig determines the layout of bounds-sensitive feature vectors: a
// concatenation of per-token windows around the left and right boundary of a
// selected span, optionally an aggregate of the tokens strictly inside the
// span, optionally a scalar span-length feature.
type BoundsConfig struct {
	// NumTokensBefore is the window size left of the span's left boundary.
	NumTokensBefore int

	// NumTokensInsideLeft is the window size right of the left boundary,
	// reaching into the span.
	NumTokensInsideLeft int

	// NumTokensInsideRight is the window size left of the right boundary,
	// reaching into the span.
	NumTokensInsideRight int

	// NumTokensAfter is the window size right of the span's right boundary.
	NumTokensAfter int

	// IncludeInsideBag appends one token-sized row holding the element-wise
	// sum of all rows strictly inside the span. Callers must only enable
	// this when every queried span is non-empty.
	IncludeInsideBag bool

	// IncludeInsideLength appends the span size as one float scalar.
	IncludeInsideLength bool
}

// numExtractedTokens returns how many token-sized rows one bounds-sensitive
// query emits.
func (c BoundsConfig) numExtractedTokens() int {
	n := c.NumTokensBefore + c.NumTokensInsideLeft + c.NumTokensInsideRight + c.NumTokensAfter
	if c.IncludeInsideBag {
		n++
	}
	return n
}

// valid reports whether all window sizes are non-negative and at least one
// feature is emitted.
func (c BoundsConfig) valid() bool {
	if c.NumTokensBefore < 0 || c.NumTokensInsideLeft < 0 ||
		c.NumTokensInsideRight < 0 || c.NumTokensAfter < 0 {
		return false
	}
	return c.numExtractedTokens() > 0 || c.IncludeInsideLength
}

// Config selects the query mode of a CachedFeatures matrix.
//
// When Bounds is non-nil the matrix serves bounds-sensitive queries; the
// output size is
//
//	(before+insideLeft+insideRight+after+[1 if bag]) * featureVectorSize
//	  + [1 if length]
//
// Otherwise it serves click-context queries of 2*ContextSize+1 consecutive
// rows centered on a click position.
type Config struct {
	Bounds      *BoundsConfig
	ContextSize int
}

// OutputSize returns the fixed query output length for the given per-token
// feature vector size. Consumers use it to check that a downstream network
// accepts the vectors a matrix of this configuration will emit.
func (c Config) OutputSize(featureVectorSize int) int {
	return c.outputFeaturesSize(featureVectorSize)
}

// outputFeaturesSize computes the fixed query output length for the given
// per-token feature vector size.
func (c Config) outputFeaturesSize(featureVectorSize int) int {
	if c.Bounds != nil {
		size := c.Bounds.numExtractedTokens() * featureVectorSize
		if c.Bounds.IncludeInsideLength {
			size++
		}
		return size
	}
	return (2*c.ContextSize + 1) * featureVectorSize
}

// valid reports whether the config describes a usable query mode.
func (c Config) valid() bool {
	if c.Bounds != nil {
		return c.Bounds.valid()
	}
	return c.ContextSize >= 0
}
