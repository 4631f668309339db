package regexrules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/annotext/annotext/core"
	"github.com/annotext/annotext/model"
	"github.com/annotext/annotext/regexrules"
)

func phoneRule(modes ...model.Mode) model.RegexPattern {
	return model.RegexPattern{
		Pattern:       `\d{3}-\d{4}`,
		Collection:    "phone",
		TargetScore:   1.0,
		PriorityScore: 0.5,
		Modes:         modes,
	}
}

// TestSet_Chunk finds every occurrence with codepoint spans and the rule's
// scores attached.
func TestSet_Chunk(t *testing.T) {
	set, err := regexrules.NewSet([]model.RegexPattern{phoneRule()})
	require.NoError(t, err)

	matches := set.Chunk("call 555-1234 or 555-9876", model.ModeAnnotation)
	require.Len(t, matches, 2)
	assert.Equal(t, core.CodepointSpan{First: 5, Second: 13}, matches[0].Span)
	assert.Equal(t, core.CodepointSpan{First: 17, Second: 25}, matches[1].Span)
	assert.Equal(t, "phone", matches[0].Classification.Collection)
	assert.Equal(t, float32(1.0), matches[0].Classification.Score)
	assert.Equal(t, float32(0.5), matches[0].Classification.PriorityScore)
}

// TestSet_Chunk_CaptureGroup annotates only group 1 while anchoring on the
// surrounding context.
func TestSet_Chunk_CaptureGroup(t *testing.T) {
	set, err := regexrules.NewSet([]model.RegexPattern{{
		Pattern:    `order #(\d+)`,
		Collection: "order_id",
	}})
	require.NoError(t, err)

	matches := set.Chunk("your order #4711 shipped", model.ModeAnnotation)
	require.Len(t, matches, 1)
	assert.Equal(t, core.CodepointSpan{First: 12, Second: 16}, matches[0].Span)
}

// TestSet_Chunk_UnicodeOffsets verifies spans count codepoints, not bytes.
func TestSet_Chunk_UnicodeOffsets(t *testing.T) {
	set, err := regexrules.NewSet([]model.RegexPattern{phoneRule()})
	require.NoError(t, err)

	// The four-codepoint prefix occupies more than four bytes.
	matches := set.Chunk("héllö 555-1234", model.ModeAnnotation)
	require.Len(t, matches, 1)
	assert.Equal(t, core.CodepointSpan{First: 6, Second: 14}, matches[0].Span)
}

// TestSet_Chunk_ModeFilter skips rules not enabled for the requested
// surface; empty modes enable the rule everywhere.
func TestSet_Chunk_ModeFilter(t *testing.T) {
	set, err := regexrules.NewSet([]model.RegexPattern{
		phoneRule(model.ModeClassification),
		{Pattern: `\bhttps?://\S+`, Collection: "url"},
	})
	require.NoError(t, err)

	matches := set.Chunk("555-1234 http://x.io", model.ModeAnnotation)
	require.Len(t, matches, 1)
	assert.Equal(t, "url", matches[0].Classification.Collection)

	matches = set.Chunk("555-1234", model.ModeClassification)
	require.Len(t, matches, 1)
	assert.Equal(t, "phone", matches[0].Classification.Collection)
}

// TestSet_Classify requires the rule to cover the selection entirely.
func TestSet_Classify(t *testing.T) {
	set, err := regexrules.NewSet([]model.RegexPattern{phoneRule()})
	require.NoError(t, err)

	labels := set.Classify("555-1234")
	require.Len(t, labels, 1)
	assert.Equal(t, "phone", labels[0].Collection)

	assert.Empty(t, set.Classify("call 555-1234"), "partial coverage must not classify")
	assert.Empty(t, set.Classify("555-12"), "no match at all")
}

// TestNewSet_BadPattern rejects the whole set on one broken expression.
func TestNewSet_BadPattern(t *testing.T) {
	_, err := regexrules.NewSet([]model.RegexPattern{
		phoneRule(),
		{Pattern: `([`, Collection: "broken"},
	})
	assert.ErrorIs(t, err, regexrules.ErrBadPattern)
}

// TestSet_Empty reports rule-less sets so callers can skip the scan.
func TestSet_Empty(t *testing.T) {
	set, err := regexrules.NewSet(nil)
	require.NoError(t, err)
	assert.True(t, set.Empty())
	assert.Empty(t, set.Chunk("anything", model.ModeAnnotation))
}
