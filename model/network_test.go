package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/annotext/annotext/core"
	"github.com/annotext/annotext/matrix"
	"github.com/annotext/annotext/model"
)

// TestFeedForward_SingleLayer verifies a hand-computed affine map with no
// activation on the final layer.
func TestFeedForward_SingleLayer(t *testing.T) {
	n, err := model.NewFeedForward([]model.LayerSpec{{
		InputSize:  2,
		OutputSize: 2,
		Weights:    []float32{1, 0, 0, -1},
		Bias:       []float32{0.5, 0.5},
	}})
	require.NoError(t, err)
	assert.Equal(t, 2, n.InputSize())
	assert.Equal(t, 2, n.OutputSize())

	out, err := n.ComputeLogits([][]float32{{2, 3}})
	require.NoError(t, err)
	require.Len(t, out, 1)
	// Last layer has no ReLU, so the negative logit survives.
	assert.Equal(t, []float32{2.5, -2.5}, out[0])
}

// TestFeedForward_HiddenReLU verifies that hidden layers clamp negatives
// while the output layer does not.
func TestFeedForward_HiddenReLU(t *testing.T) {
	n, err := model.NewFeedForward([]model.LayerSpec{
		{InputSize: 1, OutputSize: 2, Weights: []float32{1, -1}, Bias: []float32{0, 0}},
		{InputSize: 2, OutputSize: 1, Weights: []float32{1, 1}, Bias: []float32{-5}},
	})
	require.NoError(t, err)

	// Input 3 -> hidden (3, -3) -> ReLU (3, 0) -> output 3 - 5 = -2.
	out, err := n.ComputeLogits([][]float32{{3}})
	require.NoError(t, err)
	assert.Equal(t, []float32{-2}, out[0])
}

// TestFeedForward_Batch verifies per-row outputs for a batch.
func TestFeedForward_Batch(t *testing.T) {
	n, err := model.NewFeedForward([]model.LayerSpec{{
		InputSize: 1, OutputSize: 1, Weights: []float32{2}, Bias: []float32{1},
	}})
	require.NoError(t, err)

	out, err := n.ComputeLogits([][]float32{{0}, {1}, {2}})
	require.NoError(t, err)
	assert.Equal(t, [][]float32{{1}, {3}, {5}}, out)
}

// TestFeedForward_ShapeFailures verifies that malformed input rows fail with
// ErrInferenceFailure and produce no partial output.
func TestFeedForward_ShapeFailures(t *testing.T) {
	n, err := model.NewFeedForward([]model.LayerSpec{{
		InputSize: 2, OutputSize: 1, Weights: []float32{1, 1}, Bias: []float32{0},
	}})
	require.NoError(t, err)

	out, err := n.ComputeLogits([][]float32{{1, 2}, {3}})
	assert.Nil(t, out, "no partial output on failure")
	assert.ErrorIs(t, err, core.ErrInferenceFailure)
}

// TestNewFeedForward_Validation covers empty specs, mismatched layer
// dimensions, and malformed weights.
func TestNewFeedForward_Validation(t *testing.T) {
	_, err := model.NewFeedForward(nil)
	assert.ErrorIs(t, err, core.ErrNotInitialized)

	_, err = model.NewFeedForward([]model.LayerSpec{
		{InputSize: 2, OutputSize: 3, Weights: make([]float32, 6), Bias: make([]float32, 3)},
		{InputSize: 2, OutputSize: 1, Weights: make([]float32, 2), Bias: make([]float32, 1)},
	})
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch, "layer chaining mismatch")

	_, err = model.NewFeedForward([]model.LayerSpec{
		{InputSize: 2, OutputSize: 1, Weights: []float32{1}, Bias: []float32{0}},
	})
	assert.Error(t, err, "weight count must match the declared shape")

	_, err = model.NewFeedForward([]model.LayerSpec{
		{InputSize: 2, OutputSize: 1, Weights: []float32{1, 1}, Bias: []float32{0, 0}},
	})
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch, "bias length mismatch")
}
