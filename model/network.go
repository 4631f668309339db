package model

import (
	"fmt"

	"github.com/annotext/annotext/core"
	"github.com/annotext/annotext/matrix"
)

// LayerSpec is the serialized form of one dense layer: OutputSize x
// InputSize row-major weights and OutputSize bias values.
type LayerSpec struct {
	InputSize  int       `json:"input_size"`
	OutputSize int       `json:"output_size"`
	Weights    []float32 `json:"weights"`
	Bias       []float32 `json:"bias"`
}

// layer is one compiled dense layer.
type layer struct {
	weights *matrix.Dense
	bias    []float32
}

// FeedForward is a stack of dense layers with ReLU between them (no
// activation after the last). It scores feature rows in batches. Immutable
// after construction, but not safe for concurrent ComputeLogits calls from
// one engine call chain sharing scratch state upstream.
type FeedForward struct {
	layers     []layer
	inputSize  int
	outputSize int
}

// NewFeedForward compiles layer specs into a network. Consecutive layers
// must agree on their shared dimension.
func NewFeedForward(specs []LayerSpec) (*FeedForward, error) {
	if len(specs) == 0 {
		return nil, fmt.Errorf("model: network needs at least one layer: %w", core.ErrNotInitialized)
	}
	n := &FeedForward{
		inputSize:  specs[0].InputSize,
		outputSize: specs[len(specs)-1].OutputSize,
	}
	prevOut := specs[0].InputSize
	for i, spec := range specs {
		if spec.InputSize != prevOut {
			return nil, fmt.Errorf("model: layer %d input %d does not match previous output %d: %w",
				i, spec.InputSize, prevOut, matrix.ErrDimensionMismatch)
		}
		w, err := matrix.NewDenseFrom(spec.OutputSize, spec.InputSize, spec.Weights)
		if err != nil {
			return nil, fmt.Errorf("model: layer %d weights: %w", i, err)
		}
		if len(spec.Bias) != spec.OutputSize {
			return nil, fmt.Errorf("model: layer %d bias length %d, want %d: %w",
				i, len(spec.Bias), spec.OutputSize, matrix.ErrDimensionMismatch)
		}
		n.layers = append(n.layers, layer{weights: w, bias: spec.Bias})
		prevOut = spec.OutputSize
	}
	return n, nil
}

// InputSize returns the expected feature row width.
func (n *FeedForward) InputSize() int { return n.inputSize }

// OutputSize returns the number of logits per row.
func (n *FeedForward) OutputSize() int { return n.outputSize }

// ComputeLogits scores a batch of feature rows and returns one logit row per
// input row. A row of the wrong width fails with core.ErrInferenceFailure;
// partial output is never returned.
// Complexity: O(batch * sum of layer sizes).
func (n *FeedForward) ComputeLogits(batch [][]float32) ([][]float32, error) {
	out := make([][]float32, len(batch))
	for i, row := range batch {
		if len(row) != n.inputSize {
			return nil, fmt.Errorf("model: feature row %d has width %d, want %d: %w",
				i, len(row), n.inputSize, core.ErrInferenceFailure)
		}
		x := row
		for li, l := range n.layers {
			y := make([]float32, l.weights.Rows())
			if err := l.weights.MatVec(x, y); err != nil {
				return nil, fmt.Errorf("model: layer %d: %w", li, core.ErrInferenceFailure)
			}
			if err := matrix.AddBias(y, l.bias); err != nil {
				return nil, fmt.Errorf("model: layer %d bias: %w", li, core.ErrInferenceFailure)
			}
			if li < len(n.layers)-1 {
				matrix.ReLU(y)
			}
			x = y
		}
		out[i] = x
	}
	return out, nil
}
