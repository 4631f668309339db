package matrix_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/annotext/annotext/matrix"
)

// TestNewDense_Validation verifies shape validation for both constructors.
func TestNewDense_Validation(t *testing.T) {
	_, err := matrix.NewDense(0, 3)
	assert.ErrorIs(t, err, matrix.ErrBadShape)

	_, err = matrix.NewDense(3, -1)
	assert.ErrorIs(t, err, matrix.ErrBadShape)

	_, err = matrix.NewDenseFrom(2, 2, []float32{1, 2, 3})
	assert.ErrorIs(t, err, matrix.ErrBadShape, "data length must match shape")
}

// TestDense_AtAndRow verifies element access and row views.
func TestDense_AtAndRow(t *testing.T) {
	m, err := matrix.NewDenseFrom(2, 3, []float32{1, 2, 3, 4, 5, 6})
	require.NoError(t, err)

	v, err := m.At(1, 2)
	require.NoError(t, err)
	assert.Equal(t, float32(6), v)

	_, err = m.At(2, 0)
	assert.ErrorIs(t, err, matrix.ErrOutOfRange)

	row, err := m.Row(0)
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 2, 3}, row)

	_, err = m.Row(-1)
	assert.ErrorIs(t, err, matrix.ErrOutOfRange)
}

// TestDense_MatVec verifies the matrix-vector product and its shape checks.
func TestDense_MatVec(t *testing.T) {
	m, err := matrix.NewDenseFrom(2, 3, []float32{1, 0, -1, 2, 1, 0})
	require.NoError(t, err)

	dst := make([]float32, 2)
	require.NoError(t, m.MatVec([]float32{3, 4, 5}, dst))
	assert.Equal(t, []float32{-2, 10}, dst)

	assert.ErrorIs(t, m.MatVec([]float32{1, 2}, dst), matrix.ErrDimensionMismatch)
	assert.ErrorIs(t, m.MatVec([]float32{1, 2, 3}, make([]float32, 3)), matrix.ErrDimensionMismatch)
}

// TestAddBias_And_ReLU verifies the element-wise layer helpers.
func TestAddBias_And_ReLU(t *testing.T) {
	dst := []float32{1, -2, 3}
	require.NoError(t, matrix.AddBias(dst, []float32{1, 1, -5}))
	assert.Equal(t, []float32{2, -1, -2}, dst)

	assert.ErrorIs(t, matrix.AddBias(dst, []float32{1}), matrix.ErrDimensionMismatch)

	matrix.ReLU(dst)
	assert.Equal(t, []float32{2, 0, 0}, dst)
}

// TestSoftmax verifies normalization, ordering preservation, and stability
// under large logits.
func TestSoftmax(t *testing.T) {
	assert.Nil(t, matrix.Softmax(nil))

	out := matrix.Softmax([]float32{1, 2, 3})
	require.Len(t, out, 3)
	var sum float32
	for _, v := range out {
		sum += v
	}
	assert.InDelta(t, 1.0, sum, 1e-5, "softmax must sum to one")
	assert.Greater(t, out[2], out[1])
	assert.Greater(t, out[1], out[0])

	// Large logits must not overflow to NaN.
	out = matrix.Softmax([]float32{1000, 1000})
	assert.InDelta(t, 0.5, out[0], 1e-5)
	assert.InDelta(t, 0.5, out[1], 1e-5)
}
