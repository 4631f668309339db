package matrix

import "math"

// Dense is a row-major matrix of float32 values. r is rows, c is columns,
// and data holds r*c elements in row-major order.
type Dense struct {
	r, c int
	data []float32
}

// NewDense creates an r x c Dense matrix initialized to zeros.
// Complexity: O(r*c).
func NewDense(rows, cols int) (*Dense, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrBadShape
	}
	return &Dense{r: rows, c: cols, data: make([]float32, rows*cols)}, nil
}

// NewDenseFrom creates an r x c Dense matrix adopting the given row-major
// backing data. The slice is not copied; len(data) must equal rows*cols.
func NewDenseFrom(rows, cols int, data []float32) (*Dense, error) {
	if rows <= 0 || cols <= 0 || len(data) != rows*cols {
		return nil, ErrBadShape
	}
	return &Dense{r: rows, c: cols, data: data}, nil
}

// Rows returns the number of rows. Complexity: O(1).
func (m *Dense) Rows() int { return m.r }

// Cols returns the number of columns. Complexity: O(1).
func (m *Dense) Cols() int { return m.c }

// At retrieves the element at (row, col).
func (m *Dense) At(row, col int) (float32, error) {
	if row < 0 || row >= m.r || col < 0 || col >= m.c {
		return 0, ErrOutOfRange
	}
	return m.data[row*m.c+col], nil
}

// Row returns a view of one row of the backing buffer. The returned slice
// aliases the matrix storage and stays valid for the matrix lifetime.
func (m *Dense) Row(row int) ([]float32, error) {
	if row < 0 || row >= m.r {
		return nil, ErrOutOfRange
	}
	return m.data[row*m.c : (row+1)*m.c], nil
}

// MatVec computes dst = m * x. len(x) must equal Cols and len(dst) must
// equal Rows.
// Complexity: O(r*c).
func (m *Dense) MatVec(x, dst []float32) error {
	if len(x) != m.c || len(dst) != m.r {
		return ErrDimensionMismatch
	}
	for i := 0; i < m.r; i++ {
		row := m.data[i*m.c : (i+1)*m.c]
		var sum float32
		for j, w := range row {
			sum += w * x[j]
		}
		dst[i] = sum
	}
	return nil
}

// AddBias adds the bias vector to dst element-wise. Lengths must match.
func AddBias(dst, bias []float32) error {
	if len(dst) != len(bias) {
		return ErrDimensionMismatch
	}
	for i, b := range bias {
		dst[i] += b
	}
	return nil
}

// ReLU applies max(0, v) to every element of dst in place.
func ReLU(dst []float32) {
	for i, v := range dst {
		if v < 0 {
			dst[i] = 0
		}
	}
}

// Softmax normalizes logits into a probability distribution. Uses the
// max-shift form for numeric stability. Returns nil for empty input.
// Complexity: O(n).
func Softmax(logits []float32) []float32 {
	if len(logits) == 0 {
		return nil
	}
	maxLogit := logits[0]
	for _, v := range logits[1:] {
		if v > maxLogit {
			maxLogit = v
		}
	}
	out := make([]float32, len(logits))
	var sum float64
	for i, v := range logits {
		e := math.Exp(float64(v - maxLogit))
		out[i] = float32(e)
		sum += e
	}
	for i := range out {
		out[i] = float32(float64(out[i]) / sum)
	}
	return out
}
