// SPDX-License-Identifier: MIT

package matrix

import "fmt"

// denseErrorf wraps an underlying error with method context.
func denseErrorf(kind, method string, row, col int, err error) error {
	return fmt.Errorf("%s.%s(%d,%d): %w", kind, method, row, col, err)
}

// Dense is a row-major matrix of float64 values.
type Dense struct {
	r, c int
	data []float64
}

// NewDense creates an r×c Dense matrix initialized to zeros.
// Complexity: O(r*c) time and memory.
func NewDense(rows, cols int) (*Dense, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrInvalidDimensions
	}
	return &Dense{r: rows, c: cols, data: make([]float64, rows*cols)}, nil
}

// Filled creates an r×c Dense matrix with every element set to v.
func Filled(rows, cols int, v float64) (*Dense, error) {
	m, err := NewDense(rows, cols)
	if err != nil {
		return nil, err
	}
	for i := range m.data {
		m.data[i] = v
	}
	return m, nil
}

// Rows returns the number of rows in the matrix.
func (m *Dense) Rows() int { return m.r }

// Cols returns the number of columns in the matrix.
func (m *Dense) Cols() int { return m.c }

// At retrieves the element at (row, col).
func (m *Dense) At(row, col int) (float64, error) {
	if row < 0 || row >= m.r || col < 0 || col >= m.c {
		return 0, denseErrorf("Dense", "At", row, col, ErrIndexOutOfBounds)
	}
	return m.data[row*m.c+col], nil
}

// Set assigns v to the element at (row, col).
func (m *Dense) Set(row, col int, v float64) error {
	if row < 0 || row >= m.r || col < 0 || col >= m.c {
		return denseErrorf("Dense", "Set", row, col, ErrIndexOutOfBounds)
	}
	m.data[row*m.c+col] = v
	return nil
}

// Row returns row i as a view into the backing storage. It panics when i is
// out of range.
func (m *Dense) Row(i int) []float64 { return m.data[i*m.c : (i+1)*m.c] }

// Clone returns a deep copy of m.
func (m *Dense) Clone() *Dense {
	return &Dense{r: m.r, c: m.c, data: append([]float64(nil), m.data...)}
}

// IntDense is a row-major matrix of int values.
type IntDense struct {
	r, c int
	data []int
}

// NewIntDense creates an r×c IntDense with every element set to fill.
func NewIntDense(rows, cols, fill int) (*IntDense, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrInvalidDimensions
	}
	m := &IntDense{r: rows, c: cols, data: make([]int, rows*cols)}
	for i := range m.data {
		m.data[i] = fill
	}
	return m, nil
}

// Rows returns the number of rows in the matrix.
func (m *IntDense) Rows() int { return m.r }

// Cols returns the number of columns in the matrix.
func (m *IntDense) Cols() int { return m.c }

// At retrieves the element at (row, col).
func (m *IntDense) At(row, col int) (int, error) {
	if row < 0 || row >= m.r || col < 0 || col >= m.c {
		return 0, denseErrorf("IntDense", "At", row, col, ErrIndexOutOfBounds)
	}
	return m.data[row*m.c+col], nil
}

// Set assigns v to the element at (row, col).
func (m *IntDense) Set(row, col, v int) error {
	if row < 0 || row >= m.r || col < 0 || col >= m.c {
		return denseErrorf("IntDense", "Set", row, col, ErrIndexOutOfBounds)
	}
	m.data[row*m.c+col] = v
	return nil
}

// Row returns row i as a view into the backing storage.
func (m *IntDense) Row(i int) []int { return m.data[i*m.c : (i+1)*m.c] }
