// SPDX-License-Identifier: MIT

// Package cmat provides complex128 linear algebra primitives for the
// hierarchy-equations core: a flat row-major Dense matrix, COO/CSC sparse
// storage, and the superoperator kernels (spre/spost/commutator/dagger)
// built on top of them.
package cmat

import (
	"fmt"
	"math/cmplx"
)

// denseErrorf wraps an underlying error with Dense method context.
func denseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Dense.%s(%d,%d): %w", method, row, col, err)
}

// Dense is a row-major matrix of complex128 values.
// r is rows, c is columns, and data holds r*c elements in row-major order.
type Dense struct {
	r, c int          // number of rows and columns
	data []complex128 // flat backing storage, length == r*c
}

// NewDense creates an r×c Dense matrix initialized to zeros.
// Stage 1 (Validate): ensure rows and cols > 0.
// Stage 2 (Prepare): allocate flat backing slice.
// Complexity: O(r*c) time and memory.
func NewDense(rows, cols int) (*Dense, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrInvalidDimensions
	}
	data := make([]complex128, rows*cols)

	return &Dense{r: rows, c: cols, data: data}, nil
}

// NewDenseFrom builds a Dense from a row-major slice of rows, each of equal
// length. Every row must share the same column count or ErrDimensionMismatch
// is returned.
// Complexity: O(r*c).
func NewDenseFrom(rows [][]complex128) (*Dense, error) {
	if len(rows) == 0 {
		return nil, ErrInvalidDimensions
	}
	c := len(rows[0])
	if c == 0 {
		return nil, ErrInvalidDimensions
	}
	m, err := NewDense(len(rows), c)
	if err != nil {
		return nil, err
	}
	for i, row := range rows {
		if len(row) != c {
			return nil, ErrDimensionMismatch
		}
		copy(m.data[i*c:(i+1)*c], row)
	}

	return m, nil
}

// Identity returns the d×d identity matrix.
func Identity(d int) (*Dense, error) {
	m, err := NewDense(d, d)
	if err != nil {
		return nil, err
	}
	for i := 0; i < d; i++ {
		m.data[i*d+i] = 1
	}

	return m, nil
}

// Rows returns the number of rows in the matrix.
// Complexity: O(1).
func (m *Dense) Rows() int {
	return m.r
}

// Cols returns the number of columns in the matrix.
// Complexity: O(1).
func (m *Dense) Cols() int {
	return m.c
}

// indexOf computes the flat index for (row, col) or returns ErrOutOfRange.
func (m *Dense) indexOf(row, col int) (int, error) {
	if row < 0 || row >= m.r {
		return 0, denseErrorf("At", row, col, ErrOutOfRange)
	}
	if col < 0 || col >= m.c {
		return 0, denseErrorf("At", row, col, ErrOutOfRange)
	}

	return row*m.c + col, nil
}

// At retrieves the element at (row, col).
// Complexity: O(1).
func (m *Dense) At(row, col int) (complex128, error) {
	idx, err := m.indexOf(row, col)
	if err != nil {
		return 0, err
	}

	return m.data[idx], nil
}

// Set assigns value v at (row, col).
// Complexity: O(1).
func (m *Dense) Set(row, col int, v complex128) error {
	idx, err := m.indexOf(row, col)
	if err != nil {
		return err
	}
	m.data[idx] = v

	return nil
}

// Clone returns a deep copy of the Dense matrix.
// Complexity: O(r*c).
func (m *Dense) Clone() *Dense {
	data := make([]complex128, len(m.data))
	copy(data, m.data)

	return &Dense{r: m.r, c: m.c, data: data}
}

// Dagger returns the conjugate transpose A†.
// Complexity: O(r*c).
func (m *Dense) Dagger() *Dense {
	out := &Dense{r: m.c, c: m.r, data: make([]complex128, len(m.data))}
	var i, j int
	for i = 0; i < m.r; i++ {
		for j = 0; j < m.c; j++ {
			out.data[j*out.c+i] = cmplx.Conj(m.data[i*m.c+j])
		}
	}

	return out
}

// Transpose returns Aᵀ without conjugation.
// Complexity: O(r*c).
func (m *Dense) Transpose() *Dense {
	out := &Dense{r: m.c, c: m.r, data: make([]complex128, len(m.data))}
	var i, j int
	for i = 0; i < m.r; i++ {
		for j = 0; j < m.c; j++ {
			out.data[j*out.c+i] = m.data[i*m.c+j]
		}
	}

	return out
}

// addSub is the shared kernel for Add/Sub, distinguished only by sign.
func addSub(a, b *Dense, sign complex128) (*Dense, error) {
	if a == nil || b == nil {
		return nil, ErrNilMatrix
	}
	if a.r != b.r || a.c != b.c {
		return nil, ErrDimensionMismatch
	}
	out := &Dense{r: a.r, c: a.c, data: make([]complex128, len(a.data))}
	for i := range out.data {
		out.data[i] = a.data[i] + sign*b.data[i]
	}

	return out, nil
}

// Add returns a+b elementwise.
// Complexity: O(r*c).
func Add(a, b *Dense) (*Dense, error) {
	return addSub(a, b, 1)
}

// Sub returns a-b elementwise.
// Complexity: O(r*c).
func Sub(a, b *Dense) (*Dense, error) {
	return addSub(a, b, -1)
}

// Scale returns c*A for scalar c.
// Complexity: O(r*c).
func (m *Dense) Scale(s complex128) *Dense {
	out := &Dense{r: m.r, c: m.c, data: make([]complex128, len(m.data))}
	for i, v := range m.data {
		out.data[i] = s * v
	}

	return out
}

// Mul returns the matrix product a*b. a.Cols must equal b.Rows.
// Complexity: O(n^3) naive triple loop, as in the teacher's Mul kernel.
func Mul(a, b *Dense) (*Dense, error) {
	if a == nil || b == nil {
		return nil, ErrNilMatrix
	}
	if a.c != b.r {
		return nil, ErrDimensionMismatch
	}
	out := &Dense{r: a.r, c: b.c, data: make([]complex128, a.r*b.c)}
	var i, j, k int
	var sum complex128
	for i = 0; i < a.r; i++ {
		for j = 0; j < b.c; j++ {
			sum = 0
			for k = 0; k < a.c; k++ {
				av := a.data[i*a.c+k]
				if av == 0 { // fast path: skip zero multiplies
					continue
				}
				sum += av * b.data[k*b.c+j]
			}
			out.data[i*out.c+j] = sum
		}
	}

	return out, nil
}

// Trace returns the sum of diagonal entries. m must be square.
func (m *Dense) Trace() (complex128, error) {
	if m.r != m.c {
		return 0, ErrNonSquare
	}
	var sum complex128
	for i := 0; i < m.r; i++ {
		sum += m.data[i*m.c+i]
	}

	return sum, nil
}

// IsHermitian reports whether m equals its own conjugate transpose within
// tol, elementwise on the modulus of the difference.
func (m *Dense) IsHermitian(tol float64) bool {
	if m.r != m.c {
		return false
	}
	var i, j int
	for i = 0; i < m.r; i++ {
		for j = i; j < m.c; j++ {
			a := m.data[i*m.c+j]
			b := cmplx.Conj(m.data[j*m.c+i])
			if cmplx.Abs(a-b) > tol {
				return false
			}
		}
	}

	return true
}

// String implements fmt.Stringer for debugging.
func (m *Dense) String() string {
	var s string
	var i, j int
	for i = 0; i < m.r; i++ {
		s += "["
		for j = 0; j < m.c; j++ {
			s += fmt.Sprintf("%v", m.data[i*m.c+j])
			if j < m.c-1 {
				s += ", "
			}
		}
		s += "]\n"
	}

	return s
}
