// SPDX-License-Identifier: MIT
package cmat

import (
	"math/cmplx"
	"sort"
)

// cAbs is the modulus of a complex128, named short because it is used in
// every hot loop that prunes near-zero entries.
func cAbs(v complex128) float64 {
	return cmplx.Abs(v)
}

// CSC is a square sparse complex matrix in compressed-sparse-column form
// with 64-bit indices, per the memory policy for hierarchy-sized operators.
type CSC struct {
	N      int64        // matrix is N×N
	ColPtr []int64      // length N+1
	RowIdx []int64      // length NNZ, row indices within each column, sorted ascending
	Vals   []complex128 // length NNZ, aligned with RowIdx
}

// tripletSort orders triplets column-major then row-major, the order CSC
// construction and deterministic duplicate-summing both rely on.
type tripletSort []Triplet

func (t tripletSort) Len() int      { return len(t) }
func (t tripletSort) Swap(i, j int) { t[i], t[j] = t[j], t[i] }
func (t tripletSort) Less(i, j int) bool {
	if t[i].Col != t[j].Col {
		return t[i].Col < t[j].Col
	}

	return t[i].Row < t[j].Row
}

// BuildCSC reduces a triplet list into a CSC matrix. Duplicate (row,col)
// pairs are summed, matching the "assembly is order-independent" contract:
// the result depends only on the multiset of emissions, not on worker
// scheduling order.
// Complexity: O(nnz log nnz) for the sort, O(nnz) for the sweep.
func BuildCSC(n int64, triplets []Triplet) (*CSC, error) {
	if n <= 0 {
		return nil, ErrInvalidDimensions
	}
	sorted := make([]Triplet, len(triplets))
	copy(sorted, triplets)
	sort.Sort(tripletSort(sorted))

	rowIdx := make([]int64, 0, len(sorted))
	vals := make([]complex128, 0, len(sorted))
	counts := make([]int64, n) // per-column stored-entry counts, filled during the dedup sweep

	var i int
	for i < len(sorted) {
		row := sorted[i].Row
		col := sorted[i].Col
		if row < 0 || row >= n || col < 0 || col >= n {
			return nil, ErrOutOfRange
		}
		sum := sorted[i].Val
		j := i + 1
		for j < len(sorted) && sorted[j].Col == col && sorted[j].Row == row {
			sum += sorted[j].Val
			j++
		}
		if sum != 0 {
			rowIdx = append(rowIdx, row)
			vals = append(vals, sum)
			counts[col]++
		}
		i = j
	}

	colPtr := make([]int64, n+1)
	for c := int64(0); c < n; c++ {
		colPtr[c+1] = colPtr[c] + counts[c]
	}

	return &CSC{N: n, ColPtr: colPtr, RowIdx: rowIdx, Vals: vals}, nil
}

// NNZ returns the number of stored nonzero entries.
func (m *CSC) NNZ() int {
	return len(m.Vals)
}

// At retrieves the element at (row, col) via binary search within the
// column's row-sorted slice. Returns 0 for structural zeros.
// Complexity: O(log nnz_col).
func (m *CSC) At(row, col int64) (complex128, error) {
	if m == nil {
		return 0, ErrNilMatrix
	}
	if row < 0 || row >= m.N || col < 0 || col >= m.N {
		return 0, ErrOutOfRange
	}
	start, end := m.ColPtr[col], m.ColPtr[col+1]
	rows := m.RowIdx[start:end]
	idx := sort.Search(len(rows), func(i int) bool { return rows[i] >= row })
	if idx < len(rows) && rows[idx] == row {
		return m.Vals[start+int64(idx)], nil
	}

	return 0, nil
}

// MatVec computes y = M*x.
// Complexity: O(nnz).
func (m *CSC) MatVec(x []complex128) ([]complex128, error) {
	if m == nil {
		return nil, ErrNilMatrix
	}
	if int64(len(x)) != m.N {
		return nil, ErrDimensionMismatch
	}
	y := make([]complex128, m.N)
	var col int64
	for col = 0; col < m.N; col++ {
		xv := x[col]
		if xv == 0 {
			continue
		}
		for k := m.ColPtr[col]; k < m.ColPtr[col+1]; k++ {
			y[m.RowIdx[k]] += m.Vals[k] * xv
		}
	}

	return y, nil
}

// Clone returns a deep copy of m.
func (m *CSC) Clone() *CSC {
	out := &CSC{
		N:      m.N,
		ColPtr: make([]int64, len(m.ColPtr)),
		RowIdx: make([]int64, len(m.RowIdx)),
		Vals:   make([]complex128, len(m.Vals)),
	}
	copy(out.ColPtr, m.ColPtr)
	copy(out.RowIdx, m.RowIdx)
	copy(out.Vals, m.Vals)

	return out
}

// ToTriplets expands the CSC back into a triplet list, preserving the
// column-major order BuildCSC produces. Used to re-enter the COO stage
// (e.g. add_dissipator's re-stamp, which must re-sum against the existing
// diagonal-block entries rather than overwrite them).
func (m *CSC) ToTriplets() []Triplet {
	out := make([]Triplet, 0, len(m.Vals))
	var col int64
	for col = 0; col < m.N; col++ {
		for k := m.ColPtr[col]; k < m.ColPtr[col+1]; k++ {
			out = append(out, Triplet{Row: m.RowIdx[k], Col: col, Val: m.Vals[k]})
		}
	}

	return out
}

// AddCSC returns the elementwise sum of two CSC matrices of the same
// dimension, expressed via a triplet round-trip so duplicate-summing stays
// the single source of truth for "what does overlap mean".
func AddCSC(a, b *CSC) (*CSC, error) {
	if a == nil || b == nil {
		return nil, ErrNilMatrix
	}
	if a.N != b.N {
		return nil, ErrDimensionMismatch
	}
	triplets := append(a.ToTriplets(), b.ToTriplets()...)

	return BuildCSC(a.N, triplets)
}

// Scale returns s*A, preserving the sparsity pattern. BuildCSC's zero-sum
// rule is not applied here, so scaling by zero keeps every entry as a
// stored zero; callers that need a true zero matrix should drop explicitly.
func (m *CSC) Scale(s complex128) *CSC {
	out := m.Clone()
	for i := range out.Vals {
		out.Vals[i] *= s
	}

	return out
}

// DropSmall returns a copy of m with every entry of modulus <= eps removed,
// the sparsity-preserving pruning step used by the truncated-series
// exponential propagator.
func (m *CSC) DropSmall(eps float64) *CSC {
	triplets := make([]Triplet, 0, len(m.Vals))
	for _, t := range m.ToTriplets() {
		if cAbs(t.Val) > eps {
			triplets = append(triplets, t)
		}
	}
	out, _ := BuildCSC(m.N, triplets) // same N as m, never invalid

	return out
}

// Norm1 returns the sum of the moduli of every stored entry, the simple L1
// accumulator used to judge truncated-series convergence.
func (m *CSC) Norm1() float64 {
	var sum float64
	for _, v := range m.Vals {
		sum += cAbs(v)
	}

	return sum
}

// IdentityCSC returns the n×n sparse identity matrix.
func IdentityCSC(n int64) (*CSC, error) {
	if n <= 0 {
		return nil, ErrInvalidDimensions
	}
	triplets := make([]Triplet, n)
	for i := int64(0); i < n; i++ {
		triplets[i] = Triplet{Row: i, Col: i, Val: 1}
	}

	return BuildCSC(n, triplets)
}

// MulCSC multiplies two square sparse matrices of equal dimension via
// Gustavson's column-wise algorithm: each output column is the sparse
// linear combination of A's columns selected by B's column's nonzeros.
// Complexity: O(nnz(A)*avg_col_nnz(B)) in the worst case.
func MulCSC(a, b *CSC) (*CSC, error) {
	if a == nil || b == nil {
		return nil, ErrNilMatrix
	}
	if a.N != b.N {
		return nil, ErrDimensionMismatch
	}
	n := a.N
	triplets := make([]Triplet, 0, len(a.Vals)+len(b.Vals))
	acc := make(map[int64]complex128, 64)
	var col int64
	for col = 0; col < n; col++ {
		for k := range acc {
			delete(acc, k)
		}
		for k := b.ColPtr[col]; k < b.ColPtr[col+1]; k++ {
			rowK := b.RowIdx[k]
			bval := b.Vals[k]
			for p := a.ColPtr[rowK]; p < a.ColPtr[rowK+1]; p++ {
				acc[a.RowIdx[p]] += a.Vals[p] * bval
			}
		}
		for row, v := range acc {
			if v != 0 {
				triplets = append(triplets, Triplet{Row: row, Col: col, Val: v})
			}
		}
	}

	return BuildCSC(n, triplets)
}
