// SPDX-License-Identifier: MIT
package cmat

// Triplet is a single (row, col, value) coordinate entry. Indices are
// int64 because hierarchy label counts grow combinatorially and a global
// matrix dimension of N_ado*d^2 can exceed 32-bit range for deep tiers.
type Triplet struct {
	Row, Col int64
	Val      complex128
}

// COOBuilder accumulates triplets for later reduction into a CSC matrix.
// Each HierarchyAssembler worker owns a private COOBuilder; partitions are
// concatenated at the join point and never shared while being written.
type COOBuilder struct {
	triplets []Triplet
}

// NewCOOBuilder returns an empty builder. capHint pre-sizes the backing
// slice; pass 0 when the final count is unknown.
func NewCOOBuilder(capHint int) *COOBuilder {
	if capHint < 0 {
		capHint = 0
	}

	return &COOBuilder{triplets: make([]Triplet, 0, capHint)}
}

// Add records a single nonzero entry. Zero values are skipped to keep the
// intermediate COO as small as the final CSC will be.
func (b *COOBuilder) Add(row, col int64, v complex128) {
	if v == 0 {
		return
	}
	b.triplets = append(b.triplets, Triplet{Row: row, Col: col, Val: v})
}

// AddBlock writes every nonzero entry of a d²×d² dense block into the
// builder, shifted by (rowBlk, colBlk)*blockDim — the block-to-global
// translation described for hierarchy assembly.
func (b *COOBuilder) AddBlock(rowBlk, colBlk int64, blockDim int64, block *Dense) error {
	if block == nil {
		return ErrNilMatrix
	}
	if int64(block.Rows()) != blockDim || int64(block.Cols()) != blockDim {
		return ErrDimensionMismatch
	}
	rowOff := rowBlk * blockDim
	colOff := colBlk * blockDim
	var i, j int
	for i = 0; i < block.r; i++ {
		for j = 0; j < block.c; j++ {
			v := block.data[i*block.c+j]
			if v == 0 {
				continue
			}
			b.Add(rowOff+int64(i), colOff+int64(j), v)
		}
	}

	return nil
}

// Merge appends another builder's triplets into b. Used to join per-worker
// partitions at the fork-join barrier.
func (b *COOBuilder) Merge(other *COOBuilder) {
	if other == nil {
		return
	}
	b.triplets = append(b.triplets, other.triplets...)
}

// Len reports the current number of recorded (possibly duplicate) triplets.
func (b *COOBuilder) Len() int {
	return len(b.triplets)
}

// Triplets returns the accumulated entries. The slice is owned by the
// builder; callers must not mutate it after sharing the builder elsewhere.
func (b *COOBuilder) Triplets() []Triplet {
	return b.triplets
}
