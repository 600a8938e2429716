// SPDX-License-Identifier: MIT

// Package core is the primary domain package: it holds the assembled
// hierarchy superoperator M, the ADOVector state it acts on, and the
// public facade (MakeBoson/MakeFermion/MakeBosonFermion/AddDissipator/
// Evolve/EvolveODE/SteadyState/GetRho) every caller of this module goes
// through.
package core

import (
	"github.com/katalvlaran/heom/bath"
	"github.com/katalvlaran/heom/cmat"
	"github.com/katalvlaran/heom/label"
)

// Parity grades a hierarchy under fermion exchange. Re-exported from bath
// so callers never need to import bath directly for this one type.
type Parity = bath.Parity

const (
	ParityNone = bath.ParityNone
	ParityEven = bath.ParityEven
	ParityOdd  = bath.ParityOdd
)

// M is the assembled sparse HEOM superoperator plus the metadata and label
// tables needed to introspect it, add dissipators, or re-evaluate a
// time-dependent system Liouvillian.
type M struct {
	Data *cmat.CSC

	TierBoson   int
	TierFermion int
	D           int
	NAdo        int
	NAdoBoson   int
	NAdoFermion int
	Parity      Parity

	bosonLabels   *label.Table // nil when no bosonic terms
	fermionLabels *label.Table // nil when no fermionic terms

	hsys *cmat.Dense // copy of the system Hamiltonian M was assembled with
	lsys *cmat.Dense // cached -i(spre(Hsys)-spost(Hsys)), d²×d²

	bosonTerms   []*bath.Term
	fermionTerms []*bath.Term

	dissipatorDiag *cmat.Dense // accumulated Lindblad contribution, added to every diagonal block
}

// Shape returns the (rows, cols) of M.Data.
func (m *M) Shape() (int64, int64) {
	n := int64(m.NAdo) * int64(m.D) * int64(m.D)

	return n, n
}

// NNZ returns the number of stored nonzero entries in M.Data.
func (m *M) NNZ() int {
	return m.Data.NNZ()
}

// ADOVector is the flat complex state vector of length N_ado·d². Block b
// occupies [b·d², (b+1)·d²) and is interpreted column-major as a d×d
// matrix; block 0 is the physical reduced density matrix.
type ADOVector struct {
	V      []complex128
	D      int
	NAdo   int
	Parity Parity
}

// NewADOVector allocates a zeroed ADOVector of the given shape.
func NewADOVector(d, nAdo int, parity Parity) (*ADOVector, error) {
	if d <= 0 || nAdo <= 0 {
		return nil, ErrDimensionMismatch
	}

	return &ADOVector{V: make([]complex128, nAdo*d*d), D: d, NAdo: nAdo, Parity: parity}, nil
}

// FromDensity builds an ADOVector whose block 0 is rho and every other
// block is zero — the standard initial condition for evolve/evolve_ode.
func FromDensity(rho *cmat.Dense, nAdo int, parity Parity) (*ADOVector, error) {
	if rho == nil {
		return nil, cmat.ErrNilMatrix
	}
	if rho.Rows() != rho.Cols() {
		return nil, cmat.ErrNonSquare
	}
	d := rho.Rows()
	a, err := NewADOVector(d, nAdo, parity)
	if err != nil {
		return nil, err
	}
	if err := a.SetBlock(0, rho); err != nil {
		return nil, err
	}

	return a, nil
}

// Block reshapes block i into a d×d Dense matrix (column-major), returning
// a deep copy.
func (a *ADOVector) Block(i int) (*cmat.Dense, error) {
	if i < 0 || i >= a.NAdo {
		return nil, cmat.ErrOutOfRange
	}
	d := a.D
	out, err := cmat.NewDense(d, d)
	if err != nil {
		return nil, err
	}
	base := i * d * d
	for col := 0; col < d; col++ {
		for row := 0; row < d; row++ {
			if err := out.Set(row, col, a.V[base+col*d+row]); err != nil {
				return nil, err
			}
		}
	}

	return out, nil
}

// SetBlock writes blk into block i, column-major.
func (a *ADOVector) SetBlock(i int, blk *cmat.Dense) error {
	if i < 0 || i >= a.NAdo {
		return cmat.ErrOutOfRange
	}
	d := a.D
	if blk.Rows() != d || blk.Cols() != d {
		return ErrDimensionMismatch
	}
	base := i * d * d
	for col := 0; col < d; col++ {
		for row := 0; row < d; row++ {
			v, err := blk.At(row, col)
			if err != nil {
				return err
			}
			a.V[base+col*d+row] = v
		}
	}

	return nil
}

// Clone returns a deep copy of the ADOVector.
func (a *ADOVector) Clone() *ADOVector {
	v := make([]complex128, len(a.V))
	copy(v, a.V)

	return &ADOVector{V: v, D: a.D, NAdo: a.NAdo, Parity: a.Parity}
}

// ValidateAgainst checks that a's shape and parity match m, the precondition
// every Evolve/EvolveODE/AddDissipator-adjacent entry point enforces before
// doing any work.
func (a *ADOVector) ValidateAgainst(m *M) error {
	if a.D != m.D || a.NAdo != m.NAdo {
		return ErrNAdoMismatch
	}
	if a.Parity != m.Parity {
		return ErrParityMismatch
	}

	return nil
}

// Progress describes one hierarchy-assembly checkpoint, for the optional
// best-effort progress sink. Only assembly reports progress; Evolve and
// EvolveODE do not.
type Progress struct {
	Stage     string // "assemble"
	Completed int
	Total     int
}
