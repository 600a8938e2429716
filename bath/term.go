// SPDX-License-Identifier: MIT

// Package bath holds the flat exponential expansion terms of a bath
// correlation function — the {η_k, γ_k, operator, kind} tables the
// hierarchy assembler consumes. Generating these coefficients (Drude–
// Lorentz / Lorentz / Matsubara / Padé expansion) is out of scope; this
// package only stores and derives cached operator forms from them.
package bath

import "github.com/katalvlaran/heom/cmat"

// Kind tags the statistics and correlation-function branch of a term.
// Kept as a small tagged enumeration with a per-kind method table in the
// superop package, rather than an inheritance hierarchy.
type Kind uint8

const (
	// KindBosonReal is a bosonic term whose η_k is (by construction) real.
	KindBosonReal Kind = iota
	// KindBosonImag is a bosonic term whose η_k is (by construction) purely imaginary.
	KindBosonImag
	// KindBosonRealImag is a bosonic term with a general complex η_k.
	KindBosonRealImag
	// KindFermionAbsorb is a fermionic absorption-branch term.
	KindFermionAbsorb
	// KindFermionEmit is a fermionic emission-branch term.
	KindFermionEmit
)

// IsBosonic reports whether k is one of the bosonic kinds.
func (k Kind) IsBosonic() bool {
	return k == KindBosonReal || k == KindBosonImag || k == KindBosonRealImag
}

// IsFermionic reports whether k is one of the fermionic kinds.
func (k Kind) IsFermionic() bool {
	return k == KindFermionAbsorb || k == KindFermionEmit
}

// Parity grades an ADO/hierarchy under fermion exchange.
type Parity uint8

const (
	// ParityNone marks a hierarchy with no fermionic terms at all.
	ParityNone Parity = iota
	// ParityEven marks an even-graded fermionic hierarchy.
	ParityEven
	// ParityOdd marks an odd-graded fermionic hierarchy.
	ParityOdd
)

// Term is a single exponential expansion term of the bath correlation
// function, plus its cached derived superoperator forms.
type Term struct {
	Kind Kind

	// Eta is η_k. For fermionic terms, Eta and EtaPair hold the two
	// cross-referenced branch coefficients in the same layout for both
	// kinds: Eta holds η_absorb_k and EtaPair holds η_emit_k. The
	// KindFermionEmit variant in package superop swaps their roles.
	Eta     complex128
	EtaPair complex128

	Gamma complex128
	Op    *cmat.Dense // system-side coupling operator Q_k, d×d

	// Derived, cached at construction time.
	SpreOp   *cmat.Dense // spre(Q_k)
	SpostOp  *cmat.Dense // spost(Q_k)
	SpreDag  *cmat.Dense // spre(Q_k†), used by the fermionic "next" gradient
	SpostDag *cmat.Dense // spost(Q_k†), used by the fermionic "next" gradient
}

// NewTerm validates op and builds the cached derived forms.
// Complexity: O(d^4) (dominated by the four Kronecker products cached here).
func NewTerm(kind Kind, eta, etaPair, gamma complex128, op *cmat.Dense) (*Term, error) {
	if op == nil {
		return nil, ErrNilOperator
	}
	if op.Rows() != op.Cols() {
		return nil, ErrNonSquareOperator
	}

	spre, err := cmat.Spre(op)
	if err != nil {
		return nil, err
	}
	spost, err := cmat.Spost(op)
	if err != nil {
		return nil, err
	}
	dag := op.Dagger()
	spreDag, err := cmat.Spre(dag)
	if err != nil {
		return nil, err
	}
	spostDag, err := cmat.Spost(dag)
	if err != nil {
		return nil, err
	}

	return &Term{
		Kind:     kind,
		Eta:      eta,
		EtaPair:  etaPair,
		Gamma:    gamma,
		Op:       op,
		SpreOp:   spre,
		SpostOp:  spost,
		SpreDag:  spreDag,
		SpostDag: spostDag,
	}, nil
}

// D returns the system dimension the term's coupling operator is defined on.
func (t *Term) D() int {
	return t.Op.Rows()
}

// Bath is an ordered list of terms sharing a system dimension d.
type Bath struct {
	D     int
	Terms []*Term
}

// NewBath validates that every term shares the same dimension d and returns
// a Bath wrapping them in the given order — the order that becomes the K
// axis of the hierarchy label for this bath's statistics.
func NewBath(terms ...*Term) (*Bath, error) {
	if len(terms) == 0 {
		return nil, ErrEmptyBath
	}
	d := terms[0].D()
	for _, term := range terms {
		if term.D() != d {
			return nil, ErrDimensionMismatch
		}
	}

	return &Bath{D: d, Terms: terms}, nil
}

// Combined concatenates the term lists of one or more Baths of the same
// statistics into a single flat K-term list, preserving bath order then
// within-bath order — this determines the hierarchy label axis ordering
// when multiple baths contribute to one statistics.
type Combined struct {
	D     int
	Terms []*Term
}

// Combine concatenates baths of a shared statistics into one Combined.
func Combine(baths ...*Bath) (*Combined, error) {
	if len(baths) == 0 {
		return nil, ErrEmptyBath
	}
	d := baths[0].D
	var terms []*Term
	for _, b := range baths {
		if b.D != d {
			return nil, ErrDimensionMismatch
		}
		terms = append(terms, b.Terms...)
	}

	return &Combined{D: d, Terms: terms}, nil
}

// ValidateParity rejects any value outside {none, even, odd}; spec §8
// scenario 5 requires this be reported as a validation error before any
// computation begins.
func ValidateParity(p Parity) error {
	switch p {
	case ParityNone, ParityEven, ParityOdd:
		return nil
	default:
		return ErrInvalidParity
	}
}
