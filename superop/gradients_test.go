package superop_test

import (
	"testing"

	"github.com/katalvlaran/heom/bath"
	"github.com/katalvlaran/heom/cmat"
	"github.com/katalvlaran/heom/superop"
	"github.com/stretchr/testify/require"
)

func makeTerm(t *testing.T, kind bath.Kind, eta, etaPair complex128) *bath.Term {
	op, err := cmat.NewDenseFrom([][]complex128{
		{0, 1},
		{1, 0},
	})
	require.NoError(t, err)
	term, err := bath.NewTerm(kind, eta, etaPair, complex(1, 0), op)
	require.NoError(t, err)

	return term
}

func TestBosonNextGradIgnoresNBefore(t *testing.T) {
	term := makeTerm(t, bath.KindBosonRealImag, complex(0.5, 0.1), 0)
	g0, err := superop.NextGrad(term, bath.ParityNone, 0, 0)
	require.NoError(t, err)
	g1, err := superop.NextGrad(term, bath.ParityNone, 3, 0)
	require.NoError(t, err)
	// NextGrad ignores nBefore for bosonic kinds.
	for i := 0; i < g0.Rows(); i++ {
		for j := 0; j < g0.Cols(); j++ {
			a, _ := g0.At(i, j)
			b, _ := g1.At(i, j)
			require.Equal(t, a, b)
		}
	}
}

func TestBosonPrevGradScalesWithOccupation(t *testing.T) {
	term := makeTerm(t, bath.KindBosonRealImag, complex(0.5, 0.1), 0)
	g1, err := superop.PrevGrad(term, 1, bath.ParityNone, 0, 0)
	require.NoError(t, err)
	g2, err := superop.PrevGrad(term, 2, bath.ParityNone, 0, 0)
	require.NoError(t, err)
	for i := 0; i < g1.Rows(); i++ {
		for j := 0; j < g1.Cols(); j++ {
			a, _ := g1.At(i, j)
			b, _ := g2.At(i, j)
			if a != 0 {
				require.InDelta(t, 2.0, real(b/a), 1e-9)
			}
		}
	}
}

func TestFermionGradsRejectUnknownKind(t *testing.T) {
	term := makeTerm(t, bath.Kind(200), 1, 1)
	_, err := superop.PrevGrad(term, 1, bath.ParityEven, 0, 1)
	require.ErrorIs(t, err, superop.ErrUnknownKind)
}

func TestFermionNextGradSignFlipsWithParity(t *testing.T) {
	term := makeTerm(t, bath.KindFermionAbsorb, complex(0.3, 0), complex(0.2, 0))
	even, err := superop.NextGrad(term, bath.ParityEven, 0, 1)
	require.NoError(t, err)
	odd, err := superop.NextGrad(term, bath.ParityOdd, 0, 1)
	require.NoError(t, err)
	// differing parity sign must change at least one entry
	differs := false
	for i := 0; i < even.Rows(); i++ {
		for j := 0; j < even.Cols(); j++ {
			a, _ := even.At(i, j)
			b, _ := odd.At(i, j)
			if a != b {
				differs = true
			}
		}
	}
	require.True(t, differs)
}
