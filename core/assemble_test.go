package core_test

import (
	"testing"

	"github.com/katalvlaran/heom/bath"
	"github.com/katalvlaran/heom/cmat"
	"github.com/katalvlaran/heom/core"
	"github.com/katalvlaran/heom/label"
	"github.com/stretchr/testify/require"
)

func toyHsys(t *testing.T) *cmat.Dense {
	h, err := cmat.NewDenseFrom([][]complex128{
		{0.6969, complex(0.4364, 0)},
		{complex(0.4364, 0), 0.3215},
	})
	require.NoError(t, err)

	return h
}

func toyCoupling(t *testing.T) *cmat.Dense {
	op, err := cmat.NewDenseFrom([][]complex128{
		{0.1234, complex(0.1357, 0.2468)},
		{complex(0.1357, -0.2468), 0.5678},
	})
	require.NoError(t, err)

	return op
}

func toyBosonBath(t *testing.T, n int) bath.Bath {
	terms := make([]*bath.Term, n)
	for i := 0; i < n; i++ {
		op := toyCoupling(t)
		eta := complex(0.145+0.01*float64(i), 0.05*float64(i))
		gamma := complex(0.6464+0.1*float64(i), 0)
		term, err := bath.NewTerm(bath.KindBosonRealImag, eta, 0, gamma, op)
		require.NoError(t, err)
		terms[i] = term
	}
	b, err := bath.NewBath(terms...)
	require.NoError(t, err)

	return *b
}

func TestMakeBosonShapeMatchesLabelCount(t *testing.T) {
	hsys := toyHsys(t)
	tier := 3
	baths := []bath.Bath{toyBosonBath(t, 1)}

	m, err := core.MakeBoson(hsys, tier, baths)
	require.NoError(t, err)

	want, err := label.Count([]int{tier + 1}, tier)
	require.NoError(t, err)
	require.Equal(t, want, m.NAdo)
	require.Equal(t, want, m.NAdoBoson)
	require.Equal(t, 1, m.NAdoFermion)

	rows, cols := m.Shape()
	require.Equal(t, int64(want*4), rows)
	require.Equal(t, rows, cols)
	require.Equal(t, core.ParityNone, m.Parity)
}

func TestMakeBosonRejectsNonSquareHsys(t *testing.T) {
	h, err := cmat.NewDense(2, 3)
	require.NoError(t, err)
	_, err = core.MakeBoson(h, 2, []bath.Bath{toyBosonBath(t, 1)})
	require.ErrorIs(t, err, core.ErrNonSquareHsys)
}

func TestMakeBosonRejectsEmptyBathList(t *testing.T) {
	_, err := core.MakeBoson(toyHsys(t), 2, nil)
	require.ErrorIs(t, err, core.ErrEmptyBathList)
}

func TestMakeFermionRejectsInvalidParity(t *testing.T) {
	op := toyCoupling(t)
	term, err := bath.NewTerm(bath.KindFermionAbsorb, complex(0.3, 0), complex(0.2, 0), complex(0.5, 0), op)
	require.NoError(t, err)
	b, err := bath.NewBath(term)
	require.NoError(t, err)

	_, err = core.MakeFermion(toyHsys(t), 2, []bath.Bath{*b}, core.Parity(99))
	require.ErrorIs(t, err, core.ErrInvalidParity)
}

func TestMakeFermionRejectsParityNone(t *testing.T) {
	op := toyCoupling(t)
	term, err := bath.NewTerm(bath.KindFermionAbsorb, complex(0.3, 0), complex(0.2, 0), complex(0.5, 0), op)
	require.NoError(t, err)
	b, err := bath.NewBath(term)
	require.NoError(t, err)

	_, err = core.MakeFermion(toyHsys(t), 2, []bath.Bath{*b}, core.ParityNone)
	require.ErrorIs(t, err, core.ErrInvalidParity)
}

func TestMakeBosonFermionIndexesAreWithinRange(t *testing.T) {
	hsys := toyHsys(t)
	bterms := []bath.Bath{toyBosonBath(t, 1)}

	fop := toyCoupling(t)
	fterm, err := bath.NewTerm(bath.KindFermionAbsorb, complex(0.3, 0), complex(0.2, 0), complex(0.5, 0), fop)
	require.NoError(t, err)
	fb, err := bath.NewBath(fterm)
	require.NoError(t, err)

	m, err := core.MakeBosonFermion(hsys, 2, 1, bterms, []bath.Bath{*fb}, core.ParityEven)
	require.NoError(t, err)

	wantB, err := label.Count([]int{3}, 2)
	require.NoError(t, err)
	wantF, err := label.Count([]int{2}, 1)
	require.NoError(t, err)
	require.Equal(t, wantB, m.NAdoBoson)
	require.Equal(t, wantF, m.NAdoFermion)
	require.Equal(t, wantB*wantF, m.NAdo)

	rows, _ := m.Shape()
	for col := int64(0); col < m.Data.N; col++ {
		for k := m.Data.ColPtr[col]; k < m.Data.ColPtr[col+1]; k++ {
			require.GreaterOrEqual(t, m.Data.RowIdx[k], int64(0))
			require.Less(t, m.Data.RowIdx[k], rows)
		}
	}
}

func TestMakeBosonPureBathHasNoFermionicSignFactors(t *testing.T) {
	m, err := core.MakeBoson(toyHsys(t), 2, []bath.Bath{toyBosonBath(t, 2)})
	require.NoError(t, err)
	require.Equal(t, core.ParityNone, m.Parity)
	require.Equal(t, 1, m.NAdoFermion)
}
