package core_test

import (
	"testing"

	"github.com/katalvlaran/heom/bath"
	"github.com/katalvlaran/heom/cmat"
	"github.com/katalvlaran/heom/core"
	"github.com/stretchr/testify/require"
)

func buildSmokeM(t *testing.T) *core.M {
	m, err := core.MakeBoson(toyHsys(t), 3, []bath.Bath{toyBosonBath(t, 1)})
	require.NoError(t, err)

	return m
}

func toyJump(t *testing.T) *cmat.Dense {
	j, err := cmat.NewDenseFrom([][]complex128{
		{0, complex(0.1450, -0.7414)},
		{complex(0.1450, 0.7414), 0},
	})
	require.NoError(t, err)

	return j
}

func TestAddDissipatorEmptyIsNoOp(t *testing.T) {
	m := buildSmokeM(t)
	before := m.Data.NNZ()
	err := core.AddDissipator(m, nil)
	require.NoError(t, err)
	require.Equal(t, before, m.Data.NNZ())
}

func TestAddDissipatorNeverShrinksNNZ(t *testing.T) {
	m := buildSmokeM(t)
	before := m.Data.NNZ()
	err := core.AddDissipator(m, []*cmat.Dense{toyJump(t)})
	require.NoError(t, err)
	require.GreaterOrEqual(t, m.Data.NNZ(), before)
}

func TestAddDissipatorRoundTripMatchesFreshRebuild(t *testing.T) {
	m1 := buildSmokeM(t)
	require.NoError(t, core.AddDissipator(m1, []*cmat.Dense{toyJump(t)}))

	m2 := buildSmokeM(t)
	require.NoError(t, core.AddDissipator(m2, []*cmat.Dense{toyJump(t)}))

	require.Equal(t, m1.Data.NNZ(), m2.Data.NNZ())
	for col := int64(0); col < m1.Data.N; col++ {
		v1, err := m1.Data.At(0, col)
		require.NoError(t, err)
		v2, err := m2.Data.At(0, col)
		require.NoError(t, err)
		require.InDelta(t, real(v1), real(v2), 1e-12)
		require.InDelta(t, imag(v1), imag(v2), 1e-12)
	}
}

func TestAddDissipatorRejectsWrongDimensionJump(t *testing.T) {
	m := buildSmokeM(t)
	bad, err := cmat.NewDense(3, 3)
	require.NoError(t, err)
	err = core.AddDissipator(m, []*cmat.Dense{bad})
	require.ErrorIs(t, err, core.ErrDimensionMismatch)
}
