package cmat_test

import (
	"testing"

	"github.com/katalvlaran/heom/cmat"
	"github.com/stretchr/testify/require"
)

func TestBuildCSCSumsDuplicates(t *testing.T) {
	triplets := []cmat.Triplet{
		{Row: 0, Col: 0, Val: 1},
		{Row: 0, Col: 0, Val: 2},
		{Row: 1, Col: 0, Val: 3},
	}
	m, err := cmat.BuildCSC(2, triplets)
	require.NoError(t, err)
	require.Equal(t, 2, m.NNZ())

	v, err := m.At(0, 0)
	require.NoError(t, err)
	require.Equal(t, complex(3, 0), v)

	v, err = m.At(1, 0)
	require.NoError(t, err)
	require.Equal(t, complex(3, 0), v)

	v, err = m.At(0, 1)
	require.NoError(t, err)
	require.Equal(t, complex(0, 0), v)
}

func TestBuildCSCDropsExactZeroSum(t *testing.T) {
	triplets := []cmat.Triplet{
		{Row: 0, Col: 0, Val: 5},
		{Row: 0, Col: 0, Val: -5},
	}
	m, err := cmat.BuildCSC(1, triplets)
	require.NoError(t, err)
	require.Equal(t, 0, m.NNZ())
}

func TestCSCMatVec(t *testing.T) {
	triplets := []cmat.Triplet{
		{Row: 0, Col: 0, Val: 2},
		{Row: 1, Col: 1, Val: 3},
	}
	m, err := cmat.BuildCSC(2, triplets)
	require.NoError(t, err)

	y, err := m.MatVec([]complex128{1, 1})
	require.NoError(t, err)
	require.Equal(t, complex(2, 0), y[0])
	require.Equal(t, complex(3, 0), y[1])
}

func TestCSCToTripletsRoundTrip(t *testing.T) {
	triplets := []cmat.Triplet{
		{Row: 0, Col: 1, Val: 4},
		{Row: 1, Col: 0, Val: 5},
	}
	m, err := cmat.BuildCSC(2, triplets)
	require.NoError(t, err)

	back := m.ToTriplets()
	require.Len(t, back, 2)

	m2, err := cmat.BuildCSC(2, back)
	require.NoError(t, err)
	require.Equal(t, m.NNZ(), m2.NNZ())
}

func TestCOOBuilderAddBlockShiftsIndices(t *testing.T) {
	block, err := cmat.NewDenseFrom([][]complex128{
		{1, 0},
		{0, 1},
	})
	require.NoError(t, err)

	b := cmat.NewCOOBuilder(0)
	require.NoError(t, b.AddBlock(1, 0, 2, block))
	require.Equal(t, 2, b.Len())

	m, err := cmat.BuildCSC(4, b.Triplets())
	require.NoError(t, err)
	v, err := m.At(2, 0)
	require.NoError(t, err)
	require.Equal(t, complex(1, 0), v)
}
