package cmat_test

import (
	"testing"

	"github.com/katalvlaran/heom/cmat"
	"github.com/stretchr/testify/require"
)

func TestSpreSpostShape(t *testing.T) {
	a, err := cmat.NewDenseFrom([][]complex128{
		{1, 2},
		{3, 4},
	})
	require.NoError(t, err)

	pre, err := cmat.Spre(a)
	require.NoError(t, err)
	require.Equal(t, 4, pre.Rows())
	require.Equal(t, 4, pre.Cols())

	post, err := cmat.Spost(a)
	require.NoError(t, err)
	require.Equal(t, 4, post.Rows())
	require.Equal(t, 4, post.Cols())
}

// TestSpreActsAsLeftMultiplication checks spre(A)·vec(ρ) == vec(A·ρ) for a
// small concrete case, column-major vectorisation.
func TestSpreActsAsLeftMultiplication(t *testing.T) {
	a, err := cmat.NewDenseFrom([][]complex128{
		{1, 0},
		{0, 2},
	})
	require.NoError(t, err)
	rho, err := cmat.NewDenseFrom([][]complex128{
		{1, 2},
		{3, 4},
	})
	require.NoError(t, err)

	want, err := cmat.Mul(a, rho)
	require.NoError(t, err)

	pre, err := cmat.Spre(a)
	require.NoError(t, err)

	// vec(rho) column-major: [rho00, rho10, rho01, rho11]
	vec := []complex128{}
	for j := 0; j < 2; j++ {
		for i := 0; i < 2; i++ {
			v, _ := rho.At(i, j)
			vec = append(vec, v)
		}
	}
	out := make([]complex128, 4)
	for i := 0; i < 4; i++ {
		var sum complex128
		for j := 0; j < 4; j++ {
			v, _ := pre.At(i, j)
			sum += v * vec[j]
		}
		out[i] = sum
	}

	var idx int
	for j := 0; j < 2; j++ {
		for i := 0; i < 2; i++ {
			wv, _ := want.At(i, j)
			require.InDelta(t, real(wv), real(out[idx]), 1e-9)
			require.InDelta(t, imag(wv), imag(out[idx]), 1e-9)
			idx++
		}
	}
}

func TestCommutatorOfIdentityIsZero(t *testing.T) {
	id, err := cmat.Identity(2)
	require.NoError(t, err)
	comm, err := cmat.Commutator(id)
	require.NoError(t, err)
	for i := 0; i < comm.Rows(); i++ {
		for j := 0; j < comm.Cols(); j++ {
			v, _ := comm.At(i, j)
			require.Equal(t, complex(0, 0), v)
		}
	}
}
