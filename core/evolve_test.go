package core_test

import (
	"testing"

	"github.com/katalvlaran/heom/cmat"
	"github.com/katalvlaran/heom/core"
	"github.com/stretchr/testify/require"
)

func toyInitialDensity(t *testing.T) *cmat.Dense {
	rho, err := cmat.NewDenseFrom([][]complex128{
		{0.6, 0},
		{0, 0.4},
	})
	require.NoError(t, err)

	return rho
}

func TestEvolvePreservesTraceAndHermiticity(t *testing.T) {
	m := buildSmokeM(t)
	rho0 := toyInitialDensity(t)
	ados, err := core.FromDensity(rho0, m.NAdo, m.Parity)
	require.NoError(t, err)

	traj, err := core.Evolve(m, ados, 0.01, 5)
	require.NoError(t, err)
	require.Len(t, traj, 6)

	for _, a := range traj {
		rho, err := core.GetRho(a)
		require.NoError(t, err)
		tr, err := core.TraceOf(rho)
		require.NoError(t, err)
		require.InDelta(t, 1.0, real(tr), 1e-6)
		require.InDelta(t, 0.0, imag(tr), 1e-6)

		gap, err := core.HermitianGap(rho)
		require.NoError(t, err)
		require.Less(t, gap, 1e-6)
	}
}

func TestEvolveRejectsMismatchedADOVector(t *testing.T) {
	m := buildSmokeM(t)
	other, err := core.NewADOVector(2, m.NAdo+1, m.Parity)
	require.NoError(t, err)
	_, err = core.Evolve(m, other, 0.01, 1)
	require.ErrorIs(t, err, core.ErrNAdoMismatch)
}

func TestEvolveODEPreservesTrace(t *testing.T) {
	m := buildSmokeM(t)
	rho0 := toyInitialDensity(t)
	ados, err := core.FromDensity(rho0, m.NAdo, m.Parity)
	require.NoError(t, err)

	traj, err := core.EvolveODE(m, ados, []float64{0, 0.01, 0.02})
	require.NoError(t, err)
	require.Len(t, traj, 3)

	for _, a := range traj {
		rho, err := core.GetRho(a)
		require.NoError(t, err)
		tr, err := core.TraceOf(rho)
		require.NoError(t, err)
		require.InDelta(t, 1.0, real(tr), 1e-4)
	}
}

func TestEvolveAndEvolveODEAgreeApproximately(t *testing.T) {
	m := buildSmokeM(t)
	rho0 := toyInitialDensity(t)

	ados1, err := core.FromDensity(rho0, m.NAdo, m.Parity)
	require.NoError(t, err)
	traj1, err := core.Evolve(m, ados1, 0.01, 10)
	require.NoError(t, err)

	ados2, err := core.FromDensity(rho0, m.NAdo, m.Parity)
	require.NoError(t, err)
	traj2, err := core.EvolveODE(m, ados2, []float64{0, 0.1})
	require.NoError(t, err)

	rho1, err := core.GetRho(traj1[len(traj1)-1])
	require.NoError(t, err)
	rho2, err := core.GetRho(traj2[len(traj2)-1])
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			a, err := rho1.At(i, j)
			require.NoError(t, err)
			b, err := rho2.At(i, j)
			require.NoError(t, err)
			require.InDelta(t, real(a), real(b), 5e-2)
			require.InDelta(t, imag(a), imag(b), 5e-2)
		}
	}
}

func TestAddDissipatorThenEvolveStaysNormalized(t *testing.T) {
	m := buildSmokeM(t)
	require.NoError(t, core.AddDissipator(m, []*cmat.Dense{toyJump(t)}))

	rho0 := toyInitialDensity(t)
	ados, err := core.FromDensity(rho0, m.NAdo, m.Parity)
	require.NoError(t, err)

	traj, err := core.Evolve(m, ados, 0.01, 3)
	require.NoError(t, err)
	rho, err := core.GetRho(traj[len(traj)-1])
	require.NoError(t, err)
	tr, err := core.TraceOf(rho)
	require.NoError(t, err)
	require.InDelta(t, 1.0, real(tr), 1e-5)
}
