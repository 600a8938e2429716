package core_test

import (
	"testing"

	"github.com/katalvlaran/heom/cmat"
	"github.com/katalvlaran/heom/core"
	"github.com/stretchr/testify/require"
)

func TestSteadyStateTraceIsOne(t *testing.T) {
	m := buildSmokeM(t)
	require.NoError(t, core.AddDissipator(m, []*cmat.Dense{toyJump(t)}))

	steady, err := core.SteadyState(m)
	require.NoError(t, err)

	rho, err := core.GetRho(steady)
	require.NoError(t, err)
	tr, err := core.TraceOf(rho)
	require.NoError(t, err)
	require.InDelta(t, 1.0, real(tr), 1e-6)
	require.InDelta(t, 0.0, imag(tr), 1e-6)
}

func TestSteadyStateRhoIsHermitian(t *testing.T) {
	m := buildSmokeM(t)
	require.NoError(t, core.AddDissipator(m, []*cmat.Dense{toyJump(t)}))

	steady, err := core.SteadyState(m)
	require.NoError(t, err)

	rho, err := core.GetRho(steady)
	require.NoError(t, err)
	gap, err := core.HermitianGap(rho)
	require.NoError(t, err)
	require.Less(t, gap, 1e-6)
}

func TestSteadyStateRejectsNilM(t *testing.T) {
	_, err := core.SteadyState(nil)
	require.ErrorIs(t, err, core.ErrNilHsys)
}

func TestSteadyStateCustomToleranceCanTriggerResidualError(t *testing.T) {
	m := buildSmokeM(t)
	require.NoError(t, core.AddDissipator(m, []*cmat.Dense{toyJump(t)}))

	// With an impossibly tight tolerance, any error the finite-precision
	// dense solve returns must be the residual error.
	_, err := core.SteadyState(m, core.WithSolverTolerance(1e-300))
	if err != nil {
		require.ErrorIs(t, err, core.ErrSolverResidual)
	}
}
