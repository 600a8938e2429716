// SPDX-License-Identifier: MIT
// Package core: sentinel error set. All algorithms MUST return these
// sentinels and callers MUST check them via errors.Is; validation errors
// are always fatal to the current call and are reported before any
// computation begins (spec §7 policy).

package core

import "errors"

var (
	// --- Validation ---

	// ErrNilHsys is returned when the system Hamiltonian is nil, and when
	// AddDissipator, Evolve, EvolveODE or SteadyState is given a nil M.
	ErrNilHsys = errors.New("core: system Hamiltonian must not be nil")

	// ErrNonSquareHsys is returned when the system Hamiltonian is not square.
	ErrNonSquareHsys = errors.New("core: system Hamiltonian must be square")

	// ErrNegativeTier is returned when a hierarchy tier bound is negative,
	// and when Evolve is given a negative step count.
	ErrNegativeTier = errors.New("core: tier must be >= 0")

	// ErrEmptyBathList is returned when MakeBoson/MakeFermion is called with
	// zero baths.
	ErrEmptyBathList = errors.New("core: bath list must not be empty")

	// ErrDimensionMismatch is returned when a bath coupling operator or jump
	// operator disagrees with the declared system dimension. An ADOVector
	// whose d disagrees with M is reported as ErrNAdoMismatch.
	ErrDimensionMismatch = errors.New("core: dimension mismatch")

	// ErrInvalidParity is returned for a Parity value outside {none,even,odd},
	// or one inconsistent with the presence/absence of fermionic terms.
	ErrInvalidParity = errors.New("core: invalid parity")

	// ErrParityMismatch is returned when an ADOVector's parity disagrees with
	// the M it is being paired with.
	ErrParityMismatch = errors.New("core: ADOVector parity does not match M")

	// ErrNAdoMismatch is returned when an ADOVector's N_ado or d disagrees
	// with the M it is being paired with.
	ErrNAdoMismatch = errors.New("core: ADOVector length does not match M")

	// ErrCheckpointKeyExists is returned when a checkpoint sink key has
	// already been written — reopening an existing key is rejected.
	ErrCheckpointKeyExists = errors.New("core: checkpoint key already exists")

	// ErrCheckpointPathExists is returned when evolve's checkpoint sink path
	// already exists before any work begins.
	ErrCheckpointPathExists = errors.New("core: checkpoint sink already exists")

	// --- Numerical ---

	// ErrExpmDidNotConverge is returned when the truncated Taylor series for
	// the matrix exponential fails to meet the threshold within the
	// iteration cap.
	ErrExpmDidNotConverge = errors.New("core: matrix exponential series did not converge")

	// ErrIntegratorMaxSteps is returned when the ODE integrator exceeds its
	// max_steps budget.
	ErrIntegratorMaxSteps = errors.New("core: integrator exceeded max_steps")

	// ErrSolverResidual is returned when the steady-state solver's residual
	// exceeds tolerance.
	ErrSolverResidual = errors.New("core: steady-state solver residual exceeds tolerance")

	// --- Resource ---

	// ErrCheckpointWrite is returned when a checkpoint sink write fails; per
	// spec §4.5 this is always fatal.
	ErrCheckpointWrite = errors.New("core: checkpoint sink write failed")
)
