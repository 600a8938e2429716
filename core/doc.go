// SPDX-License-Identifier: MIT

// Package core assembles and propagates the hierarchical-equations-of-motion
// superoperator for an open quantum system coupled to bosonic and/or
// fermionic baths.
//
// A typical session:
//
//	m, err := core.MakeBoson(hsys, tier, baths)
//	rho0, err := cmat.NewDenseFrom(...)
//	ados, err := core.FromDensity(rho0, m.NAdo, m.Parity)
//	traj, err := core.Evolve(m, ados, dt, steps)
//	rhoT, err := core.GetRho(traj[len(traj)-1])
//
// M holds the assembled sparse Liouvillian plus the label tables needed to
// add dissipators or recompute a time-dependent system Hamiltonian; it is
// otherwise opaque. ADOVector is the flat state vector Evolve/EvolveODE/
// SteadyState act on.
package core
