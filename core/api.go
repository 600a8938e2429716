// SPDX-License-Identifier: MIT
// Package core — public API facades.
//
// Purpose:
//   - Provide thin, discoverable aliases for the most frequently chained
//     operations, without duplicating any logic living in the canonical
//     implementation files (assemble.go, evolve.go, steady.go, ...).

package core

import "github.com/katalvlaran/heom/cmat"

// Steady is an alias for SteadyState.
func Steady(m *M, opts ...SolveOption) (*ADOVector, error) {
	return SteadyState(m, opts...)
}

// Rho is an alias for GetRho.
func Rho(a *ADOVector) (*cmat.Dense, error) {
	return GetRho(a)
}

// NAdo returns the number of ADO blocks m was assembled with, a thin
// accessor for callers that only need the count.
func NAdo(m *M) int {
	return m.NAdo
}
