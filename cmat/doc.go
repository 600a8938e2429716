// Package cmat provides complex128 matrix primitives for hierarchy-sized
// superoperators.
//
// The cmat package provides:
//
//   - Dense, a flat row-major complex128 matrix for small d×d system
//     operators.
//   - COOBuilder/CSC for the N_ado·d² sized sparse superoperator, with
//     duplicate-summing CSC construction and 64-bit indices.
//   - Spre/Spost/Commutator, the vectorised-space lifting kernels every
//     bath term and the system Liouvillian are built from.
//
// See the test files in this package for usage patterns.
package cmat
