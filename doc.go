// Package heom assembles and propagates the Hierarchical Equations of
// Motion (HEOM) for an open quantum system coupled to one or more bosonic
// and/or fermionic baths.
//
// 🚀 What is heom?
//
//	A pure-Go engine that brings together:
//		• Hierarchy enumeration: bounded multi-index labels with a fixed
//		  canonical order and an O(1)-ish label↔index bijection
//		• Superoperator assembly: spre/spost, per-term prev/next gradients,
//		  fork-join hierarchy assembly into a sparse CSC matrix
//		• Propagation: truncated-series matrix exponential, or an adaptive
//		  ODE integrator with time-dependent Hamiltonian support
//		• Dissipators & observables: Lindblad injection, reduced density
//		  matrix and expectation-value extraction
//		• Steady-state: trace-constrained sparse linear solve
//
// Everything lives in the primary domain package core plus four supporting
// subpackages:
//
//	bath/    — bath expansion terms (η, γ, coupling operator, kind)
//	cmat/    — complex128 dense/sparse linear algebra primitives
//	core/    — hierarchy assembly, propagation, steady-state, checkpointing
//	label/   — hierarchy label enumeration and the label↔index bijection
//	superop/ — per-bath-kind prev/next gradient superoperators
//
//	go get github.com/katalvlaran/heom/core
package heom
