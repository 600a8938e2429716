// SPDX-License-Identifier: MIT
// Package cmat: sentinel error set (unified, consistent).
// This file defines ONLY package-level sentinel errors used across the cmat
// package. All algorithms MUST return these sentinels and callers MUST check
// them via errors.Is. No algorithm should panic on caller-triggered error
// conditions.

package cmat

import "errors"

// ERROR PRIORITY (documented, enforced by construction order in call sites):
// shape/index -> nil receiver -> dimension mismatch -> structural violations.

var (
	// ErrInvalidDimensions indicates that requested matrix dimensions are non-positive.
	ErrInvalidDimensions = errors.New("cmat: dimensions must be > 0")

	// ErrOutOfRange indicates that a row or column index is outside valid bounds.
	ErrOutOfRange = errors.New("cmat: index out of range")

	// ErrDimensionMismatch indicates incompatible dimensions between operands.
	ErrDimensionMismatch = errors.New("cmat: dimension mismatch")

	// ErrNonSquare signals that a square matrix was required but the input wasn't.
	ErrNonSquare = errors.New("cmat: matrix is not square")

	// ErrNilMatrix indicates that a nil Dense/CSC (receiver or argument) was used.
	ErrNilMatrix = errors.New("cmat: nil matrix")

	// ErrSingular names a singular matrix. The package has no inversion or
	// LU routine, and no function in it returns this sentinel.
	ErrSingular = errors.New("cmat: singular matrix")

	// ErrNotHermitian names a failed Hermiticity check. No function in the
	// package returns it: (*Dense).IsHermitian reports the result as a bool.
	ErrNotHermitian = errors.New("cmat: matrix is not Hermitian within tolerance")
)
