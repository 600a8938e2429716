// SPDX-License-Identifier: MIT
package label

import "errors"

var (
	// ErrEmptyDims is returned when dims has zero length (K=0 is rejected).
	ErrEmptyDims = errors.New("label: dims must have at least one mode")

	// ErrNonPositiveDim is returned when a per-mode dimension is <= 0.
	ErrNonPositiveDim = errors.New("label: every dims[k] must be > 0")

	// ErrNegativeTier is returned when the tier bound is negative.
	ErrNegativeTier = errors.New("label: tier must be >= 0")

	// ErrLabelLenMismatch names a label whose length does not match the
	// table's K. No function returns it: Table.Index and Table.Neighbor
	// report that case by returning false.
	ErrLabelLenMismatch = errors.New("label: label length does not match dims")

	// ErrLabelOutOfBounds is returned when a label component exceeds its
	// dims[k] bound or the label's total sum exceeds tier.
	ErrLabelOutOfBounds = errors.New("label: label component out of bounds")
)
