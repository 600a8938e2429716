// SPDX-License-Identifier: MIT
package bath

import "errors"

var (
	// ErrNilOperator is returned when a term's coupling operator is nil.
	ErrNilOperator = errors.New("bath: coupling operator must not be nil")

	// ErrNonSquareOperator is returned when a coupling operator is not d×d.
	ErrNonSquareOperator = errors.New("bath: coupling operator must be square")

	// ErrDimensionMismatch is returned when terms of a Bath disagree on d.
	ErrDimensionMismatch = errors.New("bath: terms disagree on system dimension d")

	// ErrEmptyBath is returned when a Bath or Combined is built with zero terms.
	ErrEmptyBath = errors.New("bath: bath term list must not be empty")

	// ErrInvalidKind is returned when a Kind value outside the known
	// enumeration is used.
	ErrInvalidKind = errors.New("bath: unknown term kind")

	// ErrInvalidParity is returned when a Parity value outside {none,even,odd}
	// is used, e.g. the spec's deliberate ":banana" rejection scenario.
	ErrInvalidParity = errors.New("bath: invalid parity")
)
