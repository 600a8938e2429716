// SPDX-License-Identifier: MIT

package core

import (
	"math/cmplx"

	"github.com/katalvlaran/heom/cmat"
)

// GetRho returns the physical reduced density matrix, block 0 of a.
func GetRho(a *ADOVector) (*cmat.Dense, error) {
	if a == nil {
		return nil, ErrDimensionMismatch
	}

	return a.Block(0)
}

// Expect returns Tr(O·ρ) for the reduced density matrix carried by a.
func Expect(o *cmat.Dense, a *ADOVector) (complex128, error) {
	rho, err := GetRho(a)
	if err != nil {
		return 0, err
	}
	prod, err := cmat.Mul(o, rho)
	if err != nil {
		return 0, err
	}

	return prod.Trace()
}

// TraceOf returns Tr(rho), used by callers checking trace preservation
// along a trajectory.
func TraceOf(rho *cmat.Dense) (complex128, error) {
	return rho.Trace()
}

// HermitianGap returns max_{i,j} |rho_ij - conj(rho_ji)|, the hermiticity
// defect, for callers checking Hermiticity along a trajectory.
func HermitianGap(rho *cmat.Dense) (float64, error) {
	if rho == nil {
		return 0, ErrDimensionMismatch
	}
	if rho.Rows() != rho.Cols() {
		return 0, cmat.ErrNonSquare
	}
	var maxGap float64
	n := rho.Rows()
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			a, err := rho.At(i, j)
			if err != nil {
				return 0, err
			}
			b, err := rho.At(j, i)
			if err != nil {
				return 0, err
			}
			gap := cmplx.Abs(a - cmplx.Conj(b))
			if gap > maxGap {
				maxGap = gap
			}
		}
	}

	return maxGap, nil
}
