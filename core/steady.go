// SPDX-License-Identifier: MIT

package core

import (
	"fmt"
	"math"

	"github.com/katalvlaran/heom/cmat"
	"gonum.org/v1/gonum/mat"
)

// Solver solves a·x = b for a square sparse complex system, returning the
// residual-checked solution or ErrSolverResidual.
type Solver interface {
	Solve(a *cmat.CSC, b []complex128, tol float64) ([]complex128, error)
}

// SteadyState replaces row 0 of M's Liouvillian with the trace-preservation
// constraint Tr(ρ0)=1 and delegates to o.solver, wrapping the result as an
// ADOVector.
func SteadyState(m *M, opts ...SolveOption) (*ADOVector, error) {
	if m == nil {
		return nil, ErrNilHsys
	}

	o := gatherSolveOptions(opts...)
	n := m.Data.N
	d := m.D

	triplets := make([]cmat.Triplet, 0, m.Data.NNZ()+d)
	for _, t := range m.Data.ToTriplets() {
		if t.Row != 0 {
			triplets = append(triplets, t)
		}
	}
	for k := 0; k < d; k++ {
		triplets = append(triplets, cmat.Triplet{Row: 0, Col: int64(k*d + k), Val: 1})
	}
	constrained, err := cmat.BuildCSC(n, triplets)
	if err != nil {
		return nil, err
	}

	b := make([]complex128, n)
	b[0] = 1

	x, err := o.solver.Solve(constrained, b, o.tol)
	if err != nil {
		return nil, err
	}

	return &ADOVector{V: x, D: d, NAdo: m.NAdo, Parity: m.Parity}, nil
}

// DefaultSolver solves the complex linear system by embedding it into a
// real system twice the size — [[Ar,-Ai],[Ai,Ar]]·[xr;xi] = [br;bi] — and
// calling gonum's dense LU-backed Solve.
type DefaultSolver struct{}

// Solve implements Solver.
func (DefaultSolver) Solve(a *cmat.CSC, b []complex128, tol float64) ([]complex128, error) {
	n := int(a.N)
	m := 2 * n

	real2n := mat.NewDense(m, m, nil)
	var col int64
	for col = 0; col < a.N; col++ {
		for k := a.ColPtr[col]; k < a.ColPtr[col+1]; k++ {
			row := int(a.RowIdx[k])
			v := a.Vals[k]
			c := int(col)
			real2n.Set(row, c, real(v))
			real2n.Set(row, c+n, -imag(v))
			real2n.Set(row+n, c, imag(v))
			real2n.Set(row+n, c+n, real(v))
		}
	}

	rhs := mat.NewDense(m, 1, nil)
	for i, v := range b {
		rhs.Set(i, 0, real(v))
		rhs.Set(i+n, 0, imag(v))
	}

	var x mat.Dense
	if err := x.Solve(real2n, rhs); err != nil {
		return nil, fmt.Errorf("core: steady-state solve: %w", err)
	}

	out := make([]complex128, n)
	for i := 0; i < n; i++ {
		out[i] = complex(x.At(i, 0), x.At(i+n, 0))
	}

	res, err := residualNorm(a, out, b)
	if err != nil {
		return nil, err
	}
	if res > tol {
		return nil, ErrSolverResidual
	}

	return out, nil
}

func residualNorm(a *cmat.CSC, x, b []complex128) (float64, error) {
	ax, err := a.MatVec(x)
	if err != nil {
		return 0, err
	}
	var sumSq float64
	for i := range ax {
		d := ax[i] - b[i]
		sumSq += real(d)*real(d) + imag(d)*imag(d)
	}

	return math.Sqrt(sumSq), nil
}
