// SPDX-License-Identifier: MIT

package core

import (
	"math"

	"github.com/katalvlaran/heom/cmat"
)

// RHSFunc evaluates dv/dt = L(t)·v, returning the derivative at (t, v).
type RHSFunc func(t float64, v []complex128) ([]complex128, error)

// Integrator drives an RHSFunc from one time point to the next, honouring
// an absolute step budget across the whole call.
type Integrator interface {
	Integrate(rhs RHSFunc, v0 []complex128, tlist []float64, rtol, atol float64, maxSteps int) ([][]complex128, error)
}

// EvolveODE drives o.solver (default: an adaptive step-doubling RK4) across
// tlist, saving the state at each requested time point. A time-dependent
// system Hamiltonian is supported via WithTimeDependentHamiltonian, which
// installs the (L0, callback→L_t) pair described for the time-dependent RHS.
func EvolveODE(m *M, initial *ADOVector, tlist []float64, opts ...ODEOption) ([]*ADOVector, error) {
	if m == nil {
		return nil, ErrNilHsys
	}
	if initial == nil {
		return nil, ErrDimensionMismatch
	}
	if err := initial.ValidateAgainst(m); err != nil {
		return nil, err
	}
	if len(tlist) == 0 {
		return nil, ErrDimensionMismatch
	}

	o := gatherODEOptions(opts...)

	var rhs RHSFunc
	if o.hUpdate != nil {
		td, err := newTimeDependentRHS(m, o.hUpdate)
		if err != nil {
			return nil, err
		}
		rhs = td.eval
	} else {
		data := m.Data
		rhs = func(_ float64, v []complex128) ([]complex128, error) { return data.MatVec(v) }
	}

	traj, err := o.solver.Integrate(rhs, initial.V, tlist, o.rtol, o.atol, o.maxSteps)
	if err != nil {
		return nil, err
	}

	out := make([]*ADOVector, len(traj))
	for i, v := range traj {
		out[i] = &ADOVector{V: v, D: initial.D, NAdo: initial.NAdo, Parity: initial.Parity}
		if o.sink != nil {
			if err := o.sink.Put(CheckpointKey(tlist[i]), out[i]); err != nil {
				return nil, err
			}
		}
	}

	return out, nil
}

// timeDependentRHS expresses dv/dt = (L0 + L_t(t))·v as a pair: L0 is M's
// assembled Liouvillian with the original (now-stale) system contribution
// stripped from every diagonal block, and L_t(t) is recomputed by the
// update hook and applied block-diagonally at every evaluation.
type timeDependentRHS struct {
	l0       *cmat.CSC
	nAdo     int
	blockDim int64
	update   HamiltonianUpdate
	hbuf     *cmat.Dense
}

func newTimeDependentRHS(m *M, update HamiltonianUpdate) (*timeDependentRHS, error) {
	blockDim := int64(m.D) * int64(m.D)
	l0, err := subtractDiagonalLsys(m.Data, m.lsys, m.NAdo, blockDim)
	if err != nil {
		return nil, err
	}
	hbuf, err := cmat.NewDense(m.D, m.D)
	if err != nil {
		return nil, err
	}

	return &timeDependentRHS{l0: l0, nAdo: m.NAdo, blockDim: blockDim, update: update, hbuf: hbuf}, nil
}

func (r *timeDependentRHS) eval(t float64, v []complex128) ([]complex128, error) {
	if err := r.update(t, r.hbuf); err != nil {
		return nil, err
	}
	lsysT, err := buildLsys(r.hbuf)
	if err != nil {
		return nil, err
	}
	out, err := r.l0.MatVec(v)
	if err != nil {
		return nil, err
	}
	applyBlockDiagonalAdd(lsysT, v, out, r.nAdo, r.blockDim)

	return out, nil
}

// subtractDiagonalLsys re-stamps every diagonal block of data, subtracting
// lsys once from each — the complement of AddDissipator's additive re-stamp.
func subtractDiagonalLsys(data *cmat.CSC, lsys *cmat.Dense, nAdo int, blockDim int64) (*cmat.CSC, error) {
	existing := data.ToTriplets()
	b := cmat.NewCOOBuilder(len(existing) + nAdo*int(blockDim))
	for _, t := range existing {
		b.Add(t.Row, t.Col, t.Val)
	}
	neg := lsys.Scale(-1)
	for i := 0; i < nAdo; i++ {
		if err := b.AddBlock(int64(i), int64(i), blockDim, neg); err != nil {
			return nil, err
		}
	}

	return cmat.BuildCSC(data.N, b.Triplets())
}

// applyBlockDiagonalAdd computes out[i] += op·v[i] for every d²-sized block
// i of a flat ADO vector, op being the same dense operator at every block.
func applyBlockDiagonalAdd(op *cmat.Dense, v, out []complex128, nAdo int, blockDim int64) {
	dim := int(blockDim)
	for blk := 0; blk < nAdo; blk++ {
		base := blk * dim
		for row := 0; row < dim; row++ {
			var sum complex128
			for col := 0; col < dim; col++ {
				val, _ := op.At(row, col)
				if val == 0 {
					continue
				}
				sum += val * v[base+col]
			}
			out[base+row] += sum
		}
	}
}

// DefaultIntegrator is an adaptive step-doubling RK4: each step is taken
// once at size h and once as two half-steps at h/2; the difference between
// the two estimates drives classical step-size control.
type DefaultIntegrator struct{}

func (DefaultIntegrator) Integrate(rhs RHSFunc, v0 []complex128, tlist []float64, rtol, atol float64, maxSteps int) ([][]complex128, error) {
	out := make([][]complex128, len(tlist))
	v := make([]complex128, len(v0))
	copy(v, v0)
	t := tlist[0]
	out[0] = cloneVec(v)

	budget := 0
	for i := 1; i < len(tlist); i++ {
		target := tlist[i]
		nv, err := integrateSegment(rhs, t, target, v, rtol, atol, maxSteps, &budget)
		if err != nil {
			return nil, err
		}
		v = nv
		t = target
		out[i] = cloneVec(v)
	}

	return out, nil
}

func integrateSegment(rhs RHSFunc, t0, t1 float64, v0 []complex128, rtol, atol float64, maxSteps int, budget *int) ([]complex128, error) {
	t := t0
	v := v0
	h := t1 - t0
	if h == 0 {
		return cloneVec(v), nil
	}

	for t < t1 {
		if t+h > t1 {
			h = t1 - t
		}

		full, err := rk4Step(rhs, t, v, h)
		if err != nil {
			return nil, err
		}
		half, err := rk4Step(rhs, t, v, h/2)
		if err != nil {
			return nil, err
		}
		half, err = rk4Step(rhs, t+h/2, half, h/2)
		if err != nil {
			return nil, err
		}

		*budget++
		if *budget > maxSteps {
			return nil, ErrIntegratorMaxSteps
		}

		errRatio := stepError(full, half, rtol, atol)
		if errRatio <= 1 {
			t += h
			v = half
			growth := 1.5
			if errRatio > 0 {
				growth = math.Min(2, 0.9*math.Pow(errRatio, -0.2))
			}
			h *= growth
		} else {
			h *= math.Max(0.2, 0.9*math.Pow(errRatio, -0.25))
		}
	}

	return v, nil
}

func rk4Step(rhs RHSFunc, t float64, v []complex128, h float64) ([]complex128, error) {
	k1, err := rhs(t, v)
	if err != nil {
		return nil, err
	}
	k2, err := rhs(t+h/2, addScaled(v, k1, complex(h/2, 0)))
	if err != nil {
		return nil, err
	}
	k3, err := rhs(t+h/2, addScaled(v, k2, complex(h/2, 0)))
	if err != nil {
		return nil, err
	}
	k4, err := rhs(t+h, addScaled(v, k3, complex(h, 0)))
	if err != nil {
		return nil, err
	}

	out := make([]complex128, len(v))
	sixth := complex(h/6, 0)
	for i := range out {
		out[i] = v[i] + sixth*(k1[i]+2*k2[i]+2*k3[i]+k4[i])
	}

	return out, nil
}

func addScaled(v, k []complex128, s complex128) []complex128 {
	out := make([]complex128, len(v))
	for i := range out {
		out[i] = v[i] + s*k[i]
	}

	return out
}

func stepError(full, half []complex128, rtol, atol float64) float64 {
	var sumSq float64
	for i := range full {
		diff := full[i] - half[i]
		scale := atol + rtol*math.Max(cAbsComplex(full[i]), cAbsComplex(half[i]))
		if scale == 0 {
			continue
		}
		r := cAbsComplex(diff) / scale
		sumSq += r * r
	}

	return math.Sqrt(sumSq / float64(len(full)))
}

func cAbsComplex(c complex128) float64 {
	return math.Hypot(real(c), imag(c))
}

func cloneVec(v []complex128) []complex128 {
	out := make([]complex128, len(v))
	copy(out, v)

	return out
}
