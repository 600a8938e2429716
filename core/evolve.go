// SPDX-License-Identifier: MIT

package core

import "github.com/katalvlaran/heom/cmat"

// Evolve propagates initial over steps fixed-size time slices of length dt
// using the matrix-exponential method: P = expm(L·dt) is computed once via
// a truncated Taylor series (threshold τ, drop tolerance ε), then applied
// repeatedly as v ← P·v.
func Evolve(m *M, initial *ADOVector, dt float64, steps int, opts ...EvolveOption) ([]*ADOVector, error) {
	if m == nil {
		return nil, ErrNilHsys
	}
	if initial == nil {
		return nil, ErrDimensionMismatch
	}
	if err := initial.ValidateAgainst(m); err != nil {
		return nil, err
	}
	if steps < 0 {
		return nil, ErrNegativeTier
	}

	o := gatherEvolveOptions(opts...)

	p, err := expmApply(m.Data, dt, o.threshold, o.dropTol, o.maxTerms)
	if err != nil {
		return nil, err
	}

	out := make([]*ADOVector, steps+1)
	out[0] = initial.Clone()
	if o.sink != nil {
		if err := o.sink.Put(CheckpointKey(0), out[0]); err != nil {
			return nil, err
		}
	}

	cur := out[0]
	for s := 1; s <= steps; s++ {
		nextV, err := p.MatVec(cur.V)
		if err != nil {
			return nil, err
		}
		next := &ADOVector{V: nextV, D: cur.D, NAdo: cur.NAdo, Parity: cur.Parity}
		out[s] = next
		cur = next
		if o.sink != nil {
			t := float64(s) * dt
			if err := o.sink.Put(CheckpointKey(t), next); err != nil {
				return nil, err
			}
		}
	}

	return out, nil
}

// expmApply computes P ≈ expm(L·dt) as a sparse CSC matrix via a truncated
// Taylor series: P = Σ_{n=0}^{N} (L·dt)^n / n!, pruning near-zero entries
// after each term (drop tolerance ε) and stopping once the newest term's
// L1 norm falls within threshold τ of the running sum's norm.
func expmApply(l *cmat.CSC, dt, threshold, dropTol float64, maxTerms int) (*cmat.CSC, error) {
	n := l.N
	p, err := cmat.IdentityCSC(n)
	if err != nil {
		return nil, err
	}
	term, err := cmat.IdentityCSC(n)
	if err != nil {
		return nil, err
	}
	ldt := l.Scale(complex(dt, 0))

	for k := 1; k <= maxTerms; k++ {
		term, err = cmat.MulCSC(term, ldt)
		if err != nil {
			return nil, err
		}
		term = term.Scale(complex(1/float64(k), 0))
		term = term.DropSmall(dropTol)

		p, err = cmat.AddCSC(p, term)
		if err != nil {
			return nil, err
		}

		pNorm := p.Norm1()
		if pNorm == 0 {
			pNorm = 1
		}
		if term.Norm1() <= threshold*pNorm {
			return p, nil
		}
	}

	return nil, ErrExpmDidNotConverge
}
