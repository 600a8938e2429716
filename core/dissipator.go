// SPDX-License-Identifier: MIT

package core

import "github.com/katalvlaran/heom/cmat"

// AddDissipator injects Lindblad jump operators into the diagonal d²×d²
// block of M's Liouvillian and re-stamps the change into every diagonal
// block of M.Data. An empty jumpOps is a structural no-op (idempotence).
func AddDissipator(m *M, jumpOps []*cmat.Dense) error {
	if m == nil {
		return ErrNilHsys
	}
	if len(jumpOps) == 0 {
		return nil
	}

	contrib, err := dissipatorContribution(m.D, jumpOps)
	if err != nil {
		return err
	}

	blockDim := int64(m.D) * int64(m.D)
	existing := m.Data.ToTriplets()
	b := cmat.NewCOOBuilder(len(existing) + m.NAdo*int(blockDim))
	for _, t := range existing {
		b.Add(t.Row, t.Col, t.Val)
	}
	for i := 0; i < m.NAdo; i++ {
		if err := b.AddBlock(int64(i), int64(i), blockDim, contrib); err != nil {
			return err
		}
	}

	csc, err := cmat.BuildCSC(m.Data.N, b.Triplets())
	if err != nil {
		return err
	}
	m.Data = csc

	if m.dissipatorDiag == nil {
		m.dissipatorDiag = contrib
	} else {
		sum, err := cmat.Add(m.dissipatorDiag, contrib)
		if err != nil {
			return err
		}
		m.dissipatorDiag = sum
	}

	return nil
}

// dissipatorContribution computes
//
//	Σ_i ( spre(J_i)·spost(J_i†) − ½spre(J_i†J_i) − ½spost(J_i†J_i) )
//
// the standard Lindblad form lifted to the d²×d² vectorised space.
func dissipatorContribution(d int, jumpOps []*cmat.Dense) (*cmat.Dense, error) {
	dim := d * d
	total, err := cmat.NewDense(dim, dim)
	if err != nil {
		return nil, err
	}
	half := complex(0.5, 0)

	for _, j := range jumpOps {
		if j == nil {
			return nil, ErrDimensionMismatch
		}
		if j.Rows() != d || j.Cols() != d {
			return nil, ErrDimensionMismatch
		}
		jd := j.Dagger()
		jdj, err := cmat.Mul(jd, j)
		if err != nil {
			return nil, err
		}

		spreJ, err := cmat.Spre(j)
		if err != nil {
			return nil, err
		}
		spostJd, err := cmat.Spost(jd)
		if err != nil {
			return nil, err
		}
		lift, err := cmat.Mul(spreJ, spostJd)
		if err != nil {
			return nil, err
		}

		spreJdJ, err := cmat.Spre(jdj)
		if err != nil {
			return nil, err
		}
		spostJdJ, err := cmat.Spost(jdj)
		if err != nil {
			return nil, err
		}
		anticomm, err := cmat.Add(spreJdJ, spostJdJ)
		if err != nil {
			return nil, err
		}

		term, err := cmat.Sub(lift, anticomm.Scale(half))
		if err != nil {
			return nil, err
		}
		total, err = cmat.Add(total, term)
		if err != nil {
			return nil, err
		}
	}

	return total, nil
}
