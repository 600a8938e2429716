// SPDX-License-Identifier: MIT
package cmat

// Kron returns the Kronecker product a⊗b.
// Complexity: O(ra*ca*rb*cb).
func Kron(a, b *Dense) (*Dense, error) {
	if a == nil || b == nil {
		return nil, ErrNilMatrix
	}
	out, err := NewDense(a.r*b.r, a.c*b.c)
	if err != nil {
		return nil, err
	}
	var i, j, p, q int
	for i = 0; i < a.r; i++ {
		for j = 0; j < a.c; j++ {
			av := a.data[i*a.c+j]
			if av == 0 {
				continue
			}
			for p = 0; p < b.r; p++ {
				for q = 0; q < b.c; q++ {
					bv := b.data[p*b.c+q]
					if bv == 0 {
						continue
					}
					row := i*b.r + p
					col := j*b.c + q
					out.data[row*out.c+col] = av * bv
				}
			}
		}
	}

	return out, nil
}

// Spre lifts left-multiplication by a d×d operator A to the vectorised
// (column-major) d²-dimensional space: spre(A) = I_d ⊗ A.
func Spre(a *Dense) (*Dense, error) {
	if a == nil {
		return nil, ErrNilMatrix
	}
	if a.r != a.c {
		return nil, ErrNonSquare
	}
	id, err := Identity(a.r)
	if err != nil {
		return nil, err
	}

	return Kron(id, a)
}

// Spost lifts right-multiplication by a d×d operator A to the vectorised
// space: spost(A) = Aᵀ ⊗ I_d.
func Spost(a *Dense) (*Dense, error) {
	if a == nil {
		return nil, ErrNilMatrix
	}
	if a.r != a.c {
		return nil, ErrNonSquare
	}
	id, err := Identity(a.r)
	if err != nil {
		return nil, err
	}

	return Kron(a.Transpose(), id)
}

// Commutator returns the superoperator form of [A,·] = spre(A) - spost(A),
// i.e. the operator whose action on vec(ρ) equals vec(Aρ-ρA).
func Commutator(a *Dense) (*Dense, error) {
	pre, err := Spre(a)
	if err != nil {
		return nil, err
	}
	post, err := Spost(a)
	if err != nil {
		return nil, err
	}

	return Sub(pre, post)
}
