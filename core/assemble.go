// SPDX-License-Identifier: MIT

package core

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/katalvlaran/heom/bath"
	"github.com/katalvlaran/heom/cmat"
	"github.com/katalvlaran/heom/label"
	"github.com/katalvlaran/heom/superop"
)

// MakeBoson assembles a purely bosonic hierarchy superoperator.
func MakeBoson(hsys *cmat.Dense, tier int, baths []bath.Bath, opts ...Option) (*M, error) {
	terms, err := flattenBaths(baths)
	if err != nil {
		return nil, err
	}

	return assemble(hsys, tier, 0, terms, nil, ParityNone, opts...)
}

// MakeFermion assembles a purely fermionic hierarchy superoperator.
func MakeFermion(hsys *cmat.Dense, tier int, baths []bath.Bath, parity Parity, opts ...Option) (*M, error) {
	terms, err := flattenBaths(baths)
	if err != nil {
		return nil, err
	}

	return assemble(hsys, 0, tier, nil, terms, parity, opts...)
}

// MakeBosonFermion assembles a mixed boson/fermion hierarchy superoperator.
func MakeBosonFermion(hsys *cmat.Dense, tierB, tierF int, bbaths, fbaths []bath.Bath, parity Parity, opts ...Option) (*M, error) {
	bterms, err := flattenBaths(bbaths)
	if err != nil {
		return nil, err
	}
	fterms, err := flattenBaths(fbaths)
	if err != nil {
		return nil, err
	}

	return assemble(hsys, tierB, tierF, bterms, fterms, parity, opts...)
}

func flattenBaths(baths []bath.Bath) ([]*bath.Term, error) {
	if len(baths) == 0 {
		return nil, ErrEmptyBathList
	}
	ptrs := make([]*bath.Bath, len(baths))
	for i := range baths {
		ptrs[i] = &baths[i]
	}
	combined, err := bath.Combine(ptrs...)
	if err != nil {
		return nil, err
	}

	return combined.Terms, nil
}

// assemble builds the sparse HEOM superoperator for the given system
// Hamiltonian and bosonic/fermionic term lists — the hierarchy assembler,
// realised as a fork-join over ADO labels: each worker owns a private COO
// partition, merged once at the join point, matching the "no locking during
// emission" concurrency model.
func assemble(hsys *cmat.Dense, tierB, tierF int, bosonTerms, fermionTerms []*bath.Term, parity Parity, opts ...Option) (*M, error) {
	o := gatherOptions(opts...)

	if hsys == nil {
		return nil, ErrNilHsys
	}
	if hsys.Rows() != hsys.Cols() {
		return nil, ErrNonSquareHsys
	}
	if tierB < 0 || tierF < 0 {
		return nil, ErrNegativeTier
	}
	if err := bath.ValidateParity(parity); err != nil {
		return nil, fmt.Errorf("core.assemble: %w", ErrInvalidParity)
	}
	if len(fermionTerms) == 0 {
		tierF = 0
		if parity != ParityNone {
			return nil, ErrInvalidParity
		}
	} else if parity == ParityNone {
		return nil, ErrInvalidParity
	}
	if len(bosonTerms) == 0 {
		tierB = 0
	}

	d := hsys.Rows()
	for _, term := range bosonTerms {
		if term.D() != d {
			return nil, ErrDimensionMismatch
		}
	}
	for _, term := range fermionTerms {
		if term.D() != d {
			return nil, ErrDimensionMismatch
		}
	}

	lsys, err := buildLsys(hsys)
	if err != nil {
		return nil, err
	}

	var bosonLabels *label.Table
	nAdoBoson := 1
	if len(bosonTerms) > 0 {
		dims := make([]int, len(bosonTerms))
		for i := range dims {
			dims[i] = tierB + 1
		}
		bosonLabels, err = label.NewTable(dims, tierB)
		if err != nil {
			return nil, err
		}
		nAdoBoson = bosonLabels.N()
	}

	var fermionLabels *label.Table
	nAdoFermion := 1
	if len(fermionTerms) > 0 {
		dims := make([]int, len(fermionTerms))
		for i := range dims {
			dims[i] = 2
		}
		fermionLabels, err = label.NewTable(dims, tierF)
		if err != nil {
			return nil, err
		}
		nAdoFermion = fermionLabels.N()
	}

	nAdo := nAdoBoson * nAdoFermion
	blockDim := int64(d) * int64(d)
	globalDim := int64(nAdo) * blockDim

	builder, err := forkJoinAssemble(lsys, bosonLabels, fermionLabels, bosonTerms, fermionTerms,
		nAdoBoson, nAdoFermion, tierB, tierF, parity, blockDim, o)
	if err != nil {
		return nil, err
	}

	csc, err := cmat.BuildCSC(globalDim, builder.Triplets())
	if err != nil {
		return nil, err
	}

	return &M{
		Data:          csc,
		TierBoson:     tierB,
		TierFermion:   tierF,
		D:             d,
		NAdo:          nAdo,
		NAdoBoson:     nAdoBoson,
		NAdoFermion:   nAdoFermion,
		Parity:        parity,
		bosonLabels:   bosonLabels,
		fermionLabels: fermionLabels,
		hsys:          hsys.Clone(),
		lsys:          lsys,
		bosonTerms:    bosonTerms,
		fermionTerms:  fermionTerms,
	}, nil
}

func buildLsys(hsys *cmat.Dense) (*cmat.Dense, error) {
	comm, err := cmat.Commutator(hsys)
	if err != nil {
		return nil, err
	}

	return comm.Scale(complex(0, -1)), nil
}

// forkJoinAssemble partitions the N_ado source labels across o.workers
// goroutines, each filling a private COOBuilder; partitions are merged at
// the join point with no locking during emission.
func forkJoinAssemble(
	lsys *cmat.Dense,
	bosonLabels, fermionLabels *label.Table,
	bosonTerms, fermionTerms []*bath.Term,
	nAdoBoson, nAdoFermion, tierB, tierF int,
	parity Parity,
	blockDim int64,
	o Options,
) (*cmat.COOBuilder, error) {
	nAdo := nAdoBoson * nAdoFermion
	workers := o.workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > nAdo {
		workers = nAdo
	}
	if workers < 1 {
		workers = 1
	}

	chunk := (nAdo + workers - 1) / workers
	partials := make([]*cmat.COOBuilder, workers)
	errs := make([]error, workers)

	var wg sync.WaitGroup
	var completed int64
	var mu sync.Mutex

	for w := 0; w < workers; w++ {
		lo := w * chunk
		hi := lo + chunk
		if hi > nAdo {
			hi = nAdo
		}
		if lo >= hi {
			partials[w] = cmat.NewCOOBuilder(0)
			continue
		}
		wg.Add(1)
		go func(w, lo, hi int) {
			defer wg.Done()
			b := cmat.NewCOOBuilder((hi - lo) * 8)
			for i := lo; i < hi; i++ {
				if err := assembleLabel(b, i, lsys, bosonLabels, fermionLabels,
					bosonTerms, fermionTerms, nAdoFermion, tierB, tierF, parity, blockDim); err != nil {
					errs[w] = err
					return
				}
			}
			partials[w] = b
			mu.Lock()
			completed += int64(hi - lo)
			o.report(Progress{Stage: "assemble", Completed: int(completed), Total: nAdo})
			mu.Unlock()
		}(w, lo, hi)
	}
	wg.Wait()

	for _, e := range errs {
		if e != nil {
			return nil, e
		}
	}

	joined := cmat.NewCOOBuilder(0)
	for _, p := range partials {
		joined.Merge(p)
	}

	return joined, nil
}

// assembleLabel emits the diagonal and off-diagonal contributions for one
// global ADO index into b.
func assembleLabel(
	b *cmat.COOBuilder,
	i int,
	lsys *cmat.Dense,
	bosonLabels, fermionLabels *label.Table,
	bosonTerms, fermionTerms []*bath.Term,
	nAdoFermion, tierB, tierF int,
	parity Parity,
	blockDim int64,
) error {
	idxB := i / nAdoFermion
	idxF := i % nAdoFermion

	var labelB label.Label
	var err error
	if bosonLabels != nil {
		labelB, err = bosonLabels.Label(idxB)
		if err != nil {
			return err
		}
	}
	var labelF label.Label
	if fermionLabels != nil {
		labelF, err = fermionLabels.Label(idxF)
		if err != nil {
			return err
		}
	}

	var decay complex128
	for k, term := range bosonTerms {
		if labelB[k] > 0 {
			decay += complex(float64(labelB[k]), 0) * term.Gamma
		}
	}
	for k, term := range fermionTerms {
		if labelF[k] > 0 {
			decay += complex(float64(labelF[k]), 0) * term.Gamma
		}
	}

	diag := lsys
	if decay != 0 {
		id, err := cmat.Identity(int(blockDim))
		if err != nil {
			return err
		}
		diag, err = cmat.Sub(lsys, id.Scale(decay))
		if err != nil {
			return err
		}
	}
	if err := b.AddBlock(int64(i), int64(i), blockDim, diag); err != nil {
		return err
	}

	sumB := labelB.Sum()
	for k, term := range bosonTerms {
		occ := labelB[k]
		if occ >= 1 {
			if nbr, ok := bosonLabels.Neighbor(labelB, k, -1); ok {
				nbrIdx, _ := bosonLabels.Index(nbr)
				grad, err := superop.PrevGrad(term, occ, ParityNone, 0, 0)
				if err != nil {
					return err
				}
				if err := b.AddBlock(int64(i), int64(nbrIdx*nAdoFermion+idxF), blockDim, grad); err != nil {
					return err
				}
			}
		}
		if sumB < tierB {
			if nbr, ok := bosonLabels.Neighbor(labelB, k, +1); ok {
				nbrIdx, _ := bosonLabels.Index(nbr)
				grad, err := superop.NextGrad(term, ParityNone, 0, 0)
				if err != nil {
					return err
				}
				if err := b.AddBlock(int64(i), int64(nbrIdx*nAdoFermion+idxF), blockDim, grad); err != nil {
					return err
				}
			}
		}
	}

	sumF := labelF.Sum()
	nBefore := 0
	for k, term := range fermionTerms {
		occ := labelF[k]
		if occ >= 1 {
			if nbr, ok := fermionLabels.Neighbor(labelF, k, -1); ok {
				nbrIdx, _ := fermionLabels.Index(nbr)
				grad, err := superop.PrevGrad(term, occ, parity, nBefore, sumF)
				if err != nil {
					return err
				}
				if err := b.AddBlock(int64(i), int64(idxB*nAdoFermion+nbrIdx), blockDim, grad); err != nil {
					return err
				}
			}
		}
		if sumF < tierF {
			if nbr, ok := fermionLabels.Neighbor(labelF, k, +1); ok {
				nbrIdx, _ := fermionLabels.Index(nbr)
				grad, err := superop.NextGrad(term, parity, nBefore, sumF)
				if err != nil {
					return err
				}
				if err := b.AddBlock(int64(i), int64(idxB*nAdoFermion+nbrIdx), blockDim, grad); err != nil {
					return err
				}
			}
		}
		nBefore += occ
	}

	return nil
}
