// SPDX-License-Identifier: MIT

// Checkpoint persistence backs the optional Sink used by Evolve/EvolveODE.
// Keys are decimal time stamps; values are ADO vectors tagged with
// {d, n_ado, parity}. A CheckpointStore refuses to reopen an existing
// database file and refuses to overwrite an existing key, matching the
// "must not pre-exist" / "reject reopening" persistence contract.
package core

import (
	"database/sql"
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"strconv"
	"sync"

	_ "modernc.org/sqlite" // database/sql driver registration
)

// Sink receives saved ADO vectors during a trajectory. Put is called once
// per saved time point, in increasing time order; sink errors are always
// fatal to the in-flight evolve/evolve_ode call.
type Sink interface {
	Put(key string, v *ADOVector) error
}

// CheckpointKey formats a time stamp the way the persisted store expects:
// the shortest decimal representation that round-trips exactly.
func CheckpointKey(t float64) string {
	return strconv.FormatFloat(t, 'g', -1, 64)
}

// CheckpointStore is a sqlite-backed keyed blob store of ADO vectors.
type CheckpointStore struct {
	db   *sql.DB
	mu   sync.Mutex
	seen map[string]bool
}

// Open creates a fresh checkpoint database at path. It fails with
// ErrCheckpointPathExists if a file already sits at path — this check
// happens before any evolve/evolve_ode work begins.
func Open(path string) (*CheckpointStore, error) {
	if _, err := os.Stat(path); err == nil {
		return nil, ErrCheckpointPathExists
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("core: checkpoint open %q: %w", path, err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("core: checkpoint open %q: %w", path, err)
	}
	const schema = `CREATE TABLE checkpoints (
		key   TEXT PRIMARY KEY,
		d     INTEGER NOT NULL,
		n_ado INTEGER NOT NULL,
		parity INTEGER NOT NULL,
		data  BLOB NOT NULL
	)`
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()

		return nil, fmt.Errorf("core: checkpoint schema %q: %w", path, err)
	}

	return &CheckpointStore{db: db, seen: make(map[string]bool)}, nil
}

// Put writes v under key. Reopening an existing key is rejected with
// ErrCheckpointKeyExists; a write failure is ErrCheckpointWrite.
func (s *CheckpointStore) Put(key string, v *ADOVector) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.seen[key] {
		return ErrCheckpointKeyExists
	}

	buf := encodeComplexVector(v.V)
	_, err := s.db.Exec(
		`INSERT INTO checkpoints(key, d, n_ado, parity, data) VALUES (?, ?, ?, ?, ?)`,
		key, v.D, v.NAdo, int(v.Parity), buf,
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCheckpointWrite, err)
	}
	s.seen[key] = true

	return nil
}

// Get reads back the ADO vector stored under key.
func (s *CheckpointStore) Get(key string) (*ADOVector, error) {
	var d, nAdo, parity int
	var buf []byte

	row := s.db.QueryRow(`SELECT d, n_ado, parity, data FROM checkpoints WHERE key = ?`, key)
	if err := row.Scan(&d, &nAdo, &parity, &buf); err != nil {
		return nil, fmt.Errorf("core: checkpoint get %q: %w", key, err)
	}

	return &ADOVector{V: decodeComplexVector(buf), D: d, NAdo: nAdo, Parity: Parity(parity)}, nil
}

// Close releases the underlying database handle.
func (s *CheckpointStore) Close() error {
	return s.db.Close()
}

func encodeComplexVector(v []complex128) []byte {
	buf := make([]byte, 16*len(v))
	for i, c := range v {
		binary.BigEndian.PutUint64(buf[16*i:], math.Float64bits(real(c)))
		binary.BigEndian.PutUint64(buf[16*i+8:], math.Float64bits(imag(c)))
	}

	return buf
}

func decodeComplexVector(buf []byte) []complex128 {
	n := len(buf) / 16
	v := make([]complex128, n)
	for i := 0; i < n; i++ {
		re := math.Float64frombits(binary.BigEndian.Uint64(buf[16*i:]))
		im := math.Float64frombits(binary.BigEndian.Uint64(buf[16*i+8:]))
		v[i] = complex(re, im)
	}

	return v
}
