// Package memstore is an in-memory implementation of store.Store for
// tests.
package memstore

import (
	"context"
	"sync"

	"github.com/cognicore/chainsift/pkg/chainsift/store"
)

// Store accumulates batches in memory.
type Store struct {
	mu      sync.Mutex
	records []store.Record
	batches int
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{}
}

// Close implements store.Store.
func (s *Store) Close() error { return nil }

// AppendBatch implements store.Store.
func (s *Store) AppendBatch(ctx context.Context, recs []store.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, recs...)
	s.batches++
	return nil
}

// Records returns a copy of everything appended so far.
func (s *Store) Records() []store.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]store.Record, len(s.records))
	copy(out, s.records)
	return out
}

// Batches returns how many AppendBatch calls were made.
func (s *Store) Batches() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.batches
}
