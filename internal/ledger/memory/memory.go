// Package memory provides an in-memory transaction source for tests
// and embedding hosts that already hold a record set.
package memory

import (
	"context"
	"sync"

	"spendsight/internal/core"
	"spendsight/internal/ledger"
)

// Store is a fixed in-memory record set behind the Source port.
type Store struct {
	mu    sync.Mutex
	items []core.Transaction
}

var _ ledger.Source = (*Store)(nil)

// New copies the given records into a store.
func New(records []core.Transaction) *Store {
	return &Store{items: append([]core.Transaction(nil), records...)}
}

// Load returns a copy of the record set, so callers can never mutate
// the store through the result.
func (s *Store) Load(_ context.Context) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Transaction(nil), s.items...), nil
}

// Append adds records to the store.
func (s *Store) Append(records ...core.Transaction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, records...)
}
