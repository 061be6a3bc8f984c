package store

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/cedar/internal/transaction"
)

// Store keeps the transaction collection in memory, newest first.
// Writers are serialized; readers get a copy of the slice.
type Store struct {
	mu  sync.RWMutex
	txs []*transaction.Transaction
}

func New() *Store {
	return &Store{}
}

func (s *Store) Insert(ctx context.Context, txs ...*transaction.Transaction) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, tx := range txs {
		cp := *tx

		// First index whose date is not after tx: equal dates put the newer insert first.
		i := sort.Search(len(s.txs), func(i int) bool {
			return !s.txs[i].Date.After(cp.Date)
		})

		s.txs = append(s.txs, nil)
		copy(s.txs[i+1:], s.txs[i:])
		s.txs[i] = &cp
	}

	return nil
}

func (s *Store) Get(ctx context.Context, id uuid.UUID) (*transaction.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, tx := range s.txs {
		if tx.ID == id {
			cp := *tx
			return &cp, nil
		}
	}

	return nil, transaction.ErrNotFound
}

func (s *Store) List(ctx context.Context, filter transaction.ListFilter) ([]*transaction.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	txs := make([]*transaction.Transaction, 0, len(s.txs))

	for _, tx := range s.txs {
		if !filter.Match(tx) {
			continue
		}

		cp := *tx
		txs = append(txs, &cp)
	}

	return txs, nil
}

func (s *Store) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, tx := range s.txs {
		if tx.ID == id {
			s.txs = append(s.txs[:i], s.txs[i+1:]...)
			return nil
		}
	}

	return transaction.ErrNotFound
}

var _ transaction.Repository = (*Store)(nil)
