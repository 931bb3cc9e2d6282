package badger

import (
	"context"
	"errors"

	"github.com/dgraph-io/badger/v4"

	"github.com/agc2020/consulta/core"
	"github.com/agc2020/consulta/storage"
)

// PostingRepository implements storage.PostingRepository for BadgerDB.
type PostingRepository struct {
	backend *Backend
}

var _ storage.PostingRepository = (*PostingRepository)(nil)

// NewPostingRepository creates a new PostingRepository.
func NewPostingRepository(backend *Backend) (*PostingRepository, error) {
	return &PostingRepository{
		backend: backend,
	}, nil
}

// Close releases resources. PostingRepository has no resources to release.
func (r *PostingRepository) Close() error {
	return nil
}

// WithTransaction delegates to the backend.
func (r *PostingRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// AppendPostings appends postings to a term's list. Conflicting concurrent
// appends to the same term are retried, so writers from a worker pool can
// share terms safely.
func (r *PostingRepository) AppendPostings(ctx context.Context, term string, postings ...core.Posting) error {
	if term == "" {
		return storage.ErrEmptyTerm
	}
	if len(postings) == 0 {
		return nil
	}

	key := makePostingKey(term)
	for {
		err := r.backend.WithTx(func(tx *badger.Txn) error {
			existing, err := readPostings(tx, key)
			if err != nil {
				return err
			}
			merged := append(existing, postings...)
			if err := tx.Set(key, storage.MarshalPostings(merged)); err != nil {
				return err
			}
			return tx.Commit()
		}, true)
		if !errors.Is(err, badger.ErrConflict) {
			return err
		}
	}
}

// GetPostings retrieves a term's posting list.
func (r *PostingRepository) GetPostings(ctx context.Context, term string) ([]core.Posting, error) {
	if term == "" {
		return nil, storage.ErrEmptyTerm
	}

	var postings []core.Posting
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		postings, err = readPostings(tx, makePostingKey(term))
		return err
	}, false)
	if err != nil {
		return nil, err
	}
	return postings, nil
}

// SetStats stores the index statistics snapshot.
func (r *PostingRepository) SetStats(ctx context.Context, stats core.IndexStats) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Set([]byte(statsKey), storage.MarshalStats(stats)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// GetStats retrieves the index statistics.
func (r *PostingRepository) GetStats(ctx context.Context) (core.IndexStats, error) {
	var stats core.IndexStats
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get([]byte(statsKey))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return nil
			}
			return err
		}
		return item.Value(func(val []byte) error {
			var err error
			stats, err = storage.UnmarshalStats(val)
			return err
		})
	}, false)
	return stats, err
}

// readPostings reads a term's posting list inside a transaction.
// An absent key yields an empty list.
func readPostings(tx *badger.Txn, key []byte) ([]core.Posting, error) {
	item, err := tx.Get(key)
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var postings []core.Posting
	err = item.Value(func(val []byte) error {
		var err error
		postings, err = storage.UnmarshalPostings(val)
		return err
	})
	if err != nil {
		return nil, err
	}
	return postings, nil
}
