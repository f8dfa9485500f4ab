package store

import (
	"context"

	"github.com/cockroachdb/pebble"

	"github.com/bananai/brokerage/core/logger"
	"github.com/bananai/brokerage/core/model"
)

const batchKeyPrefix = "batch/"

// PebbleBatchStore persists batch records in a pebble key-value database.
// Same contract as FileBatchStore; selected by config for larger
// inventories where a directory scan per load gets slow.
type PebbleBatchStore struct {
	db  *pebble.DB
	log logger.Logger
}

// NewPebbleBatchStore opens or creates the database at dir.
func NewPebbleBatchStore(dir string, log logger.Logger) (*PebbleBatchStore, error) {
	db, err := pebble.Open(dir, &pebble.Options{})
	if err != nil {
		return nil, err
	}
	return &PebbleBatchStore{db: db, log: log}, nil
}

// LoadAll iterates the batch keyspace. Malformed values are skipped with a
// warning, matching the file backend.
func (s *PebbleBatchStore) LoadAll(ctx context.Context) ([]*model.Batch, error) {
	iter, err := s.db.NewIter(&pebble.IterOptions{
		LowerBound: []byte(batchKeyPrefix),
		UpperBound: []byte(batchKeyPrefix + "~"),
	})
	if err != nil {
		return nil, err
	}
	defer func() { _ = iter.Close() }()

	var batches []*model.Batch
	for iter.First(); iter.Valid(); iter.Next() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		b, err := decodeBatch(iter.Value())
		if err != nil {
			s.log.Warnf("skipping malformed batch record %s: %v", iter.Key(), err)
			continue
		}
		batches = append(batches, b)
	}
	if err := iter.Error(); err != nil {
		return nil, err
	}
	return batches, nil
}

// Save writes the record durably, keyed by batch id.
func (s *PebbleBatchStore) Save(_ context.Context, b *model.Batch) error {
	data, err := encodeBatch(b)
	if err != nil {
		return err
	}
	return s.db.Set([]byte(batchKeyPrefix+b.ID), data, pebble.Sync)
}

// Close releases the database.
func (s *PebbleBatchStore) Close() error { return s.db.Close() }
