package badger

import (
	"context"
	"slices"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/arcatext/newsift/core"
	"github.com/arcatext/newsift/storage"
)

// BatchRepository implements storage.BatchRepository for BadgerDB.
type BatchRepository struct {
	backend *Backend
	idSeq   *badger.Sequence
}

var _ storage.BatchRepository = (*BatchRepository)(nil)

// NewBatchRepository creates a new BatchRepository.
func NewBatchRepository(backend *Backend) (*BatchRepository, error) {
	idSeq, err := backend.GetSequence(batchIDSeq)
	if err != nil {
		return nil, err
	}

	return &BatchRepository{
		backend: backend,
		idSeq:   idSeq,
	}, nil
}

// Close releases the ID sequence.
func (r *BatchRepository) Close() error {
	return r.idSeq.Release()
}

// WithTransaction delegates to the backend.
func (r *BatchRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// AddBatch adds a batch to storage.
func (r *BatchRepository) AddBatch(ctx context.Context, batch *core.Batch) (*core.Batch, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		nextID, err := r.idSeq.Next()
		if err != nil {
			return err
		}
		// BadgerDB sequences can return 0 on first call, so we skip it
		if nextID == 0 {
			nextID, err = r.idSeq.Next()
			if err != nil {
				return err
			}
		}
		batch.Id = core.ID(nextID)

		if batch.CreatedAt.IsZero() {
			batch.CreatedAt = time.Now().UTC()
		}

		key := makeBatchKey(batch.Id)
		value := storage.MarshalBatch(batch)
		if err := tx.Set(key, value); err != nil {
			return err
		}

		// Update date index
		dateKey := makeBatchDateKey(batch.CreatedAt, batch.Id)
		if err := tx.Set(dateKey, storage.MarshalID(batch.Id)); err != nil {
			return err
		}

		return tx.Commit()
	}, true)

	return batch, err
}

// UpdateBatch updates an existing batch.
func (r *BatchRepository) UpdateBatch(ctx context.Context, batch *core.Batch) (*core.Batch, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeBatchKey(batch.Id)

		old, err := readBatch(tx, key)
		if err != nil {
			return err
		}
		if old == nil {
			return storage.ErrNotFound
		}

		value := storage.MarshalBatch(batch)
		if err := tx.Set(key, value); err != nil {
			return err
		}

		// Update date index if creation time changed
		if !old.CreatedAt.Equal(batch.CreatedAt) {
			if err := tx.Delete(makeBatchDateKey(old.CreatedAt, old.Id)); err != nil {
				return err
			}
			dateKey := makeBatchDateKey(batch.CreatedAt, batch.Id)
			if err := tx.Set(dateKey, storage.MarshalID(batch.Id)); err != nil {
				return err
			}
		}

		return tx.Commit()
	}, true)

	return batch, err
}

// DeleteBatch removes a batch record by ID.
func (r *BatchRepository) DeleteBatch(ctx context.Context, id core.ID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeBatchKey(id)

		batch, err := readBatch(tx, key)
		if err != nil {
			return err
		}
		if batch == nil {
			return storage.ErrNotFound
		}

		if err := tx.Delete(makeBatchDateKey(batch.CreatedAt, batch.Id)); err != nil {
			return err
		}
		if err := tx.Delete(key); err != nil {
			return err
		}

		return tx.Commit()
	}, true)
}

// GetBatch retrieves a single batch by ID.
func (r *BatchRepository) GetBatch(ctx context.Context, id core.ID) (*core.Batch, error) {
	var result *core.Batch
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeBatchKey(id)
		var err error
		result, err = readBatch(tx, key)
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// ListBatches retrieves batches ordered by creation time, most recent first.
func (r *BatchRepository) ListBatches(ctx context.Context, limit int) ([]*core.Batch, error) {
	var results []*core.Batch
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		// Use reverse iterator to get most recent batches first
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true

		iter := tx.NewIterator(opts)
		defer iter.Close()

		// Seek to the last possible key in the date index
		startKey := makeBatchDateKey(time.Date(9999, 12, 31, 23, 59, 59, 999999999, time.UTC), core.ID(^uint64(0)))

		prefix := []byte(batchDatePrefix + ":")

		for iter.Seek(startKey); iter.Valid(); iter.Next() {
			if limit > 0 && len(results) >= limit {
				break
			}
			key := iter.Item().Key()

			// Check if we're still in the batch date index
			if len(key) < len(prefix) || slices.Compare(key[:len(prefix)], prefix) != 0 {
				break
			}

			var batchID core.ID
			if err := iter.Item().Value(func(val []byte) error {
				var err error
				batchID, err = storage.UnmarshalID(val)
				return err
			}); err != nil {
				return err
			}

			batch, err := readBatch(tx, makeBatchKey(batchID))
			if err != nil {
				return err
			}
			if batch != nil {
				results = append(results, batch)
			}
		}
		return nil
	}, false)

	return results, err
}

// readBatch reads a batch from the transaction.
func readBatch(tx *badger.Txn, key []byte) (*core.Batch, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var batch *core.Batch
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		batch, unmarshalErr = storage.UnmarshalBatch(val)
		return unmarshalErr
	})
	return batch, err
}
