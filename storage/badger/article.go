package badger

import (
	"context"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/arcatext/newsift/core"
	"github.com/arcatext/newsift/storage"
)

// ArticleRepository implements storage.ArticleRepository for BadgerDB.
type ArticleRepository struct {
	backend *Backend
	idSeq   *badger.Sequence
}

var _ storage.ArticleRepository = (*ArticleRepository)(nil)

// NewArticleRepository creates a new ArticleRepository.
func NewArticleRepository(backend *Backend) (*ArticleRepository, error) {
	idSeq, err := backend.GetSequence(articleIDSeq)
	if err != nil {
		return nil, err
	}

	return &ArticleRepository{
		backend: backend,
		idSeq:   idSeq,
	}, nil
}

// Close releases the ID sequence.
func (r *ArticleRepository) Close() error {
	return r.idSeq.Release()
}

// FindSimilar delegates to the backend.
func (r *ArticleRepository) FindSimilar(ctx context.Context, vector []float32, minSimilarity float32, limit int) ([]core.RankedArticle, error) {
	return r.backend.FindSimilar(ctx, vector, minSimilarity, limit)
}

// WithTransaction delegates to the backend.
func (r *ArticleRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// AddArticles adds one or more articles to storage. Articles whose link is
// already stored for the same batch are skipped, so collecting overlapping
// feeds never inserts the same story twice.
func (r *ArticleRepository) AddArticles(ctx context.Context, articles ...*core.Article) ([]*core.Article, error) {
	var inserted []*core.Article
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		inserted = inserted[:0]
		for _, article := range articles {
			// Skip links already stored for this batch
			linkKey := makeArticleLinkKey(article.BatchId, article.Link)
			if _, err := tx.Get(linkKey); err == nil {
				continue
			} else if err != badger.ErrKeyNotFound {
				return err
			}

			// Always generate new ID from sequence
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
			article.Id = core.ID(nextID)

			if article.CollectedAt.IsZero() {
				article.CollectedAt = time.Now().UTC()
			}

			// Store primary record
			key := makeArticleKey(article.Id)
			value := storage.MarshalArticle(article)
			if err := tx.Set(key, value); err != nil {
				return err
			}

			// Update batch index; sequence IDs ascend, so iterating the
			// index yields insertion order
			batchKey := makeArticleBatchKey(article.BatchId, article.Id)
			if err := tx.Set(batchKey, storage.MarshalID(article.Id)); err != nil {
				return err
			}

			// Update link index
			if err := tx.Set(linkKey, storage.MarshalID(article.Id)); err != nil {
				return err
			}

			inserted = append(inserted, article)
		}
		return tx.Commit()
	}, true)

	if err != nil {
		return nil, err
	}
	return inserted, nil
}

// UpdateArticles updates existing articles.
func (r *ArticleRepository) UpdateArticles(ctx context.Context, articles ...*core.Article) ([]*core.Article, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, article := range articles {
			key := makeArticleKey(article.Id)

			old, err := readArticle(tx, key)
			if err != nil {
				return err
			}
			if old == nil {
				return storage.ErrNotFound
			}

			// Store updated record
			value := storage.MarshalArticle(article)
			if err := tx.Set(key, value); err != nil {
				return err
			}

			// Move batch index entry if the article changed batch
			if old.BatchId != article.BatchId {
				if err := tx.Delete(makeArticleBatchKey(old.BatchId, old.Id)); err != nil {
					return err
				}
				batchKey := makeArticleBatchKey(article.BatchId, article.Id)
				if err := tx.Set(batchKey, storage.MarshalID(article.Id)); err != nil {
					return err
				}
				if err := tx.Delete(makeArticleLinkKey(old.BatchId, old.Link)); err != nil {
					return err
				}
				linkKey := makeArticleLinkKey(article.BatchId, article.Link)
				if err := tx.Set(linkKey, storage.MarshalID(article.Id)); err != nil {
					return err
				}
			}
		}
		return tx.Commit()
	}, true)

	return articles, err
}

// DeleteBatchArticles removes all articles of a batch along with their
// batch and link index entries.
func (r *ArticleRepository) DeleteBatchArticles(ctx context.Context, batchID core.ID) (int, error) {
	deleted := 0
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		deleted = 0
		ids, err := r.batchArticleIDs(tx, batchID)
		if err != nil {
			return err
		}

		for _, id := range ids {
			key := makeArticleKey(id)
			article, err := readArticle(tx, key)
			if err != nil {
				return err
			}
			if article == nil {
				continue
			}

			if err := tx.Delete(makeArticleBatchKey(batchID, id)); err != nil {
				return err
			}
			if err := tx.Delete(makeArticleLinkKey(batchID, article.Link)); err != nil {
				return err
			}
			if err := tx.Delete(key); err != nil {
				return err
			}
			deleted++
		}
		return tx.Commit()
	}, true)

	if err != nil {
		return 0, err
	}
	return deleted, nil
}

// GetArticle retrieves a single article by ID.
func (r *ArticleRepository) GetArticle(ctx context.Context, id core.ID) (*core.Article, error) {
	var result *core.Article
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeArticleKey(id)
		var err error
		result, err = readArticle(tx, key)
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

// GetArticles retrieves multiple articles by their IDs.
func (r *ArticleRepository) GetArticles(ctx context.Context, ids ...core.ID) ([]*core.Article, error) {
	var result []*core.Article
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeArticleKey(id)
			article, err := readArticle(tx, key)
			if err != nil {
				return err
			}
			if article != nil {
				result = append(result, article)
			}
		}
		return nil
	}, false)
	return result, err
}

// GetArticlesByBatch retrieves all articles of a batch in insertion order.
func (r *ArticleRepository) GetArticlesByBatch(ctx context.Context, batchID core.ID) ([]*core.Article, error) {
	return r.scanBatch(batchID, func(a *core.Article) bool { return true })
}

// GetCanonicalArticles retrieves non-duplicate articles in insertion order.
// A batchID of 0 spans the whole store.
func (r *ArticleRepository) GetCanonicalArticles(ctx context.Context, batchID core.ID) ([]*core.Article, error) {
	keep := func(a *core.Article) bool { return !a.IsDuplicate }
	if batchID == 0 {
		return r.scanAll(keep)
	}
	return r.scanBatch(batchID, keep)
}

// GetUnembeddedArticles retrieves articles without an embedding vector in
// insertion order. A batchID of 0 spans the whole store.
func (r *ArticleRepository) GetUnembeddedArticles(ctx context.Context, batchID core.ID) ([]*core.Article, error) {
	keep := func(a *core.Article) bool { return !a.Embedded() }
	if batchID == 0 {
		return r.scanAll(keep)
	}
	return r.scanBatch(batchID, keep)
}

// Helper methods

// batchArticleIDs collects the article IDs of a batch from the batch index,
// in ascending ID order.
func (r *ArticleRepository) batchArticleIDs(tx *badger.Txn, batchID core.ID) ([]core.ID, error) {
	prefix := makePartialArticleBatchKey(batchID)
	opts := badger.DefaultIteratorOptions
	opts.Prefix = prefix
	iter := tx.NewIterator(opts)
	defer iter.Close()

	var ids []core.ID
	for iter.Rewind(); iter.Valid(); iter.Next() {
		var id core.ID
		err := iter.Item().Value(func(val []byte) error {
			var err error
			id, err = storage.UnmarshalID(val)
			return err
		})
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// scanBatch walks a batch's index in ID order and returns articles passing
// the filter.
func (r *ArticleRepository) scanBatch(batchID core.ID, keep func(*core.Article) bool) ([]*core.Article, error) {
	var results []*core.Article
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		ids, err := r.batchArticleIDs(tx, batchID)
		if err != nil {
			return err
		}
		for _, id := range ids {
			article, err := readArticle(tx, makeArticleKey(id))
			if err != nil {
				return err
			}
			if article != nil && keep(article) {
				results = append(results, article)
			}
		}
		return nil
	}, false)
	return results, err
}

// scanAll walks the whole batch index across batches. Within each batch the
// order is insertion order.
func (r *ArticleRepository) scanAll(keep func(*core.Article) bool) ([]*core.Article, error) {
	var results []*core.Article
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(articleBatchPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var id core.ID
			err := iter.Item().Value(func(val []byte) error {
				var err error
				id, err = storage.UnmarshalID(val)
				return err
			})
			if err != nil {
				return err
			}
			article, err := readArticle(tx, makeArticleKey(id))
			if err != nil {
				return err
			}
			if article != nil && keep(article) {
				results = append(results, article)
			}
		}
		return nil
	}, false)
	return results, err
}

// readArticle reads an article from the transaction.
func readArticle(tx *badger.Txn, key []byte) (*core.Article, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var article *core.Article
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		article, unmarshalErr = storage.UnmarshalArticle(val)
		return unmarshalErr
	})
	return article, err
}
