package newsift

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcatext/newsift/ai"
	"github.com/arcatext/newsift/ai/mock"
	"github.com/arcatext/newsift/core"
	"github.com/arcatext/newsift/ingestion"
)

func newTestDatabase(t *testing.T) *Database {
	t.Helper()
	db, err := NewDatabase("", WithInMemory(), WithProvider(mock.NewMockProvider()))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestNewDatabase(t *testing.T) {
	t.Run("create new database", func(t *testing.T) {
		tmpDir := filepath.Join(t.TempDir(), "test_db")
		db, err := NewDatabase(tmpDir, WithProvider(mock.NewMockProvider()))
		require.NoError(t, err)
		require.NotNil(t, db)
		defer db.Close()

		assert.NotNil(t, db.ArticleRepository())
		assert.NotNil(t, db.BatchRepository())
		assert.NotNil(t, db.backend)
		assert.NotNil(t, db.logger)
	})

	t.Run("default provider", func(t *testing.T) {
		db, err := NewDatabase("", WithInMemory(), WithAIConfig(ai.DefaultConfig()))
		require.NoError(t, err)
		defer db.Close()
		assert.NotNil(t, db.provider)
	})

	t.Run("error with invalid path", func(t *testing.T) {
		// A file where the database directory should be
		tmpFile := filepath.Join(t.TempDir(), "not_a_dir")
		err := os.WriteFile(tmpFile, []byte("test"), 0644)
		require.NoError(t, err)

		db, err := NewDatabase(tmpFile, WithProvider(mock.NewMockProvider()))
		assert.Error(t, err)
		assert.Nil(t, db)
	})
}

func TestDatabase_Close(t *testing.T) {
	db, err := NewDatabase(t.TempDir(), WithProvider(mock.NewMockProvider()))
	require.NoError(t, err)
	require.NotNil(t, db)

	err = db.Close()
	assert.NoError(t, err)
}

func TestDatabase_FactoryMethods(t *testing.T) {
	db := newTestDatabase(t)

	t.Run("can create pipeline", func(t *testing.T) {
		pipeline, err := db.NewPipeline(ingestion.WithPoolSize(1))
		require.NoError(t, err)
		require.NotNil(t, pipeline)
		pipeline.Release()
	})

	t.Run("can create searcher", func(t *testing.T) {
		searcher, err := db.NewSearcher()
		require.NoError(t, err)
		require.NotNil(t, searcher)
	})

	t.Run("can create enrichment pass", func(t *testing.T) {
		pass := db.NewEnrichmentPass(0, nil, os.Stderr)
		require.NotNil(t, pass)
	})
}

func TestDatabase_SearchAndStats(t *testing.T) {
	ctx := context.Background()
	db := newTestDatabase(t)

	batch, err := db.BatchRepository().AddBatch(ctx, &core.Batch{Criteria: "storms"})
	require.NoError(t, err)

	seed := []*core.Article{
		{BatchId: batch.Id, Title: "Storm warning issued", Body: "A storm warning covers the coast.", Link: "http://e/1", IsRelevant: true},
		{BatchId: batch.Id, Title: "Storm warning issued", Body: "A storm warning covers the coast.", Link: "http://e/2", IsDuplicate: true, DuplicateOf: 1},
		{BatchId: batch.Id, Title: "Budget passes", Body: "Parliament approved the budget.", Link: "http://e/3"},
	}
	_, err = db.ArticleRepository().AddArticles(ctx, seed...)
	require.NoError(t, err)

	t.Run("search ranks canonicals only", func(t *testing.T) {
		results, err := db.Search(ctx, "storm warning", batch.Id, 10)
		require.NoError(t, err)
		require.Len(t, results, 1, "duplicate and off-topic articles excluded")
		assert.Equal(t, "Storm warning issued", results[0].Article.Title)
	})

	t.Run("stats tally the corpus", func(t *testing.T) {
		stats, err := db.Stats(ctx)
		require.NoError(t, err)
		assert.Equal(t, CorpusStats{
			Batches:    1,
			Articles:   3,
			Duplicates: 1,
			Relevant:   1,
			Embedded:   0,
		}, stats)
	})
}

func TestDatabase_PurgeBatch(t *testing.T) {
	ctx := context.Background()
	db := newTestDatabase(t)

	batch, err := db.BatchRepository().AddBatch(ctx, &core.Batch{Criteria: "anything"})
	require.NoError(t, err)

	_, err = db.ArticleRepository().AddArticles(ctx,
		&core.Article{BatchId: batch.Id, Title: "one", Link: "http://e/1"},
		&core.Article{BatchId: batch.Id, Title: "two", Link: "http://e/2"})
	require.NoError(t, err)

	removed, err := db.PurgeBatch(ctx, batch.Id)
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	_, err = db.BatchRepository().GetBatch(ctx, batch.Id)
	assert.Error(t, err)

	stats, err := db.Stats(ctx)
	require.NoError(t, err)
	assert.Zero(t, stats.Articles)
	assert.Zero(t, stats.Batches)
}
