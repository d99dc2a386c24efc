package badger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcatext/newsift/core"
	"github.com/arcatext/newsift/storage"
)

func newTestArticleRepo(t *testing.T) storage.ArticleRepository {
	t.Helper()
	articleRepo, batchRepo, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() {
		batchRepo.Close()
		articleRepo.Close()
		backend.Close()
	})
	return articleRepo
}

func TestAddArticles(t *testing.T) {
	repo := newTestArticleRepo(t)
	ctx := context.Background()

	a := &core.Article{BatchId: 1, Title: "First", Link: "https://example.com/1"}
	b := &core.Article{BatchId: 1, Title: "Second", Link: "https://example.com/2"}

	inserted, err := repo.AddArticles(ctx, a, b)
	require.NoError(t, err)
	require.Len(t, inserted, 2)

	assert.NotZero(t, a.Id)
	assert.NotZero(t, b.Id)
	assert.NotEqual(t, a.Id, b.Id)
	assert.False(t, a.CollectedAt.IsZero())
	assert.False(t, b.CollectedAt.IsZero())
}

func TestAddArticles_SkipsDuplicateLinks(t *testing.T) {
	repo := newTestArticleRepo(t)
	ctx := context.Background()

	first := &core.Article{BatchId: 1, Title: "Story", Link: "https://example.com/story"}
	_, err := repo.AddArticles(ctx, first)
	require.NoError(t, err)

	// Same link in the same batch is skipped
	again := &core.Article{BatchId: 1, Title: "Story again", Link: "https://example.com/story"}
	inserted, err := repo.AddArticles(ctx, again)
	require.NoError(t, err)
	assert.Empty(t, inserted)

	// Same link in a different batch is a fresh insert
	other := &core.Article{BatchId: 2, Title: "Story", Link: "https://example.com/story"}
	inserted, err = repo.AddArticles(ctx, other)
	require.NoError(t, err)
	assert.Len(t, inserted, 1)

	all, err := repo.GetArticlesByBatch(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestGetArticle(t *testing.T) {
	repo := newTestArticleRepo(t)
	ctx := context.Background()

	a := &core.Article{BatchId: 1, Title: "Story", Body: "Body text", Link: "https://example.com/story"}
	_, err := repo.AddArticles(ctx, a)
	require.NoError(t, err)

	got, err := repo.GetArticle(ctx, a.Id)
	require.NoError(t, err)
	assert.Equal(t, a.Title, got.Title)
	assert.Equal(t, a.Body, got.Body)
	assert.Equal(t, a.Link, got.Link)
}

func TestGetArticle_NotFound(t *testing.T) {
	repo := newTestArticleRepo(t)

	_, err := repo.GetArticle(context.Background(), 99999)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestGetArticles_MissingIDsSkipped(t *testing.T) {
	repo := newTestArticleRepo(t)
	ctx := context.Background()

	a := &core.Article{BatchId: 1, Title: "Story", Link: "https://example.com/story"}
	_, err := repo.AddArticles(ctx, a)
	require.NoError(t, err)

	got, err := repo.GetArticles(ctx, a.Id, 99999)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestGetArticlesByBatch_InsertionOrder(t *testing.T) {
	repo := newTestArticleRepo(t)
	ctx := context.Background()

	titles := []string{"first", "second", "third", "fourth"}
	for i, title := range titles {
		a := &core.Article{BatchId: 7, Title: title, Link: "https://example.com/" + title}
		_, err := repo.AddArticles(ctx, a)
		require.NoError(t, err, "insert %d", i)
	}

	got, err := repo.GetArticlesByBatch(ctx, 7)
	require.NoError(t, err)
	require.Len(t, got, len(titles))
	for i, a := range got {
		assert.Equal(t, titles[i], a.Title)
	}
}

func TestUpdateArticles(t *testing.T) {
	repo := newTestArticleRepo(t)
	ctx := context.Background()

	a := &core.Article{BatchId: 1, Title: "Story", Link: "https://example.com/story"}
	_, err := repo.AddArticles(ctx, a)
	require.NoError(t, err)

	a.IsDuplicate = true
	a.DuplicateOf = 42
	a.Summary = "short summary"
	_, err = repo.UpdateArticles(ctx, a)
	require.NoError(t, err)

	got, err := repo.GetArticle(ctx, a.Id)
	require.NoError(t, err)
	assert.True(t, got.IsDuplicate)
	assert.Equal(t, core.ID(42), got.DuplicateOf)
	assert.Equal(t, "short summary", got.Summary)
}

func TestUpdateArticles_NotFound(t *testing.T) {
	repo := newTestArticleRepo(t)

	ghost := &core.Article{Id: 4242, BatchId: 1, Title: "Ghost", Link: "https://example.com/ghost"}
	_, err := repo.UpdateArticles(context.Background(), ghost)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestGetCanonicalArticles(t *testing.T) {
	repo := newTestArticleRepo(t)
	ctx := context.Background()

	canonical := &core.Article{BatchId: 3, Title: "Original", Link: "https://example.com/orig"}
	dup := &core.Article{BatchId: 3, Title: "Copy", Link: "https://example.com/copy"}
	_, err := repo.AddArticles(ctx, canonical, dup)
	require.NoError(t, err)

	dup.IsDuplicate = true
	dup.DuplicateOf = canonical.Id
	_, err = repo.UpdateArticles(ctx, dup)
	require.NoError(t, err)

	got, err := repo.GetCanonicalArticles(ctx, 3)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, canonical.Id, got[0].Id)

	// batchID 0 spans all batches
	other := &core.Article{BatchId: 4, Title: "Other batch", Link: "https://example.com/other"}
	_, err = repo.AddArticles(ctx, other)
	require.NoError(t, err)

	all, err := repo.GetCanonicalArticles(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestGetUnembeddedArticles(t *testing.T) {
	repo := newTestArticleRepo(t)
	ctx := context.Background()

	embedded := &core.Article{
		BatchId: 5,
		Title:   "Has vector",
		Link:    "https://example.com/vec",
		Vector:  []float32{0.1, 0.2},
	}
	bare := &core.Article{BatchId: 5, Title: "No vector", Link: "https://example.com/novec"}
	_, err := repo.AddArticles(ctx, embedded, bare)
	require.NoError(t, err)

	got, err := repo.GetUnembeddedArticles(ctx, 5)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, bare.Id, got[0].Id)
}

func TestDeleteBatchArticles(t *testing.T) {
	repo := newTestArticleRepo(t)
	ctx := context.Background()

	for _, link := range []string{"a", "b", "c"} {
		a := &core.Article{BatchId: 9, Title: link, Link: "https://example.com/" + link}
		_, err := repo.AddArticles(ctx, a)
		require.NoError(t, err)
	}
	keeper := &core.Article{BatchId: 10, Title: "keeper", Link: "https://example.com/keeper"}
	_, err := repo.AddArticles(ctx, keeper)
	require.NoError(t, err)

	deleted, err := repo.DeleteBatchArticles(ctx, 9)
	require.NoError(t, err)
	assert.Equal(t, 3, deleted)

	remaining, err := repo.GetArticlesByBatch(ctx, 9)
	require.NoError(t, err)
	assert.Empty(t, remaining)

	// Link index entries are gone, so the link can be inserted again
	again := &core.Article{BatchId: 9, Title: "a", Link: "https://example.com/a"}
	inserted, err := repo.AddArticles(ctx, again)
	require.NoError(t, err)
	assert.Len(t, inserted, 1)

	untouched, err := repo.GetArticlesByBatch(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, untouched, 1)
}
