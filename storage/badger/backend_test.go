package badger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcatext/newsift/core"
)

func TestOpenBackend_InMemory(t *testing.T) {
	backend, err := OpenBackend("", true)
	require.NoError(t, err)
	require.NotNil(t, backend)
	defer backend.Close()

	assert.False(t, backend.IsClosed())
}

func TestOpenBackend_FileSystem(t *testing.T) {
	tmpDir := t.TempDir()
	backend, err := OpenBackend(tmpDir, false)
	require.NoError(t, err)
	require.NotNil(t, backend)
	defer backend.Close()

	assert.False(t, backend.IsClosed())
}

func TestBackendClose(t *testing.T) {
	backend, err := OpenBackend("", true)
	require.NoError(t, err)
	require.NotNil(t, backend)

	assert.False(t, backend.IsClosed())

	err = backend.Close()
	require.NoError(t, err)

	assert.True(t, backend.IsClosed())
}

func TestFindSimilar_NoArticles(t *testing.T) {
	backend, err := OpenBackend("", true)
	require.NoError(t, err)
	defer backend.Close()

	results, err := backend.FindSimilar(context.Background(), []float32{1, 0, 0}, 0.5, 10)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestFindSimilar_SkipsDuplicatesAndUnembedded(t *testing.T) {
	articleRepo, _, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer func() {
		articleRepo.Close()
		backend.Close()
	}()

	ctx := context.Background()

	canonical := &core.Article{
		BatchId: 1,
		Title:   "Central bank raises rates",
		Link:    "https://example.com/a",
		Vector:  []float32{1, 0, 0},
	}
	unembedded := &core.Article{
		BatchId: 1,
		Title:   "No vector yet",
		Link:    "https://example.com/b",
	}
	_, err = articleRepo.AddArticles(ctx, canonical, unembedded)
	require.NoError(t, err)

	duplicate := &core.Article{
		BatchId:     1,
		Title:       "Central bank raises rates",
		Link:        "https://example.com/c",
		Vector:      []float32{1, 0, 0},
		IsDuplicate: true,
		DuplicateOf: canonical.Id,
	}
	_, err = articleRepo.AddArticles(ctx, duplicate)
	require.NoError(t, err)

	results, err := backend.FindSimilar(ctx, []float32{1, 0, 0}, 0.5, 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, canonical.Id, results[0].Article.Id)
	assert.InDelta(t, 1.0, results[0].Score, 1e-6)
}

func TestFindSimilar_ThresholdAndOrdering(t *testing.T) {
	articleRepo, _, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer func() {
		articleRepo.Close()
		backend.Close()
	}()

	ctx := context.Background()

	closeMatch := &core.Article{
		BatchId: 1,
		Title:   "Close match",
		Link:    "https://example.com/close",
		Vector:  []float32{1, 0.1, 0},
	}
	far := &core.Article{
		BatchId: 1,
		Title:   "Far match",
		Link:    "https://example.com/far",
		Vector:  []float32{0.3, 1, 0},
	}
	orthogonal := &core.Article{
		BatchId: 1,
		Title:   "Orthogonal",
		Link:    "https://example.com/orth",
		Vector:  []float32{0, 0, 1},
	}
	_, err = articleRepo.AddArticles(ctx, far, closeMatch, orthogonal)
	require.NoError(t, err)

	results, err := backend.FindSimilar(ctx, []float32{1, 0, 0}, 0.2, 10)
	require.NoError(t, err)
	require.Len(t, results, 2)

	// Highest similarity first
	assert.Equal(t, closeMatch.Id, results[0].Article.Id)
	assert.Equal(t, far.Id, results[1].Article.Id)
	assert.Greater(t, results[0].Score, results[1].Score)

	// Limit applies after sorting
	limited, err := backend.FindSimilar(ctx, []float32{1, 0, 0}, 0.2, 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, closeMatch.Id, limited[0].Article.Id)
}
