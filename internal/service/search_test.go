package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theimmortal68/MyFlix-sub006/internal/cache"
	"github.com/theimmortal68/MyFlix-sub006/internal/domain"
)

func TestSearchUsesCatalogCache(t *testing.T) {
	repo := newFakeRepo()
	catalog := NewCatalogService(repo, &fakeSession{}, cache.NewStore(), nil)
	svc := NewSearchService(catalog, nil)
	ctx := context.Background()

	_, err := svc.Search(ctx, "matrix", 25)
	require.NoError(t, err)
	_, err = svc.Search(ctx, "Matrix ", 25)
	require.NoError(t, err)

	assert.Equal(t, 1, repo.calls["Search"], "normalized terms share one cache entry")
}

func TestFilterLocal(t *testing.T) {
	svc := NewSearchService(nil, nil)

	items := []*domain.MediaItem{
		{ID: "1", Title: "The Matrix"},
		{ID: "2", Title: "Mad Max: Fury Road"},
		{ID: "3", Title: "Blade Runner"},
	}

	results := svc.FilterLocal("matrix", items)
	require.NotEmpty(t, results)
	assert.Equal(t, "1", results[0].ID)

	for _, r := range results {
		assert.NotEqual(t, "3", r.ID, "non-matching titles dropped")
	}

	assert.Nil(t, svc.FilterLocal("", items))
	assert.Nil(t, svc.FilterLocal("matrix", nil))
}
