package service

import (
	"context"
	"log/slog"
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/theimmortal68/MyFlix-sub006/internal/domain"
)

// SearchService combines server-side search with a local fuzzy filter over
// already-fetched items, so typing in a picker does not hit the network on
// every keystroke.
type SearchService struct {
	catalog *CatalogService
	logger  *slog.Logger
}

// NewSearchService creates a search service over the catalog
func NewSearchService(catalog *CatalogService, logger *slog.Logger) *SearchService {
	if logger == nil {
		logger = slog.Default()
	}
	return &SearchService{catalog: catalog, logger: logger}
}

// Search performs a server-side search (cached by the catalog layer)
func (s *SearchService) Search(ctx context.Context, term string, limit int) ([]*domain.MediaItem, error) {
	return s.catalog.Search(ctx, term, limit)
}

// FilterLocal ranks the given items against the query with fuzzy matching,
// best matches first. Items whose titles do not match are dropped.
func (s *SearchService) FilterLocal(query string, items []*domain.MediaItem) []*domain.MediaItem {
	if query == "" || len(items) == 0 {
		return nil
	}

	titles := make([]string, len(items))
	for i, item := range items {
		titles[i] = item.Title
	}

	ranks := fuzzy.RankFindNormalizedFold(query, titles)
	sort.Sort(ranks)

	results := make([]*domain.MediaItem, 0, len(ranks))
	for _, rank := range ranks {
		results = append(results, items[rank.OriginalIndex])
	}

	s.logger.Debug("local filter", "query", query, "candidates", len(items), "matches", len(results))
	return results
}
