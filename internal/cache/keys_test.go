package cache

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyDeterminism(t *testing.T) {
	assert.Equal(t, LatestKey("movies", "lib1", 20), LatestKey("movies", "lib1", 20))
	assert.Equal(t, GenreItemsKey("g1", "lib1", 0, 50), GenreItemsKey("g1", "lib1", 0, 50))
	assert.Equal(t, SearchKey("Star Wars", 25), SearchKey("  star wars ", 25))
}

func TestKeyDistinctness(t *testing.T) {
	keys := []string{
		LibrariesKey(),
		ItemKey("abc"),
		ItemKey("abd"),
		ResumeKey(20),
		ResumeKey(50),
		NextUpKey("", 20),
		NextUpKey("series1", 20),
		LatestKey("movies", "lib1", 20),
		LatestKey("movies", "lib2", 20),
		LatestKey("series", "lib1", 20),
		LatestKey("movies", "lib1", 21),
		GenresKey("lib1"),
		GenreItemsKey("g1", "lib1", 0, 50),
		GenreItemsKey("g1", "lib1", 50, 50),
		CollectionsKey(),
		FavoritesKey(0, 50),
		FavoritesKey(50, 50),
		SeasonsKey("series1"),
		EpisodesKey("season1"),
		SearchKey("star wars", 25),
		SearchKey("star trek", 25),
		SimilarKey("abc", 10),
		PersonItemsKey("p1", 10),
		SpecialFeaturesKey("abc"),
		AncestorsKey("abc"),
		SuggestionsKey(10),
	}

	seen := make(map[string]int)
	for i, k := range keys {
		if prev, ok := seen[k]; ok {
			t.Fatalf("key collision: keys[%d] == keys[%d] == %q", i, prev, k)
		}
		seen[k] = i
	}
}

func TestResumeFamilySharesPrefix(t *testing.T) {
	// Invalidating PrefixResume must cover every key the resume builder emits
	for _, limit := range []int{1, 20, 50, 100} {
		assert.True(t, strings.HasPrefix(ResumeKey(limit), PrefixResume))
	}
}

func TestVolatileTTLsAreShort(t *testing.T) {
	assert.LessOrEqual(t, TTLResume.Seconds(), 60.0)
	assert.LessOrEqual(t, TTLNextUp.Seconds(), 60.0)
	assert.GreaterOrEqual(t, TTLLibraries.Minutes(), 1.0)
}
