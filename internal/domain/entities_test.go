package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWatchStatus(t *testing.T) {
	assert.Equal(t, WatchStatusWatched, MediaItem{IsPlayed: true}.WatchStatus())
	assert.Equal(t, WatchStatusInProgress, MediaItem{ViewOffset: time.Minute}.WatchStatus())
	assert.Equal(t, WatchStatusUnwatched, MediaItem{}.WatchStatus())

	// Played wins over a leftover position
	assert.Equal(t, WatchStatusWatched, MediaItem{IsPlayed: true, ViewOffset: time.Minute}.WatchStatus())
}

func TestShouldResume(t *testing.T) {
	assert.True(t, MediaItem{ViewOffset: 20 * time.Minute}.ShouldResume())
	assert.False(t, MediaItem{ViewOffset: 20 * time.Minute, IsPlayed: true}.ShouldResume())
	assert.False(t, MediaItem{}.ShouldResume())
}

func TestEpisodeCode(t *testing.T) {
	ep := MediaItem{Type: MediaTypeEpisode, SeasonNum: 1, EpisodeNum: 5}
	assert.Equal(t, "S01E05", ep.EpisodeCode())

	movie := MediaItem{Type: MediaTypeMovie, SeasonNum: 1, EpisodeNum: 5}
	assert.Equal(t, "", movie.EpisodeCode())
}

func TestFormattedDuration(t *testing.T) {
	assert.Equal(t, "2h 16m", MediaItem{Duration: 2*time.Hour + 16*time.Minute}.FormattedDuration())
	assert.Equal(t, "45m", MediaItem{Duration: 45 * time.Minute}.FormattedDuration())
}
