package jellyfin

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestImageURLs(t *testing.T) {
	c := NewClient(nil)
	c.Configure("https://srv", "t1", "u1", "d1")

	assert.Equal(t,
		"https://srv/Items/abc/Images/Primary?maxWidth=400&tag=tag1",
		c.PrimaryImageURL("abc", "tag1", 400))

	assert.Equal(t,
		"https://srv/Items/abc/Images/Backdrop?tag=tag2",
		c.BackdropImageURL("abc", "tag2", 0))

	assert.Equal(t,
		"https://srv/Items/abc/Images/Thumb",
		c.ThumbImageURL("abc", "", 0))

	// Stable output for identical inputs
	assert.Equal(t,
		c.PrimaryImageURL("abc", "tag1", 400),
		c.PrimaryImageURL("abc", "tag1", 400))
}

func TestStreamURL(t *testing.T) {
	c := NewClient(nil)
	c.Configure("https://srv", "t1", "u1", "d1")

	assert.Equal(t,
		"https://srv/Videos/abc/stream.mkv?Static=true&api_key=t1",
		c.StreamURL("abc", "mkv"))
}

func TestURLsEmptyWhenUnconfigured(t *testing.T) {
	c := NewClient(nil)

	assert.Empty(t, c.PrimaryImageURL("abc", "tag", 100))
	assert.Empty(t, c.StreamURL("abc", "mkv"))
}
