package jellyfin

import (
	"fmt"
	"net/url"
)

// Image and stream URL builders. Pure string formatters over the configured
// session; the UI layer feeds these straight to its image and video loaders,
// so output must be stable for given inputs. Nothing here touches the cache
// or the network.

// ImageType selects which server-side artwork variant a URL addresses
type ImageType string

const (
	ImagePrimary  ImageType = "Primary"
	ImageBackdrop ImageType = "Backdrop"
	ImageThumb    ImageType = "Thumb"
)

// ImageURL returns the URL for an item's artwork.
// tag pins the exact image version; maxWidth <= 0 omits the constraint.
func (c *Client) ImageURL(itemID string, imageType ImageType, tag string, maxWidth int) string {
	c.mu.RLock()
	baseURL := c.sess.baseURL
	c.mu.RUnlock()
	if baseURL == "" {
		return ""
	}

	query := url.Values{}
	if tag != "" {
		query.Set("tag", tag)
	}
	if maxWidth > 0 {
		query.Set("maxWidth", fmt.Sprintf("%d", maxWidth))
	}

	u := fmt.Sprintf("%s/Items/%s/Images/%s", baseURL, itemID, imageType)
	if encoded := query.Encode(); encoded != "" {
		u += "?" + encoded
	}
	return u
}

// PrimaryImageURL returns the poster image URL for an item
func (c *Client) PrimaryImageURL(itemID, tag string, maxWidth int) string {
	return c.ImageURL(itemID, ImagePrimary, tag, maxWidth)
}

// BackdropImageURL returns the background art URL for an item
func (c *Client) BackdropImageURL(itemID, tag string, maxWidth int) string {
	return c.ImageURL(itemID, ImageBackdrop, tag, maxWidth)
}

// ThumbImageURL returns the thumbnail URL for an item
func (c *Client) ThumbImageURL(itemID, tag string, maxWidth int) string {
	return c.ImageURL(itemID, ImageThumb, tag, maxWidth)
}

// StreamURL returns a direct static-stream URL for an item.
// Format: /Videos/{itemId}/stream.{container}?Static=true&api_key={token}
func (c *Client) StreamURL(itemID, container string) string {
	c.mu.RLock()
	baseURL := c.sess.baseURL
	token := c.sess.token
	c.mu.RUnlock()
	if baseURL == "" {
		return ""
	}
	return fmt.Sprintf("%s/Videos/%s/stream.%s?Static=true&api_key=%s", baseURL, itemID, container, token)
}
