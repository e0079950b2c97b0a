// Package jellyfin implements the HTTP transport for a Jellyfin-compatible
// media server. The client owns the mutable session (server URL, token, user
// and device ids) and categorizes every failure; caching lives in the
// service layer above it.
package jellyfin

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"

	"github.com/theimmortal68/MyFlix-sub006/internal/domain"
)

const (
	defaultTimeout = 60 * time.Second

	clientName    = "MyFlix"
	clientVersion = "1.0.0"
)

// session is an immutable snapshot of the authentication state
type session struct {
	baseURL  string
	token    string
	userID   string
	deviceID string
}

func (s session) authenticated() bool {
	return s.baseURL != "" && s.token != ""
}

// Client implements domain.MediaRepository against a Jellyfin server
type Client struct {
	mu   sync.RWMutex
	sess session

	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates an unconfigured Jellyfin API client. Operations fail
// with a KindUnauthenticated error until Configure is called.
func NewClient(logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: logger,
	}
}

// Configure sets the session used by all subsequent operations
func (c *Client) Configure(serverURL, token, userID, deviceID string) {
	c.mu.Lock()
	c.sess = session{
		baseURL:  strings.TrimRight(serverURL, "/"),
		token:    token,
		userID:   userID,
		deviceID: deviceID,
	}
	c.mu.Unlock()
	c.logger.Info("session configured", "server", serverURL, "userID", userID)
}

// Logout clears the session
func (c *Client) Logout() {
	c.mu.Lock()
	c.sess = session{}
	c.mu.Unlock()
	c.logger.Info("session cleared")
}

// IsAuthenticated reports whether a usable session is configured
func (c *Client) IsAuthenticated() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.sess.authenticated()
}

// Session returns the current session parameters (serverURL, token, deviceID),
// shared with the streaming socket client
func (c *Client) Session() (serverURL, token, deviceID string) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.sess.baseURL, c.sess.token, c.sess.deviceID
}

// session returns a snapshot or a categorized error when unconfigured
func (c *Client) session(op string) (session, error) {
	c.mu.RLock()
	s := c.sess
	c.mu.RUnlock()
	if !s.authenticated() {
		return session{}, &domain.APIError{Kind: domain.KindUnauthenticated, Op: op, Err: domain.ErrNotAuthenticated}
	}
	return s, nil
}

// buildAuthHeader constructs the X-Emby-Authorization header
func buildAuthHeader(token, deviceID string) string {
	parts := []string{
		fmt.Sprintf("MediaBrowser Client=%q", clientName),
		`Device="client"`,
		fmt.Sprintf("DeviceId=%q", deviceID),
		fmt.Sprintf("Version=%q", clientVersion),
	}
	if token != "" {
		parts = append(parts, fmt.Sprintf("Token=%q", token))
	}
	return strings.Join(parts, ", ")
}

// doRequest performs one authenticated HTTP round-trip and returns the raw
// body. Failures are categorized; no retries here, retry policy belongs to
// the caller.
func (c *Client) doRequest(ctx context.Context, op, method, path string, query url.Values, reqBody any) ([]byte, error) {
	sess, err := c.session(op)
	if err != nil {
		return nil, err
	}

	reqURL := sess.baseURL + path
	if query != nil {
		reqURL = fmt.Sprintf("%s?%s", reqURL, query.Encode())
	}

	var bodyReader io.Reader
	if reqBody != nil {
		data, err := json.Marshal(reqBody)
		if err != nil {
			return nil, &domain.APIError{Kind: domain.KindDeserialize, Op: op, Err: err}
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, bodyReader)
	if err != nil {
		return nil, &domain.APIError{Kind: domain.KindTransport, Op: op, Err: err}
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Emby-Token", sess.token)
	req.Header.Set("X-Emby-Authorization", buildAuthHeader(sess.token, sess.deviceID))
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.logger.Debug("jellyfin request", "method", method, "url", reqURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("jellyfin request failed", "op", op, "error", err)
		return nil, &domain.APIError{Kind: domain.KindTransport, Op: op, Err: err}
	}

	respBody, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return nil, &domain.APIError{Kind: domain.KindTransport, Op: op, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Error("jellyfin request error", "op", op, "status", resp.StatusCode)
		apiErr := &domain.APIError{Kind: domain.KindServer, Op: op, Status: resp.StatusCode}
		switch resp.StatusCode {
		case http.StatusUnauthorized:
			apiErr.Err = domain.ErrAuthFailed
		case http.StatusNotFound:
			apiErr.Err = domain.ErrItemNotFound
		}
		return nil, apiErr
	}

	return respBody, nil
}

// decode unmarshals a response body, categorizing failures
func (c *Client) decode(op string, body []byte, dest any) error {
	if err := json.Unmarshal(body, dest); err != nil {
		c.logger.Error("jellyfin response parse failed", "op", op, "error", err)
		return &domain.APIError{Kind: domain.KindDeserialize, Op: op, Err: err}
	}
	return nil
}

// getItems performs a GET expected to return an ItemsResponse
func (c *Client) getItems(ctx context.Context, op, path string, query url.Values) (*ItemsResponse, error) {
	body, err := c.doRequest(ctx, op, http.MethodGet, path, query, nil)
	if err != nil {
		return nil, err
	}
	var resp ItemsResponse
	if err := c.decode(op, body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// getItemList performs a GET expected to return a bare item array
// (/Items/Latest and a few other endpoints skip the paging envelope)
func (c *Client) getItemList(ctx context.Context, op, path string, query url.Values) ([]Item, error) {
	body, err := c.doRequest(ctx, op, http.MethodGet, path, query, nil)
	if err != nil {
		return nil, err
	}
	var items []Item
	if err := c.decode(op, body, &items); err != nil {
		return nil, err
	}
	return items, nil
}

const itemFields = "Overview,SortName,DateCreated,Genres"

// GetLibraries returns all available libraries (Views)
func (c *Client) GetLibraries(ctx context.Context) ([]domain.Library, error) {
	sess, err := c.session("GetLibraries")
	if err != nil {
		return nil, err
	}
	resp, err := c.getItems(ctx, "GetLibraries", fmt.Sprintf("/Users/%s/Views", sess.userID), nil)
	if err != nil {
		return nil, err
	}
	return mapLibraries(resp.Items), nil
}

// GetItem returns detailed metadata for a specific item
func (c *Client) GetItem(ctx context.Context, itemID string) (*domain.MediaItem, error) {
	const op = "GetItem"
	sess, err := c.session(op)
	if err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("Fields", itemFields)

	body, err := c.doRequest(ctx, op, http.MethodGet, fmt.Sprintf("/Users/%s/Items/%s", sess.userID, itemID), query, nil)
	if err != nil {
		return nil, err
	}

	var item Item
	if err := c.decode(op, body, &item); err != nil {
		return nil, err
	}

	mi := mapItem(item)
	if mi == nil {
		return nil, domain.ErrItemNotFound
	}
	return mi, nil
}

// GetResumeItems returns the user's continue-watching entries
func (c *Client) GetResumeItems(ctx context.Context, limit int) ([]*domain.MediaItem, error) {
	const op = "GetResumeItems"
	sess, err := c.session(op)
	if err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("Fields", itemFields)
	query.Set("MediaTypes", "Video")
	if limit > 0 {
		query.Set("Limit", strconv.Itoa(limit))
	}

	resp, err := c.getItems(ctx, op, fmt.Sprintf("/Users/%s/Items/Resume", sess.userID), query)
	if err != nil {
		return nil, err
	}
	return mapItems(resp.Items), nil
}

// GetNextUp returns next-episode-to-watch recommendations
func (c *Client) GetNextUp(ctx context.Context, seriesID string, limit int) ([]*domain.MediaItem, error) {
	const op = "GetNextUp"
	sess, err := c.session(op)
	if err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("UserId", sess.userID)
	query.Set("Fields", itemFields)
	if seriesID != "" {
		query.Set("SeriesId", seriesID)
	}
	if limit > 0 {
		query.Set("Limit", strconv.Itoa(limit))
	}

	resp, err := c.getItems(ctx, op, "/Shows/NextUp", query)
	if err != nil {
		return nil, err
	}
	return mapItems(resp.Items), nil
}

// GetLatest returns the most recently added items of the given kind
func (c *Client) GetLatest(ctx context.Context, kind domain.LatestKind, libraryID string, limit int) ([]*domain.MediaItem, error) {
	const op = "GetLatest"
	sess, err := c.session(op)
	if err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("Fields", itemFields)
	switch kind {
	case domain.LatestSeries:
		query.Set("IncludeItemTypes", "Series")
	case domain.LatestEpisodes:
		query.Set("IncludeItemTypes", "Episode")
	default:
		query.Set("IncludeItemTypes", "Movie")
	}
	if libraryID != "" {
		query.Set("ParentId", libraryID)
	}
	if limit > 0 {
		query.Set("Limit", strconv.Itoa(limit))
	}

	items, err := c.getItemList(ctx, op, fmt.Sprintf("/Users/%s/Items/Latest", sess.userID), query)
	if err != nil {
		return nil, err
	}
	return mapItems(items), nil
}

// GetGenres returns the genres present in a library
func (c *Client) GetGenres(ctx context.Context, libraryID string) ([]domain.Genre, error) {
	const op = "GetGenres"
	sess, err := c.session(op)
	if err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("UserId", sess.userID)
	if libraryID != "" {
		query.Set("ParentId", libraryID)
	}

	resp, err := c.getItems(ctx, op, "/Genres", query)
	if err != nil {
		return nil, err
	}
	return mapGenres(resp.Items), nil
}

// GetGenreItems returns paginated items tagged with a genre
func (c *Client) GetGenreItems(ctx context.Context, genreID, libraryID string, start, limit int) ([]*domain.MediaItem, error) {
	const op = "GetGenreItems"
	sess, err := c.session(op)
	if err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("GenreIds", genreID)
	query.Set("IncludeItemTypes", "Movie,Series")
	query.Set("Recursive", "true")
	query.Set("Fields", itemFields)
	query.Set("StartIndex", strconv.Itoa(start))
	if libraryID != "" {
		query.Set("ParentId", libraryID)
	}
	if limit > 0 {
		query.Set("Limit", strconv.Itoa(limit))
	}

	resp, err := c.getItems(ctx, op, fmt.Sprintf("/Users/%s/Items", sess.userID), query)
	if err != nil {
		return nil, err
	}
	return mapItems(resp.Items), nil
}

// GetCollections returns the user's collections (box sets)
func (c *Client) GetCollections(ctx context.Context) ([]*domain.MediaItem, error) {
	const op = "GetCollections"
	sess, err := c.session(op)
	if err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("IncludeItemTypes", "BoxSet")
	query.Set("Recursive", "true")
	query.Set("Fields", itemFields)

	resp, err := c.getItems(ctx, op, fmt.Sprintf("/Users/%s/Items", sess.userID), query)
	if err != nil {
		return nil, err
	}
	return mapItems(resp.Items), nil
}

// GetFavorites returns paginated favorite items
func (c *Client) GetFavorites(ctx context.Context, start, limit int) ([]*domain.MediaItem, error) {
	const op = "GetFavorites"
	sess, err := c.session(op)
	if err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("Filters", "IsFavorite")
	query.Set("Recursive", "true")
	query.Set("Fields", itemFields)
	query.Set("StartIndex", strconv.Itoa(start))
	if limit > 0 {
		query.Set("Limit", strconv.Itoa(limit))
	}

	resp, err := c.getItems(ctx, op, fmt.Sprintf("/Users/%s/Items", sess.userID), query)
	if err != nil {
		return nil, err
	}
	return mapItems(resp.Items), nil
}

// GetSeasons returns all seasons for a TV series
func (c *Client) GetSeasons(ctx context.Context, seriesID string) ([]*domain.Season, error) {
	const op = "GetSeasons"
	sess, err := c.session(op)
	if err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("UserId", sess.userID)

	resp, err := c.getItems(ctx, op, fmt.Sprintf("/Shows/%s/Seasons", seriesID), query)
	if err != nil {
		return nil, err
	}
	return mapSeasons(resp.Items), nil
}

// GetEpisodes returns all episodes for a season. The episodes endpoint is
// keyed by series, so the season is fetched first to resolve its parent.
func (c *Client) GetEpisodes(ctx context.Context, seasonID string) ([]*domain.MediaItem, error) {
	const op = "GetEpisodes"
	sess, err := c.session(op)
	if err != nil {
		return nil, err
	}

	seasonBody, err := c.doRequest(ctx, op, http.MethodGet, fmt.Sprintf("/Users/%s/Items/%s", sess.userID, seasonID), nil, nil)
	if err != nil {
		return nil, err
	}
	var season Item
	if err := c.decode(op, seasonBody, &season); err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("SeasonId", seasonID)
	query.Set("UserId", sess.userID)
	query.Set("Fields", itemFields)

	resp, err := c.getItems(ctx, op, fmt.Sprintf("/Shows/%s/Episodes", season.SeriesID), query)
	if err != nil {
		return nil, err
	}
	return mapItems(resp.Items), nil
}

// Search performs a server-side search across all libraries
func (c *Client) Search(ctx context.Context, term string, limit int) ([]*domain.MediaItem, error) {
	const op = "Search"

	query := url.Values{}
	query.Set("searchTerm", term)
	query.Set("IncludeItemTypes", "Movie,Series,Episode")
	if limit > 0 {
		query.Set("Limit", strconv.Itoa(limit))
	}

	body, err := c.doRequest(ctx, op, http.MethodGet, "/Search/Hints", query, nil)
	if err != nil {
		return nil, err
	}

	var resp SearchHintsResponse
	if err := c.decode(op, body, &resp); err != nil {
		return nil, err
	}
	return mapSearchHints(resp.SearchHints), nil
}

// GetSimilar returns items similar to the given item
func (c *Client) GetSimilar(ctx context.Context, itemID string, limit int) ([]*domain.MediaItem, error) {
	const op = "GetSimilar"
	sess, err := c.session(op)
	if err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("UserId", sess.userID)
	query.Set("Fields", itemFields)
	if limit > 0 {
		query.Set("Limit", strconv.Itoa(limit))
	}

	resp, err := c.getItems(ctx, op, fmt.Sprintf("/Items/%s/Similar", itemID), query)
	if err != nil {
		return nil, err
	}
	return mapItems(resp.Items), nil
}

// GetPersonItems returns items featuring a person (actor, director, ...)
func (c *Client) GetPersonItems(ctx context.Context, personID string, limit int) ([]*domain.MediaItem, error) {
	const op = "GetPersonItems"
	sess, err := c.session(op)
	if err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("PersonIds", personID)
	query.Set("IncludeItemTypes", "Movie,Series")
	query.Set("Recursive", "true")
	query.Set("Fields", itemFields)
	if limit > 0 {
		query.Set("Limit", strconv.Itoa(limit))
	}

	resp, err := c.getItems(ctx, op, fmt.Sprintf("/Users/%s/Items", sess.userID), query)
	if err != nil {
		return nil, err
	}
	return mapItems(resp.Items), nil
}

// GetSpecialFeatures returns extras attached to an item
func (c *Client) GetSpecialFeatures(ctx context.Context, itemID string) ([]*domain.MediaItem, error) {
	const op = "GetSpecialFeatures"
	sess, err := c.session(op)
	if err != nil {
		return nil, err
	}

	items, err := c.getItemList(ctx, op, fmt.Sprintf("/Users/%s/Items/%s/SpecialFeatures", sess.userID, itemID), nil)
	if err != nil {
		return nil, err
	}
	return mapItems(items), nil
}

// GetAncestors returns the containing folders of an item, nearest first
func (c *Client) GetAncestors(ctx context.Context, itemID string) ([]domain.Ancestor, error) {
	const op = "GetAncestors"
	sess, err := c.session(op)
	if err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("UserId", sess.userID)

	items, err := c.getItemList(ctx, op, fmt.Sprintf("/Items/%s/Ancestors", itemID), query)
	if err != nil {
		return nil, err
	}
	return mapAncestors(items), nil
}

// GetSuggestions returns server-computed viewing suggestions
func (c *Client) GetSuggestions(ctx context.Context, limit int) ([]*domain.MediaItem, error) {
	const op = "GetSuggestions"
	sess, err := c.session(op)
	if err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("Fields", itemFields)
	if limit > 0 {
		query.Set("Limit", strconv.Itoa(limit))
	}

	resp, err := c.getItems(ctx, op, fmt.Sprintf("/Users/%s/Suggestions", sess.userID), query)
	if err != nil {
		return nil, err
	}
	return mapItems(resp.Items), nil
}

// SetFavorite marks or unmarks an item as favorite
func (c *Client) SetFavorite(ctx context.Context, itemID string, favorite bool) error {
	const op = "SetFavorite"
	sess, err := c.session(op)
	if err != nil {
		return err
	}

	method := http.MethodPost
	if !favorite {
		method = http.MethodDelete
	}
	_, err = c.doRequest(ctx, op, method, fmt.Sprintf("/Users/%s/FavoriteItems/%s", sess.userID, itemID), nil, nil)
	return err
}

// MarkPlayed marks an item as fully watched
func (c *Client) MarkPlayed(ctx context.Context, itemID string) error {
	const op = "MarkPlayed"
	sess, err := c.session(op)
	if err != nil {
		return err
	}
	_, err = c.doRequest(ctx, op, http.MethodPost, fmt.Sprintf("/Users/%s/PlayedItems/%s", sess.userID, itemID), nil, nil)
	return err
}

// MarkUnplayed marks an item as unwatched
func (c *Client) MarkUnplayed(ctx context.Context, itemID string) error {
	const op = "MarkUnplayed"
	sess, err := c.session(op)
	if err != nil {
		return err
	}
	_, err = c.doRequest(ctx, op, http.MethodDelete, fmt.Sprintf("/Users/%s/PlayedItems/%s", sess.userID, itemID), nil, nil)
	return err
}

// ReportPlaybackStart informs the server playback began
func (c *Client) ReportPlaybackStart(ctx context.Context, itemID string, positionTicks int64) error {
	const op = "ReportPlaybackStart"
	body := playbackStartRequest{
		ItemID:        itemID,
		PositionTicks: positionTicks,
		CanSeek:       true,
		PlayMethod:    "DirectStream",
	}
	_, err := c.doRequest(ctx, op, http.MethodPost, "/Sessions/Playing", nil, body)
	return err
}

// ReportPlaybackProgress informs the server of the current position
func (c *Client) ReportPlaybackProgress(ctx context.Context, itemID string, positionTicks int64, paused bool) error {
	const op = "ReportPlaybackProgress"
	body := playbackProgressRequest{
		ItemID:        itemID,
		PositionTicks: positionTicks,
		IsPaused:      paused,
		PlayMethod:    "DirectStream",
	}
	_, err := c.doRequest(ctx, op, http.MethodPost, "/Sessions/Playing/Progress", nil, body)
	return err
}

// ReportPlaybackStopped informs the server playback ended
func (c *Client) ReportPlaybackStopped(ctx context.Context, itemID string, positionTicks int64) error {
	const op = "ReportPlaybackStopped"
	body := playbackStoppedRequest{
		ItemID:        itemID,
		PositionTicks: positionTicks,
	}
	_, err := c.doRequest(ctx, op, http.MethodPost, "/Sessions/Playing/Stopped", nil, body)
	return err
}
