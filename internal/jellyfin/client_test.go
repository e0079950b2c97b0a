package jellyfin

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theimmortal68/MyFlix-sub006/internal/domain"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewClient(nil)
	c.Configure(srv.URL, "test-token", "user1", "device1")
	return c, srv
}

func TestClientUnauthenticated(t *testing.T) {
	c := NewClient(nil)

	assert.False(t, c.IsAuthenticated())

	_, err := c.GetLibraries(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotAuthenticated)

	kind, ok := domain.ErrorKindOf(err)
	require.True(t, ok)
	assert.Equal(t, domain.KindUnauthenticated, kind)
}

func TestClientConfigureLogout(t *testing.T) {
	c := NewClient(nil)
	c.Configure("http://srv/", "t1", "u1", "d1")

	assert.True(t, c.IsAuthenticated())
	serverURL, token, deviceID := c.Session()
	assert.Equal(t, "http://srv", serverURL, "trailing slash trimmed")
	assert.Equal(t, "t1", token)
	assert.Equal(t, "d1", deviceID)

	c.Logout()
	assert.False(t, c.IsAuthenticated())
}

func TestClientAuthHeaders(t *testing.T) {
	var gotToken, gotAuth string
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotToken = r.Header.Get("X-Emby-Token")
		gotAuth = r.Header.Get("X-Emby-Authorization")
		w.Write([]byte(`{"Items":[],"TotalRecordCount":0}`))
	}))

	_, err := c.GetLibraries(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "test-token", gotToken)
	assert.Contains(t, gotAuth, `Token="test-token"`)
	assert.Contains(t, gotAuth, `DeviceId="device1"`)
}

func TestClientGetLibraries(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/Users/user1/Views", r.URL.Path)
		w.Write([]byte(`{"Items":[
			{"Id":"lib1","Name":"Movies","CollectionType":"movies","ChildCount":10},
			{"Id":"lib2","Name":"Shows","CollectionType":"tvshows"},
			{"Id":"lib3","Name":"Music","CollectionType":"music"}
		],"TotalRecordCount":3}`))
	}))

	libs, err := c.GetLibraries(context.Background())
	require.NoError(t, err)
	require.Len(t, libs, 2, "music library filtered out")
	assert.Equal(t, "Movies", libs[0].Title)
	assert.Equal(t, 10, libs[0].ItemCount)
}

func TestClientGetResumeItems(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/Users/user1/Items/Resume", r.URL.Path)
		assert.Equal(t, "20", r.URL.Query().Get("Limit"))
		w.Write([]byte(`{"Items":[
			{"Id":"ep1","Name":"Pilot","Type":"Episode","SeriesId":"s1","SeriesName":"Some Show",
			 "ParentIndexNumber":1,"IndexNumber":1,"RunTimeTicks":18000000000,
			 "UserData":{"PlaybackPositionTicks":6000000000,"Played":false}}
		],"TotalRecordCount":1}`))
	}))

	items, err := c.GetResumeItems(context.Background(), 20)
	require.NoError(t, err)
	require.Len(t, items, 1)

	ep := items[0]
	assert.Equal(t, domain.MediaTypeEpisode, ep.Type)
	assert.Equal(t, "S01E01", ep.EpisodeCode())
	assert.True(t, ep.ShouldResume())
	assert.Equal(t, domain.WatchStatusInProgress, ep.WatchStatus())
}

func TestClientGetLatestKinds(t *testing.T) {
	var gotTypes []string
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotTypes = append(gotTypes, r.URL.Query().Get("IncludeItemTypes"))
		w.Write([]byte(`[]`))
	}))

	ctx := context.Background()
	for _, kind := range []domain.LatestKind{domain.LatestMovies, domain.LatestSeries, domain.LatestEpisodes} {
		_, err := c.GetLatest(ctx, kind, "lib1", 10)
		require.NoError(t, err)
	}
	assert.Equal(t, []string{"Movie", "Series", "Episode"}, gotTypes)
}

func TestClientServerError(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))

	_, err := c.GetLibraries(context.Background())
	require.Error(t, err)

	var apiErr *domain.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, domain.KindServer, apiErr.Kind)
	assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
	assert.False(t, apiErr.IsRetryable())
}

func TestClientUnauthorizedMapsToAuthFailed(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusUnauthorized)
	}))

	_, err := c.GetItem(context.Background(), "x")
	assert.ErrorIs(t, err, domain.ErrAuthFailed)
}

func TestClientNotFoundMapsToItemNotFound(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "missing", http.StatusNotFound)
	}))

	_, err := c.GetItem(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
}

func TestClientDeserializeError(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"Items": not json`))
	}))

	_, err := c.GetLibraries(context.Background())
	require.Error(t, err)

	kind, ok := domain.ErrorKindOf(err)
	require.True(t, ok)
	assert.Equal(t, domain.KindDeserialize, kind)
}

func TestClientTransportError(t *testing.T) {
	c := NewClient(nil)
	// Port 1 is never listening
	c.Configure("http://127.0.0.1:1", "t", "u", "d")

	_, err := c.GetLibraries(context.Background())
	require.Error(t, err)

	var apiErr *domain.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, domain.KindTransport, apiErr.Kind)
	assert.True(t, apiErr.IsRetryable())
}

func TestClientGetEpisodesResolvesSeries(t *testing.T) {
	var paths []string
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		switch r.URL.Path {
		case "/Users/user1/Items/season1":
			w.Write([]byte(`{"Id":"season1","Type":"Season","SeriesId":"series9"}`))
		case "/Shows/series9/Episodes":
			assert.Equal(t, "season1", r.URL.Query().Get("SeasonId"))
			w.Write([]byte(`{"Items":[{"Id":"ep1","Name":"One","Type":"Episode"}],"TotalRecordCount":1}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))

	eps, err := c.GetEpisodes(context.Background(), "season1")
	require.NoError(t, err)
	require.Len(t, eps, 1)
	assert.Equal(t, []string{"/Users/user1/Items/season1", "/Shows/series9/Episodes"}, paths)
}

func TestClientSetFavoriteMethods(t *testing.T) {
	var methods []string
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		methods = append(methods, r.Method)
		assert.Equal(t, "/Users/user1/FavoriteItems/item1", r.URL.Path)
		w.Write([]byte(`{}`))
	}))

	ctx := context.Background()
	require.NoError(t, c.SetFavorite(ctx, "item1", true))
	require.NoError(t, c.SetFavorite(ctx, "item1", false))
	assert.Equal(t, []string{http.MethodPost, http.MethodDelete}, methods)
}

func TestClientPlaybackReports(t *testing.T) {
	var paths []string
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.WriteHeader(http.StatusNoContent)
	}))

	ctx := context.Background()
	require.NoError(t, c.ReportPlaybackStart(ctx, "item1", 0))
	require.NoError(t, c.ReportPlaybackProgress(ctx, "item1", 1200000000, false))
	require.NoError(t, c.ReportPlaybackStopped(ctx, "item1", 2400000000))
	assert.Equal(t, []string{
		"/Sessions/Playing",
		"/Sessions/Playing/Progress",
		"/Sessions/Playing/Stopped",
	}, paths)
}
