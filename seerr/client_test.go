package seerr

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/arrcore/arr"
	"github.com/s0up4200/arrcore/arrtest"
	"github.com/s0up4200/arrcore/client"
	"github.com/s0up4200/arrcore/endpoint"
	"github.com/s0up4200/arrcore/status"
)

func newHTTPClient(t *testing.T, service arr.Service, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg, err := client.ConfigFromURL(service, server.URL, "test-key")
	require.NoError(t, err)
	rest, err := client.New(cfg, client.WithLogger(zerolog.Nop()))
	require.NoError(t, err)

	c, err := New(rest, service, zerolog.Nop())
	require.NoError(t, err)
	return c
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		service arr.Service
		wantErr bool
	}{
		{name: "jellyseerr", service: arr.Jellyseerr},
		{name: "overseerr", service: arr.Overseerr},
		{name: "radarr is rejected", service: arr.Radarr, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(arrtest.NewFakeClient(), tt.service, zerolog.Nop(), WithPageSize(50))
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnsupportedService)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 50, c.pageSize)
			assert.Equal(t, tt.service, c.Service())
		})
	}
}

func TestTestConnection(t *testing.T) {
	c := newHTTPClient(t, arr.Overseerr, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/auth/me", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("X-Api-Key"))
		json.NewEncoder(w).Encode(map[string]any{"id": 1, "displayName": "Test User"})
	})

	require.NoError(t, c.TestConnection(context.Background()))

	me, err := c.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Test User", me.Name())
}

func TestTestConnectionUnauthorized(t *testing.T) {
	c := newHTTPClient(t, arr.Jellyseerr, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	err := c.TestConnection(context.Background())
	require.Error(t, err)
	assert.True(t, client.IsUnauthorized(err))
	assert.Contains(t, err.Error(), "Jellyseerr")
}

func TestAllPaginates(t *testing.T) {
	var skips []string
	c := newHTTPClient(t, arr.Jellyseerr, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/request", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("take"))
		assert.Equal(t, "all", r.URL.Query().Get("filter"))
		skips = append(skips, r.URL.Query().Get("skip"))

		skip, _ := strconv.Atoi(r.URL.Query().Get("skip"))
		page := skip/2 + 1
		results := []map[string]any{}
		for i := skip; i < min(skip+2, 3); i++ {
			results = append(results, map[string]any{
				"id": i + 1, "status": 1, "type": "movie",
				"media": map[string]any{"id": 10 + i, "tmdbId": 100 + i},
			})
		}
		json.NewEncoder(w).Encode(map[string]any{
			"pageInfo": map[string]any{"page": page, "pages": 2, "pageSize": 2, "results": 3},
			"results":  results,
		})
	})
	c.pageSize = 2

	all, err := c.All(context.Background(), "")
	require.NoError(t, err)

	assert.Len(t, all, 3)
	assert.Equal(t, []string{"", "2"}, skips)
}

func TestPageDefaultsTake(t *testing.T) {
	fake := arrtest.NewFakeClient()
	c, err := New(fake, arr.Jellyseerr, zerolog.Nop())
	require.NoError(t, err)

	resp, err := c.Page(context.Background(), endpoint.Offset{Filter: FilterPending})
	require.NoError(t, err)

	assert.Empty(t, resp.Results)
	assert.False(t, resp.HasMorePages())
	fake.AssertCalledWith(t, endpoint.SeerrRequest, endpoint.Params{"take": 20, "filter": "pending"})
}

func TestModerate(t *testing.T) {
	fake := arrtest.NewFakeClient()
	fake.SetResponse(endpoint.SeerrRequestAction, map[string]any{"id": 5, "status": 2})
	c, err := New(fake, arr.Overseerr, zerolog.Nop())
	require.NoError(t, err)

	req, err := c.Approve(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, status.JellyseerrRequestApproved, req.Status)

	_, err = c.Decline(context.Background(), 6)
	require.NoError(t, err)

	calls := fake.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, "request/5/approve", calls[0].Path)
	assert.Equal(t, "request/6/decline", calls[1].Path)
	fake.AssertCalledWithMethod(t, "POST", endpoint.SeerrRequestAction)
}

func TestMovieRequestsByTMDBID(t *testing.T) {
	fake := arrtest.NewFakeClient()
	fake.SetResponse(endpoint.SeerrRequest, map[string]any{
		"pageInfo": map[string]any{"page": 1, "pages": 1},
		"results": []map[string]any{
			{"id": 1, "type": "movie", "media": map[string]any{"tmdbId": 603}},
			{"id": 2, "type": "tv", "media": map[string]any{"tmdbId": 603}},
			{"id": 3, "type": "movie", "media": map[string]any{"tmdbId": 604}},
		},
	})
	c, err := New(fake, arr.Jellyseerr, zerolog.Nop())
	require.NoError(t, err)

	got, err := c.MovieRequestsByTMDBID(context.Background(), 603)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].ID)
}

func TestRequestsMapToDomain(t *testing.T) {
	fake := arrtest.NewFakeClient()
	fake.SetResponse(endpoint.SeerrRequest, map[string]any{
		"pageInfo": map[string]any{"page": 1, "pages": 1},
		"results": []map[string]any{
			{
				"id": 7, "status": 4, "type": "tv",
				"createdAt":   "2024-01-01T12:00:00Z",
				"requestedBy": map[string]any{"email": "a@example.com", "username": "alice"},
				"media":       map[string]any{"id": 70, "tmdbId": 1399, "tvdbId": 121361, "status": 4},
			},
			{"id": 8, "status": 99, "type": "movie", "media": map[string]any{"tmdbId": 27205}},
		},
	})
	c, err := New(fake, arr.Jellyseerr, zerolog.Nop())
	require.NoError(t, err)

	reqs, err := c.Requests(context.Background(), FilterAll)
	require.NoError(t, err)
	require.Len(t, reqs, 2)

	tv := reqs[0]
	assert.Equal(t, status.RequestFulfilled, tv.Status)
	assert.Equal(t, arr.MediaSeries, tv.MediaType)
	assert.Equal(t, arr.Jellyseerr, tv.Source)
	assert.Equal(t, "alice", tv.RequestedBy)
	assert.Equal(t, "tvdb:121361", tv.Title)
	require.NotNil(t, tv.MediaID)
	assert.Equal(t, "70", tv.MediaID.String())
	require.NotNil(t, tv.ExternalID)
	assert.Equal(t, "1399", tv.ExternalID.String())
	require.NotNil(t, tv.RequestedAt)
	assert.Nil(t, tv.UpdatedAt)

	movie := reqs[1]
	assert.Equal(t, status.RequestPending, movie.Status)
	assert.True(t, movie.NeedsAction())
	assert.Nil(t, movie.MediaID)
}

func TestStatusHelpers(t *testing.T) {
	for code := 0; code <= 10; code++ {
		assert.Equal(t,
			RequestStatus(arr.Jellyseerr, status.JellyseerrRequest(code)),
			RequestStatus(arr.Overseerr, status.JellyseerrRequest(code)))
		assert.Equal(t,
			MediaStatus(arr.Jellyseerr, status.JellyseerrMedia(code)),
			MediaStatus(arr.Overseerr, status.JellyseerrMedia(code)))
	}
	assert.Equal(t, status.MediaAvailable, MediaStatus(arr.Jellyseerr, 4))
}

func TestTypes(t *testing.T) {
	u := User{Email: "e@example.com", PlexUsername: "plex"}
	assert.Equal(t, "plex", u.Name())
	assert.Equal(t, "e@example.com", User{Email: "e@example.com"}.Name())

	approver := &User{DisplayName: "admin"}
	req := MediaRequest{Status: status.JellyseerrRequestApproved, ModifiedBy: approver}
	assert.Same(t, approver, req.Approver())
	req.Status = status.JellyseerrRequestPending
	assert.Nil(t, req.Approver())

	next, err := PageInfo{Page: 1, Pages: 2}.NextPage()
	require.NoError(t, err)
	assert.Equal(t, 2, next)
	_, err = PageInfo{Page: 2, Pages: 2}.NextPage()
	assert.ErrorIs(t, err, ErrNoMoreRequests)

	assert.Equal(t, arr.MediaMovie, MediaTypeMovie.Domain())
	assert.Equal(t, "tmdb:5", MediaRequest{Type: MediaTypeMovie, Media: Media{TmdbID: 5}}.Title())
}

func TestContextIsPassedThrough(t *testing.T) {
	c, err := New(arrtest.NewFakeClient(), arr.Jellyseerr, zerolog.Nop())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()
	<-ctx.Done()

	_, err = c.All(ctx, FilterAll)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
