package seerr

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/s0up4200/arrcore/arr"
	"github.com/s0up4200/arrcore/client"
	"github.com/s0up4200/arrcore/domain"
	"github.com/s0up4200/arrcore/endpoint"
	"github.com/s0up4200/arrcore/normalize"
	"github.com/s0up4200/arrcore/status"
	"github.com/s0up4200/arrcore/value"
)

const defaultFetchSize = 100

// Client talks to one Jellyseerr or Overseerr instance.
type Client struct {
	client   client.Requester
	service  arr.Service
	logger   zerolog.Logger
	pageSize int
}

// Option configures a Client.
type Option func(*Client)

// WithPageSize sets how many requests All fetches per round trip.
func WithPageSize(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.pageSize = n
		}
	}
}

// New wraps r for service. It does not contact the server; call
// TestConnection for that.
func New(r client.Requester, service arr.Service, logger zerolog.Logger, opts ...Option) (*Client, error) {
	if !service.IsRequestManager() {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedService, service)
	}
	c := &Client{
		client:   r,
		service:  service,
		logger:   logger.With().Str("service", service.String()).Logger(),
		pageSize: defaultFetchSize,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Client) Service() arr.Service { return c.service }

// TestConnection verifies the URL and API key via auth/me.
func (c *Client) TestConnection(ctx context.Context) error {
	if _, err := c.Me(ctx); err != nil {
		return fmt.Errorf("failed to connect to %s: %w", c.service.Label(), err)
	}
	return nil
}

// Me returns the user owning the API key.
func (c *Client) Me(ctx context.Context) (User, error) {
	var u User
	if err := c.client.Get(ctx, endpoint.SeerrAuthMe, nil, &u); err != nil {
		return User{}, err
	}
	return u, nil
}

func (c *Client) Status(ctx context.Context) (Status, error) {
	var st Status
	if err := c.client.Get(ctx, endpoint.SeerrStatus, nil, &st); err != nil {
		return Status{}, fmt.Errorf("failed to get status: %w", err)
	}
	return st, nil
}

// Page returns one page of requests. A zero Take means 20.
func (c *Client) Page(ctx context.Context, offset endpoint.Offset) (RequestsResponse, error) {
	if offset.Take <= 0 {
		offset = offset.WithTake(endpoint.DefaultSeerrTake)
	}

	var resp RequestsResponse
	if err := c.client.Get(ctx, endpoint.SeerrRequest, offset.Params(), &resp); err != nil {
		return RequestsResponse{}, fmt.Errorf("failed to get requests: %w", err)
	}
	return resp, nil
}

// All fetches every request matching filter ("" means all).
func (c *Client) All(ctx context.Context, filter string) ([]MediaRequest, error) {
	if filter == "" {
		filter = FilterAll
	}

	var all []MediaRequest
	offset := endpoint.Offset{Take: c.pageSize, Filter: filter}
	for {
		resp, err := c.Page(ctx, offset)
		if err != nil {
			return nil, err
		}
		all = append(all, resp.Results...)

		c.logger.Debug().
			Int("page", resp.PageInfo.Page).
			Int("count", len(resp.Results)).
			Int("total", len(all)).
			Msg("retrieved requests")

		if len(resp.Results) == 0 || !resp.HasMorePages() {
			return all, nil
		}
		offset = offset.WithSkip(offset.Skip + len(resp.Results))
	}
}

func (c *Client) Get(ctx context.Context, id int) (MediaRequest, error) {
	var req MediaRequest
	if err := c.client.Get(ctx, endpoint.SeerrRequestByID, endpoint.Params{"id": id}, &req); err != nil {
		return MediaRequest{}, fmt.Errorf("failed to get request %d: %w", id, err)
	}
	return req, nil
}

func (c *Client) Count(ctx context.Context) (RequestCount, error) {
	var rc RequestCount
	if err := c.client.Get(ctx, endpoint.SeerrRequestCount, nil, &rc); err != nil {
		return RequestCount{}, fmt.Errorf("failed to get request count: %w", err)
	}
	return rc, nil
}

func (c *Client) Approve(ctx context.Context, id int) (MediaRequest, error) {
	return c.moderate(ctx, id, "approve")
}

func (c *Client) Decline(ctx context.Context, id int) (MediaRequest, error) {
	return c.moderate(ctx, id, "decline")
}

func (c *Client) moderate(ctx context.Context, id int, action string) (MediaRequest, error) {
	var req MediaRequest
	params := endpoint.Params{"id": id, "status": action}
	if err := c.client.Post(ctx, endpoint.SeerrRequestAction, params, &req); err != nil {
		return MediaRequest{}, fmt.Errorf("failed to %s request %d: %w", action, id, err)
	}
	c.logger.Info().Int("request_id", id).Str("action", action).Msg("request moderated")
	return req, nil
}

// MovieRequestsByTMDBID filters the movie requests client-side; the API has
// no lookup by TMDB id.
func (c *Client) MovieRequestsByTMDBID(ctx context.Context, tmdbID int64) ([]MediaRequest, error) {
	all, err := c.All(ctx, FilterAll)
	if err != nil {
		return nil, err
	}

	var out []MediaRequest
	for _, r := range all {
		if r.IsMovieRequest() && int64(r.Media.TmdbID) == tmdbID {
			out = append(out, r)
		}
	}
	return out, nil
}

// Requests fetches every request matching filter as domain requests.
func (c *Client) Requests(ctx context.Context, filter string) ([]domain.MediaRequest, error) {
	all, err := c.All(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]domain.MediaRequest, 0, len(all))
	for _, r := range all {
		out = append(out, ToDomain(c.service, r))
	}
	return out, nil
}

// RequestStatus normalizes a native request code for service.
func RequestStatus(service arr.Service, code status.JellyseerrRequest) status.Request {
	if service == arr.Overseerr {
		return normalize.RequestFromOverseerr(int(code))
	}
	return normalize.RequestFromJellyseerr(int(code))
}

// MediaStatus normalizes a native media code for service.
func MediaStatus(service arr.Service, code status.JellyseerrMedia) status.Media {
	if service == arr.Overseerr {
		return normalize.MediaFromOverseerr(int(code))
	}
	return normalize.MediaFromJellyseerr(int(code))
}

// ToDomain converts an API request into a domain.MediaRequest.
func ToDomain(service arr.Service, r MediaRequest) domain.MediaRequest {
	out := domain.MediaRequest{
		ID:          value.IntID(int64(r.ID)),
		MediaType:   r.Type.Domain(),
		Title:       r.Title(),
		Status:      RequestStatus(service, r.Status),
		Source:      service,
		RequestedBy: r.RequestedBy.Name(),
	}
	if r.Media.ID > 0 {
		id := value.IntID(int64(r.Media.ID))
		out.MediaID = &id
	}
	if r.Media.TmdbID > 0 {
		id := value.IntID(int64(r.Media.TmdbID))
		out.ExternalID = &id
	}
	if !r.CreatedAt.IsZero() {
		ts := value.TimestampFrom(r.CreatedAt)
		out.RequestedAt = &ts
	}
	if !r.UpdatedAt.IsZero() {
		ts := value.TimestampFrom(r.UpdatedAt)
		out.UpdatedAt = &ts
	}
	return out
}
