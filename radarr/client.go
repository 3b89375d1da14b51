package radarr

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"golift.io/starr"
	"golift.io/starr/radarr"

	"github.com/s0up4200/arrcore/client"
	"github.com/s0up4200/arrcore/domain"
)

// ErrTagNotFound is returned when no tag has the requested label.
var ErrTagNotFound = errors.New("tag not found")

const defaultCacheTTL = 5 * time.Minute

// Config locates a Radarr instance.
type Config struct {
	URL     string        `mapstructure:"url" validate:"required,url"`
	APIKey  string        `mapstructure:"api_key" validate:"required"`
	Timeout time.Duration `mapstructure:"timeout"`
}

var validate = validator.New()

func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", client.ErrInvalidConfig, err)
	}
	return nil
}

// Client wraps the starr Radarr client and maps its movies to domain.Movie.
type Client struct {
	api    RadarrAPI
	logger zerolog.Logger

	mu       sync.Mutex
	tags     []*starr.Tag
	profiles map[int64]string
	cachedAt time.Time
	cacheTTL time.Duration
}

// NewClient creates a Radarr client. It does not contact the server; call
// TestConnection for that.
func NewClient(cfg Config, logger zerolog.Logger) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = client.DefaultTimeout
	}
	return NewClientWithAPI(radarr.New(starr.New(cfg.APIKey, strings.TrimRight(cfg.URL, "/"), timeout)), logger), nil
}

// NewClientWithAPI wraps an existing API implementation.
func NewClientWithAPI(api RadarrAPI, logger zerolog.Logger) *Client {
	return &Client{
		api:      api,
		logger:   logger.With().Str("service", "radarr").Logger(),
		cacheTTL: defaultCacheTTL,
	}
}

// TestConnection fetches the system status and returns the version.
func (c *Client) TestConnection(ctx context.Context) (string, error) {
	st, err := c.api.GetSystemStatusContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to connect to Radarr: %w", err)
	}
	return st.Version, nil
}

// Movies returns the whole library as domain movies.
func (c *Client) Movies(ctx context.Context) ([]domain.Movie, error) {
	var (
		movies   []*radarr.Movie
		profiles map[int64]string
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		movies, err = c.api.GetMovieContext(gctx, &radarr.GetMovie{})
		if err != nil {
			return fmt.Errorf("failed to get movies: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		profiles, err = c.qualityProfiles(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	c.logger.Debug().Int("count", len(movies)).Msg("retrieved movies")

	out := make([]domain.Movie, 0, len(movies))
	for _, m := range movies {
		if m == nil {
			continue
		}
		out = append(out, ToDomain(m, profiles))
	}
	return out, nil
}

// Movie returns one movie by id.
func (c *Client) Movie(ctx context.Context, movieID int64) (domain.Movie, error) {
	m, err := c.api.GetMovieByIDContext(ctx, movieID)
	if err != nil {
		return domain.Movie{}, fmt.Errorf("failed to get movie %d: %w", movieID, err)
	}
	if m == nil {
		return domain.Movie{}, fmt.Errorf("movie %d: %w", movieID, client.ErrNotFound)
	}
	profiles, err := c.qualityProfiles(ctx)
	if err != nil {
		return domain.Movie{}, err
	}
	return ToDomain(m, profiles), nil
}

// MoviesWithTag returns the movies carrying the tag labelled tagName.
func (c *Client) MoviesWithTag(ctx context.Context, tagName string) ([]domain.Movie, error) {
	tag, err := c.TagByName(ctx, tagName)
	if err != nil {
		return nil, err
	}

	movies, err := c.api.GetMovieContext(ctx, &radarr.GetMovie{})
	if err != nil {
		return nil, fmt.Errorf("failed to get movies: %w", err)
	}
	profiles, err := c.qualityProfiles(ctx)
	if err != nil {
		return nil, err
	}

	var out []domain.Movie
	for _, m := range movies {
		if m != nil && hasTag(m.Tags, tag.ID) {
			out = append(out, ToDomain(m, profiles))
		}
	}
	return out, nil
}

// Tags returns all tags, cached for the client's cache TTL.
func (c *Client) Tags(ctx context.Context) ([]*starr.Tag, error) {
	c.mu.Lock()
	if c.tags != nil && time.Since(c.cachedAt) < c.cacheTTL {
		tags := c.tags
		c.mu.Unlock()
		return tags, nil
	}
	c.mu.Unlock()

	tags, err := c.api.GetTagsContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get tags: %w", err)
	}

	c.mu.Lock()
	c.tags = tags
	c.cachedAt = time.Now()
	c.mu.Unlock()

	c.logger.Debug().Int("count", len(tags)).Msg("retrieved tags")
	return tags, nil
}

// TagByName finds a tag by its label, ignoring case.
func (c *Client) TagByName(ctx context.Context, tagName string) (*starr.Tag, error) {
	tags, err := c.Tags(ctx)
	if err != nil {
		return nil, err
	}
	for _, tag := range tags {
		if strings.EqualFold(tag.Label, tagName) {
			return tag, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrTagNotFound, tagName)
}

// DeleteMovie removes a movie from Radarr.
func (c *Client) DeleteMovie(ctx context.Context, movieID int64, deleteFiles bool) error {
	if err := c.api.DeleteMovieContext(ctx, movieID, deleteFiles, false); err != nil {
		return fmt.Errorf("failed to delete movie ID %d: %w", movieID, err)
	}

	c.logger.Info().Int64("movie_id", movieID).Bool("delete_files", deleteFiles).
		Msg("deleted movie")
	return nil
}

// SendCommand queues a Radarr command.
func (c *Client) SendCommand(ctx context.Context, cmd *radarr.CommandRequest) (*radarr.CommandResponse, error) {
	resp, err := c.api.SendCommandContext(ctx, cmd)
	if err != nil {
		return nil, fmt.Errorf("failed to send command %s: %w", cmd.Name, err)
	}
	return resp, nil
}

func (c *Client) qualityProfiles(ctx context.Context) (map[int64]string, error) {
	c.mu.Lock()
	if c.profiles != nil {
		p := c.profiles
		c.mu.Unlock()
		return p, nil
	}
	c.mu.Unlock()

	list, err := c.api.GetQualityProfilesContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get quality profiles: %w", err)
	}
	profiles := make(map[int64]string, len(list))
	for _, p := range list {
		if p != nil {
			profiles[p.ID] = p.Name
		}
	}

	c.mu.Lock()
	c.profiles = profiles
	c.mu.Unlock()
	return profiles, nil
}

func hasTag(tags []int, id int) bool {
	for _, t := range tags {
		if t == id {
			return true
		}
	}
	return false
}
