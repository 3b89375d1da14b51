// Package sonarr maps the starr Sonarr client onto domain.Series.
package sonarr

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"golift.io/starr"
	"golift.io/starr/sonarr"

	"github.com/s0up4200/arrcore/arr"
	"github.com/s0up4200/arrcore/client"
	"github.com/s0up4200/arrcore/domain"
	"github.com/s0up4200/arrcore/normalize"
	"github.com/s0up4200/arrcore/value"
)

// SonarrAPI is the part of the starr Sonarr client used by Client.
type SonarrAPI interface {
	GetAllSeriesContext(ctx context.Context) ([]*sonarr.Series, error)
	GetSeriesByIDContext(ctx context.Context, seriesID int64) (*sonarr.Series, error)
	GetQualityProfilesContext(ctx context.Context) ([]*sonarr.QualityProfile, error)
	SendCommandContext(ctx context.Context, cmd *sonarr.CommandRequest) (*sonarr.CommandResponse, error)
	GetSystemStatusContext(ctx context.Context) (*sonarr.SystemStatus, error)
}

// Config locates a Sonarr instance.
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

// Client wraps the starr Sonarr client.
type Client struct {
	api    SonarrAPI
	logger zerolog.Logger

	mu       sync.Mutex
	profiles map[int64]string
}

// NewClient creates a Sonarr client without contacting the server.
func NewClient(cfg Config, logger zerolog.Logger) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = client.DefaultTimeout
	}
	return NewClientWithAPI(sonarr.New(starr.New(cfg.APIKey, strings.TrimRight(cfg.URL, "/"), timeout)), logger), nil
}

func NewClientWithAPI(api SonarrAPI, logger zerolog.Logger) *Client {
	return &Client{
		api:    api,
		logger: logger.With().Str("service", "sonarr").Logger(),
	}
}

// TestConnection fetches the system status and returns the version.
func (c *Client) TestConnection(ctx context.Context) (string, error) {
	st, err := c.api.GetSystemStatusContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to connect to Sonarr: %w", err)
	}
	return st.Version, nil
}

// Series returns the whole library.
func (c *Client) Series(ctx context.Context) ([]domain.Series, error) {
	list, err := c.api.GetAllSeriesContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get series: %w", err)
	}
	profiles, err := c.qualityProfiles(ctx)
	if err != nil {
		return nil, err
	}

	c.logger.Debug().Int("count", len(list)).Msg("retrieved series")

	out := make([]domain.Series, 0, len(list))
	for _, s := range list {
		if s != nil {
			out = append(out, ToDomain(s, profiles))
		}
	}
	return out, nil
}

// SeriesByID returns one series.
func (c *Client) SeriesByID(ctx context.Context, seriesID int64) (domain.Series, error) {
	s, err := c.api.GetSeriesByIDContext(ctx, seriesID)
	if err != nil {
		return domain.Series{}, fmt.Errorf("failed to get series %d: %w", seriesID, err)
	}
	if s == nil {
		return domain.Series{}, fmt.Errorf("series %d: %w", seriesID, client.ErrNotFound)
	}
	profiles, err := c.qualityProfiles(ctx)
	if err != nil {
		return domain.Series{}, err
	}
	return ToDomain(s, profiles), nil
}

// SearchSeries queues a SeriesSearch for one series.
func (c *Client) SearchSeries(ctx context.Context, seriesID int64) (*sonarr.CommandResponse, error) {
	resp, err := c.api.SendCommandContext(ctx, &sonarr.CommandRequest{
		Name:     arr.CommandSeriesSearch.String(),
		SeriesID: seriesID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search series %d: %w", seriesID, err)
	}
	c.logger.Info().Int64("series_id", seriesID).Msg("triggered series search")
	return resp, nil
}

func (c *Client) qualityProfiles(ctx context.Context) (map[int64]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.profiles != nil {
		return c.profiles, nil
	}

	list, err := c.api.GetQualityProfilesContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get quality profiles: %w", err)
	}
	c.profiles = make(map[int64]string, len(list))
	for _, p := range list {
		if p != nil {
			c.profiles[p.ID] = p.Name
		}
	}
	return c.profiles, nil
}

// ToDomain maps a starr series. The media status counts a series with any
// episode file as available.
func ToDomain(s *sonarr.Series, profiles map[int64]string) domain.Series {
	var imgs []domain.Image
	for _, img := range s.Images {
		if img != nil {
			imgs = append(imgs, domain.Image{CoverType: img.CoverType, URL: img.URL, RemoteURL: img.RemoteURL})
		}
	}

	series := domain.Series{
		Media: domain.Media{
			ID:        value.IntID(s.ID),
			Type:      arr.MediaSeries,
			Title:     s.Title,
			Year:      int(s.Year),
			Monitored: s.Monitored,
			Source:    arr.Sonarr,
			Path:      s.Path,
			Overview:  s.Overview,
			PosterURL: domain.ExtractImage(imgs, "poster"),
			FanartURL: domain.ExtractImage(imgs, "fanart"),
		},
		TvdbID:             int64(s.TvdbID),
		ImdbID:             s.ImdbID,
		TvMazeID:           int64(s.TvMazeID),
		Network:            s.Network,
		Runtime:            int(s.Runtime),
		Certification:      s.Certification,
		SeriesType:         string(s.SeriesType),
		QualityProfileName: profiles[int64(s.QualityProfileID)],
		Ended:              s.Ended,
	}
	if s.Ratings != nil {
		series.Rating = s.Ratings.Value
	}
	if st := s.Statistics; st != nil {
		series.SeasonCount = int(st.SeasonCount)
		series.EpisodeCount = int(st.EpisodeCount)
		series.EpisodeFileCount = int(st.EpisodeFileCount)
		if size, err := value.FileSizeFromBytes(int64(st.SizeOnDisk)); err == nil {
			series.SizeOnDisk = &size
		}
	}
	series.Status = normalize.MediaFromSonarr(s.Status, series.EpisodeFileCount > 0)
	return series
}
