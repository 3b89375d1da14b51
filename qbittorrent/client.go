package qbittorrent

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/autobrr/go-qbittorrent"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/s0up4200/arrcore/client"
	"github.com/s0up4200/arrcore/domain"
)

// API is the part of the go-qbittorrent client used here.
type API interface {
	LoginCtx(ctx context.Context) error
	GetTorrentsCtx(ctx context.Context, o qbittorrent.TorrentFilterOptions) ([]qbittorrent.Torrent, error)
	GetFilesInformationCtx(ctx context.Context, hash string) (*qbittorrent.TorrentFiles, error)
}

// Config locates a qBittorrent Web UI.
type Config struct {
	URL      string `mapstructure:"url" validate:"required,url"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

var validate = validator.New()

func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", client.ErrInvalidConfig, err)
	}
	return nil
}

// Client wraps the qBittorrent API client
type Client struct {
	api    API
	logger zerolog.Logger
}

// NewClient logs in to qBittorrent and returns a client.
func NewClient(ctx context.Context, cfg Config, logger zerolog.Logger, opts ...Option) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	api := qbittorrent.NewClient(qbittorrent.Config{
		Host:          strings.TrimRight(cfg.URL, "/"),
		Username:      cfg.Username,
		Password:      cfg.Password,
		TLSSkipVerify: o.tlsSkipVerify,
		Timeout:       o.timeoutSeconds(),
	})

	c := NewWithAPI(api, logger)
	if err := api.LoginCtx(ctx); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnectionFailed, err)
	}
	c.logger.Debug().Msg("logged in to qBittorrent")
	return c, nil
}

// NewWithAPI wraps an existing API implementation without logging in.
func NewWithAPI(api API, logger zerolog.Logger) *Client {
	return &Client{
		api:    api,
		logger: logger.With().Str("service", "qbittorrent").Logger(),
	}
}

// Torrents returns all torrents matching filter.
func (c *Client) Torrents(ctx context.Context, filter qbittorrent.TorrentFilterOptions) ([]TorrentInfo, error) {
	torrents, err := c.api.GetTorrentsCtx(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to get torrents: %w", err)
	}

	c.logger.Debug().Int("count", len(torrents)).Msg("retrieved torrents")

	results := make([]TorrentInfo, 0, len(torrents))
	for _, t := range torrents {
		results = append(results, fromTorrent(t))
	}
	return results, nil
}

// DownloadItems returns every torrent as a normalized download item.
func (c *Client) DownloadItems(ctx context.Context) (domain.DownloadItems, error) {
	torrents, err := c.Torrents(ctx, qbittorrent.TorrentFilterOptions{})
	if err != nil {
		return nil, err
	}
	items := make(domain.DownloadItems, 0, len(torrents))
	for _, t := range torrents {
		items = append(items, t.ToDownloadItem())
	}
	return items, nil
}

// Torrent looks up one torrent by hash.
func (c *Client) Torrent(ctx context.Context, hash string) (TorrentInfo, error) {
	torrents, err := c.Torrents(ctx, qbittorrent.TorrentFilterOptions{Hashes: []string{strings.ToLower(hash)}})
	if err != nil {
		return TorrentInfo{}, err
	}
	if len(torrents) == 0 {
		return TorrentInfo{}, fmt.Errorf("%w: %s", ErrTorrentNotFound, hash)
	}
	return torrents[0], nil
}

// TorrentFiles lists the file names inside a torrent.
func (c *Client) TorrentFiles(ctx context.Context, hash string) ([]string, error) {
	files, err := c.api.GetFilesInformationCtx(ctx, hash)
	if err != nil {
		return nil, fmt.Errorf("failed to get torrent files: %w", err)
	}

	var names []string
	if files != nil {
		for _, f := range *files {
			names = append(names, f.Name)
		}
	}
	return names, nil
}

// TorrentByPath finds the torrent that holds filePath, either as its
// content path, below its content directory, or as one of its files.
func (c *Client) TorrentByPath(ctx context.Context, filePath string) (TorrentInfo, error) {
	torrents, err := c.Torrents(ctx, qbittorrent.TorrentFilterOptions{})
	if err != nil {
		return TorrentInfo{}, err
	}

	searchPath := filepath.Clean(filePath)
	for _, torrent := range torrents {
		torrentPath := filepath.Clean(torrent.FullPath())
		if torrentPath == searchPath || strings.HasPrefix(searchPath, torrentPath+string(filepath.Separator)) {
			return torrent, nil
		}

		files, err := c.TorrentFiles(ctx, torrent.Hash)
		if err != nil {
			c.logger.Warn().Err(err).Str("hash", torrent.Hash).Msg("failed to get torrent files")
			continue
		}
		for _, file := range files {
			if filepath.Clean(filepath.Join(torrent.SavePath, file)) == searchPath {
				torrent.Files = append(torrent.Files, file)
				return torrent, nil
			}
		}
	}

	return TorrentInfo{}, fmt.Errorf("%w: %s", ErrTorrentNotFound, filePath)
}

// IsTorrentSeeding reports whether the torrent with hash is uploading.
// Unknown hashes are not seeding.
func (c *Client) IsTorrentSeeding(ctx context.Context, hash string) (bool, error) {
	t, err := c.Torrent(ctx, hash)
	if err != nil {
		if errors.Is(err, ErrTorrentNotFound) {
			return false, nil
		}
		return false, err
	}
	return t.IsActivelySeeding(), nil
}
