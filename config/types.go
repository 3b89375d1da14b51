package config

import "time"

// Config represents the complete configuration structure
type Config struct {
	Services    map[string]ServiceConfig `mapstructure:"services" validate:"dive"`
	QBittorrent QBittorrentConfig        `mapstructure:"qbittorrent"`
	NZBGet      NZBGetConfig             `mapstructure:"nzbget"`
	Filters     FilterConfig             `mapstructure:"filters"`
	Logging     LoggingConfig            `mapstructure:"logging"`
	Update      UpdateConfig             `mapstructure:"update"`
}

// ServiceConfig holds one *arr or Seerr instance. The map key names the
// instance; Type defaults to the key, so a "radarr4k" entry needs
// type: radarr.
type ServiceConfig struct {
	Type    string        `mapstructure:"type"`
	URL     string        `mapstructure:"url" validate:"required,url"`
	APIKey  string        `mapstructure:"api_key" validate:"required"`
	Timeout time.Duration `mapstructure:"timeout" validate:"gte=0"`
	Enabled bool          `mapstructure:"enabled"`
}

// QBittorrentConfig holds the qBittorrent Web UI login
type QBittorrentConfig struct {
	Enabled            bool          `mapstructure:"enabled"`
	URL                string        `mapstructure:"url" validate:"omitempty,url"`
	Username           string        `mapstructure:"username"`
	Password           string        `mapstructure:"password"`
	Timeout            time.Duration `mapstructure:"timeout" validate:"gte=0"`
	InsecureSkipVerify bool          `mapstructure:"insecure_skip_verify"`
}

// NZBGetConfig holds the NZBGet JSON-RPC connection details
type NZBGetConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Host     string        `mapstructure:"host"`
	Port     int           `mapstructure:"port" validate:"omitempty,min=1,max=65535"`
	Username string        `mapstructure:"username"`
	Password string        `mapstructure:"password"`
	UseHTTPS bool          `mapstructure:"use_https"`
	Timeout  time.Duration `mapstructure:"timeout" validate:"gte=0"`
	History  bool          `mapstructure:"history"`
}

// FilterConfig maps filter names to expressions
type FilterConfig map[string]string

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}

// UpdateConfig points self-update at a GitHub repository.
type UpdateConfig struct {
	Repository string `mapstructure:"repository"`
}
