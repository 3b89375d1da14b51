package client

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/s0up4200/arrcore/arr"
)

// DefaultTimeout applies when Config.Timeout is zero.
const DefaultTimeout = 30 * time.Second

// Config locates one service instance.
type Config struct {
	Service    arr.Service   `mapstructure:"service"`
	Host       string        `mapstructure:"host" validate:"required"`
	Port       int           `mapstructure:"port" validate:"min=1,max=65535"`
	APIKey     string        `mapstructure:"api_key" validate:"required"`
	UseHTTPS   bool          `mapstructure:"use_https"`
	Timeout    time.Duration `mapstructure:"timeout" validate:"gte=0"`
	URLBase    string        `mapstructure:"url_base"`
	APIVersion string        `mapstructure:"api_version" validate:"required"`
}

// DefaultConfig returns a localhost config with the service's default port
// and API version. The API key still has to be set.
func DefaultConfig(service arr.Service) Config {
	return Config{
		Service:    service,
		Host:       "localhost",
		Port:       service.DefaultPort(),
		Timeout:    DefaultTimeout,
		APIVersion: service.APIVersion(),
	}
}

// ConfigFromURL builds a config from a base URL such as
// "https://example.com/radarr". Without an explicit port the scheme's
// default port is used.
func ConfigFromURL(service arr.Service, rawURL, apiKey string) (Config, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return Config{}, fmt.Errorf("%w: parse url: %v", ErrInvalidConfig, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return Config{}, fmt.Errorf("%w: url %q must start with http:// or https://", ErrInvalidConfig, rawURL)
	}
	if u.Hostname() == "" {
		return Config{}, fmt.Errorf("%w: url %q has no host", ErrInvalidConfig, rawURL)
	}

	cfg := DefaultConfig(service)
	cfg.Host = u.Hostname()
	cfg.UseHTTPS = u.Scheme == "https"
	cfg.APIKey = apiKey
	cfg.URLBase = strings.Trim(u.Path, "/")

	switch {
	case u.Port() != "":
		port, err := strconv.Atoi(u.Port())
		if err != nil {
			return Config{}, fmt.Errorf("%w: invalid port %q", ErrInvalidConfig, u.Port())
		}
		cfg.Port = port
	case cfg.UseHTTPS:
		cfg.Port = 443
	default:
		cfg.Port = 80
	}

	return cfg, nil
}

// BaseURL is scheme://host:port[/urlBase]/api/{version}.
func (c Config) BaseURL() string {
	scheme := "http"
	if c.UseHTTPS {
		scheme = "https"
	}
	base := strings.Trim(c.URLBase, "/")
	if base != "" {
		base = "/" + base
	}
	host := net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
	return fmt.Sprintf("%s://%s%s/api/%s", scheme, host, base, c.APIVersion)
}

func (c Config) timeout() time.Duration {
	if c.Timeout <= 0 {
		return DefaultTimeout
	}
	return c.Timeout
}

var validate = validator.New()

// Validate checks the required fields.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}
