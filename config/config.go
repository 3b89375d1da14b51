package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/s0up4200/arrcore/arr"
)

// ErrNoConfig is returned when no config file exists in any search path.
var ErrNoConfig = errors.New("config file not found")

// EnvPrefix prefixes every environment override, e.g.
// ARRCORE_LOGGING_LEVEL=debug.
const EnvPrefix = "ARRCORE"

// DefaultUpdateRepository is where release binaries are published.
const DefaultUpdateRepository = "s0up4200/arrcore"

// Load loads the configuration from file. A .env file in the working
// directory is read first so its variables can override file values.
func Load(configPath string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("error reading .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".arrcore"))
		}
		v.AddConfigPath("/etc/arrcore/")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil, fmt.Errorf("%w: %v", ErrNoConfig, err)
		}
		return nil, fmt.Errorf("error reading config: %w", err)
	}

	return decode(v)
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	for name, svc := range cfg.Services {
		// enabled defaults to true per entry, which SetDefault cannot express
		// for map values
		if !v.IsSet("services." + name + ".enabled") {
			svc.Enabled = true
		}
		cfg.Services[name] = svc
	}
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("nzbget.port", 6789)
	v.SetDefault("nzbget.history", false)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)

	v.SetDefault("update.repository", DefaultUpdateRepository)
}

var structValidator = validator.New()

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	if err := structValidator.Struct(cfg); err != nil {
		return err
	}

	for name, svc := range cfg.Services {
		service, err := svc.Service(name)
		if err != nil {
			return fmt.Errorf("services.%s: %w", name, err)
		}
		if service.IsDownloadClient() {
			return fmt.Errorf("services.%s: %s is configured in its own section", name, service)
		}
		if svc.APIKey == "your-api-key-here" {
			return fmt.Errorf("services.%s.api_key must be set to a valid API key", name)
		}
	}

	if cfg.QBittorrent.Enabled && cfg.QBittorrent.URL == "" {
		return fmt.Errorf("qbittorrent.url is required")
	}
	if cfg.NZBGet.Enabled && cfg.NZBGet.Host == "" {
		return fmt.Errorf("nzbget.host is required")
	}

	validLevels := map[string]bool{
		"trace": true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s", cfg.Logging.Level)
	}

	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s", cfg.Logging.Format)
	}

	return nil
}

// Service resolves the service type of the entry called name.
func (s ServiceConfig) Service(name string) (arr.Service, error) {
	typ := s.Type
	if typ == "" {
		typ = name
	}
	return arr.ParseService(typ)
}

// Instance is one enabled, resolved service entry.
type Instance struct {
	Name    string
	Service arr.Service
	ServiceConfig
}

// Instances returns the enabled services sorted by name. keep may be nil.
func (c *Config) Instances(keep func(arr.Service) bool) []Instance {
	var out []Instance
	for name, svc := range c.Services {
		if !svc.Enabled {
			continue
		}
		service, err := svc.Service(name)
		if err != nil {
			continue
		}
		if keep != nil && !keep(service) {
			continue
		}
		out = append(out, Instance{Name: name, Service: service, ServiceConfig: svc})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Instance looks up one enabled entry by name, or by service type when no
// entry has that name.
func (c *Config) Instance(name string) (Instance, bool) {
	all := c.Instances(nil)
	for _, in := range all {
		if in.Name == name {
			return in, true
		}
	}
	for _, in := range all {
		if strings.EqualFold(in.Service.String(), name) {
			return in, true
		}
	}
	return Instance{}, false
}
