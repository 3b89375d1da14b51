package cmd

import (
	"context"
	"fmt"

	"github.com/s0up4200/arrcore/actions"
	"github.com/s0up4200/arrcore/arr"
	"github.com/s0up4200/arrcore/client"
	"github.com/s0up4200/arrcore/config"
	"github.com/s0up4200/arrcore/nzbget"
	"github.com/s0up4200/arrcore/qbittorrent"
	"github.com/s0up4200/arrcore/radarr"
	"github.com/s0up4200/arrcore/seerr"
	"github.com/s0up4200/arrcore/sonarr"
)

// restClient builds the generic REST client for one configured instance.
func restClient(in config.Instance) (*client.Client, error) {
	cc, err := client.ConfigFromURL(in.Service, in.URL, in.APIKey)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", in.Name, err)
	}
	if in.Timeout > 0 {
		cc.Timeout = in.Timeout
	}

	opts := []client.Option{
		client.WithLogger(logger.With().Str("instance", in.Name).Logger()),
		client.WithUserAgent("arrcore/" + version),
	}
	if metrics != nil {
		opts = append(opts, client.WithMetrics(metrics))
	}
	return client.New(cc, opts...)
}

func actionSet(in config.Instance) (*actions.Set, error) {
	c, err := restClient(in)
	if err != nil {
		return nil, err
	}
	return actions.New(c, in.Service), nil
}

func seerrClient(in config.Instance) (*seerr.Client, error) {
	c, err := restClient(in)
	if err != nil {
		return nil, err
	}
	return seerr.New(c, in.Service, logger.With().Str("instance", in.Name).Logger())
}

func radarrClient(in config.Instance) (*radarr.Client, error) {
	return radarr.NewClient(radarr.Config{URL: in.URL, APIKey: in.APIKey, Timeout: in.Timeout}, logger)
}

func sonarrClient(in config.Instance) (*sonarr.Client, error) {
	return sonarr.NewClient(sonarr.Config{URL: in.URL, APIKey: in.APIKey, Timeout: in.Timeout}, logger)
}

func qbittorrentClient(ctx context.Context, qc config.QBittorrentConfig) (*qbittorrent.Client, error) {
	opts := []qbittorrent.Option{qbittorrent.WithTimeout(qc.Timeout)}
	if qc.InsecureSkipVerify {
		opts = append(opts, qbittorrent.WithInsecureSkipVerify())
	}
	return qbittorrent.NewClient(ctx, qbittorrent.Config{
		URL:      qc.URL,
		Username: qc.Username,
		Password: qc.Password,
	}, logger, opts...)
}

func nzbgetClient(nc config.NZBGetConfig) (*nzbget.Client, error) {
	rc := nzbget.DefaultConfig()
	rc.Host = nc.Host
	if nc.Port > 0 {
		rc.Port = nc.Port
	}
	rc.Username = nc.Username
	rc.Password = nc.Password
	rc.UseHTTPS = nc.UseHTTPS
	if nc.Timeout > 0 {
		rc.Timeout = nc.Timeout
	}

	rpc, err := nzbget.NewRPC(rc, nil, logger)
	if err != nil {
		return nil, err
	}
	return nzbget.New(rpc, logger), nil
}

// instances returns the configured instances matching keep, narrowed to
// the one named by --service when it is set.
func instances(name string, keep func(arr.Service) bool) ([]config.Instance, error) {
	if name == "" {
		return cfg.Instances(keep), nil
	}
	in, ok := cfg.Instance(name)
	if !ok {
		return nil, fmt.Errorf("no enabled service named %q in config", name)
	}
	if keep != nil && !keep(in.Service) {
		return nil, fmt.Errorf("%s (%s) does not support this command", in.Name, in.Service.Label())
	}
	return []config.Instance{in}, nil
}
