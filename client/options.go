package client

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const defaultUserAgent = "arrcore/1.0"

// Option configures a Client.
type Option func(*clientOptions)

// clientOptions holds configuration options for the Client.
type clientOptions struct {
	timeout        time.Duration
	httpClient     *http.Client
	userAgent      string
	logger         zerolog.Logger
	metrics        *Metrics
	tracerProvider trace.TracerProvider
}

func defaultOptions(cfg Config) clientOptions {
	return clientOptions{
		timeout:        cfg.timeout(),
		userAgent:      defaultUserAgent,
		logger:         zerolog.Nop(),
		tracerProvider: otel.GetTracerProvider(),
	}
}

// WithTimeout overrides the timeout from Config.
func WithTimeout(timeout time.Duration) Option {
	return func(o *clientOptions) {
		if timeout > 0 {
			o.timeout = timeout
		}
	}
}

// WithHTTPClient replaces the HTTP client. Its own Timeout is left alone.
func WithHTTPClient(c *http.Client) Option {
	return func(o *clientOptions) {
		o.httpClient = c
	}
}

// WithUserAgent sets a custom user agent string.
func WithUserAgent(userAgent string) Option {
	return func(o *clientOptions) {
		if userAgent != "" {
			o.userAgent = userAgent
		}
	}
}

// WithLogger sets the logger used for per-request debug events.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *clientOptions) {
		o.logger = logger
	}
}

// WithMetrics records request counts and latencies into m.
func WithMetrics(m *Metrics) Option {
	return func(o *clientOptions) {
		o.metrics = m
	}
}

// WithTracerProvider sets where request spans go. The global provider is
// used otherwise.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *clientOptions) {
		if tp != nil {
			o.tracerProvider = tp
		}
	}
}
