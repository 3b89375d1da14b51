// Package client is the REST client shared by every *arr and Seerr
// integration. It resolves endpoint templates, authenticates with the API
// key and maps failures onto a small error taxonomy. It never retries.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"reflect"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/s0up4200/arrcore/endpoint"
)

const tracerName = "github.com/s0up4200/arrcore/client"

// Requester is the REST surface the action groups are written against.
// out receives the decoded JSON body; nil discards it.
type Requester interface {
	Get(ctx context.Context, ep endpoint.Endpoint, params endpoint.Params, out any) error
	Post(ctx context.Context, ep endpoint.Endpoint, body endpoint.Params, out any) error
	Put(ctx context.Context, ep endpoint.Endpoint, body endpoint.Params, out any) error
	Delete(ctx context.Context, ep endpoint.Endpoint, params endpoint.Params, out any) error
}

// Client talks to a single service instance.
type Client struct {
	cfg        Config
	baseURL    string
	httpClient *http.Client
	userAgent  string
	logger     zerolog.Logger
	metrics    *Metrics
	tracer     trace.Tracer
}

var _ Requester = (*Client)(nil)

// New creates a client for cfg. It does not contact the service; use Ping
// for that.
func New(cfg Config, opts ...Option) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := defaultOptions(cfg)
	for _, opt := range opts {
		opt(&o)
	}

	httpClient := o.httpClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: o.timeout}
	}

	return &Client{
		cfg:        cfg,
		baseURL:    cfg.BaseURL(),
		httpClient: httpClient,
		userAgent:  o.userAgent,
		logger:     o.logger.With().Str("service", serviceName(cfg)).Logger(),
		metrics:    o.metrics,
		tracer:     o.tracerProvider.Tracer(tracerName),
	}, nil
}

func serviceName(cfg Config) string {
	if cfg.Service == "" {
		return "unknown"
	}
	return cfg.Service.String()
}

// Config returns the configuration the client was built with.
func (c *Client) Config() Config { return c.cfg }

// BaseURL returns the resolved API root.
func (c *Client) BaseURL() string { return c.baseURL }

// Get sends params as the query string.
func (c *Client) Get(ctx context.Context, ep endpoint.Endpoint, params endpoint.Params, out any) error {
	return c.do(ctx, http.MethodGet, ep, params, out)
}

// Post sends body as a JSON object.
func (c *Client) Post(ctx context.Context, ep endpoint.Endpoint, body endpoint.Params, out any) error {
	return c.do(ctx, http.MethodPost, ep, body, out)
}

// Put sends body as a JSON object.
func (c *Client) Put(ctx context.Context, ep endpoint.Endpoint, body endpoint.Params, out any) error {
	return c.do(ctx, http.MethodPut, ep, body, out)
}

// Delete sends params as the query string.
func (c *Client) Delete(ctx context.Context, ep endpoint.Endpoint, params endpoint.Params, out any) error {
	return c.do(ctx, http.MethodDelete, ep, params, out)
}

// Ping checks connectivity and the API key with a GET on ep, system/status
// by default.
func (c *Client) Ping(ctx context.Context, ep ...endpoint.Endpoint) error {
	target := endpoint.Endpoint(endpoint.SystemStatus)
	if len(ep) > 0 && ep[0] != nil {
		target = ep[0]
	}
	return c.Get(ctx, target, nil, nil)
}

func (c *Client) do(ctx context.Context, method string, ep endpoint.Endpoint, params endpoint.Params, out any) error {
	path, rest := endpoint.Resolve(ep, params)
	reqURL := c.baseURL + "/" + strings.TrimPrefix(path, "/")

	var body io.Reader
	switch method {
	case http.MethodGet, http.MethodDelete:
		if q := encodeQuery(rest); q != "" {
			reqURL += "?" + q
		}
	default:
		if len(rest) > 0 {
			payload, err := json.Marshal(rest)
			if err != nil {
				return fmt.Errorf("failed to encode request body: %w", err)
			}
			body = bytes.NewReader(payload)
		}
	}

	ctx, span := c.tracer.Start(ctx, method+" "+ep.Template(),
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("arr.service", serviceName(c.cfg)),
			attribute.String("http.request.method", method),
			attribute.String("url.path", path),
		),
	)
	defer span.End()

	req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("failed to create request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("X-Api-Key", c.cfg.APIKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-Id", requestID)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	elapsed := time.Since(start)
	if err != nil {
		c.metrics.observe(serviceName(c.cfg), method, 0, elapsed)
		span.RecordError(err)
		span.SetStatus(codes.Error, "no response")
		c.logger.Debug().
			Str("method", method).
			Str("path", path).
			Str("request_id", requestID).
			Dur("duration", elapsed).
			Err(err).
			Msg("Request failed")
		return &ConnectionError{Host: c.cfg.Host, Port: c.cfg.Port, Err: err}
	}
	defer resp.Body.Close()

	c.metrics.observe(serviceName(c.cfg), method, resp.StatusCode, elapsed)
	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return &ConnectionError{Host: c.cfg.Host, Port: c.cfg.Port, Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	c.logger.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Str("request_id", requestID).
		Dur("duration", elapsed).
		Msg("Request completed")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := ErrorForStatus(method, path, resp.StatusCode, respBody)
		span.SetStatus(codes.Error, apiErr.Error())
		return apiErr
	}

	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		span.SetStatus(codes.Error, "decode")
		return fmt.Errorf("failed to decode %s response: %w", path, err)
	}
	return nil
}

// encodeQuery renders params in key order. Slices repeat the key, which is
// how the *arr APIs read list parameters.
func encodeQuery(params endpoint.Params) string {
	if len(params) == 0 {
		return ""
	}
	values := url.Values{}
	for k, v := range params {
		if v == nil {
			continue
		}
		rv := reflect.ValueOf(v)
		if (rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array) && rv.Type().Elem().Kind() != reflect.Uint8 {
			for i := range rv.Len() {
				values.Add(k, fmt.Sprint(rv.Index(i).Interface()))
			}
			continue
		}
		values.Set(k, fmt.Sprint(v))
	}
	return values.Encode()
}
