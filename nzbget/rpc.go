// Package nzbget reads the NZBGet download queue over its JSON-RPC API and
// maps it onto domain download items.
package nzbget

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/s0up4200/arrcore/arr"
	"github.com/s0up4200/arrcore/client"
)

var (
	// ErrRPC is wrapped by every error NZBGet reports in the response body.
	ErrRPC = errors.New("nzbget rpc error")
)

// Caller performs one JSON-RPC call and decodes the result into out.
type Caller interface {
	Call(ctx context.Context, method string, params []any, out any) error
}

// Config locates an NZBGet instance. Username and password are the control
// credentials from the NZBGet security settings.
type Config struct {
	Host     string        `mapstructure:"host" validate:"required"`
	Port     int           `mapstructure:"port" validate:"min=1,max=65535"`
	Username string        `mapstructure:"username"`
	Password string        `mapstructure:"password"`
	UseHTTPS bool          `mapstructure:"use_https"`
	Timeout  time.Duration `mapstructure:"timeout" validate:"gte=0"`
}

// DefaultConfig is localhost on the stock port.
func DefaultConfig() Config {
	return Config{
		Host:    "localhost",
		Port:    arr.NZBGet.DefaultPort(),
		Timeout: 30 * time.Second,
	}
}

func (c Config) URL() string {
	scheme := "http"
	if c.UseHTTPS {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/jsonrpc", scheme, net.JoinHostPort(c.Host, strconv.Itoa(c.Port)))
}

var validate = validator.New()

func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", client.ErrInvalidConfig, err)
	}
	return nil
}

// RPC is the HTTP transport for the NZBGet JSON-RPC API.
type RPC struct {
	cfg        Config
	httpClient *http.Client
	logger     zerolog.Logger
	nextID     atomic.Int64
}

// NewRPC validates cfg. A nil httpClient gets one with cfg.Timeout.
func NewRPC(cfg Config, httpClient *http.Client, logger zerolog.Logger) (*RPC, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	return &RPC{
		cfg:        cfg,
		httpClient: httpClient,
		logger:     logger.With().Str("service", arr.NZBGet.String()).Logger(),
	}, nil
}

type rpcRequest struct {
	Version string `json:"version"`
	Method  string `json:"method"`
	Params  []any  `json:"params"`
	ID      int64  `json:"id"`
}

type rpcError struct {
	Name    string `json:"name"`
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type rpcResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *rpcError       `json:"error"`
}

// RequestID is the id of the last request sent.
func (r *RPC) RequestID() int64 { return r.nextID.Load() }

// Call sends method with positional params. Transport failures are
// client.ConnectionError, HTTP failures are mapped like REST responses
// (client.ErrorForStatus).
func (r *RPC) Call(ctx context.Context, method string, params []any, out any) error {
	if params == nil {
		params = []any{}
	}
	id := r.nextID.Add(1)
	payload, err := json.Marshal(rpcRequest{Version: "1.1", Method: method, Params: params, ID: id})
	if err != nil {
		return fmt.Errorf("failed to encode %s request: %w", method, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.cfg.URL(), bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if r.cfg.Username != "" {
		req.SetBasicAuth(r.cfg.Username, r.cfg.Password)
	}

	start := time.Now()
	resp, err := r.httpClient.Do(req)
	if err != nil {
		return &client.ConnectionError{Host: r.cfg.Host, Port: r.cfg.Port, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &client.ConnectionError{Host: r.cfg.Host, Port: r.cfg.Port, Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	r.logger.Debug().
		Str("method", method).
		Int64("id", id).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("RPC call completed")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return client.ErrorForStatus(http.MethodPost, "jsonrpc/"+method, resp.StatusCode, body)
	}

	var decoded rpcResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", method, err)
	}
	if decoded.Error != nil {
		return fmt.Errorf("%w: %s: %s", ErrRPC, method, decoded.Error.Message)
	}
	if out == nil || len(decoded.Result) == 0 {
		return nil
	}
	if err := json.Unmarshal(decoded.Result, out); err != nil {
		return fmt.Errorf("failed to decode %s result: %w", method, err)
	}
	return nil
}
