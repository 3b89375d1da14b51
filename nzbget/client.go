package nzbget

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/s0up4200/arrcore/domain"
)

// RPC method names.
const (
	MethodVersion        = "version"
	MethodStatus         = "status"
	MethodListGroups     = "listgroups"
	MethodHistory        = "history"
	MethodPauseDownload  = "pausedownload"
	MethodResumeDownload = "resumedownload"
)

// Client wraps a Caller with typed NZBGet calls.
type Client struct {
	rpc    Caller
	logger zerolog.Logger
}

func New(rpc Caller, logger zerolog.Logger) *Client {
	return &Client{rpc: rpc, logger: logger}
}

func (c *Client) Version(ctx context.Context) (string, error) {
	var v string
	if err := c.rpc.Call(ctx, MethodVersion, nil, &v); err != nil {
		return "", fmt.Errorf("failed to get version: %w", err)
	}
	return v, nil
}

func (c *Client) Status(ctx context.Context) (ServerStatus, error) {
	var st ServerStatus
	if err := c.rpc.Call(ctx, MethodStatus, nil, &st); err != nil {
		return ServerStatus{}, fmt.Errorf("failed to get status: %w", err)
	}
	return st, nil
}

// Groups lists the download queue. The argument 0 asks NZBGet not to include
// log lines.
func (c *Client) Groups(ctx context.Context) ([]Group, error) {
	var groups []Group
	if err := c.rpc.Call(ctx, MethodListGroups, []any{0}, &groups); err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	return groups, nil
}

// History lists finished downloads; hidden also returns hidden records.
func (c *Client) History(ctx context.Context, hidden bool) ([]HistoryItem, error) {
	var items []HistoryItem
	if err := c.rpc.Call(ctx, MethodHistory, []any{hidden}, &items); err != nil {
		return nil, fmt.Errorf("failed to get history: %w", err)
	}
	return items, nil
}

func (c *Client) PauseDownload(ctx context.Context) error {
	return c.toggle(ctx, MethodPauseDownload)
}

func (c *Client) ResumeDownload(ctx context.Context) error {
	return c.toggle(ctx, MethodResumeDownload)
}

func (c *Client) toggle(ctx context.Context, method string) error {
	var ok bool
	if err := c.rpc.Call(ctx, method, nil, &ok); err != nil {
		return fmt.Errorf("failed to %s: %w", method, err)
	}
	if !ok {
		return fmt.Errorf("%w: %s returned false", ErrRPC, method)
	}
	return nil
}

// DownloadItems returns the queue followed by the history, normalized. A
// failing status call only loses the ETAs.
func (c *Client) DownloadItems(ctx context.Context, withHistory bool) (domain.DownloadItems, error) {
	groups, err := c.Groups(ctx)
	if err != nil {
		return nil, err
	}

	var rate int64
	if st, err := c.Status(ctx); err != nil {
		c.logger.Warn().Err(err).Msg("could not read download rate")
	} else {
		rate = st.DownloadRate
	}

	items := make(domain.DownloadItems, 0, len(groups))
	for _, g := range groups {
		items = append(items, g.ToDownloadItem(rate))
	}

	if !withHistory {
		return items, nil
	}
	history, err := c.History(ctx, false)
	if err != nil {
		return nil, err
	}
	for _, h := range history {
		items = append(items, h.ToDownloadItem())
	}
	return items, nil
}
