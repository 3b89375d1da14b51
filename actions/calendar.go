package actions

import (
	"context"
	"fmt"

	"github.com/s0up4200/arrcore/client"
	"github.com/s0up4200/arrcore/endpoint"
)

// Calendar reads upcoming releases.
type Calendar struct {
	client client.Requester
}

// All returns the calendar entries in the window given by a
// endpoint.CalendarOptions, or the service default window without one.
func (c *Calendar) All(ctx context.Context, opts ...endpoint.Options) ([]CalendarEntry, error) {
	var entries []CalendarEntry
	if err := c.client.Get(ctx, endpoint.Calendar, endpoint.Collect(opts...), &entries); err != nil {
		return nil, fmt.Errorf("failed to get calendar: %w", err)
	}
	return entries, nil
}

func (c *Calendar) Get(ctx context.Context, id int64) (CalendarEntry, error) {
	var entry CalendarEntry
	if err := c.client.Get(ctx, endpoint.CalendarByID, endpoint.Params{"id": id}, &entry); err != nil {
		return CalendarEntry{}, fmt.Errorf("failed to get calendar entry %d: %w", id, err)
	}
	return entry, nil
}
