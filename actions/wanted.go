package actions

import (
	"context"
	"fmt"

	"github.com/s0up4200/arrcore/arr"
	"github.com/s0up4200/arrcore/client"
	"github.com/s0up4200/arrcore/endpoint"
)

// Wanted reads the missing and cutoff-unmet lists.
type Wanted struct {
	client  client.Requester
	service arr.Service
}

// Missing returns one page of monitored items without files.
func (w *Wanted) Missing(ctx context.Context, opts ...endpoint.Options) (Page[WantedRecord], error) {
	return w.page(ctx, endpoint.WantedMissing, opts)
}

// Cutoff returns one page of items below their quality cutoff.
func (w *Wanted) Cutoff(ctx context.Context, opts ...endpoint.Options) (Page[WantedRecord], error) {
	return w.page(ctx, endpoint.WantedCutoff, opts)
}

// AllMissing pages through the whole missing list. Pagination options are
// overridden.
func (w *Wanted) AllMissing(ctx context.Context, opts ...endpoint.Options) ([]WantedRecord, error) {
	return collectPages(ctx, func(ctx context.Context, p endpoint.Pagination) (Page[WantedRecord], error) {
		return w.Missing(ctx, append(opts, p)...)
	})
}

// AllCutoff pages through the whole cutoff-unmet list.
func (w *Wanted) AllCutoff(ctx context.Context, opts ...endpoint.Options) ([]WantedRecord, error) {
	return collectPages(ctx, func(ctx context.Context, p endpoint.Pagination) (Page[WantedRecord], error) {
		return w.Cutoff(ctx, append(opts, p)...)
	})
}

func (w *Wanted) page(ctx context.Context, ep endpoint.Route, opts []endpoint.Options) (Page[WantedRecord], error) {
	params := endpoint.DefaultPagination().Params().Merge(endpoint.Collect(opts...))

	var page Page[WantedRecord]
	if err := w.client.Get(ctx, ep, params, &page); err != nil {
		return Page[WantedRecord]{}, fmt.Errorf("failed to get %s: %w", ep, err)
	}
	return page, nil
}
