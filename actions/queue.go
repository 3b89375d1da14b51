package actions

import (
	"context"
	"fmt"

	"github.com/s0up4200/arrcore/arr"
	"github.com/s0up4200/arrcore/client"
	"github.com/s0up4200/arrcore/domain"
	"github.com/s0up4200/arrcore/endpoint"
)

// Queue manages the download queue.
type Queue struct {
	client  client.Requester
	service arr.Service
}

// DeleteOptions tune queue removal. The zero value removes the download from
// the client and does not blocklist it.
type DeleteOptions struct {
	KeepInClient   bool
	Blocklist      bool
	SkipRedownload bool
	ChangeCategory bool
}

func (o DeleteOptions) params() endpoint.Params {
	return endpoint.Params{
		"removeFromClient": !o.KeepInClient,
		"blocklist":        o.Blocklist,
		"skipRedownload":   o.SkipRedownload,
		"changeCategory":   o.ChangeCategory,
	}
}

// All returns one page of the queue, 50 records per page unless a
// Pagination option says otherwise.
func (q *Queue) All(ctx context.Context, opts ...endpoint.Options) (Page[QueueRecord], error) {
	params := endpoint.NewPagination(1, endpoint.DefaultQueuePageSize).Params().Merge(endpoint.Collect(opts...))

	var page Page[QueueRecord]
	if err := q.client.Get(ctx, endpoint.Queue, params, &page); err != nil {
		return Page[QueueRecord]{}, fmt.Errorf("failed to get queue: %w", err)
	}
	return page, nil
}

// Records pages through the whole queue.
func (q *Queue) Records(ctx context.Context, opts ...endpoint.Options) ([]QueueRecord, error) {
	return collectPages(ctx, func(ctx context.Context, p endpoint.Pagination) (Page[QueueRecord], error) {
		return q.All(ctx, append(opts, p)...)
	})
}

// DownloadItems returns the whole queue as normalized download items.
func (q *Queue) DownloadItems(ctx context.Context, opts ...endpoint.Options) (domain.DownloadItems, error) {
	records, err := q.Records(ctx, opts...)
	if err != nil {
		return nil, err
	}
	items := make(domain.DownloadItems, 0, len(records))
	for _, r := range records {
		items = append(items, r.ToDownloadItem(q.service))
	}
	return items, nil
}

// Details returns the unpaged queue/details list.
func (q *Queue) Details(ctx context.Context, opts ...endpoint.Options) ([]QueueRecord, error) {
	var records []QueueRecord
	if err := q.client.Get(ctx, endpoint.QueueDetails, endpoint.Collect(opts...), &records); err != nil {
		return nil, fmt.Errorf("failed to get queue details: %w", err)
	}
	return records, nil
}

// Status returns the queue summary.
func (q *Queue) Status(ctx context.Context) (QueueStatus, error) {
	var st QueueStatus
	if err := q.client.Get(ctx, endpoint.QueueStatus, nil, &st); err != nil {
		return QueueStatus{}, fmt.Errorf("failed to get queue status: %w", err)
	}
	return st, nil
}

// Delete removes one queue record.
func (q *Queue) Delete(ctx context.Context, id int64, opts DeleteOptions) error {
	params := opts.params().Merge(endpoint.Params{"id": id})
	if err := q.client.Delete(ctx, endpoint.QueueByID, params, nil); err != nil {
		return fmt.Errorf("failed to delete queue item %d: %w", id, err)
	}
	return nil
}

// BulkDelete removes several queue records in one request.
func (q *Queue) BulkDelete(ctx context.Context, ids []int64, opts DeleteOptions) error {
	if len(ids) == 0 {
		return nil
	}
	params := opts.params().Merge(endpoint.Params{"ids": ids})
	if err := q.client.Delete(ctx, endpoint.QueueBulk, params, nil); err != nil {
		return fmt.Errorf("failed to delete %d queue items: %w", len(ids), err)
	}
	return nil
}

// collectPages fetches pages of DefaultBulkPageSize until every record has
// been seen or the service returns an empty page.
func collectPages[T any](ctx context.Context, fetch func(context.Context, endpoint.Pagination) (Page[T], error)) ([]T, error) {
	var all []T
	for page := 1; ; page++ {
		p, err := fetch(ctx, endpoint.NewPagination(page, endpoint.DefaultBulkPageSize))
		if err != nil {
			return nil, err
		}
		all = append(all, p.Records...)
		if p.IsEmpty() || len(all) >= p.TotalRecords {
			return all, nil
		}
	}
}
