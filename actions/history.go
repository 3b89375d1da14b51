package actions

import (
	"context"
	"fmt"
	"time"

	"github.com/s0up4200/arrcore/client"
	"github.com/s0up4200/arrcore/endpoint"
)

// History reads and annotates the activity history.
type History struct {
	client client.Requester
}

// All returns one page of history, page 1 of 10 by default.
func (h *History) All(ctx context.Context, opts ...endpoint.Options) (Page[HistoryRecord], error) {
	params := endpoint.DefaultPagination().Params().Merge(endpoint.Collect(opts...))

	var page Page[HistoryRecord]
	if err := h.client.Get(ctx, endpoint.History, params, &page); err != nil {
		return Page[HistoryRecord]{}, fmt.Errorf("failed to get history: %w", err)
	}
	return page, nil
}

// Since returns every event from date (inclusive, by calendar day) on.
func (h *History) Since(ctx context.Context, date time.Time, opts ...endpoint.Options) ([]HistoryRecord, error) {
	params := endpoint.Params{"date": date.Format("2006-01-02")}.Merge(endpoint.Collect(opts...))

	var records []HistoryRecord
	if err := h.client.Get(ctx, endpoint.HistorySince, params, &records); err != nil {
		return nil, fmt.Errorf("failed to get history since %s: %w", date.Format("2006-01-02"), err)
	}
	return records, nil
}

// Movie returns the history of one Radarr movie.
func (h *History) Movie(ctx context.Context, movieID int64, opts ...endpoint.Options) ([]HistoryRecord, error) {
	params := endpoint.Params{"movieId": movieID}.Merge(endpoint.Collect(opts...))

	var records []HistoryRecord
	if err := h.client.Get(ctx, endpoint.HistoryMovie, params, &records); err != nil {
		return nil, fmt.Errorf("failed to get history for movie %d: %w", movieID, err)
	}
	return records, nil
}

// Series returns the history of one Sonarr series.
func (h *History) Series(ctx context.Context, seriesID int64, opts ...endpoint.Options) ([]HistoryRecord, error) {
	params := endpoint.Params{"seriesId": seriesID}.Merge(endpoint.Collect(opts...))

	var records []HistoryRecord
	if err := h.client.Get(ctx, endpoint.HistorySeries, params, &records); err != nil {
		return nil, fmt.Errorf("failed to get history for series %d: %w", seriesID, err)
	}
	return records, nil
}

// MarkFailed marks a grab as failed, which makes the service search again.
func (h *History) MarkFailed(ctx context.Context, id int64) error {
	if err := h.client.Post(ctx, endpoint.HistoryFailed, endpoint.Params{"id": id}, nil); err != nil {
		return fmt.Errorf("failed to mark history item %d as failed: %w", id, err)
	}
	return nil
}
