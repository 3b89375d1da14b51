package domain

import (
	"fmt"
	"slices"

	"github.com/s0up4200/arrcore/arr"
	"github.com/s0up4200/arrcore/status"
	"github.com/s0up4200/arrcore/value"
)

// DownloadItem is a single transfer as reported by an *arr queue or a
// download client, with its status already normalized.
type DownloadItem struct {
	ID            value.ID
	Name          string
	Size          value.FileSize
	SizeRemaining value.FileSize
	Progress      value.Progress
	Status        status.Download
	Source        arr.Service

	ETA            *value.Duration
	DownloadClient string
	Indexer        string
	Category       string
	OutputPath     string
	MediaID        *value.ID
	MediaTitle     string
	ErrorMessage   string
	AddedAt        *value.Timestamp
	Priority       *int
}

func (d DownloadItem) IsActive() bool  { return d.Status.IsActive() }
func (d DownloadItem) IsWaiting() bool { return d.Status.IsWaiting() }

// HasError is true for error statuses and for any item carrying an error
// message, whatever its status.
func (d DownloadItem) HasError() bool {
	return d.Status.IsError() || d.ErrorMessage != ""
}

func (d DownloadItem) IsComplete() bool {
	return d.Status == status.DownloadCompleted || d.Progress.IsComplete()
}

func (d DownloadItem) DownloadedSize() value.FileSize {
	return d.Size.Subtract(d.SizeRemaining)
}

// SpeedMbps estimates the transfer rate in MB/s from the remaining size and
// the ETA. ok is false when there is no usable ETA.
func (d DownloadItem) SpeedMbps() (speed float64, ok bool) {
	if d.ETA == nil || d.ETA.IsZero() {
		return 0, false
	}
	return d.SizeRemaining.MB() / float64(d.ETA.Seconds()), true
}

func (d DownloadItem) DisplayTitle() string {
	if d.MediaTitle != "" {
		return d.MediaTitle
	}
	return d.Name
}

func (d DownloadItem) ToMap() map[string]any {
	m := map[string]any{
		"id":              d.ID.String(),
		"name":            d.Name,
		"size":            d.Size.ToMap(),
		"size_remaining":  d.SizeRemaining.ToMap(),
		"progress":        d.Progress.ToMap(),
		"status":          d.Status.String(),
		"source":          d.Source.String(),
		"eta":             nil,
		"download_client": nilIfEmpty(d.DownloadClient),
		"indexer":         nilIfEmpty(d.Indexer),
		"category":        nilIfEmpty(d.Category),
		"output_path":     nilIfEmpty(d.OutputPath),
		"media_id":        nil,
		"media_title":     nilIfEmpty(d.MediaTitle),
		"error_message":   nilIfEmpty(d.ErrorMessage),
		"added_at":        nil,
		"priority":        optionalInt(d.Priority),
	}
	if d.ETA != nil {
		m["eta"] = d.ETA.ToMap()
	}
	if d.MediaID != nil {
		m["media_id"] = d.MediaID.String()
	}
	if d.AddedAt != nil {
		m["added_at"] = d.AddedAt.ToMap()
	}
	return m
}

// DownloadItemFromMap builds an item from its snake_case map form. progress
// is a percentage and eta is in seconds. Only id is required.
func DownloadItemFromMap(m map[string]any) (DownloadItem, error) {
	id, err := value.ParseID(m["id"])
	if err != nil {
		return DownloadItem{}, fmt.Errorf("download item: %w", err)
	}

	item := DownloadItem{
		ID:             id,
		Name:           getString(m, "name"),
		Status:         status.ParseDownload(getString(m, "status")),
		Source:         arr.Service(getString(m, "source")),
		DownloadClient: getString(m, "download_client"),
		Indexer:        getString(m, "indexer"),
		Category:       getString(m, "category"),
		OutputPath:     getString(m, "output_path"),
		MediaID:        getOptionalID(m, "media_id"),
		MediaTitle:     getString(m, "media_title"),
		ErrorMessage:   getString(m, "error_message"),
		AddedAt:        getTimestamp(m, "added_at"),
	}

	if n, ok := getInt64(m, "size"); ok {
		item.Size = value.MustFileSize(n)
	}
	if n, ok := getInt64(m, "size_remaining"); ok {
		item.SizeRemaining = value.MustFileSize(n)
	}
	if p, ok := getFloat(m, "progress"); ok {
		item.Progress = value.ProgressFromPercentage(p)
	}
	if n, ok := getInt64(m, "eta"); ok {
		if eta, err := value.DurationFromSeconds(n); err == nil {
			item.ETA = &eta
		}
	}
	if n, ok := getInt64(m, "priority"); ok {
		p := int(n)
		item.Priority = &p
	}

	return item, nil
}

// DownloadItems is an ordered collection of download items. Every method
// returns a new collection and leaves the receiver untouched.
type DownloadItems []DownloadItem

func (c DownloadItems) Filter(keep func(DownloadItem) bool) DownloadItems {
	out := make(DownloadItems, 0, len(c))
	for _, item := range c {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}

func (c DownloadItems) ByStatus(statuses ...status.Download) DownloadItems {
	return c.Filter(func(item DownloadItem) bool {
		return slices.Contains(statuses, item.Status)
	})
}

func (c DownloadItems) BySource(source arr.Service) DownloadItems {
	return c.Filter(func(item DownloadItem) bool { return item.Source == source })
}

func (c DownloadItems) Active() DownloadItems {
	return c.Filter(DownloadItem.IsActive)
}

func (c DownloadItems) Completed() DownloadItems {
	return c.ByStatus(status.DownloadCompleted)
}

func (c DownloadItems) Failed() DownloadItems {
	return c.ByStatus(status.DownloadFailed)
}

func (c DownloadItems) Waiting() DownloadItems {
	return c.Filter(DownloadItem.IsWaiting)
}

func (c DownloadItems) WithErrors() DownloadItems {
	return c.Filter(DownloadItem.HasError)
}

// SortByPriority orders items by status priority. Items of equal priority
// keep their relative order.
func (c DownloadItems) SortByPriority() DownloadItems {
	out := slices.Clone(c)
	slices.SortStableFunc(out, func(a, b DownloadItem) int {
		return a.Status.Priority() - b.Status.Priority()
	})
	return out
}

func (c DownloadItems) TotalSize() value.FileSize {
	var total value.FileSize
	for _, item := range c {
		total = total.Add(item.Size)
	}
	return total
}

func (c DownloadItems) TotalRemaining() value.FileSize {
	var total value.FileSize
	for _, item := range c {
		total = total.Add(item.SizeRemaining)
	}
	return total
}

// TotalProgress weighs each item by its size.
func (c DownloadItems) TotalProgress() value.Progress {
	total := c.TotalSize()
	if total.IsZero() {
		return value.ProgressZero
	}
	downloaded := total.Subtract(c.TotalRemaining())
	return value.ProgressFromFraction(downloaded.Bytes(), total.Bytes())
}

func (c DownloadItems) Merge(other DownloadItems) DownloadItems {
	out := make(DownloadItems, 0, len(c)+len(other))
	out = append(out, c...)
	return append(out, other...)
}

func (c DownloadItems) ToMap() map[string]any {
	items := make([]map[string]any, 0, len(c))
	for _, item := range c {
		items = append(items, item.ToMap())
	}
	return map[string]any{
		"items":           items,
		"count":           len(c),
		"total_size":      c.TotalSize().ToMap(),
		"total_remaining": c.TotalRemaining().ToMap(),
		"total_progress":  c.TotalProgress().ToMap(),
	}
}
