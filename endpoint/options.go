package endpoint

import "time"

// Options is implemented by every request option builder.
type Options interface {
	Params() Params
}

// Common include flags understood by the *arr list endpoints.
const (
	IncludeMovie         = "includeMovie"
	IncludeSeries        = "includeSeries"
	IncludeEpisode       = "includeEpisode"
	IncludeEpisodeFile   = "includeEpisodeFile"
	IncludeImages        = "includeImages"
	IncludeUnknownMovies = "includeUnknownMovieItems"
	IncludeUnknownSeries = "includeUnknownSeriesItems"
)

const (
	DefaultPageSize      = 10
	DefaultQueuePageSize = 50
	DefaultBulkPageSize  = 100
	DefaultSeerrTake     = 20
)

const dateLayout = "2006-01-02"

// Pagination selects one page of a paged *arr resource.
type Pagination struct {
	Page     int
	PageSize int
}

// DefaultPagination is page 1 with 10 records.
func DefaultPagination() Pagination {
	return Pagination{Page: 1, PageSize: DefaultPageSize}
}

// NewPagination fills non-positive arguments with the defaults.
func NewPagination(page, pageSize int) Pagination {
	p := DefaultPagination()
	if page > 0 {
		p.Page = page
	}
	if pageSize > 0 {
		p.PageSize = pageSize
	}
	return p
}

func (p Pagination) WithPage(page int) Pagination {
	p.Page = page
	return p
}

func (p Pagination) WithPageSize(size int) Pagination {
	p.PageSize = size
	return p
}

func (p Pagination) Params() Params {
	return Params{"page": p.Page, "pageSize": p.PageSize}
}

type SortDirection string

const (
	Ascending  SortDirection = "ascending"
	Descending SortDirection = "descending"
)

// Sort orders a paged resource. Empty fields are not sent.
type Sort struct {
	Key       string
	Direction SortDirection
}

func SortBy(key string) Sort {
	return Sort{Key: key}
}

func (s Sort) Ascending() Sort {
	s.Direction = Ascending
	return s
}

func (s Sort) Descending() Sort {
	s.Direction = Descending
	return s
}

func (s Sort) Params() Params {
	p := Params{}
	if s.Key != "" {
		p["sortKey"] = s.Key
	}
	if s.Direction != "" {
		p["sortDirection"] = string(s.Direction)
	}
	return p
}

// Offset is the take/skip pagination used by Jellyseerr and Overseerr.
type Offset struct {
	Take   int
	Skip   int
	Filter string
	Sort   string
}

func (o Offset) WithTake(n int) Offset {
	o.Take = n
	return o
}

func (o Offset) WithSkip(n int) Offset {
	o.Skip = n
	return o
}

func (o Offset) WithFilter(f string) Offset {
	o.Filter = f
	return o
}

func (o Offset) Params() Params {
	p := Params{}
	if o.Take > 0 {
		p["take"] = o.Take
	}
	if o.Skip > 0 {
		p["skip"] = o.Skip
	}
	if o.Filter != "" {
		p["filter"] = o.Filter
	}
	if o.Sort != "" {
		p["sort"] = o.Sort
	}
	return p
}

func includeParams(p Params, include []string) Params {
	for _, flag := range include {
		p[flag] = true
	}
	return p
}

// CalendarOptions bounds a calendar query. Zero times are not sent, in which
// case the service uses its own window.
type CalendarOptions struct {
	Start       time.Time
	End         time.Time
	Unmonitored bool
	Include     []string
}

func (o CalendarOptions) Params() Params {
	p := Params{}
	if !o.Start.IsZero() {
		p["start"] = o.Start.Format(dateLayout)
	}
	if !o.End.IsZero() {
		p["end"] = o.End.Format(dateLayout)
	}
	if o.Unmonitored {
		p["unmonitored"] = true
	}
	return includeParams(p, o.Include)
}

// HistoryOptions filters history queries.
type HistoryOptions struct {
	EventType  int
	DownloadID string
	Include    []string
}

func (o HistoryOptions) Params() Params {
	p := Params{}
	if o.EventType > 0 {
		p["eventType"] = o.EventType
	}
	if o.DownloadID != "" {
		p["downloadId"] = o.DownloadID
	}
	return includeParams(p, o.Include)
}

// WantedOptions filters the missing and cutoff-unmet lists.
type WantedOptions struct {
	Monitored *bool
	Include   []string
}

func (o WantedOptions) Params() Params {
	p := Params{}
	if o.Monitored != nil {
		p["monitored"] = *o.Monitored
	}
	return includeParams(p, o.Include)
}

// QueueOptions filters the queue.
type QueueOptions struct {
	Protocol string
	Include  []string
}

func (o QueueOptions) Params() Params {
	p := Params{}
	if o.Protocol != "" {
		p["protocol"] = o.Protocol
	}
	return includeParams(p, o.Include)
}

// Collect merges the params of every non-nil option in order.
func Collect(opts ...Options) Params {
	out := Params{}
	for _, o := range opts {
		if o == nil {
			continue
		}
		out = out.Merge(o.Params())
	}
	return out
}
