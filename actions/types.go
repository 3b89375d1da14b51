package actions

import (
	"github.com/s0up4200/arrcore/arr"
	"github.com/s0up4200/arrcore/domain"
	"github.com/s0up4200/arrcore/normalize"
	"github.com/s0up4200/arrcore/status"
	"github.com/s0up4200/arrcore/value"
)

// Page is one page of a paged *arr resource.
type Page[T any] struct {
	Page          int    `json:"page"`
	PageSize      int    `json:"pageSize"`
	SortKey       string `json:"sortKey,omitempty"`
	SortDirection string `json:"sortDirection,omitempty"`
	TotalRecords  int    `json:"totalRecords"`
	Records       []T    `json:"records"`
}

// TotalPages is 0 when the page size is unknown.
func (p Page[T]) TotalPages() int {
	if p.PageSize <= 0 {
		return 0
	}
	return (p.TotalRecords + p.PageSize - 1) / p.PageSize
}

func (p Page[T]) HasNextPage() bool     { return p.Page < p.TotalPages() }
func (p Page[T]) HasPreviousPage() bool { return p.Page > 1 }
func (p Page[T]) IsEmpty() bool         { return len(p.Records) == 0 }

// StatusMessage is a titled group of messages on a queue record.
type StatusMessage struct {
	Title    string   `json:"title"`
	Messages []string `json:"messages"`
}

// QueueMedia is the embedded movie or series on a queue record when the
// include flag was sent.
type QueueMedia struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Year  int    `json:"year"`
}

// QueueRecord is a Radarr or Sonarr queue entry.
type QueueRecord struct {
	ID                    int64           `json:"id"`
	Title                 string          `json:"title"`
	Status                string          `json:"status"`
	TrackedDownloadStatus string          `json:"trackedDownloadStatus"`
	TrackedDownloadState  string          `json:"trackedDownloadState"`
	StatusMessages        []StatusMessage `json:"statusMessages"`
	ErrorMessage          string          `json:"errorMessage"`
	DownloadID            string          `json:"downloadId"`
	Protocol              string          `json:"protocol"`
	DownloadClient        string          `json:"downloadClient"`
	Indexer               string          `json:"indexer"`
	OutputPath            string          `json:"outputPath"`
	Size                  float64         `json:"size"`
	Sizeleft              float64         `json:"sizeleft"`
	Timeleft              string          `json:"timeleft"`
	Added                 value.Timestamp `json:"added"`

	MovieID   int64       `json:"movieId,omitempty"`
	Movie     *QueueMedia `json:"movie,omitempty"`
	SeriesID  int64       `json:"seriesId,omitempty"`
	EpisodeID int64       `json:"episodeId,omitempty"`
	Series    *QueueMedia `json:"series,omitempty"`
}

// DownloadStatus normalizes the record. Radarr uses the tracked state as
// well; every other service uses the status and tracked status only.
func (r QueueRecord) DownloadStatus(service arr.Service) status.Download {
	if service == arr.Radarr {
		return normalize.DownloadFromRadarrQueue(r.Status, r.TrackedDownloadStatus, r.TrackedDownloadState)
	}
	return normalize.DownloadFromSonarrQueue(r.Status, r.TrackedDownloadStatus)
}

// FirstMessage returns the error message, or the first status message.
func (r QueueRecord) FirstMessage() string {
	if r.ErrorMessage != "" {
		return r.ErrorMessage
	}
	for _, sm := range r.StatusMessages {
		if len(sm.Messages) > 0 {
			return sm.Messages[0]
		}
	}
	return ""
}

// ToDownloadItem converts the record for service.
func (r QueueRecord) ToDownloadItem(service arr.Service) domain.DownloadItem {
	size := value.MustFileSize(int64(r.Size))
	remaining := value.MustFileSize(int64(r.Sizeleft))

	item := domain.DownloadItem{
		ID:             value.IntID(r.ID),
		Name:           r.Title,
		Size:           size,
		SizeRemaining:  remaining,
		Progress:       value.ProgressFromFraction(size.Subtract(remaining).Bytes(), size.Bytes()),
		Status:         r.DownloadStatus(service),
		Source:         service,
		DownloadClient: r.DownloadClient,
		Indexer:        r.Indexer,
		OutputPath:     r.OutputPath,
	}

	if eta, ok := value.ParseTimeSpan(r.Timeleft); ok {
		item.ETA = &eta
	}
	if !r.Added.IsZero() {
		added := r.Added
		item.AddedAt = &added
	}

	switch {
	case r.MovieID > 0:
		id := value.IntID(r.MovieID)
		item.MediaID = &id
	case r.SeriesID > 0:
		id := value.IntID(r.SeriesID)
		item.MediaID = &id
	}
	switch {
	case r.Movie != nil:
		item.MediaTitle = r.Movie.Title
	case r.Series != nil:
		item.MediaTitle = r.Series.Title
	}

	if item.Status.IsError() {
		item.ErrorMessage = r.FirstMessage()
	} else {
		item.ErrorMessage = r.ErrorMessage
	}
	return item
}

// QueueStatus is the summary from queue/status.
type QueueStatus struct {
	TotalCount      int  `json:"totalCount"`
	Count           int  `json:"count"`
	UnknownCount    int  `json:"unknownCount"`
	Errors          bool `json:"errors"`
	Warnings        bool `json:"warnings"`
	UnknownErrors   bool `json:"unknownErrors"`
	UnknownWarnings bool `json:"unknownWarnings"`
}

func (s QueueStatus) HasErrors() bool   { return s.Errors || s.UnknownErrors }
func (s QueueStatus) HasWarnings() bool { return s.Warnings || s.UnknownWarnings }
func (s QueueStatus) HasIssues() bool   { return s.HasErrors() || s.HasWarnings() }
func (s QueueStatus) IsEmpty() bool     { return s.TotalCount == 0 }

// History event types as reported in HistoryRecord.EventType.
const (
	EventGrabbed                = "grabbed"
	EventDownloadFolderImported = "downloadFolderImported"
	EventDownloadFailed         = "downloadFailed"
)

// HistoryRecord is an entry of the history endpoints.
type HistoryRecord struct {
	ID          int64             `json:"id"`
	EventType   string            `json:"eventType"`
	SourceTitle string            `json:"sourceTitle"`
	Date        value.Timestamp   `json:"date"`
	DownloadID  string            `json:"downloadId"`
	MovieID     int64             `json:"movieId,omitempty"`
	SeriesID    int64             `json:"seriesId,omitempty"`
	EpisodeID   int64             `json:"episodeId,omitempty"`
	Data        map[string]string `json:"data"`
}

func (h HistoryRecord) IsGrabbed() bool  { return h.EventType == EventGrabbed }
func (h HistoryRecord) IsImported() bool { return h.EventType == EventDownloadFolderImported }
func (h HistoryRecord) IsFailed() bool   { return h.EventType == EventDownloadFailed }

// Indexer is read from the event data of grab events.
func (h HistoryRecord) Indexer() string { return h.Data["indexer"] }

// CalendarEntry covers both Radarr movies and Sonarr episodes.
type CalendarEntry struct {
	ID              int64  `json:"id"`
	Title           string `json:"title"`
	Year            int    `json:"year,omitempty"`
	Status          string `json:"status,omitempty"`
	HasFile         bool   `json:"hasFile"`
	Monitored       bool   `json:"monitored"`
	InCinemas       string `json:"inCinemas,omitempty"`
	DigitalRelease  string `json:"digitalRelease,omitempty"`
	PhysicalRelease string `json:"physicalRelease,omitempty"`
	SeriesID        int64  `json:"seriesId,omitempty"`
	SeasonNumber    int    `json:"seasonNumber,omitempty"`
	EpisodeNumber   int    `json:"episodeNumber,omitempty"`
	AirDateUtc      string `json:"airDateUtc,omitempty"`
}

// IsEpisode reports whether the entry came from Sonarr.
func (c CalendarEntry) IsEpisode() bool { return c.SeriesID > 0 }

// WantedRecord is an entry of the missing and cutoff-unmet lists.
type WantedRecord struct {
	ID            int64  `json:"id"`
	Title         string `json:"title"`
	Year          int    `json:"year,omitempty"`
	Status        string `json:"status,omitempty"`
	HasFile       bool   `json:"hasFile"`
	Monitored     bool   `json:"monitored"`
	SeriesID      int64  `json:"seriesId,omitempty"`
	SeasonNumber  int    `json:"seasonNumber,omitempty"`
	EpisodeNumber int    `json:"episodeNumber,omitempty"`
	AirDateUtc    string `json:"airDateUtc,omitempty"`
}

// MediaStatus normalizes the record for service. Episodes carry no status of
// their own; they are treated as released.
func (w WantedRecord) MediaStatus(service arr.Service) status.Media {
	if service == arr.Radarr {
		return normalize.MediaFromRadarr(w.Status, w.HasFile)
	}
	if w.Status == "" {
		return normalize.MediaFromSonarr("continuing", w.HasFile)
	}
	return normalize.MediaFromSonarr(w.Status, w.HasFile)
}

// Command is a background command known to the service.
type Command struct {
	ID                  int64           `json:"id"`
	Name                string          `json:"name"`
	CommandName         string          `json:"commandName"`
	Status              string          `json:"status"`
	Priority            string          `json:"priority"`
	Queued              value.Timestamp `json:"queued"`
	Started             value.Timestamp `json:"started"`
	Ended               value.Timestamp `json:"ended"`
	StateChangeTime     value.Timestamp `json:"stateChangeTime"`
	Trigger             string          `json:"trigger"`
	SendUpdatesToClient bool            `json:"sendUpdatesToClient"`
	UpdateScheduledTask bool            `json:"updateScheduledTask"`
	Body                map[string]any  `json:"body"`
	Message             string          `json:"message"`
}

// CommandStatus is unknown for missing or unrecognised values.
func (c Command) CommandStatus() status.Command { return status.ParseCommand(c.Status) }

func (c Command) IsQueued() bool    { return c.CommandStatus() == status.CommandQueued }
func (c Command) IsStarted() bool   { return c.CommandStatus() == status.CommandStarted }
func (c Command) IsCompleted() bool { return c.CommandStatus() == status.CommandCompleted }
func (c Command) IsFailed() bool    { return c.CommandStatus() == status.CommandFailed }
func (c Command) IsRunning() bool   { return c.IsQueued() || c.IsStarted() }

// Task is a scheduled task.
type Task struct {
	ID            int64           `json:"id"`
	Name          string          `json:"name"`
	TaskName      string          `json:"taskName"`
	Interval      int             `json:"interval"`
	LastExecution value.Timestamp `json:"lastExecution"`
	LastStartTime value.Timestamp `json:"lastStartTime"`
	NextExecution value.Timestamp `json:"nextExecution"`
	LastDuration  string          `json:"lastDuration"`
}

// Duration of the last run, parsed from the TimeSpan form.
func (t Task) Duration() value.Duration {
	d, _ := value.ParseTimeSpan(t.LastDuration)
	return d
}

// Backup is an entry of system/backup.
type Backup struct {
	ID   int64           `json:"id"`
	Name string          `json:"name"`
	Path string          `json:"path"`
	Type string          `json:"type"`
	Size int64           `json:"size"`
	Time value.Timestamp `json:"time"`
}
