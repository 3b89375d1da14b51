package nzbget

import (
	"github.com/s0up4200/arrcore/arr"
	"github.com/s0up4200/arrcore/domain"
	"github.com/s0up4200/arrcore/normalize"
	"github.com/s0up4200/arrcore/value"
)

// joinSize rebuilds a 64-bit byte count from NZBGet's split fields.
func joinSize(lo, hi uint32) int64 {
	return int64(hi)<<32 | int64(lo)
}

// Group is an entry of listgroups.
type Group struct {
	NZBID            int64  `json:"NZBID"`
	NZBName          string `json:"NZBName"`
	Status           string `json:"Status"`
	Category         string `json:"Category"`
	FileSizeLo       uint32 `json:"FileSizeLo"`
	FileSizeHi       uint32 `json:"FileSizeHi"`
	RemainingSizeLo  uint32 `json:"RemainingSizeLo"`
	RemainingSizeHi  uint32 `json:"RemainingSizeHi"`
	DownloadedSizeLo uint32 `json:"DownloadedSizeLo"`
	DownloadedSizeHi uint32 `json:"DownloadedSizeHi"`
	MinPostTime      int64  `json:"MinPostTime"`
	MaxPriority      int    `json:"MaxPriority"`
	ActiveDownloads  int    `json:"ActiveDownloads"`
	DownloadTimeSec  int64  `json:"DownloadTimeSec"`
	DestDir          string `json:"DestDir"`
	FinalDir         string `json:"FinalDir"`
}

func (g Group) Size() int64      { return joinSize(g.FileSizeLo, g.FileSizeHi) }
func (g Group) Remaining() int64 { return joinSize(g.RemainingSizeLo, g.RemainingSizeHi) }

func (g Group) OutputPath() string {
	if g.FinalDir != "" {
		return g.FinalDir
	}
	return g.DestDir
}

// ToDownloadItem maps the group. rate is the current overall download rate
// in bytes per second and is only used for the ETA.
func (g Group) ToDownloadItem(rate int64) domain.DownloadItem {
	size := value.MustFileSize(g.Size())
	remaining := value.MustFileSize(g.Remaining())
	priority := g.MaxPriority

	item := domain.DownloadItem{
		ID:             value.IntID(g.NZBID),
		Name:           g.NZBName,
		Size:           size,
		SizeRemaining:  remaining,
		Progress:       value.ProgressFromFraction(size.Subtract(remaining).Bytes(), size.Bytes()),
		Status:         normalize.DownloadFromNZBGet(g.Status),
		Source:         arr.NZBGet,
		DownloadClient: arr.NZBGet.Label(),
		Category:       g.Category,
		OutputPath:     g.OutputPath(),
		Priority:       &priority,
	}
	if rate > 0 && item.IsActive() && remaining.Bytes() > 0 {
		if eta, err := value.DurationFromSeconds(remaining.Bytes() / rate); err == nil {
			item.ETA = &eta
		}
	}
	return item
}

// HistoryItem is an entry of history.
type HistoryItem struct {
	NZBID       int64  `json:"NZBID"`
	Name        string `json:"Name"`
	Status      string `json:"Status"`
	Category    string `json:"Category"`
	Kind        string `json:"Kind"`
	FileSizeLo  uint32 `json:"FileSizeLo"`
	FileSizeHi  uint32 `json:"FileSizeHi"`
	HistoryTime int64  `json:"HistoryTime"`
	DestDir     string `json:"DestDir"`
	FinalDir    string `json:"FinalDir"`
}

func (h HistoryItem) Size() int64 { return joinSize(h.FileSizeLo, h.FileSizeHi) }

func (h HistoryItem) ToDownloadItem() domain.DownloadItem {
	size := value.MustFileSize(h.Size())
	st := normalize.DownloadFromNZBGetHistory(h.Status)

	item := domain.DownloadItem{
		ID:             value.IntID(h.NZBID),
		Name:           h.Name,
		Size:           size,
		Status:         st,
		Source:         arr.NZBGet,
		DownloadClient: arr.NZBGet.Label(),
		Category:       h.Category,
		OutputPath:     h.FinalDir,
	}
	if item.OutputPath == "" {
		item.OutputPath = h.DestDir
	}
	if st.IsError() {
		item.ErrorMessage = h.Status
	} else {
		item.Progress = value.ProgressFromRatio(1)
	}
	if h.HistoryTime > 0 {
		ts := value.TimestampFromUnix(h.HistoryTime)
		item.AddedAt = &ts
	}
	return item
}

// ServerStatus is the subset of the status call the queue view needs.
type ServerStatus struct {
	DownloadRate    int64  `json:"DownloadRate"`
	RemainingSizeLo uint32 `json:"RemainingSizeLo"`
	RemainingSizeHi uint32 `json:"RemainingSizeHi"`
	DownloadPaused  bool   `json:"DownloadPaused"`
	ServerStandBy   bool   `json:"ServerStandBy"`
	UpTimeSec       int64  `json:"UpTimeSec"`
	FreeDiskSpaceMB int64  `json:"FreeDiskSpaceMB"`
}

func (s ServerStatus) Remaining() int64 { return joinSize(s.RemainingSizeLo, s.RemainingSizeHi) }
