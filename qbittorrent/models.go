package qbittorrent

import (
	"path"
	"strings"
	"time"

	"github.com/autobrr/go-qbittorrent"

	"github.com/s0up4200/arrcore/arr"
	"github.com/s0up4200/arrcore/domain"
	"github.com/s0up4200/arrcore/normalize"
	"github.com/s0up4200/arrcore/value"
)

// etaInfinity is what qBittorrent reports when no ETA can be computed.
const etaInfinity = 8640000

// TorrentInfo is the subset of a torrent the SDK works with.
type TorrentInfo struct {
	Hash           string
	Name           string
	SavePath       string
	ContentPath    string
	State          string
	Size           int64
	Progress       float64
	DownloadedSize int64
	UploadedSize   int64
	Ratio          float64
	ETA            int64
	AddedOn        time.Time
	CompletionOn   time.Time
	Category       string
	Tags           []string
	Files          []string
}

func fromTorrent(t qbittorrent.Torrent) TorrentInfo {
	info := TorrentInfo{
		Hash:           t.Hash,
		Name:           t.Name,
		SavePath:       t.SavePath,
		ContentPath:    t.ContentPath,
		State:          string(t.State),
		Size:           t.Size,
		Progress:       t.Progress,
		DownloadedSize: t.Downloaded,
		UploadedSize:   t.Uploaded,
		Ratio:          t.Ratio,
		ETA:            t.ETA,
		Category:       t.Category,
	}
	if t.AddedOn > 0 {
		info.AddedOn = time.Unix(t.AddedOn, 0)
	}
	if t.CompletionOn > 0 {
		info.CompletionOn = time.Unix(t.CompletionOn, 0)
	}
	for _, tag := range strings.Split(t.Tags, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			info.Tags = append(info.Tags, tag)
		}
	}
	return info
}

// IsActivelySeeding reports whether the torrent is in an upload state.
func (t TorrentInfo) IsActivelySeeding() bool {
	switch t.State {
	case "uploading", "stalledUP", "queuedUP", "forcedUP":
		return true
	default:
		return false
	}
}

// FullPath returns the path of the torrent content.
func (t TorrentInfo) FullPath() string {
	if t.ContentPath != "" {
		return t.ContentPath
	}
	return path.Join(t.SavePath, t.Name)
}

// Remaining is the number of bytes still to download.
func (t TorrentInfo) Remaining() int64 {
	done := int64(float64(t.Size) * t.Progress)
	return max(t.Size-done, 0)
}

// ToDownloadItem normalizes the torrent. The hash is used as id, upper
// cased like the downloadId Radarr and Sonarr report for torrents.
func (t TorrentInfo) ToDownloadItem() domain.DownloadItem {
	id, _ := value.StringID(strings.ToUpper(t.Hash))
	item := domain.DownloadItem{
		ID:             id,
		Name:           t.Name,
		Size:           value.MustFileSize(t.Size),
		SizeRemaining:  value.MustFileSize(t.Remaining()),
		Progress:       value.ProgressFromRatio(t.Progress),
		Status:         normalize.DownloadFromQBittorrent(t.State),
		Source:         arr.QBittorrent,
		DownloadClient: arr.QBittorrent.Label(),
		Category:       t.Category,
		OutputPath:     t.FullPath(),
	}
	if t.ETA > 0 && t.ETA < etaInfinity && item.IsActive() {
		if eta, err := value.DurationFromSeconds(t.ETA); err == nil {
			item.ETA = &eta
		}
	}
	if !t.AddedOn.IsZero() {
		ts := value.TimestampFrom(t.AddedOn)
		item.AddedAt = &ts
	}
	if item.HasError() {
		item.ErrorMessage = t.State
	}
	return item
}
