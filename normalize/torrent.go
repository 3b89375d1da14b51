package normalize

import (
	"strings"

	"github.com/s0up4200/arrcore/status"
)

// DownloadFromQBittorrent maps a qBittorrent torrent state such as
// "stalledUP" or "metaDL". The "DN" spellings ("stalledDN", "forceDN") are
// accepted as aliases of the "DL" states.
func DownloadFromQBittorrent(state string) status.Download {
	switch strings.ToLower(state) {
	case "stalledup", "stalleddl", "stalleddn":
		return status.DownloadWarning
	case "pausedup", "pauseddl", "pauseddn":
		return status.DownloadPaused
	case "queuedup", "queueddl", "queueddn":
		return status.DownloadQueued
	case "downloading", "metadl", "forceup", "forcedl", "forcedn":
		return status.DownloadDownloading
	case "uploading":
		return status.DownloadCompleted
	case "checkingup", "checkingdl", "checkingdn", "checkingresumedata":
		return status.DownloadVerifying
	case "moving":
		return status.DownloadImporting
	case "error", "missingfiles":
		return status.DownloadFailed
	default:
		return status.DownloadUnknown
	}
}

// Transmission torrent status codes.
const (
	TransmissionStopped      = 0
	TransmissionCheckWait    = 1
	TransmissionCheck        = 2
	TransmissionDownloadWait = 3
	TransmissionDownload     = 4
	TransmissionSeedWait     = 5
	TransmissionSeed         = 6
)

// DownloadFromTransmission maps a Transmission status code (0..6).
func DownloadFromTransmission(code int) status.Download {
	switch code {
	case TransmissionStopped:
		return status.DownloadPaused
	case TransmissionCheckWait, TransmissionDownloadWait, TransmissionSeedWait:
		return status.DownloadQueued
	case TransmissionCheck:
		return status.DownloadVerifying
	case TransmissionDownload:
		return status.DownloadDownloading
	case TransmissionSeed:
		return status.DownloadCompleted
	default:
		return status.DownloadUnknown
	}
}

// DownloadFromDeluge maps a Deluge torrent state.
func DownloadFromDeluge(state string) status.Download {
	switch strings.ToLower(state) {
	case "queued":
		return status.DownloadQueued
	case "paused":
		return status.DownloadPaused
	case "downloading":
		return status.DownloadDownloading
	case "seeding":
		return status.DownloadCompleted
	case "checking":
		return status.DownloadVerifying
	case "moving":
		return status.DownloadImporting
	case "error":
		return status.DownloadFailed
	default:
		return status.DownloadUnknown
	}
}
