package normalize

import (
	"strings"

	"github.com/s0up4200/arrcore/status"
)

// MediaFromSonarr maps a series status (continuing, ended, upcoming,
// deleted) to a media status. hasFiles decides between Available and
// Missing for series that have aired.
func MediaFromSonarr(seriesStatus string, hasFiles bool) status.Media {
	switch strings.ToLower(seriesStatus) {
	case "continuing", "ended":
		if hasFiles {
			return status.MediaAvailable
		}
		return status.MediaMissing
	case "upcoming":
		return status.MediaAnnounced
	default:
		return status.MediaUnknown
	}
}

// MediaFromRadarr maps a movie status (released, inCinemas, announced,
// tba, deleted) to a media status.
func MediaFromRadarr(movieStatus string, hasFile bool) status.Media {
	switch strings.ToLower(movieStatus) {
	case "released", "incinemas":
		if hasFile {
			return status.MediaAvailable
		}
		return status.MediaMissing
	case "announced", "tba":
		return status.MediaAnnounced
	default:
		return status.MediaUnknown
	}
}

// DownloadFromSonarrQueue maps a queue record. A recognised trackedStatus
// takes precedence over the record status; pass "" when absent.
func DownloadFromSonarrQueue(queueStatus, trackedStatus string) status.Download {
	if trackedStatus != "" {
		if d := fromTrackedStatus(trackedStatus); d != status.DownloadUnknown {
			return d
		}
	}

	switch strings.ToLower(queueStatus) {
	case "queued", "delay":
		return status.DownloadQueued
	case "paused":
		return status.DownloadPaused
	case "downloading":
		return status.DownloadDownloading
	case "completed":
		return status.DownloadCompleted
	case "failed":
		return status.DownloadFailed
	case "warning", "downloadclientunavailable":
		return status.DownloadWarning
	default:
		return status.DownloadUnknown
	}
}

// DownloadFromRadarrQueue maps a queue record using, in order:
//
//  1. trackedState, when it names a known pipeline stage;
//  2. a warning or error trackedStatus, which overrides the stage from 1;
//  3. otherwise the same two-field rule as DownloadFromSonarrQueue.
func DownloadFromRadarrQueue(queueStatus, trackedStatus, trackedState string) status.Download {
	if trackedState != "" {
		if d := fromTrackedState(trackedState); d != status.DownloadUnknown {
			switch strings.ToLower(trackedStatus) {
			case "warning":
				return status.DownloadWarning
			case "error":
				return status.DownloadFailed
			}
			return d
		}
	}

	return DownloadFromSonarrQueue(queueStatus, trackedStatus)
}

func fromTrackedStatus(s string) status.Download {
	switch status.ParseTrackedStatus(s) {
	case status.TrackedOK:
		return status.DownloadDownloading
	case status.TrackedWarning:
		return status.DownloadWarning
	case status.TrackedError:
		return status.DownloadFailed
	default:
		return status.DownloadUnknown
	}
}

func fromTrackedState(s string) status.Download {
	switch status.ParseTrackedState(s) {
	case status.TrackedStateDownloading:
		return status.DownloadDownloading
	case status.TrackedStateDownloadFailed, status.TrackedStateDownloadFailedPending, status.TrackedStateImportFailed:
		return status.DownloadFailed
	case status.TrackedStateImportPending, status.TrackedStateImporting:
		return status.DownloadImporting
	case status.TrackedStateImported:
		return status.DownloadCompleted
	default:
		return status.DownloadUnknown
	}
}
