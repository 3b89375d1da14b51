package normalize

import (
	"strings"

	"github.com/s0up4200/arrcore/status"
)

// DownloadFromNZBGet maps the status of an NZBGet queue group.
func DownloadFromNZBGet(groupStatus string) status.Download {
	switch strings.ToUpper(groupStatus) {
	case "QUEUED", "PP_QUEUED":
		return status.DownloadQueued
	case "PAUSED":
		return status.DownloadPaused
	case "DOWNLOADING", "FETCHING":
		return status.DownloadDownloading
	case "LOADING_PARS", "VERIFYING_SOURCES", "REPAIRING", "VERIFYING_REPAIRED":
		return status.DownloadVerifying
	case "RENAMING", "UNPACKING":
		return status.DownloadExtracting
	case "MOVING", "EXECUTING_SCRIPT", "PP_FINISHED":
		return status.DownloadImporting
	case "SUCCESS":
		return status.DownloadCompleted
	case "FAILURE", "DELETED":
		return status.DownloadFailed
	default:
		return status.DownloadUnknown
	}
}

// DownloadFromNZBGetHistory maps the compound status of an NZBGet history
// entry, e.g. "SUCCESS/UNPACK" or "FAILURE/PAR".
func DownloadFromNZBGetHistory(historyStatus string) status.Download {
	switch strings.ToUpper(historyStatus) {
	case "SUCCESS", "SUCCESS/ALL", "SUCCESS/UNPACK", "SUCCESS/MARK", "SUCCESS/GOOD":
		return status.DownloadCompleted
	case "FAILURE", "FAILURE/UNPACK", "FAILURE/PAR", "FAILURE/MOVE", "FAILURE/SCRIPT",
		"FAILURE/DISK", "FAILURE/HEALTH", "FAILURE/BAD":
		return status.DownloadFailed
	case "DELETED", "DELETED/DUPE", "DELETED/MANUAL":
		return status.DownloadFailed
	default:
		return status.DownloadUnknown
	}
}

// DownloadFromSABnzbd maps a SABnzbd queue or history slot status.
func DownloadFromSABnzbd(slotStatus string) status.Download {
	switch strings.ToLower(slotStatus) {
	case "queued":
		return status.DownloadQueued
	case "paused":
		return status.DownloadPaused
	case "downloading":
		return status.DownloadDownloading
	case "verifying", "repairing":
		return status.DownloadVerifying
	case "extracting":
		return status.DownloadExtracting
	case "moving", "running":
		return status.DownloadImporting
	case "completed":
		return status.DownloadCompleted
	case "failed":
		return status.DownloadFailed
	default:
		return status.DownloadUnknown
	}
}
