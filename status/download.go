package status

import "strings"

// Download is the canonical lifecycle state of a download, shared by every
// download client and *arr queue.
type Download string

const (
	DownloadUnknown     Download = "unknown"
	DownloadQueued      Download = "queued"
	DownloadPaused      Download = "paused"
	DownloadDownloading Download = "downloading"
	DownloadVerifying   Download = "verifying"
	DownloadExtracting  Download = "extracting"
	DownloadImporting   Download = "importing"
	DownloadCompleted   Download = "completed"
	DownloadWarning     Download = "warning"
	DownloadFailed      Download = "failed"
)

// AllDownload returns every download status in declaration order.
func AllDownload() []Download {
	return []Download{
		DownloadUnknown,
		DownloadQueued,
		DownloadPaused,
		DownloadDownloading,
		DownloadVerifying,
		DownloadExtracting,
		DownloadImporting,
		DownloadCompleted,
		DownloadWarning,
		DownloadFailed,
	}
}

// ParseDownload returns the status for a wire value, or DownloadUnknown.
func ParseDownload(s string) Download {
	d := Download(strings.ToLower(strings.TrimSpace(s)))
	for _, v := range AllDownload() {
		if v == d {
			return d
		}
	}
	return DownloadUnknown
}

func (d Download) String() string {
	return string(d)
}

// IsActive reports whether work is currently being done on the download.
func (d Download) IsActive() bool {
	switch d {
	case DownloadDownloading, DownloadVerifying, DownloadExtracting, DownloadImporting:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether the download reached a final state.
func (d Download) IsTerminal() bool {
	return d == DownloadCompleted || d == DownloadFailed
}

// IsError reports whether the download failed or needs attention.
func (d Download) IsError() bool {
	return d == DownloadFailed || d == DownloadWarning
}

// IsWaiting reports whether the download is waiting to be processed.
func (d Download) IsWaiting() bool {
	return d == DownloadQueued || d == DownloadPaused
}

// IsPostProcessing reports whether the payload is done transferring and is
// being verified, unpacked or imported.
func (d Download) IsPostProcessing() bool {
	switch d {
	case DownloadVerifying, DownloadExtracting, DownloadImporting:
		return true
	default:
		return false
	}
}

// Priority orders statuses for display, lower is more urgent.
func (d Download) Priority() int {
	switch d {
	case DownloadFailed:
		return 1
	case DownloadWarning:
		return 2
	case DownloadDownloading:
		return 3
	case DownloadVerifying:
		return 4
	case DownloadExtracting:
		return 5
	case DownloadImporting:
		return 6
	case DownloadQueued:
		return 7
	case DownloadPaused:
		return 8
	case DownloadCompleted:
		return 9
	default:
		return 10
	}
}

func (d Download) Label() string {
	switch d {
	case DownloadQueued:
		return "Queued"
	case DownloadPaused:
		return "Paused"
	case DownloadDownloading:
		return "Downloading"
	case DownloadVerifying:
		return "Verifying"
	case DownloadExtracting:
		return "Extracting"
	case DownloadImporting:
		return "Importing"
	case DownloadCompleted:
		return "Completed"
	case DownloadWarning:
		return "Warning"
	case DownloadFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// ColorClass returns a UI color name for the status.
func (d Download) ColorClass() string {
	switch d {
	case DownloadQueued:
		return ColorCyan
	case DownloadDownloading:
		return ColorBlue
	case DownloadVerifying, DownloadExtracting, DownloadImporting:
		return ColorPurple
	case DownloadCompleted:
		return ColorGreen
	case DownloadWarning:
		return ColorYellow
	case DownloadFailed:
		return ColorRed
	default:
		return ColorGray
	}
}
