package normalize

import "github.com/s0up4200/arrcore/status"

// MediaFromJellyseerr maps a Jellyseerr media status code.
func MediaFromJellyseerr(code int) status.Media {
	switch code {
	case 1:
		return status.MediaRequested
	case 2:
		return status.MediaQueued
	case 3:
		return status.MediaFailed
	case 4:
		return status.MediaAvailable
	case 5:
		return status.MediaDownloading
	default:
		return status.MediaUnknown
	}
}

// RequestFromJellyseerr maps a Jellyseerr request status code. Unknown codes
// are reported as pending, not as an error.
func RequestFromJellyseerr(code int) status.Request {
	switch code {
	case 2, 5:
		return status.RequestApproved
	case 3:
		return status.RequestRejected
	case 4:
		return status.RequestFulfilled
	default:
		return status.RequestPending
	}
}

// MediaFromOverseerr is MediaFromJellyseerr; the two share a status model.
func MediaFromOverseerr(code int) status.Media {
	return MediaFromJellyseerr(code)
}

// RequestFromOverseerr is RequestFromJellyseerr.
func RequestFromOverseerr(code int) status.Request {
	return RequestFromJellyseerr(code)
}
