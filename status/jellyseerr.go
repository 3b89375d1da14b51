package status

// JellyseerrMedia is the native media status code used by Jellyseerr and
// Overseerr.
type JellyseerrMedia int

const (
	JellyseerrMediaUnknown JellyseerrMedia = iota
	JellyseerrMediaPending
	JellyseerrMediaProcessing
	JellyseerrMediaPartiallyAvailable
	JellyseerrMediaAvailable
	JellyseerrMediaDeleted
)

// ToMedia maps the named native code onto the canonical status. Codes
// outside 0..5 map to MediaUnknown.
func (j JellyseerrMedia) ToMedia() Media {
	switch j {
	case JellyseerrMediaPending:
		return MediaRequested
	case JellyseerrMediaProcessing:
		return MediaQueued
	case JellyseerrMediaPartiallyAvailable:
		return MediaDownloading
	case JellyseerrMediaAvailable:
		return MediaAvailable
	case JellyseerrMediaDeleted:
		return MediaFailed
	default:
		return MediaUnknown
	}
}

func (j JellyseerrMedia) Label() string {
	switch j {
	case JellyseerrMediaPending:
		return "Pending"
	case JellyseerrMediaProcessing:
		return "Processing"
	case JellyseerrMediaPartiallyAvailable:
		return "Partially Available"
	case JellyseerrMediaAvailable:
		return "Available"
	case JellyseerrMediaDeleted:
		return "Deleted"
	default:
		return "Unknown"
	}
}

func (j JellyseerrMedia) IsAvailable() bool {
	return j == JellyseerrMediaAvailable || j == JellyseerrMediaPartiallyAvailable
}

func (j JellyseerrMedia) IsProcessing() bool {
	return j == JellyseerrMediaProcessing
}

func (j JellyseerrMedia) IsPending() bool {
	return j == JellyseerrMediaPending
}

// JellyseerrRequest is the native request status code used by Jellyseerr
// and Overseerr.
type JellyseerrRequest int

const (
	JellyseerrRequestPending JellyseerrRequest = iota + 1
	JellyseerrRequestApproved
	JellyseerrRequestDeclined
	JellyseerrRequestAvailable
	JellyseerrRequestPartiallyAvailable
)

// ToRequest maps the native code onto the canonical status. Unrecognised
// codes are treated as pending.
func (j JellyseerrRequest) ToRequest() Request {
	switch j {
	case JellyseerrRequestApproved, JellyseerrRequestPartiallyAvailable:
		return RequestApproved
	case JellyseerrRequestDeclined:
		return RequestRejected
	case JellyseerrRequestAvailable:
		return RequestFulfilled
	default:
		return RequestPending
	}
}

func (j JellyseerrRequest) Label() string {
	switch j {
	case JellyseerrRequestApproved:
		return "Approved"
	case JellyseerrRequestDeclined:
		return "Declined"
	case JellyseerrRequestAvailable:
		return "Available"
	case JellyseerrRequestPartiallyAvailable:
		return "Partially Available"
	default:
		return "Pending"
	}
}

func (j JellyseerrRequest) IsPending() bool {
	return j == JellyseerrRequestPending
}

func (j JellyseerrRequest) IsApproved() bool {
	switch j {
	case JellyseerrRequestApproved, JellyseerrRequestAvailable, JellyseerrRequestPartiallyAvailable:
		return true
	default:
		return false
	}
}

func (j JellyseerrRequest) IsDeclined() bool {
	return j == JellyseerrRequestDeclined
}

func (j JellyseerrRequest) IsFulfilled() bool {
	return j == JellyseerrRequestAvailable
}

func (j JellyseerrRequest) NeedsAction() bool {
	return j == JellyseerrRequestPending
}

func (j JellyseerrRequest) IsTerminal() bool {
	return j == JellyseerrRequestDeclined || j == JellyseerrRequestAvailable
}

func (j JellyseerrRequest) ColorClass() string {
	switch j {
	case JellyseerrRequestApproved:
		return ColorBlue
	case JellyseerrRequestDeclined:
		return ColorRed
	case JellyseerrRequestAvailable:
		return ColorGreen
	case JellyseerrRequestPartiallyAvailable:
		return ColorCyan
	default:
		return ColorYellow
	}
}
