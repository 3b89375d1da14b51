package status

import "strings"

// Media is the canonical availability state of a movie, series or other
// library item.
type Media string

const (
	MediaUnknown     Media = "unknown"
	MediaAnnounced   Media = "announced"
	MediaRequested   Media = "requested"
	MediaMissing     Media = "missing"
	MediaQueued      Media = "queued"
	MediaDownloading Media = "downloading"
	MediaDownloaded  Media = "downloaded"
	MediaAvailable   Media = "available"
	MediaFailed      Media = "failed"
)

// AllMedia returns every media status in declaration order.
func AllMedia() []Media {
	return []Media{
		MediaUnknown,
		MediaAnnounced,
		MediaRequested,
		MediaMissing,
		MediaQueued,
		MediaDownloading,
		MediaDownloaded,
		MediaAvailable,
		MediaFailed,
	}
}

// ParseMedia returns the status for a wire value, or MediaUnknown.
func ParseMedia(s string) Media {
	m := Media(strings.ToLower(strings.TrimSpace(s)))
	for _, v := range AllMedia() {
		if v == m {
			return m
		}
	}
	return MediaUnknown
}

func (m Media) String() string {
	return string(m)
}

// IsActive reports whether the item is on its way into the library.
func (m Media) IsActive() bool {
	return m == MediaQueued || m == MediaDownloading
}

func (m Media) IsTerminal() bool {
	switch m {
	case MediaAvailable, MediaDownloaded, MediaFailed:
		return true
	default:
		return false
	}
}

// NeedsAttention reports whether a user should look at the item.
func (m Media) NeedsAttention() bool {
	switch m {
	case MediaMissing, MediaFailed, MediaUnknown:
		return true
	default:
		return false
	}
}

// HasMedia reports whether files for the item are present.
func (m Media) HasMedia() bool {
	return m == MediaDownloaded || m == MediaAvailable
}

// Priority orders statuses for display, lower is more urgent.
func (m Media) Priority() int {
	switch m {
	case MediaFailed:
		return 1
	case MediaDownloading:
		return 2
	case MediaQueued:
		return 3
	case MediaMissing:
		return 4
	case MediaRequested:
		return 5
	case MediaAnnounced:
		return 6
	case MediaDownloaded:
		return 7
	case MediaAvailable:
		return 8
	default:
		return 9
	}
}

func (m Media) Label() string {
	switch m {
	case MediaAnnounced:
		return "Announced"
	case MediaRequested:
		return "Requested"
	case MediaMissing:
		return "Missing"
	case MediaQueued:
		return "Queued"
	case MediaDownloading:
		return "Downloading"
	case MediaDownloaded:
		return "Downloaded"
	case MediaAvailable:
		return "Available"
	case MediaFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

func (m Media) ColorClass() string {
	switch m {
	case MediaAnnounced, MediaDownloading:
		return ColorBlue
	case MediaRequested:
		return ColorPurple
	case MediaMissing:
		return ColorYellow
	case MediaQueued:
		return ColorCyan
	case MediaDownloaded, MediaAvailable:
		return ColorGreen
	case MediaFailed:
		return ColorRed
	default:
		return ColorGray
	}
}
