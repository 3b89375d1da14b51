// Package arr identifies the supported services and the shared vocabularies
// (media types, command names) of the *arr applications.
package arr

import (
	"fmt"
	"strings"
)

// Service identifies an upstream application.
type Service string

const (
	Sonarr       Service = "sonarr"
	Radarr       Service = "radarr"
	Lidarr       Service = "lidarr"
	Readarr      Service = "readarr"
	Prowlarr     Service = "prowlarr"
	Jellyseerr   Service = "jellyseerr"
	Overseerr    Service = "overseerr"
	NZBGet       Service = "nzbget"
	SABnzbd      Service = "sabnzbd"
	Transmission Service = "transmission"
	QBittorrent  Service = "qbittorrent"
	Deluge       Service = "deluge"
)

// Services returns every known service.
func Services() []Service {
	return []Service{
		Sonarr, Radarr, Lidarr, Readarr, Prowlarr,
		Jellyseerr, Overseerr,
		NZBGet, SABnzbd, Transmission, QBittorrent, Deluge,
	}
}

// ParseService resolves a service name case-insensitively.
func ParseService(name string) (Service, error) {
	s := Service(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Services() {
		if s == known {
			return s, nil
		}
	}
	return "", fmt.Errorf("unknown service: %q", name)
}

func (s Service) String() string {
	return string(s)
}

// IsMediaManager reports whether the service manages a media library.
func (s Service) IsMediaManager() bool {
	switch s {
	case Sonarr, Radarr, Lidarr, Readarr:
		return true
	default:
		return false
	}
}

func (s Service) IsRequestManager() bool {
	return s == Jellyseerr || s == Overseerr
}

func (s Service) IsDownloadClient() bool {
	switch s {
	case NZBGet, SABnzbd, Transmission, QBittorrent, Deluge:
		return true
	default:
		return false
	}
}

func (s Service) IsIndexerManager() bool {
	return s == Prowlarr
}

// Label returns the product name with its usual casing.
func (s Service) Label() string {
	switch s {
	case Sonarr:
		return "Sonarr"
	case Radarr:
		return "Radarr"
	case Lidarr:
		return "Lidarr"
	case Readarr:
		return "Readarr"
	case Prowlarr:
		return "Prowlarr"
	case Jellyseerr:
		return "Jellyseerr"
	case Overseerr:
		return "Overseerr"
	case NZBGet:
		return "NZBGet"
	case SABnzbd:
		return "SABnzbd"
	case Transmission:
		return "Transmission"
	case QBittorrent:
		return "qBittorrent"
	case Deluge:
		return "Deluge"
	default:
		return string(s)
	}
}

// DefaultPort is the port a stock installation listens on.
func (s Service) DefaultPort() int {
	switch s {
	case Sonarr:
		return 8989
	case Radarr:
		return 7878
	case Lidarr:
		return 8686
	case Readarr:
		return 8787
	case Prowlarr:
		return 9696
	case Jellyseerr, Overseerr:
		return 5055
	case NZBGet:
		return 6789
	case SABnzbd:
		return 8080
	case Transmission:
		return 9091
	case QBittorrent:
		return 8080
	case Deluge:
		return 8112
	default:
		return 80
	}
}

// APIVersion is the REST API version segment used in request paths.
func (s Service) APIVersion() string {
	switch s {
	case Sonarr, Radarr:
		return "v3"
	default:
		return "v1"
	}
}
