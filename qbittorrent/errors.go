package qbittorrent

import "errors"

var (
	// ErrTorrentNotFound is returned when no torrent matches a hash or path.
	ErrTorrentNotFound = errors.New("torrent not found")

	// ErrConnectionFailed wraps login failures.
	ErrConnectionFailed = errors.New("connection to qBittorrent failed")
)
