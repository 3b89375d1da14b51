// Package qbittorrent reads torrents from the qBittorrent Web API and maps
// them onto domain download items.
//
// It wraps github.com/autobrr/go-qbittorrent behind the small API interface
// so the mapping can be tested without a running qBittorrent.
//
//	c, err := qbittorrent.NewClient(ctx, qbittorrent.Config{
//		URL:      "http://localhost:8080",
//		Username: "admin",
//		Password: "secret",
//	}, logger)
//	if err != nil {
//		return err
//	}
//	items, err := c.DownloadItems(ctx)
package qbittorrent
