// Package seerr reads and moderates media requests on Jellyseerr and
// Overseerr.
//
// The two share one API, so a single Client serves both; the service it is
// built for only decides which status normalizer is applied when requests
// are converted to domain.MediaRequest.
//
//	cfg := client.DefaultConfig(arr.Jellyseerr)
//	cfg.APIKey = "..."
//	rest, err := client.New(cfg, client.WithLogger(logger))
//	if err != nil {
//		return err
//	}
//	sc, err := seerr.New(rest, arr.Jellyseerr, logger)
//	if err != nil {
//		return err
//	}
//	pending, err := sc.Requests(ctx, seerr.FilterPending)
//
// Errors come from the client package and can be classified with
// client.IsUnauthorized, client.IsNotFound and friends.
package seerr
