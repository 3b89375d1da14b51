package seerr

import "errors"

var (
	// ErrUnsupportedService is returned by New for services other than
	// Jellyseerr and Overseerr.
	ErrUnsupportedService = errors.New("service is not a request manager")
	// ErrNoMoreRequests is returned by PageInfo.NextPage on the last page.
	ErrNoMoreRequests = errors.New("no more pages available")
)
