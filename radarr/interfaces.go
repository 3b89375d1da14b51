package radarr

import (
	"context"

	"golift.io/starr"
	"golift.io/starr/radarr"
)

// RadarrAPI is the part of the starr Radarr client used by Client.
type RadarrAPI interface {
	GetMovieContext(ctx context.Context, params *radarr.GetMovie) ([]*radarr.Movie, error)
	GetMovieByIDContext(ctx context.Context, movieID int64) (*radarr.Movie, error)
	DeleteMovieContext(ctx context.Context, movieID int64, deleteFiles, addImportExclusion bool) error

	GetTagsContext(ctx context.Context) ([]*starr.Tag, error)
	GetQualityProfilesContext(ctx context.Context) ([]*radarr.QualityProfile, error)

	SendCommandContext(ctx context.Context, cmd *radarr.CommandRequest) (*radarr.CommandResponse, error)
	GetSystemStatusContext(ctx context.Context) (*radarr.SystemStatus, error)
}
