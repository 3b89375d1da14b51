package radarr

import (
	"golift.io/starr"
	"golift.io/starr/radarr"

	"github.com/s0up4200/arrcore/arr"
	"github.com/s0up4200/arrcore/domain"
	"github.com/s0up4200/arrcore/normalize"
	"github.com/s0up4200/arrcore/value"
)

// ToDomain maps a starr movie to domain.Movie. profiles maps quality
// profile ids to names and may be nil.
func ToDomain(m *radarr.Movie, profiles map[int64]string) domain.Movie {
	images := images(m.Images)
	movie := domain.Movie{
		Media: domain.Media{
			ID:        value.IntID(m.ID),
			Type:      arr.MediaMovie,
			Title:     m.Title,
			Year:      int(m.Year),
			Status:    normalize.MediaFromRadarr(m.Status, m.HasFile),
			Monitored: m.Monitored,
			Source:    arr.Radarr,
			Path:      m.Path,
			Overview:  m.Overview,
			PosterURL: domain.ExtractImage(images, "poster"),
			FanartURL: domain.ExtractImage(images, "fanart"),
		},
		ImdbID:             m.ImdbID,
		TmdbID:             int64(m.TmdbID),
		Studio:             m.Studio,
		Certification:      m.Certification,
		HasFile:            m.HasFile,
		QualityProfileName: profiles[int64(m.QualityProfileID)],
	}
	if size, err := value.FileSizeFromBytes(int64(m.SizeOnDisk)); err == nil {
		movie.SizeOnDisk = &size
	}
	if m.Runtime > 0 {
		if rt, err := value.DurationFromMinutes(float64(m.Runtime)); err == nil {
			movie.Runtime = &rt
		}
	}
	movie.Rating = rating(m.Ratings)
	return movie
}

// rating prefers TMDb, then IMDb, then any source with a value.
func rating(r starr.OpenRatings) float64 {
	for _, src := range []string{"tmdb", "imdb"} {
		if v, ok := r[src]; ok && v.Value > 0 {
			return v.Value
		}
	}
	for _, v := range r {
		if v.Value > 0 {
			return v.Value
		}
	}
	return 0
}

func images(in []*starr.Image) []domain.Image {
	out := make([]domain.Image, 0, len(in))
	for _, img := range in {
		if img == nil {
			continue
		}
		out = append(out, domain.Image{CoverType: img.CoverType, URL: img.URL, RemoteURL: img.RemoteURL})
	}
	return out
}
