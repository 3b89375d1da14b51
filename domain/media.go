package domain

import (
	"fmt"

	"github.com/s0up4200/arrcore/arr"
	"github.com/s0up4200/arrcore/status"
	"github.com/s0up4200/arrcore/value"
)

// Media holds the fields every library item shares. Movie and Series embed it.
type Media struct {
	ID         value.ID
	Type       arr.MediaType
	Title      string
	Year       int
	Status     status.Media
	Monitored  bool
	Source     arr.Service
	SizeOnDisk *value.FileSize
	Path       string
	Overview   string
	PosterURL  string
	FanartURL  string
}

// HasFiles reports whether anything is on disk.
func (m Media) HasFiles() bool {
	return m.SizeOnDisk != nil && !m.SizeOnDisk.IsZero()
}

func (m Media) IsComplete() bool {
	return m.Status.HasMedia() && m.HasFiles()
}

// NeedsAttention only flags monitored items.
func (m Media) NeedsAttention() bool {
	return m.Monitored && m.Status.NeedsAttention()
}

// DisplayTitle is "Title (Year)", or the bare title when the year is unknown.
func (m Media) DisplayTitle() string {
	if m.Year > 0 {
		return fmt.Sprintf("%s (%d)", m.Title, m.Year)
	}
	return m.Title
}

func (m Media) ToMap() map[string]any {
	out := map[string]any{
		"id":           m.ID.Value(),
		"type":         m.Type.String(),
		"title":        m.Title,
		"year":         nil,
		"status":       m.Status.String(),
		"monitored":    m.Monitored,
		"source":       m.Source.String(),
		"size_on_disk": nil,
		"path":         nilIfEmpty(m.Path),
		"overview":     nilIfEmpty(m.Overview),
		"poster_url":   nilIfEmpty(m.PosterURL),
		"fanart_url":   nilIfEmpty(m.FanartURL),
	}
	if m.Year > 0 {
		out["year"] = m.Year
	}
	if m.SizeOnDisk != nil {
		out["size_on_disk"] = m.SizeOnDisk.ToMap()
	}
	return out
}

func mediaFromMap(m map[string]any, typ arr.MediaType) (Media, error) {
	id, err := value.ParseID(m["id"])
	if err != nil {
		return Media{}, fmt.Errorf("%s: %w", typ, err)
	}
	media := Media{
		ID:        id,
		Type:      typ,
		Title:     getString(m, "title"),
		Status:    status.ParseMedia(getString(m, "status")),
		Monitored: getBool(m, "monitored", true),
		Source:    arr.Service(getString(m, "source")),
		Path:      getString(m, "path"),
		Overview:  getString(m, "overview"),
		PosterURL: getString(m, "poster_url"),
		FanartURL: getString(m, "fanart_url"),
	}
	if y, ok := getInt64(m, "year"); ok {
		media.Year = int(y)
	}
	if n, ok := getInt64(m, "size_on_disk"); ok {
		size := value.MustFileSize(n)
		media.SizeOnDisk = &size
	}
	return media, nil
}

// Movie is a Radarr library entry.
type Movie struct {
	Media

	ImdbID             string
	TmdbID             int64
	Runtime            *value.Duration
	Studio             string
	Rating             float64
	Certification      string
	HasFile            bool
	QualityProfileName string
}

// IsReleased is true once the movie can be obtained, whether or not it has
// been.
func (m Movie) IsReleased() bool {
	switch m.Status {
	case status.MediaAvailable, status.MediaDownloaded, status.MediaMissing:
		return true
	default:
		return false
	}
}

func (m Movie) IsDownloadable() bool {
	return m.Monitored && m.IsReleased() && !m.HasFile
}

func (m Movie) ImdbURL() string {
	if m.ImdbID == "" {
		return ""
	}
	return "https://www.imdb.com/title/" + m.ImdbID + "/"
}

func (m Movie) TmdbURL() string {
	if m.TmdbID == 0 {
		return ""
	}
	return fmt.Sprintf("https://www.themoviedb.org/movie/%d", m.TmdbID)
}

func (m Movie) ToMap() map[string]any {
	out := m.Media.ToMap()
	out["imdb_id"] = nilIfEmpty(m.ImdbID)
	out["tmdb_id"] = nil
	if m.TmdbID != 0 {
		out["tmdb_id"] = m.TmdbID
	}
	out["runtime"] = nil
	if m.Runtime != nil {
		out["runtime"] = m.Runtime.ToMap()
	}
	out["studio"] = nilIfEmpty(m.Studio)
	out["rating"] = m.Rating
	out["certification"] = nilIfEmpty(m.Certification)
	out["has_file"] = m.HasFile
	out["quality_profile_name"] = nilIfEmpty(m.QualityProfileName)
	return out
}

// MovieFromMap reads the snake_case form produced by ToMap. runtime is in
// minutes; monitored defaults to true.
func MovieFromMap(m map[string]any) (Movie, error) {
	media, err := mediaFromMap(m, arr.MediaMovie)
	if err != nil {
		return Movie{}, err
	}
	movie := Movie{
		Media:              media,
		ImdbID:             getString(m, "imdb_id"),
		Studio:             getString(m, "studio"),
		Certification:      getString(m, "certification"),
		HasFile:            getBool(m, "has_file", false),
		QualityProfileName: getString(m, "quality_profile_name"),
	}
	movie.TmdbID, _ = getInt64(m, "tmdb_id")
	movie.Rating, _ = getFloat(m, "rating")
	if mins, ok := getFloat(m, "runtime"); ok && mins > 0 {
		if d, err := value.DurationFromMinutes(mins); err == nil {
			movie.Runtime = &d
		}
	}
	return movie, nil
}

// Series is a Sonarr library entry.
type Series struct {
	Media

	TvdbID             int64
	ImdbID             string
	TvMazeID           int64
	Network            string
	Runtime            int
	Rating             float64
	Certification      string
	SeasonCount        int
	EpisodeCount       int
	EpisodeFileCount   int
	SeriesType         string
	QualityProfileName string
	Ended              bool
}

func (s Series) HasAllEpisodes() bool {
	return s.EpisodeCount > 0 && s.EpisodeFileCount >= s.EpisodeCount
}

func (s Series) CompletionProgress() value.Progress {
	return value.ProgressFromFraction(int64(s.EpisodeFileCount), int64(s.EpisodeCount))
}

func (s Series) MissingEpisodeCount() int {
	return max(s.EpisodeCount-s.EpisodeFileCount, 0)
}

// IsContinuing and HasEnded read the upstream airing state, not SeriesType
// (standard, daily or anime).
func (s Series) IsContinuing() bool { return !s.Ended }
func (s Series) HasEnded() bool     { return s.Ended }

func (s Series) TvdbURL() string {
	if s.TvdbID == 0 {
		return ""
	}
	return fmt.Sprintf("https://thetvdb.com/series/%d", s.TvdbID)
}

func (s Series) ImdbURL() string {
	if s.ImdbID == "" {
		return ""
	}
	return "https://www.imdb.com/title/" + s.ImdbID + "/"
}

func (s Series) ToMap() map[string]any {
	out := s.Media.ToMap()
	out["tvdb_id"] = nil
	if s.TvdbID != 0 {
		out["tvdb_id"] = s.TvdbID
	}
	out["imdb_id"] = nilIfEmpty(s.ImdbID)
	out["tv_maze_id"] = nil
	if s.TvMazeID != 0 {
		out["tv_maze_id"] = s.TvMazeID
	}
	out["network"] = nilIfEmpty(s.Network)
	out["runtime"] = s.Runtime
	out["rating"] = s.Rating
	out["certification"] = nilIfEmpty(s.Certification)
	out["season_count"] = s.SeasonCount
	out["episode_count"] = s.EpisodeCount
	out["episode_file_count"] = s.EpisodeFileCount
	out["series_type"] = nilIfEmpty(s.SeriesType)
	out["quality_profile_name"] = nilIfEmpty(s.QualityProfileName)
	out["ended"] = s.Ended
	out["completion_progress"] = s.CompletionProgress().ToMap()
	return out
}

func SeriesFromMap(m map[string]any) (Series, error) {
	media, err := mediaFromMap(m, arr.MediaSeries)
	if err != nil {
		return Series{}, err
	}
	series := Series{
		Media:              media,
		ImdbID:             getString(m, "imdb_id"),
		Network:            getString(m, "network"),
		Certification:      getString(m, "certification"),
		SeriesType:         getString(m, "series_type"),
		QualityProfileName: getString(m, "quality_profile_name"),
		Ended:              getBool(m, "ended", false),
	}
	series.TvdbID, _ = getInt64(m, "tvdb_id")
	series.TvMazeID, _ = getInt64(m, "tv_maze_id")
	series.Rating, _ = getFloat(m, "rating")
	if n, ok := getInt64(m, "runtime"); ok {
		series.Runtime = int(n)
	}
	if n, ok := getInt64(m, "season_count"); ok {
		series.SeasonCount = int(n)
	}
	if n, ok := getInt64(m, "episode_count"); ok {
		series.EpisodeCount = int(n)
	}
	if n, ok := getInt64(m, "episode_file_count"); ok {
		series.EpisodeFileCount = int(n)
	}
	return series, nil
}
