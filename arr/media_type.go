package arr

// MediaType is the kind of library item a record describes.
type MediaType string

const (
	MediaMovie   MediaType = "movie"
	MediaSeries  MediaType = "series"
	MediaSeason  MediaType = "season"
	MediaEpisode MediaType = "episode"
	MediaArtist  MediaType = "artist"
	MediaAlbum   MediaType = "album"
	MediaTrack   MediaType = "track"
	MediaBook    MediaType = "book"
	MediaAuthor  MediaType = "author"
)

func (m MediaType) String() string {
	return string(m)
}

func (m MediaType) IsVideo() bool {
	switch m {
	case MediaMovie, MediaSeries, MediaSeason, MediaEpisode:
		return true
	default:
		return false
	}
}

func (m MediaType) IsAudio() bool {
	switch m {
	case MediaArtist, MediaAlbum, MediaTrack:
		return true
	default:
		return false
	}
}

func (m MediaType) IsWritten() bool {
	return m == MediaBook || m == MediaAuthor
}

// IsContainer reports whether items of this type group other items.
func (m MediaType) IsContainer() bool {
	switch m {
	case MediaSeries, MediaSeason, MediaArtist, MediaAlbum, MediaAuthor:
		return true
	default:
		return false
	}
}

func (m MediaType) Label() string {
	switch m {
	case MediaMovie:
		return "Movie"
	case MediaSeries:
		return "Series"
	case MediaSeason:
		return "Season"
	case MediaEpisode:
		return "Episode"
	case MediaArtist:
		return "Artist"
	case MediaAlbum:
		return "Album"
	case MediaTrack:
		return "Track"
	case MediaBook:
		return "Book"
	case MediaAuthor:
		return "Author"
	default:
		return string(m)
	}
}

func (m MediaType) LabelPlural() string {
	switch m {
	case MediaSeries:
		return "Series"
	case "":
		return ""
	default:
		return m.Label() + "s"
	}
}
