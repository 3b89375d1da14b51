package seerr

import (
	"strconv"
	"time"

	"github.com/s0up4200/arrcore/arr"
	"github.com/s0up4200/arrcore/status"
)

// MediaType is the request type as sent by the API.
type MediaType string

const (
	MediaTypeMovie MediaType = "movie"
	MediaTypeTV    MediaType = "tv"
)

func (mt MediaType) IsMovie() bool { return mt == MediaTypeMovie }

// Domain converts to the shared media type. TV requests are series.
func (mt MediaType) Domain() arr.MediaType {
	if mt == MediaTypeTV {
		return arr.MediaSeries
	}
	return arr.MediaMovie
}

// Filter values accepted by the request list.
const (
	FilterAll         = "all"
	FilterApproved    = "approved"
	FilterAvailable   = "available"
	FilterPending     = "pending"
	FilterProcessing  = "processing"
	FilterUnavailable = "unavailable"
	FilterFailed      = "failed"
)

// User is a Seerr user.
type User struct {
	ID           int    `json:"id"`
	Email        string `json:"email"`
	Username     string `json:"username,omitempty"`
	PlexUsername string `json:"plexUsername,omitempty"`
	DisplayName  string `json:"displayName"`
	Avatar       string `json:"avatar,omitempty"`
}

// Name returns the best available display name for the user.
func (u User) Name() string {
	switch {
	case u.DisplayName != "":
		return u.DisplayName
	case u.Username != "":
		return u.Username
	case u.PlexUsername != "":
		return u.PlexUsername
	default:
		return u.Email
	}
}

// Media is the library entry a request points at.
type Media struct {
	ID                  int                    `json:"id"`
	TmdbID              int                    `json:"tmdbId"`
	TvdbID              int                    `json:"tvdbId,omitempty"`
	ImdbID              string                 `json:"imdbId,omitempty"`
	Status              status.JellyseerrMedia `json:"status"`
	Status4k            status.JellyseerrMedia `json:"status4k"`
	MediaType           MediaType              `json:"mediaType"`
	CreatedAt           time.Time              `json:"createdAt"`
	UpdatedAt           time.Time              `json:"updatedAt"`
	MediaAddedAt        *time.Time             `json:"mediaAddedAt,omitempty"`
	ServiceID           *int                   `json:"serviceId,omitempty"`
	ExternalServiceSlug string                 `json:"externalServiceSlug,omitempty"`
}

// Season is a per-season entry of a TV request.
type Season struct {
	ID           int                      `json:"id"`
	SeasonNumber int                      `json:"seasonNumber"`
	Status       status.JellyseerrRequest `json:"status"`
	CreatedAt    time.Time                `json:"createdAt"`
	UpdatedAt    time.Time                `json:"updatedAt"`
}

// MediaRequest is a request as returned by the API.
type MediaRequest struct {
	ID            int                      `json:"id"`
	Status        status.JellyseerrRequest `json:"status"`
	CreatedAt     time.Time                `json:"createdAt"`
	UpdatedAt     time.Time                `json:"updatedAt"`
	Type          MediaType                `json:"type"`
	Is4k          bool                     `json:"is4k"`
	ServerID      *int                     `json:"serverId,omitempty"`
	ProfileID     *int                     `json:"profileId,omitempty"`
	RootFolder    *string                  `json:"rootFolder,omitempty"`
	Tags          []int                    `json:"tags,omitempty"`
	IsAutoRequest bool                     `json:"isAutoRequest"`
	RequestedBy   User                     `json:"requestedBy"`
	ModifiedBy    *User                    `json:"modifiedBy,omitempty"`
	Media         Media                    `json:"media"`
	SeasonCount   int                      `json:"seasonCount,omitempty"`
	Seasons       []Season                 `json:"seasons,omitempty"`
}

func (mr MediaRequest) IsMovieRequest() bool { return mr.Type.IsMovie() }

// Approver returns the user who approved the request, if known.
func (mr MediaRequest) Approver() *User {
	if mr.ModifiedBy != nil && mr.Status.IsApproved() {
		return mr.ModifiedBy
	}
	return nil
}

// Title is a placeholder built from the external id; the request list does
// not carry titles.
func (mr MediaRequest) Title() string {
	if mr.Type == MediaTypeTV && mr.Media.TvdbID > 0 {
		return "tvdb:" + strconv.Itoa(mr.Media.TvdbID)
	}
	return "tmdb:" + strconv.Itoa(mr.Media.TmdbID)
}

// PageInfo describes one page of the request list.
type PageInfo struct {
	Pages    int `json:"pages"`
	PageSize int `json:"pageSize"`
	Results  int `json:"results"`
	Page     int `json:"page"`
}

// NextPage returns the next page number or ErrNoMoreRequests.
func (pi PageInfo) NextPage() (int, error) {
	if pi.Page >= pi.Pages {
		return 0, ErrNoMoreRequests
	}
	return pi.Page + 1, nil
}

// RequestsResponse is one page of the request list.
type RequestsResponse struct {
	PageInfo PageInfo       `json:"pageInfo"`
	Results  []MediaRequest `json:"results"`
}

func (rr RequestsResponse) HasMorePages() bool {
	return rr.PageInfo.Page < rr.PageInfo.Pages
}

// RequestCount is the summary from request/count.
type RequestCount struct {
	Total      int `json:"total"`
	Movie      int `json:"movie"`
	TV         int `json:"tv"`
	Pending    int `json:"pending"`
	Approved   int `json:"approved"`
	Declined   int `json:"declined"`
	Processing int `json:"processing"`
	Available  int `json:"available"`
}

// Status is the payload of the status endpoint.
type Status struct {
	Version         string `json:"version"`
	CommitTag       string `json:"commitTag"`
	UpdateAvailable bool   `json:"updateAvailable"`
	CommitsBehind   int    `json:"commitsBehind"`
	RestartRequired bool   `json:"restartRequired"`
}
