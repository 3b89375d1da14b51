package domain

import (
	"fmt"

	"github.com/s0up4200/arrcore/arr"
	"github.com/s0up4200/arrcore/status"
	"github.com/s0up4200/arrcore/value"
)

// MediaRequest is a user request tracked by Jellyseerr or Overseerr.
type MediaRequest struct {
	ID          value.ID
	MediaType   arr.MediaType
	Title       string
	Year        int
	Status      status.Request
	Source      arr.Service
	MediaID     *value.ID
	ExternalID  *value.ID
	RequestedBy string
	RequestedAt *value.Timestamp
	UpdatedAt   *value.Timestamp
	PosterURL   string
}

func (r MediaRequest) IsPending() bool   { return r.Status.IsPending() }
func (r MediaRequest) IsApproved() bool  { return r.Status == status.RequestApproved }
func (r MediaRequest) IsFulfilled() bool { return r.Status == status.RequestFulfilled }
func (r MediaRequest) NeedsAction() bool { return r.Status.NeedsAction() }

func (r MediaRequest) DisplayTitle() string {
	if r.Year > 0 {
		return fmt.Sprintf("%s (%d)", r.Title, r.Year)
	}
	return r.Title
}

func (r MediaRequest) ToMap() map[string]any {
	out := map[string]any{
		"id":           r.ID.Value(),
		"media_type":   r.MediaType.String(),
		"title":        r.Title,
		"year":         nil,
		"status":       r.Status.String(),
		"source":       r.Source.String(),
		"media_id":     nil,
		"external_id":  nil,
		"requested_by": nilIfEmpty(r.RequestedBy),
		"requested_at": nil,
		"updated_at":   nil,
		"poster_url":   nilIfEmpty(r.PosterURL),
	}
	if r.Year > 0 {
		out["year"] = r.Year
	}
	if r.MediaID != nil {
		out["media_id"] = r.MediaID.Value()
	}
	if r.ExternalID != nil {
		out["external_id"] = r.ExternalID.Value()
	}
	if r.RequestedAt != nil {
		out["requested_at"] = r.RequestedAt.ISO8601()
	}
	if r.UpdatedAt != nil {
		out["updated_at"] = r.UpdatedAt.ISO8601()
	}
	return out
}

// MediaRequestFromMap reads the snake_case form. An unrecognised status is
// treated as pending.
func MediaRequestFromMap(m map[string]any) (MediaRequest, error) {
	id, err := value.ParseID(m["id"])
	if err != nil {
		return MediaRequest{}, fmt.Errorf("media request: %w", err)
	}
	req := MediaRequest{
		ID:          id,
		MediaType:   arr.MediaType(getString(m, "media_type")),
		Title:       getString(m, "title"),
		Status:      status.ParseRequest(getString(m, "status")),
		Source:      arr.Service(getString(m, "source")),
		MediaID:     getOptionalID(m, "media_id"),
		ExternalID:  getOptionalID(m, "external_id"),
		RequestedBy: getString(m, "requested_by"),
		RequestedAt: getTimestamp(m, "requested_at"),
		UpdatedAt:   getTimestamp(m, "updated_at"),
		PosterURL:   getString(m, "poster_url"),
	}
	if y, ok := getInt64(m, "year"); ok {
		req.Year = int(y)
	}
	return req, nil
}
