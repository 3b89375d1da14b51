package endpoint

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name     string
		ep       Endpoint
		params   Params
		wantPath string
		wantRest Params
	}{
		{
			name:     "no placeholders",
			ep:       Queue,
			params:   Params{"page": 2},
			wantPath: "queue",
			wantRest: Params{"page": 2},
		},
		{
			name:     "id extracted",
			ep:       QueueByID,
			params:   Params{"id": 42, "blocklist": true},
			wantPath: "queue/42",
			wantRest: Params{"blocklist": true},
		},
		{
			name:     "two placeholders",
			ep:       SeerrRequestAction,
			params:   Params{"id": 7, "status": "approve"},
			wantPath: "request/7/approve",
			wantRest: Params{},
		},
		{
			name:     "value is escaped into one segment",
			ep:       CommandByID,
			params:   Params{"id": "../system/backup?x=1"},
			wantPath: "command/..%2Fsystem%2Fbackup%3Fx=1",
			wantRest: Params{},
		},
		{
			name:     "spaces escaped",
			ep:       SeerrRequestAction,
			params:   Params{"id": 7, "status": "a b"},
			wantPath: "request/7/a%20b",
			wantRest: Params{},
		},
		{
			name:     "missing value leaves placeholder",
			ep:       HistoryFailed,
			params:   nil,
			wantPath: "history/failed/{id}",
			wantRest: Params{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, rest := Resolve(tt.ep, tt.params)
			assert.Equal(t, tt.wantPath, path)
			assert.Equal(t, tt.wantRest, rest)
		})
	}
}

func TestResolveDoesNotMutateInput(t *testing.T) {
	in := Params{"id": 1, "x": "y"}
	_, _ = Resolve(CommandByID, in)
	assert.Equal(t, Params{"id": 1, "x": "y"}, in)
	assert.Equal(t, "command/1", CommandByID.Path(in))
}

func TestPlaceholders(t *testing.T) {
	assert.Equal(t, []string{"id", "status"}, Placeholders("request/{id}/{status}"))
	assert.Empty(t, Placeholders("health"))
}

func TestDefaultResponses(t *testing.T) {
	page, ok := Queue.DefaultResponse().(map[string]any)
	if assert.True(t, ok) {
		assert.Equal(t, 1, page["page"])
		assert.Equal(t, 10, page["pageSize"])
		assert.Equal(t, []any{}, page["records"])
	}

	assert.Nil(t, QueueByID.DefaultResponse())
	assert.Nil(t, QueueBulk.DefaultResponse())
	assert.Nil(t, HistoryFailed.DefaultResponse())
	assert.Equal(t, []any{}, Health.DefaultResponse())
	assert.Equal(t, map[string]any{}, SystemStatus.DefaultResponse())

	a := WantedMissing.DefaultResponse().(map[string]any)
	a["page"] = 99
	b := WantedMissing.DefaultResponse().(map[string]any)
	assert.Equal(t, 1, b["page"])

	for _, r := range Routes() {
		assert.Equal(t, string(r), r.Template())
	}
}

func TestParamsMerge(t *testing.T) {
	a := Params{"a": 1, "b": 1}
	merged := a.Merge(Params{"b": 2}, nil, Params{"c": 3})
	assert.Equal(t, Params{"a": 1, "b": 2, "c": 3}, merged)
	assert.Equal(t, Params{"a": 1, "b": 1}, a)

	var empty Params
	assert.Equal(t, Params{}, empty.Merge())
}

func TestOptions(t *testing.T) {
	assert.Equal(t, Params{"page": 1, "pageSize": 10}, DefaultPagination().Params())
	assert.Equal(t, Params{"page": 3, "pageSize": 10}, NewPagination(3, 0).Params())
	assert.Equal(t, Params{"page": 1, "pageSize": 50}, DefaultPagination().WithPageSize(50).Params())

	assert.Equal(t, Params{"sortKey": "timeleft", "sortDirection": "descending"}, SortBy("timeleft").Descending().Params())
	assert.Equal(t, Params{}, Sort{}.Params())

	assert.Equal(t, Params{"take": 20, "filter": "pending"}, Offset{}.WithTake(20).WithFilter("pending").Params())

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	cal := CalendarOptions{Start: start, End: start.AddDate(0, 0, 7), Include: []string{IncludeSeries}}
	assert.Equal(t, Params{"start": "2024-01-01", "end": "2024-01-08", IncludeSeries: true}, cal.Params())

	monitored := true
	assert.Equal(t, Params{"monitored": true}, WantedOptions{Monitored: &monitored}.Params())
	assert.Equal(t, Params{"eventType": 1}, HistoryOptions{EventType: 1}.Params())

	got := Collect(DefaultPagination(), nil, QueueOptions{Include: []string{IncludeMovie}})
	assert.Equal(t, Params{"page": 1, "pageSize": 10, IncludeMovie: true}, got)
}
