// Package endpoint describes the REST resources of the *arr and Seerr APIs:
// path templates with {name} placeholders, the default payloads fakes return
// for them, and the option builders that turn into request parameters.
package endpoint

import (
	"fmt"
	"maps"
	"net/url"
	"regexp"
	"strings"
)

// Params are request parameters. Keys named by a path placeholder are moved
// into the path; the rest become the query string or JSON body.
type Params map[string]any

// Merge returns a new Params with the entries of p overlaid by each of
// others in order. Nil maps are skipped.
func (p Params) Merge(others ...Params) Params {
	out := make(Params, len(p))
	maps.Copy(out, p)
	for _, o := range others {
		maps.Copy(out, o)
	}
	return out
}

// Endpoint is anything a client can send a request to.
type Endpoint interface {
	// Template is the path relative to the API base, e.g. "queue/{id}".
	Template() string
	// Path substitutes params into the template.
	Path(params Params) string
	// DefaultResponse is what a fake answers when nothing was configured.
	DefaultResponse() any
}

var placeholderRe = regexp.MustCompile(`\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// Placeholders lists the placeholder names of a template in order.
func Placeholders(template string) []string {
	matches := placeholderRe.FindAllStringSubmatch(template, -1)
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, m[1])
	}
	return names
}

// Resolve builds the concrete path for ep and returns the params that were
// not consumed by a placeholder. Values are path-escaped. Placeholders
// without a value are left in place. params itself is never modified.
func Resolve(ep Endpoint, params Params) (path string, rest Params) {
	rest = Params{}.Merge(params)
	path = ep.Template()
	for _, name := range Placeholders(path) {
		v, ok := rest[name]
		if !ok {
			continue
		}
		path = replacePlaceholder(path, name, v)
		delete(rest, name)
	}
	return path, rest
}

// replacePlaceholder substitutes one path segment, so the value is escaped
// and cannot add segments or a query.
func replacePlaceholder(template, name string, v any) string {
	return strings.ReplaceAll(template, "{"+name+"}", url.PathEscape(fmt.Sprint(v)))
}

// Route is a fixed endpoint of the *arr or Seerr API.
type Route string

func (r Route) Template() string { return string(r) }
func (r Route) String() string   { return string(r) }

func (r Route) Path(params Params) string {
	path, _ := Resolve(r, params)
	return path
}

// DefaultResponse returns a fresh copy each call, so callers may mutate it.
func (r Route) DefaultResponse() any {
	build, ok := defaults[r]
	if !ok {
		return nil
	}
	return build()
}

const (
	Calendar     Route = "calendar"
	CalendarByID Route = "calendar/{id}"

	Command     Route = "command"
	CommandByID Route = "command/{id}"

	Queue        Route = "queue"
	QueueByID    Route = "queue/{id}"
	QueueBulk    Route = "queue/bulk"
	QueueDetails Route = "queue/details"
	QueueStatus  Route = "queue/status"

	History       Route = "history"
	HistoryMovie  Route = "history/movie"
	HistorySeries Route = "history/series"
	HistorySince  Route = "history/since"
	HistoryFailed Route = "history/failed/{id}"

	WantedMissing Route = "wanted/missing"
	WantedCutoff  Route = "wanted/cutoff"

	SystemStatus   Route = "system/status"
	Health         Route = "health"
	DiskSpace      Route = "diskspace"
	SystemTask     Route = "system/task"
	SystemTaskByID Route = "system/task/{id}"
	SystemBackup   Route = "system/backup"

	SeerrRequest       Route = "request"
	SeerrRequestByID   Route = "request/{id}"
	SeerrRequestCount  Route = "request/count"
	SeerrAuthMe        Route = "auth/me"
	SeerrStatus        Route = "status"
	SeerrRequestAction Route = "request/{id}/{status}"
)

// Routes returns every predefined route.
func Routes() []Route {
	return []Route{
		Calendar, CalendarByID,
		Command, CommandByID,
		Queue, QueueByID, QueueBulk, QueueDetails, QueueStatus,
		History, HistoryMovie, HistorySeries, HistorySince, HistoryFailed,
		WantedMissing, WantedCutoff,
		SystemStatus, Health, DiskSpace, SystemTask, SystemTaskByID, SystemBackup,
		SeerrRequest, SeerrRequestByID, SeerrRequestCount, SeerrAuthMe, SeerrStatus, SeerrRequestAction,
	}
}

func emptyPage() any {
	return map[string]any{
		"page":         1,
		"pageSize":     10,
		"totalRecords": 0,
		"records":      []any{},
	}
}

func emptySeerrPage() any {
	return map[string]any{
		"pageInfo": map[string]any{"page": 1, "pages": 0, "pageSize": 10, "results": 0},
		"results":  []any{},
	}
}

func emptyList() any   { return []any{} }
func emptyObject() any { return map[string]any{} }

// Routes missing from this table (QueueByID, QueueBulk, HistoryFailed,
// SeerrRequestAction) answer with no body.
var defaults = map[Route]func() any{
	Calendar:     emptyList,
	CalendarByID: emptyObject,

	Command:     emptyList,
	CommandByID: emptyObject,

	Queue:        emptyPage,
	QueueDetails: emptyList,
	QueueStatus:  emptyObject,

	History:       emptyPage,
	HistoryMovie:  emptyList,
	HistorySeries: emptyList,
	HistorySince:  emptyList,

	WantedMissing: emptyPage,
	WantedCutoff:  emptyPage,

	SystemStatus:   emptyObject,
	Health:         emptyList,
	DiskSpace:      emptyList,
	SystemTask:     emptyList,
	SystemTaskByID: emptyObject,
	SystemBackup:   emptyList,

	SeerrRequest:      emptySeerrPage,
	SeerrRequestByID:  emptyObject,
	SeerrRequestCount: emptyObject,
	SeerrAuthMe:       emptyObject,
	SeerrStatus:       emptyObject,
}
