package arrtest

import (
	"fmt"
	"maps"

	"github.com/s0up4200/arrcore/arr"
)

// Attrs is a raw JSON-shaped payload.
type Attrs map[string]any

func merge(base Attrs, overrides ...Attrs) Attrs {
	out := make(Attrs, len(base))
	maps.Copy(out, base)
	for _, o := range overrides {
		maps.Copy(out, o)
	}
	return out
}

func downloadID(id int64) string {
	return fmt.Sprintf("SABnzbd_nzo_%012d", id)
}

// QueueFactory builds queue records as Radarr or Sonarr would send them.
type QueueFactory struct {
	Service arr.Service
}

// Make returns a downloading record with the given id.
func (f QueueFactory) Make(id int64, overrides ...Attrs) Attrs {
	base := Attrs{
		"id":                      id,
		"title":                   fmt.Sprintf("Release.%d.1080p.BluRay-GROUP", id),
		"status":                  "downloading",
		"trackedDownloadStatus":   "ok",
		"trackedDownloadState":    "downloading",
		"quality":                 Attrs{"quality": Attrs{"name": "Bluray-1080p"}},
		"size":                    1073741824,
		"sizeleft":                536870912,
		"timeleft":                "00:30:00",
		"estimatedCompletionTime": "2024-01-01T12:00:00Z",
		"added":                   "2024-01-01T11:00:00Z",
		"downloadClient":          "SABnzbd",
		"downloadId":              downloadID(id),
		"protocol":                "usenet",
		"indexer":                 "NZBGeek",
		"statusMessages":          []any{},
		"errorMessage":            nil,
	}
	return merge(base, f.serviceDefaults(id), merge(nil, overrides...))
}

func (f QueueFactory) serviceDefaults(id int64) Attrs {
	if f.Service == arr.Sonarr {
		return Attrs{
			"seriesId":  id,
			"episodeId": id * 10,
			"series":    Attrs{"id": id, "title": fmt.Sprintf("Series %d", id), "year": 2020},
		}
	}
	return Attrs{
		"movieId": id,
		"movie":   Attrs{"id": id, "title": fmt.Sprintf("Movie %d", id), "year": 2020},
	}
}

// MakeMany returns count records with ids 1..count.
func (f QueueFactory) MakeMany(count int) []Attrs {
	out := make([]Attrs, 0, count)
	for i := 1; i <= count; i++ {
		out = append(out, f.Make(int64(i)))
	}
	return out
}

// MakePaginated wraps count records in a page envelope.
func (f QueueFactory) MakePaginated(count, page, pageSize, totalRecords int) Attrs {
	return Attrs{
		"page":         page,
		"pageSize":     pageSize,
		"totalRecords": totalRecords,
		"records":      f.MakeMany(count),
	}
}

// MakeCompleted returns a record waiting for import.
func (f QueueFactory) MakeCompleted(id int64, overrides ...Attrs) Attrs {
	return f.Make(id, merge(Attrs{
		"status":                "completed",
		"trackedDownloadStatus": "ok",
		"trackedDownloadState":  "importPending",
		"sizeleft":              0,
		"timeleft":              nil,
	}, overrides...))
}

// MakeWithError returns a record whose tracked status is a warning.
func (f QueueFactory) MakeWithError(id int64, overrides ...Attrs) Attrs {
	return f.Make(id, merge(Attrs{
		"trackedDownloadStatus": "warning",
		"errorMessage":          "Download verification failed",
		"statusMessages": []any{
			Attrs{"title": "Download failed", "messages": []string{"Verification failed"}},
		},
	}, overrides...))
}

// HistoryFactory builds history records.
type HistoryFactory struct {
	Service arr.Service
}

func (f HistoryFactory) Make(id int64, overrides ...Attrs) Attrs {
	base := Attrs{
		"id":          id,
		"eventType":   "grabbed",
		"sourceTitle": fmt.Sprintf("Release.%d.1080p.BluRay-GROUP", id),
		"quality":     Attrs{"quality": Attrs{"name": "Bluray-1080p"}},
		"date":        "2024-01-01T12:00:00Z",
		"downloadId":  downloadID(id),
		"data": Attrs{
			"indexer":      "NZBGeek",
			"releaseGroup": "GROUP",
		},
	}
	var svc Attrs
	if f.Service == arr.Sonarr {
		svc = Attrs{"seriesId": id, "episodeId": id * 10}
	} else {
		svc = Attrs{"movieId": id}
	}
	return merge(base, svc, merge(nil, overrides...))
}

func (f HistoryFactory) MakeMany(count int) []Attrs {
	out := make([]Attrs, 0, count)
	for i := 1; i <= count; i++ {
		out = append(out, f.Make(int64(i)))
	}
	return out
}

func (f HistoryFactory) MakePaginated(count, page, pageSize, totalRecords int) Attrs {
	return Attrs{
		"page":         page,
		"pageSize":     pageSize,
		"totalRecords": totalRecords,
		"records":      f.MakeMany(count),
	}
}

func (f HistoryFactory) MakeGrabbed(id int64, overrides ...Attrs) Attrs {
	return f.Make(id, merge(Attrs{"eventType": "grabbed"}, overrides...))
}

func (f HistoryFactory) MakeImported(id int64, overrides ...Attrs) Attrs {
	return f.Make(id, merge(Attrs{"eventType": "downloadFolderImported"}, overrides...))
}

func (f HistoryFactory) MakeFailed(id int64, overrides ...Attrs) Attrs {
	return f.Make(id, merge(Attrs{
		"eventType": "downloadFailed",
		"data":      Attrs{"message": "Download failed - verification failed"},
	}, overrides...))
}

// SystemStatusFactory builds system/status payloads.
type SystemStatusFactory struct {
	Service arr.Service
}

func (f SystemStatusFactory) Make(overrides ...Attrs) Attrs {
	base := Attrs{
		"buildTime":              "2024-01-01T00:00:00Z",
		"isDebug":                false,
		"isProduction":           true,
		"isAdmin":                false,
		"isUserInteractive":      false,
		"appData":                "/config",
		"osName":                 "ubuntu",
		"osVersion":              "22.04",
		"isNetCore":              true,
		"isLinux":                true,
		"isOsx":                  false,
		"isWindows":              false,
		"isDocker":               true,
		"mode":                   "console",
		"databaseType":           "sqlite3",
		"databaseVersion":        "3.40.0",
		"authentication":         "forms",
		"urlBase":                "",
		"runtimeVersion":         "8.0.0",
		"runtimeName":            ".NET",
		"startTime":              "2024-01-01T00:00:00Z",
		"packageUpdateMechanism": "docker",
	}
	var svc Attrs
	switch f.Service {
	case arr.Sonarr:
		svc = Attrs{"appName": "Sonarr", "instanceName": "Sonarr", "version": "4.0.0.738", "branch": "main"}
	default:
		svc = Attrs{"appName": "Radarr", "instanceName": "Radarr", "version": "5.2.6.8376", "branch": "master"}
	}
	return merge(base, svc, merge(nil, overrides...))
}
