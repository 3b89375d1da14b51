package normalize

import (
	"fmt"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/s0up4200/arrcore/status"
)

func TestMediaFromSonarr(t *testing.T) {
	tests := []struct {
		in       string
		hasFiles bool
		want     status.Media
	}{
		{"continuing", true, status.MediaAvailable},
		{"continuing", false, status.MediaMissing},
		{"ended", true, status.MediaAvailable},
		{"ended", false, status.MediaMissing},
		{"upcoming", false, status.MediaAnnounced},
		{"upcoming", true, status.MediaAnnounced},
		{"deleted", true, status.MediaUnknown},
		{"", false, status.MediaUnknown},
		{"something-new", true, status.MediaUnknown},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s/%v", tt.in, tt.hasFiles), func(t *testing.T) {
			assert.Equal(t, tt.want, MediaFromSonarr(tt.in, tt.hasFiles))
			assert.Equal(t, tt.want, MediaFromSonarr(strings.ToUpper(tt.in), tt.hasFiles))
		})
	}
}

func TestMediaFromRadarr(t *testing.T) {
	tests := []struct {
		in      string
		hasFile bool
		want    status.Media
	}{
		{"released", true, status.MediaAvailable},
		{"released", false, status.MediaMissing},
		{"inCinemas", true, status.MediaAvailable},
		{"inCinemas", false, status.MediaMissing},
		{"announced", false, status.MediaAnnounced},
		{"tba", true, status.MediaAnnounced},
		{"deleted", false, status.MediaUnknown},
		{"", true, status.MediaUnknown},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s/%v", tt.in, tt.hasFile), func(t *testing.T) {
			assert.Equal(t, tt.want, MediaFromRadarr(tt.in, tt.hasFile))
		})
	}
}

func TestDownloadFromSonarrQueue(t *testing.T) {
	tests := []struct {
		name    string
		status  string
		tracked string
		want    status.Download
	}{
		{"queued", "queued", "", status.DownloadQueued},
		{"paused", "paused", "", status.DownloadPaused},
		{"downloading", "downloading", "", status.DownloadDownloading},
		{"completed", "completed", "", status.DownloadCompleted},
		{"failed", "failed", "", status.DownloadFailed},
		{"warning", "warning", "", status.DownloadWarning},
		{"delay", "delay", "", status.DownloadQueued},
		{"client unavailable", "downloadClientUnavailable", "", status.DownloadWarning},
		{"unknown", "fallback", "", status.DownloadUnknown},
		{"tracked ok wins", "completed", "ok", status.DownloadDownloading},
		{"tracked warning wins", "downloading", "warning", status.DownloadWarning},
		{"tracked error wins", "downloading", "error", status.DownloadFailed},
		{"tracked uppercase", "queued", "ERROR", status.DownloadFailed},
		{"unrecognised tracked falls through", "paused", "bogus", status.DownloadPaused},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DownloadFromSonarrQueue(tt.status, tt.tracked))
		})
	}
}

func TestDownloadFromRadarrQueue(t *testing.T) {
	tests := []struct {
		name          string
		status        string
		trackedStatus string
		trackedState  string
		want          status.Download
	}{
		{"state downloading", "queued", "ok", "downloading", status.DownloadDownloading},
		{"state downloading with warning", "downloading", "warning", "downloading", status.DownloadWarning},
		{"state importing with error", "completed", "error", "importing", status.DownloadFailed},
		{"state import pending", "completed", "ok", "importPending", status.DownloadImporting},
		{"state imported", "completed", "", "imported", status.DownloadCompleted},
		{"state download failed", "failed", "", "downloadFailed", status.DownloadFailed},
		{"state download failed pending", "failed", "", "downloadFailedPending", status.DownloadFailed},
		{"state import failed", "completed", "", "importFailed", status.DownloadFailed},
		{"state case-insensitive", "queued", "", "IMPORTED", status.DownloadCompleted},
		{"no state uses tracked status", "queued", "warning", "", status.DownloadWarning},
		{"unknown state uses tracked status", "paused", "ok", "stalled", status.DownloadDownloading},
		{"no qualifiers", "paused", "", "", status.DownloadPaused},
		{"nothing matches", "nope", "", "nope", status.DownloadUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DownloadFromRadarrQueue(tt.status, tt.trackedStatus, tt.trackedState))
		})
	}
}

func TestRadarrFallsBackToSonarrRule(t *testing.T) {
	for _, s := range []string{"queued", "paused", "downloading", "completed", "failed", "warning"} {
		assert.Equal(t, DownloadFromSonarrQueue(s, ""), DownloadFromRadarrQueue(s, "", ""), s)
		for _, tracked := range []string{"ok", "warning", "error"} {
			assert.Equal(t, DownloadFromSonarrQueue(s, tracked), DownloadFromRadarrQueue(s, tracked, ""), s+"/"+tracked)
		}
	}
}

func TestDownloadFromNZBGet(t *testing.T) {
	tests := map[string]status.Download{
		"QUEUED":             status.DownloadQueued,
		"PP_QUEUED":          status.DownloadQueued,
		"PAUSED":             status.DownloadPaused,
		"DOWNLOADING":        status.DownloadDownloading,
		"FETCHING":           status.DownloadDownloading,
		"LOADING_PARS":       status.DownloadVerifying,
		"VERIFYING_SOURCES":  status.DownloadVerifying,
		"REPAIRING":          status.DownloadVerifying,
		"VERIFYING_REPAIRED": status.DownloadVerifying,
		"RENAMING":           status.DownloadExtracting,
		"UNPACKING":          status.DownloadExtracting,
		"MOVING":             status.DownloadImporting,
		"EXECUTING_SCRIPT":   status.DownloadImporting,
		"PP_FINISHED":        status.DownloadImporting,
		"SUCCESS":            status.DownloadCompleted,
		"FAILURE":            status.DownloadFailed,
		"DELETED":            status.DownloadFailed,
		"queued":             status.DownloadQueued,
		"SOMETHING_ELSE":     status.DownloadUnknown,
	}

	for in, want := range tests {
		assert.Equal(t, want, DownloadFromNZBGet(in), in)
	}
}

func TestDownloadFromNZBGetHistory(t *testing.T) {
	for _, s := range []string{"SUCCESS", "SUCCESS/ALL", "SUCCESS/UNPACK", "SUCCESS/MARK", "SUCCESS/GOOD", "success/good"} {
		assert.Equal(t, status.DownloadCompleted, DownloadFromNZBGetHistory(s), s)
	}
	for _, s := range []string{
		"FAILURE", "FAILURE/UNPACK", "FAILURE/PAR", "FAILURE/MOVE", "FAILURE/SCRIPT",
		"FAILURE/DISK", "FAILURE/HEALTH", "FAILURE/BAD",
		"DELETED", "DELETED/DUPE", "DELETED/MANUAL",
	} {
		assert.Equal(t, status.DownloadFailed, DownloadFromNZBGetHistory(s), s)
	}
	assert.Equal(t, status.DownloadUnknown, DownloadFromNZBGetHistory("WARNING/SPACE"))
}

func TestDownloadFromSABnzbd(t *testing.T) {
	tests := map[string]status.Download{
		"Queued":      status.DownloadQueued,
		"Paused":      status.DownloadPaused,
		"Downloading": status.DownloadDownloading,
		"Verifying":   status.DownloadVerifying,
		"Repairing":   status.DownloadVerifying,
		"Extracting":  status.DownloadExtracting,
		"Moving":      status.DownloadImporting,
		"Running":     status.DownloadImporting,
		"Completed":   status.DownloadCompleted,
		"Failed":      status.DownloadFailed,
		"Grabbing":    status.DownloadUnknown,
	}

	for in, want := range tests {
		assert.Equal(t, want, DownloadFromSABnzbd(in), in)
	}
}

func TestDownloadFromQBittorrent(t *testing.T) {
	tests := map[string]status.Download{
		"stalledUP":          status.DownloadWarning,
		"stalledUp":          status.DownloadWarning,
		"stalledDL":          status.DownloadWarning,
		"pausedUP":           status.DownloadPaused,
		"pausedDL":           status.DownloadPaused,
		"queuedUP":           status.DownloadQueued,
		"queuedDL":           status.DownloadQueued,
		"downloading":        status.DownloadDownloading,
		"metaDL":             status.DownloadDownloading,
		"forceUP":            status.DownloadDownloading,
		"forceDL":            status.DownloadDownloading,
		"uploading":          status.DownloadCompleted,
		"checkingUP":         status.DownloadVerifying,
		"checkingDL":         status.DownloadVerifying,
		"checkingResumeData": status.DownloadVerifying,
		"moving":             status.DownloadImporting,
		"error":              status.DownloadFailed,
		"missingFiles":       status.DownloadFailed,
		"stoppedUP":          status.DownloadUnknown,
	}

	for in, want := range tests {
		assert.Equal(t, want, DownloadFromQBittorrent(in), in)
	}
}

func TestDownloadFromQBittorrentDNAliases(t *testing.T) {
	tests := map[string]status.Download{
		"stalledDN":  status.DownloadWarning,
		"stalledDn":  status.DownloadWarning,
		"pausedDN":   status.DownloadPaused,
		"queuedDN":   status.DownloadQueued,
		"forceDN":    status.DownloadDownloading,
		"checkingDN": status.DownloadVerifying,
	}

	for in, want := range tests {
		assert.Equal(t, want, DownloadFromQBittorrent(in), in)
		dl := strings.TrimSuffix(strings.TrimSuffix(in, "DN"), "Dn") + "DL"
		assert.Equal(t, DownloadFromQBittorrent(dl), DownloadFromQBittorrent(in), in)
	}
}

func TestDownloadFromTransmission(t *testing.T) {
	want := []status.Download{
		status.DownloadPaused,
		status.DownloadQueued,
		status.DownloadVerifying,
		status.DownloadQueued,
		status.DownloadDownloading,
		status.DownloadQueued,
		status.DownloadCompleted,
	}
	for code, w := range want {
		assert.Equal(t, w, DownloadFromTransmission(code), "code %d", code)
	}
	assert.Equal(t, status.DownloadUnknown, DownloadFromTransmission(-1))
	assert.Equal(t, status.DownloadUnknown, DownloadFromTransmission(7))
}

func TestDownloadFromDeluge(t *testing.T) {
	tests := map[string]status.Download{
		"Queued":      status.DownloadQueued,
		"Paused":      status.DownloadPaused,
		"Downloading": status.DownloadDownloading,
		"Seeding":     status.DownloadCompleted,
		"Checking":    status.DownloadVerifying,
		"Moving":      status.DownloadImporting,
		"Error":       status.DownloadFailed,
		"Allocating":  status.DownloadUnknown,
	}

	for in, want := range tests {
		assert.Equal(t, want, DownloadFromDeluge(in), in)
	}
}

func TestJellyseerr(t *testing.T) {
	media := map[int]status.Media{
		0: status.MediaUnknown,
		1: status.MediaRequested,
		2: status.MediaQueued,
		3: status.MediaFailed,
		4: status.MediaAvailable,
		5: status.MediaDownloading,
		6: status.MediaUnknown,
	}
	for code, want := range media {
		assert.Equal(t, want, MediaFromJellyseerr(code), "media %d", code)
	}

	requests := map[int]status.Request{
		1:  status.RequestPending,
		2:  status.RequestApproved,
		3:  status.RequestRejected,
		4:  status.RequestFulfilled,
		5:  status.RequestApproved,
		0:  status.RequestPending,
		99: status.RequestPending,
	}
	for code, want := range requests {
		assert.Equal(t, want, RequestFromJellyseerr(code), "request %d", code)
	}
}

func TestOverseerrAliasesJellyseerr(t *testing.T) {
	for code := -1; code <= 10; code++ {
		assert.Equal(t, MediaFromJellyseerr(code), MediaFromOverseerr(code))
		assert.Equal(t, RequestFromJellyseerr(code), RequestFromOverseerr(code))
	}
}

func TestResultsStayInsideTheCanonicalSets(t *testing.T) {
	inputs := []string{
		"", "queued", "QUEUED", "paused", "downloading", "completed", "failed", "warning",
		"stalledUP", "uploading", "SUCCESS/UNPACK", "FAILURE/PAR", "seeding", "checking",
		"continuing", "released", "tba", "garbage", "ok", "error", "importPending",
	}
	downloads := status.AllDownload()
	media := status.AllMedia()

	for _, in := range inputs {
		for _, got := range []status.Download{
			DownloadFromSonarrQueue(in, in),
			DownloadFromRadarrQueue(in, in, in),
			DownloadFromNZBGet(in),
			DownloadFromNZBGetHistory(in),
			DownloadFromSABnzbd(in),
			DownloadFromQBittorrent(in),
			DownloadFromDeluge(in),
		} {
			assert.True(t, slices.Contains(downloads, got), "%q produced %q", in, got)
		}
		for _, got := range []status.Media{MediaFromSonarr(in, true), MediaFromRadarr(in, false)} {
			assert.True(t, slices.Contains(media, got), "%q produced %q", in, got)
		}
	}
}
