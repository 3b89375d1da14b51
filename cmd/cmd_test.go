package cmd

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/arrcore/arr"
	"github.com/s0up4200/arrcore/domain"
	"github.com/s0up4200/arrcore/endpoint"
	"github.com/s0up4200/arrcore/status"
	"github.com/s0up4200/arrcore/value"
)

func TestResolveStatus(t *testing.T) {
	tests := []struct {
		name   string
		source string
		raw    string
		opts   normalizeOptions
		kind   string
		want   string
	}{
		{"qbittorrent stalled upload", "qbittorrent", "stalledUP", normalizeOptions{}, "download", "warning"},
		{"source is case insensitive", "QBittorrent", "stalledUP", normalizeOptions{}, "download", "warning"},
		{"sonarr library", "sonarr", "continuing", normalizeOptions{kind: "media", hasFile: true}, "media", "available"},
		{"sonarr library without files", "sonarr", "ended", normalizeOptions{kind: "media"}, "media", "missing"},
		{"transmission code", "transmission", "4", normalizeOptions{}, "download", "downloading"},
		{"nzbget history", "nzbget", "SUCCESS/ALL", normalizeOptions{history: true}, "download", "completed"},
		{"jellyseerr request", "jellyseerr", "2", normalizeOptions{}, "request", "approved"},
		{"overseerr request", "overseerr", "3", normalizeOptions{kind: "request"}, "request", "rejected"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := resolveStatus(tt.source, tt.raw, tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.kind, res.Kind)
			assert.Equal(t, tt.want, res.Status)
			assert.NotEmpty(t, res.Label)
			assert.NotEmpty(t, res.Color)
		})
	}
}

func TestResolveStatusErrors(t *testing.T) {
	_, err := resolveStatus("plex", "playing", normalizeOptions{})
	assert.ErrorContains(t, err, "unknown source")

	_, err = resolveStatus("transmission", "seeding", normalizeOptions{})
	assert.ErrorContains(t, err, "must be a number")

	_, err = resolveStatus("qbittorrent", "downloading", normalizeOptions{kind: "media"})
	assert.ErrorContains(t, err, `no "media" status kind`)
}

func TestResolveStatusPriorityOrder(t *testing.T) {
	failed, err := resolveStatus("nzbget", "FAILURE/PAR", normalizeOptions{history: true})
	require.NoError(t, err)
	done, err := resolveStatus("nzbget", "SUCCESS/ALL", normalizeOptions{history: true})
	require.NoError(t, err)

	assert.Less(t, failed.Priority, done.Priority)
}

func mustStringID(t *testing.T, s string) value.ID {
	t.Helper()
	id, err := value.StringID(s)
	require.NoError(t, err)
	return id
}

func TestCollectQueue(t *testing.T) {
	arrItem := domain.DownloadItem{ID: value.IntID(1), Name: "Movie.2024.1080p", Source: arr.Radarr, Status: status.DownloadDownloading}
	tracked := domain.DownloadItem{ID: mustStringID(t, "AAAA"), Name: "Movie.2024.1080p", Source: arr.QBittorrent, Status: status.DownloadDownloading}
	untracked := domain.DownloadItem{ID: mustStringID(t, "BBBB"), Name: "Linux.iso", Source: arr.QBittorrent, Status: status.DownloadCompleted}

	sources := []queueSource{
		{
			name: "radarr",
			fetch: func(context.Context) (domain.DownloadItems, []string, error) {
				return domain.DownloadItems{arrItem}, []string{"aaaa"}, nil
			},
		},
		{
			name: "qbittorrent",
			fetch: func(context.Context) (domain.DownloadItems, []string, error) {
				return domain.DownloadItems{tracked, untracked}, nil, nil
			},
		},
		{
			name: "nzbget",
			fetch: func(context.Context) (domain.DownloadItems, []string, error) {
				return nil, nil, errors.New("connection refused")
			},
		},
	}

	t.Run("dedup", func(t *testing.T) {
		res := collectQueue(context.Background(), sources, true)
		require.Len(t, res.Items, 2)
		assert.Equal(t, arr.Radarr, res.Items[0].Source)
		assert.Equal(t, "BBBB", res.Items[1].ID.String())
		require.Contains(t, res.Failed, "nzbget")
		assert.EqualError(t, res.Failed["nzbget"], "connection refused")
	})

	t.Run("keep duplicates", func(t *testing.T) {
		res := collectQueue(context.Background(), sources, false)
		assert.Len(t, res.Items, 3)
	})
}

func TestResolveCommandName(t *testing.T) {
	name, err := resolveCommandName("rsssync")
	require.NoError(t, err)
	assert.Equal(t, arr.CommandRssSync, name)

	_, err = resolveCommandName("RssSnc")
	assert.ErrorContains(t, err, `did you mean "RssSync"`)

	_, err = resolveCommandName("zzzzzzzzzzzzzzzz")
	assert.ErrorContains(t, err, "arrcore command names")
}

func TestParseCommandArgs(t *testing.T) {
	body, err := parseCommandArgs([]string{"movieIds=1,2,3", "movieId=5", "sendUpdates=true", "path=/data/movies"})
	require.NoError(t, err)
	assert.Equal(t, endpoint.Params{
		"movieIds":    []int64{1, 2, 3},
		"movieId":     int64(5),
		"sendUpdates": true,
		"path":        "/data/movies",
	}, body)

	_, err = parseCommandArgs([]string{"novalue"})
	assert.Error(t, err)
	_, err = parseCommandArgs([]string{"=1"})
	assert.Error(t, err)
}

func TestParseArgValueMixedList(t *testing.T) {
	assert.Equal(t, "a,1", parseArgValue("a,1"))
}

func TestRenderTable(t *testing.T) {
	out := renderTable(
		[]string{"Source", "Title"},
		[][]string{{"Radarr", "Dune (2021)"}, {"qBittorrent"}},
		[]columnAlignment{alignLeft, alignRight},
	)
	assert.Contains(t, out, "Dune (2021)")
	assert.Contains(t, out, "qBittorrent")
	assert.Contains(t, out, "╭")

	assert.Empty(t, renderTable(nil, nil, nil))
}

func TestColorLabel(t *testing.T) {
	assert.Equal(t, "Failed", colorLabel("Failed", status.ColorRed, false))
	assert.Equal(t, "Odd", colorLabel("Odd", "magenta", true))
	assert.Contains(t, colorLabel("Failed", status.ColorRed, true), "Failed")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abc…", truncate("abcdef", 4))
	assert.Equal(t, "ünï…", truncate("ünïcode", 4))
}

func TestCurrentSemVer(t *testing.T) {
	v, ok := currentSemVer("v1.4.2")
	require.True(t, ok)
	assert.Equal(t, "1.4.2", v.String())

	_, ok = currentSemVer("dev")
	assert.False(t, ok)
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	c := &cobra.Command{}
	c.SetOut(&buf)

	require.NoError(t, writeJSON(c, statusResult{Kind: "download", Status: "failed", Label: "Failed", Priority: 1, Color: "red"}))
	assert.JSONEq(t, `{"kind":"download","status":"failed","label":"Failed","priority":1,"color":"red"}`, buf.String())
}

func TestNormalizeCommandOutput(t *testing.T) {
	var buf bytes.Buffer
	c := &cobra.Command{}
	c.SetOut(&buf)

	jsonOutput = true
	t.Cleanup(func() { jsonOutput = false })

	require.NoError(t, runNormalize(c, []string{"qbittorrent", "error"}))
	assert.Contains(t, buf.String(), `"status": "failed"`)
}
