package actions_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/arrcore/actions"
	"github.com/s0up4200/arrcore/arr"
	"github.com/s0up4200/arrcore/arrtest"
	"github.com/s0up4200/arrcore/client"
	"github.com/s0up4200/arrcore/endpoint"
	"github.com/s0up4200/arrcore/status"
)

func newSet(service arr.Service) (*actions.Set, *arrtest.FakeClient) {
	fake := arrtest.NewFakeClient()
	return actions.New(fake, service), fake
}

func TestQueueAllDefaultPagination(t *testing.T) {
	set, fake := newSet(arr.Radarr)

	page, err := set.Queue.All(context.Background())
	require.NoError(t, err)

	assert.True(t, page.IsEmpty())
	fake.AssertCalledWith(t, endpoint.Queue, endpoint.Params{"page": 1, "pageSize": 50})
	fake.AssertCalledWithMethod(t, "get", endpoint.Queue)
}

func TestQueueAllOptions(t *testing.T) {
	set, fake := newSet(arr.Radarr)

	_, err := set.Queue.All(context.Background(),
		endpoint.NewPagination(2, 25),
		endpoint.SortBy("timeleft").Ascending(),
		endpoint.QueueOptions{Include: []string{endpoint.IncludeMovie}},
	)
	require.NoError(t, err)

	fake.AssertCalledWith(t, endpoint.Queue, endpoint.Params{
		"page":          2,
		"pageSize":      25,
		"sortKey":       "timeleft",
		"sortDirection": "ascending",
		"includeMovie":  true,
	})
}

func TestQueueDownloadItemsRadarr(t *testing.T) {
	set, fake := newSet(arr.Radarr)
	f := arrtest.QueueFactory{Service: arr.Radarr}

	fake.SetResponse(endpoint.Queue, arrtest.Attrs{
		"page":         1,
		"pageSize":     100,
		"totalRecords": 3,
		"records":      []arrtest.Attrs{f.Make(1), f.MakeWithError(2), f.MakeCompleted(3)},
	})

	items, err := set.Queue.DownloadItems(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 3)

	assert.Equal(t, status.DownloadDownloading, items[0].Status)
	assert.Equal(t, arr.Radarr, items[0].Source)
	assert.InDelta(t, 50.0, items[0].Progress.Percentage(), 0.001)
	require.NotNil(t, items[0].ETA)
	assert.Equal(t, int64(1800), items[0].ETA.Seconds())
	assert.Equal(t, "Movie 1", items[0].MediaTitle)
	require.NotNil(t, items[0].MediaID)
	assert.Equal(t, "1", items[0].MediaID.String())

	assert.Equal(t, status.DownloadWarning, items[1].Status)
	assert.Equal(t, "Download verification failed", items[1].ErrorMessage)

	assert.Equal(t, status.DownloadImporting, items[2].Status)
	assert.True(t, items[2].Progress.IsComplete())
	assert.Nil(t, items[2].ETA)

	fake.AssertCalledTimes(t, endpoint.Queue, 1)
	fake.AssertCalledWith(t, endpoint.Queue, endpoint.Params{"page": 1, "pageSize": 100})
}

func TestQueueDownloadItemsSonarrIgnoresTrackedState(t *testing.T) {
	set, fake := newSet(arr.Sonarr)
	f := arrtest.QueueFactory{Service: arr.Sonarr}

	fake.SetResponse(endpoint.Queue, arrtest.Attrs{
		"page": 1, "pageSize": 100, "totalRecords": 1,
		"records": []arrtest.Attrs{f.MakeCompleted(7)},
	})

	items, err := set.Queue.DownloadItems(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)

	// tracked status "ok" wins over the record status for Sonarr
	assert.Equal(t, status.DownloadDownloading, items[0].Status)
	assert.Equal(t, "Series 7", items[0].MediaTitle)
}

func TestQueueRecordsPagesUntilTotal(t *testing.T) {
	set, fake := newSet(arr.Radarr)
	f := arrtest.QueueFactory{Service: arr.Radarr}

	fake.SetResponse(endpoint.Queue, arrtest.ResponseFunc(func(call arrtest.Call) (any, error) {
		page := call.Params["page"].(int)
		records := []arrtest.Attrs{f.Make(int64(page*10 + 1)), f.Make(int64(page*10 + 2))}
		if page == 3 {
			records = records[:1]
		}
		return arrtest.Attrs{"page": page, "pageSize": 100, "totalRecords": 5, "records": records}, nil
	}))

	records, err := set.Queue.Records(context.Background())
	require.NoError(t, err)

	assert.Len(t, records, 5)
	fake.AssertCalledTimes(t, endpoint.Queue, 3)
}

func TestQueueStatus(t *testing.T) {
	set, fake := newSet(arr.Sonarr)
	fake.SetResponse(endpoint.QueueStatus, arrtest.Attrs{
		"totalCount": 3, "count": 3, "errors": false, "warnings": true,
	})

	st, err := set.Queue.Status(context.Background())
	require.NoError(t, err)

	assert.True(t, st.HasWarnings())
	assert.False(t, st.HasErrors())
	assert.True(t, st.HasIssues())
	assert.False(t, st.IsEmpty())
}

func TestQueueDelete(t *testing.T) {
	set, fake := newSet(arr.Radarr)

	require.NoError(t, set.Queue.Delete(context.Background(), 42, actions.DeleteOptions{Blocklist: true}))

	fake.AssertCalledWithMethod(t, "DELETE", endpoint.QueueByID)
	fake.AssertCalledWith(t, endpoint.QueueByID, endpoint.Params{
		"id":               42,
		"removeFromClient": true,
		"blocklist":        true,
		"skipRedownload":   false,
		"changeCategory":   false,
	})
	assert.Equal(t, "queue/42", fake.Calls()[0].Path)
}

func TestQueueBulkDelete(t *testing.T) {
	set, fake := newSet(arr.Radarr)

	require.NoError(t, set.Queue.BulkDelete(context.Background(), nil, actions.DeleteOptions{}))
	fake.AssertNothingCalled(t)

	require.NoError(t, set.Queue.BulkDelete(context.Background(), []int64{1, 2}, actions.DeleteOptions{KeepInClient: true}))
	fake.AssertCalledWith(t, endpoint.QueueBulk, endpoint.Params{
		"ids":              []int64{1, 2},
		"removeFromClient": false,
		"blocklist":        false,
		"skipRedownload":   false,
		"changeCategory":   false,
	})
}

func TestQueueErrorIsWrapped(t *testing.T) {
	set, fake := newSet(arr.Radarr)
	fake.SetError(endpoint.Queue, &client.APIError{StatusCode: 401, Err: client.ErrUnauthorized})

	_, err := set.Queue.All(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to get queue")
	assert.True(t, client.IsUnauthorized(err))
}

func TestHistory(t *testing.T) {
	set, fake := newSet(arr.Radarr)
	hf := arrtest.HistoryFactory{Service: arr.Radarr}
	ctx := context.Background()

	fake.SetResponse(endpoint.History, hf.MakePaginated(3, 1, 10, 3))
	page, err := set.History.All(ctx)
	require.NoError(t, err)
	assert.Len(t, page.Records, 3)
	assert.Equal(t, 1, page.TotalPages())
	assert.False(t, page.HasNextPage())
	fake.AssertCalledWith(t, endpoint.History, endpoint.Params{"page": 1, "pageSize": 10})

	fake.SetResponse(endpoint.HistorySince, []arrtest.Attrs{hf.MakeGrabbed(1), hf.MakeImported(2), hf.MakeFailed(3)})
	since, err := set.History.Since(ctx, time.Date(2024, 1, 1, 15, 0, 0, 0, time.UTC),
		endpoint.HistoryOptions{EventType: 1})
	require.NoError(t, err)
	require.Len(t, since, 3)
	assert.True(t, since[0].IsGrabbed())
	assert.Equal(t, "NZBGeek", since[0].Indexer())
	assert.True(t, since[1].IsImported())
	assert.True(t, since[2].IsFailed())
	assert.Equal(t, "Download failed - verification failed", since[2].Data["message"])
	fake.AssertCalledWith(t, endpoint.HistorySince, endpoint.Params{"date": "2024-01-01", "eventType": 1})

	_, err = set.History.Movie(ctx, 9)
	require.NoError(t, err)
	fake.AssertCalledWith(t, endpoint.HistoryMovie, endpoint.Params{"movieId": 9})

	require.NoError(t, set.History.MarkFailed(ctx, 12))
	fake.AssertCalledWithMethod(t, "POST", endpoint.HistoryFailed)
	calls := fake.Calls()
	assert.Equal(t, "history/failed/12", calls[len(calls)-1].Path)
}

func TestWantedMissingAndCutoff(t *testing.T) {
	set, fake := newSet(arr.Radarr)
	ctx := context.Background()
	monitored := true

	fake.SetResponse(endpoint.WantedMissing, arrtest.Attrs{
		"page": 1, "pageSize": 10, "totalRecords": 1,
		"records": []arrtest.Attrs{{"id": 1, "title": "Movie", "status": "released", "hasFile": false}},
	})
	page, err := set.Wanted.Missing(ctx, endpoint.WantedOptions{Monitored: &monitored})
	require.NoError(t, err)
	require.Len(t, page.Records, 1)
	assert.Equal(t, status.MediaMissing, page.Records[0].MediaStatus(arr.Radarr))
	fake.AssertCalledWith(t, endpoint.WantedMissing, endpoint.Params{"page": 1, "pageSize": 10, "monitored": true})

	_, err = set.Wanted.Cutoff(ctx)
	require.NoError(t, err)
	fake.AssertCalled(t, endpoint.WantedCutoff)
}

func TestWantedAllStopsOnEmptyPage(t *testing.T) {
	set, fake := newSet(arr.Sonarr)

	fake.SetResponse(endpoint.WantedCutoff, arrtest.ResponseFunc(func(call arrtest.Call) (any, error) {
		if call.Params["page"].(int) > 1 {
			return arrtest.Attrs{"page": 2, "pageSize": 100, "totalRecords": 500, "records": []any{}}, nil
		}
		return arrtest.Attrs{
			"page": 1, "pageSize": 100, "totalRecords": 500,
			"records": []arrtest.Attrs{{"id": 1, "seriesId": 3}},
		}, nil
	}))

	records, err := set.Wanted.AllCutoff(context.Background())
	require.NoError(t, err)

	assert.Len(t, records, 1)
	fake.AssertCalledTimes(t, endpoint.WantedCutoff, 2)
}

func TestWantedAllPropagatesError(t *testing.T) {
	set, fake := newSet(arr.Radarr)
	boom := errors.New("boom")
	fake.SetError(endpoint.WantedMissing, boom)

	_, err := set.Wanted.AllMissing(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestCommands(t *testing.T) {
	set, fake := newSet(arr.Radarr)
	ctx := context.Background()

	fake.SetResponseFor("POST", endpoint.Command, arrtest.Attrs{
		"id": 5, "name": "RssSync", "commandName": "RSS Sync", "status": "queued",
	})

	cmd, err := set.Command.RSSSync(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(5), cmd.ID)
	assert.True(t, cmd.IsQueued())
	assert.True(t, cmd.IsRunning())
	fake.AssertCalledWith(t, endpoint.Command, endpoint.Params{"name": "RssSync"})

	_, err = set.Command.RenameFiles(ctx, 3, []int64{10, 11})
	require.NoError(t, err)
	fake.AssertCalledWith(t, endpoint.Command, endpoint.Params{
		"name": "RenameFiles", "movieId": 3, "files": []int64{10, 11},
	})

	_, err = set.Command.Run(ctx, arr.CommandBackup, endpoint.Params{"name": "ignored"})
	require.NoError(t, err)
	fake.AssertCalledWith(t, endpoint.Command, endpoint.Params{"name": "Backup"})

	// GET falls back to the default list
	all, err := set.Command.All(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	fake.SetResponse(endpoint.CommandByID, arrtest.Attrs{"id": 5, "status": "completed"})
	got, err := set.Command.Get(ctx, 5)
	require.NoError(t, err)
	assert.True(t, got.IsCompleted())
	assert.False(t, got.IsRunning())

	require.NoError(t, set.Command.Cancel(ctx, 5))
	fake.AssertCalledWithMethod(t, "DELETE", endpoint.CommandByID)
}

func TestCommandStatusUnknown(t *testing.T) {
	cmd := actions.Command{Status: "exploded"}
	assert.Equal(t, status.CommandUnknown, cmd.CommandStatus())
	assert.False(t, cmd.IsRunning())
}

func TestCalendar(t *testing.T) {
	set, fake := newSet(arr.Sonarr)
	ctx := context.Background()

	fake.SetResponse(endpoint.Calendar, []arrtest.Attrs{
		{"id": 1, "title": "Pilot", "seriesId": 2, "seasonNumber": 1, "episodeNumber": 1},
	})

	entries, err := set.Calendar.All(ctx, endpoint.CalendarOptions{
		Start:       time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		End:         time.Date(2024, 3, 8, 0, 0, 0, 0, time.UTC),
		Unmonitored: true,
	})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, entries[0].IsEpisode())
	fake.AssertCalledWith(t, endpoint.Calendar, endpoint.Params{
		"start": "2024-03-01", "end": "2024-03-08", "unmonitored": true,
	})

	_, err = set.Calendar.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "calendar/1", fake.Calls()[1].Path)
}

func TestSystemSummary(t *testing.T) {
	set, fake := newSet(arr.Radarr)
	sf := arrtest.SystemStatusFactory{Service: arr.Radarr}

	fake.SetResponse(endpoint.SystemStatus, sf.Make())
	fake.SetResponse(endpoint.Health, []arrtest.Attrs{
		{"source": "IndexerCheck", "type": "warning", "message": "No indexers", "wikiUrl": "https://wiki"},
	})

	summary, err := set.System.Summary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, arr.Radarr, summary.Source)
	assert.Equal(t, "5.2.6.8376", summary.Version)
	assert.False(t, summary.IsHealthy)
	assert.Equal(t, 1, summary.IssueCount())
	require.NotNil(t, summary.StartTime)
	assert.True(t, summary.AtLeast("5.0.0"))
	fake.AssertCalled(t, endpoint.SystemStatus)
	fake.AssertCalled(t, endpoint.Health)
}

func TestSystemSummaryError(t *testing.T) {
	set, fake := newSet(arr.Radarr)
	fake.SetError(endpoint.Health, client.ErrConnection)

	_, err := set.System.Summary(context.Background())
	assert.ErrorIs(t, err, client.ErrConnection)
}

func TestSystemMaintenance(t *testing.T) {
	set, fake := newSet(arr.Sonarr)
	ctx := context.Background()

	fake.SetResponse(endpoint.DiskSpace, []arrtest.Attrs{
		{"path": "/data", "label": "data", "freeSpace": 250, "totalSpace": 1000},
		{"path": "/config", "label": "config", "freeSpace": 250, "totalSpace": 1000},
	})
	disks, err := set.System.DiskSpace(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(500), disks.TotalFree().Bytes())
	assert.InDelta(t, 75.0, disks.UsedPercentage(), 0.001)

	fake.SetResponse(endpoint.SystemTask, []arrtest.Attrs{
		{"id": 1, "name": "RSS Sync", "taskName": "RssSync", "interval": 15, "lastDuration": "00:00:03.5"},
	})
	tasks, err := set.System.Tasks(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, int64(3), tasks[0].Duration().Seconds())

	_, err = set.System.Task(ctx, 1)
	require.NoError(t, err)

	backups, err := set.System.Backups(ctx)
	require.NoError(t, err)
	assert.Empty(t, backups)
}

func TestPage(t *testing.T) {
	p := actions.Page[int]{Page: 2, PageSize: 10, TotalRecords: 25, Records: []int{1}}
	assert.Equal(t, 3, p.TotalPages())
	assert.True(t, p.HasNextPage())
	assert.True(t, p.HasPreviousPage())
	assert.False(t, p.IsEmpty())

	assert.Equal(t, 0, actions.Page[int]{}.TotalPages())
}
