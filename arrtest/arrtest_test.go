package arrtest_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/arrcore/arr"
	"github.com/s0up4200/arrcore/arrtest"
	"github.com/s0up4200/arrcore/client"
	"github.com/s0up4200/arrcore/endpoint"
)

var _ client.Requester = (*arrtest.FakeClient)(nil)

func TestFakeClientResponses(t *testing.T) {
	fake := arrtest.NewFakeClient()
	ctx := context.Background()

	fake.SetResponse(endpoint.SystemStatus, arrtest.Attrs{"version": "1.0"})
	fake.SetResponseFor("put", endpoint.SystemStatus, arrtest.Attrs{"version": "2.0"})

	var out struct {
		Version string `json:"version"`
	}
	require.NoError(t, fake.Get(ctx, endpoint.SystemStatus, nil, &out))
	assert.Equal(t, "1.0", out.Version)

	require.NoError(t, fake.Put(ctx, endpoint.SystemStatus, nil, &out))
	assert.Equal(t, "2.0", out.Version)

	fake.AssertCalledTimes(t, endpoint.SystemStatus, 2)
	fake.AssertCalledWithMethod(t, "PUT", endpoint.SystemStatus)
	fake.AssertNotCalled(t, endpoint.Health)
}

func TestFakeClientDefaults(t *testing.T) {
	fake := arrtest.NewFakeClient()

	var page struct {
		Page    int   `json:"page"`
		Records []any `json:"records"`
	}
	require.NoError(t, fake.Get(context.Background(), endpoint.Queue, nil, &page))
	assert.Equal(t, 1, page.Page)
	assert.NotNil(t, page.Records)

	// default list does not fit an object; treated as empty
	var cmd struct {
		ID int `json:"id"`
	}
	require.NoError(t, fake.Post(context.Background(), endpoint.Command, endpoint.Params{"name": "RssSync"}, &cmd))
	assert.Zero(t, cmd.ID)
}

func TestFakeClientErrorsAndLog(t *testing.T) {
	fake := arrtest.NewFakeClient()
	boom := errors.New("boom")
	fake.SetError(endpoint.QueueByID, boom)

	err := fake.Delete(context.Background(), endpoint.QueueByID, endpoint.Params{"id": 3, "blocklist": true}, nil)
	assert.ErrorIs(t, err, boom)

	calls := fake.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "DELETE", calls[0].Method)
	assert.Equal(t, "queue/3", calls[0].Path)
	fake.AssertCalledWith(t, endpoint.QueueByID, endpoint.Params{"id": int64(3), "blocklist": true})

	fake.Reset()
	fake.AssertNothingCalled(t)
}

func TestFakeClientHonoursContext(t *testing.T) {
	fake := arrtest.NewFakeClient()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := fake.Get(ctx, endpoint.Queue, nil, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFakeRPC(t *testing.T) {
	rpc := arrtest.NewFakeRPC()
	rpc.SetResponse("version", "21.1")
	rpc.SetError("history", errors.New("down"))
	ctx := context.Background()

	var v string
	require.NoError(t, rpc.Call(ctx, "version", nil, &v))
	assert.Equal(t, "21.1", v)

	require.Error(t, rpc.Call(ctx, "history", []any{false}, nil))

	rpc.AssertCalled(t, "version")
	rpc.AssertNotCalled(t, "listgroups")
	rpc.AssertCalledWith(t, "history", []any{false})
	rpc.AssertCalledTimes(t, "version", 1)
	assert.Equal(t, 2, rpc.RequestID())
}

func TestFactories(t *testing.T) {
	q := arrtest.QueueFactory{Service: arr.Sonarr}
	rec := q.Make(3, arrtest.Attrs{"title": "custom"})
	assert.Equal(t, "custom", rec["title"])
	assert.Equal(t, int64(3), rec["seriesId"])
	assert.Equal(t, "SABnzbd_nzo_000000000003", rec["downloadId"])

	completed := q.MakeCompleted(1)
	assert.Equal(t, "importPending", completed["trackedDownloadState"])
	assert.Nil(t, completed["timeleft"])

	page := q.MakePaginated(2, 1, 10, 2)
	assert.Len(t, page["records"], 2)

	h := arrtest.HistoryFactory{Service: arr.Radarr}
	assert.Equal(t, "downloadFailed", h.MakeFailed(1)["eventType"])
	assert.Equal(t, int64(4), h.MakeImported(4)["movieId"])

	sys := arrtest.SystemStatusFactory{Service: arr.Sonarr}.Make(arrtest.Attrs{"branch": "develop"})
	assert.Equal(t, "Sonarr", sys["appName"])
	assert.Equal(t, "develop", sys["branch"])
}
