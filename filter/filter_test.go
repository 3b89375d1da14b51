package filter

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/arrcore/arr"
	"github.com/s0up4200/arrcore/domain"
	"github.com/s0up4200/arrcore/status"
	"github.com/s0up4200/arrcore/value"
)

func testItem(id int64, name string, st status.Download, source arr.Service) domain.DownloadItem {
	item := domain.DownloadItem{
		ID:             value.IntID(id),
		Name:           name,
		Size:           value.MustFileSize(2 << 30),
		SizeRemaining:  value.MustFileSize(1 << 30),
		Progress:       value.ProgressFromRatio(0.5),
		Status:         st,
		Source:         source,
		DownloadClient: "qBittorrent",
		Category:       "movies",
	}
	return item
}

func testItems() domain.DownloadItems {
	eta, _ := value.DurationFromSeconds(7200)
	added := value.TimestampFrom(time.Now().AddDate(0, 0, -3))

	slow := testItem(1, "Slow.Movie.2023", status.DownloadDownloading, arr.Radarr)
	slow.ETA = &eta
	slow.AddedAt = &added

	failed := testItem(2, "Broken.Show.S01E01", status.DownloadFailed, arr.Sonarr)
	failed.ErrorMessage = "no files found"
	failed.MediaTitle = "Broken Show"

	done := testItem(3, "Done.Movie", status.DownloadCompleted, arr.QBittorrent)
	done.SizeRemaining = value.MustFileSize(0)
	done.Progress = value.ProgressFromRatio(1)

	return domain.DownloadItems{slow, failed, done}
}

func names(items domain.DownloadItems) []string {
	out := make([]string, 0, len(items))
	for _, i := range items {
		out = append(out, i.Name)
	}
	return out
}

func TestCompile(t *testing.T) {
	tests := []struct {
		name        string
		expression  string
		wantErr     bool
		errContains string
	}{
		{name: "valid expression", expression: `isStatus("failed")`},
		{name: "empty expression", expression: "  ", wantErr: true, errContains: "empty expression"},
		{name: "invalid syntax", expression: `includes(Name, "unclosed`, wantErr: true},
		{name: "not boolean", expression: `1 + 2`, wantErr: true},
		{name: "complex expression", expression: `Active and ETA > 3600 and Size > gb(1)`},
	}

	c := NewExprCompiler()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := c.Compile(tt.expression)
			if tt.wantErr {
				require.Error(t, err)
				var cerr *CompilationError
				assert.True(t, errors.As(err, &cerr))
				if tt.errContains != "" {
					assert.Contains(t, err.Error(), tt.errContains)
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expression, f.Expression())
		})
	}
}

func TestEvaluate(t *testing.T) {
	items := testItems()
	c := NewExprCompiler()

	tests := []struct {
		expression string
		want       []string
	}{
		{`isStatus("failed", "warning")`, []string{"Broken.Show.S01E01"}},
		{`HasError`, []string{"Broken.Show.S01E01"}},
		{`Active and ETA > 3600`, []string{"Slow.Movie.2023"}},
		{`fromSource("radarr") or fromSource("QBITTORRENT")`, []string{"Slow.Movie.2023", "Done.Movie"}},
		{`Complete`, []string{"Done.Movie"}},
		{`Progress >= 50 and Remaining > 0`, []string{"Slow.Movie.2023", "Broken.Show.S01E01"}},
		{`includes(Title, "broken show")`, []string{"Broken.Show.S01E01"}},
		{`Title contains "Broken"`, []string{"Broken.Show.S01E01"}},
		{`startsWith(Name, "slow") or endsWith(Name, "MOVIE")`, []string{"Slow.Movie.2023", "Done.Movie"}},
		{`daysSince(Added) >= 2`, []string{"Slow.Movie.2023"}},
		{`Status == "completed" and Client == "qBittorrent"`, []string{"Done.Movie"}},
		{`Downloaded == gb(1)`, []string{"Slow.Movie.2023", "Broken.Show.S01E01"}},
	}

	for _, tt := range tests {
		t.Run(tt.expression, func(t *testing.T) {
			f, err := c.Compile(tt.expression)
			require.NoError(t, err)
			assert.Equal(t, tt.want, names(items.Filter(f.Evaluate)))
		})
	}
}

func TestEvaluateRuntimeError(t *testing.T) {
	f, err := NewExprCompiler().Compile(`Size % (Size - Size) == 0`)
	require.NoError(t, err)

	item := testItems()[0]
	assert.False(t, f.Evaluate(item))

	_, err = f.(*exprFilter).Run(item)
	var eerr *EvaluationError
	require.ErrorAs(t, err, &eerr)
	assert.Equal(t, "Slow.Movie.2023", eerr.ItemName)
}

func TestCompilerCache(t *testing.T) {
	c := NewExprCompiler(WithCache(time.Minute))

	f1, err := c.Compile(`HasError`)
	require.NoError(t, err)
	f2, err := c.Compile(` HasError `)
	require.NoError(t, err)
	assert.Same(t, f1, f2)
	assert.Equal(t, 1, c.Size())

	c.Clear()
	assert.Equal(t, 0, c.Size())

	assert.Equal(t, 0, NewExprCompiler().Size())
}

func TestCustomFunctions(t *testing.T) {
	c := NewExprCompiler(WithCustomFunctions(map[string]any{
		"isMovie": func(category string) bool { return category == "movies" },
		"always":  func() bool { return true },
	}))

	f, err := c.Compile(`isMovie(Category)`)
	require.NoError(t, err)
	assert.Len(t, testItems().Filter(f.Evaluate), 3)

	f, err = c.Compile(`always()`)
	require.NoError(t, err)
	ok, err := f.(*exprFilter).Run(testItems()[0])
	require.NoError(t, err)
	assert.True(t, ok)

	f, err = c.Compile(`isMovie(Category) and isStatus("completed")`)
	require.NoError(t, err)
	assert.Equal(t, []string{"Done.Movie"}, names(testItems().Filter(f.Evaluate)))
}

func TestCustomFunctionsWithCache(t *testing.T) {
	c := NewExprCompiler(
		WithCache(time.Minute),
		WithCustomFunctions(map[string]any{"isMovie": func(category string) bool { return category == "movies" }}),
	)

	first, err := c.Compile(`isMovie(Category)`)
	require.NoError(t, err)
	second, err := c.Compile(`isMovie(Category)`)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Len(t, testItems().Filter(second.Evaluate), 3)
}

func TestConcurrentEvaluator(t *testing.T) {
	var items domain.DownloadItems
	for i := range 250 {
		st := status.DownloadDownloading
		if i%5 == 0 {
			st = status.DownloadFailed
		}
		items = append(items, testItem(int64(i), "item", st, arr.Radarr))
	}

	f, err := NewExprCompiler().Compile(`isStatus("failed")`)
	require.NoError(t, err)

	e := NewConcurrentEvaluator(WithWorkers(4), WithBatchSize(20))
	got, err := e.Evaluate(context.Background(), f, items)
	require.NoError(t, err)
	require.Len(t, got, 50)
	for i, item := range got {
		id, _ := item.ID.Int()
		assert.Equal(t, int64(i*5), id, "order must be preserved")
	}

	empty, err := e.Evaluate(context.Background(), f, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = e.Evaluate(ctx, f, items)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestManager(t *testing.T) {
	m := NewManager()
	ctx := context.Background()

	require.NoError(t, m.RegisterFilters(map[string]string{
		"problems": `HasError or isStatus("warning")`,
		"done":     `Complete`,
	}))
	assert.Equal(t, []string{"done", "problems"}, m.ListFilters())

	got, err := m.EvaluateFilter(ctx, "problems", testItems())
	require.NoError(t, err)
	assert.Equal(t, []string{"Broken.Show.S01E01"}, names(got))

	_, err = m.EvaluateFilter(ctx, "missing", testItems())
	assert.ErrorIs(t, err, ErrUnknownFilter)

	got, err = m.Apply(ctx, "done", testItems())
	require.NoError(t, err)
	assert.Equal(t, []string{"Done.Movie"}, names(got))

	got, err = m.Apply(ctx, `fromSource("sonarr")`, testItems())
	require.NoError(t, err)
	assert.Equal(t, []string{"Broken.Show.S01E01"}, names(got))

	got, err = m.Apply(ctx, "", testItems())
	require.NoError(t, err)
	assert.Len(t, got, 3)

	err = m.RegisterFilters(map[string]string{"bad": `(`, "ok": `Active`})
	require.Error(t, err)
	_, ok := m.GetFilter("ok")
	assert.False(t, ok, "nothing is registered when one filter fails")

	m.UnregisterFilter("done")
	_, ok = m.GetFilter("done")
	assert.False(t, ok)
}
