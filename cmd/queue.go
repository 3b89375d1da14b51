package cmd

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/s0up4200/arrcore/arr"
	"github.com/s0up4200/arrcore/domain"
	"github.com/s0up4200/arrcore/filter"
)

var queueOpts struct {
	service string
	filter  string
	limit   int
	noDedup bool
}

var queueCmd = &cobra.Command{
	Use:   "queue",
	Short: "Show every download across *arr queues and download clients",
	Long: `Collect the queues of all configured *arr services and the torrents and
NZBs of the configured download clients, normalize their statuses and list
them most urgent first.

Downloads that an *arr service already tracks are shown once, with the *arr
record. --filter takes an expression or the name of a filter from the config:

  arrcore queue --filter 'isStatus("failed", "warning") or ETA > 86400'`,
	RunE: runQueue,
}

func init() {
	f := queueCmd.Flags()
	f.StringVarP(&queueOpts.service, "service", "s", "", "only this configured instance")
	f.StringVarP(&queueOpts.filter, "filter", "f", "", "filter expression or configured filter name")
	f.IntVarP(&queueOpts.limit, "limit", "n", 0, "show at most n items")
	f.BoolVar(&queueOpts.noDedup, "no-dedup", false, "keep client entries already tracked by an *arr queue")
}

// queueSource yields the items of one backend. trackedIDs are download
// client ids (torrent hashes, NZB ids) an *arr queue already reports.
type queueSource struct {
	name  string
	fetch func(ctx context.Context) (items domain.DownloadItems, trackedIDs []string, err error)
}

// queueResult is the merged view plus the sources that failed.
type queueResult struct {
	Items  domain.DownloadItems
	Failed map[string]error
}

func runQueue(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	sources, err := queueSources(ctx)
	if err != nil {
		return err
	}
	if len(sources) == 0 {
		return fmt.Errorf("nothing to query: configure at least one service or download client")
	}

	res := collectQueue(ctx, sources, !queueOpts.noDedup)
	for name, err := range res.Failed {
		logger.Warn().Err(err).Str("source", name).Msg("failed to fetch queue")
	}

	manager := filter.NewManager(
		filter.WithCompiler(filter.NewExprCompiler(filter.WithLogger(logger))),
	)
	if err := manager.RegisterFilters(cfg.Filters); err != nil {
		return err
	}
	items, err := manager.Apply(ctx, queueOpts.filter, res.Items)
	if err != nil {
		return fmt.Errorf("invalid filter: %w", err)
	}

	items = items.SortByPriority()
	if queueOpts.limit > 0 && len(items) > queueOpts.limit {
		items = items[:queueOpts.limit]
	}

	if jsonOutput {
		return writeJSON(cmd, items.ToMap())
	}
	printQueue(cmd, items)
	return nil
}

func queueSources(ctx context.Context) ([]queueSource, error) {
	var sources []queueSource

	ins, err := instances(queueOpts.service, arr.Service.IsMediaManager)
	if err != nil && !isDownloadClientName(queueOpts.service) {
		return nil, err
	}
	for _, in := range ins {
		set, err := actionSet(in)
		if err != nil {
			return nil, err
		}
		sources = append(sources, queueSource{
			name: in.Name,
			fetch: func(ctx context.Context) (domain.DownloadItems, []string, error) {
				records, err := set.Queue.Records(ctx)
				if err != nil {
					return nil, nil, err
				}
				items := make(domain.DownloadItems, 0, len(records))
				ids := make([]string, 0, len(records))
				for _, r := range records {
					items = append(items, r.ToDownloadItem(in.Service))
					if r.DownloadID != "" {
						ids = append(ids, r.DownloadID)
					}
				}
				return items, ids, nil
			},
		})
	}

	only := strings.ToLower(queueOpts.service)
	if cfg.QBittorrent.Enabled && (only == "" || only == arr.QBittorrent.String()) {
		qc := cfg.QBittorrent
		sources = append(sources, queueSource{
			name: arr.QBittorrent.String(),
			fetch: func(ctx context.Context) (domain.DownloadItems, []string, error) {
				c, err := qbittorrentClient(ctx, qc)
				if err != nil {
					return nil, nil, err
				}
				items, err := c.DownloadItems(ctx)
				return items, nil, err
			},
		})
	}
	if cfg.NZBGet.Enabled && (only == "" || only == arr.NZBGet.String()) {
		c, err := nzbgetClient(cfg.NZBGet)
		if err != nil {
			return nil, err
		}
		history := cfg.NZBGet.History
		sources = append(sources, queueSource{
			name: arr.NZBGet.String(),
			fetch: func(ctx context.Context) (domain.DownloadItems, []string, error) {
				items, err := c.DownloadItems(ctx, history)
				return items, nil, err
			},
		})
	}
	return sources, nil
}

func isDownloadClientName(name string) bool {
	s, err := arr.ParseService(name)
	return err == nil && s.IsDownloadClient()
}

// collectQueue fetches all sources concurrently. A failing source is
// reported in Failed and does not affect the others. With dedup, client
// items whose id an *arr queue tracks are dropped.
func collectQueue(ctx context.Context, sources []queueSource, dedup bool) queueResult {
	var (
		mu      sync.Mutex
		fetched = make([]domain.DownloadItems, len(sources))
		tracked = make(map[string]struct{})
		failed  = make(map[string]error)
	)

	g, gctx := errgroup.WithContext(ctx)
	for i, src := range sources {
		g.Go(func() error {
			items, ids, err := src.fetch(gctx)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failed[src.name] = err
				return nil
			}
			fetched[i] = items
			for _, id := range ids {
				tracked[strings.ToUpper(id)] = struct{}{}
			}
			return nil
		})
	}
	_ = g.Wait()

	var merged domain.DownloadItems
	for _, items := range fetched {
		for _, item := range items {
			if dedup && item.Source.IsDownloadClient() {
				if _, ok := tracked[strings.ToUpper(item.ID.String())]; ok {
					continue
				}
			}
			merged = append(merged, item)
		}
	}
	return queueResult{Items: merged, Failed: failed}
}

func printQueue(cmd *cobra.Command, items domain.DownloadItems) {
	out := cmd.OutOrStdout()
	if len(items) == 0 {
		fmt.Fprintln(out, "Queue is empty.")
		return
	}

	colorize := shouldColorize(out)
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		eta := ""
		if item.ETA != nil {
			eta = item.ETA.Format()
		}
		label := colorLabel(item.Status.Label(), item.Status.ColorClass(), colorize)
		if item.ErrorMessage != "" {
			label += " (" + truncate(item.ErrorMessage, 40) + ")"
		}
		rows = append(rows, []string{
			item.Source.Label(),
			truncate(item.DisplayTitle(), 60),
			label,
			item.Progress.Format(1),
			item.Size.Format(1),
			eta,
			item.DownloadClient,
		})
	}

	fmt.Fprintln(out, renderTable(
		[]string{"Source", "Title", "Status", "Progress", "Size", "ETA", "Client"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight, alignLeft},
	))
	fmt.Fprintf(out, "%d items, %s of %s remaining\n",
		len(items), items.TotalRemaining().Format(1), items.TotalSize().Format(1))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
