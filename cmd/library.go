package cmd

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/s0up4200/arrcore/arr"
	"github.com/s0up4200/arrcore/config"
	"github.com/s0up4200/arrcore/domain"
)

var libraryOpts struct {
	service   string
	attention bool
	tag       string
	search    bool
}

var libraryCmd = &cobra.Command{
	Use:     "library",
	Aliases: []string{"lib"},
	Short:   "List Radarr movies and Sonarr series",
	Long: `List the libraries of the configured Radarr and Sonarr instances with their
normalized status.

--attention keeps monitored items that are missing or have problems. With
--search those items are handed to the service for a search.`,
	RunE: runLibrary,
}

func init() {
	f := libraryCmd.Flags()
	f.StringVarP(&libraryOpts.service, "service", "s", "", "only this configured instance")
	f.BoolVarP(&libraryOpts.attention, "attention", "a", false, "only items needing attention")
	f.StringVarP(&libraryOpts.tag, "tag", "t", "", "only Radarr movies carrying this tag")
	f.BoolVar(&libraryOpts.search, "search", false, "trigger a search for the listed items")
}

func supportsLibrary(s arr.Service) bool {
	return s == arr.Radarr || s == arr.Sonarr
}

// libraryEntry is the row shape shared by movies and series.
type libraryEntry struct {
	Instance string
	Media    domain.Media
	Detail   string
	Map      map[string]any
}

func runLibrary(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	ins, err := instances(libraryOpts.service, supportsLibrary)
	if err != nil {
		return err
	}
	if len(ins) == 0 {
		return fmt.Errorf("no Radarr or Sonarr instance configured")
	}

	var (
		mu      sync.Mutex
		entries = make([][]libraryEntry, len(ins))
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i, in := range ins {
		g.Go(func() error {
			list, err := fetchLibrary(gctx, in)
			if err != nil {
				return fmt.Errorf("%s: %w", in.Name, err)
			}
			mu.Lock()
			entries[i] = list
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	var all []libraryEntry
	for _, list := range entries {
		for _, e := range list {
			if libraryOpts.attention && !e.Media.NeedsAttention() {
				continue
			}
			all = append(all, e)
		}
	}

	if libraryOpts.search {
		if err := searchLibrary(ctx, ins, all); err != nil {
			return err
		}
	}

	if jsonOutput {
		out := make([]map[string]any, 0, len(all))
		for _, e := range all {
			out = append(out, e.Map)
		}
		return writeJSON(cmd, out)
	}
	printLibrary(cmd, all)
	return nil
}

func fetchLibrary(ctx context.Context, in config.Instance) ([]libraryEntry, error) {
	switch in.Service {
	case arr.Radarr:
		c, err := radarrClient(in)
		if err != nil {
			return nil, err
		}
		var movies []domain.Movie
		if libraryOpts.tag != "" {
			movies, err = c.MoviesWithTag(ctx, libraryOpts.tag)
		} else {
			movies, err = c.Movies(ctx)
		}
		if err != nil {
			return nil, err
		}
		out := make([]libraryEntry, 0, len(movies))
		for _, m := range movies {
			out = append(out, libraryEntry{
				Instance: in.Name,
				Media:    m.Media,
				Detail:   m.QualityProfileName,
				Map:      m.ToMap(),
			})
		}
		return out, nil

	case arr.Sonarr:
		if libraryOpts.tag != "" {
			return nil, nil
		}
		c, err := sonarrClient(in)
		if err != nil {
			return nil, err
		}
		series, err := c.Series(ctx)
		if err != nil {
			return nil, err
		}
		out := make([]libraryEntry, 0, len(series))
		for _, s := range series {
			out = append(out, libraryEntry{
				Instance: in.Name,
				Media:    s.Media,
				Detail:   fmt.Sprintf("%d/%d episodes", s.EpisodeFileCount, s.EpisodeCount),
				Map:      s.ToMap(),
			})
		}
		return out, nil
	}
	return nil, fmt.Errorf("%s has no library client", in.Service.Label())
}

func searchLibrary(ctx context.Context, ins []config.Instance, entries []libraryEntry) error {
	byInstance := make(map[string][]int64)
	for _, e := range entries {
		if id, ok := e.Media.ID.Int(); ok {
			byInstance[e.Instance] = append(byInstance[e.Instance], id)
		}
	}

	for _, in := range ins {
		ids := byInstance[in.Name]
		if len(ids) == 0 {
			continue
		}
		switch in.Service {
		case arr.Radarr:
			c, err := radarrClient(in)
			if err != nil {
				return err
			}
			if err := c.BatchSearchMovies(ctx, ids); err != nil {
				return fmt.Errorf("%s: %w", in.Name, err)
			}
		case arr.Sonarr:
			c, err := sonarrClient(in)
			if err != nil {
				return err
			}
			for _, id := range ids {
				if _, err := c.SearchSeries(ctx, id); err != nil {
					return fmt.Errorf("%s: %w", in.Name, err)
				}
			}
		}
		logger.Info().Str("instance", in.Name).Int("count", len(ids)).Msg("search triggered")
	}
	return nil
}

func printLibrary(cmd *cobra.Command, entries []libraryEntry) {
	out := cmd.OutOrStdout()
	if len(entries) == 0 {
		fmt.Fprintln(out, "Nothing to show.")
		return
	}

	colorize := shouldColorize(out)
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		size := ""
		if e.Media.SizeOnDisk != nil {
			size = e.Media.SizeOnDisk.Format(1)
		}
		rows = append(rows, []string{
			e.Instance,
			e.Media.ID.String(),
			truncate(e.Media.DisplayTitle(), 60),
			colorLabel(e.Media.Status.Label(), e.Media.Status.ColorClass(), colorize),
			strconv.FormatBool(e.Media.Monitored),
			size,
			e.Detail,
		})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"Instance", "ID", "Title", "Status", "Monitored", "Size", "Detail"},
		rows,
		[]columnAlignment{alignLeft, alignRight, alignLeft, alignLeft, alignLeft, alignRight, alignLeft},
	))
	fmt.Fprintf(out, "%d items\n", len(entries))
}
