package arr

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// CommandName is the name of a background command accepted by the
// command endpoint of Sonarr and Radarr.
type CommandName string

const (
	CommandRssSync                   CommandName = "RssSync"
	CommandRenameFiles               CommandName = "RenameFiles"
	CommandBackup                    CommandName = "Backup"
	CommandManualImport              CommandName = "ManualImport"
	CommandInteractiveImport         CommandName = "InteractiveImport"
	CommandRefreshMonitoredDownloads CommandName = "RefreshMonitoredDownloads"

	CommandRefreshSeries        CommandName = "RefreshSeries"
	CommandRescanSeries         CommandName = "RescanSeries"
	CommandEpisodeSearch        CommandName = "EpisodeSearch"
	CommandSeasonSearch         CommandName = "SeasonSearch"
	CommandSeriesSearch         CommandName = "SeriesSearch"
	CommandMissingEpisodeSearch CommandName = "MissingEpisodeSearch"
	CommandRenameSeries         CommandName = "RenameSeries"

	CommandRefreshMovie            CommandName = "RefreshMovie"
	CommandRescanMovie             CommandName = "RescanMovie"
	CommandMoviesSearch            CommandName = "MoviesSearch"
	CommandDownloadedMoviesScan    CommandName = "DownloadedMoviesScan"
	CommandRenameMovie             CommandName = "RenameMovie"
	CommandMissingMoviesSearch     CommandName = "MissingMoviesSearch"
	CommandCutoffUnmetMoviesSearch CommandName = "CutoffUnmetMoviesSearch"
)

// CommandNames returns every known command name.
func CommandNames() []CommandName {
	return []CommandName{
		CommandRssSync, CommandRenameFiles, CommandBackup, CommandManualImport,
		CommandInteractiveImport, CommandRefreshMonitoredDownloads,
		CommandRefreshSeries, CommandRescanSeries, CommandEpisodeSearch,
		CommandSeasonSearch, CommandSeriesSearch, CommandMissingEpisodeSearch,
		CommandRenameSeries,
		CommandRefreshMovie, CommandRescanMovie, CommandMoviesSearch,
		CommandDownloadedMoviesScan, CommandRenameMovie, CommandMissingMoviesSearch,
		CommandCutoffUnmetMoviesSearch,
	}
}

func (c CommandName) String() string {
	return string(c)
}

// LookupCommand finds a known command by case-insensitive name.
func LookupCommand(name string) (CommandName, bool) {
	for _, c := range CommandNames() {
		if strings.EqualFold(string(c), name) {
			return c, true
		}
	}
	return "", false
}

// SuggestCommand returns the known command closest to name by edit
// distance, provided it is within a third of the input length.
func SuggestCommand(name string) (CommandName, bool) {
	needle := strings.ToLower(strings.TrimSpace(name))
	if needle == "" {
		return "", false
	}

	var best CommandName
	bestDist := -1
	for _, c := range CommandNames() {
		d := levenshtein.ComputeDistance(needle, strings.ToLower(string(c)))
		if bestDist < 0 || d < bestDist {
			best, bestDist = c, d
		}
	}

	if bestDist > max(len(needle)/3, 2) {
		return "", false
	}
	return best, true
}
