package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/s0up4200/arrcore/normalize"
)

type normalizeOptions struct {
	kind          string
	hasFile       bool
	trackedStatus string
	trackedState  string
	history       bool
}

var normOpts normalizeOptions

var normalizeCmd = &cobra.Command{
	Use:   "normalize <source> <value>",
	Short: "Map a raw upstream status to the canonical vocabulary",
	Long: `Map a raw status value to its canonical status, label, priority and color.

Sources: radarr, sonarr (queue status, or --kind media for library status),
qbittorrent, transmission, deluge, nzbget (--history for history entries),
sabnzbd, jellyseerr and overseerr (request code, or --kind media).`,
	Example: `  arrcore normalize radarr downloading --tracked-status warning --tracked-state downloading
  arrcore normalize sonarr continuing --kind media --has-file
  arrcore normalize qbittorrent stalledUP
  arrcore normalize jellyseerr 2`,
	Args:        cobra.ExactArgs(2),
	Annotations: map[string]string{skipConfig: "true"},
	RunE:        runNormalize,
}

func init() {
	f := normalizeCmd.Flags()
	f.StringVar(&normOpts.kind, "kind", "", "status kind: download, media or request (default depends on source)")
	f.BoolVar(&normOpts.hasFile, "has-file", false, "media kind: the item has files on disk")
	f.StringVar(&normOpts.trackedStatus, "tracked-status", "", "queue kind: trackedDownloadStatus")
	f.StringVar(&normOpts.trackedState, "tracked-state", "", "radarr queue kind: trackedDownloadState")
	f.BoolVar(&normOpts.history, "history", false, "nzbget: the value is a history status")
}

// statusResult is one normalized status, independent of its kind.
type statusResult struct {
	Kind     string `json:"kind"`
	Status   string `json:"status"`
	Label    string `json:"label"`
	Priority int    `json:"priority"`
	Color    string `json:"color"`
}

type canonical interface {
	String() string
	Label() string
	Priority() int
	ColorClass() string
}

func result(kind string, s canonical) statusResult {
	return statusResult{Kind: kind, Status: s.String(), Label: s.Label(), Priority: s.Priority(), Color: s.ColorClass()}
}

func runNormalize(cmd *cobra.Command, args []string) error {
	res, err := resolveStatus(args[0], args[1], normOpts)
	if err != nil {
		return err
	}
	if jsonOutput {
		return writeJSON(cmd, res)
	}

	colorize := shouldColorize(cmd.OutOrStdout())
	fmt.Fprintln(cmd.OutOrStdout(), renderTable(
		[]string{"Kind", "Status", "Label", "Priority", "Color"},
		[][]string{{res.Kind, res.Status, colorLabel(res.Label, res.Color, colorize), strconv.Itoa(res.Priority), res.Color}},
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignLeft},
	))
	return nil
}

func resolveStatus(source, raw string, o normalizeOptions) (statusResult, error) {
	source = strings.ToLower(strings.TrimSpace(source))
	kind := strings.ToLower(o.kind)

	switch source {
	case "radarr":
		switch kind {
		case "media":
			return result(kind, normalize.MediaFromRadarr(raw, o.hasFile)), nil
		case "", "download":
			return result("download", normalize.DownloadFromRadarrQueue(raw, o.trackedStatus, o.trackedState)), nil
		}
	case "sonarr":
		switch kind {
		case "media":
			return result(kind, normalize.MediaFromSonarr(raw, o.hasFile)), nil
		case "", "download":
			return result("download", normalize.DownloadFromSonarrQueue(raw, o.trackedStatus)), nil
		}
	case "qbittorrent":
		if kind == "" || kind == "download" {
			return result("download", normalize.DownloadFromQBittorrent(raw)), nil
		}
	case "deluge":
		if kind == "" || kind == "download" {
			return result("download", normalize.DownloadFromDeluge(raw)), nil
		}
	case "sabnzbd":
		if kind == "" || kind == "download" {
			return result("download", normalize.DownloadFromSABnzbd(raw)), nil
		}
	case "nzbget":
		if kind == "" || kind == "download" {
			if o.history {
				return result("download", normalize.DownloadFromNZBGetHistory(raw)), nil
			}
			return result("download", normalize.DownloadFromNZBGet(raw)), nil
		}
	case "transmission":
		if kind == "" || kind == "download" {
			code, err := strconv.Atoi(raw)
			if err != nil {
				return statusResult{}, fmt.Errorf("transmission status must be a number: %q", raw)
			}
			return result("download", normalize.DownloadFromTransmission(code)), nil
		}
	case "jellyseerr", "overseerr":
		code, err := strconv.Atoi(raw)
		if err != nil {
			return statusResult{}, fmt.Errorf("%s status must be a number: %q", source, raw)
		}
		switch {
		case kind == "media" && source == "jellyseerr":
			return result(kind, normalize.MediaFromJellyseerr(code)), nil
		case kind == "media":
			return result(kind, normalize.MediaFromOverseerr(code)), nil
		case (kind == "" || kind == "request") && source == "jellyseerr":
			return result("request", normalize.RequestFromJellyseerr(code)), nil
		case kind == "" || kind == "request":
			return result("request", normalize.RequestFromOverseerr(code)), nil
		}
	default:
		return statusResult{}, fmt.Errorf("unknown source %q", source)
	}
	return statusResult{}, fmt.Errorf("%s has no %q status kind", source, kind)
}
