package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/s0up4200/arrcore/arr"
	"github.com/s0up4200/arrcore/config"
	"github.com/s0up4200/arrcore/domain"
	"github.com/s0up4200/arrcore/status"
)

var systemOpts struct {
	service    string
	minVersion string
	disks      bool
}

var systemCmd = &cobra.Command{
	Use:   "system",
	Short: "Show version, health and disk space of every *arr instance",
	RunE:  runSystem,
}

func init() {
	f := systemCmd.Flags()
	f.StringVarP(&systemOpts.service, "service", "s", "", "only this configured instance")
	f.StringVar(&systemOpts.minVersion, "min-version", "", "flag instances older than this version")
	f.BoolVarP(&systemOpts.disks, "disks", "d", false, "include disk space")
}

func supportsSystem(s arr.Service) bool {
	return s.IsMediaManager() || s.IsIndexerManager()
}

type systemReport struct {
	Instance string
	Status   domain.SystemStatus
	Disks    domain.DiskSpaces
	Err      error
}

func (r systemReport) ToMap() map[string]any {
	out := map[string]any{"instance": r.Instance}
	if r.Err != nil {
		out["error"] = r.Err.Error()
		return out
	}
	out["status"] = r.Status.ToMap()
	if r.Disks != nil {
		disks := make([]map[string]any, 0, len(r.Disks))
		for _, d := range r.Disks {
			disks = append(disks, d.ToMap())
		}
		out["disk_space"] = disks
	}
	return out
}

func runSystem(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	ins, err := instances(systemOpts.service, supportsSystem)
	if err != nil {
		return err
	}

	reports := make([]systemReport, len(ins))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i, in := range ins {
		g.Go(func() error {
			reports[i] = systemReportFor(gctx, in)
			return nil
		})
	}
	_ = g.Wait()

	if jsonOutput {
		out := make([]map[string]any, 0, len(reports))
		for _, r := range reports {
			out = append(out, r.ToMap())
		}
		return writeJSON(cmd, out)
	}
	printSystem(cmd, reports)
	return nil
}

func systemReportFor(ctx context.Context, in config.Instance) systemReport {
	r := systemReport{Instance: in.Name}
	set, err := actionSet(in)
	if err != nil {
		r.Err = err
		return r
	}
	if r.Status, err = set.System.Summary(ctx); err != nil {
		r.Err = err
		return r
	}
	if systemOpts.disks {
		if r.Disks, err = set.System.DiskSpace(ctx); err != nil {
			logger.Warn().Err(err).Str("instance", in.Name).Msg("failed to get disk space")
		}
	}
	return r
}

func printSystem(cmd *cobra.Command, reports []systemReport) {
	out := cmd.OutOrStdout()
	colorize := shouldColorize(out)

	rows := make([][]string, 0, len(reports))
	for _, r := range reports {
		if r.Err != nil {
			rows = append(rows, []string{r.Instance, "", "", colorLabel("unreachable", status.ColorRed, colorize), r.Err.Error()})
			continue
		}
		health := colorLabel("healthy", status.ColorGreen, colorize)
		if r.Status.HasIssues() {
			health = colorLabel(strconv.Itoa(r.Status.IssueCount())+" issues", status.ColorYellow, colorize)
		}
		ver := r.Status.Version
		if systemOpts.minVersion != "" && !r.Status.AtLeast(systemOpts.minVersion) {
			ver = colorLabel(ver+" (outdated)", status.ColorRed, colorize)
		}
		rows = append(rows, []string{r.Instance, ver, r.Status.Uptime(), health, firstIssue(r.Status)})
	}
	fmt.Fprintln(out, renderTable([]string{"Instance", "Version", "Uptime", "Health", "Notes"}, rows, nil))

	if !systemOpts.disks {
		return
	}
	var diskRows [][]string
	for _, r := range reports {
		for _, d := range r.Disks {
			diskRows = append(diskRows, []string{
				r.Instance,
				d.Path,
				d.Free().Format(1),
				d.Total().Format(1),
				fmt.Sprintf("%.1f%%", d.UsedPercentage()),
			})
		}
	}
	if len(diskRows) > 0 {
		fmt.Fprintln(out, renderTable(
			[]string{"Instance", "Path", "Free", "Total", "Used"},
			diskRows,
			[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignRight},
		))
	}
}

func firstIssue(s domain.SystemStatus) string {
	if len(s.HealthIssues) == 0 {
		return ""
	}
	note := truncate(s.HealthIssues[0].Message, 60)
	if n := len(s.HealthIssues); n > 1 {
		note += fmt.Sprintf(" (+%d more)", n-1)
	}
	return note
}
