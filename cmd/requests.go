package cmd

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/s0up4200/arrcore/arr"
	"github.com/s0up4200/arrcore/domain"
	"github.com/s0up4200/arrcore/seerr"
)

var requestsOpts struct {
	service string
	filter  string
}

var requestsCmd = &cobra.Command{
	Use:   "requests",
	Short: "List Jellyseerr and Overseerr requests",
	RunE:  runRequests,
}

var requestsApproveCmd = &cobra.Command{
	Use:   "approve <id>",
	Short: "Approve a pending request",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return moderateRequest(cmd, args[0], true)
	},
}

var requestsDeclineCmd = &cobra.Command{
	Use:   "decline <id>",
	Short: "Decline a pending request",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return moderateRequest(cmd, args[0], false)
	},
}

var seerrFilters = []string{
	seerr.FilterAll, seerr.FilterApproved, seerr.FilterAvailable, seerr.FilterPending,
	seerr.FilterProcessing, seerr.FilterUnavailable, seerr.FilterFailed,
}

func init() {
	requestsCmd.PersistentFlags().StringVarP(&requestsOpts.service, "service", "s", "", "only this configured instance")
	requestsCmd.Flags().StringVarP(&requestsOpts.filter, "filter", "f", seerr.FilterAll, "request filter: all, approved, available, pending, processing, unavailable or failed")
	requestsCmd.AddCommand(requestsApproveCmd, requestsDeclineCmd)
}

func runRequests(cmd *cobra.Command, args []string) error {
	if !slices.Contains(seerrFilters, requestsOpts.filter) {
		return fmt.Errorf("unknown request filter %q", requestsOpts.filter)
	}

	ctx, cancel := commandContext(cmd)
	defer cancel()

	ins, err := instances(requestsOpts.service, arr.Service.IsRequestManager)
	if err != nil {
		return err
	}
	if len(ins) == 0 {
		return fmt.Errorf("no Jellyseerr or Overseerr instance configured")
	}

	var all []domain.MediaRequest
	for _, in := range ins {
		c, err := seerrClient(in)
		if err != nil {
			return err
		}
		reqs, err := c.Requests(ctx, requestsOpts.filter)
		if err != nil {
			return fmt.Errorf("%s: %w", in.Name, err)
		}
		all = append(all, reqs...)
	}

	if jsonOutput {
		out := make([]map[string]any, 0, len(all))
		for _, r := range all {
			out = append(out, r.ToMap())
		}
		return writeJSON(cmd, out)
	}
	printRequests(cmd, all)
	return nil
}

func moderateRequest(cmd *cobra.Command, rawID string, approve bool) error {
	id, err := strconv.Atoi(rawID)
	if err != nil {
		return fmt.Errorf("invalid request id %q", rawID)
	}

	ctx, cancel := commandContext(cmd)
	defer cancel()

	ins, err := instances(requestsOpts.service, arr.Service.IsRequestManager)
	if err != nil {
		return err
	}
	if len(ins) != 1 {
		return fmt.Errorf("choose one request manager with --service")
	}
	c, err := seerrClient(ins[0])
	if err != nil {
		return err
	}

	var req seerr.MediaRequest
	if approve {
		req, err = c.Approve(ctx, id)
	} else {
		req, err = c.Decline(ctx, id)
	}
	if err != nil {
		return err
	}

	r := seerr.ToDomain(c.Service(), req)
	fmt.Fprintf(cmd.OutOrStdout(), "Request %d is now %s\n", id, r.Status.Label())
	return nil
}

func printRequests(cmd *cobra.Command, reqs []domain.MediaRequest) {
	out := cmd.OutOrStdout()
	if len(reqs) == 0 {
		fmt.Fprintln(out, "No requests.")
		return
	}

	colorize := shouldColorize(out)
	rows := make([][]string, 0, len(reqs))
	for _, r := range reqs {
		requested := ""
		if r.RequestedAt != nil {
			requested = r.RequestedAt.Format("2006-01-02")
		}
		rows = append(rows, []string{
			r.Source.Label(),
			r.ID.String(),
			r.MediaType.String(),
			truncate(r.DisplayTitle(), 50),
			colorLabel(r.Status.Label(), r.Status.ColorClass(), colorize),
			r.RequestedBy,
			requested,
		})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"Source", "ID", "Type", "Title", "Status", "Requested by", "Date"},
		rows,
		[]columnAlignment{alignLeft, alignRight, alignLeft, alignLeft, alignLeft, alignLeft, alignLeft},
	))
}
