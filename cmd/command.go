package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/s0up4200/arrcore/actions"
	"github.com/s0up4200/arrcore/arr"
	"github.com/s0up4200/arrcore/endpoint"
)

var commandOpts struct {
	service string
	args    []string
}

var commandCmd = &cobra.Command{
	Use:   "command",
	Short: "Run and inspect *arr background commands",
}

var commandRunCmd = &cobra.Command{
	Use:   "run <name>",
	Short: "Queue a command such as RssSync or MoviesSearch",
	Example: `  arrcore command run RssSync -s radarr
  arrcore command run MoviesSearch -s radarr --arg movieIds=1,2,3`,
	Args: cobra.ExactArgs(1),
	RunE: runCommand,
}

var commandListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show recent and running commands",
	Args:  cobra.NoArgs,
	RunE:  listCommands,
}

var commandNamesCmd = &cobra.Command{
	Use:         "names",
	Short:       "Print the known command names",
	Args:        cobra.NoArgs,
	Annotations: map[string]string{skipConfig: "true"},
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range arr.CommandNames() {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
	},
}

func init() {
	commandCmd.PersistentFlags().StringVarP(&commandOpts.service, "service", "s", "", "configured instance to talk to")
	commandRunCmd.Flags().StringArrayVar(&commandOpts.args, "arg", nil, "extra body field as key=value, repeatable")
	commandCmd.AddCommand(commandRunCmd, commandListCmd, commandNamesCmd)
}

// resolveCommandName accepts any casing of a known command and suggests the
// closest one for typos.
func resolveCommandName(name string) (arr.CommandName, error) {
	if c, ok := arr.LookupCommand(name); ok {
		return c, nil
	}
	if s, ok := arr.SuggestCommand(name); ok {
		return "", fmt.Errorf("unknown command %q, did you mean %q?", name, s)
	}
	return "", fmt.Errorf("unknown command %q, see 'arrcore command names'", name)
}

// parseCommandArgs turns key=value pairs into a command body. Integers
// become numbers and comma-separated integers become id lists.
func parseCommandArgs(pairs []string) (endpoint.Params, error) {
	body := endpoint.Params{}
	for _, pair := range pairs {
		key, raw, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --arg %q, expected key=value", pair)
		}
		body[key] = parseArgValue(raw)
	}
	return body, nil
}

func parseArgValue(raw string) any {
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return n
	}
	if b, err := strconv.ParseBool(raw); err == nil {
		return b
	}
	if strings.Contains(raw, ",") {
		parts := strings.Split(raw, ",")
		ids := make([]int64, 0, len(parts))
		for _, p := range parts {
			n, err := strconv.ParseInt(strings.TrimSpace(p), 10, 64)
			if err != nil {
				return raw
			}
			ids = append(ids, n)
		}
		return ids
	}
	return raw
}

func singleArrInstance() (*actions.Set, string, error) {
	ins, err := instances(commandOpts.service, arr.Service.IsMediaManager)
	if err != nil {
		return nil, "", err
	}
	if len(ins) != 1 {
		return nil, "", fmt.Errorf("choose one *arr service with --service")
	}
	set, err := actionSet(ins[0])
	return set, ins[0].Name, err
}

func runCommand(cmd *cobra.Command, args []string) error {
	name, err := resolveCommandName(args[0])
	if err != nil {
		return err
	}
	body, err := parseCommandArgs(commandOpts.args)
	if err != nil {
		return err
	}

	ctx, cancel := commandContext(cmd)
	defer cancel()

	set, instance, err := singleArrInstance()
	if err != nil {
		return err
	}
	res, err := set.Command.Run(ctx, name, body)
	if err != nil {
		return err
	}

	logger.Info().Str("instance", instance).Str("command", name.String()).Int64("id", res.ID).Msg("command queued")
	if jsonOutput {
		return writeJSON(cmd, res)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s queued on %s (id %d, %s)\n", name, instance, res.ID, res.CommandStatus())
	return nil
}

func listCommands(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	set, _, err := singleArrInstance()
	if err != nil {
		return err
	}
	cmds, err := set.Command.All(ctx)
	if err != nil {
		return err
	}
	if jsonOutput {
		return writeJSON(cmd, cmds)
	}

	rows := make([][]string, 0, len(cmds))
	for _, c := range cmds {
		queued := ""
		if !c.Queued.IsZero() {
			queued = c.Queued.Format("2006-01-02 15:04")
		}
		rows = append(rows, []string{
			strconv.FormatInt(c.ID, 10),
			c.Name,
			c.CommandStatus().String(),
			c.Trigger,
			queued,
			truncate(c.Message, 50),
		})
	}
	fmt.Fprintln(cmd.OutOrStdout(), renderTable(
		[]string{"ID", "Name", "Status", "Trigger", "Queued", "Message"},
		rows,
		[]columnAlignment{alignRight},
	))
	return nil
}
