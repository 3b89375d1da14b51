package cmd

import (
	"encoding/json"
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/s0up4200/arrcore/status"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

func renderTable(headers []string, rows [][]string, aligns []columnAlignment) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i := range columns {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := range columns {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	configs := make([]table.ColumnConfig, 0, columns)
	for i := range columns {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		configs = append(configs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(configs)

	return tw.Render()
}

// writeJSON encodes v as indented JSON to the command's stdout.
func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func shouldColorize(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isTerminal(f)
}

var statusColors = map[string]text.Colors{
	status.ColorGray:   {text.FgHiBlack},
	status.ColorCyan:   {text.FgCyan},
	status.ColorBlue:   {text.FgBlue},
	status.ColorPurple: {text.FgMagenta},
	status.ColorGreen:  {text.FgGreen},
	status.ColorYellow: {text.FgYellow},
	status.ColorRed:    {text.FgRed},
}

// colorLabel paints label with the terminal color for a status color class.
func colorLabel(label, colorClass string, colorize bool) string {
	if !colorize {
		return label
	}
	if c, ok := statusColors[colorClass]; ok {
		return c.Sprint(label)
	}
	return label
}
