package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/finsum/internal/export"
	"github.com/cleared-dev/finsum/internal/history"
)

func newHistoryCommand(a *app) *cobra.Command {
	var outDir string

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List report files written to the output directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := a.cfg.Report.OutputDir
			if cmd.Flags().Changed("out") {
				dir = outDir
			}

			entries, err := history.Read(dir)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No reports written to "+dir)
				return nil
			}
			return (&export.TableExporter{}).Export(cmd.OutOrStdout(), historyReport(entries, a.now()))
		},
	}

	cmd.Flags().StringVar(&outDir, "out", "", "directory holding report files")

	return cmd
}

func historyReport(entries []history.Entry, at time.Time) *export.Report {
	rep := &export.Report{
		Title: "Report history",
		Columns: []export.Column{
			{Key: "timestamp", Header: "Written"},
			{Key: "command", Header: "Command"},
			{Key: "format", Header: "Format"},
			{Key: "rows", Header: "Rows", Numeric: true},
			{Key: "input", Header: "Input"},
			{Key: "path", Header: "Path"},
		},
		GeneratedAt: at,
	}
	for _, e := range entries {
		rep.Rows = append(rep.Rows, []any{e.Timestamp.Local().Format(time.DateTime), e.Command, e.Format, e.Rows, e.Input, e.Path})
	}
	return rep
}
