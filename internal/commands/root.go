package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/finsum/internal/buildinfo"
	"github.com/cleared-dev/finsum/internal/config"
	"github.com/cleared-dev/finsum/internal/export"
	"github.com/cleared-dev/finsum/internal/history"
	"github.com/cleared-dev/finsum/internal/logging"
)

// app is the state shared by subcommands once the root has resolved config.
type app struct {
	cfg       *config.Config
	exporters *export.Registry
	now       func() time.Time
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	a := &app{
		exporters: export.DefaultRegistry(),
		now:       time.Now,
	}
	var configPath string
	var logLevel string

	rootCmd := &cobra.Command{
		Use:     "finsum",
		Short:   "Per-company financial summaries and invoice totals",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Resolve(configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("log-level") {
				cfg.Logging.Level = logLevel
			}
			logger, err := logging.New(cmd.ErrOrStderr(), cfg.Logging.Level, true)
			if err != nil {
				return err
			}
			logger.Debug().Str("config", configPath).Msg("configuration resolved")

			a.cfg = cfg
			cmd.SetContext(logger.WithContext(cmd.Context()))
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.FileName, "config file (defaults apply when absent)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newSummaryCommand(a))
	rootCmd.AddCommand(newInvoiceCommand(a))
	rootCmd.AddCommand(newHistoryCommand(a))

	return rootCmd
}

// exporter looks up format, listing the known formats when it is unknown.
func (a *app) exporter(format string) (export.Exporter, error) {
	e := a.exporters.Get(format)
	if e == nil {
		return nil, fmt.Errorf("unknown format %q (want one of %s)", format, strings.Join(a.exporters.Formats(), ", "))
	}
	return e, nil
}

// emit prints text formats to stdout unless an output dir was given
// explicitly. Binary formats always go to a file, whose path is printed and
// recorded in the output dir's history.
func (a *app) emit(cmd *cobra.Command, e export.Exporter, rep *export.Report, input, prefix, outDir string) error {
	out := cmd.OutOrStdout()
	if !e.Binary() && !cmd.Flags().Changed("out") {
		return e.Export(out, rep)
	}

	path, err := export.WriteFile(outDir, export.FileName(prefix, e.Extension(), rep.GeneratedAt), e, rep)
	if err != nil {
		return err
	}
	if err := history.Append(outDir, []history.Entry{{
		Timestamp: rep.GeneratedAt,
		Command:   cmd.Name(),
		Input:     input,
		Format:    e.Format(),
		Path:      path,
		Rows:      len(rep.Rows),
	}}); err != nil {
		return err
	}
	fmt.Fprintf(out, "Wrote %s\n", path)
	return nil
}
