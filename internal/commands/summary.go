package commands

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/cleared-dev/finsum/internal/config"
	"github.com/cleared-dev/finsum/internal/export"
	"github.com/cleared-dev/finsum/internal/records"
	"github.com/cleared-dev/finsum/internal/summary"
)

func newSummaryCommand(a *app) *cobra.Command {
	var (
		minRevenue float64
		order      string
		onMissing  string
		format     string
		outDir     string
		outputJSON bool
	)

	cmd := &cobra.Command{
		Use:   "summary <records.csv>",
		Short: "Summarize revenue and profit per company",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rc := a.cfg.Report
			flags := cmd.Flags()
			if flags.Changed("min-revenue") {
				rc.MinRevenue = minRevenue
			}
			if flags.Changed("order") {
				rc.Order = order
			}
			if flags.Changed("on-missing") {
				rc.OnMissing = onMissing
			}
			if flags.Changed("format") {
				rc.Format = format
			}
			if outputJSON {
				rc.Format = "json"
			}
			if flags.Changed("out") {
				rc.OutputDir = outDir
			}
			return a.runSummary(cmd, args[0], rc)
		},
	}

	cmd.Flags().Float64Var(&minRevenue, "min-revenue", 0, "drop companies whose best year is below this revenue")
	cmd.Flags().StringVar(&order, "order", "", "company order: first-seen or alphabetical")
	cmd.Flags().StringVar(&onMissing, "on-missing", "", "incomplete rows: drop or fail")
	cmd.Flags().StringVar(&format, "format", "", "output format: table, json, xlsx, pdf")
	cmd.Flags().BoolVar(&outputJSON, "output-json", false, "shorthand for --format json")
	cmd.Flags().StringVar(&outDir, "out", "", "directory for report files")

	return cmd
}

func (a *app) runSummary(cmd *cobra.Command, path string, rc config.ReportConfig) error {
	ctx := cmd.Context()
	logger := zerolog.Ctx(ctx)

	policy, err := records.ParsePolicy(rc.OnMissing)
	if err != nil {
		return err
	}
	order, err := summary.ParseOrder(rc.Order)
	if err != nil {
		return err
	}
	e, err := a.exporter(rc.Format)
	if err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening records: %w", err)
	}
	defer f.Close()

	res, err := records.ReadRecords(ctx, f, policy)
	if err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}

	summaries, err := summary.SummarizeWith(res.Records, summary.Options{
		MinRevenue: rc.MinRevenue,
		Order:      order,
	})
	if err != nil {
		return err
	}
	logger.Info().
		Int("records", len(res.Records)).
		Int("dropped", len(res.Dropped)).
		Int("companies", len(summaries)).
		Msg("summarized records")

	rep := export.SummaryReport(summaries, a.now())
	return a.emit(cmd, e, rep, path, "report", rc.OutputDir)
}
