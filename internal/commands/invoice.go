package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/cleared-dev/finsum/internal/config"
	"github.com/cleared-dev/finsum/internal/export"
	"github.com/cleared-dev/finsum/internal/invoice"
	"github.com/cleared-dev/finsum/internal/model"
)

func newInvoiceCommand(a *app) *cobra.Command {
	var (
		format   string
		outDir   string
		currency string
		round    bool
		strict   bool
	)

	cmd := &cobra.Command{
		Use:   "invoice <items.yaml|items.csv>",
		Short: "Compute subtotal, tax and grand total for line items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ic := a.cfg.Invoice
			rc := a.cfg.Report
			flags := cmd.Flags()
			if flags.Changed("format") {
				rc.Format = format
			}
			if flags.Changed("out") {
				rc.OutputDir = outDir
			}
			if flags.Changed("currency") {
				ic.Currency = currency
			}
			if flags.Changed("round") {
				ic.RoundTotals = round
			}
			if flags.Changed("strict") {
				ic.StrictTaxRates = strict
			}
			return a.runInvoice(cmd, args[0], rc, ic)
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "output format: table, json, xlsx, pdf")
	cmd.Flags().StringVar(&outDir, "out", "", "directory for report files")
	cmd.Flags().StringVar(&currency, "currency", "", "currency shown in the report title")
	cmd.Flags().BoolVar(&round, "round", false, "round totals to 2 decimals (half to even)")
	cmd.Flags().BoolVar(&strict, "strict", false, "fail when a tax rate is outside [0, 1]")

	return cmd
}

func (a *app) runInvoice(cmd *cobra.Command, path string, rc config.ReportConfig, ic config.InvoiceConfig) error {
	logger := zerolog.Ctx(cmd.Context())

	e, err := a.exporter(rc.Format)
	if err != nil {
		return err
	}

	items, err := readItems(path)
	if err != nil {
		return err
	}

	calc, err := invoice.New(items)
	if err != nil {
		return err
	}

	if problems := calc.TaxRateErrors(); len(problems) > 0 {
		if ic.StrictTaxRates {
			msgs := make([]string, len(problems))
			for i, p := range problems {
				msgs[i] = p.Error()
			}
			return fmt.Errorf("validation failed: %s", strings.Join(msgs, "; "))
		}
		for _, p := range problems {
			logger.Warn().
				Int("item", p.Index).
				Str("description", p.Description).
				Float64("tax_rate", p.TaxRate).
				Msg("tax rate outside [0, 1]")
		}
	}

	totals := calc.Totals()
	if ic.RoundTotals {
		totals = totals.Rounded(2)
	}
	logger.Info().
		Int("items", len(items)).
		Float64("grand_total", totals.GrandTotal).
		Msg("computed invoice totals")

	rep := export.InvoiceReport(calc.Items(), totals, ic.Currency, a.now())
	return a.emit(cmd, e, rep, path, "invoice", rc.OutputDir)
}

// readItems picks the decoder from the file extension.
func readItems(path string) ([]model.LineItem, error) {
	ext := strings.ToLower(filepath.Ext(path))
	var read func(io.Reader) ([]model.LineItem, error)
	switch ext {
	case ".csv":
		read = invoice.ReadItems
	case ".yaml", ".yml":
		read = invoice.ReadItemsYAML
	default:
		return nil, errors.New("unsupported item file " + filepath.Base(path) + " (want .csv, .yaml or .yml)")
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening items: %w", err)
	}
	defer f.Close()

	items, err := read(f)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return items, nil
}
