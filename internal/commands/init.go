package commands

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/finsum/internal/config"
	"github.com/cleared-dev/finsum/internal/invoice"
	"github.com/cleared-dev/finsum/internal/records"
)

func newInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Create a finsum.yaml and sample data",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			return runInit(cmd.OutOrStdout(), absDir, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing finsum.yaml")

	return cmd
}

func runInit(out io.Writer, dir string, force bool) error {
	cfgPath := filepath.Join(dir, config.FileName)
	if !force {
		if _, err := os.Stat(cfgPath); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", cfgPath)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("checking config: %w", err)
		}
	}

	// Create directory structure.
	cfg := config.Default()
	for _, d := range []string{"data", cfg.Report.OutputDir} {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	if err := config.Save(cfgPath, cfg); err != nil {
		return err
	}

	if err := writeFile(filepath.Join(dir, "data", "companies.csv"), func(w io.Writer) error {
		return records.WriteRecords(w, records.SampleRecords())
	}); err != nil {
		return fmt.Errorf("writing sample records: %w", err)
	}

	if err := writeFile(filepath.Join(dir, "data", "invoice.yaml"), func(w io.Writer) error {
		return invoice.WriteItemsYAML(w, invoice.SampleItems())
	}); err != nil {
		return fmt.Errorf("writing sample items: %w", err)
	}

	fmt.Fprintf(out, "Initialized finsum project at %s\n", dir)
	return nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
