package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/eightchip/Custom-Merge-Excel-for-web/adapters/excel"
	"github.com/eightchip/Custom-Merge-Excel-for-web/app"
	"github.com/eightchip/Custom-Merge-Excel-for-web/domain/compare"
	"github.com/eightchip/Custom-Merge-Excel-for-web/internal/config"
	"github.com/eightchip/Custom-Merge-Excel-for-web/internal/container"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "excelmerge",
		Short: "Compare and split spreadsheet tables on a key column",
	}

	rootCmd.AddCommand(
		newCompareCmd(),
		newSplitCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newCompareCmd() *cobra.Command {
	var (
		key        string
		trim       bool
		ignoreCase bool
		leftSheet  string
		rightSheet string
		output     string
		format     string
	)

	cmd := &cobra.Command{
		Use:   "compare [left-file] [right-file]",
		Short: "Reconcile two tables on a key column",
		Long: `Reconcile two spreadsheet files on a key column.

Rows present on both sides are merged, one-sided rows and duplicated
keys are classified into their own tables. With --output the full
artifact is written out; a summary always goes to stdout.

Example: excelmerge compare left.xlsx right.xlsx --key order_id --trim -o result.xlsx`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cfg, err := buildWorkbench(format)
			if err != nil {
				return err
			}
			if leftSheet == "" {
				leftSheet = cfg.Data.DefaultSheet
			}
			if rightSheet == "" {
				rightSheet = cfg.Data.DefaultSheet
			}

			res, err := svc.CompareFiles(cmd.Context(), app.CompareFilesRequest{
				LeftPath:   args[0],
				RightPath:  args[1],
				LeftSheet:  leftSheet,
				RightSheet: rightSheet,
				Key:        key,
				Options:    compare.Options{Trim: trim, CaseInsensitive: ignoreCase},
				OutputPath: output,
			})
			if err != nil {
				return err
			}

			fmt.Printf("Run %s\n", res.RunID)
			for _, entry := range res.Log {
				fmt.Printf("  %s: %s\n", entry.Label, entry.Value)
			}
			fmt.Printf("Matched:    %d\n", res.Matched)
			fmt.Printf("Left only:  %d\n", res.LeftOnly)
			fmt.Printf("Right only: %d\n", res.RightOnly)
			fmt.Printf("Duplicates: %d\n", res.Duplicates)
			fmt.Printf("Fingerprint: %s\n", res.Fingerprint)
			fmt.Printf("Took %s\n", res.Duration)
			if res.OutputPath != "" {
				fmt.Printf("Artifact written to %s\n", res.OutputPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&key, "key", "", "key column name (required)")
	_ = cmd.MarkFlagRequired("key")
	cmd.Flags().BoolVar(&trim, "trim", false, "trim spaces around key values before matching")
	cmd.Flags().BoolVar(&ignoreCase, "ignore-case", false, "match key values case-insensitively")
	cmd.Flags().StringVar(&leftSheet, "left-sheet", "", "left workbook sheet (default first sheet)")
	cmd.Flags().StringVar(&rightSheet, "right-sheet", "", "right workbook sheet (default first sheet)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "artifact path: a .xlsx file, or a directory for csv")
	cmd.Flags().StringVar(&format, "format", "", "artifact format: xlsx or csv")

	return cmd
}

func newSplitCmd() *cobra.Command {
	var (
		key       string
		sheet     string
		outputDir string
		stem      string
		format    string
	)

	cmd := &cobra.Command{
		Use:   "split [file]",
		Short: "Split one table into per-key-value files",
		Long: `Split a spreadsheet file into one file per distinct key value.

Key cells are trimmed before grouping; rows with a blank or missing key
cell are collected under EMPTY.

Example: excelmerge split orders.xlsx --key region --output-dir parts`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cfg, err := buildWorkbench(format)
			if err != nil {
				return err
			}
			if sheet == "" {
				sheet = cfg.Data.DefaultSheet
			}

			res, err := svc.SplitFile(cmd.Context(), app.SplitFileRequest{
				Path:      args[0],
				Sheet:     sheet,
				Key:       key,
				OutputDir: outputDir,
				Stem:      stem,
			})
			if err != nil {
				return err
			}

			fmt.Printf("Run %s\n", res.RunID)
			fmt.Printf("Wrote %d part files:\n", len(res.Paths))
			for _, p := range res.Paths {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&key, "key", "", "key column name (required)")
	_ = cmd.MarkFlagRequired("key")
	cmd.Flags().StringVar(&sheet, "sheet", "", "workbook sheet (default first sheet)")
	cmd.Flags().StringVar(&outputDir, "output-dir", ".", "directory for part files")
	cmd.Flags().StringVar(&stem, "stem", "", "part file name prefix (default input file name)")
	cmd.Flags().StringVar(&format, "format", "", "part file format: xlsx or csv")

	return cmd
}

// buildWorkbench assembles the file pipeline from environment config and
// the requested format.
func buildWorkbench(format string) (*app.WorkbenchService, *config.Config, error) {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	c, err := container.New(cfg)
	if err != nil {
		return nil, nil, err
	}

	if format == "" {
		format = cfg.Data.DefaultFormat
	}
	f, err := excel.ParseFormat(format)
	if err != nil {
		return nil, nil, err
	}

	return c.Workbench(f), cfg, nil
}
