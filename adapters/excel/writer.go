package excel

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"
	"golang.org/x/sync/errgroup"

	"github.com/eightchip/Custom-Merge-Excel-for-web/domain/compare"
	"github.com/eightchip/Custom-Merge-Excel-for-web/domain/split"
	"github.com/eightchip/Custom-Merge-Excel-for-web/domain/table"
	"github.com/eightchip/Custom-Merge-Excel-for-web/ports"
)

// Format selects the export file format
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
)

// ParseFormat parses a format name; empty defaults to xlsx.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "xlsx":
		return FormatXLSX, nil
	case "csv":
		return FormatCSV, nil
	}
	return "", fmt.Errorf("unsupported format %q (want xlsx or csv)", s)
}

// Sheet (and CSV file) names of the compare artifact tables.
const (
	SheetResult     = "result"
	SheetLeftOnly   = "left_only"
	SheetRightOnly  = "right_only"
	SheetDuplicates = "duplicates"
	SheetLog        = "log"
)

// ResultWriter exports compare and split outputs as spreadsheet files
type ResultWriter struct {
	format Format
	log    zerolog.Logger
}

var _ ports.ResultWriterPort = (*ResultWriter)(nil)

// NewResultWriter creates a result writer for the given format
func NewResultWriter(format Format, logger zerolog.Logger) *ResultWriter {
	return &ResultWriter{
		format: format,
		log:    logger.With().Str("component", "excel_writer").Logger(),
	}
}

// WriteCompare writes the four classified tables and the run log to one
// artifact: a five-sheet workbook at path for xlsx, or five CSV files in
// the directory path for csv.
func (w *ResultWriter) WriteCompare(ctx context.Context, path string, out *compare.Output) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var err error
	switch w.format {
	case FormatCSV:
		err = w.writeCompareCSV(path, out)
	default:
		err = w.writeCompareXLSX(path, out)
	}
	if err != nil {
		return err
	}

	w.log.Info().
		Str("path", path).
		Str("format", string(w.format)).
		Int("matched", out.Result.RowCount()).
		Int("left_only", out.LeftOnly.RowCount()).
		Int("right_only", out.RightOnly.RowCount()).
		Int("duplicates", out.Duplicates.RowCount()).
		Msg("compare artifact written")
	return nil
}

func compareTables(out *compare.Output) []struct {
	Name  string
	Table table.Table
} {
	return []struct {
		Name  string
		Table table.Table
	}{
		{SheetResult, out.Result},
		{SheetLeftOnly, out.LeftOnly},
		{SheetRightOnly, out.RightOnly},
		{SheetDuplicates, out.Duplicates},
	}
}

func (w *ResultWriter) writeCompareXLSX(path string, out *compare.Output) error {
	f := excelize.NewFile()
	defer f.Close()

	for i, entry := range compareTables(out) {
		if i == 0 {
			// Reuse the default sheet for the first table.
			if err := f.SetSheetName("Sheet1", entry.Name); err != nil {
				return err
			}
		} else if _, err := f.NewSheet(entry.Name); err != nil {
			return err
		}
		if err := writeSheet(f, entry.Name, entry.Table); err != nil {
			return err
		}
	}

	if _, err := f.NewSheet(SheetLog); err != nil {
		return err
	}
	for i, entry := range out.Log {
		labelCell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetCellValue(SheetLog, labelCell, entry.Label); err != nil {
			return err
		}
		valueCell, _ := excelize.CoordinatesToCellName(2, i+1)
		if err := f.SetCellValue(SheetLog, valueCell, entry.Value); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func (w *ResultWriter) writeCompareCSV(dir string, out *compare.Output) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	for _, entry := range compareTables(out) {
		if err := writeCSVFile(filepath.Join(dir, entry.Name+".csv"), entry.Table); err != nil {
			return err
		}
	}

	logRows := make([][]string, 0, len(out.Log))
	for _, entry := range out.Log {
		logRows = append(logRows, []string{entry.Label, entry.Value})
	}
	return writeCSVRows(filepath.Join(dir, SheetLog+".csv"), logRows)
}

// WriteSplit writes one file per part into dir, named
// <stem>_<sanitized key value>.<format>. Parts are written concurrently;
// the returned paths follow part order.
func (w *ResultWriter) WriteSplit(ctx context.Context, dir string, stem string, out *split.Output) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	paths := w.partPaths(dir, stem, out.Parts)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, part := range out.Parts {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return w.writeTableFile(paths[i], part.Table)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	w.log.Info().
		Str("dir", dir).
		Str("format", string(w.format)).
		Int("parts", len(paths)).
		Msg("split parts written")
	return paths, nil
}

// WriteTable writes one bare table to path in the writer's format.
func (w *ResultWriter) WriteTable(ctx context.Context, path string, t table.Table) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := w.writeTableFile(path, t); err != nil {
		return err
	}

	w.log.Debug().Str("path", path).Int("rows", t.RowCount()).Msg("table written")
	return nil
}

// partPaths derives one file path per part, deduplicating names that
// collide after sanitization.
func (w *ResultWriter) partPaths(dir, stem string, parts []split.Part) []string {
	used := make(map[string]int, len(parts))
	paths := make([]string, len(parts))
	for i, part := range parts {
		name := fmt.Sprintf("%s_%s", stem, sanitizeKeyValue(part.KeyValue))
		used[name]++
		if n := used[name]; n > 1 {
			name = fmt.Sprintf("%s_%d", name, n)
		}
		paths[i] = filepath.Join(dir, fmt.Sprintf("%s.%s", name, w.format))
	}
	return paths
}

func (w *ResultWriter) writeTableFile(path string, t table.Table) error {
	if w.format == FormatCSV {
		return writeCSVFile(path, t)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := writeSheet(f, "Sheet1", t); err != nil {
		return err
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet string, t table.Table) error {
	for i, h := range t.Headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}
	for r, row := range t.Rows {
		for c, v := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeCSVFile(path string, t table.Table) error {
	rows := make([][]string, 0, len(t.Rows)+1)
	rows = append(rows, t.Headers)
	rows = append(rows, t.Rows...)
	return writeCSVRows(path, rows)
}

func writeCSVRows(path string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// sanitizeKeyValue makes a key value safe to embed in a file name.
func sanitizeKeyValue(v string) string {
	mapped := strings.Map(func(r rune) rune {
		if r < 0x20 || strings.ContainsRune(`/\:*?"<>|`, r) {
			return '_'
		}
		return r
	}, v)
	if mapped == "" {
		return "_"
	}
	return mapped
}
