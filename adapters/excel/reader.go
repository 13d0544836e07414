package excel

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"

	"github.com/eightchip/Custom-Merge-Excel-for-web/domain/table"
	"github.com/eightchip/Custom-Merge-Excel-for-web/ports"
)

// DataReader handles reading Excel and CSV files into tables
type DataReader struct {
	log zerolog.Logger
}

var _ ports.TableReaderPort = (*DataReader)(nil)

// NewDataReader creates a new data reader that handles both Excel and CSV files
func NewDataReader(logger zerolog.Logger) *DataReader {
	return &DataReader{log: logger.With().Str("component", "excel_reader").Logger()}
}

// ReadTable reads the file at path into a table. The first row becomes the
// header row and the rest become data rows, all cells verbatim - trimming
// and normalization belong to the operations, not the reader. A file with
// only a header row yields a table with zero data rows. sheet selects the
// workbook sheet by name (empty means the first sheet); CSV files ignore it.
func (r *DataReader) ReadTable(ctx context.Context, path string, sheet string) (*table.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("input file %s: %w", path, err)
	}

	var rows [][]string
	var err error
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".xlsx":
		rows, err = r.readWorkbook(path, sheet)
	case ".csv":
		rows, err = r.readCSV(path)
	default:
		return nil, fmt.Errorf("unsupported file extension %q (want .xlsx or .csv)", ext)
	}
	if err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("file %s has no header row", path)
	}

	t := table.Table{
		Headers: append([]string(nil), rows[0]...),
		Rows:    make([][]string, 0, len(rows)-1),
	}
	for _, row := range rows[1:] {
		t.Rows = append(t.Rows, append([]string(nil), row...))
	}

	r.log.Debug().
		Str("path", path).
		Int("columns", len(t.Headers)).
		Int("rows", len(t.Rows)).
		Msg("table loaded")
	return &t, nil
}

func (r *DataReader) readWorkbook(path, sheet string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook %s has no sheets", path)
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	return rows, nil
}

func (r *DataReader) readCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	// Rows are allowed to be shorter or longer than the header row.
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}
	return rows, nil
}
