package ports

import (
	"context"

	"github.com/eightchip/Custom-Merge-Excel-for-web/domain/compare"
	"github.com/eightchip/Custom-Merge-Excel-for-web/domain/split"
	"github.com/eightchip/Custom-Merge-Excel-for-web/domain/table"
)

// ResultWriterPort exports operation results to spreadsheet files.
type ResultWriterPort interface {
	// WriteCompare writes the four classified tables and the run log to
	// one artifact at path (a workbook, or a directory of CSV files).
	WriteCompare(ctx context.Context, path string, out *compare.Output) error

	// WriteSplit writes one file per part into dir, deriving file names
	// from stem and each part's key value. It returns the written paths
	// in part order.
	WriteSplit(ctx context.Context, dir string, stem string, out *split.Output) ([]string, error)

	// WriteTable writes one bare table to path.
	WriteTable(ctx context.Context, path string, t table.Table) error
}
