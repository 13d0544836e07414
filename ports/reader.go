package ports

import (
	"context"

	"github.com/eightchip/Custom-Merge-Excel-for-web/domain/table"
)

// TableReaderPort loads tabular data from a spreadsheet file. The first
// row of the source becomes the header row; the remaining rows become data
// rows, verbatim. For workbook formats sheet selects the sheet by name; an
// empty sheet means the first one.
type TableReaderPort interface {
	ReadTable(ctx context.Context, path string, sheet string) (*table.Table, error)
}
