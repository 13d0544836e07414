// Package table defines the in-memory tabular dataset shared by every
// operation: one header row plus zero or more data rows of string cells.
package table

// Table is a header row plus data rows. Rows may be shorter (or longer)
// than the header list; nothing ties row length to header count. A cell
// read past a row's end is the empty string.
type Table struct {
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

// New returns a table with a copy of headers and no rows.
func New(headers []string) Table {
	return Table{
		Headers: append([]string(nil), headers...),
		Rows:    [][]string{},
	}
}

// ColumnIndex returns the index of the first header exactly equal to name,
// or -1 when no header matches. Lookup is case-sensitive and untrimmed.
func (t Table) ColumnIndex(name string) int {
	for i, h := range t.Headers {
		if h == name {
			return i
		}
	}
	return -1
}

// Width returns the number of header columns.
func (t Table) Width() int {
	return len(t.Headers)
}

// RowCount returns the number of data rows.
func (t Table) RowCount() int {
	return len(t.Rows)
}

// AppendRow adds a copy of row to the table.
func (t *Table) AppendRow(row []string) {
	t.Rows = append(t.Rows, append([]string(nil), row...))
}

// Clone returns a deep copy of the table.
func (t Table) Clone() Table {
	out := Table{Headers: append([]string(nil), t.Headers...)}
	if t.Rows != nil {
		out.Rows = make([][]string, 0, len(t.Rows))
		for _, row := range t.Rows {
			out.Rows = append(out.Rows, append([]string(nil), row...))
		}
	}
	return out
}

// Cell returns row's value at idx, or the empty string when the row has no
// cell there.
func Cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}
