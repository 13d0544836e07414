// Package split partitions a table into one part per key value.
package split

import (
	"sort"
	"strings"

	"github.com/eightchip/Custom-Merge-Excel-for-web/domain/core"
	"github.com/eightchip/Custom-Merge-Excel-for-web/domain/table"
)

// EmptyKey is the part that collects rows whose key cell is missing or
// blank after trimming. A literal cell value "EMPTY" lands in the same
// part.
const EmptyKey = "EMPTY"

// Input carries the table to partition and the key column name.
type Input struct {
	Table table.Table
	Key   string
}

// Part is one output table holding every row that shares KeyValue.
type Part struct {
	KeyValue string      `json:"key_value"`
	Table    table.Table `json:"table"`
}

// Output holds the parts sorted ascending by key value.
type Output struct {
	Parts []Part `json:"parts"`
}

// Run splits in.Table by the key column and fails with
// core.ErrKeyColumnNotFound when the headers lack the key.
//
// The key cell is trimmed before grouping; trimming never touches the
// stored rows, which are copied verbatim into their part. Each part gets
// its own copy of the headers. Parts come back sorted ascending by key
// value using byte-wise string comparison, so uppercase values (and the
// EMPTY part) sort before lowercase ones.
func Run(in Input) (*Output, error) {
	keyIdx := in.Table.ColumnIndex(in.Key)
	if keyIdx < 0 {
		return nil, core.NewKeyColumnError("input", in.Key)
	}

	groups := make(map[string][]int)
	values := []string{}
	for i, row := range in.Table.Rows {
		value := strings.TrimSpace(table.Cell(row, keyIdx))
		if value == "" {
			value = EmptyKey
		}
		if _, seen := groups[value]; !seen {
			values = append(values, value)
		}
		groups[value] = append(groups[value], i)
	}

	sort.Strings(values)

	out := &Output{Parts: make([]Part, 0, len(values))}
	for _, value := range values {
		part := Part{KeyValue: value, Table: table.New(in.Table.Headers)}
		for _, ri := range groups[value] {
			part.Table.AppendRow(in.Table.Rows[ri])
		}
		out.Parts = append(out.Parts, part)
	}
	return out, nil
}
