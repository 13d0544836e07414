// Package compare reconciles two tables on a shared key column.
//
// Both sides are grouped by a normalized key value, classified into
// matched, single-side and duplicate-key rows, and re-emitted under a
// combined header schema with per-row match metadata. The transform is
// pure; output rows never alias the caller's slices.
package compare

import (
	"strconv"
	"strings"

	"github.com/eightchip/Custom-Merge-Excel-for-web/domain/core"
	"github.com/eightchip/Custom-Merge-Excel-for-web/domain/table"
)

// match_status values
const (
	StatusBoth      = "both"
	StatusLeftOnly  = "left_only"
	StatusRightOnly = "right_only"
)

// Metadata columns appended after the combined left/right headers.
const (
	ColMatchStatus = "match_status"
	ColDiffCols    = "diff_cols"
	ColDupKeyFlag  = "dup_key_flag"
)

const (
	leftPrefix  = "L__"
	rightPrefix = "R__"
)

// Options control key normalization. Trim strips leading and trailing
// whitespace, CaseInsensitive lowercases; trimming applies first. Only the
// key column is normalized, and only for grouping - emitted cells keep
// their original values.
type Options struct {
	Trim            bool `json:"trim"`
	CaseInsensitive bool `json:"case_insensitive"`
}

// NormalizeKey applies opts to a raw key value.
func NormalizeKey(raw string, opts Options) string {
	if opts.Trim {
		raw = strings.TrimSpace(raw)
	}
	if opts.CaseInsensitive {
		raw = strings.ToLower(raw)
	}
	return raw
}

// Input carries the two tables, the key column name and the normalization
// options for one reconciliation.
type Input struct {
	Left    table.Table
	Right   table.Table
	Key     string
	Options Options
}

// LogEntry is one ordered label/value pair of the run log.
type LogEntry struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Output holds the four classified tables and the run log. All four tables
// share one header schema: the left headers prefixed L__, the right headers
// prefixed R__, then match_status, diff_cols and dup_key_flag.
type Output struct {
	Result     table.Table `json:"result"`
	LeftOnly   table.Table `json:"left_only"`
	RightOnly  table.Table `json:"right_only"`
	Duplicates table.Table `json:"duplicates"`
	Log        []LogEntry  `json:"log"`
}

// Run reconciles in.Left against in.Right on the key column and fails with
// core.ErrKeyColumnNotFound when either side's headers lack the key (left
// is checked first).
//
// Classification rules:
//   - A key whose group holds more than one row on a side sends every row
//     of that group to Duplicates and consumes the key. The left pass runs
//     first; a key duplicated on both sides is consumed by the left pass
//     and the right group is dropped. Rows whose single-row group shares a
//     key consumed by the other side's duplicates are dropped too.
//   - A key with exactly one row on each side emits a merged row to Result.
//   - Unconsumed keys present on one side only emit to LeftOnly/RightOnly.
//
// Row order is deterministic: keys are processed in first-seen input order
// per side (Duplicates lists left groups before right groups; Result and
// LeftOnly follow left key order, RightOnly right key order). A row with no
// cell at the key index is skipped and appears in no output. Merged Result
// rows are the raw concatenation of both rows; every other row is padded or
// truncated to the combined header width before the metadata columns.
func Run(in Input) (*Output, error) {
	leftIdx := in.Left.ColumnIndex(in.Key)
	if leftIdx < 0 {
		return nil, core.NewKeyColumnError("left", in.Key)
	}
	rightIdx := in.Right.ColumnIndex(in.Key)
	if rightIdx < 0 {
		return nil, core.NewKeyColumnError("right", in.Key)
	}

	left := groupByKey(in.Left.Rows, leftIdx, in.Options)
	right := groupByKey(in.Right.Rows, rightIdx, in.Options)

	headers := outputHeaders(in.Left.Headers, in.Right.Headers)
	leftW := in.Left.Width()
	width := leftW + in.Right.Width()

	out := &Output{
		Result:     table.New(headers),
		LeftOnly:   table.New(headers),
		RightOnly:  table.New(headers),
		Duplicates: table.New(headers),
	}

	// Keys consumed by duplicate handling.
	consumed := make(map[string]struct{})

	for _, key := range left.order {
		rows := left.groups[key]
		if len(rows) <= 1 {
			continue
		}
		for _, ri := range rows {
			row := padRow(in.Left.Rows[ri], 0, width)
			out.Duplicates.Rows = append(out.Duplicates.Rows, withMeta(row, StatusLeftOnly, "", "1"))
		}
		consumed[key] = struct{}{}
	}

	for _, key := range right.order {
		rows := right.groups[key]
		if len(rows) <= 1 {
			continue
		}
		if _, done := consumed[key]; done {
			continue
		}
		for _, ri := range rows {
			row := padRow(in.Right.Rows[ri], leftW, width)
			out.Duplicates.Rows = append(out.Duplicates.Rows, withMeta(row, StatusRightOnly, "", "1"))
		}
		consumed[key] = struct{}{}
	}

	for _, key := range left.order {
		if _, done := consumed[key]; done {
			continue
		}
		lRows := left.groups[key]
		rRows, onRight := right.groups[key]
		if !onRight {
			for _, li := range lRows {
				row := padRow(in.Left.Rows[li], 0, width)
				out.LeftOnly.Rows = append(out.LeftOnly.Rows, withMeta(row, StatusLeftOnly, "", "0"))
			}
			continue
		}
		if len(lRows) == 1 && len(rRows) == 1 {
			lRow, rRow := in.Left.Rows[lRows[0]], in.Right.Rows[rRows[0]]
			merged := make([]string, 0, len(lRow)+len(rRow)+3)
			merged = append(merged, lRow...)
			merged = append(merged, rRow...)
			diff := diffColumns(in.Left.Headers, in.Right.Headers, lRow, rRow)
			out.Result.Rows = append(out.Result.Rows, withMeta(merged, StatusBoth, diff, "0"))
		}
	}

	for _, key := range right.order {
		if _, done := consumed[key]; done {
			continue
		}
		if _, onLeft := left.groups[key]; onLeft {
			continue
		}
		for _, ri := range right.groups[key] {
			row := padRow(in.Right.Rows[ri], leftW, width)
			out.RightOnly.Rows = append(out.RightOnly.Rows, withMeta(row, StatusRightOnly, "", "0"))
		}
	}

	out.Log = runLog(in)
	return out, nil
}

// keyGroups maps normalized key values to row indices, remembering the
// order keys were first seen in so every pass over them is deterministic.
type keyGroups struct {
	order  []string
	groups map[string][]int
}

func groupByKey(rows [][]string, keyIdx int, opts Options) keyGroups {
	g := keyGroups{groups: make(map[string][]int)}
	for i, row := range rows {
		if keyIdx >= len(row) {
			// No cell at the key index: the row is unclassifiable and
			// stays out of every output table.
			continue
		}
		key := NormalizeKey(row[keyIdx], opts)
		if _, seen := g.groups[key]; !seen {
			g.order = append(g.order, key)
		}
		g.groups[key] = append(g.groups[key], i)
	}
	return g
}

func outputHeaders(left, right []string) []string {
	headers := make([]string, 0, len(left)+len(right)+3)
	for _, h := range left {
		headers = append(headers, leftPrefix+h)
	}
	for _, h := range right {
		headers = append(headers, rightPrefix+h)
	}
	return append(headers, ColMatchStatus, ColDiffCols, ColDupKeyFlag)
}

// padRow copies cells into a fresh row of exactly width cells starting at
// offset, truncating whatever runs past the end and leaving the rest empty.
func padRow(cells []string, offset, width int) []string {
	row := make([]string, width)
	copy(row[offset:], cells)
	return row
}

func withMeta(row []string, status, diff, dup string) []string {
	return append(row, status, diff, dup)
}

// diffColumns lists the left header names whose cell differs from the
// same-named right column, in left header order, joined with ",". For each
// left header the first right header with an identical name is compared; a
// missing cell reads as the empty string. Left headers with no same-named
// right column are skipped.
func diffColumns(leftHeaders, rightHeaders []string, leftRow, rightRow []string) string {
	var diffs []string
	for i, name := range leftHeaders {
		ri := -1
		for j, rh := range rightHeaders {
			if rh == name {
				ri = j
				break
			}
		}
		if ri < 0 {
			continue
		}
		if table.Cell(leftRow, i) != table.Cell(rightRow, ri) {
			diffs = append(diffs, name)
		}
	}
	return strings.Join(diffs, ",")
}

// runLog reports the five fixed run facts, in order.
func runLog(in Input) []LogEntry {
	return []LogEntry{
		{Label: "left_rows", Value: strconv.Itoa(in.Left.RowCount())},
		{Label: "right_rows", Value: strconv.Itoa(in.Right.RowCount())},
		{Label: "key_column", Value: in.Key},
		{Label: "trim", Value: strconv.FormatBool(in.Options.Trim)},
		{Label: "case_insensitive", Value: strconv.FormatBool(in.Options.CaseInsensitive)},
	}
}
