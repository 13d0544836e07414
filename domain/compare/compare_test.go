package compare

import (
	"errors"
	"fmt"
	"reflect"
	"testing"

	"golang.org/x/sync/errgroup"

	"github.com/eightchip/Custom-Merge-Excel-for-web/domain/core"
	"github.com/eightchip/Custom-Merge-Excel-for-web/domain/table"
	"github.com/eightchip/Custom-Merge-Excel-for-web/internal/testkit"
)

func tbl(headers []string, rows ...[]string) table.Table {
	return table.Table{Headers: headers, Rows: rows}
}

func TestNormalizeKey(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		opts     Options
		expected string
	}{
		{"no options", "  Apple ", Options{}, "  Apple "},
		{"trim only", "  Apple ", Options{Trim: true}, "Apple"},
		{"case only", "  Apple ", Options{CaseInsensitive: true}, "  apple "},
		{"trim then case", "  Apple ", Options{Trim: true, CaseInsensitive: true}, "apple"},
		{"inner whitespace kept", "a  b", Options{Trim: true}, "a  b"},
		{"trim to empty", "   ", Options{Trim: true}, ""},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := NormalizeKey(test.raw, test.opts); got != test.expected {
				t.Errorf("NormalizeKey(%q, %+v) = %q, expected %q", test.raw, test.opts, got, test.expected)
			}
		})
	}
}

func TestRunMergesMatchedRows(t *testing.T) {
	in := Input{
		Left: tbl([]string{"id", "name", "qty"},
			[]string{"1", "alice", "3"},
			[]string{"2", "bob", "5"},
			[]string{"3", "carol", "7"},
		),
		Right: tbl([]string{"id", "name", "price"},
			[]string{"1", "alice", "10"},
			[]string{"2", "robert", "20"},
			[]string{"4", "dave", "40"},
		),
		Key: "id",
	}

	out, err := Run(in)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	wantHeaders := []string{
		"L__id", "L__name", "L__qty",
		"R__id", "R__name", "R__price",
		"match_status", "diff_cols", "dup_key_flag",
	}
	for _, got := range [][]string{
		out.Result.Headers, out.LeftOnly.Headers, out.RightOnly.Headers, out.Duplicates.Headers,
	} {
		if !reflect.DeepEqual(got, wantHeaders) {
			t.Fatalf("Headers = %v, expected %v", got, wantHeaders)
		}
	}

	wantResult := [][]string{
		{"1", "alice", "3", "1", "alice", "10", "both", "", "0"},
		{"2", "bob", "5", "2", "robert", "20", "both", "name", "0"},
	}
	if !reflect.DeepEqual(out.Result.Rows, wantResult) {
		t.Errorf("Result rows = %v, expected %v", out.Result.Rows, wantResult)
	}

	wantLeftOnly := [][]string{
		{"3", "carol", "7", "", "", "", "left_only", "", "0"},
	}
	if !reflect.DeepEqual(out.LeftOnly.Rows, wantLeftOnly) {
		t.Errorf("LeftOnly rows = %v, expected %v", out.LeftOnly.Rows, wantLeftOnly)
	}

	wantRightOnly := [][]string{
		{"", "", "", "4", "dave", "40", "right_only", "", "0"},
	}
	if !reflect.DeepEqual(out.RightOnly.Rows, wantRightOnly) {
		t.Errorf("RightOnly rows = %v, expected %v", out.RightOnly.Rows, wantRightOnly)
	}

	if len(out.Duplicates.Rows) != 0 {
		t.Errorf("Expected no duplicate rows, got %v", out.Duplicates.Rows)
	}
}

func TestRunKeyColumnMissing(t *testing.T) {
	left := tbl([]string{"id", "name"}, []string{"1", "alice"})
	right := tbl([]string{"code", "name"}, []string{"1", "alice"})

	out, err := Run(Input{Left: left, Right: right, Key: "code"})
	if out != nil {
		t.Errorf("Expected nil output when the left side lacks the key, got %+v", out)
	}
	if !core.IsKeyColumnNotFound(err) {
		t.Fatalf("Expected key column error, got %v", err)
	}
	var kce *core.KeyColumnError
	if !errors.As(err, &kce) || kce.Table != "left" {
		t.Errorf("Expected the left side to be reported first, got %v", err)
	}

	_, err = Run(Input{Left: left, Right: right, Key: "id"})
	if !core.IsKeyColumnNotFound(err) {
		t.Fatalf("Expected key column error for the right side, got %v", err)
	}
	if !errors.As(err, &kce) || kce.Table != "right" {
		t.Errorf("Expected the right side to be reported, got %v", err)
	}
}

func TestRunNormalizationOptions(t *testing.T) {
	tests := []struct {
		name        string
		leftKey     string
		rightKey    string
		opts        Options
		wantMatched bool
	}{
		{"exact bytes match", "a1", "a1", Options{}, true},
		{"whitespace blocks match without trim", " a1 ", "a1", Options{}, false},
		{"trim joins padded keys", " a1 ", "a1", Options{Trim: true}, true},
		{"case blocks match without folding", "A1", "a1", Options{Trim: true}, false},
		{"folding joins cased keys", "A1", "a1", Options{CaseInsensitive: true}, true},
		{"trim and fold combine", "  A1 ", "a1", Options{Trim: true, CaseInsensitive: true}, true},
		{"inner whitespace never collapsed", "a 1", "a1", Options{Trim: true, CaseInsensitive: true}, false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			in := Input{
				Left:    tbl([]string{"id"}, []string{test.leftKey}),
				Right:   tbl([]string{"id"}, []string{test.rightKey}),
				Key:     "id",
				Options: test.opts,
			}
			out, err := Run(in)
			if err != nil {
				t.Fatalf("Run failed: %v", err)
			}
			if matched := len(out.Result.Rows) == 1; matched != test.wantMatched {
				t.Fatalf("matched = %v, expected %v", matched, test.wantMatched)
			}
			if test.wantMatched {
				// Emitted cells keep their raw values; only grouping
				// sees the normalized key.
				want := []string{test.leftKey, test.rightKey, "both", "", "0"}
				if test.leftKey != test.rightKey {
					want[3] = "id"
				}
				if !reflect.DeepEqual(out.Result.Rows[0], want) {
					t.Errorf("Result row = %v, expected %v", out.Result.Rows[0], want)
				}
			}
		})
	}
}

func TestRunDuplicateKeysGoToDuplicates(t *testing.T) {
	in := Input{
		Left: tbl([]string{"id", "name"},
			[]string{"d2", "left-a"},
			[]string{"d1", "left-b"},
			[]string{"d2", "left-c"},
			[]string{"d1", "left-d"},
		),
		Right: tbl([]string{"id", "name"},
			[]string{"d3", "right-a"},
			[]string{"d3", "right-b"},
		),
		Key: "id",
	}

	out, err := Run(in)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	// Left groups first in first-seen key order (d2 before d1), then
	// right groups.
	want := [][]string{
		{"d2", "left-a", "", "", "left_only", "", "1"},
		{"d2", "left-c", "", "", "left_only", "", "1"},
		{"d1", "left-b", "", "", "left_only", "", "1"},
		{"d1", "left-d", "", "", "left_only", "", "1"},
		{"", "", "d3", "right-a", "right_only", "", "1"},
		{"", "", "d3", "right-b", "right_only", "", "1"},
	}
	if !reflect.DeepEqual(out.Duplicates.Rows, want) {
		t.Errorf("Duplicates rows = %v, expected %v", out.Duplicates.Rows, want)
	}

	for name, rows := range map[string][][]string{
		"Result":    out.Result.Rows,
		"LeftOnly":  out.LeftOnly.Rows,
		"RightOnly": out.RightOnly.Rows,
	} {
		if len(rows) != 0 {
			t.Errorf("Expected %s to be empty, got %v", name, rows)
		}
	}
}

func TestRunLeftDuplicatesPreemptRightDuplicates(t *testing.T) {
	in := Input{
		Left: tbl([]string{"id"},
			[]string{"x"},
			[]string{"x"},
		),
		Right: tbl([]string{"id"},
			[]string{"x"},
			[]string{"x"},
			[]string{"x"},
		),
		Key: "id",
	}

	out, err := Run(in)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	// The left pass consumes "x"; the right duplicate group is dropped.
	want := [][]string{
		{"x", "", "left_only", "", "1"},
		{"x", "", "left_only", "", "1"},
	}
	if !reflect.DeepEqual(out.Duplicates.Rows, want) {
		t.Errorf("Duplicates rows = %v, expected %v", out.Duplicates.Rows, want)
	}
	if n := len(out.RightOnly.Rows); n != 0 {
		t.Errorf("Expected right duplicate rows to be dropped, found %d in RightOnly", n)
	}
}

func TestRunSingleRowsOppositeDuplicatesAreDropped(t *testing.T) {
	t.Run("left single against right duplicates", func(t *testing.T) {
		in := Input{
			Left: tbl([]string{"id", "name"},
				[]string{"k", "only-left"},
			),
			Right: tbl([]string{"id", "name"},
				[]string{"k", "right-a"},
				[]string{"k", "right-b"},
			),
			Key: "id",
		}

		out, err := Run(in)
		if err != nil {
			t.Fatalf("Run failed: %v", err)
		}

		want := [][]string{
			{"", "", "k", "right-a", "right_only", "", "1"},
			{"", "", "k", "right-b", "right_only", "", "1"},
		}
		if !reflect.DeepEqual(out.Duplicates.Rows, want) {
			t.Errorf("Duplicates rows = %v, expected %v", out.Duplicates.Rows, want)
		}
		// The left row's key was consumed by the right duplicate group, so
		// the row surfaces nowhere.
		if len(out.Result.Rows) != 0 || len(out.LeftOnly.Rows) != 0 || len(out.RightOnly.Rows) != 0 {
			t.Errorf("Expected the left row to be dropped, got result=%v leftOnly=%v rightOnly=%v",
				out.Result.Rows, out.LeftOnly.Rows, out.RightOnly.Rows)
		}
	})

	t.Run("right single against left duplicates", func(t *testing.T) {
		in := Input{
			Left: tbl([]string{"id", "name"},
				[]string{"k", "left-a"},
				[]string{"k", "left-b"},
			),
			Right: tbl([]string{"id", "name"},
				[]string{"k", "only-right"},
			),
			Key: "id",
		}

		out, err := Run(in)
		if err != nil {
			t.Fatalf("Run failed: %v", err)
		}

		want := [][]string{
			{"k", "left-a", "", "", "left_only", "", "1"},
			{"k", "left-b", "", "", "left_only", "", "1"},
		}
		if !reflect.DeepEqual(out.Duplicates.Rows, want) {
			t.Errorf("Duplicates rows = %v, expected %v", out.Duplicates.Rows, want)
		}
		if len(out.Result.Rows) != 0 || len(out.LeftOnly.Rows) != 0 || len(out.RightOnly.Rows) != 0 {
			t.Errorf("Expected the right row to be dropped, got result=%v leftOnly=%v rightOnly=%v",
				out.Result.Rows, out.LeftOnly.Rows, out.RightOnly.Rows)
		}
	})
}

func TestRunRowsWithoutKeyCellAreSkipped(t *testing.T) {
	in := Input{
		Left: tbl([]string{"name", "id"},
			[]string{"too-short"},          // no cell at the key index
			[]string{"present", "1"},       //
			[]string{"empty-key-cell", ""}, // empty cell still participates
		),
		Right: tbl([]string{"name", "id"},
			[]string{"match", "1"},
			[]string{"also-empty", ""},
		),
		Key: "id",
	}

	out, err := Run(in)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	total := len(out.Result.Rows) + len(out.LeftOnly.Rows) + len(out.RightOnly.Rows) + len(out.Duplicates.Rows)
	if total != 2 {
		t.Fatalf("Expected exactly 2 output rows, got %d", total)
	}

	want := [][]string{
		{"present", "1", "match", "1", "both", "name", "0"},
		{"empty-key-cell", "", "also-empty", "", "both", "name", "0"},
	}
	if !reflect.DeepEqual(out.Result.Rows, want) {
		t.Errorf("Result rows = %v, expected %v", out.Result.Rows, want)
	}
}

func TestRunPaddingAndTruncation(t *testing.T) {
	t.Run("single side rows pad and truncate to the combined width", func(t *testing.T) {
		in := Input{
			Left: tbl([]string{"id", "name"},
				[]string{"short"},
				[]string{"long", "x", "OVERFLOW", "MORE"},
			),
			Right: tbl([]string{"id"}),
			Key:   "id",
		}

		out, err := Run(in)
		if err != nil {
			t.Fatalf("Run failed: %v", err)
		}

		want := [][]string{
			{"short", "", "", "left_only", "", "0"},
			{"long", "x", "OVERFLOW", "left_only", "", "0"},
		}
		if !reflect.DeepEqual(out.LeftOnly.Rows, want) {
			t.Errorf("LeftOnly rows = %v, expected %v", out.LeftOnly.Rows, want)
		}
	})

	t.Run("matched rows concatenate without padding", func(t *testing.T) {
		in := Input{
			Left:  tbl([]string{"id", "name"}, []string{"7"}),
			Right: tbl([]string{"id"}, []string{"7"}),
			Key:   "id",
		}

		out, err := Run(in)
		if err != nil {
			t.Fatalf("Run failed: %v", err)
		}

		// The short left row is not padded, so the merged row is narrower
		// than the header schema.
		want := []string{"7", "7", "both", "", "0"}
		if !reflect.DeepEqual(out.Result.Rows[0], want) {
			t.Errorf("Result row = %v, expected %v", out.Result.Rows[0], want)
		}
	})
}

func TestRunDiffColsAlignment(t *testing.T) {
	t.Run("columns align by name not position", func(t *testing.T) {
		in := Input{
			Left:  tbl([]string{"id", "a", "b"}, []string{"1", "p", "q"}),
			Right: tbl([]string{"id", "b", "a"}, []string{"1", "z", "p"}),
			Key:   "id",
		}

		out, err := Run(in)
		if err != nil {
			t.Fatalf("Run failed: %v", err)
		}
		if got := out.Result.Rows[0][7]; got != "b" {
			t.Errorf("diff_cols = %q, expected %q", got, "b")
		}
	})

	t.Run("first right occurrence wins under duplicate names", func(t *testing.T) {
		in := Input{
			Left:  tbl([]string{"id", "a"}, []string{"1", "y"}),
			Right: tbl([]string{"id", "a", "a"}, []string{"1", "x", "y"}),
			Key:   "id",
		}

		out, err := Run(in)
		if err != nil {
			t.Fatalf("Run failed: %v", err)
		}
		// Left "a" compares against the first right "a" (value "x"), not
		// the equal second occurrence.
		if got := out.Result.Rows[0][6]; got != "a" {
			t.Errorf("diff_cols = %q, expected %q", got, "a")
		}
	})

	t.Run("missing cells compare as empty and diffs join with commas", func(t *testing.T) {
		in := Input{
			Left:  tbl([]string{"id", "name", "qty", "note"}, []string{"1", "alice", "3"}),
			Right: tbl([]string{"id", "name", "qty", "note"}, []string{"1", "ALICE", "9", ""}),
			Key:   "id",
		}

		out, err := Run(in)
		if err != nil {
			t.Fatalf("Run failed: %v", err)
		}
		// The left row has 3 cells, so the unpadded merged row is 3+4 wide
		// and diff_cols sits at index 8. note is missing on the left and
		// empty on the right: no diff.
		if got := out.Result.Rows[0][8]; got != "name,qty" {
			t.Errorf("diff_cols = %q, expected %q", got, "name,qty")
		}
	})
}

func TestRunLogEntries(t *testing.T) {
	in := Input{
		Left: tbl([]string{"id"},
			[]string{"1"},
			[]string{}, // skipped from grouping but still counted
		),
		Right:   tbl([]string{"id"}, []string{"1"}),
		Key:     "id",
		Options: Options{Trim: true},
	}

	out, err := Run(in)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	want := []LogEntry{
		{Label: "left_rows", Value: "2"},
		{Label: "right_rows", Value: "1"},
		{Label: "key_column", Value: "id"},
		{Label: "trim", Value: "true"},
		{Label: "case_insensitive", Value: "false"},
	}
	if !reflect.DeepEqual(out.Log, want) {
		t.Errorf("Log = %v, expected %v", out.Log, want)
	}
}

func TestRunEmptyTables(t *testing.T) {
	in := Input{
		Left:  tbl([]string{"id", "name"}),
		Right: tbl([]string{"id"}),
		Key:   "id",
	}

	out, err := Run(in)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	for name, rows := range map[string][][]string{
		"Result":     out.Result.Rows,
		"LeftOnly":   out.LeftOnly.Rows,
		"RightOnly":  out.RightOnly.Rows,
		"Duplicates": out.Duplicates.Rows,
	} {
		if rows == nil {
			t.Errorf("Expected %s rows to be empty but non-nil", name)
		}
		if len(rows) != 0 {
			t.Errorf("Expected %s to be empty, got %v", name, rows)
		}
	}
	if out.Log[0].Value != "0" || out.Log[1].Value != "0" {
		t.Errorf("Expected zero row counts in log, got %v", out.Log)
	}
}

func TestRunDeterministicOrdering(t *testing.T) {
	in := Input{
		Left: tbl([]string{"id"},
			[]string{"b"},
			[]string{"zz"},
			[]string{"a"},
			[]string{"c"},
		),
		Right: tbl([]string{"id"},
			[]string{"c"},
			[]string{"yy"},
			[]string{"a"},
			[]string{"b"},
			[]string{"xx"},
		),
		Key: "id",
	}

	first, err := Run(in)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	// Matches follow the left side's first-seen key order.
	wantMatchKeys := []string{"b", "a", "c"}
	for i, key := range wantMatchKeys {
		if got := first.Result.Rows[i][0]; got != key {
			t.Errorf("Result row %d key = %q, expected %q", i, got, key)
		}
	}

	// Right-only rows follow the right side's first-seen key order.
	wantRightKeys := []string{"yy", "xx"}
	for i, key := range wantRightKeys {
		if got := first.RightOnly.Rows[i][1]; got != key {
			t.Errorf("RightOnly row %d key = %q, expected %q", i, got, key)
		}
	}

	for i := 0; i < 20; i++ {
		again, err := Run(in)
		if err != nil {
			t.Fatalf("Run failed on repeat %d: %v", i, err)
		}
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("Run produced different output on repeat %d", i)
		}
	}
}

func TestRunDoesNotAliasInputRows(t *testing.T) {
	leftRow := []string{"1", "alice"}
	rightRow := []string{"1", "alice"}
	in := Input{
		Left:  tbl([]string{"id", "name"}, leftRow),
		Right: tbl([]string{"id", "name"}, rightRow),
		Key:   "id",
	}

	out, err := Run(in)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	out.Result.Rows[0][0] = "mutated"
	out.Result.Rows[0][2] = "mutated"
	if leftRow[0] != "1" || rightRow[0] != "1" {
		t.Error("Expected output mutations to not reach the input rows")
	}
}

func TestRunConcurrentCallsAreIndependent(t *testing.T) {
	const runs = 16

	inputs := make([]Input, runs)
	sequential := make([]*Output, runs)
	for i := range inputs {
		key := fmt.Sprintf("k%d", i)
		inputs[i] = Input{
			Left: tbl([]string{"id", "name"},
				[]string{key, fmt.Sprintf("left-%d", i)},
				[]string{"shared", "x"},
			),
			Right: tbl([]string{"id", "name"},
				[]string{key, fmt.Sprintf("right-%d", i)},
				[]string{"shared", "x"},
			),
			Key: "id",
		}
		out, err := Run(inputs[i])
		if err != nil {
			t.Fatalf("sequential Run %d failed: %v", i, err)
		}
		sequential[i] = out
	}

	concurrent := make([]*Output, runs)
	var g errgroup.Group
	for i := range inputs {
		g.Go(func() error {
			out, err := Run(inputs[i])
			if err != nil {
				return err
			}
			concurrent[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatalf("concurrent Run failed: %v", err)
	}

	for i := range inputs {
		if !reflect.DeepEqual(sequential[i], concurrent[i]) {
			t.Errorf("run %d: concurrent output differs from sequential", i)
		}
	}
}

func BenchmarkRun(b *testing.B) {
	gen := testkit.NewTableGenerator(testkit.DefaultPairConfig())
	left, right := gen.GeneratePair()
	in := Input{Left: left, Right: right, Key: "id", Options: Options{Trim: true}}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Run(in); err != nil {
			b.Fatal(err)
		}
	}
}
