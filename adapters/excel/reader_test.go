package excel

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/eightchip/Custom-Merge-Excel-for-web/internal/logging"
)

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func writeTempXLSX(t *testing.T, sheet string, rows [][]string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.xlsx")

	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetSheetName("Sheet1", sheet))
	for r, row := range rows {
		for c, v := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, cell, v))
		}
	}
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestReadTableCSV(t *testing.T) {
	path := writeTempCSV(t, "id,name,qty\n1,alice,3\n2,bob\n3\n")

	reader := NewDataReader(logging.Nop())
	tbl, err := reader.ReadTable(context.Background(), path, "")
	require.NoError(t, err)

	require.Equal(t, []string{"id", "name", "qty"}, tbl.Headers)
	require.Equal(t, [][]string{
		{"1", "alice", "3"},
		{"2", "bob"},
		{"3"},
	}, tbl.Rows)
}

func TestReadTableCSVKeepsCellsVerbatim(t *testing.T) {
	path := writeTempCSV(t, "id,name\n\" 1 \",\" Alice \"\n")

	reader := NewDataReader(logging.Nop())
	tbl, err := reader.ReadTable(context.Background(), path, "")
	require.NoError(t, err)

	require.Equal(t, [][]string{{" 1 ", " Alice "}}, tbl.Rows)
}

func TestReadTableCSVHeaderOnly(t *testing.T) {
	path := writeTempCSV(t, "id,name\n")

	reader := NewDataReader(logging.Nop())
	tbl, err := reader.ReadTable(context.Background(), path, "")
	require.NoError(t, err)

	require.Equal(t, []string{"id", "name"}, tbl.Headers)
	require.Empty(t, tbl.Rows)
}

func TestReadTableXLSX(t *testing.T) {
	path := writeTempXLSX(t, "Data", [][]string{
		{"id", "name"},
		{"1", "alice"},
		{"2", "bob"},
	})

	reader := NewDataReader(logging.Nop())

	t.Run("first sheet by default", func(t *testing.T) {
		tbl, err := reader.ReadTable(context.Background(), path, "")
		require.NoError(t, err)
		require.Equal(t, []string{"id", "name"}, tbl.Headers)
		require.Equal(t, [][]string{{"1", "alice"}, {"2", "bob"}}, tbl.Rows)
	})

	t.Run("sheet by name", func(t *testing.T) {
		tbl, err := reader.ReadTable(context.Background(), path, "Data")
		require.NoError(t, err)
		require.Len(t, tbl.Rows, 2)
	})

	t.Run("unknown sheet fails", func(t *testing.T) {
		_, err := reader.ReadTable(context.Background(), path, "Missing")
		require.Error(t, err)
	})
}

func TestReadTableUnsupportedExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.txt")
	require.NoError(t, os.WriteFile(path, []byte("id\n1\n"), 0o644))

	reader := NewDataReader(logging.Nop())
	_, err := reader.ReadTable(context.Background(), path, "")
	require.ErrorContains(t, err, "unsupported file extension")
}

func TestReadTableMissingFile(t *testing.T) {
	reader := NewDataReader(logging.Nop())
	_, err := reader.ReadTable(context.Background(), filepath.Join(t.TempDir(), "absent.csv"), "")
	require.Error(t, err)
}

func TestReadTableCanceledContext(t *testing.T) {
	path := writeTempCSV(t, "id\n1\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	reader := NewDataReader(logging.Nop())
	_, err := reader.ReadTable(ctx, path, "")
	require.ErrorIs(t, err, context.Canceled)
}
