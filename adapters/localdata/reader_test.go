package localdata

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestReadPreviewCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")
	content := "name,age\nalice,31\nbob,28\ncarol,44\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	preview, err := NewReader(path).ReadPreview(2)
	require.NoError(t, err)

	assert.Equal(t, []string{"name", "age"}, preview.Headers)
	require.Len(t, preview.Rows, 2, "limit caps the preview")
	assert.Equal(t, []string{"alice", "31"}, preview.Rows[0])
}

func TestReadPreviewCSVToleratesRaggedRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ragged.csv")
	content := "a,b,c\n1,2\n3,4,5,6\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	preview, err := NewReader(path).ReadPreview(10)
	require.NoError(t, err)
	assert.Len(t, preview.Rows, 2)
}

func TestReadPreviewXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.xlsx")

	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"city", "pop"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]interface{}{"Oslo", 700000}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A3", &[]interface{}{"Bergen", 280000}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	preview, err := NewReader(path).ReadPreview(1)
	require.NoError(t, err)

	assert.Equal(t, []string{"city", "pop"}, preview.Headers)
	require.Len(t, preview.Rows, 1)
	assert.Equal(t, "Oslo", preview.Rows[0][0])
}

func TestReadPreviewMissingFile(t *testing.T) {
	_, err := NewReader(filepath.Join(t.TempDir(), "nope.csv")).ReadPreview(5)
	assert.Error(t, err)
}
