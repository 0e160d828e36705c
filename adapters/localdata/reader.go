package localdata

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Preview is a local glance at a candidate file before upload: the header
// row plus the first data rows. It exists purely for display; the upload
// itself streams the raw file and never depends on this.
type Preview struct {
	Headers []string
	Rows    [][]string
}

// Reader reads the head of a CSV or XLSX file from disk.
type Reader struct {
	filePath string
	fileType string // "csv" or "xlsx"
}

// NewReader creates a reader for the given path, picking the format from
// the extension.
func NewReader(filePath string) *Reader {
	fileType := "xlsx"
	if strings.ToLower(filepath.Ext(filePath)) == ".csv" {
		fileType = "csv"
	}
	return &Reader{filePath: filePath, fileType: fileType}
}

// ReadPreview returns the header row and up to limit data rows.
func (r *Reader) ReadPreview(limit int) (*Preview, error) {
	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("file not found: %s", r.filePath)
	}
	if limit <= 0 {
		limit = 10
	}

	switch r.fileType {
	case "csv":
		return r.readCSV(limit)
	case "xlsx":
		return r.readExcel(limit)
	default:
		return nil, fmt.Errorf("unsupported file type: %s", r.fileType)
	}
}

func (r *Reader) readCSV(limit int) (*Preview, error) {
	f, err := os.Open(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // tolerate ragged rows, the service cleans them

	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	preview := &Preview{Headers: headers}
	for len(preview.Rows) < limit {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row: %w", err)
		}
		preview.Rows = append(preview.Rows, record)
	}
	return preview, nil
}

func (r *Reader) readExcel(limit int) (*Preview, error) {
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("Excel file has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("Excel file has no header row")
	}

	preview := &Preview{Headers: rows[0]}
	for _, row := range rows[1:] {
		if len(preview.Rows) == limit {
			break
		}
		preview.Rows = append(preview.Rows, row)
	}
	return preview, nil
}
