// Package table turns uploaded CSV and XLSX files into models.Table values
// and provides the cell-level parsing utilities the reconciliation engine
// relies on (optional numbers, blank cells, calendar dates).
package table

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rockmnakaito-hue/StatsBotCompi/pkg/models"
	"github.com/xuri/excelize/v2"
)

// ReadUpload parses an uploaded file into a table, choosing the reader from
// the file extension. Anything that is not .xlsx is treated as CSV.
func ReadUpload(r io.Reader, filename string) (*models.Table, error) {
	if strings.EqualFold(filepath.Ext(filename), ".xlsx") {
		return ReadXLSX(r)
	}
	return ReadCSV(r)
}

// ReadCSV parses CSV data into a table. Headers are trimmed (including a
// leading BOM), rows with too few cells are padded with empty strings and
// rows with extra cells are truncated.
func ReadCSV(r io.Reader) (*models.Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("empty file: no header row found")
		}
		return nil, fmt.Errorf("failed to read header row: %w", err)
	}
	for i, h := range header {
		header[i] = trimHeader(h)
	}

	t := models.NewTable(header)
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			continue
		}
		t.Append(rowFromRecord(header, record))
	}
	return t, nil
}

// ReadXLSX parses the first worksheet of an XLSX file into a table.
func ReadXLSX(r io.Reader) (*models.Table, error) {
	file, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer func() { _ = file.Close() }()

	sheet := file.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("no worksheet found")
	}
	rows, err := file.GetRows(sheet)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("worksheet is empty")
	}

	header := rows[0]
	for i, h := range header {
		header[i] = trimHeader(h)
	}
	t := models.NewTable(header)
	for _, record := range rows[1:] {
		t.Append(rowFromRecord(header, record))
	}
	return t, nil
}

// RequireColumns verifies that every named column is present.
func RequireColumns(t *models.Table, columns ...string) error {
	for _, c := range columns {
		if !t.HasColumn(c) {
			return fmt.Errorf("missing required column: %s", c)
		}
	}
	return nil
}

// IsBlank reports whether a cell is empty, whitespace-only, or the textual
// "nan" a spreadsheet round-trip leaves behind for missing values.
func IsBlank(s string) bool {
	s = strings.TrimSpace(s)
	return s == "" || strings.EqualFold(s, "nan")
}

// ParseOptionalNumber parses a cell as a number. Blank or non-numeric cells
// report ok=false; they are missing values, never errors.
func ParseOptionalNumber(s string) (float64, bool) {
	if IsBlank(s) {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// FormatNumber renders a numeric cell back to its string form.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

var dateLayouts = []string{
	"1/2/2006",
	"2006-01-02",
	"1/2/2006 15:04",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05Z",
}

// ParseDate parses a cell as a calendar date. Cells that parse under none
// of the accepted layouts report ok=false and the row is dropped by the
// caller rather than aborting ingestion.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if IsBlank(s) {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, s); err == nil {
			return d, true
		}
	}
	return time.Time{}, false
}

// SameDay compares two times on their calendar date only.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func rowFromRecord(header, record []string) models.Row {
	row := make(models.Row, len(header))
	for i, h := range header {
		if i < len(record) {
			row[h] = record[i]
		} else {
			row[h] = ""
		}
	}
	return row
}

func trimHeader(s string) string {
	return strings.TrimSpace(strings.TrimPrefix(s, "\ufeff"))
}
