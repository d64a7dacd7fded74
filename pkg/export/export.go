// Package export serializes the current shift buckets into a multi-sheet
// XLSX workbook, one sheet per shift.
package export

import (
	"fmt"

	"github.com/rockmnakaito-hue/StatsBotCompi/pkg/models"
	"github.com/rockmnakaito-hue/StatsBotCompi/pkg/table"
	"github.com/xuri/excelize/v2"
)

// sheetNameLimit is Excel's hard cap on worksheet name length. Two shift
// labels sharing a 31-character prefix collapse into one sheet; that
// limitation is accepted and not disambiguated.
const sheetNameLimit = 31

// Workbook builds the export workbook. Each bucket becomes one sheet named
// after its (truncated) shift label; a bucket with zero rows still gets a
// sheet with the activity table's header row. With no buckets at all the
// workbook is a single sheet holding the full untouched activity table.
func Workbook(buckets []*models.ShiftBucket, activity *models.Table) (*excelize.File, error) {
	f := excelize.NewFile()

	if len(buckets) == 0 {
		name := "Stats"
		if err := f.SetSheetName(f.GetSheetName(0), name); err != nil {
			return nil, err
		}
		if err := writeTable(f, name, activity); err != nil {
			return nil, err
		}
		return f, nil
	}

	for i, b := range buckets {
		name := SheetName(b.Label)
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), name); err != nil {
				return nil, err
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return nil, err
		}
		if err := writeTable(f, name, b.Table); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// SheetName truncates a shift label to Excel's 31-character sheet limit.
// A blank label still needs a legal sheet name.
func SheetName(label string) string {
	if label == "" {
		return "Turno"
	}
	runes := []rune(label)
	if len(runes) > sheetNameLimit {
		return string(runes[:sheetNameLimit])
	}
	return label
}

func writeTable(f *excelize.File, sheet string, t *models.Table) error {
	header := make([]interface{}, len(t.Columns))
	for i, c := range t.Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}

	for i, row := range t.Rows {
		cells := make([]interface{}, len(t.Columns))
		for j, c := range t.Columns {
			if v, ok := table.ParseOptionalNumber(row[c]); ok {
				cells[j] = v
			} else {
				cells[j] = row[c]
			}
		}
		axis := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheet, axis, &cells); err != nil {
			return err
		}
	}
	return nil
}
