package reconcile

import (
	"math"

	"github.com/rockmnakaito-hue/StatsBotCompi/pkg/models"
	"github.com/rockmnakaito-hue/StatsBotCompi/pkg/table"
)

// DurationColumns are the activity columns exported in seconds that the
// operator wants in minutes.
var DurationColumns = []string{
	"Call seconds",
	"Outgoing call seconds",
	"Tiempo promedio de llamada",
	"Tiempo de trabajo",
}

// ConvertDurations rescales the named columns from seconds to minutes,
// rounded to 2 decimals, in place. Columns absent from the table are
// skipped; non-numeric cells become missing values. This is applied per
// shift bucket after matching — the raw activity table keeps seconds so
// orphan detection still sees them.
func ConvertDurations(t *models.Table, columns []string) {
	for _, col := range columns {
		if !t.HasColumn(col) {
			continue
		}
		for _, row := range t.Rows {
			v, ok := table.ParseOptionalNumber(row[col])
			if !ok {
				row[col] = ""
				continue
			}
			row[col] = table.FormatNumber(round2(v / 60))
		}
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
