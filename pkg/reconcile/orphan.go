package reconcile

import (
	"github.com/rockmnakaito-hue/StatsBotCompi/pkg/models"
	"github.com/rockmnakaito-hue/StatsBotCompi/pkg/table"
)

// Derived helper columns carried by orphan candidate rows. They are
// stripped again before a row is folded into a shift bucket.
const (
	KeyColumn     = "_key"
	MinutesColumn = "_tiempo_min"
)

// WorkSecondsColumn is the duration that decides whether unassigned
// activity is worth offering to the operator.
const WorkSecondsColumn = "Tiempo de trabajo"

// Threshold bounds for the operator-configurable overtime threshold.
const (
	DefaultThresholdMinutes = 15
	MinThresholdMinutes     = 1
	MaxThresholdMinutes     = 1440
)

// AssignedKeys returns the set of normalized identities already claimed by
// any shift bucket. It is recomputed from the buckets on every call so
// manual reassignments are reflected immediately.
func AssignedKeys(buckets []*models.ShiftBucket) map[string]bool {
	assigned := make(map[string]bool)
	for _, b := range buckets {
		for _, row := range b.Table.Rows {
			key := models.Identity{
				First: Normalize(row[ColFirstName]),
				Last:  Normalize(row[ColLastName]),
			}.Key()
			if key != "" {
				assigned[key] = true
			}
		}
	}
	return assigned
}

// DetectOrphans returns the activity rows not claimed by any shift whose
// worked time exceeds thresholdMinutes (strictly). The activity table here
// is the raw upload, still in seconds. Rows whose name cells normalize to
// an empty key cannot be identified and are excluded. Duplicate identities
// are not collapsed: each row is an independent candidate.
func DetectOrphans(assigned map[string]bool, activity *models.Table, thresholdMinutes float64) *models.Table {
	columns := append(append([]string{}, activity.Columns...), KeyColumn, MinutesColumn)
	out := models.NewTable(columns)

	hasWork := activity.HasColumn(WorkSecondsColumn)
	for _, row := range activity.Rows {
		key := models.Identity{
			First: Normalize(row[ColFirstName]),
			Last:  Normalize(row[ColLastName]),
		}.Key()
		if key == "" {
			continue
		}

		minutes := 0.0
		if hasWork {
			if v, ok := table.ParseOptionalNumber(row[WorkSecondsColumn]); ok {
				minutes = v / 60
			}
		}
		if assigned[key] || minutes <= thresholdMinutes {
			continue
		}

		candidate := row.Clone()
		candidate[KeyColumn] = key
		candidate[MinutesColumn] = table.FormatNumber(minutes)
		out.Append(candidate)
	}
	return out
}
