package reconcile

import (
	"fmt"

	"github.com/rockmnakaito-hue/StatsBotCompi/pkg/models"
)

// NormalizeActivity returns a copy of the activity table with the First
// Name and Last Name columns normalized. This runs exactly once per date
// selection, before the shift loop; matching against a table normalized a
// second time would be harmless but matching against a raw one is a bug.
func NormalizeActivity(activity *models.Table) *models.Table {
	out := activity.Clone()
	for _, row := range out.Rows {
		row[ColFirstName] = Normalize(row[ColFirstName])
		row[ColLastName] = Normalize(row[ColLastName])
	}
	return out
}

// MatchShift resolves each scheduled user of one shift against the
// (already normalized) activity table and returns the shift's bucket of
// activity rows plus a log line for every resolution failure.
//
// A user missing from the translation table degrades to a first-name-only
// match on the raw schedule name. All matching rows are kept: an agent
// exported twice appears twice, and a user listed twice in the shift is
// matched twice.
func MatchShift(users []string, translations *TranslationTable, activity *models.Table) (*models.Table, []string) {
	bucket := models.NewTable(activity.Columns)
	var log []string

	for _, raw := range users {
		u := Normalize(raw)
		id, ok := translations.Lookup(u)
		if !ok {
			log = append(log, fmt.Sprintf("no se encontró usuario en el mapeo: %s", u))
			id = models.Identity{First: u}
		}

		matched := false
		for _, row := range activity.Rows {
			if row[ColFirstName] != id.First {
				continue
			}
			if id.Last != "" && row[ColLastName] != id.Last {
				continue
			}
			bucket.Append(row.Clone())
			matched = true
		}
		if !matched {
			log = append(log, fmt.Sprintf("usuario no encontrado en LiveAgent: %s %s", id.First, id.Last))
		}
	}
	return bucket, log
}
