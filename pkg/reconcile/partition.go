package reconcile

import (
	"strings"
	"time"

	"github.com/rockmnakaito-hue/StatsBotCompi/pkg/models"
	"github.com/rockmnakaito-hue/StatsBotCompi/pkg/table"
)

// ShiftGroup is the scheduled roster of one shift on the selected date.
// Users are the raw comma-separated tokens, trimmed but not yet normalized.
type ShiftGroup struct {
	Label string
	Users []string
}

// Partition filters the schedule to the given calendar date and groups the
// scheduled user names by normalized shift label. Rows whose date cell does
// not parse are dropped. Groups appear in the order their label first occurs
// in the filtered table; callers must not rely on any other ordering.
func Partition(schedule *models.Table, date time.Time) []ShiftGroup {
	var groups []ShiftGroup
	index := make(map[string]int)

	for _, row := range schedule.Rows {
		d, ok := table.ParseDate(row[ColDate])
		if !ok || !table.SameDay(d, date) {
			continue
		}
		label := Normalize(row[ColShiftTitle])
		i, seen := index[label]
		if !seen {
			i = len(groups)
			index[label] = i
			groups = append(groups, ShiftGroup{Label: label})
		}
		for _, tok := range strings.Split(row[ColUsers], ",") {
			if table.IsBlank(tok) {
				continue
			}
			groups[i].Users = append(groups[i].Users, strings.TrimSpace(tok))
		}
	}
	return groups
}

// Dates returns the distinct calendar dates present in the schedule, in
// first-appearance order, for the operator's date picker.
func Dates(schedule *models.Table) []time.Time {
	var out []time.Time
	seen := make(map[string]bool)
	for _, row := range schedule.Rows {
		d, ok := table.ParseDate(row[ColDate])
		if !ok {
			continue
		}
		key := d.Format("2006-01-02")
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC))
	}
	return out
}
