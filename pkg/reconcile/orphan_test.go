package reconcile

import (
	"testing"

	"github.com/rockmnakaito-hue/StatsBotCompi/pkg/models"
)

func TestDetectOrphans(t *testing.T) {
	activity := activityTable(
		models.Row{ColFirstName: "Ana", ColLastName: "Lopez", "Tiempo de trabajo": "3600"},
		models.Row{ColFirstName: "Carla", ColLastName: "Gomez", "Tiempo de trabajo": "1200"},
	)
	assigned := map[string]bool{"Ana Lopez": true}

	candidates := DetectOrphans(assigned, activity, 15)
	if candidates.Len() != 1 {
		t.Fatalf("expected 1 candidate, got %d", candidates.Len())
	}
	row := candidates.Rows[0]
	if row[KeyColumn] != "Carla Gomez" {
		t.Errorf("_key = %q, want Carla Gomez", row[KeyColumn])
	}
	if row[MinutesColumn] != "20" {
		t.Errorf("_tiempo_min = %q, want 20", row[MinutesColumn])
	}
}

func TestDetectOrphansExclusivity(t *testing.T) {
	activity := activityTable(
		models.Row{ColFirstName: "ana", ColLastName: "LOPEZ", "Tiempo de trabajo": "9000"},
	)
	assigned := map[string]bool{"Ana Lopez": true}

	// Assigned identities never surface, whatever the threshold.
	for _, threshold := range []float64{0, 1, 15, 100} {
		if got := DetectOrphans(assigned, activity, threshold).Len(); got != 0 {
			t.Errorf("threshold %v: assigned row surfaced as candidate", threshold)
		}
	}
}

func TestDetectOrphansStrictThreshold(t *testing.T) {
	activity := activityTable(
		models.Row{ColFirstName: "Carla", ColLastName: "Gomez", "Tiempo de trabajo": "1200"},
	)

	// 1200s is exactly 20 minutes: strictly-greater comparison.
	if got := DetectOrphans(nil, activity, 20).Len(); got != 0 {
		t.Errorf("exactly-at-threshold row should be excluded, got %d", got)
	}
	if got := DetectOrphans(nil, activity, 19.99).Len(); got != 1 {
		t.Errorf("above-threshold row should be included, got %d", got)
	}
	if got := DetectOrphans(nil, activity, 25).Len(); got != 0 {
		t.Errorf("threshold 25 should exclude a 20-minute row, got %d", got)
	}
}

func TestDetectOrphansExcludesEmptyKeys(t *testing.T) {
	activity := activityTable(
		models.Row{ColFirstName: "", ColLastName: "nan", "Tiempo de trabajo": "9000"},
	)

	if got := DetectOrphans(nil, activity, 1).Len(); got != 0 {
		t.Errorf("rows with no identity must be excluded, got %d", got)
	}
}

func TestDetectOrphansMissingWorkColumn(t *testing.T) {
	activity := models.NewTable([]string{ColFirstName, ColLastName})
	activity.Append(models.Row{ColFirstName: "Carla", ColLastName: "Gomez"})

	// Without the work-duration column every row counts as zero minutes.
	if got := DetectOrphans(nil, activity, 1).Len(); got != 0 {
		t.Errorf("expected no candidates without %q, got %d", WorkSecondsColumn, got)
	}
}

func TestDetectOrphansKeepsDuplicateIdentities(t *testing.T) {
	activity := activityTable(
		models.Row{ColFirstName: "Carla", ColLastName: "Gomez", "Tiempo de trabajo": "1200"},
		models.Row{ColFirstName: "Carla", ColLastName: "Gomez", "Tiempo de trabajo": "2400"},
	)

	candidates := DetectOrphans(nil, activity, 15)
	if candidates.Len() != 2 {
		t.Errorf("each row is an independent candidate, got %d", candidates.Len())
	}
}

func TestAssignedKeys(t *testing.T) {
	bucket := models.NewTable([]string{ColFirstName, ColLastName})
	bucket.Append(models.Row{ColFirstName: "Ann", ColLastName: "Lopez"})
	// Reassigned rows keep raw casing; the key must normalize anyway.
	bucket.Append(models.Row{ColFirstName: "juan", ColLastName: "PEREZ"})

	assigned := AssignedKeys([]*models.ShiftBucket{{Label: "Turno A", Table: bucket}})
	if !assigned["Ann Lopez"] || !assigned["Juan Perez"] {
		t.Errorf("assigned = %v, want Ann Lopez and Juan Perez", assigned)
	}
}
