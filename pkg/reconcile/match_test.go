package reconcile

import (
	"strings"
	"testing"

	"github.com/rockmnakaito-hue/StatsBotCompi/pkg/models"
)

func activityTable(rows ...models.Row) *models.Table {
	t := models.NewTable([]string{ColFirstName, ColLastName, "Tiempo de trabajo"})
	for _, r := range rows {
		t.Append(r)
	}
	return t
}

func TestMatchShiftExact(t *testing.T) {
	activity := NormalizeActivity(activityTable(
		models.Row{ColFirstName: "ann", ColLastName: "lopez", "Tiempo de trabajo": "3600"},
		models.Row{ColFirstName: "juan", ColLastName: "perez", "Tiempo de trabajo": "1800"},
	))
	tt := BuildTranslationTable(mappingTable(
		models.Row{ColNombre: "Ana", ColApellido: "Lopez", ColNombreLive: "Ann", ColApellidoLive: "Lopez"},
	))

	bucket, log := MatchShift([]string{"Ana Lopez"}, tt, activity)
	if bucket.Len() != 1 {
		t.Fatalf("expected 1 matched row, got %d", bucket.Len())
	}
	if bucket.Rows[0][ColFirstName] != "Ann" {
		t.Errorf("matched row First Name = %q, want Ann", bucket.Rows[0][ColFirstName])
	}
	if len(log) != 0 {
		t.Errorf("expected no log entries, got %v", log)
	}
}

func TestMatchShiftDegradedFirstNameOnly(t *testing.T) {
	activity := NormalizeActivity(activityTable(
		models.Row{ColFirstName: "Ana", ColLastName: "Lopez", "Tiempo de trabajo": "3600"},
		models.Row{ColFirstName: "Ana", ColLastName: "Gomez", "Tiempo de trabajo": "600"},
	))
	tt := BuildTranslationTable(mappingTable())

	bucket, log := MatchShift([]string{"ana"}, tt, activity)
	if bucket.Len() != 2 {
		t.Fatalf("first-name-only match should keep both Anas, got %d rows", bucket.Len())
	}
	if len(log) != 1 || !strings.Contains(log[0], "no se encontró usuario en el mapeo: Ana") {
		t.Errorf("expected a mapping-miss log entry, got %v", log)
	}
}

func TestMatchShiftUnmatchedUserLogs(t *testing.T) {
	activity := NormalizeActivity(activityTable())
	tt := BuildTranslationTable(mappingTable(
		models.Row{ColNombre: "Ana", ColApellido: "Lopez", ColNombreLive: "Ann", ColApellidoLive: "Lopez"},
	))

	bucket, log := MatchShift([]string{"Ana Lopez"}, tt, activity)
	if bucket.Len() != 0 {
		t.Errorf("expected no rows, got %d", bucket.Len())
	}
	if len(log) != 1 || !strings.Contains(log[0], "usuario no encontrado en LiveAgent: Ann Lopez") {
		t.Errorf("expected a not-found log entry, got %v", log)
	}
}

func TestMatchShiftDuplicateUserMatchedTwice(t *testing.T) {
	activity := NormalizeActivity(activityTable(
		models.Row{ColFirstName: "Ana", ColLastName: "Lopez", "Tiempo de trabajo": "3600"},
	))
	tt := BuildTranslationTable(mappingTable(
		models.Row{ColNombre: "Ana", ColApellido: "Lopez", ColNombreLive: "Ana", ColApellidoLive: "Lopez"},
	))

	bucket, _ := MatchShift([]string{"Ana Lopez", "Ana Lopez"}, tt, activity)
	if bucket.Len() != 2 {
		t.Errorf("duplicate scheduled user should produce duplicate rows, got %d", bucket.Len())
	}
}

func TestMatchShiftConservation(t *testing.T) {
	// Every user maps and matches: the bucket size equals the sum of
	// per-user match counts, duplicates included.
	activity := NormalizeActivity(activityTable(
		models.Row{ColFirstName: "Ann", ColLastName: "Lopez", "Tiempo de trabajo": "3600"},
		models.Row{ColFirstName: "Ann", ColLastName: "Lopez", "Tiempo de trabajo": "120"},
		models.Row{ColFirstName: "Juan", ColLastName: "Perez", "Tiempo de trabajo": "1800"},
	))
	tt := BuildTranslationTable(mappingTable(
		models.Row{ColNombre: "Ana", ColApellido: "Lopez", ColNombreLive: "Ann", ColApellidoLive: "Lopez"},
		models.Row{ColNombre: "Juan", ColApellido: "Perez", ColNombreLive: "Juan", ColApellidoLive: "Perez"},
	))

	bucket, log := MatchShift([]string{"Ana Lopez", "Juan Perez"}, tt, activity)
	if bucket.Len() != 3 {
		t.Errorf("expected 2+1 rows, got %d", bucket.Len())
	}
	if len(log) != 0 {
		t.Errorf("expected empty log, got %v", log)
	}
}

func TestNormalizeActivityLeavesSourceUntouched(t *testing.T) {
	raw := activityTable(models.Row{ColFirstName: " ann ", ColLastName: "LOPEZ", "Tiempo de trabajo": "60"})
	normalized := NormalizeActivity(raw)

	if raw.Rows[0][ColFirstName] != " ann " {
		t.Error("NormalizeActivity must not mutate the raw table")
	}
	if normalized.Rows[0][ColFirstName] != "Ann" || normalized.Rows[0][ColLastName] != "Lopez" {
		t.Errorf("normalized row = %v", normalized.Rows[0])
	}
}
