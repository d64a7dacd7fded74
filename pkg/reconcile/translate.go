package reconcile

import "github.com/rockmnakaito-hue/StatsBotCompi/pkg/models"

// Columns of the operator-maintained name-mapping table.
const (
	ColNombre       = "Nombre"
	ColApellido     = "Apellido"
	ColNombreLive   = "Nombre Live"
	ColApellidoLive = "Apellido Live"
)

// TranslationTable maps a normalized schedule-side full name to the
// activity-side identity the contact-center tool knows the agent by.
type TranslationTable struct {
	entries map[string]models.Identity
}

// BuildTranslationTable builds the lookup from the mapping table in a single
// pass. Rows whose schedule-side name normalizes to nothing are skipped;
// when the same key appears twice the later row wins.
func BuildTranslationTable(mapping *models.Table) *TranslationTable {
	t := &TranslationTable{entries: make(map[string]models.Identity)}
	if mapping == nil {
		return t
	}
	for _, row := range mapping.Rows {
		key := models.Identity{
			First: Normalize(row[ColNombre]),
			Last:  Normalize(row[ColApellido]),
		}.Key()
		if key == "" {
			continue
		}
		t.entries[key] = models.Identity{
			First: Normalize(row[ColNombreLive]),
			Last:  Normalize(row[ColApellidoLive]),
		}
	}
	return t
}

// Lookup resolves a normalized schedule-side full name. Absence is not an
// error: the caller degrades to a first-name-only identity.
func (t *TranslationTable) Lookup(key string) (models.Identity, bool) {
	id, ok := t.entries[key]
	return id, ok
}

// Len returns the number of mapped names.
func (t *TranslationTable) Len() int {
	return len(t.entries)
}
