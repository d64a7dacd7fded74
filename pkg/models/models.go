package models

import "strings"

// Identity is a matchable agent identity. Last may be empty when the
// schedule name could not be translated and only a first name is known.
type Identity struct {
	First string `json:"first"`
	Last  string `json:"last,omitempty"`
}

// Key returns the canonical "First Last" lookup key. An identity with
// neither part yields the empty key and cannot be matched.
func (id Identity) Key() string {
	return strings.TrimSpace(id.First + " " + id.Last)
}

// Row is one record of a table, keyed by column name. Cells are kept as
// strings; numeric interpretation happens at the point of use.
type Row map[string]string

// Clone returns an independent copy of the row.
func (r Row) Clone() Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Table is an ordered-column tabular dataset, the common currency between
// ingestion, the reconciliation engine and export.
type Table struct {
	Columns []string `json:"columns"`
	Rows    []Row    `json:"rows"`
}

// NewTable creates an empty table with the given column set.
func NewTable(columns []string) *Table {
	return &Table{Columns: append([]string{}, columns...)}
}

// HasColumn reports whether the table carries the named column.
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// Append adds a row to the table.
func (t *Table) Append(r Row) {
	t.Rows = append(t.Rows, r)
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// IsEmpty reports whether the table has no rows.
func (t *Table) IsEmpty() bool {
	return t.Len() == 0
}

// Clone returns a deep copy of the table; mutating the copy's rows does
// not affect the original.
func (t *Table) Clone() *Table {
	out := NewTable(t.Columns)
	out.Rows = make([]Row, 0, len(t.Rows))
	for _, r := range t.Rows {
		out.Rows = append(out.Rows, r.Clone())
	}
	return out
}

// ShiftBucket holds the activity rows claimed by one shift for the
// selected date.
type ShiftBucket struct {
	Label string `json:"label"`
	Table *Table `json:"table"`
}
