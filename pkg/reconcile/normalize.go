// Package reconcile matches agents scheduled on shifts against the per-agent
// activity export of the contact-center tool. Both sources spell names their
// own way, so everything funnels through one normalization step before any
// comparison happens.
package reconcile

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/rockmnakaito-hue/StatsBotCompi/pkg/table"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Column names shared by the schedule and activity sources.
const (
	ColFirstName  = "First Name"
	ColLastName   = "Last Name"
	ColDate       = "Date"
	ColShiftTitle = "Shift title"
	ColUsers      = "Users"
)

// Normalize canonicalizes a raw name: trim, collapse whitespace, title-case
// each token. Blank input (including the textual "nan") yields the empty
// string. Both sides of every match must pass through here.
func Normalize(name string) string {
	if table.IsBlank(name) {
		return ""
	}
	lower := cases.Lower(language.Und)
	fields := strings.Fields(name)
	for i, f := range fields {
		r, size := utf8.DecodeRuneInString(f)
		fields[i] = string(unicode.ToUpper(r)) + lower.String(f[size:])
	}
	return strings.Join(fields, " ")
}
