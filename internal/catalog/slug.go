package catalog

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// CategoryID derives a category id from its display name: lower-cased, with
// every run of whitespace collapsed to a single hyphen. Leading and trailing
// whitespace is dropped.
func CategoryID(name string) string {
	// A Caser holds state, so one is built per call.
	lower := cases.Lower(language.Und).String(name)
	return strings.Join(strings.Fields(lower), "-")
}
