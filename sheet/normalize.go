// ABOUTME: Contact normalizer turning raw sheet rows into canonical Contact records
// ABOUTME: Rows missing a name or usable phone are dropped with a warning, never silently kept
package sheet

import (
	"fmt"

	"github.com/intempus/phonetree/models"
)

// Column names expected in the contacts sheet header row.
const (
	ColName        = "Name"
	ColPhoneNumber = "PhoneNumber"
	ColEmail       = "EmailAddresses"
	ColDescription = "Description"
	ColTimeZone    = "TimeZone"
)

// Row is one raw sheet row with named-column lookup. The second return
// of Get reports whether the column holds a string value.
type Row struct {
	header map[string]int
	cells  []interface{}
}

// NewRow builds a row from a header index and raw cell values.
func NewRow(header map[string]int, cells []interface{}) Row {
	return Row{header: header, cells: cells}
}

// Get returns the string value of the named column. Missing columns,
// short rows, and non-string cells report false.
func (r Row) Get(column string) (string, bool) {
	idx, ok := r.header[column]
	if !ok || idx >= len(r.cells) {
		return "", false
	}
	s, ok := r.cells[idx].(string)
	return s, ok
}

// Normalize converts raw rows into canonical contacts, preserving sheet
// order. Rows without a name or a usable primary phone are excluded and
// reported in the returned warnings. Pure: no I/O, no mutation of input.
func Normalize(rows []Row) ([]models.Contact, []string) {
	var contacts []models.Contact
	var warnings []string

	for i, row := range rows {
		n := i + 1

		rawName, ok := row.Get(ColName)
		if !ok || CanonicalizePersonName(rawName) == "" {
			warnings = append(warnings, fmt.Sprintf("Name is missing in row #%d", n))
			continue
		}
		name := CanonicalizePersonName(rawName)

		rawPhone, _ := row.Get(ColPhoneNumber)
		var phones []string
		for _, tok := range splitMulti(rawPhone) {
			if p := CanonicalizePhone(tok); p != "" {
				phones = append(phones, p)
			}
		}
		if len(phones) == 0 {
			warnings = append(warnings, fmt.Sprintf("Found '%s' in row #%d not having a phone. Skipping...", name, n))
			continue
		}

		rawEmail, _ := row.Get(ColEmail)
		var emails []string
		for _, tok := range splitMulti(rawEmail) {
			emails = append(emails, CanonicalizeEmail(tok))
		}

		description, _ := row.Get(ColDescription)
		timeZone, _ := row.Get(ColTimeZone)

		contacts = append(contacts, models.Contact{
			Name:           name,
			Description:    description,
			TimeZone:       timeZone,
			PhoneNumbers:   phones,
			EmailAddresses: emails,
		})
	}

	return contacts, warnings
}
