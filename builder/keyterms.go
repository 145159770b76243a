// ABOUTME: Transcriber keyterm extraction from contact names
// ABOUTME: Deduplicated case-insensitively, stop words removed, original casing kept
package builder

import (
	"strings"

	"github.com/intempus/phonetree/models"
)

// stopWords are filtered out of keyterm extraction; they add no speech
// recognition signal.
var stopWords = map[string]struct{}{
	"a":    {},
	"an":   {},
	"the":  {},
	"for":  {},
	"to":   {},
	"by":   {},
	"of":   {},
	"main": {},
}

// Keyterms extracts single words from all contact names to bias the
// transcriber. Words are deduplicated by their lower-case form with the
// first-seen original casing preserved, in order of first appearance.
func Keyterms(contacts []models.Contact) []string {
	seen := make(map[string]struct{})
	var terms []string
	for _, c := range contacts {
		for _, word := range strings.Fields(c.Name) {
			key := strings.ToLower(word)
			if _, stop := stopWords[key]; stop {
				continue
			}
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			terms = append(terms, word)
		}
	}
	return terms
}
