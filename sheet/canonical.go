// ABOUTME: Canonicalization of free-text name, phone, and email fields
// ABOUTME: Deterministic normalization so values from different views compare equal
package sheet

import (
	"strings"
	"unicode"
)

// CanonicalizePersonName normalizes a sheet name cell. "Last, First" is
// reordered to "First Last", apostrophes are stripped, whitespace is
// collapsed, and each word is title-cased.
func CanonicalizePersonName(raw string) string {
	s := strings.TrimSpace(raw)
	if i := strings.Index(s, ","); i >= 0 {
		last := strings.TrimSpace(s[:i])
		first := strings.TrimSpace(s[i+1:])
		s = first + " " + last
	}
	s = strings.ReplaceAll(s, "'", "")
	s = strings.ReplaceAll(s, "’", "")

	words := strings.Fields(s)
	for i, w := range words {
		words[i] = titleWord(w)
	}
	return strings.Join(words, " ")
}

func titleWord(w string) string {
	runes := []rune(strings.ToLower(w))
	if len(runes) == 0 {
		return ""
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// CanonicalizePhone reduces a phone token to canonical 10-digit US form:
// non-digits stripped, a leading country-code 1 dropped when the result
// would exceed ten digits. Applying it twice yields the same result.
func CanonicalizePhone(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if len(digits) > 10 && digits[0] == '1' {
		digits = digits[1:]
	}
	return digits
}

// CanonicalizeEmail lower-cases and trims an email token. No syntax
// validation is performed.
func CanonicalizeEmail(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// splitMulti splits a multi-value sheet cell on semicolons, commas, and
// newlines. Plain spaces are not separators: formatted phone numbers
// contain them. Tokens are trimmed and empty ones dropped.
func splitMulti(raw string) []string {
	var tokens []string
	for _, tok := range strings.FieldsFunc(raw, func(r rune) bool {
		return r == ';' || r == ',' || r == '\n' || r == '\r'
	}) {
		if tok = strings.TrimSpace(tok); tok != "" {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}
