package services

import (
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// tooLong reports whether s exceeds max characters. Length is counted on the
// NFC form so a decomposed accent counts once. The text itself is stored
// unchanged. A non-positive max disables the check.
func tooLong(s string, max int) bool {
	if max <= 0 {
		return false
	}
	return utf8.RuneCountInString(norm.NFC.String(s)) > max
}
