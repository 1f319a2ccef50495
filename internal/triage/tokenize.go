package triage

import (
	"strings"
	"unicode"
)

// Tokenize lowercases s and splits it into contiguous runs of letters and
// digits. Every other rune (whitespace, punctuation, symbols) separates
// tokens, and empty tokens are dropped. Empty input yields no tokens.
func Tokenize(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
