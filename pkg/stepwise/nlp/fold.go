package nlp

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var punctReplacer = strings.NewReplacer(
	"’", "'", "‘", "'", "“", `"`, "”", `"`,
	"–", "-", "—", "-", "\u00a0", " ", "º", "°",
)

// Fold strips diacritics and normalises typographic punctuation so that
// "Sauté" and "Saute" compare equal. Case is preserved.
func Fold(s string) string {
	s = punctReplacer.Replace(s)
	if isASCII(s) {
		return s
	}
	// Transformers carry state, so build one per call.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// Key returns the folded, lowercased form used for matching.
func Key(s string) string {
	return strings.ToLower(Fold(s))
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
