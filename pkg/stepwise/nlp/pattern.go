package nlp

import (
	"regexp"
	"strings"
)

// WordRegexp compiles a case-insensitive pattern for phrase. Word
// boundaries are added only at edges that are word characters, spaces and
// hyphens inside the phrase match any run of spaces or hyphens, and suffix
// (a regexp fragment, may be empty) is allowed before the closing
// boundary. Patterns are meant to be run against Key-folded text.
func WordRegexp(phrase, suffix string) *regexp.Regexp {
	words := splitKey(Key(phrase))
	if len(words) == 0 {
		return nil
	}
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = regexp.QuoteMeta(w)
	}
	body := strings.Join(quoted, `[\s-]+`)
	first, last := words[0], words[len(words)-1]

	var b strings.Builder
	b.WriteString("(?i)")
	if isWordByte(first[0]) {
		b.WriteString(`\b`)
	}
	b.WriteString(body)
	if suffix != "" {
		b.WriteString("(?:" + suffix + ")?")
	}
	if isWordByte(last[len(last)-1]) {
		b.WriteString(`\b`)
	}
	return regexp.MustCompile(b.String())
}

func isWordByte(c byte) bool {
	return c == '_' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}
