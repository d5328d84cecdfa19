package nlp

import (
	"unicode"
	"unicode/utf8"
)

// span is a raw token location before tagging.
type span struct {
	start, end int
}

// tokenize splits text into words, numbers and single symbols. Words keep
// inner hyphens and apostrophes ("medium-high", "chef's"); numbers keep
// inner separators ("1.5", "1/2"). Anything else is a token of its own, so
// "350°F" yields 350, °, F and "2-3" yields 2, -, 3.
func tokenize(text string) []span {
	var spans []span
	i := 0
	for i < len(text) {
		r, size := utf8.DecodeRuneInString(text[i:])
		switch {
		case unicode.IsSpace(r):
			i += size
		case unicode.IsLetter(r):
			end := scan(text, i, unicode.IsLetter, isWordJoiner)
			spans = append(spans, span{i, end})
			i = end
		case unicode.IsDigit(r):
			end := scan(text, i, unicode.IsDigit, isNumberJoiner)
			spans = append(spans, span{i, end})
			i = end
		default:
			spans = append(spans, span{i, i + size})
			i += size
		}
	}
	return spans
}

// scan consumes runes of a class, allowing a single joiner rune when it
// is followed by another rune of the class.
func scan(text string, i int, class func(rune) bool, joiner func(rune) bool) int {
	for i < len(text) {
		r, size := utf8.DecodeRuneInString(text[i:])
		if class(r) {
			i += size
			continue
		}
		if joiner(r) && i+size < len(text) {
			next, _ := utf8.DecodeRuneInString(text[i+size:])
			if class(next) {
				i += size
				continue
			}
		}
		break
	}
	return i
}

func isWordJoiner(r rune) bool {
	return r == '-' || r == '\'' || r == '’'
}

func isNumberJoiner(r rune) bool {
	return r == '.' || r == '/' || r == ','
}
