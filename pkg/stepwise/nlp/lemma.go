package nlp

import (
	"strings"

	"github.com/kljensen/snowball/english"
)

var irregular = map[string]string{
	"is": "be", "are": "be", "was": "be", "were": "be", "been": "be", "being": "be", "am": "be",
	"became": "become", "becomes": "become", "becoming": "become",
	"knives": "knife", "leaves": "leaf", "halves": "half", "loaves": "loaf", "shelves": "shelf",
	"froze": "freeze", "frozen": "freeze", "brought": "bring", "took": "take", "taken": "take",
	"made": "make", "beaten": "beat",
	"ate": "eat", "eaten": "eat", "rose": "rise", "risen": "rise", "shook": "shake",
	"shaken": "shake", "tomatoes": "tomato", "potatoes": "potato", "children": "child",
}

// Lemma returns the comparison lemma for a word: an irregular form's base,
// otherwise its English snowball stem. Two words share a lemma when they
// are inflections of one another ("tomatoes"/"tomato", "baked"/"bake").
func Lemma(word string) string {
	w := Key(strings.TrimSpace(word))
	if w == "" {
		return ""
	}
	if base, ok := irregular[w]; ok {
		w = base
	}
	return english.Stem(w, false)
}
