// Package nlp is the linguistic annotation layer: it turns a piece of
// recipe text into tokens carrying lemma, part-of-speech and sentence
// boundaries, and offers phrase matching over those tokens.
package nlp

import (
	"strconv"
	"strings"
)

// POS is a coarse, universal part-of-speech tag.
type POS string

const (
	Noun       POS = "NOUN"
	ProperNoun POS = "PROPN"
	Verb       POS = "VERB"
	Aux        POS = "AUX"
	Adj        POS = "ADJ"
	Adv        POS = "ADV"
	Num        POS = "NUM"
	Det        POS = "DET"
	Adp        POS = "ADP"
	Pron       POS = "PRON"
	CConj      POS = "CCONJ"
	SConj      POS = "SCONJ"
	Part       POS = "PART"
	Punct      POS = "PUNCT"
	Sym        POS = "SYM"
	Other      POS = "X"
)

// IsNominal returns true if the POS is noun-like
func (p POS) IsNominal() bool {
	return p == Noun || p == ProperNoun
}

// Token is one annotated word or symbol.
type Token struct {
	Text   string // surface form
	Lower  string // folded, lowercased surface form
	Lemma  string
	POS    POS
	Tag    string // fine-grained tag (Penn Treebank style: MD, VB, JJ, ...)
	IsStop bool
	Start  int // byte offset into Doc.Text
	End    int
}

// Sentence is a token range [Start, End) within a Doc.
type Sentence struct {
	Text  string
	Start int
	End   int
}

// Doc is an annotated text. A Doc with no tokens carries only the raw
// text; regex-based extractors read nothing else.
type Doc struct {
	Text      string
	Tokens    []Token
	Sentences []Sentence
}

// Annotated reports whether the doc carries token annotations.
func (d *Doc) Annotated() bool {
	return len(d.Tokens) > 0
}

// Span returns the source text covered by tokens [start, end).
func (d *Doc) Span(start, end int) string {
	if start >= end || start < 0 || end > len(d.Tokens) {
		return ""
	}
	return d.Text[d.Tokens[start].Start:d.Tokens[end-1].End]
}

// SentenceTexts returns the text of each sentence, or the whole text when
// the annotator found no boundaries.
func (d *Doc) SentenceTexts() []string {
	if len(d.Sentences) == 0 {
		if t := strings.TrimSpace(d.Text); t != "" {
			return []string{t}
		}
		return nil
	}
	out := make([]string, 0, len(d.Sentences))
	for _, s := range d.Sentences {
		if t := strings.TrimSpace(s.Text); t != "" {
			out = append(out, t)
		}
	}
	return out
}

var numberWords = map[string]int{
	"one": 1, "two": 2, "three": 3, "four": 4, "five": 5, "six": 6,
	"seven": 7, "eight": 8, "nine": 9, "ten": 10, "eleven": 11, "twelve": 12,
}

// LikeNum reports whether token i reads as a number: digits, decimals,
// fractions or a small number word.
func (d *Doc) LikeNum(i int) bool {
	if i < 0 || i >= len(d.Tokens) {
		return false
	}
	t := d.Tokens[i]
	if t.POS == Num {
		return true
	}
	_, ok := numberWords[t.Lower]
	return ok || isNumeric(t.Text)
}

// Number returns the integer value of token i. Decimals are truncated;
// fractions have no integer value.
func (d *Doc) Number(i int) (int, bool) {
	if i < 0 || i >= len(d.Tokens) {
		return 0, false
	}
	return NumberValue(d.Tokens[i].Text)
}

// NumberValue parses digits, decimals or a number word.
func NumberValue(s string) (int, bool) {
	if n, ok := numberWords[strings.ToLower(s)]; ok {
		return n, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return int(f), true
}

// Quantity parses an amount that may be fractional: digits, decimals,
// fractions ("1/2"), mixed numbers ("1 1/2") or a number word.
func Quantity(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if n, ok := numberWords[strings.ToLower(s)]; ok {
		return float64(n), true
	}
	if parts := strings.Fields(s); len(parts) == 2 {
		whole, err := strconv.Atoi(parts[0])
		frac, ok := fraction(parts[1])
		if err != nil || !ok {
			return 0, false
		}
		return float64(whole) + frac, true
	}
	if f, ok := fraction(s); ok {
		return f, true
	}
	if !isNumeric(s) {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	return f, err == nil
}

func fraction(s string) (float64, bool) {
	num, den, ok := strings.Cut(s, "/")
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(num)
	if err != nil {
		return 0, false
	}
	d, err := strconv.Atoi(den)
	if err != nil || d == 0 {
		return 0, false
	}
	return float64(n) / float64(d), true
}

// IsFraction reports whether s is written as a fraction ("1/2").
func IsFraction(s string) bool {
	_, ok := fraction(s)
	return ok
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	digits := 0
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '.' || r == '/' || r == ',':
		default:
			return false
		}
	}
	return digits > 0
}

// Chunk is a token range [Start, End) forming a base noun phrase.
type Chunk struct {
	Start int
	End   int
}

// NounChunks finds base noun phrases: Det? Adj* Noun+
func (d *Doc) NounChunks() []Chunk {
	var chunks []Chunk
	i := 0
	for i < len(d.Tokens) {
		start := i
		if d.Tokens[i].POS == Det {
			i++
		}
		for i < len(d.Tokens) && d.Tokens[i].POS == Adj {
			i++
		}
		nounStart := i
		for i < len(d.Tokens) && d.Tokens[i].POS.IsNominal() {
			i++
		}
		if i > nounStart {
			chunks = append(chunks, Chunk{Start: start, End: i})
			continue
		}
		i = start + 1
	}
	return chunks
}

// Annotator produces annotated documents. Implementations are safe for
// concurrent use once constructed.
type Annotator interface {
	Annotate(text string) (*Doc, error)
	Name() string
}

// Raw is the annotator behind the regex strategy: it records the text and
// nothing else.
type Raw struct{}

// Annotate wraps text in an unannotated Doc.
func (Raw) Annotate(text string) (*Doc, error) {
	return &Doc{Text: text}, nil
}

// Name identifies the annotator in logs.
func (Raw) Name() string { return "raw" }
