package nlp

import (
	"sort"
	"strings"
)

// KeySeq is a doc flattened into match keys. Hyphenated tokens contribute
// one key per part, possessive clitics are merged into the preceding key,
// and punctuation yields an empty key that no phrase can span.
type KeySeq struct {
	Keys  []string
	Token []int // token index behind each key
}

// Keys flattens the doc into folded lowercase surface keys.
func (d *Doc) Keys() KeySeq {
	return d.keys(func(s string) string { return s })
}

// LemmaKeys flattens the doc into lemma keys.
func (d *Doc) LemmaKeys() KeySeq {
	return d.keys(Lemma)
}

func (d *Doc) keys(norm func(string) string) KeySeq {
	var ks KeySeq
	for i, t := range d.Tokens {
		switch {
		case t.Text == "-":
			continue
		case t.POS == Punct || t.POS == Sym:
			ks.Keys = append(ks.Keys, "")
			ks.Token = append(ks.Token, i)
			continue
		case isClitic(t.Lower) && len(ks.Keys) > 0 && ks.Keys[len(ks.Keys)-1] != "":
			ks.Keys[len(ks.Keys)-1] += t.Lower
			continue
		}
		for _, part := range splitKey(t.Lower) {
			ks.Keys = append(ks.Keys, part)
			ks.Token = append(ks.Token, i)
		}
	}
	for i, k := range ks.Keys {
		if k != "" {
			ks.Keys[i] = norm(k)
		}
	}
	return ks
}

func isClitic(s string) bool {
	return s == "'s" || s == "'"
}

func splitKey(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool { return r == '-' || r == ' ' })
}

// PhraseKeys splits a lexicon phrase into match keys.
func PhraseKeys(phrase string) []string {
	return splitKey(Key(phrase))
}

// Match is a phrase occurrence over the half-open range [Start, End).
// Units are keys for PhraseMatcher results and bytes for regex results.
type Match struct {
	Phrase string
	Start  int
	End    int
}

// Len is the size of the match in its own units.
func (m Match) Len() int { return m.End - m.Start }

// Overlaps reports whether two matches share any position.
func (m Match) Overlaps(o Match) bool {
	return m.Start < o.End && o.Start < m.End
}

// PhraseMatcher recognises multi-word lexicon phrases in key sequences.
type PhraseMatcher struct {
	dict   map[string]string // joined keys -> phrase as given
	maxLen int
	lemmas bool
}

// NewPhraseMatcher indexes phrases by surface keys. The first phrase wins
// when two phrases share a key sequence.
func NewPhraseMatcher(phrases []string) *PhraseMatcher {
	return newPhraseMatcher(phrases, false)
}

// NewLemmaMatcher indexes phrases by lemma keys; match it against
// Doc.LemmaKeys.
func NewLemmaMatcher(phrases []string) *PhraseMatcher {
	return newPhraseMatcher(phrases, true)
}

func newPhraseMatcher(phrases []string, lemmas bool) *PhraseMatcher {
	p := &PhraseMatcher{dict: make(map[string]string), maxLen: 1, lemmas: lemmas}
	for _, phrase := range phrases {
		keys := PhraseKeys(phrase)
		if len(keys) == 0 {
			continue
		}
		if lemmas {
			for i, k := range keys {
				keys[i] = Lemma(k)
			}
		}
		joined := strings.Join(keys, " ")
		if _, dup := p.dict[joined]; dup {
			continue
		}
		p.dict[joined] = phrase
		if len(keys) > p.maxLen {
			p.maxLen = len(keys)
		}
	}
	return p
}

// FindAll returns every phrase occurrence, overlapping ones included,
// ordered by start then length.
func (p *PhraseMatcher) FindAll(keys []string) []Match {
	var out []Match
	for i := range keys {
		if keys[i] == "" {
			continue
		}
		maxPhrase := p.maxLen
		if remaining := len(keys) - i; maxPhrase > remaining {
			maxPhrase = remaining
		}
		for n := 1; n <= maxPhrase; n++ {
			if keys[i+n-1] == "" {
				break
			}
			if phrase, ok := p.dict[strings.Join(keys[i:i+n], " ")]; ok {
				out = append(out, Match{Phrase: phrase, Start: i, End: i + n})
			}
		}
	}
	return out
}

// Longest applies greedy longest-match: candidates are taken longest
// first, earliest first on ties, skipping any that overlap an accepted
// one. The result is ordered by position.
func (p *PhraseMatcher) Longest(keys []string) []Match {
	var spans Spans
	for _, m := range ByPriority(p.FindAll(keys)) {
		if !spans.Overlaps(m) {
			spans.Take(m)
		}
	}
	return spans.Sorted()
}

// ByPriority orders candidates longest first, then by start.
func ByPriority(ms []Match) []Match {
	out := append([]Match(nil), ms...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Len() != out[j].Len() {
			return out[i].Len() > out[j].Len()
		}
		return out[i].Start < out[j].Start
	})
	return out
}

// Spans records accepted, non-overlapping matches.
type Spans struct {
	taken []Match
}

// Overlaps reports whether m intersects an accepted match.
func (s *Spans) Overlaps(m Match) bool {
	for _, t := range s.taken {
		if t.Overlaps(m) {
			return true
		}
	}
	return false
}

// Take accepts m.
func (s *Spans) Take(m Match) {
	s.taken = append(s.taken, m)
}

// Sorted returns the accepted matches ordered by position.
func (s *Spans) Sorted() []Match {
	out := append([]Match(nil), s.taken...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Start < out[j].Start })
	return out
}
