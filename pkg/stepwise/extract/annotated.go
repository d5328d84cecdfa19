package extract

import (
	"fmt"
	"strings"

	"github.com/cognicore/stepwise/pkg/stepwise/lexicon"
	"github.com/cognicore/stepwise/pkg/stepwise/nlp"
	"github.com/cognicore/stepwise/pkg/stepwise/recipe"
	"github.com/cognicore/stepwise/pkg/stepwise/stoplist"
)

var heatPhrases = []string{"medium-low heat", "medium-high heat", "low heat", "medium heat", "high heat"}

// Annotated extracts attributes from token annotations. Unannotated docs
// and empty token-level results are handed to the regex extractor.
type Annotated struct {
	regex     *Regex
	lex       *lexicon.Lexicon
	stops     *stoplist.Manager
	primary   *nlp.PhraseMatcher
	secondary *nlp.PhraseMatcher
	tools     *nlp.PhraseMatcher // lemma keys
	actions   *nlp.PhraseMatcher // lemma keys
	heat      *nlp.PhraseMatcher
	verbForms map[string]string // lemma -> single-word method
}

// NewAnnotated builds the token-level extractor.
func NewAnnotated(lex *lexicon.Lexicon, stops *stoplist.Manager, bounds Bounds) *Annotated {
	if lex == nil {
		lex = lexicon.Default()
	}
	if stops == nil {
		stops = stoplist.English()
	}
	var verbs []string
	for _, a := range lex.Actions() {
		verbs = append(verbs, a.Verb)
	}
	a := &Annotated{
		regex:     NewRegex(lex, bounds),
		lex:       lex,
		stops:     stops,
		primary:   nlp.NewPhraseMatcher(lex.PrimaryMethods()),
		secondary: nlp.NewPhraseMatcher(lex.SecondaryMethods()),
		tools:     nlp.NewLemmaMatcher(lex.Tools()),
		actions:   nlp.NewLemmaMatcher(verbs),
		heat:      nlp.NewPhraseMatcher(heatPhrases),
		verbForms: make(map[string]string),
	}
	for _, m := range append(lex.PrimaryMethods(), lex.SecondaryMethods()...) {
		if keys := nlp.PhraseKeys(m); len(keys) == 1 {
			lemma := nlp.Lemma(keys[0])
			if _, dup := a.verbForms[lemma]; !dup {
				a.verbForms[lemma] = m
			}
		}
	}
	return a
}

// Time scans tokens for a numeric range, a single duration and an
// "until" phrase built from adjectives, verbs and nouns.
func (a *Annotated) Time(doc *nlp.Doc) recipe.Time {
	if !doc.Annotated() {
		return a.regex.Time(doc)
	}
	toks := doc.Tokens
	unitAt := func(i int) (recipe.Unit, bool) {
		if i >= len(toks) {
			return "", false
		}
		return recipe.ParseUnit(toks[i].Lower)
	}
	for i := range toks {
		if lo, hi, next, ok := numericRange(doc, i); ok {
			if u, ok := unitAt(next); ok {
				if t, ok := rangeTime(lo, hi, u); ok {
					return t
				}
			}
		}
	}
	for _, prefixed := range []bool{true, false} {
		for i := range toks {
			if prefixed && !isDurationPrefix(toks[i].Lower) {
				continue
			}
			at := i
			if prefixed {
				at = i + 1
			}
			q, next, ok := quantityAt(doc, at)
			if !ok {
				continue
			}
			if u, ok := unitAt(next); ok {
				if t, ok := exactTime(q, u); ok {
					return t
				}
			}
		}
	}
	for i, t := range toks {
		if t.Lower != "until" {
			continue
		}
		end := i + 1
		for end < len(toks) && end-i <= maxUntilWords && isStateWord(toks[end].POS) {
			end++
		}
		if end > i+1 {
			return recipe.Qualitative(doc.Span(i, end))
		}
	}
	return a.regex.Time(doc)
}

func isDurationPrefix(w string) bool {
	switch w {
	case "for", "about", "approximately", "around":
		return true
	}
	return false
}

func isStateWord(p nlp.POS) bool {
	return p == nlp.Adj || p == nlp.Verb || p == nlp.Noun
}

// numericRange reads "N - M", "N to M", "N or M" or a single "N-M" token
// starting at i. It returns the index after the range.
func numericRange(doc *nlp.Doc, i int) (lo, hi float64, next int, ok bool) {
	toks := doc.Tokens
	if lo, hi, ok := splitRange(toks[i].Text); ok {
		return lo, hi, i + 1, true
	}
	lo, at, ok := quantityAt(doc, i)
	if !ok || at+1 >= len(toks) {
		return 0, 0, 0, false
	}
	switch toks[at].Lower {
	case "-", "to", "or":
	default:
		return 0, 0, 0, false
	}
	hi, next, ok = quantityAt(doc, at+1)
	return lo, hi, next, ok
}

func splitRange(s string) (float64, float64, bool) {
	s = nlp.Fold(s)
	idx := strings.IndexByte(s, '-')
	if idx <= 0 || idx == len(s)-1 {
		return 0, 0, false
	}
	lo, ok1 := nlp.Quantity(s[:idx])
	hi, ok2 := nlp.Quantity(s[idx+1:])
	return lo, hi, ok1 && ok2
}

// Temperature reads "N [degrees|°] F/C" and "preheat ... N" from tokens,
// then a heat level phrase.
func (a *Annotated) Temperature(doc *nlp.Doc) recipe.Temperature {
	if !doc.Annotated() {
		return a.regex.Temperature(doc)
	}
	toks := doc.Tokens
	for i := range toks {
		n, ok := doc.Number(i)
		if !ok {
			continue
		}
		j := i + 1
		degree := false
		if j < len(toks) && isDegree(toks[j].Lower) {
			degree = true
			j++
		}
		unit, hasUnit := "", false
		if j < len(toks) {
			unit, hasUnit = unitToken(toks[j].Lower)
		}
		if !degree && !hasUnit {
			continue
		}
		if !degree && unit == "C" && n < minBareCelsius {
			continue
		}
		if a.regex.bounds.Accept(n, tempUnit(unit)) {
			return recipe.Temperature{Oven: fmt.Sprintf("%d°%s", n, tempUnit(unit))}
		}
	}
	preheat := nlp.Lemma("preheat")
	for i, t := range toks {
		if t.Lemma != preheat {
			continue
		}
		for j := i + 1; j < len(toks) && j <= i+5; j++ {
			if toks[j].POS == nlp.Punct {
				break
			}
			if n, ok := doc.Number(j); ok {
				unit := ""
				for k := j + 1; k < len(toks) && k <= j+2; k++ {
					if u, ok := unitToken(toks[k].Lower); ok {
						unit = u
						break
					}
				}
				if a.regex.bounds.Accept(n, tempUnit(unit)) {
					return recipe.Temperature{Oven: fmt.Sprintf("%d°%s", n, tempUnit(unit))}
				}
				break
			}
		}
	}
	if ms := a.heat.Longest(doc.Keys().Keys); len(ms) > 0 {
		return recipe.Temperature{Heat: ms[0].Phrase}
	}
	return a.regex.Temperature(doc)
}

func isDegree(w string) bool {
	return w == "°" || w == "degree" || w == "degrees"
}

// unitToken recognises F, C, °F, °C and the spelled-out scales.
func unitToken(w string) (string, bool) {
	switch strings.TrimPrefix(w, "°") {
	case "f", "fahrenheit":
		return "F", true
	case "c", "celsius":
		return "C", true
	}
	return "", false
}

// Tools matches tool names by lemma (so plurals match) and infers tools
// from action verb lemmas. Matches found by the regex extractor are merged
// in, so the result is never narrower than the regex strategy's.
func (a *Annotated) Tools(doc *nlp.Doc) []string {
	if !doc.Annotated() {
		return a.regex.Tools(doc)
	}
	lemmas := doc.LemmaKeys().Keys
	tools := unshadowed(a.tools.FindAll(lemmas), a.methodCandidates(doc.Keys()))
	explicit := explicitTools(tools)

	text := nlp.Key(doc.Text)
	primary, secondary := a.regex.methodCandidates(text)
	regexTools := unshadowed(a.regex.toolMatches(text), append(primary, secondary...))
	for tool := range explicitTools(regexTools) {
		explicit[tool] = struct{}{}
	}

	found := make(map[string]struct{})
	for _, m := range a.actions.FindAll(lemmas) {
		if !shadowed(m, tools) {
			found[m.Phrase] = struct{}{}
		}
	}
	for _, v := range a.regex.actionVerbs(text, regexTools) {
		found[v] = struct{}{}
	}
	var verbs []string
	for _, act := range a.lex.Actions() {
		if _, ok := found[act.Verb]; ok {
			verbs = append(verbs, act.Verb)
		}
	}
	return a.regex.orderTools(explicit, verbs)
}

// methodCandidates returns every primary and secondary phrase match in
// key units.
func (a *Annotated) methodCandidates(ks nlp.KeySeq) []nlp.Match {
	return append(a.primary.FindAll(ks.Keys), a.secondary.FindAll(ks.Keys)...)
}

// Methods phrase-matches the lexicon on lowercase keys, then maps any
// remaining verb whose lemma is a single-word method. Tool names hide the
// shorter method words inside them.
func (a *Annotated) Methods(doc *nlp.Doc) Methods {
	if !doc.Annotated() {
		return a.regex.Methods(doc)
	}
	ks := doc.Keys()
	tools := a.tools.FindAll(doc.LemmaKeys().Keys)
	sel := newMethodSelector(a.lex)
	sel.add(a.surface(doc, ks, unshadowed(a.primary.FindAll(ks.Keys), tools)), true)
	sel.add(a.surface(doc, ks, unshadowed(a.secondary.FindAll(ks.Keys), tools)), false)

	covered := make(map[int]struct{})
	for _, m := range append(append([]nlp.Match(nil), sel.primary...), sel.secondary...) {
		for i := m.Start; i < m.End; i++ {
			covered[ks.Token[i]] = struct{}{}
		}
	}
	// a verb is a single key, so only multi-word tool names shadow it
	for _, m := range tools {
		if m.Len() < 2 {
			continue
		}
		for i := m.Start; i < m.End; i++ {
			covered[ks.Token[i]] = struct{}{}
		}
	}
	out := sel.result()
	for i, t := range doc.Tokens {
		if t.POS != nlp.Verb {
			continue
		}
		if _, ok := covered[i]; ok {
			continue
		}
		method, ok := a.verbForms[t.Lemma]
		if !ok || a.lex.IsExcluded(t.Lower) {
			continue
		}
		primary := a.lex.IsPrimary(method)
		if sel.accept(method, primary) {
			if primary {
				out.Primary = append(out.Primary, method)
			} else {
				out.Secondary = append(out.Secondary, method)
			}
		}
	}
	return out
}

// surface rewrites key-range matches to carry the folded source text.
func (a *Annotated) surface(doc *nlp.Doc, ks nlp.KeySeq, ms []nlp.Match) []nlp.Match {
	for i, m := range ms {
		ms[i].Phrase = nlp.Key(doc.Span(ks.Token[m.Start], ks.Token[m.End-1]+1))
	}
	return ms
}

// Ingredients matches by the regex string rules and by lemmas shared
// between the ingredient name and the step's noun phrases, so "the egg"
// finds "eggs" while a verb such as "brown" finds nothing.
func (a *Annotated) Ingredients(doc *nlp.Doc, all []recipe.Ingredient) []recipe.Ingredient {
	if !doc.Annotated() {
		return a.regex.Ingredients(doc, all)
	}
	chunkLemmas := make(map[string]struct{})
	for _, c := range doc.NounChunks() {
		for _, t := range doc.Tokens[c.Start:c.End] {
			if t.IsStop || t.POS == nlp.Det {
				continue
			}
			chunkLemmas[t.Lemma] = struct{}{}
		}
	}
	text := nlp.Key(doc.Text)
	var out []recipe.Ingredient
	for _, ing := range all {
		if mentions(text, ing.Name) || a.sharesLemma(ing.Name, chunkLemmas) {
			out = append(out, ing)
		}
	}
	return out
}

func (a *Annotated) sharesLemma(name string, stepLemmas map[string]struct{}) bool {
	for _, w := range strings.FieldsFunc(nlp.Key(name), func(r rune) bool {
		return r == ' ' || r == ',' || r == '(' || r == ')'
	}) {
		if a.stops.IsStop(w) {
			continue
		}
		if _, isNum := nlp.NumberValue(w); isNum {
			continue
		}
		if _, ok := stepLemmas[nlp.Lemma(w)]; ok {
			return true
		}
	}
	return false
}
