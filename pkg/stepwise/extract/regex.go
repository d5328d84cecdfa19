package extract

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/cognicore/stepwise/pkg/stepwise/lexicon"
	"github.com/cognicore/stepwise/pkg/stepwise/nlp"
	"github.com/cognicore/stepwise/pkg/stepwise/recipe"
)

const timeUnits = `hours|hour|hrs|hr|h|minutes|minute|mins|min|m|seconds|second|secs|sec|s`

// timeQty is a mixed number, fraction or decimal; numeric captures are
// preceded by a non-digit so a denominator is never read alone.
const timeQty = `(\d+\s+\d+/\d+|\d+/\d+|\d+(?:\.\d+)?)`

var (
	timeRange    = regexp.MustCompile(`(?i)(?:^|[^\d/.,])` + timeQty + `\s*(?:to|or|-|–|—)\s*` + timeQty + `\s*(` + timeUnits + `)\b`)
	timePrefixed = regexp.MustCompile(`(?i)\b(?:for|about|approximately|around)\s+` + timeQty + `\s*(` + timeUnits + `)\b`)
	timeSingle   = regexp.MustCompile(`(?i)(?:^|[^\d/.,])` + timeQty + `\s*(` + timeUnits + `)\b`)
	timeUntil    = regexp.MustCompile(`(?i)\buntil\s+[^.,;:!?()]+`)

	tempDegrees = regexp.MustCompile(`(?i)(\d{1,4})\s*(?:degrees?|°|º)(?:\s*(fahrenheit|celsius|f|c)\b)?`)
	tempLetter  = regexp.MustCompile(`(?i)\b(\d{2,3})\s*(f|c)\b`)
	tempPreheat = regexp.MustCompile(`(?i)\bpreheat\w*\b[^.;\d]*?(\d{2,4})(?:\s*(?:degrees?|°|º))?(?:\s*(fahrenheit|celsius|f|c)\b)?`)
	heatLevel   = regexp.MustCompile(`(?i)\b(medium-low|medium-high|low|medium|high)\s+heat\b`)
)

// words that end a qualitative "until" phrase
var untilStops = map[string]struct{}{
	"about": {}, "approximately": {}, "around": {}, "for": {}, "then": {}, "before": {},
	"over": {}, "on": {}, "in": {}, "at": {}, "with": {},
}

const maxUntilWords = 6

// actionSuffix admits verb inflections ("chops", "diced", "stirred")
// but not derived nouns such as "mixture".
const actionSuffix = `e?s|e?d|ing|[bdglmnprt](?:ed|ing)`

type phrasePattern struct {
	phrase string
	re     *regexp.Regexp
}

func compile(phrases []string, suffix string) []phrasePattern {
	out := make([]phrasePattern, 0, len(phrases))
	for _, p := range phrases {
		if re := nlp.WordRegexp(p, suffix); re != nil {
			out = append(out, phrasePattern{phrase: p, re: re})
		}
	}
	return out
}

// Regex extracts attributes from raw text with regular expressions and
// word-bounded lexicon patterns.
type Regex struct {
	lex       *lexicon.Lexicon
	bounds    Bounds
	tools     []phrasePattern
	actions   []phrasePattern
	primary   []phrasePattern
	secondary []phrasePattern
	toolOf    map[string]string // action verb -> tool
}

// NewRegex compiles the lexicon patterns.
func NewRegex(lex *lexicon.Lexicon, bounds Bounds) *Regex {
	if lex == nil {
		lex = lexicon.Default()
	}
	r := &Regex{
		lex:       lex,
		bounds:    bounds,
		tools:     compile(lex.Tools(), `e?s`),
		primary:   compile(lex.PrimaryMethods(), ""),
		secondary: compile(lex.SecondaryMethods(), ""),
		toolOf:    make(map[string]string),
	}
	var verbs []string
	for _, a := range lex.Actions() {
		verbs = append(verbs, a.Verb)
		r.toolOf[a.Verb] = a.Tool
	}
	r.actions = compile(verbs, actionSuffix)
	return r
}

// Time returns the first duration by precedence: range, prefixed single,
// bare single, then a qualitative "until" phrase.
func (r *Regex) Time(doc *nlp.Doc) recipe.Time {
	text := doc.Text
	if m := timeRange.FindStringSubmatch(text); m != nil {
		lo, _ := nlp.Quantity(m[1])
		hi, _ := nlp.Quantity(m[2])
		u, _ := recipe.ParseUnit(m[3])
		if t, ok := rangeTime(lo, hi, u); ok {
			return t
		}
	}
	for _, re := range []*regexp.Regexp{timePrefixed, timeSingle} {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			q, _ := nlp.Quantity(m[1])
			u, _ := recipe.ParseUnit(m[2])
			if t, ok := exactTime(q, u); ok {
				return t
			}
		}
	}
	if phrase := untilPhrase(timeUntil.FindString(text)); phrase != "" {
		return recipe.Qualitative(phrase)
	}
	return recipe.Time{}
}

// untilPhrase trims a raw "until ..." match at the first connective and
// caps its length.
func untilPhrase(raw string) string {
	words := strings.Fields(raw)
	if len(words) < 2 {
		return ""
	}
	end := 1
	for end < len(words) && end < maxUntilWords {
		if _, stop := untilStops[strings.ToLower(words[end])]; stop {
			break
		}
		end++
	}
	if end == 1 {
		return ""
	}
	return strings.Join(words[:end], " ")
}

// Temperature returns the first plausible numeric reading (degree
// expressions, letter suffixes, then preheat phrases) or else a heat level.
func (r *Regex) Temperature(doc *nlp.Doc) recipe.Temperature {
	text := doc.Text
	for _, re := range []*regexp.Regexp{tempDegrees, tempLetter, tempPreheat} {
		marked := re != tempLetter
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			if oven, ok := r.reading(m[1], m[2], marked); ok {
				return recipe.Temperature{Oven: oven}
			}
		}
	}
	if m := heatLevel.FindString(text); m != "" {
		return recipe.Temperature{Heat: strings.ToLower(m)}
	}
	return recipe.Temperature{}
}

// minBareCelsius is the lowest reading taken from a bare "C" with no
// degree marker; below it "12 c." is a count of cups.
const minBareCelsius = 40

// reading formats digits as an oven temperature. marked is false when no
// degree sign or preheat verb accompanies the number.
func (r *Regex) reading(digits, unitWord string, marked bool) (string, bool) {
	n, ok := nlp.NumberValue(digits)
	if !ok {
		return "", false
	}
	unit := tempUnit(unitWord)
	if !marked && unit == "C" && n < minBareCelsius {
		return "", false
	}
	if !r.bounds.Accept(n, unit) {
		return "", false
	}
	return fmt.Sprintf("%d°%s", n, unit), true
}

func tempUnit(word string) string {
	switch strings.ToLower(word) {
	case "c", "celsius":
		return "C"
	}
	return "F"
}

// Tools returns explicit tool mentions in lexicon order followed by tools
// implied by action verbs. A longer method phrase over a tool name
// ("pan-fry") hides the tool, and an action word inside a tool name
// ("baking sheet") implies nothing.
func (r *Regex) Tools(doc *nlp.Doc) []string {
	text := nlp.Key(doc.Text)
	primary, secondary := r.methodCandidates(text)
	found := unshadowed(r.toolMatches(text), append(primary, secondary...))
	return r.orderTools(explicitTools(found), r.actionVerbs(text, found))
}

// actionVerbs returns the action verbs mentioned outside the given tool
// names, in lexicon order.
func (r *Regex) actionVerbs(text string, tools []nlp.Match) []string {
	var verbs []string
	for _, p := range r.actions {
		for _, loc := range p.re.FindAllStringIndex(text, -1) {
			m := nlp.Match{Phrase: p.phrase, Start: loc[0], End: loc[1]}
			if !shadowed(m, tools) {
				verbs = append(verbs, p.phrase)
				break
			}
		}
	}
	return verbs
}

func (r *Regex) toolMatches(text string) []nlp.Match {
	var found []nlp.Match
	for _, p := range r.tools {
		for _, loc := range p.re.FindAllStringIndex(text, -1) {
			found = append(found, nlp.Match{Phrase: p.phrase, Start: loc[0], End: loc[1]})
		}
	}
	return found
}

func (r *Regex) methodCandidates(text string) (primary, secondary []nlp.Match) {
	return matchAll(r.primary, text), matchAll(r.secondary, text)
}

// shadowed reports whether a strictly longer match overlaps m. Equal
// lengths shadow nothing, so "whisk" stays both a tool and a method.
func shadowed(m nlp.Match, others []nlp.Match) bool {
	for _, o := range others {
		if o.Overlaps(m) && o.Len() > m.Len() {
			return true
		}
	}
	return false
}

func unshadowed(ms, others []nlp.Match) []nlp.Match {
	var out []nlp.Match
	for _, m := range ms {
		if !shadowed(m, others) {
			out = append(out, m)
		}
	}
	return out
}

// explicitTools drops tools whose every mention lies inside a longer tool
// mention ("pan" within "frying pan").
func explicitTools(found []nlp.Match) map[string]struct{} {
	keep := make(map[string]struct{})
	for _, m := range found {
		if !containedInOther(m, found) {
			keep[m.Phrase] = struct{}{}
		}
	}
	return keep
}

func containedInOther(m nlp.Match, all []nlp.Match) bool {
	for _, o := range all {
		if o.Phrase != m.Phrase && o.Start <= m.Start && m.End <= o.End && o.Len() > m.Len() {
			return true
		}
	}
	return false
}

func (r *Regex) orderTools(explicit map[string]struct{}, verbs []string) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, tool := range r.lex.Tools() {
		if _, ok := explicit[tool]; ok {
			out = append(out, tool)
			seen[tool] = struct{}{}
		}
	}
	for _, v := range verbs {
		tool := r.toolOf[v]
		if _, dup := seen[tool]; dup || tool == "" {
			continue
		}
		out = append(out, tool)
		seen[tool] = struct{}{}
	}
	return out
}

// Methods matches primary then secondary lexicon phrases, preferring the
// longest phrase on overlap and collapsing inflections. Words inside a
// longer tool name ("baking" in "baking sheet") are not methods.
func (r *Regex) Methods(doc *nlp.Doc) Methods {
	text := nlp.Key(doc.Text)
	tools := r.toolMatches(text)
	primary, secondary := r.methodCandidates(text)
	sel := newMethodSelector(r.lex)
	sel.add(unshadowed(primary, tools), true)
	sel.add(unshadowed(secondary, tools), false)
	return sel.result()
}

func matchAll(patterns []phrasePattern, text string) []nlp.Match {
	var out []nlp.Match
	for _, p := range patterns {
		for _, loc := range p.re.FindAllStringIndex(text, -1) {
			out = append(out, nlp.Match{Phrase: text[loc[0]:loc[1]], Start: loc[0], End: loc[1]})
		}
	}
	return out
}

// methodSelector accepts method candidates, skipping overlaps, excluded
// words and already-seen bases.
type methodSelector struct {
	lex       *lexicon.Lexicon
	spans     nlp.Spans
	primary   []nlp.Match
	secondary []nlp.Match
	seenP     map[string]struct{}
	seenS     map[string]struct{}
}

func newMethodSelector(lex *lexicon.Lexicon) *methodSelector {
	return &methodSelector{lex: lex, seenP: map[string]struct{}{}, seenS: map[string]struct{}{}}
}

// add resolves overlaps longest first, then walks the surviving
// candidates in text order so the earliest form of a method is reported.
func (s *methodSelector) add(cands []nlp.Match, primary bool) {
	var picked []nlp.Match
	for _, m := range nlp.ByPriority(cands) {
		if !s.spans.Overlaps(m) {
			s.spans.Take(m)
			picked = append(picked, m)
		}
	}
	sort.SliceStable(picked, func(i, j int) bool { return picked[i].Start < picked[j].Start })
	for _, m := range picked {
		if !s.accept(m.Phrase, primary) {
			continue
		}
		if primary {
			s.primary = append(s.primary, m)
		} else {
			s.secondary = append(s.secondary, m)
		}
	}
}

// accept records method if it is new; it reports whether it was taken.
func (s *methodSelector) accept(method string, primary bool) bool {
	base := lexicon.BaseMethod(method)
	if s.lex.IsExcluded(method) || s.lex.IsExcluded(base) {
		return false
	}
	if _, dup := s.seenP[base]; dup {
		return false
	}
	if primary {
		s.seenP[base] = struct{}{}
		return true
	}
	if _, dup := s.seenS[base]; dup {
		return false
	}
	s.seenS[base] = struct{}{}
	return true
}

func (s *methodSelector) result() Methods {
	return Methods{Primary: phrasesByPosition(s.primary), Secondary: phrasesByPosition(s.secondary)}
}

func phrasesByPosition(ms []nlp.Match) []string {
	sort.SliceStable(ms, func(i, j int) bool { return ms[i].Start < ms[j].Start })
	out := make([]string, len(ms))
	for i, m := range ms {
		out[i] = m.Phrase
	}
	return out
}

// Ingredients returns the ingredients whose name, or a significant word of
// a multi-word name, starts a word of the step text.
func (r *Regex) Ingredients(doc *nlp.Doc, all []recipe.Ingredient) []recipe.Ingredient {
	text := nlp.Key(doc.Text)
	var out []recipe.Ingredient
	for _, ing := range all {
		if mentions(text, ing.Name) {
			out = append(out, ing)
		}
	}
	return out
}

// mentions applies the string rules: the name at a word start (which also
// covers "the <name>" and "<name>s"), or any constituent word longer than
// three characters.
func mentions(text, name string) bool {
	name = strings.Join(strings.Fields(nlp.Key(name)), " ")
	if name == "" {
		return false
	}
	if wordStart(text, name) {
		return true
	}
	parts := strings.Fields(name)
	if len(parts) < 2 {
		return false
	}
	for _, p := range parts {
		if len(p) > 3 && wordStart(text, p) {
			return true
		}
	}
	return false
}

func wordStart(text, sub string) bool {
	for i := 0; ; {
		idx := strings.Index(text[i:], sub)
		if idx < 0 {
			return false
		}
		at := i + idx
		if at == 0 || !isWordChar(text[at-1]) {
			return true
		}
		i = at + 1
	}
}

func isWordChar(c byte) bool {
	return c == '_' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= 0x80
}

// PrimaryMethod returns the first primary method of text, if any.
func PrimaryMethod(e Extractor, doc *nlp.Doc) (string, bool) {
	m := e.Methods(doc)
	if len(m.Primary) == 0 {
		return "", false
	}
	return m.Primary[0], true
}
