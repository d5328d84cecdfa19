package nlp

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/cognicore/stepwise/pkg/stepwise/lexicon"
	"github.com/cognicore/stepwise/pkg/stepwise/stoplist"
)

type wordClass struct {
	pos POS
	tag string
}

var closedClass = map[string]wordClass{}

func init() {
	add := func(pos POS, tag string, words ...string) {
		for _, w := range words {
			closedClass[w] = wordClass{pos, tag}
		}
	}
	add(Det, "DT", "a", "an", "the", "this", "that", "these", "those", "each", "every",
		"any", "some", "all", "both", "another", "no", "your", "its", "their", "my", "our", "his", "her")
	add(Pron, "PRP", "it", "they", "them", "you", "we", "he", "she", "i", "itself", "themselves", "yourself", "everything")
	add(CConj, "CC", "and", "or", "but", "nor", "plus")
	add(SConj, "IN", "while", "when", "once", "if", "as", "because", "before", "after", "whilst", "unless")
	add(Adp, "IN", "in", "on", "at", "into", "onto", "over", "under", "with", "without", "for", "from",
		"of", "by", "until", "till", "through", "between", "across", "inside", "off", "out", "up",
		"down", "around", "along", "per", "during", "within", "towards", "toward", "against", "beneath", "upon")
	add(Aux, "MD", "will", "would", "should", "can", "could", "may", "might", "must", "shall")
	add(Aux, "VBZ", "is", "are", "was", "were", "be", "been", "being", "am", "has", "have", "had", "does", "do", "did")
	add(Part, "RB", "not", "n't")
	add(Part, "TO", "to")
	add(Adv, "RB", "then", "meanwhile", "also", "just", "about", "approximately", "roughly", "again", "well",
		"very", "too", "more", "less", "still", "now", "later", "already", "almost", "halfway", "together",
		"aside", "away", "back", "often", "here", "there", "so", "even", "only", "first", "next", "finally")
}

var adjectives = toSet(
	"golden", "brown", "tender", "soft", "translucent", "crisp", "crispy", "smooth", "thick", "thin",
	"fluffy", "bubbly", "fragrant", "aromatic", "opaque", "firm", "done", "hot", "cold", "warm", "cool",
	"large", "small", "medium", "big", "fresh", "dry", "wet", "raw", "light", "dark", "creamy", "glossy",
	"pale", "pink", "clear", "shiny", "stiff", "foamy", "frothy", "heavy", "fine", "coarse", "remaining",
	"additional", "whole", "low", "high", "medium-high", "medium-low", "sticky", "even", "ready", "deep",
	"shallow", "flat", "clean", "lukewarm", "tepid", "moist", "juicy", "bright", "green", "red", "white",
	"black", "yellow", "sweet", "sour", "salty", "spicy", "bitter", "rich", "lean", "ripe", "extra",
	"same", "other", "new", "separate", "entire", "loose", "tight", "wide", "long", "short", "hard",
)

var extraVerbs = []string{
	"add", "let", "place", "put", "remove", "transfer", "pour", "serve", "cover", "uncover", "turn",
	"bring", "set", "return", "repeat", "allow", "spread", "sprinkle", "arrange", "top", "combine",
	"taste", "adjust", "check", "use", "make", "keep", "continue", "drain", "rinse", "cut", "pat",
	"discard", "reduce", "increase", "lower", "layer", "wrap", "store", "refrigerate", "chill",
	"freeze", "thicken", "rest", "stand", "sit", "become", "look", "melt", "begin", "start", "leave",
	"fill", "press", "shape", "roll", "flip", "dip", "coat", "dust", "pack", "insert", "divide",
	"garnish", "apply", "heat", "preheat", "wash", "dry", "peel", "trim", "soak", "scoop", "squeeze",
	"tear", "toss", "shake", "stir", "mix", "whisk", "beat", "fold", "cook", "bake", "fry", "boil",
	"brown", "cool",
}

// verbs that take a bare verb complement ("let cool", "help set")
var causatives = toSet("let", "help", "make")

func toSet(words ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}

// RuleAnnotator tags text with a closed-class table, the cooking verbs of
// a lexicon and a handful of suffix rules. It needs no model and is fully
// deterministic.
type RuleAnnotator struct {
	stops *stoplist.Manager
	verbs map[string]struct{} // by lemma
}

// NewRuleAnnotator builds a rule tagger. Every single-word method and
// action verb of lex is known as a verb.
func NewRuleAnnotator(lex *lexicon.Lexicon, stops *stoplist.Manager) *RuleAnnotator {
	if lex == nil {
		lex = lexicon.Default()
	}
	if stops == nil {
		stops = stoplist.English()
	}
	verbs := make(map[string]struct{})
	addVerb := func(phrase string) {
		if keys := PhraseKeys(phrase); len(keys) == 1 {
			if _, adj := adjectives[keys[0]]; !adj || keys[0] == "brown" || keys[0] == "dry" || keys[0] == "cool" {
				verbs[Lemma(keys[0])] = struct{}{}
			}
		}
	}
	for _, v := range extraVerbs {
		addVerb(v)
	}
	for _, m := range lex.PrimaryMethods() {
		addVerb(m)
	}
	for _, m := range lex.SecondaryMethods() {
		addVerb(m)
	}
	for _, a := range lex.Actions() {
		addVerb(a.Verb)
	}
	return &RuleAnnotator{stops: stops, verbs: verbs}
}

// Name identifies the annotator in logs.
func (a *RuleAnnotator) Name() string { return "rules" }

// Annotate tokenizes, tags and sentence-splits text.
func (a *RuleAnnotator) Annotate(text string) (*Doc, error) {
	doc := &Doc{Text: text}
	for _, sp := range tokenize(text) {
		surface := text[sp.start:sp.end]
		lower := Key(surface)
		doc.Tokens = append(doc.Tokens, Token{
			Text:   surface,
			Lower:  lower,
			Lemma:  Lemma(lower),
			IsStop: a.stops.IsStop(lower),
			Start:  sp.start,
			End:    sp.end,
		})
	}
	for i := range doc.Tokens {
		doc.Tokens[i].POS, doc.Tokens[i].Tag = a.tag(doc.Tokens, i)
	}
	doc.Sentences = splitSentences(doc)
	return doc, nil
}

func (a *RuleAnnotator) tag(toks []Token, i int) (POS, string) {
	t := toks[i]
	first, _ := utf8.DecodeRuneInString(t.Text)
	if !unicode.IsLetter(first) && !unicode.IsDigit(first) {
		if strings.ContainsRune("°%$#+=&", first) {
			return Sym, "SYM"
		}
		return Punct, t.Text
	}
	if isNumeric(t.Text) {
		return Num, "CD"
	}
	if _, ok := numberWords[t.Lower]; ok {
		return Num, "CD"
	}
	if c, ok := closedClass[t.Lower]; ok {
		return c.pos, c.tag
	}

	var prev *Token
	if i > 0 {
		prev = &toks[i-1]
	}
	_, isVerb := a.verbs[t.Lemma]
	_, isAdj := adjectives[t.Lower]
	switch {
	case isVerb && isAdj:
		if verbContext(prev) {
			return Verb, "VB"
		}
		return Adj, "JJ"
	case isVerb:
		if nounContext(prev) {
			return Noun, nounTag(t.Lower)
		}
		if strings.HasSuffix(t.Lower, "ed") {
			return Verb, "VBN"
		}
		if strings.HasSuffix(t.Lower, "ing") {
			return Verb, "VBG"
		}
		return Verb, "VB"
	case isAdj:
		return Adj, "JJ"
	}

	n := len(t.Lower)
	switch {
	case n > 4 && strings.HasSuffix(t.Lower, "ly"):
		return Adv, "RB"
	case n > 5 && strings.HasSuffix(t.Lower, "ing"):
		if nounContext(prev) {
			return Noun, "NN"
		}
		return Verb, "VBG"
	case n > 4 && strings.HasSuffix(t.Lower, "ed"):
		if prev != nil && prev.POS == Det {
			return Adj, "JJ"
		}
		return Verb, "VBN"
	}
	for _, suf := range []string{"ous", "ful", "ible", "able", "ive"} {
		if n > len(suf)+2 && strings.HasSuffix(t.Lower, suf) {
			return Adj, "JJ"
		}
	}
	return Noun, nounTag(t.Lower)
}

func nounTag(lower string) string {
	if strings.HasSuffix(lower, "s") && !strings.HasSuffix(lower, "ss") {
		return "NNS"
	}
	return "NN"
}

// verbContext reports positions where an imperative verb is expected.
func verbContext(prev *Token) bool {
	if prev == nil {
		return true
	}
	switch prev.POS {
	case Punct, CConj, Pron, Aux, Adv:
		return true
	case Part:
		return prev.Tag == "TO"
	case Verb:
		_, ok := causatives[prev.Lower]
		return ok
	}
	return false
}

// nounContext reports positions where a verb-looking word is a noun.
func nounContext(prev *Token) bool {
	if prev == nil {
		return false
	}
	switch prev.POS {
	case Det, Adj, Num, Adp:
		return true
	case Verb:
		_, ok := causatives[prev.Lower]
		return !ok
	}
	return false
}

// splitSentences breaks after . ! or ? when the next token is capitalised.
func splitSentences(doc *Doc) []Sentence {
	var sents []Sentence
	start := 0
	for i, t := range doc.Tokens {
		if t.POS != Punct || !strings.ContainsAny(t.Text, ".!?") {
			continue
		}
		if i+1 < len(doc.Tokens) {
			next, _ := utf8.DecodeRuneInString(doc.Tokens[i+1].Text)
			if !unicode.IsUpper(next) {
				continue
			}
		}
		sents = append(sents, Sentence{Text: doc.Span(start, i+1), Start: start, End: i + 1})
		start = i + 1
	}
	if start < len(doc.Tokens) {
		sents = append(sents, Sentence{Text: doc.Span(start, len(doc.Tokens)), Start: start, End: len(doc.Tokens)})
	}
	return sents
}
