// Package classify decides whether a step is an instruction, a deferred
// preparation, or a piece of information (warning, advice, observation).
package classify

import (
	"regexp"

	"github.com/cognicore/stepwise/pkg/stepwise/nlp"
	"github.com/cognicore/stepwise/pkg/stepwise/recipe"
)

// inflections tolerated after a phrase ("avoids", "chilled", "reserving")
const inflections = `s|es|d|ed|ing`

var (
	warningPhrases     = []string{"be careful", "do not", "don't", "avoid", "make sure", "watch", "be sure", "ensure"}
	advicePhrases      = []string{"you can", "alternatively", "tip:", "note:", "optional", "if desired", "for best results"}
	observationPhrases = []string{"will be", "should be", "will look", "should look", "will become", "it will", "this will", "the mixture will"}
	prepPhrases        = []string{"set aside", "reserve", "let stand", "let sit", "let rest", "let cool", "refrigerate", "chill", "freeze"}

	stateVerbs = []string{"be", "look", "become"}
)

// Result is the classification of one step.
type Result struct {
	Actionable bool
	Prepared   bool
	Info       recipe.InfoType
}

// Classifier applies the rules in order: warning, advice, observation,
// then plain instruction with a deferred-use check.
type Classifier struct {
	warnings     []*regexp.Regexp
	advice       []*regexp.Regexp
	observations []*regexp.Regexp
	prep         []*regexp.Regexp
	stateLemmas  map[string]struct{}
}

// New compiles the phrase tables.
func New() *Classifier {
	c := &Classifier{
		warnings:     compile(warningPhrases),
		advice:       compile(advicePhrases),
		observations: compile(observationPhrases),
		prep:         compile(prepPhrases),
		stateLemmas:  make(map[string]struct{}),
	}
	for _, v := range stateVerbs {
		c.stateLemmas[nlp.Lemma(v)] = struct{}{}
	}
	return c
}

func compile(phrases []string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(phrases))
	for _, p := range phrases {
		out = append(out, nlp.WordRegexp(p, inflections))
	}
	return out
}

// Classify returns the first matching rule's verdict.
func (c *Classifier) Classify(doc *nlp.Doc) Result {
	text := nlp.Key(doc.Text)
	switch {
	case anyMatch(c.warnings, text):
		return Result{Actionable: true, Info: recipe.InfoWarning}
	case anyMatch(c.advice, text):
		return Result{Info: recipe.InfoAdvice}
	case c.modalState(doc) || anyMatch(c.observations, text):
		return Result{Info: recipe.InfoObservation}
	}
	return Result{Actionable: true, Prepared: anyMatch(c.prep, text)}
}

// modalState finds "will"/"should" followed by be, look or become, with
// adverbs and negation allowed in between ("will not be", "should really
// look").
func (c *Classifier) modalState(doc *nlp.Doc) bool {
	toks := doc.Tokens
	for i, t := range toks {
		if t.Tag != "MD" || (t.Lower != "will" && t.Lower != "should") {
			continue
		}
		for j := i + 1; j < len(toks); j++ {
			if toks[j].POS == nlp.Adv || toks[j].POS == nlp.Part {
				continue
			}
			if _, ok := c.stateLemmas[toks[j].Lemma]; ok {
				return true
			}
			break
		}
	}
	return false
}

func anyMatch(res []*regexp.Regexp, text string) bool {
	for _, re := range res {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}
