// Package segment splits one raw direction into atomic steps.
package segment

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/cognicore/stepwise/pkg/stepwise/nlp"
)

// Segmenter splits a direction into atomic step sentences. Implementations
// always return at least one non-empty fragment for non-blank input.
type Segmenter interface {
	Segment(direction string) ([]string, error)
}

var (
	sentenceBreak = regexp.MustCompile(`\.\s+\p{Lu}`)

	// conjunction splitters, applied in order after sentence splitting
	splitters = []*regexp.Regexp{
		regexp.MustCompile(`;\s*`),
		regexp.MustCompile(`(?i),\s+then\s+`),
		regexp.MustCompile(`(?i),\s+and then\s+`),
		regexp.MustCompile(`(?i)\s+meanwhile\s+`),
		regexp.MustCompile(`(?i)\s+while\s+`),
	}

	leadingConjunction = regexp.MustCompile(`(?i)^(then|and|meanwhile|while)\s+`)
	bareConjunction    = regexp.MustCompile(`(?i)^(then|and|and then|meanwhile|while)[.,;]?$`)
)

// Regex is the cascade segmenter: each pass feeds its fragments to the
// next one.
type Regex struct{}

// NewRegex returns the cascade segmenter.
func NewRegex() Regex { return Regex{} }

// Segment never fails.
func (Regex) Segment(direction string) ([]string, error) {
	return finish(direction, cascade(splitSentences(direction))), nil
}

// Sentence segments with an annotator's sentence boundaries, then applies
// the same conjunction splitters as Regex.
type Sentence struct {
	annotator nlp.Annotator
}

// NewSentence returns a segmenter backed by annotator.
func NewSentence(annotator nlp.Annotator) *Sentence {
	return &Sentence{annotator: annotator}
}

// Segment splits direction into sentences with the annotator.
func (s *Sentence) Segment(direction string) ([]string, error) {
	doc, err := s.annotator.Annotate(direction)
	if err != nil {
		return nil, fmt.Errorf("segment: annotate direction: %w", err)
	}
	return finish(direction, cascade(doc.SentenceTexts())), nil
}

// splitSentences breaks after a period followed by whitespace and a
// capital letter. The period stays with the left fragment.
func splitSentences(text string) []string {
	var parts []string
	last := 0
	for _, loc := range sentenceBreak.FindAllStringIndex(text, -1) {
		parts = append(parts, text[last:loc[0]+1])
		_, size := utf8.DecodeLastRuneInString(text[:loc[1]])
		last = loc[1] - size
	}
	return append(parts, text[last:])
}

func cascade(steps []string) []string {
	for _, re := range splitters {
		var next []string
		for _, step := range steps {
			for _, part := range re.Split(step, -1) {
				if p := strings.TrimSpace(part); p != "" {
					next = append(next, p)
				}
			}
		}
		steps = next
	}
	return steps
}

// finish strips leading conjunctions, drops empty fragments and
// capitalises. An empty result falls back to the direction itself.
func finish(direction string, steps []string) []string {
	var out []string
	for _, step := range steps {
		step = strings.TrimSpace(step)
		for {
			stripped := leadingConjunction.ReplaceAllString(step, "")
			if stripped == step {
				break
			}
			step = strings.TrimSpace(stripped)
		}
		if step == "" || bareConjunction.MatchString(step) {
			continue
		}
		out = append(out, capitalize(step))
	}
	if len(out) == 0 {
		if d := strings.TrimSpace(direction); d != "" {
			return []string{d}
		}
		return []string{direction}
	}
	return out
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || unicode.IsUpper(r) {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
