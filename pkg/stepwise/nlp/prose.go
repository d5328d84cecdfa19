package nlp

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jdkato/prose/v2"

	"github.com/cognicore/stepwise/pkg/stepwise/internalerr"
	"github.com/cognicore/stepwise/pkg/stepwise/stoplist"
)

// ProseAnnotator tags text with the prose averaged-perceptron tagger and
// its sentence segmenter.
type ProseAnnotator struct {
	stops *stoplist.Manager
}

// NewProseAnnotator loads the tagging model by annotating a probe
// sentence. A model that cannot be loaded is reported as
// internalerr.ErrBackendUnavailable.
func NewProseAnnotator(stops *stoplist.Manager) (a *ProseAnnotator, err error) {
	if stops == nil {
		stops = stoplist.English()
	}
	a = &ProseAnnotator{stops: stops}
	defer func() {
		if r := recover(); r != nil {
			a, err = nil, fmt.Errorf("nlp: load prose model: %w: %v", internalerr.ErrBackendUnavailable, r)
		}
	}()
	doc, err := a.Annotate("Preheat the oven.")
	if err == nil && !doc.Annotated() {
		err = errors.New("probe produced no tokens")
	}
	if err != nil {
		return nil, fmt.Errorf("nlp: load prose model: %w: %v", internalerr.ErrBackendUnavailable, err)
	}
	return a, nil
}

// Name identifies the annotator in logs.
func (a *ProseAnnotator) Name() string { return "prose" }

// Annotate tags text. Token offsets are recovered by locating each token
// in the source text in order.
func (a *ProseAnnotator) Annotate(text string) (*Doc, error) {
	doc := &Doc{Text: text}
	if strings.TrimSpace(text) == "" {
		return doc, nil
	}
	pd, err := prose.NewDocument(text, prose.WithExtraction(false))
	if err != nil {
		return nil, fmt.Errorf("nlp: annotate: %w", err)
	}

	cursor := 0
	for _, pt := range pd.Tokens() {
		start, end := cursor, cursor
		if idx := strings.Index(text[cursor:], pt.Text); idx >= 0 {
			start = cursor + idx
			end = start + len(pt.Text)
			cursor = end
		}
		lower := Key(pt.Text)
		pos := pennToPOS(pt.Tag, lower)
		doc.Tokens = append(doc.Tokens, Token{
			Text:   pt.Text,
			Lower:  lower,
			Lemma:  Lemma(lower),
			POS:    pos,
			Tag:    pt.Tag,
			IsStop: a.stops.IsStop(lower),
			Start:  start,
			End:    end,
		})
	}

	cursor = 0
	next := 0
	for _, ps := range pd.Sentences() {
		idx := strings.Index(text[cursor:], ps.Text)
		if idx < 0 {
			continue
		}
		sStart := cursor + idx
		sEnd := sStart + len(ps.Text)
		cursor = sEnd
		first := next
		for next < len(doc.Tokens) && doc.Tokens[next].End <= sEnd {
			next++
		}
		if next > first {
			doc.Sentences = append(doc.Sentences, Sentence{Text: text[sStart:sEnd], Start: first, End: next})
		}
	}
	if next < len(doc.Tokens) {
		doc.Sentences = append(doc.Sentences, Sentence{Text: doc.Span(next, len(doc.Tokens)), Start: next, End: len(doc.Tokens)})
	}
	return doc, nil
}

// pennToPOS maps a Penn Treebank tag onto the universal set.
func pennToPOS(tag, lower string) POS {
	switch {
	case tag == "MD":
		return Aux
	case strings.HasPrefix(tag, "VB"):
		if c, ok := closedClass[lower]; ok && c.pos == Aux {
			return Aux
		}
		return Verb
	case tag == "NNP" || tag == "NNPS":
		return ProperNoun
	case strings.HasPrefix(tag, "NN"):
		return Noun
	case strings.HasPrefix(tag, "JJ"):
		return Adj
	case strings.HasPrefix(tag, "RB") || tag == "WRB":
		if lower == "not" || lower == "n't" {
			return Part
		}
		return Adv
	case tag == "CD":
		return Num
	case tag == "DT" || tag == "PDT" || tag == "WDT" || tag == "PRP$" || tag == "WP$":
		return Det
	case tag == "PRP" || tag == "WP" || tag == "EX":
		return Pron
	case tag == "CC":
		return CConj
	case tag == "IN":
		if c, ok := closedClass[lower]; ok && c.pos == SConj {
			return SConj
		}
		return Adp
	case tag == "TO" || tag == "RP" || tag == "POS":
		return Part
	case tag == "SYM" || tag == "$" || tag == "#":
		return Sym
	case tag == "UH" || tag == "FW" || tag == "LS":
		return Other
	}
	return Punct
}
