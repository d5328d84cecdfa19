// Package pipeline turns raw directions into numbered atomic steps:
// sanitize → segment → annotate → extract → classify.
package pipeline

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/cognicore/stepwise/pkg/stepwise/classify"
	"github.com/cognicore/stepwise/pkg/stepwise/extract"
	"github.com/cognicore/stepwise/pkg/stepwise/lexicon"
	"github.com/cognicore/stepwise/pkg/stepwise/nlp"
	"github.com/cognicore/stepwise/pkg/stepwise/recipe"
	"github.com/cognicore/stepwise/pkg/stepwise/sanitize"
	"github.com/cognicore/stepwise/pkg/stepwise/segment"
)

// Context is the state carried from one atomic step to the next within a
// single Parse call. It is passed by value and returned updated.
type Context struct {
	OvenTemp string // most recent oven reading
}

// Pipeline orchestrates step parsing. A Pipeline holds no per-call state
// and may be shared by concurrent Parse calls.
type Pipeline struct {
	annotator  nlp.Annotator
	segmenter  segment.Segmenter
	extractor  extract.Extractor
	classifier *classify.Classifier
	split      bool
	sanitize   bool
	strategy   string
	log        zerolog.Logger
}

// Options configures a Pipeline.
type Options struct {
	Annotator  nlp.Annotator
	Segmenter  segment.Segmenter
	Extractor  extract.Extractor
	Classifier *classify.Classifier
	Split      bool
	Sanitize   bool
	Strategy   string // reported in debug logs
	Logger     *zerolog.Logger
}

// NewPipeline creates a pipeline. Missing components default to the regex
// strategy over the built-in lexicon.
func NewPipeline(opts Options) *Pipeline {
	p := &Pipeline{
		annotator:  opts.Annotator,
		segmenter:  opts.Segmenter,
		extractor:  opts.Extractor,
		classifier: opts.Classifier,
		split:      opts.Split,
		sanitize:   opts.Sanitize,
		strategy:   opts.Strategy,
		log:        zerolog.Nop(),
	}
	if p.annotator == nil {
		p.annotator = nlp.Raw{}
	}
	if p.segmenter == nil {
		p.segmenter = segment.NewRegex()
	}
	if p.extractor == nil {
		p.extractor = extract.NewRegex(lexicon.Default(), extract.DefaultBounds())
	}
	if p.classifier == nil {
		p.classifier = classify.New()
	}
	if opts.Logger != nil {
		p.log = *opts.Logger
	}
	return p
}

// Parse segments every direction and turns each atomic sentence into a
// Step. Steps are numbered from 1 across the whole recipe.
func (p *Pipeline) Parse(directions []string, ingredients []recipe.Ingredient) ([]recipe.Step, error) {
	if err := recipe.Validate(directions, ingredients); err != nil {
		return nil, err
	}

	var (
		steps []recipe.Step
		ctx   Context
	)
	for i, direction := range directions {
		sentences, err := p.sentences(direction)
		if err != nil {
			return nil, fmt.Errorf("pipeline: direction %d: %w", i, err)
		}
		p.log.Debug().Int("direction", i).Int("sentences", len(sentences)).Msg("segmented direction")

		for _, sentence := range sentences {
			var step recipe.Step
			step, ctx, err = p.Step(len(steps)+1, sentence, ingredients, ctx)
			if err != nil {
				return nil, fmt.Errorf("pipeline: direction %d: %w", i, err)
			}
			steps = append(steps, step)
		}
	}
	return steps, nil
}

func (p *Pipeline) sentences(direction string) ([]string, error) {
	text := strings.TrimSpace(direction)
	if p.sanitize {
		if clean := sanitize.Direction(direction); clean != "" {
			text = clean
		}
	}
	if !p.split {
		return []string{text}, nil
	}
	return p.segmenter.Segment(text)
}

// Step builds one numbered step from an atomic sentence. The context is
// consulted for a carried-forward oven temperature and returned with the
// latest reading.
func (p *Pipeline) Step(number int, sentence string, ingredients []recipe.Ingredient, ctx Context) (recipe.Step, Context, error) {
	doc, err := p.annotator.Annotate(sentence)
	if err != nil {
		return recipe.Step{}, ctx, fmt.Errorf("step %d: %w", number, err)
	}

	methods := p.extractor.Methods(doc)
	temp := p.extractor.Temperature(doc)
	class := p.classifier.Classify(doc)

	if temp.Oven != "" {
		ctx.OvenTemp = temp.Oven
	} else if ctx.OvenTemp != "" && usesOven(methods.Primary) {
		p.log.Debug().Int("step", number).Str("oven", ctx.OvenTemp).Msg("carrying oven temperature forward")
		temp = recipe.Temperature{Oven: ctx.OvenTemp}
	}

	step := recipe.Step{
		Number:      number,
		Description: sentence,
		Ingredients: nonNil(p.extractor.Ingredients(doc, ingredients)),
		Tools:       nonNil(p.extractor.Tools(doc)),
		Methods:     nonNil(append(append([]string(nil), methods.Primary...), methods.Secondary...)),
		Time:        p.extractor.Time(doc),
		Temperature: temp,
		Actionable:  class.Actionable,
		IsPrepared:  class.Prepared,
		InfoType:    class.Info,
	}
	p.log.Debug().
		Int("step", number).
		Str("strategy", p.strategy).
		Strs("methods", step.Methods).
		Strs("tools", step.Tools).
		Str("info_type", string(step.InfoType)).
		Msg("parsed step")
	return step, ctx, nil
}

// usesOven reports whether a baking or roasting method is present.
func usesOven(primary []string) bool {
	for _, m := range primary {
		switch lexicon.BaseMethod(m) {
		case "bak", "roast":
			return true
		}
	}
	return false
}

// nonNil keeps empty lists as [] rather than null in JSON output.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
