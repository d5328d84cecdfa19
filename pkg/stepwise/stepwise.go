// Package stepwise turns recipe directions into structured atomic steps.
package stepwise

import (
	"context"
	"crypto/rand"
	"fmt"
	"strings"
	"sync"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"

	"github.com/cognicore/stepwise/pkg/stepwise/config"
	"github.com/cognicore/stepwise/pkg/stepwise/extract"
	"github.com/cognicore/stepwise/pkg/stepwise/lexicon"
	"github.com/cognicore/stepwise/pkg/stepwise/nlp"
	"github.com/cognicore/stepwise/pkg/stepwise/pipeline"
	"github.com/cognicore/stepwise/pkg/stepwise/recipe"
	"github.com/cognicore/stepwise/pkg/stepwise/stoplist"
)

// Parser is the main step-parsing facade
type Parser struct {
	pipeline    *pipeline.Pipeline
	lex         *lexicon.Lexicon
	strategy    string
	concurrency int
	log         zerolog.Logger

	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

// Options configures a Parser. Zero values select the built-in lexicon
// and stoplist, the advanced strategy with the prose annotator, atomic
// splitting, sanitizing and the default temperature bounds.
type Options struct {
	Lexicon         *lexicon.Lexicon
	Stoplist        *stoplist.Manager
	Strategy        string        // config.StrategyAdvanced or config.StrategyRegex
	Annotator       nlp.Annotator // advanced strategy only
	DisableSplit    bool
	DisableSanitize bool
	Bounds          *extract.Bounds
	Concurrency     int
	Logger          *zerolog.Logger
}

// New creates a Parser from opts.
func New(opts Options) (*Parser, error) {
	cfg := config.Default()
	if opts.Strategy != "" {
		cfg.Strategy = opts.Strategy
	}
	if opts.Annotator != nil {
		cfg.Annotator = opts.Annotator.Name()
		if cfg.Annotator != config.AnnotatorProse {
			cfg.Annotator = config.AnnotatorRules
		}
	}
	cfg.SplitAtomicSteps = !opts.DisableSplit
	cfg.Sanitize = !opts.DisableSanitize
	if opts.Bounds != nil {
		cfg.Temperature = config.Temperature{
			EnforceBounds: opts.Bounds.Enforce,
			MinF:          opts.Bounds.MinF,
			MaxF:          opts.Bounds.MaxF,
		}
	}
	if opts.Concurrency > 0 {
		cfg.Concurrency = opts.Concurrency
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	lex, stops := opts.Lexicon, opts.Stoplist
	if lex == nil {
		lex = lexicon.Default()
	}
	if stops == nil {
		stops = stoplist.English()
	}
	comp, err := config.Build(cfg, lex, stops, opts.Annotator)
	if err != nil {
		return nil, err
	}
	log := zerolog.Nop()
	if opts.Logger != nil {
		log = *opts.Logger
	}
	return newParser(cfg, comp, log), nil
}

// NewFromConfig creates a Parser from loaded settings, reading any
// lexicon or stoplist override from fs.
func NewFromConfig(cfg config.Config, fs afero.Fs, log zerolog.Logger) (*Parser, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	loader := config.Loader{Fs: fs, Config: cfg}
	comp, err := loader.Load()
	if err != nil {
		return nil, err
	}
	return newParser(cfg, comp, log), nil
}

func newParser(cfg config.Config, comp *config.Components, log zerolog.Logger) *Parser {
	p := &Parser{
		lex:         comp.Lexicon,
		strategy:    cfg.Strategy,
		concurrency: cfg.Concurrency,
		log:         log,
		entropy:     ulid.Monotonic(rand.Reader, 0),
	}
	p.pipeline = pipeline.NewPipeline(pipeline.Options{
		Annotator:  comp.Annotator,
		Segmenter:  comp.Segmenter,
		Extractor:  comp.Extractor,
		Classifier: comp.Classifier,
		Split:      cfg.SplitAtomicSteps,
		Sanitize:   cfg.Sanitize,
		Strategy:   cfg.Strategy,
		Logger:     &p.log,
	})
	return p
}

// Lexicon returns the vocabulary the parser matches against.
func (p *Parser) Lexicon() *lexicon.Lexicon {
	return p.lex
}

// Strategy reports the extraction strategy in use.
func (p *Parser) Strategy() string {
	return p.strategy
}

// Parse turns directions into numbered atomic steps.
func (p *Parser) Parse(directions []string, ingredients []recipe.Ingredient) ([]recipe.Step, error) {
	return p.pipeline.Parse(directions, ingredients)
}

// ParseRecipe parses one scraped recipe and assigns it an ID. A missing
// title is derived from the URL.
func (p *Parser) ParseRecipe(in recipe.Input) (*recipe.Recipe, error) {
	steps, err := p.Parse(in.Directions, in.Ingredients)
	if err != nil {
		return nil, err
	}
	title := strings.TrimSpace(in.Title)
	if title == "" {
		title = recipe.TitleFromURL(in.URL)
	}
	r := &recipe.Recipe{
		ID:          p.newID(),
		Title:       title,
		URL:         in.URL,
		Ingredients: in.Ingredients,
		Directions:  in.Directions,
		Steps:       steps,
	}
	if r.Ingredients == nil {
		r.Ingredients = []recipe.Ingredient{}
	}
	p.log.Debug().Str("id", r.ID).Str("title", r.Title).Int("steps", len(steps)).Msg("parsed recipe")
	return r, nil
}

// ParseAll parses independent recipes concurrently. Results keep input
// order. The first failure or a cancelled ctx stops the batch.
func (p *Parser) ParseAll(ctx context.Context, inputs []recipe.Input) ([]*recipe.Recipe, error) {
	out := make([]*recipe.Recipe, len(inputs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)
	for i, in := range inputs {
		i, in := i, in
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			r, err := p.ParseRecipe(in)
			if err != nil {
				return fmt.Errorf("recipe %d: %w", i, err)
			}
			out[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// ulid.MonotonicEntropy is not safe for concurrent use.
func (p *Parser) newID() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return ulid.MustNew(ulid.Now(), p.entropy).String()
}
