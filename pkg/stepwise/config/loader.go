package config

import (
	"fmt"

	"github.com/spf13/afero"

	"github.com/cognicore/stepwise/pkg/stepwise/classify"
	"github.com/cognicore/stepwise/pkg/stepwise/extract"
	"github.com/cognicore/stepwise/pkg/stepwise/lexicon"
	"github.com/cognicore/stepwise/pkg/stepwise/nlp"
	"github.com/cognicore/stepwise/pkg/stepwise/segment"
	"github.com/cognicore/stepwise/pkg/stepwise/stoplist"
)

// Loader loads the configured data files and constructs components.
type Loader struct {
	Fs     afero.Fs
	Config Config
}

// Components holds everything a pipeline is assembled from.
type Components struct {
	Lexicon    *lexicon.Lexicon
	Stoplist   *stoplist.Manager
	Annotator  nlp.Annotator
	Segmenter  segment.Segmenter
	Extractor  extract.Extractor
	Classifier *classify.Classifier
}

// Load reads the lexicon and stoplist (built-ins when no path is set) and
// builds the strategy's components.
func (l *Loader) Load() (*Components, error) {
	fs := l.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}

	lex := lexicon.Default()
	if l.Config.LexiconPath != "" {
		var err error
		if lex, err = lexicon.LoadFromYAML(fs, l.Config.LexiconPath); err != nil {
			return nil, fmt.Errorf("load lexicon: %w", err)
		}
	}

	stops := stoplist.English()
	if l.Config.StoplistPath != "" {
		var err error
		if stops, err = stoplist.Load(fs, l.Config.StoplistPath); err != nil {
			return nil, fmt.Errorf("load stoplist: %w", err)
		}
	}

	return Build(l.Config, lex, stops, nil)
}

// Build assembles components for cfg.Strategy. A non-nil annotator
// replaces the one cfg.Annotator names. Loading the prose model fails
// with internalerr.ErrBackendUnavailable.
func Build(cfg Config, lex *lexicon.Lexicon, stops *stoplist.Manager, annotator nlp.Annotator) (*Components, error) {
	comp := &Components{
		Lexicon:    lex,
		Stoplist:   stops,
		Classifier: classify.New(),
	}
	bounds := extract.Bounds{
		Enforce: cfg.Temperature.EnforceBounds,
		MinF:    cfg.Temperature.MinF,
		MaxF:    cfg.Temperature.MaxF,
	}

	if cfg.Strategy == StrategyRegex {
		comp.Annotator = nlp.Raw{}
		comp.Segmenter = segment.NewRegex()
		comp.Extractor = extract.NewRegex(lex, bounds)
		return comp, nil
	}

	if annotator == nil {
		switch cfg.Annotator {
		case AnnotatorRules:
			annotator = nlp.NewRuleAnnotator(lex, stops)
		default:
			a, err := nlp.NewProseAnnotator(stops)
			if err != nil {
				return nil, fmt.Errorf("build annotator: %w", err)
			}
			annotator = a
		}
	}
	comp.Annotator = annotator
	comp.Segmenter = segment.NewSentence(annotator)
	comp.Extractor = extract.NewAnnotated(lex, stops, bounds)
	return comp, nil
}
