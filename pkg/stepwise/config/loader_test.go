package config

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cognicore/stepwise/pkg/stepwise/extract"
	"github.com/cognicore/stepwise/pkg/stepwise/nlp"
	"github.com/cognicore/stepwise/pkg/stepwise/segment"
)

func TestLoaderBuiltins(t *testing.T) {
	cfg := Default()
	cfg.Annotator = AnnotatorRules
	loader := Loader{Fs: afero.NewMemMapFs(), Config: cfg}

	comp, err := loader.Load()
	require.NoError(t, err)
	assert.NotNil(t, comp.Lexicon)
	assert.NotNil(t, comp.Stoplist)
	assert.NotNil(t, comp.Classifier)
	assert.IsType(t, &nlp.RuleAnnotator{}, comp.Annotator)
	assert.IsType(t, &segment.Sentence{}, comp.Segmenter)
	assert.IsType(t, &extract.Annotated{}, comp.Extractor)
}

func TestLoaderRegexStrategy(t *testing.T) {
	cfg := Default()
	cfg.Strategy = StrategyRegex
	comp, err := (&Loader{Fs: afero.NewMemMapFs(), Config: cfg}).Load()
	require.NoError(t, err)
	assert.Equal(t, nlp.Raw{}, comp.Annotator)
	assert.Equal(t, segment.NewRegex(), comp.Segmenter)
	assert.IsType(t, &extract.Regex{}, comp.Extractor)
}

func TestLoaderReadsFiles(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/data/lexicon.yaml", []byte(`
tools:
  - category: cookware
    names: [comal]
actions:
  - {action: toast, tool: comal}
methods:
  primary: [toast]
  secondary: [flip]
`), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/data/stoplist.yaml", []byte("terms: [the, a]\n"), 0o644))

	cfg := Default()
	cfg.Strategy = StrategyRegex
	cfg.LexiconPath = "/data/lexicon.yaml"
	cfg.StoplistPath = "/data/stoplist.yaml"

	comp, err := (&Loader{Fs: fs, Config: cfg}).Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"comal"}, comp.Lexicon.Tools())
	assert.True(t, comp.Stoplist.IsStop("the"))
	assert.False(t, comp.Stoplist.IsStop("and"))

	doc, _ := nlp.Raw{}.Annotate("Toast the tortillas.")
	assert.Equal(t, []string{"comal"}, comp.Extractor.Tools(doc))
}

func TestLoaderMissingFiles(t *testing.T) {
	cfg := Default()
	cfg.LexiconPath = "/nonexistent/lexicon.yaml"
	_, err := (&Loader{Fs: afero.NewMemMapFs(), Config: cfg}).Load()
	assert.Error(t, err)

	cfg = Default()
	cfg.StoplistPath = "/nonexistent/stoplist.yaml"
	_, err = (&Loader{Fs: afero.NewMemMapFs(), Config: cfg}).Load()
	assert.Error(t, err)
}

func TestBuildUsesGivenAnnotator(t *testing.T) {
	rules := nlp.NewRuleAnnotator(nil, nil)
	comp, err := Build(Default(), nil, nil, rules)
	require.NoError(t, err)
	assert.Same(t, rules, comp.Annotator)
}
