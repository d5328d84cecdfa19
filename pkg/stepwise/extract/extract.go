// Package extract pulls time, temperature, tools, cooking methods and
// ingredient mentions out of a single atomic step.
//
// Two strategies share the Extractor interface. Regex works on the raw
// text alone. Annotated reads tokens, lemmas and parts of speech from an
// annotated nlp.Doc and falls back to Regex wherever it finds nothing, so
// both always return a result for the same input.
package extract

import (
	"github.com/cognicore/stepwise/pkg/stepwise/nlp"
	"github.com/cognicore/stepwise/pkg/stepwise/recipe"
)

// Methods holds the cooking techniques found in a step.
type Methods struct {
	Primary   []string
	Secondary []string
}

// TimeExtractor finds the duration of a step.
type TimeExtractor interface {
	Time(doc *nlp.Doc) recipe.Time
}

// TemperatureExtractor finds an oven reading or a heat level.
type TemperatureExtractor interface {
	Temperature(doc *nlp.Doc) recipe.Temperature
}

// ToolExtractor finds explicit and implied tools.
type ToolExtractor interface {
	Tools(doc *nlp.Doc) []string
}

// MethodExtractor finds primary and secondary cooking methods.
type MethodExtractor interface {
	Methods(doc *nlp.Doc) Methods
}

// IngredientMatcher selects the ingredients a step mentions.
type IngredientMatcher interface {
	Ingredients(doc *nlp.Doc, all []recipe.Ingredient) []recipe.Ingredient
}

// Extractor bundles one strategy's extractors. Extractors are pure: they
// never mutate the doc and never fail; an empty value means nothing was
// found.
type Extractor interface {
	TimeExtractor
	TemperatureExtractor
	ToolExtractor
	MethodExtractor
	IngredientMatcher
}

// Bounds is the plausible cooking range for numeric temperatures.
type Bounds struct {
	Enforce bool
	MinF    int
	MaxF    int
}

// DefaultBounds accepts 50°F to 600°F.
func DefaultBounds() Bounds {
	return Bounds{Enforce: true, MinF: 50, MaxF: 600}
}

// Accept reports whether a reading is plausible. Celsius readings are
// compared by their Fahrenheit equivalent.
func (b Bounds) Accept(value int, unit string) bool {
	if !b.Enforce {
		return true
	}
	f := value
	if unit == "C" {
		f = value*9/5 + 32
	}
	return f >= b.MinF && f <= b.MaxF
}
