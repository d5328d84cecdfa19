package recipe

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/cognicore/stepwise/pkg/stepwise/internalerr"
)

// Ingredient is one line of a recipe's ingredient list as produced by the
// upstream scraper. Quantity stays free text ("1 1/2", "2-3").
type Ingredient struct {
	Name        string `json:"name" yaml:"name"`
	Quantity    string `json:"quantity" yaml:"quantity"`
	Unit        string `json:"unit,omitempty" yaml:"unit,omitempty"`
	Preparation string `json:"preparation,omitempty" yaml:"preparation,omitempty"`
	Misc        string `json:"misc,omitempty" yaml:"misc,omitempty"`
}

// Input is a recipe as handed over by a scraper, before step parsing.
type Input struct {
	Title       string       `json:"title,omitempty" yaml:"title,omitempty"`
	URL         string       `json:"url,omitempty" yaml:"url,omitempty"`
	Ingredients []Ingredient `json:"ingredients" yaml:"ingredients"`
	Directions  []string     `json:"directions" yaml:"directions"`
}

// Recipe is a parsed recipe. Directions are kept verbatim; Steps are the
// atomic steps derived from them and are numbered independently.
type Recipe struct {
	ID          string       `json:"id" yaml:"id"`
	Title       string       `json:"title" yaml:"title"`
	URL         string       `json:"url,omitempty" yaml:"url,omitempty"`
	Ingredients []Ingredient `json:"ingredients" yaml:"ingredients"`
	Directions  []string     `json:"directions" yaml:"directions"`
	Steps       []Step       `json:"steps" yaml:"steps"`
}

// Validate checks the inputs the step parser relies on.
func Validate(directions []string, ingredients []Ingredient) error {
	if len(directions) == 0 {
		return fmt.Errorf("recipe: no directions: %w", internalerr.ErrInvalidInput)
	}
	for i, d := range directions {
		if strings.TrimSpace(d) == "" {
			return fmt.Errorf("recipe: direction %d is blank: %w", i, internalerr.ErrInvalidInput)
		}
	}
	for i, ing := range ingredients {
		if strings.TrimSpace(ing.Name) == "" {
			return fmt.Errorf("recipe: ingredient %d has no name: %w", i, internalerr.ErrInvalidInput)
		}
	}
	return nil
}

// Validate checks the input is parseable.
func (in Input) Validate() error {
	return Validate(in.Directions, in.Ingredients)
}

// TitleFromURL derives a display title from a recipe URL such as
// https://www.allrecipes.com/recipe/24074/alysias-basic-meat-lasagna/.
// The slug after "recipe/" (skipping a numeric id segment) is stripped of
// digits and title-cased.
func TitleFromURL(url string) string {
	parts := strings.Split(strings.TrimRight(url, "/"), "/")
	for i, part := range parts {
		if part != "recipe" || i+1 >= len(parts) {
			continue
		}
		slug := parts[i+1]
		if i+2 < len(parts) {
			slug = parts[i+2]
		}
		slug = strings.Map(func(r rune) rune {
			switch {
			case unicode.IsDigit(r):
				return -1
			case r == '-' || r == '_':
				return ' '
			}
			return r
		}, slug)
		words := strings.Fields(slug)
		for j, w := range words {
			words[j] = titleWord(w)
		}
		if len(words) > 0 {
			return strings.Join(words, " ")
		}
	}
	return "Unknown Recipe"
}

func titleWord(w string) string {
	runes := []rune(strings.ToLower(w))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
