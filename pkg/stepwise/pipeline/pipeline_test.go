package pipeline

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cognicore/stepwise/pkg/stepwise/extract"
	"github.com/cognicore/stepwise/pkg/stepwise/internalerr"
	"github.com/cognicore/stepwise/pkg/stepwise/lexicon"
	"github.com/cognicore/stepwise/pkg/stepwise/nlp"
	"github.com/cognicore/stepwise/pkg/stepwise/recipe"
	"github.com/cognicore/stepwise/pkg/stepwise/segment"
)

func pipelines() map[string]*Pipeline {
	lex := lexicon.Default()
	rules := nlp.NewRuleAnnotator(lex, nil)
	return map[string]*Pipeline{
		"regex": NewPipeline(Options{Split: true, Sanitize: true}),
		"annotated": NewPipeline(Options{
			Annotator: rules,
			Segmenter: segment.NewSentence(rules),
			Extractor: extract.NewAnnotated(lex, nil, extract.DefaultBounds()),
			Split:     true,
			Sanitize:  true,
		}),
	}
}

var lasagna = []recipe.Ingredient{
	{Name: "ground beef", Quantity: "1", Unit: "pound"},
	{Name: "onion", Quantity: "1", Preparation: "chopped"},
	{Name: "lasagna noodles", Quantity: "12"},
}

func TestParseCarriesOvenTemperature(t *testing.T) {
	for name, p := range pipelines() {
		t.Run(name, func(t *testing.T) {
			steps, err := p.Parse([]string{"Preheat oven to 350°F.", "Bake for 30 minutes."}, nil)
			require.NoError(t, err)
			require.Len(t, steps, 2)

			assert.Equal(t, recipe.Temperature{Oven: "350°F"}, steps[0].Temperature)
			assert.Equal(t, recipe.Temperature{Oven: "350°F"}, steps[1].Temperature)
			assert.Equal(t, recipe.Exact(30, recipe.Minute), steps[1].Time)
			assert.Equal(t, []string{"bake"}, steps[1].Methods)
			assert.Equal(t, []string{"oven"}, steps[1].Tools)
		})
	}
}

func TestParseCarryOnlyForOvenMethods(t *testing.T) {
	for name, p := range pipelines() {
		t.Run(name, func(t *testing.T) {
			steps, err := p.Parse([]string{"Preheat oven to 350°F.", "Stir the sauce."}, nil)
			require.NoError(t, err)
			require.Len(t, steps, 2)
			assert.True(t, steps[1].Temperature.IsZero())
		})
	}
}

func TestParseNoCarryIntoToolNames(t *testing.T) {
	for name, p := range pipelines() {
		t.Run(name, func(t *testing.T) {
			steps, err := p.Parse([]string{"Preheat oven to 350°F.", "Line a baking sheet with foil."}, nil)
			require.NoError(t, err)
			require.Len(t, steps, 2)
			assert.Empty(t, steps[1].Methods)
			assert.True(t, steps[1].Temperature.IsZero())
		})
	}
}

func TestParseLatestReadingWins(t *testing.T) {
	for name, p := range pipelines() {
		t.Run(name, func(t *testing.T) {
			steps, err := p.Parse([]string{
				"Preheat oven to 350°F.",
				"Bake at 400°F for 10 minutes.",
				"Roast for 5 more minutes.",
			}, nil)
			require.NoError(t, err)
			require.Len(t, steps, 3)
			assert.Equal(t, "400°F", steps[2].Temperature.Oven)
		})
	}
}

func TestParseNumbersAcrossDirections(t *testing.T) {
	for name, p := range pipelines() {
		t.Run(name, func(t *testing.T) {
			steps, err := p.Parse([]string{
				"Brown the beef, then drain the fat.",
				"Preheat oven to 375 degrees F. Bake for 25 minutes.",
			}, lasagna)
			require.NoError(t, err)
			require.Len(t, steps, 4)
			for i, s := range steps {
				assert.Equal(t, i+1, s.Number)
				assert.NotEmpty(t, s.Description)
			}
			assert.Equal(t, "Brown the beef", steps[0].Description)
			assert.Equal(t, []recipe.Ingredient{lasagna[0]}, steps[0].Ingredients)
			assert.Equal(t, "Drain the fat.", steps[1].Description)
			assert.Equal(t, "375°F", steps[3].Temperature.Oven)
		})
	}
}

func TestParseWithoutSplitting(t *testing.T) {
	p := NewPipeline(Options{Split: false})
	steps, err := p.Parse([]string{"Brown the beef, then drain the fat.", "Serve."}, lasagna)
	require.NoError(t, err)
	require.Len(t, steps, 2)
	assert.Equal(t, "Brown the beef, then drain the fat.", steps[0].Description)
}

func TestParseSanitizes(t *testing.T) {
	p := NewPipeline(Options{Split: true, Sanitize: true})
	steps, err := p.Parse([]string{"<p>Bake for 30&nbsp;minutes.</p>"}, nil)
	require.NoError(t, err)
	require.Len(t, steps, 1)
	assert.Equal(t, "Bake for 30 minutes.", steps[0].Description)
}

func TestParseClassifies(t *testing.T) {
	for name, p := range pipelines() {
		t.Run(name, func(t *testing.T) {
			steps, err := p.Parse([]string{
				"Do not overmix the batter.",
				"Let cool before serving.",
				"The mixture will thicken as it cools.",
			}, nil)
			require.NoError(t, err)
			require.Len(t, steps, 3)

			assert.True(t, steps[0].Actionable)
			assert.Equal(t, recipe.InfoWarning, steps[0].InfoType)
			assert.True(t, steps[1].Actionable)
			assert.True(t, steps[1].IsPrepared)
			assert.Equal(t, recipe.InfoNone, steps[1].InfoType)
			assert.False(t, steps[2].Actionable)
			assert.Equal(t, recipe.InfoObservation, steps[2].InfoType)
		})
	}
}

func TestParseIsDeterministic(t *testing.T) {
	directions := []string{
		"Preheat oven to 350°F. Brown the beef in a large skillet over medium heat, then drain.",
		"Layer noodles and sauce in a baking dish; bake for 45 minutes until bubbly.",
	}
	for name, p := range pipelines() {
		t.Run(name, func(t *testing.T) {
			first, err := p.Parse(directions, lasagna)
			require.NoError(t, err)
			second, err := p.Parse(directions, lasagna)
			require.NoError(t, err)

			a, err := json.Marshal(first)
			require.NoError(t, err)
			b, err := json.Marshal(second)
			require.NoError(t, err)
			assert.Equal(t, string(a), string(b))
		})
	}
}

func TestParseRejectsBadInput(t *testing.T) {
	p := NewPipeline(Options{Split: true})

	_, err := p.Parse(nil, nil)
	assert.ErrorIs(t, err, internalerr.ErrInvalidInput)

	_, err = p.Parse([]string{"Mix.", "  "}, nil)
	assert.ErrorIs(t, err, internalerr.ErrInvalidInput)

	_, err = p.Parse([]string{"Mix."}, []recipe.Ingredient{{Name: ""}})
	assert.ErrorIs(t, err, internalerr.ErrInvalidInput)
}

func TestStepJSONShape(t *testing.T) {
	p := NewPipeline(Options{Split: true})
	steps, err := p.Parse([]string{"Bake for 30 minutes."}, nil)
	require.NoError(t, err)

	data, err := json.Marshal(steps[0])
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"step_number": 1,
		"description": "Bake for 30 minutes.",
		"ingredients": [],
		"tools": ["oven"],
		"methods": ["bake"],
		"time": {"duration": 30, "unit": "minute"},
		"temperature": {},
		"actionable": true,
		"is_prepared": false,
		"info_type": null
	}`, string(data))
}

func TestStepThreadsContext(t *testing.T) {
	p := NewPipeline(Options{})
	_, ctx, err := p.Step(1, "Preheat oven to 200°C.", nil, Context{})
	require.NoError(t, err)
	assert.Equal(t, Context{OvenTemp: "200°C"}, ctx)

	step, ctx, err := p.Step(2, "Bake for 1 hour.", nil, ctx)
	require.NoError(t, err)
	assert.Equal(t, "200°C", step.Temperature.Oven)
	assert.Equal(t, "200°C", ctx.OvenTemp)
}
