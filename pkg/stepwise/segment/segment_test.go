package segment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cognicore/stepwise/pkg/stepwise/nlp"
)

var cases = []struct {
	name      string
	direction string
	want      []string
}{
	{
		name:      "sentences",
		direction: "Preheat oven to 350°F. Bake for 30 minutes.",
		want:      []string{"Preheat oven to 350°F.", "Bake for 30 minutes."},
	},
	{
		name:      "then",
		direction: "Brown the beef, then drain the fat.",
		want:      []string{"Brown the beef", "Drain the fat."},
	},
	{
		name:      "and then",
		direction: "Whisk the eggs, and then fold in the flour.",
		want:      []string{"Whisk the eggs", "Fold in the flour."},
	},
	{
		name:      "semicolon",
		direction: "Chop the onions; mince the garlic.",
		want:      []string{"Chop the onions", "Mince the garlic."},
	},
	{
		name:      "meanwhile",
		direction: "Boil the pasta meanwhile heat the sauce.",
		want:      []string{"Boil the pasta", "Heat the sauce."},
	},
	{
		name:      "while",
		direction: "Stir constantly while the sauce thickens.",
		want:      []string{"Stir constantly", "The sauce thickens."},
	},
	{
		name:      "leading conjunction",
		direction: "Then serve.",
		want:      []string{"Serve."},
	},
	{
		name:      "lowercase after period stays joined",
		direction: "Add 1 tsp. salt and stir.",
		want:      []string{"Add 1 tsp. salt and stir."},
	},
	{
		name:      "bare conjunction falls back",
		direction: "then",
		want:      []string{"then"},
	},
}

func TestRegexSegment(t *testing.T) {
	seg := NewRegex()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := seg.Segment(tc.direction)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestSentenceSegmentMatchesRegex(t *testing.T) {
	seg := NewSentence(nlp.NewRuleAnnotator(nil, nil))
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := seg.Segment(tc.direction)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestSegmentNeverEmpty(t *testing.T) {
	for _, dir := range []string{"and", "; ;", "Mix", ", then ,"} {
		got, err := NewRegex().Segment(dir)
		require.NoError(t, err)
		require.NotEmpty(t, got, dir)
		for _, frag := range got {
			assert.NotEmpty(t, frag)
		}
	}
}
