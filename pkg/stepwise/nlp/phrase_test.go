package nlp

import (
	"reflect"
	"testing"
)

func annotate(t *testing.T, text string) *Doc {
	t.Helper()
	doc, err := NewRuleAnnotator(nil, nil).Annotate(text)
	if err != nil {
		t.Fatalf("annotate %q: %v", text, err)
	}
	return doc
}

func phrases(ms []Match) []string {
	var out []string
	for _, m := range ms {
		out = append(out, m.Phrase)
	}
	return out
}

func TestPhraseMatcherGreedyLongest(t *testing.T) {
	m := NewPhraseMatcher([]string{"fry", "pan", "deep fry", "frying pan"})
	doc := annotate(t, "Deep fry the chicken in a frying pan.")

	got := phrases(m.Longest(doc.Keys().Keys))
	want := []string{"deep fry", "frying pan"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestPhraseMatcherFindAllKeepsOverlaps(t *testing.T) {
	m := NewPhraseMatcher([]string{"fry", "deep fry"})
	doc := annotate(t, "Deep fry it.")

	got := m.FindAll(doc.Keys().Keys)
	want := []Match{{Phrase: "deep fry", Start: 0, End: 2}, {Phrase: "fry", Start: 1, End: 2}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestPhraseMatcherHyphenatedToken(t *testing.T) {
	m := NewPhraseMatcher([]string{"deep-fry"})
	doc := annotate(t, "Deep-fry the chicken.")

	got := phrases(m.Longest(doc.Keys().Keys))
	if !reflect.DeepEqual(got, []string{"deep-fry"}) {
		t.Errorf("hyphenated phrase not matched: %v", got)
	}
}

func TestPhraseMatcherStopsAtPunctuation(t *testing.T) {
	m := NewPhraseMatcher([]string{"salt pepper"})
	doc := annotate(t, "Add salt, pepper.")

	if got := m.FindAll(doc.Keys().Keys); len(got) != 0 {
		t.Errorf("phrase should not span punctuation, got %v", got)
	}
}

func TestLemmaMatcher(t *testing.T) {
	m := NewLemmaMatcher([]string{"baking sheet"})
	doc := annotate(t, "Line two baking sheets with parchment.")

	got := phrases(m.Longest(doc.LemmaKeys().Keys))
	if !reflect.DeepEqual(got, []string{"baking sheet"}) {
		t.Errorf("Expected plural to match by lemma, got %v", got)
	}
}

func TestKeysMapBackToTokens(t *testing.T) {
	doc := annotate(t, "Heat a medium-high pan.")
	ks := doc.Keys()

	wantKeys := []string{"heat", "a", "medium", "high", "pan", ""}
	if !reflect.DeepEqual(ks.Keys, wantKeys) {
		t.Fatalf("Expected keys %v, got %v", wantKeys, ks.Keys)
	}
	if ks.Token[2] != 2 || ks.Token[3] != 2 {
		t.Errorf("hyphen parts should point at the same token, got %v", ks.Token)
	}
}

func TestSpansPriority(t *testing.T) {
	cands := []Match{
		{Phrase: "fry", Start: 5, End: 8},
		{Phrase: "deep fry", Start: 0, End: 8},
		{Phrase: "deep", Start: 0, End: 4},
	}
	ordered := ByPriority(cands)
	if ordered[0].Phrase != "deep fry" {
		t.Fatalf("longest candidate should come first, got %v", ordered)
	}

	var spans Spans
	for _, m := range ordered {
		if !spans.Overlaps(m) {
			spans.Take(m)
		}
	}
	if got := phrases(spans.Sorted()); !reflect.DeepEqual(got, []string{"deep fry"}) {
		t.Errorf("Expected only the longest span, got %v", got)
	}
}

func TestWordRegexp(t *testing.T) {
	cases := []struct {
		phrase, suffix, text string
		want                 bool
	}{
		{"pan", "", "heat the pan", true},
		{"pan", "", "add the pancetta", false},
		{"pan", "e?s", "grease two pans", true},
		{"stir-fry", "", "stir fry the vegetables", true},
		{"sauté", "", "saute the onions", true},
		{"tip:", "", "tip: chill first", true},
		{"do not", "", "do nothing", false},
	}
	for _, tc := range cases {
		re := WordRegexp(tc.phrase, tc.suffix)
		if got := re.MatchString(Key(tc.text)); got != tc.want {
			t.Errorf("WordRegexp(%q, %q) on %q = %v, want %v", tc.phrase, tc.suffix, tc.text, got, tc.want)
		}
	}
	if WordRegexp("  ", "") != nil {
		t.Error("blank phrase should yield no pattern")
	}
}
