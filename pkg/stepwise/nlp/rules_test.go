package nlp

import (
	"reflect"
	"testing"
)

func texts(doc *Doc) []string {
	var out []string
	for _, tok := range doc.Tokens {
		out = append(out, tok.Text)
	}
	return out
}

func tags(doc *Doc) []POS {
	var out []POS
	for _, tok := range doc.Tokens {
		out = append(out, tok.POS)
	}
	return out
}

func TestRuleTokenizer(t *testing.T) {
	cases := []struct {
		text string
		want []string
	}{
		{"Preheat oven to 350°F.", []string{"Preheat", "oven", "to", "350", "°", "F", "."}},
		{"Cook 2-3 hours.", []string{"Cook", "2", "-", "3", "hours", "."}},
		{"Add 1.5 cups of the chef's sauce", []string{"Add", "1.5", "cups", "of", "the", "chef's", "sauce"}},
		{"Heat a medium-high pan", []string{"Heat", "a", "medium-high", "pan"}},
	}
	for _, tc := range cases {
		if got := texts(annotate(t, tc.text)); !reflect.DeepEqual(got, tc.want) {
			t.Errorf("%q: expected %v, got %v", tc.text, tc.want, got)
		}
	}
}

func TestRuleOffsets(t *testing.T) {
	text := "  Bake   for 30 minutes. "
	doc := annotate(t, text)
	for _, tok := range doc.Tokens {
		if text[tok.Start:tok.End] != tok.Text {
			t.Errorf("token %q has offsets [%d,%d) covering %q", tok.Text, tok.Start, tok.End, text[tok.Start:tok.End])
		}
	}
}

func TestRuleTagging(t *testing.T) {
	cases := []struct {
		text string
		want []POS
	}{
		{"Preheat oven to 350°F.", []POS{Verb, Noun, Part, Num, Sym, Noun, Punct}},
		{"Cook until golden brown.", []POS{Verb, Adp, Adj, Adj, Punct}},
		{"Brown the beef.", []POS{Verb, Det, Noun, Punct}},
		{"Cook over medium heat.", []POS{Verb, Adp, Adj, Noun, Punct}},
		{"Let cool before serving.", []POS{Verb, Verb, SConj, Verb, Punct}},
	}
	for _, tc := range cases {
		if got := tags(annotate(t, tc.text)); !reflect.DeepEqual(got, tc.want) {
			t.Errorf("%q: expected %v, got %v", tc.text, tc.want, got)
		}
	}
}

func TestRuleModal(t *testing.T) {
	doc := annotate(t, "The mixture will thicken as it cools.")
	will := doc.Tokens[2]
	if will.Tag != "MD" || will.POS != Aux {
		t.Errorf("Expected modal auxiliary, got %s/%s", will.POS, will.Tag)
	}
	if doc.Tokens[3].POS != Verb {
		t.Errorf("Expected verb after modal, got %s", doc.Tokens[3].POS)
	}
}

func TestRuleSentences(t *testing.T) {
	doc := annotate(t, "Brown the beef. Drain the fat. Add 1.5 cups of stock.")
	got := doc.SentenceTexts()
	want := []string{"Brown the beef.", "Drain the fat.", "Add 1.5 cups of stock."}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestRuleStopwords(t *testing.T) {
	doc := annotate(t, "Stir the sauce")
	if !doc.Tokens[1].IsStop {
		t.Error("'the' should be a stopword")
	}
	if doc.Tokens[2].IsStop {
		t.Error("'sauce' should not be a stopword")
	}
}

func TestNounChunks(t *testing.T) {
	doc := annotate(t, "Add the large onions to a pot.")
	var got []string
	for _, c := range doc.NounChunks() {
		got = append(got, doc.Span(c.Start, c.End))
	}
	want := []string{"the large onions", "a pot"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestNumbers(t *testing.T) {
	cases := []struct {
		in   string
		want int
		ok   bool
	}{
		{"30", 30, true},
		{"1.5", 1, true},
		{"two", 2, true},
		{"Twelve", 12, true},
		{"1/2", 0, false},
		{"pan", 0, false},
	}
	for _, tc := range cases {
		got, ok := NumberValue(tc.in)
		if got != tc.want || ok != tc.ok {
			t.Errorf("NumberValue(%q) = %d, %v; want %d, %v", tc.in, got, ok, tc.want, tc.ok)
		}
	}

	doc := annotate(t, "Simmer 1/2 hour")
	if !doc.LikeNum(1) {
		t.Error("fraction should look like a number")
	}
}

func TestQuantity(t *testing.T) {
	cases := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"30", 30, true},
		{"1.5", 1.5, true},
		{"1/2", 0.5, true},
		{"1 1/2", 1.5, true},
		{"three", 3, true},
		{"1/0", 0, false},
		{"1 pan", 0, false},
		{"pan", 0, false},
	}
	for _, tc := range cases {
		got, ok := Quantity(tc.in)
		if got != tc.want || ok != tc.ok {
			t.Errorf("Quantity(%q) = %v, %v; want %v, %v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
	if !IsFraction("3/4") || IsFraction("3.4") {
		t.Error("IsFraction should accept only n/d")
	}
}

func TestRawAnnotator(t *testing.T) {
	doc, err := Raw{}.Annotate("Bake for 30 minutes.")
	if err != nil {
		t.Fatal(err)
	}
	if doc.Annotated() {
		t.Error("raw docs carry no tokens")
	}
	if got := doc.SentenceTexts(); !reflect.DeepEqual(got, []string{"Bake for 30 minutes."}) {
		t.Errorf("unexpected sentences %v", got)
	}
}
