package lexicon

import (
	"reflect"
	"testing"

	"github.com/spf13/afero"
)

func TestDefault(t *testing.T) {
	lex := Default()
	stats := lex.Stats()
	if stats.Categories == 0 || stats.Tools == 0 || stats.Primary == 0 || stats.Secondary == 0 {
		t.Fatalf("built-in lexicon looks empty: %+v", stats)
	}
	if cat, ok := lex.ToolCategory("Skillet"); !ok || cat != "cookware" {
		t.Errorf("ToolCategory(Skillet) = %q, %v", cat, ok)
	}
	if !lex.IsPrimary("bake") || lex.IsPrimary("chop") {
		t.Error("bake should be primary, chop should not")
	}
	if !lex.IsSecondary("chop") {
		t.Error("chop should be secondary")
	}
	if !lex.IsExcluded("dry") {
		t.Error("dry should be excluded")
	}
	if got := lex.Tools()[0]; got != "pan" {
		t.Errorf("first tool = %q, want pan", got)
	}
}

func TestParse(t *testing.T) {
	lex, err := Parse([]byte(`
tools:
  - category: cookware
    names: [Pan, "  sheet   pan ", pan]
  - category: utensils
    names: [whisk]
actions:
  - {action: Whisk, tool: whisk}
methods:
  primary: [bake, Bake]
  secondary: [whisk]
  exclude: [Dry]
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if got, want := lex.Tools(), []string{"pan", "sheet pan", "whisk"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Tools() = %v, want %v", got, want)
	}
	if got, want := lex.Categories(), []string{"cookware", "utensils"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Categories() = %v, want %v", got, want)
	}
	if got, want := lex.ToolsByCategory("utensils"), []string{"whisk"}; !reflect.DeepEqual(got, want) {
		t.Errorf("ToolsByCategory(utensils) = %v, want %v", got, want)
	}
	if lex.ToolsByCategory("knives") != nil {
		t.Error("unknown category should return nil")
	}
	if got, want := lex.Actions(), []Action{{Verb: "whisk", Tool: "whisk"}}; !reflect.DeepEqual(got, want) {
		t.Errorf("Actions() = %v, want %v", got, want)
	}
	if got, want := lex.PrimaryMethods(), []string{"bake"}; !reflect.DeepEqual(got, want) {
		t.Errorf("PrimaryMethods() = %v, want %v", got, want)
	}
	if !lex.IsExcluded("dry") {
		t.Error("exclusions should be lowercased")
	}
}

func TestParseErrors(t *testing.T) {
	bad := map[string]string{
		"empty":             "{}",
		"unnamed category":  "tools:\n  - names: [pan]\n",
		"incomplete action": "tools:\n  - {category: c, names: [pan]}\nactions:\n  - {action: fry}\n",
		"not yaml":          "tools: [",
	}
	for name, data := range bad {
		if _, err := Parse([]byte(data)); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestLoadFromYAML(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "/lex.yaml", []byte("methods:\n  primary: [grill]\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	lex, err := LoadFromYAML(fs, "/lex.yaml")
	if err != nil {
		t.Fatalf("LoadFromYAML: %v", err)
	}
	if !lex.IsPrimary("grill") {
		t.Error("grill should be primary")
	}
	if _, err := LoadFromYAML(fs, "/missing.yaml"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestAccessorsReturnCopies(t *testing.T) {
	lex := Default()
	tools := lex.ToolsByCategory("cookware")
	tools[0] = "mutated"
	if lex.ToolsByCategory("cookware")[0] == "mutated" {
		t.Error("ToolsByCategory exposes internal state")
	}
}

func TestBaseMethod(t *testing.T) {
	cases := map[string]string{
		"frying": "fry",
		"fry":    "fry",
		"bake":   "bak",
		"Baking": "bak",
		"stirs":  "stir",
		"dice":   "dic",
		"use":    "use",
	}
	for in, want := range cases {
		if got := BaseMethod(in); got != want {
			t.Errorf("BaseMethod(%q) = %q, want %q", in, got, want)
		}
	}
}
