package lexicon

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultYAML []byte

// Lexicon stores the kitchen vocabulary the extractors match against:
// - Tools: known tool names grouped by category, in reporting order
// - Actions: cooking verbs that imply a tool (whisk -> whisk, sauté -> pan)
// - Methods: primary (heat/preservation) and secondary (prep/handling) techniques
// - Excluded: method-shaped words that are adjectives in context (dry, cold, fresh)
//
// A Lexicon is immutable after construction and safe to share between
// goroutines.
type Lexicon struct {
	categories []Category
	toolIndex  map[string]string // tool -> category
	actions    []Action
	primary    []string
	secondary  []string
	primarySet map[string]struct{}
	secondSet  map[string]struct{}
	excluded   map[string]struct{}
}

// Category is a named group of tools.
type Category struct {
	Name  string   `yaml:"category"`
	Tools []string `yaml:"names"`
}

// Action maps a cooking verb to the tool it implies.
type Action struct {
	Verb string `yaml:"action"`
	Tool string `yaml:"tool"`
}

// File is the on-disk YAML layout.
type File struct {
	Tools   []Category `yaml:"tools"`
	Actions []Action   `yaml:"actions"`
	Methods struct {
		Primary   []string `yaml:"primary"`
		Secondary []string `yaml:"secondary"`
		Exclude   []string `yaml:"exclude"`
	} `yaml:"methods"`
}

var builtin = mustParse(defaultYAML)

// Default returns the built-in lexicon.
func Default() *Lexicon {
	return builtin
}

func mustParse(data []byte) *Lexicon {
	lex, err := Parse(data)
	if err != nil {
		panic(fmt.Sprintf("lexicon: built-in table is invalid: %v", err))
	}
	return lex
}

// LoadFromYAML loads a lexicon file from fs.
//
// Expected format:
//
//	tools:
//	  - category: cookware
//	    names: [pan, pot, skillet]
//	actions:
//	  - {action: whisk, tool: whisk}
//	methods:
//	  primary: [bake, roast]
//	  secondary: [chop, whisk]
//	  exclude: [dry, fresh]
func LoadFromYAML(fs afero.Fs, path string) (*Lexicon, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse builds a lexicon from YAML bytes.
func Parse(data []byte) (*Lexicon, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	return New(f)
}

// New builds a lexicon from an in-memory table. Entries are lowercased
// and deduplicated, keeping first occurrence order.
func New(f File) (*Lexicon, error) {
	if len(f.Tools) == 0 && len(f.Methods.Primary) == 0 && len(f.Methods.Secondary) == 0 {
		return nil, fmt.Errorf("lexicon: no tools or methods defined")
	}

	l := &Lexicon{
		toolIndex:  make(map[string]string),
		primarySet: make(map[string]struct{}),
		secondSet:  make(map[string]struct{}),
		excluded:   make(map[string]struct{}),
	}

	for _, c := range f.Tools {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			return nil, fmt.Errorf("lexicon: tool category without a name")
		}
		cat := Category{Name: name}
		for _, t := range c.Tools {
			t = normalize(t)
			if t == "" {
				continue
			}
			if _, dup := l.toolIndex[t]; dup {
				continue
			}
			l.toolIndex[t] = name
			cat.Tools = append(cat.Tools, t)
		}
		l.categories = append(l.categories, cat)
	}

	for _, a := range f.Actions {
		verb, tool := normalize(a.Verb), normalize(a.Tool)
		if verb == "" || tool == "" {
			return nil, fmt.Errorf("lexicon: incomplete action entry %q -> %q", a.Verb, a.Tool)
		}
		l.actions = append(l.actions, Action{Verb: verb, Tool: tool})
	}

	l.primary = dedupe(f.Methods.Primary, l.primarySet)
	l.secondary = dedupe(f.Methods.Secondary, l.secondSet)
	for _, w := range f.Methods.Exclude {
		l.excluded[normalize(w)] = struct{}{}
	}

	return l, nil
}

func dedupe(words []string, set map[string]struct{}) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		w = normalize(w)
		if w == "" {
			continue
		}
		if _, ok := set[w]; ok {
			continue
		}
		set[w] = struct{}{}
		out = append(out, w)
	}
	return out
}

func normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// Categories returns the tool categories in lexicon order.
func (l *Lexicon) Categories() []string {
	names := make([]string, len(l.categories))
	for i, c := range l.categories {
		names[i] = c.Name
	}
	return names
}

// ToolsByCategory returns the tools of one category, or nil if unknown.
func (l *Lexicon) ToolsByCategory(category string) []string {
	for _, c := range l.categories {
		if c.Name == category {
			return append([]string(nil), c.Tools...)
		}
	}
	return nil
}

// Tools returns every tool name in lexicon order (category order, then
// the order within each category).
func (l *Lexicon) Tools() []string {
	var out []string
	for _, c := range l.categories {
		out = append(out, c.Tools...)
	}
	return out
}

// ToolCategory returns the category a tool belongs to.
func (l *Lexicon) ToolCategory(tool string) (string, bool) {
	c, ok := l.toolIndex[normalize(tool)]
	return c, ok
}

// Actions returns the action -> tool table in lexicon order.
func (l *Lexicon) Actions() []Action {
	return append([]Action(nil), l.actions...)
}

// PrimaryMethods returns heat/preservation techniques in lexicon order.
func (l *Lexicon) PrimaryMethods() []string {
	return append([]string(nil), l.primary...)
}

// SecondaryMethods returns preparation techniques in lexicon order.
func (l *Lexicon) SecondaryMethods() []string {
	return append([]string(nil), l.secondary...)
}

// IsPrimary reports whether method is a primary cooking technique.
func (l *Lexicon) IsPrimary(method string) bool {
	_, ok := l.primarySet[normalize(method)]
	return ok
}

// IsSecondary reports whether method is a preparation technique.
func (l *Lexicon) IsSecondary(method string) bool {
	_, ok := l.secondSet[normalize(method)]
	return ok
}

// IsExcluded reports whether word must never be reported as a method.
func (l *Lexicon) IsExcluded(word string) bool {
	_, ok := l.excluded[normalize(word)]
	return ok
}

// Stats returns statistics about the lexicon contents.
func (l *Lexicon) Stats() Stats {
	return Stats{
		Categories: len(l.categories),
		Tools:      len(l.toolIndex),
		Actions:    len(l.actions),
		Primary:    len(l.primary),
		Secondary:  len(l.secondary),
		Excluded:   len(l.excluded),
	}
}

// Stats holds counts of lexicon entries.
type Stats struct {
	Categories int
	Tools      int
	Actions    int
	Primary    int
	Secondary  int
	Excluded   int
}
