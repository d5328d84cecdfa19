// Package sanitize cleans scraped direction text before parsing.
package sanitize

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var replacer = strings.NewReplacer(
	"\u00a0", " ", "’", "'", "‘", "'", "“", `"`, "”", `"`, "º", "°", "\u200b", "",
)

// Direction flattens HTML markup and entities, normalises typographic
// characters and collapses whitespace. Plain text only has its
// whitespace collapsed and characters normalised.
func Direction(s string) string {
	if strings.ContainsAny(s, "<&") {
		s = stripHTML(s)
	}
	return strings.Join(strings.Fields(replacer.Replace(s)), " ")
}

// Directions sanitizes each direction, dropping ones left empty.
func Directions(dirs []string) []string {
	out := make([]string, 0, len(dirs))
	for _, d := range dirs {
		if clean := Direction(d); clean != "" {
			out = append(out, clean)
		}
	}
	return out
}

func stripHTML(s string) string {
	doc, err := html.Parse(strings.NewReader(s))
	if err != nil {
		return s
	}

	var buf strings.Builder
	var extractText func(*html.Node)
	extractText = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			buf.WriteString(n.Data)
		case html.ElementNode:
			if n.DataAtom == atom.Script || n.DataAtom == atom.Style {
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extractText(c)
		}
		if n.Type == html.ElementNode && isBlock(n.DataAtom) {
			buf.WriteByte(' ')
		}
	}
	extractText(doc)

	return buf.String()
}

func isBlock(a atom.Atom) bool {
	switch a {
	case atom.P, atom.Div, atom.Li, atom.Br, atom.Ul, atom.Ol, atom.Span, atom.H1, atom.H2, atom.H3, atom.H4:
		return true
	}
	return false
}
