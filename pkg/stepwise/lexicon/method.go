package lexicon

import "strings"

// BaseMethod reduces a method to a comparison key so inflections collapse:
// "frying" and "fry" share "fry", "bake" and "baking" share "bak".
// Suffixes ing, e and s are stripped in turn, each only when more than two
// characters would remain.
func BaseMethod(method string) string {
	base := strings.ToLower(method)
	for _, suffix := range []string{"ing", "e", "s"} {
		if strings.HasSuffix(base, suffix) && len(base) > len(suffix)+2 {
			base = base[:len(base)-len(suffix)]
		}
	}
	return base
}
