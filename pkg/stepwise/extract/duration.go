package extract

import (
	"math"

	"github.com/cognicore/stepwise/pkg/stepwise/nlp"
	"github.com/cognicore/stepwise/pkg/stepwise/recipe"
)

// smaller is the next finer unit a fractional amount is expressed in.
var smaller = map[recipe.Unit]recipe.Unit{
	recipe.Hour:   recipe.Minute,
	recipe.Minute: recipe.Second,
}

const wholeTolerance = 1e-9

func isWhole(f float64) bool {
	return math.Abs(f-math.Round(f)) < wholeTolerance
}

func toCount(f float64) int {
	if isWhole(f) {
		return int(math.Round(f))
	}
	return int(f)
}

// scaleDown moves fractional amounts one unit finer: 1.5 hours becomes
// 90 minutes. Seconds are truncated.
func scaleDown(u recipe.Unit, vals ...float64) recipe.Unit {
	fractional := false
	for _, v := range vals {
		if !isWhole(v) {
			fractional = true
		}
	}
	finer, ok := smaller[u]
	if !fractional || !ok {
		return u
	}
	for i := range vals {
		vals[i] *= 60
	}
	return finer
}

func exactTime(q float64, u recipe.Unit) (recipe.Time, bool) {
	vals := []float64{q}
	u = scaleDown(u, vals...)
	n := toCount(vals[0])
	if n <= 0 {
		return recipe.Time{}, false
	}
	return recipe.Exact(n, u), true
}

func rangeTime(lo, hi float64, u recipe.Unit) (recipe.Time, bool) {
	vals := []float64{lo, hi}
	u = scaleDown(u, vals...)
	a, b := toCount(vals[0]), toCount(vals[1])
	if a <= 0 || b <= 0 {
		return recipe.Time{}, false
	}
	return recipe.Range(a, b, u), true
}

// quantityAt reads the amount at token i, joining a whole number with a
// following fraction token ("1", "1/2"). It returns the index after it.
func quantityAt(doc *nlp.Doc, i int) (float64, int, bool) {
	toks := doc.Tokens
	if !doc.LikeNum(i) {
		return 0, 0, false
	}
	if i > 0 && toks[i-1].Text == "/" {
		return 0, 0, false
	}
	q, ok := nlp.Quantity(toks[i].Text)
	if !ok {
		return 0, 0, false
	}
	next := i + 1
	if isWhole(q) && next < len(toks) && nlp.IsFraction(toks[next].Text) {
		f, _ := nlp.Quantity(toks[next].Text)
		q += f
		next++
	}
	if next < len(toks) && toks[next].Text == "/" {
		return 0, 0, false
	}
	return q, next, true
}
