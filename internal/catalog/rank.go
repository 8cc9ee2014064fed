package catalog

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// combining diacritical marks block
func isCombiningMark(r rune) bool {
	return r >= 0x0300 && r <= 0x036f
}

// Normalize folds s for matching: lower case, canonical decomposition, and
// combining marks removed, so "JOSÉ" and "jose" compare equal.
func Normalize(s string) string {
	lowered := cases.Lower(language.Und).String(s)
	t := transform.Chain(norm.NFD, runes.Remove(runes.Predicate(isCombiningMark)))
	out, _, err := transform.String(t, lowered)
	if err != nil {
		return lowered
	}
	return out
}

// Rank filters and orders the catalog for query. Labels starting with the
// query come first, then labels containing it; each group keeps catalog
// order. Options matching neither are left out. An empty query returns the
// whole catalog.
func Rank(c Catalog, query string) []Option {
	q := Normalize(query)
	if q == "" {
		return c.Options()
	}
	starts := make([]Option, 0, len(c.options))
	var contains []Option
	for _, opt := range c.options {
		label := Normalize(opt.Label)
		switch {
		case strings.HasPrefix(label, q):
			starts = append(starts, opt)
		case strings.Contains(label, q):
			contains = append(contains, opt)
		}
	}
	return append(starts, contains...)
}

// Closest suggests the option whose label is the nearest fuzzy match for
// query. It is only a hint for empty results and never affects Rank.
func Closest(c Catalog, query string) (Option, bool) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" || len(c.options) == 0 {
		return Option{}, false
	}
	labels := make([]string, len(c.options))
	for i, opt := range c.options {
		labels[i] = opt.Label
	}
	ranks := fuzzy.RankFindNormalizedFold(trimmed, labels)
	if len(ranks) == 0 {
		return Option{}, false
	}
	sort.SliceStable(ranks, func(i, j int) bool {
		if ranks[i].Distance != ranks[j].Distance {
			return ranks[i].Distance < ranks[j].Distance
		}
		return ranks[i].OriginalIndex < ranks[j].OriginalIndex
	})
	best := ranks[0]
	if best.OriginalIndex < 0 || best.OriginalIndex >= len(c.options) {
		return Option{}, false
	}
	return c.options[best.OriginalIndex], true
}
