package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atomicstack/popup-combobox/internal/control"
)

func cities() Catalog {
	return New([]Option{
		{Value: "mad", Label: "Madrid"},
		{Value: "agp", Label: "Málaga"},
		{Value: "bcn", Label: "Barcelona"},
	})
}

func labels(options []Option) []string {
	out := make([]string, len(options))
	for i, opt := range options {
		out[i] = opt.Label
	}
	return out
}

func TestNormalizeFoldsCaseAndDiacritics(t *testing.T) {
	assert.Equal(t, "jose", Normalize("JOSÉ"))
	assert.Equal(t, "malaga", Normalize("Málaga"))
	assert.Equal(t, "cana", Normalize("CAÑA"))
	assert.Equal(t, "", Normalize(""))
}

func TestRankEmptyQueryReturnsCatalogOrder(t *testing.T) {
	got := Rank(cities(), "")
	assert.Equal(t, []string{"Madrid", "Málaga", "Barcelona"}, labels(got))
}

func TestRankStartsWithTierExcludesNonMatches(t *testing.T) {
	got := Rank(cities(), "ma")
	assert.Equal(t, []string{"Madrid", "Málaga"}, labels(got))
}

func TestRankStartsWithPrecedesContains(t *testing.T) {
	c := New([]Option{
		{Value: "1", Label: "Alcalá de Henares"},
		{Value: "2", Label: "Lalín"},
		{Value: "3", Label: "Laredo"},
		{Value: "4", Label: "Zaragoza"},
		{Value: "5", Label: "La Coruña"},
	})
	got := Rank(c, "la")
	assert.Equal(t, []string{"Lalín", "Laredo", "La Coruña", "Alcalá de Henares"}, labels(got))
}

func TestRankIsCaseAndDiacriticInsensitive(t *testing.T) {
	c := New([]Option{
		{Value: "1", Label: "José Luis"},
		{Value: "2", Label: "María José"},
		{Value: "3", Label: "Pedro"},
	})
	assert.Equal(t, Rank(c, "jose"), Rank(c, "JOSÉ"))
	assert.Equal(t, []string{"José Luis", "María José"}, labels(Rank(c, "jose")))
}

func TestRankKeepsDisabledOptions(t *testing.T) {
	c := New([]Option{
		{Value: "", Label: "Select…", Disabled: true},
		{Value: "s", Label: "Sevilla"},
	})
	got := Rank(c, "sel")
	require.Len(t, got, 1)
	assert.True(t, got[0].Disabled)
}

func TestRankIsTotal(t *testing.T) {
	assert.Empty(t, Rank(Catalog{}, "x"))
	assert.Empty(t, Rank(Catalog{}, ""))
	assert.Empty(t, Rank(cities(), "xyz"))
}

func TestRankOnlyReturnsMatches(t *testing.T) {
	c := cities()
	for _, q := range []string{"a", "rid", "BAR", "lag", "Á", "zz"} {
		for _, opt := range Rank(c, q) {
			assert.Contains(t, Normalize(opt.Label), Normalize(q), "query %q", q)
		}
	}
}

func TestSnapshotPreservesSourceOrder(t *testing.T) {
	sel := control.NewSelect("city", []control.Choice{
		{Value: "", Label: "  Choose  ", Disabled: true},
		{Value: "mad", Label: "Madrid"},
	}, "")
	c := Snapshot(sel)
	require.Equal(t, 2, c.Len())
	first, ok := c.At(0)
	require.True(t, ok)
	assert.Equal(t, "Choose", first.Label)
	assert.True(t, first.Disabled)
	second, _ := c.At(1)
	assert.Equal(t, 1, second.SourceIndex)

	_, ok = c.At(5)
	assert.False(t, ok)
	assert.Equal(t, 0, Snapshot(nil).Len())
}

func TestFindAndFindSelectable(t *testing.T) {
	c := New([]Option{
		{Value: "x", Label: "Disabled X", Disabled: true},
		{Value: "x", Label: "Enabled X"},
	})
	opt, ok := c.Find("x")
	require.True(t, ok)
	assert.Equal(t, "Disabled X", opt.Label)

	opt, ok = c.FindSelectable("x")
	require.True(t, ok)
	assert.Equal(t, "Enabled X", opt.Label)

	_, ok = c.Find("missing")
	assert.False(t, ok)
}

func TestClosestSuggestsFuzzyMatch(t *testing.T) {
	opt, ok := Closest(cities(), "mdrd")
	require.True(t, ok)
	assert.Equal(t, "Madrid", opt.Label)

	_, ok = Closest(cities(), "qqq")
	assert.False(t, ok)
	_, ok = Closest(cities(), "  ")
	assert.False(t, ok)
}
