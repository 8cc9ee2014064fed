package app

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/atomicstack/popup-combobox/internal/combobox"
	"github.com/atomicstack/popup-combobox/internal/page"
	"github.com/atomicstack/popup-combobox/internal/testutil"
)

func loadIncidentPage(t *testing.T) *page.Page {
	t.Helper()
	def, err := page.Load(testutil.Testdata(t, "incident.yaml"))
	require.NoError(t, err)
	p, err := page.New(def, combobox.Options{})
	require.NoError(t, err)
	t.Cleanup(p.Close)
	return p
}

func TestIncidentResultGolden(t *testing.T) {
	p := loadIncidentPage(t)
	for _, tc := range []struct {
		format string
		golden string
	}{
		{OutputYAML, "incident.yaml.golden"},
		{OutputTable, "incident.table.golden"},
	} {
		var buf bytes.Buffer
		require.NoError(t, WriteResult(&buf, tc.format, p.Values()))
		testutil.AssertGolden(t, tc.golden, buf.String())
	}
}

func TestIncidentPageAccentInsensitiveSearch(t *testing.T) {
	p := loadIncidentPage(t)
	province := p.Boxes()[0]
	p.Click(province.InputID())
	p.Input("avila")
	labels := []string{}
	for _, opt := range province.Ranked() {
		labels = append(labels, opt.Label)
	}
	require.Equal(t, []string{"Ávila"}, labels)

	p.Input("al")
	labels = labels[:0]
	for _, opt := range province.Ranked() {
		labels = append(labels, opt.Label)
	}
	require.Equal(t, []string{"Álava", "Almería", "Málaga"}, labels)
}
