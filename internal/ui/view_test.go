package ui

import (
	"fmt"
	"strings"
	"testing"

	"github.com/atomicstack/popup-combobox/internal/combobox"
	"github.com/atomicstack/popup-combobox/internal/page"
)

func TestViewShowsFieldsClosed(t *testing.T) {
	m := newTestModel(t, Options{})
	view := m.View()
	for _, want := range []string{"Report an incident", "Origin", "Málaga", "Destination", "Madrid"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in view:\n%s", want, view)
		}
	}
	if strings.Contains(view, "Barcelona") {
		t.Fatalf("closed listboxes should not render rows:\n%s", view)
	}
}

func TestViewRendersOpenListbox(t *testing.T) {
	m := newTestModel(t, Options{})
	h := NewHarness(m)
	h.Key("tab")
	h.Key("ctrl+u")

	view := h.PlainView()
	for _, want := range []string{"▌ Madrid", "▌ Málaga ✓", "▌ Barcelona", "Valencia (unavailable)"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in view:\n%s", want, view)
		}
	}
	box := m.Page().Boxes()[0]
	found := false
	for _, id := range m.hits {
		if id == box.RowID(2) {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected row %s in hit map %v", box.RowID(2), m.hits)
	}
}

func TestViewNoMatchesHint(t *testing.T) {
	m := newTestModel(t, Options{})
	h := NewHarness(m)
	h.Key("tab")
	h.Key("ctrl+u")
	h.Type("mdrd")
	view := h.PlainView()
	if !strings.Contains(view, `No matches for "mdrd" (closest: Madrid)`) {
		t.Fatalf("expected no-match hint in view:\n%s", view)
	}

	h.Key("ctrl+u")
	h.Type("qqq")
	view = h.PlainView()
	if !strings.Contains(view, `No matches for "qqq"`) || strings.Contains(view, "closest") {
		t.Fatalf("expected bare no-match status in view:\n%s", view)
	}
}

func TestViewScrollsLongListbox(t *testing.T) {
	options := make([]string, 0, 10)
	for i := 1; i <= 10; i++ {
		options = append(options, fmt.Sprintf("      - {value: v%02d, label: Item %02d}", i, i))
	}
	def, err := page.Parse([]byte("fields:\n  - id: item\n    options:\n"+strings.Join(options, "\n")+"\n"), "long.yaml")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	p, err := page.New(def, combobox.Options{})
	if err != nil {
		t.Fatalf("page: %v", err)
	}
	m := NewModel(p, Options{MaxRows: 3})
	h := NewHarness(m)
	h.Key("tab")
	h.Key("ctrl+u")

	view := h.PlainView()
	if !strings.Contains(view, "Item 03") || strings.Contains(view, "Item 04") {
		t.Fatalf("expected first three rows only:\n%s", view)
	}
	if !strings.Contains(view, "↓ 7 more") {
		t.Fatalf("expected scroll hint:\n%s", view)
	}

	for i := 0; i < 5; i++ {
		h.Key("down")
	}
	view = h.PlainView()
	if !strings.Contains(view, "Item 06") || strings.Contains(view, "Item 03") {
		t.Fatalf("expected viewport to follow the active row:\n%s", view)
	}
	if !strings.Contains(view, "↑ 3 more") {
		t.Fatalf("expected upward scroll hint:\n%s", view)
	}

	h.Key("up")
	h.Key("up")
	h.Key("up")
	h.Key("up")
	h.Key("up")
	h.Key("up")
	view = h.PlainView()
	if !strings.Contains(view, "Item 10") {
		t.Fatalf("expected wrap to the last row to scroll to the bottom:\n%s", view)
	}
}

func TestViewHeightLimitKeepsStatusLine(t *testing.T) {
	m := newTestModel(t, Options{Height: 4})
	m.errMsg = "boom"
	lines := strings.Split(m.View(), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d:\n%s", len(lines), strings.Join(lines, "\n"))
	}
	if lines[3] != "Error: boom" {
		t.Fatalf("expected status line last, got %q", lines[3])
	}
	if len(m.hits) != 4 {
		t.Fatalf("expected hit map to match rendered lines, got %d", len(m.hits))
	}
}
