package ui

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/popup-combobox/internal/backend"
	"github.com/atomicstack/popup-combobox/internal/logging"
)

func TestMouseSelectsRowAndDismissesOtherField(t *testing.T) {
	m := newTestModel(t, Options{})
	h := NewHarness(m)
	origin, dest := m.Page().Boxes()[0], m.Page().Boxes()[1]

	if !h.Click(origin.InputID()) {
		t.Fatalf("origin input not on screen")
	}
	if !origin.IsOpen() {
		t.Fatalf("expected click on input to open origin")
	}
	h.Key("ctrl+u")
	h.Type("xyz")

	if !h.Click(dest.InputID()) {
		t.Fatalf("destination input not on screen")
	}
	if origin.IsOpen() || origin.Query() != "Málaga" {
		t.Fatalf("expected origin closed and restored, open=%v query=%q", origin.IsOpen(), origin.Query())
	}
	if !dest.IsOpen() {
		t.Fatalf("expected destination open")
	}

	h.Key("ctrl+u")
	if !h.Click(dest.RowID(1)) {
		t.Fatalf("destination row not on screen:\n%s", h.PlainView())
	}
	if got := m.Page().Control("destination").Value(); got != "bcn" {
		t.Fatalf("expected bcn after row click, got %q", got)
	}
	if dest.IsOpen() {
		t.Fatalf("expected destination closed after commit")
	}
}

func TestMouseLabelFocusesInput(t *testing.T) {
	m := newTestModel(t, Options{})
	h := NewHarness(m)
	if !h.Click("destination-label") {
		t.Fatalf("label not on screen")
	}
	if m.Page().Focused() != "destination-search" {
		t.Fatalf("expected label click to focus the search input, got %q", m.Page().Focused())
	}
}

func TestMouseOutsideClosesOpenField(t *testing.T) {
	m := newTestModel(t, Options{})
	h := NewHarness(m)
	origin := m.Page().Boxes()[0]
	h.Click(origin.InputID())
	h.Key("ctrl+u")
	if !origin.Expanded() {
		t.Fatalf("expected expanded origin")
	}
	h.View()
	h.Send(tea.MouseMsg{Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if origin.IsOpen() {
		t.Fatalf("expected click on the title to close origin")
	}
	if m.Page().Focused() != "" {
		t.Fatalf("expected focus to leave the field, got %q", m.Page().Focused())
	}
}

func TestBackendEventsApplyExternalValues(t *testing.T) {
	logging.Configure(filepath.Join(t.TempDir(), "ui.log"))
	t.Cleanup(func() { logging.Configure("") })
	m := newTestModel(t, Options{})
	h := NewHarness(m)

	h.Send(backendEventMsg{event: backend.Event{Path: "values.yaml", Values: map[string]string{"origin": "bcn"}}})
	if got := m.inputs["origin"].Value(); got != "Barcelona" {
		t.Fatalf("expected origin input to follow external value, got %q", got)
	}
	if got := m.currentInfo(); got != "updated origin" {
		t.Fatalf("unexpected info %q", got)
	}

	h.Send(backendEventMsg{event: backend.Event{Values: map[string]string{"origin": "nowhere"}}})
	if !strings.Contains(m.errMsg, "origin=nowhere (unknown value)") {
		t.Fatalf("expected skip report, got %q", m.errMsg)
	}

	h.Send(backendEventMsg{event: backend.Event{Err: errors.New("read failed")}})
	if m.errMsg != "read failed" {
		t.Fatalf("expected backend error shown, got %q", m.errMsg)
	}

	h.Send(backendEventMsg{event: backend.Event{Values: map[string]string{"origin": "bcn"}}})
	if m.errMsg != "" {
		t.Fatalf("expected error cleared after a clean event, got %q", m.errMsg)
	}

	h.Send(backendDoneMsg{})
	if m.backend != nil {
		t.Fatalf("expected watcher dropped after done")
	}
}
