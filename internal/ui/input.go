package ui

import (
	"fmt"
	"unicode"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/popup-combobox/internal/logging/events"
)

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch keyMsg.String() {
	case "ctrl+c":
		events.App.Abort("interrupt")
		return tea.Quit
	case "ctrl+s":
		return m.submit()
	case "ctrl+r":
		m.reset()
		return nil
	case "tab":
		m.page.FocusNext()
		return nil
	case "shift+tab":
		m.page.FocusPrev()
		return nil
	case "up", "down", "enter":
		m.errMsg = ""
		m.page.KeyDown(keyMsg.String())
		return nil
	case "esc":
		m.errMsg = ""
		if !m.page.KeyDown("esc") {
			events.App.Abort("escape")
			return tea.Quit
		}
		return nil
	}
	return m.handleTextInput(keyMsg)
}

// handleTextInput forwards editing keys to the focused search input and turns
// any change of its text into a selector edit. Printable keys pressed while
// nothing is focused move focus to the first field.
func (m *Model) handleTextInput(msg tea.KeyMsg) tea.Cmd {
	box := m.page.FocusedBox()
	if box == nil || m.page.Focused() != box.InputID() {
		if !isPrintable(msg) {
			return nil
		}
		m.page.FocusNext()
		box = m.page.FocusedBox()
		if box == nil {
			return nil
		}
	}
	if box.Disabled() {
		return nil
	}
	ti := m.inputs[box.UID()]
	if ti == nil {
		return nil
	}
	if !ti.Focused() {
		ti.Focus()
	}
	updated, cmd := ti.Update(msg)
	*ti = updated
	if ti.Value() != box.Query() {
		m.errMsg = ""
		m.page.Input(ti.Value())
	}
	return cmd
}

func (m *Model) updateFocusedInput(msg tea.Msg) tea.Cmd {
	box := m.page.FocusedBox()
	if box == nil {
		return nil
	}
	ti := m.inputs[box.UID()]
	if ti == nil {
		return nil
	}
	updated, cmd := ti.Update(msg)
	*ti = updated
	return cmd
}

func isPrintable(msg tea.KeyMsg) bool {
	switch msg.Type {
	case tea.KeySpace:
		return true
	case tea.KeyRunes:
		if msg.Alt || len(msg.Runes) == 0 {
			return false
		}
		for _, r := range msg.Runes {
			if unicode.IsControl(r) {
				return false
			}
		}
		return true
	}
	return false
}

func (m *Model) submit() tea.Cmd {
	values := m.page.Values()
	m.result = Result{Submitted: true, Values: values}
	payload := make(map[string]string, len(values))
	for _, v := range values {
		payload[v.ID] = v.Value
	}
	events.App.Submit(payload)
	return tea.Quit
}

func (m *Model) reset() {
	n := m.page.Reset()
	m.errMsg = ""
	switch n {
	case 0:
		m.setInfo("nothing to reset")
	case 1:
		m.setInfo("reset 1 field")
	default:
		m.setInfo(fmt.Sprintf("reset %d fields", n))
	}
}
