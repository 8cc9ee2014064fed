package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/popup-combobox/internal/backend"
	"github.com/atomicstack/popup-combobox/internal/logging"
)

func waitForBackendEvent(w *backend.Watcher) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-w.Events()
		if !ok {
			return backendDoneMsg{}
		}
		return backendEventMsg{event: evt}
	}
}

type backendEventMsg struct {
	event backend.Event
}

type backendDoneMsg struct{}

func (m *Model) handleBackendEventMsg(msg tea.Msg) tea.Cmd {
	eventMsg, ok := msg.(backendEventMsg)
	if !ok {
		return nil
	}
	m.applyBackendEvent(eventMsg.event)
	if m.backend != nil {
		return waitForBackendEvent(m.backend)
	}
	return nil
}

func (m *Model) handleBackendDoneMsg(tea.Msg) tea.Cmd {
	m.backend = nil
	return nil
}

func (m *Model) applyBackendEvent(evt backend.Event) {
	res := m.dispatcher.Handle(evt)
	if res.Err != nil {
		logging.Error(res.Err)
		m.errMsg = res.Err.Error()
		m.backendErr = true
		return
	}
	if len(res.Skipped) > 0 {
		parts := make([]string, len(res.Skipped))
		for i, skip := range res.Skipped {
			parts[i] = fmt.Sprintf("%s=%s (%s)", skip.ID, skip.Value, skip.Reason)
		}
		m.errMsg = "ignored " + strings.Join(parts, ", ")
		m.backendErr = true
	} else if m.backendErr {
		m.errMsg = ""
		m.backendErr = false
	}
	if res.Changed() && !m.verbose {
		m.setInfo(fmt.Sprintf("updated %s", strings.Join(res.Applied, ", ")))
	}
}
