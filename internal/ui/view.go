package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/atomicstack/popup-combobox/internal/catalog"
	"github.com/atomicstack/popup-combobox/internal/combobox"
	"github.com/atomicstack/popup-combobox/internal/page"
)

const footerText = "tab next field  ↑/↓ move  enter select  esc close  ctrl+s submit  ctrl+r reset  ctrl+c quit"

type styledLine struct {
	text          string
	style         *lipgloss.Style
	prefixStyle   *lipgloss.Style
	highlightFrom int
	raw           bool // text contains ANSI escapes; skip style wrapping, use ANSI-aware truncation
}

// frame collects rendered lines together with the element each one shows,
// so pointer presses can be mapped back to element IDs.
type frame struct {
	lines []styledLine
	ids   []string
}

func (f *frame) add(id string, line styledLine) {
	f.lines = append(f.lines, line)
	f.ids = append(f.ids, id)
}

// View implements tea.Model.
func (m *Model) View() string {
	var body frame
	if m.page.Title != "" {
		body.add("", styledLine{text: m.page.Title, style: styles.Title})
		body.add("", styledLine{})
	}
	focused := m.page.Focused()
	for i, box := range m.page.Boxes() {
		if i > 0 {
			body.add("", styledLine{})
		}
		m.renderBox(&body, box, focused)
	}
	if info := m.currentInfo(); info != "" {
		body.add("", styledLine{})
		body.add("", styledLine{text: info, style: styles.Info})
	}
	if m.showFooter {
		body.add("", styledLine{})
		body.add("", styledLine{text: footerText, style: styles.Footer})
	}

	// Reserve one row for the status line.
	body.lines = limitHeight(body.lines, m.height-1, m.width)
	if len(body.ids) > len(body.lines) {
		body.ids = body.ids[:len(body.lines)]
		body.ids[len(body.ids)-1] = ""
	}
	body.add("", m.statusLine())
	body.lines = applyWidth(body.lines, m.width)
	m.hits = body.ids
	return renderLines(body.lines)
}

func (m *Model) renderBox(f *frame, box *combobox.Combobox, focused string) {
	view := box.Listbox()
	sel := box.Control()
	if sel.Label != "" {
		style := styles.Label
		if box.Contains(focused) {
			style = styles.FocusedLabel
		}
		f.add(page.LabelID(box.UID()), styledLine{text: sel.Label, style: style})
	}

	if view.Disabled {
		f.add(view.InputID, styledLine{text: "» " + view.Query, style: styles.DisabledInput})
	} else if ti := m.inputs[box.UID()]; ti != nil {
		f.add(view.InputID, styledLine{text: ti.View(), raw: true})
	}
	if !view.Expanded {
		return
	}

	vp := m.viewports[box.UID()]
	vp.EnsureVisible(box.ActiveIndex(), len(view.Rows), m.maxRows)
	start, end := vp.Window(len(view.Rows), m.maxRows)
	if start > 0 {
		f.add(view.ListID, styledLine{text: fmt.Sprintf("  ↑ %d more", start), style: styles.ScrollHint})
	}
	for _, row := range view.Rows[start:end] {
		f.add(row.ID, buildRowLine(row, m.width))
	}
	if end < len(view.Rows) {
		f.add(view.ListID, styledLine{text: fmt.Sprintf("  ↓ %d more", len(view.Rows)-end), style: styles.ScrollHint})
	}
}

// buildRowLine constructs a single styledLine for a listbox row. When width
// is positive the text is padded so the active row's background spans the
// full line.
func buildRowLine(row combobox.Row, width int) styledLine {
	indicator := "▌"
	lineStyle := styles.Row
	indicatorStyle := styles.RowIndicator
	switch {
	case row.Active:
		lineStyle = styles.ActiveRow
		indicatorStyle = styles.ActiveIndicator
	case row.Disabled:
		lineStyle = styles.DisabledRow
	case row.Selected:
		lineStyle = styles.SelectedRow
	}
	text := indicator + " " + row.Label
	if row.Selected {
		text += " ✓"
	}
	if row.Disabled {
		text += " (unavailable)"
	}
	if width > 0 {
		if pad := width - lipgloss.Width(text); pad > 0 {
			text += strings.Repeat(" ", pad)
		}
	}
	return styledLine{
		text:          text,
		style:         lineStyle,
		prefixStyle:   indicatorStyle,
		highlightFrom: 1,
	}
}

func (m *Model) statusLine() styledLine {
	if m.errMsg != "" {
		return styledLine{text: fmt.Sprintf("Error: %s", m.errMsg), style: styles.Error}
	}
	box := m.page.FocusedBox()
	if box == nil || !box.IsOpen() || len(box.Ranked()) > 0 {
		return styledLine{}
	}
	query := box.Query()
	if strings.TrimSpace(query) == "" {
		return styledLine{}
	}
	msg := fmt.Sprintf("No matches for %q", query)
	if opt, ok := catalog.Closest(box.Catalog(), query); ok {
		msg += fmt.Sprintf(" (closest: %s)", opt.Label)
		return styledLine{text: msg, style: styles.Hint}
	}
	return styledLine{text: msg, style: styles.Info}
}

// elementAt returns the element rendered on screen row y by the last View.
func (m *Model) elementAt(y int) string {
	if y < 0 || y >= len(m.hits) {
		return ""
	}
	return m.hits[y]
}

func (m *Model) handleMouseMsg(msg tea.Msg) tea.Cmd {
	ev, ok := msg.(tea.MouseMsg)
	if !ok {
		return nil
	}
	if ev.Action != tea.MouseActionPress {
		return nil
	}
	switch ev.Button {
	case tea.MouseButtonLeft:
		m.errMsg = ""
		m.page.Click(m.elementAt(ev.Y))
	case tea.MouseButtonWheelUp:
		if box := m.page.Box(m.elementAt(ev.Y)); box != nil && box.Expanded() {
			m.page.Focus(box.InputID())
			box.MoveUp()
		}
	case tea.MouseButtonWheelDown:
		if box := m.page.Box(m.elementAt(ev.Y)); box != nil && box.Expanded() {
			m.page.Focus(box.InputID())
			box.MoveDown()
		}
	}
	return nil
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	return nil
}

func (m *Model) setInfo(message string) {
	m.infoMsg = message
	m.infoExpire = time.Now().Add(5 * time.Second)
}

func (m *Model) currentInfo() string {
	if m.infoMsg != "" && !m.infoExpire.IsZero() && time.Now().After(m.infoExpire) {
		m.infoMsg = ""
		m.infoExpire = time.Time{}
	}
	return m.infoMsg
}

func limitHeight(lines []styledLine, height, width int) []styledLine {
	if height <= 0 || len(lines) <= height {
		return lines
	}
	if height == 1 {
		return []styledLine{{text: truncateText("…", width)}}
	}
	trimmed := make([]styledLine, 0, height)
	trimmed = append(trimmed, lines[:height-1]...)
	trimmed = append(trimmed, styledLine{text: truncateText("…", width)})
	return trimmed
}

func applyWidth(lines []styledLine, width int) []styledLine {
	if width <= 0 {
		return lines
	}
	result := make([]styledLine, len(lines))
	for i, line := range lines {
		text := line.text
		if line.raw {
			if lipgloss.Width(text) > width {
				text = truncate.StringWithTail(text, uint(width-1), "…")
			}
		} else {
			text = truncateText(text, width)
		}
		line.text = text
		result[i] = line
	}
	return result
}

func renderLines(lines []styledLine) string {
	out := make([]string, len(lines))
	for i, line := range lines {
		text := line.text
		if line.raw {
			out[i] = text
			continue
		}
		runes := []rune(text)
		if line.highlightFrom > 0 && line.highlightFrom < len(runes) {
			head := string(runes[:line.highlightFrom])
			tail := string(runes[line.highlightFrom:])
			if line.prefixStyle != nil {
				head = line.prefixStyle.Render(head)
			}
			if line.style != nil {
				tail = line.style.Render(tail)
			}
			text = head + tail
		} else if line.style != nil {
			text = line.style.Render(text)
		}
		out[i] = text
	}
	return strings.Join(out, "\n")
}

func truncateText(text string, width int) string {
	if width <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= width {
		return text
	}
	if width == 1 {
		return string(runes[:1])
	}
	return string(runes[:width-1]) + "…"
}
