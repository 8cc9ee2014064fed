package ui

import (
	"fmt"
	"reflect"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/popup-combobox/internal/backend"
	"github.com/atomicstack/popup-combobox/internal/combobox"
	"github.com/atomicstack/popup-combobox/internal/control"
	"github.com/atomicstack/popup-combobox/internal/data/dispatcher"
	"github.com/atomicstack/popup-combobox/internal/page"
	"github.com/atomicstack/popup-combobox/internal/theme"
	uistate "github.com/atomicstack/popup-combobox/internal/ui/state"
)

// DefaultMaxRows bounds an open listbox when Options.MaxRows is zero.
const DefaultMaxRows = 8

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// Options configures a Model.
type Options struct {
	Width      int
	Height     int
	MaxRows    int
	ShowFooter bool
	Verbose    bool
	Watcher    *backend.Watcher
}

// Result is what the user left the program with.
type Result struct {
	Submitted bool
	Values    []page.Value
}

// Model implements the Bubble Tea model for a page of searchable selectors.
type Model struct {
	page      *page.Page
	inputs    map[string]*textinput.Model
	viewports map[string]*uistate.Viewport

	errMsg      string
	infoMsg     string
	infoExpire  time.Time
	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool
	maxRows     int
	showFooter  bool
	verbose     bool

	backend    *backend.Watcher
	backendErr bool
	dispatcher *dispatcher.Dispatcher

	handlers  map[reflect.Type]msgHandler
	listeners []func()
	hits      []string
	result    Result
}

// NewModel builds the UI around an existing page.
func NewModel(p *page.Page, opts Options) *Model {
	m := &Model{
		page:       p,
		inputs:     make(map[string]*textinput.Model),
		viewports:  make(map[string]*uistate.Viewport),
		maxRows:    opts.MaxRows,
		showFooter: opts.ShowFooter,
		verbose:    opts.Verbose,
		backend:    opts.Watcher,
		dispatcher: dispatcher.New(p),
	}
	if m.maxRows <= 0 {
		m.maxRows = DefaultMaxRows
	}
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}
	for _, box := range p.Boxes() {
		m.inputs[box.UID()] = newSearchInput(box)
		m.viewports[box.UID()] = &uistate.Viewport{}
		if m.verbose {
			m.listeners = append(m.listeners, box.Control().AddListener(control.EventChange, m.noteChange))
		}
	}
	m.registerHandlers()
	return m
}

func newSearchInput(box *combobox.Combobox) *textinput.Model {
	ti := textinput.New()
	ti.Prompt = "» "
	ti.Placeholder = box.Placeholder()
	if styles.InputPrompt != nil {
		ti.PromptStyle = styles.InputPrompt.Copy()
	}
	if styles.Input != nil {
		ti.TextStyle = styles.Input.Copy()
	}
	if styles.InputPlaceholder != nil {
		ti.PlaceholderStyle = styles.InputPlaceholder.Copy()
	}
	if styles.Cursor != nil {
		ti.Cursor.Style = styles.Cursor.Copy()
	}
	ti.Cursor.SetMode(cursor.CursorStatic)
	ti.SetValue(box.Query())
	ti.CursorEnd()
	return &ti
}

func (m *Model) noteChange(sel *control.Select, _ control.EventType) {
	label := sel.Value()
	if box := m.page.Box(sel.ID); box != nil {
		if opt, ok := box.SelectedOption(); ok {
			label = opt.Label
		}
	}
	name := sel.Label
	if name == "" {
		name = sel.ID
	}
	m.setInfo(fmt.Sprintf("%s set to %s", name, label))
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	if m.backend != nil {
		return waitForBackendEvent(m.backend)
	}
	return nil
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 4)
	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	} else if cmd := m.updateFocusedInput(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return m, m.finishUpdate(cmds)
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.MouseMsg{}):      m.handleMouseMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(backendEventMsg{}):   m.handleBackendEventMsg,
		reflect.TypeOf(backendDoneMsg{}):    m.handleBackendDoneMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

// finishUpdate projects selector state back onto the search inputs and
// viewports after every message.
func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	focused := m.page.Focused()
	for _, box := range m.page.Boxes() {
		ti := m.inputs[box.UID()]
		if ti == nil {
			continue
		}
		if ti.Value() != box.Query() {
			ti.SetValue(box.Query())
			ti.CursorEnd()
		}
		if focused == box.InputID() {
			if !ti.Focused() {
				if cmd := ti.Focus(); cmd != nil {
					cmds = append(cmds, cmd)
				}
			}
		} else if ti.Focused() {
			ti.Blur()
		}
		vp := m.viewports[box.UID()]
		if box.Expanded() {
			vp.EnsureVisible(box.ActiveIndex(), len(box.Ranked()), m.maxRows)
		} else {
			vp.Reset()
		}
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// Result returns what the user submitted, if anything.
func (m *Model) Result() Result {
	return m.result
}

// Page exposes the page behind the model.
func (m *Model) Page() *page.Page {
	return m.page
}

// Close releases listeners installed on the page's controls.
func (m *Model) Close() {
	for _, remove := range m.listeners {
		remove()
	}
	m.listeners = nil
}
