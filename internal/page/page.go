// Package page hosts a set of selection controls and routes focus, pointer
// and key events to the searchable selectors attached to them.
package page

import (
	"strings"

	"github.com/atomicstack/popup-combobox/internal/combobox"
	"github.com/atomicstack/popup-combobox/internal/control"
	"github.com/atomicstack/popup-combobox/internal/logging/events"
)

// Value is the submitted state of one control.
type Value struct {
	ID    string
	Name  string
	Value string
	Label string
}

// Page owns the controls of a Definition, one selector per control and the
// coordinator shared between them.
type Page struct {
	Title string

	opts       combobox.Options
	controls   []*control.Select
	boxes      []*combobox.Combobox
	coord      *combobox.Coordinator
	labels     map[string]string
	initial    map[*control.Select]string
	unregister []func()
	focused    string
}

// LabelID returns the element ID of the label describing controlID.
func LabelID(controlID string) string {
	return controlID + "-label"
}

// New builds the page described by def.
func New(def Definition, opts combobox.Options) (*Page, error) {
	if len(def.Fields) == 0 {
		return nil, ErrNoFields
	}
	p := &Page{
		Title:   strings.TrimSpace(def.Title),
		opts:    opts,
		coord:   combobox.NewCoordinator(),
		labels:  make(map[string]string),
		initial: make(map[*control.Select]string),
	}
	for _, f := range def.Fields {
		p.Enhance(f.Control())
	}
	return p, nil
}

// Enhance attaches a selector to sel and adds it to the page. Controls that
// already carry a selector are skipped and false is returned.
func (p *Page) Enhance(sel *control.Select) bool {
	box, ok := combobox.Attach(sel, len(p.boxes), p.opts)
	if !ok {
		return false
	}
	p.controls = append(p.controls, sel)
	p.boxes = append(p.boxes, box)
	p.initial[sel] = sel.Value()
	p.unregister = append(p.unregister, p.coord.Register(box))
	if sel.Label != "" {
		p.labels[LabelID(box.UID())] = box.InputID()
	}
	return true
}

// Boxes returns the selectors in page order.
func (p *Page) Boxes() []*combobox.Combobox {
	return append([]*combobox.Combobox(nil), p.boxes...)
}

// Control returns the control with the given ID.
func (p *Page) Control(id string) *control.Select {
	for _, sel := range p.controls {
		if sel.ID == id {
			return sel
		}
	}
	return nil
}

// Box returns the selector whose region contains the element id.
func (p *Page) Box(id string) *combobox.Combobox {
	for _, box := range p.boxes {
		if box.Contains(id) {
			return box
		}
	}
	return nil
}

// LabelTarget returns the element a label focuses when clicked.
func (p *Page) LabelTarget(labelID string) (string, bool) {
	target, ok := p.labels[labelID]
	return target, ok
}

// Focused returns the element ID holding focus, or "".
func (p *Page) Focused() string {
	return p.focused
}

// FocusedBox returns the selector holding focus, or nil.
func (p *Page) FocusedBox() *combobox.Combobox {
	return p.Box(p.focused)
}

// Focus moves focus to the element id. The previously focused selector is
// blurred when focus leaves its region and a search input gaining focus
// opens its listbox.
func (p *Page) Focus(id string) bool {
	if id == p.focused {
		return false
	}
	prev := p.focused
	p.focused = id
	events.Page.Focus(prev, id)
	if box := p.Box(prev); box != nil {
		box.Blur(id)
	}
	if box := p.Box(id); box != nil && id == box.InputID() {
		box.Focus()
	}
	return true
}

// Click delivers a pointer activation on the element id: focus moves first,
// then the element reacts, then the coordinator closes instances the press
// landed outside of.
func (p *Page) Click(id string) {
	events.Page.Click(id)
	target := id
	if input, ok := p.labels[id]; ok {
		target = input
	}

	box := p.Box(target)
	switch {
	case box == nil:
		p.Focus(target)
	case target == box.InputID():
		if !p.Focus(target) {
			box.PointerActivate()
		}
	case box.Contains(target) && target != box.RootID() && target != box.ListID() && target != box.Control().ID:
		p.Focus(box.InputID())
		box.CommitElement(target)
	}
	p.coord.PointerDown(target)
}

// KeyDown delivers a key press to the focused selector and then to the
// coordinator. It reports whether anything reacted.
func (p *Page) KeyDown(key string) bool {
	events.Page.Key(key, p.focused)
	handled := false
	if box := p.FocusedBox(); box != nil && p.focused == box.InputID() {
		switch key {
		case "down":
			handled = box.MoveDown()
		case "up":
			handled = box.MoveUp()
		case "enter":
			handled = box.Commit()
		case "esc", "escape":
			handled = box.Cancel()
		}
	}
	if p.coord.KeyDown(key, p.focused) > 0 {
		handled = true
	}
	return handled
}

// Input replaces the text of the focused search input.
func (p *Page) Input(text string) bool {
	box := p.FocusedBox()
	if box == nil || p.focused != box.InputID() {
		return false
	}
	return box.EditText(text)
}

// FocusNext moves focus to the next enabled search input, wrapping around,
// and returns the newly focused ID.
func (p *Page) FocusNext() string {
	return p.cycle(1)
}

// FocusPrev moves focus to the previous enabled search input.
func (p *Page) FocusPrev() string {
	return p.cycle(-1)
}

func (p *Page) cycle(delta int) string {
	var inputs []string
	current := -1
	for _, box := range p.boxes {
		if box.Disabled() {
			continue
		}
		if box.Contains(p.focused) {
			current = len(inputs)
		}
		inputs = append(inputs, box.InputID())
	}
	if len(inputs) == 0 {
		return p.focused
	}
	var next int
	switch {
	case current < 0 && delta > 0:
		next = 0
	case current < 0:
		next = len(inputs) - 1
	default:
		next = ((current+delta)%len(inputs) + len(inputs)) % len(inputs)
	}
	p.Focus(inputs[next])
	return p.focused
}

// Values returns the current value of every control in page order.
func (p *Page) Values() []Value {
	out := make([]Value, 0, len(p.boxes))
	for _, box := range p.boxes {
		sel := box.Control()
		v := Value{ID: box.UID(), Name: sel.Name, Value: sel.Value()}
		if opt, ok := box.SelectedOption(); ok {
			v.Label = opt.Label
		}
		out = append(out, v)
	}
	return out
}

// Reset restores every control to its initial value through external change
// notifications and returns how many controls changed.
func (p *Page) Reset() int {
	changed := 0
	for _, sel := range p.controls {
		want := p.initial[sel]
		if sel.Value() == want {
			continue
		}
		if sel.Change(want) {
			changed++
		}
	}
	events.Page.Reset(changed)
	return changed
}

// Close detaches every selector from its control and the coordinator.
func (p *Page) Close() {
	for _, fn := range p.unregister {
		fn()
	}
	p.unregister = nil
	for _, box := range p.boxes {
		box.Detach()
	}
	p.coord.Close()
}
