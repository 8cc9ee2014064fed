// Package combobox implements a searchable selector layered over a native
// selection control.
//
// A Combobox keeps two representations of the choice in step: the control's
// value, which is authoritative, and a free-text query that normally shows
// the selected label but may diverge while the user is typing. Closing the
// widget without a commit always puts the selected label back.
//
// States are Closed, Open with no active row, and Open with an active row.
// Every transition runs synchronously and returns whether it took effect.
// Rendering goes through Listbox, which derives a view without touching
// state. A Coordinator shared by all instances on a page closes instances
// when interaction happens outside them.
package combobox

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/atomicstack/popup-combobox/internal/catalog"
	"github.com/atomicstack/popup-combobox/internal/control"
	"github.com/atomicstack/popup-combobox/internal/logging/events"
)

// DefaultPlaceholder is shown in the search field when neither the control
// nor Options supply one.
const DefaultPlaceholder = "Search..."

// Options carries page-level defaults for new instances.
type Options struct {
	Placeholder string
}

// Combobox is one searchable selector instance.
type Combobox struct {
	sel         *control.Select
	uid         string
	placeholder string
	catalog     catalog.Catalog
	ranked      []catalog.Option
	query       string
	active      int
	open        bool
	// source index of the last committed option, used to tell duplicate
	// values apart
	selectedIndex int
	unsubscribe   func()
}

// Attach sets up a selector on sel. It declines, creating nothing, when sel
// is nil or already carries a selector. index numbers anonymous controls.
func Attach(sel *control.Select, index int, opts Options) (*Combobox, bool) {
	if sel == nil {
		events.Combobox.Decline("", "missing control")
		return nil, false
	}
	if sel.Ready() {
		events.Combobox.Decline(sel.ID, "already initialised")
		return nil, false
	}
	sel.MarkReady()

	uid := strings.TrimSpace(sel.ID)
	if uid == "" {
		uid = fmt.Sprintf("combobox-%d", index+1)
	}
	placeholder := strings.TrimSpace(sel.Placeholder)
	if placeholder == "" {
		placeholder = strings.TrimSpace(opts.Placeholder)
	}
	if placeholder == "" {
		placeholder = DefaultPlaceholder
	}

	c := &Combobox{
		sel:           sel,
		uid:           uid,
		placeholder:   placeholder,
		catalog:       catalog.Snapshot(sel),
		active:        -1,
		selectedIndex: -1,
	}
	c.unsubscribe = sel.AddListener(control.EventChange, c.handleChange)
	c.syncQuery()
	c.refresh("")
	events.Combobox.Init(uid, c.catalog.Len(), sel.Value())
	return c, true
}

// Detach stops observing the underlying control.
func (c *Combobox) Detach() {
	if c.unsubscribe != nil {
		c.unsubscribe()
		c.unsubscribe = nil
	}
}

// UID returns the identifier all element IDs derive from.
func (c *Combobox) UID() string { return c.uid }

// RootID identifies the element wrapping the whole instance.
func (c *Combobox) RootID() string { return c.uid + "-combobox" }

// InputID identifies the search field.
func (c *Combobox) InputID() string { return c.uid + "-search" }

// ListID identifies the listbox.
func (c *Combobox) ListID() string { return c.uid + "-list" }

// RowID identifies the listbox row for the option at sourceIndex.
func (c *Combobox) RowID(sourceIndex int) string {
	return c.uid + "-option-" + strconv.Itoa(sourceIndex)
}

// Control returns the underlying selection control.
func (c *Combobox) Control() *control.Select { return c.sel }

// Catalog returns the option snapshot taken at setup.
func (c *Combobox) Catalog() catalog.Catalog { return c.catalog }

// Placeholder returns the search field hint.
func (c *Combobox) Placeholder() string { return c.placeholder }

// Disabled reports whether the underlying control is disabled.
func (c *Combobox) Disabled() bool { return c.sel.Disabled }

// Query returns the search text.
func (c *Combobox) Query() string { return c.query }

// ActiveIndex returns the highlighted position in Ranked, or -1.
func (c *Combobox) ActiveIndex() int { return c.active }

// IsOpen reports the logical open state.
func (c *Combobox) IsOpen() bool { return c.open }

// Expanded reports whether the listbox is visible: open with at least one row.
func (c *Combobox) Expanded() bool { return c.open && len(c.ranked) > 0 }

// Ranked returns a copy of the current filtered list.
func (c *Combobox) Ranked() []catalog.Option {
	return append([]catalog.Option(nil), c.ranked...)
}

// SelectedValue returns the control's value.
func (c *Combobox) SelectedValue() string { return c.sel.Value() }

// SelectedOption resolves the control's value to a catalog entry. When the
// value matches nothing the first option stands in, as a browser would show.
func (c *Combobox) SelectedOption() (catalog.Option, bool) {
	value := c.sel.Value()
	if opt, ok := c.catalog.At(c.selectedIndex); ok && opt.Value == value {
		return opt, true
	}
	if opt, ok := c.catalog.Find(value); ok {
		return opt, true
	}
	return c.catalog.At(0)
}

// Contains reports whether the element id belongs to this instance.
func (c *Combobox) Contains(id string) bool {
	if id == "" {
		return false
	}
	switch id {
	case c.RootID(), c.InputID(), c.ListID():
		return true
	}
	if c.sel.ID != "" && id == c.sel.ID {
		return true
	}
	_, ok := c.rowSourceIndex(id)
	return ok
}

func (c *Combobox) rowSourceIndex(id string) (int, bool) {
	prefix := c.uid + "-option-"
	if !strings.HasPrefix(id, prefix) {
		return 0, false
	}
	idx, err := strconv.Atoi(strings.TrimPrefix(id, prefix))
	if err != nil || idx < 0 || idx >= c.catalog.Len() {
		return 0, false
	}
	return idx, true
}

// Focus opens the listbox for the current query.
func (c *Combobox) Focus() bool {
	return c.openFromQuery()
}

// PointerActivate opens the listbox for the current query.
func (c *Combobox) PointerActivate() bool {
	return c.openFromQuery()
}

func (c *Combobox) openFromQuery() bool {
	if c.Disabled() {
		return false
	}
	c.refresh(c.query)
	c.open = true
	events.Combobox.Open(c.uid, c.query, len(c.ranked))
	return true
}

// EditText replaces the query, re-ranks, and highlights the best match.
func (c *Combobox) EditText(text string) bool {
	if c.Disabled() {
		return false
	}
	c.query = text
	c.refresh(text)
	if len(c.ranked) > 0 {
		c.active = 0
	} else {
		c.active = -1
	}
	c.open = true
	events.Combobox.Query(c.uid, text, len(c.ranked))
	return true
}

// MoveDown highlights the next row, wrapping to the first.
func (c *Combobox) MoveDown() bool {
	return c.move(1)
}

// MoveUp highlights the previous row, wrapping to the last.
func (c *Combobox) MoveUp() bool {
	return c.move(-1)
}

func (c *Combobox) move(delta int) bool {
	if c.Disabled() {
		return false
	}
	if !c.Expanded() {
		c.refresh(c.query)
		c.open = true
	}
	n := len(c.ranked)
	if n == 0 {
		c.active = -1
		return false
	}
	switch {
	case c.active < 0 && delta > 0:
		c.active = 0
	case c.active < 0:
		c.active = n - 1
	default:
		c.active = ((c.active+delta)%n + n) % n
	}
	events.Combobox.Active(c.uid, c.active)
	return true
}

// Commit selects the highlighted row. It does nothing unless the listbox is
// expanded with an active row.
func (c *Combobox) Commit() bool {
	if c.Disabled() || !c.Expanded() {
		return false
	}
	return c.CommitAt(c.active)
}

// CommitAt selects the row at position i of Ranked.
func (c *Combobox) CommitAt(i int) bool {
	if c.Disabled() || i < 0 || i >= len(c.ranked) {
		return false
	}
	return c.commit(c.ranked[i])
}

// CommitElement selects the row identified by a row element ID.
func (c *Combobox) CommitElement(id string) bool {
	idx, ok := c.rowSourceIndex(id)
	if !ok {
		return false
	}
	for i, opt := range c.ranked {
		if opt.SourceIndex == idx {
			return c.CommitAt(i)
		}
	}
	return false
}

func (c *Combobox) commit(opt catalog.Option) bool {
	if opt.Disabled {
		events.Combobox.Reject(c.uid, opt.Value)
		return false
	}
	if !c.sel.SetValue(opt.Value) {
		events.Combobox.Reject(c.uid, opt.Value)
		return false
	}
	c.selectedIndex = opt.SourceIndex
	c.query = opt.Label
	events.Combobox.Commit(c.uid, opt.Value, opt.Label)
	c.sel.Dispatch(control.EventInput)
	c.sel.Dispatch(control.EventChange)
	c.close(events.CloseCommit)
	return true
}

// Cancel discards the typed query and closes without changing the value.
func (c *Combobox) Cancel() bool {
	if c.Disabled() {
		return false
	}
	return c.restore(events.CloseCancel)
}

// Blur closes the instance when focus moves to an element outside it.
func (c *Combobox) Blur(next string) bool {
	if c.Contains(next) {
		return false
	}
	return c.restore(events.CloseBlur)
}

// Dismiss closes the instance on behalf of a Coordinator.
func (c *Combobox) Dismiss() {
	c.restore(events.CloseDismiss)
}

func (c *Combobox) restore(reason events.CloseReason) bool {
	before := c.query
	wasOpen := c.open
	c.close(reason)
	c.syncQuery()
	return wasOpen || before != c.query
}

func (c *Combobox) close(reason events.CloseReason) {
	if c.open {
		events.Combobox.Close(c.uid, reason)
	}
	c.open = false
	c.active = -1
}

func (c *Combobox) refresh(query string) {
	c.ranked = catalog.Rank(c.catalog, query)
	if c.active >= len(c.ranked) {
		c.active = -1
	}
}

func (c *Combobox) syncQuery() {
	if opt, ok := c.SelectedOption(); ok {
		c.query = opt.Label
		return
	}
	c.query = ""
}

func (c *Combobox) handleChange(*control.Select, control.EventType) {
	c.syncQuery()
	events.Combobox.Sync(c.uid, c.sel.Value())
}
