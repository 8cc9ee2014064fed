// Package catalog holds the immutable option snapshot behind a searchable
// selector and the ranking used to filter it.
package catalog

import (
	"strings"

	"github.com/atomicstack/popup-combobox/internal/control"
)

// Option is one selectable choice. SourceIndex is the option's position in
// the control it was read from and is the default ordering key.
type Option struct {
	Value       string
	Label       string
	SourceIndex int
	Disabled    bool
}

// Catalog is an ordered, read-only snapshot of a control's options. It does
// not follow later changes to the control; callers that mutate a control's
// option set must take a new Snapshot.
type Catalog struct {
	options []Option
}

// Snapshot reads the options of sel once, preserving source order.
func Snapshot(sel *control.Select) Catalog {
	if sel == nil {
		return Catalog{}
	}
	choices := sel.Options()
	options := make([]Option, len(choices))
	for i, c := range choices {
		options[i] = Option{
			Value:       c.Value,
			Label:       strings.TrimSpace(c.Label),
			SourceIndex: i,
			Disabled:    c.Disabled,
		}
	}
	return Catalog{options: options}
}

// New builds a catalog from explicit options, renumbering SourceIndex to
// match the supplied order.
func New(options []Option) Catalog {
	dup := make([]Option, len(options))
	for i, opt := range options {
		opt.SourceIndex = i
		dup[i] = opt
	}
	return Catalog{options: dup}
}

// Len returns the number of options.
func (c Catalog) Len() int {
	return len(c.options)
}

// At returns the option at position i.
func (c Catalog) At(i int) (Option, bool) {
	if i < 0 || i >= len(c.options) {
		return Option{}, false
	}
	return c.options[i], true
}

// Options returns a copy of all options in source order.
func (c Catalog) Options() []Option {
	return append([]Option(nil), c.options...)
}

// Find returns the first option carrying value. Catalogs with duplicate
// values are not supported; the first entry wins.
func (c Catalog) Find(value string) (Option, bool) {
	for _, opt := range c.options {
		if opt.Value == value {
			return opt, true
		}
	}
	return Option{}, false
}

// FindSelectable returns the first enabled option carrying value.
func (c Catalog) FindSelectable(value string) (Option, bool) {
	for _, opt := range c.options {
		if opt.Value == value && !opt.Disabled {
			return opt, true
		}
	}
	return Option{}, false
}
