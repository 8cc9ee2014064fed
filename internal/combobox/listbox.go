package combobox

import "strconv"

// Row is one rendered listbox entry.
type Row struct {
	ID          string
	Value       string
	Label       string
	SourceIndex int
	Disabled    bool
	Selected    bool
	Active      bool
}

// ListboxView is the rendered form of a Combobox. It is derived entirely
// from the instance state, so producing it twice yields equal values.
type ListboxView struct {
	RootID           string
	InputID          string
	ListID           string
	Query            string
	Placeholder      string
	Disabled         bool
	Expanded         bool
	ActiveDescendant string
	Rows             []Row
}

// Listbox projects the current state into a ListboxView.
func (c *Combobox) Listbox() ListboxView {
	view := ListboxView{
		RootID:      c.RootID(),
		InputID:     c.InputID(),
		ListID:      c.ListID(),
		Query:       c.query,
		Placeholder: c.placeholder,
		Disabled:    c.Disabled(),
		Expanded:    c.Expanded(),
		Rows:        make([]Row, len(c.ranked)),
	}
	selected := -1
	if opt, ok := c.SelectedOption(); ok {
		selected = opt.SourceIndex
	}
	for i, opt := range c.ranked {
		row := Row{
			ID:          c.RowID(opt.SourceIndex),
			Value:       opt.Value,
			Label:       opt.Label,
			SourceIndex: opt.SourceIndex,
			Disabled:    opt.Disabled,
			Selected:    opt.SourceIndex == selected,
			Active:      view.Expanded && i == c.active,
		}
		if row.Active {
			view.ActiveDescendant = row.ID
		}
		view.Rows[i] = row
	}
	return view
}

// InputAttributes returns the accessibility attributes of the search field.
func (v ListboxView) InputAttributes() map[string]string {
	attrs := map[string]string{
		"id":                v.InputID,
		"role":              "combobox",
		"autocomplete":      "off",
		"aria-autocomplete": "list",
		"aria-haspopup":     "listbox",
		"aria-controls":     v.ListID,
		"aria-expanded":     strconv.FormatBool(v.Expanded),
	}
	if v.ActiveDescendant != "" {
		attrs["aria-activedescendant"] = v.ActiveDescendant
	}
	if v.Placeholder != "" {
		attrs["placeholder"] = v.Placeholder
	}
	if v.Disabled {
		attrs["disabled"] = "true"
	}
	return attrs
}

// ListAttributes returns the accessibility attributes of the listbox.
func (v ListboxView) ListAttributes() map[string]string {
	return map[string]string{
		"id":   v.ListID,
		"role": "listbox",
	}
}

// ActiveRow returns the highlighted row, if any.
func (v ListboxView) ActiveRow() (Row, bool) {
	for _, row := range v.Rows {
		if row.Active {
			return row, true
		}
	}
	return Row{}, false
}

// Attributes returns the accessibility attributes of a row.
func (r Row) Attributes() map[string]string {
	return map[string]string{
		"id":            r.ID,
		"role":          "option",
		"aria-selected": strconv.FormatBool(r.Selected),
		"data-value":    r.Value,
		"data-disabled": strconv.FormatBool(r.Disabled),
	}
}
