package state

// Viewport tracks which slice of a listbox's rows is on screen.
type Viewport struct {
	Offset int
}

// EnsureVisible adjusts the offset so the row at cursor stays inside a window
// of maxVisible rows. A negative cursor only clamps the offset.
func (v *Viewport) EnsureVisible(cursor, total, maxVisible int) {
	if total == 0 || maxVisible <= 0 {
		v.Offset = 0
		return
	}
	maxOffset := total - maxVisible
	if maxOffset < 0 {
		maxOffset = 0
	}
	if v.Offset > maxOffset {
		v.Offset = maxOffset
	}
	if v.Offset < 0 {
		v.Offset = 0
	}
	if cursor < 0 {
		return
	}
	if cursor >= total {
		cursor = total - 1
	}
	if cursor < v.Offset {
		v.Offset = cursor
	}
	upper := v.Offset + maxVisible - 1
	if cursor > upper {
		v.Offset = cursor - maxVisible + 1
		if v.Offset > maxOffset {
			v.Offset = maxOffset
		}
	}
}

// Window returns the half-open range of visible rows.
func (v *Viewport) Window(total, maxVisible int) (start, end int) {
	if maxVisible <= 0 || total <= maxVisible {
		return 0, total
	}
	start = v.Offset
	if start < 0 {
		start = 0
	}
	if start+maxVisible > total {
		start = total - maxVisible
	}
	return start, start + maxVisible
}

// Reset scrolls back to the top.
func (v *Viewport) Reset() {
	v.Offset = 0
}
