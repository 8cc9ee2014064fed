package combobox

import "github.com/atomicstack/popup-combobox/internal/logging/events"

// Handle is what a Coordinator needs from an instance.
type Handle interface {
	Contains(id string) bool
	IsOpen() bool
	Dismiss()
}

type registration struct {
	id     int
	handle Handle
}

// Coordinator is the single page-level listener that closes open instances
// when a pointer press or Escape happens outside them. It only reads each
// handle's region and open flag and calls Dismiss.
type Coordinator struct {
	handles []registration
	nextID  int
}

// NewCoordinator returns an empty coordinator.
func NewCoordinator() *Coordinator {
	return &Coordinator{}
}

// Register adds h and returns a function removing it again.
func (c *Coordinator) Register(h Handle) func() {
	if h == nil {
		return func() {}
	}
	c.nextID++
	id := c.nextID
	c.handles = append(c.handles, registration{id: id, handle: h})
	return func() {
		for i, reg := range c.handles {
			if reg.id == id {
				c.handles = append(c.handles[:i:i], c.handles[i+1:]...)
				return
			}
		}
	}
}

// Len returns the number of registered handles.
func (c *Coordinator) Len() int {
	return len(c.handles)
}

// PointerDown dismisses every open instance not containing target and
// returns how many were dismissed.
func (c *Coordinator) PointerDown(target string) int {
	n := c.dismissOutside(target)
	events.Page.Dismiss("pointer", target, n)
	return n
}

// KeyDown dismisses open instances not containing target when key is
// Escape. Other keys are ignored.
func (c *Coordinator) KeyDown(key, target string) int {
	if key != "esc" && key != "escape" {
		return 0
	}
	n := c.dismissOutside(target)
	events.Page.Dismiss("escape", target, n)
	return n
}

// Close drops every registration.
func (c *Coordinator) Close() {
	c.handles = nil
}

func (c *Coordinator) dismissOutside(target string) int {
	handles := append([]registration(nil), c.handles...)
	n := 0
	for _, reg := range handles {
		if !reg.handle.IsOpen() || reg.handle.Contains(target) {
			continue
		}
		reg.handle.Dismiss()
		n++
	}
	return n
}
