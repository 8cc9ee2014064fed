package control

// EventType names a notification emitted by a Select.
type EventType string

const (
	EventInput  EventType = "input"
	EventChange EventType = "change"
)

// Listener receives notifications dispatched by a Select.
type Listener func(sel *Select, evt EventType)

// Choice is one entry of a Select's option set.
type Choice struct {
	Value    string
	Label    string
	Disabled bool
}

// Select models a native single-choice selection control. The option set is
// fixed at construction; only the value changes afterwards.
type Select struct {
	ID          string
	Name        string
	Label       string
	Placeholder string
	Disabled    bool

	choices   []Choice
	value     string
	ready     bool
	listeners map[EventType][]listenerEntry
	nextID    int
}

type listenerEntry struct {
	id int
	fn Listener
}

// NewSelect builds a control. An empty or unknown value falls back to the
// first option's value, mirroring a browser select element.
func NewSelect(id string, choices []Choice, value string) *Select {
	s := &Select{
		ID:        id,
		choices:   append([]Choice(nil), choices...),
		listeners: make(map[EventType][]listenerEntry),
	}
	if !s.SetValue(value) && len(s.choices) > 0 {
		s.value = s.choices[0].Value
	}
	return s
}

// Options returns a copy of the option set in source order.
func (s *Select) Options() []Choice {
	return append([]Choice(nil), s.choices...)
}

// Value returns the current value.
func (s *Select) Value() string {
	return s.value
}

// HasValue reports whether any option carries the supplied value.
func (s *Select) HasValue(value string) bool {
	for _, c := range s.choices {
		if c.Value == value {
			return true
		}
	}
	return false
}

// SetValue changes the value without emitting notifications. Values that no
// option carries are rejected.
func (s *Select) SetValue(value string) bool {
	if !s.HasValue(value) {
		return false
	}
	s.value = value
	return true
}

// Change sets the value and emits input and change notifications, the way a
// script outside any widget would.
func (s *Select) Change(value string) bool {
	if !s.SetValue(value) {
		return false
	}
	s.Dispatch(EventInput)
	s.Dispatch(EventChange)
	return true
}

// Dispatch notifies listeners registered for evt in registration order.
func (s *Select) Dispatch(evt EventType) {
	entries := append([]listenerEntry(nil), s.listeners[evt]...)
	for _, entry := range entries {
		entry.fn(s, evt)
	}
}

// AddListener registers fn for evt and returns a function removing it.
func (s *Select) AddListener(evt EventType, fn Listener) func() {
	if fn == nil {
		return func() {}
	}
	if s.listeners == nil {
		s.listeners = make(map[EventType][]listenerEntry)
	}
	s.nextID++
	id := s.nextID
	s.listeners[evt] = append(s.listeners[evt], listenerEntry{id: id, fn: fn})
	return func() {
		entries := s.listeners[evt]
		for i, entry := range entries {
			if entry.id == id {
				s.listeners[evt] = append(entries[:i:i], entries[i+1:]...)
				return
			}
		}
	}
}

// Ready reports whether a widget has already been set up on this control.
func (s *Select) Ready() bool {
	return s.ready
}

// MarkReady records that a widget owns this control.
func (s *Select) MarkReady() {
	s.ready = true
}
