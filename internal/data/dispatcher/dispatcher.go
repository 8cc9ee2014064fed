package dispatcher

import (
	"sort"

	"github.com/atomicstack/popup-combobox/internal/backend"
	"github.com/atomicstack/popup-combobox/internal/control"
	"github.com/atomicstack/popup-combobox/internal/logging/events"
)

// Controls looks controls up by ID.
type Controls interface {
	Control(id string) *control.Select
}

// Skip records a value that could not be applied.
type Skip struct {
	ID     string
	Value  string
	Reason string
}

// Result summarises one handled event.
type Result struct {
	Applied   []string
	Unchanged int
	Skipped   []Skip
	Err       error
}

// Changed reports whether any control value changed.
func (r Result) Changed() bool {
	return len(r.Applied) > 0
}

type Dispatcher struct {
	controls Controls
}

func New(controls Controls) *Dispatcher {
	return &Dispatcher{controls: controls}
}

// Handle applies the values carried by evt as external changes, in ID order.
func (d *Dispatcher) Handle(evt backend.Event) Result {
	var res Result
	if evt.Err != nil {
		events.Values.Error(evt.Err)
		res.Err = evt.Err
		return res
	}
	events.Values.Loaded(evt.Path, len(evt.Values))

	ids := make([]string, 0, len(evt.Values))
	for id := range evt.Values {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		value := evt.Values[id]
		sel := d.controls.Control(id)
		switch {
		case sel == nil:
			res.Skipped = append(res.Skipped, d.skip(id, value, "unknown control"))
		case sel.Value() == value:
			res.Unchanged++
		case !sel.Change(value):
			res.Skipped = append(res.Skipped, d.skip(id, value, "unknown value"))
		default:
			events.Values.Applied(id, value)
			res.Applied = append(res.Applied, id)
		}
	}
	return res
}

func (d *Dispatcher) skip(id, value, reason string) Skip {
	events.Values.Skipped(id, value, reason)
	return Skip{ID: id, Value: value, Reason: reason}
}
