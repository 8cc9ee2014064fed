package events

import "github.com/atomicstack/popup-combobox/internal/logging"

type AppTracer struct{}

var App = AppTracer{}

func (AppTracer) Start(payload map[string]interface{}) {
	logging.Trace("app.start", payload)
}

func (AppTracer) Submit(values map[string]string) {
	logging.Trace("app.submit", map[string]interface{}{"values": values})
}

func (AppTracer) Abort(reason string) {
	logging.Trace("app.abort", map[string]interface{}{"reason": reason})
}
