package events

import "github.com/atomicstack/popup-combobox/internal/logging"

type PageTracer struct{}

type ValuesTracer struct{}

var (
	Page   = PageTracer{}
	Values = ValuesTracer{}
)

func (PageTracer) Focus(from, to string) {
	logging.Trace("page.focus", map[string]interface{}{"from": from, "to": to})
}

func (PageTracer) Click(target string) {
	logging.Trace("page.click", map[string]interface{}{"target": target})
}

func (PageTracer) Key(key, target string) {
	logging.Trace("page.key", map[string]interface{}{"key": key, "target": target})
}

func (PageTracer) Dismiss(trigger, target string, count int) {
	logging.Trace("page.dismiss", map[string]interface{}{"trigger": trigger, "target": target, "count": count})
}

func (PageTracer) Reset(changed int) {
	logging.Trace("page.reset", map[string]interface{}{"changed": changed})
}

func (ValuesTracer) Loaded(path string, count int) {
	logging.Trace("values.loaded", map[string]interface{}{"path": path, "count": count})
}

func (ValuesTracer) Applied(id, value string) {
	logging.Trace("values.applied", map[string]interface{}{"id": id, "value": value})
}

func (ValuesTracer) Skipped(id, value, reason string) {
	logging.Trace("values.skipped", map[string]interface{}{"id": id, "value": value, "reason": reason})
}

func (ValuesTracer) Error(err error) {
	if err == nil {
		return
	}
	logging.Trace("values.error", map[string]interface{}{"error": err.Error()})
}
