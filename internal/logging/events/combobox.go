package events

import "github.com/atomicstack/popup-combobox/internal/logging"

type ComboboxTracer struct{}

type CloseReason string

const (
	CloseCommit  CloseReason = "commit"
	CloseCancel  CloseReason = "cancel"
	CloseBlur    CloseReason = "blur"
	CloseDismiss CloseReason = "dismiss"
)

var Combobox = ComboboxTracer{}

func (ComboboxTracer) Init(uid string, options int, value string) {
	logging.Trace("combobox.init", map[string]interface{}{"uid": uid, "options": options, "value": value})
}

func (ComboboxTracer) Decline(id, reason string) {
	logging.Trace("combobox.decline", map[string]interface{}{"id": id, "reason": reason})
}

func (ComboboxTracer) Open(uid, query string, matches int) {
	logging.Trace("combobox.open", map[string]interface{}{"uid": uid, "query": query, "matches": matches})
}

func (ComboboxTracer) Query(uid, query string, matches int) {
	logging.Trace("combobox.query", map[string]interface{}{"uid": uid, "query": query, "matches": matches})
}

func (ComboboxTracer) Active(uid string, index int) {
	logging.Trace("combobox.active", map[string]interface{}{"uid": uid, "index": index})
}

func (ComboboxTracer) Commit(uid, value, label string) {
	logging.Trace("combobox.commit", map[string]interface{}{"uid": uid, "value": value, "label": label})
}

func (ComboboxTracer) Reject(uid, value string) {
	logging.Trace("combobox.reject", map[string]interface{}{"uid": uid, "value": value})
}

func (ComboboxTracer) Close(uid string, reason CloseReason) {
	logging.Trace("combobox.close", map[string]interface{}{"uid": uid, "reason": string(reason)})
}

func (ComboboxTracer) Sync(uid, value string) {
	logging.Trace("combobox.sync", map[string]interface{}{"uid": uid, "value": value})
}
