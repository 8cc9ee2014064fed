package logging

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func withLogFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "logs", "combobox.log")
	Configure(path)
	t.Cleanup(func() {
		Configure("")
		SetTraceEnabled(false)
	})
	return path
}

func TestTraceWritesJSONLinesWhenEnabled(t *testing.T) {
	path := withLogFile(t)

	Trace("ignored", nil)
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected no log file while tracing disabled, stat err=%v", err)
	}

	SetTraceEnabled(true)
	Trace("combobox.open", map[string]interface{}{"uid": "city"})

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	var entry struct {
		Event   string                 `json:"event"`
		Payload map[string]interface{} `json:"payload"`
	}
	if err := json.Unmarshal([]byte(strings.TrimSpace(string(data))), &entry); err != nil {
		t.Fatalf("decode trace entry: %v", err)
	}
	if entry.Event != "combobox.open" || entry.Payload["uid"] != "city" {
		t.Fatalf("unexpected entry %#v", entry)
	}
}

func TestErrorAppendsToLog(t *testing.T) {
	path := withLogFile(t)
	Error(nil)
	Error(errors.New("boom"))

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "boom") {
		t.Fatalf("expected error in log, got %q", string(data))
	}
}
