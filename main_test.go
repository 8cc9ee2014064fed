package main

import (
	"testing"
	"time"

	"github.com/atomicstack/popup-combobox/internal/app"
	"github.com/atomicstack/popup-combobox/internal/config"
)

func TestCollectTTYDetailsIncludesStandardDescriptors(t *testing.T) {
	info := collectTTYDetails()
	if len(info.Probes) != 3 {
		t.Fatalf("expected 3 probe entries, got %d", len(info.Probes))
	}
	expected := []string{"stdin", "stdout", "stderr"}
	for i, name := range expected {
		if info.Probes[i].Name != name {
			t.Fatalf("expected probe %d name %q, got %q", i, name, info.Probes[i].Name)
		}
	}
}

func TestStartupTracePayloadIncludesFlags(t *testing.T) {
	cfg := config.Config{
		App: app.Config{
			PagePath:     "page.yaml",
			ValuesPath:   "values.yaml",
			PollInterval: time.Second,
			Width:        80,
			Height:       24,
			ShowFooter:   true,
			Verbose:      true,
			Output:       "table",
		},
		Logging: config.Logging{
			FilePath: "trace.log",
			Trace:    true,
		},
		File: "popup.toml",
		Flags: map[string]string{
			"page":    "page.yaml",
			"width":   "80",
			"height":  "24",
			"footer":  "true",
			"verbose": "true",
			"output":  "table",
		},
		Args: []string{"--page", "page.yaml"},
	}

	payload := startupTracePayload(cfg)

	flagsValue, ok := payload["flags"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected flags map in payload")
	}
	if flagsValue["page"] != "page.yaml" {
		t.Fatalf("expected page flag %q, got %v", "page.yaml", flagsValue["page"])
	}
	if flagsValue["width"] != "80" {
		t.Fatalf("expected width 80, got %v", flagsValue["width"])
	}
	if flagsValue["output"] != "table" {
		t.Fatalf("expected output table, got %v", flagsValue["output"])
	}
	if flagsValue["trace"] != true {
		t.Fatalf("expected trace flag true, got %v", flagsValue["trace"])
	}
	if flagsValue["logFile"] != "trace.log" {
		t.Fatalf("expected log file trace.log, got %v", flagsValue["logFile"])
	}
	if payload["configFile"] != "popup.toml" {
		t.Fatalf("expected config file in payload, got %v", payload["configFile"])
	}

	if _, ok := payload["tty"].(ttyDetails); !ok {
		t.Fatalf("expected tty details in payload")
	}
	if cfgValue, ok := payload["config"].(config.Config); !ok {
		t.Fatalf("expected config in payload")
	} else if cfgValue.App != cfg.App {
		t.Fatalf("expected app config %#v, got %#v", cfg.App, cfgValue.App)
	}
}
