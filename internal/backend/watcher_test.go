package backend

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func nextEvent(t *testing.T, w *Watcher) Event {
	t.Helper()
	select {
	case evt, ok := <-w.Events():
		if !ok {
			t.Fatalf("events channel closed unexpectedly")
		}
		return evt
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for watcher event")
	}
	return Event{}
}

func TestWatcherEmitsOnChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "values.yaml")
	if err := os.WriteFile(path, []byte("origin: agp\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	w := NewWatcher(path, 10*time.Millisecond)
	defer func() {
		w.Stop()
		w.Wait()
	}()

	evt := nextEvent(t, w)
	if evt.Err != nil {
		t.Fatalf("unexpected error: %v", evt.Err)
	}
	if evt.Values["origin"] != "agp" || evt.Path != path {
		t.Fatalf("unexpected event %+v", evt)
	}

	if err := os.WriteFile(path, []byte("origin: bcn\ndestination: mad\n"), 0o644); err != nil {
		t.Fatalf("rewrite: %v", err)
	}
	evt = nextEvent(t, w)
	if evt.Values["origin"] != "bcn" || evt.Values["destination"] != "mad" {
		t.Fatalf("expected updated values, got %+v", evt.Values)
	}
}

func TestWatcherReportsErrorsOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.yaml")
	w := NewWatcher(path, 10*time.Millisecond)
	defer func() {
		w.Stop()
		w.Wait()
	}()

	evt := nextEvent(t, w)
	if evt.Err == nil {
		t.Fatalf("expected read error")
	}

	select {
	case evt := <-w.Events():
		t.Fatalf("repeated error should not be re-emitted, got %+v", evt)
	case <-time.After(100 * time.Millisecond):
	}

	if err := os.WriteFile(path, []byte("a: b\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	evt = nextEvent(t, w)
	if evt.Err != nil || evt.Values["a"] != "b" {
		t.Fatalf("expected recovery, got %+v", evt)
	}
}

func TestWatcherStopClosesEvents(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	path := filepath.Join(t.TempDir(), "values.yaml")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	w := NewWatcherContext(ctx, path, time.Hour)
	evt := nextEvent(t, w)
	if evt.Err != nil || len(evt.Values) != 0 {
		t.Fatalf("expected empty values, got %+v", evt)
	}
	cancel()
	w.Wait()
	if _, ok := <-w.Events(); ok {
		t.Fatalf("expected closed channel")
	}
}

func TestParseValues(t *testing.T) {
	values, err := ParseValues([]byte("priority: 3\nname: \"x\"\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if values["priority"] != "3" || values["name"] != "x" {
		t.Fatalf("unexpected values %+v", values)
	}
	if _, err := ParseValues([]byte("- a\n- b\n")); err == nil {
		t.Fatalf("expected error for a sequence")
	}
}

func TestThrottleHonoursContext(t *testing.T) {
	th := newThrottle(time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	if !th.wait(ctx) {
		t.Fatalf("first wait should pass immediately")
	}
	cancel()
	if th.wait(ctx) {
		t.Fatalf("cancelled wait should report false")
	}
	var nilThrottle *throttle
	if !nilThrottle.wait(context.Background()) {
		t.Fatalf("nil throttle never blocks")
	}
}
