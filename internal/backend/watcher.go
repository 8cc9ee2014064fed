// Package backend watches an external values file and reports changes that
// should be applied to the page's controls.
package backend

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultInterval is used when NewWatcher receives a non-positive interval.
const DefaultInterval = 500 * time.Millisecond

const minReread = 25 * time.Millisecond

// Event conveys the decoded values file or the error hit reading it.
type Event struct {
	Path   string
	Values map[string]string
	Err    error
}

// Watcher polls a values file and publishes an event whenever its content
// or read error changes.
type Watcher struct {
	path     string
	interval time.Duration

	ctx    context.Context
	cancel context.CancelFunc

	events chan Event
	wg     sync.WaitGroup

	last    []byte
	lastErr string
}

// NewWatcher starts polling path every interval.
func NewWatcher(path string, interval time.Duration) *Watcher {
	return NewWatcherContext(context.Background(), path, interval)
}

// NewWatcherContext is NewWatcher bound to a parent context.
func NewWatcherContext(parent context.Context, path string, interval time.Duration) *Watcher {
	if interval <= 0 {
		interval = DefaultInterval
	}
	ctx, cancel := context.WithCancel(parent)
	w := &Watcher{
		path:     path,
		interval: interval,
		ctx:      ctx,
		cancel:   cancel,
		events:   make(chan Event, 4),
	}

	w.wg.Add(1)
	go w.poll(newThrottle(minReread))

	go func() {
		w.wg.Wait()
		close(w.events)
	}()

	return w
}

// Events returns the channel of value events. It is closed once the poller
// exits.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Path returns the watched file.
func (w *Watcher) Path() string {
	return w.path
}

// Stop cancels the watcher.
func (w *Watcher) Stop() {
	w.cancel()
}

// Wait blocks until the poller has exited and the events channel is closed.
func (w *Watcher) Wait() {
	w.wg.Wait()
}

func (w *Watcher) poll(th *throttle) {
	defer w.wg.Done()

	emit := func() bool {
		if !th.wait(w.ctx) {
			return false
		}
		evt, changed := w.read()
		if !changed {
			return true
		}
		select {
		case <-w.ctx.Done():
			return false
		case w.events <- evt:
			return true
		}
	}

	if !emit() {
		return
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return
		case <-ticker.C:
			if !emit() {
				return
			}
		}
	}
}

func (w *Watcher) read() (Event, bool) {
	evt := Event{Path: w.path}
	data, err := os.ReadFile(w.path)
	if err == nil {
		if w.last != nil && bytes.Equal(data, w.last) {
			return evt, false
		}
		w.last = data
		w.lastErr = ""
		evt.Values, err = ParseValues(data)
		if err != nil {
			err = fmt.Errorf("parse values in %q: %w", w.path, err)
		}
	} else {
		w.last = nil
	}
	if err != nil {
		if err.Error() == w.lastErr {
			return evt, false
		}
		w.lastErr = err.Error()
		evt.Err = err
	}
	return evt, true
}

// ParseValues decodes a YAML mapping of control IDs to values. An empty
// document yields an empty map.
func ParseValues(data []byte) (map[string]string, error) {
	values := map[string]string{}
	if len(bytes.TrimSpace(data)) == 0 {
		return values, nil
	}
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, err
	}
	return values, nil
}
