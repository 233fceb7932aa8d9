// Package watcher reports changes to content files, debounced per file.
package watcher

import (
	"sync"
	"time"
)

// DefaultDebounceDuration is the default debounce window.
const DefaultDebounceDuration = 250 * time.Millisecond

// Debouncer coalesces bursts of events per key. Editors typically write a
// file in several steps; only the last Trigger for a key within the window
// runs its callback.
type Debouncer struct {
	duration time.Duration

	mu      sync.Mutex
	pending map[string]*pendingCall
	seq     uint64
}

type pendingCall struct {
	timer *time.Timer
	seq   uint64
}

// NewDebouncer creates a Debouncer. A zero duration selects
// DefaultDebounceDuration.
func NewDebouncer(duration time.Duration) *Debouncer {
	if duration == 0 {
		duration = DefaultDebounceDuration
	}
	return &Debouncer{
		duration: duration,
		pending:  make(map[string]*pendingCall),
	}
}

// Trigger schedules callback for key, replacing any callback still
// pending for the same key.
func (d *Debouncer) Trigger(key string, callback func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.seq++
	seq := d.seq
	if p, ok := d.pending[key]; ok {
		p.timer.Stop()
	}
	call := &pendingCall{seq: seq}
	call.timer = time.AfterFunc(d.duration, func() {
		if !d.claim(key, seq) {
			return
		}
		callback()
	})
	d.pending[key] = call
}

// claim removes the pending entry if it still belongs to seq. A timer that
// fired while being replaced loses the race and must not run.
func (d *Debouncer) claim(key string, seq uint64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	p, ok := d.pending[key]
	if !ok || p.seq != seq {
		return false
	}
	delete(d.pending, key)
	return true
}

// Pending returns the number of keys waiting to fire.
func (d *Debouncer) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.pending)
}

// Cancel drops every pending callback.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	for key, p := range d.pending {
		p.timer.Stop()
		delete(d.pending, key)
	}
}

// Duration returns the debounce window.
func (d *Debouncer) Duration() time.Duration {
	return d.duration
}
