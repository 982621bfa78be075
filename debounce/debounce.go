// Package debounce delays a call until input has been quiet for a fixed period.
package debounce

import (
	"sync"
	"time"
)

// DefaultDelay is the quiet period used for search-as-you-type.
const DefaultDelay = 300 * time.Millisecond

// Token identifies one scheduled call.
type Token uint64

// Debouncer runs only the most recently triggered call, once the quiet
// period has elapsed without another trigger. Earlier pending calls are
// dropped, never run.
type Debouncer struct {
	mu      sync.Mutex
	delay   time.Duration
	timer   *time.Timer
	gen     Token
	stopped bool
}

// New returns a Debouncer with the given quiet period. A non-positive delay
// falls back to DefaultDelay.
func New(delay time.Duration) *Debouncer {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Debouncer{delay: delay}
}

// Trigger schedules fn, cancelling any call that has not fired yet.
//
// fn receives its token. A call that is already running is not interrupted,
// so fn should check Current(token) before publishing a result.
func (d *Debouncer) Trigger(fn func(Token)) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	d.gen++
	token := d.gen
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, func() {
		if d.Current(token) {
			fn(token)
		}
	})
}

// Current reports whether token belongs to the latest trigger.
func (d *Debouncer) Current(token Token) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return !d.stopped && token == d.gen
}

// Stop cancels the pending call and ignores later triggers.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	d.gen++
	if d.timer != nil {
		d.timer.Stop()
	}
}
