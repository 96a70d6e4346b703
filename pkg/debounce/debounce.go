// Package debounce delays an action until its trigger has been quiet for a
// fixed window. Each new trigger inside the window cancels the pending run
// and restarts the wait.
package debounce

import (
	"sync"
	"time"
)

// DefaultWait is the quiet period used for search input.
const DefaultWait = 300 * time.Millisecond

// Timer is a cancellable scheduled call.
type Timer interface {
	// Stop prevents the call from running. It reports false if the call
	// already ran or was already stopped.
	Stop() bool
}

// Scheduler runs f once after d has elapsed.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// RealScheduler schedules on the runtime timer.
type RealScheduler struct{}

// AfterFunc implements Scheduler.
func (RealScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Debouncer coalesces bursts of triggers into one call of the most recently
// supplied action. It is safe for concurrent use.
type Debouncer struct {
	sched Scheduler
	wait  time.Duration

	mu      sync.Mutex
	timer   Timer
	action  func()
	seq     uint64
	running sync.Mutex
}

// New creates a Debouncer. A nil scheduler means RealScheduler and a
// non-positive wait means DefaultWait.
func New(wait time.Duration, sched Scheduler) *Debouncer {
	if sched == nil {
		sched = RealScheduler{}
	}
	if wait <= 0 {
		wait = DefaultWait
	}
	return &Debouncer{sched: sched, wait: wait}
}

// Wait returns the quiet period.
func (d *Debouncer) Wait() time.Duration {
	return d.wait
}

// Trigger schedules action to run after the quiet period, replacing any
// action still waiting.
func (d *Debouncer) Trigger(action func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.seq++
	seq := d.seq
	d.action = action
	d.timer = d.sched.AfterFunc(d.wait, func() { d.fire(seq) })
}

// Cancel drops the pending action. It reports whether one was pending.
func (d *Debouncer) Cancel() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.takeLocked() != nil
}

// Flush runs the pending action now, on the caller's goroutine. It reports
// whether an action was pending.
func (d *Debouncer) Flush() bool {
	d.mu.Lock()
	action := d.takeLocked()
	d.mu.Unlock()

	if action == nil {
		return false
	}
	d.run(action)
	return true
}

// Pending reports whether an action is waiting to run.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.action != nil
}

func (d *Debouncer) fire(seq uint64) {
	d.mu.Lock()
	if seq != d.seq || d.action == nil {
		// Superseded by a later trigger, or already cancelled or flushed.
		d.mu.Unlock()
		return
	}
	action := d.action
	d.action = nil
	d.timer = nil
	d.mu.Unlock()

	d.run(action)
}

// takeLocked clears and returns the pending action. d.mu must be held.
func (d *Debouncer) takeLocked() func() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	action := d.action
	d.action = nil
	d.seq++
	return action
}

func (d *Debouncer) run(action func()) {
	d.running.Lock()
	defer d.running.Unlock()
	action()
}
