// Package delay coalesces bursts of work into a single delayed call.
package delay

import (
	"sync"
	"time"
)

// Delayer runs the most recently triggered task once no new trigger has
// arrived for the delay.
//
// Each Trigger replaces the pending task and restarts the timer. The task
// can be flushed early with ForceDelivery or dropped with Cancel. All
// methods are safe for concurrent use and a task never runs concurrently
// with itself from the same Delayer. Tasks must not call ForceDelivery on
// their own Delayer.
type Delayer struct {
	mu    sync.Mutex
	run   sync.Mutex
	delay time.Duration
	timer *time.Timer
	task  func()
	seq   uint64 // invalidates callbacks of stopped timers
}

// New creates a delayer with the default delay.
func New(delay time.Duration) *Delayer {
	return &Delayer{delay: delay}
}

// Delay returns the default delay.
func (d *Delayer) Delay() time.Duration {
	return d.delay
}

// Trigger schedules task after the default delay.
func (d *Delayer) Trigger(task func()) {
	d.TriggerAfter(d.delay, task)
}

// TriggerAfter schedules task after delay, replacing any pending task.
// A non-positive delay runs the task synchronously.
func (d *Delayer) TriggerAfter(delay time.Duration, task func()) {
	d.mu.Lock()
	d.task = task
	d.seq++
	seq := d.seq
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	if delay <= 0 {
		d.mu.Unlock()
		d.fire(seq)
		return
	}
	d.timer = time.AfterFunc(delay, func() { d.fire(seq) })
	d.mu.Unlock()
}

func (d *Delayer) fire(seq uint64) {
	d.run.Lock()
	defer d.run.Unlock()

	d.mu.Lock()
	if d.seq != seq || d.task == nil {
		d.mu.Unlock()
		return
	}
	task := d.task
	d.task = nil
	d.timer = nil
	d.mu.Unlock()

	task()
}

// ForceDelivery runs the pending task now and reports whether there was one.
// A task already started by the timer is waited for first, so once
// ForceDelivery returns no earlier trigger is still running.
func (d *Delayer) ForceDelivery() bool {
	d.run.Lock()
	defer d.run.Unlock()

	d.mu.Lock()
	if d.task == nil {
		d.mu.Unlock()
		return false
	}
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.seq++
	task := d.task
	d.task = nil
	d.mu.Unlock()

	task()
	return true
}

// Cancel drops the pending task.
func (d *Delayer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.seq++
	d.task = nil
}

// IsTriggered reports whether a task is waiting to run.
func (d *Delayer) IsTriggered() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.task != nil
}
