package delay

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestDelayerCoalesces(t *testing.T) {
	var calls atomic.Int32
	var last atomic.Int32

	d := New(50 * time.Millisecond)
	for i := 1; i <= 10; i++ {
		n := int32(i)
		d.Trigger(func() {
			calls.Add(1)
			last.Store(n)
		})
	}

	time.Sleep(120 * time.Millisecond)

	if calls.Load() != 1 {
		t.Errorf("expected 1 call, got %d", calls.Load())
	}
	if last.Load() != 10 {
		t.Errorf("expected last task to win, got %d", last.Load())
	}
}

func TestDelayerReschedules(t *testing.T) {
	var calls atomic.Int32
	d := New(60 * time.Millisecond)

	d.Trigger(func() { calls.Add(1) })
	time.Sleep(40 * time.Millisecond)
	d.Trigger(func() { calls.Add(1) })
	time.Sleep(40 * time.Millisecond)

	if calls.Load() != 0 {
		t.Errorf("expected timer to restart on trigger, got %d calls", calls.Load())
	}

	time.Sleep(60 * time.Millisecond)
	if calls.Load() != 1 {
		t.Errorf("expected 1 call, got %d", calls.Load())
	}
}

func TestDelayerForceDelivery(t *testing.T) {
	var calls atomic.Int32
	d := New(time.Second)

	if d.ForceDelivery() {
		t.Error("expected no delivery without a pending task")
	}

	d.Trigger(func() { calls.Add(1) })
	if !d.IsTriggered() {
		t.Error("expected pending task")
	}
	if !d.ForceDelivery() {
		t.Error("expected delivery")
	}
	if calls.Load() != 1 {
		t.Errorf("expected 1 call, got %d", calls.Load())
	}
	if d.IsTriggered() {
		t.Error("expected no pending task after delivery")
	}
}

func TestDelayerCancel(t *testing.T) {
	var calls atomic.Int32
	d := New(30 * time.Millisecond)

	d.Trigger(func() { calls.Add(1) })
	d.Cancel()
	time.Sleep(60 * time.Millisecond)

	if calls.Load() != 0 {
		t.Errorf("expected canceled task not to run, got %d", calls.Load())
	}
}

func TestDelayerZeroDelayRunsNow(t *testing.T) {
	var calls atomic.Int32
	d := New(time.Second)

	d.TriggerAfter(0, func() { calls.Add(1) })
	if calls.Load() != 1 {
		t.Errorf("expected synchronous run, got %d", calls.Load())
	}
}

func TestDelayerForceDeliveryWaitsForRunningTask(t *testing.T) {
	var finished atomic.Bool
	started := make(chan struct{})
	d := New(time.Millisecond)

	d.Trigger(func() {
		close(started)
		time.Sleep(20 * time.Millisecond)
		finished.Store(true)
	})
	<-started

	if d.ForceDelivery() {
		t.Error("expected no pending task once the timer took it")
	}
	if !finished.Load() {
		t.Error("expected ForceDelivery to wait for the running task")
	}
}

func TestDelayerStaleTimerDoesNotRun(t *testing.T) {
	var first, second atomic.Int32
	d := New(time.Hour)

	d.TriggerAfter(time.Millisecond, func() { first.Add(1) })
	d.Trigger(func() { second.Add(1) })
	time.Sleep(20 * time.Millisecond)

	if first.Load() != 0 || second.Load() != 0 {
		t.Errorf("expected replaced trigger to stay quiet, got %d/%d", first.Load(), second.Load())
	}
	if !d.ForceDelivery() || second.Load() != 1 {
		t.Errorf("expected latest task on flush, got %d", second.Load())
	}
}
