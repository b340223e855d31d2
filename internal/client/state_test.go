package client

import (
	"runtime"
	"sync"
	"testing"
)

func TestClientStateNeeds(t *testing.T) {
	tests := []struct {
		state     ClientState
		needStart bool
		needStop  bool
		public    State
	}{
		{StateInitial, true, false, Stopped},
		{StateStarting, false, true, Stopped},
		{StateStartFailed, false, false, Stopped},
		{StateRunning, false, true, Running},
		{StateStopping, true, false, Stopped},
		{StateStopped, true, false, Stopped},
	}

	for _, tt := range tests {
		t.Run(tt.state.String(), func(t *testing.T) {
			if got := tt.state.NeedsStart(); got != tt.needStart {
				t.Errorf("NeedsStart: expected %v, got %v", tt.needStart, got)
			}
			if got := tt.state.NeedsStop(); got != tt.needStop {
				t.Errorf("NeedsStop: expected %v, got %v", tt.needStop, got)
			}
			if got := tt.state.Public(); got != tt.public {
				t.Errorf("Public: expected %v, got %v", tt.public, got)
			}
		})
	}
}

func TestStateString(t *testing.T) {
	if Running.String() != "running" {
		t.Errorf("expected running, got %q", Running.String())
	}
	if Stopped.String() != "stopped" {
		t.Errorf("expected stopped, got %q", Stopped.String())
	}
	if ClientState(99).String() != "unknown" {
		t.Errorf("expected unknown, got %q", ClientState(99).String())
	}
}

func TestSetStateLockedFiresOnlyOnPublicChange(t *testing.T) {
	c := &Client{state: StateInitial, logger: discardLogger()}

	steps := []struct {
		next    ClientState
		changed bool
	}{
		{StateStarting, false},
		{StateRunning, true},
		{StateStopping, true},
		{StateStopped, false},
		{StateStarting, false},
		{StateStartFailed, false},
	}
	for _, step := range steps {
		ev, changed := c.setStateLocked(step.next)
		if changed != step.changed {
			t.Errorf("%s: expected changed=%v, got %v", step.next, step.changed, changed)
		}
		if changed && ev.NewState != step.next.Public() {
			t.Errorf("%s: expected new state %v, got %v", step.next, step.next.Public(), ev.NewState)
		}
	}
}

func TestSetStateEventsFollowTransitionOrder(t *testing.T) {
	c := &Client{state: StateStopped, logger: discardLogger()}

	var events []StateChangeEvent
	c.OnDidChangeState(func(ev StateChangeEvent) {
		runtime.Gosched()
		events = append(events, ev)
	})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				if (i+j)%2 == 0 {
					c.setState(StateRunning)
				} else {
					c.setState(StateStopped)
				}
			}
		}(i)
	}
	wg.Wait()

	if len(events) == 0 {
		t.Fatal("expected state events")
	}
	prev := Stopped
	for i, ev := range events {
		if ev.OldState != prev {
			t.Fatalf("event %d: expected old state %v, got %v", i, prev, ev.OldState)
		}
		prev = ev.NewState
	}
	if want := c.State().Public(); prev != want {
		t.Errorf("expected last event to end at %v, got %v", want, prev)
	}
}
