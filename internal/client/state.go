package client

// ClientState is the lifecycle state of a Client.
type ClientState int

const (
	StateInitial ClientState = iota
	StateStarting
	StateStartFailed
	StateRunning
	StateStopping
	StateStopped
)

// String returns a human-readable state name.
func (s ClientState) String() string {
	switch s {
	case StateInitial:
		return "initial"
	case StateStarting:
		return "starting"
	case StateStartFailed:
		return "start failed"
	case StateRunning:
		return "running"
	case StateStopping:
		return "stopping"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// NeedsStart reports whether Start has work to do in this state.
func (s ClientState) NeedsStart() bool {
	return s == StateInitial || s == StateStopping || s == StateStopped
}

// NeedsStop reports whether Stop has work to do in this state.
func (s ClientState) NeedsStop() bool {
	return s == StateStarting || s == StateRunning
}

// Public projects the lifecycle state onto Running or Stopped.
func (s ClientState) Public() State {
	if s == StateRunning {
		return Running
	}
	return Stopped
}

// State is the public view of a client: it is either running or not.
type State int

const (
	Stopped State = iota + 1
	Running
)

// String returns the state name.
func (s State) String() string {
	if s == Running {
		return "running"
	}
	return "stopped"
}

// StateChangeEvent is fired when the public state changes.
type StateChangeEvent struct {
	OldState State
	NewState State
}
