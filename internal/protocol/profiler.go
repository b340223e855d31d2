package protocol

// StartProfilingParams are the parameters of profiler/start.
type StartProfilingParams struct {
	OwnerURI string         `json:"ownerUri"`
	Options  map[string]any `json:"options"`
}

// StartProfilingResponse is the result of profiler/start.
type StartProfilingResponse struct {
	Succeeded    string `json:"succeeded"`
	ErrorMessage string `json:"errorMessage"`
}

// StopProfilingParams are the parameters of profiler/stop.
type StopProfilingParams struct {
	OwnerURI string `json:"ownerUri"`
}

// StopProfilingResponse is the result of profiler/stop.
type StopProfilingResponse struct {
	Succeeded    string `json:"succeeded"`
	ErrorMessage string `json:"errorMessage"`
}

// ProfilerEvent is a single captured trace event.
type ProfilerEvent struct {
	Name      string         `json:"name"`
	Timestamp string         `json:"timestamp"`
	Values    map[string]any `json:"values"`
}

// ProfilerEventsAvailableParams are sent with profiler/eventsavailable.
type ProfilerEventsAvailableParams struct {
	OwnerURI string          `json:"ownerUri"`
	Events   []ProfilerEvent `json:"events"`
}
