package rpc

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/sourcegraph/jsonrpc2"
	"github.com/tidwall/pretty"
)

// TraceLevel is the verbosity of message tracing.
type TraceLevel int

const (
	TraceOff TraceLevel = iota
	TraceMessages
	TraceVerbose
)

// ParseTraceLevel parses "off", "messages" or "verbose". Anything else is
// TraceOff.
func ParseTraceLevel(s string) TraceLevel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "messages":
		return TraceMessages
	case "verbose":
		return TraceVerbose
	default:
		return TraceOff
	}
}

// String returns the wire name of the level.
func (l TraceLevel) String() string {
	switch l {
	case TraceMessages:
		return "messages"
	case TraceVerbose:
		return "verbose"
	default:
		return "off"
	}
}

// Tracer receives trace lines. data is empty unless the level is verbose.
type Tracer interface {
	Log(message, data string)
}

// TracerFunc adapts a function to Tracer.
type TracerFunc func(message, data string)

// Log implements Tracer.
func (f TracerFunc) Log(message, data string) { f(message, data) }

type pendingTrace struct {
	method string
	start  time.Time
}

// tracer formats sent and received messages for a Tracer.
type tracer struct {
	mu      sync.Mutex
	level   TraceLevel
	out     Tracer
	now     func() time.Time
	pending map[string]pendingTrace
}

func newTracer() *tracer {
	return &tracer{now: time.Now, pending: make(map[string]pendingTrace)}
}

func (t *tracer) set(level TraceLevel, out Tracer) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.level = level
	t.out = out
	if out == nil {
		t.level = TraceOff
	}
}

func (t *tracer) active() (TraceLevel, Tracer) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.level, t.out
}

func (t *tracer) started(id jsonrpc2.ID, method string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.level == TraceOff {
		return
	}
	t.pending[id.String()] = pendingTrace{method: method, start: t.now()}
}

func (t *tracer) forget(id jsonrpc2.ID) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.pending, id.String())
}

func (t *tracer) take(id jsonrpc2.ID) (pendingTrace, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	p, ok := t.pending[id.String()]
	delete(t.pending, id.String())
	return p, ok
}

func (t *tracer) onSend(req *jsonrpc2.Request, resp *jsonrpc2.Response) {
	level, out := t.active()
	if level == TraceOff {
		return
	}
	switch {
	case resp != nil:
		method := "unknown"
		if req != nil {
			method = req.Method
		}
		t.log(out, level, fmt.Sprintf("Sending response '%s - (%s)'.", method, resp.ID), responseData(resp))
	case req != nil && req.Notif:
		t.log(out, level, fmt.Sprintf("Sending notification '%s'.", req.Method), paramsData(req))
	case req != nil:
		t.log(out, level, fmt.Sprintf("Sending request '%s - (%s)'.", req.Method, req.ID), paramsData(req))
	}
}

func (t *tracer) onRecv(req *jsonrpc2.Request, resp *jsonrpc2.Response) {
	level, out := t.active()
	if level == TraceOff {
		return
	}
	switch {
	case resp != nil:
		msg := fmt.Sprintf("Received response '(%s)'.", resp.ID)
		if p, ok := t.take(resp.ID); ok {
			msg = fmt.Sprintf("Received response '%s - (%s)' in %dms.", p.method, resp.ID, t.now().Sub(p.start).Milliseconds())
		}
		t.log(out, level, msg, responseData(resp))
	case req != nil && req.Notif:
		t.log(out, level, fmt.Sprintf("Received notification '%s'.", req.Method), paramsData(req))
	case req != nil:
		t.log(out, level, fmt.Sprintf("Received request '%s - (%s)'.", req.Method, req.ID), paramsData(req))
	}
}

func (t *tracer) log(out Tracer, level TraceLevel, message, data string) {
	if level != TraceVerbose {
		data = ""
	}
	out.Log(fmt.Sprintf("[Trace - %s] %s", t.now().Format("15:04:05"), message), data)
}

func paramsData(req *jsonrpc2.Request) string {
	if req.Params == nil {
		return "No parameters provided."
	}
	return "Params: " + indent(*req.Params)
}

func responseData(resp *jsonrpc2.Response) string {
	switch {
	case resp.Error != nil:
		return fmt.Sprintf("Error: %d %s", resp.Error.Code, resp.Error.Message)
	case resp.Result != nil:
		return "Result: " + indent(*resp.Result)
	default:
		return "No result returned."
	}
}

func indent(raw json.RawMessage) string {
	if !json.Valid(raw) {
		return string(raw)
	}
	return strings.TrimRight(string(pretty.Pretty(raw)), "\n")
}
