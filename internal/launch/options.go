package launch

import (
	"context"
	"io"
	"os/exec"
	"strings"
)

// ServerOptions describes how to obtain a server. It is implemented by
// Executable, Module, RunDebug and StreamFactory.
type ServerOptions interface {
	serverOptions()
}

// TransportKind selects how a module talks to the client.
type TransportKind int

const (
	TransportStdio TransportKind = iota
	TransportIPC
)

// String returns the transport name.
func (t TransportKind) String() string {
	if t == TransportIPC {
		return "ipc"
	}
	return "stdio"
}

// ParseTransportKind parses "stdio" or "ipc".
func ParseTransportKind(s string) (TransportKind, bool) {
	switch strings.ToLower(s) {
	case "", "stdio":
		return TransportStdio, true
	case "ipc":
		return TransportIPC, true
	}
	return TransportStdio, false
}

func (t TransportKind) flag() string {
	if t == TransportIPC {
		return "--node-ipc"
	}
	return "--stdio"
}

// ExecutableOptions are the spawn options of an Executable.
type ExecutableOptions struct {
	Cwd string
	// Env is merged over the inherited environment.
	Env map[string]string
}

// Executable is a command spawned directly. It always uses stdio.
type Executable struct {
	Command string
	Args    []string
	Options ExecutableOptions
}

// ForkOptions are the spawn options of a Module.
type ForkOptions struct {
	Cwd string
	// Env is merged over the inherited environment.
	Env map[string]string
	// ExecArgv are runtime arguments placed before the module path.
	ExecArgv []string
}

// Module is a server entry point run under Runtime, or passed to the
// launcher's Forker when Runtime is empty.
type Module struct {
	Path      string
	Runtime   string
	Args      []string
	Transport TransportKind
	Options   ForkOptions
}

// RunDebug selects Debug in debug mode and Run otherwise. Both must be an
// Executable or a Module.
type RunDebug struct {
	Run   ServerOptions
	Debug ServerOptions
}

// FactoryResult is what a StreamFactory produces: either both streams, or
// a started process whose stdout and stdin carry the protocol.
type FactoryResult struct {
	Reader  io.ReadCloser
	Writer  io.WriteCloser
	Process *Process
}

// StreamFactory produces the streams of an already prepared server.
type StreamFactory func(ctx context.Context) (FactoryResult, error)

// Forker starts modules when no runtime is named. It returns an unstarted
// command; the launcher wires its streams and starts it.
type Forker func(modulePath string, args []string, opts ForkOptions) (*exec.Cmd, error)

func (Executable) serverOptions()    {}
func (Module) serverOptions()        {}
func (RunDebug) serverOptions()      {}
func (StreamFactory) serverOptions() {}
