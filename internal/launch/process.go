package launch

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"go.uber.org/multierr"
)

// Errors returned by Process.
var (
	ErrProcessNotStarted     = errors.New("process not started")
	ErrProcessAlreadyStarted = errors.New("process already started")
)

// State is the lifecycle state of a server process.
type State int

const (
	StateCreated State = iota
	StateRunning
	StateExited
	StateKilled
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateRunning:
		return "running"
	case StateExited:
		return "exited"
	case StateKilled:
		return "killed"
	default:
		return fmt.Sprintf("unknown(%d)", s)
	}
}

// Process is a spawned server process. It is safe for concurrent use.
type Process struct {
	// ID identifies the process in logs.
	ID   string
	Name string
	Cmd  *exec.Cmd

	// Pipes, set when the corresponding stream was piped.
	Stdin  io.WriteCloser
	Stdout io.ReadCloser
	Stderr io.ReadCloser

	Started time.Time

	done     chan struct{}
	state    atomic.Int32
	exitCode atomic.Int32

	mu      sync.RWMutex
	exitErr error

	waitOnce  sync.Once
	childEnds []*os.File
}

// NewProcess wraps an unstarted command.
func NewProcess(name string, cmd *exec.Cmd) *Process {
	p := &Process{
		ID:   uuid.NewString(),
		Name: name,
		Cmd:  cmd,
		done: make(chan struct{}),
	}
	p.state.Store(int32(StateCreated))
	p.exitCode.Store(-1)
	return p
}

// StartProcess pipes stdin, stdout and stderr of cmd and starts it. It is
// meant for StreamFactory implementations that spawn their own server.
func StartProcess(name string, cmd *exec.Cmd) (*Process, error) {
	p := NewProcess(name, cmd)
	if err := p.pipe(true); err != nil {
		return nil, err
	}
	if err := p.start(); err != nil {
		return nil, err
	}
	return p, nil
}

// State returns the current state.
func (p *Process) State() State {
	return State(p.state.Load())
}

// ExitCode returns the exit code, or -1 before exit.
func (p *Process) ExitCode() int {
	return int(p.exitCode.Load())
}

// ExitError returns the error reported by Wait.
func (p *Process) ExitError() error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.exitErr
}

// Done is closed when the process exits.
func (p *Process) Done() <-chan struct{} {
	return p.done
}

// Alive reports whether the process is running.
func (p *Process) Alive() bool {
	return p.State() == StateRunning
}

// PID returns the process id, or -1 before start.
func (p *Process) PID() int {
	if p.Cmd.Process == nil {
		return -1
	}
	return p.Cmd.Process.Pid
}

// Kill sends SIGKILL.
func (p *Process) Kill() error {
	return p.signal(syscall.SIGKILL)
}

// Terminate sends SIGTERM.
func (p *Process) Terminate() error {
	return p.signal(syscall.SIGTERM)
}

func (p *Process) signal(sig syscall.Signal) error {
	if !p.Alive() || p.Cmd.Process == nil {
		return ErrProcessNotStarted
	}
	return p.Cmd.Process.Signal(sig)
}

// KillAfter kills the process if it is still alive once grace has passed.
// It returns immediately.
func (p *Process) KillAfter(grace time.Duration) {
	go func() {
		timer := time.NewTimer(grace)
		defer timer.Stop()
		select {
		case <-p.done:
		case <-timer.C:
			if p.Alive() {
				_ = p.Kill()
			}
		}
	}()
}

// Close closes the piped streams. It does not stop the process.
func (p *Process) Close() error {
	var err error
	if p.Stdin != nil {
		err = multierr.Append(err, errors.Wrap(p.Stdin.Close(), "close stdin"))
	}
	if p.Stdout != nil {
		err = multierr.Append(err, errors.Wrap(p.Stdout.Close(), "close stdout"))
	}
	if p.Stderr != nil {
		err = multierr.Append(err, errors.Wrap(p.Stderr.Close(), "close stderr"))
	}
	return err
}

func (p *Process) pipe(stdio bool) error {
	var err error
	if stdio {
		if p.Stdin, err = p.Cmd.StdinPipe(); err != nil {
			return errors.Wrap(err, "stdin pipe")
		}
	}
	// Output pipes are owned here rather than by exec so that Wait does
	// not close them before the reader has drained them.
	if p.Stdout, err = p.outputPipe(&p.Cmd.Stdout); err != nil {
		return errors.Wrap(err, "stdout pipe")
	}
	if p.Stderr, err = p.outputPipe(&p.Cmd.Stderr); err != nil {
		return errors.Wrap(err, "stderr pipe")
	}
	return nil
}

func (p *Process) outputPipe(dst *io.Writer) (io.ReadCloser, error) {
	r, w, err := os.Pipe()
	if err != nil {
		return nil, err
	}
	*dst = w
	p.childEnds = append(p.childEnds, w)
	return r, nil
}

func (p *Process) closeChildEnds() {
	for _, f := range p.childEnds {
		_ = f.Close()
	}
	p.childEnds = nil
}

func (p *Process) start() error {
	if p.State() != StateCreated {
		return ErrProcessAlreadyStarted
	}
	err := p.Cmd.Start()
	p.closeChildEnds()
	if err != nil {
		return errors.Wrap(err, "start process")
	}
	if p.Cmd.Process == nil || p.Cmd.Process.Pid <= 0 {
		return errors.New("process has no id after start")
	}

	p.Started = time.Now()
	p.state.Store(int32(StateRunning))
	go p.waitLoop()
	return nil
}

func (p *Process) waitLoop() {
	p.waitOnce.Do(func() {
		err := p.Cmd.Wait()

		p.mu.Lock()
		p.exitErr = err
		p.mu.Unlock()

		exitCode := 0
		state := StateExited
		if err != nil {
			var exitErr *exec.ExitError
			if errors.As(err, &exitErr) {
				exitCode = exitErr.ExitCode()
				if status, ok := exitErr.Sys().(syscall.WaitStatus); ok && status.Signaled() {
					state = StateKilled
				}
			} else {
				exitCode = -1
			}
		}

		p.exitCode.Store(int32(exitCode))
		p.state.Store(int32(state))
		close(p.done)
	})
}
