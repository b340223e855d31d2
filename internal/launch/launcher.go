package launch

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/exec"

	"github.com/cockroachdb/errors"
	"github.com/dshills/dataprotocol/internal/rpc"
	"go.uber.org/multierr"
)

// Errors returned by Launch.
var (
	ErrUnsupported = errors.New("Unsupported server configuration")
	ErrNoForker    = errors.New("no fork capability available")
)

// Launched is a started server. Reader and Writer are the same value
// when the transport is a single socket.
type Launched struct {
	Reader  io.ReadCloser
	Writer  io.WriteCloser
	Framing rpc.Framing
	// Process is nil when a StreamFactory supplied streams directly.
	Process *Process
}

// Config configures a Launcher.
type Config struct {
	// RootPath is the default working directory.
	RootPath string
	// Output receives server stderr, and stdout under IPC.
	Output io.Writer
	// Forker starts modules without a runtime.
	Forker Forker
	// ForceDebug selects the debug shape of RunDebug.
	ForceDebug bool
	// DebugMode reports whether this process runs under a debugger.
	// Defaults to ProcessDebugMode.
	DebugMode func() bool
	Logger    *slog.Logger
}

// Launcher starts servers.
type Launcher struct {
	cfg Config
}

// New creates a launcher.
func New(cfg Config) *Launcher {
	if cfg.Output == nil {
		cfg.Output = io.Discard
	}
	if cfg.DebugMode == nil {
		cfg.DebugMode = ProcessDebugMode
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Launcher{cfg: cfg}
}

// Launch starts the server described by opts.
func (l *Launcher) Launch(ctx context.Context, opts ServerOptions) (*Launched, error) {
	switch o := opts.(type) {
	case StreamFactory:
		return l.fromFactory(ctx, o)
	case RunDebug:
		selected := o.Run
		if l.cfg.ForceDebug || l.cfg.DebugMode() {
			selected = o.Debug
		}
		switch selected.(type) {
		case Executable, *Executable, Module, *Module:
			return l.Launch(ctx, selected)
		}
		return nil, ErrUnsupported
	case *RunDebug:
		if o == nil {
			return nil, ErrUnsupported
		}
		return l.Launch(ctx, *o)
	case Module:
		return l.launchModule(ctx, o)
	case *Module:
		if o == nil {
			return nil, ErrUnsupported
		}
		return l.launchModule(ctx, *o)
	case Executable:
		return l.launchExecutable(ctx, o)
	case *Executable:
		if o == nil {
			return nil, ErrUnsupported
		}
		return l.launchExecutable(ctx, *o)
	}
	return nil, ErrUnsupported
}

func (l *Launcher) fromFactory(ctx context.Context, factory StreamFactory) (*Launched, error) {
	if factory == nil {
		return nil, ErrUnsupported
	}
	res, err := factory(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "stream factory")
	}
	if res.Reader != nil && res.Writer != nil {
		return &Launched{Reader: res.Reader, Writer: res.Writer, Framing: rpc.HeaderFraming}, nil
	}
	p := res.Process
	if p == nil || p.Stdout == nil || p.Stdin == nil {
		return nil, ErrUnsupported
	}
	if p.Stderr != nil {
		go l.forward(p.Stderr)
	}
	return &Launched{Reader: p.Stdout, Writer: p.Stdin, Framing: rpc.HeaderFraming, Process: p}, nil
}

func (l *Launcher) launchExecutable(ctx context.Context, e Executable) (*Launched, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cmd := exec.Command(e.Command, e.Args...)
	cmd.Dir = l.cwd(e.Options.Cwd)
	cmd.Env = mergeEnv(os.Environ(), e.Options.Env)

	launched, err := l.spawn(NewProcess(e.Command, cmd), TransportStdio)
	if err != nil {
		return nil, errors.WithDetail(errors.Newf("Launching server using command %s failed.", e.Command), err.Error())
	}
	return launched, nil
}

func (l *Launcher) launchModule(ctx context.Context, m Module) (*Launched, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	args := append(append([]string{}, m.Args...), m.Transport.flag())
	opts := m.Options
	opts.Cwd = l.cwd(opts.Cwd)

	if m.Runtime == "" {
		if l.cfg.Forker == nil {
			return nil, errors.Wrapf(ErrNoForker, "module %s", m.Path)
		}
		cmd, err := l.cfg.Forker(m.Path, args, opts)
		if err != nil {
			return nil, errors.Wrapf(err, "fork %s", m.Path)
		}
		if cmd.Dir == "" {
			cmd.Dir = opts.Cwd
		}
		if cmd.Env == nil {
			cmd.Env = mergeEnv(os.Environ(), opts.Env)
		}
		launched, err := l.spawn(NewProcess(m.Path, cmd), m.Transport)
		if err != nil {
			return nil, errors.WithDetail(errors.Newf("Launching server using module %s failed.", m.Path), err.Error())
		}
		return launched, nil
	}

	full := append(append(append([]string{}, opts.ExecArgv...), m.Path), args...)
	cmd := exec.Command(m.Runtime, full...)
	cmd.Dir = opts.Cwd
	cmd.Env = mergeEnv(os.Environ(), opts.Env)

	launched, err := l.spawn(NewProcess(m.Path, cmd), m.Transport)
	if err != nil {
		return nil, errors.WithHint(
			errors.WithDetail(errors.Newf("Launching server using runtime %s failed.", m.Runtime), err.Error()),
			"check that the runtime is installed and on PATH")
	}
	return launched, nil
}

// spawn wires the process streams for transport and starts it.
func (l *Launcher) spawn(p *Process, transport TransportKind) (*Launched, error) {
	if transport == TransportIPC {
		return l.spawnIPC(p)
	}

	if err := p.pipe(true); err != nil {
		return nil, err
	}
	if err := p.start(); err != nil {
		return nil, err
	}
	go l.forward(p.Stderr)

	l.cfg.Logger.Debug("server started",
		slog.String("name", p.Name),
		slog.Int("pid", p.PID()),
		slog.String("transport", transport.String()))
	return &Launched{Reader: p.Stdout, Writer: p.Stdin, Framing: rpc.HeaderFraming, Process: p}, nil
}

func (l *Launcher) spawnIPC(p *Process) (*Launched, error) {
	parent, child, err := socketPair()
	if err != nil {
		return nil, err
	}
	p.Cmd.ExtraFiles = append(p.Cmd.ExtraFiles, child)
	p.Cmd.Env = append(p.Cmd.Env, "NODE_CHANNEL_FD=3")

	if err := p.pipe(false); err != nil {
		_ = multierr.Combine(parent.Close(), child.Close())
		return nil, err
	}
	if err := p.start(); err != nil {
		_ = multierr.Combine(parent.Close(), child.Close())
		return nil, err
	}
	_ = child.Close()

	go l.forward(p.Stderr)
	go l.forward(p.Stdout)

	l.cfg.Logger.Debug("server started",
		slog.String("name", p.Name),
		slog.Int("pid", p.PID()),
		slog.String("transport", TransportIPC.String()))
	return &Launched{Reader: parent, Writer: parent, Framing: rpc.LineFraming, Process: p}, nil
}

func (l *Launcher) forward(r io.Reader) {
	if _, err := io.Copy(l.cfg.Output, r); err != nil && !errors.Is(err, os.ErrClosed) {
		l.cfg.Logger.Debug("server output closed", slog.String("err", err.Error()))
	}
}

func (l *Launcher) cwd(dir string) string {
	if dir != "" {
		return dir
	}
	return l.cfg.RootPath
}
