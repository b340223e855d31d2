package client

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/cockroachdb/errors"
	"go.lsp.dev/uri"
	"go.uber.org/multierr"

	"github.com/dshills/dataprotocol/internal/delay"
	"github.com/dshills/dataprotocol/internal/launch"
	"github.com/dshills/dataprotocol/internal/protocol"
	"github.com/dshills/dataprotocol/internal/rpc"
)

// Start launches the server and performs the initialize handshake in the
// background. It returns at once; use OnReady to wait for the outcome.
// Starting a client that is already starting or running does nothing.
func (c *Client) Start(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if c.host.Workspace == nil || c.host.Window == nil {
		return ErrNoWorkspace
	}

	c.lifecycle.Lock()
	defer c.lifecycle.Unlock()
	c.startLocked()
	return nil
}

// startLocked must be called with the lifecycle lock held.
func (c *Client) startLocked() {
	c.stateMu.Lock()
	c.mu.Lock()
	if st := c.state; !st.NeedsStart() && st != StateStartFailed {
		c.mu.Unlock()
		c.stateMu.Unlock()
		return
	}
	if c.ready.settled() {
		c.ready = newFuture()
	}
	ready := c.ready

	ctx, cancel := context.WithCancel(context.Background())
	s := &session{
		gen:        generation.Add(1),
		ctx:        ctx,
		cancel:     cancel,
		docDelayer: delay.New(c.opts.DocumentSyncDelay),
		delivered:  make(map[uri.URI]bool),
	}
	c.session = s
	ev, changed := c.setStateLocked(StateStarting)
	c.mu.Unlock()
	c.fireState(ev, changed)

	c.ensureDiagnostics()
	c.logger.Info("starting server", slog.Uint64("session", s.gen))
	go c.run(s, ready)
}

func (c *Client) run(s *session, ready *future) {
	launched, err := c.launcher.Launch(s.ctx, c.server)
	if err != nil {
		c.startFailed(s, ready, err)
		return
	}

	conn := rpc.NewFromPair(launched.Reader, launched.Writer, launched.Framing,
		rpc.WithLogger(c.logger),
		rpc.WithErrorHandler(func(err error, msg any, count int) {
			c.handleConnectionError(s, err, msg, count)
		}),
		rpc.WithCloseHandler(func() {
			c.handleConnectionClosed(s)
		}),
	)

	c.mu.Lock()
	if s.stopped.Load() || c.session != s {
		c.mu.Unlock()
		_ = conn.Dispose()
		killNow(launched.Process)
		return
	}
	s.conn = conn
	s.process = launched.Process
	c.mu.Unlock()

	c.registerWindowHandlers(s)
	conn.Listen()
	c.initialize(s, ready)
}

func (c *Client) startFailed(s *session, ready *future, err error) {
	c.stateMu.Lock()
	c.mu.Lock()
	if s.stopped.Load() || c.session != s {
		c.mu.Unlock()
		c.stateMu.Unlock()
		return
	}
	ev, changed := c.setStateLocked(StateStartFailed)
	c.mu.Unlock()
	c.fireState(ev, changed)

	c.error("Starting client failed", err)
	c.showAsync(protocol.MessageTypeError, fmt.Sprintf("Couldn't start client %s", c.name))
	ready.resolve(errors.Wrapf(err, "start %s", c.name))
}

func (c *Client) initialize(s *session, ready *future) {
	for {
		level := c.refreshTrace(s, false)
		params := protocol.InitializeParams{
			ProcessID:             os.Getpid(),
			Capabilities:          protocol.ClientCapabilities{},
			InitializationOptions: c.initializationOptions(),
			Trace:                 protocol.TraceValue(level.String()),
		}
		if root := c.host.Workspace.RootPath(); root != "" {
			params.RootPath = &root
		}

		res, err := protocol.InitializeRequest.Send(s.ctx, s.conn, params)
		if err == nil {
			c.initialized(s, ready, res)
			return
		}
		if !c.current(s) {
			return
		}
		if c.retryInitialize(s, err) {
			c.logger.Info("retrying initialize")
			continue
		}
		c.initializeFailed(s, ready, err)
		return
	}
}

func (c *Client) initializationOptions() any {
	if fn := c.opts.InitializationOptionsFunc; fn != nil {
		return fn()
	}
	return c.opts.InitializationOptions
}

// retryInitialize decides whether a failed initialize is sent again.
func (c *Client) retryInitialize(s *session, err error) bool {
	if h := c.opts.InitializationFailedHandler; h != nil {
		return h(err)
	}

	if re, ok := rpc.AsResponseError(err); ok {
		var data protocol.InitializeError
		if len(re.Data) > 0 && re.DecodeData(&data) == nil && data.Retry {
			choice, showErr := c.host.Window.ShowErrorMessage(s.ctx, re.Message, "Retry")
			return showErr == nil && choice == "Retry"
		}
		if re.Message != "" {
			c.showAsync(protocol.MessageTypeError, re.Message)
		}
	}
	c.error("Server initialization failed.", err)
	return false
}

// initializeFailed shuts the half-started server down and leaves the
// client in StartFailed.
func (c *Client) initializeFailed(s *session, ready *future, err error) {
	c.lifecycle.Lock()
	defer c.lifecycle.Unlock()

	c.mu.Lock()
	if s.stopped.Load() || c.session != s {
		c.mu.Unlock()
		return
	}
	s.stopped.Store(true)
	c.mu.Unlock()

	c.cleanUp(s, true)
	if shutdownErr := c.shutdown(context.Background(), s); shutdownErr != nil {
		c.logger.Debug("shutdown after failed initialize", slog.String("err", shutdownErr.Error()))
	}
	c.setState(StateStartFailed)
	ready.resolve(errors.Wrap(err, "initialize"))
}

func (c *Client) initialized(s *session, ready *future, res protocol.InitializeResult) {
	caps := NewCapabilitySet(res.Capabilities)

	c.stateMu.Lock()
	c.mu.Lock()
	if s.stopped.Load() || c.session != s {
		c.mu.Unlock()
		c.stateMu.Unlock()
		return
	}
	s.caps = caps
	s.serverCaps = res.Capabilities
	ev, changed := c.setStateLocked(StateRunning)
	c.mu.Unlock()
	c.fireState(ev, changed)

	c.logger.Info("server initialized",
		slog.String("capabilities", caps.String()),
		slog.String("sync", caps.SyncKind().String()))

	s.conn.OnNotification(protocol.PublishDiagnosticsNotification.Method, c.handleDiagnostics)
	c.hookDocumentSync(s)
	c.hookFileEvents(s)
	c.hookConfiguration(s)
	c.hookLanguageFeatures(s)
	c.hookDataProtocol(s)
	c.replayOpenDocuments(s)

	ready.resolve(nil)
}

// Stop shuts the server down: it sends shutdown and exit, closes the
// connection and kills the process if it has not exited within the stop
// grace period. Stopping a client that is not starting or running does
// nothing.
func (c *Client) Stop(ctx context.Context) error {
	c.lifecycle.Lock()
	defer c.lifecycle.Unlock()

	c.stateMu.Lock()
	c.mu.Lock()
	if !c.state.NeedsStop() {
		c.mu.Unlock()
		c.stateMu.Unlock()
		return nil
	}
	s := c.session
	s.stopped.Store(true)
	ready := c.ready
	ev, changed := c.setStateLocked(StateStopping)
	c.mu.Unlock()
	c.fireState(ev, changed)

	ready.resolve(ErrClientStopped)
	c.cleanUp(s, true)
	err := c.shutdown(ctx, s)
	c.setState(StateStopped)
	c.logger.Info("server stopped")
	return err
}

// shutdown sends shutdown and exit, disposes the connection and schedules
// the process kill check.
func (c *Client) shutdown(ctx context.Context, s *session) error {
	c.mu.Lock()
	conn, proc := s.conn, s.process
	c.mu.Unlock()
	s.cancel()

	if conn == nil {
		killNow(proc)
		return nil
	}

	var errs error
	if grace := c.opts.StopGrace; grace > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, grace)
		defer cancel()
	}
	if _, err := protocol.ShutdownRequest.Send(ctx, conn, protocol.Void{}); err != nil {
		errs = multierr.Append(errs, errors.Wrap(err, "shutdown"))
	}
	if err := protocol.ExitNotification.Send(ctx, conn, protocol.Void{}); err != nil {
		errs = multierr.Append(errs, errors.Wrap(err, "exit"))
	}
	errs = multierr.Append(errs, conn.Dispose())

	if proc != nil {
		proc.KillAfter(c.opts.StopGrace)
	}
	return errs
}

// cleanUp drops everything registered for s. The diagnostic collection
// survives restarts.
func (c *Client) cleanUp(s *session, diagnostics bool) {
	s.listeners.Dispose()
	s.providers.Dispose()
	s.docDelayer.Cancel()

	for _, w := range s.watchers {
		w.Dispose()
	}
	s.watchers = nil

	c.fileDelayer.Cancel()
	c.fileMu.Lock()
	c.fileEvents = nil
	c.fileMu.Unlock()

	if !diagnostics {
		return
	}
	c.mu.Lock()
	d := c.diagnostics
	c.diagnostics = nil
	c.mu.Unlock()
	if d != nil {
		d.Dispose()
	}
}

func (c *Client) handleConnectionError(s *session, err error, msg any, count int) {
	if !c.current(s) {
		return
	}
	c.logger.Debug("connection error",
		slog.Int("count", count),
		slog.String("err", err.Error()))
	if c.errorHandler.Error(err, msg, count) != ErrorActionShutdown {
		return
	}
	c.error("Connection to server is erroring. Shutting down server.", nil)
	go func() {
		if err := c.Stop(context.Background()); err != nil {
			c.logger.Debug("stop after connection errors", slog.String("err", err.Error()))
		}
	}()
}

// handleConnectionClosed reacts to the server going away on its own. While
// starting, the failing initialize request reports the loss instead.
func (c *Client) handleConnectionClosed(s *session) {
	c.lifecycle.Lock()
	defer c.lifecycle.Unlock()

	c.mu.Lock()
	if s.stopped.Load() || c.session != s || c.state != StateRunning {
		c.mu.Unlock()
		return
	}
	s.stopped.Store(true)
	c.mu.Unlock()

	action := c.errorHandler.Closed()
	s.cancel()
	if s.conn != nil {
		_ = s.conn.Dispose()
	}

	if action == CloseActionDoNotRestart {
		c.error("Connection to server got closed. Server will not be restarted.", nil)
		c.cleanUp(s, true)
		c.setState(StateStopped)
	} else {
		c.info("Connection to server got closed. Server will restart.", nil)
		c.cleanUp(s, false)
		c.setState(StateInitial)
		c.startLocked()
	}

	if s.process != nil {
		s.process.KillAfter(c.opts.StopGrace)
	}
}

func killNow(p *launch.Process) {
	if p != nil && p.Alive() {
		_ = p.Kill()
	}
}
