package client

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/cockroachdb/errors"
	"go.lsp.dev/uri"

	"github.com/dshills/dataprotocol/internal/convert"
	"github.com/dshills/dataprotocol/internal/delay"
	"github.com/dshills/dataprotocol/internal/host"
	"github.com/dshills/dataprotocol/internal/launch"
	"github.com/dshills/dataprotocol/internal/protocol"
	"github.com/dshills/dataprotocol/internal/rpc"
)

// Errors returned by Client.
var (
	// ErrClientStopped is returned by OnReady when the client was stopped
	// before it became ready.
	ErrClientStopped = errors.New("client stopped")

	// ErrNoWorkspace is returned by Start when the client has no workspace.
	ErrNoWorkspace = errors.New("client has no workspace")
)

// Host bundles the host collaborators a client talks to. Workspace and
// Window are required; without Languages no language features or
// diagnostics are registered, and without DataProtocol no data protocol
// providers are.
type Host struct {
	Workspace    host.Workspace
	Window       host.Window
	Languages    host.Languages
	DataProtocol host.DataProtocol
}

// Client drives one data protocol server: it launches the server, performs
// the initialize handshake, keeps documents and settings in sync, exposes
// the server's features to the host and restarts the server when it
// crashes.
//
// All methods are safe for concurrent use.
type Client struct {
	id     string
	name   string
	server launch.ServerOptions
	host   Host
	opts   Options
	logger *slog.Logger

	launcher     *launch.Launcher
	errorHandler ErrorHandler
	syncExpr     SyncExpression
	c2p          *convert.CodeConverter
	p2c          *convert.ProtocolConverter

	stateEvents     host.Emitter[StateChangeEvent]
	telemetryEvents host.Emitter[json.RawMessage]

	// lifecycle serializes Start, Stop and connection close handling.
	lifecycle sync.Mutex
	// stateMu is taken before mu by every state transition and held until
	// its change event has fired.
	stateMu sync.Mutex

	mu          sync.Mutex
	state       ClientState
	session     *session
	ready       *future
	output      host.OutputChannel
	diagnostics host.DiagnosticCollection

	fileMu      sync.Mutex
	fileEvents  []protocol.FileEvent
	fileDelayer *delay.Delayer
}

// session is everything tied to one server connection. It is replaced on
// every start, so callbacks holding a stale session become no-ops.
type session struct {
	gen     uint64
	ctx     context.Context
	cancel  context.CancelFunc
	conn    *rpc.Conn
	process *launch.Process

	caps       CapabilitySet
	serverCaps protocol.ServerCapabilities

	listeners host.Disposables
	providers host.Disposables
	watchers  []host.FileSystemWatcher

	docMu      sync.Mutex
	docDelayer *delay.Delayer
	pendingDoc uri.URI
	delivered  map[uri.URI]bool

	stopped atomic.Bool
}

var generation atomic.Uint64

// New creates a client for the server called name. The id used for
// configuration lookups is the lower-cased name.
func New(name string, server launch.ServerOptions, h Host, opts ...Option) *Client {
	return NewWithID(strings.ToLower(name), name, server, h, opts...)
}

// NewWithID creates a client with an explicit id.
func NewWithID(id, name string, server launch.ServerOptions, h Host, opts ...Option) *Client {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}

	c := &Client{
		id:       id,
		name:     name,
		server:   server,
		host:     h,
		opts:     o,
		logger:   o.Logger.With(slog.String("client", id)),
		syncExpr: NewSyncExpression(o.DocumentSelector, o.Synchronize.TextDocumentFilter),
		c2p:      convert.NewCodeConverter(o.URIEncoder),
		p2c:      convert.NewProtocolConverter(o.URIDecoder),
		state:    StateInitial,
		ready:    newFuture(),

		fileDelayer: delay.New(o.FileEventDelay),
	}

	c.errorHandler = o.ErrorHandler
	if c.errorHandler == nil {
		eh := NewDefaultErrorHandler(name, o.ErrorHandlerConfig, h.Window)
		eh.logger = c.logger
		c.errorHandler = eh
	}

	rootPath := ""
	if h.Workspace != nil {
		rootPath = h.Workspace.RootPath()
	}
	c.launcher = launch.New(launch.Config{
		RootPath:   rootPath,
		Output:     outputWriter{c},
		Forker:     o.Forker,
		ForceDebug: o.ForceDebug,
		Logger:     c.logger,
	})
	return c
}

// ID returns the client id.
func (c *Client) ID() string { return c.id }

// Name returns the display name of the server.
func (c *Client) Name() string { return c.name }

// State returns the lifecycle state.
func (c *Client) State() ClientState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// IsRunning reports whether the client is connected and initialized.
func (c *Client) IsRunning() bool {
	return c.State() == StateRunning
}

// Capabilities returns the capabilities negotiated with the current
// server. It is empty until the client is running.
func (c *Client) Capabilities() CapabilitySet {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == nil {
		return CapabilitySet{}
	}
	return c.session.caps
}

// ErrorHandler returns the error handler in use.
func (c *Client) ErrorHandler() ErrorHandler { return c.errorHandler }

// OnDidChangeState registers fn for public state changes. Events are
// delivered in transition order; fn must not start or stop the client
// synchronously.
func (c *Client) OnDidChangeState(fn func(StateChangeEvent)) host.Disposable {
	return c.stateEvents.Event(fn)
}

// OnTelemetry registers fn for telemetry/event notifications.
func (c *Client) OnTelemetry(fn func(json.RawMessage)) host.Disposable {
	return c.telemetryEvents.Event(fn)
}

// OnReady waits until the client is ready. It fails with the start error,
// ErrClientStopped, or ctx's error.
func (c *Client) OnReady(ctx context.Context) error {
	c.mu.Lock()
	f := c.ready
	c.mu.Unlock()
	return f.wait(ctx)
}

// SendRequest sends a request to the server once the client is ready and
// decodes the response into result. Pending full document changes are
// flushed first.
func (c *Client) SendRequest(ctx context.Context, method string, params, result any) error {
	if err := c.OnReady(ctx); err != nil {
		return err
	}
	s, ok := c.running()
	if !ok {
		return connectionClosed()
	}
	c.forceDocumentSync(s)
	return s.conn.SendRequest(ctx, method, params, result)
}

// SendNotification sends a notification once the client is ready. It is
// dropped when the client is not running.
func (c *Client) SendNotification(ctx context.Context, method string, params any) error {
	if err := c.OnReady(ctx); err != nil {
		return err
	}
	s, ok := c.running()
	if !ok {
		c.logger.Debug("notification dropped", slog.String("method", method))
		return nil
	}
	c.forceDocumentSync(s)
	return s.conn.SendNotification(ctx, method, params)
}

// OnRequest registers a handler for requests from the server once the
// client is ready. Registrations do not survive a restart.
func (c *Client) OnRequest(ctx context.Context, method string, h rpc.RequestHandler) error {
	if err := c.OnReady(ctx); err != nil {
		return err
	}
	s, ok := c.running()
	if !ok {
		return connectionClosed()
	}
	s.conn.OnRequest(method, h)
	return nil
}

// OnNotification registers a handler for notifications from the server
// once the client is ready. Registrations do not survive a restart.
func (c *Client) OnNotification(ctx context.Context, method string, h rpc.NotificationHandler) error {
	if err := c.OnReady(ctx); err != nil {
		return err
	}
	s, ok := c.running()
	if !ok {
		return connectionClosed()
	}
	s.conn.OnNotification(method, h)
	return nil
}

// OnConnectionReadyNotification registers h as soon as the client becomes
// ready without blocking the caller.
func (c *Client) OnConnectionReadyNotification(method string, h rpc.NotificationHandler) {
	go func() {
		if err := c.OnNotification(context.Background(), method, h); err != nil {
			c.logger.Debug("notification handler not registered",
				slog.String("method", method),
				slog.String("err", err.Error()))
		}
	}()
}

var _ protocol.Sender = (*Client)(nil)

func connectionClosed() error {
	return rpc.NewResponseError(rpc.CodeInternalError, "Connection is closed.", nil)
}

// running returns the current session when the client is running.
func (c *Client) running() (*session, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateRunning || c.session == nil || c.session.conn == nil {
		return nil, false
	}
	return c.session, true
}

// current reports whether s is still the live session.
func (c *Client) current(s *session) bool {
	if s.stopped.Load() {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session == s
}

// setState changes the state and fires a change event when the public
// projection changed.
func (c *Client) setState(next ClientState) {
	c.stateMu.Lock()
	c.mu.Lock()
	ev, changed := c.setStateLocked(next)
	c.mu.Unlock()
	c.fireState(ev, changed)
}

// fireState fires ev when changed and releases stateMu.
func (c *Client) fireState(ev StateChangeEvent, changed bool) {
	defer c.stateMu.Unlock()
	if changed {
		c.stateEvents.Fire(ev)
	}
}

func (c *Client) setStateLocked(next ClientState) (StateChangeEvent, bool) {
	prev := c.state
	c.state = next
	if prev != next {
		c.logger.Debug("state changed",
			slog.String("from", prev.String()),
			slog.String("to", next.String()))
	}
	ev := StateChangeEvent{OldState: prev.Public(), NewState: next.Public()}
	return ev, ev.OldState != ev.NewState
}

// future is a one-shot result shared by every waiter.
type future struct {
	done chan struct{}
	once sync.Once
	err  error
}

func newFuture() *future {
	return &future{done: make(chan struct{})}
}

func (f *future) resolve(err error) {
	f.once.Do(func() {
		f.err = err
		close(f.done)
	})
}

func (f *future) settled() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

func (f *future) wait(ctx context.Context) error {
	select {
	case <-f.done:
		return f.err
	case <-ctx.Done():
		return ctx.Err()
	}
}
