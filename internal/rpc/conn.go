// Package rpc is a JSON-RPC 2.0 connection for talking to a data protocol
// server over a byte stream.
//
// A Conn wraps a sourcegraph/jsonrpc2 connection with a handler table,
// caller driven cancellation, message tracing and fault reporting.
// Messages are not read until Listen is called; requests and
// notifications may be sent before that.
package rpc

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/cockroachdb/errors"
	"github.com/sourcegraph/jsonrpc2"
)

// RequestHandler answers a request from the server. Returning a
// *ResponseError sends that error; any other error is sent as an internal
// error.
type RequestHandler func(ctx context.Context, params json.RawMessage) (any, error)

// NotificationHandler handles a notification from the server.
type NotificationHandler func(method string, params json.RawMessage)

// ErrorHandler is called for every read, write or parse fault. count is
// the number of consecutive faults since the last successful read.
type ErrorHandler func(err error, msg any, count int)

// CatchAll is the method key of the fallback notification handler.
const CatchAll = "*"

// Option configures a Conn.
type Option func(*Conn)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Conn) {
		c.logger = logger
	}
}

// WithErrorHandler sets the fault callback.
func WithErrorHandler(fn ErrorHandler) Option {
	return func(c *Conn) {
		c.onError = fn
	}
}

// WithCloseHandler sets the callback run once when the channel closes.
func WithCloseHandler(fn func()) Option {
	return func(c *Conn) {
		c.onClose = fn
	}
}

// Conn is a JSON-RPC connection.
type Conn struct {
	logger  *slog.Logger
	onError ErrorHandler
	onClose func()

	stream *faultStream
	conn   *jsonrpc2.Conn
	tracer *tracer

	mu            sync.RWMutex
	requests      map[string]RequestHandler
	notifications map[string]NotificationHandler

	nextID   atomic.Uint64
	disposed atomic.Bool
	ctx      context.Context
	cancel   context.CancelFunc
}

var _ interface {
	SendRequest(ctx context.Context, method string, params, result any) error
	SendNotification(ctx context.Context, method string, params any) error
} = (*Conn)(nil)

// New creates a connection over rwc.
func New(rwc io.ReadWriteCloser, framing Framing, opts ...Option) *Conn {
	c := &Conn{
		logger:        slog.Default(),
		requests:      make(map[string]RequestHandler),
		notifications: make(map[string]NotificationHandler),
		tracer:        newTracer(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.ctx, c.cancel = context.WithCancel(context.Background())

	c.stream = newFaultStream(jsonrpc2.NewBufferedStream(rwc, framing.codec()), framing, c.fault)
	c.conn = jsonrpc2.NewConn(c.ctx, c.stream, handler{c}, c.connOpts()...)

	go c.watchClose()
	return c
}

// NewFromPair creates a connection reading from r and writing to w. Both
// are closed on Dispose when they implement io.Closer.
func NewFromPair(r io.Reader, w io.Writer, framing Framing, opts ...Option) *Conn {
	p := &pairCloser{Reader: r, Writer: w}
	if rc, ok := r.(io.Closer); ok {
		p.closers = append(p.closers, rc)
	}
	if wc, ok := w.(io.Closer); ok && any(w) != any(r) {
		p.closers = append(p.closers, wc)
	}
	return New(p, framing, opts...)
}

// Listen starts reading messages. Later calls do nothing.
func (c *Conn) Listen() {
	c.stream.start()
}

// Dispose closes the connection. Pending requests fail and later sends
// return ErrConnectionDisposed.
func (c *Conn) Dispose() error {
	if c.disposed.Swap(true) {
		return nil
	}
	c.cancel()
	err := c.conn.Close()
	if errors.Is(err, jsonrpc2.ErrClosed) {
		return nil
	}
	return err
}

// Done is closed when the channel terminates.
func (c *Conn) Done() <-chan struct{} {
	return c.conn.DisconnectNotify()
}

// OnRequest sets the handler for method, replacing any earlier one.
func (c *Conn) OnRequest(method string, h RequestHandler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if h == nil {
		delete(c.requests, method)
		return
	}
	c.requests[method] = h
}

// OnNotification sets the handler for method, replacing any earlier one.
// The CatchAll method receives notifications with no handler of their own.
func (c *Conn) OnNotification(method string, h NotificationHandler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if h == nil {
		delete(c.notifications, method)
		return
	}
	c.notifications[method] = h
}

// SendRequest sends a request and decodes the result into result, which
// may be nil. When ctx ends first, $/cancelRequest is sent for the request
// and ctx's error is returned.
func (c *Conn) SendRequest(ctx context.Context, method string, params, result any) error {
	if c.disposed.Load() {
		return ErrConnectionDisposed
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	id := jsonrpc2.ID{Num: c.nextID.Add(1)}
	c.tracer.started(id, method)
	err := c.conn.Call(ctx, method, params, result, jsonrpc2.PickID(id))
	if err == nil {
		return nil
	}

	var wireErr *jsonrpc2.Error
	switch {
	case errors.As(err, &wireErr):
		return fromWire(wireErr)
	case ctx.Err() != nil:
		c.tracer.forget(id)
		c.sendCancel(id)
		return ctx.Err()
	case c.disposed.Load():
		return ErrConnectionDisposed
	case errors.Is(err, jsonrpc2.ErrClosed):
		return ErrConnectionClosed
	default:
		return errors.Wrapf(err, "request %s", method)
	}
}

func (c *Conn) sendCancel(id jsonrpc2.ID) {
	if c.disposed.Load() {
		return
	}
	err := c.conn.Notify(context.Background(), "$/cancelRequest", map[string]any{"id": id.Num})
	if err != nil {
		c.logger.Debug("cancel request not sent",
			slog.Uint64("id", id.Num),
			slog.String("err", err.Error()))
	}
}

// SendNotification sends a notification. Notifications are written in the
// order they are sent.
func (c *Conn) SendNotification(ctx context.Context, method string, params any) error {
	if c.disposed.Load() {
		return ErrConnectionDisposed
	}
	if err := c.conn.Notify(ctx, method, params); err != nil {
		if c.disposed.Load() {
			return ErrConnectionDisposed
		}
		if errors.Is(err, jsonrpc2.ErrClosed) {
			return ErrConnectionClosed
		}
		return errors.Wrapf(err, "notification %s", method)
	}
	return nil
}

// Trace sets the local trace level and tracer. With notifyServer the level
// is also sent as $/setTraceNotification.
func (c *Conn) Trace(ctx context.Context, level TraceLevel, t Tracer, notifyServer bool) error {
	c.tracer.set(level, t)
	if !notifyServer {
		return nil
	}
	return c.SendNotification(ctx, "$/setTraceNotification", map[string]string{"value": level.String()})
}

func (c *Conn) connOpts() []jsonrpc2.ConnOpt {
	return []jsonrpc2.ConnOpt{
		jsonrpc2.OnSend(c.tracer.onSend),
		jsonrpc2.OnRecv(c.tracer.onRecv),
	}
}

func (c *Conn) fault(err error, msg any, count int) {
	c.logger.Debug("connection fault",
		slog.Int("count", count),
		slog.String("err", err.Error()))
	if c.onError != nil {
		c.onError(err, msg, count)
	}
}

func (c *Conn) watchClose() {
	<-c.conn.DisconnectNotify()
	c.cancel()
	if c.onClose != nil {
		c.onClose()
	}
}

// handler dispatches incoming messages. Notifications run on the read
// loop so they are handled in arrival order; requests run concurrently.
type handler struct {
	c *Conn
}

func (h handler) Handle(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	var params json.RawMessage
	if req.Params != nil {
		params = *req.Params
	}

	if req.Notif {
		h.c.mu.RLock()
		fn, ok := h.c.notifications[req.Method]
		if !ok {
			fn, ok = h.c.notifications[CatchAll]
		}
		h.c.mu.RUnlock()
		if ok {
			fn(req.Method, params)
		}
		return
	}

	h.c.mu.RLock()
	fn, ok := h.c.requests[req.Method]
	h.c.mu.RUnlock()
	if !ok {
		h.c.reply(ctx, req, nil, NewResponseError(CodeMethodNotFound, "Unhandled method "+req.Method, nil))
		return
	}

	go func() {
		result, err := fn(ctx, params)
		h.c.reply(ctx, req, result, err)
	}()
}

func (c *Conn) reply(ctx context.Context, req *jsonrpc2.Request, result any, err error) {
	var sendErr error
	if err != nil {
		re, ok := AsResponseError(err)
		if !ok {
			re = NewResponseError(CodeInternalError, err.Error(), nil)
		}
		sendErr = c.conn.ReplyWithError(ctx, req.ID, re.wire())
	} else {
		sendErr = c.conn.Reply(ctx, req.ID, result)
	}
	if sendErr != nil && !errors.Is(sendErr, jsonrpc2.ErrClosed) {
		c.logger.Warn("reply failed",
			slog.String("method", req.Method),
			slog.String("err", sendErr.Error()))
	}
}
