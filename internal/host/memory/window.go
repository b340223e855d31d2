package memory

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/dshills/dataprotocol/internal/host"
)

// MessageKind classifies a window message.
type MessageKind int

const (
	MessageError MessageKind = iota
	MessageWarning
	MessageInfo
)

// String returns the kind name.
func (k MessageKind) String() string {
	switch k {
	case MessageError:
		return "error"
	case MessageWarning:
		return "warning"
	default:
		return "info"
	}
}

// Message is a message shown through the window.
type Message struct {
	Kind    MessageKind
	Text    string
	Actions []string
}

// Responder chooses an action for a message. Returning "" dismisses it.
type Responder func(ctx context.Context, msg Message) (string, error)

// Window is an in-memory host.Window that writes messages to an
// io.Writer and records them.
type Window struct {
	out       io.Writer
	logger    *slog.Logger
	responder Responder

	mu       sync.Mutex
	messages []Message
	channels map[string]*OutputChannel
}

var _ host.Window = (*Window)(nil)

// WindowOption configures a Window.
type WindowOption func(*Window)

// WithResponder sets the function that answers messages with actions.
func WithResponder(r Responder) WindowOption {
	return func(w *Window) {
		w.responder = r
	}
}

// WithWindowLogger sets the logger used by output channels.
func WithWindowLogger(logger *slog.Logger) WindowOption {
	return func(w *Window) {
		w.logger = logger
	}
}

// NewWindow creates a window writing to out. A nil out discards output.
func NewWindow(out io.Writer, opts ...WindowOption) *Window {
	if out == nil {
		out = io.Discard
	}
	w := &Window{
		out:      out,
		logger:   slog.Default(),
		channels: make(map[string]*OutputChannel),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// ShowErrorMessage implements host.Window.
func (w *Window) ShowErrorMessage(ctx context.Context, message string, actions ...string) (string, error) {
	return w.show(ctx, Message{Kind: MessageError, Text: message, Actions: actions})
}

// ShowWarningMessage implements host.Window.
func (w *Window) ShowWarningMessage(ctx context.Context, message string, actions ...string) (string, error) {
	return w.show(ctx, Message{Kind: MessageWarning, Text: message, Actions: actions})
}

// ShowInformationMessage implements host.Window.
func (w *Window) ShowInformationMessage(ctx context.Context, message string, actions ...string) (string, error) {
	return w.show(ctx, Message{Kind: MessageInfo, Text: message, Actions: actions})
}

func (w *Window) show(ctx context.Context, msg Message) (string, error) {
	w.mu.Lock()
	w.messages = append(w.messages, msg)
	w.mu.Unlock()

	line := fmt.Sprintf("[%s] %s", msg.Kind, msg.Text)
	if len(msg.Actions) > 0 {
		line += " (" + strings.Join(msg.Actions, " | ") + ")"
	}
	fmt.Fprintln(w.out, line)

	if w.responder == nil || len(msg.Actions) == 0 {
		return "", nil
	}
	return w.responder(ctx, msg)
}

// Messages returns the messages shown so far.
func (w *Window) Messages() []Message {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]Message, len(w.messages))
	copy(out, w.messages)
	return out
}

// CreateOutputChannel implements host.Window. Channels are shared by name.
func (w *Window) CreateOutputChannel(name string) host.OutputChannel {
	return w.OutputChannel(name)
}

// OutputChannel returns the named channel, creating it on first use.
func (w *Window) OutputChannel(name string) *OutputChannel {
	w.mu.Lock()
	defer w.mu.Unlock()
	if ch, ok := w.channels[name]; ok && !ch.isDisposed() {
		return ch
	}
	ch := &OutputChannel{name: name, out: w.out, logger: w.logger.With(slog.String("channel", name))}
	w.channels[name] = ch
	return ch
}

// OutputChannel buffers appended text and mirrors complete lines to the
// window writer once shown.
type OutputChannel struct {
	name   string
	out    io.Writer
	logger *slog.Logger

	mu       sync.Mutex
	buf      strings.Builder
	partial  string
	shown    bool
	reveals  int
	disposed bool
}

var _ host.OutputChannel = (*OutputChannel)(nil)

// Name returns the channel name.
func (c *OutputChannel) Name() string { return c.name }

// Append implements host.OutputChannel.
func (c *OutputChannel) Append(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.disposed {
		return
	}
	c.buf.WriteString(text)

	pending := c.partial + text
	for {
		nl := strings.IndexByte(pending, '\n')
		if nl < 0 {
			break
		}
		c.emit(pending[:nl])
		pending = pending[nl+1:]
	}
	c.partial = pending
}

// AppendLine implements host.OutputChannel.
func (c *OutputChannel) AppendLine(line string) {
	c.Append(line + "\n")
}

func (c *OutputChannel) emit(line string) {
	c.logger.Debug(line)
	if c.shown {
		fmt.Fprintf(c.out, "%s: %s\n", c.name, line)
	}
}

// Show implements host.OutputChannel. Lines appended after the first Show
// are written to the window.
func (c *OutputChannel) Show(preserveFocus bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.shown = true
	c.reveals++
}

// Reveals returns how many times Show was called.
func (c *OutputChannel) Reveals() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reveals
}

// Contents returns everything appended so far.
func (c *OutputChannel) Contents() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.buf.String()
}

// Dispose implements host.OutputChannel.
func (c *OutputChannel) Dispose() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.disposed = true
}

func (c *OutputChannel) isDisposed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.disposed
}
