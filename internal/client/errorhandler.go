package client

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/dshills/dataprotocol/internal/host"
)

// ErrorAction tells the client what to do after a transport fault.
type ErrorAction int

const (
	// ErrorActionContinue keeps the connection running.
	ErrorActionContinue ErrorAction = iota + 1
	// ErrorActionShutdown stops the client.
	ErrorActionShutdown
)

// String returns the action name.
func (a ErrorAction) String() string {
	if a == ErrorActionShutdown {
		return "shutdown"
	}
	return "continue"
}

// CloseAction tells the client what to do after the connection closed
// unexpectedly.
type CloseAction int

const (
	// CloseActionDoNotRestart leaves the client stopped.
	CloseActionDoNotRestart CloseAction = iota + 1
	// CloseActionRestart starts the server again.
	CloseActionRestart
)

// String returns the action name.
func (a CloseAction) String() string {
	if a == CloseActionRestart {
		return "restart"
	}
	return "do not restart"
}

// ErrorHandler decides how the client reacts to connection failures.
type ErrorHandler interface {
	// Error is called for every transport fault. count is the number of
	// consecutive faults since the last successful read.
	Error(err error, msg any, count int) ErrorAction
	// Closed is called when the connection closed while the client was
	// not stopping.
	Closed() CloseAction
}

// ErrorHandlerConfig configures DefaultErrorHandler.
type ErrorHandlerConfig struct {
	// MaxConsecutiveErrors is the number of consecutive faults tolerated
	// before shutting down.
	// Default: 3
	MaxConsecutiveErrors int

	// MaxRestarts is the number of restarts allowed inside RestartWindow.
	// Default: 5
	MaxRestarts int

	// RestartWindow is the period MaxRestarts is counted over.
	// Default: 3 minutes
	RestartWindow time.Duration
}

// DefaultErrorHandlerConfig returns the default error handler configuration.
func DefaultErrorHandlerConfig() ErrorHandlerConfig {
	return ErrorHandlerConfig{
		MaxConsecutiveErrors: 3,
		MaxRestarts:          5,
		RestartWindow:        3 * time.Minute,
	}
}

// DefaultErrorHandler continues through a few consecutive faults and
// restarts a crashed server until it crashes too often in a short period.
//
// Restart times are kept in a ring of MaxRestarts entries owned by the
// handler, so every client has its own history.
type DefaultErrorHandler struct {
	name   string
	config ErrorHandlerConfig
	window host.Window
	logger *slog.Logger
	now    func() time.Time

	mu       sync.Mutex
	restarts []time.Time
	next     int
	full     bool
}

// NewDefaultErrorHandler creates the handler for the server called name.
// When it gives up it tells the user through window, which may be nil.
func NewDefaultErrorHandler(name string, config ErrorHandlerConfig, window host.Window) *DefaultErrorHandler {
	def := DefaultErrorHandlerConfig()
	if config.MaxConsecutiveErrors <= 0 {
		config.MaxConsecutiveErrors = def.MaxConsecutiveErrors
	}
	if config.MaxRestarts <= 0 {
		config.MaxRestarts = def.MaxRestarts
	}
	if config.RestartWindow <= 0 {
		config.RestartWindow = def.RestartWindow
	}
	return &DefaultErrorHandler{
		name:     name,
		config:   config,
		window:   window,
		logger:   slog.Default(),
		now:      time.Now,
		restarts: make([]time.Time, config.MaxRestarts),
	}
}

// Error implements ErrorHandler.
func (h *DefaultErrorHandler) Error(err error, msg any, count int) ErrorAction {
	if count <= h.config.MaxConsecutiveErrors {
		return ErrorActionContinue
	}
	return ErrorActionShutdown
}

// Closed implements ErrorHandler.
func (h *DefaultErrorHandler) Closed() CloseAction {
	now := h.now()

	h.mu.Lock()
	if h.full && now.Sub(h.restarts[h.next]) <= h.config.RestartWindow {
		h.mu.Unlock()
		h.giveUp()
		return CloseActionDoNotRestart
	}
	// Overwrites the oldest entry once the ring is full.
	h.restarts[h.next] = now
	h.next = (h.next + 1) % len(h.restarts)
	if h.next == 0 {
		h.full = true
	}
	h.mu.Unlock()
	return CloseActionRestart
}

// Restarts returns the recorded restart times, oldest first.
func (h *DefaultErrorHandler) Restarts() []time.Time {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.full {
		return append([]time.Time(nil), h.restarts[:h.next]...)
	}
	out := make([]time.Time, 0, len(h.restarts))
	out = append(out, h.restarts[h.next:]...)
	return append(out, h.restarts[:h.next]...)
}

func (h *DefaultErrorHandler) giveUp() {
	message := fmt.Sprintf("The %s server crashed %d times in the last %s. The server will not be restarted.",
		h.name, h.config.MaxRestarts, windowText(h.config.RestartWindow))
	h.logger.Warn("server restart limit reached", slog.String("server", h.name))
	if h.window == nil {
		return
	}
	go func() {
		if _, err := h.window.ShowErrorMessage(context.Background(), message); err != nil {
			h.logger.Debug("show message failed", slog.String("err", err.Error()))
		}
	}()
}

func windowText(d time.Duration) string {
	if d >= time.Minute && d%time.Minute == 0 {
		if d == time.Minute {
			return "minute"
		}
		return fmt.Sprintf("%d minutes", int(d/time.Minute))
	}
	return d.String()
}
