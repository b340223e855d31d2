package client

import (
	"errors"
	"testing"
	"time"
)

func TestDefaultErrorHandlerError(t *testing.T) {
	h := NewDefaultErrorHandler("Test", DefaultErrorHandlerConfig(), nil)
	h.logger = discardLogger()

	tests := []struct {
		count int
		want  ErrorAction
	}{
		{1, ErrorActionContinue},
		{2, ErrorActionContinue},
		{3, ErrorActionContinue},
		{4, ErrorActionShutdown},
		{10, ErrorActionShutdown},
	}
	for _, tt := range tests {
		if got := h.Error(errors.New("boom"), nil, tt.count); got != tt.want {
			t.Errorf("count %d: expected %v, got %v", tt.count, tt.want, got)
		}
	}
}

func TestDefaultErrorHandlerRestartBudget(t *testing.T) {
	h := NewDefaultErrorHandler("Test", DefaultErrorHandlerConfig(), nil)
	h.logger = discardLogger()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	h.now = func() time.Time { return now }

	for i := 0; i < 5; i++ {
		if got := h.Closed(); got != CloseActionRestart {
			t.Fatalf("close %d: expected restart, got %v", i+1, got)
		}
		now = now.Add(10 * time.Second)
	}
	if got := h.Closed(); got != CloseActionDoNotRestart {
		t.Errorf("sixth close within window: expected do not restart, got %v", got)
	}
	if n := len(h.Restarts()); n != 5 {
		t.Errorf("expected 5 recorded restarts, got %d", n)
	}
}

func TestDefaultErrorHandlerRestartWindowSlides(t *testing.T) {
	h := NewDefaultErrorHandler("Test", DefaultErrorHandlerConfig(), nil)
	h.logger = discardLogger()
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	now := start
	h.now = func() time.Time { return now }

	for i := 0; i < 5; i++ {
		h.Closed()
		now = now.Add(time.Second)
	}

	// The oldest restart is now outside the window.
	now = start.Add(3*time.Minute + time.Second)
	if got := h.Closed(); got != CloseActionRestart {
		t.Errorf("expected restart after window elapsed, got %v", got)
	}

	restarts := h.Restarts()
	if len(restarts) != 5 {
		t.Fatalf("expected 5 restarts, got %d", len(restarts))
	}
	if !restarts[4].Equal(now) {
		t.Errorf("expected newest restart %v, got %v", now, restarts[4])
	}
	if !restarts[0].Equal(start.Add(time.Second)) {
		t.Errorf("expected oldest restart %v, got %v", start.Add(time.Second), restarts[0])
	}
}

func TestDefaultErrorHandlerConfigDefaults(t *testing.T) {
	h := NewDefaultErrorHandler("Test", ErrorHandlerConfig{MaxRestarts: 2}, nil)
	if h.config.MaxConsecutiveErrors != 3 {
		t.Errorf("expected 3, got %d", h.config.MaxConsecutiveErrors)
	}
	if h.config.RestartWindow != 3*time.Minute {
		t.Errorf("expected 3m, got %v", h.config.RestartWindow)
	}
	if len(h.restarts) != 2 {
		t.Errorf("expected ring of 2, got %d", len(h.restarts))
	}
}

func TestWindowText(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{3 * time.Minute, "3 minutes"},
		{time.Minute, "minute"},
		{90 * time.Second, "1m30s"},
	}
	for _, tt := range tests {
		if got := windowText(tt.d); got != tt.want {
			t.Errorf("%v: expected %q, got %q", tt.d, tt.want, got)
		}
	}
}
