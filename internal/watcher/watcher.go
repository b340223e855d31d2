// Package watcher reports file system changes below a root directory.
//
// A Watcher wraps fsnotify, watches directory trees recursively and filters
// events through a glob Pattern such as "**/*.sql" or "**/*.{sql,json}".
// Events carry absolute paths.
package watcher

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
)

// Common errors returned by watcher operations.
var (
	ErrWatcherClosed   = errors.New("watcher is closed")
	ErrAlreadyWatching = errors.New("path is already being watched")
	ErrNotWatching     = errors.New("path is not being watched")
	ErrPathNotExist    = errors.New("path does not exist")
)

// Op represents the type of file system operation.
type Op uint32

const (
	// OpCreate indicates a file or directory was created.
	OpCreate Op = 1 << iota
	// OpWrite indicates a file was written to.
	OpWrite
	// OpRemove indicates a file or directory was removed.
	OpRemove
	// OpRename indicates a file or directory was renamed.
	OpRename
	// OpChmod indicates file permissions were changed.
	OpChmod
)

// String returns a human-readable representation of the operation.
func (op Op) String() string {
	switch op {
	case OpCreate:
		return "CREATE"
	case OpWrite:
		return "WRITE"
	case OpRemove:
		return "REMOVE"
	case OpRename:
		return "RENAME"
	case OpChmod:
		return "CHMOD"
	default:
		return "UNKNOWN"
	}
}

// Has returns true if the operation includes the given op.
func (op Op) Has(o Op) bool {
	return op&o == o
}

// Event represents a file system change event.
type Event struct {
	// Path is the absolute path of the affected file or directory.
	Path string

	// Op is the operation that occurred.
	Op Op

	// Timestamp is when the event occurred.
	Timestamp time.Time
}

// Config holds watcher configuration options.
type Config struct {
	// BufferSize is the size of the event and error channels.
	// Default: 100
	BufferSize int

	// Pattern selects the files whose events are delivered, relative to
	// the watched root. Empty matches everything.
	Pattern string

	// IgnoreHidden skips files and directories starting with a dot.
	// Default: true
	IgnoreHidden bool
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		BufferSize:   100,
		IgnoreHidden: true,
	}
}

// Option configures a watcher.
type Option func(*Config)

// WithPattern sets the glob pattern events must match.
func WithPattern(pattern string) Option {
	return func(c *Config) {
		c.Pattern = pattern
	}
}

// Handler is a function that handles file system events.
type Handler func(event Event)

// ErrorHandler is a function that handles watcher errors.
type ErrorHandler func(err error)

// Run delivers the watcher's events and errors to the handlers until ctx is
// done or the watcher is closed.
func Run(ctx context.Context, w *Watcher, onEvent Handler, onError ErrorHandler) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.Events():
			if !ok {
				return
			}
			if onEvent != nil {
				onEvent(ev)
			}
		case err, ok := <-w.Errors():
			if !ok {
				return
			}
			if onError != nil {
				onError(err)
			}
		}
	}
}
