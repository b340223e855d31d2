package client

import (
	"log/slog"
	"strings"
	"time"

	"github.com/dshills/dataprotocol/internal/convert"
	"github.com/dshills/dataprotocol/internal/host"
	"github.com/dshills/dataprotocol/internal/launch"
	"github.com/dshills/dataprotocol/internal/protocol"
)

// RevealOutputChannelOn is the lowest output level that brings the output
// channel to the front.
type RevealOutputChannelOn int

const (
	RevealOnInfo RevealOutputChannelOn = iota + 1
	RevealOnWarn
	RevealOnError
	RevealNever
)

// ParseRevealOutputChannelOn parses "info", "warn", "error" or "never".
// Anything else is RevealOnError.
func ParseRevealOutputChannelOn(s string) RevealOutputChannelOn {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "info":
		return RevealOnInfo
	case "warn", "warning":
		return RevealOnWarn
	case "never", "off":
		return RevealNever
	default:
		return RevealOnError
	}
}

// String returns the level name.
func (r RevealOutputChannelOn) String() string {
	switch r {
	case RevealOnInfo:
		return "info"
	case RevealOnWarn:
		return "warn"
	case RevealNever:
		return "never"
	default:
		return "error"
	}
}

// Synchronize selects what the client keeps in sync with the server
// besides open documents.
type Synchronize struct {
	// ConfigurationSection lists the dotted settings keys sent with
	// workspace/didChangeConfiguration.
	ConfigurationSection []string

	// FileEvents lists glob patterns, relative to the workspace root,
	// whose changes are sent with workspace/didChangeWatchedFiles. The
	// client creates the watchers and disposes them on cleanup.
	FileEvents []string

	// FileWatchers are caller-owned watchers whose events are forwarded
	// like those of FileEvents.
	FileWatchers []host.FileSystemWatcher

	// TextDocumentFilter selects additional documents to synchronize.
	TextDocumentFilter func(host.TextDocument) bool
}

// Options configure a Client.
type Options struct {
	DocumentSelector         host.DocumentSelector
	Synchronize              Synchronize
	DiagnosticCollectionName string
	OutputChannelName        string
	RevealOutputChannelOn    RevealOutputChannelOn

	// InitializationOptions is sent with initialize unless
	// InitializationOptionsFunc is set, in which case its result is sent.
	InitializationOptions     any
	InitializationOptionsFunc func() any

	// InitializationFailedHandler decides whether a failed initialize is
	// retried.
	InitializationFailedHandler func(err error) bool

	// ErrorHandler overrides the DefaultErrorHandler built from
	// ErrorHandlerConfig.
	ErrorHandler       ErrorHandler
	ErrorHandlerConfig ErrorHandlerConfig

	// ProviderID registers the data protocol providers under this id when
	// the server advertises a connection provider.
	ProviderID string

	// ServerConnectionMetadata answers GetServerCapabilities without a
	// capabilities/list round trip.
	ServerConnectionMetadata *protocol.CapabilitiesDiscoveryResult

	URIEncoder convert.URIEncoder
	URIDecoder convert.URIDecoder

	Forker     launch.Forker
	ForceDebug bool

	Logger *slog.Logger

	// DocumentSyncDelay coalesces full document changes.
	// Default: 100ms
	DocumentSyncDelay time.Duration

	// FileEventDelay batches watched file events.
	// Default: 250ms
	FileEventDelay time.Duration

	// StopGrace is how long a stopped server may take to exit before it
	// is killed.
	// Default: 2s
	StopGrace time.Duration
}

// DefaultOptions returns the default client options.
func DefaultOptions() Options {
	return Options{
		RevealOutputChannelOn: RevealOnError,
		ErrorHandlerConfig:    DefaultErrorHandlerConfig(),
		Logger:                slog.Default(),
		DocumentSyncDelay:     100 * time.Millisecond,
		FileEventDelay:        250 * time.Millisecond,
		StopGrace:             2 * time.Second,
	}
}

// Option configures a Client.
type Option func(*Options)

// WithDocumentSelector selects the languages the client serves.
func WithDocumentSelector(languageIDs ...string) Option {
	return func(o *Options) {
		o.DocumentSelector = append(host.DocumentSelector(nil), languageIDs...)
	}
}

// WithSynchronize sets what is kept in sync besides documents.
func WithSynchronize(s Synchronize) Option {
	return func(o *Options) {
		o.Synchronize = s
	}
}

// WithConfigurationSection sets the settings keys sent to the server.
func WithConfigurationSection(keys ...string) Option {
	return func(o *Options) {
		o.Synchronize.ConfigurationSection = append([]string(nil), keys...)
	}
}

// WithFileEvents sets the glob patterns whose changes are forwarded.
func WithFileEvents(patterns ...string) Option {
	return func(o *Options) {
		o.Synchronize.FileEvents = append([]string(nil), patterns...)
	}
}

// WithFileWatchers adds caller-owned watchers whose changes are forwarded.
func WithFileWatchers(watchers ...host.FileSystemWatcher) Option {
	return func(o *Options) {
		o.Synchronize.FileWatchers = append(o.Synchronize.FileWatchers, watchers...)
	}
}

// WithTextDocumentFilter selects additional documents to synchronize.
func WithTextDocumentFilter(fn func(host.TextDocument) bool) Option {
	return func(o *Options) {
		o.Synchronize.TextDocumentFilter = fn
	}
}

// WithDiagnosticCollectionName names the diagnostic collection.
func WithDiagnosticCollectionName(name string) Option {
	return func(o *Options) {
		o.DiagnosticCollectionName = name
	}
}

// WithOutputChannelName names the output channel.
func WithOutputChannelName(name string) Option {
	return func(o *Options) {
		o.OutputChannelName = name
	}
}

// WithRevealOutputChannelOn sets the level that reveals the output channel.
func WithRevealOutputChannelOn(r RevealOutputChannelOn) Option {
	return func(o *Options) {
		o.RevealOutputChannelOn = r
	}
}

// WithInitializationOptions sets the value sent with initialize.
func WithInitializationOptions(v any) Option {
	return func(o *Options) {
		o.InitializationOptions = v
	}
}

// WithInitializationOptionsFunc computes the initialize options on every
// start.
func WithInitializationOptionsFunc(fn func() any) Option {
	return func(o *Options) {
		o.InitializationOptionsFunc = fn
	}
}

// WithInitializationFailedHandler decides whether a failed initialize is
// retried.
func WithInitializationFailedHandler(fn func(err error) bool) Option {
	return func(o *Options) {
		o.InitializationFailedHandler = fn
	}
}

// WithErrorHandler replaces the default error handler.
func WithErrorHandler(h ErrorHandler) Option {
	return func(o *Options) {
		o.ErrorHandler = h
	}
}

// WithErrorHandlerConfig tunes the default error handler.
func WithErrorHandlerConfig(cfg ErrorHandlerConfig) Option {
	return func(o *Options) {
		o.ErrorHandlerConfig = cfg
	}
}

// WithProviderID registers data protocol providers under id.
func WithProviderID(id string) Option {
	return func(o *Options) {
		o.ProviderID = id
	}
}

// WithServerConnectionMetadata answers capability discovery locally.
func WithServerConnectionMetadata(md *protocol.CapabilitiesDiscoveryResult) Option {
	return func(o *Options) {
		o.ServerConnectionMetadata = md
	}
}

// WithURIConverters replaces the URI transcoding of both converters.
func WithURIConverters(enc convert.URIEncoder, dec convert.URIDecoder) Option {
	return func(o *Options) {
		o.URIEncoder = enc
		o.URIDecoder = dec
	}
}

// WithForker sets the capability used to start modules without a runtime.
func WithForker(f launch.Forker) Option {
	return func(o *Options) {
		o.Forker = f
	}
}

// WithForceDebug always selects the debug server options.
func WithForceDebug(force bool) Option {
	return func(o *Options) {
		o.ForceDebug = force
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

// WithDocumentSyncDelay sets the full document sync delay.
func WithDocumentSyncDelay(d time.Duration) Option {
	return func(o *Options) {
		o.DocumentSyncDelay = d
	}
}

// WithFileEventDelay sets the file event batching delay.
func WithFileEventDelay(d time.Duration) Option {
	return func(o *Options) {
		o.FileEventDelay = d
	}
}

// WithStopGrace sets how long a stopped server may take to exit.
func WithStopGrace(d time.Duration) Option {
	return func(o *Options) {
		o.StopGrace = d
	}
}
