package memory

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/dshills/dataprotocol/internal/host"
	"github.com/dshills/dataprotocol/internal/watcher"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
	"go.lsp.dev/uri"
)

// Errors returned by Workspace.
var (
	ErrDocumentNotOpen = errors.New("document not open")
	ErrDocumentOpen    = errors.New("document already open")
	ErrInvalidSettings = errors.New("settings are not a JSON object")
)

// Workspace is an in-memory host.Workspace.
type Workspace struct {
	root   string
	logger *slog.Logger

	mu       sync.RWMutex
	docs     map[uri.URI]*Document
	order    []uri.URI
	settings []byte

	opened  host.Emitter[host.TextDocument]
	changed host.Emitter[host.TextDocumentChangeEvent]
	closed  host.Emitter[host.TextDocument]
	saved   host.Emitter[host.TextDocument]
	config  host.Emitter[struct{}]
}

var _ host.Workspace = (*Workspace)(nil)

// WorkspaceOption configures a Workspace.
type WorkspaceOption func(*Workspace)

// WithSettings sets the initial settings document. Invalid JSON is ignored.
func WithSettings(settings []byte) WorkspaceOption {
	return func(w *Workspace) {
		if isObject(settings) {
			w.settings = append([]byte(nil), settings...)
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) WorkspaceOption {
	return func(w *Workspace) {
		w.logger = logger
	}
}

// NewWorkspace creates a workspace rooted at root.
func NewWorkspace(root string, opts ...WorkspaceOption) *Workspace {
	w := &Workspace{
		root:     root,
		logger:   slog.Default(),
		docs:     make(map[uri.URI]*Document),
		settings: []byte("{}"),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// RootPath implements host.Workspace.
func (w *Workspace) RootPath() string { return w.root }

// TextDocuments returns open documents in the order they were opened.
func (w *Workspace) TextDocuments() []host.TextDocument {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]host.TextDocument, 0, len(w.order))
	for _, u := range w.order {
		out = append(out, w.docs[u])
	}
	return out
}

// Document returns the open document for u.
func (w *Workspace) Document(u uri.URI) (*Document, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	d, ok := w.docs[u]
	return d, ok
}

// OpenDocument opens a document and fires the open event.
func (w *Workspace) OpenDocument(u uri.URI, languageID, text string) (*Document, error) {
	w.mu.Lock()
	if _, ok := w.docs[u]; ok {
		w.mu.Unlock()
		return nil, errors.Wrapf(ErrDocumentOpen, "%s", u)
	}
	doc := newDocument(u, languageID, text)
	w.docs[u] = doc
	w.order = append(w.order, u)
	w.mu.Unlock()

	w.opened.Fire(doc)
	return doc, nil
}

// OpenFile reads path from disk and opens it.
func (w *Workspace) OpenFile(path, languageID string) (*Document, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrap(err, "resolve path")
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", abs)
	}
	return w.OpenDocument(uri.File(abs), languageID, string(data))
}

// ChangeDocument applies incremental changes and fires the change event.
func (w *Workspace) ChangeDocument(u uri.URI, changes ...host.TextDocumentContentChange) error {
	doc, ok := w.Document(u)
	if !ok {
		return errors.Wrapf(ErrDocumentNotOpen, "%s", u)
	}
	doc.apply(changes)
	w.changed.Fire(host.TextDocumentChangeEvent{Document: doc, ContentChanges: changes})
	return nil
}

// ReplaceText replaces the whole text of a document.
func (w *Workspace) ReplaceText(u uri.URI, text string) error {
	doc, ok := w.Document(u)
	if !ok {
		return errors.Wrapf(ErrDocumentNotOpen, "%s", u)
	}
	old := doc.Text()
	return w.ChangeDocument(u, host.TextDocumentContentChange{
		Range:       doc.fullRange(),
		RangeLength: utf16Len(old),
		Text:        text,
	})
}

// SaveDocument fires the save event.
func (w *Workspace) SaveDocument(u uri.URI) error {
	doc, ok := w.Document(u)
	if !ok {
		return errors.Wrapf(ErrDocumentNotOpen, "%s", u)
	}
	w.saved.Fire(doc)
	return nil
}

// CloseDocument removes a document and fires the close event.
func (w *Workspace) CloseDocument(u uri.URI) error {
	w.mu.Lock()
	doc, ok := w.docs[u]
	if !ok {
		w.mu.Unlock()
		return errors.Wrapf(ErrDocumentNotOpen, "%s", u)
	}
	delete(w.docs, u)
	for i, o := range w.order {
		if o == u {
			w.order = append(w.order[:i], w.order[i+1:]...)
			break
		}
	}
	w.mu.Unlock()

	w.closed.Fire(doc)
	return nil
}

// OnDidOpenTextDocument implements host.Workspace.
func (w *Workspace) OnDidOpenTextDocument(fn func(host.TextDocument)) host.Disposable {
	return w.opened.Event(fn)
}

// OnDidChangeTextDocument implements host.Workspace.
func (w *Workspace) OnDidChangeTextDocument(fn func(host.TextDocumentChangeEvent)) host.Disposable {
	return w.changed.Event(fn)
}

// OnDidCloseTextDocument implements host.Workspace.
func (w *Workspace) OnDidCloseTextDocument(fn func(host.TextDocument)) host.Disposable {
	return w.closed.Event(fn)
}

// OnDidSaveTextDocument implements host.Workspace.
func (w *Workspace) OnDidSaveTextDocument(fn func(host.TextDocument)) host.Disposable {
	return w.saved.Event(fn)
}

// OnDidChangeConfiguration implements host.Workspace.
func (w *Workspace) OnDidChangeConfiguration(fn func()) host.Disposable {
	return w.config.Event(func(struct{}) { fn() })
}

// Configuration returns a snapshot view of the current settings.
func (w *Workspace) Configuration() host.Configuration {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return settingsConfig(w.settings)
}

// Settings returns a copy of the settings document.
func (w *Workspace) Settings() []byte {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return append([]byte(nil), w.settings...)
}

// SetSettings replaces the settings document and fires the change event.
func (w *Workspace) SetSettings(settings []byte) error {
	if !isObject(settings) {
		return ErrInvalidSettings
	}
	w.mu.Lock()
	w.settings = append([]byte(nil), settings...)
	w.mu.Unlock()

	w.config.Fire(struct{}{})
	return nil
}

// UpdateSetting sets a single dotted key and fires the change event.
func (w *Workspace) UpdateSetting(key string, value any) error {
	w.mu.Lock()
	updated, err := sjson.SetBytes(w.settings, key, value)
	if err != nil {
		w.mu.Unlock()
		return errors.Wrapf(err, "set %s", key)
	}
	w.settings = updated
	w.mu.Unlock()

	w.config.Fire(struct{}{})
	return nil
}

// CreateFileSystemWatcher implements host.Workspace. The pattern is
// matched against slash separated paths relative to the root.
func (w *Workspace) CreateFileSystemWatcher(pattern string) (host.FileSystemWatcher, error) {
	fw, err := watcher.New(w.root, watcher.WithPattern(pattern))
	if err != nil {
		return nil, errors.Wrapf(err, "watch %s", pattern)
	}

	ctx, cancel := context.WithCancel(context.Background())
	fsw := &fileSystemWatcher{w: fw, cancel: cancel, done: make(chan struct{})}
	go func() {
		defer close(fsw.done)
		watcher.Run(ctx, fw, fsw.dispatch, func(err error) {
			w.logger.Warn("file watcher error",
				slog.String("pattern", pattern),
				slog.String("err", err.Error()))
		})
	}()
	return fsw, nil
}

// WatchSettingsFile reloads settings from path each time it changes on
// disk. load converts the file contents to a JSON object.
func (w *Workspace) WatchSettingsFile(ctx context.Context, path string, load func(path string) ([]byte, error)) error {
	dir := filepath.Dir(path)
	fw, err := watcher.New(dir, watcher.WithPattern(filepath.Base(path)))
	if err != nil {
		return errors.Wrapf(err, "watch %s", path)
	}
	go func() {
		defer fw.Close()
		watcher.Run(ctx, fw, func(ev watcher.Event) {
			if !ev.Op.Has(watcher.OpWrite) && !ev.Op.Has(watcher.OpCreate) {
				return
			}
			data, err := load(path)
			if err == nil {
				err = w.SetSettings(data)
			}
			if err != nil {
				w.logger.Warn("settings reload failed",
					slog.String("path", path),
					slog.String("err", err.Error()))
			}
		}, nil)
	}()
	return nil
}

// settingsConfig resolves keys as nested paths first and then as literal
// dotted keys, so both {"a":{"b":1}} and {"a.b":1} answer "a.b".
type settingsConfig []byte

func (s settingsConfig) Get(key string) (json.RawMessage, bool) {
	res := gjson.GetBytes(s, key)
	if !res.Exists() {
		res = gjson.GetBytes(s, escapeKey(key))
	}
	if !res.Exists() {
		return nil, false
	}
	return json.RawMessage(res.Raw), true
}

func escapeKey(key string) string {
	r := strings.NewReplacer(".", `\.`, "*", `\*`, "?", `\?`)
	return r.Replace(key)
}

func isObject(data []byte) bool {
	return gjson.ValidBytes(data) && gjson.ParseBytes(data).IsObject()
}

type fileSystemWatcher struct {
	w      *watcher.Watcher
	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once

	created host.Emitter[host.FileEvent]
	changed host.Emitter[host.FileEvent]
	deleted host.Emitter[host.FileEvent]
}

func (f *fileSystemWatcher) dispatch(ev watcher.Event) {
	u := uri.File(ev.Path)
	switch {
	case ev.Op.Has(watcher.OpCreate):
		f.created.Fire(host.FileEvent{URI: u, Type: host.FileCreated})
	case ev.Op.Has(watcher.OpRemove), ev.Op.Has(watcher.OpRename):
		f.deleted.Fire(host.FileEvent{URI: u, Type: host.FileDeleted})
	case ev.Op.Has(watcher.OpWrite):
		f.changed.Fire(host.FileEvent{URI: u, Type: host.FileChanged})
	}
}

func (f *fileSystemWatcher) OnDidCreate(fn func(host.FileEvent)) host.Disposable {
	return f.created.Event(fn)
}

func (f *fileSystemWatcher) OnDidChange(fn func(host.FileEvent)) host.Disposable {
	return f.changed.Event(fn)
}

func (f *fileSystemWatcher) OnDidDelete(fn func(host.FileEvent)) host.Disposable {
	return f.deleted.Event(fn)
}

func (f *fileSystemWatcher) Dispose() {
	f.once.Do(func() {
		f.cancel()
		<-f.done
		_ = f.w.Close()
		f.created.Dispose()
		f.changed.Dispose()
		f.deleted.Dispose()
	})
}
