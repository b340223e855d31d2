package client

import (
	"context"
	"encoding/json"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/tidwall/gjson"
	"go.lsp.dev/uri"

	"github.com/dshills/dataprotocol/internal/host"
	"github.com/dshills/dataprotocol/internal/host/memory"
	"github.com/dshills/dataprotocol/internal/launch"
	"github.com/dshills/dataprotocol/internal/protocol"
)

func documentMethods(f *fakeServer) []string {
	var out []string
	for _, m := range f.methods() {
		if strings.HasPrefix(m, "textDocument/did") || strings.HasPrefix(m, "custom/") {
			out = append(out, strings.TrimPrefix(m, "textDocument/"))
		}
	}
	return out
}

func changeTexts(t *testing.T, f *fakeServer) []string {
	t.Helper()
	var out []string
	for _, raw := range f.params("textDocument/didChange") {
		var p protocol.DidChangeTextDocumentParams
		if err := json.Unmarshal(raw, &p); err != nil {
			t.Fatalf("decode didChange: %v", err)
		}
		for _, ch := range p.ContentChanges {
			out = append(out, ch.Text)
		}
	}
	return out
}

func TestFullSyncCoalescesChanges(t *testing.T) {
	f := newFakeServer(t, protocol.ServerCapabilities{TextDocumentSync: json.RawMessage(`1`)})
	h := newTestHost(t, nil)
	c := newTestClient(t, launch.StreamFactory(f.factory), h, WithDocumentSyncDelay(50*time.Millisecond))
	startClient(t, c)

	if _, err := h.Workspace.OpenDocument("file:///q.sql", "sql", "SELECT 1"); err != nil {
		t.Fatal(err)
	}
	if err := h.Workspace.ReplaceText("file:///q.sql", "SELECT 2"); err != nil {
		t.Fatal(err)
	}
	time.Sleep(10 * time.Millisecond)
	if err := h.Workspace.ReplaceText("file:///q.sql", "SELECT 3"); err != nil {
		t.Fatal(err)
	}

	eventually(t, func() bool { return f.count("textDocument/didChange") == 1 }, "didChange")
	time.Sleep(150 * time.Millisecond)

	if got := changeTexts(t, f); !slices.Equal(got, []string{"SELECT 3"}) {
		t.Errorf("expected one full change with the latest text, got %q", got)
	}
}

func TestFullSyncFlushesBeforeOtherDocument(t *testing.T) {
	f := newFakeServer(t, protocol.ServerCapabilities{TextDocumentSync: json.RawMessage(`1`)})
	h := newTestHost(t, nil)
	c := newTestClient(t, launch.StreamFactory(f.factory), h, WithDocumentSyncDelay(time.Hour))
	startClient(t, c)

	ws := h.Workspace
	for _, u := range []uri.URI{"file:///a.sql", "file:///b.sql"} {
		if _, err := ws.OpenDocument(u, "sql", ""); err != nil {
			t.Fatal(err)
		}
	}
	if err := ws.ReplaceText("file:///a.sql", "A"); err != nil {
		t.Fatal(err)
	}
	if err := ws.ReplaceText("file:///b.sql", "B"); err != nil {
		t.Fatal(err)
	}
	if err := ws.CloseDocument("file:///b.sql"); err != nil {
		t.Fatal(err)
	}

	want := []string{"didOpen", "didOpen", "didChange", "didChange", "didClose"}
	eventually(t, func() bool { return len(documentMethods(f)) == len(want) }, "document notifications")
	if got := documentMethods(f); !slices.Equal(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
	if got := changeTexts(t, f); !slices.Equal(got, []string{"A", "B"}) {
		t.Errorf("expected changes A then B, got %q", got)
	}
}

func TestIncrementalSyncOrder(t *testing.T) {
	f := newFakeServer(t, protocol.ServerCapabilities{TextDocumentSync: json.RawMessage(`{"openClose":true,"change":2}`)})
	h := newTestHost(t, nil)
	c := newTestClient(t, launch.StreamFactory(f.factory), h)
	startClient(t, c)

	ws := h.Workspace
	if _, err := ws.OpenDocument("file:///q.sql", "sql", "SELECT 1"); err != nil {
		t.Fatal(err)
	}
	edit := host.TextDocumentContentChange{
		Range: host.Range{Start: host.Position{Line: 0, Character: 7}, End: host.Position{Line: 0, Character: 8}},
		Text:  "2",
	}
	if err := ws.ChangeDocument("file:///q.sql", edit); err != nil {
		t.Fatal(err)
	}
	if err := ws.SaveDocument("file:///q.sql"); err != nil {
		t.Fatal(err)
	}
	if err := ws.CloseDocument("file:///q.sql"); err != nil {
		t.Fatal(err)
	}

	want := []string{"didOpen", "didChange", "didSave", "didClose"}
	eventually(t, func() bool { return len(documentMethods(f)) == len(want) }, "document notifications")
	if got := documentMethods(f); !slices.Equal(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}

	var p protocol.DidChangeTextDocumentParams
	if err := json.Unmarshal(f.params("textDocument/didChange")[0], &p); err != nil {
		t.Fatal(err)
	}
	if len(p.ContentChanges) != 1 || p.ContentChanges[0].Range == nil || p.ContentChanges[0].Text != "2" {
		t.Errorf("expected one ranged change, got %+v", p.ContentChanges)
	}
}

func TestSendRequestFlushesPendingChange(t *testing.T) {
	f := newFakeServer(t, protocol.ServerCapabilities{TextDocumentSync: json.RawMessage(`1`)})
	h := newTestHost(t, nil)
	c := newTestClient(t, launch.StreamFactory(f.factory), h, WithDocumentSyncDelay(time.Hour))
	startClient(t, c)

	if _, err := h.Workspace.OpenDocument("file:///q.sql", "sql", "SELECT 1"); err != nil {
		t.Fatal(err)
	}
	if err := h.Workspace.ReplaceText("file:///q.sql", "SELECT 2"); err != nil {
		t.Fatal(err)
	}
	if err := c.SendRequest(context.Background(), "custom/run", nil, nil); err != nil {
		t.Fatalf("SendRequest: %v", err)
	}

	want := []string{"didOpen", "didChange", "custom/run"}
	if got := documentMethods(f); !slices.Equal(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestDocumentSelection(t *testing.T) {
	tests := []struct {
		name string
		caps protocol.ServerCapabilities
		opts []Option
		want []string
	}{
		{
			name: "selected language only",
			caps: protocol.ServerCapabilities{TextDocumentSync: json.RawMessage(`1`)},
			want: []string{"didOpen", "custom/ping"},
		},
		{
			name: "filter adds documents",
			caps: protocol.ServerCapabilities{TextDocumentSync: json.RawMessage(`1`)},
			opts: []Option{WithTextDocumentFilter(func(d host.TextDocument) bool { return d.LanguageID() == "plaintext" })},
			want: []string{"didOpen", "didOpen", "custom/ping"},
		},
		{
			name: "no sync",
			caps: protocol.ServerCapabilities{},
			want: []string{"custom/ping"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFakeServer(t, tt.caps)
			h := newTestHost(t, nil)
			c := newTestClient(t, launch.StreamFactory(f.factory), h, tt.opts...)
			startClient(t, c)

			ws := h.Workspace
			_, _ = ws.OpenDocument("file:///q.sql", "sql", "SELECT 1")
			_, _ = ws.OpenDocument("file:///main.go", "go", "package main")
			_, _ = ws.OpenDocument("file:///notes.txt", "plaintext", "todo")

			if err := c.SendRequest(context.Background(), "custom/ping", nil, nil); err != nil {
				t.Fatal(err)
			}
			if got := documentMethods(f); !slices.Equal(got, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

type fakeWatcher struct {
	created, changed, deleted host.Emitter[host.FileEvent]
}

func (w *fakeWatcher) OnDidCreate(fn func(host.FileEvent)) host.Disposable { return w.created.Event(fn) }
func (w *fakeWatcher) OnDidChange(fn func(host.FileEvent)) host.Disposable { return w.changed.Event(fn) }
func (w *fakeWatcher) OnDidDelete(fn func(host.FileEvent)) host.Disposable { return w.deleted.Event(fn) }
func (w *fakeWatcher) Dispose()                                            {}

func TestFileEventsAreBatched(t *testing.T) {
	f := newFakeServer(t, protocol.ServerCapabilities{})
	w := &fakeWatcher{}
	h := newTestHost(t, nil)
	c := newTestClient(t, launch.StreamFactory(f.factory), h,
		WithFileWatchers(w),
		WithFileEventDelay(20*time.Millisecond))
	startClient(t, c)

	w.created.Fire(host.FileEvent{URI: "file:///a.sql", Type: host.FileCreated})
	w.changed.Fire(host.FileEvent{URI: "file:///a.sql", Type: host.FileChanged})
	w.deleted.Fire(host.FileEvent{URI: "file:///b.sql", Type: host.FileDeleted})

	eventually(t, func() bool { return f.count("workspace/didChangeWatchedFiles") == 1 }, "watched files")
	time.Sleep(60 * time.Millisecond)
	if n := f.count("workspace/didChangeWatchedFiles"); n != 1 {
		t.Fatalf("expected one batch, got %d", n)
	}

	var p protocol.DidChangeWatchedFilesParams
	if err := json.Unmarshal(f.params("workspace/didChangeWatchedFiles")[0], &p); err != nil {
		t.Fatal(err)
	}
	if len(p.Changes) != 3 {
		t.Fatalf("expected 3 changes, got %+v", p.Changes)
	}
	wantTypes := []protocol.FileChangeType{1, 2, 3}
	for i, ch := range p.Changes {
		if ch.Type != wantTypes[i] {
			t.Errorf("change %d: expected type %d, got %d", i, wantTypes[i], ch.Type)
		}
	}

	// Events after stop are dropped.
	if err := c.Stop(context.Background()); err != nil {
		t.Fatal(err)
	}
	w.changed.Fire(host.FileEvent{URI: "file:///a.sql", Type: host.FileChanged})
	time.Sleep(60 * time.Millisecond)
	if n := f.count("workspace/didChangeWatchedFiles"); n != 1 {
		t.Errorf("expected no batch after stop, got %d", n)
	}
}

func TestConfigurationSync(t *testing.T) {
	f := newFakeServer(t, protocol.ServerCapabilities{})
	h := newTestHost(t, nil, memory.WithSettings([]byte(`{"mssql":{"enabled":true,"format":{"keywordCasing":null}}}`)))
	c := newTestClient(t, launch.StreamFactory(f.factory), h,
		WithConfigurationSection("mssql.enabled", "mssql.format.keywordCasing", "mssql.missing"))
	startClient(t, c)

	eventually(t, func() bool { return f.count("workspace/didChangeConfiguration") == 1 }, "configuration")
	first := f.params("workspace/didChangeConfiguration")[0]
	if !gjson.GetBytes(first, "settings.mssql.enabled").Bool() {
		t.Errorf("expected enabled setting, got %s", first)
	}
	if gjson.GetBytes(first, "settings.mssql.format").Exists() {
		t.Errorf("expected null setting to be skipped, got %s", first)
	}
	if gjson.GetBytes(first, "settings.mssql.missing").Exists() {
		t.Errorf("expected missing setting to be skipped, got %s", first)
	}

	if err := h.Workspace.UpdateSetting("mssql.enabled", false); err != nil {
		t.Fatal(err)
	}
	eventually(t, func() bool { return f.count("workspace/didChangeConfiguration") == 2 }, "second configuration")
	second := f.params("workspace/didChangeConfiguration")[1]
	if res := gjson.GetBytes(second, "settings.mssql.enabled"); !res.Exists() || res.Bool() {
		t.Errorf("expected disabled setting, got %s", second)
	}

	traces := f.params("$/setTraceNotification")
	if len(traces) != 1 || gjson.GetBytes(traces[0], "value").String() != "off" {
		t.Errorf("expected one trace notification with off, got %q", traces)
	}
}

func TestExtractSettings(t *testing.T) {
	cfg := stubConfig{
		"mssql.enabled":              `true`,
		"mssql.query.timeout":        `30`,
		"mssql.format.keywordCasing": `null`,
		"mssql.intelliSense":         `{"enable":true}`,
	}

	tests := []struct {
		name string
		keys []string
		want string
	}{
		{"none", nil, `{}`},
		{"single", []string{"mssql.enabled"}, `{"mssql":{"enabled":true}}`},
		{"nested", []string{"mssql.enabled", "mssql.query.timeout"}, `{"mssql":{"enabled":true,"query":{"timeout":30}}}`},
		{"null and missing skipped", []string{"mssql.format.keywordCasing", "mssql.nope"}, `{}`},
		{"object value", []string{"mssql.intelliSense"}, `{"mssql":{"intelliSense":{"enable":true}}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractSettings(cfg, tt.keys)
			if err != nil {
				t.Fatalf("ExtractSettings: %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}

	got, err := ExtractSettings(nil, []string{"a"})
	if err != nil || string(got) != `{}` {
		t.Errorf("expected empty object for nil configuration, got %s %v", got, err)
	}
}

func TestPublishDiagnostics(t *testing.T) {
	tests := []struct {
		name       string
		opts       []Option
		collection string
	}{
		{"default name", nil, "test"},
		{"custom name", []Option{WithDiagnosticCollectionName("sql-errors")}, "sql-errors"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFakeServer(t, protocol.ServerCapabilities{})
			h := newTestHost(t, nil)
			c := newTestClient(t, launch.StreamFactory(f.factory), h, tt.opts...)
			startClient(t, c)

			params := protocol.PublishDiagnosticsParams{
				URI: "file:///q.sql",
				Diagnostics: []protocol.Diagnostic{{
					Range:    protocol.Range{Start: protocol.Position{Line: 0, Character: 0}, End: protocol.Position{Line: 0, Character: 6}},
					Severity: protocol.DiagnosticSeverityError,
					Message:  "Incorrect syntax",
				}},
			}
			if err := f.conn().Notify(context.Background(), "textDocument/publishDiagnostics", params); err != nil {
				t.Fatal(err)
			}

			coll, ok := h.Languages.DiagnosticCollection(tt.collection)
			if !ok {
				t.Fatalf("expected collection %s", tt.collection)
			}
			eventually(t, func() bool { return len(coll.Get("file:///q.sql")) == 1 }, "diagnostics")
			if d := coll.Get("file:///q.sql")[0]; d.Message != "Incorrect syntax" {
				t.Errorf("unexpected diagnostic %+v", d)
			}
		})
	}
}

type stubConfig map[string]string

func (c stubConfig) Get(key string) (json.RawMessage, bool) {
	v, ok := c[key]
	if !ok {
		return nil, false
	}
	return json.RawMessage(v), true
}
