package memory

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/dshills/dataprotocol/internal/host"
	"go.lsp.dev/uri"
)

const testURI = uri.URI("file:///tmp/q.sql")

func TestDocumentEvents(t *testing.T) {
	w := NewWorkspace(t.TempDir())

	var opened, closed, saved []uri.URI
	var changes []host.TextDocumentChangeEvent
	w.OnDidOpenTextDocument(func(d host.TextDocument) { opened = append(opened, d.URI()) })
	w.OnDidCloseTextDocument(func(d host.TextDocument) { closed = append(closed, d.URI()) })
	w.OnDidSaveTextDocument(func(d host.TextDocument) { saved = append(saved, d.URI()) })
	w.OnDidChangeTextDocument(func(ev host.TextDocumentChangeEvent) { changes = append(changes, ev) })

	doc, err := w.OpenDocument(testURI, "sql", "SELECT 1")
	if err != nil {
		t.Fatalf("OpenDocument: %v", err)
	}
	if _, err := w.OpenDocument(testURI, "sql", ""); !errors.Is(err, ErrDocumentOpen) {
		t.Errorf("expected ErrDocumentOpen, got %v", err)
	}

	err = w.ChangeDocument(testURI, host.TextDocumentContentChange{
		Range: host.Range{Start: host.Position{Character: 7}, End: host.Position{Character: 8}},
		Text:  "42",
	})
	if err != nil {
		t.Fatalf("ChangeDocument: %v", err)
	}
	if doc.Text() != "SELECT 42" || doc.Version() != 2 {
		t.Errorf("expected 'SELECT 42' v2, got %q v%d", doc.Text(), doc.Version())
	}

	if err := w.SaveDocument(testURI); err != nil {
		t.Fatalf("SaveDocument: %v", err)
	}
	if err := w.CloseDocument(testURI); err != nil {
		t.Fatalf("CloseDocument: %v", err)
	}
	if err := w.CloseDocument(testURI); !errors.Is(err, ErrDocumentNotOpen) {
		t.Errorf("expected ErrDocumentNotOpen, got %v", err)
	}

	if len(opened) != 1 || len(closed) != 1 || len(saved) != 1 || len(changes) != 1 {
		t.Errorf("unexpected event counts open=%d close=%d save=%d change=%d",
			len(opened), len(closed), len(saved), len(changes))
	}
	if len(w.TextDocuments()) != 0 {
		t.Errorf("expected no open documents, got %d", len(w.TextDocuments()))
	}
}

func TestReplaceTextMultiline(t *testing.T) {
	w := NewWorkspace(t.TempDir())
	doc, _ := w.OpenDocument(testURI, "sql", "a\nbc\ndéf")

	var got host.TextDocumentChangeEvent
	w.OnDidChangeTextDocument(func(ev host.TextDocumentChangeEvent) { got = ev })

	if err := w.ReplaceText(testURI, "x"); err != nil {
		t.Fatalf("ReplaceText: %v", err)
	}
	if doc.Text() != "x" {
		t.Errorf("expected 'x', got %q", doc.Text())
	}
	ch := got.ContentChanges[0]
	if ch.Range.End != (host.Position{Line: 2, Character: 3}) {
		t.Errorf("unexpected end %+v", ch.Range.End)
	}
	if ch.RangeLength != 8 {
		t.Errorf("expected range length 8, got %d", ch.RangeLength)
	}
}

func TestOffsetAtUTF16(t *testing.T) {
	text := "a😀b\nline"
	tests := []struct {
		pos  host.Position
		want int
	}{
		{host.Position{Line: 0, Character: 0}, 0},
		{host.Position{Line: 0, Character: 1}, 1},
		{host.Position{Line: 0, Character: 3}, 5},
		{host.Position{Line: 0, Character: 99}, 6},
		{host.Position{Line: 1, Character: 2}, 9},
		{host.Position{Line: 5, Character: 0}, len(text)},
	}
	for _, tt := range tests {
		if got := offsetAt(text, tt.pos); got != tt.want {
			t.Errorf("%+v: expected %d, got %d", tt.pos, tt.want, got)
		}
	}
}

func TestConfigurationLookup(t *testing.T) {
	w := NewWorkspace("", WithSettings([]byte(`{"mssql":{"format":{"keywordCasing":"upper"}},"mssql.trace.server":"verbose"}`)))

	tests := []struct {
		key  string
		want string
		ok   bool
	}{
		{"mssql.format.keywordCasing", `"upper"`, true},
		{"mssql.format", `{"keywordCasing":"upper"}`, true},
		{"mssql.trace.server", `"verbose"`, true},
		{"mssql.missing", "", false},
	}
	cfg := w.Configuration()
	for _, tt := range tests {
		got, ok := cfg.Get(tt.key)
		if ok != tt.ok || string(got) != tt.want {
			t.Errorf("%s: expected %s %v, got %s %v", tt.key, tt.want, tt.ok, got, ok)
		}
	}
}

func TestSettingsChangeEvents(t *testing.T) {
	w := NewWorkspace("")
	fired := 0
	w.OnDidChangeConfiguration(func() { fired++ })

	if err := w.UpdateSetting("mssql.trace.server", "messages"); err != nil {
		t.Fatalf("UpdateSetting: %v", err)
	}
	if v, ok := w.Configuration().Get("mssql.trace.server"); !ok || string(v) != `"messages"` {
		t.Errorf("expected messages, got %s", v)
	}
	if err := w.SetSettings([]byte(`[1]`)); !errors.Is(err, ErrInvalidSettings) {
		t.Errorf("expected ErrInvalidSettings, got %v", err)
	}
	if err := w.SetSettings([]byte(`{"a":1}`)); err != nil {
		t.Fatalf("SetSettings: %v", err)
	}
	if fired != 2 {
		t.Errorf("expected 2 change events, got %d", fired)
	}
}

func TestFileSystemWatcher(t *testing.T) {
	root := t.TempDir()
	w := NewWorkspace(root)

	fsw, err := w.CreateFileSystemWatcher("**/*.sql")
	if err != nil {
		t.Fatalf("CreateFileSystemWatcher: %v", err)
	}
	defer fsw.Dispose()

	events := make(chan host.FileEvent, 16)
	fsw.OnDidCreate(func(ev host.FileEvent) { events <- ev })
	fsw.OnDidChange(func(ev host.FileEvent) { events <- ev })

	if err := os.WriteFile(filepath.Join(root, "ignored.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	target := filepath.Join(root, "schema.sql")
	if err := os.WriteFile(target, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case ev := <-events:
		if ev.URI != uri.File(target) {
			t.Errorf("expected %s, got %s", uri.File(target), ev.URI)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for file event")
	}
}
