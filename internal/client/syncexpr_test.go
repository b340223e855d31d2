package client

import (
	"testing"

	"go.lsp.dev/uri"

	"github.com/dshills/dataprotocol/internal/host"
	"github.com/dshills/dataprotocol/internal/protocol"
)

type stubDoc struct {
	u    uri.URI
	lang string
	text string
}

func (d stubDoc) URI() uri.URI       { return d.u }
func (d stubDoc) LanguageID() string { return d.lang }
func (d stubDoc) Version() int       { return 1 }
func (d stubDoc) Text() string       { return d.text }

func TestNewSyncExpression(t *testing.T) {
	sqlDoc := stubDoc{u: "file:///a.sql", lang: "sql"}
	goDoc := stubDoc{u: "file:///a.go", lang: "go"}
	txtDoc := stubDoc{u: "file:///notes.txt", lang: "plaintext"}
	isTxt := func(d host.TextDocument) bool { return d.LanguageID() == "plaintext" }

	tests := []struct {
		name     string
		selector host.DocumentSelector
		filter   func(host.TextDocument) bool
		wantType string
		matches  []host.TextDocument
		rejects  []host.TextDocument
	}{
		{"empty", nil, nil, "false", nil, []host.TextDocument{sqlDoc, goDoc}},
		{"filter only", nil, isTxt, "function", []host.TextDocument{txtDoc}, []host.TextDocument{sqlDoc}},
		{"one language", host.DocumentSelector{"sql"}, nil, "language", []host.TextDocument{sqlDoc}, []host.TextDocument{goDoc}},
		{"languages", host.DocumentSelector{"sql", "go"}, nil, "composite", []host.TextDocument{sqlDoc, goDoc}, []host.TextDocument{txtDoc}},
		{"language and filter", host.DocumentSelector{"sql"}, isTxt, "composite", []host.TextDocument{sqlDoc, txtDoc}, []host.TextDocument{goDoc}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exp := NewSyncExpression(tt.selector, tt.filter)

			var got string
			switch exp.(type) {
			case FalseSyncExpression:
				got = "false"
			case FunctionSyncExpression:
				got = "function"
			case LanguageIDExpression:
				got = "language"
			case CompositeSyncExpression:
				got = "composite"
			}
			if got != tt.wantType {
				t.Errorf("expected %s expression, got %s", tt.wantType, got)
			}
			for _, d := range tt.matches {
				if !exp.Evaluate(d) {
					t.Errorf("expected %s to match", d.URI())
				}
			}
			for _, d := range tt.rejects {
				if exp.Evaluate(d) {
					t.Errorf("expected %s not to match", d.URI())
				}
			}
		})
	}
}

func TestCapabilitySet(t *testing.T) {
	caps := protocol.ServerCapabilities{
		TextDocumentSync:   []byte(`{"openClose":true,"change":2}`),
		HoverProvider:      true,
		CompletionProvider: &protocol.CompletionOptions{ResolveProvider: false},
		CodeLensProvider:   &protocol.CodeLensOptions{ResolveProvider: true},
		ConnectionProvider: true,
	}
	set := NewCapabilitySet(caps)

	tests := []struct {
		cap  Capability
		want bool
	}{
		{CapHover, true},
		{CapCompletion, true},
		{CapCompletionResolve, false},
		{CapCodeLens, true},
		{CapCodeLensResolve, true},
		{CapRename, false},
		{CapDocumentLink, false},
		{CapConnection, true},
		{CapHover | CapConnection, true},
		{CapHover | CapRename, false},
		{0, false},
	}
	for _, tt := range tests {
		if got := set.Has(tt.cap); got != tt.want {
			t.Errorf("Has(%v): expected %v, got %v", tt.cap, tt.want, got)
		}
	}

	if set.SyncKind() != protocol.TextDocumentSyncKindIncremental {
		t.Errorf("expected incremental sync, got %v", set.SyncKind())
	}
	want := "completion,hover,codeLens,codeLensResolve,connection"
	if set.String() != want {
		t.Errorf("expected %q, got %q", want, set.String())
	}
}

func TestCapabilitySetEmpty(t *testing.T) {
	set := NewCapabilitySet(protocol.ServerCapabilities{})
	if len(set.Tags()) != 0 {
		t.Errorf("expected no tags, got %v", set.Tags())
	}
	if set.SyncKind() != protocol.TextDocumentSyncKindNone {
		t.Errorf("expected no sync, got %v", set.SyncKind())
	}
}
