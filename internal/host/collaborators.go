package host

import (
	"context"
	"encoding/json"

	"go.lsp.dev/uri"
)

// Configuration resolves settings by dotted key, e.g. "mssql.format.keywordCasing".
type Configuration interface {
	// Get returns the JSON value stored under key.
	Get(key string) (json.RawMessage, bool)
}

// FileSystemWatcher reports changes to files matching a pattern.
type FileSystemWatcher interface {
	OnDidCreate(fn func(FileEvent)) Disposable
	OnDidChange(fn func(FileEvent)) Disposable
	OnDidDelete(fn func(FileEvent)) Disposable
	Dispose()
}

// Workspace owns documents and configuration.
type Workspace interface {
	RootPath() string
	TextDocuments() []TextDocument
	OnDidOpenTextDocument(fn func(TextDocument)) Disposable
	OnDidChangeTextDocument(fn func(TextDocumentChangeEvent)) Disposable
	OnDidCloseTextDocument(fn func(TextDocument)) Disposable
	OnDidSaveTextDocument(fn func(TextDocument)) Disposable
	Configuration() Configuration
	OnDidChangeConfiguration(fn func()) Disposable
	// CreateFileSystemWatcher watches files below the root matching the
	// glob pattern.
	CreateFileSystemWatcher(pattern string) (FileSystemWatcher, error)
}

// OutputChannel is a named, append-only log shown to the user.
type OutputChannel interface {
	Append(text string)
	AppendLine(line string)
	Show(preserveFocus bool)
	Dispose()
}

// Window shows messages and creates output channels.
//
// The ShowXMessage methods return the chosen action, or "" when the message
// was dismissed.
type Window interface {
	ShowErrorMessage(ctx context.Context, message string, actions ...string) (string, error)
	ShowWarningMessage(ctx context.Context, message string, actions ...string) (string, error)
	ShowInformationMessage(ctx context.Context, message string, actions ...string) (string, error)
	CreateOutputChannel(name string) OutputChannel
}

// DiagnosticCollection stores diagnostics per document.
type DiagnosticCollection interface {
	Name() string
	Set(u uri.URI, diagnostics []Diagnostic)
	Delete(u uri.URI)
	Clear()
	Dispose()
}

// Language feature provider signatures.
type (
	CompletionFunc          func(ctx context.Context, doc TextDocument, pos Position) (*CompletionList, error)
	CompletionResolveFunc   func(ctx context.Context, item CompletionItem) (CompletionItem, error)
	HoverFunc               func(ctx context.Context, doc TextDocument, pos Position) (*Hover, error)
	SignatureHelpFunc       func(ctx context.Context, doc TextDocument, pos Position) (*SignatureHelp, error)
	DefinitionFunc          func(ctx context.Context, doc TextDocument, pos Position) ([]Location, error)
	ReferencesFunc          func(ctx context.Context, doc TextDocument, pos Position, includeDeclaration bool) ([]Location, error)
	DocumentHighlightFunc   func(ctx context.Context, doc TextDocument, pos Position) ([]DocumentHighlight, error)
	DocumentSymbolFunc      func(ctx context.Context, doc TextDocument) ([]SymbolInformation, error)
	WorkspaceSymbolFunc     func(ctx context.Context, query string) ([]SymbolInformation, error)
	CodeActionFunc          func(ctx context.Context, doc TextDocument, rng Range, diagnostics []Diagnostic) ([]Command, error)
	CodeLensFunc            func(ctx context.Context, doc TextDocument) ([]CodeLens, error)
	CodeLensResolveFunc     func(ctx context.Context, lens CodeLens) (CodeLens, error)
	FormattingFunc          func(ctx context.Context, doc TextDocument, opts FormattingOptions) ([]TextEdit, error)
	RangeFormattingFunc     func(ctx context.Context, doc TextDocument, rng Range, opts FormattingOptions) ([]TextEdit, error)
	OnTypeFormattingFunc    func(ctx context.Context, doc TextDocument, pos Position, ch string, opts FormattingOptions) ([]TextEdit, error)
	RenameFunc              func(ctx context.Context, doc TextDocument, pos Position, newName string) (*WorkspaceEdit, error)
	DocumentLinkFunc        func(ctx context.Context, doc TextDocument) ([]DocumentLink, error)
	DocumentLinkResolveFunc func(ctx context.Context, link DocumentLink) (DocumentLink, error)
)

// CompletionProvider bundles completion with its optional resolve step.
type CompletionProvider struct {
	Provide           CompletionFunc
	Resolve           CompletionResolveFunc
	TriggerCharacters []string
}

// CodeLensProvider bundles code lens with its optional resolve step.
type CodeLensProvider struct {
	Provide CodeLensFunc
	Resolve CodeLensResolveFunc
}

// DocumentLinkProvider bundles document links with their optional resolve step.
type DocumentLinkProvider struct {
	Provide DocumentLinkFunc
	Resolve DocumentLinkResolveFunc
}

// OnTypeFormattingProvider formats as the user types a trigger character.
type OnTypeFormattingProvider struct {
	Provide               OnTypeFormattingFunc
	FirstTriggerCharacter string
	MoreTriggerCharacters []string
}

// Languages is the host registry of language feature providers.
type Languages interface {
	CreateDiagnosticCollection(name string) DiagnosticCollection
	RegisterCompletionProvider(sel DocumentSelector, p CompletionProvider) Disposable
	RegisterHoverProvider(sel DocumentSelector, fn HoverFunc) Disposable
	RegisterSignatureHelpProvider(sel DocumentSelector, fn SignatureHelpFunc, triggerCharacters ...string) Disposable
	RegisterDefinitionProvider(sel DocumentSelector, fn DefinitionFunc) Disposable
	RegisterReferenceProvider(sel DocumentSelector, fn ReferencesFunc) Disposable
	RegisterDocumentHighlightProvider(sel DocumentSelector, fn DocumentHighlightFunc) Disposable
	RegisterDocumentSymbolProvider(sel DocumentSelector, fn DocumentSymbolFunc) Disposable
	RegisterWorkspaceSymbolProvider(fn WorkspaceSymbolFunc) Disposable
	RegisterCodeActionsProvider(sel DocumentSelector, fn CodeActionFunc) Disposable
	RegisterCodeLensProvider(sel DocumentSelector, p CodeLensProvider) Disposable
	RegisterDocumentFormattingProvider(sel DocumentSelector, fn FormattingFunc) Disposable
	RegisterDocumentRangeFormattingProvider(sel DocumentSelector, fn RangeFormattingFunc) Disposable
	RegisterOnTypeFormattingProvider(sel DocumentSelector, p OnTypeFormattingProvider) Disposable
	RegisterRenameProvider(sel DocumentSelector, fn RenameFunc) Disposable
	RegisterDocumentLinkProvider(sel DocumentSelector, p DocumentLinkProvider) Disposable
}
