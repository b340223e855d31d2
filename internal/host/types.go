package host

import (
	"encoding/json"

	"go.lsp.dev/uri"
)

// Position is a zero-based line and character offset.
type Position struct {
	Line      int
	Character int
}

// Range is a span between two positions.
type Range struct {
	Start Position
	End   Position
}

// Location is a range inside a resource.
type Location struct {
	URI   uri.URI
	Range Range
}

// TextEdit replaces a range with new text.
type TextEdit struct {
	Range   Range
	NewText string
}

// Command is a reference to a host command.
type Command struct {
	Title     string
	Command   string
	Arguments []any
}

// DiagnosticSeverity is zero-based on the host.
type DiagnosticSeverity int

const (
	SeverityError DiagnosticSeverity = iota
	SeverityWarning
	SeverityInformation
	SeverityHint
)

// String returns the severity name.
func (s DiagnosticSeverity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInformation:
		return "info"
	case SeverityHint:
		return "hint"
	default:
		return "unknown"
	}
}

// Diagnostic is a problem reported for a document range.
type Diagnostic struct {
	Range    Range
	Message  string
	Severity DiagnosticSeverity
	Code     any
	Source   string
}

// CompletionItemKind is zero-based on the host.
type CompletionItemKind int

const (
	CompletionKindText CompletionItemKind = iota
	CompletionKindMethod
	CompletionKindFunction
	CompletionKindConstructor
	CompletionKindField
	CompletionKindVariable
	CompletionKindClass
	CompletionKindInterface
	CompletionKindModule
	CompletionKindProperty
	CompletionKindUnit
	CompletionKindValue
	CompletionKindEnum
	CompletionKindKeyword
	CompletionKindSnippet
	CompletionKindColor
	CompletionKindFile
	CompletionKindReference
)

// CompletionItem is a completion suggestion. ProtocolData is the opaque
// value a server attached to the item; it is only set on items that came
// from the server and is sent back unchanged on resolve.
type CompletionItem struct {
	Label               string
	Kind                *CompletionItemKind
	Detail              string
	Documentation       string
	SortText            string
	FilterText          string
	InsertText          string
	TextEdit            *TextEdit
	AdditionalTextEdits []TextEdit
	Command             *Command
	ProtocolData        json.RawMessage
}

// CompletionList is a possibly incomplete set of completion items.
type CompletionList struct {
	IsIncomplete bool
	Items        []CompletionItem
}

// MarkedString is plain text or a fenced code block.
type MarkedString struct {
	Language string
	Value    string
}

// Hover is information shown when hovering a symbol.
type Hover struct {
	Contents []MarkedString
	Range    *Range
}

// ParameterInformation describes a parameter of a signature.
type ParameterInformation struct {
	Label         string
	Documentation string
}

// SignatureInformation describes a callable signature.
type SignatureInformation struct {
	Label         string
	Documentation string
	Parameters    []ParameterInformation
}

// SignatureHelp lists signatures and the active one.
type SignatureHelp struct {
	Signatures      []SignatureInformation
	ActiveSignature int
	ActiveParameter int
}

// DocumentHighlightKind is zero-based on the host.
type DocumentHighlightKind int

const (
	HighlightText DocumentHighlightKind = iota
	HighlightRead
	HighlightWrite
)

// DocumentHighlight marks a range of a document.
type DocumentHighlight struct {
	Range Range
	Kind  DocumentHighlightKind
}

// SymbolKind is zero-based on the host.
type SymbolKind int

// SymbolInformation describes a symbol and where it lives.
type SymbolInformation struct {
	Name          string
	ContainerName string
	Kind          SymbolKind
	Location      Location
}

// CodeLens is a command attached to a range. ProtocolData is the server's
// opaque value, kept for resolve.
type CodeLens struct {
	Range        Range
	Command      *Command
	ProtocolData json.RawMessage
}

// WorkspaceEdit maps resources to the edits to apply.
type WorkspaceEdit struct {
	Changes map[uri.URI][]TextEdit
}

// DocumentLink links a range to a target.
type DocumentLink struct {
	Range  Range
	Target uri.URI
}

// FormattingOptions describe how to format a document.
type FormattingOptions struct {
	TabSize      int
	InsertSpaces bool
}

// TextDocument is an open document owned by the host.
type TextDocument interface {
	URI() uri.URI
	LanguageID() string
	Version() int
	Text() string
}

// TextDocumentContentChange is one edit of a change event.
type TextDocumentContentChange struct {
	Range       Range
	RangeLength int
	Text        string
}

// TextDocumentChangeEvent describes edits applied to a document.
type TextDocumentChangeEvent struct {
	Document       TextDocument
	ContentChanges []TextDocumentContentChange
}

// FileChangeType is the kind of a file system change.
type FileChangeType int

const (
	FileCreated FileChangeType = iota + 1
	FileChanged
	FileDeleted
)

// FileEvent is a change of a watched file.
type FileEvent struct {
	URI  uri.URI
	Type FileChangeType
}

// DocumentSelector selects documents by language id. An empty selector
// matches nothing.
type DocumentSelector []string

// Match reports whether the document's language is selected.
func (s DocumentSelector) Match(doc TextDocument) bool {
	if doc == nil {
		return false
	}
	for _, id := range s {
		if id == doc.LanguageID() {
			return true
		}
	}
	return false
}
