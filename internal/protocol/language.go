package protocol

import "encoding/json"

// --- Document Sync ---

// DidOpenTextDocumentParams are parameters for textDocument/didOpen.
type DidOpenTextDocumentParams struct {
	TextDocument TextDocumentItem `json:"textDocument"`
}

// TextDocumentContentChangeEvent describes a content change. Range and
// RangeLength are omitted for full-text changes.
type TextDocumentContentChangeEvent struct {
	Range       *Range `json:"range,omitempty"`
	RangeLength *int   `json:"rangeLength,omitempty"`
	Text        string `json:"text"`
}

// DidChangeTextDocumentParams are parameters for textDocument/didChange.
type DidChangeTextDocumentParams struct {
	TextDocument   VersionedTextDocumentIdentifier  `json:"textDocument"`
	ContentChanges []TextDocumentContentChangeEvent `json:"contentChanges"`
}

// DidCloseTextDocumentParams are parameters for textDocument/didClose.
type DidCloseTextDocumentParams struct {
	TextDocument TextDocumentIdentifier `json:"textDocument"`
}

// DidSaveTextDocumentParams are parameters for textDocument/didSave.
type DidSaveTextDocumentParams struct {
	TextDocument TextDocumentIdentifier `json:"textDocument"`
}

// --- Diagnostics ---

// DiagnosticSeverity is the 1-based wire severity.
type DiagnosticSeverity int

const (
	DiagnosticSeverityError       DiagnosticSeverity = 1
	DiagnosticSeverityWarning     DiagnosticSeverity = 2
	DiagnosticSeverityInformation DiagnosticSeverity = 3
	DiagnosticSeverityHint        DiagnosticSeverity = 4
)

// Diagnostic is a compiler error, warning or hint.
type Diagnostic struct {
	Range    Range              `json:"range"`
	Severity DiagnosticSeverity `json:"severity,omitempty"`
	Code     any                `json:"code,omitempty"`
	Source   string             `json:"source,omitempty"`
	Message  string             `json:"message"`
}

// PublishDiagnosticsParams are parameters for textDocument/publishDiagnostics.
type PublishDiagnosticsParams struct {
	URI         DocumentURI  `json:"uri"`
	Diagnostics []Diagnostic `json:"diagnostics"`
}

// --- Completion ---

// CompletionItemKind is the 1-based wire completion kind.
type CompletionItemKind int

const (
	CompletionItemKindText        CompletionItemKind = 1
	CompletionItemKindMethod      CompletionItemKind = 2
	CompletionItemKindFunction    CompletionItemKind = 3
	CompletionItemKindConstructor CompletionItemKind = 4
	CompletionItemKindField       CompletionItemKind = 5
	CompletionItemKindVariable    CompletionItemKind = 6
	CompletionItemKindClass       CompletionItemKind = 7
	CompletionItemKindInterface   CompletionItemKind = 8
	CompletionItemKindModule      CompletionItemKind = 9
	CompletionItemKindProperty    CompletionItemKind = 10
	CompletionItemKindUnit        CompletionItemKind = 11
	CompletionItemKindValue       CompletionItemKind = 12
	CompletionItemKindEnum        CompletionItemKind = 13
	CompletionItemKindKeyword     CompletionItemKind = 14
	CompletionItemKindSnippet     CompletionItemKind = 15
	CompletionItemKindColor       CompletionItemKind = 16
	CompletionItemKindFile        CompletionItemKind = 17
	CompletionItemKindReference   CompletionItemKind = 18
)

// CompletionItem is a completion suggestion.
type CompletionItem struct {
	Label               string             `json:"label"`
	Kind                CompletionItemKind `json:"kind,omitempty"`
	Detail              string             `json:"detail,omitempty"`
	Documentation       string             `json:"documentation,omitempty"`
	SortText            string             `json:"sortText,omitempty"`
	FilterText          string             `json:"filterText,omitempty"`
	InsertText          string             `json:"insertText,omitempty"`
	TextEdit            *TextEdit          `json:"textEdit,omitempty"`
	AdditionalTextEdits []TextEdit         `json:"additionalTextEdits,omitempty"`
	Command             *Command           `json:"command,omitempty"`
	Data                json.RawMessage    `json:"data,omitempty"`
}

// CompletionList is a possibly incomplete collection of completion items.
type CompletionList struct {
	IsIncomplete bool             `json:"isIncomplete"`
	Items        []CompletionItem `json:"items"`
}

// --- Hover and Signature Help ---

// MarkedString is either a plain string or a {language, value} code block.
type MarkedString struct {
	Language string `json:"language,omitempty"`
	Value    string `json:"value"`
}

// UnmarshalJSON accepts both forms.
func (m *MarkedString) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		m.Language = ""
		m.Value = s
		return nil
	}
	type block MarkedString
	var b block
	if err := json.Unmarshal(data, &b); err != nil {
		return err
	}
	*m = MarkedString(b)
	return nil
}

// MarshalJSON writes plain strings as strings.
func (m MarkedString) MarshalJSON() ([]byte, error) {
	if m.Language == "" {
		return json.Marshal(m.Value)
	}
	type block MarkedString
	return json.Marshal(block(m))
}

// MarkedStrings accepts a single MarkedString or an array of them.
type MarkedStrings []MarkedString

// UnmarshalJSON implements json.Unmarshaler.
func (ms *MarkedStrings) UnmarshalJSON(data []byte) error {
	var many []MarkedString
	if err := json.Unmarshal(data, &many); err == nil {
		*ms = many
		return nil
	}
	var one MarkedString
	if err := json.Unmarshal(data, &one); err != nil {
		return err
	}
	*ms = MarkedStrings{one}
	return nil
}

// Hover is the result of textDocument/hover.
type Hover struct {
	Contents MarkedStrings `json:"contents"`
	Range    *Range        `json:"range,omitempty"`
}

// ParameterInformation describes a parameter of a callable signature.
type ParameterInformation struct {
	Label         string `json:"label"`
	Documentation string `json:"documentation,omitempty"`
}

// SignatureInformation describes a callable signature.
type SignatureInformation struct {
	Label         string                 `json:"label"`
	Documentation string                 `json:"documentation,omitempty"`
	Parameters    []ParameterInformation `json:"parameters,omitempty"`
}

// SignatureHelp is the result of textDocument/signatureHelp.
type SignatureHelp struct {
	Signatures      []SignatureInformation `json:"signatures"`
	ActiveSignature *int                   `json:"activeSignature,omitempty"`
	ActiveParameter *int                   `json:"activeParameter,omitempty"`
}

// --- References, Highlights, Symbols ---

// ReferenceContext controls textDocument/references.
type ReferenceContext struct {
	IncludeDeclaration bool `json:"includeDeclaration"`
}

// ReferenceParams are parameters for textDocument/references.
type ReferenceParams struct {
	TextDocumentPositionParams
	Context ReferenceContext `json:"context"`
}

// DocumentHighlightKind is the 1-based wire highlight kind.
type DocumentHighlightKind int

const (
	DocumentHighlightKindText  DocumentHighlightKind = 1
	DocumentHighlightKindRead  DocumentHighlightKind = 2
	DocumentHighlightKindWrite DocumentHighlightKind = 3
)

// DocumentHighlight is a range inside a document that deserves special attention.
type DocumentHighlight struct {
	Range Range                 `json:"range"`
	Kind  DocumentHighlightKind `json:"kind,omitempty"`
}

// DocumentSymbolParams are parameters for textDocument/documentSymbol.
type DocumentSymbolParams struct {
	TextDocument TextDocumentIdentifier `json:"textDocument"`
}

// WorkspaceSymbolParams are parameters for workspace/symbol.
type WorkspaceSymbolParams struct {
	Query string `json:"query"`
}

// SymbolKind is the 1-based wire symbol kind.
type SymbolKind int

const (
	SymbolKindFile      SymbolKind = 1
	SymbolKindModule    SymbolKind = 2
	SymbolKindNamespace SymbolKind = 3
	SymbolKindPackage   SymbolKind = 4
	SymbolKindClass     SymbolKind = 5
	SymbolKindMethod    SymbolKind = 6
	SymbolKindProperty  SymbolKind = 7
	SymbolKindField     SymbolKind = 8
	SymbolKindFunction  SymbolKind = 12
	SymbolKindVariable  SymbolKind = 13
)

// SymbolInformation describes a symbol. The location URI may be omitted
// for symbols of the requested document.
type SymbolInformation struct {
	Name          string     `json:"name"`
	Kind          SymbolKind `json:"kind"`
	Location      Location   `json:"location"`
	ContainerName string     `json:"containerName,omitempty"`
}

// --- Code Action and Code Lens ---

// CodeActionContext carries the diagnostics the code action is computed for.
type CodeActionContext struct {
	Diagnostics []Diagnostic `json:"diagnostics"`
}

// CodeActionParams are parameters for textDocument/codeAction.
type CodeActionParams struct {
	TextDocument TextDocumentIdentifier `json:"textDocument"`
	Range        Range                  `json:"range"`
	Context      CodeActionContext      `json:"context"`
}

// CodeLensParams are parameters for textDocument/codeLens.
type CodeLensParams struct {
	TextDocument TextDocumentIdentifier `json:"textDocument"`
}

// CodeLens is a command shown with source text.
type CodeLens struct {
	Range   Range           `json:"range"`
	Command *Command        `json:"command,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// --- Formatting and Rename ---

// FormattingOptions describe how to format.
type FormattingOptions struct {
	TabSize      int  `json:"tabSize"`
	InsertSpaces bool `json:"insertSpaces"`
}

// DocumentFormattingParams are parameters for textDocument/formatting.
type DocumentFormattingParams struct {
	TextDocument TextDocumentIdentifier `json:"textDocument"`
	Options      FormattingOptions      `json:"options"`
}

// DocumentRangeFormattingParams are parameters for textDocument/rangeFormatting.
type DocumentRangeFormattingParams struct {
	TextDocument TextDocumentIdentifier `json:"textDocument"`
	Range        Range                  `json:"range"`
	Options      FormattingOptions      `json:"options"`
}

// DocumentOnTypeFormattingParams are parameters for textDocument/onTypeFormatting.
type DocumentOnTypeFormattingParams struct {
	TextDocument TextDocumentIdentifier `json:"textDocument"`
	Position     Position               `json:"position"`
	Ch           string                 `json:"ch"`
	Options      FormattingOptions      `json:"options"`
}

// RenameParams are parameters for textDocument/rename.
type RenameParams struct {
	TextDocument TextDocumentIdentifier `json:"textDocument"`
	Position     Position               `json:"position"`
	NewName      string                 `json:"newName"`
}

// --- Document Links ---

// DocumentLinkParams are parameters for textDocument/documentLink.
type DocumentLinkParams struct {
	TextDocument TextDocumentIdentifier `json:"textDocument"`
}

// DocumentLink is a range linking to a target URI.
type DocumentLink struct {
	Range  Range  `json:"range"`
	Target string `json:"target,omitempty"`
}

// --- Result helpers ---

// ParseCompletionResult accepts either a CompletionList or a bare array of items.
func ParseCompletionResult(data json.RawMessage) (*CompletionList, error) {
	if len(data) == 0 || string(data) == "null" {
		return nil, nil
	}

	var list CompletionList
	if err := json.Unmarshal(data, &list); err == nil && list.Items != nil {
		return &list, nil
	}

	var items []CompletionItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, err
	}
	return &CompletionList{Items: items}, nil
}

// ParseLocationResult accepts either a single Location or an array.
func ParseLocationResult(data json.RawMessage) ([]Location, error) {
	if len(data) == 0 || string(data) == "null" {
		return nil, nil
	}

	var locations []Location
	if err := json.Unmarshal(data, &locations); err == nil {
		return locations, nil
	}

	var loc Location
	if err := json.Unmarshal(data, &loc); err != nil {
		return nil, err
	}
	return []Location{loc}, nil
}
