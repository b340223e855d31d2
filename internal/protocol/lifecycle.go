package protocol

import "encoding/json"

// TraceValue is the server trace verbosity sent at initialize and with
// $/setTraceNotification.
type TraceValue string

const (
	TraceOff      TraceValue = "off"
	TraceMessages TraceValue = "messages"
	TraceVerbose  TraceValue = "verbose"
)

// InitializeParams are the parameters of the initialize request.
type InitializeParams struct {
	ProcessID             int                `json:"processId"`
	RootPath              *string            `json:"rootPath"`
	Capabilities          ClientCapabilities `json:"capabilities"`
	InitializationOptions any                `json:"initializationOptions,omitempty"`
	Trace                 TraceValue         `json:"trace,omitempty"`
}

// ClientCapabilities is sent empty; the client does not negotiate
// optional protocol features.
type ClientCapabilities struct{}

// InitializeResult is the result of the initialize request.
type InitializeResult struct {
	Capabilities ServerCapabilities `json:"capabilities"`
}

// InitializeError is carried in the data of a failed initialize response.
type InitializeError struct {
	Retry bool `json:"retry"`
}

// TextDocumentSyncKind defines how the host synchronizes documents with the server.
type TextDocumentSyncKind int

const (
	TextDocumentSyncKindNone        TextDocumentSyncKind = 0
	TextDocumentSyncKindFull        TextDocumentSyncKind = 1
	TextDocumentSyncKindIncremental TextDocumentSyncKind = 2
)

// String returns a short name for the sync kind.
func (k TextDocumentSyncKind) String() string {
	switch k {
	case TextDocumentSyncKindFull:
		return "full"
	case TextDocumentSyncKindIncremental:
		return "incremental"
	default:
		return "none"
	}
}

// ServerCapabilities are the capabilities the server advertises at initialize.
type ServerCapabilities struct {
	TextDocumentSync                 json.RawMessage                  `json:"textDocumentSync,omitempty"`
	HoverProvider                    bool                             `json:"hoverProvider,omitempty"`
	CompletionProvider               *CompletionOptions               `json:"completionProvider,omitempty"`
	SignatureHelpProvider            *SignatureHelpOptions            `json:"signatureHelpProvider,omitempty"`
	DefinitionProvider               bool                             `json:"definitionProvider,omitempty"`
	ReferencesProvider               bool                             `json:"referencesProvider,omitempty"`
	DocumentHighlightProvider        bool                             `json:"documentHighlightProvider,omitempty"`
	DocumentSymbolProvider           bool                             `json:"documentSymbolProvider,omitempty"`
	WorkspaceSymbolProvider          bool                             `json:"workspaceSymbolProvider,omitempty"`
	CodeActionProvider               bool                             `json:"codeActionProvider,omitempty"`
	CodeLensProvider                 *CodeLensOptions                 `json:"codeLensProvider,omitempty"`
	DocumentFormattingProvider       bool                             `json:"documentFormattingProvider,omitempty"`
	DocumentRangeFormattingProvider  bool                             `json:"documentRangeFormattingProvider,omitempty"`
	DocumentOnTypeFormattingProvider *DocumentOnTypeFormattingOptions `json:"documentOnTypeFormattingProvider,omitempty"`
	RenameProvider                   bool                             `json:"renameProvider,omitempty"`
	DocumentLinkProvider             *DocumentLinkOptions             `json:"documentLinkProvider,omitempty"`
	ConnectionProvider               bool                             `json:"connectionProvider,omitempty"`
}

// TextDocumentSyncOptions is the object form of textDocumentSync.
type TextDocumentSyncOptions struct {
	OpenClose bool                 `json:"openClose,omitempty"`
	Change    TextDocumentSyncKind `json:"change,omitempty"`
}

// SyncKind extracts the sync kind from either the number or the object
// form of textDocumentSync.
func (c ServerCapabilities) SyncKind() TextDocumentSyncKind {
	if len(c.TextDocumentSync) == 0 {
		return TextDocumentSyncKindNone
	}

	var kind TextDocumentSyncKind
	if err := json.Unmarshal(c.TextDocumentSync, &kind); err == nil {
		return kind
	}

	var opts TextDocumentSyncOptions
	if err := json.Unmarshal(c.TextDocumentSync, &opts); err == nil {
		return opts.Change
	}
	return TextDocumentSyncKindNone
}

// CompletionOptions define options for completion.
type CompletionOptions struct {
	ResolveProvider   bool     `json:"resolveProvider,omitempty"`
	TriggerCharacters []string `json:"triggerCharacters,omitempty"`
}

// SignatureHelpOptions define options for signature help.
type SignatureHelpOptions struct {
	TriggerCharacters []string `json:"triggerCharacters,omitempty"`
}

// CodeLensOptions define options for code lens.
type CodeLensOptions struct {
	ResolveProvider bool `json:"resolveProvider,omitempty"`
}

// DocumentOnTypeFormattingOptions define options for on-type formatting.
type DocumentOnTypeFormattingOptions struct {
	FirstTriggerCharacter string   `json:"firstTriggerCharacter"`
	MoreTriggerCharacter  []string `json:"moreTriggerCharacter,omitempty"`
}

// DocumentLinkOptions define options for document links.
type DocumentLinkOptions struct {
	ResolveProvider bool `json:"resolveProvider,omitempty"`
}

// MessageType is the severity of a window message.
type MessageType int

const (
	MessageTypeError   MessageType = 1
	MessageTypeWarning MessageType = 2
	MessageTypeInfo    MessageType = 3
	MessageTypeLog     MessageType = 4
)

// ShowMessageParams are the parameters of window/showMessage.
type ShowMessageParams struct {
	Type    MessageType `json:"type"`
	Message string      `json:"message"`
}

// MessageActionItem is an action offered by window/showMessageRequest.
type MessageActionItem struct {
	Title string `json:"title"`
}

// ShowMessageRequestParams are the parameters of window/showMessageRequest.
type ShowMessageRequestParams struct {
	Type    MessageType         `json:"type"`
	Message string              `json:"message"`
	Actions []MessageActionItem `json:"actions,omitempty"`
}

// LogMessageParams are the parameters of window/logMessage.
type LogMessageParams struct {
	Type    MessageType `json:"type"`
	Message string      `json:"message"`
}

// SetTraceParams are the parameters of $/setTraceNotification.
type SetTraceParams struct {
	Value TraceValue `json:"value"`
}

// DidChangeConfigurationParams carry the extracted settings object.
type DidChangeConfigurationParams struct {
	Settings json.RawMessage `json:"settings"`
}

// FileChangeType is the kind of a watched file event.
type FileChangeType int

const (
	FileChangeTypeCreated FileChangeType = 1
	FileChangeTypeChanged FileChangeType = 2
	FileChangeTypeDeleted FileChangeType = 3
)

// FileEvent describes a single watched file change.
type FileEvent struct {
	URI  DocumentURI    `json:"uri"`
	Type FileChangeType `json:"type"`
}

// DidChangeWatchedFilesParams batch file events.
type DidChangeWatchedFilesParams struct {
	Changes []FileEvent `json:"changes"`
}
