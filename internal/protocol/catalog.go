package protocol

import (
	"context"
	"encoding/json"
)

// Sender is anything that can issue requests and notifications on a
// data protocol connection.
type Sender interface {
	SendRequest(ctx context.Context, method string, params, result any) error
	SendNotification(ctx context.Context, method string, params any) error
}

// RequestType binds a method name to its parameter and result shapes.
type RequestType[P, R any] struct {
	Method string
}

// Send issues the request on s and decodes the result.
func (t RequestType[P, R]) Send(ctx context.Context, s Sender, params P) (R, error) {
	var result R
	err := s.SendRequest(ctx, t.Method, params, &result)
	return result, err
}

// DecodeParams decodes raw request parameters.
func (t RequestType[P, R]) DecodeParams(raw json.RawMessage) (P, error) {
	return decode[P](raw)
}

// NotificationType binds a method name to its parameter shape.
type NotificationType[P any] struct {
	Method string
}

// Send issues the notification on s.
func (t NotificationType[P]) Send(ctx context.Context, s Sender, params P) error {
	return s.SendNotification(ctx, t.Method, params)
}

// DecodeParams decodes raw notification parameters.
func (t NotificationType[P]) DecodeParams(raw json.RawMessage) (P, error) {
	return decode[P](raw)
}

func decode[P any](raw json.RawMessage) (P, error) {
	var p P
	if len(raw) == 0 {
		return p, nil
	}
	err := json.Unmarshal(raw, &p)
	return p, err
}

// Void is the parameter and result type of methods that carry no payload.
// It encodes as JSON null.
type Void struct{}

// MarshalJSON implements json.Marshaler.
func (Void) MarshalJSON() ([]byte, error) { return []byte("null"), nil }

// UnmarshalJSON accepts and discards any value.
func (*Void) UnmarshalJSON([]byte) error { return nil }

// Lifecycle and window.
var (
	InitializeRequest          = RequestType[InitializeParams, InitializeResult]{"initialize"}
	ShutdownRequest            = RequestType[Void, Void]{"shutdown"}
	ExitNotification           = NotificationType[Void]{"exit"}
	ShowMessageNotification    = NotificationType[ShowMessageParams]{"window/showMessage"}
	ShowMessageRequest         = RequestType[ShowMessageRequestParams, *MessageActionItem]{"window/showMessageRequest"}
	LogMessageNotification     = NotificationType[LogMessageParams]{"window/logMessage"}
	TelemetryEventNotification = NotificationType[json.RawMessage]{"telemetry/event"}
	SetTraceNotification       = NotificationType[SetTraceParams]{"$/setTraceNotification"}
	CancelRequestNotification  = NotificationType[CancelParams]{"$/cancelRequest"}
)

// Workspace and document synchronization.
var (
	DidChangeConfigurationNotification = NotificationType[DidChangeConfigurationParams]{"workspace/didChangeConfiguration"}
	DidChangeWatchedFilesNotification  = NotificationType[DidChangeWatchedFilesParams]{"workspace/didChangeWatchedFiles"}
	DidOpenTextDocumentNotification    = NotificationType[DidOpenTextDocumentParams]{"textDocument/didOpen"}
	DidChangeTextDocumentNotification  = NotificationType[DidChangeTextDocumentParams]{"textDocument/didChange"}
	DidCloseTextDocumentNotification   = NotificationType[DidCloseTextDocumentParams]{"textDocument/didClose"}
	DidSaveTextDocumentNotification    = NotificationType[DidSaveTextDocumentParams]{"textDocument/didSave"}
	PublishDiagnosticsNotification     = NotificationType[PublishDiagnosticsParams]{"textDocument/publishDiagnostics"}
)

// Language features.
var (
	CompletionRequest              = RequestType[TextDocumentPositionParams, json.RawMessage]{"textDocument/completion"}
	CompletionResolveRequest       = RequestType[CompletionItem, CompletionItem]{"completionItem/resolve"}
	HoverRequest                   = RequestType[TextDocumentPositionParams, *Hover]{"textDocument/hover"}
	SignatureHelpRequest           = RequestType[TextDocumentPositionParams, *SignatureHelp]{"textDocument/signatureHelp"}
	DefinitionRequest              = RequestType[TextDocumentPositionParams, json.RawMessage]{"textDocument/definition"}
	ReferencesRequest              = RequestType[ReferenceParams, []Location]{"textDocument/references"}
	DocumentHighlightRequest       = RequestType[TextDocumentPositionParams, []DocumentHighlight]{"textDocument/documentHighlight"}
	DocumentSymbolRequest          = RequestType[DocumentSymbolParams, []SymbolInformation]{"textDocument/documentSymbol"}
	WorkspaceSymbolRequest         = RequestType[WorkspaceSymbolParams, []SymbolInformation]{"workspace/symbol"}
	CodeActionRequest              = RequestType[CodeActionParams, []Command]{"textDocument/codeAction"}
	CodeLensRequest                = RequestType[CodeLensParams, []CodeLens]{"textDocument/codeLens"}
	CodeLensResolveRequest         = RequestType[CodeLens, CodeLens]{"codeLens/resolve"}
	DocumentFormattingRequest      = RequestType[DocumentFormattingParams, []TextEdit]{"textDocument/formatting"}
	DocumentRangeFormattingRequest = RequestType[DocumentRangeFormattingParams, []TextEdit]{"textDocument/rangeFormatting"}
	DocumentOnTypeFormattingRequest = RequestType[DocumentOnTypeFormattingParams, []TextEdit]{"textDocument/onTypeFormatting"}
	RenameRequest                  = RequestType[RenameParams, *WorkspaceEdit]{"textDocument/rename"}
	DocumentLinkRequest            = RequestType[DocumentLinkParams, []DocumentLink]{"textDocument/documentLink"}
	DocumentLinkResolveRequest     = RequestType[DocumentLink, DocumentLink]{"documentLink/resolve"}
)

// Connection management.
var (
	ConnectionRequest                  = RequestType[ConnectParams, bool]{"connection/connect"}
	ConnectionCompleteNotification     = NotificationType[ConnectionCompleteParams]{"connection/complete"}
	ConnectionChangedNotification      = NotificationType[ConnectionChangedParams]{"connection/connectionchanged"}
	DisconnectRequest                  = RequestType[DisconnectParams, bool]{"connection/disconnect"}
	CancelConnectRequest               = RequestType[CancelConnectParams, bool]{"connection/cancelconnect"}
	ChangeDatabaseRequest              = RequestType[ChangeDatabaseParams, bool]{"connection/changedatabase"}
	ListDatabasesRequest               = RequestType[ListDatabasesParams, *ListDatabasesResult]{"connection/listdatabases"}
	LanguageFlavorChangedNotification  = NotificationType[DidChangeLanguageFlavorParams]{"connection/languageflavorchanged"}
	RebuildIntelliSenseNotification    = NotificationType[RebuildIntelliSenseParams]{"textDocument/rebuildIntelliSense"}
	IntelliSenseReadyNotification      = NotificationType[IntelliSenseReadyParams]{"textDocument/intelliSenseReady"}
	CapabilitiesDiscoveryRequest       = RequestType[CapabilitiesDiscoveryParams, *CapabilitiesDiscoveryResult]{"capabilities/list"}
)

// Query execution.
var (
	QueryCancelRequest                 = RequestType[QueryCancelParams, *QueryCancelResult]{"query/cancel"}
	QueryDisposeRequest                = RequestType[QueryDisposeParams, *QueryDisposeResult]{"query/dispose"}
	QueryExecuteCompleteNotification   = NotificationType[QueryExecuteCompleteParams]{"query/complete"}
	QueryBatchStartNotification        = NotificationType[QueryExecuteBatchParams]{"query/batchStart"}
	QueryBatchCompleteNotification     = NotificationType[QueryExecuteBatchParams]{"query/batchComplete"}
	QueryResultSetCompleteNotification = NotificationType[QueryExecuteResultSetCompleteParams]{"query/resultSetComplete"}
	QueryMessageNotification           = NotificationType[QueryExecuteMessageParams]{"query/message"}
	QueryExecuteRequest                = RequestType[QueryExecuteParams, *QueryExecuteResult]{"query/executeDocumentSelection"}
	QueryExecuteStatementRequest       = RequestType[QueryExecuteStatementParams, *QueryExecuteResult]{"query/executedocumentstatement"}
	QueryExecuteStringRequest          = RequestType[QueryExecuteStringParams, *QueryExecuteResult]{"query/executeString"}
	QuerySubsetRequest                 = RequestType[QueryExecuteSubsetParams, *QueryExecuteSubsetResult]{"query/subset"}
	SimpleExecuteRequest               = RequestType[SimpleExecuteParams, *SimpleExecuteResult]{"query/simpleexecute"}
	SaveResultsAsCSVRequest            = RequestType[SaveResultsRequestParams, *SaveResultRequestResult]{"query/saveCsv"}
	SaveResultsAsJSONRequest           = RequestType[SaveResultsRequestParams, *SaveResultRequestResult]{"query/saveJson"}
	SaveResultsAsExcelRequest          = RequestType[SaveResultsRequestParams, *SaveResultRequestResult]{"query/saveExcel"}
)

// Edit data.
var (
	EditCommitRequest            = RequestType[EditSessionParams, *EditCommitResult]{"edit/commit"}
	EditCreateRowRequest         = RequestType[EditSessionParams, *EditCreateRowResult]{"edit/createRow"}
	EditDeleteRowRequest         = RequestType[EditRowParams, *EditDeleteRowResult]{"edit/deleteRow"}
	EditDisposeRequest           = RequestType[EditSessionParams, *EditDisposeResult]{"edit/dispose"}
	EditInitializeRequest        = RequestType[EditInitializeParams, *EditInitializeResult]{"edit/initialize"}
	EditRevertCellRequest        = RequestType[EditCellParams, *EditCellResult]{"edit/revertCell"}
	EditRevertRowRequest         = RequestType[EditRowParams, *EditRevertRowResult]{"edit/revertRow"}
	EditUpdateCellRequest        = RequestType[EditUpdateCellParams, *EditCellResult]{"edit/updateCell"}
	EditSubsetRequest            = RequestType[EditSubsetParams, *EditSubsetResult]{"edit/subset"}
	EditSessionReadyNotification = NotificationType[EditSessionReadyParams]{"edit/sessionReady"}
)

// Metadata and scripting.
var (
	MetadataListRequest           = RequestType[MetadataQueryParams, *MetadataQueryResult]{"metadata/list"}
	TableMetadataRequest          = RequestType[TableMetadataParams, *TableMetadataResult]{"metadata/table"}
	ViewMetadataRequest           = RequestType[TableMetadataParams, *TableMetadataResult]{"metadata/view"}
	ScriptingRequest              = RequestType[ScriptingParams, *ScriptingResult]{"scripting/script"}
	ScriptingCompleteNotification = NotificationType[ScriptingCompleteParams]{"scripting/scriptComplete"}
)

// Object explorer.
var (
	ObjectExplorerCreateSessionRequest          = RequestType[ConnectionDetails, *CreateSessionResponse]{"objectexplorer/createsession"}
	ObjectExplorerExpandRequest                 = RequestType[ExpandParams, bool]{"objectexplorer/expand"}
	ObjectExplorerRefreshRequest                = RequestType[ExpandParams, bool]{"objectexplorer/refresh"}
	ObjectExplorerCloseSessionRequest           = RequestType[CloseSessionParams, *CloseSessionResponse]{"objectexplorer/closesession"}
	ObjectExplorerSessionCreatedNotification    = NotificationType[SessionCreatedParameters]{"objectexplorer/sessioncreated"}
	ObjectExplorerExpandCompletedNotification   = NotificationType[ExpandResponse]{"objectexplorer/expandCompleted"}
)

// Task services.
var (
	ListTasksRequest                = RequestType[ListTasksParams, *ListTasksResponse]{"tasks/listtasks"}
	CancelTaskRequest               = RequestType[CancelTaskParams, bool]{"tasks/canceltask"}
	TaskStatusChangedNotification   = NotificationType[TaskProgressInfo]{"tasks/statuschanged"}
	TaskCreatedNotification         = NotificationType[TaskInfo]{"tasks/newtaskcreated"}
)

// Administration.
var (
	CreateDatabaseRequest      = RequestType[CreateDatabaseParams, *CreateDatabaseResponse]{"admin/createdatabase"}
	DefaultDatabaseInfoRequest = RequestType[DefaultDatabaseInfoParams, *DefaultDatabaseInfoResponse]{"admin/defaultdatabaseinfo"}
	CreateLoginRequest         = RequestType[CreateLoginParams, *CreateLoginResponse]{"admin/createlogin"}
	GetDatabaseInfoRequest     = RequestType[GetDatabaseInfoParams, *GetDatabaseInfoResponse]{"admin/getdatabaseinfo"}
)

// Disaster recovery.
var (
	BackupRequest            = RequestType[BackupParams, *BackupResponse]{"disasterrecovery/backup"}
	BackupConfigInfoRequest  = RequestType[DefaultDatabaseInfoParams, *BackupConfigInfoResponse]{"disasterrecovery/backupconfiginfo"}
	RestoreRequest           = RequestType[RestoreParams, *RestoreResponse]{"disasterrecovery/restore"}
	RestorePlanRequest       = RequestType[RestoreParams, *RestorePlanResponse]{"disasterrecovery/restoreplan"}
	CancelRestorePlanRequest = RequestType[RestoreParams, bool]{"disasterrecovery/cancelrestoreplan"}
	RestoreConfigInfoRequest = RequestType[RestoreConfigInfoRequestParams, *RestoreConfigInfoResponse]{"disasterrecovery/restoreconfiginfo"}
)

// File browser.
var (
	FileBrowserOpenRequest             = RequestType[FileBrowserOpenParams, bool]{"filebrowser/open"}
	FileBrowserOpenedNotification      = NotificationType[FileBrowserOpenedParams]{"filebrowser/opencomplete"}
	FileBrowserExpandRequest           = RequestType[FileBrowserExpandParams, bool]{"filebrowser/expand"}
	FileBrowserExpandedNotification    = NotificationType[FileBrowserExpandedParams]{"filebrowser/expandcomplete"}
	FileBrowserValidateRequest         = RequestType[FileBrowserValidateParams, bool]{"filebrowser/validate"}
	FileBrowserValidatedNotification   = NotificationType[FileBrowserValidatedParams]{"filebrowser/validatecomplete"}
	FileBrowserCloseRequest            = RequestType[FileBrowserCloseParams, *FileBrowserCloseResponse]{"filebrowser/close"}
)

// Profiler.
var (
	StartProfilingRequest               = RequestType[StartProfilingParams, *StartProfilingResponse]{"profiler/start"}
	StopProfilingRequest                = RequestType[StopProfilingParams, *StopProfilingResponse]{"profiler/stop"}
	ProfilerEventsAvailableNotification = NotificationType[ProfilerEventsAvailableParams]{"profiler/eventsavailable"}
)
