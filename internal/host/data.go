package host

import (
	"context"

	"github.com/dshills/dataprotocol/internal/protocol"
)

// Shapes the host shares with the wire unchanged.
type (
	ServerInfo                     = protocol.ServerInfo
	ConnectionSummary              = protocol.ConnectionSummary
	ServiceOption                  = protocol.ServiceOption
	DataProtocolServerCapabilities = protocol.DataProtocolServerCapabilities
	ObjectMetadata                 = protocol.ObjectMetadata
	MetadataType                   = protocol.MetadataType
	ColumnMetadata                 = protocol.ColumnMetadata
	ScriptOperation                = protocol.ScriptOperation
	ScriptingCompleteResult        = protocol.ScriptingCompleteParams
	NodeInfo                       = protocol.NodeInfo
	SelectionData                  = protocol.SelectionData
	QueryExecuteCompleteNotify     = protocol.QueryExecuteCompleteParams
	QueryExecuteBatchNotify        = protocol.QueryExecuteBatchParams
	QueryExecuteResultSetNotify    = protocol.QueryExecuteResultSetCompleteParams
	QueryExecuteMessageNotify      = protocol.QueryExecuteMessageParams
	QueryExecuteSubsetParams       = protocol.QueryExecuteSubsetParams
	QueryExecuteSubsetResult       = protocol.QueryExecuteSubsetResult
	SimpleExecuteResult            = protocol.SimpleExecuteResult
	DbColumn                       = protocol.DbColumn
	DbCellValue                    = protocol.DbCellValue
	SaveResultsRequestParams       = protocol.SaveResultsRequestParams
	SaveResultRequestResult        = protocol.SaveResultRequestResult
	EditCellResult                 = protocol.EditCellResult
	EditCreateRowResult            = protocol.EditCreateRowResult
	EditSubsetParams               = protocol.EditSubsetParams
	EditSubsetResult               = protocol.EditSubsetResult
	EditSessionReadyParams         = protocol.EditSessionReadyParams
	TaskInfo                       = protocol.TaskInfo
	TaskProgressInfo               = protocol.TaskProgressInfo
	TaskExecutionMode              = protocol.TaskExecutionMode
	ListTasksResponse              = protocol.ListTasksResponse
	DatabaseInfo                   = protocol.DatabaseInfo
	LoginInfo                      = protocol.LoginInfo
	CreateDatabaseResponse         = protocol.CreateDatabaseResponse
	CreateLoginResponse            = protocol.CreateLoginResponse
	BackupInfo                     = protocol.BackupInfo
	BackupResponse                 = protocol.BackupResponse
	BackupConfigInfo               = protocol.BackupConfigInfo
	RestorePlanResponse            = protocol.RestorePlanResponse
	RestoreResponse                = protocol.RestoreResponse
	FileBrowserOpenedParams        = protocol.FileBrowserOpenedParams
	FileBrowserExpandedParams      = protocol.FileBrowserExpandedParams
	FileBrowserValidatedParams     = protocol.FileBrowserValidatedParams
	FileBrowserCloseResponse       = protocol.FileBrowserCloseResponse
	ProfilerEvent                  = protocol.ProfilerEvent
	LanguageFlavorChange           = protocol.DidChangeLanguageFlavorParams
)

// ConnectionInfo carries provider-specific connection options.
type ConnectionInfo struct {
	Options map[string]any
}

// ConnectionInfoSummary reports the outcome of a connection attempt.
type ConnectionInfoSummary struct {
	OwnerURI          string
	ConnectionID      string
	Messages          string
	ErrorMessage      string
	ErrorNumber       int
	ServerInfo        *ServerInfo
	ConnectionSummary *ConnectionSummary
}

// ChangedConnectionInfo reports that the connection of an owner changed,
// e.g. after a database switch.
type ChangedConnectionInfo struct {
	ConnectionURI string
	Connection    ConnectionSummary
}

// DataProtocolClientCapabilities identifies the host to the server.
type DataProtocolClientCapabilities struct {
	HostName    string
	HostVersion string
}

// ProviderMetadata lists the objects of a database.
type ProviderMetadata struct {
	ObjectMetadata []ObjectMetadata
}

// TableInfo lists the columns of a table or view.
type TableInfo struct {
	Columns []ColumnMetadata
}

// ScriptingParamDetails override script generation defaults.
type ScriptingParamDetails struct {
	FilePath                    string
	ScriptCompatibilityOption   string
	TargetDatabaseEngineEdition string
	TargetDatabaseEngineType    string
}

// ScriptingResult identifies a started scripting operation.
type ScriptingResult struct {
	OperationID string
	Script      string
}

// ExecutionPlanOptions select the plans returned with query results.
type ExecutionPlanOptions struct {
	DisplayEstimatedQueryPlan bool
	DisplayActualQueryPlan    bool
}

// ExpandNodeInfo names a node to expand or refresh.
type ExpandNodeInfo struct {
	SessionID string
	NodePath  string
}

// ObjectExplorerSession is the root of a created session.
type ObjectExplorerSession struct {
	Success      bool
	SessionID    string
	RootNode     *NodeInfo
	ErrorMessage string
}

// ObjectExplorerSessionResponse acknowledges a session request.
type ObjectExplorerSessionResponse struct {
	SessionID string
}

// ObjectExplorerExpandInfo holds the children of an expanded node.
type ObjectExplorerExpandInfo struct {
	SessionID    string
	NodePath     string
	Nodes        []NodeInfo
	ErrorMessage string
}

// ObjectExplorerCloseSessionInfo names a session to close.
type ObjectExplorerCloseSessionInfo struct {
	SessionID string
}

// ObjectExplorerCloseSessionResponse reports a closed session.
type ObjectExplorerCloseSessionResponse struct {
	SessionID string
	Success   bool
}

// RestoreInfo carries restore options.
type RestoreInfo struct {
	Options           map[string]any
	TaskExecutionMode TaskExecutionMode
}

// RestoreConfigInfo describes restore defaults for a connection.
type RestoreConfigInfo struct {
	ConfigInfo map[string]any
}

// ProfilerSessionEvents carries events captured by a profiler session.
type ProfilerSessionEvents struct {
	SessionID string
	Events    []ProfilerEvent
}

// SaveResultsFormat is the file format of saved results.
type SaveResultsFormat string

const (
	SaveResultsCSV   SaveResultsFormat = "csv"
	SaveResultsJSON  SaveResultsFormat = "json"
	SaveResultsExcel SaveResultsFormat = "excel"
)

// ConnectionProvider manages connections identified by owner URI.
type ConnectionProvider interface {
	Connect(ctx context.Context, connURI string, info ConnectionInfo) (bool, error)
	Disconnect(ctx context.Context, connURI string) (bool, error)
	CancelConnect(ctx context.Context, connURI string) (bool, error)
	ChangeDatabase(ctx context.Context, connURI, newDatabase string) (bool, error)
	ListDatabases(ctx context.Context, connURI string) ([]string, error)
	RebuildIntelliSenseCache(ctx context.Context, connURI string) error
	RegisterOnConnectionComplete(fn func(ConnectionInfoSummary))
	RegisterOnIntelliSenseCacheComplete(fn func(ownerURI string))
	RegisterOnConnectionChanged(fn func(ChangedConnectionInfo))
}

// CapabilitiesProvider reports what the server supports.
type CapabilitiesProvider interface {
	GetServerCapabilities(ctx context.Context, client DataProtocolClientCapabilities) (*DataProtocolServerCapabilities, error)
}

// QueryProvider runs queries and edit sessions.
type QueryProvider interface {
	CancelQuery(ctx context.Context, ownerURI string) (string, error)
	RunQuery(ctx context.Context, ownerURI string, selection *SelectionData, plan *ExecutionPlanOptions) error
	RunQueryStatement(ctx context.Context, ownerURI string, line, column int) error
	RunQueryString(ctx context.Context, ownerURI, query string) error
	RunQueryAndReturn(ctx context.Context, ownerURI, query string) (*SimpleExecuteResult, error)
	GetQueryRows(ctx context.Context, params QueryExecuteSubsetParams) (*QueryExecuteSubsetResult, error)
	DisposeQuery(ctx context.Context, ownerURI string) error
	SaveResults(ctx context.Context, params SaveResultsRequestParams, format SaveResultsFormat) (*SaveResultRequestResult, error)

	InitializeEdit(ctx context.Context, ownerURI, schemaName, objectName, objectType string, rowLimit *int) error
	CommitEdit(ctx context.Context, ownerURI string) error
	CreateRow(ctx context.Context, ownerURI string) (*EditCreateRowResult, error)
	DeleteRow(ctx context.Context, ownerURI string, rowID int) error
	DisposeEdit(ctx context.Context, ownerURI string) error
	RevertCell(ctx context.Context, ownerURI string, rowID, columnID int) (*EditCellResult, error)
	RevertRow(ctx context.Context, ownerURI string, rowID int) error
	UpdateCell(ctx context.Context, ownerURI string, rowID, columnID int, newValue string) (*EditCellResult, error)
	GetEditRows(ctx context.Context, params EditSubsetParams) (*EditSubsetResult, error)

	RegisterOnQueryComplete(fn func(QueryExecuteCompleteNotify))
	RegisterOnBatchStart(fn func(QueryExecuteBatchNotify))
	RegisterOnBatchComplete(fn func(QueryExecuteBatchNotify))
	RegisterOnResultSetComplete(fn func(QueryExecuteResultSetNotify))
	RegisterOnMessage(fn func(QueryExecuteMessageNotify))
	RegisterOnEditSessionReady(fn func(EditSessionReadyParams))
}

// MetadataProvider lists database objects.
type MetadataProvider interface {
	GetMetadata(ctx context.Context, connURI string) (*ProviderMetadata, error)
	GetDatabases(ctx context.Context, connURI string) ([]string, error)
	GetTableInfo(ctx context.Context, connURI string, md ObjectMetadata) (*TableInfo, error)
	GetViewInfo(ctx context.Context, connURI string, md ObjectMetadata) (*TableInfo, error)
}

// ScriptingProvider generates scripts for database objects.
type ScriptingProvider interface {
	ScriptAsOperation(ctx context.Context, connURI string, op ScriptOperation, md ObjectMetadata, details *ScriptingParamDetails) (*ScriptingResult, error)
	RegisterOnScriptingComplete(fn func(ScriptingCompleteResult))
}

// ObjectExplorerProvider browses the object tree of a server.
type ObjectExplorerProvider interface {
	CreateNewSession(ctx context.Context, info ConnectionInfo) (*ObjectExplorerSessionResponse, error)
	ExpandNode(ctx context.Context, info ExpandNodeInfo) (bool, error)
	RefreshNode(ctx context.Context, info ExpandNodeInfo) (bool, error)
	CloseSession(ctx context.Context, info ObjectExplorerCloseSessionInfo) (*ObjectExplorerCloseSessionResponse, error)
	RegisterOnSessionCreated(fn func(ObjectExplorerSession))
	RegisterOnExpandCompleted(fn func(ObjectExplorerExpandInfo))
}

// AdminServicesProvider creates databases and logins.
type AdminServicesProvider interface {
	CreateDatabase(ctx context.Context, connURI string, info DatabaseInfo) (*CreateDatabaseResponse, error)
	GetDefaultDatabaseInfo(ctx context.Context, connURI string) (*DatabaseInfo, error)
	GetDatabaseInfo(ctx context.Context, connURI string) (*DatabaseInfo, error)
	CreateLogin(ctx context.Context, connURI string, info LoginInfo) (*CreateLoginResponse, error)
}

// DisasterRecoveryProvider backs up and restores databases.
type DisasterRecoveryProvider interface {
	Backup(ctx context.Context, connURI string, info BackupInfo, mode TaskExecutionMode) (*BackupResponse, error)
	GetBackupConfigInfo(ctx context.Context, connURI string) (*BackupConfigInfo, error)
	GetRestorePlan(ctx context.Context, connURI string, info RestoreInfo) (*RestorePlanResponse, error)
	Restore(ctx context.Context, connURI string, info RestoreInfo) (*RestoreResponse, error)
	GetRestoreConfigInfo(ctx context.Context, connURI string) (*RestoreConfigInfo, error)
	CancelRestorePlan(ctx context.Context, connURI string, info RestoreInfo) (bool, error)
}

// TaskServicesProvider lists and cancels background tasks.
type TaskServicesProvider interface {
	GetAllTasks(ctx context.Context, listActiveTasksOnly bool) (*ListTasksResponse, error)
	CancelTask(ctx context.Context, taskID string) (bool, error)
	RegisterOnTaskCreated(fn func(TaskInfo))
	RegisterOnTaskStatusChanged(fn func(TaskProgressInfo))
}

// FileBrowserProvider browses the server's file system.
type FileBrowserProvider interface {
	OpenFileBrowser(ctx context.Context, ownerURI, expandPath string, fileFilters []string, changeFilter bool) (bool, error)
	ExpandFolderNode(ctx context.Context, ownerURI, expandPath string) (bool, error)
	ValidateFilePaths(ctx context.Context, ownerURI, serviceType string, selectedFiles []string) (bool, error)
	CloseFileBrowser(ctx context.Context, ownerURI string) (*FileBrowserCloseResponse, error)
	RegisterOnFileBrowserOpened(fn func(FileBrowserOpenedParams))
	RegisterOnFolderNodeExpanded(fn func(FileBrowserExpandedParams))
	RegisterOnFilePathsValidated(fn func(FileBrowserValidatedParams))
}

// ProfilerProvider controls server-side trace sessions.
type ProfilerProvider interface {
	StartSession(ctx context.Context, sessionID string) (bool, error)
	StopSession(ctx context.Context, sessionID string) (bool, error)
	PauseSession(ctx context.Context, sessionID string) (bool, error)
	ConnectSession(ctx context.Context, sessionID string) (bool, error)
	DisconnectSession(ctx context.Context, sessionID string) (bool, error)
	RegisterOnSessionEventsAvailable(fn func(ProfilerSessionEvents))
}

// DataProtocolProvider groups the domain providers of one server under
// its provider id.
type DataProtocolProvider struct {
	ProviderID       string
	Capabilities     CapabilitiesProvider
	Connection       ConnectionProvider
	Query            QueryProvider
	Metadata         MetadataProvider
	Scripting        ScriptingProvider
	ObjectExplorer   ObjectExplorerProvider
	AdminServices    AdminServicesProvider
	DisasterRecovery DisasterRecoveryProvider
	TaskServices     TaskServicesProvider
	FileBrowser      FileBrowserProvider
	Profiler         ProfilerProvider
}

// DataProtocol is the host registry of data protocol providers.
type DataProtocol interface {
	RegisterProvider(p *DataProtocolProvider) Disposable
	OnDidChangeLanguageFlavor(fn func(LanguageFlavorChange)) Disposable
}
