package client

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/cockroachdb/errors"

	"github.com/dshills/dataprotocol/internal/host"
	"github.com/dshills/dataprotocol/internal/protocol"
)

// ErrUnknownSaveFormat is returned by SaveResults for a format other than
// csv, json or excel.
var ErrUnknownSaveFormat = errors.New("unknown save results format")

// hookDataProtocol registers the data protocol providers when the client
// has a provider id and the server is a connection provider.
func (c *Client) hookDataProtocol(s *session) {
	dp := c.host.DataProtocol
	if dp == nil || c.opts.ProviderID == "" || !s.caps.Has(CapConnection) {
		return
	}

	b := base{c: c, s: s}
	s.providers.Add(dp.RegisterProvider(&host.DataProtocolProvider{
		ProviderID:       c.opts.ProviderID,
		Capabilities:     capabilitiesProvider{b},
		Connection:       connectionProvider{b},
		Query:            queryProvider{b},
		Metadata:         metadataProvider{b},
		Scripting:        scriptingProvider{b},
		ObjectExplorer:   objectExplorerProvider{b},
		AdminServices:    adminServicesProvider{b},
		DisasterRecovery: disasterRecoveryProvider{b},
		TaskServices:     taskServicesProvider{b},
		FileBrowser:      fileBrowserProvider{b},
		Profiler:         profilerProvider{b},
	}))

	s.listeners.Add(dp.OnDidChangeLanguageFlavor(func(change host.LanguageFlavorChange) {
		if !c.current(s) {
			return
		}
		notify(c, s, protocol.LanguageFlavorChangedNotification, change)
	}))

	c.logger.Debug("data protocol providers registered", slog.String("provider", c.opts.ProviderID))
}

// base is shared by every domain provider of one session.
type base struct {
	c *Client
	s *session
}

// on routes a server notification to fn. Handlers belong to the session's
// connection and go away with it.
func on[P any](b base, t protocol.NotificationType[P], fn func(P)) {
	b.s.conn.OnNotification(t.Method, func(method string, raw json.RawMessage) {
		p, err := t.DecodeParams(raw)
		if err != nil {
			b.c.logger.Warn("bad notification", slog.String("method", method), slog.String("err", err.Error()))
			return
		}
		fn(p)
	})
}

type capabilitiesProvider struct{ base }

func (p capabilitiesProvider) GetServerCapabilities(ctx context.Context, client host.DataProtocolClientCapabilities) (*host.DataProtocolServerCapabilities, error) {
	if md := p.c.opts.ServerConnectionMetadata; md != nil {
		return p.c.p2c.AsServerCapabilities(md), nil
	}
	res, err := call(ctx, p.c, protocol.CapabilitiesDiscoveryRequest, p.c.c2p.AsCapabilitiesParams(client))
	if err != nil {
		return nil, nil
	}
	return p.c.p2c.AsServerCapabilities(res), nil
}

type connectionProvider struct{ base }

func (p connectionProvider) Connect(ctx context.Context, connURI string, info host.ConnectionInfo) (bool, error) {
	ok, err := call(ctx, p.c, protocol.ConnectionRequest, p.c.c2p.AsConnectionParams(connURI, info))
	return ok && err == nil, nil
}

func (p connectionProvider) Disconnect(ctx context.Context, connURI string) (bool, error) {
	ok, err := call(ctx, p.c, protocol.DisconnectRequest, protocol.DisconnectParams{OwnerURI: connURI})
	return ok && err == nil, nil
}

func (p connectionProvider) CancelConnect(ctx context.Context, connURI string) (bool, error) {
	ok, err := call(ctx, p.c, protocol.CancelConnectRequest, protocol.CancelConnectParams{OwnerURI: connURI})
	return ok && err == nil, nil
}

func (p connectionProvider) ChangeDatabase(ctx context.Context, connURI, newDatabase string) (bool, error) {
	ok, err := call(ctx, p.c, protocol.ChangeDatabaseRequest, protocol.ChangeDatabaseParams{OwnerURI: connURI, NewDatabase: newDatabase})
	return ok && err == nil, nil
}

func (p connectionProvider) ListDatabases(ctx context.Context, connURI string) ([]string, error) {
	res, err := call(ctx, p.c, protocol.ListDatabasesRequest, p.c.c2p.AsListDatabasesParams(connURI))
	if err != nil || res == nil {
		return nil, nil
	}
	return res.DatabaseNames, nil
}

func (p connectionProvider) RebuildIntelliSenseCache(ctx context.Context, connURI string) error {
	return protocol.RebuildIntelliSenseNotification.Send(ctx, p.c, protocol.RebuildIntelliSenseParams{OwnerURI: connURI})
}

func (p connectionProvider) RegisterOnConnectionComplete(fn func(host.ConnectionInfoSummary)) {
	on(p.base, protocol.ConnectionCompleteNotification, func(params protocol.ConnectionCompleteParams) {
		fn(p.c.p2c.AsConnectionSummary(params))
	})
}

func (p connectionProvider) RegisterOnIntelliSenseCacheComplete(fn func(ownerURI string)) {
	on(p.base, protocol.IntelliSenseReadyNotification, func(params protocol.IntelliSenseReadyParams) {
		fn(params.OwnerURI)
	})
}

func (p connectionProvider) RegisterOnConnectionChanged(fn func(host.ChangedConnectionInfo)) {
	on(p.base, protocol.ConnectionChangedNotification, func(params protocol.ConnectionChangedParams) {
		fn(host.ChangedConnectionInfo{ConnectionURI: params.OwnerURI, Connection: params.Connection})
	})
}

// queryProvider failures reach the caller.
type queryProvider struct{ base }

func (p queryProvider) CancelQuery(ctx context.Context, ownerURI string) (string, error) {
	res, err := call(ctx, p.c, protocol.QueryCancelRequest, protocol.QueryCancelParams{OwnerURI: ownerURI})
	if err != nil {
		return "", err
	}
	if res == nil {
		return "", nil
	}
	return res.Messages, nil
}

func (p queryProvider) RunQuery(ctx context.Context, ownerURI string, selection *host.SelectionData, plan *host.ExecutionPlanOptions) error {
	_, err := call(ctx, p.c, protocol.QueryExecuteRequest, protocol.QueryExecuteParams{
		OwnerURI:             ownerURI,
		QuerySelection:       selection,
		ExecutionPlanOptions: p.c.c2p.AsExecutionPlanOptions(plan),
	})
	return err
}

func (p queryProvider) RunQueryStatement(ctx context.Context, ownerURI string, line, column int) error {
	_, err := call(ctx, p.c, protocol.QueryExecuteStatementRequest, protocol.QueryExecuteStatementParams{
		OwnerURI: ownerURI,
		Line:     line,
		Column:   column,
	})
	return err
}

func (p queryProvider) RunQueryString(ctx context.Context, ownerURI, query string) error {
	_, err := call(ctx, p.c, protocol.QueryExecuteStringRequest, protocol.QueryExecuteStringParams{Query: query, OwnerURI: ownerURI})
	return err
}

func (p queryProvider) RunQueryAndReturn(ctx context.Context, ownerURI, query string) (*host.SimpleExecuteResult, error) {
	return call(ctx, p.c, protocol.SimpleExecuteRequest, protocol.SimpleExecuteParams{QueryString: query, OwnerURI: ownerURI})
}

func (p queryProvider) GetQueryRows(ctx context.Context, params host.QueryExecuteSubsetParams) (*host.QueryExecuteSubsetResult, error) {
	return call(ctx, p.c, protocol.QuerySubsetRequest, params)
}

func (p queryProvider) DisposeQuery(ctx context.Context, ownerURI string) error {
	_, err := call(ctx, p.c, protocol.QueryDisposeRequest, protocol.QueryDisposeParams{OwnerURI: ownerURI})
	return err
}

func (p queryProvider) SaveResults(ctx context.Context, params host.SaveResultsRequestParams, format host.SaveResultsFormat) (*host.SaveResultRequestResult, error) {
	var t protocol.RequestType[protocol.SaveResultsRequestParams, *protocol.SaveResultRequestResult]
	switch format {
	case host.SaveResultsCSV:
		t = protocol.SaveResultsAsCSVRequest
	case host.SaveResultsJSON:
		t = protocol.SaveResultsAsJSONRequest
	case host.SaveResultsExcel:
		t = protocol.SaveResultsAsExcelRequest
	default:
		return nil, errors.Wrapf(ErrUnknownSaveFormat, "%q", format)
	}
	return call(ctx, p.c, t, params)
}

func (p queryProvider) InitializeEdit(ctx context.Context, ownerURI, schemaName, objectName, objectType string, rowLimit *int) error {
	_, err := call(ctx, p.c, protocol.EditInitializeRequest, protocol.EditInitializeParams{
		OwnerURI:   ownerURI,
		Filters:    protocol.EditInitializeFiltering{LimitResults: rowLimit},
		ObjectName: objectName,
		SchemaName: schemaName,
		ObjectType: objectType,
	})
	return err
}

func (p queryProvider) CommitEdit(ctx context.Context, ownerURI string) error {
	_, err := call(ctx, p.c, protocol.EditCommitRequest, protocol.EditSessionParams{OwnerURI: ownerURI})
	return err
}

func (p queryProvider) CreateRow(ctx context.Context, ownerURI string) (*host.EditCreateRowResult, error) {
	return call(ctx, p.c, protocol.EditCreateRowRequest, protocol.EditSessionParams{OwnerURI: ownerURI})
}

func (p queryProvider) DeleteRow(ctx context.Context, ownerURI string, rowID int) error {
	_, err := call(ctx, p.c, protocol.EditDeleteRowRequest, protocol.EditRowParams{OwnerURI: ownerURI, RowID: rowID})
	return err
}

func (p queryProvider) DisposeEdit(ctx context.Context, ownerURI string) error {
	_, err := call(ctx, p.c, protocol.EditDisposeRequest, protocol.EditSessionParams{OwnerURI: ownerURI})
	return err
}

func (p queryProvider) RevertCell(ctx context.Context, ownerURI string, rowID, columnID int) (*host.EditCellResult, error) {
	return call(ctx, p.c, protocol.EditRevertCellRequest, protocol.EditCellParams{OwnerURI: ownerURI, RowID: rowID, ColumnID: columnID})
}

func (p queryProvider) RevertRow(ctx context.Context, ownerURI string, rowID int) error {
	_, err := call(ctx, p.c, protocol.EditRevertRowRequest, protocol.EditRowParams{OwnerURI: ownerURI, RowID: rowID})
	return err
}

func (p queryProvider) UpdateCell(ctx context.Context, ownerURI string, rowID, columnID int, newValue string) (*host.EditCellResult, error) {
	return call(ctx, p.c, protocol.EditUpdateCellRequest, protocol.EditUpdateCellParams{
		OwnerURI: ownerURI,
		RowID:    rowID,
		ColumnID: columnID,
		NewValue: newValue,
	})
}

func (p queryProvider) GetEditRows(ctx context.Context, params host.EditSubsetParams) (*host.EditSubsetResult, error) {
	return call(ctx, p.c, protocol.EditSubsetRequest, params)
}

func (p queryProvider) RegisterOnQueryComplete(fn func(host.QueryExecuteCompleteNotify)) {
	on(p.base, protocol.QueryExecuteCompleteNotification, fn)
}

func (p queryProvider) RegisterOnBatchStart(fn func(host.QueryExecuteBatchNotify)) {
	on(p.base, protocol.QueryBatchStartNotification, fn)
}

func (p queryProvider) RegisterOnBatchComplete(fn func(host.QueryExecuteBatchNotify)) {
	on(p.base, protocol.QueryBatchCompleteNotification, fn)
}

func (p queryProvider) RegisterOnResultSetComplete(fn func(host.QueryExecuteResultSetNotify)) {
	on(p.base, protocol.QueryResultSetCompleteNotification, fn)
}

func (p queryProvider) RegisterOnMessage(fn func(host.QueryExecuteMessageNotify)) {
	on(p.base, protocol.QueryMessageNotification, fn)
}

func (p queryProvider) RegisterOnEditSessionReady(fn func(host.EditSessionReadyParams)) {
	on(p.base, protocol.EditSessionReadyNotification, fn)
}

type metadataProvider struct{ base }

func (p metadataProvider) GetMetadata(ctx context.Context, connURI string) (*host.ProviderMetadata, error) {
	res, err := call(ctx, p.c, protocol.MetadataListRequest, p.c.c2p.AsMetadataQueryParams(connURI))
	if err != nil {
		return nil, nil
	}
	return p.c.p2c.AsProviderMetadata(res), nil
}

func (p metadataProvider) GetDatabases(ctx context.Context, connURI string) ([]string, error) {
	res, err := call(ctx, p.c, protocol.ListDatabasesRequest, p.c.c2p.AsListDatabasesParams(connURI))
	if err != nil || res == nil {
		return nil, nil
	}
	return res.DatabaseNames, nil
}

func (p metadataProvider) GetTableInfo(ctx context.Context, connURI string, md host.ObjectMetadata) (*host.TableInfo, error) {
	return p.columns(ctx, protocol.TableMetadataRequest, connURI, md)
}

func (p metadataProvider) GetViewInfo(ctx context.Context, connURI string, md host.ObjectMetadata) (*host.TableInfo, error) {
	return p.columns(ctx, protocol.ViewMetadataRequest, connURI, md)
}

func (p metadataProvider) columns(ctx context.Context, t protocol.RequestType[protocol.TableMetadataParams, *protocol.TableMetadataResult], connURI string, md host.ObjectMetadata) (*host.TableInfo, error) {
	res, err := call(ctx, p.c, t, p.c.c2p.AsTableMetadataParams(connURI, md))
	if err != nil || res == nil {
		return nil, nil
	}
	return &host.TableInfo{Columns: res.Columns}, nil
}

type scriptingProvider struct{ base }

func (p scriptingProvider) ScriptAsOperation(ctx context.Context, connURI string, op host.ScriptOperation, md host.ObjectMetadata, details *host.ScriptingParamDetails) (*host.ScriptingResult, error) {
	res, err := call(ctx, p.c, protocol.ScriptingRequest, p.c.c2p.AsScriptingParams(connURI, op, md, details))
	if err != nil {
		return nil, nil
	}
	return p.c.p2c.AsScriptingResult(res), nil
}

func (p scriptingProvider) RegisterOnScriptingComplete(fn func(host.ScriptingCompleteResult)) {
	on(p.base, protocol.ScriptingCompleteNotification, fn)
}

type objectExplorerProvider struct{ base }

func (p objectExplorerProvider) CreateNewSession(ctx context.Context, info host.ConnectionInfo) (*host.ObjectExplorerSessionResponse, error) {
	res, err := call(ctx, p.c, protocol.ObjectExplorerCreateSessionRequest, p.c.c2p.AsConnectionDetail(info))
	if err != nil {
		return nil, nil
	}
	return p.c.p2c.AsObjectExplorerCreateSessionResponse(res), nil
}

func (p objectExplorerProvider) ExpandNode(ctx context.Context, info host.ExpandNodeInfo) (bool, error) {
	ok, err := call(ctx, p.c, protocol.ObjectExplorerExpandRequest, p.c.c2p.AsExpandInfo(info))
	return ok && err == nil, nil
}

func (p objectExplorerProvider) RefreshNode(ctx context.Context, info host.ExpandNodeInfo) (bool, error) {
	ok, err := call(ctx, p.c, protocol.ObjectExplorerRefreshRequest, p.c.c2p.AsExpandInfo(info))
	return ok && err == nil, nil
}

func (p objectExplorerProvider) CloseSession(ctx context.Context, info host.ObjectExplorerCloseSessionInfo) (*host.ObjectExplorerCloseSessionResponse, error) {
	res, err := call(ctx, p.c, protocol.ObjectExplorerCloseSessionRequest, p.c.c2p.AsCloseSessionInfo(info))
	if err != nil {
		return nil, nil
	}
	return p.c.p2c.AsObjectExplorerCloseSessionResponse(res), nil
}

func (p objectExplorerProvider) RegisterOnSessionCreated(fn func(host.ObjectExplorerSession)) {
	on(p.base, protocol.ObjectExplorerSessionCreatedNotification, func(params protocol.SessionCreatedParameters) {
		fn(p.c.p2c.AsObjectExplorerSession(params))
	})
}

func (p objectExplorerProvider) RegisterOnExpandCompleted(fn func(host.ObjectExplorerExpandInfo)) {
	on(p.base, protocol.ObjectExplorerExpandCompletedNotification, func(params protocol.ExpandResponse) {
		fn(p.c.p2c.AsObjectExplorerNodeInfo(params))
	})
}

type adminServicesProvider struct{ base }

func (p adminServicesProvider) CreateDatabase(ctx context.Context, connURI string, info host.DatabaseInfo) (*host.CreateDatabaseResponse, error) {
	res, err := call(ctx, p.c, protocol.CreateDatabaseRequest, protocol.CreateDatabaseParams{OwnerURI: connURI, DatabaseInfo: info})
	if err != nil {
		return nil, nil
	}
	return res, nil
}

func (p adminServicesProvider) GetDefaultDatabaseInfo(ctx context.Context, connURI string) (*host.DatabaseInfo, error) {
	res, err := call(ctx, p.c, protocol.DefaultDatabaseInfoRequest, protocol.DefaultDatabaseInfoParams{OwnerURI: connURI})
	if err != nil || res == nil {
		return nil, nil
	}
	return res.DefaultDatabaseInfo, nil
}

func (p adminServicesProvider) GetDatabaseInfo(ctx context.Context, connURI string) (*host.DatabaseInfo, error) {
	res, err := call(ctx, p.c, protocol.GetDatabaseInfoRequest, protocol.GetDatabaseInfoParams{OwnerURI: connURI})
	if err != nil || res == nil {
		return nil, nil
	}
	return res.DatabaseInfo, nil
}

func (p adminServicesProvider) CreateLogin(ctx context.Context, connURI string, info host.LoginInfo) (*host.CreateLoginResponse, error) {
	res, err := call(ctx, p.c, protocol.CreateLoginRequest, protocol.CreateLoginParams{OwnerURI: connURI, LoginInfo: info})
	if err != nil {
		return nil, nil
	}
	return res, nil
}

type disasterRecoveryProvider struct{ base }

func (p disasterRecoveryProvider) Backup(ctx context.Context, connURI string, info host.BackupInfo, mode host.TaskExecutionMode) (*host.BackupResponse, error) {
	res, err := call(ctx, p.c, protocol.BackupRequest, protocol.BackupParams{OwnerURI: connURI, BackupInfo: info, TaskExecutionMode: mode})
	if err != nil {
		return nil, nil
	}
	return res, nil
}

func (p disasterRecoveryProvider) GetBackupConfigInfo(ctx context.Context, connURI string) (*host.BackupConfigInfo, error) {
	res, err := call(ctx, p.c, protocol.BackupConfigInfoRequest, protocol.DefaultDatabaseInfoParams{OwnerURI: connURI})
	if err != nil || res == nil {
		return nil, nil
	}
	return res.BackupConfigInfo, nil
}

func (p disasterRecoveryProvider) GetRestorePlan(ctx context.Context, connURI string, info host.RestoreInfo) (*host.RestorePlanResponse, error) {
	res, err := call(ctx, p.c, protocol.RestorePlanRequest, p.c.c2p.AsRestoreParams(connURI, info))
	if err != nil {
		return nil, nil
	}
	return p.c.p2c.AsRestorePlanResponse(res), nil
}

func (p disasterRecoveryProvider) Restore(ctx context.Context, connURI string, info host.RestoreInfo) (*host.RestoreResponse, error) {
	res, err := call(ctx, p.c, protocol.RestoreRequest, p.c.c2p.AsRestoreParams(connURI, info))
	if err != nil {
		return nil, nil
	}
	return p.c.p2c.AsRestoreResponse(res), nil
}

func (p disasterRecoveryProvider) GetRestoreConfigInfo(ctx context.Context, connURI string) (*host.RestoreConfigInfo, error) {
	res, err := call(ctx, p.c, protocol.RestoreConfigInfoRequest, p.c.c2p.AsRestoreConfigInfoParams(connURI))
	if err != nil {
		return nil, nil
	}
	return p.c.p2c.AsRestoreConfigInfo(res), nil
}

func (p disasterRecoveryProvider) CancelRestorePlan(ctx context.Context, connURI string, info host.RestoreInfo) (bool, error) {
	ok, err := call(ctx, p.c, protocol.CancelRestorePlanRequest, p.c.c2p.AsRestoreParams(connURI, info))
	return ok && err == nil, nil
}

type taskServicesProvider struct{ base }

func (p taskServicesProvider) GetAllTasks(ctx context.Context, listActiveTasksOnly bool) (*host.ListTasksResponse, error) {
	res, err := call(ctx, p.c, protocol.ListTasksRequest, p.c.c2p.AsListTasksParams(listActiveTasksOnly))
	if err != nil {
		return nil, nil
	}
	return p.c.p2c.AsListTasksResponse(res), nil
}

func (p taskServicesProvider) CancelTask(ctx context.Context, taskID string) (bool, error) {
	ok, err := call(ctx, p.c, protocol.CancelTaskRequest, p.c.c2p.AsCancelTaskParams(taskID))
	return ok && err == nil, nil
}

func (p taskServicesProvider) RegisterOnTaskCreated(fn func(host.TaskInfo)) {
	on(p.base, protocol.TaskCreatedNotification, func(info protocol.TaskInfo) {
		fn(p.c.p2c.AsTaskInfo(info))
	})
}

func (p taskServicesProvider) RegisterOnTaskStatusChanged(fn func(host.TaskProgressInfo)) {
	on(p.base, protocol.TaskStatusChangedNotification, fn)
}

type fileBrowserProvider struct{ base }

func (p fileBrowserProvider) OpenFileBrowser(ctx context.Context, ownerURI, expandPath string, fileFilters []string, changeFilter bool) (bool, error) {
	ok, err := call(ctx, p.c, protocol.FileBrowserOpenRequest, protocol.FileBrowserOpenParams{
		OwnerURI:     ownerURI,
		ExpandPath:   expandPath,
		FileFilters:  fileFilters,
		ChangeFilter: changeFilter,
	})
	return ok && err == nil, nil
}

func (p fileBrowserProvider) ExpandFolderNode(ctx context.Context, ownerURI, expandPath string) (bool, error) {
	ok, err := call(ctx, p.c, protocol.FileBrowserExpandRequest, protocol.FileBrowserExpandParams{OwnerURI: ownerURI, ExpandPath: expandPath})
	return ok && err == nil, nil
}

func (p fileBrowserProvider) ValidateFilePaths(ctx context.Context, ownerURI, serviceType string, selectedFiles []string) (bool, error) {
	ok, err := call(ctx, p.c, protocol.FileBrowserValidateRequest, protocol.FileBrowserValidateParams{
		OwnerURI:      ownerURI,
		ServiceType:   serviceType,
		SelectedFiles: selectedFiles,
	})
	return ok && err == nil, nil
}

func (p fileBrowserProvider) CloseFileBrowser(ctx context.Context, ownerURI string) (*host.FileBrowserCloseResponse, error) {
	res, err := call(ctx, p.c, protocol.FileBrowserCloseRequest, protocol.FileBrowserCloseParams{OwnerURI: ownerURI})
	if err != nil {
		return nil, nil
	}
	return res, nil
}

func (p fileBrowserProvider) RegisterOnFileBrowserOpened(fn func(host.FileBrowserOpenedParams)) {
	on(p.base, protocol.FileBrowserOpenedNotification, fn)
}

func (p fileBrowserProvider) RegisterOnFolderNodeExpanded(fn func(host.FileBrowserExpandedParams)) {
	on(p.base, protocol.FileBrowserExpandedNotification, fn)
}

func (p fileBrowserProvider) RegisterOnFilePathsValidated(fn func(host.FileBrowserValidatedParams)) {
	on(p.base, protocol.FileBrowserValidatedNotification, fn)
}

// profilerProvider sends only start and stop, which report true for any
// reply. The other session controls have no wire method and report false.
type profilerProvider struct{ base }

func (p profilerProvider) StartSession(ctx context.Context, sessionID string) (bool, error) {
	if _, err := call(ctx, p.c, protocol.StartProfilingRequest, protocol.StartProfilingParams{
		OwnerURI: sessionID,
		Options:  map[string]any{},
	}); err != nil {
		return false, err
	}
	return true, nil
}

func (p profilerProvider) StopSession(ctx context.Context, sessionID string) (bool, error) {
	if _, err := call(ctx, p.c, protocol.StopProfilingRequest, protocol.StopProfilingParams{OwnerURI: sessionID}); err != nil {
		return false, err
	}
	return true, nil
}

func (profilerProvider) PauseSession(context.Context, string) (bool, error)      { return false, nil }
func (profilerProvider) ConnectSession(context.Context, string) (bool, error)    { return false, nil }
func (profilerProvider) DisconnectSession(context.Context, string) (bool, error) { return false, nil }

func (p profilerProvider) RegisterOnSessionEventsAvailable(fn func(host.ProfilerSessionEvents)) {
	on(p.base, protocol.ProfilerEventsAvailableNotification, func(params protocol.ProfilerEventsAvailableParams) {
		fn(host.ProfilerSessionEvents{SessionID: params.OwnerURI, Events: params.Events})
	})
}
