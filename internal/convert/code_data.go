package convert

import (
	"github.com/dshills/dataprotocol/internal/host"
	"github.com/dshills/dataprotocol/internal/protocol"
)

// Script generation defaults used when the caller leaves a detail empty.
const (
	DefaultScriptCompatibilityOption   = "Script140Compat"
	DefaultTargetDatabaseEngineEdition = "SqlServerEnterpriseEdition"
	DefaultTargetDatabaseEngineType    = "SingleInstance"
	ScriptDestinationEditor            = "ToEditor"
)

// AsCapabilitiesParams builds capabilities/list parameters.
func (c *CodeConverter) AsCapabilitiesParams(client host.DataProtocolClientCapabilities) protocol.CapabilitiesDiscoveryParams {
	return protocol.CapabilitiesDiscoveryParams{
		HostName:    client.HostName,
		HostVersion: client.HostVersion,
	}
}

// AsConnectionParams builds connection/connect parameters.
func (c *CodeConverter) AsConnectionParams(connURI string, info host.ConnectionInfo) protocol.ConnectParams {
	return protocol.ConnectParams{
		OwnerURI:   connURI,
		Connection: c.AsConnectionDetail(info),
	}
}

// AsMetadataQueryParams builds metadata/list parameters.
func (c *CodeConverter) AsMetadataQueryParams(connURI string) protocol.MetadataQueryParams {
	return protocol.MetadataQueryParams{OwnerURI: connURI}
}

// AsListDatabasesParams builds connection/listdatabases parameters.
func (c *CodeConverter) AsListDatabasesParams(connURI string) protocol.ListDatabasesParams {
	return protocol.ListDatabasesParams{OwnerURI: connURI}
}

// AsTableMetadataParams builds metadata/table and metadata/view parameters.
func (c *CodeConverter) AsTableMetadataParams(connURI string, md host.ObjectMetadata) protocol.TableMetadataParams {
	return protocol.TableMetadataParams{
		OwnerURI:   connURI,
		Schema:     md.Schema,
		ObjectName: md.Name,
	}
}

// AsScriptingParams builds scripting/script parameters for a single object.
// Delete operations script a drop, Select a select and everything else a
// create; the result is always schema only and sent to the editor.
func (c *CodeConverter) AsScriptingParams(connURI string, op protocol.ScriptOperation, md host.ObjectMetadata, details *host.ScriptingParamDetails) protocol.ScriptingParams {
	var d host.ScriptingParamDetails
	if details != nil {
		d = *details
	}

	createDrop := "ScriptCreate"
	switch op {
	case protocol.ScriptOperationDelete:
		createDrop = "ScriptDrop"
	case protocol.ScriptOperationSelect:
		createDrop = "ScriptSelect"
	}

	return protocol.ScriptingParams{
		FilePath:          d.FilePath,
		ScriptDestination: ScriptDestinationEditor,
		ScriptingObjects: []protocol.ScriptingObject{{
			Type:   md.MetadataTypeName,
			Schema: md.Schema,
			Name:   md.Name,
		}},
		ScriptOptions: protocol.ScriptOptions{
			ScriptCreateDrop:            createDrop,
			TypeOfDataToScript:          "SchemaOnly",
			ScriptStatistics:            "ScriptStatsNone",
			TargetDatabaseEngineEdition: orDefault(d.TargetDatabaseEngineEdition, DefaultTargetDatabaseEngineEdition),
			TargetDatabaseEngineType:    orDefault(d.TargetDatabaseEngineType, DefaultTargetDatabaseEngineType),
			ScriptCompatibilityOption:   orDefault(d.ScriptCompatibilityOption, DefaultScriptCompatibilityOption),
		},
		OwnerURI:  connURI,
		Operation: op,
	}
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// AsConnectionDetail wraps connection options.
func (c *CodeConverter) AsConnectionDetail(info host.ConnectionInfo) protocol.ConnectionDetails {
	return protocol.ConnectionDetails{Options: info.Options}
}

// AsExpandInfo builds objectexplorer/expand and refresh parameters.
func (c *CodeConverter) AsExpandInfo(info host.ExpandNodeInfo) protocol.ExpandParams {
	return protocol.ExpandParams{SessionID: info.SessionID, NodePath: info.NodePath}
}

// AsCloseSessionInfo builds objectexplorer/closesession parameters.
func (c *CodeConverter) AsCloseSessionInfo(info host.ObjectExplorerCloseSessionInfo) protocol.CloseSessionParams {
	return protocol.CloseSessionParams{SessionID: info.SessionID}
}

// AsExecutionPlanOptions maps plan display flags. Nil options yield an
// empty object.
func (c *CodeConverter) AsExecutionPlanOptions(opts *host.ExecutionPlanOptions) *protocol.ExecutionPlanOptions {
	out := &protocol.ExecutionPlanOptions{}
	if opts != nil {
		out.IncludeEstimatedExecutionPlanXML = opts.DisplayEstimatedQueryPlan
		out.IncludeActualExecutionPlanXML = opts.DisplayActualQueryPlan
	}
	return out
}

// AsListTasksParams builds tasks/listtasks parameters.
func (c *CodeConverter) AsListTasksParams(listActiveTasksOnly bool) protocol.ListTasksParams {
	return protocol.ListTasksParams{ListActiveTasksOnly: listActiveTasksOnly}
}

// AsCancelTaskParams builds tasks/canceltask parameters.
func (c *CodeConverter) AsCancelTaskParams(taskID string) protocol.CancelTaskParams {
	return protocol.CancelTaskParams{TaskID: taskID}
}

// AsRestoreParams builds the restore request parameters.
func (c *CodeConverter) AsRestoreParams(ownerURI string, info host.RestoreInfo) protocol.RestoreParams {
	return protocol.RestoreParams{
		OwnerURI:          ownerURI,
		Options:           info.Options,
		TaskExecutionMode: info.TaskExecutionMode,
	}
}

// AsRestoreConfigInfoParams builds disasterrecovery/restoreconfiginfo parameters.
func (c *CodeConverter) AsRestoreConfigInfoParams(ownerURI string) protocol.RestoreConfigInfoRequestParams {
	return protocol.RestoreConfigInfoRequestParams{OwnerURI: ownerURI}
}
