package convert

import (
	"github.com/dshills/dataprotocol/internal/host"
	"github.com/dshills/dataprotocol/internal/protocol"
)

// Special connection option roles a provider may declare.
var specialValueTypes = map[string]bool{
	"serverName":   true,
	"databaseName": true,
	"authType":     true,
	"userName":     true,
	"password":     true,
	"appName":      true,
}

// AsConnectionSummary converts connection/complete parameters.
func (p *ProtocolConverter) AsConnectionSummary(params protocol.ConnectionCompleteParams) host.ConnectionInfoSummary {
	return host.ConnectionInfoSummary{
		OwnerURI:          params.OwnerURI,
		ConnectionID:      params.ConnectionID,
		Messages:          params.Messages,
		ErrorMessage:      params.ErrorMessage,
		ErrorNumber:       params.ErrorNumber,
		ServerInfo:        params.ServerInfo,
		ConnectionSummary: params.ConnectionSummary,
	}
}

// AsServerCapabilities normalizes a capabilities/list result. Options
// without a display name use their name and unknown special value types
// are dropped.
func (p *ProtocolConverter) AsServerCapabilities(result *protocol.CapabilitiesDiscoveryResult) *host.DataProtocolServerCapabilities {
	if result == nil || result.Capabilities == nil {
		return nil
	}
	src := result.Capabilities
	out := &host.DataProtocolServerCapabilities{
		ProtocolVersion:     src.ProtocolVersion,
		ProviderName:        src.ProviderName,
		ProviderDisplayName: src.ProviderDisplayName,
		Features:            []protocol.FeatureMetadataProvider{},
	}

	if admin := src.AdminServicesProvider; admin != nil {
		out.AdminServicesProvider = &protocol.AdminServicesProviderOptions{
			DatabaseInfoOptions:     buildServiceOptions(admin.DatabaseInfoOptions),
			DatabaseFileInfoOptions: buildServiceOptions(admin.DatabaseFileInfoOptions),
			FileGroupInfoOptions:    buildServiceOptions(admin.FileGroupInfoOptions),
		}
	}

	if conn := src.ConnectionProvider; conn != nil && len(conn.Options) > 0 {
		out.ConnectionProvider = &protocol.ConnectionProviderOptions{
			Options: make([]protocol.ConnectionOption, 0, len(conn.Options)),
		}
		for _, opt := range conn.Options {
			dst := protocol.ConnectionOption{
				ServiceOption: buildServiceOption(opt.ServiceOption),
				IsIdentity:    opt.IsIdentity,
			}
			if specialValueTypes[opt.SpecialValueType] {
				dst.SpecialValueType = opt.SpecialValueType
			}
			out.ConnectionProvider.Options = append(out.ConnectionProvider.Options, dst)
		}
	}

	for _, f := range src.Features {
		out.Features = append(out.Features, protocol.FeatureMetadataProvider{
			Enabled:         f.Enabled,
			FeatureName:     f.FeatureName,
			OptionsMetadata: buildServiceOptions(f.OptionsMetadata),
		})
	}
	return out
}

func buildServiceOptions(src []protocol.ServiceOption) []protocol.ServiceOption {
	out := make([]protocol.ServiceOption, 0, len(src))
	for _, o := range src {
		out = append(out, buildServiceOption(o))
	}
	return out
}

func buildServiceOption(o protocol.ServiceOption) protocol.ServiceOption {
	if o.DisplayName == "" {
		o.DisplayName = o.Name
	}
	return o
}

// AsProviderMetadata converts a metadata/list result, naming each object's
// type when the server left it blank.
func (p *ProtocolConverter) AsProviderMetadata(result *protocol.MetadataQueryResult) *host.ProviderMetadata {
	out := &host.ProviderMetadata{ObjectMetadata: []host.ObjectMetadata{}}
	if result == nil {
		return out
	}
	for _, md := range result.Metadata {
		if md.MetadataTypeName == "" {
			md.MetadataTypeName = metadataTypeName(md.MetadataType)
		}
		out.ObjectMetadata = append(out.ObjectMetadata, md)
	}
	return out
}

func metadataTypeName(t protocol.MetadataType) string {
	switch t {
	case protocol.MetadataTypeView:
		return "View"
	case protocol.MetadataTypeSProc:
		return "StoredProcedure"
	case protocol.MetadataTypeFunction:
		return "Function"
	default:
		return "Table"
	}
}

// AsObjectExplorerSession converts objectexplorer/sessioncreated parameters.
func (p *ProtocolConverter) AsObjectExplorerSession(params protocol.SessionCreatedParameters) host.ObjectExplorerSession {
	return host.ObjectExplorerSession{
		Success:      params.Success,
		SessionID:    params.SessionID,
		RootNode:     params.RootNode,
		ErrorMessage: params.ErrorMessage,
	}
}

// AsObjectExplorerCreateSessionResponse converts a createsession result.
func (p *ProtocolConverter) AsObjectExplorerCreateSessionResponse(resp *protocol.CreateSessionResponse) *host.ObjectExplorerSessionResponse {
	if resp == nil {
		return nil
	}
	return &host.ObjectExplorerSessionResponse{SessionID: resp.SessionID}
}

// AsObjectExplorerNodeInfo converts objectexplorer/expandCompleted parameters.
func (p *ProtocolConverter) AsObjectExplorerNodeInfo(params protocol.ExpandResponse) host.ObjectExplorerExpandInfo {
	return host.ObjectExplorerExpandInfo{
		SessionID:    params.SessionID,
		NodePath:     params.NodePath,
		Nodes:        params.Nodes,
		ErrorMessage: params.ErrorMessage,
	}
}

// AsObjectExplorerCloseSessionResponse converts a closesession result.
func (p *ProtocolConverter) AsObjectExplorerCloseSessionResponse(resp *protocol.CloseSessionResponse) *host.ObjectExplorerCloseSessionResponse {
	if resp == nil {
		return nil
	}
	return &host.ObjectExplorerCloseSessionResponse{SessionID: resp.SessionID, Success: resp.Success}
}

// AsScriptingResult converts a scripting/script result.
func (p *ProtocolConverter) AsScriptingResult(res *protocol.ScriptingResult) *host.ScriptingResult {
	if res == nil {
		return nil
	}
	return &host.ScriptingResult{OperationID: res.OperationID, Script: res.Script}
}

// AsListTasksResponse converts a tasks/listtasks result.
func (p *ProtocolConverter) AsListTasksResponse(resp *protocol.ListTasksResponse) *host.ListTasksResponse {
	if resp == nil {
		return nil
	}
	return &host.ListTasksResponse{Tasks: resp.Tasks}
}

// AsTaskInfo converts tasks/newtaskcreated parameters.
func (p *ProtocolConverter) AsTaskInfo(info protocol.TaskInfo) host.TaskInfo {
	return info
}

// AsRestorePlanResponse converts a restore plan.
func (p *ProtocolConverter) AsRestorePlanResponse(resp *protocol.RestorePlanResponse) *host.RestorePlanResponse {
	if resp == nil {
		return nil
	}
	out := *resp
	return &out
}

// AsRestoreResponse converts a restore result.
func (p *ProtocolConverter) AsRestoreResponse(resp *protocol.RestoreResponse) *host.RestoreResponse {
	if resp == nil {
		return nil
	}
	out := *resp
	return &out
}

// AsRestoreConfigInfo converts a restoreconfiginfo result.
func (p *ProtocolConverter) AsRestoreConfigInfo(resp *protocol.RestoreConfigInfoResponse) *host.RestoreConfigInfo {
	if resp == nil {
		return nil
	}
	return &host.RestoreConfigInfo{ConfigInfo: resp.ConfigInfo}
}
