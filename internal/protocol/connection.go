package protocol

// ConnectionDetails holds provider-specific connection options keyed by option name.
type ConnectionDetails struct {
	Options map[string]any `json:"options"`
}

// ConnectParams are the parameters of connection/connect.
type ConnectParams struct {
	OwnerURI   string            `json:"ownerUri"`
	Connection ConnectionDetails `json:"connection"`
}

// ConnectionSummary identifies a connection's server, database and user.
type ConnectionSummary struct {
	ServerName   string `json:"serverName"`
	DatabaseName string `json:"databaseName"`
	UserName     string `json:"userName"`
}

// ServerInfo describes the connected server.
type ServerInfo struct {
	ServerMajorVersion   int    `json:"serverMajorVersion"`
	ServerMinorVersion   int    `json:"serverMinorVersion"`
	ServerReleaseVersion int    `json:"serverReleaseVersion"`
	EngineEditionID      int    `json:"engineEditionId"`
	ServerVersion        string `json:"serverVersion"`
	ServerLevel          string `json:"serverLevel"`
	ServerEdition        string `json:"serverEdition"`
	IsCloud              bool   `json:"isCloud"`
	AzureVersion         int    `json:"azureVersion"`
	OSVersion            string `json:"osVersion"`
}

// ConnectionCompleteParams are sent with connection/complete.
type ConnectionCompleteParams struct {
	OwnerURI          string             `json:"ownerUri"`
	ConnectionID      string             `json:"connectionId"`
	Messages          string             `json:"messages"`
	ErrorMessage      string             `json:"errorMessage"`
	ErrorNumber       int                `json:"errorNumber"`
	ServerInfo        *ServerInfo        `json:"serverInfo"`
	ConnectionSummary *ConnectionSummary `json:"connectionSummary"`
}

// ConnectionChangedParams are sent with connection/connectionchanged.
type ConnectionChangedParams struct {
	OwnerURI   string            `json:"ownerUri"`
	Connection ConnectionSummary `json:"connection"`
}

// DisconnectParams are the parameters of connection/disconnect.
type DisconnectParams struct {
	OwnerURI string `json:"ownerUri"`
}

// CancelConnectParams are the parameters of connection/cancelconnect.
type CancelConnectParams struct {
	OwnerURI string `json:"ownerUri"`
}

// ChangeDatabaseParams are the parameters of connection/changedatabase.
type ChangeDatabaseParams struct {
	OwnerURI    string `json:"ownerUri"`
	NewDatabase string `json:"newDatabase"`
}

// ListDatabasesParams are the parameters of connection/listdatabases.
type ListDatabasesParams struct {
	OwnerURI string `json:"ownerUri"`
}

// ListDatabasesResult is the result of connection/listdatabases.
type ListDatabasesResult struct {
	DatabaseNames []string `json:"databaseNames"`
}

// DidChangeLanguageFlavorParams announce the language flavor of a document.
type DidChangeLanguageFlavorParams struct {
	URI      string `json:"uri"`
	Language string `json:"language"`
	Flavor   string `json:"flavor"`
}

// RebuildIntelliSenseParams are the parameters of textDocument/rebuildIntelliSense.
type RebuildIntelliSenseParams struct {
	OwnerURI string `json:"ownerUri"`
}

// IntelliSenseReadyParams are sent with textDocument/intelliSenseReady.
type IntelliSenseReadyParams struct {
	OwnerURI string `json:"ownerUri"`
}

// --- Capabilities discovery ---

// CapabilitiesDiscoveryParams are the parameters of capabilities/list.
type CapabilitiesDiscoveryParams struct {
	HostName    string `json:"hostName"`
	HostVersion string `json:"hostVersion"`
}

// CapabilitiesDiscoveryResult is the result of capabilities/list.
type CapabilitiesDiscoveryResult struct {
	Capabilities *DataProtocolServerCapabilities `json:"capabilities"`
}

// CategoryValue is an allowed value of a category option.
type CategoryValue struct {
	DisplayName string `json:"displayName"`
	Name        string `json:"name"`
}

// ServiceOption describes an option a service understands.
type ServiceOption struct {
	Name           string          `json:"name"`
	DisplayName    string          `json:"displayName"`
	Description    string          `json:"description"`
	GroupName      string          `json:"groupName"`
	ValueType      string          `json:"valueType"`
	DefaultValue   string          `json:"defaultValue"`
	ObjectType     string          `json:"objectType"`
	CategoryValues []CategoryValue `json:"categoryValues"`
	IsRequired     bool            `json:"isRequired"`
	IsArray        bool            `json:"isArray"`
}

// ConnectionOption describes a connection option.
type ConnectionOption struct {
	ServiceOption
	SpecialValueType string `json:"specialValueType"`
	IsIdentity       bool   `json:"isIdentity"`
}

// ConnectionProviderOptions lists the connection options of a provider.
type ConnectionProviderOptions struct {
	Options []ConnectionOption `json:"options"`
}

// AdminServicesProviderOptions lists the administration options of a provider.
type AdminServicesProviderOptions struct {
	DatabaseInfoOptions     []ServiceOption `json:"databaseInfoOptions"`
	DatabaseFileInfoOptions []ServiceOption `json:"databaseFileInfoOptions"`
	FileGroupInfoOptions    []ServiceOption `json:"fileGroupInfoOptions"`
}

// FeatureMetadataProvider describes an optional provider feature.
type FeatureMetadataProvider struct {
	Enabled         bool            `json:"enabled"`
	FeatureName     string          `json:"featureName"`
	OptionsMetadata []ServiceOption `json:"optionsMetadata"`
}

// DataProtocolServerCapabilities describes what a provider supports.
type DataProtocolServerCapabilities struct {
	ProtocolVersion       string                        `json:"protocolVersion"`
	ProviderName          string                        `json:"providerName"`
	ProviderDisplayName   string                        `json:"providerDisplayName"`
	ConnectionProvider    *ConnectionProviderOptions    `json:"connectionProvider"`
	AdminServicesProvider *AdminServicesProviderOptions `json:"adminServicesProvider"`
	Features              []FeatureMetadataProvider     `json:"features"`
}
