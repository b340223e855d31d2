package protocol

// MetadataType classifies a database object.
type MetadataType int

const (
	MetadataTypeTable    MetadataType = 0
	MetadataTypeView     MetadataType = 1
	MetadataTypeSProc    MetadataType = 2
	MetadataTypeFunction MetadataType = 3
)

// ObjectMetadata describes a database object.
type ObjectMetadata struct {
	MetadataType     MetadataType `json:"metadataType"`
	MetadataTypeName string       `json:"metadataTypeName"`
	URN              string       `json:"urn"`
	Name             string       `json:"name"`
	Schema           string       `json:"schema"`
}

// MetadataQueryParams are the parameters of metadata/list.
type MetadataQueryParams struct {
	OwnerURI string `json:"ownerUri"`
}

// MetadataQueryResult is the result of metadata/list.
type MetadataQueryResult struct {
	Metadata []ObjectMetadata `json:"metadata"`
}

// TableMetadataParams are the parameters of metadata/table and metadata/view.
type TableMetadataParams struct {
	OwnerURI   string `json:"ownerUri"`
	Schema     string `json:"schema"`
	ObjectName string `json:"objectName"`
}

// ColumnMetadata describes a column of a table or view.
type ColumnMetadata struct {
	HasExtendedProperties     bool   `json:"hasExtendedProperties"`
	DefaultValue              string `json:"defaultValue"`
	EscapedName               string `json:"escapedName"`
	IsComputed                bool   `json:"isComputed"`
	IsDeterministic           bool   `json:"isDeterministic"`
	IsIdentity                bool   `json:"isIdentity"`
	Ordinal                   int    `json:"ordinal"`
	IsCalculated              bool   `json:"isCalculated"`
	IsKey                     bool   `json:"isKey"`
	IsTrustworthyForUniqueness bool  `json:"isTrustworthyForUniqueness"`
}

// TableMetadataResult is the result of metadata/table and metadata/view.
type TableMetadataResult struct {
	Columns []ColumnMetadata `json:"columns"`
}

// --- Scripting ---

// ScriptOperation selects what kind of script to generate.
type ScriptOperation int

const (
	ScriptOperationSelect  ScriptOperation = 0
	ScriptOperationCreate  ScriptOperation = 1
	ScriptOperationInsert  ScriptOperation = 2
	ScriptOperationUpdate  ScriptOperation = 3
	ScriptOperationDelete  ScriptOperation = 4
	ScriptOperationExecute ScriptOperation = 5
	ScriptOperationAlter   ScriptOperation = 6
)

// ScriptOptions control script generation. Unset booleans are omitted.
type ScriptOptions struct {
	ScriptANSIPadding                 *bool  `json:"scriptANSIPadding,omitempty"`
	AppendToFile                      *bool  `json:"appendToFile,omitempty"`
	ContinueScriptingOnError          *bool  `json:"continueScriptingOnError,omitempty"`
	ConvertUDDTToBaseType             *bool  `json:"convertUDDTToBaseType,omitempty"`
	GenerateScriptForDependentObjects *bool  `json:"generateScriptForDependentObjects,omitempty"`
	IncludeDescriptiveHeaders         *bool  `json:"includeDescriptiveHeaders,omitempty"`
	IncludeIfNotExists                *bool  `json:"includeIfNotExists,omitempty"`
	IncludeVarDecimal                 *bool  `json:"includeVarDecimal,omitempty"`
	ScriptDRIIncludeSystemNames       *bool  `json:"scriptDRIIncludeSystemNames,omitempty"`
	IncludeUnsupportedStatements      *bool  `json:"includeUnsupportedStatements,omitempty"`
	SchemaQualify                     *bool  `json:"schemaQualify,omitempty"`
	Bindings                          *bool  `json:"bindings,omitempty"`
	Collation                         *bool  `json:"collation,omitempty"`
	Default                           *bool  `json:"default,omitempty"`
	ScriptCreateDrop                  string `json:"scriptCreateDrop"`
	ScriptExtendedProperties          *bool  `json:"scriptExtendedProperties,omitempty"`
	ScriptCompatibilityOption         string `json:"scriptCompatibilityOption"`
	TargetDatabaseEngineType          string `json:"targetDatabaseEngineType"`
	TargetDatabaseEngineEdition       string `json:"targetDatabaseEngineEdition"`
	ScriptLogins                      *bool  `json:"scriptLogins,omitempty"`
	ScriptObjectLevelPermissions      *bool  `json:"scriptObjectLevelPermissions,omitempty"`
	ScriptOwner                       *bool  `json:"scriptOwner,omitempty"`
	ScriptStatistics                  string `json:"scriptStatistics"`
	ScriptUseDatabase                 *bool  `json:"scripUseDatabase,omitempty"`
	TypeOfDataToScript                string `json:"typeOfDataToScript"`
	ScriptChangeTracking              *bool  `json:"scriptChangeTracking,omitempty"`
	ScriptCheckConstraints            *bool  `json:"scriptCheckConstraints,omitempty"`
	ScriptDataCompressionOptions      *bool  `json:"scriptDataCompressionOptions,omitempty"`
	ScriptForeignKeys                 *bool  `json:"scriptForeignKeys,omitempty"`
	ScriptFullTextIndexes             *bool  `json:"scriptFullTextIndexes,omitempty"`
	ScriptIndexes                     *bool  `json:"scriptIndexes,omitempty"`
	ScriptPrimaryKeys                 *bool  `json:"scriptPrimaryKeys,omitempty"`
	ScriptTriggers                    *bool  `json:"scriptTriggers,omitempty"`
	UniqueKeys                        *bool  `json:"uniqueKeys,omitempty"`
}

// ScriptingObject names a database object to script.
type ScriptingObject struct {
	Type   string `json:"type"`
	Schema string `json:"schema"`
	Name   string `json:"name"`
}

// ScriptingParams are the parameters of scripting/script.
type ScriptingParams struct {
	FilePath              string             `json:"filePath,omitempty"`
	ScriptDestination     string             `json:"scriptDestination"`
	ConnectionString      string             `json:"connectionString,omitempty"`
	ScriptingObjects      []ScriptingObject  `json:"scriptingObjects"`
	IncludeObjectCriteria []ScriptingObject  `json:"includeObjectCriteria,omitempty"`
	ExcludeObjectCriteria []ScriptingObject  `json:"excludeObjectCriteria,omitempty"`
	IncludeSchemas        []string           `json:"includeSchemas,omitempty"`
	ExcludeSchemas        []string           `json:"excludeSchemas,omitempty"`
	IncludeTypes          []string           `json:"includeTypes,omitempty"`
	ExcludeTypes          []string           `json:"excludeTypes,omitempty"`
	ScriptOptions         ScriptOptions      `json:"scriptOptions"`
	ConnectionDetails     *ConnectionDetails `json:"connectionDetails,omitempty"`
	OwnerURI              string             `json:"ownerURI"`
	SelectScript          bool               `json:"selectScript,omitempty"`
	Operation             ScriptOperation    `json:"operation"`
}

// ScriptingResult is the result of scripting/script.
type ScriptingResult struct {
	OperationID string `json:"operationId"`
	Script      string `json:"script"`
}

// ScriptingCompleteParams are sent with scripting/scriptComplete.
type ScriptingCompleteParams struct {
	OperationID  string `json:"operationId,omitempty"`
	ErrorDetails string `json:"errorDetails"`
	ErrorMessage string `json:"errorMessage"`
	HasError     bool   `json:"hasError"`
	Canceled     bool   `json:"canceled"`
	Success      bool   `json:"success"`
}
