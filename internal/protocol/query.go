package protocol

// SelectionData is a text selection used to pick the query to run.
type SelectionData struct {
	StartLine   int `json:"startLine"`
	StartColumn int `json:"startColumn"`
	EndLine     int `json:"endLine"`
	EndColumn   int `json:"endColumn"`
}

// DbColumn describes a result set column.
type DbColumn struct {
	AllowDBNull               *bool  `json:"allowDBNull,omitempty"`
	BaseCatalogName           string `json:"baseCatalogName"`
	BaseColumnName            string `json:"baseColumnName"`
	BaseSchemaName            string `json:"baseSchemaName"`
	BaseServerName            string `json:"baseServerName"`
	BaseTableName             string `json:"baseTableName"`
	ColumnName                string `json:"columnName"`
	ColumnOrdinal             *int   `json:"columnOrdinal,omitempty"`
	ColumnSize                *int   `json:"columnSize,omitempty"`
	IsAliased                 *bool  `json:"isAliased,omitempty"`
	IsAutoIncrement           *bool  `json:"isAutoIncrement,omitempty"`
	IsExpression              *bool  `json:"isExpression,omitempty"`
	IsHidden                  *bool  `json:"isHidden,omitempty"`
	IsIdentity                *bool  `json:"isIdentity,omitempty"`
	IsKey                     *bool  `json:"isKey,omitempty"`
	IsBytes                   *bool  `json:"isBytes,omitempty"`
	IsChars                   *bool  `json:"isChars,omitempty"`
	IsSQLVariant              *bool  `json:"isSqlVariant,omitempty"`
	IsUDT                     *bool  `json:"isUdt,omitempty"`
	DataType                  string `json:"dataType"`
	IsXML                     *bool  `json:"isXml,omitempty"`
	IsJSON                    *bool  `json:"isJson,omitempty"`
	IsLong                    *bool  `json:"isLong,omitempty"`
	IsReadOnly                *bool  `json:"isReadOnly,omitempty"`
	IsUnique                  *bool  `json:"isUnique,omitempty"`
	NumericPrecision          *int   `json:"numericPrecision,omitempty"`
	NumericScale              *int   `json:"numericScale,omitempty"`
	UDTAssemblyQualifiedName  string `json:"udtAssemblyQualifiedName"`
	DataTypeName              string `json:"dataTypeName"`
}

// DbCellValue is a single cell of a result set.
type DbCellValue struct {
	DisplayValue string `json:"displayValue"`
	IsNull       bool   `json:"isNull"`
}

// ResultSetSummary summarizes a result set of a batch.
type ResultSetSummary struct {
	ID         int        `json:"id"`
	BatchID    int        `json:"batchId"`
	RowCount   int        `json:"rowCount"`
	ColumnInfo []DbColumn `json:"columnInfo"`
}

// BatchSummary summarizes one batch of a query.
type BatchSummary struct {
	HasError           bool               `json:"hasError"`
	ID                 int                `json:"id"`
	Selection          SelectionData      `json:"selection"`
	ResultSetSummaries []ResultSetSummary `json:"resultSetSummaries"`
	ExecutionElapsed   string             `json:"executionElapsed"`
	ExecutionEnd       string             `json:"executionEnd"`
	ExecutionStart     string             `json:"executionStart"`
}

// ResultMessage is a message produced while running a query.
type ResultMessage struct {
	BatchID *int   `json:"batchId,omitempty"`
	IsError bool   `json:"isError"`
	Time    string `json:"time"`
	Message string `json:"message"`
}

// QueryCancelParams are the parameters of query/cancel.
type QueryCancelParams struct {
	OwnerURI string `json:"ownerUri"`
}

// QueryCancelResult is the result of query/cancel.
type QueryCancelResult struct {
	Messages string `json:"messages"`
}

// QueryDisposeParams are the parameters of query/dispose.
type QueryDisposeParams struct {
	OwnerURI string `json:"ownerUri"`
}

// QueryDisposeResult is the (empty) result of query/dispose.
type QueryDisposeResult struct{}

// QueryExecuteCompleteParams are sent with query/complete.
type QueryExecuteCompleteParams struct {
	OwnerURI       string         `json:"ownerUri"`
	BatchSummaries []BatchSummary `json:"batchSummaries"`
}

// QueryExecuteBatchParams are sent with query/batchStart and query/batchComplete.
type QueryExecuteBatchParams struct {
	BatchSummary BatchSummary `json:"batchSummary"`
	OwnerURI     string       `json:"ownerUri"`
}

// QueryExecuteResultSetCompleteParams are sent with query/resultSetComplete.
type QueryExecuteResultSetCompleteParams struct {
	ResultSetSummary ResultSetSummary `json:"resultSetSummary"`
	OwnerURI         string           `json:"ownerUri"`
}

// QueryExecuteMessageParams are sent with query/message.
type QueryExecuteMessageParams struct {
	Message  ResultMessage `json:"message"`
	OwnerURI string        `json:"ownerUri"`
}

// ExecutionPlanOptions request execution plan XML with the results.
type ExecutionPlanOptions struct {
	IncludeEstimatedExecutionPlanXML bool `json:"includeEstimatedExecutionPlanXml,omitempty"`
	IncludeActualExecutionPlanXML    bool `json:"includeActualExecutionPlanXml,omitempty"`
}

// QueryExecuteParams are the parameters of query/executeDocumentSelection.
type QueryExecuteParams struct {
	OwnerURI             string                `json:"ownerUri"`
	QuerySelection       *SelectionData        `json:"querySelection"`
	ExecutionPlanOptions *ExecutionPlanOptions `json:"executionPlanOptions,omitempty"`
}

// QueryExecuteStatementParams are the parameters of query/executedocumentstatement.
type QueryExecuteStatementParams struct {
	OwnerURI string `json:"ownerUri"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
}

// QueryExecuteStringParams are the parameters of query/executeString.
type QueryExecuteStringParams struct {
	Query    string `json:"query"`
	OwnerURI string `json:"ownerUri"`
}

// QueryExecuteResult is the (empty) result of the query execution requests.
type QueryExecuteResult struct{}

// QueryExecuteSubsetParams page through a result set.
type QueryExecuteSubsetParams struct {
	OwnerURI       string `json:"ownerUri"`
	BatchIndex     int    `json:"batchIndex"`
	ResultSetIndex int    `json:"resultSetIndex"`
	RowsStartIndex int    `json:"rowsStartIndex"`
	RowsCount      int    `json:"rowsCount"`
}

// ResultSetSubset is a page of rows.
type ResultSetSubset struct {
	RowCount int             `json:"rowCount"`
	Rows     [][]DbCellValue `json:"rows"`
}

// QueryExecuteSubsetResult is the result of query/subset.
type QueryExecuteSubsetResult struct {
	Message      string          `json:"message"`
	ResultSubset ResultSetSubset `json:"resultSubset"`
}

// SimpleExecuteParams are the parameters of query/simpleexecute.
type SimpleExecuteParams struct {
	QueryString string `json:"queryString"`
	OwnerURI    string `json:"ownerUri"`
}

// SimpleExecuteResult is the result of query/simpleexecute.
type SimpleExecuteResult struct {
	RowCount   int             `json:"rowCount"`
	ColumnInfo []DbColumn      `json:"columnInfo"`
	Rows       [][]DbCellValue `json:"rows"`
}

// SaveResultsRequestParams select the rows to save to a file.
type SaveResultsRequestParams struct {
	OwnerURI         string `json:"ownerUri"`
	FilePath         string `json:"filePath"`
	BatchIndex       int    `json:"batchIndex"`
	ResultSetIndex   int    `json:"resultSetIndex"`
	RowStartIndex    int    `json:"rowStartIndex"`
	RowEndIndex      int    `json:"rowEndIndex"`
	ColumnStartIndex int    `json:"columnStartIndex"`
	ColumnEndIndex   int    `json:"columnEndIndex"`
	IncludeHeaders   *bool  `json:"includeHeaders,omitempty"`
}

// SaveResultRequestResult is the result of the save requests.
type SaveResultRequestResult struct {
	Messages string `json:"messages"`
}

// --- Edit data ---

// EditRowState is the dirty state of an edit row.
type EditRowState int

const (
	EditRowStateClean       EditRowState = 0
	EditRowStateDirtyInsert EditRowState = 1
	EditRowStateDirtyDelete EditRowState = 2
	EditRowStateDirtyUpdate EditRowState = 3
)

// EditCell is a cell of an edit session.
type EditCell struct {
	DbCellValue
	IsDirty bool `json:"isDirty"`
}

// EditRow is a row of an edit session.
type EditRow struct {
	Cells   []DbCellValue `json:"cells"`
	ID      int           `json:"id"`
	IsDirty bool          `json:"isDirty"`
	State   EditRowState  `json:"state"`
}

// EditSessionParams identify an edit session.
type EditSessionParams struct {
	OwnerURI string `json:"ownerUri"`
}

// EditRowParams identify a row of an edit session.
type EditRowParams struct {
	OwnerURI string `json:"ownerUri"`
	RowID    int    `json:"rowId"`
}

// EditCellParams identify a cell of an edit session.
type EditCellParams struct {
	OwnerURI string `json:"ownerUri"`
	RowID    int    `json:"rowId"`
	ColumnID int    `json:"columnId"`
}

// EditUpdateCellParams are the parameters of edit/updateCell.
type EditUpdateCellParams struct {
	OwnerURI string `json:"ownerUri"`
	RowID    int    `json:"rowId"`
	ColumnID int    `json:"columnId"`
	NewValue string `json:"newValue"`
}

// EditInitializeFiltering limits the rows loaded into an edit session.
type EditInitializeFiltering struct {
	LimitResults *int `json:"LimitResults,omitempty"`
}

// EditInitializeParams are the parameters of edit/initialize.
type EditInitializeParams struct {
	OwnerURI   string                  `json:"ownerUri"`
	Filters    EditInitializeFiltering `json:"filters"`
	ObjectName string                  `json:"objectName"`
	SchemaName string                  `json:"schemaName"`
	ObjectType string                  `json:"objectType"`
}

// EditSubsetParams page through the rows of an edit session.
type EditSubsetParams struct {
	OwnerURI      string `json:"ownerUri"`
	RowStartIndex int    `json:"rowStartIndex"`
	RowCount      int    `json:"rowCount"`
}

// EditCellResult is the result of edit/updateCell and edit/revertCell.
type EditCellResult struct {
	Cell       EditCell `json:"cell"`
	IsRowDirty bool     `json:"isRowDirty"`
}

// EditCreateRowResult is the result of edit/createRow.
type EditCreateRowResult struct {
	DefaultValues []string `json:"defaultValues"`
	NewRowID      int      `json:"newRowId"`
}

// EditSubsetResult is the result of edit/subset.
type EditSubsetResult struct {
	RowCount int       `json:"rowCount"`
	Subset   []EditRow `json:"subset"`
}

// EditSessionReadyParams are sent with edit/sessionReady.
type EditSessionReadyParams struct {
	OwnerURI string `json:"ownerUri"`
	Success  bool   `json:"success"`
	Message  string `json:"message"`
}

// Empty results of edit operations.
type (
	EditCommitResult     struct{}
	EditDeleteRowResult  struct{}
	EditDisposeResult    struct{}
	EditInitializeResult struct{}
	EditRevertRowResult  struct{}
)
