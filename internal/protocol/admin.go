package protocol

// --- Tasks ---

// TaskStatus is the state of a background task.
type TaskStatus int

const (
	TaskStatusNotStarted           TaskStatus = 0
	TaskStatusInProgress           TaskStatus = 1
	TaskStatusSucceeded            TaskStatus = 2
	TaskStatusSucceededWithWarning TaskStatus = 3
	TaskStatusFailed               TaskStatus = 4
	TaskStatusCanceled             TaskStatus = 5
)

// TaskExecutionMode selects whether a task runs, scripts, or both.
type TaskExecutionMode int

const (
	TaskExecutionModeExecute          TaskExecutionMode = 0
	TaskExecutionModeScript           TaskExecutionMode = 1
	TaskExecutionModeExecuteAndScript TaskExecutionMode = 2
)

// TaskInfo describes a background task.
type TaskInfo struct {
	TaskID            string            `json:"taskId"`
	Status            TaskStatus        `json:"status"`
	TaskExecutionMode TaskExecutionMode `json:"taskExecutionMode"`
	ServerName        string            `json:"serverName"`
	DatabaseName      string            `json:"databaseName"`
	Name              string            `json:"name"`
	Description       string            `json:"description"`
	ProviderName      string            `json:"providerName"`
	IsCancelable      bool              `json:"isCancelable"`
}

// TaskProgressInfo is sent with tasks/statuschanged.
type TaskProgressInfo struct {
	TaskID   string     `json:"taskId"`
	Status   TaskStatus `json:"status"`
	Message  string     `json:"message"`
	Script   string     `json:"script"`
	Duration int        `json:"duration"`
}

// ListTasksParams are the parameters of tasks/listtasks.
type ListTasksParams struct {
	ListActiveTasksOnly bool `json:"listActiveTasksOnly"`
}

// ListTasksResponse is the result of tasks/listtasks.
type ListTasksResponse struct {
	Tasks []TaskInfo `json:"tasks"`
}

// CancelTaskParams are the parameters of tasks/canceltask.
type CancelTaskParams struct {
	TaskID string `json:"taskId"`
}

// --- Administration ---

// DatabaseInfo holds provider-specific database options.
type DatabaseInfo struct {
	Options map[string]any `json:"options"`
}

// LoginInfo describes a login to create.
type LoginInfo struct {
	Name string `json:"name"`
}

// CreateDatabaseParams are the parameters of admin/createdatabase.
type CreateDatabaseParams struct {
	OwnerURI     string       `json:"ownerUri"`
	DatabaseInfo DatabaseInfo `json:"databaseInfo"`
}

// CreateDatabaseResponse is the result of admin/createdatabase.
type CreateDatabaseResponse struct {
	Result bool `json:"result"`
	TaskID int  `json:"taskId"`
}

// DefaultDatabaseInfoParams identify the connection whose defaults are wanted.
type DefaultDatabaseInfoParams struct {
	OwnerURI string `json:"ownerUri"`
}

// DefaultDatabaseInfoResponse is the result of admin/defaultdatabaseinfo.
type DefaultDatabaseInfoResponse struct {
	DefaultDatabaseInfo *DatabaseInfo `json:"defaultDatabaseInfo"`
}

// GetDatabaseInfoParams are the parameters of admin/getdatabaseinfo.
type GetDatabaseInfoParams struct {
	OwnerURI string `json:"ownerUri"`
}

// GetDatabaseInfoResponse is the result of admin/getdatabaseinfo.
type GetDatabaseInfoResponse struct {
	DatabaseInfo *DatabaseInfo `json:"databaseInfo"`
}

// CreateLoginParams are the parameters of admin/createlogin.
type CreateLoginParams struct {
	OwnerURI  string    `json:"ownerUri"`
	LoginInfo LoginInfo `json:"loginInfo"`
}

// CreateLoginResponse is the result of admin/createlogin.
type CreateLoginResponse struct {
	Result bool `json:"result"`
	TaskID int  `json:"taskId"`
}

// --- Disaster recovery ---

// BackupInfo describes a backup to take.
type BackupInfo struct {
	OwnerURI             string            `json:"ownerUri"`
	DatabaseName         string            `json:"databaseName"`
	BackupType           int               `json:"backupType"`
	BackupComponent      int               `json:"backupComponent"`
	BackupDeviceType     int               `json:"backupDeviceType"`
	SelectedFiles        string            `json:"selectedFiles"`
	BackupsetName        string            `json:"backupsetName"`
	SelectedFileGroup    map[string]string `json:"selectedFileGroup"`
	BackupPathDevices    map[string]int    `json:"backupPathDevices"`
	BackupPathList       []string          `json:"backupPathList"`
	IsCopyOnly           bool              `json:"isCopyOnly"`
	FormatMedia          bool              `json:"formatMedia"`
	Initialize           bool              `json:"initialize"`
	SkipTapeHeader       bool              `json:"skipTapeHeader"`
	MediaName            string            `json:"mediaName"`
	MediaDescription     string            `json:"mediaDescription"`
	Checksum             bool              `json:"checksum"`
	ContinueAfterError   bool              `json:"continueAfterError"`
	LogTruncation        bool              `json:"logTruncation"`
	TailLogBackup        bool              `json:"tailLogBackup"`
	RetainDays           int               `json:"retainDays"`
	CompressionOption    int               `json:"compressionOption"`
	VerifyBackupRequired bool              `json:"verifyBackupRequired"`
	EncryptionAlgorithm  int               `json:"encryptionAlgorithm"`
	EncryptorType        int               `json:"encryptorType"`
	EncryptorName        string            `json:"encryptorName"`
}

// BackupParams are the parameters of disasterrecovery/backup.
type BackupParams struct {
	OwnerURI          string            `json:"ownerUri"`
	BackupInfo        BackupInfo        `json:"backupInfo"`
	TaskExecutionMode TaskExecutionMode `json:"taskExecutionMode"`
}

// BackupResponse is the result of disasterrecovery/backup.
type BackupResponse struct {
	Result bool `json:"result"`
	TaskID int  `json:"taskId"`
}

// BackupConfigInfo describes the backup configuration of a database.
type BackupConfigInfo struct {
	RecoveryModel       string         `json:"recoveryModel"`
	DefaultBackupFolder string         `json:"defaultBackupFolder"`
	BackupEncryptors    map[string]any `json:"backupEncryptors"`
}

// BackupConfigInfoResponse is the result of disasterrecovery/backupconfiginfo.
type BackupConfigInfoResponse struct {
	BackupConfigInfo *BackupConfigInfo `json:"backupConfigInfo"`
}

// RestoreParams are the parameters of the restore requests.
type RestoreParams struct {
	OwnerURI          string            `json:"ownerUri"`
	Options           map[string]any    `json:"options"`
	TaskExecutionMode TaskExecutionMode `json:"taskExecutionMode"`
}

// RestoreConfigInfoRequestParams are the parameters of disasterrecovery/restoreconfiginfo.
type RestoreConfigInfoRequestParams struct {
	OwnerURI string `json:"ownerUri"`
}

// RestoreConfigInfoResponse is the result of disasterrecovery/restoreconfiginfo.
type RestoreConfigInfoResponse struct {
	ConfigInfo map[string]any `json:"configInfo"`
}

// RestoreDatabaseFileInfo describes a database file in a backup set.
type RestoreDatabaseFileInfo struct {
	FileType          string `json:"fileType"`
	LogicalFileName   string `json:"logicalFileName"`
	OriginalFileName  string `json:"originalFileName"`
	RestoreAsFileName string `json:"restoreAsFileName"`
}

// LocalizedPropertyInfo is a displayable property.
type LocalizedPropertyInfo struct {
	PropertyName             string `json:"propertyName"`
	PropertyValue            string `json:"propertyValue"`
	PropertyDisplayName      string `json:"propertyDisplayName"`
	PropertyValueDisplayName string `json:"propertyValueDisplayName"`
}

// DatabaseFileInfo describes a backup set.
type DatabaseFileInfo struct {
	Properties []LocalizedPropertyInfo `json:"properties"`
	ID         string                  `json:"id"`
	IsSelected bool                    `json:"isSelected"`
}

// RestorePlanDetailInfo describes one setting of a restore plan.
type RestorePlanDetailInfo struct {
	Name         string `json:"name"`
	CurrentValue any    `json:"currentValue"`
	IsReadOnly   bool   `json:"isReadOnly"`
	IsVisible    bool   `json:"isVisible"`
	DefaultValue any    `json:"defaultValue"`
}

// RestorePlanResponse is the result of disasterrecovery/restoreplan.
type RestorePlanResponse struct {
	SessionID                   string                           `json:"sessionId"`
	BackupSetsToRestore         []DatabaseFileInfo               `json:"backupSetsToRestore"`
	CanRestore                  bool                             `json:"canRestore"`
	ErrorMessage                string                           `json:"errorMessage"`
	DBFiles                     []RestoreDatabaseFileInfo        `json:"dbFiles"`
	DatabaseNamesFromBackupSets []string                         `json:"databaseNamesFromBackupSets"`
	PlanDetails                 map[string]RestorePlanDetailInfo `json:"planDetails"`
}

// RestoreResponse is the result of disasterrecovery/restore.
type RestoreResponse struct {
	Result       bool   `json:"result"`
	TaskID       string `json:"taskId"`
	ErrorMessage string `json:"errorMessage"`
}
