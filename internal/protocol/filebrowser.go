package protocol

// FileTreeNode is a node of a remote file tree.
type FileTreeNode struct {
	Children   []FileTreeNode `json:"children"`
	IsExpanded bool           `json:"isExpanded"`
	IsFile     bool           `json:"isFile"`
	Name       string         `json:"name"`
	FullPath   string         `json:"fullPath"`
}

// FileTree is a remote file tree with its selection.
type FileTree struct {
	RootNode     *FileTreeNode `json:"rootNode"`
	SelectedNode *FileTreeNode `json:"selectedNode"`
}

// FileBrowserOpenParams are the parameters of filebrowser/open.
type FileBrowserOpenParams struct {
	OwnerURI     string   `json:"ownerUri"`
	ExpandPath   string   `json:"expandPath"`
	FileFilters  []string `json:"fileFilters"`
	ChangeFilter bool     `json:"changeFilter"`
}

// FileBrowserOpenedParams are sent with filebrowser/opencomplete.
type FileBrowserOpenedParams struct {
	OwnerURI  string    `json:"ownerUri"`
	FileTree  *FileTree `json:"fileTree"`
	Succeeded bool      `json:"succeeded"`
	Message   string    `json:"message"`
}

// FileBrowserExpandParams are the parameters of filebrowser/expand.
type FileBrowserExpandParams struct {
	OwnerURI   string `json:"ownerUri"`
	ExpandPath string `json:"expandPath"`
}

// FileBrowserExpandedParams are sent with filebrowser/expandcomplete.
type FileBrowserExpandedParams struct {
	OwnerURI   string         `json:"ownerUri"`
	ExpandPath string         `json:"expandPath"`
	Children   []FileTreeNode `json:"children"`
	Succeeded  bool           `json:"succeeded"`
	Message    string         `json:"message"`
}

// FileBrowserValidateParams are the parameters of filebrowser/validate.
type FileBrowserValidateParams struct {
	OwnerURI      string   `json:"ownerUri"`
	ServiceType   string   `json:"serviceType"`
	SelectedFiles []string `json:"selectedFiles"`
}

// FileBrowserValidatedParams are sent with filebrowser/validatecomplete.
type FileBrowserValidatedParams struct {
	Succeeded bool   `json:"succeeded"`
	Message   string `json:"message"`
}

// FileBrowserCloseParams are the parameters of filebrowser/close.
type FileBrowserCloseParams struct {
	OwnerURI string `json:"ownerUri"`
}

// FileBrowserCloseResponse is the result of filebrowser/close.
type FileBrowserCloseResponse struct {
	Succeeded bool   `json:"succeeded"`
	Message   string `json:"message"`
}
