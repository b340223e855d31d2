package protocol

// NodeInfo is a node of the object explorer tree.
type NodeInfo struct {
	NodePath     string          `json:"nodePath"`
	NodeType     string          `json:"nodeType"`
	NodeSubType  string          `json:"nodeSubType"`
	NodeStatus   string          `json:"nodeStatus"`
	Label        string          `json:"label"`
	IsLeaf       bool            `json:"isLeaf"`
	Metadata     *ObjectMetadata `json:"metadata"`
	ErrorMessage string          `json:"errorMessage"`
}

// CreateSessionResponse is the result of objectexplorer/createsession.
type CreateSessionResponse struct {
	SessionID string `json:"sessionId"`
}

// SessionCreatedParameters are sent with objectexplorer/sessioncreated.
type SessionCreatedParameters struct {
	Success      bool      `json:"success"`
	SessionID    string    `json:"sessionId"`
	RootNode     *NodeInfo `json:"rootNode"`
	ErrorMessage string    `json:"errorMessage"`
}

// ExpandParams are the parameters of objectexplorer/expand and objectexplorer/refresh.
type ExpandParams struct {
	SessionID string `json:"sessionId"`
	NodePath  string `json:"nodePath"`
}

// ExpandResponse is sent with objectexplorer/expandCompleted.
type ExpandResponse struct {
	NodePath     string     `json:"nodePath"`
	SessionID    string     `json:"sessionId"`
	Nodes        []NodeInfo `json:"nodes"`
	ErrorMessage string     `json:"errorMessage"`
}

// CloseSessionParams are the parameters of objectexplorer/closesession.
type CloseSessionParams struct {
	SessionID string `json:"sessionId"`
}

// CloseSessionResponse is the result of objectexplorer/closesession.
type CloseSessionResponse struct {
	Success   bool   `json:"success"`
	SessionID string `json:"sessionId"`
}
