package types

// InvokeRequest represents a command invocation over HTTP
type InvokeRequest struct {
	Command string                 `json:"command" binding:"required"`
	Params  map[string]interface{} `json:"params"`
	Window  *string                `json:"window,omitempty"`
}

// SaveLayoutRequest represents a layout save request
type SaveLayoutRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// WSMessage represents a WebSocket IPC message
type WSMessage struct {
	Type    string                 `json:"type"`
	ID      string                 `json:"id,omitempty"` // Client correlation ID, echoed on replies
	Command string                 `json:"command,omitempty"`
	Params  map[string]interface{} `json:"params,omitempty"`
	Window  *string                `json:"window,omitempty"`
}
