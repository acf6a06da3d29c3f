package types

// Category groups command providers by concern
type Category string

const (
	CategoryShell   Category = "shell"
	CategoryWindow  Category = "window"
	CategoryOpener  Category = "opener"
	CategoryUpdater Category = "updater"
	CategorySession Category = "session"
)

// Manifest describes a command provider and the commands it exposes
type Manifest struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Category     Category  `json:"category"`
	Capabilities []string  `json:"capabilities"`
	Commands     []Command `json:"commands"`
}

// Command describes a single invokable command
type Command struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Parameters  []Parameter `json:"parameters"`
	Returns     string      `json:"returns"`
}

// Parameter describes a command parameter
type Parameter struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Required    bool   `json:"required"`
}

// InvokeContext carries the caller's identity into a command handler
type InvokeContext struct {
	WindowLabel  *string `json:"window_label,omitempty"`
	ConnectionID *string `json:"connection_id,omitempty"`
}

// Result is the envelope every command invocation resolves to
type Result struct {
	Success bool                   `json:"success"`
	Data    map[string]interface{} `json:"data,omitempty"`
	Error   *string                `json:"error,omitempty"`
}
