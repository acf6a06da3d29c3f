// Package shell implements the application-level commands: greeting,
// host information, and the frontend-visible log buffer.
package shell

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/glasspane/shellhost/internal/shared/types"
)

// greetingTemplate is the fixed greeting format returned by the greet command
const greetingTemplate = "Hello, %s! You've been greeted from Go!"

// Provider implements shell-level commands
type Provider struct {
	startTime time.Time
	logs      *CircularLogBuffer
}

// CircularLogBuffer is a thread-safe circular buffer for log entries
type CircularLogBuffer struct {
	entries []*LogEntry
	head    int
	size    int
	maxSize int
	mu      sync.RWMutex
}

// LogEntry represents a frontend-visible log entry
type LogEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"`
	Message   string    `json:"message"`
	Window    string    `json:"window,omitempty"`
}

// NewProvider creates a shell provider
func NewProvider() *Provider {
	return &Provider{
		startTime: time.Now(),
		logs:      NewCircularLogBuffer(1000),
	}
}

// NewCircularLogBuffer creates a new circular buffer for logs
func NewCircularLogBuffer(maxSize int) *CircularLogBuffer {
	return &CircularLogBuffer{
		entries: make([]*LogEntry, maxSize),
		maxSize: maxSize,
	}
}

// Add inserts a log entry into the circular buffer
func (cb *CircularLogBuffer) Add(entry *LogEntry) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.entries[cb.head] = entry
	cb.head = (cb.head + 1) % cb.maxSize
	if cb.size < cb.maxSize {
		cb.size++
	}
}

// GetRecent retrieves the most recent N entries, optionally filtered by level
func (cb *CircularLogBuffer) GetRecent(limit int, levelFilter string) []LogEntry {
	cb.mu.RLock()
	defer cb.mu.RUnlock()

	if limit > cb.size {
		limit = cb.size
	}

	result := make([]LogEntry, 0, limit)
	for i := 0; i < cb.size && len(result) < limit; i++ {
		idx := (cb.head - 1 - i + cb.maxSize) % cb.maxSize
		entry := cb.entries[idx]
		if entry != nil {
			if levelFilter == "" || entry.Level == levelFilter {
				result = append(result, *entry)
			}
		}
	}

	return result
}

// Definition returns provider metadata
func (p *Provider) Definition() types.Manifest {
	return types.Manifest{
		ID:          "shell",
		Name:        "Shell Service",
		Description: "Application shell commands and host information",
		Category:    types.CategoryShell,
		Capabilities: []string{
			"greeting",
			"info",
			"logging",
		},
		Commands: []types.Command{
			{
				Name:        "greet",
				Description: "Return a greeting for the given name",
				Parameters: []types.Parameter{
					{Name: "name", Type: "string", Description: "Name to greet", Required: true},
				},
				Returns: "object",
			},
			{
				Name:        "host_info",
				Description: "Get host runtime information",
				Parameters:  []types.Parameter{},
				Returns:     "object",
			},
			{
				Name:        "ping",
				Description: "Test host availability",
				Parameters:  []types.Parameter{},
				Returns:     "object",
			},
			{
				Name:        "log_message",
				Description: "Log a message to the shell log buffer",
				Parameters: []types.Parameter{
					{Name: "message", Type: "string", Description: "Log message", Required: true},
					{Name: "level", Type: "string", Description: "Log level (info/warn/error)", Required: false},
				},
				Returns: "boolean",
			},
			{
				Name:        "get_logs",
				Description: "Retrieve recent shell logs",
				Parameters: []types.Parameter{
					{Name: "limit", Type: "number", Description: "Number of logs to retrieve", Required: false},
					{Name: "level", Type: "string", Description: "Filter by log level", Required: false},
				},
				Returns: "array",
			},
		},
	}
}

// Execute runs a shell command
func (p *Provider) Execute(ctx context.Context, command string, params map[string]interface{}, ictx *types.InvokeContext) (*types.Result, error) {
	switch command {
	case "greet":
		return p.greet(params)
	case "host_info":
		return p.hostInfo()
	case "ping":
		return p.ping()
	case "log_message":
		return p.logMessage(params, ictx)
	case "get_logs":
		return p.getLogs(params)
	default:
		return failure(fmt.Sprintf("unknown command: %s", command))
	}
}

func (p *Provider) greet(params map[string]interface{}) (*types.Result, error) {
	name, ok := params["name"].(string)
	if !ok || name == "" {
		return failure("name required")
	}

	return success(map[string]interface{}{
		"greeting": fmt.Sprintf(greetingTemplate, name),
	})
}

func (p *Provider) hostInfo() (*types.Result, error) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	return success(map[string]interface{}{
		"go_version":     runtime.Version(),
		"os":             runtime.GOOS,
		"arch":           runtime.GOARCH,
		"cpus":           runtime.NumCPU(),
		"goroutines":     runtime.NumGoroutine(),
		"memory_alloc":   m.Alloc / 1024 / 1024,      // MB
		"memory_sys":     m.Sys / 1024 / 1024,        // MB
		"uptime_seconds": time.Since(p.startTime).Seconds(),
	})
}

func (p *Provider) ping() (*types.Result, error) {
	return success(map[string]interface{}{
		"pong":      true,
		"timestamp": time.Now().Unix(),
	})
}

func (p *Provider) logMessage(params map[string]interface{}, ictx *types.InvokeContext) (*types.Result, error) {
	message, ok := params["message"].(string)
	if !ok || message == "" {
		return failure("message required")
	}

	level := "info"
	if l, ok := params["level"].(string); ok && l != "" {
		level = l
	}

	entry := &LogEntry{
		Timestamp: time.Now(),
		Level:     level,
		Message:   message,
	}
	if ictx != nil && ictx.WindowLabel != nil {
		entry.Window = *ictx.WindowLabel
	}

	p.logs.Add(entry)

	return success(map[string]interface{}{"logged": true})
}

func (p *Provider) getLogs(params map[string]interface{}) (*types.Result, error) {
	limit := 100
	if l, ok := params["limit"].(float64); ok && l > 0 {
		limit = int(l)
	}

	levelFilter := ""
	if l, ok := params["level"].(string); ok {
		levelFilter = l
	}

	logs := p.logs.GetRecent(limit, levelFilter)

	return success(map[string]interface{}{
		"logs":  logs,
		"count": len(logs),
	})
}

func success(data map[string]interface{}) (*types.Result, error) {
	return &types.Result{Success: true, Data: data}, nil
}

func failure(message string) (*types.Result, error) {
	msg := message
	return &types.Result{Success: false, Error: &msg}, nil
}
