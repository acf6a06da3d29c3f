// Package window exposes the window subsystem as frontend commands.
//
// Handlers default to the "main" window when no label parameter is given,
// mirroring how an invoking webview targets its own window.
package window

import (
	"context"
	"fmt"
	"math"

	"github.com/glasspane/shellhost/internal/shared/types"
	wm "github.com/glasspane/shellhost/internal/window"
)

// DefaultLabel is the window targeted when a command omits the label param
const DefaultLabel = "main"

// Provider implements window management commands
type Provider struct {
	manager *wm.Manager
}

// NewProvider creates a window provider backed by the given manager
func NewProvider(manager *wm.Manager) *Provider {
	return &Provider{manager: manager}
}

// Definition returns provider metadata
func (p *Provider) Definition() types.Manifest {
	labelParam := types.Parameter{Name: "label", Type: "string", Description: "Target window label (defaults to main)", Required: false}

	return types.Manifest{
		ID:          "window",
		Name:        "Window Service",
		Description: "Window geometry, state and focus management",
		Category:    types.CategoryWindow,
		Capabilities: []string{
			"resize",
			"move",
			"state",
			"focus",
		},
		Commands: []types.Command{
			{
				Name:        "resize_window",
				Description: "Resize a window to the given physical pixel dimensions",
				Parameters: []types.Parameter{
					{Name: "width", Type: "number", Description: "Target width in physical pixels", Required: true},
					{Name: "height", Type: "number", Description: "Target height in physical pixels", Required: true},
					labelParam,
				},
				Returns: "object",
			},
			{
				Name:        "move_window",
				Description: "Move a window to the given position",
				Parameters: []types.Parameter{
					{Name: "x", Type: "number", Description: "Target X position", Required: true},
					{Name: "y", Type: "number", Description: "Target Y position", Required: true},
					labelParam,
				},
				Returns: "object",
			},
			{
				Name:        "set_window_title",
				Description: "Set a window's title",
				Parameters: []types.Parameter{
					{Name: "title", Type: "string", Description: "New window title", Required: true},
					labelParam,
				},
				Returns: "object",
			},
			{
				Name:        "minimize_window",
				Description: "Minimize a window",
				Parameters:  []types.Parameter{labelParam},
				Returns:     "object",
			},
			{
				Name:        "maximize_window",
				Description: "Maximize a window",
				Parameters:  []types.Parameter{labelParam},
				Returns:     "object",
			},
			{
				Name:        "restore_window",
				Description: "Restore a window to its normal state",
				Parameters:  []types.Parameter{labelParam},
				Returns:     "object",
			},
			{
				Name:        "fullscreen_window",
				Description: "Enter or leave fullscreen",
				Parameters: []types.Parameter{
					{Name: "enable", Type: "boolean", Description: "Enter fullscreen when true", Required: true},
					labelParam,
				},
				Returns: "object",
			},
			{
				Name:        "focus_window",
				Description: "Bring a window to the foreground",
				Parameters:  []types.Parameter{labelParam},
				Returns:     "object",
			},
			{
				Name:        "close_window",
				Description: "Close a window",
				Parameters:  []types.Parameter{labelParam},
				Returns:     "boolean",
			},
			{
				Name:        "get_window",
				Description: "Get a window's current state",
				Parameters:  []types.Parameter{labelParam},
				Returns:     "object",
			},
			{
				Name:        "list_windows",
				Description: "List all managed windows",
				Parameters:  []types.Parameter{},
				Returns:     "array",
			},
		},
	}
}

// Execute runs a window command
func (p *Provider) Execute(ctx context.Context, command string, params map[string]interface{}, ictx *types.InvokeContext) (*types.Result, error) {
	label := p.targetLabel(params, ictx)

	switch command {
	case "resize_window":
		return p.resize(label, params)
	case "move_window":
		return p.move(label, params)
	case "set_window_title":
		return p.setTitle(label, params)
	case "minimize_window":
		return p.apply(label, p.manager.Minimize)
	case "maximize_window":
		return p.apply(label, p.manager.Maximize)
	case "restore_window":
		return p.apply(label, p.manager.Restore)
	case "fullscreen_window":
		return p.fullscreen(label, params)
	case "focus_window":
		return p.apply(label, p.manager.Focus)
	case "close_window":
		return p.close(label)
	case "get_window":
		return p.get(label)
	case "list_windows":
		return p.list()
	default:
		return failure(fmt.Sprintf("unknown command: %s", command))
	}
}

// resize truncates fractional dimensions toward zero, exactly like a float
// to u32 cast, then delegates to the window subsystem. Subsystem failures
// come back as textual errors in the result envelope.
func (p *Provider) resize(label string, params map[string]interface{}) (*types.Result, error) {
	width, err := dimension(params, "width")
	if err != nil {
		return failure(err.Error())
	}
	height, err := dimension(params, "height")
	if err != nil {
		return failure(err.Error())
	}

	win, err := p.manager.Resize(label, width, height)
	if err != nil {
		return failure(fmt.Sprintf("failed to resize window: %v", err))
	}

	return success(map[string]interface{}{"window": win})
}

func (p *Provider) move(label string, params map[string]interface{}) (*types.Result, error) {
	x, ok := number(params, "x")
	if !ok {
		return failure("x required")
	}
	y, ok := number(params, "y")
	if !ok {
		return failure("y required")
	}

	win, err := p.manager.Move(label, int(x), int(y))
	if err != nil {
		return failure(fmt.Sprintf("failed to move window: %v", err))
	}

	return success(map[string]interface{}{"window": win})
}

func (p *Provider) setTitle(label string, params map[string]interface{}) (*types.Result, error) {
	title, ok := params["title"].(string)
	if !ok || title == "" {
		return failure("title required")
	}

	win, err := p.manager.SetTitle(label, title)
	if err != nil {
		return failure(fmt.Sprintf("failed to set window title: %v", err))
	}

	return success(map[string]interface{}{"window": win})
}

func (p *Provider) fullscreen(label string, params map[string]interface{}) (*types.Result, error) {
	enable, ok := params["enable"].(bool)
	if !ok {
		return failure("enable required")
	}

	win, err := p.manager.SetFullscreen(label, enable)
	if err != nil {
		return failure(fmt.Sprintf("failed to set fullscreen: %v", err))
	}

	return success(map[string]interface{}{"window": win})
}

func (p *Provider) apply(label string, op func(string) (*types.Window, error)) (*types.Result, error) {
	win, err := op(label)
	if err != nil {
		return failure(err.Error())
	}
	return success(map[string]interface{}{"window": win})
}

func (p *Provider) close(label string) (*types.Result, error) {
	if err := p.manager.Close(label); err != nil {
		return failure(fmt.Sprintf("failed to close window: %v", err))
	}
	return success(map[string]interface{}{"closed": true, "label": label})
}

func (p *Provider) get(label string) (*types.Result, error) {
	win, ok := p.manager.GetByLabel(label)
	if !ok {
		return failure(fmt.Sprintf("window not found: %s", label))
	}
	return success(map[string]interface{}{"window": win})
}

func (p *Provider) list() (*types.Result, error) {
	windows := p.manager.List()
	return success(map[string]interface{}{
		"windows": windows,
		"stats":   p.manager.Stats(),
	})
}

// targetLabel resolves the window a command addresses: an explicit label
// param wins, then the invoking connection's window, then main.
func (p *Provider) targetLabel(params map[string]interface{}, ictx *types.InvokeContext) string {
	if label, ok := params["label"].(string); ok && label != "" {
		return label
	}
	if ictx != nil && ictx.WindowLabel != nil && *ictx.WindowLabel != "" {
		return *ictx.WindowLabel
	}
	return DefaultLabel
}

// dimension extracts a non-negative dimension, truncating fractional values
// toward zero and saturating at the uint32 ceiling.
func dimension(params map[string]interface{}, name string) (uint32, error) {
	f, ok := number(params, name)
	if !ok {
		return 0, fmt.Errorf("%s required", name)
	}
	if math.IsNaN(f) {
		return 0, fmt.Errorf("%s is not a number", name)
	}
	if f < 0 {
		return 0, fmt.Errorf("%s cannot be negative", name)
	}
	if f >= math.MaxUint32 {
		return math.MaxUint32, nil
	}
	return uint32(f), nil
}

func number(params map[string]interface{}, name string) (float64, bool) {
	switch v := params[name].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint32:
		return float64(v), true
	default:
		return 0, false
	}
}

func success(data map[string]interface{}) (*types.Result, error) {
	return &types.Result{Success: true, Data: data}, nil
}

func failure(message string) (*types.Result, error) {
	msg := message
	return &types.Result{Success: false, Error: &msg}, nil
}
