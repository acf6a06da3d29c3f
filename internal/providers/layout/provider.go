// Package layout exposes window-layout persistence as frontend commands.
package layout

import (
	"context"
	"fmt"

	"github.com/glasspane/shellhost/internal/session"
	"github.com/glasspane/shellhost/internal/shared/types"
)

// Provider implements layout persistence commands
type Provider struct {
	sessions *session.Manager
}

// NewProvider creates a layout provider backed by the session manager
func NewProvider(sessions *session.Manager) *Provider {
	return &Provider{sessions: sessions}
}

// Definition returns provider metadata
func (p *Provider) Definition() types.Manifest {
	return types.Manifest{
		ID:          "layout",
		Name:        "Layout Service",
		Description: "Window layout persistence and restoration",
		Category:    types.CategorySession,
		Capabilities: []string{
			"save",
			"restore",
			"list",
		},
		Commands: []types.Command{
			{
				Name:        "save_window_state",
				Description: "Save the current window arrangement as a named layout",
				Parameters: []types.Parameter{
					{Name: "name", Type: "string", Description: "Layout name", Required: true},
					{Name: "description", Type: "string", Description: "Layout description", Required: false},
				},
				Returns: "object",
			},
			{
				Name:        "restore_window_state",
				Description: "Restore a previously saved layout",
				Parameters: []types.Parameter{
					{Name: "layout_id", Type: "string", Description: "Layout ID to restore", Required: true},
				},
				Returns: "object",
			},
			{
				Name:        "list_layouts",
				Description: "List saved layouts",
				Parameters:  []types.Parameter{},
				Returns:     "array",
			},
			{
				Name:        "delete_layout",
				Description: "Delete a saved layout",
				Parameters: []types.Parameter{
					{Name: "layout_id", Type: "string", Description: "Layout ID to delete", Required: true},
				},
				Returns: "boolean",
			},
		},
	}
}

// Execute runs a layout command
func (p *Provider) Execute(ctx context.Context, command string, params map[string]interface{}, ictx *types.InvokeContext) (*types.Result, error) {
	switch command {
	case "save_window_state":
		return p.save(params)
	case "restore_window_state":
		return p.restore(params)
	case "list_layouts":
		return p.list()
	case "delete_layout":
		return p.delete(params)
	default:
		return failure(fmt.Sprintf("unknown command: %s", command))
	}
}

func (p *Provider) save(params map[string]interface{}) (*types.Result, error) {
	name, ok := params["name"].(string)
	if !ok || name == "" {
		return failure("name required")
	}

	description, _ := params["description"].(string)

	layout, err := p.sessions.Save(name, description)
	if err != nil {
		return failure(fmt.Sprintf("failed to save layout: %v", err))
	}

	return success(map[string]interface{}{"layout": layout})
}

func (p *Provider) restore(params map[string]interface{}) (*types.Result, error) {
	layoutID, ok := params["layout_id"].(string)
	if !ok || layoutID == "" {
		return failure("layout_id required")
	}

	layout, err := p.sessions.Restore(layoutID)
	if err != nil {
		return failure(fmt.Sprintf("failed to restore layout: %v", err))
	}

	return success(map[string]interface{}{"layout": layout})
}

func (p *Provider) list() (*types.Result, error) {
	layouts := p.sessions.List()
	return success(map[string]interface{}{
		"layouts": layouts,
		"stats":   p.sessions.Stats(),
	})
}

func (p *Provider) delete(params map[string]interface{}) (*types.Result, error) {
	layoutID, ok := params["layout_id"].(string)
	if !ok || layoutID == "" {
		return failure("layout_id required")
	}

	if err := p.sessions.Delete(layoutID); err != nil {
		return failure(fmt.Sprintf("failed to delete layout: %v", err))
	}

	return success(map[string]interface{}{"deleted": true})
}

func success(data map[string]interface{}) (*types.Result, error) {
	return &types.Result{Success: true, Data: data}, nil
}

func failure(message string) (*types.Result, error) {
	msg := message
	return &types.Result{Success: false, Error: &msg}, nil
}
