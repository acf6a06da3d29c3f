// Package opener implements commands that hand targets to the operating
// system: URLs to the default browser, paths to their default application,
// and paths revealed in the file manager.
package opener

import (
	"context"
	"fmt"
	"net/url"
	"os"

	"github.com/gabriel-vasile/mimetype"

	"github.com/glasspane/shellhost/internal/shared/types"
)

// Provider implements opener commands
type Provider struct {
	launcher Launcher
}

// NewProvider creates an opener provider using the platform launcher
func NewProvider() *Provider {
	return &Provider{launcher: platformLauncher()}
}

// NewProviderWithLauncher creates an opener provider with a custom launcher,
// used in tests
func NewProviderWithLauncher(launcher Launcher) *Provider {
	return &Provider{launcher: launcher}
}

// Definition returns provider metadata
func (p *Provider) Definition() types.Manifest {
	return types.Manifest{
		ID:          "opener",
		Name:        "Opener Service",
		Description: "Open URLs and paths with the system default handlers",
		Category:    types.CategoryOpener,
		Capabilities: []string{
			"url",
			"path",
			"reveal",
		},
		Commands: []types.Command{
			{
				Name:        "open_url",
				Description: "Open a URL in the default browser",
				Parameters: []types.Parameter{
					{Name: "url", Type: "string", Description: "URL to open", Required: true},
				},
				Returns: "boolean",
			},
			{
				Name:        "open_path",
				Description: "Open a path with its default application",
				Parameters: []types.Parameter{
					{Name: "path", Type: "string", Description: "Filesystem path to open", Required: true},
				},
				Returns: "object",
			},
			{
				Name:        "reveal_path",
				Description: "Reveal a path in the system file manager",
				Parameters: []types.Parameter{
					{Name: "path", Type: "string", Description: "Filesystem path to reveal", Required: true},
				},
				Returns: "boolean",
			},
		},
	}
}

// Execute runs an opener command
func (p *Provider) Execute(ctx context.Context, command string, params map[string]interface{}, ictx *types.InvokeContext) (*types.Result, error) {
	switch command {
	case "open_url":
		return p.openURL(ctx, params)
	case "open_path":
		return p.openPath(ctx, params)
	case "reveal_path":
		return p.revealPath(ctx, params)
	default:
		return failure(fmt.Sprintf("unknown command: %s", command))
	}
}

func (p *Provider) openURL(ctx context.Context, params map[string]interface{}) (*types.Result, error) {
	raw, ok := params["url"].(string)
	if !ok || raw == "" {
		return failure("url required")
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return failure(fmt.Sprintf("invalid url: %v", err))
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return failure(fmt.Sprintf("unsupported url scheme: %s", parsed.Scheme))
	}

	if err := p.launcher.Open(ctx, raw); err != nil {
		return failure(fmt.Sprintf("failed to open url: %v", err))
	}

	return success(map[string]interface{}{"opened": true})
}

func (p *Provider) openPath(ctx context.Context, params map[string]interface{}) (*types.Result, error) {
	path, ok := params["path"].(string)
	if !ok || path == "" {
		return failure("path required")
	}

	info, err := os.Stat(path)
	if err != nil {
		return failure(fmt.Sprintf("path not accessible: %v", err))
	}

	mediaType := "inode/directory"
	if !info.IsDir() {
		if mt, err := mimetype.DetectFile(path); err == nil {
			mediaType = mt.String()
		} else {
			mediaType = "application/octet-stream"
		}
	}

	if err := p.launcher.Open(ctx, path); err != nil {
		return failure(fmt.Sprintf("failed to open path: %v", err))
	}

	return success(map[string]interface{}{
		"opened":     true,
		"media_type": mediaType,
	})
}

func (p *Provider) revealPath(ctx context.Context, params map[string]interface{}) (*types.Result, error) {
	path, ok := params["path"].(string)
	if !ok || path == "" {
		return failure("path required")
	}

	if _, err := os.Stat(path); err != nil {
		return failure(fmt.Sprintf("path not accessible: %v", err))
	}

	if err := p.launcher.Reveal(ctx, path); err != nil {
		return failure(fmt.Sprintf("failed to reveal path: %v", err))
	}

	return success(map[string]interface{}{"revealed": true})
}

func success(data map[string]interface{}) (*types.Result, error) {
	return &types.Result{Success: true, Data: data}, nil
}

func failure(message string) (*types.Result, error) {
	msg := message
	return &types.Result{Success: false, Error: &msg}, nil
}
