// Package updater implements the update-check command: it fetches a JSON
// release manifest from a configured endpoint and compares it against the
// running version.
package updater

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/glasspane/shellhost/internal/shared/types"
)

// Manifest is the release manifest the update endpoint serves
type Manifest struct {
	Version string `json:"version"`
	Notes   string `json:"notes"`
	URL     string `json:"url"`
	PubDate string `json:"pub_date"`
}

// Provider implements the update-check command
type Provider struct {
	endpoint string
	version  string
	client   *resty.Client
}

// NewProvider creates an updater provider. An empty endpoint disables
// checks; invocations then fail with a textual error.
func NewProvider(endpoint, currentVersion string) *Provider {
	client := resty.New().
		SetTimeout(10 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond)

	return &Provider{
		endpoint: endpoint,
		version:  currentVersion,
		client:   client,
	}
}

// Definition returns provider metadata
func (p *Provider) Definition() types.Manifest {
	return types.Manifest{
		ID:          "updater",
		Name:        "Updater Service",
		Description: "Application update manifest checks",
		Category:    types.CategoryUpdater,
		Capabilities: []string{
			"check",
		},
		Commands: []types.Command{
			{
				Name:        "check_update",
				Description: "Check the update endpoint for a newer release",
				Parameters: []types.Parameter{
					{Name: "current_version", Type: "string", Description: "Version to compare against (defaults to the running version)", Required: false},
				},
				Returns: "object",
			},
		},
	}
}

// Execute runs an updater command
func (p *Provider) Execute(ctx context.Context, command string, params map[string]interface{}, ictx *types.InvokeContext) (*types.Result, error) {
	switch command {
	case "check_update":
		return p.checkUpdate(ctx, params)
	default:
		return failure(fmt.Sprintf("unknown command: %s", command))
	}
}

func (p *Provider) checkUpdate(ctx context.Context, params map[string]interface{}) (*types.Result, error) {
	if p.endpoint == "" {
		return failure("updater not configured")
	}

	current := p.version
	if v, ok := params["current_version"].(string); ok && v != "" {
		current = v
	}

	var manifest Manifest
	resp, err := p.client.R().
		SetContext(ctx).
		SetResult(&manifest).
		Get(p.endpoint)
	if err != nil {
		return failure(fmt.Sprintf("update check failed: %v", err))
	}
	if resp.IsError() {
		return failure(fmt.Sprintf("update endpoint returned %s", resp.Status()))
	}
	if manifest.Version == "" {
		return failure("update manifest is missing a version")
	}

	return success(map[string]interface{}{
		"available": manifest.Version != current,
		"current":   current,
		"version":   manifest.Version,
		"notes":     manifest.Notes,
		"url":       manifest.URL,
	})
}

func success(data map[string]interface{}) (*types.Result, error) {
	return &types.Result{Success: true, Data: data}, nil
}

func failure(message string) (*types.Result, error) {
	msg := message
	return &types.Result{Success: false, Error: &msg}, nil
}
