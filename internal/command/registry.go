package command

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/glasspane/shellhost/internal/infrastructure/monitoring"
	"github.com/glasspane/shellhost/internal/shared/types"
)

// Provider interface for command handler implementations
type Provider interface {
	Definition() types.Manifest
	Execute(ctx context.Context, command string, params map[string]interface{}, ictx *types.InvokeContext) (*types.Result, error)
}

// Registry manages command registration and dispatch
type Registry struct {
	mu        sync.RWMutex
	providers map[string]Provider       // provider ID -> provider
	commands  map[string]Provider       // command name -> owning provider
	specs     map[string]types.Command  // command name -> declaration
	metrics   *monitoring.Metrics
}

// NewRegistry creates a new command registry
func NewRegistry() *Registry {
	return &Registry{
		providers: make(map[string]Provider),
		commands:  make(map[string]Provider),
		specs:     make(map[string]types.Command),
	}
}

// WithMetrics adds dispatch metrics to the registry
func (r *Registry) WithMetrics(metrics *monitoring.Metrics) *Registry {
	r.metrics = metrics
	return r
}

// Register adds a command provider. Command names are a flat namespace;
// collisions with already-registered commands are an error.
func (r *Registry) Register(provider Provider) error {
	def := provider.Definition()
	if def.ID == "" {
		return fmt.Errorf("provider ID cannot be empty")
	}
	if len(def.Commands) == 0 {
		return fmt.Errorf("provider %s declares no commands", def.ID)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.providers[def.ID]; exists {
		return fmt.Errorf("provider already registered: %s", def.ID)
	}
	for _, cmd := range def.Commands {
		if cmd.Name == "" {
			return fmt.Errorf("provider %s declares an unnamed command", def.ID)
		}
		if _, taken := r.commands[cmd.Name]; taken {
			return fmt.Errorf("command already registered: %s", cmd.Name)
		}
	}

	r.providers[def.ID] = provider
	for _, cmd := range def.Commands {
		r.commands[cmd.Name] = provider
		r.specs[cmd.Name] = cmd
	}
	return nil
}

// Unregister removes a provider and all its commands
func (r *Registry) Unregister(providerID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	provider, ok := r.providers[providerID]
	if !ok {
		return
	}
	delete(r.providers, providerID)
	for _, cmd := range provider.Definition().Commands {
		delete(r.commands, cmd.Name)
		delete(r.specs, cmd.Name)
	}
}

// Resolve returns the provider owning a command
func (r *Registry) Resolve(command string) (Provider, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	provider, ok := r.commands[command]
	return provider, ok
}

// List returns all registered manifests, optionally filtered by category,
// sorted by provider ID
func (r *Registry) List(category *types.Category) []types.Manifest {
	r.mu.RLock()
	defer r.mu.RUnlock()

	manifests := make([]types.Manifest, 0, len(r.providers))
	for _, provider := range r.providers {
		def := provider.Definition()
		if category == nil || def.Category == *category {
			manifests = append(manifests, def)
		}
	}
	sort.Slice(manifests, func(i, j int) bool {
		return manifests[i].ID < manifests[j].ID
	})
	return manifests
}

// Dispatch validates and executes a command invocation. Unknown commands
// and missing required parameters produce a failure result, not a panic.
func (r *Registry) Dispatch(ctx context.Context, command string, params map[string]interface{}, ictx *types.InvokeContext) (*types.Result, error) {
	r.mu.RLock()
	provider, ok := r.commands[command]
	spec := r.specs[command]
	r.mu.RUnlock()

	if !ok {
		return failure(fmt.Sprintf("unknown command: %s", command)), fmt.Errorf("unknown command: %s", command)
	}

	if err := checkRequired(spec, params); err != nil {
		if r.metrics != nil {
			r.metrics.RecordCommandCall(command, "invalid", 0)
		}
		return failure(err.Error()), nil
	}

	var timer *monitoring.Timer
	if r.metrics != nil {
		timer = monitoring.NewTimer(r.metrics, command)
	}

	result, err := provider.Execute(ctx, command, params, ictx)

	if timer != nil {
		status := "ok"
		if err != nil || result == nil || !result.Success {
			status = "error"
		}
		timer.Stop(status)
	}

	if err != nil {
		return failure(err.Error()), err
	}
	if result == nil {
		return failure("command returned no result"), fmt.Errorf("command %s returned no result", command)
	}
	return result, nil
}

// Stats returns registry statistics
func (r *Registry) Stats() map[string]interface{} {
	r.mu.RLock()
	defer r.mu.RUnlock()

	categories := make(map[string]int)
	for _, provider := range r.providers {
		categories[string(provider.Definition().Category)]++
	}

	return map[string]interface{}{
		"total_providers": len(r.providers),
		"total_commands":  len(r.commands),
		"categories":      categories,
	}
}

func checkRequired(spec types.Command, params map[string]interface{}) error {
	for _, p := range spec.Parameters {
		if !p.Required {
			continue
		}
		if params == nil {
			return fmt.Errorf("missing required parameter: %s", p.Name)
		}
		if _, present := params[p.Name]; !present {
			return fmt.Errorf("missing required parameter: %s", p.Name)
		}
	}
	return nil
}

func failure(message string) *types.Result {
	return &types.Result{Success: false, Error: &message}
}
