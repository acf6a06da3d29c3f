package command

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glasspane/shellhost/internal/shared/types"
)

type fakeProvider struct {
	id       string
	category types.Category
	commands []types.Command
	calls    []string
}

func (f *fakeProvider) Definition() types.Manifest {
	return types.Manifest{
		ID:       f.id,
		Name:     f.id,
		Category: f.category,
		Commands: f.commands,
	}
}

func (f *fakeProvider) Execute(ctx context.Context, command string, params map[string]interface{}, ictx *types.InvokeContext) (*types.Result, error) {
	f.calls = append(f.calls, command)
	return &types.Result{Success: true, Data: map[string]interface{}{"command": command}}, nil
}

func echoProvider(id string, category types.Category, names ...string) *fakeProvider {
	commands := make([]types.Command, 0, len(names))
	for _, name := range names {
		commands = append(commands, types.Command{Name: name, Returns: "object"})
	}
	return &fakeProvider{id: id, category: category, commands: commands}
}

func TestRegister(t *testing.T) {
	t.Run("registers commands in a flat namespace", func(t *testing.T) {
		r := NewRegistry()
		require.NoError(t, r.Register(echoProvider("shell", types.CategoryShell, "greet", "ping")))

		_, ok := r.Resolve("greet")
		assert.True(t, ok)
		_, ok = r.Resolve("ping")
		assert.True(t, ok)
	})

	t.Run("rejects duplicate provider IDs", func(t *testing.T) {
		r := NewRegistry()
		require.NoError(t, r.Register(echoProvider("shell", types.CategoryShell, "greet")))
		assert.Error(t, r.Register(echoProvider("shell", types.CategoryShell, "other")))
	})

	t.Run("rejects command name collisions across providers", func(t *testing.T) {
		r := NewRegistry()
		require.NoError(t, r.Register(echoProvider("shell", types.CategoryShell, "greet")))
		assert.Error(t, r.Register(echoProvider("other", types.CategoryShell, "greet")))
	})

	t.Run("rejects providers without commands", func(t *testing.T) {
		r := NewRegistry()
		assert.Error(t, r.Register(echoProvider("empty", types.CategoryShell)))
	})

	t.Run("rejects empty provider IDs", func(t *testing.T) {
		r := NewRegistry()
		assert.Error(t, r.Register(echoProvider("", types.CategoryShell, "greet")))
	})
}

func TestUnregister(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(echoProvider("shell", types.CategoryShell, "greet", "ping")))

	r.Unregister("shell")

	_, ok := r.Resolve("greet")
	assert.False(t, ok)
	_, ok = r.Resolve("ping")
	assert.False(t, ok)
}

func TestDispatch(t *testing.T) {
	ctx := context.Background()

	t.Run("executes a registered command", func(t *testing.T) {
		r := NewRegistry()
		provider := echoProvider("shell", types.CategoryShell, "greet")
		require.NoError(t, r.Register(provider))

		result, err := r.Dispatch(ctx, "greet", map[string]interface{}{"name": "World"}, nil)
		require.NoError(t, err)
		assert.True(t, result.Success)
		assert.Equal(t, []string{"greet"}, provider.calls)
	})

	t.Run("unknown command yields a failure result and an error", func(t *testing.T) {
		r := NewRegistry()
		result, err := r.Dispatch(ctx, "nonexistent", nil, nil)
		assert.Error(t, err)
		require.NotNil(t, result)
		assert.False(t, result.Success)
		require.NotNil(t, result.Error)
		assert.Contains(t, *result.Error, "unknown command")
	})

	t.Run("missing required parameter yields a failure without an error", func(t *testing.T) {
		r := NewRegistry()
		provider := &fakeProvider{
			id:       "shell",
			category: types.CategoryShell,
			commands: []types.Command{{
				Name: "greet",
				Parameters: []types.Parameter{
					{Name: "name", Type: "string", Required: true},
				},
			}},
		}
		require.NoError(t, r.Register(provider))

		result, err := r.Dispatch(ctx, "greet", map[string]interface{}{}, nil)
		require.NoError(t, err)
		assert.False(t, result.Success)
		require.NotNil(t, result.Error)
		assert.Contains(t, *result.Error, "missing required parameter: name")
		assert.Empty(t, provider.calls, "validation failures must not reach the provider")
	})

	t.Run("nil params with required parameters fails validation", func(t *testing.T) {
		r := NewRegistry()
		provider := &fakeProvider{
			id:       "shell",
			category: types.CategoryShell,
			commands: []types.Command{{
				Name: "greet",
				Parameters: []types.Parameter{
					{Name: "name", Type: "string", Required: true},
				},
			}},
		}
		require.NoError(t, r.Register(provider))

		result, err := r.Dispatch(ctx, "greet", nil, nil)
		require.NoError(t, err)
		assert.False(t, result.Success)
	})
}

func TestList(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(echoProvider("window", types.CategoryWindow, "resize_window")))
	require.NoError(t, r.Register(echoProvider("shell", types.CategoryShell, "greet")))

	t.Run("sorted by provider ID", func(t *testing.T) {
		manifests := r.List(nil)
		require.Len(t, manifests, 2)
		assert.Equal(t, "shell", manifests[0].ID)
		assert.Equal(t, "window", manifests[1].ID)
	})

	t.Run("filters by category", func(t *testing.T) {
		category := types.CategoryWindow
		manifests := r.List(&category)
		require.Len(t, manifests, 1)
		assert.Equal(t, "window", manifests[0].ID)
	})
}

func TestStats(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(echoProvider("shell", types.CategoryShell, "greet", "ping")))
	require.NoError(t, r.Register(echoProvider("window", types.CategoryWindow, "resize_window")))

	stats := r.Stats()
	assert.Equal(t, 2, stats["total_providers"])
	assert.Equal(t, 3, stats["total_commands"])
}
