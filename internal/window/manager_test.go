package window

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glasspane/shellhost/internal/infrastructure/monitoring"
	"github.com/glasspane/shellhost/internal/shared/types"
)

func mainWindow() Options {
	return Options{
		Label:     "main",
		Title:     "glasspane",
		Width:     800,
		Height:    600,
		Resizable: true,
		Visible:   true,
	}
}

func TestCreate(t *testing.T) {
	t.Run("creates and focuses a visible window", func(t *testing.T) {
		m := NewManager()
		win, err := m.Create(mainWindow())
		require.NoError(t, err)
		assert.Equal(t, "main", win.Label)
		assert.True(t, win.Focused)
		assert.True(t, win.Visible)
		assert.Equal(t, types.WindowNormal, win.State)
		assert.NotEmpty(t, win.ID)
	})

	t.Run("rejects duplicate labels", func(t *testing.T) {
		m := NewManager()
		_, err := m.Create(mainWindow())
		require.NoError(t, err)
		_, err = m.Create(mainWindow())
		assert.Error(t, err)
	})

	t.Run("rejects zero dimensions", func(t *testing.T) {
		m := NewManager()
		opts := mainWindow()
		opts.Width = 0
		_, err := m.Create(opts)
		assert.Error(t, err)
	})

	t.Run("rejects empty label", func(t *testing.T) {
		m := NewManager()
		opts := mainWindow()
		opts.Label = ""
		_, err := m.Create(opts)
		assert.Error(t, err)
	})

	t.Run("clamps initial size to constraints", func(t *testing.T) {
		m := NewManager()
		opts := mainWindow()
		opts.MinSize = &types.Size{Width: 1024, Height: 768}
		win, err := m.Create(opts)
		require.NoError(t, err)
		assert.Equal(t, uint32(1024), win.Size.Width)
		assert.Equal(t, uint32(768), win.Size.Height)
	})
}

func TestResize(t *testing.T) {
	t.Run("resizes a window", func(t *testing.T) {
		m := NewManager()
		_, err := m.Create(mainWindow())
		require.NoError(t, err)

		win, err := m.Resize("main", 1024, 768)
		require.NoError(t, err)
		assert.Equal(t, uint32(1024), win.Size.Width)
		assert.Equal(t, uint32(768), win.Size.Height)
	})

	t.Run("rejects zero dimensions", func(t *testing.T) {
		m := NewManager()
		_, err := m.Create(mainWindow())
		require.NoError(t, err)

		_, err = m.Resize("main", 0, 600)
		assert.Error(t, err)
	})

	t.Run("rejects unknown windows", func(t *testing.T) {
		m := NewManager()
		_, err := m.Resize("ghost", 800, 600)
		assert.Error(t, err)
	})

	t.Run("rejects non-resizable windows", func(t *testing.T) {
		m := NewManager()
		opts := mainWindow()
		opts.Resizable = false
		_, err := m.Create(opts)
		require.NoError(t, err)

		_, err = m.Resize("main", 1024, 768)
		assert.Error(t, err)
	})

	t.Run("clamps to min and max constraints", func(t *testing.T) {
		m := NewManager()
		opts := mainWindow()
		opts.MinSize = &types.Size{Width: 400, Height: 300}
		opts.MaxSize = &types.Size{Width: 1920, Height: 1080}
		_, err := m.Create(opts)
		require.NoError(t, err)

		win, err := m.Resize("main", 100, 100)
		require.NoError(t, err)
		assert.Equal(t, uint32(400), win.Size.Width)
		assert.Equal(t, uint32(300), win.Size.Height)

		win, err = m.Resize("main", 5000, 5000)
		require.NoError(t, err)
		assert.Equal(t, uint32(1920), win.Size.Width)
		assert.Equal(t, uint32(1080), win.Size.Height)
	})

	t.Run("returns a maximized window to normal", func(t *testing.T) {
		m := NewManager()
		_, err := m.Create(mainWindow())
		require.NoError(t, err)
		_, err = m.Maximize("main")
		require.NoError(t, err)

		win, err := m.Resize("main", 640, 480)
		require.NoError(t, err)
		assert.Equal(t, types.WindowNormal, win.State)
	})
}

func TestFocus(t *testing.T) {
	t.Run("exactly one window holds focus", func(t *testing.T) {
		m := NewManager()
		_, err := m.Create(mainWindow())
		require.NoError(t, err)

		second := mainWindow()
		second.Label = "settings"
		_, err = m.Create(second)
		require.NoError(t, err)

		win, err := m.Focus("main")
		require.NoError(t, err)
		assert.True(t, win.Focused)

		other, ok := m.GetByLabel("settings")
		require.True(t, ok)
		assert.False(t, other.Focused)

		stats := m.Stats()
		require.NotNil(t, stats.FocusedLabel)
		assert.Equal(t, "main", *stats.FocusedLabel)
	})

	t.Run("focusing a minimized window restores it", func(t *testing.T) {
		m := NewManager()
		_, err := m.Create(mainWindow())
		require.NoError(t, err)
		_, err = m.Minimize("main")
		require.NoError(t, err)

		win, err := m.Focus("main")
		require.NoError(t, err)
		assert.Equal(t, types.WindowNormal, win.State)
	})
}

func TestClose(t *testing.T) {
	t.Run("closing the focused window hands focus over", func(t *testing.T) {
		m := NewManager()
		_, err := m.Create(mainWindow())
		require.NoError(t, err)

		second := mainWindow()
		second.Label = "settings"
		_, err = m.Create(second)
		require.NoError(t, err)

		require.NoError(t, m.Close("settings"))

		main, ok := m.GetByLabel("main")
		require.True(t, ok)
		assert.True(t, main.Focused)
	})

	t.Run("closing an unknown window is an error", func(t *testing.T) {
		m := NewManager()
		assert.Error(t, m.Close("ghost"))
	})
}

func TestStateTransitions(t *testing.T) {
	m := NewManager()
	_, err := m.Create(mainWindow())
	require.NoError(t, err)

	win, err := m.Minimize("main")
	require.NoError(t, err)
	assert.Equal(t, types.WindowMinimized, win.State)

	win, err = m.Restore("main")
	require.NoError(t, err)
	assert.Equal(t, types.WindowNormal, win.State)

	win, err = m.SetFullscreen("main", true)
	require.NoError(t, err)
	assert.Equal(t, types.WindowFullscreen, win.State)

	win, err = m.SetFullscreen("main", false)
	require.NoError(t, err)
	assert.Equal(t, types.WindowNormal, win.State)

	win, err = m.Hide("main")
	require.NoError(t, err)
	assert.False(t, win.Visible)

	win, err = m.Show("main")
	require.NoError(t, err)
	assert.True(t, win.Visible)
}

func TestMaximizeNonResizable(t *testing.T) {
	m := NewManager()
	opts := mainWindow()
	opts.Resizable = false
	_, err := m.Create(opts)
	require.NoError(t, err)

	_, err = m.Maximize("main")
	assert.Error(t, err)
}

func TestApplyState(t *testing.T) {
	m := NewManager()
	opts := mainWindow()
	opts.Resizable = false
	_, err := m.Create(opts)
	require.NoError(t, err)

	// Layout restoration resizes even non-resizable windows
	win, err := m.ApplyState("main",
		types.Size{Width: 1024, Height: 768},
		types.Position{X: 50, Y: 50},
		types.WindowMaximized, true)
	require.NoError(t, err)
	assert.Equal(t, uint32(1024), win.Size.Width)
	assert.Equal(t, types.WindowMaximized, win.State)
}

func TestSubscribe(t *testing.T) {
	t.Run("delivers events in order", func(t *testing.T) {
		m := NewManager()
		events, cancel := m.Subscribe()
		defer cancel()

		_, err := m.Create(mainWindow())
		require.NoError(t, err)
		_, err = m.Resize("main", 1024, 768)
		require.NoError(t, err)

		created := <-events
		assert.Equal(t, types.EventWindowCreated, created.Type)
		assert.Equal(t, "main", created.Label)

		resized := <-events
		assert.Equal(t, types.EventWindowResized, resized.Type)
		assert.Equal(t, uint32(1024), resized.Window.Size.Width)
	})

	t.Run("cancel closes the channel", func(t *testing.T) {
		m := NewManager()
		events, cancel := m.Subscribe()
		cancel()

		_, ok := <-events
		assert.False(t, ok)
	})

	t.Run("slow subscribers do not block mutations", func(t *testing.T) {
		m := NewManager()
		_, cancel := m.Subscribe()
		defer cancel()

		_, err := m.Create(mainWindow())
		require.NoError(t, err)
		for i := 0; i < eventBuffer*2; i++ {
			_, err := m.Resize("main", uint32(640+i), 480)
			require.NoError(t, err)
		}
	})
}

func TestEventMetrics(t *testing.T) {
	metrics := monitoring.NewMetrics()
	m := NewManager().WithMetrics(metrics)

	_, err := m.Create(mainWindow())
	require.NoError(t, err)
	_, err = m.Resize("main", 1024, 768)
	require.NoError(t, err)

	// One increment per event, no more
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.WindowEvents.WithLabelValues(string(types.EventWindowCreated))))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.WindowEvents.WithLabelValues(string(types.EventWindowResized))))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.WindowsOpen))
}

func TestStats(t *testing.T) {
	m := NewManager()
	_, err := m.Create(mainWindow())
	require.NoError(t, err)

	hidden := mainWindow()
	hidden.Label = "tray"
	hidden.Visible = false
	_, err = m.Create(hidden)
	require.NoError(t, err)

	_, err = m.Minimize("main")
	require.NoError(t, err)

	stats := m.Stats()
	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 1, stats.Visible)
	assert.Equal(t, 1, stats.Minimized)
}
