package session

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/klauspost/compress/gzip"

	"github.com/glasspane/shellhost/internal/shared/id"
	"github.com/glasspane/shellhost/internal/shared/types"
	"github.com/glasspane/shellhost/internal/window"
)

const layoutExt = ".json.gz"

// WindowManager is the window subsystem surface layout capture and
// restoration need
type WindowManager interface {
	List() []*types.Window
	GetByLabel(label string) (*types.Window, bool)
	Create(opts window.Options) (*types.Window, error)
	ApplyState(label string, size types.Size, pos types.Position, state types.WindowState, visible bool) (*types.Window, error)
}

// WindowSnapshot is the persisted state of a single window
type WindowSnapshot struct {
	Label     string            `json:"label"`
	Title     string            `json:"title"`
	Size      types.Size        `json:"size"`
	Position  types.Position    `json:"position"`
	MinSize   *types.Size       `json:"min_size,omitempty"`
	MaxSize   *types.Size       `json:"max_size,omitempty"`
	State     types.WindowState `json:"state"`
	Visible   bool              `json:"visible"`
	Resizable bool              `json:"resizable"`
}

// Layout is a named collection of window snapshots
type Layout struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
	Windows     []WindowSnapshot `json:"windows"`
}

// Manager handles layout persistence
type Manager struct {
	layouts    sync.Map // layout ID -> *Layout
	windows    WindowManager
	storageDir string

	mu           sync.RWMutex
	lastSaved    *time.Time
	lastRestored *time.Time
}

// NewManager creates a layout manager rooted at storageDir, loading any
// layouts already on disk
func NewManager(windows WindowManager, storageDir string) (*Manager, error) {
	if err := os.MkdirAll(storageDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create layout storage: %w", err)
	}

	m := &Manager{
		windows:    windows,
		storageDir: storageDir,
	}
	if err := m.loadFromDisk(); err != nil {
		return nil, err
	}
	return m, nil
}

// Save captures the current window arrangement into a named layout and
// writes it to disk
func (m *Manager) Save(name, description string) (*Layout, error) {
	if name == "" {
		return nil, fmt.Errorf("layout name cannot be empty")
	}

	now := time.Now()
	layout := &Layout{
		ID:          id.NewLayoutID().String(),
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
		Windows:     m.capture(),
	}

	if err := m.write(layout); err != nil {
		return nil, err
	}

	m.layouts.Store(layout.ID, layout)

	m.mu.Lock()
	m.lastSaved = &now
	m.mu.Unlock()

	return layout, nil
}

// Replace saves a layout under name after removing any layouts already
// carrying that name. Periodic snapshots like the shutdown save go through
// here so they do not pile up one copy per run.
func (m *Manager) Replace(name, description string) (*Layout, error) {
	if name == "" {
		return nil, fmt.Errorf("layout name cannot be empty")
	}

	for _, existing := range m.List() {
		if existing.Name == name {
			if err := m.Delete(existing.ID); err != nil {
				return nil, err
			}
		}
	}
	return m.Save(name, description)
}

// Get retrieves a layout by ID
func (m *Manager) Get(layoutID string) (*Layout, bool) {
	val, ok := m.layouts.Load(layoutID)
	if !ok {
		return nil, false
	}
	return val.(*Layout), true
}

// List returns all layouts, newest first
func (m *Manager) List() []*Layout {
	var layouts []*Layout
	m.layouts.Range(func(_, value interface{}) bool {
		layouts = append(layouts, value.(*Layout))
		return true
	})
	sort.Slice(layouts, func(i, j int) bool {
		return layouts[i].CreatedAt.After(layouts[j].CreatedAt)
	})
	return layouts
}

// Restore re-applies a layout: existing windows get their saved geometry
// and state back, missing windows are recreated
func (m *Manager) Restore(layoutID string) (*Layout, error) {
	layout, ok := m.Get(layoutID)
	if !ok {
		return nil, fmt.Errorf("layout not found: %s", layoutID)
	}

	for _, snap := range layout.Windows {
		if _, exists := m.windows.GetByLabel(snap.Label); exists {
			if _, err := m.windows.ApplyState(snap.Label, snap.Size, snap.Position, snap.State, snap.Visible); err != nil {
				return nil, fmt.Errorf("failed to restore window %s: %w", snap.Label, err)
			}
			continue
		}

		opts := window.Options{
			Label:      snap.Label,
			Title:      snap.Title,
			Width:      snap.Size.Width,
			Height:     snap.Size.Height,
			X:          snap.Position.X,
			Y:          snap.Position.Y,
			MinSize:    snap.MinSize,
			MaxSize:    snap.MaxSize,
			Resizable:  snap.Resizable,
			Visible:    snap.Visible,
			Fullscreen: snap.State == types.WindowFullscreen,
		}
		if _, err := m.windows.Create(opts); err != nil {
			return nil, fmt.Errorf("failed to recreate window %s: %w", snap.Label, err)
		}
		if snap.State == types.WindowMinimized || snap.State == types.WindowMaximized {
			if _, err := m.windows.ApplyState(snap.Label, snap.Size, snap.Position, snap.State, snap.Visible); err != nil {
				return nil, fmt.Errorf("failed to restore window %s: %w", snap.Label, err)
			}
		}
	}

	now := time.Now()
	m.mu.Lock()
	m.lastRestored = &now
	m.mu.Unlock()

	return layout, nil
}

// Delete removes a layout from cache and disk
func (m *Manager) Delete(layoutID string) error {
	if _, ok := m.layouts.Load(layoutID); !ok {
		return fmt.Errorf("layout not found: %s", layoutID)
	}
	m.layouts.Delete(layoutID)

	path := m.layoutPath(layoutID)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete layout file: %w", err)
	}
	return nil
}

// Stats returns persistence statistics
func (m *Manager) Stats() map[string]interface{} {
	var total int
	m.layouts.Range(func(_, _ interface{}) bool {
		total++
		return true
	})

	m.mu.RLock()
	defer m.mu.RUnlock()

	stats := map[string]interface{}{"total_layouts": total}
	if m.lastSaved != nil {
		stats["last_saved"] = m.lastSaved.Format(time.RFC3339)
	}
	if m.lastRestored != nil {
		stats["last_restored"] = m.lastRestored.Format(time.RFC3339)
	}
	return stats
}

func (m *Manager) capture() []WindowSnapshot {
	windows := m.windows.List()
	snapshots := make([]WindowSnapshot, 0, len(windows))
	for _, win := range windows {
		snapshots = append(snapshots, WindowSnapshot{
			Label:     win.Label,
			Title:     win.Title,
			Size:      win.Size,
			Position:  win.Position,
			MinSize:   win.MinSize,
			MaxSize:   win.MaxSize,
			State:     win.State,
			Visible:   win.Visible,
			Resizable: win.Resizable,
		})
	}
	sort.Slice(snapshots, func(i, j int) bool {
		return snapshots[i].Label < snapshots[j].Label
	})
	return snapshots
}

func (m *Manager) write(layout *Layout) error {
	data, err := sonic.Marshal(layout)
	if err != nil {
		return fmt.Errorf("failed to marshal layout: %w", err)
	}

	path := m.layoutPath(layout.ID)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create layout file: %w", err)
	}

	gz := gzip.NewWriter(f)
	if _, err := gz.Write(data); err != nil {
		gz.Close()
		f.Close()
		return fmt.Errorf("failed to write layout: %w", err)
	}
	if err := gz.Close(); err != nil {
		f.Close()
		return fmt.Errorf("failed to finalize layout: %w", err)
	}
	return f.Close()
}

func (m *Manager) loadFromDisk() error {
	entries, err := os.ReadDir(m.storageDir)
	if err != nil {
		return fmt.Errorf("failed to read layout storage: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), layoutExt) {
			continue
		}

		layout, err := m.read(filepath.Join(m.storageDir, entry.Name()))
		if err != nil {
			// Skip corrupt snapshots instead of refusing to start
			continue
		}
		m.layouts.Store(layout.ID, layout)
	}
	return nil
}

func (m *Manager) read(path string) (*Layout, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return nil, err
	}
	defer gz.Close()

	data, err := io.ReadAll(gz)
	if err != nil {
		return nil, err
	}

	var layout Layout
	if err := sonic.Unmarshal(data, &layout); err != nil {
		return nil, err
	}
	if layout.ID == "" {
		return nil, fmt.Errorf("layout file %s has no ID", path)
	}
	return &layout, nil
}

func (m *Manager) layoutPath(layoutID string) string {
	return filepath.Join(m.storageDir, layoutID+layoutExt)
}
