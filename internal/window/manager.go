package window

import (
	"fmt"
	"sync"
	"time"

	"github.com/glasspane/shellhost/internal/infrastructure/monitoring"
	"github.com/glasspane/shellhost/internal/shared/id"
	"github.com/glasspane/shellhost/internal/shared/types"
)

// eventBuffer is the per-subscriber channel capacity. Slow subscribers drop
// events rather than block window mutations.
const eventBuffer = 64

// Options configures a window at creation time
type Options struct {
	Label      string
	Title      string
	Width      uint32
	Height     uint32
	X          int
	Y          int
	MinSize    *types.Size
	MaxSize    *types.Size
	Resizable  bool
	Visible    bool
	Fullscreen bool
}

// Manager orchestrates window lifecycle and geometry
type Manager struct {
	mu           sync.RWMutex
	windows      map[string]*types.Window // keyed by label, protected by mu
	focusedLabel *string                  // protected by mu

	subMu   sync.RWMutex
	subs    map[int]chan types.WindowEvent
	nextSub int

	metrics *monitoring.Metrics
}

// NewManager creates a new window manager
func NewManager() *Manager {
	return &Manager{
		windows: make(map[string]*types.Window),
		subs:    make(map[int]chan types.WindowEvent),
	}
}

// WithMetrics adds metrics tracking to the manager
func (m *Manager) WithMetrics(metrics *monitoring.Metrics) *Manager {
	m.metrics = metrics
	return m
}

// Create registers a new window. Labels are unique; creating a window with
// an existing label is an error.
func (m *Manager) Create(opts Options) (*types.Window, error) {
	if opts.Label == "" {
		return nil, fmt.Errorf("window label cannot be empty")
	}
	if opts.Width == 0 || opts.Height == 0 {
		return nil, fmt.Errorf("window dimensions must be non-zero")
	}

	state := types.WindowNormal
	if opts.Fullscreen {
		state = types.WindowFullscreen
	}

	win := &types.Window{
		ID:        id.NewWindowID().String(),
		Label:     opts.Label,
		Title:     opts.Title,
		Size:      clampSize(types.Size{Width: opts.Width, Height: opts.Height}, opts.MinSize, opts.MaxSize),
		Position:  types.Position{X: opts.X, Y: opts.Y},
		MinSize:   opts.MinSize,
		MaxSize:   opts.MaxSize,
		State:     state,
		Visible:   opts.Visible,
		Resizable: opts.Resizable,
		CreatedAt: time.Now(),
	}

	m.mu.Lock()
	if _, exists := m.windows[opts.Label]; exists {
		m.mu.Unlock()
		return nil, fmt.Errorf("window label already in use: %s", opts.Label)
	}

	// New visible windows take focus
	if win.Visible {
		m.unfocusLocked()
		win.Focused = true
		m.focusedLabel = &win.Label
	}
	m.windows[opts.Label] = win
	snapshot := *win
	count := len(m.windows)
	m.mu.Unlock()

	if m.metrics != nil {
		m.metrics.SetWindowsOpen(count)
	}
	m.emit(types.EventWindowCreated, &snapshot)

	return &snapshot, nil
}

// Get retrieves a window by ID
func (m *Manager) Get(windowID string) (*types.Window, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, win := range m.windows {
		if win.ID == windowID {
			snapshot := *win
			return &snapshot, true
		}
	}
	return nil, false
}

// GetByLabel retrieves a window by label
func (m *Manager) GetByLabel(label string) (*types.Window, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	win, ok := m.windows[label]
	if !ok {
		return nil, false
	}
	snapshot := *win
	return &snapshot, true
}

// List returns all windows
func (m *Manager) List() []*types.Window {
	m.mu.RLock()
	defer m.mu.RUnlock()

	windows := make([]*types.Window, 0, len(m.windows))
	for _, win := range m.windows {
		snapshot := *win
		windows = append(windows, &snapshot)
	}
	return windows
}

// Resize sets a window's physical pixel dimensions. Dimensions are clamped
// to the window's min/max constraints; a zero dimension or a non-resizable
// window is an error. A minimized, maximized or fullscreen window returns
// to the normal state first.
func (m *Manager) Resize(label string, width, height uint32) (*types.Window, error) {
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("window dimensions must be non-zero")
	}

	m.mu.Lock()
	win, ok := m.windows[label]
	if !ok {
		m.mu.Unlock()
		return nil, fmt.Errorf("window not found: %s", label)
	}
	if !win.Resizable {
		m.mu.Unlock()
		return nil, fmt.Errorf("window is not resizable: %s", label)
	}

	win.Size = clampSize(types.Size{Width: width, Height: height}, win.MinSize, win.MaxSize)
	win.State = types.WindowNormal
	snapshot := *win
	m.mu.Unlock()

	m.emit(types.EventWindowResized, &snapshot)
	return &snapshot, nil
}

// Move sets a window's position
func (m *Manager) Move(label string, x, y int) (*types.Window, error) {
	return m.mutate(label, types.EventWindowMoved, func(win *types.Window) error {
		win.Position = types.Position{X: x, Y: y}
		return nil
	})
}

// SetTitle updates a window's title
func (m *Manager) SetTitle(label, title string) (*types.Window, error) {
	return m.mutate(label, types.EventWindowRetitled, func(win *types.Window) error {
		win.Title = title
		return nil
	})
}

// Minimize puts a window into the minimized state
func (m *Manager) Minimize(label string) (*types.Window, error) {
	return m.mutate(label, types.EventWindowStateChanged, func(win *types.Window) error {
		win.State = types.WindowMinimized
		return nil
	})
}

// Maximize puts a window into the maximized state
func (m *Manager) Maximize(label string) (*types.Window, error) {
	return m.mutate(label, types.EventWindowStateChanged, func(win *types.Window) error {
		if !win.Resizable {
			return fmt.Errorf("window is not resizable: %s", win.Label)
		}
		win.State = types.WindowMaximized
		return nil
	})
}

// Restore returns a window to the normal state
func (m *Manager) Restore(label string) (*types.Window, error) {
	return m.mutate(label, types.EventWindowStateChanged, func(win *types.Window) error {
		win.State = types.WindowNormal
		return nil
	})
}

// SetFullscreen toggles fullscreen
func (m *Manager) SetFullscreen(label string, enable bool) (*types.Window, error) {
	return m.mutate(label, types.EventWindowStateChanged, func(win *types.Window) error {
		if enable {
			win.State = types.WindowFullscreen
		} else {
			win.State = types.WindowNormal
		}
		return nil
	})
}

// Show makes a window visible
func (m *Manager) Show(label string) (*types.Window, error) {
	return m.mutate(label, types.EventWindowShown, func(win *types.Window) error {
		win.Visible = true
		return nil
	})
}

// Hide makes a window invisible without destroying it
func (m *Manager) Hide(label string) (*types.Window, error) {
	return m.mutate(label, types.EventWindowHidden, func(win *types.Window) error {
		win.Visible = false
		return nil
	})
}

// Focus brings a window to the foreground. Exactly one window holds focus.
func (m *Manager) Focus(label string) (*types.Window, error) {
	m.mu.Lock()
	win, ok := m.windows[label]
	if !ok {
		m.mu.Unlock()
		return nil, fmt.Errorf("window not found: %s", label)
	}

	m.unfocusLocked()
	win.Focused = true
	win.Visible = true
	if win.State == types.WindowMinimized {
		win.State = types.WindowNormal
	}
	m.focusedLabel = &win.Label
	snapshot := *win
	m.mu.Unlock()

	m.emit(types.EventWindowFocused, &snapshot)
	return &snapshot, nil
}

// Close destroys a window. Closing the focused window hands focus to
// another visible window if one exists.
func (m *Manager) Close(label string) error {
	m.mu.Lock()
	win, ok := m.windows[label]
	if !ok {
		m.mu.Unlock()
		return fmt.Errorf("window not found: %s", label)
	}

	snapshot := *win
	delete(m.windows, label)

	if m.focusedLabel != nil && *m.focusedLabel == label {
		m.focusedLabel = nil
		for _, other := range m.windows {
			if other.Visible {
				other.Focused = true
				m.focusedLabel = &other.Label
				break
			}
		}
	}
	count := len(m.windows)
	m.mu.Unlock()

	if m.metrics != nil {
		m.metrics.SetWindowsOpen(count)
	}
	m.emit(types.EventWindowClosed, &snapshot)
	return nil
}

// ApplyState overwrites a window's geometry, state and visibility in one
// step. Used by layout restoration, which bypasses the resizable check the
// way a session restore must.
func (m *Manager) ApplyState(label string, size types.Size, pos types.Position, state types.WindowState, visible bool) (*types.Window, error) {
	if size.Width == 0 || size.Height == 0 {
		return nil, fmt.Errorf("window dimensions must be non-zero")
	}
	return m.mutate(label, types.EventWindowStateChanged, func(win *types.Window) error {
		win.Size = clampSize(size, win.MinSize, win.MaxSize)
		win.Position = pos
		win.State = state
		win.Visible = visible
		return nil
	})
}

// Stats returns window manager statistics
func (m *Manager) Stats() types.WindowStats {
	m.mu.RLock()
	defer m.mu.RUnlock()

	stats := types.WindowStats{Total: len(m.windows)}
	for _, win := range m.windows {
		if win.Visible {
			stats.Visible++
		}
		if win.State == types.WindowMinimized {
			stats.Minimized++
		}
	}
	if m.focusedLabel != nil {
		label := *m.focusedLabel
		stats.FocusedLabel = &label
	}
	return stats
}

// Subscribe registers an event channel. The returned cancel function must
// be called to release the subscription.
func (m *Manager) Subscribe() (<-chan types.WindowEvent, func()) {
	m.subMu.Lock()
	defer m.subMu.Unlock()

	subID := m.nextSub
	m.nextSub++
	ch := make(chan types.WindowEvent, eventBuffer)
	m.subs[subID] = ch

	cancel := func() {
		m.subMu.Lock()
		defer m.subMu.Unlock()
		if existing, ok := m.subs[subID]; ok {
			delete(m.subs, subID)
			close(existing)
		}
	}
	return ch, cancel
}

// mutate applies fn to the window under lock and emits eventType on success
func (m *Manager) mutate(label string, eventType types.EventType, fn func(*types.Window) error) (*types.Window, error) {
	m.mu.Lock()
	win, ok := m.windows[label]
	if !ok {
		m.mu.Unlock()
		return nil, fmt.Errorf("window not found: %s", label)
	}
	if err := fn(win); err != nil {
		m.mu.Unlock()
		return nil, err
	}
	snapshot := *win
	m.mu.Unlock()

	m.emit(eventType, &snapshot)
	return &snapshot, nil
}

func (m *Manager) unfocusLocked() {
	for _, win := range m.windows {
		win.Focused = false
	}
}

func (m *Manager) emit(eventType types.EventType, win *types.Window) {
	event := types.WindowEvent{
		Type:      eventType,
		Label:     win.Label,
		Window:    win,
		Timestamp: time.Now(),
	}

	if m.metrics != nil {
		m.metrics.RecordWindowEvent(string(eventType))
	}

	m.subMu.RLock()
	for _, ch := range m.subs {
		select {
		case ch <- event:
		default:
			// Subscriber is not draining; drop rather than block
		}
	}
	m.subMu.RUnlock()
}

func clampSize(size types.Size, minSize, maxSize *types.Size) types.Size {
	if minSize != nil {
		if size.Width < minSize.Width {
			size.Width = minSize.Width
		}
		if size.Height < minSize.Height {
			size.Height = minSize.Height
		}
	}
	if maxSize != nil {
		if maxSize.Width > 0 && size.Width > maxSize.Width {
			size.Width = maxSize.Width
		}
		if maxSize.Height > 0 && size.Height > maxSize.Height {
			size.Height = maxSize.Height
		}
	}
	return size
}
