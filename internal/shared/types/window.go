package types

import "time"

// WindowState represents window display states
type WindowState string

const (
	WindowNormal     WindowState = "normal"
	WindowMinimized  WindowState = "minimized"
	WindowMaximized  WindowState = "maximized"
	WindowFullscreen WindowState = "fullscreen"
)

// Position represents a window position in physical pixels
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Size represents window dimensions in physical pixels
type Size struct {
	Width  uint32 `json:"width"`
	Height uint32 `json:"height"`
}

// Window represents a managed window
type Window struct {
	ID        string      `json:"id"`
	Label     string      `json:"label"` // Unique, stable across sessions
	Title     string      `json:"title"`
	Size      Size        `json:"size"`
	Position  Position    `json:"position"`
	MinSize   *Size       `json:"min_size,omitempty"`
	MaxSize   *Size       `json:"max_size,omitempty"`
	State     WindowState `json:"state"`
	Visible   bool        `json:"visible"`
	Focused   bool        `json:"focused"`
	Resizable bool        `json:"resizable"`
	CreatedAt time.Time   `json:"created_at"`
}

// WindowStats contains window manager statistics
type WindowStats struct {
	Total        int     `json:"total"`
	Visible      int     `json:"visible"`
	Minimized    int     `json:"minimized"`
	FocusedLabel *string `json:"focused_label,omitempty"`
}

// EventType identifies window lifecycle events
type EventType string

const (
	EventWindowCreated      EventType = "window_created"
	EventWindowResized      EventType = "window_resized"
	EventWindowMoved        EventType = "window_moved"
	EventWindowRetitled     EventType = "window_retitled"
	EventWindowStateChanged EventType = "window_state_changed"
	EventWindowFocused      EventType = "window_focused"
	EventWindowShown        EventType = "window_shown"
	EventWindowHidden       EventType = "window_hidden"
	EventWindowClosed       EventType = "window_closed"
)

// WindowEvent is broadcast to subscribers on every window mutation
type WindowEvent struct {
	Type      EventType `json:"type"`
	Label     string    `json:"label"`
	Window    *Window   `json:"window,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
