package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/glasspane/shellhost/internal/command"
	"github.com/glasspane/shellhost/internal/infrastructure/config"
	"github.com/glasspane/shellhost/internal/session"
	"github.com/glasspane/shellhost/internal/shared/types"
	"github.com/glasspane/shellhost/internal/window"
)

// Handlers contains all HTTP handlers
type Handlers struct {
	registry *command.Registry
	windows  *window.Manager
	sessions *session.Manager
	shell    *config.ShellConfig
}

// NewHandlers creates a new handler set
func NewHandlers(
	registry *command.Registry,
	windows *window.Manager,
	sessions *session.Manager,
	shell *config.ShellConfig,
) *Handlers {
	return &Handlers{
		registry: registry,
		windows:  windows,
		sessions: sessions,
		shell:    shell,
	}
}

// Root handles the basic liveness check
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "online",
		"app":     h.shell.App.Name,
		"version": h.shell.App.Version,
	})
}

// Health handles the detailed health check
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"commands": h.registry.Stats(),
		"windows":  h.windows.Stats(),
		"layouts":  h.sessions.Stats(),
	})
}

// ListCommands lists registered command manifests
func (h *Handlers) ListCommands(c *gin.Context) {
	var category *types.Category
	if categoryStr := c.Query("category"); categoryStr != "" {
		cat := types.Category(categoryStr)
		category = &cat
	}

	manifests := h.registry.List(category)

	c.JSON(http.StatusOK, gin.H{
		"providers": manifests,
		"stats":     h.registry.Stats(),
	})
}

// Invoke dispatches a command invocation
func (h *Handlers) Invoke(c *gin.Context) {
	var req types.InvokeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var ictx *types.InvokeContext
	if req.Window != nil {
		ictx = &types.InvokeContext{WindowLabel: req.Window}
	}

	result, err := h.registry.Dispatch(c.Request.Context(), req.Command, req.Params, ictx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, result)
		return
	}

	c.JSON(http.StatusOK, result)
}

// ListWindows lists all managed windows
func (h *Handlers) ListWindows(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"windows": h.windows.List(),
		"stats":   h.windows.Stats(),
	})
}

// GetWindow returns a single window by label
func (h *Handlers) GetWindow(c *gin.Context) {
	label := c.Param("label")

	win, ok := h.windows.GetByLabel(label)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "window not found: " + label})
		return
	}

	c.JSON(http.StatusOK, gin.H{"window": win})
}

// FocusWindow brings a window to the foreground
func (h *Handlers) FocusWindow(c *gin.Context) {
	label := c.Param("label")

	win, err := h.windows.Focus(label)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"window": win})
}

// CloseWindow closes a window
func (h *Handlers) CloseWindow(c *gin.Context) {
	label := c.Param("label")

	if err := h.windows.Close(label); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"closed": true, "label": label})
}

// SaveLayout saves the current window arrangement
func (h *Handlers) SaveLayout(c *gin.Context) {
	var req types.SaveLayoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	layout, err := h.sessions.Save(req.Name, req.Description)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"layout": layout})
}

// ListLayouts lists saved layouts
func (h *Handlers) ListLayouts(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"layouts": h.sessions.List(),
		"stats":   h.sessions.Stats(),
	})
}

// GetLayout returns a single layout
func (h *Handlers) GetLayout(c *gin.Context) {
	layoutID := c.Param("id")

	layout, ok := h.sessions.Get(layoutID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "layout not found: " + layoutID})
		return
	}

	c.JSON(http.StatusOK, gin.H{"layout": layout})
}

// RestoreLayout re-applies a saved layout
func (h *Handlers) RestoreLayout(c *gin.Context) {
	layoutID := c.Param("id")

	layout, err := h.sessions.Restore(layoutID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"layout": layout, "restored": true})
}

// DeleteLayout removes a saved layout
func (h *Handlers) DeleteLayout(c *gin.Context) {
	layoutID := c.Param("id")

	if err := h.sessions.Delete(layoutID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
