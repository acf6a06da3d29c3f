package ws

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/glasspane/shellhost/internal/command"
	"github.com/glasspane/shellhost/internal/infrastructure/logging"
	"github.com/glasspane/shellhost/internal/infrastructure/monitoring"
	"github.com/glasspane/shellhost/internal/shared/id"
	"github.com/glasspane/shellhost/internal/shared/types"
	"github.com/glasspane/shellhost/internal/window"
)

// invokeTimeout bounds a single command invocation over the IPC bridge
const invokeTimeout = 30 * time.Second

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // The webview is a local origin; pin in production
	},
}

// Handler manages WebSocket IPC connections
type Handler struct {
	registry *command.Registry
	windows  *window.Manager
	metrics  *monitoring.Metrics
	logger   *logging.Logger
}

// NewHandler creates a new WebSocket handler
func NewHandler(registry *command.Registry, windows *window.Manager, metrics *monitoring.Metrics, logger *logging.Logger) *Handler {
	return &Handler{
		registry: registry,
		windows:  windows,
		metrics:  metrics,
		logger:   logger,
	}
}

// client serializes writes to a single connection. gorilla/websocket allows
// one concurrent writer, and event forwarding runs on its own goroutine.
type client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *client) send(data interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(data)
}

// HandleConnection handles WebSocket upgrade and the message loop
func (h *Handler) HandleConnection(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("WebSocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	connID := uuid.New().String()
	cl := &client{conn: conn}

	if h.metrics != nil {
		h.metrics.IncWSConnections()
		defer h.metrics.DecWSConnections()
	}

	reqCtx := c.Request.Context()

	// Event subscription state for this connection
	var (
		cancelSub func()
		forwardWG sync.WaitGroup
	)
	defer func() {
		if cancelSub != nil {
			cancelSub()
			forwardWG.Wait()
		}
	}()

	cl.send(map[string]interface{}{
		"type":          "connected",
		"connection_id": connID,
	})

	for {
		var msg types.WSMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Warn("WebSocket read error", zap.String("connection", connID), zap.Error(err))
			}
			return
		}

		if h.metrics != nil {
			h.metrics.RecordWSMessage("in", msg.Type)
		}

		switch msg.Type {
		case "invoke":
			h.handleInvoke(cl, msg, reqCtx, connID)
		case "subscribe":
			if cancelSub == nil {
				events, cancel := h.windows.Subscribe()
				cancelSub = cancel
				forwardWG.Add(1)
				go func() {
					defer forwardWG.Done()
					h.forwardEvents(cl, events)
				}()
			}
			cl.send(map[string]interface{}{"type": "subscribed", "id": msg.ID})
		case "unsubscribe":
			if cancelSub != nil {
				cancelSub()
				forwardWG.Wait()
				cancelSub = nil
			}
			cl.send(map[string]interface{}{"type": "unsubscribed", "id": msg.ID})
		case "ping":
			cl.send(map[string]interface{}{"type": "pong", "id": msg.ID})
		default:
			h.sendError(cl, msg.ID, "unknown message type: "+msg.Type)
		}
	}
}

func (h *Handler) handleInvoke(cl *client, msg types.WSMessage, reqCtx context.Context, connID string) {
	if msg.Command == "" {
		h.sendError(cl, msg.ID, "command required")
		return
	}
	if msg.ID == "" {
		// Replies stay correlatable even when the client omits an ID
		msg.ID = id.NewRequestID().String()
	}

	ictx := &types.InvokeContext{ConnectionID: &connID}
	if msg.Window != nil {
		ictx.WindowLabel = msg.Window
	}

	ctx, cancel := context.WithTimeout(reqCtx, invokeTimeout)
	defer cancel()

	result, err := h.registry.Dispatch(ctx, msg.Command, msg.Params, ictx)
	if err != nil && result == nil {
		h.sendError(cl, msg.ID, err.Error())
		return
	}

	reply := map[string]interface{}{
		"type":    "result",
		"id":      msg.ID,
		"command": msg.Command,
		"result":  result,
	}
	if err := cl.send(reply); err != nil {
		h.logger.Warn("WebSocket write failed", zap.String("connection", connID), zap.Error(err))
		return
	}

	if h.metrics != nil {
		h.metrics.RecordWSMessage("out", "result")
	}
}

func (h *Handler) forwardEvents(cl *client, events <-chan types.WindowEvent) {
	for event := range events {
		payload := map[string]interface{}{
			"type":  "event",
			"event": event,
		}
		if err := cl.send(payload); err != nil {
			return
		}
		if h.metrics != nil {
			h.metrics.RecordWSMessage("out", "event")
		}
	}
}

func (h *Handler) sendError(cl *client, msgID, message string) {
	cl.send(map[string]interface{}{
		"type":    "error",
		"id":      msgID,
		"message": message,
	})
	if h.metrics != nil {
		h.metrics.RecordWSMessage("out", "error")
	}
}
