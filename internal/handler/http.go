package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/ugaemi/tramchase/internal/session"
	"github.com/ugaemi/tramchase/internal/ws"
)

// HTTPHandler serves the REST endpoints and the WebSocket upgrade.
type HTTPHandler struct {
	sm       *session.Manager
	hub      *ws.Hub
	upgrader websocket.Upgrader
}

// NewHTTPHandler creates the HTTP handler.
func NewHTTPHandler(sm *session.Manager, hub *ws.Hub) *HTTPHandler {
	return &HTTPHandler{
		sm:  sm,
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true // any origin may watch or play
			},
		},
	}
}

// Register mounts every route on r.
func (h *HTTPHandler) Register(r *gin.Engine) {
	r.Use(corsMiddleware)

	r.GET("/health", h.Health)
	r.GET("/sessions", h.ListSessions)
	r.GET("/sessions/:code", h.GetSession)
	r.GET("/ws", h.ServeWS)
}

func corsMiddleware(c *gin.Context) {
	c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
	c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
	c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Accept")
	if c.Request.Method == http.MethodOptions {
		c.AbortWithStatus(http.StatusNoContent)
		return
	}
	c.Next()
}

// Health reports liveness plus a few gauges.
func (h *HTTPHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"sessions": h.sm.Count(),
		"clients":  h.hub.ClientCount(),
	})
}

// ListSessions returns every session with its state and score.
func (h *HTTPHandler) ListSessions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"sessions": h.sm.List(),
	})
}

// GetSession returns one session by code.
func (h *HTTPHandler) GetSession(c *gin.Context) {
	s := h.sm.Get(c.Param("code"))
	if s == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}
	c.JSON(http.StatusOK, s.Info())
}

// ServeWS upgrades the request and hands the connection to the hub.
func (h *HTTPHandler) ServeWS(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		slog.Error("websocket upgrade failed", "error", err)
		return
	}

	client := ws.NewClient(h.hub, conn)
	h.hub.Register <- client

	go client.WritePump()
	go client.ReadPump()
}
