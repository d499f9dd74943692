package handler

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/ugaemi/tramchase/internal/session"
	"github.com/ugaemi/tramchase/internal/ws"
)

// Router dispatches incoming messages to the appropriate handler.
type Router struct {
	lobby    *LobbyHandler
	gameplay *GameplayHandler

	// sessionMap tracks client ID -> session code, shared across handlers.
	sessionMap map[string]string
	mu         sync.RWMutex
}

// NewRouter creates a new message router. New sessions start from defaults.
func NewRouter(sm *session.Manager, defaults session.Settings) *Router {
	r := &Router{
		sessionMap: make(map[string]string),
	}
	r.lobby = NewLobbyHandler(sm, r, defaults)
	r.gameplay = NewGameplayHandler(sm, r)
	return r
}

// RegisterClient maps a client ID to a session code.
func (r *Router) RegisterClient(clientID, code string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessionMap[clientID] = code
}

// UnregisterClient removes a client's session mapping.
func (r *Router) UnregisterClient(clientID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessionMap, clientID)
}

// GetSessionCode returns the session code for a client, or empty string if not found.
func (r *Router) GetSessionCode(clientID string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sessionMap[clientID]
}

// HandleMessage parses and routes an incoming client message.
func (r *Router) HandleMessage(cm *ws.ClientMessage) {
	var msg ws.Message
	if err := json.Unmarshal(cm.Data, &msg); err != nil {
		slog.Warn("invalid message format", "client", cm.Client.ID, "error", err)
		cm.Client.SendMessage(ws.NewErrorMessage("invalid message format"))
		return
	}

	switch msg.Type {
	// Lobby messages
	case ws.TypeCreateSession:
		r.lobby.HandleCreateSession(cm.Client, msg)
	case ws.TypeJoinSession:
		r.lobby.HandleJoinSession(cm.Client, msg)
	case ws.TypeLeaveSession:
		r.lobby.HandleLeaveSession(cm.Client, msg)

	// Gameplay messages
	case ws.TypeKeyDown:
		r.gameplay.HandleKeyDown(cm.Client, msg)
	case ws.TypeKeyUp:
		r.gameplay.HandleKeyUp(cm.Client, msg)
	case ws.TypeSelectType:
		r.gameplay.HandleSelectType(cm.Client, msg)
	case ws.TypeAction:
		r.gameplay.HandleAction(cm.Client, msg)

	default:
		slog.Warn("unknown message type", "type", msg.Type, "client", cm.Client.ID)
		cm.Client.SendMessage(ws.NewErrorMessage("unknown message type: " + msg.Type))
	}
}

// HandleDisconnect handles client disconnection.
func (r *Router) HandleDisconnect(client *ws.Client) {
	r.lobby.HandleDisconnect(client)
}
