package handler

import (
	"encoding/json"
	"log/slog"

	"github.com/ugaemi/tramchase/internal/game"
	"github.com/ugaemi/tramchase/internal/session"
	"github.com/ugaemi/tramchase/internal/ws"
)

// LobbyHandler handles session creation, joining and leaving.
type LobbyHandler struct {
	sm       *session.Manager
	router   *Router
	defaults session.Settings
}

// NewLobbyHandler creates a new lobby handler.
func NewLobbyHandler(sm *session.Manager, router *Router, defaults session.Settings) *LobbyHandler {
	return &LobbyHandler{
		sm:       sm,
		router:   router,
		defaults: defaults,
	}
}

type createSessionRequest struct {
	Mode string `json:"mode"` // "time" or "passengers"; empty uses the server default
}

type sessionResponse struct {
	ID         string        `json:"id"`
	Code       string        `json:"code"`
	Mode       game.GameMode `json:"mode"`
	Controller bool          `json:"controller"`
}

// HandleCreateSession creates a session steered by the client and starts it.
func (h *LobbyHandler) HandleCreateSession(client *ws.Client, msg ws.Message) {
	var req createSessionRequest
	if len(msg.Data) > 0 {
		if err := json.Unmarshal(msg.Data, &req); err != nil {
			client.SendMessage(ws.NewErrorMessage("invalid create_session data"))
			return
		}
	}

	settings := h.defaults
	switch req.Mode {
	case "":
	case game.ModeTimeGoal.String(), game.ModePassengerGoal.String():
		settings.Mode = game.ParseGameMode(req.Mode)
	default:
		client.SendMessage(ws.NewErrorMessage("invalid mode: " + req.Mode))
		return
	}

	// A client drives one session at a time.
	h.removeClient(client)

	s := h.sm.Create(settings)
	s.SetController(client)
	h.router.RegisterClient(client.ID, s.Code)

	resp, _ := ws.NewMessage(ws.TypeCreateSession, sessionResponse{
		ID:         s.ID,
		Code:       s.Code,
		Mode:       s.Mode,
		Controller: true,
	})
	client.SendMessage(resp)

	if err := s.Prepare(); err != nil {
		slog.Error("failed to prepare session", "session", s.Code, "error", err)
		client.SendMessage(ws.NewErrorMessage("failed to start game"))
		h.router.UnregisterClient(client.ID)
		h.sm.Remove(s.Code)
		return
	}
	s.StartLoop()

	slog.Info("client created session", "client", client.ID, "session", s.Code)
}

type joinSessionRequest struct {
	Code string `json:"code"`
}

// HandleJoinSession attaches the client to an existing session as a spectator.
func (h *LobbyHandler) HandleJoinSession(client *ws.Client, msg ws.Message) {
	var req joinSessionRequest
	if err := json.Unmarshal(msg.Data, &req); err != nil || req.Code == "" {
		client.SendMessage(ws.NewErrorMessage("code is required"))
		return
	}

	s := h.sm.Get(req.Code)
	if s == nil {
		client.SendMessage(ws.NewErrorMessage("session not found"))
		return
	}
	if h.router.GetSessionCode(client.ID) == s.Code {
		client.SendMessage(ws.NewErrorMessage("already in this session"))
		return
	}

	h.removeClient(client)

	resp, _ := ws.NewMessage(ws.TypeJoinSession, sessionResponse{
		ID:   s.ID,
		Code: s.Code,
		Mode: s.Mode,
	})
	client.SendMessage(resp)

	s.AddSpectator(client)
	h.router.RegisterClient(client.ID, s.Code)

	slog.Info("client joined session", "client", client.ID, "session", s.Code)
}

// HandleLeaveSession handles a client leaving its session.
func (h *LobbyHandler) HandleLeaveSession(client *ws.Client, _ ws.Message) {
	h.removeClient(client)
}

// HandleDisconnect handles client disconnection.
func (h *LobbyHandler) HandleDisconnect(client *ws.Client) {
	h.removeClient(client)
}

func (h *LobbyHandler) removeClient(client *ws.Client) {
	code := h.router.GetSessionCode(client.ID)
	if code == "" {
		return
	}

	if s := h.sm.Get(code); s != nil && !s.RemoveClient(client.ID) {
		h.sm.Remove(code)
	}

	h.router.UnregisterClient(client.ID)
	slog.Info("client left session", "client", client.ID, "session", code)
}
