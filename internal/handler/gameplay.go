package handler

import (
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/ugaemi/tramchase/internal/game"
	"github.com/ugaemi/tramchase/internal/session"
	"github.com/ugaemi/tramchase/internal/ws"
)

// GameplayHandler handles in-game messages.
type GameplayHandler struct {
	sm     *session.Manager
	router *Router
}

// NewGameplayHandler creates a new gameplay handler.
func NewGameplayHandler(sm *session.Manager, router *Router) *GameplayHandler {
	return &GameplayHandler{sm: sm, router: router}
}

type keyRequest struct {
	Key string `json:"key"`
}

// HandleKeyDown starts replaying a steering key every movement tick.
func (h *GameplayHandler) HandleKeyDown(client *ws.Client, msg ws.Message) {
	h.handleKey(client, msg, true)
}

// HandleKeyUp stops replaying a steering key.
func (h *GameplayHandler) HandleKeyUp(client *ws.Client, msg ws.Message) {
	h.handleKey(client, msg, false)
}

func (h *GameplayHandler) handleKey(client *ws.Client, msg ws.Message, down bool) {
	var req keyRequest
	if err := json.Unmarshal(msg.Data, &req); err != nil {
		client.SendMessage(ws.NewErrorMessage("invalid key data"))
		return
	}
	key, err := session.ParseKey(req.Key)
	if err != nil {
		client.SendMessage(ws.NewErrorMessage(err.Error()))
		return
	}

	s := h.findSession(client)
	if s == nil {
		return
	}
	if down {
		err = s.KeyDown(client.ID, key)
	} else {
		err = s.KeyUp(client.ID, key)
	}
	if err != nil {
		client.SendMessage(ws.NewErrorMessage(err.Error()))
	}
}

type selectTypeRequest struct {
	Type string `json:"type"` // "walker", "biker" or "tram"
}

// HandleSelectType switches the player type.
func (h *GameplayHandler) HandleSelectType(client *ws.Client, msg ws.Message) {
	var req selectTypeRequest
	if err := json.Unmarshal(msg.Data, &req); err != nil {
		client.SendMessage(ws.NewErrorMessage("invalid type selection"))
		return
	}
	typ, ok := game.ParsePlayerType(req.Type)
	if !ok {
		client.SendMessage(ws.NewErrorMessage("invalid player type"))
		return
	}

	s := h.findSession(client)
	if s == nil {
		return
	}
	if err := s.SelectType(client.ID, typ); err != nil {
		client.SendMessage(ws.NewErrorMessage(err.Error()))
	}
}

// HandleAction presses the action button.
func (h *GameplayHandler) HandleAction(client *ws.Client, _ ws.Message) {
	s := h.findSession(client)
	if s == nil {
		return
	}

	res, err := s.Action(client.ID)
	if err != nil {
		slog.Debug("action failed", "client", client.ID, "session", s.Code, "error", err)
		client.SendMessage(ws.NewErrorMessage(err.Error()))
		// buses destroyed before the failure still count
		if !errors.Is(err, game.ErrNoStopAvailable) || res.Destroyed == 0 {
			return
		}
	}

	resp, _ := ws.NewMessage(ws.TypeActionResult, res)
	client.SendMessage(resp)
}

func (h *GameplayHandler) findSession(client *ws.Client) *session.Session {
	code := h.router.GetSessionCode(client.ID)
	if code == "" {
		client.SendMessage(ws.NewErrorMessage("not in a session"))
		return nil
	}
	s := h.sm.Get(code)
	if s == nil {
		client.SendMessage(ws.NewErrorMessage("session not found"))
		return nil
	}
	return s
}
