package ws

import "encoding/json"

// Message represents a WebSocket message with type-based routing.
type Message struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// Message types - Lobby
const (
	TypeCreateSession = "create_session"
	TypeJoinSession   = "join_session"
	TypeLeaveSession  = "leave_session"
)

// Message types - Controls
const (
	TypeKeyDown    = "key_down"
	TypeKeyUp      = "key_up"
	TypeSelectType = "select_type"
	TypeAction     = "action"
)

// Message types - World
const (
	TypeBackgroundReady = "background_ready"
	TypeStopPlaced      = "stop_placed"
	TypeActorPlaced     = "actor_placed"
	TypeActorMoved      = "actor_moved"
	TypeActorRemoved    = "actor_removed"
)

// Message types - Gameplay
const (
	TypeGameState    = "game_state"
	TypeActionResult = "action_result"
	TypeGameOver     = "game_over"
)

// Message types - System
const (
	TypeError       = "error"
	TypeSessionInfo = "session_info"
)

// ErrorMessage is sent when an error occurs.
type ErrorMessage struct {
	Message string `json:"message"`
}

// NewErrorMessage creates a Message with an error payload.
func NewErrorMessage(msg string) Message {
	data, _ := json.Marshal(ErrorMessage{Message: msg})
	return Message{Type: TypeError, Data: data}
}

// NewMessage creates a Message with a typed payload.
func NewMessage(msgType string, payload any) (Message, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Message{}, err
	}
	return Message{Type: msgType, Data: data}, nil
}

