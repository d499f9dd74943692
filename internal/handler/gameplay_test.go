package handler

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ugaemi/tramchase/internal/game"
	"github.com/ugaemi/tramchase/internal/session"
	"github.com/ugaemi/tramchase/internal/ws"
)

type sentMessage struct {
	Type string
	Data json.RawMessage
}

func testDefaults() session.Settings {
	return session.Settings{
		Mode:        game.ModeTimeGoal,
		PlayingTime: game.PlayingTime,
		StartClock:  time.Date(0, 1, 1, 7, 20, 0, 0, time.UTC),
		Basic:       game.MapImage{Name: "basic.png", Width: 500, Height: 500},
		Large:       game.MapImage{Name: "large.png", Width: 1095, Height: 592},
	}
}

func newTestClient(id string) (*ws.Client, chan sentMessage) {
	ch := make(chan sentMessage, 1024)
	client := &ws.Client{
		ID:   id,
		Send: make(chan []byte, 256),
	}

	go func() {
		for data := range client.Send {
			var msg sentMessage
			json.Unmarshal(data, &msg)
			ch <- msg
		}
	}()

	return client, ch
}

func setupRouter(t *testing.T) (*Router, *session.Manager) {
	t.Helper()
	sm := session.NewManager()
	t.Cleanup(sm.Shutdown)
	return NewRouter(sm, testDefaults()), sm
}

func send(router *Router, client *ws.Client, msgType string, payload any) {
	var data json.RawMessage
	if payload != nil {
		data, _ = json.Marshal(payload)
	}
	raw, _ := json.Marshal(ws.Message{Type: msgType, Data: data})
	router.HandleMessage(&ws.ClientMessage{Client: client, Data: raw})
}

// waitForType reads messages until one of msgType arrives.
func waitForType(t *testing.T, ch chan sentMessage, msgType string) sentMessage {
	t.Helper()
	deadline := time.After(time.Second)
	for {
		select {
		case msg := <-ch:
			if msg.Type == msgType {
				return msg
			}
		case <-deadline:
			t.Fatalf("timeout waiting for %s", msgType)
			return sentMessage{}
		}
	}
}

func waitForError(t *testing.T, ch chan sentMessage) string {
	t.Helper()
	msg := waitForType(t, ch, ws.TypeError)
	var errMsg ws.ErrorMessage
	require.NoError(t, json.Unmarshal(msg.Data, &errMsg))
	return errMsg.Message
}

func createSession(t *testing.T, router *Router, client *ws.Client, ch chan sentMessage) string {
	t.Helper()
	send(router, client, ws.TypeCreateSession, createSessionRequest{})
	resp := waitForType(t, ch, ws.TypeCreateSession)

	var data struct {
		Code       string `json:"code"`
		Controller bool   `json:"controller"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	require.NotEmpty(t, data.Code)
	require.True(t, data.Controller)
	return data.Code
}

func TestHandleCreateSession(t *testing.T) {
	router, sm := setupRouter(t)
	client, ch := newTestClient("c1")

	code := createSession(t, router, client, ch)
	waitForType(t, ch, ws.TypeBackgroundReady)
	waitForType(t, ch, ws.TypeGameState)

	assert.Equal(t, code, router.GetSessionCode(client.ID))
	s := sm.Get(code)
	require.NotNil(t, s)
	assert.Equal(t, game.SessionPlaying, s.State())
}

func TestHandleCreateSession_Modes(t *testing.T) {
	t.Run("passengers", func(t *testing.T) {
		router, sm := setupRouter(t)
		client, ch := newTestClient("c1")
		send(router, client, ws.TypeCreateSession, createSessionRequest{Mode: "passengers"})
		waitForType(t, ch, ws.TypeCreateSession)

		s := sm.Get(router.GetSessionCode(client.ID))
		require.NotNil(t, s)
		assert.Equal(t, game.ModePassengerGoal, s.Mode)
	})

	t.Run("invalid", func(t *testing.T) {
		router, sm := setupRouter(t)
		client, ch := newTestClient("c1")
		send(router, client, ws.TypeCreateSession, createSessionRequest{Mode: "forever"})

		assert.Equal(t, "invalid mode: forever", waitForError(t, ch))
		assert.Equal(t, 0, sm.Count())
	})
}

func TestHandleCreateSession_ReplacesPrevious(t *testing.T) {
	router, sm := setupRouter(t)
	client, ch := newTestClient("c1")

	first := createSession(t, router, client, ch)
	second := createSession(t, router, client, ch)

	assert.NotEqual(t, first, second)
	assert.Nil(t, sm.Get(first))
	assert.Equal(t, 1, sm.Count())
}

func TestHandleJoinSession(t *testing.T) {
	router, _ := setupRouter(t)
	owner, ownerCh := newTestClient("owner")
	code := createSession(t, router, owner, ownerCh)

	watcher, watcherCh := newTestClient("watcher")
	send(router, watcher, ws.TypeJoinSession, joinSessionRequest{Code: code})
	waitForType(t, watcherCh, ws.TypeJoinSession)
	waitForType(t, watcherCh, ws.TypeBackgroundReady)
	waitForType(t, watcherCh, ws.TypeGameState)
	assert.Equal(t, code, router.GetSessionCode(watcher.ID))

	send(router, watcher, ws.TypeKeyDown, keyRequest{Key: "w"})
	assert.Equal(t, session.ErrNotController.Error(), waitForError(t, watcherCh))
}

func TestHandleJoinSession_Errors(t *testing.T) {
	router, _ := setupRouter(t)
	client, ch := newTestClient("c1")

	send(router, client, ws.TypeJoinSession, joinSessionRequest{})
	assert.Equal(t, "code is required", waitForError(t, ch))

	send(router, client, ws.TypeJoinSession, joinSessionRequest{Code: "ZZZZZ"})
	assert.Equal(t, "session not found", waitForError(t, ch))
}

func TestHandleLeaveSession(t *testing.T) {
	router, sm := setupRouter(t)
	client, ch := newTestClient("c1")
	code := createSession(t, router, client, ch)

	send(router, client, ws.TypeLeaveSession, nil)

	assert.Nil(t, sm.Get(code))
	assert.Empty(t, router.GetSessionCode(client.ID))
}

func TestHandleDisconnect_SpectatorStays(t *testing.T) {
	router, sm := setupRouter(t)
	owner, ownerCh := newTestClient("owner")
	code := createSession(t, router, owner, ownerCh)

	watcher, watcherCh := newTestClient("watcher")
	send(router, watcher, ws.TypeJoinSession, joinSessionRequest{Code: code})
	waitForType(t, watcherCh, ws.TypeJoinSession)

	router.HandleDisconnect(owner)

	s := sm.Get(code)
	require.NotNil(t, s, "session stays while someone watches")
	assert.Equal(t, game.SessionEnded, s.State())
	waitForType(t, watcherCh, ws.TypeGameOver)

	router.HandleDisconnect(watcher)
	assert.Nil(t, sm.Get(code))
}

func TestHandleKeyDown(t *testing.T) {
	router, _ := setupRouter(t)
	client, ch := newTestClient("c1")

	send(router, client, ws.TypeKeyDown, keyRequest{Key: "w"})
	assert.Equal(t, "not in a session", waitForError(t, ch))

	createSession(t, router, client, ch)
	send(router, client, ws.TypeKeyDown, keyRequest{Key: "x"})
	assert.Contains(t, waitForError(t, ch), "unknown key")
}

func TestHandleSelectType(t *testing.T) {
	router, _ := setupRouter(t)
	client, ch := newTestClient("c1")
	createSession(t, router, client, ch)

	send(router, client, ws.TypeSelectType, selectTypeRequest{Type: "rocket"})
	assert.Equal(t, "invalid player type", waitForError(t, ch))

	send(router, client, ws.TypeSelectType, selectTypeRequest{Type: "tram"})
	deadline := time.After(time.Second)
	for {
		select {
		case msg := <-ch:
			if msg.Type != ws.TypeGameState {
				continue
			}
			var state struct {
				Player struct {
					Type string `json:"type"`
					X    int    `json:"x"`
					Y    int    `json:"y"`
				} `json:"player"`
			}
			require.NoError(t, json.Unmarshal(msg.Data, &state))
			if state.Player.Type != "tram" {
				continue
			}
			assert.Equal(t, game.TramDepotX, state.Player.X)
			assert.Equal(t, game.TramDepotY, state.Player.Y)
			return
		case <-deadline:
			t.Fatal("timeout waiting for tram game_state")
		}
	}
}

func TestHandleAction(t *testing.T) {
	t.Run("walker with nothing nearby", func(t *testing.T) {
		router, _ := setupRouter(t)
		client, ch := newTestClient("c1")
		createSession(t, router, client, ch)

		send(router, client, ws.TypeAction, nil)
		resp := waitForType(t, ch, ws.TypeActionResult)

		var res session.ActionResult
		require.NoError(t, json.Unmarshal(resp.Data, &res))
		assert.Equal(t, game.TypeWalker, res.Type)
		assert.Zero(t, res.Destroyed)
	})

	t.Run("tram away from stops", func(t *testing.T) {
		router, _ := setupRouter(t)
		client, ch := newTestClient("c1")
		createSession(t, router, client, ch)

		send(router, client, ws.TypeSelectType, selectTypeRequest{Type: "tram"})
		send(router, client, ws.TypeAction, nil)
		assert.Equal(t, session.ErrActionUnavailable.Error(), waitForError(t, ch))
	})
}

func TestHandleMessage_Invalid(t *testing.T) {
	router, _ := setupRouter(t)
	client, ch := newTestClient("c1")

	router.HandleMessage(&ws.ClientMessage{Client: client, Data: []byte("{not json")})
	assert.Equal(t, "invalid message format", waitForError(t, ch))

	send(router, client, "teleport", nil)
	assert.Equal(t, "unknown message type: teleport", waitForError(t, ch))
}
