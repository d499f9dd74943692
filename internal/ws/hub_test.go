package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_Lifecycle(t *testing.T) {
	h := NewHub()
	received := make(chan *ClientMessage, 1)
	disconnected := make(chan *Client, 1)
	h.OnMessage = func(cm *ClientMessage) { received <- cm }
	h.OnDisconnect = func(c *Client) { disconnected <- c }

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go h.Run(ctx)

	c := &Client{ID: "c1", Hub: h, Send: make(chan []byte, 4)}
	h.Register <- c
	assert.Eventually(t, func() bool { return h.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	h.Incoming <- &ClientMessage{Client: c, Data: []byte(`{"type":"action"}`)}
	select {
	case cm := <-received:
		assert.Same(t, c, cm.Client)
	case <-time.After(time.Second):
		t.Fatal("message was not dispatched")
	}

	h.Unregister <- c
	select {
	case got := <-disconnected:
		assert.Same(t, c, got)
	case <-time.After(time.Second):
		t.Fatal("disconnect was not reported")
	}
	_, open := <-c.Send
	assert.False(t, open, "send channel is closed after disconnect")
	assert.Equal(t, 0, h.ClientCount())

	cancel()
	select {
	case <-h.Done():
	case <-time.After(time.Second):
		t.Fatal("hub did not stop")
	}
}

func TestHub_ShutdownClosesClients(t *testing.T) {
	h := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	go h.Run(ctx)

	c := &Client{ID: "c1", Hub: h, Send: make(chan []byte, 4)}
	h.Register <- c
	cancel()
	<-h.Done()

	assert.Eventually(t, func() bool { return h.ClientCount() == 0 }, time.Second, 5*time.Millisecond)
	_, open := <-c.Send
	assert.False(t, open)
}

func TestClient_SendMessage_DropsWhenFull(t *testing.T) {
	c := &Client{ID: "c1", Send: make(chan []byte, 1)}

	c.SendMessage(NewErrorMessage("first"))
	c.SendMessage(NewErrorMessage("second"))

	require.Len(t, c.Send, 1)
	var msg Message
	require.NoError(t, json.Unmarshal(<-c.Send, &msg))
	assert.Equal(t, TypeError, msg.Type)

	var payload ErrorMessage
	require.NoError(t, json.Unmarshal(msg.Data, &payload))
	assert.Equal(t, "first", payload.Message)
}

func TestNewMessage(t *testing.T) {
	msg, err := NewMessage(TypeKeyDown, map[string]string{"key": "w"})
	require.NoError(t, err)
	assert.Equal(t, TypeKeyDown, msg.Type)
	assert.JSONEq(t, `{"key":"w"}`, string(msg.Data))

	_, err = NewMessage(TypeGameState, make(chan int))
	assert.Error(t, err)
}

func TestClient_PumpsRoundTrip(t *testing.T) {
	h := NewHub()
	h.OnMessage = func(cm *ClientMessage) {
		cm.Client.SendMessage(NewErrorMessage(string(cm.Data)))
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go h.Run(ctx)

	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		c := NewClient(h, conn)
		h.Register <- c
		go c.WritePump()
		go c.ReadPump()
	}))
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("ping")))
	conn.SetReadDeadline(time.Now().Add(time.Second))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var msg Message
	require.NoError(t, json.Unmarshal(data, &msg))
	assert.Equal(t, TypeError, msg.Type)
	assert.JSONEq(t, `{"message":"ping"}`, string(msg.Data))

	conn.Close()
	assert.Eventually(t, func() bool { return h.ClientCount() == 0 }, time.Second, 5*time.Millisecond)
}
