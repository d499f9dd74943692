package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ugaemi/tramchase/internal/session"
	"github.com/ugaemi/tramchase/internal/ws"
)

func setupHTTP(t *testing.T) (*gin.Engine, *session.Manager) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	sm := session.NewManager()
	t.Cleanup(sm.Shutdown)

	r := gin.New()
	NewHTTPHandler(sm, ws.NewHub()).Register(r)
	return r, sm
}

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	r.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	r, sm := setupHTTP(t)
	sm.Create(testDefaults())

	w := get(r, "/health")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Status   string `json:"status"`
		Sessions int    `json:"sessions"`
		Clients  int    `json:"clients"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body.Status)
	assert.Equal(t, 1, body.Sessions)
	assert.Zero(t, body.Clients)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestListSessions(t *testing.T) {
	r, sm := setupHTTP(t)
	s := sm.Create(testDefaults())

	w := get(r, "/sessions")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Sessions []struct {
			Code  string `json:"code"`
			State string `json:"state"`
			Mode  string `json:"mode"`
		} `json:"sessions"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Sessions, 1)
	assert.Equal(t, s.Code, body.Sessions[0].Code)
	assert.Equal(t, "waiting", body.Sessions[0].State)
	assert.Equal(t, "time", body.Sessions[0].Mode)
}

func TestGetSession(t *testing.T) {
	r, sm := setupHTTP(t)
	s := sm.Create(testDefaults())
	s.SetController(&ws.Client{ID: "c1", Send: make(chan []byte, 256)})
	require.NoError(t, s.Prepare())

	w := get(r, "/sessions/"+s.Code)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		ID    string `json:"id"`
		State string `json:"state"`
		Clock string `json:"clock"`
		Stats struct {
			Score int `json:"score"`
		} `json:"stats"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, s.ID, body.ID)
	assert.Equal(t, "playing", body.State)
	assert.Equal(t, "07:20:00", body.Clock)
	assert.Zero(t, body.Stats.Score)
}

func TestGetSession_NotFound(t *testing.T) {
	r, _ := setupHTTP(t)

	w := get(r, "/sessions/NOPE1")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCORSPreflight(t *testing.T) {
	r, _ := setupHTTP(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/sessions", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
}
