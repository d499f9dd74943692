package session

import (
	"log/slog"
	"slices"
	"strings"
	"sync"
)

// Manager manages all active sessions.
type Manager struct {
	sessions map[string]*Session // code -> session
	mu       sync.RWMutex
}

// NewManager creates a new session manager.
func NewManager() *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
	}
}

// Create registers a new waiting session under a fresh code.
func (m *Manager) Create(settings Settings) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	code := GenerateCode(func(c string) bool {
		_, ok := m.sessions[c]
		return ok
	})
	s := New(code, settings)
	m.sessions[code] = s

	slog.Info("session created", "code", code, "id", s.ID, "mode", settings.Mode.String())
	return s
}

// Get returns a session by its code. Codes are case-insensitive.
func (m *Manager) Get(code string) *Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sessions[strings.ToUpper(code)]
}

// Remove closes and forgets a session.
func (m *Manager) Remove(code string) {
	code = strings.ToUpper(code)
	m.mu.Lock()
	s, ok := m.sessions[code]
	delete(m.sessions, code)
	m.mu.Unlock()

	if !ok {
		return
	}
	s.Close()
	slog.Info("session removed", "code", code)
}

// Count returns the number of active sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// FindByClient finds the session a client steers or watches.
func (m *Manager) FindByClient(clientID string) *Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, s := range m.sessions {
		if s.HasClient(clientID) {
			return s
		}
	}
	return nil
}

// List returns a snapshot of every session ordered by creation time.
func (m *Manager) List() []Info {
	m.mu.RLock()
	sessions := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		sessions = append(sessions, s)
	}
	m.mu.RUnlock()

	infos := make([]Info, 0, len(sessions))
	for _, s := range sessions {
		infos = append(infos, s.Info())
	}
	slices.SortFunc(infos, func(a, b Info) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})
	return infos
}

// Shutdown closes every session. Used on server shutdown before the hub stops.
func (m *Manager) Shutdown() {
	m.mu.Lock()
	sessions := m.sessions
	m.sessions = make(map[string]*Session)
	m.mu.Unlock()

	for _, s := range sessions {
		s.Close()
	}
	slog.Info("sessions closed", "count", len(sessions))
}
