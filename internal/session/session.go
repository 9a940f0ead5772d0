// Package session tracks per-conversation state. Each session owns its cart,
// so concurrent users never race on shared cart entries.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Session represents one conversation with the concierge.
type Session struct {
	ID        string
	CreatedAt time.Time
	UpdatedAt time.Time

	mu   sync.Mutex
	cart *Cart
}

// Touch records activity on the session.
func (s *Session) Touch() {
	s.mu.Lock()
	s.UpdatedAt = time.Now()
	s.mu.Unlock()
}

// Manager issues and resolves sessions.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewManager creates an empty session manager.
func NewManager() *Manager {
	return &Manager{sessions: make(map[string]*Session)}
}

// Get resolves a session by id, creating a fresh one when the id is empty or
// unknown. The returned session's ID is authoritative; callers echo it back
// to the client.
func (m *Manager) Get(id string) *Session {
	if id != "" {
		m.mu.RLock()
		s, ok := m.sessions[id]
		m.mu.RUnlock()
		if ok {
			return s
		}
	}

	now := time.Now()
	s := &Session{
		ID:        uuid.NewString(),
		CreatedAt: now,
		UpdatedAt: now,
		cart:      newCart(),
	}
	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()
	return s
}

// Count returns the number of live sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
