package entry

import "sync"

// SessionManager tracks in-flight wizard sessions by id.
type SessionManager struct {
	sessions map[string]*Session
	mu       sync.RWMutex
}

// NewSessionManager creates an empty session manager.
func NewSessionManager() *SessionManager {
	return &SessionManager{
		sessions: make(map[string]*Session),
	}
}

// Create starts a new session and registers it.
func (sm *SessionManager) Create() *Session {
	session := NewSession()

	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.sessions[session.ID()] = session
	return session
}

// Get retrieves a session by id.
func (sm *SessionManager) Get(id string) (*Session, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	session, ok := sm.sessions[id]
	return session, ok
}

// Remove discards a finished or abandoned session.
func (sm *SessionManager) Remove(id string) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	delete(sm.sessions, id)
}
