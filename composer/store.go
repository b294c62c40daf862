package composer

import (
	"sync"

	"github.com/google/uuid"
)

// Store is the registry of live editing sessions, one per project. It is
// injected into the handlers instead of living as a package global.
type Store struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
}

// NewStore returns an empty session registry.
func NewStore() *Store {
	return &Store{sessions: make(map[uuid.UUID]*Session)}
}

// Get returns the live session for a project, if one exists.
func (st *Store) Get(projectID uuid.UUID) (*Session, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.sessions[projectID]
	return s, ok
}

// GetOrCreate returns the live session for a project, creating an empty
// one if none exists yet.
func (st *Store) GetOrCreate(projectID uuid.UUID) *Session {
	st.mu.Lock()
	defer st.mu.Unlock()
	if s, ok := st.sessions[projectID]; ok {
		return s
	}
	s := NewSession(projectID)
	st.sessions[projectID] = s
	return s
}

// Put replaces the live session for a project, stopping any playback on
// the session it displaces.
func (st *Store) Put(s *Session) {
	st.mu.Lock()
	defer st.mu.Unlock()
	if old, ok := st.sessions[s.ProjectID]; ok && old != s {
		old.Stop()
	}
	st.sessions[s.ProjectID] = s
}

// Delete drops a project's live session, stopping playback first.
func (st *Store) Delete(projectID uuid.UUID) {
	st.mu.Lock()
	defer st.mu.Unlock()
	if s, ok := st.sessions[projectID]; ok {
		s.Stop()
		delete(st.sessions, projectID)
	}
}
