package session

import (
	"errors"
	"sync"
	"time"
)

// ErrNotFound is returned for an unknown session id.
var ErrNotFound = errors.New("session not found")

// Store keeps live sessions in memory. Sessions are lost on restart.
type Store struct {
	mu       sync.Mutex
	sessions map[string]State
	now      func() time.Time
}

// NewStore returns an empty Store. A nil clock uses time.Now.
func NewStore(now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}
	return &Store{sessions: make(map[string]State), now: now}
}

// Create registers a fresh session and returns its snapshot.
func (st *Store) Create() State {
	s := New(st.now())
	st.mu.Lock()
	st.sessions[s.ID] = s
	st.mu.Unlock()
	return s.Clone()
}

// Get returns a snapshot of session id.
func (st *Store) Get(id string) (State, error) {
	st.mu.Lock()
	defer st.mu.Unlock()
	s, ok := st.sessions[id]
	if !ok {
		return State{}, ErrNotFound
	}
	return s.Clone(), nil
}

// Dispatch applies a to session id atomically and returns the new snapshot.
// When the action is rejected the stored state is left as it was.
func (st *Store) Dispatch(id string, a Action) (State, error) {
	st.mu.Lock()
	defer st.mu.Unlock()
	s, ok := st.sessions[id]
	if !ok {
		return State{}, ErrNotFound
	}
	next, err := Reduce(s, a, st.now())
	if err != nil {
		return s.Clone(), err
	}
	st.sessions[id] = next
	return next.Clone(), nil
}

// Prune drops sessions not updated since before cutoff and returns how many
// were removed.
func (st *Store) Prune(cutoff time.Time) int {
	st.mu.Lock()
	defer st.mu.Unlock()
	n := 0
	for id, s := range st.sessions {
		if s.UpdatedAt.Before(cutoff) {
			delete(st.sessions, id)
			n++
		}
	}
	return n
}

// Len returns the number of live sessions.
func (st *Store) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}
