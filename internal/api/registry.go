package api

import (
	"sync"

	"github.com/abhisek/quizprep/internal/practice"
)

// Registry maps session IDs to live sessions. It is the only structure
// shared between requests; each session is further guarded by its own lock
// so requests for one session run one at a time.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*entry
}

type entry struct {
	mu   sync.Mutex
	sess *practice.Session
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{sessions: make(map[string]*entry)}
}

// Add registers sess under its ID.
func (r *Registry) Add(sess *practice.Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[sess.ID] = &entry{sess: sess}
}

// With runs fn while holding the lock of the session with the given ID.
// It reports false when the session does not exist.
func (r *Registry) With(id string, fn func(*practice.Session)) bool {
	r.mu.Lock()
	e, ok := r.sessions[id]
	r.mu.Unlock()
	if !ok {
		return false
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	fn(e.sess)
	return true
}

// Remove drops the session and reports whether it existed.
func (r *Registry) Remove(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.sessions[id]
	delete(r.sessions, id)
	return ok
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
