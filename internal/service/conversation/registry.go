package conversation

import (
	"log"
	"sync"
	"time"
)

// Registry owns the set of live sessions. Only map membership is guarded
// here; a session's internal state is managed by the session itself.
type Registry struct {
	collab Collaborators
	window time.Duration

	mu       sync.RWMutex
	sessions map[string]*Session
}

// Options tunes the registry; the zero value selects production defaults.
type Options struct {
	// DebounceWindow 覆盖默认的 2.5 秒静默窗口，主要供测试缩短等待。
	DebounceWindow time.Duration
}

// NewRegistry wires the collaborators shared by all sessions.
func NewRegistry(collab Collaborators, opts Options) *Registry {
	window := opts.DebounceWindow
	if window <= 0 {
		window = DefaultDebounceWindow
	}
	return &Registry{
		collab:   collab,
		window:   window,
		sessions: make(map[string]*Session),
	}
}

// Create registers a new live session for id. A session ID maps to at most
// one live state machine: a leftover entry under the same ID is torn down
// before the new one is installed.
func (r *Registry) Create(id string, params SessionParams, sink Sink) *Session {
	sess := newSession(id, params, r.collab, sink, r.window)

	r.mu.Lock()
	old := r.sessions[id]
	r.sessions[id] = sess
	size := len(r.sessions)
	r.mu.Unlock()

	if old != nil {
		log.Printf("[conversation] replacing live session id=%s", id)
		old.shutdown()
	}
	metricSessionsActive.Set(float64(size))
	return sess
}

// Get looks up a live session.
func (r *Registry) Get(id string) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sess, ok := r.sessions[id]
	return sess, ok
}

// Destroy cancels all outstanding work owned by the session and removes it.
// Destroying an unknown ID is a no-op.
func (r *Registry) Destroy(id string) {
	r.mu.Lock()
	sess := r.sessions[id]
	delete(r.sessions, id)
	size := len(r.sessions)
	r.mu.Unlock()

	if sess == nil {
		return
	}
	sess.shutdown()
	metricSessionsActive.Set(float64(size))
	log.Printf("[conversation] destroyed session id=%s", id)
}

// Len reports the number of live sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
