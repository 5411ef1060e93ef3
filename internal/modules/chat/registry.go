package chat

import (
	"crypto/rand"
	"encoding/hex"
	"sync"
)

// Registry maps session ids to live sessions for the HTTP layer. Purely
// in-process: restarting the server discards every conversation, which is
// the intended lifetime.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{sessions: make(map[string]*Session)}
}

// Put stores the session under a fresh id and returns the id.
func (r *Registry) Put(sess *Session) string {
	id := newSessionID()
	r.mu.Lock()
	r.sessions[id] = sess
	r.mu.Unlock()
	return id
}

// Get looks up a session by id.
func (r *Registry) Get(id string) (*Session, error) {
	r.mu.RLock()
	sess, ok := r.sessions[id]
	r.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

// Delete drops the session. Dropping the reference is the whole disposal
// protocol; the engine handle has no close of its own.
func (r *Registry) Delete(id string) {
	r.mu.Lock()
	delete(r.sessions, id)
	r.mu.Unlock()
}

// newSessionID generates a 32-char hex id.
func newSessionID() string {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		panic("crypto/rand unavailable: " + err.Error())
	}
	return hex.EncodeToString(b[:])
}
