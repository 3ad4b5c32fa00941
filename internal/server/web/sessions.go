package web

import (
	"sync"
	"time"

	"github.com/dmitrijs2005/s3share/internal/identity"
	"github.com/dmitrijs2005/s3share/internal/metrics"
)

// SessionStore maps session cookie values to signed-in sessions. Sessions
// live in memory only; a restart signs everybody out.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*identity.Session
	now      func() time.Time
	metrics  *metrics.Metrics
}

func NewSessionStore(m *metrics.Metrics) *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*identity.Session),
		now:      time.Now,
		metrics:  m,
	}
}

func (s *SessionStore) Put(sess *identity.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = sess
	s.report()
}

// Get returns the session with id. Expired sessions are dropped and
// reported as missing.
func (s *SessionStore) Get(id string) (*identity.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	if !sess.Authenticated(s.now()) {
		delete(s.sessions, id)
		s.report()
		return nil, false
	}
	return sess, true
}

func (s *SessionStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	s.report()
}

// Sweep removes every expired session and returns how many were removed.
func (s *SessionStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	removed := 0
	for id, sess := range s.sessions {
		if !sess.Authenticated(now) {
			delete(s.sessions, id)
			removed++
		}
	}
	s.report()
	return removed
}

func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// report must be called with mu held.
func (s *SessionStore) report() {
	if s.metrics != nil {
		s.metrics.Sessions.Set(float64(len(s.sessions)))
	}
}
