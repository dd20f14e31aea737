package testutil

import (
	"context"
	"sync"

	"github.com/nexonoperations/tutorbill/internal/domain/session"
	ierr "github.com/nexonoperations/tutorbill/internal/errors"
)

type sessionKey struct {
	studentID string
	id        string
}

// InMemorySessionStore is an in-memory implementation of the session repository
type InMemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[sessionKey]*session.Session
	// order preserves insertion order per student, the way a range query
	// over a sort key would return rows
	order []sessionKey
}

// NewInMemorySessionStore creates a new instance of InMemorySessionStore
func NewInMemorySessionStore() *InMemorySessionStore {
	return &InMemorySessionStore{
		sessions: make(map[sessionKey]*session.Session),
	}
}

func copySession(s *session.Session) *session.Session {
	if s == nil {
		return nil
	}
	cp := *s
	return &cp
}

func (s *InMemorySessionStore) Upsert(ctx context.Context, sess *session.Session) error {
	if sess == nil {
		return ierr.NewError("session cannot be nil").
			WithHint("session cannot be nil").
			Mark(ierr.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := sessionKey{studentID: sess.StudentID, id: sess.ID}
	if _, ok := s.sessions[key]; !ok {
		s.order = append(s.order, key)
	}
	s.sessions[key] = copySession(sess)
	return nil
}

func (s *InMemorySessionStore) Get(ctx context.Context, studentID, id string) (*session.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[sessionKey{studentID: studentID, id: id}]
	if !ok {
		return nil, ierr.NewErrorf("session not found: %s", id).
			WithHint("session not found").
			Mark(ierr.ErrNotFound)
	}
	return copySession(sess), nil
}

func (s *InMemorySessionStore) ListByStudent(ctx context.Context, studentID string) ([]*session.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var sessions []*session.Session
	for _, key := range s.order {
		if key.studentID != studentID {
			continue
		}
		if sess, ok := s.sessions[key]; ok {
			sessions = append(sessions, copySession(sess))
		}
	}
	return sessions, nil
}

func (s *InMemorySessionStore) Delete(ctx context.Context, studentID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, sessionKey{studentID: studentID, id: id})
	return nil
}

func (s *InMemorySessionStore) MarkSent(ctx context.Context, studentID string, sessionIDs []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range sessionIDs {
		if sess, ok := s.sessions[sessionKey{studentID: studentID, id: id}]; ok {
			sess.Sent = true
		}
	}
	return nil
}

// Clear removes all sessions from the store
func (s *InMemorySessionStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions = make(map[sessionKey]*session.Session)
	s.order = nil
}
