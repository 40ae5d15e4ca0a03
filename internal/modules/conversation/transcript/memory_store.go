package transcript

import (
	"context"
	"sync"
)

// MemoryStore keeps transcripts in process memory; they are lost on restart.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	locks    *KeyedMutex
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: map[string]*Session{},
		locks:    NewKeyedMutex(),
	}
}

func (s *MemoryStore) Create(ctx context.Context, sess Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[sess.ID]; ok {
		return ErrExists
	}
	cp := sess
	cp.Turns = append([]Turn(nil), sess.Turns...)
	s.sessions[sess.ID] = &cp
	return nil
}

func (s *MemoryStore) Append(ctx context.Context, sessionID string, turns ...Turn) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		return ErrNotFound
	}
	sess.Turns = append(sess.Turns, turns...)
	return nil
}

func (s *MemoryStore) Read(ctx context.Context, sessionID string) (Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		return Session{}, ErrNotFound
	}
	out := *sess
	out.Turns = append([]Turn(nil), sess.Turns...)
	return out, nil
}

func (s *MemoryStore) Delete(ctx context.Context, sessionID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.sessions[sessionID]
	delete(s.sessions, sessionID)
	return ok, nil
}

func (s *MemoryStore) Lock(sessionID string) func() {
	return s.locks.Lock(sessionID)
}

func (s *MemoryStore) Count(ctx context.Context) (int, error) {
	return s.Len(), nil
}

func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
