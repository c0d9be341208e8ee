package session

import (
	"context"
	"sync"
	"time"
)

type memorySession struct {
	flags   Flags
	created time.Time
}

type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*memorySession
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]*memorySession)}
}

func (s *MemoryStore) Get(_ context.Context, token string) (Flags, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	flags := Flags{}
	if sess, ok := s.sessions[token]; ok {
		for k, v := range sess.flags {
			flags[k] = v
		}
	}
	return flags, nil
}

func (s *MemoryStore) Set(_ context.Context, token string, flag string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[token]
	if !ok {
		sess = &memorySession{flags: Flags{}, created: time.Now()}
		s.sessions[token] = sess
	}
	sess.flags[flag] = true
	return nil
}

func (s *MemoryStore) Clear(_ context.Context, token string, flag string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[token]
	if !ok {
		return nil
	}
	delete(sess.flags, flag)
	if len(sess.flags) == 0 {
		delete(s.sessions, token)
	}
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, token)
	return nil
}

func (s *MemoryStore) Sweep(_ context.Context, before time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for token, sess := range s.sessions {
		if sess.created.Before(before) {
			delete(s.sessions, token)
			n++
		}
	}
	return n, nil
}
