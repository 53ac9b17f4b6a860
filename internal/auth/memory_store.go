// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SportEvents Contributors

package auth

import (
	"context"
	"sync"
	"time"
)

// InMemorySessionStore is an in-memory implementation of SessionStore.
// It is used in tests and single-process development; production runs
// use the Redis-backed store so sessions survive restarts and are shared
// across processes.
type InMemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]memorySession
	now      func() time.Time
}

type memorySession struct {
	session  Session
	deadline time.Time
}

// NewInMemorySessionStore creates a new in-memory session store.
func NewInMemorySessionStore() *InMemorySessionStore {
	return &InMemorySessionStore{
		sessions: make(map[string]memorySession),
		now:      time.Now,
	}
}

// Create stores a new session under its token hash with the given TTL.
func (s *InMemorySessionStore) Create(_ context.Context, session *Session, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.TokenHash] = memorySession{
		session:  *session,
		deadline: s.now().Add(ttl),
	}
	return nil
}

// Get retrieves a session by token hash. Expired entries are dropped
// lazily, mirroring Redis key expiry.
func (s *InMemorySessionStore) Get(_ context.Context, tokenHash string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.sessions[tokenHash]
	if !ok {
		return nil, nil
	}
	if s.now().After(entry.deadline) {
		delete(s.sessions, tokenHash)
		return nil, nil
	}
	session := entry.session
	return &session, nil
}

// Refresh rewrites an existing session with a new TTL. A session that
// has been deleted or has expired is not recreated.
func (s *InMemorySessionStore) Refresh(_ context.Context, session *Session, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.sessions[session.TokenHash]
	if !ok || s.now().After(entry.deadline) {
		delete(s.sessions, session.TokenHash)
		return false, nil
	}
	s.sessions[session.TokenHash] = memorySession{
		session:  *session,
		deadline: s.now().Add(ttl),
	}
	return true, nil
}

// Delete removes a session by token hash.
func (s *InMemorySessionStore) Delete(_ context.Context, tokenHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, tokenHash)
	return nil
}

// SetClock overrides the time source. Only for tests.
func (s *InMemorySessionStore) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// Compile-time interface check.
var _ SessionStore = (*InMemorySessionStore)(nil)
