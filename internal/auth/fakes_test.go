// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SportEvents Contributors

package auth_test

import (
	"context"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/sportevents/sportevents/internal/auth"
)

// fakeUserRepo is an in-memory auth.UserRepository for tests.
type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*auth.User // keyed by ID string

	// getErr, when set, is returned by every lookup to simulate an
	// unavailable store.
	getErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*auth.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *auth.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == user.Username {
			return auth.ErrUsernameTaken
		}
	}
	copied := *user
	r.users[user.ID.String()] = &copied
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id ulid.ULID) (*auth.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.getErr != nil {
		return nil, r.getErr
	}
	user, ok := r.users[id.String()]
	if !ok {
		return nil, auth.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*auth.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.getErr != nil {
		return nil, r.getErr
	}
	for _, user := range r.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, auth.ErrNotFound
}

func (r *fakeUserRepo) Update(_ context.Context, user *auth.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID.String()]; !ok {
		return auth.ErrNotFound
	}
	copied := *user
	r.users[user.ID.String()] = &copied
	return nil
}

func (r *fakeUserRepo) UpdatePassword(_ context.Context, id ulid.ULID, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id.String()]
	if !ok {
		return auth.ErrNotFound
	}
	user.PasswordHash = passwordHash
	user.UpdatedAt = time.Now()
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id ulid.ULID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id.String()]; !ok {
		return auth.ErrNotFound
	}
	delete(r.users, id.String())
	return nil
}

var _ auth.UserRepository = (*fakeUserRepo)(nil)

// flakySessionStore wraps a SessionStore and fails the first getFailures
// calls to Get with failErr. Used to exercise the bounded resolve retry.
type flakySessionStore struct {
	auth.SessionStore

	mu          sync.Mutex
	getFailures int
	failErr     error
	getCalls    int
}

func (s *flakySessionStore) Get(ctx context.Context, tokenHash string) (*auth.Session, error) {
	s.mu.Lock()
	s.getCalls++
	fail := s.getFailures > 0
	if fail {
		s.getFailures--
	}
	s.mu.Unlock()

	if fail {
		return nil, s.failErr
	}
	return s.SessionStore.Get(ctx, tokenHash)
}
