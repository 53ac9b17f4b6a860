// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SportEvents Contributors

package auth

import (
	"context"
	"time"

	"github.com/samber/oops"
	"github.com/sethvargo/go-retry"
)

// Session manager defaults.
const (
	// DefaultSessionWindow is the sliding expiry window. Matches the
	// one-day cookie lifetime of the original application.
	DefaultSessionWindow = 24 * time.Hour

	// DefaultStoreTimeout bounds every session store call.
	DefaultStoreTimeout = 3 * time.Second

	// resolveRetryBackoff is the pause before the single retry of a
	// failed session resolution.
	resolveRetryBackoff = 100 * time.Millisecond
)

// Manager issues, resolves, refreshes, and revokes sessions bound to an
// opaque token. Session state lives in the injected SessionStore, never
// in process memory, so the manager is safe to run in any number of
// concurrent processes.
type Manager struct {
	store   SessionStore
	window  time.Duration
	timeout time.Duration
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithWindow sets the sliding expiry window.
func WithWindow(window time.Duration) ManagerOption {
	return func(m *Manager) {
		m.window = window
	}
}

// WithStoreTimeout sets the per-call store timeout.
func WithStoreTimeout(timeout time.Duration) ManagerOption {
	return func(m *Manager) {
		m.timeout = timeout
	}
}

// NewManager creates a session Manager backed by the given store.
func NewManager(store SessionStore, opts ...ManagerOption) (*Manager, error) {
	if store == nil {
		return nil, oops.Code("AUTH_INVALID_DEPENDENCY").Errorf("session store is required")
	}

	m := &Manager{
		store:   store,
		window:  DefaultSessionWindow,
		timeout: DefaultStoreTimeout,
	}
	for _, opt := range opts {
		opt(m)
	}

	if m.window <= 0 {
		return nil, oops.Code("AUTH_INVALID_DEPENDENCY").Errorf("session window must be positive")
	}
	if m.timeout <= 0 {
		return nil, oops.Code("AUTH_INVALID_DEPENDENCY").Errorf("store timeout must be positive")
	}
	return m, nil
}

// Window returns the configured sliding expiry window.
func (m *Manager) Window() time.Duration {
	return m.window
}

// Issue creates a session for the given principal identifier and returns
// the session together with the plaintext token for the client.
func (m *Manager) Issue(ctx context.Context, principalID string) (*Session, string, error) {
	token, tokenHash, err := GenerateSessionToken()
	if err != nil {
		return nil, "", oops.Code("SESSION_ISSUE_FAILED").
			With("operation", "generate session token").
			Wrap(err)
	}

	session, err := NewSession(principalID, tokenHash, time.Now().Add(m.window))
	if err != nil {
		return nil, "", oops.Code("SESSION_ISSUE_FAILED").
			With("operation", "create session").
			Wrap(err)
	}

	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	if err := m.store.Create(ctx, session, m.window); err != nil {
		return nil, "", oops.Code("SESSION_CREATE_FAILED").
			With("operation", "persist session").
			Wrap(err)
	}

	return session, token, nil
}

// Resolve maps a token to its session, extending the expiry window from
// now (sliding expiration). Returns (nil, nil) when no valid session
// exists for the token: unknown, expired, and revoked tokens are all
// indistinguishable absences.
//
// The store read is retried once on transient failure. The read is
// idempotent, so the retry cannot cause a double side effect; the
// refresh write is never retried.
func (m *Manager) Resolve(ctx context.Context, token string) (*Session, error) {
	if token == "" {
		return nil, nil
	}

	tokenHash := HashSessionToken(token)

	var session *Session
	backoff := retry.WithMaxRetries(1, retry.NewConstant(resolveRetryBackoff))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		getCtx, cancel := context.WithTimeout(ctx, m.timeout)
		defer cancel()

		var getErr error
		session, getErr = m.store.Get(getCtx, tokenHash)
		if getErr != nil {
			return retry.RetryableError(getErr)
		}
		return nil
	})
	if err != nil {
		return nil, oops.Code("SESSION_RESOLVE_FAILED").
			With("operation", "get session by token hash").
			Wrap(err)
	}

	if session == nil || session.IsExpired() {
		return nil, nil
	}

	// Sliding expiration: extend the window from now and persist. The
	// refresh only rewrites a key that still exists, so a concurrent
	// revoke always wins.
	now := time.Now()
	session.ExpiresAt = now.Add(m.window)
	session.LastSeenAt = now

	refreshCtx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	ok, err := m.store.Refresh(refreshCtx, session, m.window)
	if err != nil {
		return nil, oops.Code("SESSION_REFRESH_FAILED").
			With("operation", "refresh session expiry").
			Wrap(err)
	}
	if !ok {
		// Revoked between the read and the refresh.
		return nil, nil
	}

	return session, nil
}

// Revoke deletes the session for a token. Revoking an unknown or
// already-revoked token is not an error.
func (m *Manager) Revoke(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	if err := m.store.Delete(ctx, HashSessionToken(token)); err != nil {
		return oops.Code("SESSION_REVOKE_FAILED").
			With("operation", "delete session").
			Wrap(err)
	}
	return nil
}
