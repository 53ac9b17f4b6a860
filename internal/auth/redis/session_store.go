// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SportEvents Contributors

// Package redis implements auth.SessionStore on a Redis key-value store.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/samber/oops"

	"github.com/sportevents/sportevents/internal/auth"
)

// keyPrefix namespaces session keys in the shared Redis database.
const keyPrefix = "session:"

// SessionStore implements auth.SessionStore using Redis. Keys carry the
// session TTL, so expiry is enforced by Redis itself; an expired session
// is simply a missing key.
type SessionStore struct {
	client redis.UniversalClient
}

// NewSessionStore creates a Redis-backed session store.
func NewSessionStore(client redis.UniversalClient) (*SessionStore, error) {
	if client == nil {
		return nil, oops.Code("SESSION_INVALID_DEPENDENCY").Errorf("redis client is required")
	}
	return &SessionStore{client: client}, nil
}

func key(tokenHash string) string {
	return keyPrefix + tokenHash
}

// Create stores a new session under its token hash with the given TTL.
func (s *SessionStore) Create(ctx context.Context, session *auth.Session, ttl time.Duration) error {
	if ttl <= 0 {
		return oops.Code("SESSION_INVALID_EXPIRY").Errorf("session TTL must be positive")
	}

	data, err := json.Marshal(session)
	if err != nil {
		return oops.Code("SESSION_ENCODE_FAILED").
			With("operation", "marshal session").
			Wrap(err)
	}

	if err := s.client.Set(ctx, key(session.TokenHash), data, ttl).Err(); err != nil {
		return oops.Code("SESSION_CREATE_FAILED").
			With("operation", "redis set").
			Wrap(err)
	}
	return nil
}

// Get retrieves a session by token hash. Returns (nil, nil) when the key
// is missing, which covers both revoked and expired sessions.
func (s *SessionStore) Get(ctx context.Context, tokenHash string) (*auth.Session, error) {
	val, err := s.client.Get(ctx, key(tokenHash)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, oops.Code("SESSION_GET_FAILED").
			With("operation", "redis get").
			Wrap(err)
	}

	var session auth.Session
	if err := json.Unmarshal([]byte(val), &session); err != nil {
		return nil, oops.Code("SESSION_DECODE_FAILED").
			With("operation", "unmarshal session").
			Wrap(err)
	}
	return &session, nil
}

// Refresh rewrites an existing session with a new TTL. Uses SET XX so
// the write only lands if the key still exists: a refresh racing a
// revoke can never resurrect the session.
func (s *SessionStore) Refresh(ctx context.Context, session *auth.Session, ttl time.Duration) (bool, error) {
	if ttl <= 0 {
		return false, oops.Code("SESSION_INVALID_EXPIRY").Errorf("session TTL must be positive")
	}

	data, err := json.Marshal(session)
	if err != nil {
		return false, oops.Code("SESSION_ENCODE_FAILED").
			With("operation", "marshal session").
			Wrap(err)
	}

	ok, err := s.client.SetXX(ctx, key(session.TokenHash), data, ttl).Result()
	if err != nil {
		return false, oops.Code("SESSION_REFRESH_FAILED").
			With("operation", "redis set xx").
			Wrap(err)
	}
	return ok, nil
}

// Delete removes a session by token hash. Deleting an absent key is a
// no-op on the Redis side, which gives revocation its idempotence.
func (s *SessionStore) Delete(ctx context.Context, tokenHash string) error {
	if err := s.client.Del(ctx, key(tokenHash)).Err(); err != nil {
		return oops.Code("SESSION_DELETE_FAILED").
			With("operation", "redis del").
			Wrap(err)
	}
	return nil
}

// Compile-time interface check.
var _ auth.SessionStore = (*SessionStore)(nil)
