// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SportEvents Contributors

package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"time"

	"github.com/samber/oops"
)

// Session token configuration.
const (
	SessionTokenBytes = 32 // 32 bytes = 64 hex chars
)

// Session represents a live authenticated channel between a client and
// the server. Only the SHA256 hash of the token is stored; the plaintext
// token exists solely on the client.
type Session struct {
	TokenHash   string    `json:"token_hash"`
	PrincipalID string    `json:"principal_id"`
	CreatedAt   time.Time `json:"created_at"`
	ExpiresAt   time.Time `json:"expires_at"`
	LastSeenAt  time.Time `json:"last_seen_at"`
}

// NewSession creates a validated Session instance.
func NewSession(principalID, tokenHash string, expiresAt time.Time) (*Session, error) {
	if principalID == "" {
		return nil, oops.Code("SESSION_INVALID_PRINCIPAL").Errorf("principal identifier cannot be empty")
	}
	if tokenHash == "" {
		return nil, oops.Code("SESSION_INVALID_HASH").Errorf("token hash cannot be empty")
	}
	if expiresAt.IsZero() {
		return nil, oops.Code("SESSION_INVALID_EXPIRY").Errorf("expiry time cannot be zero")
	}

	now := time.Now()
	return &Session{
		TokenHash:   tokenHash,
		PrincipalID: principalID,
		CreatedAt:   now,
		ExpiresAt:   expiresAt,
		LastSeenAt:  now,
	}, nil
}

// IsExpired returns true if the session has expired.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// IsExpiredAt returns true if the session would be expired at the given time.
// Useful for testing with deterministic time values.
func (s *Session) IsExpiredAt(t time.Time) bool {
	return t.After(s.ExpiresAt)
}

// GenerateSessionToken creates a secure random token and its hash.
// Returns (plaintext_token, sha256_hash, error).
// The plaintext token is sent to the client; the hash is stored in the
// session store.
func GenerateSessionToken() (token, hash string, err error) {
	tokenBytes := make([]byte, SessionTokenBytes)
	if _, err = rand.Read(tokenBytes); err != nil {
		return "", "", oops.Code("SESSION_TOKEN_GENERATE_FAILED").
			With("operation", "crypto/rand.Read").
			With("requested_bytes", SessionTokenBytes).
			Wrap(err)
	}

	token = hex.EncodeToString(tokenBytes)
	hash = HashSessionToken(token)

	return token, hash, nil
}

// HashSessionToken computes the SHA256 hash of a session token.
// This is used to securely store tokens in the session store.
func HashSessionToken(token string) string {
	h := sha256.Sum256([]byte(token))
	return hex.EncodeToString(h[:])
}

// VerifySessionToken checks if the plaintext token matches the stored hash.
// Uses constant-time comparison to prevent timing attacks.
// Returns (true, nil) on match, (false, nil) on mismatch, or (false, error) on invalid input.
func VerifySessionToken(token, hash string) (bool, error) {
	if token == "" {
		return false, oops.Code("SESSION_TOKEN_EMPTY").Errorf("session token cannot be empty")
	}
	if hash == "" {
		return false, oops.Code("SESSION_HASH_EMPTY").Errorf("stored hash cannot be empty")
	}
	computed := HashSessionToken(token)
	// Both are hex-encoded SHA256 hashes (64 chars), use constant-time compare
	return subtle.ConstantTimeCompare([]byte(computed), []byte(hash)) == 1, nil
}

// SessionStore persists sessions in a key-value store with TTL support.
// Distinct token hashes never interfere; operations on the same token
// hash resolve with delete-wins semantics: Refresh must never recreate a
// key that Delete has removed.
type SessionStore interface {
	// Create stores a new session under its token hash with the given TTL.
	Create(ctx context.Context, session *Session, ttl time.Duration) error

	// Get retrieves a session by token hash.
	// Returns (nil, nil) if no session exists for the hash.
	Get(ctx context.Context, tokenHash string) (*Session, error)

	// Refresh rewrites an existing session with a new TTL. Returns false
	// if the session no longer exists; it must not be recreated.
	Refresh(ctx context.Context, session *Session, ttl time.Duration) (bool, error)

	// Delete removes a session by token hash. Deleting an absent session
	// is not an error.
	Delete(ctx context.Context, tokenHash string) error
}
