// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SportEvents Contributors

package auth

import (
	"context"
	"errors"
	"log/slog"

	"github.com/samber/oops"

	"github.com/sportevents/sportevents/pkg/errutil"
)

// Service is the entry point the transport glue calls into: registration,
// credential submission, token presentation, and logout.
type Service struct {
	users    UserRepository
	verifier CredentialVerifier
	codec    *PrincipalCodec
	sessions *Manager
	hasher   PasswordHasher
	logger   *slog.Logger
}

// NewService creates a Service.
func NewService(users UserRepository, verifier CredentialVerifier, codec *PrincipalCodec, sessions *Manager, hasher PasswordHasher) (*Service, error) {
	return NewServiceWithLogger(users, verifier, codec, sessions, hasher, slog.Default())
}

// NewServiceWithLogger creates a Service with an explicit logger.
func NewServiceWithLogger(users UserRepository, verifier CredentialVerifier, codec *PrincipalCodec, sessions *Manager, hasher PasswordHasher, logger *slog.Logger) (*Service, error) {
	if users == nil {
		return nil, oops.Code("AUTH_INVALID_DEPENDENCY").Errorf("user repository is required")
	}
	if verifier == nil {
		return nil, oops.Code("AUTH_INVALID_DEPENDENCY").Errorf("credential verifier is required")
	}
	if codec == nil {
		return nil, oops.Code("AUTH_INVALID_DEPENDENCY").Errorf("principal codec is required")
	}
	if sessions == nil {
		return nil, oops.Code("AUTH_INVALID_DEPENDENCY").Errorf("session manager is required")
	}
	if hasher == nil {
		return nil, oops.Code("AUTH_INVALID_DEPENDENCY").Errorf("password hasher is required")
	}
	if logger == nil {
		return nil, oops.Code("AUTH_INVALID_DEPENDENCY").Errorf("logger is required")
	}
	return &Service{
		users:    users,
		verifier: verifier,
		codec:    codec,
		sessions: sessions,
		hasher:   hasher,
		logger:   logger,
	}, nil
}

// Register creates a new user with the given credentials.
func (s *Service) Register(ctx context.Context, username, password string) (*User, error) {
	if err := ValidateUsername(username); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, oops.Code("AUTH_REGISTER_FAILED").
			With("operation", "hash password").
			Wrap(err)
	}

	user, err := NewUser(username, hash)
	if err != nil {
		return nil, oops.Code("AUTH_REGISTER_FAILED").
			With("operation", "create user").
			Wrap(err)
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, ErrUsernameTaken) {
			return nil, err
		}
		return nil, oops.Code("AUTH_REGISTER_FAILED").
			With("operation", "persist user").
			With("username", username).
			Wrap(err)
	}

	return user, nil
}

// Login verifies credentials and, on success, issues a session. Returns
// the authenticated user and the plaintext session token for the client.
// A failed verification returns ErrInvalidCredentials regardless of
// whether the username exists.
func (s *Service) Login(ctx context.Context, username, password string) (*User, string, error) {
	user, err := s.verifier.Verify(ctx, username, password)
	if err != nil {
		return nil, "", err
	}

	_, token, err := s.sessions.Issue(ctx, s.codec.Encode(user))
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

// CurrentUser resolves a presented token to its user. Returns (nil, nil)
// when the token is absent, unknown, expired, or revoked: the request is
// anonymous, not failed. A session whose user has been deleted is
// revoked on sight.
func (s *Service) CurrentUser(ctx context.Context, token string) (*User, error) {
	session, err := s.sessions.Resolve(ctx, token)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, nil
	}

	user, err := s.codec.Decode(ctx, session.PrincipalID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			// The user behind the session is gone. Invalidate the
			// session instead of treating the request as authenticated.
			if revokeErr := s.sessions.Revoke(ctx, token); revokeErr != nil {
				errutil.LogError(s.logger, "failed to revoke orphaned session", revokeErr)
			}
			return nil, nil
		}
		return nil, err
	}

	return user, nil
}

// Logout revokes the session for a token. Idempotent: logging out twice,
// or with a token that never existed, is not an error.
func (s *Service) Logout(ctx context.Context, token string) error {
	return s.sessions.Revoke(ctx, token)
}
