// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SportEvents Contributors

package auth

import (
	"context"
	"errors"

	"github.com/samber/oops"
)

// CredentialVerifier verifies a username/password pair and returns the
// matching user. Implementations are pluggable strategies; LocalVerifier
// is the username/password strategy backed by the user repository.
//
// Verify returns ErrInvalidCredentials for both unknown usernames and
// wrong passwords, with no distinguishing information. Any other error
// is a service failure, not an authentication outcome.
type CredentialVerifier interface {
	Verify(ctx context.Context, username, password string) (*User, error)
}

// dummyPasswordHash is used when a user doesn't exist to prevent timing attacks.
// We still run password verification to make response time consistent.
// This is NOT a real credential - it's a fake hash that will never match any password.
//
//nolint:gosec // G101: This is an intentionally fake hash for timing attack prevention, not a credential.
const dummyPasswordHash = "$argon2id$v=19$m=65536,t=1,p=4$AAAAAAAAAAAAAAAAAAAAAA$AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"

// LocalVerifier implements CredentialVerifier against the local user store.
type LocalVerifier struct {
	users  UserRepository
	hasher PasswordHasher
}

// NewLocalVerifier creates a LocalVerifier.
func NewLocalVerifier(users UserRepository, hasher PasswordHasher) (*LocalVerifier, error) {
	if users == nil {
		return nil, oops.Code("AUTH_INVALID_DEPENDENCY").Errorf("user repository is required")
	}
	if hasher == nil {
		return nil, oops.Code("AUTH_INVALID_DEPENDENCY").Errorf("password hasher is required")
	}
	return &LocalVerifier{users: users, hasher: hasher}, nil
}

// Verify authenticates a username/password pair.
// Uses constant-time operations to prevent timing-based username enumeration:
// lookup of an unknown username still verifies against a dummy hash before
// returning the same ErrInvalidCredentials as a wrong password.
func (v *LocalVerifier) Verify(ctx context.Context, username, password string) (*User, error) {
	user, lookupErr := v.users.GetByUsername(ctx, username)

	// Determine which hash to verify against (real or dummy for timing attack prevention)
	var targetHash string
	var userExists bool

	if lookupErr != nil {
		if errors.Is(lookupErr, ErrNotFound) {
			targetHash = dummyPasswordHash
			userExists = false
		} else {
			return nil, oops.Code("AUTH_VERIFY_FAILED").
				With("operation", "get user by username").
				Wrap(lookupErr)
		}
	} else {
		targetHash = user.PasswordHash
		userExists = true
	}

	// Always verify the password, even against the dummy hash.
	valid, verifyErr := v.hasher.Verify(password, targetHash)
	if verifyErr != nil {
		// For dummy hash verification errors, just treat as invalid
		if !userExists {
			return nil, ErrInvalidCredentials
		}
		return nil, oops.Code("AUTH_VERIFY_FAILED").
			With("operation", "verify password").
			Wrap(verifyErr)
	}

	// If the user doesn't exist OR the password is wrong, return the same error.
	if !userExists || !valid {
		if userExists {
			// Record failure only for existing users
			user.RecordFailure()
			_ = v.users.Update(ctx, user) //nolint:errcheck // Best effort
		}
		return nil, ErrInvalidCredentials
	}

	// Check lockout AFTER password verification to maintain constant time
	if user.IsLocked() {
		return nil, ErrAccountLocked
	}

	// Success - reset failure counter
	user.RecordSuccess()

	// Check if the stored hash needs an upgrade (e.g., from bcrypt to argon2id)
	if v.hasher.NeedsUpgrade(user.PasswordHash) {
		newHash, hashErr := v.hasher.Hash(password)
		if hashErr == nil {
			user.PasswordHash = newHash
		}
	}

	// Update the user with the reset failure count (and possibly upgraded hash).
	// Ignore errors - verification should succeed even if the update fails.
	_ = v.users.Update(ctx, user) //nolint:errcheck // Best effort, login succeeds regardless

	return user, nil
}

// Compile-time interface check.
var _ CredentialVerifier = (*LocalVerifier)(nil)
