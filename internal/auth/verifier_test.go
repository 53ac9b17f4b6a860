// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SportEvents Contributors

package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/sportevents/sportevents/internal/auth"
)

// registerUser stores a user with an argon2id hash of password.
func registerUser(t *testing.T, repo *fakeUserRepo, username, password string) *auth.User {
	t.Helper()

	hasher := auth.NewArgon2idHasher()
	hash, err := hasher.Hash(password)
	require.NoError(t, err)

	user, err := auth.NewUser(username, hash)
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), user))
	return user
}

func TestLocalVerifier_Success(t *testing.T) {
	repo := newFakeUserRepo()
	alice := registerUser(t, repo, "alice", "alice secret")

	verifier, err := auth.NewLocalVerifier(repo, auth.NewArgon2idHasher())
	require.NoError(t, err)

	user, err := verifier.Verify(context.Background(), "alice", "alice secret")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, user.ID)
}

func TestLocalVerifier_IdenticalRejection(t *testing.T) {
	repo := newFakeUserRepo()
	registerUser(t, repo, "alice", "alice secret")

	verifier, err := auth.NewLocalVerifier(repo, auth.NewArgon2idHasher())
	require.NoError(t, err)
	ctx := context.Background()

	_, wrongPassword := verifier.Verify(ctx, "alice", "not her password")
	_, unknownUser := verifier.Verify(ctx, "nobody", "anything")

	// An attacker probing usernames must see the exact same failure
	// either way.
	require.Error(t, wrongPassword)
	require.Error(t, unknownUser)
	assert.ErrorIs(t, wrongPassword, auth.ErrInvalidCredentials)
	assert.ErrorIs(t, unknownUser, auth.ErrInvalidCredentials)
	assert.Equal(t, wrongPassword.Error(), unknownUser.Error())
}

func TestLocalVerifier_CaseSensitiveUsername(t *testing.T) {
	repo := newFakeUserRepo()
	registerUser(t, repo, "alice", "alice secret")

	verifier, err := auth.NewLocalVerifier(repo, auth.NewArgon2idHasher())
	require.NoError(t, err)

	_, err = verifier.Verify(context.Background(), "Alice", "alice secret")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLocalVerifier_StoreErrorIsNotRejection(t *testing.T) {
	repo := newFakeUserRepo()
	repo.getErr = errors.New("connection refused")

	verifier, err := auth.NewLocalVerifier(repo, auth.NewArgon2idHasher())
	require.NoError(t, err)

	_, err = verifier.Verify(context.Background(), "alice", "alice secret")
	require.Error(t, err)
	assert.NotErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLocalVerifier_Lockout(t *testing.T) {
	repo := newFakeUserRepo()
	registerUser(t, repo, "alice", "alice secret")

	verifier, err := auth.NewLocalVerifier(repo, auth.NewArgon2idHasher())
	require.NoError(t, err)
	ctx := context.Background()

	for i := 0; i < auth.LockoutThreshold; i++ {
		_, err = verifier.Verify(ctx, "alice", "wrong")
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	}

	// Correct password while locked is still refused.
	_, err = verifier.Verify(ctx, "alice", "alice secret")
	assert.ErrorIs(t, err, auth.ErrAccountLocked)
}

func TestLocalVerifier_LockoutExpires(t *testing.T) {
	repo := newFakeUserRepo()
	alice := registerUser(t, repo, "alice", "alice secret")
	ctx := context.Background()

	alice.FailedAttempts = auth.LockoutThreshold
	past := time.Now().Add(-time.Minute)
	alice.LockedUntil = &past
	require.NoError(t, repo.Update(ctx, alice))

	verifier, err := auth.NewLocalVerifier(repo, auth.NewArgon2idHasher())
	require.NoError(t, err)

	user, err := verifier.Verify(ctx, "alice", "alice secret")
	require.NoError(t, err)
	assert.Zero(t, user.FailedAttempts)
	assert.Nil(t, user.LockedUntil)
}

func TestLocalVerifier_UpgradesBcryptHash(t *testing.T) {
	repo := newFakeUserRepo()
	ctx := context.Background()

	raw, err := bcrypt.GenerateFromPassword([]byte("legacy secret"), bcrypt.MinCost)
	require.NoError(t, err)
	alice, err := auth.NewUser("alice", string(raw))
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, alice))

	verifier, err := auth.NewLocalVerifier(repo, auth.NewArgon2idHasher())
	require.NoError(t, err)

	user, err := verifier.Verify(ctx, "alice", "legacy secret")
	require.NoError(t, err)
	assert.Contains(t, user.PasswordHash, "$argon2id$")

	stored, err := repo.GetByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.Contains(t, stored.PasswordHash, "$argon2id$")

	// The upgraded hash still verifies.
	user, err = verifier.Verify(ctx, "alice", "legacy secret")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, user.ID)
}

func TestNewLocalVerifier_RequiresDependencies(t *testing.T) {
	_, err := auth.NewLocalVerifier(nil, auth.NewArgon2idHasher())
	assert.Error(t, err)

	_, err = auth.NewLocalVerifier(newFakeUserRepo(), nil)
	assert.Error(t, err)
}
