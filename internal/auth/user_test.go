// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SportEvents Contributors

package auth_test

import (
	"strings"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sportevents/sportevents/internal/auth"
)

func TestNewUser(t *testing.T) {
	user, err := auth.NewUser("alice", "$argon2id$v=19$m=65536,t=1,p=4$salt$hash")
	require.NoError(t, err)

	assert.NotEqual(t, ulid.ULID{}, user.ID)
	assert.Equal(t, "alice", user.Username)
	assert.Zero(t, user.FailedAttempts)
	assert.Nil(t, user.LockedUntil)
	assert.False(t, user.CreatedAt.IsZero())
}

func TestNewUser_RejectsEmptyHash(t *testing.T) {
	_, err := auth.NewUser("alice", "")
	assert.Error(t, err)
}

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		name     string
		username string
		wantErr  bool
	}{
		{name: "valid", username: "alice", wantErr: false},
		{name: "valid with underscore", username: "alice_smith", wantErr: false},
		{name: "valid with digits", username: "alice99", wantErr: false},
		{name: "minimum length", username: "abc", wantErr: false},
		{name: "empty", username: "", wantErr: true},
		{name: "too short", username: "ab", wantErr: true},
		{name: "too long", username: strings.Repeat("a", 31), wantErr: true},
		{name: "starts with digit", username: "1alice", wantErr: true},
		{name: "starts with underscore", username: "_alice", wantErr: true},
		{name: "contains space", username: "alice smith", wantErr: true},
		{name: "contains hyphen", username: "alice-smith", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := auth.ValidateUsername(tt.username)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestUser_FailureLockout(t *testing.T) {
	user, err := auth.NewUser("alice", "hash")
	require.NoError(t, err)

	for i := 0; i < auth.LockoutThreshold-1; i++ {
		user.RecordFailure()
		assert.False(t, user.IsLocked(), "attempt %d should not lock", i+1)
	}

	user.RecordFailure()
	assert.True(t, user.IsLocked())
	require.NotNil(t, user.LockedUntil)
	assert.WithinDuration(t, time.Now().Add(auth.LockoutDuration), *user.LockedUntil, time.Minute)

	user.RecordSuccess()
	assert.False(t, user.IsLocked())
	assert.Zero(t, user.FailedAttempts)
	assert.Nil(t, user.LockedUntil)
}

func TestIsLockedOut(t *testing.T) {
	past := time.Now().Add(-time.Minute)
	future := time.Now().Add(time.Minute)

	assert.False(t, auth.IsLockedOut(nil))
	assert.False(t, auth.IsLockedOut(&past))
	assert.True(t, auth.IsLockedOut(&future))
}

func TestComputeLockoutTime(t *testing.T) {
	assert.Nil(t, auth.ComputeLockoutTime(0))
	assert.Nil(t, auth.ComputeLockoutTime(auth.LockoutThreshold-1))
	require.NotNil(t, auth.ComputeLockoutTime(auth.LockoutThreshold))
	require.NotNil(t, auth.ComputeLockoutTime(auth.LockoutThreshold+3))
}
