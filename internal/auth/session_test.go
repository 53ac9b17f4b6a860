// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SportEvents Contributors

package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sportevents/sportevents/internal/auth"
)

func TestGenerateSessionToken(t *testing.T) {
	token, hash, err := auth.GenerateSessionToken()
	require.NoError(t, err)

	assert.Len(t, token, 64) // 32 random bytes, hex encoded
	assert.Len(t, hash, 64)  // sha256, hex encoded
	assert.NotEqual(t, token, hash)
	assert.Equal(t, auth.HashSessionToken(token), hash)
}

func TestGenerateSessionToken_Unique(t *testing.T) {
	first, _, err := auth.GenerateSessionToken()
	require.NoError(t, err)
	second, _, err := auth.GenerateSessionToken()
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestVerifySessionToken(t *testing.T) {
	token, hash, err := auth.GenerateSessionToken()
	require.NoError(t, err)

	ok, err := auth.VerifySessionToken(token, hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = auth.VerifySessionToken("deadbeef", hash)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = auth.VerifySessionToken("", hash)
	assert.Error(t, err)

	_, err = auth.VerifySessionToken(token, "")
	assert.Error(t, err)
}

func TestNewSession(t *testing.T) {
	expiresAt := time.Now().Add(time.Hour)

	session, err := auth.NewSession("principal-1", "tokenhash", expiresAt)
	require.NoError(t, err)
	assert.Equal(t, "principal-1", session.PrincipalID)
	assert.Equal(t, "tokenhash", session.TokenHash)
	assert.False(t, session.CreatedAt.IsZero())
	assert.Equal(t, expiresAt, session.ExpiresAt)

	_, err = auth.NewSession("", "tokenhash", expiresAt)
	assert.Error(t, err)

	_, err = auth.NewSession("principal-1", "", expiresAt)
	assert.Error(t, err)

	_, err = auth.NewSession("principal-1", "tokenhash", time.Time{})
	assert.Error(t, err)
}

func TestSession_IsExpiredAt(t *testing.T) {
	expiresAt := time.Now().Add(time.Hour)
	session, err := auth.NewSession("principal-1", "tokenhash", expiresAt)
	require.NoError(t, err)

	assert.False(t, session.IsExpiredAt(expiresAt.Add(-time.Second)))
	assert.True(t, session.IsExpiredAt(expiresAt.Add(time.Second)))
	assert.False(t, session.IsExpired())
}
