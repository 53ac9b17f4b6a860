// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SportEvents Contributors

package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sportevents/sportevents/internal/auth"
)

func newStoredSession(t *testing.T) *auth.Session {
	t.Helper()
	session, err := auth.NewSession("principal-1", auth.HashSessionToken("token"), time.Now().Add(time.Hour))
	require.NoError(t, err)
	return session
}

func TestInMemorySessionStore_CreateGet(t *testing.T) {
	ctx := context.Background()
	store := auth.NewInMemorySessionStore()
	session := newStoredSession(t)

	require.NoError(t, store.Create(ctx, session, time.Hour))

	got, err := store.Get(ctx, session.TokenHash)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, session.PrincipalID, got.PrincipalID)
	assert.Equal(t, session.TokenHash, got.TokenHash)
}

func TestInMemorySessionStore_GetMissing(t *testing.T) {
	store := auth.NewInMemorySessionStore()

	got, err := store.Get(context.Background(), "no-such-hash")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestInMemorySessionStore_TTLExpiry(t *testing.T) {
	ctx := context.Background()
	store := auth.NewInMemorySessionStore()
	session := newStoredSession(t)

	now := time.Now()
	store.SetClock(func() time.Time { return now })
	require.NoError(t, store.Create(ctx, session, time.Minute))

	store.SetClock(func() time.Time { return now.Add(2 * time.Minute) })

	got, err := store.Get(ctx, session.TokenHash)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestInMemorySessionStore_Refresh(t *testing.T) {
	ctx := context.Background()
	store := auth.NewInMemorySessionStore()
	session := newStoredSession(t)

	require.NoError(t, store.Create(ctx, session, time.Minute))

	session.ExpiresAt = session.ExpiresAt.Add(time.Hour)
	ok, err := store.Refresh(ctx, session, 2*time.Hour)
	require.NoError(t, err)
	assert.True(t, ok)

	got, err := store.Get(ctx, session.TokenHash)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, session.ExpiresAt, got.ExpiresAt)
}

func TestInMemorySessionStore_RefreshNeverRecreates(t *testing.T) {
	ctx := context.Background()
	store := auth.NewInMemorySessionStore()
	session := newStoredSession(t)

	// Refresh of a session that was never created (or was deleted) must
	// not write anything back.
	ok, err := store.Refresh(ctx, session, time.Hour)
	require.NoError(t, err)
	assert.False(t, ok)

	got, err := store.Get(ctx, session.TokenHash)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestInMemorySessionStore_DeleteIdempotent(t *testing.T) {
	ctx := context.Background()
	store := auth.NewInMemorySessionStore()
	session := newStoredSession(t)

	require.NoError(t, store.Create(ctx, session, time.Hour))
	require.NoError(t, store.Delete(ctx, session.TokenHash))
	require.NoError(t, store.Delete(ctx, session.TokenHash))

	got, err := store.Get(ctx, session.TokenHash)
	require.NoError(t, err)
	assert.Nil(t, got)
}
