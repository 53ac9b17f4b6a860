// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SportEvents Contributors

package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/sportevents/sportevents/internal/auth"
)

func TestArgon2idHasher_RoundTrip(t *testing.T) {
	hasher := auth.NewArgon2idHasher()

	hash, err := hasher.Hash("correct horse battery staple")
	require.NoError(t, err)
	assert.Contains(t, hash, "$argon2id$v=19$")

	ok, err := hasher.Verify("correct horse battery staple", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = hasher.Verify("wrong password", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestArgon2idHasher_HashIsSalted(t *testing.T) {
	hasher := auth.NewArgon2idHasher()

	first, err := hasher.Hash("same password")
	require.NoError(t, err)
	second, err := hasher.Hash("same password")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestArgon2idHasher_EmptyPassword(t *testing.T) {
	hasher := auth.NewArgon2idHasher()

	_, err := hasher.Hash("")
	assert.Error(t, err)
}

func TestArgon2idHasher_VerifyMalformedHash(t *testing.T) {
	hasher := auth.NewArgon2idHasher()

	tests := []struct {
		name string
		hash string
	}{
		{name: "empty", hash: ""},
		{name: "not phc", hash: "plainly not a hash"},
		{name: "wrong algorithm", hash: "$scrypt$v=19$m=65536,t=1,p=4$abcd$efgh"},
		{name: "truncated", hash: "$argon2id$v=19$m=65536"},
		{name: "bad base64 salt", hash: "$argon2id$v=19$m=65536,t=1,p=4$!!!!$efgh"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := hasher.Verify("anything", tt.hash)
			assert.Error(t, err)
			assert.False(t, ok)
		})
	}
}

func TestArgon2idHasher_VerifyBcryptHash(t *testing.T) {
	raw, err := bcrypt.GenerateFromPassword([]byte("legacy secret"), bcrypt.MinCost)
	require.NoError(t, err)
	hasher := auth.NewArgon2idHasher()

	ok, err := hasher.Verify("legacy secret", string(raw))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = hasher.Verify("not it", string(raw))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestArgon2idHasher_NeedsUpgrade(t *testing.T) {
	hasher := auth.NewArgon2idHasher()

	raw, err := bcrypt.GenerateFromPassword([]byte("legacy secret"), bcrypt.MinCost)
	require.NoError(t, err)
	assert.True(t, hasher.NeedsUpgrade(string(raw)))

	current, err := hasher.Hash("fresh secret")
	require.NoError(t, err)
	assert.False(t, hasher.NeedsUpgrade(current))
}
