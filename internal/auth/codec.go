// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SportEvents Contributors

package auth

import (
	"context"
	"errors"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
)

// PrincipalCodec converts a full user record to the compact identifier
// stored in a session, and reconstructs the user from that identifier on
// later requests.
//
// Encode is pure and total. Decode tolerates an identifier whose user has
// since been deleted: it returns an error wrapping ErrNotFound, and the
// caller is expected to invalidate the associated session rather than
// treat the request as authenticated.
type PrincipalCodec struct {
	users UserRepository
}

// NewPrincipalCodec creates a PrincipalCodec.
func NewPrincipalCodec(users UserRepository) (*PrincipalCodec, error) {
	if users == nil {
		return nil, oops.Code("AUTH_INVALID_DEPENDENCY").Errorf("user repository is required")
	}
	return &PrincipalCodec{users: users}, nil
}

// Encode returns the stable identifier for a user.
func (c *PrincipalCodec) Encode(user *User) string {
	return user.ID.String()
}

// Decode reconstructs the user for a previously encoded identifier.
func (c *PrincipalCodec) Decode(ctx context.Context, identifier string) (*User, error) {
	id, err := ulid.Parse(identifier)
	if err != nil {
		return nil, oops.Code("AUTH_INVALID_IDENTIFIER").
			With("operation", "parse principal identifier").
			Wrap(errors.Join(ErrNotFound, err))
	}

	user, err := c.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, oops.Code("AUTH_PRINCIPAL_GONE").
				With("user_id", identifier).
				Wrap(err)
		}
		return nil, oops.Code("AUTH_DECODE_FAILED").
			With("operation", "get user by id").
			With("user_id", identifier).
			Wrap(err)
	}
	return user, nil
}
