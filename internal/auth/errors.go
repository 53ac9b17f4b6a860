// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SportEvents Contributors

package auth

import (
	"errors"

	"github.com/samber/oops"
)

// ErrNotFound is returned when a requested entity does not exist.
var ErrNotFound = errors.New("not found")

// ErrInvalidCredentials is returned for every failed login attempt,
// whether the username is unknown or the password is wrong. The message
// is deliberately identical in both cases so callers cannot learn
// whether an account exists.
var ErrInvalidCredentials = oops.Code("AUTH_INVALID_CREDENTIALS").
	Errorf("invalid credentials")

// ErrUsernameTaken is returned when registering a username that already
// exists.
var ErrUsernameTaken = oops.Code("AUTH_USERNAME_TAKEN").
	Errorf("username is already taken")

// ErrAccountLocked is returned when an account is temporarily locked
// after too many failed login attempts.
var ErrAccountLocked = oops.Code("AUTH_ACCOUNT_LOCKED").
	Errorf("account is temporarily locked")
