// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SportEvents Contributors

package events

import (
	"errors"

	"github.com/samber/oops"
)

// ErrNotFound is returned when a requested event does not exist.
var ErrNotFound = errors.New("not found")

// ErrForbidden is returned when an authenticated user attempts a write
// on an event they do not own. It is never downgraded to a not-found by
// this package; whether to hide existence is the caller's policy choice.
var ErrForbidden = oops.Code("EVENT_FORBIDDEN").
	Errorf("not the creator of this event")
