// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SportEvents Contributors

// Package events provides the event domain and the ownership linkage
// between events and the users that create them.
package events

import (
	"context"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
)

// Title validation constraints.
const (
	MaxTitleLength       = 120
	MaxDescriptionLength = 4000
	MaxLocationLength    = 200
)

// Event represents a listed event. CreatorID is set once at creation and
// never changes; it is the basis of every write-authorization decision.
type Event struct {
	ID          ulid.ULID
	Title       string
	Description string
	Location    string
	CreatorID   ulid.ULID
	StartsAt    time.Time
	EndsAt      time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewEvent creates a validated Event owned by the given creator.
func NewEvent(creatorID ulid.ULID, title, description, location string, startsAt, endsAt time.Time) (*Event, error) {
	if creatorID.Compare(ulid.ULID{}) == 0 {
		return nil, oops.Code("EVENT_INVALID_CREATOR").Errorf("creator ID cannot be zero")
	}
	if err := ValidateFields(title, description, location, startsAt, endsAt); err != nil {
		return nil, err
	}

	now := time.Now()
	return &Event{
		ID:          ulid.Make(),
		Title:       strings.TrimSpace(title),
		Description: description,
		Location:    location,
		CreatorID:   creatorID,
		StartsAt:    startsAt,
		EndsAt:      endsAt,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// IsOwnedBy reports whether the event was created by the given user.
func (e *Event) IsOwnedBy(userID ulid.ULID) bool {
	return e.CreatorID.Compare(userID) == 0
}

// ValidateFields checks the field constraints shared by event creation
// and update.
func ValidateFields(title, description, location string, startsAt, endsAt time.Time) error {
	if err := ValidateTitle(title); err != nil {
		return err
	}
	if len(description) > MaxDescriptionLength {
		return oops.Code("EVENT_INVALID_DESCRIPTION").
			With("max", MaxDescriptionLength).
			Errorf("description must be at most %d characters", MaxDescriptionLength)
	}
	if len(location) > MaxLocationLength {
		return oops.Code("EVENT_INVALID_LOCATION").
			With("max", MaxLocationLength).
			Errorf("location must be at most %d characters", MaxLocationLength)
	}
	if !startsAt.IsZero() && !endsAt.IsZero() && endsAt.Before(startsAt) {
		return oops.Code("EVENT_INVALID_SCHEDULE").
			Errorf("event cannot end before it starts")
	}
	return nil
}

// ValidateTitle validates an event title.
func ValidateTitle(title string) error {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return oops.Code("EVENT_INVALID_TITLE").Errorf("title cannot be empty")
	}
	if len(trimmed) > MaxTitleLength {
		return oops.Code("EVENT_INVALID_TITLE").
			With("max", MaxTitleLength).
			Errorf("title must be at most %d characters", MaxTitleLength)
	}
	return nil
}

// EventRepository manages event persistence.
type EventRepository interface {
	// Create stores a new event.
	Create(ctx context.Context, event *Event) error

	// GetByID retrieves an event by ID.
	GetByID(ctx context.Context, id ulid.ULID) (*Event, error)

	// List retrieves all events, newest first.
	List(ctx context.Context) ([]*Event, error)

	// ListByCreator retrieves all events created by a user, newest first.
	ListByCreator(ctx context.Context, creatorID ulid.ULID) ([]*Event, error)

	// Search retrieves events whose title contains the query,
	// case-insensitive, newest first.
	Search(ctx context.Context, query string) ([]*Event, error)

	// Update updates an existing event. CreatorID is never written.
	Update(ctx context.Context, event *Event) error

	// Delete removes an event.
	Delete(ctx context.Context, id ulid.ULID) error
}
