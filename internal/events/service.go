// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SportEvents Contributors

package events

import (
	"context"
	"errors"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/sportevents/sportevents/internal/auth"
)

// UserFinder is the narrow slice of the user repository the event
// service needs to enforce referential integrity on creation.
type UserFinder interface {
	GetByID(ctx context.Context, id ulid.ULID) (*auth.User, error)
}

// Service coordinates event operations. Reads are open to everyone;
// update and delete require ownership.
type Service struct {
	events EventRepository
	users  UserFinder
}

// NewService creates an event Service.
func NewService(events EventRepository, users UserFinder) (*Service, error) {
	if events == nil {
		return nil, oops.Code("EVENT_INVALID_DEPENDENCY").Errorf("event repository is required")
	}
	if users == nil {
		return nil, oops.Code("EVENT_INVALID_DEPENDENCY").Errorf("user finder is required")
	}
	return &Service{events: events, users: users}, nil
}

// RequireOwner checks that the user owns the event. Returns nil for the
// creator and ErrForbidden for everyone else.
func (s *Service) RequireOwner(event *Event, userID ulid.ULID) error {
	if event.IsOwnedBy(userID) {
		return nil
	}
	return ErrForbidden
}

// Create validates and persists a new event for the given creator. The
// creator must exist: the linkage enforces referential integrity itself
// rather than relying on the storage layer's foreign key.
func (s *Service) Create(ctx context.Context, creatorID ulid.ULID, title, description, location string, startsAt, endsAt time.Time) (*Event, error) {
	if _, err := s.users.GetByID(ctx, creatorID); err != nil {
		if errors.Is(err, auth.ErrNotFound) {
			return nil, oops.Code("EVENT_UNKNOWN_CREATOR").
				With("creator_id", creatorID.String()).
				Errorf("creator does not exist")
		}
		return nil, oops.Code("EVENT_CREATE_FAILED").
			With("operation", "verify creator").
			Wrap(err)
	}

	event, err := NewEvent(creatorID, title, description, location, startsAt, endsAt)
	if err != nil {
		return nil, err
	}

	if err := s.events.Create(ctx, event); err != nil {
		return nil, oops.Code("EVENT_CREATE_FAILED").
			With("operation", "persist event").
			Wrap(err)
	}
	return event, nil
}

// Get retrieves an event by ID. No ownership required for reads.
func (s *Service) Get(ctx context.Context, id ulid.ULID) (*Event, error) {
	return s.events.GetByID(ctx, id)
}

// List retrieves all events, newest first.
func (s *Service) List(ctx context.Context) ([]*Event, error) {
	return s.events.List(ctx)
}

// Search retrieves events matching the query, newest first.
func (s *Service) Search(ctx context.Context, query string) ([]*Event, error) {
	return s.events.Search(ctx, query)
}

// Update applies changes to an event after checking that the acting user
// owns it. The creator reference itself is immutable.
func (s *Service) Update(ctx context.Context, id, userID ulid.ULID, title, description, location string, startsAt, endsAt time.Time) (*Event, error) {
	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.RequireOwner(event, userID); err != nil {
		return nil, err
	}

	if err := ValidateFields(title, description, location, startsAt, endsAt); err != nil {
		return nil, err
	}

	event.Title = title
	event.Description = description
	event.Location = location
	event.StartsAt = startsAt
	event.EndsAt = endsAt
	event.UpdatedAt = time.Now()

	if err := s.events.Update(ctx, event); err != nil {
		return nil, oops.Code("EVENT_UPDATE_FAILED").
			With("operation", "persist event").
			With("id", id.String()).
			Wrap(err)
	}
	return event, nil
}

// Delete removes an event after checking that the acting user owns it.
func (s *Service) Delete(ctx context.Context, id, userID ulid.ULID) error {
	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.RequireOwner(event, userID); err != nil {
		return err
	}
	return s.events.Delete(ctx, id)
}
