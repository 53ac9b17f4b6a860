// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SportEvents Contributors

// Package postgres implements event repositories using PostgreSQL.
package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/sportevents/sportevents/internal/events"
)

// poolIface abstracts query execution so the repository works with both
// *pgxpool.Pool and pgxmock pools.
type poolIface interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// EventRepository implements events.EventRepository using PostgreSQL.
type EventRepository struct {
	pool poolIface
}

// NewEventRepository creates a new EventRepository.
func NewEventRepository(pool poolIface) *EventRepository {
	return &EventRepository{pool: pool}
}

// eventColumns is the shared column list for SELECT queries.
const eventColumns = `id, title, description, location, creator_id, starts_at, ends_at, created_at, updated_at`

// Create stores a new event.
func (r *EventRepository) Create(ctx context.Context, event *events.Event) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO events (id, title, description, location, creator_id, starts_at, ends_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`,
		event.ID.String(),
		event.Title,
		event.Description,
		event.Location,
		event.CreatorID.String(),
		event.StartsAt,
		event.EndsAt,
		event.CreatedAt,
		event.UpdatedAt,
	)
	if err != nil {
		return oops.Code("EVENT_CREATE_FAILED").
			With("operation", "insert event").
			With("creator_id", event.CreatorID.String()).
			Wrap(err)
	}
	return nil
}

// GetByID retrieves an event by ID.
func (r *EventRepository) GetByID(ctx context.Context, id ulid.ULID) (*events.Event, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+eventColumns+`
		FROM events
		WHERE id = $1
	`, id.String())

	event, err := scanEvent(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("EVENT_NOT_FOUND").
			With("id", id.String()).
			Wrap(events.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("EVENT_GET_BY_ID_FAILED").
			With("operation", "get event by id").
			With("id", id.String()).
			Wrap(err)
	}
	return event, nil
}

// List retrieves all events, newest first.
func (r *EventRepository) List(ctx context.Context) ([]*events.Event, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+eventColumns+`
		FROM events
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, oops.Code("EVENT_LIST_FAILED").
			With("operation", "list events").
			Wrap(err)
	}
	defer rows.Close()

	return collectEvents(rows)
}

// ListByCreator retrieves all events created by a user, newest first.
func (r *EventRepository) ListByCreator(ctx context.Context, creatorID ulid.ULID) ([]*events.Event, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+eventColumns+`
		FROM events
		WHERE creator_id = $1
		ORDER BY created_at DESC
	`, creatorID.String())
	if err != nil {
		return nil, oops.Code("EVENT_LIST_BY_CREATOR_FAILED").
			With("operation", "list events by creator").
			With("creator_id", creatorID.String()).
			Wrap(err)
	}
	defer rows.Close()

	return collectEvents(rows)
}

// Search retrieves events whose title contains the query, case-insensitive.
func (r *EventRepository) Search(ctx context.Context, query string) ([]*events.Event, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+eventColumns+`
		FROM events
		WHERE title ILIKE '%' || $1 || '%'
		ORDER BY created_at DESC
	`, query)
	if err != nil {
		return nil, oops.Code("EVENT_SEARCH_FAILED").
			With("operation", "search events").
			Wrap(err)
	}
	defer rows.Close()

	return collectEvents(rows)
}

// Update updates an existing event. creator_id is deliberately absent
// from the SET list.
func (r *EventRepository) Update(ctx context.Context, event *events.Event) error {
	result, err := r.pool.Exec(ctx, `
		UPDATE events
		SET title = $2, description = $3, location = $4, starts_at = $5, ends_at = $6, updated_at = $7
		WHERE id = $1
	`,
		event.ID.String(),
		event.Title,
		event.Description,
		event.Location,
		event.StartsAt,
		event.EndsAt,
		event.UpdatedAt,
	)
	if err != nil {
		return oops.Code("EVENT_UPDATE_FAILED").
			With("operation", "update event").
			With("id", event.ID.String()).
			Wrap(err)
	}
	if result.RowsAffected() == 0 {
		return oops.Code("EVENT_NOT_FOUND").
			With("id", event.ID.String()).
			Wrap(events.ErrNotFound)
	}
	return nil
}

// Delete removes an event.
func (r *EventRepository) Delete(ctx context.Context, id ulid.ULID) error {
	result, err := r.pool.Exec(ctx, `
		DELETE FROM events WHERE id = $1
	`, id.String())
	if err != nil {
		return oops.Code("EVENT_DELETE_FAILED").
			With("operation", "delete event").
			With("id", id.String()).
			Wrap(err)
	}
	if result.RowsAffected() == 0 {
		return oops.Code("EVENT_NOT_FOUND").
			With("id", id.String()).
			Wrap(events.ErrNotFound)
	}
	return nil
}

// collectEvents drains a rows iterator into a slice.
func collectEvents(rows pgx.Rows) ([]*events.Event, error) {
	var result []*events.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, oops.Code("EVENT_SCAN_FAILED").
				With("operation", "scan event row").
				Wrap(err)
		}
		result = append(result, event)
	}
	if err := rows.Err(); err != nil {
		return nil, oops.Code("EVENT_ROWS_ERROR").
			With("operation", "iterate event rows").
			Wrap(err)
	}
	return result, nil
}

// scanEvent scans a single row into an Event.
// Callers are responsible for handling pgx.ErrNoRows.
func scanEvent(row pgx.Row) (*events.Event, error) {
	var (
		idStr        string
		title        string
		description  string
		location     string
		creatorIDStr string
		startsAt     time.Time
		endsAt       time.Time
		createdAt    time.Time
		updatedAt    time.Time
	)

	err := row.Scan(&idStr, &title, &description, &location, &creatorIDStr, &startsAt, &endsAt, &createdAt, &updatedAt)
	if err != nil {
		// Propagate pgx.ErrNoRows unchanged for callers to handle with context.
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err //nolint:wrapcheck // Callers wrap with context-specific info
		}
		return nil, oops.Code("EVENT_SCAN_FAILED").
			With("operation", "scan event").
			Wrap(err)
	}

	id, err := ulid.Parse(idStr)
	if err != nil {
		return nil, oops.Code("EVENT_INVALID_ID").
			With("operation", "parse event id").
			With("id", idStr).
			Wrap(err)
	}

	creatorID, err := ulid.Parse(creatorIDStr)
	if err != nil {
		return nil, oops.Code("EVENT_INVALID_CREATOR_ID").
			With("operation", "parse creator id").
			With("creator_id", creatorIDStr).
			Wrap(err)
	}

	return &events.Event{
		ID:          id,
		Title:       title,
		Description: description,
		Location:    location,
		CreatorID:   creatorID,
		StartsAt:    startsAt,
		EndsAt:      endsAt,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}, nil
}

// Compile-time interface check.
var _ events.EventRepository = (*EventRepository)(nil)
