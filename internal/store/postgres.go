// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SportEvents Contributors

// Package store provides storage bootstrapping: the PostgreSQL pool for
// users and events, and the Redis client for sessions.
package store

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/samber/oops"
)

// connectTimeout bounds the initial connectivity check.
const connectTimeout = 5 * time.Second

// NewPostgresPool connects to PostgreSQL and verifies connectivity.
// The returned pool is safe for concurrent use; callers own Close.
func NewPostgresPool(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, oops.Code("DB_CONNECT_FAILED").
			With("operation", "create connection pool").
			Wrap(err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, oops.Code("DB_CONNECT_FAILED").
			With("operation", "ping database").
			Wrap(err)
	}

	return pool, nil
}
