// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SportEvents Contributors

package store

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/samber/oops"
)

// NewRedisClient connects to Redis and verifies connectivity with a
// bounded ping. Callers own Close.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close() //nolint:errcheck // connect error takes precedence
		return nil, oops.Code("REDIS_CONNECT_FAILED").
			With("operation", "ping redis").
			With("addr", addr).
			Wrap(err)
	}

	return client, nil
}
