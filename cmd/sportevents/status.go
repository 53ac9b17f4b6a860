// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SportEvents Contributors

package main

import (
	"github.com/spf13/cobra"

	"github.com/sportevents/sportevents/internal/config"
	"github.com/sportevents/sportevents/internal/store"
)

// NewStatusCmd creates the status subcommand.
func NewStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Check connectivity to the backing stores",
		Long:  `Verify that the PostgreSQL database and the Redis session store are reachable.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configFile, cmd.Flags())
			if err != nil {
				return err
			}
			return runStatus(cmd, cfg)
		},
	}

	config.RegisterFlags(cmd.Flags())

	return cmd
}

func runStatus(cmd *cobra.Command, cfg *config.Config) error {
	ctx := cmd.Context()

	pool, err := store.NewPostgresPool(ctx, cfg.DatabaseURL)
	if err != nil {
		cmd.Println("postgres: unreachable")
		return err
	}
	pool.Close()
	cmd.Println("postgres: ok")

	redisClient, err := store.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		cmd.Println("redis: unreachable")
		return err
	}
	_ = redisClient.Close() //nolint:errcheck // status check only
	cmd.Println("redis: ok")

	return nil
}
