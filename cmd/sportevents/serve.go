// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SportEvents Contributors

package main

import (
	"context"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/sportevents/sportevents/internal/auth"
	authpg "github.com/sportevents/sportevents/internal/auth/postgres"
	authredis "github.com/sportevents/sportevents/internal/auth/redis"
	"github.com/sportevents/sportevents/internal/config"
	"github.com/sportevents/sportevents/internal/events"
	eventspg "github.com/sportevents/sportevents/internal/events/postgres"
	"github.com/sportevents/sportevents/internal/logging"
	"github.com/sportevents/sportevents/internal/observability"
	"github.com/sportevents/sportevents/internal/store"
	"github.com/sportevents/sportevents/internal/web"
)

// shutdownTimeout bounds graceful shutdown of the HTTP servers.
const shutdownTimeout = 10 * time.Second

// NewServeCmd creates the serve subcommand.
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the application server",
		Long: `Start the HTTP server handling authentication, sessions,
and event listings.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configFile, cmd.Flags())
			if err != nil {
				return err
			}
			return runServe(cmd.Context(), cfg)
		},
	}

	config.RegisterFlags(cmd.Flags())

	return cmd
}

func runServe(ctx context.Context, cfg *config.Config) error {
	logging.SetDefault("sportevents", version, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	slog.Info("starting server",
		"http_addr", cfg.HTTPAddr,
		"log_format", cfg.LogFormat,
	)

	pool, err := store.NewPostgresPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer pool.Close()

	slog.Info("connected to database")

	redisClient, err := store.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		return err
	}
	defer redisClient.Close() //nolint:errcheck // shutdown path

	slog.Info("connected to redis", "addr", cfg.Redis.Addr)

	// Wire the authentication core.
	userRepo := authpg.NewUserRepository(pool)
	hasher := auth.NewArgon2idHasher()

	verifier, err := auth.NewLocalVerifier(userRepo, hasher)
	if err != nil {
		return err
	}

	codec, err := auth.NewPrincipalCodec(userRepo)
	if err != nil {
		return err
	}

	sessionStore, err := authredis.NewSessionStore(redisClient)
	if err != nil {
		return err
	}

	sessions, err := auth.NewManager(sessionStore,
		auth.WithWindow(cfg.Session.Window),
		auth.WithStoreTimeout(cfg.Session.StoreTimeout),
	)
	if err != nil {
		return err
	}

	authSvc, err := auth.NewService(userRepo, verifier, codec, sessions, hasher)
	if err != nil {
		return err
	}

	// Wire the event domain.
	eventRepo := eventspg.NewEventRepository(pool)
	eventSvc, err := events.NewService(eventRepo, userRepo)
	if err != nil {
		return err
	}

	// Observability endpoints (metrics + health probes).
	obsServer := observability.NewServer(cfg.MetricsAddr, func() bool {
		pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return pool.Ping(pingCtx) == nil
	})

	var obsErrCh <-chan error
	if cfg.MetricsAddr != "" {
		obsErrCh, err = obsServer.Start()
		if err != nil {
			return err
		}
	}

	handler, err := web.NewHandler(authSvc, eventSvc, sessions.Window(), web.CookieOptions{
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	}, obsServer.Metrics(), slog.Default())
	if err != nil {
		return err
	}

	webServer := web.NewServer(cfg.HTTPAddr, handler.Routes())
	webErrCh, err := webServer.Start()
	if err != nil {
		return err
	}

	select {
	case <-ctx.Done():
		slog.Info("shutdown signal received")
	case err := <-webErrCh:
		if err != nil {
			return err
		}
	case err := <-obsErrCh:
		if err != nil {
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := webServer.Stop(shutdownCtx); err != nil {
		return err
	}
	return obsServer.Stop(shutdownCtx)
}
