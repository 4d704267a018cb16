package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"hotelops/internal/app"
	"hotelops/internal/config"
	"hotelops/internal/database"
	jwtsvc "hotelops/internal/pkg/jwt"
	"hotelops/internal/pkg/lock"
	"hotelops/internal/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		boot := logger.New("info", true)
		boot.Fatal().Err(err).Msg("config")
	}

	log := logger.New(cfg.LogLevel, cfg.LogPretty)

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("database connect")
	}
	if err := database.Migrate(db, cfg.OverlapPolicy()); err != nil {
		log.Fatal().Err(err).Msg("database migrate")
	}

	locker, closeLocker := newLocker(cfg, log)
	defer closeLocker()

	a := app.New(app.Deps{
		DB:                    db,
		JWT:                   jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL),
		Locker:                locker,
		Policy:                cfg.OverlapPolicy(),
		HousekeepingTokenHash: cfg.HousekeepingTokenHash,
		CORSAllowedOrigins:    cfg.CORSAllowedOrigins,
		Log:                   log,
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().
			Str("addr", cfg.HTTPAddr).
			Str("env", cfg.AppEnv).
			Bool("same_day_turnover", cfg.SameDayTurnover).
			Msg("http server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	a.Hub.Close()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func newLocker(cfg *config.Config, log zerolog.Logger) (lock.Locker, func()) {
	if cfg.RedisURL == "" {
		log.Info().Dur("wait", cfg.LockWait).Msg("using in-process room locks")
		return lock.NewLocalLocker(cfg.LockWait), func() {}
	}

	client, err := lock.NewRedisClient(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("redis client")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatal().Err(err).Msg("redis ping")
	}

	log.Info().Str("addr", client.Options().Addr).Dur("ttl", cfg.LockTTL).Msg("using redis room locks")
	return lock.NewRedisLocker(client, cfg.LockTTL, cfg.LockWait), func() { _ = client.Close() }
}
