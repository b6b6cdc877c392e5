package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"sync"

	"github.com/Revanthsudeeep/waterconservation/internal/auth"
	"github.com/Revanthsudeeep/waterconservation/internal/config"
	"github.com/Revanthsudeeep/waterconservation/internal/core"
	"github.com/Revanthsudeeep/waterconservation/internal/database"
	"github.com/Revanthsudeeep/waterconservation/internal/moderation"
	"github.com/Revanthsudeeep/waterconservation/internal/storage"
	"github.com/Revanthsudeeep/waterconservation/internal/utils/databaseutils"
	"github.com/Revanthsudeeep/waterconservation/internal/weather"
	"github.com/go-redis/redis/v8"
	"github.com/golang-cz/devslog"
	"github.com/mdobak/go-xerrors"
)

type application struct {
	config    config.Config
	logger    *slog.Logger
	core      *core.Core
	auth      *auth.Auth
	weather   *weather.Client
	moderator moderation.Moderator
	bucket    *storage.DiskBucket
	wg        sync.WaitGroup
}

func main() {
	if err := rootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func configLogger(cfg config.Config) *slog.Logger {
	level := slog.LevelInfo
	if cfg.Env == "development" {
		level = slog.LevelDebug
	}

	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{AddSource: true, Level: level}))
	}

	handler := devslog.NewHandler(
		os.Stdout, &devslog.Options{
			HandlerOptions: &slog.HandlerOptions{
				AddSource: true,
				Level:     level,
			},
			NewLineAfterLog: false,
		})

	return slog.New(handler)
}

func openDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	return database.Open(ctx, database.Options{
		DSN:          cfg.DB.DSN,
		MaxIdleConns: cfg.DB.MaxIdleConns,
		MaxIdleTime:  cfg.DB.MaxIdleTime,
	})
}

// newApplication wires every dependency the HTTP handlers use.
func newApplication(ctx context.Context, cfg config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	bucket, err := storage.NewDiskBucket(cfg.Storage.Dir, cfg.Storage.PublicBaseURL)
	if err != nil {
		return nil, xerrors.New(err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	weatherCache := weather.NewRedisCache(ctx, redisClient, logger)

	sqlTemplate := databaseutils.NewSQLTemplate(db, cfg.DB.QueryTimeout)

	return &application{
		config: cfg,
		logger: logger,
		core:   core.NewCore(db, logger, sqlTemplate),
		auth:   auth.New(cfg.JWT.Secret, cfg.JWT.TokenTTL),
		weather: weather.NewClient(weather.Options{
			BaseURL:  cfg.Weather.BaseURL,
			APIKey:   cfg.Weather.APIKey,
			CacheTTL: cfg.Weather.CacheTTL,
		}, weatherCache, logger),
		moderator: moderation.New(moderation.Options{
			APIKey:  cfg.Moderation.APIKey,
			BaseURL: cfg.Moderation.BaseURL,
			Model:   cfg.Moderation.Model,
		}, logger),
		bucket: bucket,
	}, nil
}
