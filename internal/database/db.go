package database

import (
	"context"
	"database/sql"
	_ "embed"
	"log/slog"
	"time"

	_ "github.com/lib/pq"
	"github.com/mdobak/go-xerrors"
)

//go:embed schema.sql
var schema string

// RequiredTables must exist for the API to serve requests.
var RequiredTables = []string{
	"users", "profiles", "user_follows", "articles", "video_tutorials", "posts", "comments", "water_zones",
}

type Options struct {
	DSN          string
	MaxIdleConns int
	MaxIdleTime  time.Duration
}

// Open connects to Postgres and verifies the connection with a ping.
func Open(ctx context.Context, opts Options) (*sql.DB, error) {
	db, err := sql.Open("postgres", opts.DSN)
	if err != nil {
		return nil, xerrors.New(err)
	}

	db.SetMaxIdleConns(opts.MaxIdleConns)
	db.SetConnMaxIdleTime(opts.MaxIdleTime)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, xerrors.New(err)
	}

	return db, nil
}

// Migrate applies the embedded schema. Every statement is idempotent.
func Migrate(ctx context.Context, db *sql.DB, log *slog.Logger) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return xerrors.Newf("applying schema: %w", err)
	}
	log.Info("schema applied", slog.Int("tables", len(RequiredTables)))
	return nil
}
