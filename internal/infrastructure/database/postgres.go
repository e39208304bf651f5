package database

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Connect creates a pgx connection pool using the provided DSN and verifies the
// connection with a ping. Both postgres:// and postgresql:// prefixes are accepted;
// SQLAlchemy-style driver suffixes sometimes found in shared .env files are
// normalized away.
func Connect(ctx context.Context, dsn string, opts ...func(*pgxpool.Config)) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(normalizeDSN(dsn))
	if err != nil {
		return nil, fmt.Errorf("postgres: parse config: %w", err)
	}

	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}

	if cfg.MaxConns == 0 {
		cfg.MaxConns = 8
	}
	if cfg.MaxConnIdleTime == 0 {
		cfg.MaxConnIdleTime = 5 * time.Minute
	}
	if cfg.MaxConnLifetime == 0 {
		cfg.MaxConnLifetime = time.Hour
	}
	if cfg.HealthCheckPeriod == 0 {
		cfg.HealthCheckPeriod = time.Minute
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("postgres: new pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres: ping: %w", err)
	}

	return pool, nil
}

// NewPoolFromEnv loads the DSN from the DB_URL environment variable and creates
// a pgx pool.
func NewPoolFromEnv(ctx context.Context, opts ...func(*pgxpool.Config)) (*pgxpool.Pool, error) {
	dsn := strings.TrimSpace(os.Getenv("DB_URL"))
	if dsn == "" {
		return nil, errors.New("postgres: DB_URL environment variable is not set")
	}
	return Connect(ctx, dsn, opts...)
}

func normalizeDSN(dsn string) string {
	s := strings.TrimSpace(dsn)
	for _, prefix := range []string{"postgresql", "postgres"} {
		for _, suffix := range []string{"+asyncpg", "+pgx"} {
			s = strings.Replace(s, prefix+suffix+"://", prefix+"://", 1)
		}
	}
	return s
}
