package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"practice_tracker/internal/platform/config"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
)

// Connect opens the submission store and verifies it is reachable.
func Connect(ctx context.Context, cfg *config.Config) (*sql.DB, error) {
	connConfig, err := pgx.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse DATABASE_URL: %w", err)
	}
	if cfg.DatabasePassword != "" {
		connConfig.Password = cfg.DatabasePassword
	}

	db := stdlib.OpenDB(*connConfig)
	db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	db.SetMaxIdleConns(cfg.DBMaxOpenConns)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	slog.Info("Successfully connected to PostgreSQL database", "host", connConfig.Host, "database", connConfig.Database)
	return db, nil
}

func Close(db *sql.DB) {
	if db != nil {
		db.Close()
		slog.Info("Database connection closed")
	}
}
