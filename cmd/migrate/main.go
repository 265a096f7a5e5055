package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"practice_tracker/internal/platform/config"
	"practice_tracker/internal/platform/database"
	"practice_tracker/migrations"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

var errUsage = errors.New("usage: migrate [up|down|version]")

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	if len(os.Args) < 2 {
		logger.Error(errUsage.Error())
		os.Exit(2)
	}

	if err := run(os.Args[1], logger); err != nil {
		logger.Error("Migration failed", "err", err)
		if errors.Is(err, errUsage) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func run(command string, logger *slog.Logger) error {
	switch command {
	case "up", "down", "version":
	default:
		return fmt.Errorf("unknown command %q: %w", command, errUsage)
	}

	cfg, err := config.LoadDatabase()
	if err != nil {
		return err
	}

	db, err := database.Connect(context.Background(), cfg)
	if err != nil {
		return err
	}
	defer database.Close(db)

	source, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return fmt.Errorf("read embedded migrations: %w", err)
	}
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("create migration driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return fmt.Errorf("create migrate instance: %w", err)
	}

	logger.Info("Running migration command", "command", command)
	switch command {
	case "up":
		err = m.Up()
	case "down":
		err = m.Down()
	case "version":
		version, dirty, verr := m.Version()
		if verr != nil && !errors.Is(verr, migrate.ErrNilVersion) {
			return fmt.Errorf("read schema version: %w", verr)
		}
		logger.Info("Schema version", "version", version, "dirty", dirty)
		return nil
	}

	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	logger.Info("Migration finished successfully")
	return nil
}
