// Package database opens the SQLite game store and applies its embedded
// goose migrations.
package database

import (
	"database/sql"
	"embed"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"

	"mjlog/internal/config"
	"mjlog/internal/constants"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// New opens the game store named by the DB_PATH setting.
func New(cfg *config.Config, logger zerolog.Logger) (*sql.DB, error) {
	return Open(cfg.DBPath, logger)
}

// Open opens the game store at path and migrates it to the latest schema.
// Foreign keys are enforced so deleting a game drops its rounds.
func Open(path string, logger zerolog.Logger) (*sql.DB, error) {
	logger.Info().Str("path", path).Msg("opening game store")

	dsn := fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		logger.Error().Err(err).Msg("failed to open game store")
		return nil, fmt.Errorf("failed to open game store: %w", err)
	}

	db.SetMaxOpenConns(constants.DBMaxOpenConns)
	db.SetMaxIdleConns(constants.DBMaxIdleConns)
	db.SetConnMaxLifetime(constants.DBConnMaxLifetime)
	db.SetConnMaxIdleTime(constants.DBMaxIdleTime)

	if err := applyPragmas(db, logger); err != nil {
		logger.Error().Err(err).Msg("failed to tune game store")
		db.Close()
		return nil, fmt.Errorf("failed to tune game store: %w", err)
	}
	if err := migrate(db, logger); err != nil {
		logger.Error().Err(err).Msg("failed to migrate game store")
		db.Close()
		return nil, fmt.Errorf("failed to migrate game store: %w", err)
	}

	logger.Info().Str("path", path).Msg("game store ready")
	return db, nil
}

func migrate(db *sql.DB, logger zerolog.Logger) error {
	goose.SetBaseFS(migrationFS)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	version, err := goose.GetDBVersion(db)
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	logger.Info().Int64("version", version).Msg("game store schema current")
	return nil
}

// WAL lets the HTTP readers run while an import holds the write lock.
var pragmas = [...][2]string{
	{"journal_mode", "WAL"},
	{"synchronous", "NORMAL"},
	{"temp_store", "MEMORY"},
}

func applyPragmas(db *sql.DB, logger zerolog.Logger) error {
	for _, p := range pragmas {
		name, value := p[0], p[1]
		if _, err := db.Exec(fmt.Sprintf("PRAGMA %s = %s", name, value)); err != nil {
			logger.Warn().Err(err).Str("pragma", name).Str("value", value).Msg("pragma rejected")
			return fmt.Errorf("failed to set PRAGMA %s: %w", name, err)
		}
		logger.Debug().Str("pragma", name).Str("value", value).Msg("pragma applied")
	}
	return nil
}
