package postgres

import (
	"context"
	"database/sql"

	"blog/internal/infra/persistence/migrations"

	"github.com/pkg/errors"
	"github.com/pressly/goose/v3"
)

const gooseDialect = "postgres"

func setupGoose() error {
	goose.SetBaseFS(migrations.FS)

	return goose.SetDialect(gooseDialect)
}

// Migrate applies every pending embedded migration.
func Migrate(ctx context.Context, db *sql.DB) error {
	if err := setupGoose(); err != nil {
		return errors.Wrap(err, "failed to configure goose")
	}
	if err := goose.UpContext(ctx, db, "."); err != nil {
		return errors.Wrap(err, "failed to apply migrations")
	}

	return nil
}

// Rollback reverts the most recently applied migration.
func Rollback(ctx context.Context, db *sql.DB) error {
	if err := setupGoose(); err != nil {
		return errors.Wrap(err, "failed to configure goose")
	}
	if err := goose.DownContext(ctx, db, "."); err != nil {
		return errors.Wrap(err, "failed to roll back migration")
	}

	return nil
}

// MigrationStatus logs the applied state of every migration through goose's logger.
func MigrationStatus(ctx context.Context, db *sql.DB) error {
	if err := setupGoose(); err != nil {
		return errors.Wrap(err, "failed to configure goose")
	}

	return errors.Wrap(goose.StatusContext(ctx, db, "."), "failed to read migration status")
}
