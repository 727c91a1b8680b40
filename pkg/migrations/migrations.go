package migrations

import (
	"context"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/migrate"
)

// Migrations holds every schema change for the jobs board. Each migration file
// registers itself from init.
var Migrations = migrate.NewMigrations()

// NewMigrator returns a migrator bound to the registered migrations.
func NewMigrator(db *bun.DB) *migrate.Migrator {
	return migrate.NewMigrator(db, Migrations)
}

// BringUpToDate creates the bookkeeping tables if needed and applies every
// pending migration as a single group. A group with a zero ID means nothing
// was pending.
func BringUpToDate(ctx context.Context, db *bun.DB) (*migrate.MigrationGroup, error) {
	migrator := NewMigrator(db)
	if err := migrator.Init(ctx); err != nil {
		return nil, errors.WithStack(err)
	}
	group, err := migrator.Migrate(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to apply migrations")
	}
	return group, nil
}

// RollbackLast undoes the most recently applied migration group.
func RollbackLast(ctx context.Context, db *bun.DB) (*migrate.MigrationGroup, error) {
	group, err := NewMigrator(db).Rollback(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to roll back migrations")
	}
	return group, nil
}
