// Package migration creates the snapshot-cache tables.
package migration

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"

	"github.com/Masterminds/squirrel"
	"github.com/sirupsen/logrus"
	"github.com/vinodrajapaksha/ttms-api/infrastructure/database/postgres"
)

//go:embed sql/*.sql
var scripts embed.FS

const createVersionTable = `CREATE TABLE IF NOT EXISTS schema_migrations (
    version    TEXT PRIMARY KEY,
    applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// Scripts lists the embedded migrations in the order they run.
func Scripts() ([]string, error) {
	names, err := fs.Glob(scripts, "sql/*.sql")
	if err != nil {
		return nil, err
	}
	sort.Strings(names)
	return names, nil
}

// Apply runs every migration not yet recorded in schema_migrations and
// returns the ones it applied.
func Apply(ctx context.Context, db postgres.Queryer) ([]string, error) {
	if _, err := db.ExecContext(ctx, createVersionTable); err != nil {
		return nil, fmt.Errorf("create schema_migrations: %w", err)
	}

	names, err := Scripts()
	if err != nil {
		return nil, err
	}

	applied := make([]string, 0, len(names))
	for _, name := range names {
		done, err := isApplied(ctx, db, name)
		if err != nil {
			return applied, err
		}
		if done {
			logrus.WithField("migration", name).Debug("migration already applied")
			continue
		}

		body, err := scripts.ReadFile(name)
		if err != nil {
			return applied, err
		}

		if _, err := db.ExecContext(ctx, string(body)); err != nil {
			return applied, fmt.Errorf("apply %s: %w", name, err)
		}

		query, args, err := squirrel.
			Insert("schema_migrations").
			Columns("version").
			Values(name).
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return applied, fmt.Errorf("build version insert: %w", err)
		}
		if _, err := db.ExecContext(ctx, query, args...); err != nil {
			return applied, fmt.Errorf("record %s: %w", name, err)
		}

		logrus.WithField("migration", name).Info("migration applied")
		applied = append(applied, name)
	}

	return applied, nil
}

func isApplied(ctx context.Context, db postgres.Queryer, name string) (bool, error) {
	query, args, err := squirrel.
		Select("COUNT(1)").
		From("schema_migrations").
		Where(squirrel.Eq{"version": name}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build version lookup: %w", err)
	}

	var count int
	if err := db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return false, fmt.Errorf("lookup %s: %w", name, err)
	}
	return count > 0, nil
}
