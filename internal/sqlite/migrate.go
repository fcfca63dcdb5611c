package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"slices"
	"strconv"
	"strings"
	"time"
)

var errInvalidMigration = errors.New("invalid migration")

// migration is one schema change. Files are named NNNN_description.sql and applied in version order.
type migration struct {
	version int
	name    string
	sql     string
}

func loadMigrations(fsys fs.FS, dir string) ([]migration, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("read migrations dir: %w", err)
	}

	migrations := make([]migration, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || path.Ext(entry.Name()) != ".sql" {
			continue
		}
		prefix, _, ok := strings.Cut(entry.Name(), "_")
		if !ok {
			return nil, fmt.Errorf("%w: %s has no version prefix", errInvalidMigration, entry.Name())
		}
		version, err := strconv.Atoi(prefix)
		if err != nil || version <= 0 {
			return nil, fmt.Errorf("%w: %s has no positive version prefix", errInvalidMigration, entry.Name())
		}
		content, err := fs.ReadFile(fsys, path.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("read migration %s: %w", entry.Name(), err)
		}
		migrations = append(migrations, migration{version: version, name: entry.Name(), sql: string(content)})
	}

	slices.SortFunc(migrations, func(a, b migration) int { return a.version - b.version })
	for i := 1; i < len(migrations); i++ {
		if migrations[i].version == migrations[i-1].version {
			return nil, fmt.Errorf("%w: duplicate version %d", errInvalidMigration, migrations[i].version)
		}
	}
	return migrations, nil
}

// migrate applies the migrations newer than PRAGMA user_version. Each migration runs in its own transaction
// together with the user_version bump so that a failing migration leaves the schema untouched.
func (db *Database) migrate(ctx context.Context, migrations []migration) error {
	start := time.Now()
	current, err := db.schemaVersion(ctx)
	if err != nil {
		return err
	}

	applied := 0
	for _, m := range migrations {
		if m.version <= current {
			continue
		}
		if err = db.applyMigration(ctx, m); err != nil {
			return fmt.Errorf("apply %s: %w", m.name, err)
		}
		applied++
	}

	if applied > 0 {
		db.logger.LogAttrs(ctx, slog.LevelInfo, "migrated database",
			slog.Int("from_version", current),
			slog.Int("applied", applied),
			slog.Duration("duration", time.Since(start)))
	}
	return nil
}

func (db *Database) applyMigration(ctx context.Context, m migration) error {
	return db.WithTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, m.sql); err != nil {
			return fmt.Errorf("exec migration: %w", err)
		}
		// PRAGMA does not accept bound parameters.
		if _, err := tx.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", m.version)); err != nil {
			return fmt.Errorf("set user_version: %w", err)
		}
		return nil
	})
}

func (db *Database) schemaVersion(ctx context.Context) (int, error) {
	var version int
	if err := db.ReadWrite.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return 0, fmt.Errorf("query user_version: %w", err)
	}
	return version, nil
}
