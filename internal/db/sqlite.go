package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/udisondev/monench/internal/ench"
)

// SQLiteStore keeps enchantment tables in a local SQLite file.
type SQLiteStore struct {
	sql *sql.DB
}

// sqliteDSN adds the pragmas every connection needs, in the driver's
// _pragma form.
func sqliteDSN(path string) string {
	return path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
}

// OpenSQLite opens the database at path. The schema must already be
// migrated, see RunMigrations.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if path == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	sqlDB, err := sql.Open("sqlite", sqliteDSN(path))
	if err != nil {
		return nil, fmt.Errorf("open sqlite store: %w", err)
	}
	// SQLite пишет одним соединением.
	sqlDB.SetMaxOpenConns(1)
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite store: %w", err)
	}
	return &SQLiteStore{sql: sqlDB}, nil
}

// Close closes the database handle.
func (s *SQLiteStore) Close() error {
	if s == nil || s.sql == nil {
		return nil
	}
	return s.sql.Close()
}

// Save rewrites the monster's table in one transaction.
func (s *SQLiteStore) Save(ctx context.Context, level string, monster uint32, recs []ench.Record) error {
	tx, err := s.sql.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM enchantments WHERE level = ? AND monster_id = ?`,
		level, int64(monster),
	); err != nil {
		return fmt.Errorf("deleting enchantments of monster %d: %w", monster, err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO enchantments
		 (level, monster_id, kind, degree, duration, max_duration, category, source_id, stash_hp, stash_max_hp, stash_attitude)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing enchantment insert: %w", err)
	}
	defer stmt.Close()

	for _, rec := range recs {
		row := toRow(monster, rec)
		if _, err := stmt.ExecContext(ctx,
			level, row.MonsterID, row.Kind, row.Degree, row.Duration, row.MaxDuration,
			row.Category, row.SourceID, row.StashHP, row.StashMaxHP, row.StashAttitude,
		); err != nil {
			return fmt.Errorf("inserting enchantment %s: %w", row.Kind, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing enchantments save: %w", err)
	}
	return nil
}

// Load returns every stored table of the level.
func (s *SQLiteStore) Load(ctx context.Context, level string) (map[uint32][]ench.Record, error) {
	rows, err := s.sql.QueryContext(ctx, `
		SELECT monster_id, kind, degree, duration, max_duration, category, source_id, stash_hp, stash_max_hp, stash_attitude
		FROM enchantments
		WHERE level = ?
		ORDER BY monster_id, kind
	`, level)
	if err != nil {
		return nil, fmt.Errorf("querying enchantments of level %q: %w", level, err)
	}
	defer rows.Close()

	var loaded []Row
	for rows.Next() {
		var row Row
		if err := rows.Scan(&row.MonsterID, &row.Kind, &row.Degree, &row.Duration, &row.MaxDuration,
			&row.Category, &row.SourceID, &row.StashHP, &row.StashMaxHP, &row.StashAttitude); err != nil {
			return nil, fmt.Errorf("scanning enchantment row: %w", err)
		}
		loaded = append(loaded, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating enchantment rows: %w", err)
	}
	return collect(loaded), nil
}

// Delete forgets the monster's table.
func (s *SQLiteStore) Delete(ctx context.Context, level string, monster uint32) error {
	if _, err := s.sql.ExecContext(ctx,
		`DELETE FROM enchantments WHERE level = ? AND monster_id = ?`,
		level, int64(monster),
	); err != nil {
		return fmt.Errorf("deleting enchantments of monster %d: %w", monster, err)
	}
	return nil
}
