package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/monench/internal/ench"
)

// PgStore keeps enchantment tables in PostgreSQL.
type PgStore struct {
	pool *pgxpool.Pool
}

// NewPgStore connects to PostgreSQL and returns a store.
func NewPgStore(ctx context.Context, dsn string) (*PgStore, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	return &PgStore{pool: pool}, nil
}

// NewPgStoreFromPool wraps an existing pool.
func NewPgStoreFromPool(pool *pgxpool.Pool) *PgStore {
	return &PgStore{pool: pool}
}

// Close closes the connection pool.
func (s *PgStore) Close() error {
	s.pool.Close()
	return nil
}

// Save rewrites the monster's table in one transaction.
func (s *PgStore) Save(ctx context.Context, level string, monster uint32, recs []ench.Record) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx) // после Commit ошибка ожидаема
	}()

	if _, err := tx.Exec(ctx,
		`DELETE FROM enchantments WHERE level = $1 AND monster_id = $2`,
		level, int64(monster),
	); err != nil {
		return fmt.Errorf("deleting enchantments of monster %d: %w", monster, err)
	}

	for _, rec := range recs {
		row := toRow(monster, rec)
		if _, err := tx.Exec(ctx,
			`INSERT INTO enchantments
			 (level, monster_id, kind, degree, duration, max_duration, category, source_id, stash_hp, stash_max_hp, stash_attitude)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
			level, row.MonsterID, row.Kind, row.Degree, row.Duration, row.MaxDuration,
			row.Category, row.SourceID, row.StashHP, row.StashMaxHP, row.StashAttitude,
		); err != nil {
			return fmt.Errorf("inserting enchantment %s: %w", row.Kind, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing enchantments save: %w", err)
	}
	return nil
}

// Load returns every stored table of the level.
func (s *PgStore) Load(ctx context.Context, level string) (map[uint32][]ench.Record, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT monster_id, kind, degree, duration, max_duration, category, source_id, stash_hp, stash_max_hp, stash_attitude
		FROM enchantments
		WHERE level = $1
		ORDER BY monster_id, kind
	`, level)
	if err != nil {
		return nil, fmt.Errorf("querying enchantments of level %q: %w", level, err)
	}
	defer rows.Close()

	loaded := make([]Row, 0, 64)
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
func (s *PgStore) Delete(ctx context.Context, level string, monster uint32) error {
	if _, err := s.pool.Exec(ctx,
		`DELETE FROM enchantments WHERE level = $1 AND monster_id = $2`,
		level, int64(monster),
	); err != nil {
		return fmt.Errorf("deleting enchantments of monster %d: %w", monster, err)
	}
	return nil
}
