package db

import (
	"context"
	"log/slog"

	"github.com/udisondev/monench/internal/ench"
	"github.com/udisondev/monench/internal/save"
)

// Store persists enchantment tables keyed by level and monster.
type Store interface {
	// Save replaces everything stored for the monster with recs.
	Save(ctx context.Context, level string, monster uint32, recs []ench.Record) error
	// Load returns every stored table of a level, keyed by monster ID.
	Load(ctx context.Context, level string) (map[uint32][]ench.Record, error)
	// Delete forgets a monster's table.
	Delete(ctx context.Context, level string, monster uint32) error
	Close() error
}

// Row is one stored record. Kinds are stored by name so that renumbering
// the enumeration never corrupts saved data.
type Row struct {
	MonsterID     int64
	Kind          string
	Degree        int
	Duration      int
	MaxDuration   int
	Category      int
	SourceID      int64
	StashHP       int
	StashMaxHP    int
	StashAttitude int
}

func toRow(monster uint32, rec ench.Record) Row {
	return Row{
		MonsterID:     int64(monster),
		Kind:          rec.Kind.String(),
		Degree:        rec.Degree,
		Duration:      rec.Duration,
		MaxDuration:   rec.MaxDuration,
		Category:      int(rec.Who.Category),
		SourceID:      int64(rec.Who.Source),
		StashHP:       rec.Stash.HP,
		StashMaxHP:    rec.Stash.MaxHP,
		StashAttitude: rec.Stash.Attitude,
	}
}

// fromRow converts a row back into a record with the same tolerance as the
// binary codec: unknown kinds are dropped and numbers are clamped.
func fromRow(row Row) (ench.Record, bool) {
	kind, ok := ench.ParseKind(row.Kind)
	if !ok {
		slog.Debug("dropping unknown enchantment kind", "kind", row.Kind, "monster", row.MonsterID)
		return ench.Record{}, false
	}
	category := row.Category
	if category < 0 {
		category = int(ench.CategoryOther)
	}
	rec := ench.Record{
		Kind:        kind,
		Degree:      row.Degree,
		Duration:    row.Duration,
		MaxDuration: row.MaxDuration,
		Who: ench.Attribution{
			Category: ench.Category(min(category, int(ench.CategoryOther))),
			Source:   uint32(row.SourceID),
		},
		Stash: ench.Stash{
			HP:       row.StashHP,
			MaxHP:    row.StashMaxHP,
			Attitude: row.StashAttitude,
		},
	}
	return save.Sanitize(rec), true
}

// collect groups loaded rows by monster.
func collect(rows []Row) map[uint32][]ench.Record {
	out := make(map[uint32][]ench.Record)
	for _, row := range rows {
		rec, ok := fromRow(row)
		if !ok {
			continue
		}
		id := uint32(row.MonsterID)
		out[id] = append(out[id], rec)
	}
	return out
}
