// Package sim drives levels of monsters through turns: one enchantment
// pass per living monster per turn, and time-skip reconciliation when a
// level is resumed after being off-screen.
package sim

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/udisondev/monench/internal/db"
	"github.com/udisondev/monench/internal/ench"
	"github.com/udisondev/monench/internal/engine"
	"github.com/udisondev/monench/internal/model"
	"github.com/udisondev/monench/internal/rng"
	"github.com/udisondev/monench/internal/save"
	"github.com/udisondev/monench/internal/world"
)

// placeAttempts bounds the search for a spawn cell.
const placeAttempts = 100

// Stats summarises one turn.
type Stats struct {
	Turn         int
	Acted        int // monsters that got a pass
	Died         int
	Enchantments int // active records after the turn
}

// Level owns one world level, its engine and its random stream.
// Not safe for concurrent use; run each Level in its own goroutine.
type Level struct {
	world  *world.Level
	engine *engine.Engine
	rs     *rng.Stream
	log    *slog.Logger
	turn   int
}

// NewLevel builds a level with generated terrain.
func NewLevel(name string, width, height int, seed uint64, opts ...engine.Option) *Level {
	rs := rng.New(seed)
	grid := GenerateGrid(width, height, rs)
	wl := world.NewLevel(name, grid, world.NewIDGenerator())
	return Wrap(wl, rs, opts...)
}

// Wrap drives an existing world level.
func Wrap(wl *world.Level, rs *rng.Stream, opts ...engine.Option) *Level {
	log := slog.Default().With("level", wl.Name())
	opts = append([]engine.Option{engine.WithLogger(log)}, opts...)
	return &Level{
		world:  wl,
		engine: engine.New(wl, rs, opts...),
		rs:     rs,
		log:    log,
	}
}

func (l *Level) World() *world.Level    { return l.world }
func (l *Level) Engine() *engine.Engine { return l.engine }
func (l *Level) Name() string           { return l.world.Name() }
func (l *Level) TurnCount() int         { return l.turn }

// Populate spawns up to n monsters from the bestiary on random habitable
// cells and returns how many were placed.
func (l *Level) Populate(n int) int {
	placed := 0
	for range n {
		t := Bestiary[l.rs.Random2(len(Bestiary))]
		if _, ok := l.place(t); ok {
			placed++
		}
	}
	l.log.Debug("level populated", "requested", n, "placed", placed)
	return placed
}

func (l *Level) place(t model.Template) (*model.Monster, bool) {
	g := l.world.Grid()
	for range placeAttempts {
		loc := model.Loc(l.rs.Random2(g.Width()), l.rs.Random2(g.Height()))
		m, err := l.world.Spawn(t, loc)
		if err == nil {
			return m, true
		}
	}
	return nil, false
}

// Enchant applies count random enchantments to m. Some may be refused.
func (l *Level) Enchant(m *model.Monster, count int) int {
	others := l.world.Monsters()
	applied := 0
	for range count {
		k := ench.Kind(l.rs.Random2(int(ench.NumKinds)))
		who := ench.Attribution{Category: ench.Category(l.rs.Random2(int(ench.CategoryOther) + 1))}
		if len(others) > 0 && l.rs.CoinFlip() {
			who.Source = others[l.rs.Random2(len(others))].ID()
		}
		if l.engine.Add(m, ench.New(k, 1+l.rs.Random2(3), who, 0)) {
			applied++
		}
		if !m.Alive() {
			break
		}
	}
	return applied
}

// EnchantAll gives every living monster up to perMonster enchantments.
func (l *Level) EnchantAll(perMonster int) int {
	applied := 0
	for _, m := range l.world.Monsters() {
		applied += l.Enchant(m, 1+l.rs.Random2(perMonster))
	}
	return applied
}

// Turn runs one enchantment pass for every monster alive at its start,
// then forgets the dead.
func (l *Level) Turn() Stats {
	l.turn++
	st := Stats{Turn: l.turn}
	for _, m := range l.world.Monsters() {
		if !m.Alive() {
			continue
		}
		l.engine.ApplyAll(m)
		st.Acted++
	}
	st.Died = l.world.Sweep()
	st.Enchantments = l.countEnchantments()
	return st
}

// Resume brings every monster up to date after ticks baseline ticks
// off-screen.
func (l *Level) Resume(ticks int) Stats {
	st := Stats{Turn: l.turn}
	for _, m := range l.world.Monsters() {
		if !m.Alive() {
			continue
		}
		l.engine.ReconcileElapsed(m, ticks)
		st.Acted++
	}
	st.Died = l.world.Sweep()
	st.Enchantments = l.countEnchantments()
	l.log.Debug("level resumed", "ticks", ticks, "died", st.Died)
	return st
}

// Run drives turns until all are done or ctx is cancelled. A zero
// interval runs turns back to back.
func (l *Level) Run(ctx context.Context, turns int, interval time.Duration) (Stats, error) {
	var (
		last Stats
		tick <-chan time.Time
	)
	if interval > 0 {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	total := Stats{}
	for range turns {
		if tick != nil {
			select {
			case <-ctx.Done():
				return total, ctx.Err()
			case <-tick:
			}
		} else if err := ctx.Err(); err != nil {
			return total, err
		}

		last = l.Turn()
		total.Turn = last.Turn
		total.Acted += last.Acted
		total.Died += last.Died
		total.Enchantments = last.Enchantments
	}

	l.log.Info("level finished",
		"turns", total.Turn,
		"alive", l.world.Len(),
		"died", total.Died,
		"enchantments", total.Enchantments)
	return total, nil
}

func (l *Level) countEnchantments() int {
	n := 0
	for _, m := range l.world.Monsters() {
		n += m.Enchantments().Len()
	}
	return n
}

// Entries returns every living monster's table, in spawn order.
func (l *Level) Entries() []save.Entry {
	monsters := l.world.Monsters()
	out := make([]save.Entry, 0, len(monsters))
	for _, m := range monsters {
		out = append(out, save.Entry{Monster: m.ID(), Records: m.Enchantments().Records()})
	}
	return out
}

// Restore replaces the tables of the listed monsters. Records are installed
// as saved and onsets do not run again, but level state owned by a record
// (still winds, submerged occupancy) is rebuilt. Entries for unknown
// monsters are skipped and counted.
func (l *Level) Restore(entries []save.Entry) (skipped int) {
	for _, e := range entries {
		m, ok := l.world.Monster(e.Monster)
		if !ok {
			skipped++
			continue
		}
		l.engine.Restore(m, e.Records)
	}
	if skipped > 0 {
		l.log.Warn("restore skipped unknown monsters", "count", skipped)
	}
	return skipped
}

// Persist writes every living monster's table to store.
func (l *Level) Persist(ctx context.Context, store db.Store) error {
	for _, e := range l.Entries() {
		if err := store.Save(ctx, l.Name(), e.Monster, e.Records); err != nil {
			return fmt.Errorf("persisting level %s: %w", l.Name(), err)
		}
	}
	return nil
}

// LoadFrom restores tables saved for this level.
func (l *Level) LoadFrom(ctx context.Context, store db.Store) (int, error) {
	tables, err := store.Load(ctx, l.Name())
	if err != nil {
		return 0, fmt.Errorf("loading level %s: %w", l.Name(), err)
	}
	entries := make([]save.Entry, 0, len(tables))
	for _, m := range l.world.Monsters() {
		if recs, ok := tables[m.ID()]; ok {
			entries = append(entries, save.Entry{Monster: m.ID(), Records: recs})
			delete(tables, m.ID())
		}
	}
	for id, recs := range tables {
		entries = append(entries, save.Entry{Monster: id, Records: recs})
	}
	l.Restore(entries)
	return len(entries), nil
}
