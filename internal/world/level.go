package world

import (
	"errors"
	"fmt"

	"github.com/udisondev/monench/internal/ench"
	"github.com/udisondev/monench/internal/model"
	"github.com/udisondev/monench/internal/rng"
)

var (
	// ErrOutOfBounds is returned when a cell lies outside the level.
	ErrOutOfBounds = errors.New("cell out of bounds")

	// ErrOccupied is returned when a cell already holds a monster.
	ErrOccupied = errors.New("cell occupied")

	// ErrUninhabitable is returned when a monster cannot live in a cell.
	ErrUninhabitable = errors.New("cell uninhabitable")
)

// teleportAttempts bounds the random search for a teleport destination.
const teleportAttempts = 200

// Level is one simulated map: terrain, clouds and the monsters on it.
// It also acts as the registry that turns attribution IDs back into live
// monsters.
//
// A Level is owned by a single goroutine.
type Level struct {
	name string
	grid *Grid
	ids  *IDGenerator

	monsters map[uint32]*model.Monster
	order    []uint32
	occupant map[model.Location]uint32
	clouds   map[model.Location]Cloud

	areaVersion int
	stillWinds  int
}

// NewLevel creates an empty level backed by grid.
func NewLevel(name string, grid *Grid, ids *IDGenerator) *Level {
	if ids == nil {
		ids = NewIDGenerator()
	}
	return &Level{
		name:     name,
		grid:     grid,
		ids:      ids,
		monsters: make(map[uint32]*model.Monster),
		occupant: make(map[model.Location]uint32),
		clouds:   make(map[model.Location]Cloud),
	}
}

// Name returns the level name.
func (l *Level) Name() string { return l.name }

// Grid returns the terrain.
func (l *Level) Grid() *Grid { return l.grid }

// Feature returns the terrain at loc.
func (l *Level) Feature(loc model.Location) Feature { return l.grid.At(loc) }

// Spawn creates a monster from t at loc.
func (l *Level) Spawn(t model.Template, loc model.Location) (*model.Monster, error) {
	return l.SpawnWithID(l.ids.Next(), t, loc)
}

// SpawnWithID creates a monster with a known ID, e.g. when restoring a save.
func (l *Level) SpawnWithID(id uint32, t model.Template, loc model.Location) (*model.Monster, error) {
	if !l.grid.InBounds(loc) {
		return nil, fmt.Errorf("spawning %s at %v: %w", t.Name, loc, ErrOutOfBounds)
	}
	if _, ok := l.MonsterAt(loc); ok {
		return nil, fmt.Errorf("spawning %s at %v: %w", t.Name, loc, ErrOccupied)
	}
	if _, dup := l.monsters[id]; dup {
		return nil, fmt.Errorf("spawning %s: duplicate monster id %d", t.Name, id)
	}

	m := model.NewMonster(id, t, loc)
	if !l.Habitable(m, loc) {
		return nil, fmt.Errorf("spawning %s at %v: %w", t.Name, loc, ErrUninhabitable)
	}

	l.ids.Observe(id)
	l.monsters[id] = m
	l.order = append(l.order, id)
	l.occupant[loc] = id
	return m, nil
}

// Monster returns a living monster by ID.
func (l *Level) Monster(id uint32) (*model.Monster, bool) {
	m, ok := l.monsters[id]
	if !ok || !m.Alive() {
		return nil, false
	}
	return m, true
}

// Resolve turns an attribution back into a live monster. Anonymous sources
// (ID 0) and dead or departed monsters resolve to nothing.
func (l *Level) Resolve(id uint32, _ ench.Category) (*model.Monster, bool) {
	if id == 0 {
		return nil, false
	}
	return l.Monster(id)
}

// Monsters returns the living monsters in spawn order.
func (l *Level) Monsters() []*model.Monster {
	out := make([]*model.Monster, 0, len(l.order))
	for _, id := range l.order {
		if m := l.monsters[id]; m.Alive() {
			out = append(out, m)
		}
	}
	return out
}

// Len returns the number of living monsters.
func (l *Level) Len() int {
	n := 0
	for _, m := range l.monsters {
		if m.Alive() {
			n++
		}
	}
	return n
}

// MonsterAt returns the living monster standing on loc.
func (l *Level) MonsterAt(loc model.Location) (*model.Monster, bool) {
	id, ok := l.occupant[loc]
	if !ok {
		return nil, false
	}
	if m, ok := l.Monster(id); ok {
		return m, true
	}
	// The occupant died; a monster below may still be there.
	delete(l.occupant, loc)
	l.Settle(loc)
	if id, ok = l.occupant[loc]; ok {
		return l.Monster(id)
	}
	return nil, false
}

// Occupied reports whether a living monster stands on loc.
func (l *Level) Occupied(loc model.Location) bool {
	_, ok := l.MonsterAt(loc)
	return ok
}

// Move relocates m to loc if the cell is habitable and free. A surface
// monster may move over a submerged one; the submerged monster keeps its
// cell and reclaims it when the cell empties.
func (l *Level) Move(m *model.Monster, loc model.Location) bool {
	if !l.grid.InBounds(loc) || !l.Habitable(m, loc) {
		return false
	}
	if other, ok := l.MonsterAt(loc); ok && other != m {
		if !other.Submerged() || m.Submerged() {
			return false
		}
	}
	old := m.Pos()
	m.SetPos(loc)
	l.occupant[loc] = m.ID()
	if old != loc && l.occupant[old] == m.ID() {
		delete(l.occupant, old)
		l.Settle(old)
	}
	return true
}

// Settle recomputes who occupies loc. A monster on the surface wins over
// one submerged below it; an empty cell is cleared.
func (l *Level) Settle(loc model.Location) {
	var below uint32
	for _, id := range l.order {
		m := l.monsters[id]
		if !m.Alive() || m.Pos() != loc {
			continue
		}
		if !m.Submerged() {
			l.occupant[loc] = id
			return
		}
		if below == 0 {
			below = id
		}
	}
	if below != 0 {
		l.occupant[loc] = below
		return
	}
	delete(l.occupant, loc)
}

// Habitable reports whether m can live at loc. Aquatic monsters need
// water; everything else needs dry ground unless it is flying.
func (l *Level) Habitable(m *model.Monster, loc model.Location) bool {
	f := l.grid.At(loc)
	if f.Solid() {
		return false
	}
	if m.Is(model.FlagAquatic) {
		return f.Watery()
	}
	if f == FeatureDeepWater || f == FeatureLava {
		return m.Airborne()
	}
	return true
}

// CanSubmerge reports whether m could hide under the surface at loc.
func (l *Level) CanSubmerge(m *model.Monster, loc model.Location) bool {
	return m.Is(model.FlagSubmerges) && l.grid.At(loc) == FeatureDeepWater
}

// FreeAdjacent picks a uniformly random unoccupied neighbour of loc that
// satisfies ok.
func (l *Level) FreeAdjacent(loc model.Location, rs *rng.Stream, ok func(model.Location) bool) (model.Location, bool) {
	var (
		pick  model.Location
		found int
	)
	for _, n := range l.grid.adjacent(loc) {
		if l.Occupied(n) || (ok != nil && !ok(n)) {
			continue
		}
		found++
		if rs.OneChanceIn(found) {
			pick = n
		}
	}
	return pick, found > 0
}

// Blink moves m to a random free habitable cell next to it.
func (l *Level) Blink(m *model.Monster, rs *rng.Stream) bool {
	dest, ok := l.FreeAdjacent(m.Pos(), rs, func(n model.Location) bool {
		return l.Habitable(m, n)
	})
	if !ok {
		return false
	}
	return l.Move(m, dest)
}

// Teleport moves m to a random free habitable cell anywhere on the level.
func (l *Level) Teleport(m *model.Monster, rs *rng.Stream) bool {
	for range teleportAttempts {
		dest := model.Loc(rs.Random2(l.grid.Width()), rs.Random2(l.grid.Height()))
		if dest == m.Pos() {
			continue
		}
		if l.Move(m, dest) {
			return true
		}
	}
	return false
}

// CloudAt returns the cloud over loc.
func (l *Level) CloudAt(loc model.Location) Cloud {
	return l.clouds[loc]
}

// PlaceCloud puts a cloud over loc, replacing any cloud already there.
// Walls never hold clouds.
func (l *Level) PlaceCloud(loc model.Location, c Cloud) {
	if l.grid.At(loc).Solid() {
		return
	}
	if c == CloudNone {
		delete(l.clouds, loc)
		return
	}
	l.clouds[loc] = c
}

// PlaceCloudRing surrounds loc with clouds of kind c.
func (l *Level) PlaceCloudRing(loc model.Location, c Cloud) int {
	n := 0
	for _, adj := range l.grid.adjacent(loc) {
		if l.grid.At(adj).Solid() {
			continue
		}
		l.PlaceCloud(adj, c)
		n++
	}
	return n
}

// InvalidateAreas marks cached area effects (silence, liquefaction) as
// stale.
func (l *Level) InvalidateAreas() { l.areaVersion++ }

// AreaVersion changes every time area caches are invalidated.
func (l *Level) AreaVersion() int { return l.areaVersion }

// StartStillWinds calms the air on the level.
func (l *Level) StartStillWinds() { l.stillWinds++ }

// EndStillWinds releases one still-winds source.
func (l *Level) EndStillWinds() {
	if l.stillWinds > 0 {
		l.stillWinds--
	}
}

// StillWinds reports whether any source keeps the air calm.
func (l *Level) StillWinds() bool { return l.stillWinds > 0 }

// Sweep forgets dead monsters and returns how many were removed.
func (l *Level) Sweep() int {
	kept := make([]uint32, 0, len(l.order))
	var vacated []model.Location
	for _, id := range l.order {
		m := l.monsters[id]
		if m.Alive() {
			kept = append(kept, id)
			continue
		}
		if l.occupant[m.Pos()] == id {
			delete(l.occupant, m.Pos())
			vacated = append(vacated, m.Pos())
		}
		delete(l.monsters, id)
	}
	removed := len(l.order) - len(kept)
	l.order = kept
	for _, loc := range vacated {
		l.Settle(loc)
	}
	return removed
}
