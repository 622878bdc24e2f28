package world

import (
	"errors"
	"testing"

	"github.com/udisondev/monench/internal/ench"
	"github.com/udisondev/monench/internal/model"
	"github.com/udisondev/monench/internal/rng"
)

var (
	orc  = model.Template{Name: "orc", HP: 10, HitDice: 2, Speed: 10}
	fish = model.Template{Name: "fish", HP: 10, HitDice: 2, Speed: 10, Flags: model.FlagAquatic | model.FlagSubmerges}
	bird = model.Template{Name: "bird", HP: 5, HitDice: 1, Speed: 20, Flags: model.FlagFlier}
)

// newPond returns a 5x5 floor level with a deep pool at (2,2) ringed by
// shallow water.
func newPond() *Level {
	g := NewGrid(5, 5)
	g.Fill(model.Loc(1, 1), model.Loc(3, 3), FeatureShallowWater)
	g.Set(model.Loc(2, 2), FeatureDeepWater)
	return NewLevel("pond", g, nil)
}

func mustSpawn(t *testing.T, l *Level, tmpl model.Template, loc model.Location) *model.Monster {
	t.Helper()
	m, err := l.Spawn(tmpl, loc)
	if err != nil {
		t.Fatalf("Spawn(%s, %v): %v", tmpl.Name, loc, err)
	}
	return m
}

func submerge(m *model.Monster) {
	m.Enchantments().Install(ench.New(ench.Submerged, 1, ench.Attribution{}, ench.InfiniteDuration))
}

func TestLevel_SpawnErrors(t *testing.T) {
	l := newPond()
	mustSpawn(t, l, orc, model.Loc(0, 0))

	tests := []struct {
		name string
		tmpl model.Template
		loc  model.Location
		want error
	}{
		{"out of bounds", orc, model.Loc(9, 9), ErrOutOfBounds},
		{"occupied", orc, model.Loc(0, 0), ErrOccupied},
		{"walker in deep water", orc, model.Loc(2, 2), ErrUninhabitable},
		{"fish on land", fish, model.Loc(4, 4), ErrUninhabitable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := l.Spawn(tt.tmpl, tt.loc)
			if !errors.Is(err, tt.want) {
				t.Errorf("Spawn() error = %v, want %v", err, tt.want)
			}
		})
	}

	if l.Len() != 1 {
		t.Errorf("Len() = %d after failed spawns, want 1", l.Len())
	}
}

func TestLevel_SpawnWithID(t *testing.T) {
	l := newPond()
	m, err := l.SpawnWithID(firstMonsterID+100, orc, model.Loc(0, 0))
	if err != nil {
		t.Fatalf("SpawnWithID: %v", err)
	}
	if _, err := l.SpawnWithID(m.ID(), orc, model.Loc(4, 4)); err == nil {
		t.Error("duplicate id accepted")
	}

	next := mustSpawn(t, l, orc, model.Loc(4, 0))
	if next.ID() <= m.ID() {
		t.Errorf("Spawn after restore issued id %d, want > %d", next.ID(), m.ID())
	}
}

func TestLevel_Resolve(t *testing.T) {
	l := newPond()
	m := mustSpawn(t, l, orc, model.Loc(0, 0))

	if got, ok := l.Resolve(m.ID(), ench.CategoryOther); !ok || got != m {
		t.Errorf("Resolve(%d) = %v, %v", m.ID(), got, ok)
	}
	if _, ok := l.Resolve(0, ench.CategorySelf); ok {
		t.Error("anonymous source resolved")
	}

	m.Die("test")
	if _, ok := l.Resolve(m.ID(), ench.CategoryOther); ok {
		t.Error("dead monster resolved")
	}
	if l.Occupied(model.Loc(0, 0)) {
		t.Error("dead monster still occupies its cell")
	}
}

func TestLevel_MonstersInSpawnOrder(t *testing.T) {
	l := newPond()
	a := mustSpawn(t, l, orc, model.Loc(4, 4))
	b := mustSpawn(t, l, orc, model.Loc(0, 0))
	c := mustSpawn(t, l, orc, model.Loc(4, 0))
	b.Die("test")

	got := l.Monsters()
	if len(got) != 2 || got[0] != a || got[1] != c {
		t.Errorf("Monsters() = %v, want [a c]", got)
	}
}

func TestLevel_MoveOverSubmerged(t *testing.T) {
	l := newPond()
	f := mustSpawn(t, l, fish, model.Loc(2, 2))
	b := mustSpawn(t, l, bird, model.Loc(0, 0))
	o := mustSpawn(t, l, orc, model.Loc(1, 1))

	if l.Move(b, model.Loc(2, 2)) {
		t.Fatal("moved onto a surfaced monster")
	}

	submerge(f)
	if !l.Move(b, model.Loc(2, 2)) {
		t.Fatal("could not fly over a submerged monster")
	}
	if above, _ := l.MonsterAt(model.Loc(2, 2)); above != b {
		t.Errorf("MonsterAt = %v, want the bird", above)
	}
	if f.Pos() != model.Loc(2, 2) {
		t.Errorf("submerged monster moved to %v", f.Pos())
	}

	if !l.Move(b, model.Loc(0, 0)) {
		t.Fatal("could not fly away")
	}
	if below, _ := l.MonsterAt(model.Loc(2, 2)); below != f {
		t.Errorf("cell not handed back to the submerged monster, got %v", below)
	}

	// Walkers cannot enter deep water at all.
	if l.Move(o, model.Loc(2, 2)) {
		t.Error("walker moved into deep water")
	}
}

func TestLevel_SweepRestoresSubmerged(t *testing.T) {
	l := newPond()
	f := mustSpawn(t, l, fish, model.Loc(2, 2))
	b := mustSpawn(t, l, bird, model.Loc(0, 0))
	submerge(f)
	l.Move(b, model.Loc(2, 2))

	b.Die("test")
	if n := l.Sweep(); n != 1 {
		t.Errorf("Sweep() = %d, want 1", n)
	}
	if got, ok := l.MonsterAt(model.Loc(2, 2)); !ok || got != f {
		t.Errorf("MonsterAt after sweep = %v, %v", got, ok)
	}
	if _, ok := l.Monster(b.ID()); ok {
		t.Error("swept monster still registered")
	}
	if n := l.Sweep(); n != 0 {
		t.Errorf("second Sweep() = %d, want 0", n)
	}
}

func TestLevel_Habitable(t *testing.T) {
	l := newPond()
	l.Grid().Set(model.Loc(4, 4), FeatureLava)
	walker := model.NewMonster(1, orc, model.Loc(0, 0))
	swimmer := model.NewMonster(2, fish, model.Loc(0, 0))
	flier := model.NewMonster(3, bird, model.Loc(0, 0))

	tests := []struct {
		name string
		m    *model.Monster
		loc  model.Location
		want bool
	}{
		{"walker floor", walker, model.Loc(0, 0), true},
		{"walker shallow", walker, model.Loc(1, 1), true},
		{"walker deep", walker, model.Loc(2, 2), false},
		{"walker lava", walker, model.Loc(4, 4), false},
		{"walker wall", walker, model.Loc(-1, 0), false},
		{"swimmer floor", swimmer, model.Loc(0, 0), false},
		{"swimmer shallow", swimmer, model.Loc(1, 1), true},
		{"swimmer deep", swimmer, model.Loc(2, 2), true},
		{"flier deep", flier, model.Loc(2, 2), true},
		{"flier lava", flier, model.Loc(4, 4), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := l.Habitable(tt.m, tt.loc); got != tt.want {
				t.Errorf("Habitable(%v) = %v, want %v", tt.loc, got, tt.want)
			}
		})
	}

	if !l.CanSubmerge(swimmer, model.Loc(2, 2)) || l.CanSubmerge(swimmer, model.Loc(1, 1)) {
		t.Error("only deep water allows submerging")
	}
	if l.CanSubmerge(walker, model.Loc(2, 2)) {
		t.Error("walker cannot submerge")
	}
}

func TestLevel_FreeAdjacent(t *testing.T) {
	l := NewLevel("room", NewGrid(3, 3), nil)
	rs := rng.New(1)
	center := model.Loc(1, 1)
	for y := range 3 {
		for x := range 3 {
			loc := model.Loc(x, y)
			if loc == center || loc == model.Loc(2, 0) {
				continue
			}
			mustSpawn(t, l, orc, loc)
		}
	}

	got, ok := l.FreeAdjacent(center, rs, nil)
	if !ok || got != model.Loc(2, 0) {
		t.Errorf("FreeAdjacent = %v, %v, want (2,0)", got, ok)
	}
	if _, ok := l.FreeAdjacent(center, rs, func(model.Location) bool { return false }); ok {
		t.Error("filter ignored")
	}

	mustSpawn(t, l, orc, model.Loc(2, 0))
	if _, ok := l.FreeAdjacent(center, rs, nil); ok {
		t.Error("found a free cell on a full level")
	}
}

func TestLevel_BlinkAndTeleport(t *testing.T) {
	l := NewLevel("room", NewGrid(6, 6), nil)
	rs := rng.New(3)
	m := mustSpawn(t, l, orc, model.Loc(2, 2))

	if !l.Blink(m, rs) {
		t.Fatal("Blink failed on an empty level")
	}
	if !m.Pos().Adjacent(model.Loc(2, 2)) {
		t.Errorf("blinked to %v, not adjacent", m.Pos())
	}
	if l.Occupied(model.Loc(2, 2)) {
		t.Error("old cell still occupied")
	}

	from := m.Pos()
	if !l.Teleport(m, rs) {
		t.Fatal("Teleport failed on an empty level")
	}
	if m.Pos() == from {
		t.Error("teleport did not move")
	}

	tiny := NewLevel("closet", NewGrid(1, 1), nil)
	alone := mustSpawn(t, tiny, orc, model.Loc(0, 0))
	if tiny.Teleport(alone, rs) || tiny.Blink(alone, rs) {
		t.Error("moved with nowhere to go")
	}
}

func TestLevel_Clouds(t *testing.T) {
	l := NewLevel("room", NewGrid(3, 3), nil)

	l.PlaceCloud(model.Loc(1, 1), CloudPoison)
	if c := l.CloudAt(model.Loc(1, 1)); c != CloudPoison {
		t.Errorf("CloudAt = %s, want poison", c)
	}
	l.PlaceCloud(model.Loc(1, 1), CloudNone)
	if c := l.CloudAt(model.Loc(1, 1)); c != CloudNone {
		t.Errorf("CloudAt after clearing = %s", c)
	}

	l.PlaceCloud(model.Loc(-1, -1), CloudFire)
	if c := l.CloudAt(model.Loc(-1, -1)); c != CloudNone {
		t.Errorf("cloud placed in a wall: %s", c)
	}

	if n := l.PlaceCloudRing(model.Loc(0, 0), CloudStorm); n != 3 {
		t.Errorf("PlaceCloudRing in corner = %d, want 3", n)
	}
	if c := l.CloudAt(model.Loc(1, 1)); c != CloudStorm {
		t.Errorf("ring cell = %s, want storm", c)
	}
}

func TestLevel_AreaState(t *testing.T) {
	l := NewLevel("room", NewGrid(3, 3), nil)

	v := l.AreaVersion()
	l.InvalidateAreas()
	if l.AreaVersion() == v {
		t.Error("InvalidateAreas did not change the version")
	}

	l.StartStillWinds()
	l.StartStillWinds()
	l.EndStillWinds()
	if !l.StillWinds() {
		t.Error("one source should still hold the air")
	}
	l.EndStillWinds()
	l.EndStillWinds()
	if l.StillWinds() {
		t.Error("still winds outlived its sources")
	}
	l.StartStillWinds()
	if !l.StillWinds() {
		t.Error("counter went negative")
	}
}

func TestLevel_Settle(t *testing.T) {
	l := newPond()
	f := mustSpawn(t, l, fish, model.Loc(2, 2))
	b := mustSpawn(t, l, bird, model.Loc(0, 0))

	// Both end up in the pool, as after loading a save.
	b.SetPos(model.Loc(2, 2))
	l.Settle(model.Loc(0, 0))
	if l.Occupied(model.Loc(0, 0)) {
		t.Error("vacated cell still occupied")
	}

	submerge(f)
	l.Settle(model.Loc(2, 2))
	if got, _ := l.MonsterAt(model.Loc(2, 2)); got != b {
		t.Errorf("MonsterAt = %v, want the bird on the surface", got)
	}

	b.Die("test")
	l.Settle(model.Loc(2, 2))
	if got, _ := l.MonsterAt(model.Loc(2, 2)); got != f {
		t.Errorf("MonsterAt = %v, want the submerged fish", got)
	}
}
