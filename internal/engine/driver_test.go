package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/monench/internal/ench"
	"github.com/udisondev/monench/internal/model"
	"github.com/udisondev/monench/internal/world"
)

func TestApplyAll_SlowWearsOff(t *testing.T) {
	f := newFixture(t, 5, 5, world.FeatureFloor)
	m := f.spawn(t, goblin, model.Loc(2, 2))

	f.add(t, m, ench.Slow, 1, 0)
	total := duration(m, ench.Slow)
	require.GreaterOrEqual(t, total, 60)
	require.LessOrEqual(t, total, 210)
	assert.Equal(t, 6, m.Speed())

	passes := 0
	for m.HasEnch(ench.Slow) {
		f.eng.ApplyAll(m)
		passes++
		require.Less(t, passes, 1000)
	}
	assert.Equal(t, (total+9)/10, passes)
	assert.Equal(t, ench.BaselineSpeed, m.Speed())
	assert.Equal(t, 1, f.rec.Count("no longer moving slowly"))
}

func TestApplyAll_FatigueTakesSlowFirst(t *testing.T) {
	probe := &tickCounter{Handler: handlers[ench.Slow]}
	f := newFixture(t, 5, 5, world.FeatureFloor, WithHandler(ench.Slow, probe))
	m := f.spawn(t, goblin, model.Loc(2, 2))

	f.add(t, m, ench.Fatigue, 1, 10)
	f.add(t, m, ench.Slow, 1, 50)

	f.eng.ApplyAll(m)

	assert.False(t, m.HasEnch(ench.Fatigue))
	assert.False(t, m.HasEnch(ench.Slow))
	assert.Zero(t, probe.ticks, "slow ticked after fatigue removed it")
	assert.Equal(t, ench.BaselineSpeed, m.Speed())
	assert.Equal(t, 1, f.rec.Count("looks more energetic"))
	assert.Zero(t, f.rec.Count("no longer moving slowly"))
}

func TestApplyAll_BerserkExhaustion(t *testing.T) {
	f := newFixture(t, 5, 5, world.FeatureFloor)
	m := f.spawn(t, goblin, model.Loc(2, 2))

	f.add(t, m, ench.Berserk, 1, 10)
	assert.Equal(t, 30, m.MaxHP())
	assert.Equal(t, 20, m.Speed())

	f.eng.ApplyAll(m)

	assert.False(t, m.HasEnch(ench.Berserk))
	assert.Equal(t, 20, m.MaxHP())
	assert.Equal(t, 20, m.HP())

	// Installed mid-pass, so neither has ticked yet.
	fatigue, slow := duration(m, ench.Fatigue), duration(m, ench.Slow)
	assert.GreaterOrEqual(t, fatigue, exhaustionMin)
	assert.LessOrEqual(t, fatigue, exhaustionMax)
	assert.Equal(t, fatigue, slow)
	assert.Equal(t, ench.BaselineSpeed*2/3, m.Speed())
	assert.Equal(t, 1, f.rec.Count("no longer berserk"))
}

func TestApplyAll_BerserkOutlastsHaste(t *testing.T) {
	f := newFixture(t, 5, 5, world.FeatureFloor)
	m := f.spawn(t, goblin, model.Loc(2, 2))

	f.add(t, m, ench.Haste, 1, 10)
	f.add(t, m, ench.Berserk, 1, 100)
	require.Equal(t, 30, m.HP())
	require.Equal(t, 20, m.Speed())

	f.eng.ApplyAll(m)

	assert.False(t, m.HasEnch(ench.Haste))
	assert.True(t, m.HasEnch(ench.Berserk))
	assert.Equal(t, 30, m.HP())
	assert.Equal(t, 30, m.MaxHP())
	assert.Equal(t, 20, m.Speed())

	require.True(t, f.eng.Remove(m, ench.Berserk, false, true))
	assert.Equal(t, 20, m.HP())
	assert.Equal(t, 20, m.MaxHP())
	assert.Equal(t, ench.BaselineSpeed, m.Speed())
}

func TestApplyAll_BerserkGivesBackOnlyWhatItGave(t *testing.T) {
	f := newFixture(t, 5, 5, world.FeatureFloor)
	m := f.spawn(t, goblin, model.Loc(2, 2))

	f.add(t, m, ench.Berserk, 1, 100)
	m.Hurt(5, "test")
	require.True(t, f.eng.Remove(m, ench.Berserk, false, true))
	assert.Equal(t, 15, m.HP())
	assert.Equal(t, 20, m.MaxHP())

	// Never killed by losing the bonus.
	f.add(t, m, ench.Berserk, 1, 100)
	m.Hurt(m.HP()-1, "test")
	require.True(t, f.eng.Remove(m, ench.Berserk, false, true))
	assert.True(t, m.Alive())
	assert.Equal(t, 1, m.HP())
}

func TestApplyAll_StopsWhenMonsterDies(t *testing.T) {
	probe := &tickCounter{Handler: handlers[ench.Regeneration]}
	f := newFixture(t, 5, 5, world.FeatureFloor, WithHandler(ench.Regeneration, probe))
	m := f.spawn(t, goblin, model.Loc(2, 2))

	// ShortLived sorts before Regeneration.
	f.add(t, m, ench.ShortLived, 1, 10)
	f.add(t, m, ench.Regeneration, 1, 100)

	f.eng.ApplyAll(m)

	assert.False(t, m.Alive())
	assert.Equal(t, "timeout", m.DeathCause())
	assert.Zero(t, probe.ticks)
}

func TestApplyAll_TimerRunsOut(t *testing.T) {
	f := newFixture(t, 5, 5, world.FeatureFloor)
	m := f.spawn(t, goblin, model.Loc(2, 2))
	f.add(t, m, ench.SlowlyDying, 1, 30)

	for range 2 {
		f.eng.ApplyAll(m)
	}
	assert.True(t, m.Alive())

	f.eng.ApplyAll(m)
	assert.False(t, m.Alive())
	assert.Equal(t, "withered", m.DeathCause())
}

func TestApplyAll_SubmergedWaitsForRoom(t *testing.T) {
	f := newFixture(t, 5, 5, world.FeatureShallowWater)
	f.lvl.Grid().Set(model.Loc(2, 2), world.FeatureDeepWater)
	fish := f.spawn(t, eel, model.Loc(2, 2))
	flier := f.spawn(t, bat, model.Loc(1, 1))

	f.add(t, fish, ench.Submerged, 1, ench.InfiniteDuration)
	require.True(t, f.lvl.Move(flier, model.Loc(2, 2)))

	// Nowhere to surface and the cell still allows hiding.
	assert.False(t, f.eng.Remove(fish, ench.Submerged, false, true))
	assert.True(t, fish.HasEnch(ench.Submerged))
	assert.True(t, fish.Enchantments().Pending().Has(ench.Submerged))

	f.eng.ApplyAll(fish)
	assert.True(t, fish.HasEnch(ench.Submerged), "removal retried while still blocked")

	require.True(t, f.lvl.Move(flier, model.Loc(1, 1)))
	f.eng.ApplyAll(fish)
	assert.False(t, fish.HasEnch(ench.Submerged))
	assert.True(t, fish.Enchantments().Pending().Empty())
	assert.Equal(t, model.Loc(2, 2), fish.Pos())
	assert.Equal(t, 1, f.rec.Count("bursts forth"))
}

func TestApplyAll_SubmergedSlipsAside(t *testing.T) {
	f := newFixture(t, 5, 5, world.FeatureShallowWater)
	f.lvl.Grid().Set(model.Loc(2, 2), world.FeatureDeepWater)
	f.lvl.Grid().Set(model.Loc(3, 2), world.FeatureDeepWater)
	fish := f.spawn(t, eel, model.Loc(2, 2))
	flier := f.spawn(t, bat, model.Loc(1, 1))

	f.add(t, fish, ench.Submerged, 1, ench.InfiniteDuration)
	require.True(t, f.lvl.Move(flier, model.Loc(2, 2)))

	assert.True(t, f.eng.Remove(fish, ench.Submerged, false, true))
	assert.Equal(t, model.Loc(3, 2), fish.Pos())
	got, ok := f.lvl.MonsterAt(model.Loc(2, 2))
	require.True(t, ok)
	assert.Same(t, flier, got)
}

func TestApplyAll_SurfacesWhenWaterGone(t *testing.T) {
	f := newFixture(t, 5, 5, world.FeatureDeepWater)
	fish := f.spawn(t, eel, model.Loc(2, 2))
	f.add(t, fish, ench.Submerged, 1, ench.InfiniteDuration)

	f.eng.ApplyAll(fish)
	assert.True(t, fish.HasEnch(ench.Submerged))

	f.lvl.Grid().Set(model.Loc(2, 2), world.FeatureShallowWater)
	f.eng.ApplyAll(fish)
	assert.False(t, fish.HasEnch(ench.Submerged))
	assert.Equal(t, model.BehaviourSeek, fish.Behaviour())
}
