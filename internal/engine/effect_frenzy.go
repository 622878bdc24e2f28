package engine

import (
	"github.com/udisondev/monench/internal/ench"
	"github.com/udisondev/monench/internal/model"
)

// Frenzies leave the monster worn out for this long (time units).
const (
	exhaustionMin = 70
	exhaustionMax = 130
)

// berserkEffect inflates hit points by half and doubles speed. The HP
// gained is stashed on the record and taken back exactly on exit.
type berserkEffect struct{ base }

func (berserkEffect) OnStart(c *Context) {
	m := c.Mon
	st := ench.Stash{
		MaxHP: m.MaxHP()*3/2 - m.MaxHP(),
		HP:    m.HP()*3/2 - m.HP(),
	}
	m.SetMaxHP(m.MaxHP() + st.MaxHP)
	m.SetHP(m.HP() + st.HP)
	c.SetStash(st)

	c.Remove(ench.Submerged, false)
	m.RecalcSpeed()
	c.Notify("{name} goes berserk!", SeverityWarn)
}

func (berserkEffect) OnActionTime(c *Context) {
	if c.Decay(true) {
		c.Notify("{name} is no longer berserk.", SeverityPlain)
		exhaust(c)
	}
}

func (berserkEffect) OnExit(c *Context) {
	m := c.Mon
	st := c.Record.Stash
	hp := max(1, m.HP()-st.HP)
	m.SetMaxHP(m.MaxHP() - st.MaxHP)
	m.SetHP(hp)
	m.RecalcSpeed()
}

func (berserkEffect) Reconcile() Strategy { return StrategyDrop }

// insaneEffect is a frenzy that also turns the monster on everyone. The
// old attitude is stashed and restored on exit.
type insaneEffect struct{ base }

func (insaneEffect) OnStart(c *Context) {
	m := c.Mon
	c.SetStash(ench.Stash{Attitude: int(m.Attitude())})
	m.SetAttitude(model.AttitudeHostile)

	c.Remove(ench.Submerged, false)
	m.RecalcSpeed()
	c.Notify("{name} goes into an insane frenzy!", SeverityWarn)
}

func (insaneEffect) OnActionTime(c *Context) {
	if c.Decay(true) {
		c.Notify("{name} is no longer in an insane frenzy.", SeverityPlain)
		exhaust(c)
	}
}

func (insaneEffect) OnExit(c *Context) {
	c.Mon.SetAttitude(model.Attitude(c.Record.Stash.Attitude))
	c.Mon.RecalcSpeed()
}

func (insaneEffect) Reconcile() Strategy { return StrategyDrop }

// exhaust installs the fatigue and slow pair that follows a frenzy.
func exhaust(c *Context) {
	if !c.Mon.Alive() {
		return
	}
	dur := c.Rand().RandomRange(exhaustionMin, exhaustionMax)
	self := ench.Attribution{Category: ench.CategorySelf, Source: c.Mon.ID()}
	c.Add(ench.New(ench.Fatigue, 0, self, dur))
	c.Add(ench.New(ench.Slow, 0, self, dur))
}

// fatigueEffect takes the post-frenzy slow with it when it ends.
type fatigueEffect struct{ base }

func (fatigueEffect) OnActionTime(c *Context) {
	if c.Decay(true) {
		c.Notify("{name} looks more energetic.", SeverityPlain)
		c.Remove(ench.Slow, true)
	}
}

func (fatigueEffect) Reconcile() Strategy { return StrategyDrop }

func (fatigueEffect) Drop(c *Context) {
	c.Remove(ench.Fatigue, true)
	c.Remove(ench.Slow, true)
}

var (
	_ = register(berserkEffect{}, ench.Berserk)
	_ = register(insaneEffect{}, ench.Insane)
	_ = register(fatigueEffect{}, ench.Fatigue)
)
