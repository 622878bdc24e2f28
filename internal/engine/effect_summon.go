package engine

import (
	"github.com/udisondev/monench/internal/ench"
)

// hauntingAbjuration bounds the lifetime left to a summon whose haunting
// target is gone: 5 plus up to 29 more time units.
const (
	hauntingAbjBase  = 5
	hauntingAbjRange = 30
)

// summonEffect marks how a monster was summoned. It never expires.
type summonEffect struct{ base }

func (summonEffect) OnActionTime(*Context) {}
func (summonEffect) Reconcile() Strategy   { return StrategyKeep }

// abjurationEffect is a summon's lifetime. When it ends the monster is
// dismissed.
type abjurationEffect struct {
	base
	cause string
}

func (e abjurationEffect) OnExit(c *Context) {
	if !c.Mon.Alive() {
		return
	}
	cause := e.cause
	if c.Quiet {
		cause = "dismissed"
	}
	c.Notify("{name} disappears.", SeverityPlain)
	c.Mon.Die(cause)
}

// hauntingEffect lasts as long as the haunted monster does. Once it ends,
// the summon has only a short while left.
type hauntingEffect struct{ base }

func (hauntingEffect) OnActionTime(c *Context) {
	if _, ok := c.Source(); !ok {
		c.Remove(ench.Haunting, false)
	}
}

func (hauntingEffect) OnExit(c *Context) {
	abj, ok := c.Mon.Enchantments().Get(ench.Abj)
	if !ok {
		return
	}
	abj.Degree = 1
	abj.Duration = min(hauntingAbjBase+c.Rand().Random2(hauntingAbjRange), abj.Duration)
	c.Mon.Enchantments().Update(abj)
}

func (hauntingEffect) Reconcile() Strategy { return StrategyKeep }

// injuryBondEffect shares injuries with its source, so it cannot outlive
// it.
type injuryBondEffect struct{ base }

func (injuryBondEffect) OnActionTime(c *Context) {
	if _, ok := c.Source(); !ok {
		c.Engine().Remove(c.Mon, ench.InjuryBond, true, false)
		return
	}
	c.Decay(true)
}

var (
	_ = register(summonEffect{}, ench.Summon)
	_ = register(abjurationEffect{cause: "timeout"}, ench.Abj)
	_ = register(abjurationEffect{cause: "misc"}, ench.FakeAbjuration)
	_ = register(hauntingEffect{}, ench.Haunting)
	_ = register(injuryBondEffect{}, ench.InjuryBond)
)
