package engine

import (
	"github.com/udisondev/monench/internal/ench"
	"github.com/udisondev/monench/internal/model"
	"github.com/udisondev/monench/internal/world"
)

// petrifyingEffect turns into full petrification when it runs out.
type petrifyingEffect struct{ base }

func (petrifyingEffect) Admit(c *Context) bool {
	return !c.Mon.Petrified()
}

func (petrifyingEffect) OnStart(c *Context) {
	c.Notify("{name} is moving more slowly.", SeverityPlain)
}

func (petrifyingEffect) OnExit(c *Context) {
	if !c.Mon.Alive() {
		return
	}
	c.Add(ench.New(ench.Petrified, 1, c.Record.Who, 0))
	c.Notify("{name} turns to stone.", SeverityWarn)
}

// petrifiedEffect also clears any leftover petrifying when it ends.
type petrifiedEffect struct{ base }

func (petrifiedEffect) OnExit(c *Context) {
	c.Notify("{name} is no longer petrified.", SeverityPlain)
	// Without the offset, or the leftover would petrify it again.
	c.Engine().Remove(c.Mon, ench.Petrifying, true, false)
}

// flightEffect lifts the monster off the ground. Landing applies whatever
// the ground underneath does.
type flightEffect struct{ base }

func (flightEffect) OnStart(c *Context) {
	c.Remove(ench.Liquefying, false)
}

func (flightEffect) OnExit(c *Context) {
	applyLocationEffects(c)
}

// applyLocationEffects resolves a monster standing somewhere it cannot
// live: it drowns in deep water or burns up in lava.
func applyLocationEffects(c *Context) {
	m := c.Mon
	if !m.Alive() || c.Level().Habitable(m, m.Pos()) {
		return
	}
	switch c.Level().Feature(m.Pos()) {
	case world.FeatureDeepWater:
		if m.Resists().Drowning > 0 {
			return
		}
		c.Notify("{name} falls into the water and drowns!", SeverityWarn)
		m.Die("drowned")
	case world.FeatureLava:
		c.Notify("{name} falls into the lava and burns up!", SeverityWarn)
		m.Die("lava")
	default:
		if m.Is(model.FlagAquatic) {
			c.Add(ench.New(ench.AquaticLand, 0, c.Record.Who, ench.InfiniteDuration))
		}
	}
}

// heldEffect is a net or web. Faster monsters struggle out of it sooner.
type heldEffect struct{ base }

func (heldEffect) OnActionTime(c *Context) { c.Decay(false) }

func (heldEffect) OnExit(c *Context) {
	c.Notify("{name} breaks free.", SeverityPlain)
}

func (heldEffect) Reconcile() Strategy { return StrategyDrop }

var (
	_ = register(petrifyingEffect{}, ench.Petrifying)
	_ = register(petrifiedEffect{}, ench.Petrified)
	_ = register(flightEffect{}, ench.Flight)
	_ = register(heldEffect{}, ench.Held)
)
