package engine

import (
	"math"

	"github.com/udisondev/monench/internal/ench"
	"github.com/udisondev/monench/internal/model"
)

// severedDamage is what a severed tentacle loses every turn.
const severedDamage = 20

// poisonEffect deals degree-scaled damage each turn.
type poisonEffect struct{ base }

func (poisonEffect) OnActionTime(c *Context) {
	rs := c.Rand()
	deg := c.Record.Degree

	dam := 0
	if deg >= 4 {
		dam = 1
	}
	if rs.CoinFlip() {
		dam += rs.RollDice(1, deg+1)
	}
	if c.Mon.Resists().Poison < 0 {
		dam += rs.RollDice(2, deg) - 1
	}
	if c.Hurt(dam, "poison") {
		return
	}
	c.Decay(true)
}

func (poisonEffect) OnExit(c *Context) {
	c.Notify("{name} looks more healthy.", SeverityPlain)
}

// stickyFlameEffect burns until it runs out or the monster reaches water.
type stickyFlameEffect struct{ base }

func (stickyFlameEffect) OnActionTime(c *Context) {
	m := c.Mon
	if c.Level().Feature(m.Pos()).Watery() && !m.Airborne() {
		c.Notify("The flames covering {name} go out.", SeverityPlain)
		c.Engine().Remove(m, ench.StickyFlame, true, true)
		return
	}
	dam := resistAdjust(m.Resists().Fire, c.Rand().RollDice(2, 4)-1)
	if dam > 0 {
		c.Notify("{name} burns!", SeverityPlain)
		if c.Hurt(dam, "sticky flame") {
			return
		}
	}
	c.Decay(true)
}

func (stickyFlameEffect) OnExit(c *Context) {
	c.Notify("{name} stops burning.", SeverityPlain)
}

// silverCoronaEffect glows like Corona but sears chaotic monsters.
type silverCoronaEffect struct{ base }

func (silverCoronaEffect) OnActionTime(c *Context) {
	if c.Mon.Is(model.FlagChaotic) {
		c.Notify("{name} is seared!", SeverityPlain)
		if c.Hurt(c.Rand().RollDice(2, 4)-1, "silver corona") {
			return
		}
	}
	c.Decay(true)
}

func (silverCoronaEffect) OnExit(c *Context) {
	c.Notify("{name} stops glowing.", SeverityPlain)
}

// aquaticLandEffect hurts a water creature stranded on land. It ends when
// the monster is back in its habitat.
type aquaticLandEffect struct{ base }

func (aquaticLandEffect) OnActionTime(c *Context) {
	m := c.Mon
	if c.Level().Habitable(m, m.Pos()) {
		c.Remove(ench.AquaticLand, false)
		return
	}
	// Zombies don't mind flopping about.
	if m.Is(model.FlagZombified) {
		return
	}
	c.Hurt(1+c.Rand().Random2(5), "suffocation")
}

func (aquaticLandEffect) Reconcile() Strategy { return StrategyKeep }

// severedEffect bleeds a cut-off tentacle to death.
type severedEffect struct{ base }

func (severedEffect) OnActionTime(c *Context) {
	c.Notify("{name} writhes!", SeverityPlain)
	c.Hurt(severedDamage, "severed")
}

func (severedEffect) Reconcile() Strategy { return StrategyKeep }

// waterHoldEffect drowns a monster engulfed by an adjacent holder. The
// longer the hold lasts, the more it hurts.
type waterHoldEffect struct{ base }

func (waterHoldEffect) OnActionTime(c *Context) {
	m := c.Mon
	holder, ok := c.Source()
	if !ok || !holder.Pos().Adjacent(m.Pos()) {
		c.Remove(ench.WaterHold, false)
		return
	}
	res := m.Resists().Drowning
	if res > 0 {
		return
	}

	s2d := ench.SpeedToDuration(m.Speed(), c.Rand())
	c.Engine().LoseDuration(m, ench.WaterHold, -s2d)
	cur, ok := c.Current()
	if !ok {
		return
	}
	dam := c.Rand().DivRandRound((50+stepdown(cur.Duration, 30))*s2d, ench.BaselineDelay*10)
	if res < 0 {
		dam = dam * 3 / 2
	}
	c.Hurt(dam, "drowning")
}

func (waterHoldEffect) OnExit(c *Context) {
	c.Notify("{name} is no longer engulfed.", SeverityPlain)
}

func (waterHoldEffect) Reconcile() Strategy { return StrategyDrop }

// resistAdjust scales damage by a resistance level: each level of
// resistance divides further, vulnerability adds half again.
func resistAdjust(res, dam int) int {
	switch {
	case res > 0:
		return dam / (1 + res)
	case res < 0:
		return dam * 3 / 2
	default:
		return dam
	}
}

// stepdown grows logarithmically once v exceeds step.
func stepdown(v, step int) int {
	if v <= 0 {
		return 0
	}
	s := float64(step)
	return int(math.Round(s * math.Log2(1+float64(v)/s)))
}

var (
	_ = register(poisonEffect{}, ench.Poison)
	_ = register(stickyFlameEffect{}, ench.StickyFlame)
	_ = register(silverCoronaEffect{}, ench.SilverCorona)
	_ = register(aquaticLandEffect{}, ench.AquaticLand)
	_ = register(severedEffect{}, ench.Severed)
	_ = register(waterHoldEffect{}, ench.WaterHold)
)
