package engine

import (
	"github.com/udisondev/monench/internal/ench"
	"github.com/udisondev/monench/internal/model"
)

const (
	// recallMin and recallMax bound how many allies a recall brings.
	recallMin = 3
	recallMax = 7

	// breathCooldownMin and breathCooldownMax bound the pause after a
	// recall, in turns.
	breathCooldownMin = 4
	breathCooldownMax = 12
)

// sporeTemplate is what a spore producer releases.
var sporeTemplate = model.Template{
	Name:    "spore",
	HP:      1,
	HitDice: 1,
	Speed:   ench.BaselineSpeed,
	Flags:   model.FlagNonliving | model.FlagFlier,
}

// countdown is a one-shot timer: when its duration runs out the handler's
// OnTimeout fires instead of a plain expiry.
type countdown struct{ base }

func (countdown) Reconcile() Strategy { return StrategyTerminal }

// tick decays the timer and fires t once it runs out.
func tick(c *Context, shrink bool, t TimeoutHandler) {
	if c.Decay(shrink) {
		t.OnTimeout(c)
	}
}

// shortLivedEffect is a conjured monster that explodes when its time is up.
type shortLivedEffect struct{ countdown }

func (e shortLivedEffect) OnActionTime(c *Context) { tick(c, true, e) }

func (shortLivedEffect) OnTimeout(c *Context) {
	if !c.Mon.Alive() {
		return
	}
	explode(c, 3, 6)
	c.Mon.Die("timeout")
}

// slowlyDyingEffect withers the monster away.
type slowlyDyingEffect struct{ countdown }

func (e slowlyDyingEffect) OnActionTime(c *Context) { tick(c, true, e) }

func (slowlyDyingEffect) OnTimeout(c *Context) {
	if !c.Mon.Alive() {
		return
	}
	c.Notify("A nearby {name} withers and dies.", SeverityPlain)
	c.Mon.Die("withered")
}

// sporeProductionEffect releases a spore next to the monster, then starts
// over.
type sporeProductionEffect struct{ countdown }

func (e sporeProductionEffect) OnActionTime(c *Context) { tick(c, true, e) }

func (sporeProductionEffect) OnTimeout(c *Context) {
	m := c.Mon
	if !m.Alive() {
		return
	}
	lvl := c.Level()
	dest, ok := lvl.FreeAdjacent(m.Pos(), c.Rand(), func(l model.Location) bool {
		return !lvl.Feature(l).Solid()
	})
	if ok {
		spore, err := lvl.Spawn(sporeTemplate, dest)
		if err == nil {
			spore.SetAttitude(m.Attitude())
			c.Notify("{name} spawns a spore.", SeverityPlain)
		} else {
			c.e.log.Debug("spore spawn failed", "monster", m.ID(), "error", err)
		}
	}
	c.Add(ench.New(ench.SporeProduction, 0, c.Record.Who, 0))
}

// explodingEffect goes off periodically, costing the monster a hit die
// each time until nothing is left.
type explodingEffect struct{ countdown }

func (e explodingEffect) OnActionTime(c *Context) { tick(c, true, e) }

func (explodingEffect) OnTimeout(c *Context) {
	m := c.Mon
	if !m.Alive() {
		return
	}
	explode(c, 2, 6)
	m.SetHitDice(m.HitDice() - 1)
	if m.HitDice() <= 0 {
		m.Die("self-destruct")
		return
	}
	c.Add(ench.New(ench.Exploding, 0, c.Record.Who, 0))
}

// portalTimerEffect cuts a portal tentacle off when the portal closes.
type portalTimerEffect struct{ countdown }

func (e portalTimerEffect) OnActionTime(c *Context) { tick(c, true, e) }

func (portalTimerEffect) OnTimeout(c *Context) {
	m := c.Mon
	if !m.Alive() {
		return
	}
	c.Notify("The portal closes; {name} is severed.", SeverityPlain)
	c.Add(ench.New(ench.Severed, 0, c.Record.Who, 0))
	m.SetAttitude(model.AttitudeNeutral)
}

// portalPacifiedEffect wears off into rage unless the tentacle was severed
// in the meantime.
type portalPacifiedEffect struct{ countdown }

func (e portalPacifiedEffect) OnActionTime(c *Context) { tick(c, true, e) }

func (portalPacifiedEffect) OnTimeout(c *Context) {
	m := c.Mon
	if !m.Alive() || m.HasEnch(ench.Severed) || !m.Friendly() {
		return
	}
	c.Notify("{name} suddenly becomes enraged!", SeverityWarn)
	m.SetAttitude(model.AttitudeHostile)
}

// teleportEffect relocates the monster when it runs out.
type teleportEffect struct{ countdown }

func (e teleportEffect) OnActionTime(c *Context) { tick(c, true, e) }

func (teleportEffect) OnTimeout(c *Context) {
	m := c.Mon
	if !m.Alive() || m.Is(model.FlagNoTeleport) {
		return
	}
	if c.Level().Teleport(m, c.Rand()) {
		c.Notify("{name} disappears!", SeverityPlain)
	}
}

// wordOfRecallEffect is a chant that calls allies to the monster's side.
// Anything that stops the monster from chanting interrupts it.
type wordOfRecallEffect struct{ countdown }

func (e wordOfRecallEffect) OnActionTime(c *Context) {
	m := c.Mon
	if m.Silenced() || m.CannotAct() || m.HasEnch(ench.BreathWeapon) ||
		m.Confused() || m.HasEnch(ench.Fear) {
		m.AddSpeedIncrement(c.Record.Duration)
		c.Engine().Remove(m, ench.WordOfRecall, true, false)
		c.Notify("{name}'s chant is interrupted.", SeverityPlain)
		return
	}
	tick(c, true, e)
}

func (wordOfRecallEffect) OnTimeout(c *Context) {
	m := c.Mon
	if !m.Alive() {
		return
	}
	recall(c, c.Rand().RandomRange(recallMin, recallMax))
	cooldown := c.Rand().RandomRange(breathCooldownMin, breathCooldownMax) * ench.BaselineDelay
	self := ench.Attribution{Category: ench.CategorySelf, Source: m.ID()}
	c.Add(ench.New(ench.BreathWeapon, 1, self, cooldown))
}

// recall pulls up to n allies from elsewhere on the level next to the
// chanting monster.
func recall(c *Context, n int) int {
	m := c.Mon
	lvl := c.Level()
	moved := 0
	for _, ally := range lvl.Monsters() {
		if moved >= n {
			break
		}
		if ally == m || ally.Attitude() != m.Attitude() || ally.Pos().Adjacent(m.Pos()) {
			continue
		}
		dest, ok := lvl.FreeAdjacent(m.Pos(), c.Rand(), func(l model.Location) bool {
			return lvl.Habitable(ally, l)
		})
		if !ok {
			break
		}
		if lvl.Move(ally, dest) {
			moved++
		}
	}
	if moved > 0 {
		c.Notify("{name} calls for aid.", SeverityWarn)
	}
	return moved
}

// explode damages every living monster next to the exploding one.
func explode(c *Context, num, size int) {
	c.Notify("{name} explodes!", SeverityWarn)
	for _, other := range c.Level().Monsters() {
		if other == c.Mon || !other.Pos().Adjacent(c.Mon.Pos()) {
			continue
		}
		other.Hurt(c.Rand().RollDice(num, size), "explosion")
	}
}

var (
	_ = register(shortLivedEffect{}, ench.ShortLived)
	_ = register(slowlyDyingEffect{}, ench.SlowlyDying)
	_ = register(sporeProductionEffect{}, ench.SporeProduction)
	_ = register(explodingEffect{}, ench.Exploding)
	_ = register(portalTimerEffect{}, ench.PortalTimer)
	_ = register(portalPacifiedEffect{}, ench.PortalPacified)
	_ = register(teleportEffect{}, ench.Teleport)
	_ = register(wordOfRecallEffect{}, ench.WordOfRecall)
)
