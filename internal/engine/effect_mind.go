package engine

import (
	"github.com/udisondev/monench/internal/ench"
	"github.com/udisondev/monench/internal/model"
)

// fearEffect makes the monster flee. The mindless and the frenzied are
// immune.
type fearEffect struct{ base }

func (fearEffect) Admit(c *Context) bool {
	return !c.Mon.Is(model.FlagNonliving) && !c.Mon.BerserkOrInsane()
}

func (fearEffect) OnStart(c *Context) {
	c.Mon.SetBehaviour(model.BehaviourFlee)
}

func (fearEffect) OnExit(c *Context) {
	c.Notify("{name} seems to regain its courage.", SeverityPlain)
	reevaluate(c.Mon)
}

// confusionEffect does not wear off for monsters that are always confused.
type confusionEffect struct{ base }

func (confusionEffect) Holds(c *Context) bool {
	return c.Mon.Is(model.FlagInnateConfused)
}

func (e confusionEffect) OnActionTime(c *Context) {
	if !e.Holds(c) {
		c.Decay(true)
	}
}

func (confusionEffect) OnExit(c *Context) {
	c.Notify("{name} seems less confused.", SeverityPlain)
	reevaluate(c.Mon)
}

func (confusionEffect) Reconcile() Strategy { return StrategyDrop }

// Drop clears confusion and lets the monster stumble a step, as it would
// have while nobody was watching.
func (e confusionEffect) Drop(c *Context) {
	if !e.Holds(c) {
		c.Remove(ench.Confusion, true)
	}
	if c.Mon.Alive() && !c.Mon.Is(model.FlagStationary) {
		c.Level().Blink(c.Mon, c.Rand())
	}
}

// invisEffect does not wear off for innately invisible monsters.
type invisEffect struct{ base }

func (invisEffect) Holds(c *Context) bool {
	return c.Mon.Is(model.FlagInnateInvis)
}

func (e invisEffect) OnActionTime(c *Context) {
	if !e.Holds(c) {
		c.Decay(true)
	}
}

func (invisEffect) OnExit(c *Context) {
	if !c.Mon.Friendly() {
		c.Notify("{name} appears from thin air!", SeverityWarn)
	}
}

// allegianceEffect covers charm, hex and bribes: the monster switches
// sides for a while and picks up its new master's foe.
type allegianceEffect struct {
	base
	state string
}

func (allegianceEffect) OnStart(c *Context) {
	m := c.Mon
	m.SetBehaviour(model.BehaviourSeek)
	if src, ok := c.Source(); ok {
		m.SetFoe(src.Foe())
	} else {
		m.SetFoe(0)
	}
	c.Remove(ench.StillWinds, false)
}

func (e allegianceEffect) OnExit(c *Context) {
	c.Notify("{name} is no longer "+e.state+".", SeverityPlain)
	reevaluate(c.Mon)
}

// reevaluate puts a monster that lost a mind-altering state back on the
// hunt.
func reevaluate(m *model.Monster) {
	if m.Behaviour() == model.BehaviourFlee && !m.HasEnch(ench.Fear) {
		m.SetBehaviour(model.BehaviourSeek)
	}
}

var (
	_ = register(fearEffect{}, ench.Fear)
	_ = register(confusionEffect{}, ench.Confusion)
	_ = register(invisEffect{}, ench.Invis)
	_ = register(allegianceEffect{state: "charmed"}, ench.Charm)
	_ = register(allegianceEffect{state: "hexed"}, ench.Hexed)
	_ = register(allegianceEffect{state: "bribed"}, ench.NeutralBribed, ench.FriendlyBribed)
)
