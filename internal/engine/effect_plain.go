package engine

import (
	"github.com/udisondev/monench/internal/ench"
	"github.com/udisondev/monench/internal/model"
)

// plainEffect only decays. An optional message is shown when it ends.
type plainEffect struct {
	base
	expiry   string
	strategy Strategy
}

func (e plainEffect) OnExit(c *Context) {
	if e.expiry != "" {
		c.Notify(e.expiry, SeverityPlain)
	}
}

func (e plainEffect) Reconcile() Strategy { return e.strategy }

func expires(msg string) plainEffect {
	return plainEffect{expiry: msg}
}

var (
	_ = register(plainEffect{}, ench.Sick, ench.SleepWary, ench.BreathWeapon,
		ench.Wretched, ench.Weak, ench.FireVuln, ench.PoisonVuln, ench.BlackMark,
		ench.SapMagic, ench.Corrosion, ench.Antimagic, ench.FearInspiring,
		ench.Dumb, ench.Mad)

	_ = register(expires("{name} no longer looks unusually strong."), ench.Might)
	_ = register(expires("{name} is no longer moving quickly."), ench.Swift)
	_ = register(expires("{name} stops glowing."), ench.Corona)
	_ = register(expires("{name}'s magical defenses are restored."), ench.LoweredMR)
	_ = register(expires("{name}'s soul is no longer ripe for the taking."), ench.SoulRipe)
	_ = register(expires("{name} is no longer regenerating."), ench.Regeneration)
	_ = register(expires("{name}'s magical defenses return to normal."), ench.RaisedMR)
	_ = register(expires("{name} loses the glow of perfection."), ench.Idealised)
	_ = register(expires("{name}'s dark mirror aura disappears."), ench.MirrorDamage)
	_ = register(expires("{name} is no longer dazed."), ench.Dazed)
	_ = register(expires("{name} is no longer mute."), ench.Mute)
	_ = register(expires("{name} seems less agile."), ench.Agile)
	_ = register(expires("{name} is no longer unusually resistant."), ench.Resistance)
	_ = register(expires("{name}'s soul is no longer bound."), ench.BoundSoul)
	_ = register(expires("{name} is no longer paralysed."), ench.Paralysis)

	_ = register(plainEffect{strategy: StrategyDrop,
		expiry: "{name}'s inner flame fades away."}, ench.InnerFlame)
	_ = register(plainEffect{strategy: StrategyDrop,
		expiry: "{name} is no longer infested."}, ench.Infestation)

	_ = register(blindEffect{expires("{name} is no longer blind.")}, ench.Blind)
	_ = register(drainedEffect{}, ench.Drained)
)

// blindEffect cannot take hold on monsters without working eyes.
type blindEffect struct{ plainEffect }

func (blindEffect) Admit(c *Context) bool {
	return !c.Mon.Is(model.FlagUnblindable)
}

// drainedEffect loses duration but keeps its degree until it ends.
type drainedEffect struct{ base }

func (drainedEffect) OnActionTime(c *Context) { c.Decay(false) }
func (drainedEffect) Reconcile() Strategy     { return StrategyDecayDuration }
