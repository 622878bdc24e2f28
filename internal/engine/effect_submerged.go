package engine

import (
	"github.com/udisondev/monench/internal/ench"
	"github.com/udisondev/monench/internal/model"
)

// submergedEffect hides a monster under the surface. It never decays: the
// monster surfaces when the terrain stops allowing it or something else
// removes the effect.
type submergedEffect struct{ base }

func (submergedEffect) Admit(c *Context) bool {
	return c.Level().CanSubmerge(c.Mon, c.Mon.Pos())
}

func (submergedEffect) OnActionTime(c *Context) {
	m := c.Mon
	// Don't surface into a harmful cloud.
	if !c.Level().CloudAt(m.Pos()).Harmless() {
		return
	}
	if !c.Level().CanSubmerge(m, m.Pos()) {
		c.Remove(ench.Submerged, false)
	}
}

// PrepareExit makes room for the monster to surface. If something is
// swimming or flying above it, it first tries an adjacent cell where it
// could have been submerged, then stays under if it still can, and finally
// settles for any habitable neighbour.
func (submergedEffect) PrepareExit(c *Context) bool {
	m := c.Mon
	lvl := c.Level()

	if above, ok := lvl.MonsterAt(m.Pos()); !ok || above == m {
		return true
	}

	free := func(cond func(model.Location) bool) bool {
		dest, ok := lvl.FreeAdjacent(m.Pos(), c.Rand(), cond)
		return ok && lvl.Move(m, dest)
	}

	if free(func(l model.Location) bool { return lvl.CanSubmerge(m, l) }) {
		return true
	}
	if lvl.CanSubmerge(m, m.Pos()) {
		return false
	}
	free(func(l model.Location) bool { return lvl.Habitable(m, l) })
	return true
}

func (submergedEffect) OnExit(c *Context) {
	m := c.Mon
	if m.Behaviour() == model.BehaviourWander {
		m.SetBehaviour(model.BehaviourSeek)
	}
	if c.Level().Feature(m.Pos()).Watery() {
		c.Notify("{name} bursts forth from the water.", SeverityWarn)
	}
}

// Bind gives the cell to whoever stands on the surface above a restored
// submerged monster.
func (submergedEffect) Bind(c *Context)   { c.Level().Settle(c.Mon.Pos()) }
func (submergedEffect) Unbind(c *Context) {}

func (submergedEffect) Reconcile() Strategy { return StrategyKeep }

var _ = register(submergedEffect{}, ench.Submerged)
