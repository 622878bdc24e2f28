package engine

import (
	"github.com/udisondev/monench/internal/ench"
	"github.com/udisondev/monench/internal/model"
)

// ReconcileElapsed catches m up on n baseline ticks spent off-screen in a
// single step instead of n passes.
//
// n ticks are worth n*speed/10 monster turns. Decaying kinds lose that
// many turns of decay in closed form; countdowns fire at most once; kinds
// that only make sense under active simulation are dropped; the rest are
// kept as they are.
func (e *Engine) ReconcileElapsed(m *model.Monster, n int) {
	if n <= 0 || !m.Alive() {
		return
	}
	t := m.Enchantments()
	if t.Len() == 0 {
		return
	}

	turns := e.rs.DivRandRound(n*m.Speed(), ench.BaselineDelay)
	e.log.Debug("reconciling enchantments",
		"monster", m.ID(),
		"ticks", n,
		"turns", turns,
		"count", t.Len())

	snapshot := t.Kinds()
	for k := ench.Kind(0); k < ench.NumKinds; k++ {
		if !snapshot.Has(k) {
			continue
		}
		if !m.Alive() {
			return
		}
		rec, ok := t.Get(k)
		if !ok {
			continue
		}
		h := e.handlers[k]
		c := e.context(m, rec, true)
		if hl, ok := h.(Holder); ok && hl.Holds(c) && h.Reconcile() != StrategyDrop {
			continue
		}

		switch h.Reconcile() {
		case StrategyDecay:
			e.skipDecay(m, k, turns, true)
		case StrategyDecayDuration:
			e.skipDecay(m, k, turns, false)
		case StrategyTerminal:
			e.skipCountdown(c, h, turns)
		case StrategyDrop:
			if d, ok := h.(Dropper); ok {
				d.Drop(c)
			} else {
				e.Remove(m, k, true, true)
			}
		case StrategyKeep:
		}
	}
}

// skipDecay applies the outcome of turns calls to Decay on kind k.
// Decay loses one baseline action per call and, with shrink, checks the
// degree threshold after each loss; the threshold only moves when the
// degree drops, so each degree level is solved in one step.
func (e *Engine) skipDecay(m *model.Monster, k ench.Kind, turns int, shrink bool) {
	t := m.Enchantments()
	for turns > 0 {
		rec, ok := t.Get(k)
		if !ok || rec.Infinite() {
			return
		}
		step := ench.SpeedToDuration(ench.BaselineSpeed, e.rs)
		if k == ench.Held {
			step = ench.SpeedToDuration(m.Speed(), e.rs)
		}

		// Turns until the duration runs out.
		toExpire := (rec.Duration + step - 1) / step

		// Turns until the degree drops, if it can.
		toShrink := turns + 1
		if shrink && rec.Degree > 1 {
			f := rec.Degree * (rec.Degree + 1) / 2
			threshold := rec.MaxDuration * (f - 1) / f
			toShrink = max(1, (rec.Duration-threshold)/step+1)
		}

		switch {
		case toExpire <= turns && toExpire <= toShrink:
			e.Remove(m, k, true, true)
			return
		case toShrink <= turns:
			rec.Duration -= toShrink * step
			rec.Degree--
			rec.MaxDuration = rec.Duration
			turns -= toShrink
			if rec.Degree <= 0 {
				e.Remove(m, k, true, true)
				return
			}
			t.Update(rec)
		default:
			rec.Duration -= turns * step
			t.Update(rec)
			return
		}
	}
}

// skipCountdown resolves a countdown: if it would have run out within
// turns it is removed and its timeout fires exactly once, otherwise it
// just loses the elapsed time.
func (e *Engine) skipCountdown(c *Context, h Handler, turns int) {
	m, k := c.Mon, c.Record.Kind
	elapsed := turns * ench.BaselineDelay
	if c.Record.Infinite() || elapsed == 0 {
		return
	}
	if elapsed < c.Record.Duration {
		e.LoseDuration(m, k, elapsed)
		return
	}
	if !e.Remove(m, k, true, true) {
		return
	}
	if th, ok := h.(TimeoutHandler); ok {
		th.OnTimeout(c)
	}
}
