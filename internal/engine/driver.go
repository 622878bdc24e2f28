package engine

import (
	"github.com/udisondev/monench/internal/ench"
	"github.com/udisondev/monench/internal/model"
)

// ApplyAll runs one monster turn of enchantment behaviour on m.
//
// Removals vetoed earlier are retried first. The pass then works from a
// snapshot of the kinds present at its start, in kind order: a kind removed
// by an earlier handler is skipped, a kind added during the pass waits for
// the next one. The pass stops as soon as m dies.
func (e *Engine) ApplyAll(m *model.Monster) {
	t := m.Enchantments()

	if pending := t.Pending(); !pending.Empty() {
		for _, k := range pending.Kinds() {
			if !m.Alive() {
				return
			}
			e.Remove(m, k, false, true)
		}
	}

	if t.Len() == 0 {
		return
	}

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
		e.handlers[k].OnActionTime(e.context(m, rec, false))
	}
}
